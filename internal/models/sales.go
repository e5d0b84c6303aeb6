package models

// SalesSummary is returned by both the admin-wide and per-seller
// aggregations. TotalSales == TotalPaid + TotalPending always holds.
type SalesSummary struct {
	TotalSales   float64 `json:"totalSales"`
	TotalPaid    float64 `json:"totalPaid"`
	TotalPending float64 `json:"totalPending"`
}
