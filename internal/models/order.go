package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// OrderStatus is the two-state payment machine: pending -> paid, terminal.
type OrderStatus string

const (
	OrderStatusPending OrderStatus = "pending"
	OrderStatusPaid    OrderStatus = "paid"
)

// OrderItem is a point-in-time snapshot of a cart line. ItemID identifies
// the line itself: a seller can hold several pending items for the same
// product, so pulls from the denormalized lists match on ItemID, never on
// ProductID.
type OrderItem struct {
	ItemID      string             `bson:"item_id" json:"item_id"`
	ProductID   primitive.ObjectID `bson:"product_id" json:"product_id"`
	ProductName string             `bson:"product_name,omitempty" json:"product_name,omitempty"`
	SellerEmail string             `bson:"seller_email" json:"seller_email"`
	UnitPrice   float64            `bson:"unit_price" json:"unit_price"`
	Quantity    int                `bson:"quantity" json:"quantity"`
}

// Order is created once per checkout and never deleted.
type Order struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"_id,omitempty"`
	UserEmail string             `bson:"user_email" json:"user_email"`
	Price     float64            `bson:"price" json:"price"`
	Status    OrderStatus        `bson:"status" json:"status"`
	Items     []OrderItem        `bson:"items" json:"items"`
	CreatedAt time.Time          `bson:"created_at" json:"created_at"`
}

type CreateOrderItem struct {
	ProductID   primitive.ObjectID `json:"product_id" validate:"required"`
	ProductName string             `json:"product_name,omitempty"`
	SellerEmail string             `json:"seller_email" validate:"required,email"`
	UnitPrice   float64            `json:"unit_price" validate:"gte=0"`
	Quantity    int                `json:"quantity" validate:"required,min=1"`
}

type CreateOrderRequest struct {
	Items []CreateOrderItem `json:"items" validate:"required,min=1,dive"`
}

type PaymentIntentRequest struct {
	Price float64 `json:"price" validate:"required,gt=0"`
}

type PaymentIntentResponse struct {
	ClientSecret string `json:"clientSecret"`
}
