package models

import "go.mongodb.org/mongo-driver/bson/primitive"

// Product is read-only from this service's perspective; the catalog is
// maintained out of band.
type Product struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"_id,omitempty"`
	Name         string             `bson:"name" json:"name"`
	Category     string             `bson:"category" json:"category"`
	PricePerUnit float64            `bson:"price_per_unit" json:"price_per_unit"`
	SellerEmail  string             `bson:"seller_email" json:"seller_email"`
	Image        string             `bson:"image,omitempty" json:"image,omitempty"`
	Description  string             `bson:"description,omitempty" json:"description,omitempty"`
}
