package models

import "go.mongodb.org/mongo-driver/bson/primitive"

// Category holds a denormalized product id list, rebuilt by the explicit
// rebuild operation rather than kept live-consistent with product writes.
type Category struct {
	ID         primitive.ObjectID   `bson:"_id,omitempty" json:"_id,omitempty"`
	Name       string               `bson:"category_name" json:"category_name"`
	Image      string               `bson:"image,omitempty" json:"image,omitempty"`
	ProductIDs []primitive.ObjectID `bson:"productIds" json:"productIds"`
}

// CategoryDetail is a category with its product ids resolved to full
// product records.
type CategoryDetail struct {
	Category
	Products []Product `json:"products"`
}
