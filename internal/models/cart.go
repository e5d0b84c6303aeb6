package models

import "go.mongodb.org/mongo-driver/bson/primitive"

// CartLine is a single cart entry. One line per product id: repeated adds
// increment Quantity instead of appending a duplicate line.
type CartLine struct {
	ProductID primitive.ObjectID `bson:"product_id" json:"product_id"`
	Quantity  int                `bson:"quantity" json:"quantity"`
}

// Cart is the single mutable cart of a user, referenced from the user
// document via cart_id. Clearing empties Items but keeps the document.
type Cart struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"_id,omitempty"`
	UserEmail string             `bson:"user_email" json:"user_email"`
	Items     []CartLine         `bson:"items" json:"items"`
}

type AddItemRequest struct {
	ProductID primitive.ObjectID `json:"_id" validate:"required"`
}

// QuantityDirection is the :type path segment of the change-quantity route.
type QuantityDirection string

const (
	QuantityIncrement QuantityDirection = "increment"
	QuantityDecrement QuantityDirection = "decrement"
)

func (d QuantityDirection) Valid() bool {
	return d == QuantityIncrement || d == QuantityDecrement
}

// CartLineView is a cart line joined with its full product record.
type CartLineView struct {
	Product
	Quantity int `json:"quantity"`
}

// CartView is the GET /carts response shape.
type CartView struct {
	ID        primitive.ObjectID `json:"_id"`
	UserEmail string             `json:"user_email"`
	Items     []CartLineView     `json:"items"`
}
