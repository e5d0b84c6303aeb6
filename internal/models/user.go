package models

import (
	"github.com/golang-jwt/jwt/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Role is the closed set of account roles. Authorization checks must go
// through Valid instead of comparing raw strings.
type Role string

const (
	RoleCustomer Role = "Customer"
	RoleSeller   Role = "Seller"
	RoleAdmin    Role = "Admin"
)

func (r Role) Valid() bool {
	switch r {
	case RoleCustomer, RoleSeller, RoleAdmin:
		return true
	}

	return false
}

// User is identified by email; the _id is incidental. PendingItems and
// SoldItems are the seller-side denormalized views maintained by the order
// workflow; the orders collection stays authoritative.
type User struct {
	ID           primitive.ObjectID  `bson:"_id,omitempty" json:"_id,omitempty"`
	Email        string              `bson:"user_email" json:"user_email"`
	Name         string              `bson:"name,omitempty" json:"name,omitempty"`
	Role         Role                `bson:"role" json:"role"`
	Password     string              `bson:"password,omitempty" json:"-"`
	CartID       *primitive.ObjectID `bson:"cart_id,omitempty" json:"cart_id,omitempty"`
	PendingItems []OrderItem         `bson:"pending_items,omitempty" json:"pending_items,omitempty"`
	SoldItems    []OrderItem         `bson:"sold_items,omitempty" json:"sold_items,omitempty"`
}

type RegisterRequest struct {
	Email    string `json:"user_email" validate:"required,email"`
	Name     string `json:"name" validate:"required"`
	Role     Role   `json:"role,omitempty"`
	Password string `json:"password,omitempty" validate:"omitempty,min=6"`
}

type RegisterResponse struct {
	Message    string              `json:"message,omitempty"`
	InsertedID *primitive.ObjectID `json:"insertedId"`
}

type TokenRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password,omitempty"`
}

type ChangeRoleRequest struct {
	Email string `json:"user_email" validate:"required,email"`
	Role  Role   `json:"role" validate:"required"`
}

// Claims carries the authenticated email; the role is always re-resolved
// from the users collection, never trusted from the token.
type Claims struct {
	Email string `json:"email"`
	jwt.RegisteredClaims
}
