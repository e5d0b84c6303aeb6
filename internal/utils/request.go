package utils

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	apperrors "github.com/medimart/medimart/internal/errors"
	"github.com/medimart/medimart/internal/utils/response"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func ParseAndValidate(r *http.Request, w http.ResponseWriter, dest any, validate *validator.Validate) bool {

	if err := DecodeJSONBody(r, dest); err != nil {
		response.Error(w, apperrors.BadRequestError("Invalid request body").WithError(err))
		return false
	}

	if err := ValidateStruct(validate, dest); err != nil {
		response.Error(w, apperrors.ValidationError("Invalid input data").WithError(err))
		return false
	}

	return true
}

// ParseObjectID reads a path value and parses it as a Mongo object id.
func ParseObjectID(r *http.Request, name string) (primitive.ObjectID, error) {
	raw := r.PathValue(name)
	if raw == "" {
		return primitive.NilObjectID, apperrors.BadRequestError(name + " is required")
	}

	id, err := primitive.ObjectIDFromHex(raw)
	if err != nil {
		return primitive.NilObjectID, apperrors.BadRequestError("Invalid " + name).WithError(err)
	}

	return id, nil
}
