package domain

import (
	"github.com/go-playground/validator/v10"
)

// NewValidator returns a validator that also knows the "category" and
// "icon" tags used on LinkInput and LinkPatch.
func NewValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	_ = v.RegisterValidation("category", func(fl validator.FieldLevel) bool {
		return Category(fl.Field().String()).Valid()
	})
	_ = v.RegisterValidation("icon", func(fl validator.FieldLevel) bool {
		return Icon(fl.Field().String()).Valid()
	})
	return v
}
