package handler

import (
	"fmt"

	"github.com/go-playground/validator/v10"

	"siaga-bencana/internal/middleware"
)

// Validator wraps go-playground/validator so handlers can turn tag failures
// into 400 responses with a usable message.
type Validator struct {
	validate *validator.Validate
}

func NewValidator() *Validator {
	return &Validator{validate: validator.New()}
}

func (v *Validator) Check(input any) error {
	err := v.validate.Struct(input)
	if err == nil {
		return nil
	}

	if errs, ok := err.(validator.ValidationErrors); ok && len(errs) > 0 {
		fe := errs[0]
		return middleware.BadRequest(fmt.Sprintf("Field '%s' failed on '%s' validation", fe.Field(), fe.Tag()))
	}
	return middleware.BadRequest("Invalid request body")
}
