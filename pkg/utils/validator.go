package utils

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
)

var usernamePattern = regexp.MustCompile(`^[a-z0-9_.]+$`)

type Validator struct {
	validate *validator.Validate
}

func NewValidator() *Validator {
	v := validator.New()

	v.RegisterValidation("supported_image", validateImageType)
	v.RegisterValidation("event_format", validateEventFormat)
	v.RegisterValidation("rsvp_status", validateRSVPStatus)
	v.RegisterValidation("username", validateUsername)

	return &Validator{
		validate: v,
	}
}

// Struct validates s and flattens field errors into one readable message.
func (v *Validator) Struct(s interface{}) error {
	err := v.validate.Struct(s)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return err
	}

	msgs := make([]string, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		msgs = append(msgs, describe(fe))
	}
	return errors.New(strings.Join(msgs, "; "))
}

func (v *Validator) Var(field interface{}, tag string) error {
	return v.validate.Var(field, tag)
}

func describe(fe validator.FieldError) string {
	field := strings.ToLower(fe.Field())
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", field)
	case "email":
		return fmt.Sprintf("%s must be a valid email address", field)
	case "min", "max", "len":
		return fmt.Sprintf("%s must satisfy %s=%s", field, fe.Tag(), fe.Param())
	default:
		return fmt.Sprintf("%s is invalid (%s)", field, fe.Tag())
	}
}

func validateImageType(fl validator.FieldLevel) bool {
	return SupportedImageTypes[fl.Field().String()]
}

var SupportedImageTypes = map[string]bool{
	"image/jpeg": true,
	"image/png":  true,
	"image/gif":  true,
	"image/webp": true,
	"image/heic": true,
}

func validateEventFormat(fl validator.FieldLevel) bool {
	switch fl.Field().String() {
	case "in-person", "online":
		return true
	}
	return false
}

func validateRSVPStatus(fl validator.FieldLevel) bool {
	switch fl.Field().String() {
	case "accepted", "declined", "pending":
		return true
	}
	return false
}

func validateUsername(fl validator.FieldLevel) bool {
	return usernamePattern.MatchString(strings.ToLower(strings.TrimSpace(fl.Field().String())))
}
