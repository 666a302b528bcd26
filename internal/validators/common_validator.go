package validators

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

var validate *validator.Validate

func init() {
	validate = validator.New()

	// Register custom validation functions
	validate.RegisterValidation("object_id", validateObjectID)
	validate.RegisterValidation("promo_code", validatePromoCode)
	validate.RegisterValidation("time_of_day", validateTimeOfDay)
	validate.RegisterValidation("table_status", validateTableStatus)
	validate.RegisterValidation("payment_method", validatePaymentMethod)
}

// Common validation errors
var (
	ErrInvalidObjectID      = errors.New("invalid object ID format")
	ErrInvalidPromoCode     = errors.New("invalid promotion code format")
	ErrInvalidTimeOfDay     = errors.New("invalid time of day, expected HH:mm")
	ErrInvalidTableStatus   = errors.New("invalid table status")
	ErrInvalidPaymentMethod = errors.New("invalid payment method")
)

// ValidationError represents a field validation error
type ValidationError struct {
	Field   string `json:"field"`
	Tag     string `json:"tag"`
	Value   string `json:"value"`
	Message string `json:"message"`
}

type ValidationErrors []ValidationError

func (v ValidationErrors) Error() string {
	var messages []string
	for _, err := range v {
		messages = append(messages, fmt.Sprintf("%s: %s", err.Field, err.Message))
	}
	return strings.Join(messages, "; ")
}

// ValidateStruct validates a struct and returns detailed errors
func ValidateStruct(s interface{}) ValidationErrors {
	var validationErrors ValidationErrors

	err := validate.Struct(s)
	if err != nil {
		for _, err := range err.(validator.ValidationErrors) {
			validationError := ValidationError{
				Field:   err.Field(),
				Tag:     err.Tag(),
				Value:   fmt.Sprintf("%v", err.Value()),
				Message: getErrorMessage(err),
			}
			validationErrors = append(validationErrors, validationError)
		}
	}

	return validationErrors
}

func getErrorMessage(err validator.FieldError) string {
	switch err.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", err.Field())
	case "min":
		return fmt.Sprintf("%s must be at least %s", err.Field(), err.Param())
	case "max":
		return fmt.Sprintf("%s must be at most %s", err.Field(), err.Param())
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s", err.Field(), err.Param())
	case "object_id":
		return "Invalid ID format"
	case "promo_code":
		return "Code may only contain letters, digits, dash and underscore"
	case "time_of_day":
		return "Time must be in HH:mm format"
	case "table_status":
		return "Invalid table status"
	case "payment_method":
		return "Invalid payment method"
	default:
		return fmt.Sprintf("Validation failed for %s", err.Field())
	}
}

// Custom validation functions
func validateObjectID(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	if value == "" {
		return true // Let required tag handle empty values
	}
	_, err := primitive.ObjectIDFromHex(value)
	return err == nil
}

var promoCodeRegex = regexp.MustCompile(`^[A-Za-z0-9_\-]{2,32}$`)

func validatePromoCode(fl validator.FieldLevel) bool {
	code := fl.Field().String()
	if code == "" {
		return true
	}
	return promoCodeRegex.MatchString(code)
}

var timeOfDayRegex = regexp.MustCompile(`^([01][0-9]|2[0-3]):[0-5][0-9]$`)

func validateTimeOfDay(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	if value == "" {
		return true
	}
	return timeOfDayRegex.MatchString(value)
}

func validateTableStatus(fl validator.FieldLevel) bool {
	status := fl.Field().String()
	if status == "" {
		return true
	}
	switch status {
	case "available", "occupied", "reserved", "maintenance":
		return true
	}
	return false
}

func validatePaymentMethod(fl validator.FieldLevel) bool {
	method := fl.Field().String()
	if method == "" {
		return true
	}
	return method == "cash" || method == "momo"
}
