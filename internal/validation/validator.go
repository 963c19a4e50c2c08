package validation

import (
	"fmt"
	"reflect"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

// Validator wraps the go-playground validator with custom rules and error formatting
type Validator struct {
	validate *validator.Validate
}

var (
	instance     *Validator
	instanceOnce sync.Once
)

// GetValidator returns the shared validator instance. Safe for concurrent use.
func GetValidator() *Validator {
	instanceOnce.Do(func() {
		instance = NewValidator()
	})
	return instance
}

// NewValidator creates a new validator instance with custom rules and configuration
func NewValidator() *Validator {
	v := validator.New()

	// decimal.Decimal fields are validated through their string form.
	v.RegisterCustomTypeFunc(func(field reflect.Value) interface{} {
		if d, ok := field.Interface().(decimal.Decimal); ok {
			return d.String()
		}
		return nil
	}, decimal.Decimal{})

	_ = v.RegisterValidation("non_negative_amount", validateNonNegativeAmount)

	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	return &Validator{validate: v}
}

// Struct validates s and returns nil or a FieldErrors value
func (v *Validator) Struct(s interface{}) error {
	err := v.validate.Struct(s)
	if err == nil {
		return nil
	}

	validationErrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return err
	}

	fieldErrs := make(FieldErrors, 0, len(validationErrs))
	for _, fe := range validationErrs {
		fieldErrs = append(fieldErrs, FieldError{
			Field: fe.Field(),
			Tag:   fe.Tag(),
			Value: fmt.Sprintf("%v", fe.Value()),
		})
	}
	return fieldErrs
}

// FieldError is a single failed rule
type FieldError struct {
	Field string
	Tag   string
	Value string
}

func (fe FieldError) String() string {
	switch fe.Tag {
	case "required":
		return fmt.Sprintf("%s is required", fe.Field)
	case "datetime":
		return fmt.Sprintf("%s %q is not a YYYY-MM-DD date", fe.Field, fe.Value)
	case "gte", "non_negative_amount":
		return fmt.Sprintf("%s %s must not be negative", fe.Field, fe.Value)
	default:
		return fmt.Sprintf("%s failed %s", fe.Field, fe.Tag)
	}
}

// FieldErrors collects every rule a value failed
type FieldErrors []FieldError

func (fe FieldErrors) Error() string {
	msgs := make([]string, 0, len(fe))
	for _, e := range fe {
		msgs = append(msgs, e.String())
	}
	return strings.Join(msgs, "; ")
}

// First returns the first failed rule
func (fe FieldErrors) First() FieldError {
	if len(fe) == 0 {
		return FieldError{}
	}
	return fe[0]
}

// Custom validation functions

// validateNonNegativeAmount validates that a decimal amount is zero or positive
func validateNonNegativeAmount(fl validator.FieldLevel) bool {
	amount, err := decimal.NewFromString(fl.Field().String())
	if err != nil {
		return false
	}
	return !amount.IsNegative()
}
