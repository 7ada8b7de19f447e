package validation

import (
	"errors"
	"fmt"
	"math"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

var (
	// validate is a singleton validator instance
	validate *validator.Validate

	// MaxVertices bounds the vertex ids accepted from edge files
	MaxVertices = math.MaxInt32
)

func init() {
	validate = validator.New()

	// Report yaml names so errors point at the offending config key
	validate.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("yaml"), ",", 2)[0]
		if name == "" || name == "-" {
			return f.Name
		}
		return name
	})

	// unit_open accepts floats strictly between 0 and 1
	_ = validate.RegisterValidation("unit_open", func(fl validator.FieldLevel) bool {
		v := fl.Field().Float()
		return v > 0 && v < 1
	})
}

// Struct validates v against its `validate` struct tags and returns the
// first failure in a readable form.
func Struct(v any) error {
	if v == nil {
		return errors.New("value cannot be nil")
	}
	if err := validate.Struct(v); err != nil {
		return formatValidationError(err)
	}
	return nil
}

// ValidateVertex checks a vertex id read from input against the 1..MaxVertices range.
func ValidateVertex(v int64) error {
	if v < 1 || v > int64(MaxVertices) {
		return fmt.Errorf("vertex %d is outside [1, %d]", v, MaxVertices)
	}
	return nil
}

// ValidateWeight checks that an edge weight is positive and finite.
func ValidateWeight(w float64) error {
	if math.IsNaN(w) || math.IsInf(w, 0) || w <= 0 {
		return fmt.Errorf("weight %g must be positive and finite", w)
	}
	return nil
}

// formatValidationError converts validator errors to a more user-friendly format
func formatValidationError(err error) error {
	if err == nil {
		return nil
	}

	var validationErrs validator.ValidationErrors
	if !errors.As(err, &validationErrs) {
		return err
	}

	// Return the first validation error in a user-friendly format
	for _, e := range validationErrs {
		field := e.Namespace()
		if i := strings.IndexByte(field, '.'); i >= 0 {
			field = field[i+1:]
		}
		param := e.Param()

		switch e.Tag() {
		case "required":
			return fmt.Errorf("%s: field is required", field)
		case "min", "gte":
			return fmt.Errorf("%s: must be at least %s", field, param)
		case "max", "lte":
			return fmt.Errorf("%s: must not exceed %s", field, param)
		case "gt":
			return fmt.Errorf("%s: must be greater than %s", field, param)
		case "oneof":
			return fmt.Errorf("%s: %v must be one of [%s]", field, e.Value(), param)
		case "unit_open":
			return fmt.Errorf("%s: %v must lie strictly between 0 and 1", field, e.Value())
		default:
			return fmt.Errorf("%s: validation failed (%s)", field, e.Tag())
		}
	}

	return err
}
