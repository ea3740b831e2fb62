// Package validation provides request validation using the validator/v10
// library, with StudyDeck-specific tags for subjects and difficulty levels.
package validation

import (
	"errors"
	"fmt"
	"reflect"

	"github.com/go-playground/validator/v10"

	"github.com/studydeckapp/studydeck-server/internal/domain"
	domainerrors "github.com/studydeckapp/studydeck-server/internal/errors"
)

// Validator wraps go-playground/validator with domain error conversion.
type Validator struct {
	v *validator.Validate
}

// New creates a validator configured for our domain. It registers two
// custom tags: "subject" accepts any of the known subject names (or
// their slugs), and "difficulty" accepts easy, medium, or hard.
func New() *Validator {
	v := validator.New()

	// Use JSON tag names in error messages.
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := fld.Tag.Get("json")
		if name == "" {
			return fld.Name
		}
		for i := range len(name) {
			if name[i] == ',' {
				return name[:i]
			}
		}
		return name
	})

	// Panics only on misuse (non-func validators), safe at init.
	must(v.RegisterValidation("subject", func(fl validator.FieldLevel) bool {
		return domain.CanonicalSubject(fl.Field().String()) != ""
	}))
	must(v.RegisterValidation("difficulty", func(fl validator.FieldLevel) bool {
		return domain.Difficulty(fl.Field().String()).Valid()
	}))

	return &Validator{v: v}
}

func must(err error) {
	if err != nil {
		panic(err)
	}
}

// Validate validates a struct and returns a domain validation error
// with per-field details when it fails.
func (v *Validator) Validate(s any) error {
	if err := v.v.Struct(s); err != nil {
		return v.formatError(err)
	}
	return nil
}

func (v *Validator) formatError(err error) error {
	var validationErrs validator.ValidationErrors
	if !errors.As(err, &validationErrs) {
		return err
	}

	fieldErrors := make(map[string]string)
	for _, e := range validationErrs {
		fieldErrors[e.Field()] = friendlyMessage(e)
	}

	return domainerrors.ValidationWithDetails("validation failed", fieldErrors)
}

func friendlyMessage(e validator.FieldError) string {
	switch e.Tag() {
	case "required":
		return "is required"
	case "min":
		return fmt.Sprintf("must be at least %s characters", e.Param())
	case "max":
		return fmt.Sprintf("must not exceed %s characters", e.Param())
	case "oneof":
		return "must be one of: " + e.Param()
	case "subject":
		return "must be a known subject"
	case "difficulty":
		return "must be one of: easy medium hard"
	case "gte":
		return "must be greater than or equal to " + e.Param()
	case "lte":
		return "must be less than or equal to " + e.Param()
	default:
		return "is invalid"
	}
}
