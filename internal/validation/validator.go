// package validation provides helper functions for request data validation.
// It uses the go-playground/validator library and registers the enumerations
// of the interview-prep domain as custom tags.
package validation

import (
	"fmt"
	"reflect"
	"regexp"
	"strings"

	"github.com/YusovID/campus-prep/internal/domain"
	"github.com/go-playground/validator/v10"
)

var (
	validate = validator.New()
	handleRe = regexp.MustCompile(`^[a-zA-Z0-9_-]+$`)
)

// enumTags maps a tag to the values a string field may take.
var enumTags = map[string][]string{
	"question_round":      domain.QuestionRounds,
	"question_difficulty": domain.QuestionDifficulties,
	"question_frequency":  domain.QuestionFrequencies,
	"material_category":   domain.MaterialCategories,
	"material_file_type":  domain.MaterialFileTypes,
	"material_difficulty": domain.MaterialDifficulties,
}

func init() {
	// Report fields by their JSON names so messages match the request body.
	validate.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return f.Name
		}

		return name
	})

	mustRegister("custom_id", func(fl validator.FieldLevel) bool {
		if fl.Field().String() == "" {
			// Allow empty strings to be handled by the 'required' tag.
			return true
		}

		return handleRe.MatchString(fl.Field().String())
	})

	mustRegister("role", func(fl validator.FieldLevel) bool {
		return domain.Role(fl.Field().String()).IsValid()
	})

	mustRegister("interview_type", func(fl validator.FieldLevel) bool {
		return domain.InterviewType(fl.Field().String()).IsValid()
	})

	mustRegister("interview_duration", func(fl validator.FieldLevel) bool {
		return domain.IsValidDuration(int(fl.Field().Int()))
	})

	for tag, allowed := range enumTags {
		mustRegister(tag, func(fl validator.FieldLevel) bool {
			v := fl.Field().String()
			return v == "" || domain.OneOf(v, allowed)
		})
	}
}

func mustRegister(tag string, fn validator.Func) {
	if err := validate.RegisterValidation(tag, fn); err != nil {
		panic(fmt.Sprintf("failed to register custom validation %q: %v", tag, err))
	}
}

// ValidationError is a custom error type that holds a slice of validation error messages.
type ValidationError struct {
	Errors []string
}

// Error returns a single string concatenating all validation error messages.
func (v *ValidationError) Error() string {
	return strings.Join(v.Errors, ", ")
}

// ValidateStruct performs validation on a given struct based on its validation tags.
// If validation fails, it returns a *ValidationError with user-friendly messages.
func ValidateStruct(s any) error {
	err := validate.Struct(s)
	if err == nil {
		return nil
	}

	fieldErrors, ok := err.(validator.ValidationErrors)
	if !ok {
		return &ValidationError{Errors: []string{err.Error()}}
	}

	messages := make([]string, 0, len(fieldErrors))
	for _, fe := range fieldErrors {
		messages = append(messages, message(fe))
	}

	return &ValidationError{Errors: messages}
}

func message(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("field '%s' is required", fe.Field())
	case "custom_id":
		return fmt.Sprintf("field '%s' must contain only letters, numbers, hyphens, and underscores", fe.Field())
	case "role":
		return fmt.Sprintf("field '%s' must be a known role", fe.Field())
	case "interview_type":
		return fmt.Sprintf("field '%s' must be one of Technical, HR, Aptitude, Mixed", fe.Field())
	case "interview_duration":
		return fmt.Sprintf("field '%s' must be 15, 30 or 45 minutes", fe.Field())
	}

	if allowed, ok := enumTags[fe.Tag()]; ok {
		return fmt.Sprintf("field '%s' must be one of %s", fe.Field(), strings.Join(allowed, ", "))
	}

	if fe.Param() != "" {
		return fmt.Sprintf("field '%s' failed on the '%s=%s' tag", fe.Field(), fe.Tag(), fe.Param())
	}

	return fmt.Sprintf("field '%s' failed on the '%s' tag", fe.Field(), fe.Tag())
}
