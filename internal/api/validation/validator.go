package validation

import (
	"github.com/blaisecz/sleep-data-service/internal/domain"
	"github.com/blaisecz/sleep-data-service/pkg/problem"
	"github.com/go-playground/validator/v10"
)

var validate *validator.Validate

func init() {
	validate = validator.New()

	// Calendar date (YYYY-MM-DD) or RFC3339 timestamp
	validate.RegisterValidation("isodate", func(fl validator.FieldLevel) bool {
		_, err := domain.ParseDate(fl.Field().String())
		return err == nil
	})

	validate.RegisterValidation("sleepstage", func(fl validator.FieldLevel) bool {
		return domain.SleepStage(fl.Field().String()).Valid()
	})
}

// Validate validates a struct and returns field errors
func Validate(s interface{}) []problem.FieldError {
	err := validate.Struct(s)
	if err == nil {
		return nil
	}

	var fieldErrors []problem.FieldError
	for _, err := range err.(validator.ValidationErrors) {
		fieldErrors = append(fieldErrors, problem.FieldError{
			Field:   toSnakeCase(err.Field()),
			Message: getValidationMessage(err),
		})
	}
	return fieldErrors
}

func getValidationMessage(err validator.FieldError) string {
	switch err.Tag() {
	case "required":
		return "is required"
	case "min":
		return "must be at least " + err.Param()
	case "max":
		return "must be at most " + err.Param()
	case "gt":
		return "must be greater than " + err.Param()
	case "oneof":
		return "must be one of: " + err.Param()
	case "gtfield":
		return "must be greater than " + toSnakeCase(err.Param())
	case "gtefield":
		return "must be greater than or equal to " + toSnakeCase(err.Param())
	case "ltefield":
		return "must be less than or equal to " + toSnakeCase(err.Param())
	case "isodate":
		return "must be a date (YYYY-MM-DD) or RFC3339 timestamp"
	case "sleepstage":
		return "must be one of: deep, rem, light, awake"
	default:
		return "is invalid"
	}
}

func toSnakeCase(s string) string {
	runes := []rune(s)
	var result []rune
	for i, c := range runes {
		if c >= 'A' && c <= 'Z' {
			// break before a new word, keeping acronyms like ID together
			if i > 0 && (isLower(runes[i-1]) || (i+1 < len(runes) && isLower(runes[i+1]) && !isLower(runes[i-1]))) {
				result = append(result, '_')
			}
			result = append(result, c+'a'-'A')
		} else {
			result = append(result, c)
		}
	}
	return string(result)
}

func isLower(c rune) bool {
	return (c >= 'a' && c <= 'z') || (c >= '0' && c <= '9')
}
