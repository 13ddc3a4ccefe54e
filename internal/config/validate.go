package config

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
)

var (
	validate *validator.Validate
	once     sync.Once
)

func getValidator() *validator.Validate {
	once.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())

		// Report fields by their file keys.
		validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
			name := strings.SplitN(fld.Tag.Get("mapstructure"), ",", 2)[0]
			if name == "-" || name == "" {
				return fld.Name
			}
			return name
		})
	})
	return validate
}

// Validate checks cfg against its struct tags.
func Validate(cfg Config) error {
	err := getValidator().Struct(cfg)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}

	messages := make([]string, 0, len(verrs))
	for _, e := range verrs {
		messages = append(messages, fieldPath(e.Namespace())+": "+formatValidationError(e))
	}
	return fmt.Errorf("%w: %s", ErrInvalidConfig, strings.Join(messages, "; "))
}

// fieldPath drops the root struct name ("Config.run.jobs" -> "run.jobs").
func fieldPath(ns string) string {
	if i := strings.IndexByte(ns, '.'); i >= 0 {
		return ns[i+1:]
	}
	return ns
}

func formatValidationError(e validator.FieldError) string {
	switch e.Tag() {
	case "required":
		return "is required"
	case "required_if":
		return "is required when " + e.Param()
	case "gt":
		return "must be greater than " + e.Param()
	case "gte":
		return "must be at least " + e.Param()
	case "oneof":
		return "must be one of [" + e.Param() + "]"
	default:
		return "failed " + e.Tag() + " validation"
	}
}
