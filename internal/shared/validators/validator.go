package validators

import (
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
)

// Validate is a type alias for validator.Validate.
type Validate = validator.Validate

// ValidationErrors is a type alias for validator.ValidationErrors.
type ValidationErrors = validator.ValidationErrors

// FieldError is a type alias for validator.FieldError.
type FieldError = validator.FieldError

// New creates a new validator instance.
func New() *Validate {
	return validator.New()
}

var (
	sharedOnce sync.Once
	shared     *Validate
)

// Shared returns a process-wide validator. validator.Validate caches struct metadata
// and is safe for concurrent use.
func Shared() *Validate {
	sharedOnce.Do(func() { shared = New() })
	return shared
}

// Describe flattens a validation error into "field (tag=param)" fragments joined by
// ", ". rootSkip is the number of leading namespace segments to drop (1 drops the
// struct name, e.g. "Config.Server.Port" -> "server.port").
func Describe(err error, rootSkip int) string {
	var ve ValidationErrors
	if !errors.As(err, &ve) {
		return err.Error()
	}
	parts := make([]string, 0, len(ve))
	for _, e := range ve {
		parts = append(parts, describeField(e, rootSkip))
	}
	return strings.Join(parts, ", ")
}

func describeField(e FieldError, rootSkip int) string {
	field := e.Field()
	if ns := e.StructNamespace(); ns != "" {
		segments := strings.Split(ns, ".")
		if len(segments) > rootSkip {
			field = strings.ToLower(strings.Join(segments[rootSkip:], "."))
		}
	}

	switch tag := e.Tag(); tag {
	case "required":
		return fmt.Sprintf("%s (required)", field)
	case "min", "max", "gt", "gte", "lt", "lte", "oneof":
		return fmt.Sprintf("%s (%s=%s)", field, tag, e.Param())
	default:
		return fmt.Sprintf("%s (%s)", field, tag)
	}
}
