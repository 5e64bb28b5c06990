// Package forms validates form payloads and turns validator failures into
// inline per-field messages.
package forms

import (
	"errors"
	"fmt"
	"reflect"
	"sort"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/taskflow-dev/taskflow/internal/models"
)

// ValidationError carries the first failing message of every invalid field,
// keyed by the field's json name
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	names := make([]string, 0, len(e.Fields))
	for name := range e.Fields {
		names = append(names, name)
	}
	sort.Strings(names)

	parts := make([]string, len(names))
	for i, name := range names {
		parts[i] = fmt.Sprintf("%s: %s", name, e.Fields[name])
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// Field returns the message for one field, empty if it passed
func (e *ValidationError) Field(name string) string {
	return e.Fields[name]
}

// AsValidationError unwraps err into a *ValidationError
func AsValidationError(err error) (*ValidationError, bool) {
	var verr *ValidationError
	if errors.As(err, &verr) {
		return verr, true
	}
	return nil, false
}

// Validator wraps validator.Validate with the form schema rules
type Validator struct {
	validate *validator.Validate
}

// New creates a validator with the custom enum rules registered
func New() *Validator {
	validate := validator.New(validator.WithRequiredStructEnabled())

	// Report fields by their json name
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return fld.Name
		}
		return name
	})

	validate.RegisterValidation("projectstatus", func(fl validator.FieldLevel) bool {
		return models.ProjectStatus(fl.Field().String()).Valid()
	})
	validate.RegisterValidation("taskstatus", func(fl validator.FieldLevel) bool {
		return models.TaskStatus(fl.Field().String()).Valid()
	})
	validate.RegisterValidation("taskpriority", func(fl validator.FieldLevel) bool {
		return models.TaskPriority(fl.Field().String()).Valid()
	})

	return &Validator{validate: validate}
}

// Validate checks v (a pointer to or value of a form struct). It returns nil
// or a *ValidationError.
func (v *Validator) Validate(input any) error {
	err := v.validate.Struct(input)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return fmt.Errorf("failed to validate form: %w", err)
	}

	t := reflect.TypeOf(input)
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}

	verr := &ValidationError{Fields: make(map[string]string, len(fieldErrs))}
	for _, fe := range fieldErrs {
		if _, seen := verr.Fields[fe.Field()]; seen {
			continue
		}
		verr.Fields[fe.Field()] = messageFor(t, fe)
	}
	return verr
}

// messageFor resolves the msg tag of the failing struct field. The tag holds
// "rule=message" pairs and an optional bare fallback, separated by ";".
func messageFor(t reflect.Type, fe validator.FieldError) string {
	if sf, ok := t.FieldByName(fe.StructField()); ok {
		var fallback string
		for _, entry := range strings.Split(sf.Tag.Get("msg"), ";") {
			entry = strings.TrimSpace(entry)
			if entry == "" {
				continue
			}
			rule, message, found := strings.Cut(entry, "=")
			if !found {
				fallback = entry
				continue
			}
			if rule == fe.Tag() {
				return message
			}
		}
		if fallback != "" {
			return fallback
		}
	}

	return defaultMessage(fe)
}

func defaultMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", fe.Field())
	case "min":
		return fmt.Sprintf("%s must be at least %s characters", fe.Field(), fe.Param())
	case "email":
		return "Invalid email address"
	case "eqfield":
		return fmt.Sprintf("%s must match %s", fe.Field(), fe.Param())
	default:
		return fmt.Sprintf("%s is invalid", fe.Field())
	}
}
