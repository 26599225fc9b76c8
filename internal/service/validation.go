package service

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/iliyamo/banquet-booking/internal/repository"
)

// FieldError describes one rejected input field.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (f FieldError) Error() string { return fmt.Sprintf("%s: %s", f.Field, f.Message) }

// ValidationError lists every field that failed to parse or validate.  It
// matches repository.ErrValidation under errors.Is.
type ValidationError struct {
	Fields []FieldError
}

func (v *ValidationError) Error() string {
	msgs := make([]string, 0, len(v.Fields))
	for _, f := range v.Fields {
		msgs = append(msgs, f.Error())
	}
	return fmt.Sprintf("validation failed: %s", strings.Join(msgs, "; "))
}

func (v *ValidationError) Unwrap() error { return repository.ErrValidation }

func (v *ValidationError) add(field, msg string) { v.Fields = append(v.Fields, FieldError{field, msg}) }

func (v *ValidationError) has(field string) bool {
	for _, f := range v.Fields {
		if f.Field == field {
			return true
		}
	}
	return false
}

func (v *ValidationError) orNil() error {
	if len(v.Fields) == 0 {
		return nil
	}
	return v
}

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return f.Name
		}
		return name
	})
	return v
}

// check runs struct validation and converts the result into a
// ValidationError.
func check(v *validator.Validate, in any) *ValidationError {
	out := &ValidationError{}
	err := v.Struct(in)
	if err == nil {
		return out
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		out.add("input", err.Error())
		return out
	}
	for _, fe := range verrs {
		out.add(fe.Field(), message(fe))
	}
	return out
}

func message(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "max":
		return fmt.Sprintf("must be at most %s characters", fe.Param())
	case "min":
		return fmt.Sprintf("must be at least %s characters", fe.Param())
	case "datetime":
		return "must be a date formatted YYYY-MM-DD"
	case "number":
		return "must be a whole number"
	case "email":
		return "must be a valid email address"
	}
	return fmt.Sprintf("failed %s validation", fe.Tag())
}

// trim removes surrounding whitespace from every string field of the struct
// pointed to by p.
func trim(p any) {
	rv := reflect.ValueOf(p).Elem()
	for i := 0; i < rv.NumField(); i++ {
		f := rv.Field(i)
		if f.Kind() == reflect.String && f.CanSet() {
			f.SetString(strings.TrimSpace(f.String()))
		}
	}
}
