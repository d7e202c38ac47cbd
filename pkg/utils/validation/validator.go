package validation

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	// report fields by their JSON name
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// check runs the form's validate tags. Fields that already failed to decode
// keep only their type error.
func (r *reader) check(form any) {
	err := validate.Struct(form)
	if err == nil {
		return
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		r.errs.Add("_", err.Error())
		return
	}

	for _, fe := range verrs {
		if r.errs.Has(fe.Field()) {
			continue
		}
		r.errs.Add(fe.Field(), message(fe))
	}
}

func message(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "Required"
	case "min":
		if fe.Kind() == reflect.String {
			return "Must not be empty"
		}
		return fmt.Sprintf("Number must be greater than or equal to %s", fe.Param())
	case "email":
		return "Invalid email"
	case "oneof":
		options := strings.Fields(fe.Param())
		for i, o := range options {
			options[i] = "'" + o + "'"
		}
		return "Invalid enum value. Expected " + strings.Join(options, " | ")
	case "eq":
		if fe.Field() == "consent" {
			return "You must agree to be contacted"
		}
		return fmt.Sprintf("Must equal %s", fe.Param())
	default:
		return "Invalid value"
	}
}
