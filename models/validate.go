package models

import (
	"errors"
	"reflect"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return f.Name
		}
		return name
	})
	v.RegisterCustomTypeFunc(func(field reflect.Value) interface{} {
		d, ok := field.Interface().(decimal.Decimal)
		if !ok {
			return nil
		}
		f, _ := d.Float64()
		return f
	}, decimal.Decimal{})
	_ = v.RegisterValidation("weight", func(fl validator.FieldLevel) bool {
		_, _, err := ParseWeight(fl.Field().String())
		return err == nil
	})
	return v
}

// validateStruct runs the struct tags and reports the first failure as a ValidationError.
func validateStruct(s interface{}) error {
	err := validate.Struct(s)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return &ValidationError{Reason: err.Error()}
	}
	fe := verrs[0]
	return &ValidationError{Field: fieldPath(fe.Namespace()), Reason: describe(fe)}
}

func fieldPath(ns string) string {
	if i := strings.Index(ns, "."); i >= 0 {
		return ns[i+1:]
	}
	return ns
}

func describe(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "min":
		return "needs at least " + fe.Param() + " entries"
	case "max":
		return "is longer than " + fe.Param() + " characters"
	case "gte":
		return "must not be negative"
	case "datetime":
		return "must be a date in YYYY-MM-DD form"
	case "weight":
		return "must be a number optionally followed by " + strings.Join(WeightUnits, " or ")
	default:
		return "failed " + fe.Tag()
	}
}

func trim(s string) string { return strings.TrimSpace(s) }

func quote(s string) string { return strconv.Quote(s) }
