package handler

import (
	"errors"
	"reflect"
	"strconv"
	"strings"

	"github.com/segyhp/debt-ledger/internal/domain"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

// NewValidator returns a validator that understands decimal amounts.
// Decimals are validated through their string form with the decimal_gt and
// decimal_gte tags and their precision with decimal_places; an invalid
// NullDecimal or an absent OptionalDecimal counts as empty.
func NewValidator() *validator.Validate {
	v := validator.New()

	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	v.RegisterCustomTypeFunc(func(field reflect.Value) interface{} {
		if d, ok := field.Interface().(decimal.Decimal); ok {
			return d.String()
		}
		return nil
	}, decimal.Decimal{})

	v.RegisterCustomTypeFunc(func(field reflect.Value) interface{} {
		if d, ok := field.Interface().(decimal.NullDecimal); ok && d.Valid {
			return d.Decimal.String()
		}
		return nil
	}, decimal.NullDecimal{})

	v.RegisterCustomTypeFunc(func(field reflect.Value) interface{} {
		if o, ok := field.Interface().(domain.OptionalDecimal); ok && o.Set && o.Value.Valid {
			return o.Value.Decimal.String()
		}
		return nil
	}, domain.OptionalDecimal{})

	_ = v.RegisterValidation("decimal_gt", func(fl validator.FieldLevel) bool {
		cmp, ok := compareDecimal(fl)
		return ok && cmp > 0
	})
	_ = v.RegisterValidation("decimal_gte", func(fl validator.FieldLevel) bool {
		cmp, ok := compareDecimal(fl)
		return ok && cmp >= 0
	})
	_ = v.RegisterValidation("decimal_places", func(fl validator.FieldLevel) bool {
		value, err := decimal.NewFromString(fl.Field().String())
		if err != nil {
			return false
		}
		places, err := strconv.ParseInt(fl.Param(), 10, 32)
		if err != nil {
			return false
		}
		return value.Equal(value.Round(int32(places)))
	})

	return v
}

func compareDecimal(fl validator.FieldLevel) (int, bool) {
	value, err := decimal.NewFromString(fl.Field().String())
	if err != nil {
		return 0, false
	}
	param, err := decimal.NewFromString(fl.Param())
	if err != nil {
		return 0, false
	}
	return value.Cmp(param), true
}

// describeValidation turns validator errors into one readable line
func describeValidation(err error) string {
	var ve validator.ValidationErrors
	if !errors.As(err, &ve) {
		return err.Error()
	}

	msgs := make([]string, 0, len(ve))
	for _, e := range ve {
		field := e.Field()
		switch e.Tag() {
		case "required":
			msgs = append(msgs, field+" is required")
		case "gt", "decimal_gt":
			msgs = append(msgs, field+" must be greater than "+e.Param())
		case "decimal_gte":
			msgs = append(msgs, field+" must be greater than or equal to "+e.Param())
		case "lte":
			msgs = append(msgs, field+" must be at most "+e.Param())
		case "decimal_places":
			msgs = append(msgs, field+" must have at most "+e.Param()+" decimal places")
		case "max":
			msgs = append(msgs, field+" must be at most "+e.Param()+" characters")
		case "oneof":
			msgs = append(msgs, field+" must be one of "+e.Param())
		default:
			msgs = append(msgs, field+" failed "+e.Tag()+" validation")
		}
	}
	return strings.Join(msgs, "; ")
}
