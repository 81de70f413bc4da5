package validate

import (
	"reflect"
	"sync"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

var (
	once     sync.Once
	validate *validator.Validate
)

// Get returns the shared validator with the storefront's custom rules registered.
func Get() *validator.Validate {
	once.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())
		validate.RegisterCustomTypeFunc(DecimalValue, decimal.Decimal{})
		_ = validate.RegisterValidation("price", ValidatePrice)
	})
	return validate
}

// ValidatePrice accepts decimals and decimal strings that are zero or positive.
func ValidatePrice(fl validator.FieldLevel) bool {
	switch v := fl.Field().Interface().(type) {
	case string:
		d, err := decimal.NewFromString(v)
		if err != nil {
			return false
		}
		return !d.IsNegative()
	case float64:
		return v >= 0
	default:
		return false
	}
}

// DecimalValue exposes decimals to the validator as float64 so numeric tags apply.
func DecimalValue(v reflect.Value) interface{} {
	n, ok := v.Interface().(decimal.Decimal)
	if !ok {
		return nil
	}
	f, _ := n.Float64()
	return f
}
