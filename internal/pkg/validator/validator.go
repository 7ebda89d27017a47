package validator

import (
	"strconv"

	"github.com/go-playground/validator/v10"
)

var validate *validator.Validate

func init() {
	validate = validator.New()
	_ = validate.RegisterValidation("departure", validateDeparture)
}

// Validate - валидация структуры
func Validate(s interface{}) error {
	return validate.Struct(s)
}

// GetValidator - получить валидатор для кастомной конфигурации
func GetValidator() *validator.Validate {
	return validate
}

// validateDeparture accepts "now" or a unix timestamp in seconds.
func validateDeparture(fl validator.FieldLevel) bool {
	v := fl.Field().String()
	if v == "" || v == "now" {
		return true
	}
	ts, err := strconv.ParseInt(v, 10, 64)
	return err == nil && ts > 0
}
