package validation

import (
	"regexp"

	"github.com/go-playground/validator/v10"
)

func Validate(data interface{}) error {
	validate := validator.New(validator.WithRequiredStructEnabled())
	return validate.Struct(data)
}

var cepRegex = regexp.MustCompile(`^\d{5}-?\d{3}$`)

func IsValidCEP(cep string) bool {
	return cepRegex.MatchString(cep)
}

func IsValidLatLon(lat, lon float64) bool {
	return lat >= -90 && lat <= 90 && lon >= -180 && lon <= 180
}

func IsValidTheme(theme string) bool {
	return theme == "light" || theme == "dark"
}
