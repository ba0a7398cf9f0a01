package validation

import (
	"regexp"

	"github.com/go-playground/validator/v10"
)

// rfcRegexp: 3-4 letras, 6 dígitos de fecha y 3 caracteres de homoclave.
// Los clientes son personas morales (12) o físicas (13).
var rfcRegexp = regexp.MustCompile(`^[A-ZÑ&]{3,4}[0-9]{6}[A-Z0-9]{3}$`)

// RegisterCustomValidations registra las reglas propias del dominio.
func RegisterCustomValidations(v *validator.Validate) error {
	return v.RegisterValidation("rfc", func(fl validator.FieldLevel) bool {
		return rfcRegexp.MatchString(fl.Field().String())
	})
}
