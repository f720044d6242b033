package types

import (
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"github.com/simmerhub/backend/internal/models"
)

// RegisterValidators installs custom validation rules on gin's binding
// engine. Safe to call more than once.
func RegisterValidators() error {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return nil
	}
	return v.RegisterValidation("difficulty", validDifficulty)
}

func validDifficulty(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	for _, d := range models.Difficulties {
		if value == d {
			return true
		}
	}
	return false
}
