package server

import (
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"github.com/dmssspace/na-predele--crm-sub000/internal/availability"
)

// RegisterValidators adds custom binding tags to gin's validator engine.
// "clock" accepts strict "HH:MM" wall-clock strings.
func RegisterValidators() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		v.RegisterValidation("clock", validClock)
	}
}

func validClock(fl validator.FieldLevel) bool {
	_, err := availability.ParseClock(fl.Field().String())
	return err == nil
}
