package validation

import (
	"github.com/go-playground/validator/v10"

	"github.com/sumu9897/LibraryNext/model"
)

type Validator struct {
	v *validator.Validate
}

func New() *Validator {
	return &Validator{v: Base()}
}

// Base builds a validator with the domain rules registered. Controllers and
// the echo binding share the same instance shape.
func Base() *validator.Validate {
	v := validator.New()
	_ = v.RegisterValidation("genre", func(fl validator.FieldLevel) bool {
		_, ok := model.ParseGenre(fl.Field().String())
		return ok
	})
	return v
}

func (v *Validator) Validate(i interface{}) error {
	return v.v.Struct(i)
}
