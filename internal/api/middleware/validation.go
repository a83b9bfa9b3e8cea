package middleware

import (
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"github.com/faizm10/DressToImpress-sub000/internal/rental"
)

// RegisterValidators adds the rental vocabularies to gin's validator:
// rental_status, student_status, attire_status, attire_size, date_only.
func RegisterValidators() error {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return nil
	}

	rules := map[string]func(string) bool{
		"rental_status": func(s string) bool {
			_, err := rental.ParseStatus(s)
			return err == nil
		},
		"student_status": func(s string) bool {
			_, err := rental.ParseStudentStatus(s)
			return err == nil
		},
		"attire_status": func(s string) bool {
			_, err := rental.ParseAttireStatus(s)
			return err == nil
		},
		"attire_size": func(s string) bool {
			_, err := rental.ParseSize(s)
			return err == nil
		},
		"date_only": func(s string) bool {
			_, err := rental.ParseDate(s)
			return err == nil
		},
	}
	for tag, fn := range rules {
		check := fn
		if err := v.RegisterValidation(tag, func(fl validator.FieldLevel) bool {
			return check(fl.Field().String())
		}); err != nil {
			return err
		}
	}
	return nil
}
