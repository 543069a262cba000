// Package validation builds the validator used for every record and payload,
// including the domain tags for categories, activities, emails and years.
package validation

import (
	"errors"
	"fmt"
	"reflect"
	"regexp"
	"slices"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	"catalogo/internal/models"
)

var emailPattern = regexp.MustCompile(`^\w+([.-]?\w+)*@\w+([.-]?\w+)*(\.\w{2,3})+$`)

// New returns a validator with the domain tags registered and JSON field names in errors.
func New() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())

	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		if name == "" {
			return f.Name
		}
		return name
	})

	// Registration only fails on an empty tag or nil func.
	_ = v.RegisterValidation("product_category", oneOf(models.ProductCategories))
	_ = v.RegisterValidation("volunteer_activity", oneOf(models.VolunteerActivities))
	_ = v.RegisterValidation("volunteer_email", func(fl validator.FieldLevel) bool {
		return emailPattern.MatchString(fl.Field().String())
	})
	_ = v.RegisterValidation("past_year", func(fl validator.FieldLevel) bool {
		year := fl.Field().Int()
		return year > 0 && year <= int64(time.Now().Year())
	})

	return v
}

func oneOf(values []string) validator.Func {
	return func(fl validator.FieldLevel) bool {
		return slices.Contains(values, fl.Field().String())
	}
}

// Describe turns a validator error into per-field messages keyed by JSON field name.
// It returns nil when err is not a validation error.
func Describe(err error) map[string]string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return nil
	}
	out := make(map[string]string, len(verrs))
	for _, e := range verrs {
		out[e.Field()] = message(e)
	}
	return out
}

func message(e validator.FieldError) string {
	switch e.Tag() {
	case "required":
		return fmt.Sprintf("El campo '%s' es obligatorio", e.Field())
	case "min":
		return fmt.Sprintf("El campo '%s' debe tener al menos %s caracteres", e.Field(), e.Param())
	case "max":
		return fmt.Sprintf("El campo '%s' no puede exceder %s caracteres", e.Field(), e.Param())
	case "gte":
		return fmt.Sprintf("El campo '%s' no puede ser negativo", e.Field())
	case "product_category":
		return "La categoría seleccionada no es válida"
	case "volunteer_activity":
		return "La actividad seleccionada no es válida"
	case "volunteer_email":
		return "Por favor ingresa un email válido"
	case "past_year":
		return "El año de publicación debe ser válido"
	default:
		return fmt.Sprintf("Field '%s' failed on the '%s' tag", e.Field(), e.Tag())
	}
}
