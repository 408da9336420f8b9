package validators

import (
	"reflect"
	"strings"
	"time"

	"meety/cmd/internal/domain/entity"
	"meety/cmd/internal/schedule"

	"github.com/go-playground/validator/v10"
)

// New returns a validator with the meeting tags registered. Field names in
// errors follow the json tags so they match what callers sent.
func New() *validator.Validate {
	validate := validator.New()
	validate.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return f.Name
		}
		return name
	})
	_ = validate.RegisterValidation("isodate", IsIsoDate)
	_ = validate.RegisterValidation("clock", IsClock)
	_ = validate.RegisterValidation("meetingstatus", IsMeetingStatus)
	return validate
}

func IsIsoDate(fl validator.FieldLevel) bool {
	_, err := time.Parse(time.DateOnly, fl.Field().String())
	return err == nil
}

func IsClock(fl validator.FieldLevel) bool {
	_, ok := schedule.NormalizeTime(fl.Field().String())
	return ok
}

func IsMeetingStatus(fl validator.FieldLevel) bool {
	_, err := entity.ParseStatus(fl.Field().String())
	return err == nil
}
