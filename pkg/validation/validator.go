package validation

import (
	"encoding/json"
	"errors"
	"reflect"
	"strings"
	"time"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

// DOBLayout is the accepted input representation for dates of birth.
const DOBLayout = "02/01/2006"

// Init configures the global validator used by Gin's binding.
// - Uses JSON tag names in errors.
// - Registers the dob tag for DD/MM/YYYY date strings.
func Init() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		v.RegisterTagNameFunc(func(fld reflect.StructField) string {
			name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
			if name == "-" {
				return ""
			}
			return name
		})
		_ = v.RegisterValidation("dob", func(fl validator.FieldLevel) bool {
			_, err := time.Parse(DOBLayout, fl.Field().String())
			return err == nil
		})
	}
}

// ToMessage flattens a binding error into the single error string the API
// returns. Missing mandatory fields keep the historical wording.
func ToMessage(err error) string {
	if err == nil {
		return ""
	}

	var se *json.SyntaxError
	var ute *json.UnmarshalTypeError
	if errors.As(err, &se) || errors.As(err, &ute) {
		return "Invalid request payload"
	}

	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		for _, fe := range verrs {
			switch fe.Tag() {
			case "required":
				return "One or more mandatory fields are empty"
			case "dob":
				return "dateOfBirth must be in DD/MM/YYYY format"
			case "email":
				return fe.Field() + " must be a valid email"
			}
		}
		return "One or more fields are invalid"
	}

	return "Invalid request payload"
}
