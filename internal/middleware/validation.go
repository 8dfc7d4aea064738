package middleware

import (
	stderrors "errors"
	"fmt"
	"net/http"
	"reflect"
	"strings"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"github.com/jwalitptl/passmeter/pkg/errors"
)

// ValidationError represents a validation error
type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

var validationMessages = map[string]string{
	"required": "is required",
	"min":      "is too short",
	"max":      "is too long",
	"uuid":     "must be a UUID",
}

// UseJSONFieldNames makes binding errors name fields by their JSON keys.
func UseJSONFieldNames() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		v.RegisterTagNameFunc(func(fld reflect.StructField) string {
			name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
			if name == "-" || name == "" {
				return fld.Name
			}
			return name
		})
	}
}

// BindingError converts a gin binding failure into a 400 AppError whose
// detail lists each invalid field. A body cut off by SizeLimit becomes a 413.
func BindingError(err error) *errors.AppError {
	var tooLarge *http.MaxBytesError
	if stderrors.As(err, &tooLarge) {
		return errors.TooLarge(fmt.Sprintf("request body exceeds %d bytes", tooLarge.Limit), nil)
	}

	var verrs validator.ValidationErrors
	if !stderrors.As(err, &verrs) {
		return errors.BadRequest("invalid request body", err)
	}

	fields := make([]string, 0, len(verrs))
	for _, e := range ValidationErrors(verrs) {
		fields = append(fields, e.Field+" "+e.Message)
	}
	return errors.BadRequest("invalid request body", stderrors.New(strings.Join(fields, "; ")))
}

// ValidationErrors describes each failed field.
func ValidationErrors(verrs validator.ValidationErrors) []ValidationError {
	out := make([]ValidationError, 0, len(verrs))
	for _, e := range verrs {
		msg, ok := validationMessages[e.Tag()]
		if !ok {
			msg = "failed " + e.Tag() + " validation"
		}
		out = append(out, ValidationError{Field: e.Field(), Message: msg})
	}
	return out
}
