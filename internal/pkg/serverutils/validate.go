package serverutils

import (
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"

	"articlegen-be/pkg/apperror"
)

var validate = validator.New()

// ValidateRequest runs struct validation on an already-parsed request.
// Violations come back as one CodeValidationFailed error listing the fields.
func ValidateRequest(req interface{}) error {
	if err := validate.Struct(req); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			fields := make([]string, len(verrs))
			for i, fe := range verrs {
				fields[i] = fe.Field() + " (" + fe.Tag() + ")"
			}
			return apperror.Newf(apperror.CodeValidationFailed, "invalid fields: %s", strings.Join(fields, ", "))
		}
		return apperror.Wrap(apperror.CodeValidationFailed, "invalid request", err)
	}

	return nil
}
