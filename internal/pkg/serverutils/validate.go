package serverutils

import (
	"fmt"

	"ai-chat-be/internal/pkg/apperror"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// ValidateRequest checks struct tags and reports the first offending field as
// a validation-kind error so it surfaces as a 400.
func ValidateRequest(req interface{}) error {
	if err := validate.Struct(req); err != nil {
		if errs, ok := err.(validator.ValidationErrors); ok && len(errs) > 0 {
			first := errs[0]
			return apperror.Wrap(apperror.KindValidation,
				fmt.Sprintf("invalid field %s (%s)", first.Field(), first.Tag()), err)
		}
		return apperror.Wrap(apperror.KindValidation, "invalid request payload", err)
	}
	return nil
}
