package serverutils

import (
	"fmt"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

var validate = validator.New()

func ValidateRequest(req interface{}) error {
	if err := validate.Struct(req); err != nil {
		var errs validator.ValidationErrors
		if ok := isValidationErrors(err, &errs); ok && len(errs) > 0 {
			first := errs[0]
			return NewAppError(fiber.StatusBadRequest,
				fmt.Sprintf("field '%s' failed on '%s' rule", first.Field(), first.Tag()))
		}
		return NewAppError(fiber.StatusBadRequest, err.Error())
	}
	return nil
}

func isValidationErrors(err error, target *validator.ValidationErrors) bool {
	if verrs, ok := err.(validator.ValidationErrors); ok {
		*target = verrs
		return true
	}
	return false
}
