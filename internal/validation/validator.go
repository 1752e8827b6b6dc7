// Package validation wraps struct-tag validation for service inputs.
// Custom tags cover the domain enums so inputs can declare, e.g.,
// `validate:"omitempty,visibility"`.
package validation

import (
	goerrors "errors"
	"fmt"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"

	"github.com/jinhmyung/GuildQuest-Group3/internal/entities"
	gqerr "github.com/jinhmyung/GuildQuest-Group3/internal/errors"
)

var (
	once     sync.Once
	validate *validator.Validate
)

func instance() *validator.Validate {
	once.Do(func() {
		v := validator.New()
		_ = v.RegisterValidation("visibility", validateVisibility)
		_ = v.RegisterValidation("permission", validatePermission)
		_ = v.RegisterValidation("timedisplay", validateTimeDisplay)
		validate = v
	})
	return validate
}

// Struct validates s against its tags and converts failures into
// invalid_argument errors with per-field messages.
func Struct(s any) error {
	err := instance().Struct(s)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !goerrors.As(err, &fieldErrs) {
		return gqerr.WrapWithCode(err, gqerr.CodeInvalidArgument, "invalid input")
	}

	messages := make([]string, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		messages = append(messages, fieldMessage(fe))
	}
	return gqerr.InvalidArgumentf("invalid input: %s", strings.Join(messages, "; "))
}

func fieldMessage(fe validator.FieldError) string {
	field := strings.ToLower(fe.Field())
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", field)
	case "gte":
		return fmt.Sprintf("%s must be at least %s", field, fe.Param())
	case "gt":
		return fmt.Sprintf("%s must be greater than %s", field, fe.Param())
	case "visibility":
		return fmt.Sprintf("%s must be PUBLIC or PRIVATE", field)
	case "permission":
		return fmt.Sprintf("%s must be VIEW_ONLY or COLLABORATIVE", field)
	case "timedisplay":
		return fmt.Sprintf("%s must be WORLD, LOCAL, or BOTH", field)
	default:
		return fmt.Sprintf("%s is invalid", field)
	}
}

func validateVisibility(fl validator.FieldLevel) bool {
	return entities.Visibility(fl.Field().String()).IsValid()
}

func validatePermission(fl validator.FieldLevel) bool {
	return entities.PermissionLevel(fl.Field().String()).IsValid()
}

func validateTimeDisplay(fl validator.FieldLevel) bool {
	return entities.TimeDisplay(fl.Field().String()).IsValid()
}
