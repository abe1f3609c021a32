package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/hugo-ops/hugo/internal/types"
)

// Validate checks the configuration against its struct tags and returns a
// single error listing every violation.
func Validate(cfg *Config) error {
	validate := validator.New(validator.WithRequiredStructEnabled())

	err := validate.Struct(cfg)
	if err == nil {
		return nil
	}

	var errs validator.ValidationErrors
	if !errors.As(err, &errs) {
		return types.WrapError(types.CONFIG_VALIDATION_FAILED, "configuration validation failed", err)
	}

	problems := make([]string, 0, len(errs))
	for _, fe := range errs {
		problems = append(problems, fmt.Sprintf("%s: failed %q", fe.Namespace(), fe.Tag()))
	}
	return types.NewError(types.CONFIG_VALIDATION_FAILED,
		"invalid configuration: "+strings.Join(problems, "; "))
}
