package engine

import (
	"sync"

	"github.com/go-playground/validator/v10"
)

var (
	validatorOnce sync.Once
	validatorInst *validator.Validate
)

// validatorInstance lazily builds the shared validator — a single
// long-lived *validator.Validate per process is the documented usage
// pattern (it caches struct field metadata internally).
func validatorInstance() *validator.Validate {
	validatorOnce.Do(func() {
		validatorInst = validator.New()
	})
	return validatorInst
}

// Validate checks req's `validate` struct tags, translating a failure into
// a CodeInvalidArgument APIError naming every offending field.
func Validate(req any) error {
	if err := validatorInstance().Struct(req); err != nil {
		if verrs, ok := err.(validator.ValidationErrors); ok {
			msg := ""
			for i, fe := range verrs {
				if i > 0 {
					msg += "; "
				}
				msg += fe.Field() + " failed " + fe.Tag()
			}
			return NewAPIError(CodeInvalidArgument, "validation failed: %s", msg)
		}
		return NewAPIError(CodeInvalidArgument, "validation failed: %v", err)
	}
	return nil
}
