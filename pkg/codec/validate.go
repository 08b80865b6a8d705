package codec

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

// nameTag validates data names: a lowercase letter followed by up to 63
// lowercase letters, digits, '_', '.' or '-'.
const nameTag = "dataname"

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	_ = v.RegisterValidation(nameTag, validDataName)
	return v
}

func validDataName(fl validator.FieldLevel) bool {
	name := fl.Field().String()
	if name == "" || len(name) > 64 || name[0] < 'a' || name[0] > 'z' {
		return false
	}
	for _, c := range name[1:] {
		switch {
		case c >= 'a' && c <= 'z', c >= '0' && c <= '9', c == '_', c == '.', c == '-':
		default:
			return false
		}
	}
	return true
}

// validateValue checks the struct tags of a decoded value. Values that are
// not structs, or nil pointers, carry no rules and pass.
func (r *Registry) validateValue(name string, v any) error {
	err := r.validate.Struct(v)
	var invalid *validator.InvalidValidationError
	if err == nil || errors.As(err, &invalid) {
		return nil
	}
	return fmt.Errorf("%w: %s: %s", ErrInvalidValue, name, DescribeValidation(err))
}

// DescribeValidation flattens validator errors into "field: rule" pairs.
// Other errors are returned as their message.
func DescribeValidation(err error) string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err.Error()
	}
	parts := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		rule := fe.Tag()
		if fe.Param() != "" {
			rule += "=" + fe.Param()
		}
		parts = append(parts, fmt.Sprintf("%s: %s", strings.ToLower(fe.Namespace()), rule))
	}
	return strings.Join(parts, ", ")
}
