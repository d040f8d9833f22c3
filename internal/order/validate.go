package order

import (
	"regexp"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/go-playground/validator/v10"
)

// Ghana mobile numbers: network prefix plus seven digits.
var ghPhoneRe = regexp.MustCompile(`^(024|020|054|055|059|027|057|026|023)\d{7}$`)

func ValidPhone(phone string) bool {
	return ghPhoneRe.MatchString(strings.TrimSpace(phone))
}

// RegisterValidators adds the checkout tags used by the binding structs:
// ghphone and trimmed_min=N.
func RegisterValidators(v *validator.Validate) error {
	if err := v.RegisterValidation("ghphone", func(fl validator.FieldLevel) bool {
		return ValidPhone(fl.Field().String())
	}); err != nil {
		return err
	}
	return v.RegisterValidation("trimmed_min", func(fl validator.FieldLevel) bool {
		n, err := strconv.Atoi(fl.Param())
		if err != nil {
			return false
		}
		return utf8.RuneCountInString(strings.TrimSpace(fl.Field().String())) >= n
	})
}
