package validation

import (
	"reflect"
	"strings"
	"sync"
	"time"

	"github.com/go-playground/validator/v10"
)

const (
	DateLayout = "2006-01-02"
	TimeLayout = "15:04"
)

var (
	validate     *validator.Validate
	validateOnce sync.Once
)

// Validator returns the shared validator with the document tags registered.
// Field names in errors follow the json tag of the struct field.
func Validator() *validator.Validate {
	validateOnce.Do(func() {
		v := validator.New(validator.WithRequiredStructEnabled())

		v.RegisterTagNameFunc(func(fld reflect.StructField) string {
			for _, tag := range []string{"json", "query", "param"} {
				name := strings.SplitN(fld.Tag.Get(tag), ",", 2)[0]
				if name != "" && name != "-" {
					return name
				}
			}
			return fld.Name
		})

		register := func(tag string, check func(string) bool) {
			_ = v.RegisterValidation(tag, func(fl validator.FieldLevel) bool {
				return check(fl.Field().String())
			})
		}

		register("cpf", IsValidCPF)
		register("cnpj", IsValidCNPJ)
		register("cpfcnpj", IsValidCPFOrCNPJ)
		register("cep", IsValidCEP)
		register("phone_br", IsValidPhone)
		register("date_ymd", isDate)
		register("time_hm", isClock)

		validate = v
	})
	return validate
}

// ValidateStruct runs the tag rules on s.
func ValidateStruct(s any) error {
	return Validator().Struct(s)
}

func isDate(s string) bool {
	_, err := time.Parse(DateLayout, s)
	return err == nil
}

func isClock(s string) bool {
	_, err := time.Parse(TimeLayout, s)
	return err == nil
}
