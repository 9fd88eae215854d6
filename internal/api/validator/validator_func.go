package validator

import (
	"regexp"

	"github.com/go-playground/validator/v10"
)

const (
	msisdnRegex = `^254\d{9}$`
)

const (
	MSISDNTag = "msisdn"
)

var valid = map[string]func(fl validator.FieldLevel) bool{
	MSISDNTag: ValidateMSISDN,
}

// ValidateMSISDN accepts Kenyan numbers in international format without a
// leading plus, for example 254712345678.
func ValidateMSISDN(fl validator.FieldLevel) bool {
	phone := fl.Field().String()
	return regexp.MustCompile(msisdnRegex).MatchString(phone)
}
