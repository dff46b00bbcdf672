package contam

import (
	"errors"
	"strings"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	enTranslations "github.com/go-playground/validator/v10/translations/en"
)

// ExteriorLeakage. explicit exterior envelope leakage, replaces the airtightness level for exterior surfaces.
type ExteriorLeakage struct {
	FlowRate float64 `validate:"gt=0"`          // m3/h per m2 at DeltaP
	Exponent float64 `validate:"gte=0.5,lte=1"` // flow exponent
	DeltaP   float64 `validate:"gt=0"`          // Pa
}

type Options struct {
	AirtightnessLevel string  `validate:"required,oneof=Tight Average Leaky"`
	ReturnSupplyRatio float64 `validate:"gt=0,lte=1"`
	ExteriorLeakage   *ExteriorLeakage
	TranslateHVAC     bool
}

func DefaultOptions() Options {
	return Options{
		AirtightnessLevel: string(Average),
		ReturnSupplyRatio: 1.0,
		TranslateHVAC:     true,
	}
}

type optionValidator struct {
	validate *validator.Validate
	trans    ut.Translator
}

func newOptionValidator() *optionValidator {
	validate := validator.New()
	english := en.New()
	uni := ut.New(english, english)
	trans, _ := uni.GetTranslator("en")
	_ = enTranslations.RegisterDefaultTranslations(validate, trans)
	return &optionValidator{validate: validate, trans: trans}
}

// Validate. returns one error listing every invalid option in english.
func (v *optionValidator) Validate(opts Options) error {
	err := v.validate.Struct(opts)
	if err == nil {
		return nil
	}
	msgs := make([]string, 0)
	for _, e := range translateError(err, v.trans) {
		msgs = append(msgs, e.Error())
	}
	return errors.New(strings.Join(msgs, "; "))
}

func translateError(err error, trans ut.Translator) []error {
	var validationErrs validator.ValidationErrors
	if !errors.As(err, &validationErrs) {
		return []error{err}
	}
	errs := make([]error, 0, len(validationErrs))
	for _, e := range validationErrs {
		errs = append(errs, errors.New(e.Translate(trans)))
	}
	return errs
}
