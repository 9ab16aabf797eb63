// Package validation builds request validators with English field messages.
package validation

import (
	"errors"
	"reflect"
	"strings"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	en_translations "github.com/go-playground/validator/v10/translations/en"

	appErrors "github.com/noah-isme/classroom-core/pkg/errors"
)

const notBlankTag = "notblank"

// Validator wraps validator.Validate with a translator for readable field errors.
type Validator struct {
	validate   *validator.Validate
	translator ut.Translator
}

// New constructs a Validator with English translations and the custom tags used by request payloads.
func New() *Validator {
	locale := en.New()
	uni := ut.New(locale, locale)
	translator, _ := uni.GetTranslator("en")

	validate := validator.New()
	_ = en_translations.RegisterDefaultTranslations(validate, translator)

	// Use JSON tag names for errors instead of Go struct names.
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	_ = validate.RegisterValidation(notBlankTag, func(fl validator.FieldLevel) bool {
		return strings.TrimSpace(fl.Field().String()) != ""
	})
	_ = validate.RegisterTranslation(notBlankTag, translator,
		func(t ut.Translator) error { return t.Add(notBlankTag, "{0} must not be blank", true) },
		func(t ut.Translator, fe validator.FieldError) string {
			s, _ := t.T(notBlankTag, fe.Field())
			return s
		},
	)

	return &Validator{validate: validate, translator: translator}
}

// Struct validates s and returns an ErrValidation clone carrying translated field errors.
func (v *Validator) Struct(s interface{}, message string) error {
	err := v.validate.Struct(s)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return appErrors.Wrap(err, appErrors.ErrValidation.Code, message)
	}
	fields := make([]appErrors.FieldError, 0, len(verrs))
	for _, fe := range verrs {
		fields = append(fields, appErrors.FieldError{Field: fe.Field(), Message: fe.Translate(v.translator)})
	}
	out := appErrors.WithFields(appErrors.ErrValidation, fields)
	out.Message = message
	out.Err = err
	return out
}
