package validator

import (
	"reflect"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	enTranslations "github.com/go-playground/validator/v10/translations/en"
)

type Validator struct {
	*validator.Validate

	trans ut.Translator
}

func New() *Validator {
	vd := validator.New()
	vd.SetTagName("vd")

	// prefer the label tag in messages
	vd.RegisterTagNameFunc(func(field reflect.StructField) string {
		label := field.Tag.Get("label")
		if label != "" {
			return label
		}
		return field.Name
	})

	enLocale := en.New()
	uni := ut.New(enLocale, enLocale)
	trans, _ := uni.GetTranslator("en")
	_ = enTranslations.RegisterDefaultTranslations(vd, trans)

	return &Validator{
		Validate: vd,
		trans:    trans,
	}
}

var std = New()

// Test validates value with the package-level validator and returns the
// first violation as a translated error.
func Test(value any) error {
	return std.Test(value)
}

func (v *Validator) Test(value any) error {
	err := v.Struct(value)
	if err == nil {
		return nil
	}

	if errs, ok := err.(validator.ValidationErrors); ok && len(errs) > 0 {
		return &fieldError{message: errs[0].Translate(v.trans)}
	}
	return err
}

type fieldError struct {
	message string
}

func (e *fieldError) Error() string {
	return e.message
}
