// Package validation checks request payloads against their `validate` struct tags
// and reports localized, per-field messages.
package validation

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"catalogue/internal/i18n"

	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	"github.com/go-playground/validator/v10/non-standard/validators"
	en_translations "github.com/go-playground/validator/v10/translations/en"
	ru_translations "github.com/go-playground/validator/v10/translations/ru"
)

// Result is the outcome of validating one payload.
type Result struct {
	Errors []string
}

// OK reports whether the payload satisfied every constraint.
func (r Result) OK() bool {
	return len(r.Errors) == 0
}

type customMessage struct {
	tag  string
	text map[string]string
}

// Messages for tags that validator has no built-in translation for, and for
// tags whose built-in wording reads poorly for free text.
var customMessages = []customMessage{
	{
		tag: "notblank",
		text: map[string]string{
			"en": "{0} must not be blank",
			"ru": "{0} не может быть пустым",
		},
	},
	{
		tag: "required",
		text: map[string]string{
			"en": "{0} must be specified",
			"ru": "{0} должно быть указано",
		},
	},
}

var defaultTranslations = map[string]func(*validator.Validate, ut.Translator) error{
	"en": en_translations.RegisterDefaultTranslations,
	"ru": ru_translations.RegisterDefaultTranslations,
}

// Validator validates payloads and translates failures with a message bundle.
type Validator struct {
	validate *validator.Validate
	bundle   *i18n.Bundle
}

// New creates a Validator whose messages are available in every bundle locale.
func New(bundle *i18n.Bundle) (*Validator, error) {
	validate := validator.New(validator.WithRequiredStructEnabled())
	validate.RegisterTagNameFunc(jsonFieldName)

	if err := validate.RegisterValidation("notblank", validators.NotBlank); err != nil {
		return nil, fmt.Errorf("failed to register notblank validation: %w", err)
	}

	for _, locale := range bundle.Locales() {
		trans := bundle.Translator(locale)

		register, ok := defaultTranslations[locale]
		if !ok {
			return nil, fmt.Errorf("no validation translations for locale %q", locale)
		}
		if err := register(validate, trans); err != nil {
			return nil, fmt.Errorf("failed to register %s validation translations: %w", locale, err)
		}

		for _, m := range customMessages {
			if err := registerMessage(validate, trans, m.tag, m.text[locale]); err != nil {
				return nil, fmt.Errorf("failed to register %s message for %q: %w", locale, m.tag, err)
			}
		}
	}

	return &Validator{validate: validate, bundle: bundle}, nil
}

// Validate checks payload and returns one message per failed field constraint,
// in field declaration order.
func (v *Validator) Validate(locale string, payload any) (Result, error) {
	err := v.validate.Struct(payload)
	if err == nil {
		return Result{}, nil
	}

	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return Result{}, fmt.Errorf("failed to validate payload: %w", err)
	}

	trans := v.bundle.Translator(locale)
	messages := make([]string, 0, len(validationErrors))
	for _, fe := range validationErrors {
		messages = append(messages, fe.Translate(trans))
	}
	return Result{Errors: messages}, nil
}

func registerMessage(validate *validator.Validate, trans ut.Translator, tag, text string) error {
	return validate.RegisterTranslation(tag, trans,
		func(ut ut.Translator) error {
			return ut.Add(tag, text, true)
		},
		func(ut ut.Translator, fe validator.FieldError) string {
			msg, err := ut.T(fe.Tag(), fe.Field())
			if err != nil {
				return fe.Error()
			}
			return msg
		},
	)
}

func jsonFieldName(field reflect.StructField) string {
	name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
	if name == "-" {
		return ""
	}
	if name == "" {
		return field.Name
	}
	return name
}
