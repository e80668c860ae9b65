// Package i18n resolves user-facing messages by locale.
package i18n

import (
	"fmt"

	"github.com/go-playground/locales"
	"github.com/go-playground/locales/en"
	"github.com/go-playground/locales/ru"
	ut "github.com/go-playground/universal-translator"
	"golang.org/x/text/language"
)

var supported = map[string]func() locales.Translator{
	"en": en.New,
	"ru": ru.New,
}

// Supported reports whether locale has a message catalog.
func Supported(locale string) bool {
	_, ok := supported[locale]
	return ok
}

// Bundle holds one translator per supported locale.
type Bundle struct {
	uni           *ut.UniversalTranslator
	defaultLocale string
	locales       []string // defaultLocale first
	matcher       language.Matcher
}

// NewBundle builds the message bundle. Lookups for unsupported locales use defaultLocale.
func NewBundle(defaultLocale string) (*Bundle, error) {
	newDefault, ok := supported[defaultLocale]
	if !ok {
		return nil, fmt.Errorf("unsupported default locale %q", defaultLocale)
	}

	localeList := []string{defaultLocale}
	for _, loc := range []string{"en", "ru"} {
		if loc != defaultLocale {
			localeList = append(localeList, loc)
		}
	}

	translators := make([]locales.Translator, 0, len(localeList))
	tags := make([]language.Tag, 0, len(localeList))
	for _, loc := range localeList {
		translators = append(translators, supported[loc]())
		tags = append(tags, language.Make(loc))
	}

	b := &Bundle{
		uni:           ut.New(newDefault(), translators...),
		defaultLocale: defaultLocale,
		locales:       localeList,
		matcher:       language.NewMatcher(tags),
	}

	for _, loc := range localeList {
		trans := b.Translator(loc)
		for key, text := range catalog[loc] {
			if err := trans.Add(key, text, false); err != nil {
				return nil, fmt.Errorf("failed to add %s message %q: %w", loc, key, err)
			}
		}
	}
	return b, nil
}

// DefaultLocale returns the fallback locale.
func (b *Bundle) DefaultLocale() string {
	return b.defaultLocale
}

// Locales returns the supported locales, default first.
func (b *Bundle) Locales() []string {
	return append([]string(nil), b.locales...)
}

// Translator returns the translator for locale, or the default one.
func (b *Bundle) Translator(locale string) ut.Translator {
	trans, _ := b.uni.GetTranslator(locale)
	return trans
}

// Lookup returns the message for key and whether it exists.
func (b *Bundle) Lookup(locale, key string, params ...string) (string, bool) {
	text, err := b.Translator(locale).T(key, params...)
	if err != nil {
		return "", false
	}
	return text, true
}

// Message returns the message for key, or the key itself when it is unknown.
func (b *Bundle) Message(locale, key string, params ...string) string {
	if text, ok := b.Lookup(locale, key, params...); ok {
		return text
	}
	return key
}

// Match picks the best supported locale for an Accept-Language header value.
func (b *Bundle) Match(acceptLanguage string) string {
	if acceptLanguage == "" {
		return b.defaultLocale
	}
	tags, _, err := language.ParseAcceptLanguage(acceptLanguage)
	if err != nil || len(tags) == 0 {
		return b.defaultLocale
	}
	_, idx, confidence := b.matcher.Match(tags...)
	if confidence == language.No {
		return b.defaultLocale
	}
	return b.locales[idx]
}
