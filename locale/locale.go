// Package locale resolves Telegram language codes onto translation
// catalogs. Translators are plain values threaded through call signatures;
// there is no process-wide language state.
package locale

import (
	"golang.org/x/text/language"
)

// Translator maps the bot's English source strings onto one of the
// supported catalogs. Untranslated strings pass through unchanged.
type Translator func(text string) string

var supported = []language.Tag{
	language.English, // fallback
	language.Ukrainian,
	language.Russian,
	language.BrazilianPortuguese,
}

var matcher = language.NewMatcher(supported)

var catalogs = map[language.Tag]map[string]string{
	language.Ukrainian:           ukrainian,
	language.Russian:             russian,
	language.BrazilianPortuguese: portuguese,
}

// ForLanguage resolves a Telegram language_code ("uk", "ru-RU", "pt-br")
// onto a Translator. Empty and unsupported codes fall back to English.
func ForLanguage(code string) Translator {
	if code == "" {
		return passthrough
	}

	_, index, confidence := matcher.Match(language.Make(code))
	if confidence == language.No {
		return passthrough
	}

	catalog, ok := catalogs[supported[index]]
	if !ok {
		return passthrough
	}

	return func(text string) string {
		if translated, ok := catalog[text]; ok {
			return translated
		}
		return text
	}
}

func passthrough(text string) string { return text }
