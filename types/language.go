package types

import (
	"fmt"
	"strings"

	"golang.org/x/text/language"
)

// ParseLanguageCode validates a BCP-47 language tag: a primary subtag of
// 2-3 ASCII letters, followed by zero or more 2-8 character alphanumeric
// subtags separated by hyphens. golang.org/x/text/language already
// implements the full BCP-47 grammar, so it is used as the ground truth
// rather than a hand-rolled regular expression.
func ParseLanguageCode(raw string) (language.Tag, error) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return language.Und, fmt.Errorf("empty language code")
	}
	tag, err := language.Parse(s)
	if err != nil {
		return language.Und, fmt.Errorf("invalid language code %q: %w", raw, err)
	}
	return tag, nil
}

// IsLowerCaseLanguage reports whether a language code is written in all
// lowercase, the recommended GTFS style ("en" not "EN").
func IsLowerCaseLanguage(raw string) bool {
	return raw == strings.ToLower(raw)
}
