package types

import (
	"fmt"
	"strings"
)

// ValidatePhone performs a permissive structural check of a phone number:
// only digits and the separators "+-(). " are allowed, and at least two
// digits must be present. This intentionally does not validate numbering
// plans; country-aware strictness is out of scope for the core (§6 notes
// country code "ZZ"/empty disables phone validation entirely).
func ValidatePhone(raw string) error {
	s := strings.TrimSpace(raw)
	digits := 0
	for _, r := range s {
		switch {
		case r >= '0' && r <= '9':
			digits++
		case r == '+' || r == '-' || r == '(' || r == ')' || r == '.' || r == ' ':
			// allowed separator
		default:
			return fmt.Errorf("invalid character %q in phone number %q", r, raw)
		}
	}
	if digits < 2 {
		return fmt.Errorf("phone number %q has too few digits", raw)
	}
	return nil
}
