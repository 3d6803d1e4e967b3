package auth

import (
	"regexp"

	validation "github.com/go-ozzo/ozzo-validation"
)

var (
	// One non-space local part, an @, and a dotted domain. Deliberately
	// permissive: the point is catching typos at the form level, not full
	// RFC 5322 conformance.
	emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	// Digits plus common separators, at least ten characters total.
	phonePattern = regexp.MustCompile(`^[0-9+\-\s()]{10,}$`)
)

// ValidEmail reports whether email looks like a mailbox address. Pure
// predicate with no side effects, usable for inline field validation.
func ValidEmail(email string) bool {
	return validation.Validate(email,
		validation.Required,
		validation.Match(emailPattern),
	) == nil
}

// ValidPhone reports whether phone is at least ten characters of digits and
// common separators. Pure predicate with no side effects.
func ValidPhone(phone string) bool {
	return validation.Validate(phone,
		validation.Required,
		validation.Match(phonePattern),
	) == nil
}
