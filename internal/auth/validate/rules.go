package validate

import (
	"errors"
	"fmt"
	"regexp"
	"unicode/utf8"

	"github.com/gatehouseauth/gatehouse/internal/auth/domain"
)

var (
	errPasswordType   = errors.New("Password must be of type string")
	errUsernameType   = errors.New("Username must be of type string")
	errUsernameLength = errors.New("Username must have a length greater than 3 characters")
)

// minUsernameLength is a base constraint that applies whenever a
// username participates in a flow, independent of any configured rule.
const minUsernameLength = 3

// Password checks the candidate against the configured password rules
// in the historical order: type, maxLength, minLength, pattern.
//
// The maxLength comparison is `length < value` — the same direction as
// minLength — so in practice it enforces a second minimum rather than
// a maximum. This matches the behaviour clients have always seen and
// is kept until a product decision says otherwise; see
// TestPasswordMaxLengthActsAsMinimum.
func Password(v any, rules *domain.PasswordRules) (string, error) {
	password, ok := String(v)
	if !ok {
		return "", errPasswordType
	}

	if rules == nil {
		return password, nil
	}

	if r := rules.MaxLength; r != nil && r.Value != 0 {
		if utf8.RuneCountInString(password) < r.Value {
			return "", lengthViolation(r, "Password must have a maximum of %d characters")
		}
	}
	if r := rules.MinLength; r != nil && r.Value != 0 {
		if utf8.RuneCountInString(password) < r.Value {
			return "", lengthViolation(r, "Password must have a minimum of %d characters")
		}
	}
	if r := rules.Pattern; r != nil && r.Value != "" {
		if !matches(r.Value, password) {
			return "", patternViolation(r, "Password must match %s")
		}
	}

	return password, nil
}

// Username checks the candidate's type, the base minimum length and
// the optional configured pattern rule, in that order.
func Username(v any, rules *domain.UsernameRules) (string, error) {
	username, ok := String(v)
	if !ok {
		return "", errUsernameType
	}
	if utf8.RuneCountInString(username) < minUsernameLength {
		return "", errUsernameLength
	}

	if rules != nil {
		if r := rules.Pattern; r != nil && r.Value != "" {
			if !matches(r.Value, username) {
				return "", patternViolation(r, "Username must match %s")
			}
		}
	}

	return username, nil
}

// Name checks a first/last name field is a non-empty string. field is
// the user-facing field label ("First Name", "Last Name").
func Name(v any, field string) (string, error) {
	name, ok := String(v)
	if !ok || name == "" {
		return "", fmt.Errorf("%s must be a non-empty string", field)
	}
	return name, nil
}

// matches reports whether the candidate satisfies the pattern. The
// pattern is unanchored, as it always has been: any substring match
// passes. A pattern that fails to compile never matches, so a broken
// rule rejects rather than silently admitting everything.
func matches(pattern, candidate string) bool {
	re, err := regexp.Compile(pattern)
	if err != nil {
		return false
	}
	return re.MatchString(candidate)
}

func lengthViolation(r *domain.LengthRule, format string) error {
	if r.Message != "" {
		return errors.New(r.Message)
	}
	return fmt.Errorf(format, r.Value)
}

func patternViolation(r *domain.PatternRule, format string) error {
	if r.Message != "" {
		return errors.New(r.Message)
	}
	return fmt.Errorf(format, r.Value)
}
