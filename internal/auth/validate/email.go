// Package validate holds the pure input checks shared by the sign-up,
// sign-in and edit-profile flows. Flow payload fields arrive untyped
// from the wire, so every entry point takes `any` and reports a
// type violation before anything else is attempted. Checks are
// first-violation-wins: each function returns the first failure in its
// fixed order and never a second one.
package validate

import (
	"errors"
	"regexp"
)

// emailPattern is the RFC-5322-derived address pattern the flows have
// always used. A candidate is valid only when the leftmost match
// consumes the entire input; partial matches are rejected.
var emailPattern = regexp.MustCompile(
	"(?:[a-z0-9!#$%&'*+/=?^_`{|}~-]+(?:\\.[a-z0-9!#$%&'*+/=?^_`{|}~-]+)*|\"(?:[\\x01-\\x08\\x0b\\x0c\\x0e-\\x1f\\x21\\x23-\\x5b\\x5d-\\x7f]|\\\\[\\x01-\\x09\\x0b\\x0c\\x0e-\\x7f])*\")@(?:(?:[a-z0-9](?:[a-z0-9-]*[a-z0-9])?\\.)+[a-z0-9](?:[a-z0-9-]*[a-z0-9])?|\\[(?:(?:(2(5[0-5]|[0-4][0-9])|1[0-9][0-9]|[1-9]?[0-9]))\\.){3}(?:(2(5[0-5]|[0-4][0-9])|1[0-9][0-9]|[1-9]?[0-9])|[a-z0-9-]*[a-z0-9]:(?:[\\x01-\\x08\\x0b\\x0c\\x0e-\\x1f\\x21-\\x5a\\x53-\\x7f]|\\\\[\\x01-\\x09\\x0b\\x0c\\x0e-\\x7f])+)\\])",
)

var (
	errEmailType    = errors.New("Email must be of type string")
	errEmailInvalid = errors.New("Email must be a valid email address")
)

// String coerces an untyped payload field to a string. The second
// return is false when the field was absent or carried another JSON
// type.
func String(v any) (string, bool) {
	s, ok := v.(string)
	return s, ok
}

// Email checks the candidate is a string and fully matches the address
// pattern. It returns the validated address on success.
func Email(v any) (string, error) {
	email, ok := String(v)
	if !ok {
		return "", errEmailType
	}
	// FindString returns "" both for no match and for an empty match, so
	// the empty input needs its own rejection.
	if email == "" || emailPattern.FindString(email) != email {
		return "", errEmailInvalid
	}
	return email, nil
}
