package domain

import (
	"encoding/json"
	"fmt"
)

// FlowConfig is the caller-supplied configuration for the sign-up,
// sign-in and edit-profile flows. Every field is optional; a missing
// field disables the corresponding check.
type FlowConfig struct {
	SignUpFields         *SignUpFields  `json:"signUpFields,omitempty"`
	SignInWith           *SignInWith    `json:"signInWith,omitempty"`
	PasswordRules        *PasswordRules `json:"passwordRules,omitempty"`
	UsernameRules        *UsernameRules `json:"usernameRules,omitempty"`
	InitialProfileValues map[string]any `json:"initialProfileValues,omitempty"`
}

// SignUpFields selects which optional attributes are collected during
// registration.
type SignUpFields struct {
	Name     bool `json:"name,omitempty"`
	Username bool `json:"username,omitempty"`
}

// SignInWith selects which credential may be used to authenticate.
type SignInWith struct {
	Username bool `json:"username,omitempty"`
}

// PasswordRules are the optional password constraints.
type PasswordRules struct {
	MinLength *LengthRule  `json:"minLength,omitempty"`
	MaxLength *LengthRule  `json:"maxLength,omitempty"`
	Pattern   *PatternRule `json:"pattern,omitempty"`
}

// UsernameRules are the optional username constraints.
type UsernameRules struct {
	Pattern *PatternRule `json:"pattern,omitempty"`
}

// LengthRule is a length bound. On the wire it is either a bare number
// or an object {value, message}; the decoded form keeps an explicit
// Message so the evaluator never has to re-inspect the wire shape. An
// empty Message means the violation message is generated.
type LengthRule struct {
	Value   int
	Message string
}

func (r *LengthRule) UnmarshalJSON(b []byte) error {
	var bare int
	if err := json.Unmarshal(b, &bare); err == nil {
		*r = LengthRule{Value: bare}
		return nil
	}

	var obj struct {
		Value   int    `json:"value"`
		Message string `json:"message"`
	}
	if err := json.Unmarshal(b, &obj); err != nil {
		return fmt.Errorf("length rule must be a number or {value, message}: %w", err)
	}
	*r = LengthRule(obj)
	return nil
}

// PatternRule is a regular expression constraint. Like LengthRule it
// decodes from either a bare pattern string or {value, message}.
type PatternRule struct {
	Value   string
	Message string
}

func (r *PatternRule) UnmarshalJSON(b []byte) error {
	var bare string
	if err := json.Unmarshal(b, &bare); err == nil {
		*r = PatternRule{Value: bare}
		return nil
	}

	var obj struct {
		Value   string `json:"value"`
		Message string `json:"message"`
	}
	if err := json.Unmarshal(b, &obj); err != nil {
		return fmt.Errorf("pattern rule must be a string or {value, message}: %w", err)
	}
	*r = PatternRule(obj)
	return nil
}

// The accessors below are nil-safe so flow code can call them on an
// absent config without guarding every step.

// CollectsName reports whether first/last name are collected and
// validated during sign-up and edit-profile.
func (c *FlowConfig) CollectsName() bool {
	return c != nil && c.SignUpFields != nil && c.SignUpFields.Name
}

// UsernameSignIn reports whether the username credential is enabled.
func (c *FlowConfig) UsernameSignIn() bool {
	return c != nil && c.SignInWith != nil && c.SignInWith.Username
}

// CollectsUsername reports whether a username participates in the flow
// at all, either as a sign-in credential or as a sign-up field.
func (c *FlowConfig) CollectsUsername() bool {
	if c == nil {
		return false
	}
	if c.SignInWith != nil && c.SignInWith.Username {
		return true
	}
	return c.SignUpFields != nil && c.SignUpFields.Username
}

// Passwords returns the password rule set, or nil.
func (c *FlowConfig) Passwords() *PasswordRules {
	if c == nil {
		return nil
	}
	return c.PasswordRules
}

// Usernames returns the username rule set, or nil.
func (c *FlowConfig) Usernames() *UsernameRules {
	if c == nil {
		return nil
	}
	return c.UsernameRules
}

// ProfileSeed returns the configured initial profile values, or nil.
func (c *FlowConfig) ProfileSeed() map[string]any {
	if c == nil {
		return nil
	}
	return c.InitialProfileValues
}
