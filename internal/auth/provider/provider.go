// Package provider is the client side of the external identity
// service. The service is the system of record for credentials and
// account lifecycle; this package only consumes its REST surface and
// never persists anything locally.
package provider

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
)

// Error codes the flows translate into friendlier messages. Account
// lifecycle operations report kebab-case codes; the sign-in endpoint
// reports SCREAMING_SNAKE codes in its error body.
const (
	CodeEmailExists   = "email-already-exists"
	CodePhoneExists   = "phone-number-already-exists"
	CodeEmailNotFound = "EMAIL_NOT_FOUND"
	CodeBadPassword   = "INVALID_PASSWORD"
	CodeBadIDToken    = "INVALID_ID_TOKEN"
)

// Account is an identity-provider account as consumed by this system.
// The password is write-only: it appears on NewAccount and is never
// read back.
type Account struct {
	UID           string `json:"uid"`
	Email         string `json:"email"`
	DisplayName   string `json:"displayName,omitempty"`
	PhotoURL      string `json:"photoURL,omitempty"`
	EmailVerified bool   `json:"emailVerified"`
	Disabled      bool   `json:"disabled"`
}

// NewAccount is the account-creation payload.
type NewAccount struct {
	Email         string
	Password      string
	DisplayName   string
	PhotoURL      string
	EmailVerified bool
	Disabled      bool
}

// AccountUpdate is a partial account mutation applied by uid. Both
// fields are always written; the flows deliberately reset DisplayName
// when neither name nor username is collected.
type AccountUpdate struct {
	Email       string
	DisplayName string
}

// Identity is the set of provider operations the flows consume.
type Identity interface {
	// CreateAccount provisions a new account and returns it with the
	// provider-assigned UID.
	CreateAccount(ctx context.Context, acct NewAccount) (Account, error)

	// UpdateAccount applies a partial update to the account with the
	// given uid. Nothing meaningful is returned by the provider.
	UpdateAccount(ctx context.Context, uid string, upd AccountUpdate) error

	// SignInWithPassword exchanges credentials for the provider's token
	// response. The body is returned unmodified so callers can hand it
	// straight back to clients.
	SignInWithPassword(ctx context.Context, email, password string) (json.RawMessage, error)

	// LookupAccount resolves an ID token to the account it was minted
	// for. Used to establish the caller identity on authenticated
	// endpoints.
	LookupAccount(ctx context.Context, idToken string) (Account, error)
}

// APIError is a machine-readable error reported by the provider in its
// {"error": {"code", "message"}} body.
type APIError struct {
	StatusCode int
	Code       string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("provider: %s (http %d)", e.Code, e.StatusCode)
}

// ErrorCode extracts the provider error code from err, or "" when err
// is not an APIError.
func ErrorCode(err error) string {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.Code
	}
	return ""
}
