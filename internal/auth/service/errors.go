package service

import (
	"errors"
	"fmt"

	"github.com/gatehouseauth/gatehouse/internal/auth/domain"
	"github.com/gatehouseauth/gatehouse/internal/auth/provider"
)

// FlowError is the single error kind every flow failure is reported
// through: a short human-readable message and nothing else. Validation
// failures, username conflicts and translated provider errors all look
// identical to the caller, whose client UI renders the message
// directly.
type FlowError struct {
	Message string
}

func (e *FlowError) Error() string { return e.Message }

// ErrNotSignedIn is returned by flows that require an authenticated
// caller when none is present.
var ErrNotSignedIn = &FlowError{Message: "You must be signed in"}

func flowErr(message string) *FlowError {
	return &FlowError{Message: message}
}

func flowErrf(format string, args ...any) *FlowError {
	return &FlowError{Message: fmt.Sprintf(format, args...)}
}

// asFlowError passes FlowErrors through untouched and demotes anything
// else (store anomalies, transport failures) to the uniform kind with
// a best-effort message.
func asFlowError(err error) *FlowError {
	var ferr *FlowError
	if errors.As(err, &ferr) {
		return ferr
	}
	if msg := err.Error(); msg != "" {
		return flowErr(msg)
	}
	return flowErr("unknown")
}

// translateAccountError maps provider account-lifecycle error codes to
// the messages clients expect; unknown codes surface as-is.
func translateAccountError(err error) *FlowError {
	switch provider.ErrorCode(err) {
	case provider.CodePhoneExists:
		return flowErr("Phone number already in use")
	case provider.CodeEmailExists:
		return flowErr("Email already in use")
	case "":
		return asFlowError(err)
	default:
		return flowErr(provider.ErrorCode(err))
	}
}

// incorrectCredentials is the deliberately vague sign-in failure
// message; it mentions the username credential only when it is
// configured, and never reveals which part was wrong.
func incorrectCredentials(cfg *domain.FlowConfig) *FlowError {
	if cfg.UsernameSignIn() {
		return flowErr("Incorrect email, username, or password")
	}
	return flowErr("Incorrect email or password")
}
