package service

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"

	"github.com/gatehouseauth/gatehouse/internal/auth/domain"
	"github.com/gatehouseauth/gatehouse/internal/auth/provider"
	"github.com/gatehouseauth/gatehouse/internal/auth/store"
	"github.com/gatehouseauth/gatehouse/internal/auth/validate"
	"github.com/gatehouseauth/gatehouse/pkg/slogx"
)

type SignInService struct {
	Store    store.Store
	Identity provider.Identity
}

// SignInInput is the sign-in payload. When username sign-in is
// configured, Email may actually hold a username; the same field is
// reused for both credentials.
type SignInInput struct {
	Config   *domain.FlowConfig
	Email    any
	Password any
}

// SignIn resolves the submitted credential to an email address when
// necessary and forwards it to the provider's sign-in endpoint. The
// provider's token response is returned unmodified.
func (s *SignInService) SignIn(ctx context.Context, in SignInInput) (json.RawMessage, error) {
	log := slogx.FromContext(ctx)
	cfg := in.Config

	// 1. Both inputs must at least be strings; everything beyond that
	// is the provider's call.
	email, ok := validate.String(in.Email)
	if !ok {
		return nil, flowErr("Email must be of type string")
	}
	password, ok := validate.String(in.Password)
	if !ok {
		return nil, flowErr("Password must be of type string")
	}

	// 2. When username sign-in is enabled the submitted value may be a
	// username: try that first, then fall back to an email lookup. The
	// profile's stored email is what goes to the provider.
	if cfg.UsernameSignIn() {
		profile, err := s.Store.Profiles().GetByUsername(ctx, email)
		if errors.Is(err, store.ErrNotFound) {
			profile, err = s.Store.Profiles().GetByEmail(ctx, email)
		}
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				return nil, incorrectCredentials(cfg)
			}
			log.Error("credential lookup failed", slog.Any("error", err))
			return nil, asFlowError(err)
		}
		email = profile.Email
	}

	// 3. Forward to the provider. Wrong-credential codes collapse into
	// the same vague message so callers can't probe which accounts
	// exist.
	resp, err := s.Identity.SignInWithPassword(ctx, email, password)
	if err != nil {
		switch provider.ErrorCode(err) {
		case provider.CodeEmailNotFound, provider.CodeBadPassword:
			return nil, incorrectCredentials(cfg)
		case "":
			log.Warn("provider sign-in failed", slog.Any("error", err))
			return nil, asFlowError(err)
		default:
			return nil, flowErr(provider.ErrorCode(err))
		}
	}

	return resp, nil
}
