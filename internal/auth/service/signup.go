package service

import (
	"context"
	"errors"
	"log/slog"

	"github.com/gatehouseauth/gatehouse/internal/auth/domain"
	"github.com/gatehouseauth/gatehouse/internal/auth/provider"
	"github.com/gatehouseauth/gatehouse/internal/auth/store"
	"github.com/gatehouseauth/gatehouse/internal/auth/validate"
	"github.com/gatehouseauth/gatehouse/pkg/slogx"
)

// defaultPhotoURL is the placeholder avatar every new account starts
// with until the client uploads a real one.
const defaultPhotoURL = "https://afcm.ca/wp-content/uploads/2018/06/no-photo.png"

type SignUpService struct {
	Store    store.Store
	Identity provider.Identity
}

// SignUpInput is the registration payload. The string fields are
// declared `any` because they arrive untyped from the wire and the
// flow's contract distinguishes "wrong type" from "invalid value".
type SignUpInput struct {
	Config    *domain.FlowConfig
	Username  any
	FirstName any
	LastName  any
	Email     any
	Password  any
}

// SignUp validates the registration payload, provisions the identity
// provider account and persists the profile document. Checks run in a
// fixed order and stop at the first violation.
func (s *SignUpService) SignUp(ctx context.Context, in SignUpInput) (provider.Account, error) {
	log := slogx.FromContext(ctx)
	cfg := in.Config

	// 1. Validate email and password against the configured rules.
	email, err := validate.Email(in.Email)
	if err != nil {
		return provider.Account{}, asFlowError(err)
	}
	password, err := validate.Password(in.Password, cfg.Passwords())
	if err != nil {
		return provider.Account{}, asFlowError(err)
	}

	// 2. Validate the name fields when the flow collects them.
	var firstName, lastName string
	if cfg.CollectsName() {
		if firstName, err = validate.Name(in.FirstName, "First Name"); err != nil {
			return provider.Account{}, asFlowError(err)
		}
		if lastName, err = validate.Name(in.LastName, "Last Name"); err != nil {
			return provider.Account{}, asFlowError(err)
		}
	}

	// 3. Validate the username and pre-check availability when the flow
	// collects one. The pre-check is read-then-write with no lock; the
	// store's unique index is the backstop for racing registrations.
	var username string
	if cfg.CollectsUsername() {
		if username, err = validate.Username(in.Username, cfg.Usernames()); err != nil {
			return provider.Account{}, asFlowError(err)
		}

		_, err := s.Store.Profiles().GetByUsername(ctx, username)
		if err == nil {
			return provider.Account{}, flowErr("Username is already in use")
		}
		if !errors.Is(err, store.ErrNotFound) {
			log.Error("username availability check failed", slog.Any("error", err))
			return provider.Account{}, asFlowError(err)
		}
	}

	// 4. Build the account and profile. The username wins the display
	// name when both name fields and username sign-in are configured.
	newAccount := provider.NewAccount{
		Email:    email,
		Password: password,
		PhotoURL: defaultPhotoURL,
	}
	profile := domain.Profile{
		Email: email,
		Extra: cfg.ProfileSeed(),
	}
	if cfg.CollectsName() {
		newAccount.DisplayName = firstName + " " + lastName
		profile.FirstName = firstName
		profile.LastName = lastName
	}
	if cfg.UsernameSignIn() {
		newAccount.DisplayName = username
		profile.Username = username
	}

	// 5. Create the identity provider account.
	account, err := s.Identity.CreateAccount(ctx, newAccount)
	if err != nil {
		log.Warn("provider account creation failed", slog.Any("error", err))
		return provider.Account{}, translateAccountError(err)
	}

	// 6. Persist the profile document under the provider-assigned uid.
	profile.UID = account.UID
	if err := s.Store.Profiles().Create(ctx, profile); err != nil {
		log.Error("profile creation failed",
			slog.String("uid", account.UID),
			slog.Any("error", err),
		)
		if errors.Is(err, store.ErrAlreadyExists) {
			// The unique-index backstop caught a racing registration.
			return provider.Account{}, flowErr("Username is already in use")
		}
		return provider.Account{}, asFlowError(err)
	}

	log.Info("user registered",
		slog.String("uid", account.UID),
		slog.Bool("with_username", profile.Username != ""),
	)

	return account, nil
}
