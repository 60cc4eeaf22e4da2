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

type ProfileService struct {
	Store    store.Store
	Identity provider.Identity
}

// EditProfileInput is the edit-profile payload. CallerUID comes from
// the verified session, never from the body. There is no password
// field; password changes go through the provider directly.
type EditProfileInput struct {
	CallerUID string
	Config    *domain.FlowConfig
	Username  any
	FirstName any
	LastName  any
	Email     any
}

// Edit validates the payload and applies it to both the identity
// provider record and the profile document for the caller's own uid.
// The returned update echoes exactly the fields that were written; it
// is not re-read from the store.
func (s *ProfileService) Edit(ctx context.Context, in EditProfileInput) (domain.ProfileUpdate, error) {
	log := slogx.FromContext(ctx)
	cfg := in.Config

	// 1. An authenticated caller is required before anything else is
	// looked at.
	if in.CallerUID == "" {
		return domain.ProfileUpdate{}, ErrNotSignedIn
	}

	// 2. Validate the email and optional name fields.
	email, err := validate.Email(in.Email)
	if err != nil {
		return domain.ProfileUpdate{}, asFlowError(err)
	}

	var firstName, lastName string
	if cfg.CollectsName() {
		if firstName, err = validate.Name(in.FirstName, "First Name"); err != nil {
			return domain.ProfileUpdate{}, asFlowError(err)
		}
		if lastName, err = validate.Name(in.LastName, "Last Name"); err != nil {
			return domain.ProfileUpdate{}, asFlowError(err)
		}
	}

	// 3. Validate the username and check availability. A profile
	// already holding the username is only a conflict when it belongs
	// to someone else; matching the caller's own uid permits a no-op
	// rename.
	var username string
	if cfg.CollectsUsername() {
		if username, err = validate.Username(in.Username, cfg.Usernames()); err != nil {
			return domain.ProfileUpdate{}, asFlowError(err)
		}

		existing, err := s.Store.Profiles().GetByUsername(ctx, username)
		switch {
		case err == nil && existing.UID != in.CallerUID:
			return domain.ProfileUpdate{}, flowErr("Username is already in use")
		case err != nil && !errors.Is(err, store.ErrNotFound):
			log.Error("username availability check failed", slog.Any("error", err))
			return domain.ProfileUpdate{}, asFlowError(err)
		}
	}

	// 4. Build the provider and profile updates with the same display
	// name precedence as registration.
	accountUpd := provider.AccountUpdate{Email: email}
	profileUpd := domain.ProfileUpdate{Email: email}
	if cfg.CollectsName() {
		accountUpd.DisplayName = firstName + " " + lastName
		profileUpd.FirstName = &firstName
		profileUpd.LastName = &lastName
	}
	if cfg.UsernameSignIn() {
		accountUpd.DisplayName = username
		profileUpd.Username = &username
	}

	// 5. Apply to the provider record, then the profile document.
	if err := s.Identity.UpdateAccount(ctx, in.CallerUID, accountUpd); err != nil {
		log.Warn("provider account update failed",
			slog.String("uid", in.CallerUID),
			slog.Any("error", err),
		)
		return domain.ProfileUpdate{}, translateAccountError(err)
	}
	if err := s.Store.Profiles().Update(ctx, in.CallerUID, profileUpd); err != nil {
		log.Error("profile update failed",
			slog.String("uid", in.CallerUID),
			slog.Any("error", err),
		)
		if errors.Is(err, store.ErrAlreadyExists) {
			return domain.ProfileUpdate{}, flowErr("Username is already in use")
		}
		return domain.ProfileUpdate{}, asFlowError(err)
	}

	log.Info("profile updated", slog.String("uid", in.CallerUID))
	return profileUpd, nil
}
