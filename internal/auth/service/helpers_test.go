package service

import (
	"context"
	"encoding/json"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/gatehouseauth/gatehouse/internal/auth/domain"
	"github.com/gatehouseauth/gatehouse/internal/auth/provider"
	"github.com/gatehouseauth/gatehouse/internal/auth/store"
	"github.com/gatehouseauth/gatehouse/internal/auth/store/drivers/sqlite"
	"github.com/gatehouseauth/gatehouse/internal/emulator"
	"github.com/stretchr/testify/require"
)

// testEnv wires the services against a real sqlite store and the
// identity emulator behind a real HTTP round trip.
type testEnv struct {
	store    store.Store
	identity provider.Identity

	signUp  *SignUpService
	signIn  *SignInService
	profile *ProfileService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	st, err := sqlite.NewStore("file:" + filepath.Join(t.TempDir(), "profiles.db"))
	require.NoError(t, err)
	require.NoError(t, st.ApplyMigrations())
	t.Cleanup(func() { _ = st.Close() })

	ts := httptest.NewServer(emulator.New().Handler())
	t.Cleanup(ts.Close)

	identity := provider.NewRESTClient(ts.URL, "test-key")

	return &testEnv{
		store:    st,
		identity: identity,
		signUp:   &SignUpService{Store: st, Identity: identity},
		signIn:   &SignInService{Store: st, Identity: identity},
		profile:  &ProfileService{Store: st, Identity: identity},
	}
}

// stubIdentity records which provider operations ran and lets a test
// inject responses without an HTTP round trip.
type stubIdentity struct {
	calls []string

	createFn func(ctx context.Context, acct provider.NewAccount) (provider.Account, error)
	updateFn func(ctx context.Context, uid string, upd provider.AccountUpdate) error
	signInFn func(ctx context.Context, email, password string) (json.RawMessage, error)
	lookupFn func(ctx context.Context, idToken string) (provider.Account, error)
}

func (s *stubIdentity) CreateAccount(ctx context.Context, acct provider.NewAccount) (provider.Account, error) {
	s.calls = append(s.calls, "create")
	if s.createFn != nil {
		return s.createFn(ctx, acct)
	}
	return provider.Account{UID: "stub-uid", Email: acct.Email, DisplayName: acct.DisplayName, PhotoURL: acct.PhotoURL}, nil
}

func (s *stubIdentity) UpdateAccount(ctx context.Context, uid string, upd provider.AccountUpdate) error {
	s.calls = append(s.calls, "update")
	if s.updateFn != nil {
		return s.updateFn(ctx, uid, upd)
	}
	return nil
}

func (s *stubIdentity) SignInWithPassword(ctx context.Context, email, password string) (json.RawMessage, error) {
	s.calls = append(s.calls, "signin")
	if s.signInFn != nil {
		return s.signInFn(ctx, email, password)
	}
	return json.RawMessage(`{}`), nil
}

func (s *stubIdentity) LookupAccount(ctx context.Context, idToken string) (provider.Account, error) {
	s.calls = append(s.calls, "lookup")
	if s.lookupFn != nil {
		return s.lookupFn(ctx, idToken)
	}
	return provider.Account{UID: "stub-uid"}, nil
}

// usernameFlowConfig is the full-featured flow: names and username
// collected, username usable as a sign-in credential.
func usernameFlowConfig() *domain.FlowConfig {
	return &domain.FlowConfig{
		SignUpFields: &domain.SignUpFields{Name: true, Username: true},
		SignInWith:   &domain.SignInWith{Username: true},
		PasswordRules: &domain.PasswordRules{
			MinLength: &domain.LengthRule{Value: 8},
		},
	}
}

func requireFlowError(t *testing.T, err error, message string) {
	t.Helper()

	var ferr *FlowError
	require.ErrorAs(t, err, &ferr)
	require.Equal(t, message, ferr.Message)
}
