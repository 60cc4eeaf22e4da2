package store

import (
	"context"
	"errors"

	"github.com/gatehouseauth/gatehouse/internal/auth/domain"
)

var (
	ErrNotFound      = errors.New("store: not found")
	ErrAlreadyExists = errors.New("store: already exists")
)

// Store is the root data access interface for the profile document
// collection. Concrete drivers (sqlite today) implement it. The flow
// logic treats it as an opaque collection with query-by-field
// capability and never sees driver details.
type Store interface {
	Profiles() Profiles

	ApplyMigrations() error

	// Tx starts a read/write transaction and returns a Tx-scoped Store.
	// The caller MUST call Commit() or Rollback() on the returned Tx.
	Tx(ctx context.Context) (Tx, error)

	// WithTx executes fn within a transaction, rolling back when fn
	// returns an error and committing otherwise.
	WithTx(ctx context.Context, fn func(tx Tx) error) error

	// Ping verifies the underlying connection is still alive.
	Ping(ctx context.Context) error

	// Close releases any underlying resources.
	Close() error
}

// Tx is a transactional store. It embeds the same repositories and
// adds Commit/Rollback.
type Tx interface {
	Store
	Commit() error
	Rollback() error
}

type Profiles interface {
	// GetByUID returns the profile document keyed by uid.
	GetByUID(ctx context.Context, uid string) (domain.Profile, error)

	// GetByUsername is the equality query behind the username
	// uniqueness pre-check and username sign-in resolution.
	GetByUsername(ctx context.Context, username string) (domain.Profile, error)

	// GetByEmail resolves a submitted email to its profile during
	// username sign-in fallback.
	GetByEmail(ctx context.Context, email string) (domain.Profile, error)

	// Create inserts a new profile document (uid comes from the
	// identity provider). Returns ErrAlreadyExists on a uid or
	// username collision.
	Create(ctx context.Context, p domain.Profile) error

	// Update applies a partial update to the profile keyed by uid.
	// Returns ErrNotFound when no such profile exists.
	Update(ctx context.Context, uid string, upd domain.ProfileUpdate) error
}
