package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/gatehouseauth/gatehouse/internal/auth/domain"
	"github.com/gatehouseauth/gatehouse/internal/auth/store"
)

type profilesRepo struct {
	q querier
}

const profileColumns = `uid, email, first_name, last_name, username, extra, created_at, updated_at`

func (r *profilesRepo) GetByUID(ctx context.Context, uid string) (domain.Profile, error) {
	row := r.q.QueryRowContext(ctx,
		`SELECT `+profileColumns+` FROM profiles WHERE uid = ?`, uid)
	return scanProfile(row)
}

func (r *profilesRepo) GetByUsername(ctx context.Context, username string) (domain.Profile, error) {
	row := r.q.QueryRowContext(ctx,
		`SELECT `+profileColumns+` FROM profiles WHERE username = ?`, username)
	return scanProfile(row)
}

func (r *profilesRepo) GetByEmail(ctx context.Context, email string) (domain.Profile, error) {
	row := r.q.QueryRowContext(ctx,
		`SELECT `+profileColumns+` FROM profiles WHERE email = ? LIMIT 1`, email)
	return scanProfile(row)
}

func (r *profilesRepo) Create(ctx context.Context, p domain.Profile) error {
	extra, err := encodeExtra(p.Extra)
	if err != nil {
		return err
	}

	_, err = r.q.ExecContext(ctx,
		`INSERT INTO profiles (uid, email, first_name, last_name, username, extra)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		p.UID,
		p.Email,
		mapStringNull(p.FirstName),
		mapStringNull(p.LastName),
		mapStringNull(p.Username),
		extra,
	)
	return mapConstraint(err)
}

func (r *profilesRepo) Update(ctx context.Context, uid string, upd domain.ProfileUpdate) error {
	sets := []string{"email = ?", "updated_at = CURRENT_TIMESTAMP"}
	args := []any{upd.Email}

	if upd.FirstName != nil {
		sets = append(sets, "first_name = ?")
		args = append(args, *upd.FirstName)
	}
	if upd.LastName != nil {
		sets = append(sets, "last_name = ?")
		args = append(args, *upd.LastName)
	}
	if upd.Username != nil {
		sets = append(sets, "username = ?")
		args = append(args, *upd.Username)
	}
	args = append(args, uid)

	res, err := r.q.ExecContext(ctx,
		`UPDATE profiles SET `+strings.Join(sets, ", ")+` WHERE uid = ?`, args...)
	if err != nil {
		return mapConstraint(err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return store.ErrNotFound
	}
	return nil
}

func scanProfile(row *sql.Row) (domain.Profile, error) {
	var (
		p         domain.Profile
		firstName sql.NullString
		lastName  sql.NullString
		username  sql.NullString
		extra     string
	)

	err := row.Scan(
		&p.UID, &p.Email, &firstName, &lastName, &username, &extra,
		&p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		return domain.Profile{}, mapNotFound(err)
	}

	p.FirstName = mapNullString(firstName)
	p.LastName = mapNullString(lastName)
	p.Username = mapNullString(username)

	if extra != "" && extra != "{}" {
		if err := json.Unmarshal([]byte(extra), &p.Extra); err != nil {
			return domain.Profile{}, fmt.Errorf("sqlite: corrupt extra column for %s: %w", p.UID, err)
		}
	}
	return p, nil
}

func encodeExtra(extra map[string]any) (string, error) {
	if len(extra) == 0 {
		return "{}", nil
	}
	raw, err := json.Marshal(extra)
	if err != nil {
		return "", fmt.Errorf("sqlite: encode extra: %w", err)
	}
	return string(raw), nil
}
