package domain

import "time"

// Profile is the per-user document held in the profile store. UID is
// assigned at creation from the identity provider account and never
// changes; the remaining named fields are mutable through the
// edit-profile flow. Extra carries the arbitrary initialProfileValues
// merged in at creation.
type Profile struct {
	UID       string         `json:"uid"`
	Email     string         `json:"email"`
	FirstName string         `json:"firstName,omitempty"`
	LastName  string         `json:"lastName,omitempty"`
	Username  string         `json:"username,omitempty"`
	Extra     map[string]any `json:"-"`
	CreatedAt time.Time      `json:"-"`
	UpdatedAt time.Time      `json:"-"`
}

// ProfileUpdate is a partial profile mutation. Email is always
// written; nil pointer fields are left untouched. It doubles as the
// edit-profile response body, which echoes exactly the fields that
// were written rather than re-reading the store.
type ProfileUpdate struct {
	Email     string  `json:"email"`
	FirstName *string `json:"firstName,omitempty"`
	LastName  *string `json:"lastName,omitempty"`
	Username  *string `json:"username,omitempty"`
}
