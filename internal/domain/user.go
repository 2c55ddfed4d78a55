package domain

import (
	apperrors "github.com/spec-kit/directory-service/pkg/util/errorutil"
)

// User is a registered account. All fields are validated scalars.
type User struct {
	ID        ID
	Name      Name
	Email     Email
	Password  Password
	Deleted   bool
	CreatedAt DateTime
	UpdatedAt DateTime
	DeletedAt *DateTime
}

// NewUser builds a fresh, not yet persisted user.
func NewUser(name Name, email Email, password Password) User {
	now := Now()
	return User{
		ID:        NewID(),
		Name:      name,
		Email:     email,
		Password:  password,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// UserPatch is a merge-patch for a user: nil fields keep the persisted value.
type UserPatch struct {
	ID       ID
	Name     *Name
	Email    *Email
	Password *Password
	Deleted  *bool
}

// MergeUser applies patch over persisted and returns the resulting record.
// persisted is never modified.
func MergeUser(persisted User, patch UserPatch) (User, error) {
	if patch.ID != persisted.ID {
		return User{}, idMismatch(persisted.ID, patch.ID)
	}
	merged := persisted
	merged.Name = valueOr(patch.Name, persisted.Name)
	merged.Email = valueOr(patch.Email, persisted.Email)
	merged.Password = valueOr(patch.Password, persisted.Password)
	merged.Deleted = valueOr(patch.Deleted, persisted.Deleted)
	merged.DeletedAt = deletionStamp(merged.Deleted, persisted.DeletedAt)
	return merged, nil
}

// deletionStamp keeps DeletedAt set exactly when deleted is true. An existing
// stamp survives, a fresh deletion is stamped now and a restore clears it.
func deletionStamp(deleted bool, current *DateTime) *DateTime {
	if !deleted {
		return nil
	}
	stamp := Now()
	if current != nil {
		stamp = *current
	}
	return &stamp
}

func valueOr[T any](override *T, fallback T) T {
	if override != nil {
		return *override
	}
	return fallback
}

func idMismatch(persisted, patch ID) error {
	return apperrors.NewIllegalArgument("id-mismatch", "patch does not target the persisted record").
		WithArgs(map[string]string{"persisted_id": persisted.String(), "patch_id": patch.String()})
}
