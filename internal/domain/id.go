package domain

import (
	"github.com/google/uuid"

	apperrors "github.com/spec-kit/directory-service/pkg/util/errorutil"
)

// ID is a time-ordered entity identifier (UUIDv7).
type ID struct {
	value uuid.UUID
}

// NewID generates a fresh identifier.
func NewID() ID {
	return ID{value: uuid.Must(uuid.NewV7())}
}

// IDFromUUID wraps an existing UUID.
func IDFromUUID(u uuid.UUID) ID {
	return ID{value: u}
}

// ParseID parses the canonical textual form of an identifier.
func ParseID(raw string) (ID, error) {
	parsed, err := uuid.Parse(raw)
	if err != nil {
		return ID{}, apperrors.NewValidation("invalid-uuid", "Invalid UUID").
			WithArgs(map[string]string{"id": raw}).
			WithCause(err)
	}
	return ID{value: parsed}, nil
}

func (id ID) String() string {
	return id.value.String()
}

func (id ID) UUID() uuid.UUID {
	return id.value
}

// IsZero reports whether the identifier was never assigned.
func (id ID) IsZero() bool {
	return id.value == uuid.Nil
}
