package domain

import (
	"strings"
	"unicode/utf8"

	apperrors "github.com/spec-kit/directory-service/pkg/util/errorutil"
)

const maxNameLength = 120

// Name is a trimmed display name of 1..120 characters.
type Name struct {
	value string
}

func NewName(raw string) (Name, error) {
	trimmed := strings.TrimSpace(raw)
	if n := utf8.RuneCountInString(trimmed); n == 0 || n > maxNameLength {
		return Name{}, apperrors.NewValidation("invalid-field", "name must be 1..=120 characters")
	}
	return Name{value: trimmed}, nil
}

func (n Name) String() string {
	return n.value
}
