package domain

import (
	"strings"
	"unicode/utf8"

	apperrors "github.com/spec-kit/directory-service/pkg/util/errorutil"
)

const maxDescriptionLength = 2048

// Description is free text of at most 2048 characters. Empty is allowed.
type Description struct {
	value string
}

func NewDescription(raw string) (Description, error) {
	trimmed := strings.TrimSpace(raw)
	if utf8.RuneCountInString(trimmed) > maxDescriptionLength {
		return Description{}, apperrors.NewValidation("invalid-description", "Invalid description.")
	}
	return Description{value: trimmed}, nil
}

func (d Description) String() string {
	return d.value
}
