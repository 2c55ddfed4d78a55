package domain

import (
	"regexp"
	"strings"

	apperrors "github.com/spec-kit/directory-service/pkg/util/errorutil"
)

var emailPattern = regexp.MustCompile("(?i)^[a-z0-9.!#$%&'*+/=?^_`{|}~-]+@([a-z0-9](?:[a-z0-9-]{0,61}[a-z0-9])?\\.)+[a-z]{2,}$")

// Email is a syntactically valid contact address.
type Email struct {
	value string
}

// NewEmail validates and wraps an address. Surrounding whitespace is dropped.
func NewEmail(raw string) (Email, error) {
	trimmed := strings.TrimSpace(raw)
	if err := ValidateEmail(trimmed); err != nil {
		return Email{}, err
	}
	return Email{value: trimmed}, nil
}

// ValidateEmail checks raw against the address grammar without constructing an Email.
func ValidateEmail(raw string) error {
	if emailPattern.MatchString(strings.TrimSpace(raw)) {
		return nil
	}
	return apperrors.NewValidation("invalid-email", "Invalid email address")
}

func (e Email) String() string {
	return e.value
}
