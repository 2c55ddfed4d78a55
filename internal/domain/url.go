package domain

import (
	"net/url"
	"strings"

	apperrors "github.com/spec-kit/directory-service/pkg/util/errorutil"
)

const maxURLLength = 2048

// URL is an absolute http or https address.
type URL struct {
	value string
}

func NewURL(raw string) (URL, error) {
	trimmed := strings.TrimSpace(raw)
	if len(trimmed) > maxURLLength || !(strings.HasPrefix(trimmed, "http://") || strings.HasPrefix(trimmed, "https://")) {
		return URL{}, invalidURL(trimmed)
	}
	parsed, err := url.Parse(trimmed)
	if err != nil || parsed.Host == "" {
		return URL{}, invalidURL(trimmed)
	}
	return URL{value: trimmed}, nil
}

func invalidURL(raw string) error {
	return apperrors.NewValidation("invalid-url", "url must start with http:// or https://").
		WithArgs(map[string]string{"url": raw})
}

func (u URL) String() string {
	return u.value
}

// Photo is an image attached to a listing.
type Photo struct {
	URL   URL
	Title string
}

func NewPhoto(rawURL, title string) (Photo, error) {
	u, err := NewURL(rawURL)
	if err != nil {
		return Photo{}, err
	}
	return Photo{URL: u, Title: strings.TrimSpace(title)}, nil
}
