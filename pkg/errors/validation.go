package errors

import (
	"net/url"
	"strconv"
	"strings"
)

// ParseID parses a numeric mod, asset or author identifier.
// IDs must be positive integers; anything else is rejected with
// ErrCodeInvalidInput.
func ParseID(s string) (int, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, New(ErrCodeInvalidInput, "id cannot be empty")
	}
	id, err := strconv.Atoi(s)
	if err != nil {
		return 0, Wrap(ErrCodeInvalidInput, err, "invalid id %q", s)
	}
	if err := ValidateID(id); err != nil {
		return 0, err
	}
	return id, nil
}

// ValidateID rejects zero and negative identifiers.
func ValidateID(id int) error {
	if id <= 0 {
		return New(ErrCodeInvalidInput, "id must be positive, got %d", id)
	}
	return nil
}

// ValidateURL validates a base URL string for safety.
// It ensures the URL parses, has a host and uses http or https.
func ValidateURL(rawURL string) error {
	if rawURL == "" {
		return New(ErrCodeInvalidInput, "URL cannot be empty")
	}

	u, err := url.Parse(rawURL)
	if err != nil {
		return Wrap(ErrCodeInvalidInput, err, "invalid URL %q", rawURL)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return New(ErrCodeInvalidInput, "URL must use http or https scheme")
	}
	if u.Host == "" {
		return New(ErrCodeInvalidInput, "URL must include a host")
	}
	return nil
}
