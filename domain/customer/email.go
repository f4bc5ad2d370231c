package customer

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
)

var ErrInvalidEmail = errors.New("invalid email address")

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// Email is an immutable, case-normalized email address.
type Email string

// NewEmail validates the address shape and lowercases it.
func NewEmail(value string) (Email, error) {
	if !emailPattern.MatchString(value) {
		return "", fmt.Errorf("%w: %s", ErrInvalidEmail, value)
	}
	return Email(strings.ToLower(value)), nil
}

func (e Email) String() string { return string(e) }

// LocalPart returns everything before the @.
func (e Email) LocalPart() string {
	return strings.SplitN(string(e), "@", 2)[0]
}

// Domain returns everything after the @.
func (e Email) Domain() string {
	return strings.SplitN(string(e), "@", 2)[1]
}
