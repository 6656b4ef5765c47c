package domain

import (
	"errors"
	"fmt"
	"regexp"
	"unicode/utf8"
)

const (
	UsernameMinLen = 5
	UsernameMaxLen = 20
	EmailMaxLen    = 50
	NameMaxLen     = 20
)

var (
	ErrInvalidUsername = errors.New("username must be between 5 and 20 characters")
	ErrInvalidEmail    = errors.New("provided email is not an email address")
	ErrInvalidQuantity = errors.New("quantity must be greater than zero")
)

// Matched from the start only; anything after the tld is not checked.
var emailPattern = regexp.MustCompile(`^[^@]+@[^@]+\.[^@]+`)

// ValidateUsername returns username unchanged when its length in characters
// lies within [UsernameMinLen, UsernameMaxLen].
func ValidateUsername(username string) (string, error) {
	n := utf8.RuneCountInString(username)
	if n < UsernameMinLen || n > UsernameMaxLen {
		return "", fmt.Errorf("%w: got %d", ErrInvalidUsername, n)
	}
	return username, nil
}

// ValidateEmail returns email unchanged when it starts with the
// non-@ "@" non-@ "." non-@ shape.
func ValidateEmail(email string) (string, error) {
	if !emailPattern.MatchString(email) {
		return "", fmt.Errorf("%w: %q", ErrInvalidEmail, email)
	}
	return email, nil
}

func ValidateQuantity(quantity int) error {
	if quantity <= 0 {
		return fmt.Errorf("%w: got %d", ErrInvalidQuantity, quantity)
	}
	return nil
}
