package openapi

import (
	"errors"
	"regexp"
)

var ErrInvalidISBN = errors.New("invalid isbn: must be 10 characters (9 digits and a digit or 'X' check character) or 13 digits")

var isbnValidationRegex = regexp.MustCompile("^([0-9]{9}[0-9X]|[0-9]{13})$")

type ISBN struct {
	Value string
}

func (n *ISBN) UnmarshalText(text []byte) error {
	if !isbnValidationRegex.Match(text) {
		return ErrInvalidISBN
	}

	*n = ISBN{
		Value: string(text),
	}

	return nil
}

func (n ISBN) MarshalText() ([]byte, error) {
	return []byte(n.Value), nil
}

// ValidateISBN checks the format of an isbn without checking its check digit.
func ValidateISBN(isbn string) error {
	var n ISBN

	return n.UnmarshalText([]byte(isbn))
}
