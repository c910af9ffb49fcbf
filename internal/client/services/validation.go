package services

import (
	"net/mail"
	"strings"
	"unicode/utf8"

	"github.com/dmitrijs2005/userdir/internal/common"
)

const minPasswordLen = 6

// FieldError is a single rejected input field.
type FieldError struct {
	Field   string
	Message string
}

// ValidationError lists every field that failed validation. It matches
// common.ErrValidation with errors.Is.
type ValidationError struct {
	Fields []FieldError
}

func (e *ValidationError) Error() string {
	msgs := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		msgs = append(msgs, f.Message)
	}
	return strings.Join(msgs, "; ")
}

func (e *ValidationError) Is(target error) bool {
	return target == common.ErrValidation
}

// validateCredentials checks the login form before any network call.
func validateCredentials(email string, password []byte) error {
	var fields []FieldError
	if !validEmail(email) {
		fields = append(fields, FieldError{Field: "email", Message: "Invalid email format"})
	}
	if utf8.RuneCount(password) < minPasswordLen {
		fields = append(fields, FieldError{Field: "password", Message: "Password must be at least 6 characters"})
	}
	if len(fields) == 0 {
		return nil
	}
	return &ValidationError{Fields: fields}
}

// validEmail accepts a bare addr-spec with a dotted domain.
func validEmail(s string) bool {
	if s == "" || strings.TrimSpace(s) != s {
		return false
	}
	a, err := mail.ParseAddress(s)
	if err != nil || a.Address != s || a.Name != "" {
		return false
	}
	at := strings.LastIndexByte(s, '@')
	domain := s[at+1:]
	dot := strings.LastIndexByte(domain, '.')
	return dot > 0 && dot < len(domain)-1
}
