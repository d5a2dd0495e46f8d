package validator

import (
	"strings"
	"unicode/utf8"

	playground "github.com/go-playground/validator/v10"
)

const MinPasswordLength = 5

type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationErrors keeps failures in the order the checks ran.
type ValidationErrors []FieldError

func (v ValidationErrors) HasErrors() bool {
	return len(v) > 0
}

func (v *ValidationErrors) Add(field, message string) {
	*v = append(*v, FieldError{Field: field, Message: message})
}

// First returns the message of the earliest failure, or "" when there are none.
func (v ValidationErrors) First() string {
	if len(v) == 0 {
		return ""
	}
	return v[0].Message
}

var validate = playground.New()

// IsEmail reports whether s is a syntactically valid email address.
func IsEmail(s string) bool {
	return validate.Var(s, "required,email") == nil
}

func ValidateRegister(name, username, email, password string) ValidationErrors {
	var errs ValidationErrors

	if strings.TrimSpace(name) == "" {
		errs.Add("name", "Name is required")
	}

	if strings.TrimSpace(username) == "" {
		errs.Add("username", "Username is required")
	}

	email = strings.TrimSpace(email)
	if email == "" {
		errs.Add("email", "Email is required")
	}

	if password == "" {
		errs.Add("password", "Password is required")
	} else if utf8.RuneCountInString(password) < MinPasswordLength {
		errs.Add("password", "Password must be at least 5 character")
	}

	if email != "" && !IsEmail(email) {
		errs.Add("email", "Invalid email format")
	}

	return errs
}

func ValidateLogin(email, password string) ValidationErrors {
	var errs ValidationErrors

	if strings.TrimSpace(email) == "" {
		errs.Add("email", "Email is required")
	}

	if password == "" {
		errs.Add("password", "Password is required")
	}

	return errs
}

func ValidatePost(content string) ValidationErrors {
	var errs ValidationErrors

	if strings.TrimSpace(content) == "" {
		errs.Add("content", "Content is required")
	}

	return errs
}
