package account

import "errors"

// Code is the closed set of credential errors the account service reports.
type Code int

const (
	CodeUnknown Code = iota
	CodeInvalidEmail
	CodeUserDisabled
	CodeUserNotFound
	CodeWrongPassword
)

// Error is a credential or account failure with a mapped user-facing message.
type Error struct {
	Code Code
}

func (e *Error) Error() string {
	switch e.Code {
	case CodeInvalidEmail:
		return "invalid email"
	case CodeUserDisabled:
		return "user disabled"
	case CodeUserNotFound:
		return "user not found"
	case CodeWrongPassword:
		return "wrong password"
	default:
		return "unknown account error"
	}
}

// IsAuthError reports whether err is a credential/account error.
func IsAuthError(err error) bool {
	var aerr *Error
	return errors.As(err, &aerr)
}

// Message maps an error to its fixed user-facing string. User-not-found and
// wrong-password share one message on purpose, so the response does not leak
// which accounts exist.
func Message(err error) string {
	var aerr *Error
	if !errors.As(err, &aerr) {
		return "An unknown error occurred. Please try again."
	}
	switch aerr.Code {
	case CodeInvalidEmail:
		return "The email address is badly formatted."
	case CodeUserDisabled:
		return "The user account has been disabled."
	case CodeUserNotFound, CodeWrongPassword:
		return "Invalid email or password."
	default:
		return "An unknown error occurred. Please try again."
	}
}
