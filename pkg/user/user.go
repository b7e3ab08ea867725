package user

import (
	"errors"
	"strings"
)

var ErrUserNotFound = errors.New("user not found")
var ErrUserDataInvalid = errors.New("invalid user data")

// User is an account allowed to obtain bearer tokens. Records are not owned by users.
type User struct {
	Id           int
	Username     string
	PasswordHash string
}

func validateCredentials(username, password string) error {
	if strings.TrimSpace(username) == "" {
		return errors.Join(ErrUserDataInvalid, errors.New("username is required"))
	}
	if password == "" {
		return errors.Join(ErrUserDataInvalid, errors.New("password is required"))
	}
	return nil
}
