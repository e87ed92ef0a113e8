package users

import "errors"

var (
	ErrUsernameTaken      = errors.New("username already taken")
	ErrEmailTaken         = errors.New("email already taken")
	ErrInvalidUsername    = errors.New("username may contain letters, digits and @/./+/-/_ only")
	ErrUserNotFound       = errors.New("user not found")
	ErrUserExists         = errors.New("username or email already taken")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrWrongPassword      = errors.New("current password is wrong")
	ErrSamePassword       = errors.New("new password must differ from the current one")
)
