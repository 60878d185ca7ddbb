package admin

import "errors"

var (
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrInvalidToken       = errors.New("invalid token")
	ErrMissingSecret      = errors.New("JWT_SECRET is not set")
)

// MsgInvalidCredentials is shown on the login form for ErrInvalidCredentials.
const MsgInvalidCredentials = "Username atau Password salah."
