package auth

import "errors"

var (
	// ErrNotAuthenticated is returned by every per-user operation called
	// without a signed-in user.
	ErrNotAuthenticated   = errors.New("please log in to continue")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrEmailTaken         = errors.New("email already registered")
	ErrInvalidToken       = errors.New("invalid or expired session")
	ErrValidation         = errors.New("validation failed")
	ErrUserNotFound       = errors.New("user not found")
)

// RequireUser returns ErrNotAuthenticated for an empty user id.
func RequireUser(userID string) error {
	if userID == "" {
		return ErrNotAuthenticated
	}
	return nil
}
