package domain

import "errors"

var (
	ErrUnauthenticated    = errors.New("unauthenticated")
	ErrForbidden          = errors.New("forbidden")
	ErrCredentialNotFound = errors.New("credential not found")
	ErrConfiguration      = errors.New("token signing secret is not configured")
)

// Identity is what a token asserts about its bearer.
type Identity struct {
	Email string
	Role  Role
}

func (i Identity) Valid() bool {
	return i.Email != "" && i.Role.Valid()
}
