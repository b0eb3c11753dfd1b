package domain

import "slices"

// Authorize allows any identity when required is empty, otherwise only
// identities whose role is listed.
func Authorize(identity Identity, required []Role) error {
	if len(required) == 0 {
		return nil
	}
	if !slices.Contains(required, identity.Role) {
		return ErrForbidden
	}
	return nil
}
