package domain

import (
	"encoding/json"
	"fmt"
)

// Role is the closed set of administrator profiles. The string form ("Adm",
// "Editor") is only used on the wire and in storage.
type Role int

const (
	RoleUnknown Role = iota
	RoleAdmin
	RoleEditor
)

const (
	roleAdminWire  = "Adm"
	roleEditorWire = "Editor"
)

func (r Role) String() string {
	switch r {
	case RoleAdmin:
		return roleAdminWire
	case RoleEditor:
		return roleEditorWire
	default:
		return ""
	}
}

func (r Role) Valid() bool {
	return r == RoleAdmin || r == RoleEditor
}

// ParseRole is exact and case-sensitive.
func ParseRole(s string) (Role, error) {
	switch s {
	case roleAdminWire:
		return RoleAdmin, nil
	case roleEditorWire:
		return RoleEditor, nil
	default:
		return RoleUnknown, fmt.Errorf("unknown role %q", s)
	}
}

func (r Role) MarshalJSON() ([]byte, error) {
	if !r.Valid() {
		return nil, fmt.Errorf("cannot marshal role %d", int(r))
	}
	return json.Marshal(r.String())
}

func (r *Role) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	parsed, err := ParseRole(s)
	if err != nil {
		return err
	}
	*r = parsed
	return nil
}
