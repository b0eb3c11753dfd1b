package tokens

import "github.com/golang-jwt/jwt/v5"

// AccessClaims carries the role twice: "Perfil" for our own consumers and the
// standard "role" key for generic role-checking middleware.
type AccessClaims struct {
	Email  string `json:"Email"`
	Perfil string `json:"Perfil"`
	Role   string `json:"role,omitempty"`
	jwt.RegisteredClaims
}
