// Package tokens issues and validates the HS256 session tokens handed out at
// login. A Service is immutable after construction and safe for concurrent use.
package tokens

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/Skotchmaster/vehicle_api/internal/domain"
)

const TokenTTL = 24 * time.Hour

type Service struct {
	secret []byte
	now    func() time.Time
}

type Option func(*Service)

// WithClock replaces time.Now for both issuance and expiry checks.
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		s.now = now
	}
}

func NewService(secret []byte, opts ...Option) *Service {
	s := &Service{
		secret: append([]byte(nil), secret...),
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Service) Configured() bool {
	return len(s.secret) > 0
}

func (s *Service) Issue(identity domain.Identity) (string, error) {
	if !s.Configured() {
		return "", domain.ErrConfiguration
	}
	if !identity.Valid() {
		return "", fmt.Errorf("issue token: invalid identity %q/%q", identity.Email, identity.Role)
	}

	now := s.now()
	claims := AccessClaims{
		Email:  identity.Email,
		Perfil: identity.Role.String(),
		Role:   identity.Role.String(),
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(TokenTTL)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

// Validate checks signature and expiry only; issuer and audience are ignored.
// Every failure is reported as domain.ErrUnauthenticated.
func (s *Service) Validate(tokenStr string) (domain.Identity, error) {
	if !s.Configured() {
		return domain.Identity{}, domain.ErrUnauthenticated
	}

	var claims AccessClaims
	tkn, err := jwt.ParseWithClaims(tokenStr, &claims, func(t *jwt.Token) (any, error) {
		if t.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, errors.New("unexpected sign method")
		}
		return s.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil {
		return domain.Identity{}, fmt.Errorf("%w: %v", domain.ErrUnauthenticated, err)
	}
	if !tkn.Valid {
		return domain.Identity{}, domain.ErrUnauthenticated
	}

	return identityFromClaims(&claims)
}

func identityFromClaims(claims *AccessClaims) (domain.Identity, error) {
	roleStr := claims.Role
	if roleStr == "" {
		roleStr = claims.Perfil
	} else if claims.Perfil != "" && claims.Perfil != roleStr {
		return domain.Identity{}, fmt.Errorf("%w: conflicting role claims", domain.ErrUnauthenticated)
	}

	role, err := domain.ParseRole(roleStr)
	if err != nil {
		return domain.Identity{}, fmt.Errorf("%w: %v", domain.ErrUnauthenticated, err)
	}
	if claims.Email == "" {
		return domain.Identity{}, fmt.Errorf("%w: missing email claim", domain.ErrUnauthenticated)
	}

	return domain.Identity{Email: claims.Email, Role: role}, nil
}
