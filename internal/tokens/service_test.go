package tokens

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Skotchmaster/vehicle_api/internal/domain"
)

var testSecret = []byte("test-jwt-secret")

func fixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

func TestService_IssueValidate_RoundTrip(t *testing.T) {
	t.Parallel()

	svc := NewService(testSecret)
	for _, role := range []domain.Role{domain.RoleAdmin, domain.RoleEditor} {
		identity := domain.Identity{Email: "adm@teste.com", Role: role}

		token, err := svc.Issue(identity)
		require.NoError(t, err)
		require.NotEmpty(t, token)

		got, err := svc.Validate(token)
		require.NoError(t, err)
		assert.Equal(t, identity, got)
	}
}

func TestService_Issue_SetsClaims(t *testing.T) {
	t.Parallel()

	issuedAt := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	svc := NewService(testSecret, WithClock(fixedClock(issuedAt)))

	token, err := svc.Issue(domain.Identity{Email: "editor@teste.com", Role: domain.RoleEditor})
	require.NoError(t, err)

	claims := jwt.MapClaims{}
	_, _, err = jwt.NewParser().ParseUnverified(token, claims)
	require.NoError(t, err)

	assert.Equal(t, "editor@teste.com", claims["Email"])
	assert.Equal(t, "Editor", claims["Perfil"])
	assert.Equal(t, "Editor", claims["role"])
	assert.NotEmpty(t, claims["jti"])

	exp, err := claims.GetExpirationTime()
	require.NoError(t, err)
	assert.True(t, exp.Time.Equal(issuedAt.Add(24*time.Hour)))
}

func TestService_Issue_EmptySecret(t *testing.T) {
	t.Parallel()

	svc := NewService(nil)
	token, err := svc.Issue(domain.Identity{Email: "adm@teste.com", Role: domain.RoleAdmin})
	require.ErrorIs(t, err, domain.ErrConfiguration)
	assert.Empty(t, token)
	assert.False(t, svc.Configured())
}

func TestService_Issue_InvalidIdentity(t *testing.T) {
	t.Parallel()

	svc := NewService(testSecret)
	_, err := svc.Issue(domain.Identity{Email: "", Role: domain.RoleAdmin})
	require.Error(t, err)
	_, err = svc.Issue(domain.Identity{Email: "x@teste.com"})
	require.Error(t, err)
}

func TestService_Validate_Expired(t *testing.T) {
	t.Parallel()

	now := time.Now()
	issuer := NewService(testSecret, WithClock(fixedClock(now.Add(-25*time.Hour))))
	validator := NewService(testSecret, WithClock(fixedClock(now)))

	token, err := issuer.Issue(domain.Identity{Email: "adm@teste.com", Role: domain.RoleAdmin})
	require.NoError(t, err)

	_, err = validator.Validate(token)
	require.ErrorIs(t, err, domain.ErrUnauthenticated)
}

func TestService_Validate_JustBeforeExpiry(t *testing.T) {
	t.Parallel()

	now := time.Now()
	issuer := NewService(testSecret, WithClock(fixedClock(now.Add(-23*time.Hour))))
	validator := NewService(testSecret, WithClock(fixedClock(now)))

	token, err := issuer.Issue(domain.Identity{Email: "adm@teste.com", Role: domain.RoleAdmin})
	require.NoError(t, err)

	_, err = validator.Validate(token)
	require.NoError(t, err)
}

func TestService_Validate_ForeignSecret(t *testing.T) {
	t.Parallel()

	other := NewService([]byte("another-secret"))
	token, err := other.Issue(domain.Identity{Email: "adm@teste.com", Role: domain.RoleAdmin})
	require.NoError(t, err)

	_, err = NewService(testSecret).Validate(token)
	require.ErrorIs(t, err, domain.ErrUnauthenticated)
}

func TestService_Validate_Rejects(t *testing.T) {
	t.Parallel()

	svc := NewService(testSecret)
	exp := jwt.NewNumericDate(time.Now().Add(time.Hour))

	sign := func(method jwt.SigningMethod, key any, claims jwt.Claims) string {
		s, err := jwt.NewWithClaims(method, claims).SignedString(key)
		require.NoError(t, err)
		return s
	}

	tests := []struct {
		name  string
		token string
	}{
		{name: "empty", token: ""},
		{name: "garbage", token: "not-a-valid-jwt"},
		{name: "alg none", token: sign(jwt.SigningMethodNone, jwt.UnsafeAllowNoneSignatureType, AccessClaims{
			Email: "adm@teste.com", Perfil: "Adm", Role: "Adm",
			RegisteredClaims: jwt.RegisteredClaims{ExpiresAt: exp},
		})},
		{name: "hs512", token: sign(jwt.SigningMethodHS512, testSecret, AccessClaims{
			Email: "adm@teste.com", Perfil: "Adm", Role: "Adm",
			RegisteredClaims: jwt.RegisteredClaims{ExpiresAt: exp},
		})},
		{name: "no expiry", token: sign(jwt.SigningMethodHS256, testSecret, AccessClaims{
			Email: "adm@teste.com", Perfil: "Adm", Role: "Adm",
		})},
		{name: "unknown role", token: sign(jwt.SigningMethodHS256, testSecret, AccessClaims{
			Email: "adm@teste.com", Perfil: "adm", Role: "adm",
			RegisteredClaims: jwt.RegisteredClaims{ExpiresAt: exp},
		})},
		{name: "conflicting roles", token: sign(jwt.SigningMethodHS256, testSecret, AccessClaims{
			Email: "adm@teste.com", Perfil: "Editor", Role: "Adm",
			RegisteredClaims: jwt.RegisteredClaims{ExpiresAt: exp},
		})},
		{name: "missing email", token: sign(jwt.SigningMethodHS256, testSecret, AccessClaims{
			Perfil: "Adm", Role: "Adm",
			RegisteredClaims: jwt.RegisteredClaims{ExpiresAt: exp},
		})},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Validate(tt.token)
			require.ErrorIs(t, err, domain.ErrUnauthenticated)
		})
	}
}

func TestService_Validate_PerfilOnlyClaimSet(t *testing.T) {
	t.Parallel()

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, AccessClaims{
		Email:  "editor@teste.com",
		Perfil: "Editor",
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}).SignedString(testSecret)
	require.NoError(t, err)

	got, err := NewService(testSecret).Validate(token)
	require.NoError(t, err)
	assert.Equal(t, domain.RoleEditor, got.Role)
}

func TestService_Validate_EmptySecretNeverValid(t *testing.T) {
	t.Parallel()

	token, err := NewService(testSecret).Issue(domain.Identity{Email: "adm@teste.com", Role: domain.RoleAdmin})
	require.NoError(t, err)

	_, err = NewService(nil).Validate(token)
	require.ErrorIs(t, err, domain.ErrUnauthenticated)
}
