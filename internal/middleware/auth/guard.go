package auth

import (
	"context"
	"net/http"
	"slices"

	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"

	"github.com/Skotchmaster/vehicle_api/internal/domain"
	"github.com/Skotchmaster/vehicle_api/internal/logging"
	"github.com/Skotchmaster/vehicle_api/internal/tokens"
)

const CtxIdentity = "identity"

type identityKey struct{}

// Guard turns a bearer token into a domain.Identity and checks it against
// the roles a route was registered with. 401 responses carry no detail.
type Guard struct {
	authn echo.MiddlewareFunc
}

func NewGuard(ts *tokens.Service) *Guard {
	authn := echojwt.WithConfig(echojwt.Config{
		ContextKey:  CtxIdentity,
		TokenLookup: "header:" + echo.HeaderAuthorization + ":Bearer ",
		ParseTokenFunc: func(c echo.Context, auth string) (interface{}, error) {
			return ts.Validate(auth)
		},
		ErrorHandler: func(c echo.Context, err error) error {
			l := logging.FromContext(c.Request().Context()).With("middleware", "auth_guard")
			reason := "invalid token"
			if c.Request().Header.Get(echo.HeaderAuthorization) == "" {
				reason = "missing authorization header"
			}
			l.Warn("auth_failed", "status", http.StatusUnauthorized, "reason", reason, "error", err)
			return echo.NewHTTPError(http.StatusUnauthorized)
		},
	})
	return &Guard{authn: authn}
}

// RequireAuth admits any valid identity.
func (g *Guard) RequireAuth() echo.MiddlewareFunc {
	return g.RequireRoles()
}

func (g *Guard) RequireRoles(roles ...domain.Role) echo.MiddlewareFunc {
	required := slices.Clone(roles)
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return g.authn(authorize(required, next))
	}
}

func authorize(required []domain.Role, next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		identity, ok := IdentityFrom(c)
		if !ok {
			return echo.NewHTTPError(http.StatusUnauthorized)
		}

		ctx := c.Request().Context()
		l := logging.FromContext(ctx).With("email", identity.Email, "perfil", identity.Role.String())

		if err := domain.Authorize(identity, required); err != nil {
			l.Warn("auth_failed", "status", http.StatusForbidden, "reason", "role not allowed")
			return echo.NewHTTPError(http.StatusForbidden)
		}

		ctx = logging.IntoContext(context.WithValue(ctx, identityKey{}, identity), l)
		c.SetRequest(c.Request().WithContext(ctx))
		return next(c)
	}
}

func IdentityFrom(c echo.Context) (domain.Identity, bool) {
	identity, ok := c.Get(CtxIdentity).(domain.Identity)
	return identity, ok
}

func IdentityFromContext(ctx context.Context) (domain.Identity, bool) {
	identity, ok := ctx.Value(identityKey{}).(domain.Identity)
	return identity, ok
}
