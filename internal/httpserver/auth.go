package httpserver

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/Skotchmaster/vehicle_api/internal/domain"
	"github.com/Skotchmaster/vehicle_api/internal/logging"
	"github.com/Skotchmaster/vehicle_api/internal/service"
	"github.com/Skotchmaster/vehicle_api/internal/transport"
)

type AuthHTTP struct {
	Svc *service.AuthService
}

// Login answers 401 with an empty body for any credential mismatch.
func (h *AuthHTTP) Login(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "auth_login")

	var req transport.LoginRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("login_error", "status", 400, "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	res, err := h.Svc.Login(ctx, req.Email, req.Senha)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrCredentialNotFound):
			l.Warn("login_failed", "status", 401, "reason", "invalid email or password")
			return c.NoContent(http.StatusUnauthorized)
		case errors.Is(err, domain.ErrConfiguration):
			l.Error("login_failed", "status", 500, "reason", "JWT_SECRET is not configured", "error", err)
			return echo.NewHTTPError(http.StatusInternalServerError, "internal error")
		default:
			l.Error("login_failed", "status", 500, "reason", "internal error", "error", err)
			return echo.NewHTTPError(http.StatusInternalServerError, "internal error")
		}
	}

	l.Info("login_success", "perfil", res.Perfil)
	return c.JSON(http.StatusOK, transport.LoggedAdmin{
		Email:  res.Email,
		Perfil: res.Perfil,
		Token:  res.Token,
	})
}
