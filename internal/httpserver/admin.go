package httpserver

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/Skotchmaster/vehicle_api/internal/logging"
	"github.com/Skotchmaster/vehicle_api/internal/service"
	"github.com/Skotchmaster/vehicle_api/internal/transport"
)

type AdminHTTP struct {
	Svc *service.AdminService
}

func (h *AdminHTTP) CreateAdmin(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "admin.create")

	var req transport.AdminRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("admin_create_error", "status", 400, "reason", "invalid body", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	adm, err := h.Svc.Create(ctx, req)
	if err != nil {
		var verr *service.ValidationError
		switch {
		case errors.As(err, &verr):
			l.Warn("admin_create_error", "status", 400, "reason", "validation", "error", err)
			return c.JSON(http.StatusBadRequest, transport.ValidationErrors{Mensagens: verr.Messages})
		case errors.Is(err, service.ErrConflict):
			l.Warn("admin_create_error", "status", 409, "reason", "email already registered")
			return echo.NewHTTPError(http.StatusConflict, "administrador ja cadastrado")
		default:
			l.Error("admin_create_error", "status", 500, "reason", "cannot add administrator to db", "error", err)
			return echo.NewHTTPError(http.StatusInternalServerError, "internal error")
		}
	}

	l.Info("admin_create_success", "admin_id", adm.ID)
	c.Response().Header().Set(echo.HeaderLocation, fmt.Sprintf("/administrador/%d", adm.ID))
	return c.JSON(http.StatusCreated, service.ToAdminView(*adm))
}

// GetAdmins pages only when pagina is present.
func (h *AdminHTTP) GetAdmins(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "admin.list")

	page := 0
	if raw := c.QueryParam("pagina"); raw != "" {
		p, err := strconv.Atoi(raw)
		if err != nil {
			l.Warn("admin_list_error", "status", 400, "reason", "pagina is not an integer", "error", err)
			return echo.NewHTTPError(http.StatusBadRequest, "pagina is not an integer")
		}
		page = max(p, 1)
	}

	items, err := h.Svc.List(ctx, page)
	if err != nil {
		l.Error("admin_list_error", "status", 500, "reason", "cannot list administrators", "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "internal error")
	}

	views := make([]transport.AdminView, len(items))
	for i, adm := range items {
		views[i] = service.ToAdminView(adm)
	}
	return c.JSON(http.StatusOK, views)
}

func (h *AdminHTTP) GetAdmin(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "admin.get")

	id, err := parseID(c)
	if err != nil {
		l.Warn("admin_get_error", "status", 400, "reason", "id is not an integer", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "id is not an integer")
	}

	adm, err := h.Svc.Get(ctx, id)
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			l.Warn("admin_get_error", "status", 404, "reason", "administrator not found")
			return echo.NewHTTPError(http.StatusNotFound, "administrador nao encontrado")
		}
		l.Error("admin_get_error", "status", 500, "reason", "cannot get administrator", "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "internal error")
	}

	return c.JSON(http.StatusOK, service.ToAdminView(*adm))
}

func parseID(c echo.Context) (uint, error) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return 0, err
	}
	return uint(id), nil
}
