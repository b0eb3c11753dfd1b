package httpserver

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/Skotchmaster/vehicle_api/internal/logging"
	"github.com/Skotchmaster/vehicle_api/internal/repo"
	"github.com/Skotchmaster/vehicle_api/internal/service"
	"github.com/Skotchmaster/vehicle_api/internal/transport"
	"github.com/Skotchmaster/vehicle_api/internal/util"
)

type VehicleHTTP struct {
	Svc *service.VehicleService
}

func (h *VehicleHTTP) CreateVehicle(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "vehicle.create")

	var req transport.VehicleRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("vehicle_create_error", "status", 400, "reason", "invalid body", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	v, err := h.Svc.Create(ctx, req)
	if err != nil {
		var verr *service.ValidationError
		if errors.As(err, &verr) {
			l.Warn("vehicle_create_error", "status", 400, "reason", "validation", "error", err)
			return c.JSON(http.StatusBadRequest, transport.ValidationErrors{Mensagens: verr.Messages})
		}
		l.Error("vehicle_create_error", "status", 500, "reason", "cannot add vehicle to db", "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "internal error")
	}

	l.Info("vehicle_create_success", "vehicle_id", v.ID)
	c.Response().Header().Set(echo.HeaderLocation, fmt.Sprintf("/veiculo/%d", v.ID))
	return c.JSON(http.StatusCreated, v)
}

func (h *VehicleHTTP) GetVehicles(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "vehicle.list")

	page := util.ParseIntDefault(c.QueryParam("pagina"), 1)
	filter := repo.VehicleFilter{
		Name:  c.QueryParam("nome"),
		Brand: c.QueryParam("marca"),
	}

	items, err := h.Svc.List(ctx, filter, page)
	if err != nil {
		l.Error("vehicle_list_error", "status", 500, "reason", "cannot list vehicles", "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "internal error")
	}
	return c.JSON(http.StatusOK, items)
}

func (h *VehicleHTTP) GetVehicle(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "vehicle.get")

	id, err := parseID(c)
	if err != nil {
		l.Warn("vehicle_get_error", "status", 400, "reason", "id is not an integer", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "id is not an integer")
	}

	v, err := h.Svc.Get(ctx, id)
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			l.Warn("vehicle_get_error", "status", 404, "reason", "vehicle not found")
			return echo.NewHTTPError(http.StatusNotFound, "veiculo nao encontrado")
		}
		l.Error("vehicle_get_error", "status", 500, "reason", "cannot get vehicle", "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "internal error")
	}
	return c.JSON(http.StatusOK, v)
}

func (h *VehicleHTTP) UpdateVehicle(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "vehicle.update")

	id, err := parseID(c)
	if err != nil {
		l.Warn("vehicle_update_error", "status", 400, "reason", "id is not an integer", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "id is not an integer")
	}

	var req transport.VehicleRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("vehicle_update_error", "status", 400, "reason", "invalid body", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	v, err := h.Svc.Update(ctx, id, req)
	if err != nil {
		var verr *service.ValidationError
		switch {
		case errors.Is(err, service.ErrNotFound):
			l.Warn("vehicle_update_error", "status", 404, "reason", "vehicle not found")
			return echo.NewHTTPError(http.StatusNotFound, "veiculo nao encontrado")
		case errors.As(err, &verr):
			l.Warn("vehicle_update_error", "status", 400, "reason", "validation", "error", err)
			return c.JSON(http.StatusBadRequest, transport.ValidationErrors{Mensagens: verr.Messages})
		default:
			l.Error("vehicle_update_error", "status", 500, "reason", "cannot update vehicle", "error", err)
			return echo.NewHTTPError(http.StatusInternalServerError, "internal error")
		}
	}

	l.Info("vehicle_update_success", "vehicle_id", v.ID)
	return c.JSON(http.StatusOK, v)
}

func (h *VehicleHTTP) DeleteVehicle(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "vehicle.delete")

	id, err := parseID(c)
	if err != nil {
		l.Warn("vehicle_delete_error", "status", 400, "reason", "id is not an integer", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "id is not an integer")
	}

	if err := h.Svc.Delete(ctx, id); err != nil {
		if errors.Is(err, service.ErrNotFound) {
			l.Warn("vehicle_delete_error", "status", 404, "reason", "vehicle not found")
			return echo.NewHTTPError(http.StatusNotFound, "veiculo nao encontrado")
		}
		l.Error("vehicle_delete_error", "status", 500, "reason", "cannot delete vehicle", "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "internal error")
	}

	l.Info("vehicle_delete_success", "vehicle_id", id)
	return c.NoContent(http.StatusNoContent)
}

func (h *VehicleHTTP) SearchVehicles(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "vehicle.search")

	page := util.ParseIntDefault(c.QueryParam("pagina"), 1)

	res, err := h.Svc.Search(ctx, c.QueryParam("q"), page)
	if err != nil {
		var verr *service.ValidationError
		if errors.As(err, &verr) {
			l.Warn("vehicle_search_error", "status", 400, "reason", "empty query")
			return c.JSON(http.StatusBadRequest, transport.ValidationErrors{Mensagens: verr.Messages})
		}
		l.Error("vehicle_search_error", "status", 500, "reason", "search failed", "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "internal error")
	}

	return c.JSON(http.StatusOK, transport.SearchResponse{Total: res.Total, Items: res.Items})
}
