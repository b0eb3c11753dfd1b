package httpserver

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"github.com/Skotchmaster/vehicle_api/internal/db"
	"github.com/Skotchmaster/vehicle_api/internal/domain"
	"github.com/Skotchmaster/vehicle_api/internal/logging"
	"github.com/Skotchmaster/vehicle_api/internal/middleware/auth"
	"github.com/Skotchmaster/vehicle_api/internal/transport"
)

type Deps struct {
	DB             *gorm.DB
	Guard          *auth.Guard
	AuthHandler    *AuthHTTP
	AdminHandler   *AdminHTTP
	VehicleHandler *VehicleHTTP
}

func Register(e *echo.Echo, d *Deps) {
	e.GET("/health/live", func(c echo.Context) error { return c.NoContent(http.StatusOK) })
	e.GET("/health/ready", ready(d.DB))

	e.GET("/", func(c echo.Context) error {
		return c.JSON(http.StatusOK, transport.Home{
			Mensagem: "Bem vindo a API de veiculos - Minimal API",
			Doc:      "/swagger",
		})
	})

	e.POST("/administradores/login", d.AuthHandler.Login)

	admins := e.Group("/administradores", d.Guard.RequireRoles(domain.RoleAdmin))
	admins.POST("", d.AdminHandler.CreateAdmin)
	admins.GET("", d.AdminHandler.GetAdmins)
	admins.GET("/:id", d.AdminHandler.GetAdmin)

	vehicles := e.Group("/veiculos")
	vehicles.POST("", d.VehicleHandler.CreateVehicle, d.Guard.RequireRoles(domain.RoleAdmin, domain.RoleEditor))

	authed := vehicles.Group("", d.Guard.RequireAuth())
	authed.GET("", d.VehicleHandler.GetVehicles)
	authed.GET("/busca", d.VehicleHandler.SearchVehicles)
	authed.GET("/:id", d.VehicleHandler.GetVehicle)
	authed.PUT("/:id", d.VehicleHandler.UpdateVehicle)
	authed.DELETE("/:id", d.VehicleHandler.DeleteVehicle)
}

func ready(gdb *gorm.DB) echo.HandlerFunc {
	return func(c echo.Context) error {
		ctx, cancel := context.WithTimeout(c.Request().Context(), 2*time.Second)
		defer cancel()

		if err := db.Ping(ctx, gdb); err != nil {
			logging.FromContext(ctx).Error("readiness_failed", "status", 503, "error", err)
			return c.NoContent(http.StatusServiceUnavailable)
		}
		return c.NoContent(http.StatusOK)
	}
}
