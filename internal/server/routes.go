package server

import (
	"app/internal/config"
	"app/internal/middleware"
	"app/internal/usecase"

	"github.com/labstack/echo/v4"
)

func RegisterRoutes(e *echo.Echo, cfg config.Config, guard *usecase.SessionGuard, h Handlers) {
	h.Product.RegisterRoutes(e)
	h.Cart.RegisterRoutes(e)
	h.Checkout.RegisterRoutes(e)

	// 管理ルートは必ずガードを通す
	guarded := e.Group("/admin")
	guarded.Use(middleware.SessionGuard(cfg, guard))

	h.Auth.RegisterRoutes(e, guarded)
	h.AdminOrder.RegisterRoutes(guarded)
}
