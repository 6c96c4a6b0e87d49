package server

import (
	"app/internal/config"
	"app/internal/handler"
	"app/internal/usecase"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
)

type Handlers struct {
	Product    *handler.ProductHandler
	Cart       *handler.CartHandler
	Checkout   *handler.CheckoutHandler
	Auth       *handler.AuthHandler
	AdminOrder *handler.AdminOrderHandler
}

// New はechoを組み立てる。起動は呼び出し側。
func New(cfg config.Config, guard *usecase.SessionGuard, h Handlers) *echo.Echo {
	e := echo.New()
	e.HideBanner = true

	e.Use(echomw.Recover())
	if cfg.FEURL != "" {
		e.Use(echomw.CORSWithConfig(echomw.CORSConfig{
			AllowOrigins:     []string{cfg.FEURL},
			AllowCredentials: true,
		}))
	}

	RegisterRoutes(e, cfg, guard, h)
	return e
}

func Start(e *echo.Echo, addr string) error {
	return e.Start(addr)
}
