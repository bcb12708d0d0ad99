package router

import (
	"github.com/labstack/echo/v4"
)

func New(
	e *echo.Echo,
	hospitalScope echo.MiddlewareFunc,
	cowCtrl interface {
		List(echo.Context) error
		Get(echo.Context) error
	},
	hospitalCtrl interface {
		List(echo.Context) error
		Get(echo.Context) error
		Pending(echo.Context) error
	},
	reportCtrl interface{ Register(*echo.Echo) },
	healthCtrl interface{ Health(echo.Context) error },
) *echo.Echo {
	e.GET("/health", healthCtrl.Health)

	e.GET("/cows", cowCtrl.List)
	e.GET("/cows/:id", cowCtrl.Get)
	e.GET("/report/:id", cowCtrl.Get) // target of the printed cow links

	e.GET("/hospitals", hospitalCtrl.List)
	h := e.Group("/hospitals/:id", hospitalScope)
	h.GET("", hospitalCtrl.Get)
	h.GET("/reports", hospitalCtrl.Pending)
	e.GET("/api/hospital_reports/:id", hospitalCtrl.Pending, hospitalScope)

	reportCtrl.Register(e)
	return e
}
