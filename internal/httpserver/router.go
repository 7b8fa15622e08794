package httpserver

import (
	"github.com/labstack/echo/v4"
)

type Deps struct {
	ProductHandler *ProductHTTP
	OrderHandler   *OrderHTTP
	UserHandler    *UserHTTP
	WSHandler      *WSHandler
	UploadDir      string
}

func Register(e *echo.Echo, d *Deps) {
	e.GET("/health/live", func(c echo.Context) error { return c.NoContent(200) })
	e.GET("/health/ready", func(c echo.Context) error { return c.NoContent(200) })

	e.GET("/products", d.ProductHandler.List)
	e.POST("/products", d.ProductHandler.Create)
	e.PUT("/products/:id", d.ProductHandler.Update)
	e.DELETE("/products/:id", d.ProductHandler.Delete)
	e.PATCH("/products/:id/status", d.ProductHandler.SetStatus)

	e.POST("/orders", d.OrderHandler.Create)
	e.GET("/orders", d.OrderHandler.List)
	e.GET("/orders/pending-count", d.OrderHandler.PendingCount)
	e.PATCH("/orders/:orderId/confirm", d.OrderHandler.Confirm)

	e.POST("/login", d.UserHandler.Login)
	e.GET("/users", d.UserHandler.List)
	e.POST("/users", d.UserHandler.Create)
	e.PATCH("/users/:id", d.UserHandler.Update)
	e.DELETE("/users/:id", d.UserHandler.Delete)

	e.GET("/ws", d.WSHandler.Serve)
	e.Static("/images", d.UploadDir)
}
