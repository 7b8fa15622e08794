package httpserver

import (
	"net/http"

	"github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"

	"github.com/softstep/shop/internal/logging"
	"github.com/softstep/shop/internal/notify"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

type WSHandler struct {
	Hub *notify.Hub
}

// Serve upgrades the connection and parks it in the hub until the client
// disconnects. Connected clients receive every pending-count broadcast; there
// is no auth and no replay, a fresh client pulls the current count itself.
func (h *WSHandler) Serve(c echo.Context) error {
	conn, err := upgrader.Upgrade(c.Response(), c.Request(), nil)
	if err != nil {
		logging.FromContext(c.Request().Context()).Warn("websocket upgrade failed", "error", err)
		return err
	}

	h.Hub.Handle(conn)
	return nil
}
