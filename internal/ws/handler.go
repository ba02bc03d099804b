package ws

import (
	"log"
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"
)

type Handler struct {
	hub *Hub
}

func NewWsHandler(hub *Hub) *Handler {
	return &Handler{hub: hub}
}

var upgrade = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// HandleWs prende a conexão entregando as notificações até o navegador
// desconectar.
func (h *Handler) HandleWs(c echo.Context) error {
	conn, err := upgrade.Upgrade(c.Response(), c.Request(), nil)
	if err != nil {
		log.Println(err)
		return err
	}

	cl := &Client{
		Conn:    conn,
		Message: make(chan *Notification, 10),
		ID:      uuid.New().String(),
	}
	h.hub.Register <- cl

	go func() {
		defer func() {
			h.hub.Unregister <- cl
			conn.Close()
		}()
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	for n := range cl.Message {
		if err := conn.WriteJSON(n); err != nil {
			return nil
		}
	}
	return nil
}
