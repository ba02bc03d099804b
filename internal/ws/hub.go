package ws

import (
	"sync"

	"github.com/gorilla/websocket"
)

// Notification é o aviso enviado a todos os navegadores conectados: o
// equivalente dos toasts da interface.
type Notification struct {
	Tipo     string `json:"tipo"`
	Mensagem string `json:"mensagem"`
}

type Client struct {
	Conn    *websocket.Conn
	Message chan *Notification
	ID      string
}

type Hub struct {
	Clients    map[string]*Client
	Register   chan *Client
	Unregister chan *Client
	Broadcast  chan *Notification
	Mu         *sync.RWMutex
}

func NewHub() *Hub {
	return &Hub{
		Clients:    make(map[string]*Client),
		Register:   make(chan *Client),
		Unregister: make(chan *Client),
		Broadcast:  make(chan *Notification, 16),
		Mu:         &sync.RWMutex{},
	}
}

func (h *Hub) Run() {
	for {
		select {
		case cl := <-h.Register:
			h.Mu.Lock()
			if _, ok := h.Clients[cl.ID]; !ok {
				h.Clients[cl.ID] = cl
			}
			h.Mu.Unlock()

		case cl := <-h.Unregister:
			h.Mu.Lock()
			if _, ok := h.Clients[cl.ID]; ok {
				delete(h.Clients, cl.ID)
				close(cl.Message)
			}
			h.Mu.Unlock()

		case n := <-h.Broadcast:
			h.Mu.RLock()
			for _, cl := range h.Clients {
				select {
				case cl.Message <- n:
				default:
					// Cliente lento não segura os demais.
				}
			}
			h.Mu.RUnlock()
		}
	}
}

// Notify implementa o notificador do fluxo de verificação sem bloquear o
// chamador quando ninguém está conectado.
func (h *Hub) Notify(tipo, mensagem string) {
	select {
	case h.Broadcast <- &Notification{Tipo: tipo, Mensagem: mensagem}:
	default:
	}
}
