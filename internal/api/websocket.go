package api

import (
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"github.com/sufra/receipt-renderer/internal/printing"
)

// WebSocket event names pushed to clients.
const (
	EventJobUpdate      = "job_update"
	EventPrinterAdded   = "printer_added"
	EventPrinterRemoved = "printer_removed"
)

// wsMessage is the envelope for every pushed event.
type wsMessage struct {
	Event string      `json:"event"`
	Data  interface{} `json:"data"`
}

type wsClient struct {
	conn *websocket.Conn
	send chan wsMessage
}

// hub tracks connected clients for broadcasts. The socket is
// push-only: printing is driven over the HTTP API and clients use the
// socket to follow job and printer state.
type hub struct {
	clients map[*wsClient]bool
	mu      sync.RWMutex
}

func newHub() *hub {
	return &hub{clients: make(map[*wsClient]bool)}
}

func (h *hub) add(c *wsClient) {
	h.mu.Lock()
	h.clients[c] = true
	h.mu.Unlock()
}

func (h *hub) remove(c *wsClient) {
	h.mu.Lock()
	delete(h.clients, c)
	h.mu.Unlock()
}

func (h *hub) broadcast(msg wsMessage) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	for c := range h.clients {
		select {
		case c.send <- msg:
		default:
			// Client buffer full, drop the event.
		}
	}
}

func (s *Server) handleWebSocket(c *gin.Context) {
	conn, err := s.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		return
	}

	client := &wsClient{
		conn: conn,
		send: make(chan wsMessage, 256),
	}
	s.hub.add(client)

	go client.writePump()
	go func() {
		defer func() {
			s.hub.remove(client)
			close(client.send)
			conn.Close()
		}()
		// Drain until the peer goes away.
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()
}

func (c *wsClient) writePump() {
	defer c.conn.Close()

	for msg := range c.send {
		if err := c.conn.WriteJSON(msg); err != nil {
			return
		}
	}
}

// BroadcastJobUpdate pushes a job state change to every client.
func (s *Server) BroadcastJobUpdate(job printing.Job) {
	s.hub.broadcast(wsMessage{Event: EventJobUpdate, Data: job})
}

// BroadcastPrinterAdded announces a newly attached printer.
func (s *Server) BroadcastPrinterAdded(d *printing.Device) {
	s.hub.broadcast(wsMessage{
		Event: EventPrinterAdded,
		Data: map[string]interface{}{
			"id":          d.ID,
			"kind":        d.Kind,
			"description": d.Description,
			"name":        d.Name,
		},
	})
}

// BroadcastPrinterRemoved announces a detached printer.
func (s *Server) BroadcastPrinterRemoved(id string) {
	s.hub.broadcast(wsMessage{
		Event: EventPrinterRemoved,
		Data:  map[string]interface{}{"id": id},
	})
}
