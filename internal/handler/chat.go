package handler

import (
	"net/http"
	"strings"
	"sync"
	"time"

	"hmade-storefront/internal/logger"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

const (
	relayWriteWait = 10 * time.Second
	relayMaxFrame  = 16 << 10
)

type chatCommand struct {
	Type    string `json:"type"`
	Message string `json:"message,omitempty"`
}

type chatError struct {
	Error string `json:"error"`
}

// ChatSocket upgrades the browser connection and relays it to one chat
// client. The widget is mounted for as long as the browser socket lives.
func (h *Handler) ChatSocket(w http.ResponseWriter, r *http.Request) {
	log := logger.FromCtx(r.Context()).With(zap.String("layer", "handler"), zap.String("method", "ChatSocket"))

	upgrader := websocket.Upgrader{
		ReadBufferSize:  4096,
		WriteBufferSize: 4096,
		CheckOrigin:     h.checkOrigin,
	}
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Warn("chat upgrade failed", zap.Error(err))
		return
	}
	conn.SetReadLimit(relayMaxFrame)

	client := h.d.NewChat()
	relay := &chatRelay{conn: conn}

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		for u := range client.Updates() {
			if err := relay.write(u); err != nil {
				log.Debug("browser socket write failed", zap.Error(err))
				_ = conn.Close()
				return
			}
		}
	}()

	client.Start()
	log.Info("chat widget mounted")

	for {
		var cmd chatCommand
		if err := conn.ReadJSON(&cmd); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				log.Warn("browser socket closed unexpectedly", zap.Error(err))
			}
			break
		}

		var cmdErr error
		switch cmd.Type {
		case "send":
			cmdErr = client.Send(cmd.Message)
		case "clear":
			cmdErr = client.Clear()
		default:
			_ = relay.write(chatError{Error: "unknown command " + cmd.Type})
			continue
		}
		if cmdErr != nil {
			_ = relay.write(chatError{Error: cmdErr.Error()})
		}
	}

	client.Close()
	wg.Wait()
	_ = relay.close()
	log.Info("chat widget unmounted")
}

func (h *Handler) checkOrigin(r *http.Request) bool {
	origin := r.Header.Get("Origin")
	if origin == "" || h.d.AllowedOrigin == "" {
		return true
	}
	return strings.EqualFold(strings.TrimRight(origin, "/"), strings.TrimRight(h.d.AllowedOrigin, "/"))
}

// chatRelay serializes writes to the browser socket.
type chatRelay struct {
	mu   sync.Mutex
	conn *websocket.Conn
}

func (c *chatRelay) write(v any) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	_ = c.conn.SetWriteDeadline(time.Now().Add(relayWriteWait))
	return c.conn.WriteJSON(v)
}

func (c *chatRelay) close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	_ = c.conn.SetWriteDeadline(time.Now().Add(relayWriteWait))
	_ = c.conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
	return c.conn.Close()
}
