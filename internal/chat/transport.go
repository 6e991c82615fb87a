package chat

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"hmade-storefront/internal/logger"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

// Conn is one open chat socket. ReadFrame is called from a single reader
// goroutine and WriteJSON from the owning goroutine only.
type Conn interface {
	ReadFrame() (Frame, error)
	WriteJSON(v any) error
	Close() error
}

type Dialer interface {
	Dial(ctx context.Context, url string) (Conn, error)
}

// WebsocketDialer dials the chat backend with gorilla/websocket.
type WebsocketDialer struct {
	Dialer *websocket.Dialer
	Header http.Header
}

func NewWebsocketDialer() *WebsocketDialer {
	return &WebsocketDialer{
		Dialer: &websocket.Dialer{
			Proxy:            http.ProxyFromEnvironment,
			HandshakeTimeout: 10 * time.Second,
		},
	}
}

func (d *WebsocketDialer) Dial(ctx context.Context, url string) (Conn, error) {
	ws, resp, err := d.Dialer.DialContext(ctx, url, d.Header)
	if err != nil {
		if resp != nil {
			return nil, fmt.Errorf("chat dial %s: %w (status %d)", url, err, resp.StatusCode)
		}
		return nil, fmt.Errorf("chat dial %s: %w", url, err)
	}
	return &wsConn{ws: ws}, nil
}

type wsConn struct {
	ws *websocket.Conn
}

func (c *wsConn) ReadFrame() (Frame, error) {
	for {
		var f Frame
		_, data, err := c.ws.ReadMessage()
		if err != nil {
			return Frame{}, err
		}
		if err := json.Unmarshal(data, &f); err != nil {
			logger.L().Warn("chat frame parse error", zap.Error(err))
			continue
		}
		return f, nil
	}
}

func (c *wsConn) WriteJSON(v any) error {
	_ = c.ws.SetWriteDeadline(time.Now().Add(10 * time.Second))
	return c.ws.WriteJSON(v)
}

func (c *wsConn) Close() error {
	_ = c.ws.WriteControl(websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""),
		time.Now().Add(time.Second))
	return c.ws.Close()
}
