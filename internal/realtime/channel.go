// Package realtime is the order event channel: one authenticated WebSocket
// per subscriber carrying the three order events as JSON envelopes. Delivery
// is in-order per connection and nothing more; the kitchen's polling backstop
// covers cross-connection skew.
package realtime

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"sync"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"qrdine/internal/models"
)

const (
	EventNewOrder           = "new-order"
	EventOrderUpdated       = "order-updated"
	EventOrderStatusUpdated = "order-status-updated"
)

// CloseTokenInvalid is the close code the backend sends when the token on an
// established connection stops being honored.
const CloseTokenInvalid = 4401

type Envelope struct {
	Event string          `json:"event"`
	Data  json.RawMessage `json:"data"`
}

// Handlers receives decoded events. Callbacks run on the channel's read
// goroutine, one at a time, in arrival order.
type Handlers struct {
	NewOrder           func(models.Order)
	OrderUpdated       func(models.Order)
	OrderStatusUpdated func(models.OrderStatusPatch)
	// AuthFailed fires when the connection is rejected or closed for token
	// invalidity. Ordinary disconnects do not fire it.
	AuthFailed func()
	// Disconnected fires once when the read loop stops for any reason other
	// than Close.
	Disconnected func(err error)
}

type Channel struct {
	conn      *websocket.Conn
	log       *zap.Logger
	closeOnce sync.Once
	closed    chan struct{}
}

// Dial connects to the backend's event socket, authenticating with the bearer
// token, and starts dispatching events to h.
func Dial(ctx context.Context, apiURL, token string, h Handlers, log *zap.Logger) (*Channel, error) {
	endpoint, err := socketURL(apiURL, token)
	if err != nil {
		return nil, err
	}

	conn, resp, err := websocket.DefaultDialer.DialContext(ctx, endpoint, nil)
	if err != nil {
		if resp != nil && (resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden) {
			log.Warn("socket handshake rejected", zap.Int("status", resp.StatusCode))
			if h.AuthFailed != nil {
				h.AuthFailed()
			}
			return nil, fmt.Errorf("socket authentication rejected: %w", err)
		}
		return nil, fmt.Errorf("failed to connect event socket: %w", err)
	}

	ch := &Channel{
		conn:   conn,
		log:    log,
		closed: make(chan struct{}),
	}
	go ch.readLoop(h)
	return ch, nil
}

// Close tears the connection down. Safe to call more than once.
func (c *Channel) Close() error {
	var err error
	c.closeOnce.Do(func() {
		close(c.closed)
		err = c.conn.Close()
	})
	return err
}

func (c *Channel) readLoop(h Handlers) {
	for {
		_, data, err := c.conn.ReadMessage()
		if err != nil {
			select {
			case <-c.closed:
				return
			default:
			}

			if websocket.IsCloseError(err, CloseTokenInvalid, websocket.ClosePolicyViolation) {
				c.log.Warn("socket closed for invalid token", zap.Error(err))
				if h.AuthFailed != nil {
					h.AuthFailed()
				}
			} else {
				c.log.Warn("socket disconnected", zap.Error(err))
			}
			if h.Disconnected != nil {
				h.Disconnected(err)
			}
			return
		}

		var env Envelope
		if err := json.Unmarshal(data, &env); err != nil {
			c.log.Warn("dropping malformed socket frame", zap.Error(err))
			continue
		}
		c.dispatch(env, h)
	}
}

func (c *Channel) dispatch(env Envelope, h Handlers) {
	switch env.Event {
	case EventNewOrder:
		var order models.Order
		if err := json.Unmarshal(env.Data, &order); err != nil {
			c.log.Warn("bad new-order payload", zap.Error(err))
			return
		}
		if h.NewOrder != nil {
			h.NewOrder(order)
		}
	case EventOrderUpdated:
		var order models.Order
		if err := json.Unmarshal(env.Data, &order); err != nil {
			c.log.Warn("bad order-updated payload", zap.Error(err))
			return
		}
		if h.OrderUpdated != nil {
			h.OrderUpdated(order)
		}
	case EventOrderStatusUpdated:
		var patch models.OrderStatusPatch
		if err := json.Unmarshal(env.Data, &patch); err != nil {
			c.log.Warn("bad order-status-updated payload", zap.Error(err))
			return
		}
		if h.OrderStatusUpdated != nil {
			h.OrderStatusUpdated(patch)
		}
	default:
		c.log.Debug("ignoring unknown event", zap.String("event", env.Event))
	}
}

func socketURL(apiURL, token string) (string, error) {
	u, err := url.Parse(apiURL)
	if err != nil {
		return "", fmt.Errorf("invalid API URL: %w", err)
	}
	switch u.Scheme {
	case "http":
		u.Scheme = "ws"
	case "https":
		u.Scheme = "wss"
	}
	u.Path = strings.TrimRight(u.Path, "/") + "/socket"
	q := u.Query()
	q.Set("token", token)
	u.RawQuery = q.Encode()
	return u.String(), nil
}
