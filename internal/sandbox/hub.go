package sandbox

import (
	"encoding/json"
	"net/http"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

type envelope struct {
	Event string      `json:"event"`
	Data  interface{} `json:"data"`
}

type subscriber struct {
	conn      *websocket.Conn
	companyID uint
	writeMu   sync.Mutex
}

// hub fans order events out to every socket subscriber of a company.
type hub struct {
	mu       sync.Mutex
	subs     map[*subscriber]struct{}
	upgrader websocket.Upgrader
	log      *zap.Logger
}

func newHub(log *zap.Logger) *hub {
	return &hub{
		subs: make(map[*subscriber]struct{}),
		upgrader: websocket.Upgrader{
			CheckOrigin: func(*http.Request) bool { return true },
		},
		log: log,
	}
}

// handleSocket authenticates the token query parameter and keeps the
// connection registered until it drops.
func (s *Server) handleSocket(c *gin.Context) {
	raw := c.Query("token")
	cl, err := s.parseToken(raw)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "invalid token"})
		return
	}

	conn, err := s.hub.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		s.log.Warn("socket upgrade failed", zap.Error(err))
		return
	}

	sub := &subscriber{conn: conn, companyID: cl.CompanyID}
	s.hub.mu.Lock()
	s.hub.subs[sub] = struct{}{}
	s.hub.mu.Unlock()

	// Drain the connection; subscribers never send anything meaningful.
	go func() {
		defer func() {
			s.hub.mu.Lock()
			delete(s.hub.subs, sub)
			s.hub.mu.Unlock()
			conn.Close()
		}()
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()
}

// broadcast sends one event to every subscriber of the company. Slow or dead
// connections are dropped rather than blocking order mutations.
func (h *hub) broadcast(companyID uint, event string, data interface{}) {
	payload, err := json.Marshal(envelope{Event: event, Data: data})
	if err != nil {
		h.log.Error("failed to marshal event", zap.String("event", event), zap.Error(err))
		return
	}

	h.mu.Lock()
	targets := make([]*subscriber, 0, len(h.subs))
	for sub := range h.subs {
		if sub.companyID == companyID {
			targets = append(targets, sub)
		}
	}
	h.mu.Unlock()

	for _, sub := range targets {
		sub.writeMu.Lock()
		err := sub.conn.WriteMessage(websocket.TextMessage, payload)
		sub.writeMu.Unlock()
		if err != nil {
			h.log.Debug("dropping dead subscriber", zap.Error(err))
			h.mu.Lock()
			delete(h.subs, sub)
			h.mu.Unlock()
			sub.conn.Close()
		}
	}
}
