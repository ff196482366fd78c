// Package events pushes coordinator status changes to websocket
// subscribers, so an editing surface can show save and deletion state
// without polling.
package events

import (
	"encoding/json"
	"sync"
	"time"

	"github.com/spacekeep/capture-service/internal/coordinator"
	"github.com/spacekeep/capture-service/internal/domain"

	"github.com/gin-gonic/gin"
	"github.com/lxzan/gws"
	"go.uber.org/zap"
)

const heartbeatWait = 60 * time.Second

// Event is one status push.
type Event struct {
	Type        string `json:"type"`
	ItemID      string `json:"itemId"`
	Status      string `json:"status,omitempty"`
	Reason      string `json:"reason,omitempty"`
	RemainingMs int64  `json:"remainingMs,omitempty"`
}

const (
	TypeDraftStatus       = "DraftStatus"
	TypeDeletionPending   = "DeletionPending"
	TypeDeletionCommitted = "DeletionCommitted"
	TypeDeletionCancelled = "DeletionCancelled"
)

// Hub fans coordinator signals out to every connected subscriber. The
// feed is one-way; inbound messages are ignored.
type Hub struct {
	gws.BuiltinEventHandler

	mu    sync.Mutex
	conns map[*gws.Conn]struct{}

	upgrader *gws.Upgrader
	logger   *zap.Logger
}

func NewHub(logger *zap.Logger) *Hub {
	if logger == nil {
		logger = zap.NewNop()
	}
	h := &Hub{
		conns:  make(map[*gws.Conn]struct{}),
		logger: logger,
	}
	h.upgrader = gws.NewUpgrader(h, &gws.ServerOption{
		Recovery: gws.Recovery,
	})
	return h
}

// Serve upgrades the request and subscribes the connection.
func (h *Hub) Serve(c *gin.Context) {
	socket, err := h.upgrader.Upgrade(c.Writer, c.Request)
	if err != nil {
		h.logger.Error("event feed upgrade failed", zap.Error(err))
		return
	}
	go socket.ReadLoop()
}

func (h *Hub) OnOpen(socket *gws.Conn) {
	_ = socket.SetDeadline(time.Now().Add(heartbeatWait))
	h.mu.Lock()
	h.conns[socket] = struct{}{}
	count := len(h.conns)
	h.mu.Unlock()
	h.logger.Debug("event feed subscriber connected", zap.Int("subscribers", count))
}

func (h *Hub) OnClose(socket *gws.Conn, err error) {
	h.mu.Lock()
	delete(h.conns, socket)
	count := len(h.conns)
	h.mu.Unlock()
	h.logger.Debug("event feed subscriber gone",
		zap.Int("subscribers", count),
		zap.Error(err))
}

func (h *Hub) OnPing(socket *gws.Conn, payload []byte) {
	_ = socket.SetDeadline(time.Now().Add(heartbeatWait))
	_ = socket.WritePong(payload)
}

func (h *Hub) OnMessage(socket *gws.Conn, message *gws.Message) {
	_ = message.Close()
}

// Subscribers returns the number of live connections.
func (h *Hub) Subscribers() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.conns)
}

func (h *Hub) broadcast(ev Event) {
	data, err := json.Marshal(ev)
	if err != nil {
		h.logger.Error("event marshal failed", zap.Error(err))
		return
	}
	h.mu.Lock()
	conns := make([]*gws.Conn, 0, len(h.conns))
	for conn := range h.conns {
		conns = append(conns, conn)
	}
	h.mu.Unlock()
	for _, conn := range conns {
		if err := conn.WriteMessage(gws.OpcodeText, data); err != nil {
			h.logger.Debug("event push failed", zap.Error(err))
		}
	}
}

func (h *Hub) DraftStatusChanged(itemID string, status domain.DraftStatus, reason string) {
	h.broadcast(Event{
		Type:   TypeDraftStatus,
		ItemID: itemID,
		Status: string(status),
		Reason: reason,
	})
}

func (h *Hub) DeletionPending(itemID string, remaining time.Duration) {
	h.broadcast(Event{
		Type:        TypeDeletionPending,
		ItemID:      itemID,
		RemainingMs: remaining.Milliseconds(),
	})
}

func (h *Hub) DeletionCommitted(itemID string) {
	h.broadcast(Event{Type: TypeDeletionCommitted, ItemID: itemID})
}

func (h *Hub) DeletionCancelled(itemID string) {
	h.broadcast(Event{Type: TypeDeletionCancelled, ItemID: itemID})
}

var _ coordinator.Signals = (*Hub)(nil)
