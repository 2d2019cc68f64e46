// internal/websocket/hub.go
package websocket

import (
	"context"
	"sync"

	wstypes "showroom-service/internal/domain/websocket"

	"go.uber.org/zap"
)

// Hub fans catalog change events out to every connected display screen.
// Run owns the client set; other goroutines talk to it over channels.
type Hub struct {
	clients map[*Client]struct{}
	mu      sync.RWMutex

	register   chan *Client
	unregister chan *Client
	broadcast  chan *wstypes.WSMessage

	done     chan struct{}
	doneOnce sync.Once

	logger *zap.Logger
}

func NewHub(logger *zap.Logger) *Hub {
	return &Hub{
		clients:    make(map[*Client]struct{}),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		broadcast:  make(chan *wstypes.WSMessage, 256),
		done:       make(chan struct{}),
		logger:     logger,
	}
}

// Run processes registrations and broadcasts until ctx is cancelled, then
// closes every client.
func (h *Hub) Run(ctx context.Context) {
	defer h.doneOnce.Do(func() { close(h.done) })

	for {
		select {
		case <-ctx.Done():
			h.shutdown()
			return

		case client := <-h.register:
			h.registerClient(client)

		case client := <-h.unregister:
			h.unregisterClient(client)

		case msg := <-h.broadcast:
			h.broadcastMessage(msg)
		}
	}
}

// Register hands a connected client to the hub. It returns false once the
// hub has stopped.
func (h *Hub) Register(client *Client) bool {
	select {
	case h.register <- client:
		return true
	case <-h.done:
		return false
	}
}

func (h *Hub) leave(client *Client) {
	select {
	case h.unregister <- client:
	case <-h.done:
	}
}

// Publish queues a catalog change for every client. It never blocks; when
// the queue is full the change is dropped.
func (h *Hub) Publish(change wstypes.CatalogChange) {
	msg := wstypes.NewMessage(wstypes.EventTypeCatalogChanged, change)
	select {
	case h.broadcast <- msg:
	default:
		h.logger.Warn("display broadcast queue full, dropping change",
			zap.String("entity", string(change.Entity)),
			zap.Int64("id", change.ID),
		)
	}
}

// TotalClients returns the number of connected screens.
func (h *Hub) TotalClients() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

func (h *Hub) registerClient(client *Client) {
	h.mu.Lock()
	h.clients[client] = struct{}{}
	total := len(h.clients)
	h.mu.Unlock()

	h.logger.Info("display connected", zap.String("remote", client.remoteAddr), zap.Int("total", total))

	if data, err := wstypes.NewMessage(wstypes.EventTypeConnected, nil).ToJSON(); err == nil {
		h.deliver(client, data)
	}
}

func (h *Hub) unregisterClient(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if _, ok := h.clients[client]; ok {
		delete(h.clients, client)
		close(client.send)
		h.logger.Info("display disconnected", zap.String("remote", client.remoteAddr), zap.Int("total", len(h.clients)))
	}
}

func (h *Hub) broadcastMessage(msg *wstypes.WSMessage) {
	data, err := msg.ToJSON()
	if err != nil {
		h.logger.Error("failed to marshal broadcast", zap.Error(err))
		return
	}

	h.mu.RLock()
	clients := make([]*Client, 0, len(h.clients))
	for client := range h.clients {
		clients = append(clients, client)
	}
	h.mu.RUnlock()

	for _, client := range clients {
		h.deliver(client, data)
	}
}

// deliver queues data on the client, dropping clients that cannot keep up.
// Only called from Run.
func (h *Hub) deliver(client *Client, data []byte) {
	select {
	case client.send <- data:
	default:
		h.logger.Warn("display too slow, disconnecting", zap.String("remote", client.remoteAddr))
		h.unregisterClient(client)
	}
}

func (h *Hub) shutdown() {
	h.mu.Lock()
	defer h.mu.Unlock()

	for client := range h.clients {
		close(client.send)
		delete(h.clients, client)
	}
}
