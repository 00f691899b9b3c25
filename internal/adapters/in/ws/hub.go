// Package ws streams committed parcel tracking events to websocket subscribers.
package ws

import (
	"context"
	"encoding/json"
	"sync"

	"parcelhub/internal/core/ports"

	"go.uber.org/zap"
)

const MessageTypeStatusChanged = "parcel.status_changed"

var _ ports.ParcelEventPublisher = (*Hub)(nil)

// Message is the envelope written to subscribers.
type Message struct {
	Type string `json:"type"`
	Data any    `json:"data,omitempty"`
}

// StatusChangedPayload mirrors one tracking log entry.
type StatusChangedPayload struct {
	ParcelID    string `json:"parcelId"`
	TrackingID  string `json:"trackingId"`
	Status      string `json:"status"`
	UpdatedBy   string `json:"updatedBy"`
	Description string `json:"description,omitempty"`
	Timestamp   string `json:"timestamp"`
}

// Hub keeps the connected clients and fans events out to those watching the
// event's tracking id. Slow clients are dropped instead of blocking Publish.
type Hub struct {
	clients    map[*Client]struct{}
	register   chan *Client
	unregister chan *Client
	done       chan struct{}
	mu         sync.RWMutex
	logger     *zap.Logger
}

func NewHub(logger *zap.Logger) *Hub {
	return &Hub{
		clients:    make(map[*Client]struct{}),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		done:       make(chan struct{}),
		logger:     logger,
	}
}

// Run serves registrations until ctx is cancelled, then disconnects everyone.
func (h *Hub) Run(ctx context.Context) {
	defer close(h.done)

	for {
		select {
		case client := <-h.register:
			h.mu.Lock()
			h.clients[client] = struct{}{}
			h.mu.Unlock()
			h.logger.Debug("client registered",
				zap.String("client_id", client.id),
				zap.String("tracking_id", client.trackingID),
			)

		case client := <-h.unregister:
			h.mu.Lock()
			h.remove(client)
			h.mu.Unlock()

		case <-ctx.Done():
			h.mu.Lock()
			for client := range h.clients {
				h.remove(client)
			}
			h.mu.Unlock()
			return
		}
	}
}

func (h *Hub) Register(client *Client) {
	select {
	case h.register <- client:
	case <-h.done:
		close(client.send)
	}
}

func (h *Hub) Unregister(client *Client) {
	select {
	case h.unregister <- client:
	case <-h.done:
	}
}

// Publish never fails because of subscribers; only an unencodable event is an error.
func (h *Hub) Publish(_ context.Context, event ports.ParcelStatusChanged) error {
	data, err := json.Marshal(Message{
		Type: MessageTypeStatusChanged,
		Data: StatusChangedPayload{
			ParcelID:    event.ParcelID.String(),
			TrackingID:  event.TrackingID,
			Status:      event.Status,
			UpdatedBy:   event.UpdatedBy.String(),
			Description: event.Description,
			Timestamp:   event.At.UTC().Format("2006-01-02T15:04:05.000Z07:00"),
		},
	})
	if err != nil {
		return err
	}

	var slow []*Client

	h.mu.RLock()
	delivered := 0
	for client := range h.clients {
		if client.trackingID != event.TrackingID {
			continue
		}
		select {
		case client.send <- data:
			delivered++
		default:
			slow = append(slow, client)
		}
	}
	h.mu.RUnlock()

	if len(slow) > 0 {
		h.mu.Lock()
		for _, client := range slow {
			h.logger.Warn("dropping slow client",
				zap.String("client_id", client.id),
				zap.String("tracking_id", client.trackingID),
			)
			h.remove(client)
		}
		h.mu.Unlock()
	}

	h.logger.Debug("parcel event published",
		zap.String("tracking_id", event.TrackingID),
		zap.String("status", event.Status),
		zap.Int("subscribers", delivered),
	)

	return nil
}

// Subscribers counts the clients watching trackingID.
func (h *Hub) Subscribers(trackingID string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()

	count := 0
	for client := range h.clients {
		if client.trackingID == trackingID {
			count++
		}
	}
	return count
}

// remove must be called with mu held for writing.
func (h *Hub) remove(client *Client) {
	if _, ok := h.clients[client]; !ok {
		return
	}
	delete(h.clients, client)
	close(client.send)
	h.logger.Debug("client unregistered", zap.String("client_id", client.id))
}
