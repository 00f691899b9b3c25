package ws_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"parcelhub/internal/adapters/in/ws"
	"parcelhub/internal/core/domain/model/kernel"
	"parcelhub/internal/core/ports"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

const (
	watched = "TRK-20250101-000001"
	other   = "TRK-20250101-000002"
)

func startHub(t *testing.T) (*ws.Hub, *httptest.Server) {
	t.Helper()

	ctx, cancel := context.WithCancel(context.Background())
	hub := ws.NewHub(zap.NewNop())
	go hub.Run(ctx)

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = hub.Serve(w, r, strings.TrimPrefix(r.URL.Path, "/"))
	}))

	t.Cleanup(func() {
		server.Close()
		cancel()
	})

	return hub, server
}

func dial(t *testing.T, hub *ws.Hub, server *httptest.Server, trackingID string) *websocket.Conn {
	t.Helper()

	before := hub.Subscribers(trackingID)
	url := "ws" + strings.TrimPrefix(server.URL, "http") + "/" + trackingID
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })

	require.Eventually(t, func() bool {
		return hub.Subscribers(trackingID) == before+1
	}, 2*time.Second, 10*time.Millisecond)

	return conn
}

func event(trackingID, status string) ports.ParcelStatusChanged {
	return ports.ParcelStatusChanged{
		ParcelID:    kernel.NewUUID(),
		TrackingID:  trackingID,
		Status:      status,
		UpdatedBy:   kernel.NewUUID(),
		Description: "Parcel picked up by rider",
		At:          time.Date(2025, 1, 1, 10, 30, 0, 0, time.UTC),
	}
}

func readMessage(t *testing.T, conn *websocket.Conn) (ws.Message, ws.StatusChangedPayload) {
	t.Helper()

	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	_, raw, err := conn.ReadMessage()
	require.NoError(t, err)

	var envelope struct {
		Type string                  `json:"type"`
		Data ws.StatusChangedPayload `json:"data"`
	}
	require.NoError(t, json.Unmarshal(raw, &envelope))

	return ws.Message{Type: envelope.Type}, envelope.Data
}

func TestHub_Publish_ReachesSubscribersOfTheParcel(t *testing.T) {
	hub, server := startHub(t)
	first := dial(t, hub, server, watched)
	second := dial(t, hub, server, watched)

	require.NoError(t, hub.Publish(context.Background(), event(watched, "PICKED_UP")))

	for _, conn := range []*websocket.Conn{first, second} {
		msg, payload := readMessage(t, conn)
		assert.Equal(t, ws.MessageTypeStatusChanged, msg.Type)
		assert.Equal(t, watched, payload.TrackingID)
		assert.Equal(t, "PICKED_UP", payload.Status)
		assert.Equal(t, "Parcel picked up by rider", payload.Description)
		assert.Equal(t, "2025-01-01T10:30:00.000Z", payload.Timestamp)
	}
}

func TestHub_Publish_SkipsOtherParcels(t *testing.T) {
	hub, server := startHub(t)
	watcher := dial(t, hub, server, watched)

	require.NoError(t, hub.Publish(context.Background(), event(other, "IN_TRANSIT")))
	require.NoError(t, hub.Publish(context.Background(), event(watched, "DELIVERED")))

	_, payload := readMessage(t, watcher)
	assert.Equal(t, "DELIVERED", payload.Status)
}

func TestHub_Publish_WithoutSubscribers(t *testing.T) {
	hub, _ := startHub(t)
	require.NoError(t, hub.Publish(context.Background(), event(watched, "PENDING")))
	assert.Zero(t, hub.Subscribers(watched))
}

func TestHub_Ping(t *testing.T) {
	hub, server := startHub(t)
	conn := dial(t, hub, server, watched)

	require.NoError(t, conn.WriteMessage(websocket.TextMessage, []byte(`{"type":"ping"}`)))

	msg, _ := readMessage(t, conn)
	assert.Equal(t, "pong", msg.Type)
}

func TestHub_ClientDisconnectUnregisters(t *testing.T) {
	hub, server := startHub(t)
	conn := dial(t, hub, server, watched)

	require.NoError(t, conn.Close())

	require.Eventually(t, func() bool {
		return hub.Subscribers(watched) == 0
	}, 2*time.Second, 10*time.Millisecond)
}
