package ws

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/bq-cafe/pos-api/internal/events"
)

func boardServer(t *testing.T, hub *Hub) *httptest.Server {
	t.Helper()
	r := chi.NewRouter()
	r.Get("/ws/areas/{aid}/tables", func(w http.ResponseWriter, r *http.Request) {
		ServeWS(hub, w, r)
	})
	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)
	return srv
}

func dialBoard(t *testing.T, srv *httptest.Server, areaID uuid.UUID) *websocket.Conn {
	t.Helper()
	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/ws/areas/" + areaID.String() + "/tables"
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("dial board: %v", err)
	}
	t.Cleanup(func() { conn.Close() })
	return conn
}

func waitForClients(t *testing.T, hub *Hub, areaID uuid.UUID, want int) {
	t.Helper()
	deadline := time.Now().Add(time.Second)
	for hub.ClientCount(areaID) != want {
		if time.Now().After(deadline) {
			t.Fatalf("clients in area: got %d, want %d", hub.ClientCount(areaID), want)
		}
		time.Sleep(5 * time.Millisecond)
	}
}

func TestBoardReceivesOneFramePerEvent(t *testing.T) {
	hub := startHub(t)
	srv := boardServer(t, hub)

	areaID := uuid.New()
	conn := dialBoard(t, srv, areaID)
	waitForClients(t, hub, areaID, 1)

	for _, typ := range []string{"order.opened", "order.updated"} {
		if err := hub.Publish(context.Background(), events.Event{Type: typ, AreaID: areaID}); err != nil {
			t.Fatalf("publish %s: %v", typ, err)
		}
	}

	conn.SetReadDeadline(time.Now().Add(time.Second))
	for _, want := range []string{"order.opened", "order.updated"} {
		kind, msg, err := conn.ReadMessage()
		if err != nil {
			t.Fatalf("read %s: %v", want, err)
		}
		if kind != websocket.TextMessage {
			t.Fatalf("frame kind: got %d, want text", kind)
		}
		var got events.Event
		if err := json.Unmarshal(msg, &got); err != nil {
			t.Fatalf("frame is not a single event: %v (%s)", err, msg)
		}
		if got.Type != want {
			t.Fatalf("event type: got %s, want %s", got.Type, want)
		}
	}
}

func TestBoardGetsGoingAwayOnShutdown(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	hub := NewHub()
	go hub.Run(ctx)
	srv := boardServer(t, hub)

	areaID := uuid.New()
	conn := dialBoard(t, srv, areaID)
	waitForClients(t, hub, areaID, 1)

	cancel()

	conn.SetReadDeadline(time.Now().Add(time.Second))
	_, _, err := conn.ReadMessage()
	var closeErr *websocket.CloseError
	if !errors.As(err, &closeErr) {
		t.Fatalf("expected close error, got %v", err)
	}
	if closeErr.Code != websocket.CloseGoingAway || closeErr.Text != reasonShutdown {
		t.Fatalf("close: got %d %q, want %d %q",
			closeErr.Code, closeErr.Text, websocket.CloseGoingAway, reasonShutdown)
	}
}

func TestServeWSRejectsBadAreaID(t *testing.T) {
	hub := startHub(t)
	srv := boardServer(t, hub)

	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/ws/areas/not-a-uuid/tables"
	_, resp, err := websocket.DefaultDialer.Dial(url, nil)
	if err == nil {
		t.Fatal("expected dial to fail")
	}
	if resp == nil || resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected 400 response, got %v", resp)
	}
}
