package ws

import (
	"context"
	"encoding/json"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"
)

func TestHub_PublishReachesClient(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	hub := NewHub(nil)
	go hub.Run(ctx)

	client := &Client{Send: make(chan []byte, 4)}
	hub.Register(client)
	hub.Publish("patient.registered", map[string]int{"id": 7})

	select {
	case msg := <-client.Send:
		var ev Event
		if err := json.Unmarshal(msg, &ev); err != nil {
			t.Fatalf("unmarshal: %v", err)
		}
		if ev.Event != "patient.registered" {
			t.Errorf("expected patient.registered, got %s", ev.Event)
		}
		if ev.Timestamp.IsZero() {
			t.Error("expected timestamp to be set")
		}
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for event")
	}
}

func TestHub_UnregisterClosesSend(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	hub := NewHub(nil)
	go hub.Run(ctx)

	client := &Client{Send: make(chan []byte, 1)}
	hub.Register(client)
	hub.Unregister(client)

	select {
	case _, ok := <-client.Send:
		if ok {
			t.Fatal("expected closed channel")
		}
	case <-time.After(time.Second):
		t.Fatal("send channel was not closed")
	}
}

func TestHub_StopClosesClientsAndUnblocksRegister(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	hub := NewHub(nil)
	stopped := make(chan struct{})
	go func() {
		hub.Run(ctx)
		close(stopped)
	}()

	client := &Client{Send: make(chan []byte, 1)}
	hub.Register(client)
	cancel()
	<-stopped

	if _, ok := <-client.Send; ok {
		t.Fatal("expected client channel closed on shutdown")
	}

	late := &Client{Send: make(chan []byte, 1)}
	hub.Register(late)
	if _, ok := <-late.Send; ok {
		t.Fatal("expected late client to be closed immediately")
	}
	hub.Unregister(late)
}

func TestHub_NilPublishIsNoop(t *testing.T) {
	var hub *Hub
	hub.Publish("stock.updated", nil)
}

func TestServeWS_DeliversEvents(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	hub := NewHub(nil)
	go hub.Run(ctx)

	e := echo.New()
	e.GET("/ws", ServeWS(hub))
	srv := httptest.NewServer(e)
	defer srv.Close()

	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/ws"
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	defer conn.Close()

	// registration happens asynchronously; publish until the client sees it
	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	received := make(chan Event, 1)
	go func() {
		_, msg, err := conn.ReadMessage()
		if err != nil {
			return
		}
		var ev Event
		if json.Unmarshal(msg, &ev) == nil {
			received <- ev
		}
	}()

	deadline := time.After(2 * time.Second)
	tick := time.NewTicker(20 * time.Millisecond)
	defer tick.Stop()
	for {
		select {
		case ev := <-received:
			if ev.Event != "stock.updated" {
				t.Fatalf("expected stock.updated, got %s", ev.Event)
			}
			return
		case <-tick.C:
			hub.Publish("stock.updated", map[string]int{"id": 1})
		case <-deadline:
			t.Fatal("timed out waiting for websocket event")
		}
	}
}
