package network

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/territoryarena/server/common/config"
	"github.com/territoryarena/server/roomserver"
)

func TestHubBroadcastsRoomStateToRegisteredClient(t *testing.T) {
	room := roomserver.NewRoom(config.Default())
	hub := NewHub(room)

	go hub.Run()
	go room.Run()
	defer room.Stop()

	room.Join("Alice")

	client := &Client{hub: hub, send: make(chan []byte, 4), playerID: "dummy"}
	hub.register <- client

	select {
	case data := <-client.send:
		var payload map[string]interface{}
		if err := json.Unmarshal(data, &payload); err != nil {
			t.Fatalf("expected valid JSON broadcast, got error: %v", err)
		}
		if _, ok := payload["players"]; !ok {
			t.Fatalf("expected a players field in the broadcast payload, got %v", payload)
		}
	case <-time.After(2 * time.Second):
		t.Fatalf("expected a broadcast within two seconds")
	}
}

func TestHubUnregisterClosesClientSend(t *testing.T) {
	room := roomserver.NewRoom(config.Default())
	hub := NewHub(room)
	go hub.Run()

	id := room.Join("Alice")
	client := &Client{hub: hub, send: make(chan []byte, 4), playerID: id}
	hub.register <- client

	// Give the register case a moment to land before unregistering.
	time.Sleep(10 * time.Millisecond)
	hub.unregister <- client

	time.Sleep(10 * time.Millisecond)
	if _, ok := <-client.send; ok {
		t.Fatalf("expected client's send channel to be closed after unregister")
	}
}

func TestInputMessageUnmarshal(t *testing.T) {
	raw := []byte(`{"angle": 1.5}`)
	var in inputMessage
	if err := json.Unmarshal(raw, &in); err != nil {
		t.Fatalf("unexpected error unmarshaling input message: %v", err)
	}
	if in.Angle != 1.5 {
		t.Fatalf("expected angle 1.5, got %v", in.Angle)
	}
}
