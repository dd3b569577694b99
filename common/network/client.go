package network

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/websocket"

	"github.com/territoryarena/server/roomserver"
)

// Upgrader accepts WebSocket upgrades from any origin; this server has no
// browser-session notion of its own to protect.
var Upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// inputMessage is the only message shape a client may send: a desired
// heading in radians.
type inputMessage struct {
	Angle float64 `json:"angle"`
}

// Client bridges one WebSocket connection to its Room-assigned player id.
type Client struct {
	hub      *Hub
	conn     *websocket.Conn
	send     chan []byte
	playerID string
}

// ServeWs upgrades the request to a WebSocket, joins name into room, and
// starts the client's read/write pumps.
func ServeWs(hub *Hub, room *roomserver.Room, name string, w http.ResponseWriter, r *http.Request) {
	conn, err := Upgrader.Upgrade(w, r, nil)
	if err != nil {
		return
	}

	playerID := room.Join(name)
	if playerID == "" {
		conn.WriteMessage(websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseTryAgainLater, "room full"))
		conn.Close()
		return
	}

	client := &Client{
		hub:      hub,
		conn:     conn,
		send:     make(chan []byte, 16),
		playerID: playerID,
	}

	hub.register <- client

	go client.writePump()
	go client.readPump(room)
}

func (c *Client) readPump(room *roomserver.Room) {
	defer func() {
		c.hub.unregister <- c
		c.conn.Close()
	}()

	for {
		_, message, err := c.conn.ReadMessage()
		if err != nil {
			return
		}

		var in inputMessage
		if err := json.Unmarshal(message, &in); err != nil {
			continue
		}

		room.SetInput(c.playerID, in.Angle)
	}
}

func (c *Client) writePump() {
	defer c.conn.Close()

	for message := range c.send {
		if err := c.conn.WriteMessage(websocket.TextMessage, message); err != nil {
			return
		}
	}

	c.conn.WriteMessage(websocket.CloseMessage, []byte{})
}
