package hub

import (
	"encoding/json"
	"log"

	"github.com/gorilla/websocket"

	"pedalshaper/internal/curve"
)

// Editor applies curve edits coming in from rendering clients. Each method
// returns false for an unknown pedal name. Implementations are expected to
// persist accepted edits.
type Editor interface {
	SetPoints(pedal string, points []curve.ControlPoint) bool
	SetDeadZones(pedal string, dz curve.DeadZone) bool
	Reset(pedal string) bool
}

// Client represents a connected WebSocket client.
type Client struct {
	hub  *Hub
	conn *websocket.Conn
	send chan []byte
}

// NewClient creates a new Client attached to the hub.
func NewClient(hub *Hub, conn *websocket.Conn) *Client {
	return &Client{
		hub:  hub,
		conn: conn,
		send: make(chan []byte, 256),
	}
}

// Send queues a message for this client, dropping it if the buffer is full.
func (c *Client) Send(msg []byte) {
	select {
	case c.send <- msg:
	default:
	}
}

// WritePump sends messages from the send channel to the WebSocket
// connection.
func (c *Client) WritePump() {
	defer func() {
		c.conn.Close()
	}()

	for msg := range c.send {
		if err := c.conn.WriteMessage(websocket.TextMessage, msg); err != nil {
			break
		}
	}
}

// ReadPump reads curve-edit commands from the WebSocket and applies them
// through the editor until the connection drops.
func (c *Client) ReadPump(editor Editor, b *Broadcaster) {
	defer func() {
		c.hub.Unregister(c)
		c.conn.Close()
	}()

	for {
		_, message, err := c.conn.ReadMessage()
		if err != nil {
			break
		}

		var cmd ClientMessage
		if err := json.Unmarshal(message, &cmd); err != nil {
			log.Printf("Error parsing client message: %v", err)
			continue
		}

		c.handleCommand(cmd, editor, b)
	}
}

func (c *Client) handleCommand(cmd ClientMessage, editor Editor, b *Broadcaster) {
	var ok bool
	switch cmd.Type {
	case "set_points":
		ok = editor.SetPoints(cmd.Pedal, cmd.Points)
	case "set_deadzones":
		if cmd.DeadZone == nil {
			c.sendMessage(NewErrorMessage(cmd.Pedal, "missing deadzone"))
			return
		}
		ok = editor.SetDeadZones(cmd.Pedal, *cmd.DeadZone)
	case "reset":
		ok = editor.Reset(cmd.Pedal)
	default:
		c.sendMessage(NewErrorMessage(cmd.Pedal, "unknown command "+cmd.Type))
		return
	}

	if !ok {
		log.Printf("Rejected %s for unknown pedal %q", cmd.Type, cmd.Pedal)
		c.sendMessage(NewErrorMessage(cmd.Pedal, "unknown pedal"))
		return
	}

	c.sendMessage(NewAckMessage(cmd.Pedal))
	// Everyone else gets the updated curves too.
	b.NotifyCurvesChanged()
}

func (c *Client) sendMessage(msg *WSMessage) {
	data, err := json.Marshal(msg)
	if err != nil {
		log.Printf("Error marshaling message: %v", err)
		return
	}
	c.Send(data)
}
