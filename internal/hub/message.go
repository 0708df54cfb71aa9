package hub

import (
	"time"

	"pedalshaper/internal/curve"
	"pedalshaper/internal/pedals"
)

// CurveInfo is the wire form of one pedal's calibration curve.
type CurveInfo struct {
	Points   []curve.ControlPoint `json:"points"`
	DeadZone curve.DeadZone       `json:"deadzone"`
}

// WSMessage represents a message sent from server to client.
type WSMessage struct {
	Type      string                   `json:"type"` // "full", "delta", "curves", "ack", "error"
	Seq       int64                    `json:"seq"`
	Timestamp int64                    `json:"timestamp"` // Unix milliseconds
	Data      *pedals.CalibrationState `json:"data,omitempty"`
	Changes   *pedals.DeltaChanges     `json:"changes,omitempty"`
	Curves    map[string]CurveInfo     `json:"curves,omitempty"`
	Pedal     string                   `json:"pedal,omitempty"` // for "ack" / "error"
	Error     string                   `json:"error,omitempty"`
}

// NewFullMessage creates a "full" message carrying the complete
// calibration state plus every pedal's curve.
func NewFullMessage(seq int64, state *pedals.CalibrationState, curves map[string]CurveInfo) *WSMessage {
	return &WSMessage{
		Type:      "full",
		Seq:       seq,
		Timestamp: time.Now().UnixMilli(),
		Data:      state,
		Curves:    curves,
	}
}

// NewDeltaMessage creates a "delta" message containing only changed fields.
func NewDeltaMessage(seq int64, changes *pedals.DeltaChanges) *WSMessage {
	return &WSMessage{
		Type:      "delta",
		Seq:       seq,
		Timestamp: time.Now().UnixMilli(),
		Changes:   changes,
	}
}

// NewCurvesMessage creates a "curves" message after an accepted edit.
func NewCurvesMessage(seq int64, curves map[string]CurveInfo) *WSMessage {
	return &WSMessage{
		Type:      "curves",
		Seq:       seq,
		Timestamp: time.Now().UnixMilli(),
		Curves:    curves,
	}
}

// NewAckMessage confirms an applied edit for one pedal.
func NewAckMessage(pedal string) *WSMessage {
	return &WSMessage{
		Type:      "ack",
		Timestamp: time.Now().UnixMilli(),
		Pedal:     pedal,
	}
}

// NewErrorMessage reports a rejected client command.
func NewErrorMessage(pedal, msg string) *WSMessage {
	return &WSMessage{
		Type:      "error",
		Timestamp: time.Now().UnixMilli(),
		Pedal:     pedal,
		Error:     msg,
	}
}

// ClientMessage represents a command sent from the rendering client.
// Types: "set_points", "set_deadzones", "reset".
type ClientMessage struct {
	Type     string               `json:"type"`
	Pedal    string               `json:"pedal"`
	Points   []curve.ControlPoint `json:"points,omitempty"`
	DeadZone *curve.DeadZone      `json:"deadzone,omitempty"`
}
