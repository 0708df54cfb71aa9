package hub

import (
	"encoding/json"
	"log"
	"sync"
	"time"

	"pedalshaper/internal/pedals"
)

const (
	fullSyncInterval = 5 * time.Second
	deltaCountSync   = 100
)

// CurveSource provides the current curves for inclusion in full syncs.
type CurveSource interface {
	Curves() map[string]CurveInfo
}

// Broadcaster listens for calibration state changes and broadcasts them to
// the hub: deltas while the pedals move, a full sync periodically and
// whenever a client edits a curve.
type Broadcaster struct {
	hub      *Hub
	changes  <-chan pedals.CalibrationState
	curves   CurveSource
	curvesCh chan struct{}

	// mu guards seq and lastState: SendInitialState runs on HTTP handler
	// goroutines concurrently with the Run loop.
	mu        sync.Mutex
	lastState pedals.CalibrationState
	seq       int64
}

func NewBroadcaster(h *Hub, changes <-chan pedals.CalibrationState, curves CurveSource) *Broadcaster {
	return &Broadcaster{
		hub:      h,
		changes:  changes,
		curves:   curves,
		curvesCh: make(chan struct{}, 1),
	}
}

// NotifyCurvesChanged pushes an immediate curves broadcast, used after a
// client edit so every renderer converges without waiting for a full sync.
func (b *Broadcaster) NotifyCurvesChanged() {
	select {
	case b.curvesCh <- struct{}{}:
	default:
	}
}

// Run starts the broadcaster loop. Should be run in a goroutine.
func (b *Broadcaster) Run() {
	ticker := time.NewTicker(fullSyncInterval)
	defer ticker.Stop()

	var deltaCount int64

	for {
		select {
		case state, ok := <-b.changes:
			if !ok {
				return
			}

			seq, delta := b.advance(state)
			if delta == nil {
				continue
			}
			deltaCount++

			// Resynchronize with a full snapshot every so often.
			if deltaCount >= deltaCountSync {
				b.sendFull(seq, state)
				deltaCount = 0
			} else {
				b.sendDelta(seq, delta)
			}

		case <-b.curvesCh:
			seq, _ := b.next()
			b.broadcast(NewCurvesMessage(seq, b.curves.Curves()))

		case <-ticker.C:
			seq, state := b.next()
			b.sendFull(seq, state)
		}
	}
}

// SendInitialState sends the current full state to a newly connected
// client.
func (b *Broadcaster) SendInitialState(c *Client) {
	seq, state := b.next()
	msg := NewFullMessage(seq, &state, b.curves.Curves())
	data, err := json.Marshal(msg)
	if err != nil {
		log.Printf("Error marshaling initial state: %v", err)
		return
	}
	c.Send(data)
}

// advance folds a new state into the tracked one. It returns a nil delta
// when nothing observable changed; the sequence number only moves for
// states that will be broadcast.
func (b *Broadcaster) advance(state pedals.CalibrationState) (int64, *pedals.DeltaChanges) {
	b.mu.Lock()
	defer b.mu.Unlock()

	delta := pedals.ComputeDelta(b.lastState, state)
	b.lastState = state
	if delta.IsEmpty() {
		return 0, nil
	}
	b.seq++
	return b.seq, delta
}

// next claims the next sequence number and snapshots the tracked state.
func (b *Broadcaster) next() (int64, pedals.CalibrationState) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.seq++
	return b.seq, b.lastState
}

func (b *Broadcaster) sendFull(seq int64, state pedals.CalibrationState) {
	b.broadcast(NewFullMessage(seq, &state, b.curves.Curves()))
}

func (b *Broadcaster) sendDelta(seq int64, delta *pedals.DeltaChanges) {
	b.broadcast(NewDeltaMessage(seq, delta))
}

func (b *Broadcaster) broadcast(msg *WSMessage) {
	data, err := json.Marshal(msg)
	if err != nil {
		log.Printf("Error marshaling %s message: %v", msg.Type, err)
		return
	}
	b.hub.Broadcast(data)
}
