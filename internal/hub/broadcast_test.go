package hub

import (
	"sync"
	"testing"

	"pedalshaper/internal/pedals"
)

type staticCurves struct{}

func (staticCurves) Curves() map[string]CurveInfo {
	return map[string]CurveInfo{}
}

// TestBroadcaster_InitialStateConcurrentWithRun tests that new clients can
// be greeted from handler goroutines while the loop is folding in state
// changes. Run under the race detector this guards the shared sequence
// counter and state snapshot.
func TestBroadcaster_InitialStateConcurrentWithRun(t *testing.T) {
	h := NewHub()
	go h.Run()

	changes := make(chan pedals.CalibrationState)
	b := NewBroadcaster(h, changes, staticCurves{})
	done := make(chan struct{})
	go func() {
		b.Run()
		close(done)
	}()

	c := NewClient(h, nil)
	var wg sync.WaitGroup
	for i := 0; i < 4; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 50; j++ {
				b.SendInitialState(c)
			}
		}()
	}

	for i := 0; i < 200; i++ {
		changes <- pedals.CalibrationState{
			Connected: true,
			Name:      "pedals",
			Throttle:  pedals.PedalValue{Raw: float64(i), Calibrated: float64(i)},
		}
	}

	wg.Wait()
	close(changes)
	<-done
}

// TestBroadcaster_SequenceAdvances tests that broadcast-worthy states move
// the sequence number while no-change states do not.
func TestBroadcaster_SequenceAdvances(t *testing.T) {
	b := NewBroadcaster(NewHub(), nil, staticCurves{})

	seq, delta := b.advance(pedals.CalibrationState{Connected: true, Name: "pedals"})
	if delta == nil || seq != 1 {
		t.Fatalf("first state: seq=%d delta=%+v, want seq 1 and a delta", seq, delta)
	}

	// Same state again: tracked but not broadcast.
	if seq, delta = b.advance(pedals.CalibrationState{Connected: true, Name: "pedals"}); delta != nil {
		t.Errorf("unchanged state produced delta %+v at seq %d", delta, seq)
	}

	seq, state := b.next()
	if seq != 2 {
		t.Errorf("next seq = %d, want 2", seq)
	}
	if !state.Connected || state.Name != "pedals" {
		t.Errorf("snapshot state = %+v, want the last folded state", state)
	}
}
