package delivery

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"golang.org/x/sync/singleflight"

	"github.com/jvsales/faultctl/internal/record"
)

// RetryDelay is the fixed pause between consecutive retry attempts,
// keeping the sweep from hammering the sink.
const RetryDelay = 500 * time.Millisecond

// Deliverer is the single-record delivery dependency of the retry sweep.
type Deliverer interface {
	DeliverOne(ctx context.Context, r record.FaultRecord) Result
}

// SweepCompletedMsg reports a finished retry sweep to the event loop.
type SweepCompletedMsg struct {
	Attempted int
}

// Retryer re-delivers failed records one at a time. Sweeps are
// single-flight: an automatic sweep fired by an online transition and a
// manual retry pressed at the same moment coalesce into one pass instead
// of racing over the same records.
type Retryer struct {
	list  *record.List
	sink  Deliverer
	delay time.Duration
	group singleflight.Group
}

// NewRetryer creates a Retryer over the given record list and sink.
func NewRetryer(list *record.List, sink Deliverer) *Retryer {
	return &Retryer{list: list, sink: sink, delay: RetryDelay}
}

// Sweep retries every currently-failed record in insertion order,
// sequentially, updating each record's status independently of the
// others' outcomes. With no failed records it makes zero network calls.
// Returns the number of delivery attempts made.
func (rt *Retryer) Sweep(ctx context.Context) int {
	n, _, _ := rt.group.Do("sweep", func() (interface{}, error) {
		return rt.sweep(ctx), nil
	})
	return n.(int)
}

func (rt *Retryer) sweep(ctx context.Context) int {
	failed := rt.list.Failed()
	attempts := 0
	for i, r := range failed {
		if i > 0 {
			select {
			case <-time.After(rt.delay):
			case <-ctx.Done():
				return attempts
			}
		}

		res := rt.sink.DeliverOne(ctx, r)
		attempts++
		if res.Success {
			rt.list.SetDelivery(r.ID, record.StatusSuccess, "")
		} else {
			rt.list.SetDelivery(r.ID, record.StatusFailed, res.Err)
		}
	}
	return attempts
}

// SweepCmd runs a sweep off the event loop and reports back when done.
func (rt *Retryer) SweepCmd() tea.Cmd {
	return func() tea.Msg {
		return SweepCompletedMsg{Attempted: rt.Sweep(context.Background())}
	}
}
