package record

import (
	"errors"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/jvsales/faultctl/internal/session"
)

// ErrNoSession is returned when a submission arrives without an active
// operator session.
var ErrNoSession = errors.New("sessão de operador não encontrada")

// List owns every fault record entered during this run of the program.
// Records are append-only: business fields never change after Submit and
// nothing is ever removed. Delivery status is the one mutable bit, and it
// is guarded so the retry sweep goroutine and the event loop can both
// touch it safely.
type List struct {
	mu      sync.Mutex
	records []FaultRecord
	lastID  int64
	now     func() time.Time
}

// NewList creates an empty record list.
func NewList() *List {
	return &List{now: time.Now}
}

// Submit validates the draft against the active session and, on success,
// appends a new record with the session's identity fields, a fresh record
// timestamp and a pending delivery status. The append completes before
// Submit returns, so a delivery attempt issued right after always sees
// the record. On failure nothing is mutated.
func (l *List) Submit(d Draft, s *session.Session) (FaultRecord, error) {
	if missing := d.Validate(); len(missing) > 0 {
		return FaultRecord{}, &ValidationError{Missing: missing}
	}
	if s == nil {
		return FaultRecord{}, ErrNoSession
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	r := FaultRecord{
		ID:                   l.nextID(now),
		Date:                 d.Date,
		Time:                 d.Time,
		Fault:                d.Fault,
		Downtime:             d.Downtime,
		ManualBoxes:          d.ManualBoxes,
		RobotNumber:          d.RobotNumber,
		Cuba:                 d.Cuba,
		Product:              d.Product,
		Observations:         strings.ToUpper(d.Observations),
		OperatorRegistration: s.Registration,
		OperatorName:         s.OperatorName,
		Shift:                s.Shift,
		RecordTime:           now.Format(StampLayout),
		DeliveryStatus:       StatusPending,
	}
	l.records = append(l.records, r)
	return r, nil
}

// nextID derives a creation-timestamp token, bumped when two submissions
// land on the same millisecond so IDs stay unique within the session.
// Callers must hold l.mu.
func (l *List) nextID(now time.Time) string {
	id := now.UnixMilli()
	if id <= l.lastID {
		id = l.lastID + 1
	}
	l.lastID = id
	return strconv.FormatInt(id, 10)
}

// SetDelivery updates a record's delivery status and error message.
// A record already marked success is terminal and is never overwritten.
// Returns false if the record does not exist or was already successful.
func (l *List) SetDelivery(id string, status Status, deliveryErr string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	for i := range l.records {
		if l.records[i].ID != id {
			continue
		}
		if l.records[i].DeliveryStatus == StatusSuccess {
			return false
		}
		l.records[i].DeliveryStatus = status
		l.records[i].DeliveryError = deliveryErr
		return true
	}
	return false
}

// Records returns a snapshot of all records in insertion order.
func (l *List) Records() []FaultRecord {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make([]FaultRecord, len(l.records))
	copy(out, l.records)
	return out
}

// Failed returns a snapshot of the records still waiting for a
// successful delivery, in insertion order.
func (l *List) Failed() []FaultRecord {
	l.mu.Lock()
	defer l.mu.Unlock()
	var out []FaultRecord
	for _, r := range l.records {
		if r.DeliveryStatus == StatusFailed {
			out = append(out, r)
		}
	}
	return out
}

// Len returns the number of records.
func (l *List) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.records)
}

// Count returns how many records currently have the given status.
func (l *List) Count(status Status) int {
	l.mu.Lock()
	defer l.mu.Unlock()
	n := 0
	for _, r := range l.records {
		if r.DeliveryStatus == status {
			n++
		}
	}
	return n
}
