package delivery

import (
	"strconv"
	"strings"
	"time"

	"github.com/jvsales/faultctl/internal/record"
)

// Payload is the row shape the analytics sink ingests. The same shape is
// reused by the JSON export so a manually imported file matches what the
// sink receives over the wire.
type Payload struct {
	RecordID             string  `json:"RecordId"`
	Date                 string  `json:"Date"`
	Time                 string  `json:"Time"`
	FaultType            string  `json:"FaultType"`
	DowntimeMinutes      float64 `json:"DowntimeMinutes"`
	ManualBoxLoading     string  `json:"ManualBoxLoading"`
	RobotNumber          string  `json:"RobotNumber"`
	Cuba                 string  `json:"Cuba"`
	Product              string  `json:"Product"`
	Observations         string  `json:"Observations"`
	OperatorRegistration string  `json:"OperatorRegistration"`
	OperatorName         string  `json:"OperatorName"`
	Shift                string  `json:"Shift"`
	RecordTime           string  `json:"RecordTime"`
	Timestamp            string  `json:"Timestamp"`
}

// FormatRecord maps a fault record into the sink's row shape, stamping
// sentAt as the ISO-8601 send-time timestamp.
func FormatRecord(r record.FaultRecord, sentAt time.Time) Payload {
	return Payload{
		RecordID:             r.ID,
		Date:                 r.Date,
		Time:                 r.Time,
		FaultType:            r.Fault,
		DowntimeMinutes:      ParseDowntime(r.Downtime),
		ManualBoxLoading:     r.ManualBoxes,
		RobotNumber:          r.RobotNumber,
		Cuba:                 r.Cuba,
		Product:              r.Product,
		Observations:         r.Observations,
		OperatorRegistration: r.OperatorRegistration,
		OperatorName:         r.OperatorName,
		Shift:                r.Shift,
		RecordTime:           r.RecordTime,
		Timestamp:            sentAt.UTC().Format(time.RFC3339),
	}
}

// ParseDowntime coerces the free-text downtime field to minutes.
// Non-numeric input becomes 0 rather than an error; the operator's local
// record keeps the original text either way.
func ParseDowntime(s string) float64 {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0
	}
	return v
}
