package record

import (
	"fmt"
	"strings"
	"time"
)

// Display layouts used across the form and record stamps (pt-BR).
const (
	DateLayout  = "02/01/2006"
	TimeLayout  = "15:04"
	StampLayout = "02/01/2006 15:04:05"
)

// Status tracks whether a record has reached the analytics sink.
type Status string

const (
	StatusPending Status = "pending"
	StatusSuccess Status = "success"
	StatusFailed  Status = "failed"
)

// Manual box loading answers.
const (
	ManualBoxesYes = "SIM"
	ManualBoxesNo  = "NÃO"
)

// FaultRecord is one logged fault event. Business fields are immutable
// once the record is appended to the list; only DeliveryStatus and
// DeliveryError change afterwards, and only through List.SetDelivery.
type FaultRecord struct {
	ID                   string
	Date                 string
	Time                 string
	Fault                string
	Downtime             string
	ManualBoxes          string
	RobotNumber          string
	Cuba                 string
	Product              string
	Observations         string
	OperatorRegistration string
	OperatorName         string
	Shift                string
	RecordTime           string
	DeliveryStatus       Status
	DeliveryError        string
}

// Draft is the in-progress form state for a new fault entry.
type Draft struct {
	Date         string
	Time         string
	Fault        string
	Downtime     string
	ManualBoxes  string
	RobotNumber  string
	Cuba         string
	Product      string
	Observations string
}

// NewDraft returns a blank draft with date and time set to now.
func NewDraft(now time.Time) Draft {
	return Draft{
		Date: now.Format(DateLayout),
		Time: now.Format(TimeLayout),
	}
}

// RefreshClock updates the draft's date and time to now. Callers decide
// when this is appropriate (the form refreshes once per minute while the
// operator has not touched those fields).
func (d *Draft) RefreshClock(now time.Time) {
	d.Date = now.Format(DateLayout)
	d.Time = now.Format(TimeLayout)
}

// requiredField pairs a draft accessor with its human-readable label.
// The order here is the order missing fields are reported in.
var requiredFields = []struct {
	label string
	value func(*Draft) string
}{
	{"Data", func(d *Draft) string { return d.Date }},
	{"Horário", func(d *Draft) string { return d.Time }},
	{"Falha", func(d *Draft) string { return d.Fault }},
	{"Tempo Parado", func(d *Draft) string { return d.Downtime }},
	{"Carregou Caixas Manual", func(d *Draft) string { return d.ManualBoxes }},
	{"Numero Robo", func(d *Draft) string { return d.RobotNumber }},
	{"Cuba", func(d *Draft) string { return d.Cuba }},
	{"Produto", func(d *Draft) string { return d.Product }},
}

// Validate returns the labels of required fields that are empty after
// trimming, in declaration order. An empty result means the draft is
// ready to submit. Observations is optional.
func (d *Draft) Validate() []string {
	var missing []string
	for _, f := range requiredFields {
		if strings.TrimSpace(f.value(d)) == "" {
			missing = append(missing, f.label)
		}
	}
	return missing
}

// ValidationError reports required fields missing from a submission.
type ValidationError struct {
	Missing []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("campos obrigatórios não preenchidos: %s", strings.Join(e.Missing, ", "))
}
