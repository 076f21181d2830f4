package delivery

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/jvsales/faultctl/internal/record"
)

func sampleRecord() record.FaultRecord {
	return record.FaultRecord{
		ID:                   "1748786520000",
		Date:                 "01/06/2025",
		Time:                 "14:22",
		Fault:                "2 – LIMPEZA",
		Downtime:             "15",
		ManualBoxes:          record.ManualBoxesYes,
		RobotNumber:          "ROBOT 02",
		Cuba:                 "CUBA 07",
		Product:              "BIS AO LEITE",
		Observations:         "SENSOR SUJO",
		OperatorRegistration: "OP1",
		OperatorName:         "MARIA",
		Shift:                "1º TURNO (05:50 - 14:35)",
		RecordTime:           "01/06/2025 14:22:41",
		DeliveryStatus:       record.StatusPending,
	}
}

func TestDeliverOneSuccess(t *testing.T) {
	var gotBody []byte
	var gotContentType string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotContentType = r.Header.Get("Content-Type")
		gotBody, _ = io.ReadAll(r.Body)
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	c := NewClient(srv.URL, 5*time.Second)
	res := c.DeliverOne(context.Background(), sampleRecord())

	if !res.Success {
		t.Fatalf("expected success, got err=%q", res.Err)
	}
	if gotContentType != "application/json" {
		t.Errorf("expected application/json, got %q", gotContentType)
	}

	// The sink expects a one-element array of rows.
	var rows []map[string]interface{}
	if err := json.Unmarshal(gotBody, &rows); err != nil {
		t.Fatalf("body is not a JSON array: %v", err)
	}
	if len(rows) != 1 {
		t.Fatalf("expected exactly 1 row, got %d", len(rows))
	}
	row := rows[0]
	if row["RecordId"] != "1748786520000" {
		t.Errorf("unexpected RecordId: %v", row["RecordId"])
	}
	if row["DowntimeMinutes"] != float64(15) {
		t.Errorf("expected DowntimeMinutes=15, got %v", row["DowntimeMinutes"])
	}
	if row["FaultType"] != "2 – LIMPEZA" {
		t.Errorf("unexpected FaultType: %v", row["FaultType"])
	}
	if _, ok := row["Timestamp"].(string); !ok {
		t.Error("expected a Timestamp string")
	}
}

func TestDeliverOneNonNumericDowntimeCoercesToZero(t *testing.T) {
	var gotBody []byte
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotBody, _ = io.ReadAll(r.Body)
	}))
	defer srv.Close()

	rec := sampleRecord()
	rec.Downtime = "abc"

	c := NewClient(srv.URL, 5*time.Second)
	if res := c.DeliverOne(context.Background(), rec); !res.Success {
		t.Fatalf("expected success, got err=%q", res.Err)
	}

	var rows []map[string]interface{}
	json.Unmarshal(gotBody, &rows)
	if rows[0]["DowntimeMinutes"] != float64(0) {
		t.Fatalf("expected DowntimeMinutes=0 for non-numeric input, got %v", rows[0]["DowntimeMinutes"])
	}
}

func TestDeliverOneCapturesHTTPError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
		io.WriteString(w, "dataset limit reached")
	}))
	defer srv.Close()

	c := NewClient(srv.URL, 5*time.Second)
	res := c.DeliverOne(context.Background(), sampleRecord())

	if res.Success {
		t.Fatal("expected failure on 503")
	}
	if res.Err != "HTTP 503: dataset limit reached" {
		t.Errorf("unexpected error string: %q", res.Err)
	}
}

func TestDeliverOneTransportFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // connection refused from here on

	c := NewClient(srv.URL, 2*time.Second)
	res := c.DeliverOne(context.Background(), sampleRecord())

	if res.Success {
		t.Fatal("expected failure against a closed server")
	}
	if res.Err == "" {
		t.Fatal("expected the transport error message to be captured")
	}
}

func TestDeliverOneHonorsCancellation(t *testing.T) {
	block := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-block
	}))
	defer func() { close(block); srv.Close() }()

	c := NewClient(srv.URL, time.Minute)
	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	res := c.DeliverOne(ctx, sampleRecord())
	if res.Success {
		t.Fatal("expected failure when the context expires")
	}
	if res.Err == "" {
		t.Fatal("expected a context error message")
	}
}

func TestDeliverCmdReportsResultMsg(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	defer srv.Close()

	c := NewClient(srv.URL, 5*time.Second)
	rec := sampleRecord()

	msg := c.DeliverCmd(rec)()
	res, ok := msg.(ResultMsg)
	if !ok {
		t.Fatalf("expected ResultMsg, got %T", msg)
	}
	if res.RecordID != rec.ID {
		t.Errorf("expected RecordID=%s, got %s", rec.ID, res.RecordID)
	}
	if !res.Result.Success {
		t.Errorf("expected success, got err=%q", res.Result.Err)
	}
}

func TestFormatRecordStampsSendTime(t *testing.T) {
	sentAt := time.Date(2025, 6, 1, 17, 22, 41, 0, time.UTC)
	p := FormatRecord(sampleRecord(), sentAt)
	if p.Timestamp != "2025-06-01T17:22:41Z" {
		t.Errorf("unexpected Timestamp: %s", p.Timestamp)
	}
	if p.RecordTime != "01/06/2025 14:22:41" {
		t.Errorf("RecordTime must pass through unchanged, got %s", p.RecordTime)
	}
}

func TestParseDowntime(t *testing.T) {
	cases := []struct {
		in   string
		want float64
	}{
		{"15", 15},
		{" 7.5 ", 7.5},
		{"abc", 0},
		{"", 0},
		{"12min", 0},
	}
	for _, tc := range cases {
		if got := ParseDowntime(tc.in); got != tc.want {
			t.Errorf("ParseDowntime(%q): expected %v, got %v", tc.in, tc.want, got)
		}
	}
}
