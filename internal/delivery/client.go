package delivery

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/jvsales/faultctl/internal/record"
)

// ErrNoConnectivity is the fixed error recorded when a submission happens
// while the terminal believes it is offline. No network call is made.
const ErrNoConnectivity = "Sem conexão com a internet"

// Result is the outcome of one delivery attempt. Delivery never fails the
// program: transport and HTTP errors are folded into Err.
type Result struct {
	Success bool
	Err     string
}

// ResultMsg reports a finished delivery attempt back to the event loop.
type ResultMsg struct {
	RecordID string
	Result   Result
}

// Client pushes fault records to the analytics ingestion endpoint,
// one record per request.
type Client struct {
	endpoint string
	http     *http.Client
	now      func() time.Time
}

// NewClient creates a sink client. The timeout bounds the whole request;
// a hung endpoint can no longer block a record's status update forever.
func NewClient(endpoint string, timeout time.Duration) *Client {
	return &Client{
		endpoint: endpoint,
		http:     &http.Client{Timeout: timeout},
		now:      time.Now,
	}
}

// DeliverOne serializes the record into the sink's row shape and issues a
// single POST. Any non-2xx response or transport failure becomes a failed
// Result carrying a human-readable message; it never panics and never
// returns a Go error.
func (c *Client) DeliverOne(ctx context.Context, r record.FaultRecord) Result {
	// The sink expects a one-element array of rows.
	body, err := json.Marshal([]Payload{FormatRecord(r, c.now())})
	if err != nil {
		return Result{Err: err.Error()}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return Result{Err: err.Error()}
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return Result{Err: err.Error()}
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return Result{Success: true}
	}

	respBody, _ := io.ReadAll(resp.Body)
	return Result{Err: fmt.Sprintf("HTTP %d: %s", resp.StatusCode, strings.TrimSpace(string(respBody)))}
}

// DeliverCmd wraps DeliverOne for the event loop: the attempt runs off
// the loop and comes back as a ResultMsg for the submitted record.
func (c *Client) DeliverCmd(r record.FaultRecord) tea.Cmd {
	return func() tea.Msg {
		return ResultMsg{RecordID: r.ID, Result: c.DeliverOne(context.Background(), r)}
	}
}
