// internal/arena/client.go
// Package arena fetches leaderboard payloads and traces from the arena API.
package arena

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/mwiater/arenaboard/internal/appconfig"
	"github.com/mwiater/arenaboard/internal/leaderboard"
	"github.com/mwiater/arenaboard/internal/logging"
	"github.com/mwiater/arenaboard/internal/trace"
)

const (
	endpointResults   = "results"
	endpointSecondary = "secondary"
	endpointDates     = "competition_dates"
	endpointTraces    = "traces"
)

// StatusError is returned for any non-200 response.
type StatusError struct {
	Endpoint   string
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("%s: unexpected status %d", e.Endpoint, e.StatusCode)
	}
	return fmt.Sprintf("%s: unexpected status %d: %s", e.Endpoint, e.StatusCode, e.Body)
}

// ResultsPayload is the body of the results endpoint.
type ResultsPayload struct {
	Results         map[string][]leaderboard.QuestionRow   `json:"results"`
	CompetitionInfo map[string]leaderboard.CompetitionInfo `json:"competition_info"`
}

// Client talks to one arena API.
type Client struct {
	cfg    appconfig.Config
	client *http.Client
}

// NewClient returns a client for the configured API. A nil httpClient uses
// http.DefaultClient.
func NewClient(cfg appconfig.Config, httpClient *http.Client) *Client {
	return &Client{cfg: cfg, client: httpClient}
}

// httpClient returns the explicitly configured HTTP client or the shared default client.
func (c *Client) httpClient() *http.Client {
	if c.client != nil {
		return c.client
	}
	return http.DefaultClient
}

// doRequest executes a GET against the API bounded by the request timeout.
func (c *Client) doRequest(ctx context.Context, path string) (*http.Response, context.CancelFunc, error) {
	ctx, cancel := context.WithTimeout(ctx, c.cfg.RequestTimeout())
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.cfg.BaseURL()+path, nil)
	if err != nil {
		cancel()
		return nil, nil, err
	}
	req.Header.Set("Accept", "application/json")
	resp, err := c.httpClient().Do(req)
	if err != nil {
		cancel()
		return nil, nil, err
	}
	return resp, cancel, nil
}

// getJSON fetches path, validates the body against the endpoint schema and
// decodes it into out.
func (c *Client) getJSON(ctx context.Context, endpoint, path, competition, model string, out any) error {
	start := time.Now()
	logging.LogRequest("out", path, competition, model, nil)

	resp, cancel, err := c.doRequest(ctx, path)
	if err != nil {
		return fmt.Errorf("%s: request failed: %w", endpoint, err)
	}
	defer cancel()
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("%s: error reading response body: %w", endpoint, err)
	}
	if resp.StatusCode != http.StatusOK {
		logging.LogRequest("in", path, competition, model, fmt.Sprintf("status=%d", resp.StatusCode))
		return &StatusError{Endpoint: endpoint, StatusCode: resp.StatusCode, Body: strings.TrimSpace(string(body))}
	}
	logging.LogRequest("in", path, competition, model, fmt.Sprintf("status=%d bytes=%d elapsed=%s", resp.StatusCode, len(body), time.Since(start).Round(time.Millisecond)))

	if err := validatePayload(endpoint, body); err != nil {
		return err
	}
	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("%s: error parsing response: %w", endpoint, err)
	}
	return nil
}

// Results fetches per-competition question rows and competition metadata.
func (c *Client) Results(ctx context.Context) (ResultsPayload, error) {
	var payload ResultsPayload
	if err := c.getJSON(ctx, endpointResults, c.cfg.ResultsPath(), "", "", &payload); err != nil {
		return ResultsPayload{}, err
	}
	return payload, nil
}

// Secondary fetches the token and cost rows of every competition.
func (c *Client) Secondary(ctx context.Context) (map[string][]leaderboard.QuestionRow, error) {
	var payload map[string][]leaderboard.QuestionRow
	if err := c.getJSON(ctx, endpointSecondary, c.cfg.SecondaryPath(), "", "", &payload); err != nil {
		return nil, err
	}
	return payload, nil
}

// CompetitionDates fetches the contamination flags of every competition.
func (c *Client) CompetitionDates(ctx context.Context) (leaderboard.CompetitionDates, error) {
	var payload leaderboard.CompetitionDates
	if err := c.getJSON(ctx, endpointDates, c.cfg.DatesPath(), "", "", &payload); err != nil {
		return nil, err
	}
	return payload, nil
}

// TracePath returns the request path of a trace.
func (c *Client) TracePath(competition, model string, task int) string {
	return fmt.Sprintf("%s/%s/%s/%s", c.cfg.TracesPath(), url.PathEscape(competition), url.PathEscape(model), strconv.Itoa(task))
}

// Trace fetches one model's outputs for a 1-based task.
func (c *Client) Trace(ctx context.Context, competition, model string, task int) (trace.Record, error) {
	var rec trace.Record
	if err := c.getJSON(ctx, endpointTraces, c.TracePath(competition, model, task), competition, model, &rec); err != nil {
		return trace.Record{}, err
	}
	return rec, nil
}

// Load performs the three startup fetches one after another and combines
// them. Any failure discards everything fetched so far.
func (c *Client) Load(ctx context.Context) (leaderboard.Dataset, error) {
	results, err := c.Results(ctx)
	if err != nil {
		logging.LogEvent("load failed: %v", err)
		return leaderboard.Dataset{}, fmt.Errorf("load leaderboard: %w", err)
	}
	secondary, err := c.Secondary(ctx)
	if err != nil {
		logging.LogEvent("load failed: %v", err)
		return leaderboard.Dataset{}, fmt.Errorf("load leaderboard: %w", err)
	}
	dates, err := c.CompetitionDates(ctx)
	if err != nil {
		logging.LogEvent("load failed: %v", err)
		return leaderboard.Dataset{}, fmt.Errorf("load leaderboard: %w", err)
	}

	for id := range results.Results {
		if _, ok := results.CompetitionInfo[id]; !ok {
			logging.LogEvent("competition %q has results but no competition_info", id)
		}
	}

	return leaderboard.Dataset{
		Results:   results.Results,
		Info:      results.CompetitionInfo,
		Secondary: secondary,
		Dates:     dates,
		OverallID: c.cfg.OverallID(),
	}, nil
}
