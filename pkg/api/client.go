package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/google/uuid"

	"github.com/dd0wney/cluso-explorer/pkg/logging"
	"github.com/dd0wney/cluso-explorer/pkg/metrics"
)

const (
	// DefaultBackendURL is used when the config names no backend.
	DefaultBackendURL = "http://localhost:8000"

	// DefaultTimeout bounds every backend request.
	DefaultTimeout = 15 * time.Second
)

// Client talks to the graph backend. All methods are safe for
// concurrent use; the zero value is not usable, construct with New.
type Client struct {
	baseURL    string
	httpClient *http.Client
	log        logging.Logger
	metrics    *metrics.Registry
}

// New creates a backend client. logger and reg may be nil.
func New(baseURL string, timeout time.Duration, logger logging.Logger, reg *metrics.Registry) *Client {
	if baseURL == "" {
		baseURL = DefaultBackendURL
	}
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	if logger == nil {
		logger = logging.NewNopLogger()
	}
	return &Client{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: timeout},
		log:        logger.With(logging.Component("api")),
		metrics:    reg,
	}
}

// FetchGraph loads the whole graph. With recluster set the backend
// recomputes community assignments before responding.
func (c *Client) FetchGraph(ctx context.Context, recluster bool) (*GraphPayload, error) {
	path := "/graph"
	if recluster {
		path += "?recluster=1"
	}
	var payload GraphPayload
	if err := c.getJSON(ctx, "/graph", path, &payload); err != nil {
		return nil, err
	}
	c.log.Info("graph loaded",
		logging.Count(len(payload.Nodes)),
		logging.Int("edges", len(payload.Edges)))
	return &payload, nil
}

// FetchNeighborhood loads the subgraph within depth hops of one person.
// An unknown email yields ErrNotFound.
func (c *Client) FetchNeighborhood(ctx context.Context, email string, depth int) (*GraphPayload, error) {
	if depth < 1 {
		depth = 1
	}
	path := "/graph/" + url.PathEscape(email) + "?depth=" + strconv.Itoa(depth)
	var payload GraphPayload
	if err := c.getJSON(ctx, "/graph/{email}", path, &payload); err != nil {
		return nil, err
	}
	return &payload, nil
}

// FetchMeta loads dataset counters.
func (c *Client) FetchMeta(ctx context.Context) (*Meta, error) {
	var meta Meta
	if err := c.getJSON(ctx, "/meta", "/meta", &meta); err != nil {
		return nil, err
	}
	return &meta, nil
}

// Summarize asks the backend for a fresh relationship summary for one
// pair of people.
func (c *Client) Summarize(ctx context.Context, source, target string) (string, error) {
	var resp summarizeResponse
	err := c.postJSON(ctx, "/graph/summarize", summarizeRequest{Source: source, Target: target}, &resp)
	if err != nil {
		return "", err
	}
	return resp.Summary, nil
}

// FetchInsights loads the backend's generated observations, unwrapping
// the insights envelope.
func (c *Client) FetchInsights(ctx context.Context) ([]Insight, error) {
	var envelope insightsEnvelope
	if err := c.getJSON(ctx, "/insights", "/insights", &envelope); err != nil {
		return nil, err
	}
	return envelope.Insights, nil
}

// Query sends a free-form question to the backend's retrieval pipeline.
func (c *Client) Query(ctx context.Context, question string) (*QueryResponse, error) {
	var resp QueryResponse
	if err := c.postJSON(ctx, "/query", queryRequest{Question: question}, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// getJSON performs a GET and decodes the response. endpoint is the
// metrics label; path is the actual request path with parameters.
func (c *Client) getJSON(ctx context.Context, endpoint, path string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	return c.do(endpoint, req, out)
}

func (c *Client) postJSON(ctx context.Context, path string, in, out any) error {
	body, err := json.Marshal(in)
	if err != nil {
		return fmt.Errorf("marshal request: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	return c.do(path, req, out)
}

func (c *Client) do(endpoint string, req *http.Request, out any) error {
	req.Header.Set("X-Request-ID", uuid.New().String())

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.record(endpoint, "error", start)
		return fmt.Errorf("http request: %w", err)
	}
	defer resp.Body.Close()

	c.record(endpoint, strconv.Itoa(resp.StatusCode), start)

	if resp.StatusCode == http.StatusNotFound {
		return ErrNotFound
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return c.decodeError(resp)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

// decodeError turns a non-2xx response into an *APIError, keeping the
// server's detail string when the body carries one.
func (c *Client) decodeError(resp *http.Response) error {
	apiErr := &APIError{StatusCode: resp.StatusCode}

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 1<<16))
	if err == nil {
		var body errorBody
		if json.Unmarshal(raw, &body) == nil && body.Detail != "" {
			apiErr.Detail = body.Detail
		}
	}

	c.log.Warn("backend error",
		logging.Endpoint(resp.Request.URL.Path),
		logging.Int("status", resp.StatusCode))
	return apiErr
}

func (c *Client) record(endpoint, status string, start time.Time) {
	if c.metrics == nil {
		return
	}
	c.metrics.RecordFetch(endpoint, status, time.Since(start))
}
