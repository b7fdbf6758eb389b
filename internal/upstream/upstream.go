// Package upstream talks to the external graph service that owns the
// knowledge graph. Everything above it consumes the Service interface;
// the HTTP client is the only place that knows about endpoints.
package upstream

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

	"golang.org/x/time/rate"

	"github.com/lanternlab/lantern/internal/util"
	"github.com/lanternlab/lantern/pkg/graph"
)

// Service is the full upstream surface: snapshot loading for the view
// controller plus entity listing and hypothesis discovery.
type Service interface {
	GetOverview(ctx context.Context, threshold float64) ([]graph.Node, []graph.Edge, error)
	GetNeighbors(ctx context.Context, resourceID string) ([]graph.Node, []graph.Edge, error)
	GetEntities(ctx context.Context) ([]graph.Node, error)
	DiscoverHypotheses(ctx context.Context, entityA, entityC string) ([]graph.Hypothesis, error)
}

// StatusError reports a non-2xx upstream response.
type StatusError struct {
	Code int
	Body string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("upstream returned status %d: %s", e.Code, e.Body)
}

// Client is the HTTP implementation of Service with client-side rate
// limiting and bounded retries.
type Client struct {
	baseURL    *url.URL
	httpClient *http.Client
	limiter    *rate.Limiter
	maxTries   int
}

type NewClientParams struct {
	BaseURL string

	Timeout           time.Duration
	RequestsPerSecond float64
	MaxTries          int
}

func NewClient(params NewClientParams) (*Client, error) {
	u, err := url.Parse(params.BaseURL)
	if err != nil {
		return nil, fmt.Errorf("parsing upstream base url: %w", err)
	}

	timeout := params.Timeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	rps := params.RequestsPerSecond
	if rps <= 0 {
		rps = 10
	}
	maxTries := params.MaxTries
	if maxTries <= 0 {
		maxTries = 3
	}

	return &Client{
		baseURL:    u,
		httpClient: &http.Client{Timeout: timeout},
		limiter:    rate.NewLimiter(rate.Limit(rps), int(rps)),
		maxTries:   maxTries,
	}, nil
}

func (c *Client) GetOverview(ctx context.Context, threshold float64) ([]graph.Node, []graph.Edge, error) {
	query := url.Values{}
	query.Set("threshold", strconv.FormatFloat(threshold, 'f', -1, 64))

	var payload graphPayload
	if err := c.getJSON(ctx, "/graph/overview", query, &payload); err != nil {
		return nil, nil, fmt.Errorf("fetching overview: %w", err)
	}
	return payload.Nodes, payload.Edges, nil
}

func (c *Client) GetNeighbors(ctx context.Context, resourceID string) ([]graph.Node, []graph.Edge, error) {
	var payload graphPayload
	path := "/graph/neighbors/" + url.PathEscape(resourceID)
	if err := c.getJSON(ctx, path, nil, &payload); err != nil {
		return nil, nil, fmt.Errorf("fetching neighbors of %s: %w", resourceID, err)
	}
	return payload.Nodes, payload.Edges, nil
}

func (c *Client) GetEntities(ctx context.Context) ([]graph.Node, error) {
	var payload entitiesPayload
	if err := c.getJSON(ctx, "/entities", nil, &payload); err != nil {
		return nil, fmt.Errorf("fetching entities: %w", err)
	}
	return payload.Entities, nil
}

func (c *Client) DiscoverHypotheses(ctx context.Context, entityA, entityC string) ([]graph.Hypothesis, error) {
	body := discoveryRequest{EntityA: entityA, EntityC: entityC}
	var payload hypothesesPayload
	if err := c.postJSON(ctx, "/discovery", body, &payload); err != nil {
		return nil, fmt.Errorf("discovering hypotheses: %w", err)
	}
	return payload.Hypotheses, nil
}

type graphPayload struct {
	Nodes []graph.Node `json:"nodes"`
	Edges []graph.Edge `json:"edges"`
}

type entitiesPayload struct {
	Entities []graph.Node `json:"entities"`
}

type discoveryRequest struct {
	EntityA string `json:"entityA"`
	EntityC string `json:"entityC"`
}

type hypothesesPayload struct {
	Hypotheses []graph.Hypothesis `json:"hypotheses"`
}

func (c *Client) getJSON(ctx context.Context, path string, query url.Values, out any) error {
	return util.RetryErrWithContext(ctx, c.maxTries, func(ctx context.Context) error {
		req, err := c.newRequest(ctx, http.MethodGet, path, query, nil)
		if err != nil {
			return err
		}
		return c.do(req, out)
	})
}

func (c *Client) postJSON(ctx context.Context, path string, body any, out any) error {
	encoded, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("encoding request body: %w", err)
	}
	return util.RetryErrWithContext(ctx, c.maxTries, func(ctx context.Context) error {
		req, err := c.newRequest(ctx, http.MethodPost, path, nil, bytes.NewReader(encoded))
		if err != nil {
			return err
		}
		req.Header.Set("Content-Type", "application/json")
		return c.do(req, out)
	})
}

func (c *Client) newRequest(ctx context.Context, method, path string, query url.Values, body io.Reader) (*http.Request, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	u := c.baseURL.JoinPath(path)
	if query != nil {
		u.RawQuery = query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, method, u.String(), body)
	if err != nil {
		return nil, fmt.Errorf("building request: %w", err)
	}
	return req, nil
}

func (c *Client) do(req *http.Request, out any) error {
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return &StatusError{Code: resp.StatusCode, Body: string(raw)}
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decoding response: %w", err)
	}
	return nil
}
