package remote

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"math"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"

	"github.com/katalvlaran/circuiteq/dqm"
	"github.com/katalvlaran/circuiteq/solver"
)

var (
	// ErrBadEndpoint indicates an empty or unparsable service URL.
	ErrBadEndpoint = errors.New("remote: invalid endpoint")

	// ErrTransport wraps failures to reach the service.
	ErrTransport = errors.New("remote: transport failure")

	// ErrStatus indicates a non-200 reply.
	ErrStatus = errors.New("remote: unexpected status")

	// ErrMalformedResponse indicates a reply that cannot be trusted.
	ErrMalformedResponse = errors.New("remote: malformed response")
)

const (
	// DefaultTimeout bounds one round trip when the caller's context does not.
	DefaultTimeout = 2 * time.Minute

	// energyTolerance is the allowed gap between reported and recomputed energy.
	energyTolerance = 1e-6

	maxBodyBytes = 64 << 20
)

// Client is a solver.Sampler backed by a remote service.
type Client struct {
	endpoint string
	http     *http.Client
	newID    func() string
}

var _ solver.Sampler = (*Client)(nil)

// ClientOption configures a Client.
type ClientOption func(*Client)

// WithHTTPClient replaces the default *http.Client.
func WithHTTPClient(h *http.Client) ClientOption {
	return func(c *Client) {
		if h != nil {
			c.http = h
		}
	}
}

// WithTimeout sets the round-trip timeout of the default HTTP client.
func WithTimeout(d time.Duration) ClientOption {
	return func(c *Client) { c.http.Timeout = d }
}

// NewClient returns a Client for the service rooted at endpoint
// (e.g. "http://localhost:8080").
func NewClient(endpoint string, opts ...ClientOption) (*Client, error) {
	endpoint = strings.TrimRight(strings.TrimSpace(endpoint), "/")
	u, err := url.Parse(endpoint)
	if endpoint == "" || err != nil || u.Scheme == "" || u.Host == "" {
		return nil, errors.Wrapf(ErrBadEndpoint, "%q", endpoint)
	}
	c := &Client{
		endpoint: endpoint,
		http:     &http.Client{Timeout: DefaultTimeout},
		newID:    uuid.NewString,
	}
	for _, opt := range opts {
		opt(c)
	}

	return c, nil
}

// Endpoint returns the service root.
func (c *Client) Endpoint() string { return c.endpoint }

// Sample sends m to the service and validates the reply against m.
func (c *Client) Sample(ctx context.Context, m *dqm.Model) (*solver.SampleSet, error) {
	if m == nil {
		return nil, solver.ErrNilModel
	}
	id := c.newID()
	body, err := json.Marshal(SolveRequest{ID: id, Model: m})
	if err != nil {
		return nil, errors.Wrap(err, "remote: encode request")
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint+SolvePath, bytes.NewReader(body))
	if err != nil {
		return nil, errors.Wrap(err, "remote: build request")
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Request-Id", id)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrTransport, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return nil, fmt.Errorf("%w: read body: %w", ErrTransport, err)
	}
	var out SolveResponse
	decodeErr := json.Unmarshal(raw, &out)
	if resp.StatusCode != http.StatusOK {
		msg := strings.TrimSpace(string(raw))
		if decodeErr == nil && out.Error != "" {
			msg = out.Error
		}
		return nil, errors.Wrapf(ErrStatus, "%d: %s", resp.StatusCode, msg)
	}
	if decodeErr != nil {
		return nil, errors.Wrapf(ErrMalformedResponse, "decode: %v", decodeErr)
	}

	return checkResponse(m, id, out)
}

// checkResponse validates a decoded reply for request id against m.
func checkResponse(m *dqm.Model, id string, out SolveResponse) (*solver.SampleSet, error) {
	if out.ID != id {
		return nil, errors.Wrapf(ErrMalformedResponse, "id %q does not match request %q", out.ID, id)
	}
	if out.Error != "" {
		return nil, errors.Wrapf(ErrMalformedResponse, "error %q in successful reply", out.Error)
	}
	samples := make([]solver.Sample, 0, len(out.Samples))
	for i, ws := range out.Samples {
		if err := m.Validate(ws.Assignment); err != nil {
			return nil, errors.Wrapf(ErrMalformedResponse, "sample %d: %v", i, err)
		}
		want, _ := m.Energy(ws.Assignment)
		if math.IsNaN(ws.Energy) || math.Abs(want-ws.Energy) > energyTolerance {
			return nil, errors.Wrapf(ErrMalformedResponse, "sample %d: energy %g, model says %g", i, ws.Energy, want)
		}
		if i > 0 && ws.Energy < out.Samples[i-1].Energy {
			return nil, errors.Wrapf(ErrMalformedResponse, "sample %d: energies not ascending", i)
		}
		samples = append(samples, solver.Sample{
			Assignment:  ws.Assignment,
			Energy:      ws.Energy,
			Occurrences: ws.Occurrences,
		})
	}

	return solver.NewSampleSet(samples), nil
}
