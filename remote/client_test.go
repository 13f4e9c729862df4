package remote_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/circuiteq/dqm"
	"github.com/katalvlaran/circuiteq/remote"
	"github.com/katalvlaran/circuiteq/solver"
)

// pairModel: a, b ∈ {0,1}; E = a0·b1 penalty 3, linear a1 = -1.
func pairModel(t *testing.T) *dqm.Model {
	t.Helper()
	b := dqm.NewBuilder()
	a, _ := b.AddVariable("a", 2)
	c, _ := b.AddVariable("b", 2)
	require.NoError(t, b.AddLinear(a, 1, -1))
	require.NoError(t, b.AddQuadratic(a, 0, c, 1, 3))
	m, err := b.Build()
	require.NoError(t, err)

	return m
}

// fakeService answers with whatever reply builds from the decoded request.
func fakeService(t *testing.T, reply func(req remote.SolveRequest) (int, interface{})) string {
	t.Helper()
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, remote.SolvePath, r.URL.Path)
		var req remote.SolveRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		require.Equal(t, req.ID, r.Header.Get("X-Request-Id"))
		status, body := reply(req)
		w.WriteHeader(status)
		_ = json.NewEncoder(w).Encode(body)
	}))
	t.Cleanup(ts.Close)

	return ts.URL
}

func TestNewClient_Endpoint(t *testing.T) {
	for _, bad := range []string{"", "   ", "localhost:8080", "://x"} {
		_, err := remote.NewClient(bad)
		require.ErrorIs(t, err, remote.ErrBadEndpoint, bad)
	}
	c, err := remote.NewClient("http://solver.local:8080/", remote.WithTimeout(time.Second))
	require.NoError(t, err)
	require.Equal(t, "http://solver.local:8080", c.Endpoint())
}

func TestClient_Sample(t *testing.T) {
	url := fakeService(t, func(req remote.SolveRequest) (int, interface{}) {
		require.Equal(t, 2, req.Model.NumVariables())
		return http.StatusOK, remote.SolveResponse{ID: req.ID, Samples: []remote.WireSample{
			{Assignment: []int{1, 0}, Energy: -1, Occurrences: 3},
			{Assignment: []int{0, 0}, Energy: 0, Occurrences: 1},
			{Assignment: []int{0, 1}, Energy: 3},
		}}
	})
	c, err := remote.NewClient(url)
	require.NoError(t, err)
	set, err := c.Sample(context.Background(), pairModel(t))
	require.NoError(t, err)
	require.Equal(t, 3, set.Len())
	first, _ := set.First()
	require.Equal(t, solver.Sample{Assignment: []int{1, 0}, Energy: -1, Occurrences: 3}, first)
	require.Equal(t, 1, set.At(2).Occurrences)
}

func TestClient_RejectsUntrustworthyReplies(t *testing.T) {
	replies := map[string]func(remote.SolveRequest) remote.SolveResponse{
		"wrong id": func(req remote.SolveRequest) remote.SolveResponse {
			return remote.SolveResponse{ID: "other"}
		},
		"short assignment": func(req remote.SolveRequest) remote.SolveResponse {
			return remote.SolveResponse{ID: req.ID, Samples: []remote.WireSample{{Assignment: []int{1}, Energy: -1}}}
		},
		"out of range": func(req remote.SolveRequest) remote.SolveResponse {
			return remote.SolveResponse{ID: req.ID, Samples: []remote.WireSample{{Assignment: []int{2, 0}, Energy: 0}}}
		},
		"wrong energy": func(req remote.SolveRequest) remote.SolveResponse {
			return remote.SolveResponse{ID: req.ID, Samples: []remote.WireSample{{Assignment: []int{0, 1}, Energy: 0}}}
		},
		"unsorted": func(req remote.SolveRequest) remote.SolveResponse {
			return remote.SolveResponse{ID: req.ID, Samples: []remote.WireSample{
				{Assignment: []int{0, 0}, Energy: 0},
				{Assignment: []int{1, 0}, Energy: -1},
			}}
		},
	}
	for name, reply := range replies {
		reply := reply
		url := fakeService(t, func(req remote.SolveRequest) (int, interface{}) { return http.StatusOK, reply(req) })
		c, err := remote.NewClient(url)
		require.NoError(t, err)
		_, err = c.Sample(context.Background(), pairModel(t))
		require.ErrorIs(t, err, remote.ErrMalformedResponse, name)
	}

	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte("{truncated"))
	}))
	defer ts.Close()
	c, err := remote.NewClient(ts.URL)
	require.NoError(t, err)
	_, err = c.Sample(context.Background(), pairModel(t))
	require.ErrorIs(t, err, remote.ErrMalformedResponse)
}

func TestClient_StatusAndTransportErrors(t *testing.T) {
	url := fakeService(t, func(req remote.SolveRequest) (int, interface{}) {
		return http.StatusServiceUnavailable, remote.SolveResponse{ID: req.ID, Error: "maintenance"}
	})
	c, err := remote.NewClient(url)
	require.NoError(t, err)
	_, err = c.Sample(context.Background(), pairModel(t))
	require.ErrorIs(t, err, remote.ErrStatus)
	require.Contains(t, err.Error(), "maintenance")

	ts := httptest.NewServer(http.NotFoundHandler())
	dead := ts.URL
	ts.Close()
	c, err = remote.NewClient(dead)
	require.NoError(t, err)
	_, err = c.Sample(context.Background(), pairModel(t))
	require.ErrorIs(t, err, remote.ErrTransport)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	c, err = remote.NewClient(url)
	require.NoError(t, err)
	_, err = c.Sample(ctx, pairModel(t))
	require.ErrorIs(t, err, remote.ErrTransport)
	require.ErrorIs(t, err, context.Canceled)

	_, err = c.Sample(context.Background(), nil)
	require.ErrorIs(t, err, solver.ErrNilModel)
}
