package remote

import "github.com/katalvlaran/circuiteq/dqm"

// SolvePath is the route served by package service.
const SolvePath = "/v1/solve"

// SolveRequest is the body of POST /v1/solve.
type SolveRequest struct {
	ID    string     `json:"id"`
	Model *dqm.Model `json:"model"`
}

// WireSample is one sample in a SolveResponse.
type WireSample struct {
	Assignment  []int   `json:"assignment"`
	Energy      float64 `json:"energy"`
	Occurrences int     `json:"occurrences"`
}

// SolveResponse is the reply of POST /v1/solve. Error is set instead of
// Samples when the service fails.
type SolveResponse struct {
	ID      string       `json:"id"`
	Samples []WireSample `json:"samples,omitempty"`
	Error   string       `json:"error,omitempty"`
}
