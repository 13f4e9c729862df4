// Package remote implements solver.Sampler over HTTP.
//
// Client posts a dqm.Model to a solving service (see package service) and
// turns the reply into a solver.SampleSet. The reply is checked before it is
// trusted: the echoed request ID must match, every assignment must be valid
// for the model, and every reported energy must agree with Model.Energy.
// Transport failures, non-200 replies and malformed bodies are errors; the
// client never retries.
package remote
