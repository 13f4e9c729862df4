// Package service exposes a solver.Sampler over HTTP.
//
// Routes:
//
//	POST /v1/solve  {"id", "model"} → {"id", "samples"}
//	GET  /healthz   liveness probe
//
// Replies are cached in an LRU keyed by the SHA-256 of the model's wire form,
// so repeated queries for the same pair of circuits skip the sampler. Only
// deterministic samplers should be served with the cache enabled.
package service
