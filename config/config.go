// Package config loads circuiteq settings from a YAML file, a .env file and
// the process environment, in that order of increasing precedence, and turns
// them into sampler and matcher options.
package config

import (
	"bytes"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"github.com/katalvlaran/circuiteq/iso"
	"github.com/katalvlaran/circuiteq/remote"
	"github.com/katalvlaran/circuiteq/solver"
)

// ErrInvalid indicates a setting outside its allowed range.
var ErrInvalid = errors.New("config: invalid setting")

// Query modes.
const (
	ModeEquivalence = "equivalence"
	ModeIsomorphism = "isomorphism"
)

// Solver kinds.
const (
	SolverExact  = "exact"
	SolverAnneal = "anneal"
	SolverRemote = "remote"
)

// Environment overrides.
const (
	EnvSolver   = "CIRCUITEQ_SOLVER"
	EnvEndpoint = "CIRCUITEQ_ENDPOINT"
	EnvAddr     = "CIRCUITEQ_ADDR"
	EnvNumReads = "CIRCUITEQ_NUM_READS"
)

// Config is the full set of tunables.
type Config struct {
	Mode    string        `yaml:"mode"`
	Solver  SolverConfig  `yaml:"solver"`
	Penalty PenaltyConfig `yaml:"penalty"`
	Server  ServerConfig  `yaml:"server"`
}

// SolverConfig selects and tunes the sampler.
type SolverConfig struct {
	Kind      string        `yaml:"kind"`
	NumReads  int           `yaml:"num_reads"`
	Sweeps    int           `yaml:"sweeps"`
	Seed      int64         `yaml:"seed"`
	Workers   int           `yaml:"workers"`
	TimeLimit time.Duration `yaml:"time_limit"`
	Endpoint  string        `yaml:"endpoint"`
}

// PenaltyConfig mirrors iso.Options.
type PenaltyConfig struct {
	Uniqueness float64 `yaml:"uniqueness"`
	Edge       float64 `yaml:"edge"`
	Offset     string  `yaml:"offset"`
	Tolerance  float64 `yaml:"tolerance"`
}

// ServerConfig tunes cmd/dqmd.
type ServerConfig struct {
	Addr         string        `yaml:"addr"`
	CacheSize    int           `yaml:"cache_size"`
	SolveTimeout time.Duration `yaml:"solve_timeout"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Mode: ModeEquivalence,
		Solver: SolverConfig{
			Kind:     SolverExact,
			NumReads: solver.DefaultNumReads,
			Sweeps:   solver.DefaultSweeps,
		},
		Penalty: PenaltyConfig{
			Uniqueness: iso.DefaultUniquenessPenalty,
			Edge:       iso.DefaultEdgePenalty,
			Offset:     iso.OffsetBalanced.String(),
			Tolerance:  iso.DefaultTolerance,
		},
		Server: ServerConfig{
			Addr:      ":8080",
			CacheSize: 128,
		},
	}
}

// Load builds a Config from defaults, the YAML file at path (skipped when
// path is empty), a .env file in the working directory if present, and the
// CIRCUITEQ_* environment variables.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path != "" {
		raw, err := os.ReadFile(path)
		if err != nil {
			return nil, errors.Wrap(err, "config: read")
		}
		if err := decode(bytes.NewReader(raw), &cfg); err != nil {
			return nil, errors.Wrapf(err, "config: %s", path)
		}
	}
	_ = godotenv.Load()
	if err := cfg.applyEnv(os.Getenv); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// decode reads YAML over cfg, rejecting unknown keys.
func decode(r io.Reader, cfg *Config) error {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && err != io.EOF {
		return err
	}

	return nil
}

func (c *Config) applyEnv(getenv func(string) string) error {
	if v := strings.TrimSpace(getenv(EnvSolver)); v != "" {
		c.Solver.Kind = strings.ToLower(v)
	}
	if v := strings.TrimSpace(getenv(EnvEndpoint)); v != "" {
		c.Solver.Endpoint = v
	}
	if v := strings.TrimSpace(getenv(EnvAddr)); v != "" {
		if !strings.Contains(v, ":") {
			v = ":" + v
		}
		c.Server.Addr = v
	}
	if v := strings.TrimSpace(getenv(EnvNumReads)); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return errors.Wrapf(ErrInvalid, "%s=%q", EnvNumReads, v)
		}
		c.Solver.NumReads = n
	}

	return nil
}

// Validate checks every field.
func (c *Config) Validate() error {
	switch c.Mode {
	case ModeEquivalence, ModeIsomorphism:
	default:
		return errors.Wrapf(ErrInvalid, "mode %q", c.Mode)
	}
	switch c.Solver.Kind {
	case SolverExact, SolverAnneal:
	case SolverRemote:
		if c.Solver.Endpoint == "" {
			return errors.Wrap(ErrInvalid, "remote solver needs an endpoint")
		}
	default:
		return errors.Wrapf(ErrInvalid, "solver kind %q", c.Solver.Kind)
	}
	if c.Solver.NumReads <= 0 || c.Solver.Sweeps <= 0 || c.Solver.Workers < 0 || c.Solver.TimeLimit < 0 {
		return errors.Wrapf(ErrInvalid, "solver %+v", c.Solver)
	}
	if _, err := c.offset(); err != nil {
		return err
	}
	if c.Penalty.Uniqueness <= 0 || c.Penalty.Edge <= 0 || c.Penalty.Tolerance < 0 {
		return errors.Wrapf(ErrInvalid, "penalty %+v", c.Penalty)
	}
	if c.Server.CacheSize < 0 || c.Server.SolveTimeout < 0 {
		return errors.Wrapf(ErrInvalid, "server %+v", c.Server)
	}

	return nil
}

func (c *Config) offset() (iso.Offset, error) {
	switch strings.ToLower(c.Penalty.Offset) {
	case "", iso.OffsetBalanced.String():
		return iso.OffsetBalanced, nil
	case iso.OffsetZero.String():
		return iso.OffsetZero, nil
	default:
		return 0, errors.Wrapf(ErrInvalid, "offset %q", c.Penalty.Offset)
	}
}

// MatchOptions returns the formulation options.
func (c *Config) MatchOptions() []iso.Option {
	off, _ := c.offset()

	return []iso.Option{
		iso.WithUniquenessPenalty(c.Penalty.Uniqueness),
		iso.WithEdgePenalty(c.Penalty.Edge),
		iso.WithOffset(off),
		iso.WithTolerance(c.Penalty.Tolerance),
	}
}

// SamplerOptions returns the local sampler options.
func (c *Config) SamplerOptions() []solver.Option {
	return []solver.Option{
		solver.WithNumReads(c.Solver.NumReads),
		solver.WithSweeps(c.Solver.Sweeps),
		solver.WithSeed(c.Solver.Seed),
		solver.WithWorkers(c.Solver.Workers),
		solver.WithTimeLimit(c.Solver.TimeLimit),
	}
}

// NewSampler builds the configured sampler.
func (c *Config) NewSampler() (solver.Sampler, error) {
	if c.Solver.Kind != SolverRemote {
		return c.LocalSampler()
	}
	client, err := remote.NewClient(c.Solver.Endpoint)
	if err != nil {
		return nil, err
	}

	return client, nil
}

// LocalSampler builds the configured in-process sampler; a remote kind is
// an error since a service cannot forward to itself.
func (c *Config) LocalSampler() (solver.Sampler, error) {
	var (
		s   solver.Sampler
		err error
	)
	switch c.Solver.Kind {
	case SolverExact:
		s, err = solver.NewExact(c.SamplerOptions()...)
	case SolverAnneal:
		s, err = solver.NewAnneal(c.SamplerOptions()...)
	default:
		return nil, errors.Wrapf(ErrInvalid, "solver kind %q is not local", c.Solver.Kind)
	}
	if err != nil {
		return nil, err
	}

	return s, nil
}
