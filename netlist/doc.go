// Package netlist reads transistor-level netlists into core.Graph.
//
// A device record is one line of whitespace-separated fields:
//
//	name drain gate source [extra ...]
//
// Only lines mentioning "nmos" or "pmos" (any case) are devices. Lines that
// start with '*' are comments, lines that start with '.' are directives, and
// both are skipped along with every other line.
//
// Each device becomes a vertex tagged core.NMOS or core.PMOS connected to its
// three terminal nets (core.Net). Polarity comes from the first extra field
// naming a model ("nmos"/"pmos"), else from the device name, else from the
// line itself. A terminal that repeats (drain == source) yields one edge.
//
// Loader adds an LRU cache in front of ReadFile, keyed by path, size and
// modification time.
package netlist
