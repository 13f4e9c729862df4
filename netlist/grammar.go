package netlist

import (
	"strings"

	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"

	"github.com/katalvlaran/circuiteq/core"
)

// record is the grammar of a device line.
type record struct {
	Name   string   `parser:"@Field"`
	Drain  string   `parser:"@Field"`
	Gate   string   `parser:"@Field"`
	Source string   `parser:"@Field"`
	Extra  []string `parser:"@Field*"`
}

// Device is one transistor read from a netlist.
type Device struct {
	Name     string
	Drain    string
	Gate     string
	Source   string
	Polarity core.Category
	Line     int // 1-based source line
}

var deviceLexer = lexer.MustSimple([]lexer.SimpleRule{
	{Name: "Field", Pattern: `[^\s]+`},
	{Name: "whitespace", Pattern: `\s+`},
})

var parseDevice = participle.MustBuild[record](
	participle.Lexer(deviceLexer),
)

// Terminals returns drain, gate and source in record order.
func (d *Device) Terminals() [3]string {
	return [3]string{d.Drain, d.Gate, d.Source}
}

// isDeviceLine reports whether a raw line is a device record candidate.
func isDeviceLine(line string) bool {
	trimmed := strings.TrimSpace(line)
	if trimmed == "" || trimmed[0] == '*' || trimmed[0] == '.' {
		return false
	}
	lower := strings.ToLower(trimmed)

	return strings.Contains(lower, "nmos") || strings.Contains(lower, "pmos")
}

// polarity resolves the device type: model field, then name, then line.
func polarity(d *record, line string) core.Category {
	for _, x := range d.Extra {
		switch strings.ToLower(x) {
		case "nmos":
			return core.NMOS
		case "pmos":
			return core.PMOS
		}
	}
	if c := firstMention(d.Name); c != core.Unlabeled {
		return c
	}

	return firstMention(line)
}

// firstMention returns the polarity whose keyword occurs first in s.
func firstMention(s string) core.Category {
	lower := strings.ToLower(s)
	n, p := strings.Index(lower, "nmos"), strings.Index(lower, "pmos")
	switch {
	case n < 0 && p < 0:
		return core.Unlabeled
	case p < 0 || (n >= 0 && n < p):
		return core.NMOS
	default:
		return core.PMOS
	}
}
