package netlist

import (
	"bufio"
	"io"
	"os"
	"strings"

	"github.com/pkg/errors"

	"github.com/katalvlaran/circuiteq/core"
)

// Parse reads the device records of a netlist. name labels error messages.
func Parse(r io.Reader, name string) ([]Device, error) {
	var devices []Device
	sc := bufio.NewScanner(r)
	for lineNo := 1; sc.Scan(); lineNo++ {
		line := sc.Text()
		if !isDeviceLine(line) {
			continue
		}
		rec, err := parseDevice.ParseString(name, strings.TrimSpace(line))
		if err != nil {
			return nil, errors.Wrapf(ErrMalformedLine, "%s:%d: %v", name, lineNo, err)
		}
		devices = append(devices, Device{
			Name:     rec.Name,
			Drain:    rec.Drain,
			Gate:     rec.Gate,
			Source:   rec.Source,
			Polarity: polarity(rec, line),
			Line:     lineNo,
		})
	}
	if err := sc.Err(); err != nil {
		return nil, errors.Wrapf(err, "netlist: scan %s", name)
	}

	return devices, nil
}

// Graph connects every device to its terminal nets.
func Graph(devices []Device) (*core.Graph, error) {
	g := core.NewGraph()
	seen := make(map[string]int, len(devices))
	for _, d := range devices {
		if prev, dup := seen[d.Name]; dup {
			return nil, errors.Wrapf(ErrDuplicateDevice, "%q on lines %d and %d", d.Name, prev, d.Line)
		}
		seen[d.Name] = d.Line
		if err := g.AddVertex(d.Name, core.WithCategory(d.Polarity)); err != nil {
			return nil, nodeError(err, d.Name, d.Line)
		}
		for _, t := range [3]string{d.Drain, d.Gate, d.Source} {
			if t == d.Name {
				return nil, errors.Wrapf(ErrSelfTerminal, "%q on line %d", d.Name, d.Line)
			}
			if err := g.AddVertex(t, core.WithCategory(core.Net)); err != nil {
				return nil, nodeError(err, t, d.Line)
			}
			if g.HasEdge(d.Name, t) {
				continue
			}
			if err := g.AddEdge(d.Name, t); err != nil {
				return nil, errors.Wrapf(err, "netlist: line %d", d.Line)
			}
		}
	}

	return g, nil
}

func nodeError(err error, id string, line int) error {
	if errors.Is(err, core.ErrCategoryConflict) {
		return errors.Wrapf(ErrNodeConflict, "%q on line %d", id, line)
	}

	return errors.Wrapf(err, "netlist: line %d", line)
}

// Read parses r and builds its graph.
func Read(r io.Reader, name string) (*core.Graph, error) {
	devices, err := Parse(r, name)
	if err != nil {
		return nil, err
	}

	return Graph(devices)
}

// ReadFile opens path and builds its graph.
func ReadFile(path string) (*core.Graph, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(err, "netlist: open")
	}
	defer f.Close()

	return Read(f, path)
}
