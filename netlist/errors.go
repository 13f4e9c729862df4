package netlist

import "github.com/pkg/errors"

var (
	// ErrMalformedLine indicates a device line with fewer than four fields.
	ErrMalformedLine = errors.New("netlist: device line needs name, drain, gate and source")

	// ErrNodeConflict indicates an identifier used both as a device and as a net.
	ErrNodeConflict = errors.New("netlist: identifier used as both device and net")

	// ErrDuplicateDevice indicates two device lines with the same name.
	ErrDuplicateDevice = errors.New("netlist: duplicate device name")

	// ErrSelfTerminal indicates a device listed as one of its own terminals.
	ErrSelfTerminal = errors.New("netlist: device connected to itself")
)
