package dqm

import (
	"encoding/json"
	"fmt"
)

// wireModel is the JSON shape of a Model.
type wireModel struct {
	Variables []wireVariable `json:"variables"`
	Linear    [][]float64    `json:"linear"`
	Quadratic []wireTerm     `json:"quadratic"`
	Offset    float64        `json:"offset"`
}

type wireVariable struct {
	Label string `json:"label"`
	Cases int    `json:"cases"`
}

type wireTerm struct {
	U     int     `json:"u"`
	CaseU int     `json:"cu"`
	V     int     `json:"v"`
	CaseV int     `json:"cv"`
	Bias  float64 `json:"bias"`
}

// MarshalJSON encodes m deterministically: variables in index order,
// quadratic terms sorted.
func (m *Model) MarshalJSON() ([]byte, error) {
	w := wireModel{
		Variables: make([]wireVariable, len(m.labels)),
		Linear:    m.linear,
		Quadratic: make([]wireTerm, 0, len(m.quad)),
		Offset:    m.offset,
	}
	for v, label := range m.labels {
		w.Variables[v] = wireVariable{Label: label, Cases: m.cases[v]}
	}
	for _, t := range m.QuadraticTerms() {
		w.Quadratic = append(w.Quadratic, wireTerm{U: t.U, CaseU: t.CaseU, V: t.V, CaseV: t.CaseV, Bias: t.Bias})
	}

	return json.Marshal(w)
}

// UnmarshalJSON decodes a model produced by MarshalJSON, re-validating every
// term through a Builder. Any inconsistency yields an error wrapping ErrBadWire.
func (m *Model) UnmarshalJSON(data []byte) error {
	var w wireModel
	if err := json.Unmarshal(data, &w); err != nil {
		return fmt.Errorf("%w: %v", ErrBadWire, err)
	}
	if len(w.Linear) != 0 && len(w.Linear) != len(w.Variables) {
		return fmt.Errorf("%w: %d linear rows for %d variables", ErrBadWire, len(w.Linear), len(w.Variables))
	}

	b := NewBuilder()
	for _, wv := range w.Variables {
		if _, err := b.AddVariable(wv.Label, wv.Cases); err != nil {
			return fmt.Errorf("%w: variable %q: %v", ErrBadWire, wv.Label, err)
		}
	}
	for v, row := range w.Linear {
		if len(row) != w.Variables[v].Cases {
			return fmt.Errorf("%w: variable %q has %d linear biases for %d cases",
				ErrBadWire, w.Variables[v].Label, len(row), w.Variables[v].Cases)
		}
		for c, bias := range row {
			if err := b.AddLinear(v, c, bias); err != nil {
				return fmt.Errorf("%w: linear (%d,%d): %v", ErrBadWire, v, c, err)
			}
		}
	}
	for _, t := range w.Quadratic {
		if err := b.AddQuadratic(t.U, t.CaseU, t.V, t.CaseV, t.Bias); err != nil {
			return fmt.Errorf("%w: quadratic (%d,%d)-(%d,%d): %v", ErrBadWire, t.U, t.CaseU, t.V, t.CaseV, err)
		}
	}
	if err := b.AddOffset(w.Offset); err != nil {
		return fmt.Errorf("%w: offset: %v", ErrBadWire, err)
	}

	built, err := b.Build()
	if err != nil {
		return fmt.Errorf("%w: %v", ErrBadWire, err)
	}
	*m = *built

	return nil
}
