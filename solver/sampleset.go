package solver

import (
	"context"
	"sort"

	"github.com/katalvlaran/circuiteq/dqm"
)

// Sampler minimizes a discrete quadratic model.
//
// Implementations return samples sorted by ascending energy. Any failure
// (timeout, transport, malformed backend output) is returned as an error;
// a Sampler never reports failure through an empty or partial SampleSet.
type Sampler interface {
	Sample(ctx context.Context, m *dqm.Model) (*SampleSet, error)
}

// Sample is one assignment of a case to every variable.
type Sample struct {
	// Assignment[v] is the case chosen for variable v.
	Assignment []int

	// Energy is the model energy of Assignment.
	Energy float64

	// Occurrences counts how many reads produced this assignment.
	Occurrences int
}

// SampleSet is an ordered, read-only collection of samples.
type SampleSet struct {
	samples []Sample
}

// NewSampleSet orders samples by ascending energy (ties: lexicographic
// assignment) and merges identical assignments, summing Occurrences
// (a zero Occurrences counts as one). The input slice is not retained.
func NewSampleSet(samples []Sample) *SampleSet {
	sorted := make([]Sample, len(samples))
	copy(sorted, samples)
	for i := range sorted {
		if sorted[i].Occurrences <= 0 {
			sorted[i].Occurrences = 1
		}
	}
	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].Energy != sorted[j].Energy {
			return sorted[i].Energy < sorted[j].Energy
		}
		return lessAssignment(sorted[i].Assignment, sorted[j].Assignment)
	})

	out := sorted[:0]
	for _, s := range sorted {
		if n := len(out); n > 0 && equalAssignment(out[n-1].Assignment, s.Assignment) {
			out[n-1].Occurrences += s.Occurrences
			continue
		}
		s.Assignment = append([]int(nil), s.Assignment...)
		out = append(out, s)
	}

	return &SampleSet{samples: out}
}

// Len returns the number of distinct samples.
func (s *SampleSet) Len() int {
	if s == nil {
		return 0
	}

	return len(s.samples)
}

// First returns the lowest-energy sample; ok is false for an empty set.
func (s *SampleSet) First() (Sample, bool) {
	if s.Len() == 0 {
		return Sample{}, false
	}

	return s.samples[0], true
}

// At returns the i-th sample in energy order. It panics when i is out of range,
// like a slice index.
func (s *SampleSet) At(i int) Sample {
	return s.samples[i]
}

// Samples returns a copy of the ordered samples.
func (s *SampleSet) Samples() []Sample {
	if s.Len() == 0 {
		return nil
	}
	out := make([]Sample, len(s.samples))
	for i, smp := range s.samples {
		smp.Assignment = append([]int(nil), smp.Assignment...)
		out[i] = smp
	}

	return out
}

func lessAssignment(a, b []int) bool {
	for i := 0; i < len(a) && i < len(b); i++ {
		if a[i] != b[i] {
			return a[i] < b[i]
		}
	}

	return len(a) < len(b)
}

func equalAssignment(a, b []int) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}

	return true
}
