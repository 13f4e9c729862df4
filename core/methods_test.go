package core_test

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/circuiteq/core"
)

// TestGraph_AddVertex verifies idempotency, empty-ID rejection and category rules.
func TestGraph_AddVertex(t *testing.T) {
	g := core.NewGraph()

	require.ErrorIs(t, g.AddVertex(""), core.ErrEmptyVertexID)

	require.NoError(t, g.AddVertex("M1", core.WithCategory(core.NMOS)))
	require.True(t, g.HasVertex("M1"))
	require.NoError(t, g.AddVertex("M1"), "unlabeled re-add is a no-op")
	require.NoError(t, g.AddVertex("M1", core.WithCategory(core.NMOS)))
	require.Equal(t, 1, g.VertexCount())

	c, err := g.Category("M1")
	require.NoError(t, err)
	require.Equal(t, core.NMOS, c)

	require.ErrorIs(t, g.AddVertex("M1", core.WithCategory(core.PMOS)), core.ErrCategoryConflict)

	// Unlabeled vertices adopt the first label they are given.
	require.NoError(t, g.AddVertex("out"))
	require.NoError(t, g.AddVertex("out", core.WithCategory(core.Net)))
	c, err = g.Category("out")
	require.NoError(t, err)
	require.Equal(t, core.Net, c)

	_, err = g.Category("missing")
	require.ErrorIs(t, err, core.ErrVertexNotFound)
}

// TestGraph_AddEdge verifies the simple-graph constraints.
func TestGraph_AddEdge(t *testing.T) {
	g := core.NewGraph()

	require.ErrorIs(t, g.AddEdge("", "B"), core.ErrEmptyVertexID)
	require.ErrorIs(t, g.AddEdge("A", "A"), core.ErrLoopNotAllowed)

	require.NoError(t, g.AddEdge("A", "B"))
	require.ErrorIs(t, g.AddEdge("A", "B"), core.ErrMultiEdgeNotAllowed)
	require.ErrorIs(t, g.AddEdge("B", "A"), core.ErrMultiEdgeNotAllowed, "undirected duplicate")

	require.True(t, g.HasEdge("A", "B"))
	require.True(t, g.HasEdge("B", "A"))
	require.False(t, g.HasEdge("A", "C"))
	require.Equal(t, 2, g.VertexCount())
	require.Equal(t, 1, g.EdgeCount())

	c, err := g.Category("A")
	require.NoError(t, err)
	require.Equal(t, core.Unlabeled, c, "auto-added endpoints are unlabeled")
}

// TestGraph_Queries verifies deterministic enumeration and degrees.
func TestGraph_Queries(t *testing.T) {
	g := core.NewGraph()
	require.NoError(t, g.AddEdge("C", "A"))
	require.NoError(t, g.AddEdge("B", "A"))
	require.NoError(t, g.AddEdge("C", "D"))

	require.Equal(t, []string{"A", "B", "C", "D"}, g.Vertices())
	require.Equal(t, []core.Edge{{From: "A", To: "B"}, {From: "A", To: "C"}, {From: "C", To: "D"}}, g.Edges())

	nbrs, err := g.NeighborIDs("A")
	require.NoError(t, err)
	require.Equal(t, []string{"B", "C"}, nbrs)

	d, err := g.Degree("C")
	require.NoError(t, err)
	require.Equal(t, 2, d)

	_, err = g.NeighborIDs("Z")
	require.ErrorIs(t, err, core.ErrVertexNotFound)
	_, err = g.Degree("")
	require.ErrorIs(t, err, core.ErrEmptyVertexID)
}

// TestGraph_CloneIsIndependent verifies deep copy semantics.
func TestGraph_CloneIsIndependent(t *testing.T) {
	g := core.NewGraph()
	require.NoError(t, g.AddVertex("A", core.WithCategory(core.PMOS)))
	require.NoError(t, g.AddEdge("A", "B"))

	clone := g.Clone()
	require.NoError(t, clone.AddEdge("B", "C"))

	require.Equal(t, 1, g.EdgeCount())
	require.Equal(t, 2, clone.EdgeCount())
	require.False(t, g.HasVertex("C"))

	c, err := clone.Category("A")
	require.NoError(t, err)
	require.Equal(t, core.PMOS, c)
}

// TestGraph_Relabel verifies relabeling keeps structure and categories.
func TestGraph_Relabel(t *testing.T) {
	g := core.NewGraph()
	require.NoError(t, g.AddVertex("M1", core.WithCategory(core.NMOS)))
	require.NoError(t, g.AddEdge("M1", "out"))
	require.NoError(t, g.AddEdge("M1", "gnd"))

	out, err := g.Relabel(map[string]string{"M1": "X", "out": "y", "gnd": "z"})
	require.NoError(t, err)
	require.True(t, out.HasEdge("X", "y"))
	require.True(t, out.HasEdge("z", "X"))
	require.False(t, out.HasEdge("y", "z"))
	require.Equal(t, 2, out.EdgeCount())

	c, err := out.Category("X")
	require.NoError(t, err)
	require.Equal(t, core.NMOS, c)

	_, err = g.Relabel(map[string]string{"M1": "X", "out": "y"})
	require.ErrorIs(t, err, core.ErrBadMapping, "partial mapping")
	_, err = g.Relabel(map[string]string{"M1": "X", "out": "X", "gnd": "z"})
	require.ErrorIs(t, err, core.ErrBadMapping, "non-injective mapping")
}

// TestGraph_BreadthFirstOrder verifies root choice, component coverage and determinism.
func TestGraph_BreadthFirstOrder(t *testing.T) {
	g := core.NewGraph()
	// Star around H plus a separate pair.
	require.NoError(t, g.AddEdge("H", "a"))
	require.NoError(t, g.AddEdge("H", "b"))
	require.NoError(t, g.AddEdge("H", "c"))
	require.NoError(t, g.AddEdge("c", "d"))
	require.NoError(t, g.AddEdge("x", "y"))
	require.NoError(t, g.AddVertex("lonely"))

	require.Equal(t, []string{"H", "a", "b", "c", "d", "x", "y", "lonely"}, g.BreadthFirstOrder())
	require.Equal(t, g.BreadthFirstOrder(), g.BreadthFirstOrder())
	require.Empty(t, core.NewGraph().BreadthFirstOrder())
}

// TestGraph_ConcurrentReaders exercises the RWMutex under parallel reads and writes.
func TestGraph_ConcurrentReaders(t *testing.T) {
	g := core.NewGraph()
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(2)
		go func(i int) {
			defer wg.Done()
			_ = g.AddEdge("hub", string(rune('a'+i)))
		}(i)
		go func() {
			defer wg.Done()
			_ = g.Vertices()
			_ = g.Edges()
		}()
	}
	wg.Wait()

	d, err := g.Degree("hub")
	require.NoError(t, err)
	require.Equal(t, 8, d)
}
