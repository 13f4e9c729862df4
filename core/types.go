package core

import (
	"errors"
	"sync"
)

// Sentinel errors for core graph operations.
var (
	// ErrEmptyVertexID indicates that the provided vertex ID is empty.
	ErrEmptyVertexID = errors.New("core: vertex ID is empty")

	// ErrVertexNotFound indicates an operation referenced a non-existent vertex.
	ErrVertexNotFound = errors.New("core: vertex not found")

	// ErrLoopNotAllowed indicates a self-loop was attempted.
	ErrLoopNotAllowed = errors.New("core: self-loop not allowed")

	// ErrMultiEdgeNotAllowed indicates the edge already exists.
	ErrMultiEdgeNotAllowed = errors.New("core: multi-edges not allowed")

	// ErrCategoryConflict indicates a vertex was re-added with a different category.
	ErrCategoryConflict = errors.New("core: conflicting vertex category")

	// ErrBadMapping indicates a relabeling map that is not total or not injective.
	ErrBadMapping = errors.New("core: mapping is not a bijection onto new IDs")
)

// Category is the per-vertex tag used by equivalence checks.
// Structural (isomorphism) algorithms never look at it.
type Category uint8

const (
	// Unlabeled is the zero Category; it is compatible with any later label.
	Unlabeled Category = iota

	// Net marks a circuit net (a wire shared by device terminals).
	Net

	// NMOS marks an n-channel transistor.
	NMOS

	// PMOS marks a p-channel transistor.
	PMOS
)

// String returns the human-readable name of c.
func (c Category) String() string {
	switch c {
	case Unlabeled:
		return "unlabeled"
	case Net:
		return "net"
	case NMOS:
		return "nmos"
	case PMOS:
		return "pmos"
	default:
		return "unknown"
	}
}

// Vertex represents a node in the graph.
type Vertex struct {
	// ID is the unique identifier for this Vertex.
	ID string

	// Category is fixed once the vertex is labeled.
	Category Category
}

// Edge is an undirected edge; From < To lexicographically.
type Edge struct {
	From string
	To   string
}

// VertexOption configures a vertex when it is added.
type VertexOption func(v *Vertex)

// WithCategory tags a new vertex with c.
func WithCategory(c Category) VertexOption {
	return func(v *Vertex) { v.Category = c }
}

// Graph is a simple undirected graph with labeled vertices.
//
// mu protects vertices, adjacency and edgeCount.
type Graph struct {
	mu sync.RWMutex

	vertices  map[string]*Vertex
	adjacency map[string]map[string]struct{}
	edgeCount int
}

// NewGraph creates an empty Graph.
// Complexity: O(1)
func NewGraph() *Graph {
	return &Graph{
		vertices:  make(map[string]*Vertex),
		adjacency: make(map[string]map[string]struct{}),
	}
}
