// Package core: Graph method implementations.
//
// Lock discipline: every public method takes g.mu exactly once; internal
// helpers with a Locked suffix expect the caller to hold it.

package core

import "sort"

// AddVertex inserts a vertex with the given ID (idempotent).
//
// Re-adding an existing vertex is a no-op, except that an Unlabeled vertex
// takes the category of the later call. Two different non-Unlabeled
// categories for the same ID yield ErrCategoryConflict.
// Complexity: O(1) amortized.
func (g *Graph) AddVertex(id string, opts ...VertexOption) error {
	if id == "" {
		return ErrEmptyVertexID
	}
	candidate := Vertex{ID: id}
	for _, opt := range opts {
		opt(&candidate)
	}

	g.mu.Lock()
	defer g.mu.Unlock()

	return g.addVertexLocked(candidate)
}

func (g *Graph) addVertexLocked(candidate Vertex) error {
	existing, ok := g.vertices[candidate.ID]
	if !ok {
		v := candidate
		g.vertices[v.ID] = &v
		g.adjacency[v.ID] = make(map[string]struct{})

		return nil
	}
	switch {
	case candidate.Category == Unlabeled, candidate.Category == existing.Category:
		return nil
	case existing.Category == Unlabeled:
		existing.Category = candidate.Category
		return nil
	default:
		return ErrCategoryConflict
	}
}

// HasVertex reports whether a vertex with the given ID exists.
// Complexity: O(1).
func (g *Graph) HasVertex(id string) bool {
	if id == "" {
		return false
	}
	g.mu.RLock()
	defer g.mu.RUnlock()
	_, ok := g.vertices[id]

	return ok
}

// Category returns the category of vertex id.
// Complexity: O(1).
func (g *Graph) Category(id string) (Category, error) {
	if id == "" {
		return Unlabeled, ErrEmptyVertexID
	}
	g.mu.RLock()
	defer g.mu.RUnlock()
	v, ok := g.vertices[id]
	if !ok {
		return Unlabeled, ErrVertexNotFound
	}

	return v.Category, nil
}

// AddEdge connects u and v, adding missing endpoints as Unlabeled vertices.
//
// Returns ErrEmptyVertexID, ErrLoopNotAllowed or ErrMultiEdgeNotAllowed.
// Complexity: O(1).
func (g *Graph) AddEdge(u, v string) error {
	if u == "" || v == "" {
		return ErrEmptyVertexID
	}
	if u == v {
		return ErrLoopNotAllowed
	}

	g.mu.Lock()
	defer g.mu.Unlock()

	if _, ok := g.adjacency[u][v]; ok {
		return ErrMultiEdgeNotAllowed
	}
	// Endpoints: idempotent, never conflicting for Unlabeled candidates.
	_ = g.addVertexLocked(Vertex{ID: u})
	_ = g.addVertexLocked(Vertex{ID: v})

	g.adjacency[u][v] = struct{}{}
	g.adjacency[v][u] = struct{}{}
	g.edgeCount++

	return nil
}

// HasEdge reports whether u and v are adjacent (order does not matter).
// Complexity: O(1).
func (g *Graph) HasEdge(u, v string) bool {
	if u == "" || v == "" {
		return false
	}
	g.mu.RLock()
	defer g.mu.RUnlock()
	_, ok := g.adjacency[u][v]

	return ok
}

// Vertices returns all vertex IDs in sorted order.
// Complexity: O(V·logV)
func (g *Graph) Vertices() []string {
	g.mu.RLock()
	defer g.mu.RUnlock()

	return g.verticesLocked()
}

func (g *Graph) verticesLocked() []string {
	ids := make([]string, 0, len(g.vertices))
	for id := range g.vertices {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	return ids
}

// Edges returns every edge once, sorted by (From, To).
// Complexity: O(E·logE)
func (g *Graph) Edges() []Edge {
	g.mu.RLock()
	defer g.mu.RUnlock()

	out := make([]Edge, 0, g.edgeCount)
	for u, nbrs := range g.adjacency {
		for v := range nbrs {
			if u < v {
				out = append(out, Edge{From: u, To: v})
			}
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].From != out[j].From {
			return out[i].From < out[j].From
		}
		return out[i].To < out[j].To
	})

	return out
}

// NeighborIDs returns the sorted IDs adjacent to id.
// Complexity: O(d·log d)
func (g *Graph) NeighborIDs(id string) ([]string, error) {
	if id == "" {
		return nil, ErrEmptyVertexID
	}
	g.mu.RLock()
	defer g.mu.RUnlock()

	nbrs, ok := g.adjacency[id]
	if !ok {
		return nil, ErrVertexNotFound
	}

	return sortedKeys(nbrs), nil
}

// Degree returns the number of neighbors of id.
// Complexity: O(1).
func (g *Graph) Degree(id string) (int, error) {
	if id == "" {
		return 0, ErrEmptyVertexID
	}
	g.mu.RLock()
	defer g.mu.RUnlock()

	nbrs, ok := g.adjacency[id]
	if !ok {
		return 0, ErrVertexNotFound
	}

	return len(nbrs), nil
}

// VertexCount returns total number of vertices. O(1).
func (g *Graph) VertexCount() int {
	g.mu.RLock()
	defer g.mu.RUnlock()

	return len(g.vertices)
}

// EdgeCount returns total number of edges. O(1).
func (g *Graph) EdgeCount() int {
	g.mu.RLock()
	defer g.mu.RUnlock()

	return g.edgeCount
}

// Clone returns a deep copy of the Graph.
// Complexity: O(V + E)
func (g *Graph) Clone() *Graph {
	g.mu.RLock()
	defer g.mu.RUnlock()

	clone := NewGraph()
	for id, v := range g.vertices {
		cp := *v
		clone.vertices[id] = &cp
		nbrs := make(map[string]struct{}, len(g.adjacency[id]))
		for w := range g.adjacency[id] {
			nbrs[w] = struct{}{}
		}
		clone.adjacency[id] = nbrs
	}
	clone.edgeCount = g.edgeCount

	return clone
}

// Relabel returns a new Graph in which every vertex ID u is replaced by
// mapping[u]; categories and adjacency travel with the vertex.
//
// mapping must cover every vertex and be injective, otherwise ErrBadMapping.
// Complexity: O(V + E)
func (g *Graph) Relabel(mapping map[string]string) (*Graph, error) {
	g.mu.RLock()
	defer g.mu.RUnlock()

	if len(mapping) != len(g.vertices) {
		return nil, ErrBadMapping
	}
	seen := make(map[string]struct{}, len(mapping))
	for id := range g.vertices {
		to, ok := mapping[id]
		if !ok || to == "" {
			return nil, ErrBadMapping
		}
		if _, dup := seen[to]; dup {
			return nil, ErrBadMapping
		}
		seen[to] = struct{}{}
	}

	out := NewGraph()
	for id, v := range g.vertices {
		out.vertices[mapping[id]] = &Vertex{ID: mapping[id], Category: v.Category}
		out.adjacency[mapping[id]] = make(map[string]struct{}, len(g.adjacency[id]))
	}
	for u, nbrs := range g.adjacency {
		for v := range nbrs {
			out.adjacency[mapping[u]][mapping[v]] = struct{}{}
		}
	}
	out.edgeCount = g.edgeCount

	return out, nil
}

// sortedKeys returns the keys of set in ascending order.
func sortedKeys(set map[string]struct{}) []string {
	out := make([]string, 0, len(set))
	for k := range set {
		out = append(out, k)
	}
	sort.Strings(out)

	return out
}
