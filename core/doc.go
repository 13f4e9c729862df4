// Package core provides the thread-safe, labeled, undirected Graph that every
// other circuiteq package consumes.
//
// A Graph G = (V, E) here is deliberately narrow:
//
//   - Undirected edges only, stored as a symmetric adjacency set
//     adjacency[u][v] = struct{}{} and adjacency[v][u] = struct{}{}.
//   - No self-loops (ErrLoopNotAllowed) and no parallel edges
//     (ErrMultiEdgeNotAllowed); a circuit graph is a simple graph.
//   - Every vertex carries a Category tag (Net, NMOS, PMOS, …) assigned once
//     when the vertex is created. Structural algorithms ignore it; equivalence
//     checks compare it.
//   - A single sync.RWMutex guards the catalog, so concurrent readers never
//     block each other.
//
// Deterministic iteration: Vertices(), Edges(), NeighborIDs() and
// BreadthFirstOrder() always return the same order for the same graph, which
// keeps model construction and solver output reproducible.
//
// Core Methods:
//
//	AddVertex(id string, opts ...VertexOption) error   // O(1)
//	AddEdge(u, v string) error                        // O(1), auto-adds endpoints
//	HasVertex(id string) bool                         // O(1)
//	HasEdge(u, v string) bool                         // O(1)
//	Category(id string) (Category, error)             // O(1)
//	Vertices() []string                               // O(V·log V)
//	Edges() []Edge                                    // O(E·log E)
//	NeighborIDs(id string) ([]string, error)          // O(d·log d)
//	Degree(id string) (int, error)                    // O(1)
//	VertexCount() int / EdgeCount() int               // O(1)
//	Clone() *Graph                                    // O(V+E)
//	Relabel(mapping map[string]string) (*Graph, error)// O(V+E)
//	BreadthFirstOrder() []string                      // O(V·log V + E·log d)
//
// Errors:
//
//	ErrEmptyVertexID       – zero-length vertex ID
//	ErrVertexNotFound      – missing vertex
//	ErrLoopNotAllowed      – edge from a vertex to itself
//	ErrMultiEdgeNotAllowed – edge already present
//	ErrCategoryConflict    – vertex re-added with a different category
//	ErrBadMapping          – Relabel mapping not total or not injective
package core
