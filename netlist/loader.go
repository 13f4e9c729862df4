package netlist

import (
	"fmt"
	"os"
	"path/filepath"

	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/pkg/errors"

	"github.com/katalvlaran/circuiteq/core"
)

// DefaultCacheSize is the number of graphs a Loader keeps.
const DefaultCacheSize = 64

// Loader reads netlist files through an LRU cache. A file is re-read when its
// size or modification time changes. Callers receive clones, so mutating a
// returned graph never affects the cache.
type Loader struct {
	cache *lru.Cache[string, *core.Graph]
}

// NewLoader returns a Loader holding up to size graphs (size ≤ 0 ⇒ DefaultCacheSize).
func NewLoader(size int) (*Loader, error) {
	if size <= 0 {
		size = DefaultCacheSize
	}
	cache, err := lru.New[string, *core.Graph](size)
	if err != nil {
		return nil, errors.Wrap(err, "netlist: cache")
	}

	return &Loader{cache: cache}, nil
}

// Load returns the graph of the file at path.
func (l *Loader) Load(path string) (*core.Graph, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, errors.Wrap(err, "netlist: resolve path")
	}
	info, err := os.Stat(abs)
	if err != nil {
		return nil, errors.Wrap(err, "netlist: stat")
	}
	key := fmt.Sprintf("%s|%d|%d", abs, info.Size(), info.ModTime().UnixNano())
	if g, ok := l.cache.Get(key); ok {
		return g.Clone(), nil
	}

	g, err := ReadFile(abs)
	if err != nil {
		return nil, err
	}
	l.cache.Add(key, g)

	return g.Clone(), nil
}

// Len returns the number of cached graphs.
func (l *Loader) Len() int { return l.cache.Len() }
