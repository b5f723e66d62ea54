package graph

// DefaultMaxNodes bounds how many tasks a single bulk read may load when no
// explicit cap is configured. Loading an entire workspace into memory is the
// point of the engine, so the ceiling exists to bound memory and latency,
// not to page through results.
const DefaultMaxNodes = 1000

// Config carries the engine's tunable settings.
type Config struct {
	// MaxNodes is the hard cap on tasks loaded per call. Zero or negative
	// means DefaultMaxNodes.
	MaxNodes int
}

// Engine answers structural queries about a workspace's dependency graph.
// It is stateless between calls: each operation fetches its own snapshot,
// computes, and discards everything. An Engine is safe for concurrent use.
type Engine struct {
	source   Source
	maxNodes int
}

// New creates an Engine that reads task snapshots from the given source.
func New(source Source, cfg Config) *Engine {
	maxNodes := cfg.MaxNodes
	if maxNodes <= 0 {
		maxNodes = DefaultMaxNodes
	}
	return &Engine{
		source:   source,
		maxNodes: maxNodes,
	}
}
