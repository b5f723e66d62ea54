package graph

import (
	"context"
	"errors"
	"fmt"

	"github.com/vk/taskgraphgo/internal/ctxlog"
)

// ErrScopeOverflow is returned when a workspace holds more tasks than the
// engine's configured cap. Callers must treat this as "the graph view would
// be incomplete", never as a truncated-but-usable result.
var ErrScopeOverflow = errors.New("workspace exceeds configured node cap")

// Direction selects which edge list a traversal follows.
type Direction int

const (
	// DirectionAncestors follows blockedBy edges, toward prerequisites.
	DirectionAncestors Direction = iota
	// DirectionDescendants follows blocks edges, toward dependents.
	DirectionDescendants
)

func (d Direction) String() string {
	if d == DirectionDescendants {
		return "descendants"
	}
	return "ancestors"
}

// adjacency is the request-scoped view of one workspace's graph: each task's
// outbound edge list in the chosen direction, plus per-task durations for
// critical-path queries. It is owned exclusively by the call that built it.
type adjacency struct {
	edges     map[string][]string
	durations map[string]float64
	count     int
}

// load performs the one and only bulk read of a top-level operation and
// builds the adjacency map for it. Everything downstream of load is pure
// in-memory computation.
func (e *Engine) load(ctx context.Context, scope string, dir Direction) (*adjacency, error) {
	logger := ctxlog.FromContext(ctx)

	// Ask for one row beyond the cap so overflow is detectable without a
	// second round trip.
	tasks, err := e.source.FetchNodes(ctx, scope, e.maxNodes+1)
	if err != nil {
		return nil, err
	}
	if len(tasks) > e.maxNodes {
		return nil, fmt.Errorf("%w: scope %q has more than %d tasks", ErrScopeOverflow, scope, e.maxNodes)
	}

	adj := &adjacency{
		edges:     make(map[string][]string, len(tasks)),
		durations: make(map[string]float64, len(tasks)),
		count:     len(tasks),
	}
	for _, t := range tasks {
		edges := t.BlockedBy
		if dir == DirectionDescendants {
			edges = t.Blocks
		}
		if edges == nil {
			edges = []string{}
		}
		adj.edges[t.ID] = edges

		duration := t.DurationDays
		if duration < 0 {
			duration = 0
		}
		adj.durations[t.ID] = duration
	}

	logger.Debug("Adjacency map built.", "scope", scope, "direction", dir.String(), "node_count", adj.count)
	return adj, nil
}
