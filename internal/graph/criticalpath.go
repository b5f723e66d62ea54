package graph

import (
	"context"

	"github.com/vk/taskgraphgo/internal/ctxlog"
)

// pathValue is one memoized critical-path entry: the longest chain duration
// ending at a task, and which predecessor realized it ("" for none).
type pathValue struct {
	length   float64
	bestPred string
}

// CriticalPath computes the longest duration-weighted dependency chain
// ending at sink, following blockedBy edges. It returns the chain's total
// duration and the realized path as an ordered id sequence finishing at
// sink. The source argument names the chain's intended starting anchor for
// diagnostics; the recursion itself bottoms out at tasks with no
// predecessors, which in a well-formed workspace includes source.
//
// Each task contributes its own duration plus the maximum over its blockedBy
// predecessors' values, memoized per call so fan-in never recomputes. When
// two predecessor chains tie, the first predecessor in the task's stored
// edge-list order wins, keeping results deterministic.
//
// A sink absent from the scope yields its own duration alone (zero) with a
// single-element path.
func (e *Engine) CriticalPath(ctx context.Context, scope, source, sink string) (float64, []string, error) {
	adj, err := e.load(ctx, scope, DirectionAncestors)
	if err != nil {
		return 0, nil, err
	}

	// The memo is scoped to this call and discarded with it; no state
	// survives between operations.
	memo := make(map[string]pathValue, adj.count)
	onStack := make(map[string]bool, adj.count)
	length := longestChain(adj, sink, memo, onStack)

	path := realizedPath(memo, sink)
	ctxlog.FromContext(ctx).Debug("Critical path computed.",
		"scope", scope, "source", source, "sink", sink, "length_days", length, "path_len", len(path))
	return length, path, nil
}

// longestChain returns the longest chain duration ending at id. A task on
// the recursion stack (a cycle in corrupted data) or absent from the scope
// contributes only dead-end behavior: no predecessors beyond itself.
func longestChain(adj *adjacency, id string, memo map[string]pathValue, onStack map[string]bool) float64 {
	if v, ok := memo[id]; ok {
		return v.length
	}
	if onStack[id] {
		// Corrupted cyclic data; break the cycle rather than recurse forever.
		// Deliberately not memoized: the zero is an artifact of the broken
		// edge, not this task's value.
		return 0
	}
	onStack[id] = true
	defer delete(onStack, id)

	value := pathValue{length: adj.durations[id]}

	best := 0.0
	for _, pred := range adj.edges[id] {
		if _, known := adj.edges[pred]; !known {
			// Dangling reference; a dead end, not a chain.
			continue
		}
		chain := longestChain(adj, pred, memo, onStack)
		// Strict comparison: on a tie the earliest predecessor in stored
		// edge-list order keeps the slot.
		if value.bestPred == "" || chain > best {
			best = chain
			value.bestPred = pred
		}
	}
	value.length += best

	memo[id] = value
	return value.length
}

// realizedPath reconstructs the chain recorded in the memo, walking best
// predecessors back from sink and reversing into source-to-sink order.
func realizedPath(memo map[string]pathValue, sink string) []string {
	var reversed []string
	seen := make(map[string]bool)
	for id := sink; id != "" && !seen[id]; {
		seen[id] = true
		reversed = append(reversed, id)
		id = memo[id].bestPred
	}

	path := make([]string, len(reversed))
	for i, id := range reversed {
		path[len(path)-1-i] = id
	}
	return path
}
