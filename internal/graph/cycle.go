package graph

import (
	"context"

	"github.com/vk/taskgraphgo/internal/ctxlog"
)

// WouldCreateCycle reports whether inserting the edge "taskID becomes
// blocked by blockerID" would make the workspace's blockedBy relation
// cyclic. The mutation layer must reject the write when this returns true.
//
// The check is advisory, not atomic with the subsequent write: it reads its
// own snapshot, and callers that need check-then-write serializability must
// provide it at the storage layer. This function itself never writes.
func (e *Engine) WouldCreateCycle(ctx context.Context, scope, taskID, blockerID string) (bool, error) {
	// A self-loop is a cycle by definition; no snapshot needed.
	if taskID == blockerID {
		return true, nil
	}

	adj, err := e.load(ctx, scope, DirectionAncestors)
	if err != nil {
		return false, err
	}

	cyclic := reaches(adj, blockerID, taskID)
	if cyclic {
		ctxlog.FromContext(ctx).Debug("Edge insertion would create a cycle.",
			"scope", scope, "task", taskID, "blocker", blockerID)
	}
	return cyclic, nil
}

// reaches reports whether to is reachable from from over the adjacency
// map's edges. Iterative DFS with a visited set, so it terminates in linear
// time even on corrupted, already-cyclic data. An id with no entry in the
// map is a dead end: unknown tasks have no outgoing edges.
func reaches(adj *adjacency, from, to string) bool {
	visited := make(map[string]bool, adj.count)
	stack := []string{from}

	for len(stack) > 0 {
		current := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if current == to {
			return true
		}
		if visited[current] {
			continue
		}
		visited[current] = true

		for _, next := range adj.edges[current] {
			if !visited[next] {
				stack = append(stack, next)
			}
		}
	}
	return false
}
