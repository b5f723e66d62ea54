package graph

import (
	"context"
)

// Ancestors returns the set of all tasks the given task depends on, directly
// or transitively, following blockedBy edges only. The origin itself is
// never in the result, even when corrupted data makes it reachable from
// itself. A task absent from the scope yields an empty set, not an error.
func (e *Engine) Ancestors(ctx context.Context, scope, taskID string) (map[string]struct{}, error) {
	adj, err := e.load(ctx, scope, DirectionAncestors)
	if err != nil {
		return nil, err
	}
	return collect(adj, taskID), nil
}

// Descendants returns the set of all tasks that depend on the given task,
// directly or transitively, following blocks edges only. Because blockedBy
// and blocks are written by different code paths and may disagree, this is
// deliberately not derived from the blockedBy relation.
func (e *Engine) Descendants(ctx context.Context, scope, taskID string) (map[string]struct{}, error) {
	adj, err := e.load(ctx, scope, DirectionDescendants)
	if err != nil {
		return nil, err
	}
	return collect(adj, taskID), nil
}

// collect accumulates every id reachable from origin over the adjacency
// map's edges, excluding the origin itself. The visited set guards against
// cycles in corrupted data; dangling edge targets are dead ends.
func collect(adj *adjacency, origin string) map[string]struct{} {
	visited := make(map[string]bool, adj.count)
	visited[origin] = true

	result := make(map[string]struct{})
	stack := append([]string{}, adj.edges[origin]...)

	for len(stack) > 0 {
		current := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if visited[current] {
			continue
		}
		visited[current] = true
		result[current] = struct{}{}

		for _, next := range adj.edges[current] {
			if !visited[next] {
				stack = append(stack, next)
			}
		}
	}
	return result
}
