// Package task defines the node type of the dependency graph.
package task

// Task is a single unit of work: a vertex in a workspace's dependency graph.
// The engine never mutates tasks; it reads a scoped snapshot of them and
// answers structural queries against that snapshot.
type Task struct {
	// ID uniquely identifies the task within its workspace.
	ID string

	// Workspace is the scope key. Traversals never cross workspaces.
	Workspace string

	// BlockedBy lists the prerequisite task IDs, in stored order. Every task
	// named here must complete before this one can proceed.
	BlockedBy []string

	// Blocks lists the task IDs that depend on this one. It is the inverse of
	// BlockedBy but is written by a different code path and may drift out of
	// sync; consumers must not assume the two lists agree.
	Blocks []string

	// DurationDays is the task's weight for critical-path computation.
	// Zero or absent means zero duration.
	DurationDays float64
}
