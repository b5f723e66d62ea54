package graph

import (
	"context"

	"github.com/vk/taskgraphgo/internal/task"
)

// Source is the bulk node store the engine reads from. It is the engine's
// only collaborator; how tasks are actually persisted (sqlite, in-memory
// fixture, remote document store) is invisible behind it.
//
// # Contract
//
// FetchNodes returns every task belonging to the given workspace scope in a
// single bulk read. The returned slice must be a consistent snapshot: the
// engine builds its adjacency map from it and never calls back. An unknown
// scope yields an empty slice, not an error.
//
// limit bounds how many tasks the source may return. The engine always asks
// for one more than its configured cap so that overflow is detectable in the
// same round trip; sources must honor the limit rather than returning the
// whole table.
//
// Implementations must be safe for concurrent use: many engine calls may
// fetch the same scope at once, each receiving its own snapshot.
type Source interface {
	FetchNodes(ctx context.Context, scope string, limit int) ([]task.Task, error)
}
