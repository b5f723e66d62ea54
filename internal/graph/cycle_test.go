package graph

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vk/taskgraphgo/internal/task"
)

func TestWouldCreateCycle_SelfLoop(t *testing.T) {
	src := &countingSource{}
	e := New(src, Config{})

	cyclic, err := e.WouldCreateCycle(context.Background(), "w1", "x", "x")
	require.NoError(t, err)
	assert.True(t, cyclic)

	// Detected before any graph walk, so no bulk read happens at all.
	assert.Equal(t, 0, src.fetches)
}

func TestWouldCreateCycle_DirectCycle(t *testing.T) {
	// task2 is blocked by task1; blocking task1 by task2 closes the loop.
	src := &countingSource{tasks: []task.Task{
		newTask("w1", "task1", 0, nil, []string{"task2"}),
		newTask("w1", "task2", 0, []string{"task1"}, nil),
	}}
	e := New(src, Config{})

	cyclic, err := e.WouldCreateCycle(context.Background(), "w1", "task1", "task2")
	require.NoError(t, err)
	assert.True(t, cyclic)
}

func TestWouldCreateCycle_TransitiveCycle(t *testing.T) {
	// task3 -> task2 -> task1 by blockedBy; the edge task3-blocked-by-task1
	// would complete the loop task1 -> task2 -> task3 -> task1.
	src := &countingSource{tasks: []task.Task{
		newTask("w1", "task1", 0, []string{"task2"}, nil),
		newTask("w1", "task2", 0, []string{"task3"}, nil),
		newTask("w1", "task3", 0, nil, nil),
	}}
	e := New(src, Config{})

	cyclic, err := e.WouldCreateCycle(context.Background(), "w1", "task3", "task1")
	require.NoError(t, err)
	assert.True(t, cyclic)
}

func TestWouldCreateCycle_SafeEdge(t *testing.T) {
	src := &countingSource{tasks: []task.Task{
		newTask("w1", "a", 0, []string{"b"}, nil),
		newTask("w1", "b", 0, nil, nil),
		newTask("w1", "c", 0, nil, nil),
	}}
	e := New(src, Config{})

	t.Run("independent task is safe", func(t *testing.T) {
		cyclic, err := e.WouldCreateCycle(context.Background(), "w1", "c", "a")
		require.NoError(t, err)
		assert.False(t, cyclic)
	})

	t.Run("deepening an existing chain is safe", func(t *testing.T) {
		cyclic, err := e.WouldCreateCycle(context.Background(), "w1", "b", "c")
		require.NoError(t, err)
		assert.False(t, cyclic)
	})
}

func TestWouldCreateCycle_UnknownBlocker(t *testing.T) {
	// A blocker outside the scope has no outgoing edges to traverse, so it
	// can never already reach the task. Policy: no cycle, not an error.
	src := &countingSource{tasks: []task.Task{
		newTask("w1", "a", 0, nil, nil),
	}}
	e := New(src, Config{})

	cyclic, err := e.WouldCreateCycle(context.Background(), "w1", "a", "ghost")
	require.NoError(t, err)
	assert.False(t, cyclic)
}

// TestWouldCreateCycle_PreservesAcyclicity applies a stream of proposed
// edges, committing only those the guard accepts, then verifies the final
// blockedBy graph with an independent whole-graph cycle scan.
func TestWouldCreateCycle_PreservesAcyclicity(t *testing.T) {
	ctx := context.Background()
	tasks := map[string]*task.Task{}
	for _, id := range []string{"a", "b", "c", "d", "e"} {
		tasks[id] = &task.Task{ID: id, Workspace: "w1"}
	}

	snapshot := func() []task.Task {
		var out []task.Task
		for _, id := range []string{"a", "b", "c", "d", "e"} {
			out = append(out, *tasks[id])
		}
		return out
	}

	proposals := []struct{ taskID, blocker string }{
		{"a", "b"},
		{"b", "c"},
		{"c", "a"}, // would close a -> b -> c -> a
		{"c", "d"},
		{"d", "a"}, // would close a -> ... -> d -> a
		{"d", "e"},
		{"e", "a"}, // same loop, longer
		{"a", "e"},
	}

	accepted := 0
	for _, p := range proposals {
		src := &countingSource{tasks: snapshot()}
		e := New(src, Config{})
		cyclic, err := e.WouldCreateCycle(ctx, "w1", p.taskID, p.blocker)
		require.NoError(t, err)
		if !cyclic {
			tasks[p.taskID].BlockedBy = append(tasks[p.taskID].BlockedBy, p.blocker)
			accepted++
		}
	}
	assert.Equal(t, 5, accepted)

	assert.False(t, scanForCycle(snapshot()), "accepted edges must keep the graph acyclic")
}

// scanForCycle is an independent DFS cycle scan over blockedBy edges,
// separate from the engine's own logic.
func scanForCycle(tasks []task.Task) bool {
	edges := make(map[string][]string, len(tasks))
	for _, t := range tasks {
		edges[t.ID] = t.BlockedBy
	}

	const (
		unvisited = 0
		visiting  = 1
		done      = 2
	)
	state := make(map[string]int, len(edges))

	var visit func(id string) bool
	visit = func(id string) bool {
		state[id] = visiting
		for _, next := range edges[id] {
			switch state[next] {
			case visiting:
				return true
			case unvisited:
				if visit(next) {
					return true
				}
			}
		}
		state[id] = done
		return false
	}

	for id := range edges {
		if state[id] == unvisited && visit(id) {
			return true
		}
	}
	return false
}
