package graph

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vk/taskgraphgo/internal/task"
)

func TestCriticalPath_DiamondPicksLongerBranch(t *testing.T) {
	// Start(0d) splits into A(2d) and B(1d), both feeding End(1d).
	// Longest chain is Start -> A -> End at 2+1 = 3 days.
	src := &countingSource{tasks: []task.Task{
		newTask("w1", "start", 0, nil, []string{"a", "b"}),
		newTask("w1", "a", 2, []string{"start"}, []string{"end"}),
		newTask("w1", "b", 1, []string{"start"}, []string{"end"}),
		newTask("w1", "end", 1, []string{"a", "b"}, nil),
	}}
	e := New(src, Config{})

	length, path, err := e.CriticalPath(context.Background(), "w1", "start", "end")
	require.NoError(t, err)

	assert.Equal(t, 3.0, length)
	assert.Equal(t, []string{"start", "a", "end"}, path)
}

func TestCriticalPath_TieBreaksOnEdgeListOrder(t *testing.T) {
	// Both branches cost 2 days. The first predecessor in end's stored
	// blockedBy order must win, deterministically.
	build := func(first, second string) *Engine {
		return New(&countingSource{tasks: []task.Task{
			newTask("w1", "start", 0, nil, nil),
			newTask("w1", "a", 2, []string{"start"}, nil),
			newTask("w1", "b", 2, []string{"start"}, nil),
			newTask("w1", "end", 1, []string{first, second}, nil),
		}}, Config{})
	}
	ctx := context.Background()

	length, path, err := build("a", "b").CriticalPath(ctx, "w1", "start", "end")
	require.NoError(t, err)
	assert.Equal(t, 3.0, length)
	assert.Equal(t, []string{"start", "a", "end"}, path)

	length, path, err = build("b", "a").CriticalPath(ctx, "w1", "start", "end")
	require.NoError(t, err)
	assert.Equal(t, 3.0, length)
	assert.Equal(t, []string{"start", "b", "end"}, path)
}

func TestCriticalPath_NoPredecessors(t *testing.T) {
	src := &countingSource{tasks: []task.Task{
		newTask("w1", "solo", 4, nil, nil),
	}}
	e := New(src, Config{})

	length, path, err := e.CriticalPath(context.Background(), "w1", "solo", "solo")
	require.NoError(t, err)
	assert.Equal(t, 4.0, length)
	assert.Equal(t, []string{"solo"}, path)
}

func TestCriticalPath_MissingSink(t *testing.T) {
	e := New(&countingSource{}, Config{})

	length, path, err := e.CriticalPath(context.Background(), "w1", "start", "nonexistent")
	require.NoError(t, err)
	assert.Equal(t, 0.0, length)
	assert.Equal(t, []string{"nonexistent"}, path)
}

func TestCriticalPath_HighFanInMemoized(t *testing.T) {
	// Layered graph where every node depends on every node of the previous
	// layer. Without memoization the recursion would be exponential; with it
	// the call returns promptly and the value is exact.
	var tasks []task.Task
	prev := []string{"l0n0", "l0n1", "l0n2"}
	for _, id := range prev {
		tasks = append(tasks, newTask("w1", id, 1, nil, nil))
	}
	for layer := 1; layer < 12; layer++ {
		var current []string
		for n := 0; n < 3; n++ {
			id := "l" + string(rune('a'+layer)) + "n" + string(rune('0'+n))
			tasks = append(tasks, newTask("w1", id, 1, append([]string{}, prev...), nil))
			current = append(current, id)
		}
		prev = current
	}
	e := New(&countingSource{tasks: tasks}, Config{})

	length, path, err := e.CriticalPath(context.Background(), "w1", "l0n0", prev[0])
	require.NoError(t, err)
	assert.Equal(t, 12.0, length)
	assert.Len(t, path, 12)
}

func TestCriticalPath_CyclicDataTerminates(t *testing.T) {
	// Corrupted blockedBy loop; the guard breaks the cycle instead of
	// recursing forever, and each task still contributes its own duration.
	src := &countingSource{tasks: []task.Task{
		newTask("w1", "a", 1, []string{"b"}, nil),
		newTask("w1", "b", 1, []string{"a"}, nil),
	}}
	e := New(src, Config{})

	length, _, err := e.CriticalPath(context.Background(), "w1", "b", "a")
	require.NoError(t, err)
	assert.Equal(t, 2.0, length)
}

func TestCriticalPath_DanglingPredecessorIgnored(t *testing.T) {
	src := &countingSource{tasks: []task.Task{
		newTask("w1", "end", 2, []string{"ghost"}, nil),
	}}
	e := New(src, Config{})

	length, path, err := e.CriticalPath(context.Background(), "w1", "end", "end")
	require.NoError(t, err)
	assert.Equal(t, 2.0, length)
	assert.Equal(t, []string{"end"}, path)
}

func TestCriticalPath_Idempotent(t *testing.T) {
	src := &countingSource{tasks: []task.Task{
		newTask("w1", "start", 0, nil, nil),
		newTask("w1", "a", 2, []string{"start"}, nil),
		newTask("w1", "end", 1, []string{"a"}, nil),
	}}
	e := New(src, Config{})
	ctx := context.Background()

	firstLen, firstPath, err := e.CriticalPath(ctx, "w1", "start", "end")
	require.NoError(t, err)
	for i := 0; i < 3; i++ {
		length, path, err := e.CriticalPath(ctx, "w1", "start", "end")
		require.NoError(t, err)
		assert.Equal(t, firstLen, length)
		assert.Equal(t, firstPath, path)
	}
}
