// Package graph implements the task dependency graph engine: cycle checks
// before edge insertion, transitive ancestor/dependent queries, and
// critical-path analysis over a workspace's tasks.
//
// Every public operation performs exactly one bulk read against its Source,
// builds a request-scoped adjacency map, and then computes purely in memory.
// Nothing touches the store a second time, nothing is cached between calls,
// and nothing is shared between concurrent calls.
package graph
