// Package schema defines the HCL structures for workspace fixture files.
package schema

import (
	"github.com/hashicorp/hcl/v2"
)

// Task represents a `task` block inside a workspace. Edge lists keep their
// written order; duration_days is kept as an expression so both integer and
// float literals decode cleanly.
type Task struct {
	ID        string         `hcl:"id,label"`
	BlockedBy []string       `hcl:"blocked_by,optional"`
	Blocks    []string       `hcl:"blocks,optional"`
	Duration  hcl.Expression `hcl:"duration_days,optional"`
}

// Workspace represents a `workspace` block: one dependency-graph scope and
// the tasks that belong to it.
type Workspace struct {
	Name  string  `hcl:"name,label"`
	Tasks []*Task `hcl:"task,block"`
}

// WorkspaceConfig is the top-level structure of a workspace fixture file.
type WorkspaceConfig struct {
	Workspaces []*Workspace `hcl:"workspace,block"`
	Body       hcl.Body     `hcl:",remain"`
}
