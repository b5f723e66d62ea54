package engine

import (
	"context"
	"fmt"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/zclconf/go-cty/cty"

	"github.com/vk/taskgraphgo/internal/ctxlog"
	"github.com/vk/taskgraphgo/internal/schema"
	"github.com/vk/taskgraphgo/internal/task"
)

// DecodeWorkspaceFile parses and decodes a single HCL workspace file.
func DecodeWorkspaceFile(ctx context.Context, filePath string) (*schema.WorkspaceConfig, error) {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("Decoding workspace file.", "path", filePath)
	parser := hclparse.NewParser()
	file, diags := parser.ParseHCLFile(filePath)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse HCL file %s: %s", filePath, diags.Error())
	}

	var config schema.WorkspaceConfig
	diags = gohcl.DecodeBody(file.Body, nil, &config)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode HCL file %s: %s", filePath, diags.Error())
	}

	logger.Debug("Successfully decoded workspace file.", "path", filePath, "workspaces_found", len(config.Workspaces))
	return &config, nil
}

// taskFromSchema converts a decoded task block into the engine's node type.
func taskFromSchema(workspace string, st *schema.Task) (task.Task, error) {
	duration, err := durationDays(st.Duration)
	if err != nil {
		return task.Task{}, fmt.Errorf("task %q: %w", st.ID, err)
	}
	return task.Task{
		ID:           st.ID,
		Workspace:    workspace,
		BlockedBy:    st.BlockedBy,
		Blocks:       st.Blocks,
		DurationDays: duration,
	}, nil
}

// durationDays statically evaluates a duration_days expression. The
// attribute is optional; when present it must be a non-negative number.
func durationDays(expr hcl.Expression) (float64, error) {
	if expr == nil {
		return 0, nil
	}

	val, diags := expr.Value(nil) // static eval, no variables in fixture files
	if diags.HasErrors() {
		return 0, fmt.Errorf("invalid duration_days expression: %s", diags.Error())
	}
	if val.IsNull() {
		return 0, nil
	}
	if val.Type() != cty.Number {
		return 0, fmt.Errorf("duration_days must be a number, got %s", val.Type().FriendlyName())
	}

	days, _ := val.AsBigFloat().Float64()
	if days < 0 {
		return 0, fmt.Errorf("duration_days must not be negative, got %v", days)
	}
	return days, nil
}
