// Package engine loads workspace fixture files from disk into an in-memory
// task store the graph engine can query.
package engine

import (
	"context"
	"fmt"
	"os"

	"github.com/vk/taskgraphgo/internal/ctxlog"
	"github.com/vk/taskgraphgo/internal/fsutil"
	"github.com/vk/taskgraphgo/internal/memsource"
)

// LoadWorkspaces decodes every .hcl file under path (or path itself, if it
// is a single file) and returns a populated in-memory store. Files are
// loaded in sorted path order; a later task block with an already-seen id
// replaces the earlier one.
func LoadWorkspaces(ctx context.Context, path string) (*memsource.Store, error) {
	logger := ctxlog.FromContext(ctx)

	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("workspace path %s is not accessible: %w", path, err)
	}

	files := []string{path}
	if info.IsDir() {
		files, err = fsutil.FindFilesByExtension(path, ".hcl")
		if err != nil {
			return nil, fmt.Errorf("failed to scan %s for workspace files: %w", path, err)
		}
	}
	if len(files) == 0 {
		return nil, fmt.Errorf("no .hcl workspace files found under %s", path)
	}

	store := memsource.New()
	for _, file := range files {
		config, err := DecodeWorkspaceFile(ctx, file)
		if err != nil {
			return nil, err
		}
		for _, ws := range config.Workspaces {
			for _, st := range ws.Tasks {
				t, err := taskFromSchema(ws.Name, st)
				if err != nil {
					return nil, fmt.Errorf("%s: %w", file, err)
				}
				store.Put(t)
			}
		}
	}

	logger.Debug("Workspace files loaded.", "path", path, "file_count", len(files))
	return store, nil
}
