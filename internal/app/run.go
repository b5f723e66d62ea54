package app

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/vk/taskgraphgo/internal/ctxlog"
	"github.com/vk/taskgraphgo/internal/engine"
	"github.com/vk/taskgraphgo/internal/graph"
	"github.com/vk/taskgraphgo/internal/sqlitesource"
)

// Run executes the configured query command against the configured backend
// and prints the result.
func (a *App) Run(ctx context.Context, cfg *Config) error {
	ctx = ctxlog.WithLogger(ctx, a.logger)
	a.logger.Debug("App.Run method started.", "command", cfg.Command, "workspace", cfg.Workspace)

	source, cleanup, err := a.openSource(ctx, cfg)
	if err != nil {
		return err
	}
	defer cleanup()

	eng := graph.New(source, graph.Config{MaxNodes: cfg.MaxNodes})

	switch cfg.Command {
	case CommandCheckCycle:
		cyclic, err := eng.WouldCreateCycle(ctx, cfg.Workspace, cfg.Task, cfg.Blocker)
		if err != nil {
			return err
		}
		if cyclic {
			fmt.Fprintf(a.outW, "cycle: blocking %q by %q would create a dependency cycle\n", cfg.Task, cfg.Blocker)
		} else {
			fmt.Fprintf(a.outW, "ok: %q may be blocked by %q\n", cfg.Task, cfg.Blocker)
		}

	case CommandAncestors:
		ids, err := eng.Ancestors(ctx, cfg.Workspace, cfg.Task)
		if err != nil {
			return err
		}
		a.printSet(ids)

	case CommandDescendants:
		ids, err := eng.Descendants(ctx, cfg.Workspace, cfg.Task)
		if err != nil {
			return err
		}
		a.printSet(ids)

	case CommandCriticalPath:
		length, path, err := eng.CriticalPath(ctx, cfg.Workspace, cfg.Source, cfg.Sink)
		if err != nil {
			return err
		}
		fmt.Fprintf(a.outW, "%g days: %s\n", length, strings.Join(path, " -> "))

	default:
		// NewConfig already rejected anything else.
		return fmt.Errorf("unknown command %q", cfg.Command)
	}

	a.logger.Debug("App.Run method finished.")
	return nil
}

// openSource picks the backend from config: a sqlite database or a set of
// HCL fixture files loaded into memory.
func (a *App) openSource(ctx context.Context, cfg *Config) (graph.Source, func(), error) {
	if cfg.DBPath != "" {
		store, err := sqlitesource.Open(cfg.DBPath)
		if err != nil {
			return nil, nil, err
		}
		a.logger.Debug("Opened sqlite task database.", "path", cfg.DBPath)
		return store, func() { store.Close() }, nil
	}

	store, err := engine.LoadWorkspaces(ctx, cfg.WorkspacePath)
	if err != nil {
		return nil, nil, err
	}
	a.logger.Debug("Loaded workspace fixtures.", "path", cfg.WorkspacePath, "task_count", store.Len(cfg.Workspace))
	return store, func() {}, nil
}

// printSet writes a set of task ids one per line, sorted for stable output.
func (a *App) printSet(ids map[string]struct{}) {
	sorted := make([]string, 0, len(ids))
	for id := range ids {
		sorted = append(sorted, id)
	}
	sort.Strings(sorted)
	for _, id := range sorted {
		fmt.Fprintln(a.outW, id)
	}
}
