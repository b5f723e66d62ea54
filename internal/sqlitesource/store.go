// Package sqlitesource provides a SQLite-backed implementation of
// graph.Source. Each FetchNodes call is a single workspace-scoped SELECT,
// so the engine's one-bulk-read-per-operation invariant holds against it.
package sqlitesource

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	_ "modernc.org/sqlite"

	"github.com/vk/taskgraphgo/internal/task"
)

// openDB is a package-level var to allow test injection.
var openDB = sql.Open

const schemaSQL = `
CREATE TABLE IF NOT EXISTS tasks (
	workspace     TEXT NOT NULL,
	id            TEXT NOT NULL,
	blocked_by    TEXT NOT NULL DEFAULT '[]',
	blocks        TEXT NOT NULL DEFAULT '[]',
	duration_days REAL NOT NULL DEFAULT 0,
	PRIMARY KEY (workspace, id)
);
CREATE INDEX IF NOT EXISTS idx_tasks_workspace ON tasks(workspace);
`

// Store persists tasks in a SQLite database. Edge lists are stored as JSON
// arrays so their order survives round trips; order is what the engine's
// tie-break rules key on.
type Store struct {
	db *sql.DB
}

// Open opens (creating if necessary) the database at path and ensures the
// schema exists.
func Open(path string) (*Store, error) {
	db, err := openDB("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open task database %s: %w", path, err)
	}
	if _, err := db.Exec(schemaSQL); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize task schema: %w", err)
	}
	return &Store{db: db}, nil
}

// Close releases the underlying database handle.
func (s *Store) Close() error {
	return s.db.Close()
}

// SaveTask upserts a task row, replacing both edge lists wholesale.
func (s *Store) SaveTask(ctx context.Context, t task.Task) error {
	blockedBy, err := marshalEdges(t.BlockedBy)
	if err != nil {
		return fmt.Errorf("failed to encode blocked_by for task %s: %w", t.ID, err)
	}
	blocks, err := marshalEdges(t.Blocks)
	if err != nil {
		return fmt.Errorf("failed to encode blocks for task %s: %w", t.ID, err)
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO tasks (workspace, id, blocked_by, blocks, duration_days)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT (workspace, id) DO UPDATE SET
			blocked_by = excluded.blocked_by,
			blocks = excluded.blocks,
			duration_days = excluded.duration_days`,
		t.Workspace, t.ID, blockedBy, blocks, t.DurationDays)
	if err != nil {
		return fmt.Errorf("failed to save task %s: %w", t.ID, err)
	}
	return nil
}

// FetchNodes implements graph.Source with one bulk SELECT. Rows come back
// in insertion (rowid) order so results are deterministic. An unknown
// workspace yields an empty slice.
func (s *Store) FetchNodes(ctx context.Context, scope string, limit int) ([]task.Task, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, blocked_by, blocks, duration_days
		FROM tasks
		WHERE workspace = ?
		ORDER BY rowid
		LIMIT ?`, scope, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch tasks for workspace %s: %w", scope, err)
	}
	defer rows.Close()

	var tasks []task.Task
	for rows.Next() {
		t := task.Task{Workspace: scope}
		var blockedBy, blocks string
		if err := rows.Scan(&t.ID, &blockedBy, &blocks, &t.DurationDays); err != nil {
			return nil, fmt.Errorf("failed to scan task row: %w", err)
		}
		if err := json.Unmarshal([]byte(blockedBy), &t.BlockedBy); err != nil {
			return nil, fmt.Errorf("corrupt blocked_by column for task %s: %w", t.ID, err)
		}
		if err := json.Unmarshal([]byte(blocks), &t.Blocks); err != nil {
			return nil, fmt.Errorf("corrupt blocks column for task %s: %w", t.ID, err)
		}
		tasks = append(tasks, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed while iterating task rows: %w", err)
	}
	return tasks, nil
}

func marshalEdges(edges []string) (string, error) {
	if edges == nil {
		edges = []string{}
	}
	raw, err := json.Marshal(edges)
	if err != nil {
		return "", err
	}
	return string(raw), nil
}
