package app

import (
	"errors"
	"fmt"
)

// Commands understood by App.Run. Each maps to one engine operation.
const (
	CommandCheckCycle   = "check-cycle"
	CommandAncestors    = "ancestors"
	CommandDescendants  = "descendants"
	CommandCriticalPath = "critical-path"
)

// Config holds all the necessary configuration for an App instance to run.
type Config struct {
	Command   string // one of the Command* constants
	Workspace string // scope the operation runs in

	WorkspacePath string // path to .hcl fixture file(s); mutually exclusive with DBPath
	DBPath        string // path to a sqlite task database

	Task    string // task id for check-cycle / ancestors / descendants
	Blocker string // proposed blocker id for check-cycle
	Source  string // chain start anchor for critical-path
	Sink    string // chain end for critical-path

	LogFormat string
	LogLevel  string
	MaxNodes  int
}

// NewConfig validates a Config and returns it.
func NewConfig(cfg Config) (*Config, error) {
	if cfg.Workspace == "" {
		return nil, errors.New("workspace is a required configuration field and cannot be empty")
	}
	if cfg.WorkspacePath == "" && cfg.DBPath == "" {
		return nil, errors.New("either a workspace path or a database path must be provided")
	}
	if cfg.WorkspacePath != "" && cfg.DBPath != "" {
		return nil, errors.New("workspace path and database path are mutually exclusive")
	}

	switch cfg.Command {
	case CommandCheckCycle:
		if cfg.Task == "" || cfg.Blocker == "" {
			return nil, errors.New("check-cycle requires both -task and -blocker")
		}
	case CommandAncestors, CommandDescendants:
		if cfg.Task == "" {
			return nil, fmt.Errorf("%s requires -task", cfg.Command)
		}
	case CommandCriticalPath:
		if cfg.Sink == "" {
			return nil, errors.New("critical-path requires -sink")
		}
	default:
		return nil, fmt.Errorf("unknown command %q", cfg.Command)
	}

	return &cfg, nil
}
