package cli

import (
	"flag"
	"fmt"
	"io"
	"strings"

	"github.com/vk/taskgraphgo/internal/app"
	"github.com/vk/taskgraphgo/internal/graph"
)

// ExitError is a custom error type that includes a specific exit code.
type ExitError struct {
	Code    int
	Message string
}

// Error implements the error interface for ExitError.
func (e *ExitError) Error() string {
	return e.Message
}

// Parse processes command-line arguments. It returns a populated app.Config,
// a boolean indicating if the program should exit cleanly, or an ExitError.
func Parse(args []string, output io.Writer) (*app.Config, bool, error) {
	flagSet := flag.NewFlagSet("taskgraphgo", flag.ContinueOnError)
	flagSet.SetOutput(output)

	// Custom usage/help text function
	flagSet.Usage = func() {
		fmt.Fprint(output, `
TaskGraphGo - dependency graph queries over task workspaces.

Usage:
  taskgraphgo [options] COMMAND

Commands:
  check-cycle     Would blocking -task by -blocker create a cycle?
  ancestors       All tasks -task transitively depends on.
  descendants     All tasks transitively depending on -task.
  critical-path   Longest duration-weighted chain ending at -sink.

Options:
`)
		flagSet.PrintDefaults()
	}

	workspaceFlag := flagSet.String("workspace", "", "Workspace (scope) the query runs in.")
	pathFlag := flagSet.String("path", "", "Path to a workspace .hcl file or a directory of them.")
	dbFlag := flagSet.String("db", "", "Path to a sqlite task database (alternative to -path).")
	taskFlag := flagSet.String("task", "", "Task id the query is about.")
	blockerFlag := flagSet.String("blocker", "", "Proposed blocker id (check-cycle only).")
	sourceFlag := flagSet.String("source", "", "Chain start anchor (critical-path only).")
	sinkFlag := flagSet.String("sink", "", "Chain end (critical-path only).")
	maxNodesFlag := flagSet.Int("max-nodes", graph.DefaultMaxNodes, "Hard cap on tasks loaded per workspace.")
	logFormatFlag := flagSet.String("log-format", "text", "Log output format. Options: 'text' or 'json'.")
	logLevelFlag := flagSet.String("log-level", "info", "Set the logging level. Options: 'debug', 'info', 'warn', 'error'.")

	if err := flagSet.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return nil, true, nil
		}
		return nil, false, &ExitError{Code: 2, Message: err.Error()}
	}

	if flagSet.NArg() == 0 {
		flagSet.Usage()
		return nil, true, nil
	}
	command := flagSet.Arg(0)

	logFormat := strings.ToLower(*logFormatFlag)
	if logFormat != "text" && logFormat != "json" {
		return nil, false, &ExitError{Code: 2, Message: "invalid log-format: must be 'text' or 'json'"}
	}

	logLevel := strings.ToLower(*logLevelFlag)
	switch logLevel {
	case "debug", "info", "warn", "error":
		// valid
	default:
		return nil, false, &ExitError{Code: 2, Message: "invalid log-level: must be 'debug', 'info', 'warn', or 'error'"}
	}

	config, err := app.NewConfig(app.Config{
		Command:       command,
		Workspace:     *workspaceFlag,
		WorkspacePath: *pathFlag,
		DBPath:        *dbFlag,
		Task:          *taskFlag,
		Blocker:       *blockerFlag,
		Source:        *sourceFlag,
		Sink:          *sinkFlag,
		LogFormat:     logFormat,
		LogLevel:      logLevel,
		MaxNodes:      *maxNodesFlag,
	})
	if err != nil {
		return nil, false, &ExitError{Code: 2, Message: err.Error()}
	}

	return config, false, nil
}
