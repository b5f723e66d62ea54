package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/vk/taskgraphgo/internal/app"
	"github.com/vk/taskgraphgo/internal/cli"
)

// main is the entrypoint for the taskgraphgo application.
func main() {
	if err := run(os.Stdout, os.Stderr, os.Args[1:]); err != nil {
		if exitErr, ok := err.(*cli.ExitError); ok {
			fmt.Fprintln(os.Stderr, exitErr.Message)
			os.Exit(exitErr.Code)
		}
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// run encapsulates the main application logic for easier testing and error handling.
func run(outW, errW io.Writer, args []string) error {
	appConfig, shouldExit, err := cli.Parse(args, errW)
	if err != nil {
		return err
	}
	if shouldExit {
		return nil
	}

	a := app.NewApp(outW, errW, appConfig)
	return a.Run(context.Background(), appConfig)
}
