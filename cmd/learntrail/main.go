package main

import (
	"context"
	"fmt"
	"os"

	"github.com/alexanderramin/learntrail/internal/cli"
	"github.com/mattn/go-isatty"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	app := &cli.App{Wire: cli.Wire}

	// Prompts and the player only run on a real terminal.
	app.IsInteractive = func() bool {
		return isatty.IsTerminal(os.Stdin.Fd()) || isatty.IsCygwinTerminal(os.Stdin.Fd())
	}
	defer app.Close()

	return cli.NewRootCmd(app).ExecuteContext(context.Background())
}
