package main

import (
	"context"
	"fmt"
	"os"

	"todo-list/internal/cli"
	"todo-list/internal/config"
)

func main() {
	root := cli.NewRootCommand(config.NewLoader(), cli.BuildApp)

	if err := root.Execute(context.Background()); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
