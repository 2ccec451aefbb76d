package main

import (
	"fmt"
	"os"

	"roomlog/internal/cli"
)

func main() {
	cmd := cli.NewRootCommand()
	if err := cmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "roomlog: %v\n", err)
		os.Exit(cli.GetExitCode(err))
	}
}
