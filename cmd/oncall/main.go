// cmd/oncall/main.go
//
// Entry point for the oncall CLI.

package main

import (
	"fmt"
	"os"

	"oncall-scheduler/internal/cli"
)

var version = "dev"

func main() {
	if err := cli.NewRootCmd(version).Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
