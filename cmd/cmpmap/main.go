package main

import (
	"fmt"
	"os"

	"github.com/graph-guard/cmpmap/pkg/cli"
	"github.com/graph-guard/cmpmap/pkg/runner"
)

func main() {
	w := os.Stdout
	switch c := cli.Parse(w, os.Args).(type) {
	case cli.CommandRun:
		if !run(w, c) {
			os.Exit(1)
		}
	case cli.CommandDemo:
		if err := runner.Demo(w); err != nil {
			fmt.Fprintf(w, "demo: %s\n", err)
			os.Exit(1)
		}
	default:
		if c != nil {
			panic(fmt.Errorf("unexpected command: %#v", c))
		}
	}
}
