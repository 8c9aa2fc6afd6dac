package cli

import (
	"flag"
	"fmt"
	"io"
	"path/filepath"
)

// Command can be any of:
//
//	CommandRun
//	CommandDemo
type Command any

type CommandRun struct {
	ScriptPath string
	Verbose    bool
}

type CommandDemo struct{}

func Parse(w io.Writer, args []string) (cmd Command) {
	fm := fmt.Sprintf

	executableName := "cmpmap"
	if len(args) > 0 {
		executableName = filepath.Base(args[0])
	}

	flags := flag.NewFlagSet("cmpmap", flag.ContinueOnError)
	flags.SetOutput(w)
	flags.Usage = func() {
		writeLines(w,
			fm("usage: %s <command> [flags]", executableName),
			"",
			"commands available:",
			" run - executes a script against a new map",
			" demo - compares case sensitive and insensitive string keys",
			" help - prints help",
		)
	}

	parseFlags := func() (ok bool) {
		err := flags.Parse(args[2:])
		// flags will automatically call .Usage()
		return err == nil
	}

	if len(args) < 2 {
		flags.Usage()
		return nil
	}

	switch args[1] {
	case "run":
		c := CommandRun{}
		flags.Usage = func() {
			writeLines(w,
				"",
				fm("usage: %s run -script <path> [-verbose]", executableName),
				"",
				"flags:",
				"-script <path>: defines the script file path",
				"-verbose: enables debug logging",
			)
		}
		flags.StringVar(&c.ScriptPath, "script", "", "")
		flags.BoolVar(&c.Verbose, "verbose", false, "")
		if !parseFlags() {
			return nil
		}
		if c.ScriptPath == "" {
			writeLines(w, "-script isn't set.")
			flags.Usage()
			return nil
		}
		cmd = c

	case "demo":
		if !parseFlags() {
			return nil
		}
		cmd = CommandDemo{}

	case "help":
		PrintHelp(w)
		return nil

	default:
		flags.Usage()
		return nil
	}
	return cmd
}

func writeLines(w io.Writer, lines ...string) {
	for i := range lines {
		_, _ = w.Write([]byte(lines[i]))
		_, _ = w.Write([]byte("\n"))
	}
}

func PrintHelp(w io.Writer) {
	writeLines(w,
		"cmpmap runs scripts against a slice-backed map",
		"with a configurable key comparator.",
		"",
		"script example:",
		"",
		"  comparator: string-fold",
		"  initial-capacity: 2",
		"  steps:",
		"    - set: lu",
		"      value: Lu Wang",
		"    - get: LU",
		"      expect: Lu Wang",
		"    - delete: lu",
		"",
		"comparators: string, string-fold, int, uint, float32, float64",
	)
}
