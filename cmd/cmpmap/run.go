package main

import (
	"io"
	"os"
	"path/filepath"

	"github.com/graph-guard/cmpmap/pkg/cli"
	"github.com/graph-guard/cmpmap/pkg/config"
	"github.com/graph-guard/cmpmap/pkg/runner"
	"github.com/phuslu/log"
)

// run executes the script and reports whether it succeeded.
func run(w io.Writer, c cli.CommandRun) (ok bool) {
	l := log.Logger{
		Level:  log.InfoLevel,
		Writer: &log.IOWriter{Writer: os.Stderr},
	}
	if c.Verbose {
		l.Level = log.DebugLevel
	}

	basePath, fileName := filepath.Split(c.ScriptPath)
	if basePath == "" {
		basePath = "."
	}
	s, err := config.Read(os.DirFS(basePath), fileName)
	if err != nil {
		l.Error().Err(err).Str("script", c.ScriptPath).Msg("reading script")
		return false
	}

	if _, err := runner.Run(w, l, s); err != nil {
		l.Error().Err(err).Str("script", c.ScriptPath).Msg("running script")
		return false
	}
	return true
}
