// Package config reads cmpmap scripts: YAML files describing
// how to create a map and which operations to run against it.
package config

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"strconv"
	"strings"

	yaml "gopkg.in/yaml.v3"
)

// Comparator names a key comparator.
type Comparator string

const (
	ComparatorString     Comparator = "string"
	ComparatorStringFold Comparator = "string-fold"
	ComparatorInt        Comparator = "int"
	ComparatorUint       Comparator = "uint"
	ComparatorFloat32    Comparator = "float32"
	ComparatorFloat64    Comparator = "float64"
)

// Comparators lists all known comparator names.
var Comparators = []Comparator{
	ComparatorString,
	ComparatorStringFold,
	ComparatorInt,
	ComparatorUint,
	ComparatorFloat32,
	ComparatorFloat64,
}

// Op is a script step operation.
type Op int8

const (
	_ Op = iota
	OpSet
	OpGet
	OpDelete
	OpLoad
)

func (o Op) String() string {
	switch o {
	case OpSet:
		return "set"
	case OpGet:
		return "get"
	case OpDelete:
		return "delete"
	case OpLoad:
		return "load"
	}
	return "Op(" + strconv.Itoa(int(o)) + ")"
}

type Script struct {
	FilePath        string
	Comparator      Comparator
	InitialCapacity int
	MaxCapacity     int
	Steps           []Step
}

type Step struct {
	Op Op

	// Key is set for OpSet, OpGet and OpDelete.
	Key string

	// Value is set for OpSet.
	Value string

	// Expect is the optional value expected by OpGet.
	Expect *string

	// JSON and Path are set for OpLoad.
	JSON string
	Path string
}

type scriptConfig struct {
	Comparator      Comparator   `yaml:"comparator"`
	InitialCapacity int          `yaml:"initial-capacity"`
	MaxCapacity     int          `yaml:"max-capacity"`
	Steps           []stepConfig `yaml:"steps"`
}

type stepConfig struct {
	Set    *string `yaml:"set"`
	Get    *string `yaml:"get"`
	Delete *string `yaml:"delete"`
	Load   *string `yaml:"load"`
	Value  *string `yaml:"value"`
	Expect *string `yaml:"expect"`
	Path   *string `yaml:"path"`
}

// Read reads the script at path from filesystem.
func Read(filesystem fs.FS, path string) (*Script, error) {
	f, err := filesystem.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, &ErrorMissing{FilePath: path}
		}
		return nil, fmt.Errorf("opening script: %w", err)
	}
	defer f.Close()

	var c scriptConfig
	d := yaml.NewDecoder(f)
	d.KnownFields(true)
	if err := d.Decode(&c); err != nil && err != io.EOF {
		return nil, &ErrorIllegal{
			FilePath: path,
			Feature:  "syntax",
			Message:  err.Error(),
		}
	}

	if c.Comparator == "" {
		return nil, &ErrorMissing{FilePath: path, Feature: "comparator"}
	}
	if !knownComparator(c.Comparator) {
		return nil, &ErrorIllegal{
			FilePath: path,
			Feature:  "comparator",
			Message:  fmt.Sprintf("unknown comparator %q", c.Comparator),
		}
	}
	if c.InitialCapacity < 0 {
		return nil, &ErrorIllegal{
			FilePath: path,
			Feature:  "initial-capacity",
			Message:  "must not be negative",
		}
	}
	if c.MaxCapacity < 0 {
		return nil, &ErrorIllegal{
			FilePath: path,
			Feature:  "max-capacity",
			Message:  "must not be negative",
		}
	}
	if len(c.Steps) < 1 {
		return nil, &ErrorMissing{FilePath: path, Feature: "steps"}
	}

	s := &Script{
		FilePath:        path,
		Comparator:      c.Comparator,
		InitialCapacity: c.InitialCapacity,
		MaxCapacity:     c.MaxCapacity,
		Steps:           make([]Step, len(c.Steps)),
	}
	for i := range c.Steps {
		st, err := readStep(path, i, c.Comparator, c.Steps[i])
		if err != nil {
			return nil, err
		}
		s.Steps[i] = st
	}
	return s, nil
}

func readStep(
	path string,
	index int,
	comparator Comparator,
	c stepConfig,
) (s Step, err error) {
	feature := func(name string) string {
		return fmt.Sprintf("steps[%d].%s", index, name)
	}

	var ops []string
	if c.Set != nil {
		s.Op, s.Key = OpSet, *c.Set
		ops = append(ops, feature("set"))
	}
	if c.Get != nil {
		s.Op, s.Key = OpGet, *c.Get
		ops = append(ops, feature("get"))
	}
	if c.Delete != nil {
		s.Op, s.Key = OpDelete, *c.Delete
		ops = append(ops, feature("delete"))
	}
	if c.Load != nil {
		s.Op, s.JSON = OpLoad, *c.Load
		ops = append(ops, feature("load"))
	}
	switch {
	case len(ops) < 1:
		return s, &ErrorMissing{FilePath: path, Feature: feature("operation")}
	case len(ops) > 1:
		return s, &ErrorConflict{Items: ops}
	}

	unexpected := func(name string) error {
		return &ErrorIllegal{
			FilePath: path,
			Feature:  feature(name),
			Message:  "unexpected for " + s.Op.String(),
		}
	}

	if c.Value != nil {
		if s.Op != OpSet {
			return s, unexpected("value")
		}
		s.Value = *c.Value
	} else if s.Op == OpSet {
		return s, &ErrorMissing{FilePath: path, Feature: feature("value")}
	}
	if c.Expect != nil {
		if s.Op != OpGet {
			return s, unexpected("expect")
		}
		s.Expect = c.Expect
	}
	if c.Path != nil {
		if s.Op != OpLoad {
			return s, unexpected("path")
		}
		s.Path = *c.Path
	}

	if s.Op != OpLoad {
		if err := ValidateKey(comparator, s.Key); err != nil {
			return s, &ErrorIllegal{
				FilePath: path,
				Feature:  feature(s.Op.String()),
				Message:  err.Error(),
			}
		}
	}
	return s, nil
}

func knownComparator(c Comparator) bool {
	for _, k := range Comparators {
		if k == c {
			return true
		}
	}
	return false
}

type ErrorConflict struct {
	Items []string
}

func (e ErrorConflict) Error() string {
	var b strings.Builder
	b.WriteString("conflict between: ")
	for i := range e.Items {
		b.WriteString(e.Items[i])
		if i+1 < len(e.Items) {
			b.WriteString(", ")
		}
	}
	return b.String()
}

type ErrorMissing struct {
	FilePath string
	Feature  string
}

func (e ErrorMissing) Error() string {
	var b strings.Builder
	if e.Feature == "" {
		b.WriteString("missing ")
		b.WriteString(e.FilePath)
		return b.String()
	}
	b.WriteString("missing ")
	b.WriteString(e.Feature)
	b.WriteString(" in ")
	b.WriteString(e.FilePath)
	return b.String()
}

type ErrorIllegal struct {
	FilePath string
	Feature  string
	Message  string
}

func (e ErrorIllegal) Error() string {
	var b strings.Builder
	b.WriteString("illegal ")
	b.WriteString(e.Feature)
	b.WriteString(" in ")
	b.WriteString(e.FilePath)
	b.WriteString(": ")
	b.WriteString(e.Message)
	return b.String()
}
