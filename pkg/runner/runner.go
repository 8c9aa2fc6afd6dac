// Package runner executes cmpmap scripts.
package runner

import (
	"errors"
	"fmt"
	"io"
	"unsafe"

	"github.com/dustin/go-humanize"
	"github.com/google/uuid"
	"github.com/graph-guard/cmpmap/pkg/cmpmap"
	"github.com/graph-guard/cmpmap/pkg/config"
	"github.com/phuslu/log"
	"github.com/tidwall/gjson"
)

// Result summarizes a script run.
type Result struct {
	RunID uuid.UUID

	// Steps is the number of successfully executed steps.
	Steps int

	Size     int
	Capacity int

	// Storage is the humanized size of the backing storage.
	Storage string
}

// Run executes script s writing one line per step to w.
// Execution stops at the first failing step.
func Run(w io.Writer, l log.Logger, s *config.Script) (Result, error) {
	switch s.Comparator {
	case config.ComparatorString:
		return run[string](w, l, s, config.ParseStringKey, cmpmap.CompareStrings)
	case config.ComparatorStringFold:
		return run[string](w, l, s, config.ParseStringKey, cmpmap.CompareStringsFold)
	case config.ComparatorInt:
		return run[int64](w, l, s, config.ParseIntKey, cmpmap.CompareInts[int64])
	case config.ComparatorUint:
		return run[uint64](w, l, s, config.ParseUintKey, cmpmap.CompareUints[uint64])
	case config.ComparatorFloat32:
		return run[float32](w, l, s, config.ParseFloat32Key, cmpmap.CompareFloat32)
	case config.ComparatorFloat64:
		return run[float64](w, l, s, config.ParseFloat64Key, cmpmap.CompareFloat64)
	}
	return Result{}, fmt.Errorf("unsupported comparator %q", s.Comparator)
}

func run[K any](
	w io.Writer,
	l log.Logger,
	s *config.Script,
	parse func(string) (K, error),
	compare cmpmap.Comparator[K],
) (r Result, err error) {
	r.RunID = uuid.New()
	l.Context = log.NewContext(nil).Str("run", r.RunID.String()).Value()

	m, err := cmpmap.NewWithOptions[K, string](
		s.InitialCapacity,
		compare,
		cmpmap.Options{
			MaxCapacity: s.MaxCapacity,
			OnGrow: func(oldCapacity, newCapacity int) {
				l.Debug().
					Int("from", oldCapacity).
					Int("to", newCapacity).
					Msg("storage grown")
			},
		},
	)
	if err != nil {
		return r, fmt.Errorf("creating map: %w", err)
	}
	defer m.Release()

	l.Info().
		Str("script", s.FilePath).
		Str("comparator", string(s.Comparator)).
		Int("capacity", m.Cap()).
		Int("steps", len(s.Steps)).
		Msg("running")

	x := executor[K]{w: w, m: m, parse: parse}
	for i := range s.Steps {
		if err := x.exec(i, s.Steps[i]); err != nil {
			l.Error().Err(err).Int("step", i).Msg("step failed")
			return r, err
		}
		r.Steps++
	}

	r.Size, r.Capacity = m.Len(), m.Cap()
	var e cmpmap.Entry[K, string]
	r.Storage = humanize.Bytes(uint64(r.Capacity) * uint64(unsafe.Sizeof(e)))
	fmt.Fprintf(w,
		"size: %d, capacity: %d, storage: %s\n",
		r.Size, r.Capacity, r.Storage,
	)

	l.Info().
		Int("size", r.Size).
		Int("capacity", r.Capacity).
		Str("storage", r.Storage).
		Msg("done")
	return r, nil
}

type executor[K any] struct {
	w     io.Writer
	m     *cmpmap.Map[K, string]
	parse func(string) (K, error)
}

func (x executor[K]) exec(index int, s config.Step) error {
	wrap := func(err error) error {
		return fmt.Errorf("step %d (%s): %w", index, s.Op, err)
	}

	if s.Op == config.OpLoad {
		n, err := x.load(s.JSON, s.Path)
		if err != nil {
			return wrap(err)
		}
		fmt.Fprintf(x.w,
			"load %d entries (size %d, capacity %d)\n",
			n, x.m.Len(), x.m.Cap(),
		)
		return nil
	}

	key, err := x.parse(s.Key)
	if err != nil {
		return wrap(err)
	}

	switch s.Op {
	case config.OpSet:
		if err := x.m.Set(key, s.Value); err != nil {
			return wrap(err)
		}
		fmt.Fprintf(x.w,
			"set %s = %q (size %d, capacity %d)\n",
			s.Key, s.Value, x.m.Len(), x.m.Cap(),
		)

	case config.OpGet:
		v, ok, err := x.m.Get(key)
		if err != nil {
			return wrap(err)
		}
		if ok {
			fmt.Fprintf(x.w, "get %s = %q\n", s.Key, v)
		} else {
			fmt.Fprintf(x.w, "get %s: not found\n", s.Key)
		}
		if s.Expect != nil && (!ok || v != *s.Expect) {
			return wrap(&ErrorExpectation{
				Step:     index,
				Key:      s.Key,
				Expected: *s.Expect,
				Actual:   v,
				Found:    ok,
			})
		}

	case config.OpDelete:
		x.m.Delete(key)
		fmt.Fprintf(x.w, "delete %s (size %d)\n", s.Key, x.m.Len())

	default:
		return wrap(errors.New("unknown operation"))
	}
	return nil
}

// load sets all members of the JSON object found at path.
// The whole document is used if path is empty.
func (x executor[K]) load(doc, path string) (n int, err error) {
	if !gjson.Valid(doc) {
		return 0, errors.New("invalid JSON")
	}
	o := gjson.Parse(doc)
	if path != "" {
		if o = o.Get(path); !o.Exists() {
			return 0, fmt.Errorf("path %q not found", path)
		}
	}
	if !o.IsObject() {
		return 0, fmt.Errorf("expected JSON object, got %s", o.Type)
	}
	o.ForEach(func(k, v gjson.Result) bool {
		var key K
		if key, err = x.parse(k.String()); err != nil {
			return false
		}
		if err = x.m.Set(key, v.String()); err != nil {
			return false
		}
		n++
		return true
	})
	return n, err
}

// ErrorExpectation is returned when a get step
// didn't yield the expected value.
type ErrorExpectation struct {
	// Step is the index of the failed step.
	Step     int
	Key      string
	Expected string
	Actual   string
	Found    bool
}

func (e ErrorExpectation) Error() string {
	if !e.Found {
		return fmt.Sprintf(
			"expected %q for key %q, key not found",
			e.Expected, e.Key,
		)
	}
	return fmt.Sprintf(
		"expected %q for key %q, got %q",
		e.Expected, e.Key, e.Actual,
	)
}
