package runner

import (
	"fmt"
	"io"

	"github.com/graph-guard/cmpmap/pkg/cmpmap"
)

// Demo shows the difference between case sensitive and
// case insensitive string keys by setting "lu" and "Lu"
// on a map created with each of the two comparators.
func Demo(w io.Writer) error {
	for _, d := range []struct {
		name    string
		compare cmpmap.Comparator[string]
	}{
		{"CompareStrings", cmpmap.CompareStrings},
		{"CompareStringsFold", cmpmap.CompareStringsFold},
	} {
		m, err := cmpmap.New[string, string](2, d.compare)
		if err != nil {
			return err
		}
		if err := m.Set("lu", "Lu Wang"); err != nil {
			return err
		}
		if err := m.Set("Lu", "Lucy"); err != nil {
			return err
		}
		a, _, err := m.Get("lu")
		if err != nil {
			return err
		}
		b, _, err := m.Get("Lu")
		if err != nil {
			return err
		}

		equal := "they are not equal"
		if a == b {
			equal = "they are equal"
		}
		fmt.Fprintf(w, "map created using %s\n", d.name)
		fmt.Fprintf(w, "lu = %s\n", a)
		fmt.Fprintf(w, "Lu = %s\n", b)
		fmt.Fprintf(w, "entries: %d, %s\n\n", m.Len(), equal)
		m.Release()
	}
	return nil
}
