package cmpmap

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// ErrInvalid is returned when operating on a nil or released map.
var ErrInvalid = errors.New("cmpmap: invalid map")

// ErrorAllocation is returned when the backing storage
// of the given capacity couldn't be allocated.
type ErrorAllocation struct {
	Capacity int

	// Cause is the value recovered from the runtime.
	Cause any
}

func (e ErrorAllocation) Error() string {
	return fmt.Sprintf(
		"cmpmap: allocating storage for %d entries: %v",
		e.Capacity, e.Cause,
	)
}

// ErrorCapacityExceeded is returned when the requested capacity
// is above the configured maximum or can't be represented.
type ErrorCapacityExceeded struct {
	Capacity int
	Max      int
}

func (e ErrorCapacityExceeded) Error() string {
	if e.Capacity < 0 {
		return "cmpmap: capacity overflows int"
	}
	var b strings.Builder
	b.WriteString("cmpmap: capacity ")
	b.WriteString(strconv.Itoa(e.Capacity))
	b.WriteString(" exceeds limit ")
	b.WriteString(strconv.Itoa(e.Max))
	return b.String()
}

// ErrorIllegal is returned by New for illegal arguments.
type ErrorIllegal struct {
	Field   string
	Message string
}

func (e ErrorIllegal) Error() string {
	var b strings.Builder
	b.Grow(len("cmpmap: illegal ") + len(e.Field) + len(": ") + len(e.Message))
	b.WriteString("cmpmap: illegal ")
	b.WriteString(e.Field)
	b.WriteString(": ")
	b.WriteString(e.Message)
	return b.String()
}
