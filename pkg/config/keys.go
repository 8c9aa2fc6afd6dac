package config

import (
	"fmt"
	"strconv"
)

// ValidateKey returns an error if key can't be parsed
// into the key type of comparator c.
func ValidateKey(c Comparator, key string) (err error) {
	switch c {
	case ComparatorInt:
		_, err = ParseIntKey(key)
	case ComparatorUint:
		_, err = ParseUintKey(key)
	case ComparatorFloat32:
		_, err = ParseFloat32Key(key)
	case ComparatorFloat64:
		_, err = ParseFloat64Key(key)
	}
	return err
}

// ParseStringKey returns s as is.
func ParseStringKey(s string) (string, error) { return s, nil }

func ParseIntKey(s string) (int64, error) {
	v, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("parsing int key %q: %w", s, unwrapNum(err))
	}
	return v, nil
}

func ParseUintKey(s string) (uint64, error) {
	v, err := strconv.ParseUint(s, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("parsing uint key %q: %w", s, unwrapNum(err))
	}
	return v, nil
}

func ParseFloat32Key(s string) (float32, error) {
	v, err := strconv.ParseFloat(s, 32)
	if err != nil {
		return 0, fmt.Errorf("parsing float32 key %q: %w", s, unwrapNum(err))
	}
	return float32(v), nil
}

func ParseFloat64Key(s string) (float64, error) {
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("parsing float64 key %q: %w", s, unwrapNum(err))
	}
	return v, nil
}

// unwrapNum strips the redundant function and input
// information from strconv.NumError.
func unwrapNum(err error) error {
	if e, ok := err.(*strconv.NumError); ok {
		return e.Err
	}
	return err
}
