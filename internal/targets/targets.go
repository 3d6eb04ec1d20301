// Package targets registers the functions the CLI knows how to sweep.
package targets

import (
	"errors"
	"fmt"
	"slices"
	"sort"

	m "otime.dev/pkg/otime/internal/model"
)

// ErrNotFound is returned by the search targets when the value is missing.
var ErrNotFound = errors.New("value not found")

// ErrEmpty is returned by targets that need at least one element.
var ErrEmpty = errors.New("empty sequence")

// absent lies outside the scaler's value range so searches scan everything.
const absent = -1_000_000

// Target is a registered function together with the arguments it is swept with.
type Target struct {
	Name        string
	Description string
	Complexity  string
	Func        m.Target
	Index       int
	Args        func() []any
	Expected    []error
}

// Info describes the target for listings.
func (t Target) Info() m.TargetInfo {
	info := m.TargetInfo{
		Name:        t.Name,
		Description: t.Description,
		Expected:    t.Complexity,
		Index:       t.Index,
	}

	if base, ok := t.Args()[t.Index].([]int); ok {
		info.Base = base
	}

	return info
}

// Config builds a sweep configuration for the target. A nil base keeps the
// target's default sequence.
func (t Target) Config(maxSize, step int, base []int, minAccuracy float64) m.SweepConfig {
	args := t.Args()
	if base != nil {
		args[t.Index] = slices.Clone(base)
	}

	return m.SweepConfig{
		Name:        t.Name,
		Target:      t.Func,
		Index:       t.Index,
		MaxSize:     maxSize,
		Step:        step,
		Args:        args,
		Expected:    t.Expected,
		MinAccuracy: minAccuracy,
	}
}

var registry = map[string]Target{
	"first": {
		Name:        "first",
		Description: "returns the first element",
		Complexity:  "O(1)",
		Func:        first,
		Args:        func() []any { return []any{[]int{1, 2, 3}} },
		Expected:    []error{ErrEmpty},
	},
	"contains": {
		Name:        "contains",
		Description: "linear membership test for a value that is never present",
		Complexity:  "O(n)",
		Func:        contains,
		Args:        func() []any { return []any{[]int{1, 2, 3}, absent} },
	},
	"index-of": {
		Name:        "index-of",
		Description: "linear search that fails with 'value not found'",
		Complexity:  "O(n)",
		Func:        indexOf,
		Args:        func() []any { return []any{[]int{1, 2, 3}, absent} },
		Expected:    []error{ErrNotFound},
	},
	"sum": {
		Name:        "sum",
		Description: "sums all elements",
		Complexity:  "O(n)",
		Func:        sum,
		Args:        func() []any { return []any{[]int{1, 2, 3}} },
	},
	"sort": {
		Name:        "sort",
		Description: "sorts a copy with the standard library",
		Complexity:  "O(n log n)",
		Func:        sortCopy,
		Args:        func() []any { return []any{[]int{3, 2, 1}} },
	},
	"bubble-sort": {
		Name:        "bubble-sort",
		Description: "sorts a copy with bubble sort",
		Complexity:  "O(n^2)",
		Func:        bubbleSort,
		Args:        func() []any { return []any{[]int{3, 2, 1}} },
	},
	"has-duplicates": {
		Name:        "has-duplicates",
		Description: "compares every pair of elements",
		Complexity:  "O(n^2)",
		Func:        hasDuplicatePair,
		Args:        func() []any { return []any{[]int{1, 2, 3}} },
	},
}

// Lookup returns the target registered under name.
func Lookup(name string) (Target, bool) {
	t, ok := registry[name]
	return t, ok
}

// All returns every registered target sorted by name.
func All() []Target {
	all := make([]Target, 0, len(registry))
	for _, t := range registry {
		all = append(all, t)
	}

	sort.Slice(all, func(i, j int) bool {
		return all[i].Name < all[j].Name
	})

	return all
}

func sequence(args []any, i int) []int {
	// A wrong type here is a sweep wiring bug; the collector turns the
	// panic into an invalid-parameters error.
	return args[i].([]int)
}

func first(args ...any) (any, error) {
	seq := sequence(args, 0)
	if len(seq) == 0 {
		return nil, ErrEmpty
	}

	return seq[0], nil
}

func contains(args ...any) (any, error) {
	seq, value := sequence(args, 0), args[1].(int)

	return slices.Contains(seq, value), nil
}

func indexOf(args ...any) (any, error) {
	seq, value := sequence(args, 0), args[1].(int)
	for i, v := range seq {
		if v == value {
			return i, nil
		}
	}

	return -1, fmt.Errorf("%w: %d", ErrNotFound, value)
}

func sum(args ...any) (any, error) {
	total := 0
	for _, v := range sequence(args, 0) {
		total += v
	}

	return total, nil
}

func sortCopy(args ...any) (any, error) {
	seq := slices.Clone(sequence(args, 0))
	slices.Sort(seq)

	return seq, nil
}

func bubbleSort(args ...any) (any, error) {
	seq := slices.Clone(sequence(args, 0))
	for i := 0; i < len(seq); i++ {
		for j := 0; j < len(seq)-1-i; j++ {
			if seq[j] > seq[j+1] {
				seq[j], seq[j+1] = seq[j+1], seq[j]
			}
		}
	}

	return seq, nil
}

func hasDuplicatePair(args ...any) (any, error) {
	seq := sequence(args, 0)
	found := false

	for i := range seq {
		for j := i + 1; j < len(seq); j++ {
			if seq[i] == seq[j] {
				found = true
			}
		}
	}

	return found, nil
}
