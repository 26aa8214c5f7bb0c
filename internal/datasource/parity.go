package datasource

import (
	"fmt"
	"strings"
)

// RowParity selects rows by their 1-based position in the collection.
type RowParity int

const (
	ParityAll RowParity = iota
	ParityOdd
	ParityEven
)

// ParseRowParity accepts "all", "odd" or "even". An empty string is "all".
func ParseRowParity(s string) (RowParity, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "all":
		return ParityAll, nil
	case "odd":
		return ParityOdd, nil
	case "even":
		return ParityEven, nil
	default:
		return ParityAll, fmt.Errorf("unknown row parity %q", s)
	}
}

func (p RowParity) String() string {
	switch p {
	case ParityOdd:
		return "odd"
	case ParityEven:
		return "even"
	default:
		return "all"
	}
}

// Allows reports whether a row at the given 1-based position passes.
func (p RowParity) Allows(position int) bool {
	odd := position%2 != 0
	switch p {
	case ParityOdd:
		return odd
	case ParityEven:
		return !odd
	default:
		return true
	}
}
