package datasource

import (
	"errors"
	"fmt"
)

var (
	// ErrEmptyCollection is returned when column shape is requested from a
	// collection with no records.
	ErrEmptyCollection = errors.New("empty record collection")

	// ErrInvalidColumn is matched by every *InvalidColumnError.
	ErrInvalidColumn = errors.New("unknown column")

	// ErrFilterCount is returned when a query carries more filters than
	// the collection has columns.
	ErrFilterCount = errors.New("more filters than columns")

	// ErrRaggedRecords is returned when records disagree on summary length.
	ErrRaggedRecords = errors.New("records have different summary lengths")
)

// InvalidColumnError reports a column label or slot that does not exist.
type InvalidColumnError struct {
	Label string
}

func (e *InvalidColumnError) Error() string {
	return fmt.Sprintf("unknown column %q", e.Label)
}

func (e *InvalidColumnError) Unwrap() error {
	return ErrInvalidColumn
}
