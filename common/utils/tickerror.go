package utils

import (
	"github.com/hashicorp/errwrap"
	"github.com/pkg/errors"
)

// TickFaults accumulates the non-fatal errors raised by different
// components within a single tick, so the tick can log one aggregated,
// non-propagating error instead of many, and still complete.
type TickFaults struct {
	err error
}

// Add wraps err with context and folds it into the accumulated fault, if
// any. A nil err is a no-op.
func (t *TickFaults) Add(context string, err error) {
	if err == nil {
		return
	}

	wrapped := errors.Wrap(err, context)
	if t.err == nil {
		t.err = wrapped
		return
	}

	t.err = errwrap.Wrap(t.err, wrapped)
}

// Err returns the aggregated fault, or nil if the tick raised none.
func (t *TickFaults) Err() error {
	return t.err
}
