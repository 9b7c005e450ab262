// Package wrappers provides small error-accumulation helpers.
package wrappers

import (
	"errors"
	"strings"
	"sync"
)

// Errs accumulates errors from a sequence of best-effort operations (for
// example, a shutdown journal flush) without aborting the sequence on the
// first failure.
type Errs struct {
	mu   sync.Mutex
	errs []error
}

// Add appends err to the collection. A nil err is ignored.
func (e *Errs) Add(err error) {
	if err == nil {
		return
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	e.errs = append(e.errs, err)
}

// Errored reports whether any error has been added.
func (e *Errs) Errored() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return len(e.errs) > 0
}

// Err returns a single error summarizing everything added, or nil.
func (e *Errs) Err() error {
	e.mu.Lock()
	defer e.mu.Unlock()
	switch len(e.errs) {
	case 0:
		return nil
	case 1:
		return e.errs[0]
	default:
		msgs := make([]string, len(e.errs))
		for i, err := range e.errs {
			msgs[i] = err.Error()
		}
		return errors.New(strings.Join(msgs, "; "))
	}
}
