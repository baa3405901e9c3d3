// Package memory holds in-process implementations of the backend interfaces.
// They back the "memory" driver used for local development and every test
// that needs a backend without AWS.
package memory

import (
	"context"
	"slices"
	"strconv"
	"sync"
	"time"

	"fostercare/cmd/internal/backend"
)

// Records keeps a table in a slice, newest first, matching the ordering of the
// sqlite repository.
type Records[T backend.Record] struct {
	mu    sync.Mutex
	recs  []T
	seq   int
	clone func(T) T

	// FailWith makes every call return this error while set.
	FailWith error

	// Calls counts mutating calls, tests use it to assert remote side effects.
	Inserts int
	Updates int
	Deletes int
}

// NewRecords returns an empty table. clone must deep-copy a record so callers
// never share memory with the store.
func NewRecords[T backend.Record](clone func(T) T) *Records[T] {
	return &Records[T]{clone: clone}
}

func (r *Records[T]) SelectAll(_ context.Context) ([]T, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.FailWith != nil {
		return nil, r.FailWith
	}

	out := make([]T, len(r.recs))
	for i, rec := range r.recs {
		out[i] = r.clone(rec)
	}
	return out, nil
}

func (r *Records[T]) SelectByID(_ context.Context, id string) (T, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var zero T
	if r.FailWith != nil {
		return zero, r.FailWith
	}

	i := r.indexOf(id)
	if i < 0 {
		return zero, backend.ErrNotFound
	}
	return r.clone(r.recs[i]), nil
}

func (r *Records[T]) Insert(_ context.Context, rec T) (T, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var zero T
	if r.FailWith != nil {
		return zero, r.FailWith
	}

	r.seq++
	stored := r.clone(rec)
	stored.SetID(strconv.Itoa(r.seq))
	stored.Stamp(time.Now().UnixMilli())

	r.recs = slices.Insert(r.recs, 0, stored)
	r.Inserts++
	return r.clone(stored), nil
}

func (r *Records[T]) Update(_ context.Context, rec T) (T, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var zero T
	if r.FailWith != nil {
		return zero, r.FailWith
	}

	i := r.indexOf(rec.GetID())
	if i < 0 {
		return zero, backend.ErrNotFound
	}

	stored := r.clone(rec)
	stored.SetCreated(r.recs[i].Created())
	stored.Stamp(time.Now().UnixMilli())
	r.recs[i] = stored
	r.Updates++
	return r.clone(stored), nil
}

func (r *Records[T]) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.FailWith != nil {
		return r.FailWith
	}

	i := r.indexOf(id)
	if i < 0 {
		return backend.ErrNotFound
	}

	r.recs = slices.Delete(r.recs, i, i+1)
	r.Deletes++
	return nil
}

func (r *Records[T]) indexOf(id string) int {
	return slices.IndexFunc(r.recs, func(rec T) bool {
		return rec.GetID() == id
	})
}

// Copy is a clone func for entities made only of value fields.
func Copy[E any](p *E) *E {
	cp := *p
	return &cp
}
