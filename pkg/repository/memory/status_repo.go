// Package memory holds in-process repositories used when no database is configured.
package memory

import (
	"context"
	"sync"

	"github.com/artem13815/atlas/pkg/status"
)

type StatusRepository struct {
	mu     sync.RWMutex
	checks []status.Check
}

func NewStatusRepository() *StatusRepository {
	return &StatusRepository{}
}

func (r *StatusRepository) Create(_ context.Context, c status.Check) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.checks = append(r.checks, c)
	return nil
}

// List returns up to limit checks in insertion order, starting at offset.
func (r *StatusRepository) List(_ context.Context, limit, offset int) ([]status.Check, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if offset >= len(r.checks) {
		return []status.Check{}, nil
	}
	rest := r.checks[offset:]
	n := len(rest)
	if limit > 0 && limit < n {
		n = limit
	}
	out := make([]status.Check, n)
	copy(out, rest[:n])
	return out, nil
}
