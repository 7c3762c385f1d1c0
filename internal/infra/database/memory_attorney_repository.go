package database

import (
	"context"
	"sort"
	"sync"

	"cams/internal/domain/attorney"
)

// InMemoryAttorneyRepository serves a fixed attorney roster for tests and
// local runs.
type InMemoryAttorneyRepository struct {
	mu        sync.RWMutex
	attorneys []*attorney.Attorney
}

func NewInMemoryAttorneyRepository(roster []*attorney.Attorney) *InMemoryAttorneyRepository {
	r := &InMemoryAttorneyRepository{}
	for _, a := range roster {
		cp := *a
		r.attorneys = append(r.attorneys, &cp)
	}
	sort.Slice(r.attorneys, func(i, j int) bool {
		if r.attorneys[i].Name != r.attorneys[j].Name {
			return r.attorneys[i].Name < r.attorneys[j].Name
		}
		return r.attorneys[i].ID < r.attorneys[j].ID
	})
	return r
}

func (r *InMemoryAttorneyRepository) List(ctx context.Context) ([]*attorney.Attorney, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]*attorney.Attorney, 0, len(r.attorneys))
	for _, a := range r.attorneys {
		cp := *a
		out = append(out, &cp)
	}
	return out, nil
}
