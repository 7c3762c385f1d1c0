package database

import (
	"context"
	"database/sql"
	"fmt"
	"sort"
	"sync"
	"time"

	"cams/internal/domain/assignment"
)

// InMemoryAssignmentRepository implements assignment.Repository without a
// database, for tests and local runs. It keeps the same idempotency contract
// as the Postgres implementation: the live-tuple map plays the role of the
// partial unique index, and the mutex makes check-and-insert atomic so
// concurrent Create calls for the same tuple converge on one row.
type InMemoryAssignmentRepository struct {
	mu     sync.Mutex
	byID   map[string]*assignment.CaseAssignment
	live   map[string]string // tuple key -> live assignment id
	serial int               // insertion counter, preserves creation order
	order  map[string]int
}

func NewInMemoryAssignmentRepository() *InMemoryAssignmentRepository {
	return &InMemoryAssignmentRepository{
		byID:  make(map[string]*assignment.CaseAssignment),
		live:  make(map[string]string),
		order: make(map[string]int),
	}
}

func tupleKey(caseID, assigneeID string, role assignment.Role) string {
	return caseID + "|" + assigneeID + "|" + string(role)
}

func (r *InMemoryAssignmentRepository) Create(ctx context.Context, a *assignment.CaseAssignment) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	key := tupleKey(a.CaseID, a.AssigneeID, a.Role)
	if existing, ok := r.live[key]; ok {
		return existing, nil
	}
	if a.ID == "" {
		return "", fmt.Errorf("error creating assignment: missing id")
	}
	stored := *a
	r.byID[stored.ID] = &stored
	r.live[key] = stored.ID
	r.serial++
	r.order[stored.ID] = r.serial
	return stored.ID, nil
}

func (r *InMemoryAssignmentRepository) GetByID(ctx context.Context, id string) (*assignment.CaseAssignment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	a, ok := r.byID[id]
	if !ok {
		return nil, ErrAssignmentNotFound
	}
	cp := *a
	return &cp, nil
}

func (r *InMemoryAssignmentRepository) ListByCase(ctx context.Context, caseID string) ([]*assignment.CaseAssignment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]*assignment.CaseAssignment, 0)
	for _, a := range r.byID {
		if a.CaseID == caseID && !a.Unassigned {
			cp := *a
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return r.order[out[i].ID] < r.order[out[j].ID]
	})
	return out, nil
}

func (r *InMemoryAssignmentRepository) CountLive(ctx context.Context) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.live), nil
}

func (r *InMemoryAssignmentRepository) Unassign(ctx context.Context, id string, at time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	a, ok := r.byID[id]
	if !ok || a.Unassigned {
		return ErrAssignmentNotFound
	}
	a.Unassigned = true
	a.UnassignedOn = sql.NullTime{Time: at, Valid: true}
	delete(r.live, tupleKey(a.CaseID, a.AssigneeID, a.Role))
	return nil
}
