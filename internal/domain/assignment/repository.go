package assignment

import (
	"context"
	"time"
)

// Repository defines the operations for persisting and retrieving case
// assignments. The central invariant is idempotent creation: Create called
// with a tuple that already has a live row returns the existing row's id and
// writes nothing, and this must hold under concurrent callers, not just
// within one call.
type Repository interface {
	// Create inserts the assignment if no live row exists for its
	// (case, assignee, role) tuple and returns the live row's id either way.
	Create(ctx context.Context, a *CaseAssignment) (string, error)
	// GetByID returns the assignment or a not-found error.
	GetByID(ctx context.Context, id string) (*CaseAssignment, error)
	// ListByCase returns the live assignments for a case in creation order.
	ListByCase(ctx context.Context, caseID string) ([]*CaseAssignment, error)
	// CountLive reports the total number of live assignments. Diagnostics
	// only; nothing in the request path depends on it.
	CountLive(ctx context.Context) (int, error)
	// Unassign soft-deletes an assignment. No workflow in this service
	// triggers it yet, but the lifecycle exists in the data model.
	Unassign(ctx context.Context, id string, at time.Time) error
}
