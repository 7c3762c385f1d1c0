package database

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"cams/internal/domain/assignment"

	_ "github.com/lib/pq" // PostgreSQL driver
)

// Custom errors
var ErrAssignmentNotFound = fmt.Errorf("assignment not found")

type PostgresAssignmentRepository struct {
	db *sql.DB
}

func NewPostgresAssignmentRepository(db *sql.DB) *PostgresAssignmentRepository {
	return &PostgresAssignmentRepository{db: db}
}

// Create inserts the assignment unless a live row already exists for its
// (case_id, assignee_id, role) tuple, then reads back the live row's id.
// A plain check-then-insert is racy, two callers can both observe "absent"
// and both insert, so the insert leans on the partial unique index instead:
// whichever writer loses the race conflicts, inserts nothing, and the
// follow-up select returns the winner's id for both.
func (r *PostgresAssignmentRepository) Create(ctx context.Context, a *assignment.CaseAssignment) (string, error) {
	insert := `INSERT INTO case_assignments (id, case_id, assignee_id, assignee_name, role, created_on)
               VALUES ($1, $2, $3, $4, $5, $6)
               ON CONFLICT DO NOTHING`
	_, err := r.db.ExecContext(ctx, insert, a.ID, a.CaseID, a.AssigneeID, a.AssigneeName, string(a.Role), a.CreatedOn)
	if err != nil {
		return "", fmt.Errorf("error creating assignment for case %s: %w", a.CaseID, err)
	}

	query := `SELECT id FROM case_assignments
               WHERE case_id = $1 AND assignee_id = $2 AND role = $3 AND NOT unassigned`
	var id string
	err = r.db.QueryRowContext(ctx, query, a.CaseID, a.AssigneeID, string(a.Role)).Scan(&id)
	if err != nil {
		if err == sql.ErrNoRows {
			// The winner was unassigned between our insert attempt and the
			// read-back. Surface it rather than guessing at a retry.
			return "", fmt.Errorf("no live assignment after insert for case %s assignee %s: %w", a.CaseID, a.AssigneeID, ErrAssignmentNotFound)
		}
		return "", fmt.Errorf("error reading back assignment for case %s: %w", a.CaseID, err)
	}
	return id, nil
}

func (r *PostgresAssignmentRepository) GetByID(ctx context.Context, id string) (*assignment.CaseAssignment, error) {
	query := `SELECT id, case_id, assignee_id, assignee_name, role, created_on, unassigned, unassigned_on
               FROM case_assignments WHERE id = $1`
	a := &assignment.CaseAssignment{}
	var role string
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&a.ID, &a.CaseID, &a.AssigneeID, &a.AssigneeName, &role, &a.CreatedOn, &a.Unassigned, &a.UnassignedOn,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrAssignmentNotFound
		}
		return nil, fmt.Errorf("error getting assignment by ID: %w", err)
	}
	a.Role = assignment.Role(role)
	return a, nil
}

func (r *PostgresAssignmentRepository) ListByCase(ctx context.Context, caseID string) ([]*assignment.CaseAssignment, error) {
	// seq, not created_on: assignments created in one request share a single
	// created_on stamp, so the timestamp alone cannot reproduce insert order.
	query := `SELECT id, case_id, assignee_id, assignee_name, role, created_on, unassigned, unassigned_on
               FROM case_assignments
               WHERE case_id = $1 AND NOT unassigned
               ORDER BY seq`
	rows, err := r.db.QueryContext(ctx, query, caseID)
	if err != nil {
		return nil, fmt.Errorf("error listing assignments for case %s: %w", caseID, err)
	}
	defer rows.Close()

	assignments := make([]*assignment.CaseAssignment, 0)
	for rows.Next() {
		a := &assignment.CaseAssignment{}
		var role string
		if err := rows.Scan(&a.ID, &a.CaseID, &a.AssigneeID, &a.AssigneeName, &role, &a.CreatedOn, &a.Unassigned, &a.UnassignedOn); err != nil {
			return nil, fmt.Errorf("error scanning assignment row: %w", err)
		}
		a.Role = assignment.Role(role)
		assignments = append(assignments, a)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating assignment rows: %w", err)
	}
	return assignments, nil
}

func (r *PostgresAssignmentRepository) CountLive(ctx context.Context) (int, error) {
	var count int
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM case_assignments WHERE NOT unassigned`).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("error counting live assignments: %w", err)
	}
	return count, nil
}

func (r *PostgresAssignmentRepository) Unassign(ctx context.Context, id string, at time.Time) error {
	query := `UPDATE case_assignments
               SET unassigned = TRUE, unassigned_on = $1
               WHERE id = $2 AND NOT unassigned
               RETURNING id`
	var updated string
	err := r.db.QueryRowContext(ctx, query, at, id).Scan(&updated)
	if err != nil {
		if err == sql.ErrNoRows {
			return ErrAssignmentNotFound
		}
		return fmt.Errorf("error unassigning assignment %s: %w", id, err)
	}
	return nil
}
