package assignment

import (
	"database/sql"
	"time"

	"github.com/google/uuid"
)

// Role is the capacity in which a staff member is attached to a case. Only
// trial attorneys can be assigned through the public surface today; the type
// exists so new roles are an enum entry, not a schema change.
type Role string

const RoleTrialAttorney Role = "TrialAttorney"

// ParseRole validates a caller-supplied role string.
func ParseRole(s string) (Role, bool) {
	switch s {
	case string(RoleTrialAttorney):
		return RoleTrialAttorney, true
	}
	return "", false
}

// CaseAssignment attaches one assignee to one case for a given role. Rows are
// never hard-deleted; removal is the Unassigned/UnassignedOn soft flag. For a
// given (case, assignee, role) tuple at most one row may be live at a time.
type CaseAssignment struct {
	ID           string       `json:"id"`
	CaseID       string       `json:"caseId"`
	AssigneeID   string       `json:"assigneeId"`
	AssigneeName string       `json:"assigneeName"`
	Role         Role         `json:"role"`
	CreatedOn    time.Time    `json:"createdOn"`
	Unassigned   bool         `json:"unassigned,omitempty"`
	UnassignedOn sql.NullTime `json:"-"`
}

// NewID mints an assignment id. Ids are random rather than derived from the
// tuple: the storage layer's live-tuple uniqueness already makes concurrent
// creators converge on one row, and a tuple-derived id would collide with
// its own unassigned predecessor if the same assignment were ever recreated.
func NewID() string {
	return uuid.NewString()
}
