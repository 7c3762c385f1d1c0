package app

import (
	"context"
	"fmt"
	"regexp"
	"strings"
	"time"

	"cams/internal/domain/assignment"

	"github.com/sirupsen/logrus"
)

// ValidationError is a client-fault condition detected before any store
// access. Message is the full human-readable text, with multiple field
// problems aggregated into one.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// Case ids look like 081-23-12345: a 3-character alphanumeric court division,
// a 2-digit year, and a 5-digit sequence number.
var caseIDPattern = regexp.MustCompile(`^[A-Za-z0-9]{3}-[0-9]{2}-[0-9]{5}$`)

const caseIDFormatMessage = "caseId must be formatted like 01-12345."

// AssigneeRef identifies one requested assignee. ID is the stable staff
// identifier; Name is display text that may repeat across distinct people.
type AssigneeRef struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// identityKey is the canonical comparable key used to deduplicate assignees.
// Identity is the stable id when present; equal display strings only collapse
// when no id distinguishes them.
func (a AssigneeRef) identityKey() string {
	if a.ID != "" {
		return "id:" + a.ID
	}
	return "name:" + strings.ToLower(strings.Join(strings.Fields(a.Name), " "))
}

// CreateAssignmentsResult reports the live assignment ids for the request,
// one per unique assignee, whether created now or found already existing.
type CreateAssignmentsResult struct {
	AssignmentIDs []string `json:"assignmentIds"`
	Count         int      `json:"count"`
}

type AssignmentService struct {
	repo   assignment.Repository
	logger *logrus.Entry
	now    func() time.Time
}

func NewAssignmentService(repo assignment.Repository, logger *logrus.Entry) *AssignmentService {
	return &AssignmentService{
		repo:   repo,
		logger: logger,
		now:    time.Now,
	}
}

// CreateAssignments validates the request, deduplicates the assignee list by
// identity, and drives the store to create one assignment per unique
// assignee. Store calls are issued sequentially so a failure at assignee N
// leaves definite results for assignees 1..N-1; the error is surfaced rather
// than retried, since masking it could hide a duplicate-creation race.
func (s *AssignmentService) CreateAssignments(ctx context.Context, caseID string, assignees []AssigneeRef, role string) (*CreateAssignmentsResult, error) {
	if err := validateAssignmentRequest(caseID, role); err != nil {
		return nil, err
	}
	parsedRole, _ := assignment.ParseRole(role)

	seen := make(map[string]bool)
	unique := make([]AssigneeRef, 0, len(assignees))
	for _, a := range assignees {
		key := a.identityKey()
		if seen[key] {
			continue
		}
		seen[key] = true
		unique = append(unique, a)
	}

	createdOn := s.now().UTC()
	ids := make([]string, 0, len(unique))
	seenID := make(map[string]bool)
	for _, a := range unique {
		assigneeID := a.ID
		if assigneeID == "" {
			assigneeID = strings.TrimPrefix(a.identityKey(), "name:")
		}
		rec := &assignment.CaseAssignment{
			ID:           assignment.NewID(),
			CaseID:       caseID,
			AssigneeID:   assigneeID,
			AssigneeName: a.Name,
			Role:         parsedRole,
			CreatedOn:    createdOn,
		}
		id, err := s.repo.Create(ctx, rec)
		if err != nil {
			s.logger.WithError(err).WithFields(logrus.Fields{
				"case_id":     caseID,
				"assignee_id": assigneeID,
			}).Error("Failed to create assignment")
			return nil, fmt.Errorf("failed to create assignment for case %s: %w", caseID, err)
		}
		// The store's idempotency already prevents duplicate ids; this is a
		// defensive second pass over our own output list.
		if !seenID[id] {
			seenID[id] = true
			ids = append(ids, id)
		}
	}

	s.logger.WithFields(logrus.Fields{
		"case_id": caseID,
		"count":   len(ids),
	}).Info("Assignments created or confirmed")
	return &CreateAssignmentsResult{AssignmentIDs: ids, Count: len(ids)}, nil
}

// GetAssignments answers "who is assigned to this case".
func (s *AssignmentService) GetAssignments(ctx context.Context, caseID string) ([]*assignment.CaseAssignment, error) {
	out, err := s.repo.ListByCase(ctx, caseID)
	if err != nil {
		return nil, fmt.Errorf("failed to list assignments for case %s: %w", caseID, err)
	}
	return out, nil
}

// GetAssignment fetches one assignment by id.
func (s *AssignmentService) GetAssignment(ctx context.Context, id string) (*assignment.CaseAssignment, error) {
	a, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get assignment %s: %w", id, err)
	}
	return a, nil
}

// CountAssignments reports the total number of live assignments. Diagnostics
// only.
func (s *AssignmentService) CountAssignments(ctx context.Context) (int, error) {
	n, err := s.repo.CountLive(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to count assignments: %w", err)
	}
	return n, nil
}

func validateAssignmentRequest(caseID, role string) error {
	var missing []string
	if strings.TrimSpace(caseID) == "" {
		missing = append(missing, "caseId")
	}
	if strings.TrimSpace(role) == "" {
		missing = append(missing, "role")
	}

	var problems []string
	if len(missing) > 0 {
		problems = append(problems, fmt.Sprintf("required parameter(s) missing: %s.", strings.Join(missing, ", ")))
	}
	if strings.TrimSpace(caseID) != "" && !caseIDPattern.MatchString(caseID) {
		problems = append(problems, caseIDFormatMessage)
	}
	if strings.TrimSpace(role) != "" {
		if _, ok := assignment.ParseRole(role); !ok {
			problems = append(problems, fmt.Sprintf("%s is not a recognized role for assignment creation.", role))
		}
	}
	if len(problems) > 0 {
		return &ValidationError{Message: strings.Join(problems, " ")}
	}
	return nil
}
