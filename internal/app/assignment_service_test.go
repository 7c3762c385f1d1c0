package app

import (
	"context"
	"io"
	"testing"

	"cams/internal/domain/assignment"
	"cams/internal/infra/database"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testLogger() *logrus.Entry {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return logrus.NewEntry(l)
}

func newTestAssignmentService() (*AssignmentService, *database.InMemoryAssignmentRepository) {
	repo := database.NewInMemoryAssignmentRepository()
	return NewAssignmentService(repo, testLogger()), repo
}

func TestCreateAssignmentsHappyPath(t *testing.T) {
	svc, repo := newTestAssignmentService()

	result, err := svc.CreateAssignments(context.Background(), "081-23-12345",
		[]AssigneeRef{{ID: "jane-1", Name: "Jane"}, {ID: "tom-1", Name: "Tom"}}, "TrialAttorney")
	require.NoError(t, err)

	assert.Len(t, result.AssignmentIDs, 2)
	assert.Equal(t, 2, result.Count)

	n, err := repo.CountLive(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, n)
}

func TestCreateAssignmentsIdempotentAcrossCalls(t *testing.T) {
	svc, repo := newTestAssignmentService()
	ctx := context.Background()

	first, err := svc.CreateAssignments(ctx, "081-23-12345",
		[]AssigneeRef{{ID: "jane-1", Name: "Jane"}}, "TrialAttorney")
	require.NoError(t, err)
	second, err := svc.CreateAssignments(ctx, "081-23-12345",
		[]AssigneeRef{{ID: "jane-1", Name: "Jane"}}, "TrialAttorney")
	require.NoError(t, err)

	assert.Equal(t, first.AssignmentIDs, second.AssignmentIDs)

	n, err := repo.CountLive(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}

func TestCreateAssignmentsDeduplicatesByIdentity(t *testing.T) {
	svc, _ := newTestAssignmentService()

	// Jane appears twice under the same id; the second occurrence is the same
	// person and must collapse.
	result, err := svc.CreateAssignments(context.Background(), "081-23-12345",
		[]AssigneeRef{
			{ID: "jane-1", Name: "Jane"},
			{ID: "tom-1", Name: "Tom"},
			{ID: "jane-1", Name: "Jane"},
			{ID: "adrian-1", Name: "Adrian"},
		}, "TrialAttorney")
	require.NoError(t, err)

	assert.Len(t, result.AssignmentIDs, 3)
	assert.Equal(t, 3, result.Count)
}

func TestCreateAssignmentsSameNameDifferentIDsAreDistinct(t *testing.T) {
	svc, _ := newTestAssignmentService()

	result, err := svc.CreateAssignments(context.Background(), "081-23-12345",
		[]AssigneeRef{{ID: "jane-1", Name: "Jane"}, {ID: "jane-2", Name: "Jane"}}, "TrialAttorney")
	require.NoError(t, err)

	assert.Equal(t, 2, result.Count)
}

func TestCreateAssignmentsDeduplicatesByNameWithoutIDs(t *testing.T) {
	svc, _ := newTestAssignmentService()

	result, err := svc.CreateAssignments(context.Background(), "081-23-12345",
		[]AssigneeRef{{Name: "Jane Smith"}, {Name: "jane  smith"}}, "TrialAttorney")
	require.NoError(t, err)

	assert.Equal(t, 1, result.Count)
}

func TestCreateAssignmentsMissingCaseID(t *testing.T) {
	svc, _ := newTestAssignmentService()

	_, err := svc.CreateAssignments(context.Background(), "",
		[]AssigneeRef{{ID: "jane-1", Name: "Jane"}}, "TrialAttorney")

	var vErr *ValidationError
	require.ErrorAs(t, err, &vErr)
	assert.Contains(t, vErr.Message, "caseId")
	assert.Contains(t, vErr.Message, "required parameter(s) missing")
}

func TestCreateAssignmentsBadCaseIDFormat(t *testing.T) {
	svc, _ := newTestAssignmentService()

	for _, caseID := range []string{"123", "081-23-123", "08-23-12345", "081-2023-12345"} {
		t.Run(caseID, func(t *testing.T) {
			_, err := svc.CreateAssignments(context.Background(), caseID,
				[]AssigneeRef{{ID: "jane-1", Name: "Jane"}}, "TrialAttorney")

			var vErr *ValidationError
			require.ErrorAs(t, err, &vErr)
			assert.Contains(t, vErr.Message, "caseId must be formatted like 01-12345.")
		})
	}
}

func TestCreateAssignmentsUnknownRole(t *testing.T) {
	svc, _ := newTestAssignmentService()

	_, err := svc.CreateAssignments(context.Background(), "081-23-12345",
		[]AssigneeRef{{ID: "jane-1", Name: "Jane"}}, "TrialDragon")

	var vErr *ValidationError
	require.ErrorAs(t, err, &vErr)
	assert.Contains(t, vErr.Message, "TrialDragon is not a recognized role for assignment creation.")
}

func TestCreateAssignmentsAggregatesProblems(t *testing.T) {
	svc, _ := newTestAssignmentService()

	_, err := svc.CreateAssignments(context.Background(), "bogus", nil, "TrialDragon")

	var vErr *ValidationError
	require.ErrorAs(t, err, &vErr)
	assert.Contains(t, vErr.Message, "caseId must be formatted like 01-12345.")
	assert.Contains(t, vErr.Message, "TrialDragon is not a recognized role for assignment creation.")
}

func TestCreateAssignmentsMissingBoth(t *testing.T) {
	svc, _ := newTestAssignmentService()

	_, err := svc.CreateAssignments(context.Background(), "", nil, "")

	var vErr *ValidationError
	require.ErrorAs(t, err, &vErr)
	assert.Contains(t, vErr.Message, "required parameter(s) missing: caseId, role.")
}

func TestCreateAssignmentsEmptyAssigneeList(t *testing.T) {
	svc, repo := newTestAssignmentService()

	result, err := svc.CreateAssignments(context.Background(), "081-23-12345", nil, "TrialAttorney")
	require.NoError(t, err)
	assert.Equal(t, 0, result.Count)
	assert.Empty(t, result.AssignmentIDs)

	n, err := repo.CountLive(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 0, n)
}

func TestGetAssignmentsReturnsLiveRows(t *testing.T) {
	svc, _ := newTestAssignmentService()
	ctx := context.Background()

	_, err := svc.CreateAssignments(ctx, "081-23-12345",
		[]AssigneeRef{{ID: "jane-1", Name: "Jane"}, {ID: "tom-1", Name: "Tom"}}, "TrialAttorney")
	require.NoError(t, err)

	got, err := svc.GetAssignments(ctx, "081-23-12345")
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "Jane", got[0].AssigneeName)
	assert.Equal(t, "Tom", got[1].AssigneeName)
	assert.Equal(t, assignment.RoleTrialAttorney, got[0].Role)
}

func TestGetAssignmentNotFoundWraps(t *testing.T) {
	svc, _ := newTestAssignmentService()

	_, err := svc.GetAssignment(context.Background(), "no-such-id")
	assert.ErrorIs(t, err, database.ErrAssignmentNotFound)
}
