package httpapi

import (
	"errors"
	"net/http"

	"cams/internal/app"
	"cams/internal/domain/attorney"
	idb "cams/internal/infra/database"

	"github.com/go-chi/chi/v5"
	json "github.com/goccy/go-json"
	"github.com/sirupsen/logrus"
)

// Server owns the HTTP surface: routing, request decoding, and mapping the
// service error taxonomy onto status codes. All business rules live below it.
type Server struct {
	assignments *app.AssignmentService
	details     *app.CaseDetailService
	attorneys   attorney.Repository
	logger      *logrus.Entry
}

func New(assignments *app.AssignmentService, details *app.CaseDetailService, attorneys attorney.Repository, logger *logrus.Entry) *Server {
	return &Server{
		assignments: assignments,
		details:     details,
		attorneys:   attorneys,
		logger:      logger,
	}
}

func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Get("/healthz", s.handleHealth)
	r.Get("/attorneys", s.handleListAttorneys)
	r.Route("/cases/{caseId}", func(r chi.Router) {
		r.Post("/assignments", s.handleCreateAssignments)
		r.Get("/assignments", s.handleGetAssignments)
		r.Get("/summary", s.handleCaseSummary)
	})
	r.Get("/assignments/{assignmentId}", s.handleGetAssignment)
	return r
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

type createAssignmentsRequest struct {
	Attorneys []app.AssigneeRef `json:"attorneyList"`
	Role      string            `json:"role"`
}

func (s *Server) handleCreateAssignments(w http.ResponseWriter, r *http.Request) {
	caseID := chi.URLParam(r, "caseId")
	reqLogger := s.logger.WithFields(logrus.Fields{
		"handler": "createAssignments",
		"case_id": caseID,
	})

	var req createAssignmentsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		reqLogger.WithError(err).Warn("Malformed request body")
		s.writeError(w, http.StatusBadRequest, "malformed request body")
		return
	}

	result, err := s.assignments.CreateAssignments(r.Context(), caseID, req.Attorneys, req.Role)
	if err != nil {
		var vErr *app.ValidationError
		if errors.As(err, &vErr) {
			reqLogger.WithError(err).Warn("Assignment request rejected")
			s.writeError(w, http.StatusBadRequest, vErr.Message)
			return
		}
		reqLogger.WithError(err).Error("Failed to create assignments")
		s.writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	s.writeJSON(w, http.StatusCreated, result)
}

func (s *Server) handleGetAssignments(w http.ResponseWriter, r *http.Request) {
	caseID := chi.URLParam(r, "caseId")

	assignments, err := s.assignments.GetAssignments(r.Context(), caseID)
	if err != nil {
		s.logger.WithError(err).WithField("case_id", caseID).Error("Failed to list assignments")
		s.writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}
	s.writeJSON(w, http.StatusOK, assignments)
}

func (s *Server) handleGetAssignment(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "assignmentId")

	a, err := s.assignments.GetAssignment(r.Context(), id)
	if err != nil {
		if errors.Is(err, idb.ErrAssignmentNotFound) {
			s.writeError(w, http.StatusNotFound, "assignment not found")
			return
		}
		s.logger.WithError(err).WithField("assignment_id", id).Error("Failed to get assignment")
		s.writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}
	s.writeJSON(w, http.StatusOK, a)
}

func (s *Server) handleCaseSummary(w http.ResponseWriter, r *http.Request) {
	caseID := chi.URLParam(r, "caseId")

	summary, err := s.details.Summary(r.Context(), caseID)
	if err != nil {
		// Decode failures indicate corrupt upstream data, not caller fault;
		// they are server-side errors either way.
		s.logger.WithError(err).WithField("case_id", caseID).Error("Failed to build case summary")
		s.writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}
	s.writeJSON(w, http.StatusOK, summary)
}

func (s *Server) handleListAttorneys(w http.ResponseWriter, r *http.Request) {
	attorneys, err := s.attorneys.List(r.Context())
	if err != nil {
		s.logger.WithError(err).Error("Failed to list attorneys")
		s.writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}
	s.writeJSON(w, http.StatusOK, attorneys)
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		s.logger.WithError(err).Error("Failed to encode response")
	}
}

func (s *Server) writeError(w http.ResponseWriter, status int, message string) {
	s.writeJSON(w, status, map[string]string{"message": message})
}
