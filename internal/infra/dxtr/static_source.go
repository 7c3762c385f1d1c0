package dxtr

import (
	"context"

	"cams/internal/domain/legacy"
)

// StaticSource serves a fixed transaction history from memory, for tests and
// local runs without the replicated table.
type StaticSource struct {
	byCase map[string][]legacy.TransactionRecord
}

func NewStaticSource(records []legacy.TransactionRecord) *StaticSource {
	s := &StaticSource{byCase: make(map[string][]legacy.TransactionRecord)}
	for _, rec := range records {
		s.byCase[rec.CaseID] = append(s.byCase[rec.CaseID], rec)
	}
	return s
}

func (s *StaticSource) ListTransactions(ctx context.Context, caseID string) ([]legacy.TransactionRecord, error) {
	recs := s.byCase[caseID]
	out := make([]legacy.TransactionRecord, len(recs))
	copy(out, recs)
	return out, nil
}
