package app

import (
	"context"
	"fmt"

	"cams/internal/domain/caseevent"
	"cams/internal/domain/legacy"

	"github.com/sirupsen/logrus"
)

// CaseDetailService recovers the lifecycle view of a case from its legacy
// transaction history: raw fixed-width rows in, decoded and aggregated
// summary out. Decoding is pure and synchronous; the only I/O is the fetch.
type CaseDetailService struct {
	records legacy.Source
	logger  *logrus.Entry
}

func NewCaseDetailService(records legacy.Source, logger *logrus.Entry) *CaseDetailService {
	return &CaseDetailService{records: records, logger: logger}
}

// Summary fetches the case's transactions and folds them into a lifecycle
// summary. Date facts come from records whose transaction code is in the
// known lifecycle set, and the debtor type is read from the first such
// record; only lifecycle records are guaranteed to carry the common layout,
// the petition variant places other data at the debtor window. The petition
// code comes from the first record that matches the petition structure, and
// its absence across all records is an ordinary empty label. Decode and
// lookup errors propagate immediately; reparsing the same malformed bytes
// cannot succeed.
func (s *CaseDetailService) Summary(ctx context.Context, caseID string) (caseevent.Summary, error) {
	recs, err := s.records.ListTransactions(ctx, caseID)
	if err != nil {
		return caseevent.Summary{}, fmt.Errorf("failed to fetch transactions for case %s: %w", caseID, err)
	}
	if len(recs) == 0 {
		s.logger.WithField("case_id", caseID).Debug("No transaction history for case")
		return caseevent.Summary{CaseID: caseID}, nil
	}

	var facts []caseevent.DateFact
	debtorLabel := ""
	for _, rec := range recs {
		kind, ok := legacy.EventKind(rec.Code)
		if !ok {
			continue
		}
		date, err := legacy.DecodeDate(rec)
		if err != nil {
			return caseevent.Summary{}, fmt.Errorf("case %s transaction %s: %w", caseID, rec.Code, err)
		}
		facts = append(facts, caseevent.DateFact{Kind: kind, Date: date})
		if debtorLabel == "" {
			debtorCode, err := legacy.DecodeDebtorType(rec)
			if err != nil {
				return caseevent.Summary{}, fmt.Errorf("case %s: %w", caseID, err)
			}
			debtorLabel, err = legacy.DebtorTypeLabel(debtorCode)
			if err != nil {
				return caseevent.Summary{}, fmt.Errorf("case %s: %w", caseID, err)
			}
		}
	}

	petitionLabel := ""
	for _, rec := range recs {
		code, ok := legacy.DecodePetitionType(rec)
		if !ok {
			continue
		}
		petitionLabel, err = legacy.PetitionTypeLabel(code)
		if err != nil {
			return caseevent.Summary{}, fmt.Errorf("case %s: %w", caseID, err)
		}
		break
	}

	return caseevent.Summarize(caseID, facts, debtorLabel, petitionLabel), nil
}
