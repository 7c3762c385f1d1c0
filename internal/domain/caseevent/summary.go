package caseevent

import "time"

// Kind classifies a dated case-lifecycle event recovered from the legacy
// transaction history.
type Kind string

const (
	KindClosed    Kind = "CLOSED"
	KindDismissed Kind = "DISMISSED"
	KindReopened  Kind = "REOPENED"
)

// DateFact is one decoded lifecycle event for a case.
type DateFact struct {
	Kind Kind
	Date time.Time // calendar date at UTC midnight, no time component
}

// Summary is the per-case lifecycle view derived from a case's decoded
// transaction history. A nil date means the case has never had an event of
// that kind; there is no epoch placeholder.
type Summary struct {
	CaseID          string     `json:"caseId"`
	ClosedDate      *time.Time `json:"closedDate,omitempty"`
	DismissedDate   *time.Time `json:"dismissedDate,omitempty"`
	ReopenedDate    *time.Time `json:"reopenedDate,omitempty"`
	DebtorTypeLabel string     `json:"debtorTypeLabel,omitempty"`
	PetitionLabel   string     `json:"petitionLabel,omitempty"`
}

// Summarize folds a case's date facts into a Summary, keeping the most recent
// date per kind. Comparison is strictly-after, so when two facts of the same
// kind carry the same date the first one in retrieval order wins.
func Summarize(caseID string, facts []DateFact, debtorTypeLabel, petitionLabel string) Summary {
	s := Summary{
		CaseID:          caseID,
		DebtorTypeLabel: debtorTypeLabel,
		PetitionLabel:   petitionLabel,
	}
	for _, f := range facts {
		var slot **time.Time
		switch f.Kind {
		case KindClosed:
			slot = &s.ClosedDate
		case KindDismissed:
			slot = &s.DismissedDate
		case KindReopened:
			slot = &s.ReopenedDate
		default:
			continue
		}
		if *slot == nil || f.Date.After(**slot) {
			d := f.Date
			*slot = &d
		}
	}
	return s
}
