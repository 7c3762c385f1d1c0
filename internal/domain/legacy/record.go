package legacy

import (
	"context"
	"fmt"

	"cams/internal/domain/caseevent"
)

// TransactionRecord is one row of the fixed-width transaction history exported
// by the legacy mainframe case system. RawText is positional: every fact lives
// at a known byte offset described by the field map below.
type TransactionRecord struct {
	CaseID  string
	Code    string // transaction code, e.g. CBC
	RawText string
}

// Source fetches the transaction history for a case. The concrete
// implementation (SQL gateway, test fixture) lives in infra; the rest of the
// code only depends on this interface. Records are delivered in the upstream
// system's stable retrieval order.
type Source interface {
	ListTransactions(ctx context.Context, caseID string) ([]TransactionRecord, error)
}

// Field describes one positional window inside RawText.
type Field struct {
	Name   string
	Offset int
	Length int
}

// The record layout, declared once. Adding a new fact to the format means
// adding an entry here, not new slicing code.
var (
	fieldEventDate  = Field{Name: "eventDate", Offset: 19, Length: 6}
	fieldDebtorType = Field{Name: "debtorType", Offset: 33, Length: 2}
)

func (f Field) window(raw string) (string, error) {
	if len(raw) < f.Offset+f.Length {
		return "", &MalformedRecordError{
			Field:  f.Name,
			Reason: fmt.Sprintf("record is %d bytes, field needs bytes %d..%d", len(raw), f.Offset, f.Offset+f.Length-1),
		}
	}
	return raw[f.Offset : f.Offset+f.Length], nil
}

// eventKinds maps the transaction codes that carry a lifecycle date to the
// event kind they encode. Codes outside this set carry no date fact.
var eventKinds = map[string]caseevent.Kind{
	"CBC": caseevent.KindClosed,
	"CDC": caseevent.KindDismissed,
	"OCO": caseevent.KindReopened,
}

// EventKind reports the lifecycle kind encoded by a transaction code, if any.
func EventKind(code string) (caseevent.Kind, bool) {
	kind, ok := eventKinds[code]
	return kind, ok
}
