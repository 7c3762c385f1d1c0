package legacy

import (
	"fmt"
	"regexp"
	"strconv"
	"time"
)

// MalformedRecordError reports a record whose positional window cannot be
// decoded. It is fatal for that record; re-parsing the same bytes cannot
// succeed, so callers must not catch it and guess.
type MalformedRecordError struct {
	Field  string
	Window string
	Reason string
}

func (e *MalformedRecordError) Error() string {
	if e.Window != "" {
		return fmt.Sprintf("malformed transaction record: field %s window %q: %s", e.Field, e.Window, e.Reason)
	}
	return fmt.Sprintf("malformed transaction record: field %s: %s", e.Field, e.Reason)
}

// DecodeDate extracts the 6-character YYMMDD event date. Every character is
// validated as an ASCII digit before any numeric interpretation: strconv on a
// window containing a stray letter can still succeed on a partial prefix, so
// a whole-window parse alone is not a sufficient check. The source system has
// no records before 2000, so the 2-digit year gets a fixed +2000 offset.
func DecodeDate(rec TransactionRecord) (time.Time, error) {
	window, err := fieldEventDate.window(rec.RawText)
	if err != nil {
		return time.Time{}, err
	}
	for i := 0; i < len(window); i++ {
		if window[i] < '0' || window[i] > '9' {
			return time.Time{}, &MalformedRecordError{
				Field:  fieldEventDate.Name,
				Window: window,
				Reason: fmt.Sprintf("non-digit character %q at position %d", window[i], i),
			}
		}
	}
	yy, _ := strconv.Atoi(window[0:2])
	mm, _ := strconv.Atoi(window[2:4])
	dd, _ := strconv.Atoi(window[4:6])
	d := time.Date(2000+yy, time.Month(mm), dd, 0, 0, 0, 0, time.UTC)
	// time.Date normalizes out-of-range components (month 13 rolls into the
	// next year), which would silently accept garbage; round-trip to reject.
	if int(d.Month()) != mm || d.Day() != dd {
		return time.Time{}, &MalformedRecordError{
			Field:  fieldEventDate.Name,
			Window: window,
			Reason: "month or day out of range",
		}
	}
	return d, nil
}

// DecodeDebtorType extracts the 2-character debtor-type code and verifies it
// against the debtor-type table. A code outside the table is an
// UnknownCodeError; codes are never passed through unvalidated.
func DecodeDebtorType(rec TransactionRecord) (string, error) {
	code, err := fieldDebtorType.window(rec.RawText)
	if err != nil {
		return "", err
	}
	if _, err := DebtorTypeLabel(code); err != nil {
		return "", err
	}
	return code, nil
}

// petitionPattern matches record variants that carry petition information:
// 13 digits, a dash, 5 digits, whitespace, 2 digits, 2 word characters, a run
// of word characters and dashes, whitespace, 57 digits, and the 2-character
// petition code ending the record. Both ends are anchored; a record with
// extra digits in the run would otherwise match with digits captured as the
// code.
var petitionPattern = regexp.MustCompile(`^\d{13}-\d{5}\s+\d{2}\w{2}[\w-]*\s+\d{57}(\w{2})$`)

// DecodePetitionType locates the petition-type code via a structural match
// over the whole record. Many record variants carry no petition information
// at all, so a non-match is an ordinary ok=false result, not an error.
func DecodePetitionType(rec TransactionRecord) (string, bool) {
	m := petitionPattern.FindStringSubmatch(rec.RawText)
	if m == nil {
		return "", false
	}
	return m[1], true
}
