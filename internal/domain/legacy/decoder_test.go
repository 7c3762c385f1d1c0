package legacy

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// rawRecord builds a fixed-width record with the given date window at offset
// 19 and debtor-type window at offset 33.
func rawRecord(date, debtor string) string {
	return "1081231234500000000" + date + "00000000" + debtor + "000000000000"
}

func TestDecodeDate(t *testing.T) {
	cases := []struct {
		window string
		want   time.Time
	}{
		{"231115", time.Date(2023, time.November, 15, 0, 0, 0, 0, time.UTC)},
		{"000101", time.Date(2000, time.January, 1, 0, 0, 0, 0, time.UTC)},
		{"991231", time.Date(2099, time.December, 31, 0, 0, 0, 0, time.UTC)},
		{"240229", time.Date(2024, time.February, 29, 0, 0, 0, 0, time.UTC)},
	}
	for _, tc := range cases {
		t.Run(tc.window, func(t *testing.T) {
			got, err := DecodeDate(TransactionRecord{Code: "CBC", RawText: rawRecord(tc.window, "CB")})
			require.NoError(t, err)
			assert.True(t, got.Equal(tc.want), "got %v want %v", got, tc.want)
		})
	}
}

func TestDecodeDateRejectsNonDigits(t *testing.T) {
	// A plain integer parse of windows like these can succeed on a partial
	// prefix, which is exactly the silent corruption the per-character check
	// exists to prevent.
	for _, window := range []string{"2311A5", "F31115", "23111 ", "2311.5"} {
		t.Run(window, func(t *testing.T) {
			_, err := DecodeDate(TransactionRecord{Code: "CBC", RawText: rawRecord(window, "CB")})
			var malformed *MalformedRecordError
			require.ErrorAs(t, err, &malformed)
			assert.Equal(t, "eventDate", malformed.Field)
			assert.Equal(t, window, malformed.Window)
		})
	}
}

func TestDecodeDateRejectsOutOfRangeComponents(t *testing.T) {
	for _, window := range []string{"231345", "231132", "230229"} {
		t.Run(window, func(t *testing.T) {
			_, err := DecodeDate(TransactionRecord{Code: "CBC", RawText: rawRecord(window, "CB")})
			var malformed *MalformedRecordError
			require.ErrorAs(t, err, &malformed)
		})
	}
}

func TestDecodeDateRejectsShortRecord(t *testing.T) {
	_, err := DecodeDate(TransactionRecord{Code: "CBC", RawText: "too short"})
	var malformed *MalformedRecordError
	require.ErrorAs(t, err, &malformed)
}

func TestDecodeDebtorType(t *testing.T) {
	code, err := DecodeDebtorType(TransactionRecord{RawText: rawRecord("231115", "CB")})
	require.NoError(t, err)
	assert.Equal(t, "CB", code)
}

func TestDecodeDebtorTypeUnknownCode(t *testing.T) {
	_, err := DecodeDebtorType(TransactionRecord{RawText: rawRecord("231115", "ZZ")})
	var unknown *UnknownCodeError
	require.ErrorAs(t, err, &unknown)
	assert.Equal(t, "ZZ", unknown.Code)
}

func petitionRecord(code string) string {
	return "1234567890123-12345 23ABCHAPTER-11 " + strings.Repeat("5", 57) + code
}

func TestDecodePetitionType(t *testing.T) {
	code, ok := DecodePetitionType(TransactionRecord{RawText: petitionRecord("VP")})
	require.True(t, ok)
	assert.Equal(t, "VP", code)
}

func TestDecodePetitionTypeNoMatch(t *testing.T) {
	// Most record variants carry no petition information; that is an ordinary
	// result, not an error.
	for _, raw := range []string{rawRecord("231115", "CB"), "", "1234567890123-12345"} {
		_, ok := DecodePetitionType(TransactionRecord{RawText: raw})
		assert.False(t, ok)
	}
}

func TestDecodePetitionTypeRejectsNearMissRecords(t *testing.T) {
	// A longer digit run or trailing bytes after the code must not match:
	// without the tail anchor the capture would land on digits inside the run
	// and a no-petition record would surface as an unknown code downstream.
	nearMisses := []string{
		"1234567890123-12345 23ABCHAPTER-11 " + strings.Repeat("5", 59) + "VP",
		petitionRecord("VP") + "X",
		petitionRecord("VP") + "00",
	}
	for _, raw := range nearMisses {
		_, ok := DecodePetitionType(TransactionRecord{RawText: raw})
		assert.False(t, ok)
	}
}

func TestEventKind(t *testing.T) {
	cases := map[string]struct {
		kind string
		ok   bool
	}{
		"CBC": {"CLOSED", true},
		"CDC": {"DISMISSED", true},
		"OCO": {"REOPENED", true},
		"XYZ": {"", false},
		"":    {"", false},
	}
	for code, want := range cases {
		kind, ok := EventKind(code)
		assert.Equal(t, want.ok, ok, "code %s", code)
		assert.Equal(t, want.kind, string(kind), "code %s", code)
	}
}

func TestMalformedRecordErrorMessage(t *testing.T) {
	err := &MalformedRecordError{Field: "eventDate", Window: "2311A5", Reason: "non-digit character 'A' at position 4"}
	assert.True(t, errors.As(error(err), new(*MalformedRecordError)))
	assert.Contains(t, err.Error(), "eventDate")
	assert.Contains(t, err.Error(), "2311A5")
}
