package legacy

import "fmt"

// Code tables for the closed enumerations embedded in legacy records. Both
// maps are package-private and built once; callers only see the lookup
// functions, so the tables stay effectively immutable after init.

var debtorTypeLabels = map[string]string{
	"CB": "Corporate Business",
	"FD": "Foreign Debtor",
	"IB": "Individual Business",
	"IC": "Individual Consumer",
	"JC": "Joint Consumer",
	"MU": "Municipality",
	"PB": "Partnership Business",
}

var petitionTypeLabels = map[string]string{
	"IP": "Involuntary",
	"TI": "Involuntary",
	"TV": "Voluntary",
	"VP": "Voluntary",
}

// UnknownCodeError reports a code that is absent from its lookup table.
type UnknownCodeError struct {
	Table string
	Code  string
}

func (e *UnknownCodeError) Error() string {
	return fmt.Sprintf("unknown %s code %q", e.Table, e.Code)
}

// DebtorTypeLabel resolves a debtor-type code to its human label.
func DebtorTypeLabel(code string) (string, error) {
	label, ok := debtorTypeLabels[code]
	if !ok {
		return "", &UnknownCodeError{Table: "debtorType", Code: code}
	}
	return label, nil
}

// PetitionTypeLabel resolves a petition-type code to its human label. An
// unknown code is an error here just as for debtor types; the "no petition
// information" case is handled before lookup by DecodePetitionType's ok=false
// result and never reaches this table.
func PetitionTypeLabel(code string) (string, error) {
	label, ok := petitionTypeLabels[code]
	if !ok {
		return "", &UnknownCodeError{Table: "petitionType", Code: code}
	}
	return label, nil
}
