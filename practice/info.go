package practice

import "strings"

type table struct {
	Name     string
	Cols     []*column
	RowCount uint
}

type column struct {
	Name             string
	Kind             colKind
	NDV              uint
	Max              string
	Min              string
	RandVals         []string
	RandDistinctVals []string
}

type colKind int

const (
	kindNumeric colKind = iota
	kindTime
	kindText
)

// kindOf maps an engine type name onto the coarse kinds the generator
// cares about: whether values need quoting and whether ranges make sense.
func kindOf(typeName string) colKind {
	tp := strings.ToUpper(typeName)
	for _, s := range []string{"INT", "REAL", "FLOA", "DOUB", "DEC", "NUM"} {
		if strings.Contains(tp, s) {
			return kindNumeric
		}
	}
	for _, s := range []string{"DATE", "TIME"} {
		if strings.Contains(tp, s) {
			return kindTime
		}
	}
	return kindText
}
