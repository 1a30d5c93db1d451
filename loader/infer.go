package loader

import (
	"strconv"
	"strings"
	"time"
	"unicode"

	"github.com/pingcap/errors"
)

type ColumnType int

const (
	TypeInt ColumnType = iota
	TypeReal
	TypeTime
	TypeText
)

var typeNameMap = map[ColumnType]string{
	TypeInt:  "int",
	TypeReal: "real",
	TypeTime: "time",
	TypeText: "text",
}

func (t ColumnType) String() string {
	return typeNameMap[t]
}

// DDL returns the column type name for the given engine.
func (t ColumnType) DDL(engine string) string {
	mysql := engine == "mysql"
	switch t {
	case TypeInt:
		if mysql {
			return "BIGINT"
		}
		return "INTEGER"
	case TypeReal:
		if mysql {
			return "DOUBLE"
		}
		return "REAL"
	case TypeTime:
		if mysql {
			return "DATETIME"
		}
		return "TIMESTAMP"
	default:
		return "TEXT"
	}
}

const (
	timeLayout = "2006-01-02 15:04:05"
	dateLayout = "2006-01-02"
)

// InferColumnTypes picks the narrowest type every non-empty value of a
// column fits: int, then real, then time, then text. A column with no
// non-empty values is text.
func InferColumnTypes(cols []string, rows [][]string) []ColumnType {
	types := make([]ColumnType, len(cols))
	for c := range cols {
		types[c] = inferColumn(rows, c)
	}
	return types
}

func inferColumn(rows [][]string, c int) ColumnType {
	canInt, canReal, canTime := true, true, true
	seen := false
	for _, row := range rows {
		v := row[c]
		if v == "" {
			continue
		}
		seen = true
		if canInt {
			if _, err := strconv.ParseInt(v, 10, 64); err != nil {
				canInt = false
			}
		}
		if canReal && !canInt {
			if _, err := strconv.ParseFloat(v, 64); err != nil {
				canReal = false
			}
		}
		if canTime && !isTime(v) {
			canTime = false
		}
		if !canInt && !canReal && !canTime {
			break
		}
	}
	switch {
	case !seen:
		return TypeText
	case canInt:
		return TypeInt
	case canReal:
		return TypeReal
	case canTime:
		return TypeTime
	default:
		return TypeText
	}
}

func isTime(v string) bool {
	if _, err := time.Parse(timeLayout, v); err == nil {
		return true
	}
	_, err := time.Parse(dateLayout, v)
	return err == nil
}

// parseValue converts a CSV field into a driver argument. Empty fields
// load as NULL.
func parseValue(t ColumnType, v string) (interface{}, error) {
	if v == "" {
		return nil, nil
	}
	switch t {
	case TypeInt:
		n, err := strconv.ParseInt(v, 10, 64)
		return n, errors.Trace(err)
	case TypeReal:
		f, err := strconv.ParseFloat(v, 64)
		return f, errors.Trace(err)
	default:
		return v, nil
	}
}

func sanitizeHeader(header []string) ([]string, error) {
	cols := make([]string, len(header))
	dedup := make(map[string]struct{}, len(header))
	for i, h := range header {
		name := sanitizeIdent(h)
		if name == "" {
			return nil, errors.Errorf("column %v has no usable name", i+1)
		}
		if _, ok := dedup[name]; ok {
			return nil, errors.Errorf("duplicated column %v", name)
		}
		dedup[name] = struct{}{}
		cols[i] = name
	}
	return cols, nil
}

func sanitizeIdent(name string) string {
	name = strings.TrimSpace(strings.TrimPrefix(name, "\xEF\xBB\xBF"))
	var b strings.Builder
	for _, r := range name {
		switch {
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			b.WriteRune(unicode.ToLower(r))
		case r == '_' || r == ' ' || r == '-':
			b.WriteByte('_')
		}
	}
	s := b.String()
	if s == "" {
		return s
	}
	if unicode.IsDigit(rune(s[0])) {
		s = "c" + s
	}
	return s
}
