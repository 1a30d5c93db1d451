package practice

import (
	"math/rand"
	"strings"
)

type pattern struct {
	cols []*colPattern
}

func (p *pattern) generate(r *rand.Rand) string {
	exprs := make([]string, 0, len(p.cols))
	for _, col := range p.cols {
		exprs = append(exprs, "("+col.generate(r)+")")
	}
	return strings.Join(exprs, " and ")
}

type colPattern struct {
	col *column
	tp  exprType
}

func (cp *colPattern) generate(r *rand.Rand) string {
	if cp.tp == equal {
		return cp.generateEqual(r)
	} else if cp.tp == interval {
		return cp.generateInterval(r)
	}
	return ""
}

func (cp *colPattern) generateEqual(r *rand.Rand) string {
	vals := cp.col.RandDistinctVals
	if len(vals) == 0 {
		vals = cp.col.RandVals
	}
	val1 := vals[r.Intn(len(vals))]
	x := r.Float64()
	n := cp.col.Name
	if x < 0.5 {
		return n + " = " + val1
	}
	val2 := vals[r.Intn(len(vals))]
	val3 := vals[r.Intn(len(vals))]
	if x < 0.75 {
		return n + " = " + val1 + " or " + n + " = " + val2 + " or " + n + " = " + val3
	}
	if x < 0.95 {
		return n + " in(" + val1 + "," + val2 + "," + val3 + ")"
	}
	return n + " is null"
}

func (cp *colPattern) generateInterval(r *rand.Rand) string {
	vals := cp.col.RandVals
	val1 := vals[r.Intn(len(vals))]
	x := r.Float64()
	n := cp.col.Name
	if x < 0.05 {
		return n + " > " + cp.col.Max
	}
	if x < 0.1 {
		return n + " > " + cp.col.Min
	}
	if x < 0.15 {
		return n + " < " + cp.col.Max
	}
	if x < 0.2 {
		return n + " < " + cp.col.Min
	}
	if x < 0.4 {
		return n + " < " + val1
	}
	if x < 0.6 {
		return n + " > " + val1
	}
	rIdx1, rIdx2 := r.Intn(len(vals)), r.Intn(len(vals))
	if rIdx1 > rIdx2 {
		rIdx1, rIdx2 = rIdx2, rIdx1
	}
	return n + " > " + vals[rIdx1] + " and " + n + " < " + vals[rIdx2]
}

type exprType int

const (
	invalid exprType = iota
	equal
	interval
)

// buildPatterns derives exercise patterns from the table's columns:
// equality and (for ordered kinds) interval conditions per column, plus a
// combined equality+interval pattern for each adjacent column pair.
func buildPatterns(tbl *table) []*pattern {
	patterns := make([]*pattern, 0, len(tbl.Cols)*2)
	usable := make([]*column, 0, len(tbl.Cols))
	for _, col := range tbl.Cols {
		if len(col.RandVals) == 0 {
			continue
		}
		usable = append(usable, col)
		patterns = append(patterns, &pattern{cols: []*colPattern{{col: col, tp: equal}}})
		if col.Kind != kindText {
			patterns = append(patterns, &pattern{cols: []*colPattern{{col: col, tp: interval}}})
		}
	}
	for i := 1; i < len(usable); i++ {
		second := &colPattern{col: usable[i], tp: equal}
		if usable[i].Kind != kindText {
			second.tp = interval
		}
		patterns = append(patterns, &pattern{cols: []*colPattern{
			{col: usable[i-1], tp: equal},
			second,
		}})
	}
	return patterns
}
