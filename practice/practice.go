package practice

import (
	"fmt"
	"math/rand"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/pingcap/errors"
	"github.com/sqlcoach/sqlcoach/store"
)

func logTime() string {
	str, err := time.Now().MarshalText()
	if err != nil {
		panic(err)
	}
	return string(str)
}

const sampleSize = 50

// RunPracticeGen inspects a loaded table and writes n randomized practice
// SELECT statements to outFile.
func RunPracticeGen(opt store.Option, tableName string, n uint, outFile string) error {
	if n == 0 {
		return errors.New("no queries requested")
	}
	ins, err := store.ConnectTo(opt)
	if err != nil {
		return err
	}
	defer ins.Close()

	tbl, err := describeTable(ins, tableName)
	if err != nil {
		return err
	}
	fmt.Printf("[%s] table %v: %d columns, %d rows.\n", logTime(), tbl.Name, len(tbl.Cols), tbl.RowCount)
	if tbl.RowCount == 0 {
		return errors.Errorf("table %v is empty", tbl.Name)
	}
	if err := sampleValues(ins, tbl); err != nil {
		return err
	}

	patterns := buildPatterns(tbl)
	if len(patterns) == 0 {
		return errors.Errorf("no usable columns in table %v", tbl.Name)
	}

	file, err := os.Create(outFile)
	if err != nil {
		return errors.Trace(err)
	}
	defer func() {
		if err := file.Close(); err != nil {
			panic(err)
		}
	}()
	r := rand.New(rand.NewSource(time.Now().Unix()))
	quotedTable := store.Quote(ins.Engine(), tbl.Name)
	dedupMap := make(map[string]struct{})
	misses := 0
	for i := 0; i < int(n); {
		pt := patterns[r.Intn(len(patterns))]
		expr := pt.generate(r)
		if _, ok := dedupMap[expr]; ok {
			// tiny tables run out of distinct predicates quickly
			misses++
			if misses > int(n)*100 {
				break
			}
			continue
		}
		dedupMap[expr] = struct{}{}
		sql := "SELECT * FROM " + quotedTable + " WHERE " + expr + ";\n"
		if _, err := file.WriteString(sql); err != nil {
			return errors.Trace(err)
		}
		i++
	}
	fmt.Printf("[%s] %d practice queries written to %v.\n", logTime(), len(dedupMap), outFile)
	return nil
}

// describeTable reads column names and types from the engine catalog and
// fills per-column min/max/NDV plus the table row count.
func describeTable(ins store.Instance, tableName string) (*table, error) {
	var cols []*column
	switch ins.Engine() {
	case store.EngineMySQL:
		q := fmt.Sprintf("SELECT COLUMN_NAME, DATA_TYPE FROM information_schema.columns"+
			" WHERE table_schema = DATABASE() AND table_name = '%v' ORDER BY ordinal_position", tableName)
		_, grid, err := store.QueryGrid(ins, q)
		if err != nil {
			return nil, err
		}
		for _, row := range grid {
			cols = append(cols, &column{Name: row[0], Kind: kindOf(row[1])})
		}
	default:
		q := fmt.Sprintf("PRAGMA table_info(%v)", store.Quote(ins.Engine(), tableName))
		_, grid, err := store.QueryGrid(ins, q)
		if err != nil {
			return nil, err
		}
		for _, row := range grid {
			// cid, name, type, notnull, dflt_value, pk
			cols = append(cols, &column{Name: row[1], Kind: kindOf(row[2])})
		}
	}
	if len(cols) == 0 {
		return nil, errors.Errorf("unknown table %v", tableName)
	}

	tbl := &table{Name: tableName, Cols: cols}
	quoted := store.Quote(ins.Engine(), tableName)
	var parts []string
	for _, col := range cols {
		c := store.Quote(ins.Engine(), col.Name)
		parts = append(parts, fmt.Sprintf("max(%v), min(%v), count(distinct %v)", c, c, c))
	}
	q := fmt.Sprintf("SELECT %v, count(*) FROM %v", strings.Join(parts, ", "), quoted)
	_, grid, err := store.QueryGrid(ins, q)
	if err != nil {
		return nil, err
	}
	result := grid[0]
	for i, col := range cols {
		col.Max = renderValue(col.Kind, result[3*i+0])
		col.Min = renderValue(col.Kind, result[3*i+1])
		ndv, err := strconv.ParseUint(result[3*i+2], 10, 64)
		if err != nil {
			return nil, errors.Trace(err)
		}
		col.NDV = uint(ndv)
	}
	rowCount, err := strconv.ParseUint(result[len(result)-1], 10, 64)
	if err != nil {
		return nil, errors.Trace(err)
	}
	tbl.RowCount = uint(rowCount)
	return tbl, nil
}

func sampleValues(ins store.Instance, tbl *table) error {
	quoted := store.Quote(ins.Engine(), tbl.Name)
	randFn := store.RandFunc(ins.Engine())
	for _, col := range tbl.Cols {
		c := store.Quote(ins.Engine(), col.Name)
		q := fmt.Sprintf("SELECT %v FROM %v WHERE %v IS NOT NULL ORDER BY %v LIMIT %v",
			c, quoted, c, randFn, sampleSize)
		_, grid, err := store.QueryGrid(ins, q)
		if err != nil {
			return err
		}
		for _, row := range grid {
			col.RandVals = append(col.RandVals, renderValue(col.Kind, row[0]))
		}

		q = fmt.Sprintf("SELECT %v FROM (SELECT DISTINCT %v AS %v FROM %v WHERE %v IS NOT NULL) d ORDER BY %v LIMIT %v",
			c, c, c, quoted, c, randFn, sampleSize)
		_, grid, err = store.QueryGrid(ins, q)
		if err != nil {
			return err
		}
		for _, row := range grid {
			col.RandDistinctVals = append(col.RandDistinctVals, renderValue(col.Kind, row[0]))
		}
	}
	return nil
}

// renderValue turns a grid value into a SQL literal for the column kind.
func renderValue(k colKind, raw string) string {
	if raw == "NULL" {
		return "NULL"
	}
	if k == kindNumeric {
		return raw
	}
	if len(raw) > 20 {
		raw = raw[:21]
	}
	return "'" + strings.ReplaceAll(raw, "'", "''") + "'"
}
