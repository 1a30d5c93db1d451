package loader

import (
	"bufio"
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
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

type TableSummary struct {
	Table   string
	Columns []string
	Types   []ColumnType
	Rows    int
}

// Load loads every CSV file in dir into the instance, one table per file,
// strictly one file at a time in name order.
func Load(ins store.Instance, dir string) ([]TableSummary, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, errors.Trace(err)
	}
	var files []string
	for _, e := range entries {
		if e.IsDir() || !strings.EqualFold(filepath.Ext(e.Name()), ".csv") {
			continue
		}
		files = append(files, filepath.Join(dir, e.Name()))
	}
	if len(files) == 0 {
		return nil, errors.Errorf("no CSV files found in %v", dir)
	}
	summaries := make([]TableSummary, 0, len(files))
	for _, f := range files {
		sum, err := LoadFile(ins, f)
		if err != nil {
			return nil, err
		}
		fmt.Printf("[%s] loaded %v rows into table %v.\n", logTime(), sum.Rows, sum.Table)
		summaries = append(summaries, sum)
	}
	return summaries, nil
}

// LoadFile loads one CSV file into a table named after the file. The
// first record is the header; all rows are inserted in a single
// transaction committed at the end of the file.
func LoadFile(ins store.Instance, path string) (TableSummary, error) {
	f, err := os.Open(path)
	if err != nil {
		return TableSummary{}, errors.Trace(err)
	}
	defer f.Close()

	br := bufio.NewReader(f)
	if bom, err := br.Peek(3); err == nil && bom[0] == 0xEF && bom[1] == 0xBB && bom[2] == 0xBF {
		br.Discard(3)
	}
	records, err := csv.NewReader(br).ReadAll()
	if err != nil {
		return TableSummary{}, errors.Errorf("read %v: %v", path, err)
	}
	if len(records) == 0 {
		return TableSummary{}, errors.Errorf("%v: no header row", path)
	}
	header, rows := records[0], records[1:]

	cols, err := sanitizeHeader(header)
	if err != nil {
		return TableSummary{}, errors.Errorf("%v: %v", path, err)
	}
	table := tableName(path)
	types := InferColumnTypes(cols, rows)

	if err := createTable(ins, table, cols, types); err != nil {
		return TableSummary{}, err
	}
	if err := insertRows(ins, table, cols, types, rows); err != nil {
		return TableSummary{}, errors.Errorf("%v: %v", path, err)
	}
	return TableSummary{Table: table, Columns: cols, Types: types, Rows: len(rows)}, nil
}

func tableName(path string) string {
	base := filepath.Base(path)
	return sanitizeIdent(strings.TrimSuffix(base, filepath.Ext(base)))
}

func createTable(ins store.Instance, table string, cols []string, types []ColumnType) error {
	engine := ins.Engine()
	defs := make([]string, len(cols))
	for i, col := range cols {
		defs[i] = fmt.Sprintf("%v %v", store.Quote(engine, col), types[i].DDL(engine))
	}
	create := fmt.Sprintf("CREATE TABLE IF NOT EXISTS %v (%v)", store.Quote(engine, table), strings.Join(defs, ", "))
	if err := ins.Exec(create); err != nil {
		return err
	}
	// reloading the same directory stays idempotent
	return ins.Exec("DELETE FROM " + store.Quote(engine, table))
}

func insertRows(ins store.Instance, table string, cols []string, types []ColumnType, rows [][]string) error {
	engine := ins.Engine()
	quoted := make([]string, len(cols))
	marks := make([]string, len(cols))
	for i, col := range cols {
		quoted[i] = store.Quote(engine, col)
		marks[i] = "?"
	}
	insert := fmt.Sprintf("INSERT INTO %v (%v) VALUES (%v)",
		store.Quote(engine, table), strings.Join(quoted, ", "), strings.Join(marks, ", "))

	tx, err := ins.DB().Begin()
	if err != nil {
		return errors.Trace(err)
	}
	stmt, err := tx.Prepare(insert)
	if err != nil {
		tx.Rollback()
		return errors.Trace(err)
	}
	defer stmt.Close()

	args := make([]interface{}, len(cols))
	for rowIdx, row := range rows {
		for i := range row {
			args[i], err = parseValue(types[i], row[i])
			if err != nil {
				tx.Rollback()
				return errors.Errorf("row %v column %v: %v", rowIdx+2, cols[i], err)
			}
		}
		if _, err := stmt.Exec(args...); err != nil {
			tx.Rollback()
			return errors.Errorf("row %v: %v", rowIdx+2, err)
		}
	}
	return errors.Trace(tx.Commit())
}
