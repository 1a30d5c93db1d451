package store

import (
	"fmt"
	"strconv"
	"time"

	"github.com/pingcap/errors"
)

// QueryGrid runs a query and returns every value rendered as a string,
// with NULL mapped to "NULL".
func QueryGrid(ins Instance, query string) (cols []string, grid [][]string, re error) {
	rows, err := ins.Query(query)
	if err != nil {
		return nil, nil, errors.Trace(err)
	}
	defer func() {
		if err := rows.Close(); err != nil && re == nil {
			re = err
		}
	}()

	cols, err = rows.Columns()
	if err != nil {
		return nil, nil, errors.Trace(err)
	}
	nCols := len(cols)
	for rows.Next() {
		vals := make([]interface{}, nCols)
		args := make([]interface{}, nCols)
		for i := range vals {
			args[i] = &vals[i]
		}
		if err := rows.Scan(args...); err != nil {
			return nil, nil, errors.Trace(err)
		}
		rec := make([]string, nCols)
		for i := range vals {
			rec[i] = FormatValue(vals[i])
		}
		grid = append(grid, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, nil, errors.Trace(err)
	}
	return cols, grid, nil
}

// FormatValue renders a single scanned value.
func FormatValue(v interface{}) string {
	switch x := v.(type) {
	case nil:
		return "NULL"
	case []byte:
		return string(x)
	case string:
		return x
	case int64:
		return strconv.FormatInt(x, 10)
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(x)
	case time.Time:
		return x.Format("2006-01-02 15:04:05")
	default:
		return fmt.Sprintf("%v", x)
	}
}
