package datagen

import (
	"encoding/csv"
	"math"
	"math/rand"
	"os"
	"strconv"
	"strings"
	"time"
)

const timeLayout = "2006-01-02 15:04:05"

var (
	dateFrom = time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC)
	dateTo   = time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
)

func randomDateTime(r *rand.Rand) string {
	span := dateTo.Unix() - dateFrom.Unix()
	return time.Unix(dateFrom.Unix()+r.Int63n(span), 0).UTC().Format(timeLayout)
}

func pick(r *rand.Rand, xs []string) string {
	return xs[r.Intn(len(xs))]
}

func lower(s string) string {
	return strings.ToLower(s)
}

func money(v float64) float64 {
	return math.Round(v*100) / 100
}

func formatMoney(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}

func writeCSV(file string, header []string, rows [][]string) error {
	f, err := os.OpenFile(file, os.O_CREATE|os.O_RDWR|os.O_TRUNC, 0666)
	if err != nil {
		return err
	}
	defer f.Close()

	// Write UTF-8 BOM so spreadsheet tools open the files cleanly
	if _, err := f.WriteString("\xEF\xBB\xBF"); err != nil {
		return err
	}
	w := csv.NewWriter(f)
	if err := w.Write(header); err != nil {
		return err
	}
	for _, row := range rows {
		if err := w.Write(row); err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
}
