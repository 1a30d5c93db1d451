package lesson_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/sqlcoach/sqlcoach/lesson"
)

func TestDrawTimingBarChart(t *testing.T) {
	dir := t.TempDir()
	xNames := []string{"select-all", "joins", "grouping"}
	insLabels := []string{"sqlite", "mysql"}
	secs := [][]float64{
		{0.001, 0.012, 0.007},
		{0.002, 0.009, 0.011},
	}
	picPath, err := lesson.DrawTimingBarChart(dir, "timings", xNames, insLabels, secs)
	if err != nil {
		t.Fatal(err)
	}
	if filepath.Base(picPath) != "timings.png" {
		t.Fatal(picPath)
	}
	if _, err := os.Stat(picPath); err != nil {
		t.Fatal(err)
	}
}
