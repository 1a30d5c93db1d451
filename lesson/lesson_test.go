package lesson_test

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/sqlcoach/sqlcoach/datagen"
	"github.com/sqlcoach/sqlcoach/lesson"
	"github.com/sqlcoach/sqlcoach/loader"
	"github.com/sqlcoach/sqlcoach/store"
)

func TestDecodeOption(t *testing.T) {
	content := `
report-dir = "/tmp/xxx"
max-rows = 5

[[lessons]]
name = "select-all"

[[lessons]]
name = "joins"
label = "revenue"

[[instances]]
engine = "sqlite"
path = "shop.db"
label = "local"
`
	opt, err := lesson.DecodeOption(content)
	if err != nil {
		t.Fatal(err)
	}
	if len(opt.Lessons) != 2 || len(opt.Instances) != 1 ||
		opt.ReportDir != "/tmp/xxx" || opt.MaxRows != 5 {
		t.Fatalf("unexpected option %+v", opt)
	}
	if opt.Instances[0].Engine != store.EngineSQLite || opt.Instances[0].Path != "shop.db" {
		t.Fatalf("unexpected instance %+v", opt.Instances[0])
	}

	lessons, err := lesson.ResolveLessons(opt)
	if err != nil {
		t.Fatal(err)
	}
	if lessons[0].Name != "select-all" || lessons[1].Name != "revenue" {
		t.Fatalf("unexpected lessons %+v", lessons)
	}
	if lessons[1].SQL == "" || lessons[1].Title == "" {
		t.Fatal("builtin lesson not filled")
	}
}

func TestDecodeOptionUnknownLesson(t *testing.T) {
	content := `
[[lessons]]
name = "no-such-lesson"

[[instances]]
path = "shop.db"
`
	if _, err := lesson.DecodeOption(content); err == nil {
		t.Fatal("expected error")
	}
}

func TestResolveLessonFile(t *testing.T) {
	dir := t.TempDir()
	p := filepath.Join(dir, "top_cities.sql")
	content := "-- title: Customers per city\n" +
		"-- note: GROUP BY counts customers for each city.\n" +
		"-- note: ORDER BY puts the biggest city first.\n" +
		"SELECT city, COUNT(*) AS n\nFROM customers\nGROUP BY city\nORDER BY n DESC\n"
	if err := os.WriteFile(p, []byte(content), 0666); err != nil {
		t.Fatal(err)
	}

	opt := lesson.Option{Lessons: []lesson.LessonOpt{{File: p}}}
	lessons, err := lesson.ResolveLessons(opt)
	if err != nil {
		t.Fatal(err)
	}
	l := lessons[0]
	if l.Name != "top_cities" || l.Title != "Customers per city" {
		t.Fatalf("unexpected lesson %+v", l)
	}
	if !strings.Contains(l.Note, "GROUP BY") || !strings.Contains(l.Note, "biggest city") {
		t.Fatalf("notes not merged: %v", l.Note)
	}
	if !strings.HasPrefix(l.SQL, "SELECT city") || strings.Contains(l.SQL, "-- title") {
		t.Fatalf("unexpected SQL %v", l.SQL)
	}
}

func TestCurriculum(t *testing.T) {
	lessons := lesson.Curriculum()
	if len(lessons) == 0 {
		t.Fatal("empty curriculum")
	}
	for _, l := range lessons {
		if l.Name == "" || l.Title == "" || l.SQL == "" {
			t.Fatalf("incomplete lesson %+v", l)
		}
	}
	if lessons[0].Name != "select-all" {
		t.Fatalf("unexpected first lesson %v", lessons[0].Name)
	}
}

// TestRunLessonsWithConfig drives the whole flow: generate the shop
// dataset, load it into sqlite, run the built-in curriculum, check the
// report.
func TestRunLessonsWithConfig(t *testing.T) {
	dataDir := t.TempDir()
	if err := datagen.Generate("shop", "customers=30,products=20,orders=100,seed=1", dataDir); err != nil {
		t.Fatal(err)
	}
	dbPath := filepath.Join(t.TempDir(), "shop.db")
	ins, err := store.ConnectTo(store.Option{Path: dbPath})
	if err != nil {
		t.Fatal(err)
	}
	if _, err := loader.Load(ins, dataDir); err != nil {
		t.Fatal(err)
	}
	ins.Close()

	reportDir := t.TempDir()
	conf := fmt.Sprintf(`
report-dir = %q

[[instances]]
path = %q
label = "local"
`, reportDir, dbPath)
	for _, l := range lesson.Curriculum() {
		conf += fmt.Sprintf("\n[[lessons]]\nname = %q\n", l.Name)
	}
	confPath := filepath.Join(t.TempDir(), "lesson.toml")
	if err := os.WriteFile(confPath, []byte(conf), 0666); err != nil {
		t.Fatal(err)
	}

	if err := lesson.RunLessonsWithConfig(confPath); err != nil {
		t.Fatal(err)
	}
	report, err := os.ReadFile(filepath.Join(reportDir, "report.md"))
	if err != nil {
		t.Fatal(err)
	}
	for _, l := range lesson.Curriculum() {
		if !strings.Contains(string(report), l.Title) {
			t.Fatalf("report misses lesson %v", l.Name)
		}
	}
	if _, err := os.Stat(filepath.Join(reportDir, "lesson-timings.png")); err != nil {
		t.Fatal(err)
	}
}
