package bench_test

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/sqlcoach/sqlcoach/bench"
	"github.com/sqlcoach/sqlcoach/datagen"
	"github.com/sqlcoach/sqlcoach/loader"
	"github.com/sqlcoach/sqlcoach/store"
)

func TestRunBench(t *testing.T) {
	dataDir := t.TempDir()
	if err := datagen.Generate("shop", "customers=15,products=8,orders=30,seed=5", dataDir); err != nil {
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

	conf := fmt.Sprintf(`
[[instances]]
path = %q
label = "local"

[[lessons]]
name = "aggregation"

[[lessons]]
name = "joins"
`, dbPath)
	confPath := filepath.Join(t.TempDir(), "lesson.toml")
	if err := os.WriteFile(confPath, []byte(conf), 0666); err != nil {
		t.Fatal(err)
	}

	outDir := t.TempDir()
	if err := bench.RunBench(confPath, outDir, 3, 2); err != nil {
		t.Fatal(err)
	}
	report, err := os.ReadFile(filepath.Join(outDir, "bench.md"))
	if err != nil {
		t.Fatal(err)
	}
	for _, want := range []string{"aggregation", "joins", "local"} {
		if !strings.Contains(string(report), want) {
			t.Fatalf("report misses %v", want)
		}
	}
	if _, err := os.Stat(filepath.Join(outDir, "bench.json")); err != nil {
		t.Fatal(err)
	}
	if _, err := os.Stat(filepath.Join(outDir, "bench-latency.png")); err != nil {
		t.Fatal(err)
	}
}

func TestRunBenchInvalidArgs(t *testing.T) {
	confPath := filepath.Join(t.TempDir(), "lesson.toml")
	conf := `
[[instances]]
path = "x.db"

[[lessons]]
name = "joins"
`
	if err := os.WriteFile(confPath, []byte(conf), 0666); err != nil {
		t.Fatal(err)
	}
	if err := bench.RunBench(confPath, t.TempDir(), 0, 2); err == nil {
		t.Fatal("expected error for n=0")
	}
}
