package loader_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/sqlcoach/sqlcoach/loader"
	"github.com/sqlcoach/sqlcoach/store"
)

func newSQLiteInstance(t *testing.T) store.Instance {
	t.Helper()
	ins, err := store.ConnectTo(store.Option{
		Engine: store.EngineSQLite,
		Path:   filepath.Join(t.TempDir(), "test.db"),
		Label:  "test",
	})
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { ins.Close() })
	return ins
}

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	p := filepath.Join(dir, name)
	if err := os.WriteFile(p, []byte(content), 0666); err != nil {
		t.Fatal(err)
	}
	return p
}

func TestLoadFile(t *testing.T) {
	ins := newSQLiteInstance(t)
	dir := t.TempDir()
	p := writeFile(t, dir, "products.csv",
		"\xEF\xBB\xBFproduct_id,name,price,created_at\n"+
			"1,pen,2.50,2024-01-02 10:00:00\n"+
			"2,notebook,5,2024-02-03 11:30:00\n"+
			"3,,1.25,2024-03-04 09:15:00\n")

	sum, err := loader.LoadFile(ins, p)
	if err != nil {
		t.Fatal(err)
	}
	if sum.Table != "products" || sum.Rows != 3 {
		t.Fatalf("unexpected summary %+v", sum)
	}
	wantCols := []string{"product_id", "name", "price", "created_at"}
	for i, c := range wantCols {
		if sum.Columns[i] != c {
			t.Fatalf("unexpected columns %v", sum.Columns)
		}
	}
	wantTypes := []loader.ColumnType{loader.TypeInt, loader.TypeText, loader.TypeReal, loader.TypeTime}
	for i, tp := range wantTypes {
		if sum.Types[i] != tp {
			t.Fatalf("unexpected types %v", sum.Types)
		}
	}

	_, rows, err := store.QueryGrid(ins, "SELECT count(*) FROM products")
	if err != nil {
		t.Fatal(err)
	}
	if rows[0][0] != "3" {
		t.Fatalf("unexpected row count %v", rows[0][0])
	}
	// the empty name field loads as NULL
	_, rows, err = store.QueryGrid(ins, "SELECT count(*) FROM products WHERE name IS NULL")
	if err != nil {
		t.Fatal(err)
	}
	if rows[0][0] != "1" {
		t.Fatalf("expected one NULL name, got %v", rows[0][0])
	}
}

func TestLoadIdempotent(t *testing.T) {
	ins := newSQLiteInstance(t)
	dir := t.TempDir()
	writeFile(t, dir, "a.csv", "x,y\n1,2\n3,4\n")
	writeFile(t, dir, "b.csv", "z\nhello\n")

	for i := 0; i < 2; i++ {
		sums, err := loader.Load(ins, dir)
		if err != nil {
			t.Fatal(err)
		}
		if len(sums) != 2 || sums[0].Table != "a" || sums[1].Table != "b" {
			t.Fatalf("unexpected summaries %+v", sums)
		}
	}
	_, rows, err := store.QueryGrid(ins, "SELECT count(*) FROM a")
	if err != nil {
		t.Fatal(err)
	}
	if rows[0][0] != "2" {
		t.Fatalf("reload not idempotent: %v rows", rows[0][0])
	}
}

func TestLoadFileHeaderOnly(t *testing.T) {
	ins := newSQLiteInstance(t)
	p := writeFile(t, t.TempDir(), "empty.csv", "a,b\n")
	sum, err := loader.LoadFile(ins, p)
	if err != nil {
		t.Fatal(err)
	}
	if sum.Rows != 0 {
		t.Fatalf("unexpected rows %v", sum.Rows)
	}
	_, rows, err := store.QueryGrid(ins, "SELECT count(*) FROM empty")
	if err != nil {
		t.Fatal(err)
	}
	if rows[0][0] != "0" {
		t.Fatal("table should exist and be empty")
	}
}

func TestLoadFileErrors(t *testing.T) {
	ins := newSQLiteInstance(t)
	dir := t.TempDir()

	ragged := writeFile(t, dir, "ragged.csv", "a,b\n1,2\n3\n")
	if _, err := loader.LoadFile(ins, ragged); err == nil {
		t.Fatal("expected error for ragged row")
	}
	empty := writeFile(t, dir, "no_header.csv", "")
	if _, err := loader.LoadFile(ins, empty); err == nil {
		t.Fatal("expected error for empty file")
	}
	dup := writeFile(t, dir, "dup.csv", "a,a\n1,2\n")
	if _, err := loader.LoadFile(ins, dup); err == nil {
		t.Fatal("expected error for duplicated columns")
	}
	if _, err := loader.Load(ins, t.TempDir()); err == nil {
		t.Fatal("expected error for directory without CSV files")
	}
}
