package datagen_test

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/sqlcoach/sqlcoach/datagen"
)

func readCSV(t *testing.T, path string) [][]string {
	t.Helper()
	content, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	records, err := csv.NewReader(strings.NewReader(strings.TrimPrefix(string(content), "\xEF\xBB\xBF"))).ReadAll()
	if err != nil {
		t.Fatal(err)
	}
	return records
}

func TestGenerateUnknownDataset(t *testing.T) {
	if err := datagen.Generate("nope", "", t.TempDir()); err == nil {
		t.Fatal("expected error")
	}
}

func TestGenerateBadArgs(t *testing.T) {
	if err := datagen.Generate("shop", "customers", t.TempDir()); err == nil {
		t.Fatal("expected error for malformed args")
	}
	if err := datagen.Generate("shop", "warehouses=3", t.TempDir()); err == nil {
		t.Fatal("expected error for unknown arg")
	}
}

func TestGenShopData(t *testing.T) {
	dir := t.TempDir()
	if err := datagen.Generate("shop", "customers=25,products=10,orders=40,seed=7", dir); err != nil {
		t.Fatal(err)
	}

	customers := readCSV(t, filepath.Join(dir, "customers.csv"))
	if len(customers) != 26 {
		t.Fatalf("expected 25 customers + header, got %d records", len(customers))
	}
	if strings.Join(customers[0], ",") != "customer_id,name,email,city,created_at" {
		t.Fatalf("unexpected header %v", customers[0])
	}

	products := readCSV(t, filepath.Join(dir, "products.csv"))
	if len(products) != 11 {
		t.Fatalf("expected 10 products + header, got %d records", len(products))
	}
	productIDs := make(map[string]struct{})
	for _, row := range products[1:] {
		productIDs[row[0]] = struct{}{}
	}

	orders := readCSV(t, filepath.Join(dir, "orders.csv"))
	if len(orders) != 41 {
		t.Fatalf("expected 40 orders + header, got %d records", len(orders))
	}
	customerIDs := make(map[string]struct{})
	for _, row := range customers[1:] {
		customerIDs[row[0]] = struct{}{}
	}
	orderIDs := make(map[string]struct{})
	for _, row := range orders[1:] {
		orderIDs[row[0]] = struct{}{}
		if _, ok := customerIDs[row[1]]; !ok {
			t.Fatalf("order %v references unknown customer %v", row[0], row[1])
		}
	}

	items := readCSV(t, filepath.Join(dir, "order_items.csv"))
	if len(items) < 41 {
		t.Fatalf("expected at least one item per order, got %d records", len(items))
	}
	for _, row := range items[1:] {
		if _, ok := orderIDs[row[1]]; !ok {
			t.Fatalf("item %v references unknown order %v", row[0], row[1])
		}
		if _, ok := productIDs[row[2]]; !ok {
			t.Fatalf("item %v references unknown product %v", row[0], row[2])
		}
	}
}

func TestGenShopDataDeterministic(t *testing.T) {
	dir1, dir2 := t.TempDir(), t.TempDir()
	if err := datagen.Generate("shop", "customers=10,products=5,orders=20,seed=42", dir1); err != nil {
		t.Fatal(err)
	}
	if err := datagen.Generate("shop", "customers=10,products=5,orders=20,seed=42", dir2); err != nil {
		t.Fatal(err)
	}
	for _, name := range []string{"customers.csv", "products.csv", "orders.csv", "order_items.csv"} {
		a, err := os.ReadFile(filepath.Join(dir1, name))
		if err != nil {
			t.Fatal(err)
		}
		b, err := os.ReadFile(filepath.Join(dir2, name))
		if err != nil {
			t.Fatal(err)
		}
		if string(a) != string(b) {
			t.Fatalf("%v differs between runs with the same seed", name)
		}
	}
}
