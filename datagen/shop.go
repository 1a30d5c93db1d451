package datagen

import (
	"fmt"
	"math/rand"
	"path"
	"strconv"
	"time"

	"github.com/pingcap/errors"
)

type shopArgs struct {
	customers int
	products  int
	orders    int
	seed      int64
}

func parseShopArgs(kvs map[string]string) (shopArgs, error) {
	a := shopArgs{
		customers: 200,
		products:  50,
		orders:    1000,
		seed:      time.Now().Unix(),
	}
	for k, v := range kvs {
		n, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return a, errors.Errorf("invalid value %v=%v", k, v)
		}
		switch k {
		case "customers":
			a.customers = int(n)
		case "products":
			a.products = int(n)
		case "orders":
			a.orders = int(n)
		case "seed":
			a.seed = n
		default:
			return a, errors.Errorf("unknown argument %v", k)
		}
	}
	if a.customers < 1 || a.products < 1 || a.orders < 0 {
		return a, errors.Errorf("invalid sizes customers=%v products=%v orders=%v", a.customers, a.products, a.orders)
	}
	return a, nil
}

var (
	firstNames = []string{"Ada", "Alan", "Edgar", "Grace", "Donald", "Barbara", "Ken", "Dennis", "Margaret", "Tony", "Leslie", "Frances"}
	lastNames  = []string{"Lovelace", "Turing", "Codd", "Hopper", "Knuth", "Liskov", "Thompson", "Ritchie", "Hamilton", "Hoare", "Lamport", "Allen"}
	cities     = []string{"London", "Berlin", "Lisbon", "Austin", "Toronto", "Osaka", "Oslo", "Prague"}
	adjectives = []string{"Compact", "Deluxe", "Classic", "Portable", "Vintage", "Modern", "Sturdy", "Sleek"}
	nouns      = []string{"Notebook", "Lamp", "Kettle", "Backpack", "Speaker", "Mug", "Puzzle", "Umbrella", "Keyboard", "Blanket"}
	categories = []string{"books", "electronics", "grocery", "toys", "clothing"}
	statuses   = []string{"pending", "shipped", "delivered", "cancelled"}
)

// GenShopData writes the toy e-commerce dataset: customers.csv,
// products.csv, orders.csv and order_items.csv. A fixed seed makes the
// output reproducible. Product popularity and customer activity follow a
// Zipf distribution so aggregates have something to show.
func GenShopData(kvs map[string]string, dir string) error {
	a, err := parseShopArgs(kvs)
	if err != nil {
		return err
	}
	r := rand.New(rand.NewSource(a.seed))
	productZipf := rand.NewZipf(r, 1.5, 2, uint64(a.products-1))
	customerZipf := rand.NewZipf(r, 1.3, 2, uint64(a.customers-1))

	// customers
	rows := make([][]string, 0, a.customers)
	for i := 1; i <= a.customers; i++ {
		first := pick(r, firstNames)
		last := pick(r, lastNames)
		email := fmt.Sprintf("%v.%v.%d@example.com", lower(first), lower(last), i)
		if r.Float64() < 0.05 {
			email = "" // loads as NULL
		}
		rows = append(rows, []string{
			strconv.Itoa(i),
			first + " " + last,
			email,
			pick(r, cities),
			randomDateTime(r),
		})
	}
	if err := writeCSV(path.Join(dir, "customers.csv"),
		[]string{"customer_id", "name", "email", "city", "created_at"}, rows); err != nil {
		return err
	}

	// products
	prices := make([]float64, a.products+1)
	rows = rows[:0]
	for i := 1; i <= a.products; i++ {
		prices[i] = money(1 + r.Float64()*499)
		rows = append(rows, []string{
			strconv.Itoa(i),
			pick(r, adjectives) + " " + pick(r, nouns),
			pick(r, categories),
			formatMoney(prices[i]),
			strconv.Itoa(r.Intn(1000)),
		})
	}
	if err := writeCSV(path.Join(dir, "products.csv"),
		[]string{"product_id", "name", "category", "price", "stock"}, rows); err != nil {
		return err
	}

	// orders and order_items
	orderRows := make([][]string, 0, a.orders)
	itemRows := make([][]string, 0, a.orders*2)
	itemID := 1
	for i := 1; i <= a.orders; i++ {
		customerID := int(customerZipf.Uint64()) + 1
		orderRows = append(orderRows, []string{
			strconv.Itoa(i),
			strconv.Itoa(customerID),
			randomDateTime(r),
			pick(r, statuses),
		})
		nItems := 1 + r.Intn(4)
		for j := 0; j < nItems; j++ {
			productID := int(productZipf.Uint64()) + 1
			itemRows = append(itemRows, []string{
				strconv.Itoa(itemID),
				strconv.Itoa(i),
				strconv.Itoa(productID),
				strconv.Itoa(1 + r.Intn(5)),
				formatMoney(prices[productID]),
			})
			itemID++
		}
	}
	if err := writeCSV(path.Join(dir, "orders.csv"),
		[]string{"order_id", "customer_id", "order_date", "status"}, orderRows); err != nil {
		return err
	}
	return writeCSV(path.Join(dir, "order_items.csv"),
		[]string{"order_item_id", "order_id", "product_id", "quantity", "unit_price"}, itemRows)
}
