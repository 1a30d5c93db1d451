package lesson

// The built-in curriculum walks through the toy shop schema produced by
// `sqlcoach datagen` and `sqlcoach load`: customers, products, orders and
// order_items. The SQL sticks to the common subset of the sqlite and
// mysql dialects.

var lessonMap = map[string]Lesson{
	"select-all": {
		Name:  "select-all",
		Title: "Selecting rows",
		Note:  "SELECT * returns every column of every row. LIMIT caps the number of rows, which keeps exploratory queries readable.",
		SQL:   "SELECT * FROM products LIMIT 10",
	},
	"projection": {
		Name:  "projection",
		Title: "Choosing columns",
		Note:  "Naming columns instead of * keeps only the fields you care about.",
		SQL:   "SELECT name, category, price FROM products LIMIT 10",
	},
	"filtering": {
		Name:  "filtering",
		Title: "Filtering with WHERE",
		Note:  "WHERE keeps the rows matching a predicate. Predicates combine with AND and OR.",
		SQL:   "SELECT name, price FROM products WHERE category = 'books' AND price < 50",
	},
	"ordering": {
		Name:  "ordering",
		Title: "Sorting results",
		Note:  "ORDER BY sorts the result set. DESC reverses the order; combined with LIMIT it answers top-N questions.",
		SQL:   "SELECT name, price FROM products ORDER BY price DESC LIMIT 5",
	},
	"aggregation": {
		Name:  "aggregation",
		Title: "Aggregate functions",
		Note:  "COUNT, AVG, MIN and MAX collapse a whole table into a single summary row.",
		SQL:   "SELECT COUNT(*) AS n, AVG(price) AS avg_price, MIN(price) AS cheapest, MAX(price) AS dearest FROM products",
	},
	"grouping": {
		Name:  "grouping",
		Title: "GROUP BY",
		Note:  "GROUP BY computes one aggregate row per group. Here: how many orders each customer placed.",
		SQL:   "SELECT customer_id, COUNT(*) AS orders FROM orders GROUP BY customer_id ORDER BY orders DESC, customer_id LIMIT 10",
	},
	"joins": {
		Name:  "joins",
		Title: "Joining tables",
		Note:  "JOIN stitches rows from two tables together on a key. Revenue per product needs order_items joined with products.",
		SQL: "SELECT p.name, SUM(oi.quantity * oi.unit_price) AS revenue " +
			"FROM order_items oi JOIN products p ON p.product_id = oi.product_id " +
			"GROUP BY p.name ORDER BY revenue DESC LIMIT 10",
	},
	"subqueries": {
		Name:  "subqueries",
		Title: "Subqueries",
		Note:  "A query can feed another query. Products that never sold are the ones whose id is absent from order_items.",
		SQL:   "SELECT name FROM products WHERE product_id NOT IN (SELECT product_id FROM order_items) ORDER BY name",
	},
	"null-handling": {
		Name:  "null-handling",
		Title: "NULL values",
		Note:  "NULL is absence of a value, not a value: comparisons need IS NULL. Some customers never gave an email address.",
		SQL:   "SELECT COUNT(*) AS missing_email FROM customers WHERE email IS NULL",
	},
}

var curriculum = []string{
	"select-all",
	"projection",
	"filtering",
	"ordering",
	"aggregation",
	"grouping",
	"joins",
	"subqueries",
	"null-handling",
}

// Curriculum returns the built-in lessons in teaching order.
func Curriculum() []Lesson {
	lessons := make([]Lesson, 0, len(curriculum))
	for _, name := range curriculum {
		lessons = append(lessons, lessonMap[name])
	}
	return lessons
}
