package seeder

import (
	"math/rand"
	"time"

	"github.com/Lumos-Labs-HQ/insight/internal/models"
	"github.com/go-faker/faker/v4"
	"github.com/shopspring/decimal"
)

var (
	Genders = []string{"Male", "Female", "Other", "Prefer not to say"}

	Cities = []string{"Bogotá", "Medellín", "Cali", "Barranquilla", "Cartagena", "Bucaramanga"}

	Categories = []string{"Technology", "Home", "Fashion", "Health", "Sports", "Education", "Books", "Groceries"}

	ProductNames = []string{
		"Laptop Pro 15-inch", "Wireless Mouse", "4K Monitor", "Mechanical Keyboard",
		"Smart Coffee Maker", "Robotic Vacuum Cleaner", "LED Desk Lamp", "Air Purifier",
		"Classic T-Shirt", "Leather Wallet", "Running Shoes", "Winter Jacket",
		"Vitamin C Supplements", "Digital Thermometer", "Yoga Mat", "Electric Toothbrush",
		"Basketball", "Dumbbell Set", "Resistance Bands", "Soccer Ball",
		"Advanced Python Course", "Data Science Handbook", "The Art of Fiction", "Organic Apples",
	}

	// FirstNames and LastNames back seeded runs, where faker's global source
	// would break reproducibility.
	FirstNames = []string{
		"Ana", "Luis", "María", "Carlos", "Valentina", "Andrés", "Camila", "Juan",
		"Daniela", "Santiago", "Laura", "Felipe", "Sofía", "Mateo", "Paula", "Diego",
	}

	LastNames = []string{
		"Gómez", "Rodríguez", "Martínez", "López", "García", "Pérez", "Sánchez", "Ramírez",
		"Torres", "Díaz", "Vargas", "Moreno", "Rojas", "Castro", "Ruiz", "Ortiz",
	}
)

const (
	MinAge      = 18
	MaxAge      = 80
	MaxStock    = 200
	MinQuantity = 1
	MaxQuantity = 5
	// SaleWindowDays is how far back from today a sale date may fall.
	SaleWindowDays = 365
)

var (
	MinPrice = decimal.NewFromFloat(5.00)
	MaxPrice = decimal.NewFromFloat(1500.00)
)

type Generator struct {
	rand  *rand.Rand
	now   func() time.Time
	names func() string
}

type Option func(*Generator)

// WithRand injects the random source, e.g. a seeded one for tests.
func WithRand(r *rand.Rand) Option {
	return func(g *Generator) { g.rand = r }
}

func WithClock(now func() time.Time) Option {
	return func(g *Generator) { g.now = now }
}

func WithNameSource(names func() string) Option {
	return func(g *Generator) { g.names = names }
}

// WithSeed makes every draw, names included, come from one seeded source so
// equal seeds produce equal datasets.
func WithSeed(seed int64) Option {
	return func(g *Generator) {
		r := rand.New(rand.NewSource(seed))
		g.rand = r
		g.names = func() string {
			return FirstNames[r.Intn(len(FirstNames))] + " " + LastNames[r.Intn(len(LastNames))]
		}
	}
}

func NewGenerator(opts ...Option) *Generator {
	g := &Generator{
		rand:  rand.New(rand.NewSource(time.Now().UnixNano())),
		now:   time.Now,
		names: fakeName,
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

func fakeName() string {
	return faker.FirstName() + " " + faker.LastName()
}

func (g *Generator) GenerateCustomers(n int) []models.Customer {
	if n < 0 {
		n = 0
	}
	customers := make([]models.Customer, 0, n)
	for i := 1; i <= n; i++ {
		customers = append(customers, models.Customer{
			ID:     int64(i),
			Name:   g.names(),
			Gender: g.pick(Genders),
			Age:    g.intBetween(MinAge, MaxAge),
			City:   g.pick(Cities),
		})
	}
	return customers
}

func (g *Generator) GenerateProducts(n int) []models.Product {
	if n < 0 {
		n = 0
	}
	products := make([]models.Product, 0, n)
	for i := 1; i <= n; i++ {
		products = append(products, models.Product{
			ID:       int64(i),
			Name:     g.pick(ProductNames),
			Category: g.pick(Categories),
			Price:    g.price(),
			Stock:    g.intBetween(0, MaxStock),
		})
	}
	return products
}

// GenerateSales samples customer and product ids with replacement. With no
// ids to reference it returns an empty set instead of failing.
func (g *Generator) GenerateSales(n int, customerIDs, productIDs []int64) []models.Sale {
	if n <= 0 || len(customerIDs) == 0 || len(productIDs) == 0 {
		return []models.Sale{}
	}

	today := truncateToDate(g.now())
	sales := make([]models.Sale, 0, n)
	for i := 1; i <= n; i++ {
		sales = append(sales, models.Sale{
			ID:         int64(i),
			CustomerID: customerIDs[g.rand.Intn(len(customerIDs))],
			ProductID:  productIDs[g.rand.Intn(len(productIDs))],
			SaleDate:   today.AddDate(0, 0, -g.rand.Intn(SaleWindowDays+1)),
			Quantity:   g.intBetween(MinQuantity, MaxQuantity),
		})
	}
	return sales
}

// Generate produces a full dataset. Store ids are assigned sequentially from
// 1, so sales reference 1..Customers and 1..Products.
func (g *Generator) Generate(counts Counts) *Dataset {
	ds := &Dataset{
		Customers: g.GenerateCustomers(counts.Customers),
		Products:  g.GenerateProducts(counts.Products),
	}

	customerIDs := SequentialIDs(len(ds.Customers))
	productIDs := SequentialIDs(len(ds.Products))

	if counts.Sales > 0 && (len(customerIDs) == 0 || len(productIDs) == 0) {
		ds.Sales = []models.Sale{}
		ds.SalesSkipped = true
		return ds
	}

	ds.Sales = g.GenerateSales(counts.Sales, customerIDs, productIDs)
	return ds
}

func SequentialIDs(n int) []int64 {
	ids := make([]int64, 0, n)
	for i := 1; i <= n; i++ {
		ids = append(ids, int64(i))
	}
	return ids
}

func (g *Generator) pick(values []string) string {
	return values[g.rand.Intn(len(values))]
}

// intBetween returns a uniform integer in [lo, hi].
func (g *Generator) intBetween(lo, hi int) int {
	return lo + g.rand.Intn(hi-lo+1)
}

func (g *Generator) price() decimal.Decimal {
	span := MaxPrice.Sub(MinPrice).InexactFloat64()
	p := MinPrice.Add(decimal.NewFromFloat(g.rand.Float64() * span)).Round(2)
	if p.GreaterThan(MaxPrice) {
		return MaxPrice
	}
	return p
}

func truncateToDate(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
