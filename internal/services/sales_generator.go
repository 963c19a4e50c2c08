package services

import (
	"bufio"
	"fmt"
	"io"
	"sort"
	"strings"
	"time"

	"sales-report/internal/models"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/shopspring/decimal"
)

const (
	DefaultCatalogueSize = 12
	minUnitPrice         = 0.5
	maxUnitPrice         = 120
	minLineQuantity      = 1
	maxLineQuantity      = 25
)

var salesHeader = []string{"date", "item", "quantity", "price"}

type salesGenerator struct {
	faker     *gofakeit.Faker
	catalogue []string
	unitPrice map[string]decimal.Decimal
	start     time.Time
	end       time.Time
}

// NewSalesGenerator creates a generator of synthetic sales for the given
// year. A zero seed picks a random one.
func NewSalesGenerator(seed uint64, catalogueSize, year int) SalesGeneratorInterface {
	if catalogueSize <= 0 {
		catalogueSize = DefaultCatalogueSize
	}

	faker := gofakeit.New(seed)
	g := &salesGenerator{
		faker:     faker,
		unitPrice: make(map[string]decimal.Decimal),
		start:     time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC),
		end:       time.Date(year, time.December, 31, 0, 0, 0, 0, time.UTC),
	}
	g.catalogue = g.buildCatalogue(catalogueSize)

	return g
}

// buildCatalogue draws unique product names that are safe for the sales
// dialect, each with a fixed unit price
func (g *salesGenerator) buildCatalogue(size int) []string {
	seen := make(map[string]bool, size)
	catalogue := make([]string, 0, size)

	for attempts := 0; len(catalogue) < size && attempts < size*20; attempts++ {
		name := sanitizeItemName(g.faker.ProductName())
		if name == "" || seen[name] {
			continue
		}
		seen[name] = true
		catalogue = append(catalogue, name)
		g.unitPrice[name] = decimal.NewFromFloat(g.faker.Price(minUnitPrice, maxUnitPrice)).Round(2)
	}

	for i := len(catalogue); i < size; i++ {
		name := fmt.Sprintf("Item %d", i+1)
		catalogue = append(catalogue, name)
		g.unitPrice[name] = decimal.NewFromFloat(g.faker.Price(minUnitPrice, maxUnitPrice)).Round(2)
	}

	return catalogue
}

func sanitizeItemName(name string) string {
	name = strings.NewReplacer(",", " ", `"`, "", "\n", " ", "\r", " ").Replace(name)
	return strings.Join(strings.Fields(name), " ")
}

// GetCatalogue returns the item names the generator draws from
func (g *salesGenerator) GetCatalogue() []string {
	out := make([]string, len(g.catalogue))
	copy(out, g.catalogue)
	return out
}

// Generate returns count sales ordered by date. Price is the line total,
// unit price times quantity.
func (g *salesGenerator) Generate(count int) []models.SaleRecord {
	if count <= 0 {
		return []models.SaleRecord{}
	}

	records := make([]models.SaleRecord, 0, count)
	for i := 0; i < count; i++ {
		item := g.faker.RandomString(g.catalogue)
		quantity := g.faker.IntRange(minLineQuantity, maxLineQuantity)
		date := g.faker.DateRange(g.start, g.end)

		records = append(records, models.SaleRecord{
			Date:     date.Format(models.DateLayout),
			Item:     item,
			Quantity: quantity,
			Price:    g.unitPrice[item].Mul(decimal.NewFromInt(int64(quantity))),
		})
	}

	sort.SliceStable(records, func(i, j int) bool {
		return records[i].Date < records[j].Date
	})

	for i := range records {
		records[i].Line = i + 2
	}

	return records
}

// WriteCSV writes records in the sales dialect, header first
func (g *salesGenerator) WriteCSV(w io.Writer, records []models.SaleRecord) error {
	bw := bufio.NewWriter(w)

	if _, err := fmt.Fprintln(bw, strings.Join(salesHeader, fieldSeparator)); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}

	for i := range records {
		r := &records[i]
		if _, err := fmt.Fprintf(bw, "%s,%s,%d,%s\n", r.Date, r.Item, r.Quantity, r.Price.StringFixed(2)); err != nil {
			return fmt.Errorf("failed to write sale row %d: %w", i+1, err)
		}
	}

	if err := bw.Flush(); err != nil {
		return fmt.Errorf("failed to flush sales data: %w", err)
	}
	return nil
}
