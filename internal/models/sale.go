package models

import (
	"strings"

	"github.com/shopspring/decimal"
)

const DateLayout = "2006-01-02"

// SaleRecord is one parsed transaction line. Records are created once by the
// parser and never mutated afterwards.
type SaleRecord struct {
	Date     string          `json:"date" validate:"required,datetime=2006-01-02"`
	Item     string          `json:"item" validate:"required"`
	Quantity int             `json:"quantity" validate:"gte=0"`
	Price    decimal.Decimal `json:"price" validate:"non_negative_amount"`
	Line     int             `json:"line"`
}

// Month returns the two-character month key of the record's date, the second
// hyphen-delimited field of YYYY-MM-DD.
func (s SaleRecord) Month() string {
	return MonthKey(s.Date)
}

// MonthKey extracts the month field from a YYYY-MM-DD date string. An
// unparseable date yields an empty key.
func MonthKey(date string) string {
	parts := strings.Split(date, "-")
	if len(parts) < 2 {
		return ""
	}
	return parts[1]
}
