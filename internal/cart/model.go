package cart

import (
	"time"

	"github.com/soulstitch/storefront/internal/money"
)

// Line is one add-to-cart action: a copy of the product's display fields.
// The same product may appear in several lines.
type Line struct {
	LineID      string       `json:"lineId" bson:"lineId"`
	ProductID   string       `json:"productId" bson:"productId"`
	Name        string       `json:"name" bson:"name"`
	Price       money.Amount `json:"price" bson:"price"`
	Image       string       `json:"image" bson:"image"`
	Description string       `json:"description,omitempty" bson:"description,omitempty"`
	Category    string       `json:"category,omitempty" bson:"category,omitempty"`
	Quantity    int          `json:"qty" bson:"qty"`
	AddedAt     time.Time    `json:"addedAt" bson:"addedAt"`
}

type Summary struct {
	Lines []Line       `json:"items"`
	Count int          `json:"count"`
	Total money.Amount `json:"totalAmount"`
}

// Summarize totals the line prices. An empty cart totals zero.
func Summarize(lines []Line) Summary {
	if lines == nil {
		lines = []Line{}
	}
	prices := make([]money.Amount, 0, len(lines))
	for _, l := range lines {
		prices = append(prices, l.Price)
	}
	return Summary{Lines: lines, Count: len(lines), Total: money.Sum(prices...)}
}
