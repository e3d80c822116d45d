package wishlist

import (
	"time"

	"github.com/soulstitch/storefront/internal/money"
)

const defaultCategory = "General"

// Entry is keyed by product id: a product is saved at most once per user.
type Entry struct {
	ProductID string       `json:"id" bson:"id"`
	Name      string       `json:"name" bson:"name"`
	Price     money.Amount `json:"price" bson:"price"`
	Image     string       `json:"image" bson:"image"`
	Category  string       `json:"category" bson:"category"`
	SavedAt   time.Time    `json:"savedAt" bson:"savedAt"`
}
