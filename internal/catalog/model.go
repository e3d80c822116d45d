package catalog

import "github.com/soulstitch/storefront/internal/money"

const AllCategories = "All"

// Categories is the fixed category bar shown above the product grid.
var Categories = []string{AllCategories, "Toys", "Bags", "Decor", "Wear", "Winter"}

// Seasons lists the seasonal collection sections in display order.
var Seasons = []string{"Winter", "Summer", "Monsoon"}

type Product struct {
	ID          string       `json:"id" bson:"id"`
	Name        string       `json:"name" bson:"name"`
	Price       money.Amount `json:"price" bson:"price"`
	Image       string       `json:"image" bson:"image"`
	Description string       `json:"description,omitempty" bson:"description,omitempty"`
	Category    string       `json:"category,omitempty" bson:"category,omitempty"`
	IsTrending  bool         `json:"isTrending,omitempty" bson:"isTrending,omitempty"`
}

type Section struct {
	Season   string    `json:"season"`
	Products []Product `json:"products"`
}
