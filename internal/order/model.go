package order

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/soulstitch/storefront/internal/money"
	"github.com/soulstitch/storefront/internal/payment"
)

const (
	StatusOrdered = "Ordered"

	defaultItems = "Cart Order"
	defaultImage = "https://placehold.co/100x100/png?text=Order"
	dateLayout   = "Mon Jan 02 2006"
)

var (
	ErrValidation = errors.New("invalid checkout")
	ErrNotFound   = errors.New("order not found")
)

type Order struct {
	ID              string       `json:"id" bson:"id"`
	UserID          string       `json:"userId" bson:"userId"`
	UserEmail       string       `json:"userEmail" bson:"userEmail"`
	Items           string       `json:"items" bson:"items"`
	TotalAmount     money.Amount `json:"totalAmount" bson:"totalAmount"`
	OrderImage      string       `json:"orderImage" bson:"orderImage"`
	ShippingAddress string       `json:"shippingAddress" bson:"shippingAddress"`
	Phone           string       `json:"phone" bson:"phone"`
	PaymentMethod   string       `json:"paymentMethod" bson:"paymentMethod"`
	Status          string       `json:"status" bson:"status"`
	Date            string       `json:"date" bson:"date"`
	CreatedAt       time.Time    `json:"timestamp" bson:"timestamp"`
}

// Customer is the signed-in buyer placing the order.
type Customer struct {
	ID    string
	Email string
}

// Checkout is what the checkout screen submits. With FromCart set, the
// items, amount and image come from the buyer's cart instead.
type Checkout struct {
	Address  string       `json:"address"`
	Phone    string       `json:"phone"`
	Method   string       `json:"paymentMethod"`
	Items    string       `json:"items"`
	Amount   money.Amount `json:"totalAmount"`
	Image    string       `json:"image"`
	FromCart bool         `json:"fromCart"`
}

type validCheckout struct {
	Checkout
	method payment.Method
}

// validate runs before anything is read or written.
func (c Checkout) validate() (validCheckout, error) {
	c.Address = strings.TrimSpace(c.Address)
	c.Phone = strings.TrimSpace(c.Phone)
	if c.Address == "" || c.Phone == "" {
		return validCheckout{}, fmt.Errorf("%w: address and phone are required", ErrValidation)
	}
	m, err := payment.ParseMethod(c.Method)
	if err != nil {
		return validCheckout{}, fmt.Errorf("%w: %v", ErrValidation, err)
	}
	if c.Amount.IsNegative() {
		return validCheckout{}, fmt.Errorf("%w: amount must not be negative", ErrValidation)
	}
	c.Items = strings.TrimSpace(c.Items)
	if c.Items == "" {
		c.Items = defaultItems
	}
	if strings.TrimSpace(c.Image) == "" {
		c.Image = defaultImage
	}
	return validCheckout{Checkout: c, method: m}, nil
}

// Intent is a checkout waiting for the buyer to confirm an online payment.
type Intent struct {
	ID              string         `json:"id" bson:"id"`
	UserID          string         `json:"userId" bson:"userId"`
	UserEmail       string         `json:"userEmail" bson:"userEmail"`
	Method          payment.Method `json:"method" bson:"method"`
	Items           string         `json:"items" bson:"items"`
	Amount          money.Amount   `json:"totalAmount" bson:"totalAmount"`
	Image           string         `json:"image" bson:"image"`
	ShippingAddress string         `json:"shippingAddress" bson:"shippingAddress"`
	Phone           string         `json:"phone" bson:"phone"`
	PaymentLink     string         `json:"paymentLink" bson:"paymentLink"`
	CreatedAt       time.Time      `json:"createdAt" bson:"createdAt"`
}

// Placement is the outcome of Place: an order for cash on delivery, or an
// intent plus how to pay it for online methods.
type Placement struct {
	Order       *Order  `json:"order,omitempty"`
	Intent      *Intent `json:"intent,omitempty"`
	PaymentLink string  `json:"paymentLink,omitempty"`
	QRCodePNG   []byte  `json:"qrCodePng,omitempty"`
}
