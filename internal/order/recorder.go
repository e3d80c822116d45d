package order

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/soulstitch/storefront/internal/auth"
	"github.com/soulstitch/storefront/internal/cart"
	"github.com/soulstitch/storefront/internal/events"
	"github.com/soulstitch/storefront/internal/money"
	"github.com/soulstitch/storefront/internal/payment"
)

// CartReader supplies the cart summary for checkouts of the whole cart.
type CartReader interface {
	Total(ctx context.Context, userID string) (cart.Summary, error)
}

type Recorder struct {
	repo      Repository
	carts     CartReader
	guard     *Guard
	publisher events.Publisher
	payee     payment.Payee
	logger    *log.Logger
	now       func() time.Time
}

func NewRecorder(repo Repository, carts CartReader, guard *Guard, publisher events.Publisher, payee payment.Payee, logger *log.Logger) *Recorder {
	return &Recorder{
		repo:      repo,
		carts:     carts,
		guard:     guard,
		publisher: publisher,
		payee:     payee,
		logger:    logger,
		now:       time.Now,
	}
}

// Place records a cash-on-delivery order right away. Online and QR
// checkouts only store a payment intent; the order is written by Confirm.
func (r *Recorder) Place(ctx context.Context, c Customer, in Checkout) (Placement, error) {
	if err := auth.RequireUser(c.ID); err != nil {
		return Placement{}, err
	}
	vc, err := in.validate()
	if err != nil {
		return Placement{}, err
	}

	release, err := r.guard.Acquire(ctx, c.ID)
	if err != nil {
		return Placement{}, err
	}
	defer release()

	if vc.FromCart {
		if err := r.fillFromCart(ctx, c.ID, &vc); err != nil {
			return Placement{}, err
		}
	}

	if !vc.method.NeedsConfirmation() {
		o := r.newOrder(c, vc.method, vc.Items, vc.Image, vc.Address, vc.Phone, vc.Amount)
		if err := r.record(ctx, o); err != nil {
			return Placement{}, err
		}
		return Placement{Order: &o}, nil
	}

	note := payment.OrderNote
	if vc.method == payment.MethodQR {
		note = ""
	}
	intent := Intent{
		ID:              uuid.NewString(),
		UserID:          c.ID,
		UserEmail:       c.Email,
		Method:          vc.method,
		Items:           vc.Items,
		Amount:          vc.Amount,
		Image:           vc.Image,
		ShippingAddress: vc.Address,
		Phone:           vc.Phone,
		PaymentLink:     payment.UPILink(r.payee, vc.Amount, note),
		CreatedAt:       r.now().UTC(),
	}
	if err := r.repo.SaveIntent(ctx, intent); err != nil {
		return Placement{}, err
	}

	p := Placement{Intent: &intent, PaymentLink: intent.PaymentLink}
	if vc.method == payment.MethodQR {
		png, err := payment.QRCode(intent.PaymentLink, payment.QRImageSize)
		if err != nil {
			return Placement{}, err
		}
		p.QRCodePNG = png
	}
	return p, nil
}

// Confirm is the buyer's "I have paid" attestation for an intent. It writes
// exactly one order and removes the intent.
func (r *Recorder) Confirm(ctx context.Context, c Customer, intentID string) (Order, error) {
	if err := auth.RequireUser(c.ID); err != nil {
		return Order{}, err
	}

	release, err := r.guard.Acquire(ctx, c.ID)
	if err != nil {
		return Order{}, err
	}
	defer release()

	in, err := r.repo.GetIntent(ctx, c.ID, intentID)
	if err != nil {
		return Order{}, err
	}

	o := r.newOrder(c, in.Method, in.Items, in.Image, in.ShippingAddress, in.Phone, in.Amount)
	if err := r.record(ctx, o); err != nil {
		return Order{}, err
	}
	if err := r.repo.DeleteIntent(ctx, c.ID, intentID); err != nil {
		r.logger.Printf("order %s recorded but intent %s not removed: %v", o.ID, intentID, err)
	}
	return o, nil
}

// History lists the user's orders, newest first.
func (r *Recorder) History(ctx context.Context, userID string) ([]Order, error) {
	if err := auth.RequireUser(userID); err != nil {
		return nil, err
	}
	out, err := r.repo.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

// Get returns ErrNotFound for orders owned by someone else.
func (r *Recorder) Get(ctx context.Context, userID, orderID string) (Order, error) {
	if err := auth.RequireUser(userID); err != nil {
		return Order{}, err
	}
	o, err := r.repo.Get(ctx, orderID)
	if err != nil {
		return Order{}, err
	}
	if o.UserID != userID {
		return Order{}, ErrNotFound
	}
	return o, nil
}

func (r *Recorder) Receipt(ctx context.Context, userID, orderID string) ([]byte, error) {
	o, err := r.Get(ctx, userID, orderID)
	if err != nil {
		return nil, err
	}
	name := r.payee.Name
	if name == "" {
		name = "Order"
	}
	return RenderReceipt(o, name)
}

func (r *Recorder) fillFromCart(ctx context.Context, userID string, vc *validCheckout) error {
	if r.carts == nil {
		return errors.New("cart checkout is not available")
	}
	sum, err := r.carts.Total(ctx, userID)
	if err != nil {
		return fmt.Errorf("load cart for checkout: %w", err)
	}
	if len(sum.Lines) == 0 {
		return fmt.Errorf("%w: cart is empty", ErrValidation)
	}
	vc.Items = defaultItems
	vc.Amount = sum.Total
	if sum.Lines[0].Image != "" {
		vc.Image = sum.Lines[0].Image
	}
	return nil
}

func (r *Recorder) newOrder(c Customer, m payment.Method, items, image, address, phone string, amount money.Amount) Order {
	now := r.now().UTC()
	return Order{
		ID:              uuid.NewString(),
		UserID:          c.ID,
		UserEmail:       c.Email,
		Items:           items,
		TotalAmount:     amount,
		OrderImage:      image,
		ShippingAddress: address,
		Phone:           phone,
		PaymentMethod:   m.Label(),
		Status:          StatusOrdered,
		Date:            now.Format(dateLayout),
		CreatedAt:       now,
	}
}

func (r *Recorder) record(ctx context.Context, o Order) error {
	if err := r.repo.Create(ctx, o); err != nil {
		return err
	}

	// The order is durable at this point; a publish failure is only logged.
	err := r.publisher.PublishOrderPlaced(ctx, events.MetaFrom(ctx, o.UserID), events.OrderPlacedPayload{
		OrderID:       o.ID,
		UserID:        o.UserID,
		Items:         o.Items,
		TotalAmount:   o.TotalAmount,
		PaymentMethod: o.PaymentMethod,
		Timestamp:     o.CreatedAt,
	})
	if err != nil {
		r.logger.Printf("publish OrderPlaced for %s: %v", o.ID, err)
	}
	return nil
}
