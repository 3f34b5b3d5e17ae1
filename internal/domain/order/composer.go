package order

import (
	"time"

	"gocart/internal/domain/cart"
	"gocart/internal/domain/coupon"

	"github.com/google/uuid"
)

type ComposeInput struct {
	UserID        uuid.UUID
	AddressID     uuid.UUID
	Lines         cart.Cart
	PaymentMethod PaymentMethod
	// accepted coupon, nil when none was supplied
	Coupon *coupon.Coupon
	// ShippingFee is charged once per checkout unless WaiveShipping is set.
	ShippingFee   Money
	WaiveShipping bool
	Now           time.Time
}

// ProductLookup resolves a cart line to its catalog snapshot. ok is false for unknown products.
type ProductLookup func(id uuid.UUID) (p Product, ok bool, err error)

// Set is the sibling orders produced by one checkout.
type Set struct {
	Orders []*Order
	Total  Money
}

func (s *Set) OrderIDs() []uuid.UUID {
	ids := make([]uuid.UUID, len(s.Orders))
	for i, o := range s.Orders {
		ids[i] = o.ID()
	}
	return ids
}

type group struct {
	storeID uuid.UUID
	items   []LineItem
}

// Compose resolves every line first and only then builds orders, so a single
// unavailable product fails the whole checkout before anything is produced.
//
// Orders are grouped by store in the order each store first appears in the cart.
// The shipping fee goes on the first group.
func Compose(in ComposeInput, lookup ProductLookup) (*Set, error) {
	if in.AddressID == uuid.Nil {
		return nil, ErrAddressRequired
	}
	if err := in.Lines.ForCheckout(); err != nil {
		return nil, err
	}
	if _, err := NewPaymentMethod(string(in.PaymentMethod)); err != nil {
		return nil, err
	}

	// pass 1: resolve
	resolved := make([]Product, len(in.Lines))
	for i, l := range in.Lines {
		p, ok, err := lookup(l.ProductID)
		if err != nil {
			return nil, err
		}
		if !ok || !p.Available {
			return nil, productUnavailable(l.ProductID)
		}
		resolved[i] = p
	}

	// pass 2: group and price
	groups := make([]*group, 0)
	index := make(map[uuid.UUID]*group)
	for i, l := range in.Lines {
		p := resolved[i]
		g, ok := index[p.StoreID]
		if !ok {
			g = &group{storeID: p.StoreID}
			index[p.StoreID] = g
			groups = append(groups, g)
		}
		g.items = append(g.items, LineItem{ProductID: p.ID, Quantity: l.Quantity, UnitPrice: p.Price})
	}

	var snapshot *CouponSnapshot
	if in.Coupon != nil {
		snapshot = &CouponSnapshot{
			Code:            in.Coupon.Code().String(),
			DiscountPercent: in.Coupon.Discount().Decimal(),
			Description:     in.Coupon.Description(),
		}
	}

	status := StatusPending
	if in.PaymentMethod == PaymentCash {
		status = StatusPaid
	}

	set := &Set{Orders: make([]*Order, 0, len(groups)), Total: ZeroMoney()}
	for i, g := range groups {
		subtotal := ZeroMoney()
		for _, li := range g.items {
			subtotal = subtotal.Add(li.Amount())
		}

		discounted := subtotal
		if in.Coupon != nil {
			discounted = subtotal.Scale(in.Coupon.Discount().Multiplier())
		}

		shipping := ZeroMoney()
		if i == 0 && !in.WaiveShipping {
			shipping = in.ShippingFee
		}

		o := &Order{
			id:            uuid.New(),
			userID:        in.UserID,
			storeID:       g.storeID,
			addressID:     in.AddressID,
			paymentMethod: in.PaymentMethod,
			status:        status,
			subtotal:      subtotal.Round2(),
			shippingFee:   shipping,
			total:         discounted.Add(shipping).Round2(),
			coupon:        snapshot,
			items:         g.items,
			createdAt:     in.Now,
			updatedAt:     in.Now,
		}
		set.Orders = append(set.Orders, o)
		set.Total = set.Total.Add(o.total)
	}

	return set, nil
}
