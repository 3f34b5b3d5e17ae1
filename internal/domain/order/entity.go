package order

import (
	"time"

	"github.com/google/uuid"
)

type LineItem struct {
	ProductID uuid.UUID
	Quantity  int
	// price captured at checkout
	UnitPrice Money
}

func (li LineItem) Amount() Money { return li.UnitPrice.Times(li.Quantity) }

type Order struct {
	id            uuid.UUID
	userID        uuid.UUID
	storeID       uuid.UUID
	addressID     uuid.UUID
	paymentMethod PaymentMethod
	status        Status
	subtotal      Money
	shippingFee   Money
	total         Money
	coupon        *CouponSnapshot
	items         []LineItem
	createdAt     time.Time
	updatedAt     time.Time
}

// Reconstruct rebuilds an order loaded from storage.
func Reconstruct(
	id, userID, storeID, addressID uuid.UUID,
	method PaymentMethod,
	status Status,
	subtotal, shippingFee, total Money,
	coupon *CouponSnapshot,
	items []LineItem,
	createdAt, updatedAt time.Time,
) *Order {
	return &Order{
		id:            id,
		userID:        userID,
		storeID:       storeID,
		addressID:     addressID,
		paymentMethod: method,
		status:        status,
		subtotal:      subtotal,
		shippingFee:   shippingFee,
		total:         total,
		coupon:        coupon,
		items:         items,
		createdAt:     createdAt,
		updatedAt:     updatedAt,
	}
}

// MarkPaid は PENDING の注文のみ受け付ける
func (o *Order) MarkPaid(now time.Time) error {
	if o.status != StatusPending {
		return ErrInvalidTransition
	}
	o.status = StatusPaid
	o.updatedAt = now
	return nil
}

func (o *Order) Cancel(now time.Time) error {
	if o.status != StatusPending {
		return ErrInvalidTransition
	}
	o.status = StatusCancelled
	o.updatedAt = now
	return nil
}

func (o *Order) ID() uuid.UUID                { return o.id }
func (o *Order) UserID() uuid.UUID            { return o.userID }
func (o *Order) StoreID() uuid.UUID           { return o.storeID }
func (o *Order) AddressID() uuid.UUID         { return o.addressID }
func (o *Order) PaymentMethod() PaymentMethod { return o.paymentMethod }
func (o *Order) Status() Status               { return o.status }
func (o *Order) Subtotal() Money              { return o.subtotal }
func (o *Order) ShippingFee() Money           { return o.shippingFee }
func (o *Order) Total() Money                 { return o.total }
func (o *Order) Coupon() *CouponSnapshot      { return o.coupon }
func (o *Order) Items() []LineItem            { return o.items }
func (o *Order) CreatedAt() time.Time         { return o.createdAt }
func (o *Order) UpdatedAt() time.Time         { return o.updatedAt }
