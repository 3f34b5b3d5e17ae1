package order

import (
	"gocart/internal/pkg/errs"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var (
	ErrInvalidPaymentMethod = errs.Validation("invalid payment method")
	ErrInvalidStatus        = errs.Validation("invalid order status")
	ErrInvalidAmount        = errs.Validation("invalid amount")
	ErrAddressRequired      = errs.Validation("address id is required")
	ErrProductUnavailable   = errs.NotFound("product unavailable")
	ErrInvalidTransition    = errs.Sentinel("order status transition not allowed", errs.ErrDataIntegrity)
)

func errInvalid(msg string) error { return errs.Validation(msg) }

type PaymentMethod string

const (
	PaymentCash      PaymentMethod = "CASH"
	PaymentProcessor PaymentMethod = "PROCESSOR"
)

func NewPaymentMethod(s string) (PaymentMethod, error) {
	m := PaymentMethod(s)
	switch m {
	case PaymentCash, PaymentProcessor:
		return m, nil
	default:
		return "", ErrInvalidPaymentMethod
	}
}

func (m PaymentMethod) String() string { return string(m) }

type Status string

const (
	StatusPending   Status = "PENDING"
	StatusPaid      Status = "PAID"
	StatusCancelled Status = "CANCELLED"
)

func NewStatus(s string) (Status, error) {
	st := Status(s)
	switch st {
	case StatusPending, StatusPaid, StatusCancelled:
		return st, nil
	default:
		return "", ErrInvalidStatus
	}
}

func (s Status) String() string { return string(s) }

func (s Status) IsTerminal() bool { return s == StatusPaid || s == StatusCancelled }

// CouponSnapshot is copied onto every order of a checkout and never follows later coupon edits.
type CouponSnapshot struct {
	Code            string          `json:"code"`
	DiscountPercent decimal.Decimal `json:"discountPercent"`
	Description     string          `json:"description"`
}

// Product is the catalog snapshot a cart line resolves to.
type Product struct {
	ID        uuid.UUID
	StoreID   uuid.UUID
	Name      string
	Price     Money
	Available bool
}

// ProductUnavailableError names the first cart line that could not be resolved.
type ProductUnavailableError struct {
	ProductID uuid.UUID
}

func (e *ProductUnavailableError) Error() string {
	return "product unavailable: " + e.ProductID.String()
}

func (e *ProductUnavailableError) Unwrap() error { return ErrProductUnavailable }

func productUnavailable(id uuid.UUID) error {
	return &ProductUnavailableError{ProductID: id}
}
