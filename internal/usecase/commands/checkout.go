package commands

//go:generate mockgen -source=checkout.go -destination=../../../tests/mock/commands/checkout.go -package=commandsmock

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"log/slog"
	"time"

	"gocart/internal/domain/cart"
	"gocart/internal/domain/coupon"
	"gocart/internal/domain/order"
	"gocart/internal/domain/payment"
	"gocart/internal/domain/user"
	"gocart/internal/pkg/clock"
	"gocart/internal/pkg/config"
	"gocart/internal/pkg/errs"
	"gocart/internal/pkg/metrics"
	"gocart/internal/usecase/shared"

	"github.com/google/uuid"
)

const checkoutEndpoint = "POST /checkout"

var (
	ErrAddressInvalid        = errs.Validation("address does not belong to the caller")
	ErrIdempotencyInProgress = errs.Conflict("a request with this idempotency key is still in progress")
	ErrIdempotencyMismatch   = errs.Conflict("idempotency key was used with a different request")
)

type CheckoutInput struct {
	AddressID     uuid.UUID `json:"addressId"`
	Lines         cart.Cart `json:"lines"`
	CouponCode    string    `json:"couponCode,omitempty"`
	PaymentMethod string    `json:"paymentMethod"`
}

type CheckoutResult struct {
	OrderIDs []uuid.UUID
	Total    order.Money
	// RedirectSessionID is the processor session the buyer is sent to; empty for CASH.
	RedirectSessionID string
	IsReplayed        bool
}

// checkoutRecord is the replayable form stored on a completed idempotency key.
type checkoutRecord struct {
	OrderIDs          []uuid.UUID `json:"orderIds"`
	Total             string      `json:"total"`
	RedirectSessionID string      `json:"redirectSessionId,omitempty"`
}

type CheckoutCommands interface {
	// Checkout composes one order per store from the input lines. idempotencyKey may be uuid.Nil.
	Checkout(ctx context.Context, caller user.Caller, in CheckoutInput, idempotencyKey uuid.UUID) (*CheckoutResult, error)
}

type checkoutUseCaseImpl struct {
	uow       shared.UnitOfWork
	initiator PaymentSessionInitiator
	clock     clock.Clock
	metrics   *metrics.Metrics
	cfg       config.Config
}

func NewCheckoutUseCase(
	uow shared.UnitOfWork,
	initiator PaymentSessionInitiator,
	clk clock.Clock,
	m *metrics.Metrics,
	cfg config.Config,
) CheckoutCommands {
	return &checkoutUseCaseImpl{
		uow:       uow,
		initiator: initiator,
		clock:     clk,
		metrics:   m,
		cfg:       cfg,
	}
}

func (uc *checkoutUseCaseImpl) Checkout(
	ctx context.Context,
	caller user.Caller,
	in CheckoutInput,
	idempotencyKey uuid.UUID,
) (*CheckoutResult, error) {
	result, err := uc.checkout(ctx, caller, in, idempotencyKey)
	uc.metrics.ObserveCheckout(in.PaymentMethod, checkoutOutcome(result, err))
	return result, err
}

func (uc *checkoutUseCaseImpl) checkout(
	ctx context.Context,
	caller user.Caller,
	in CheckoutInput,
	idempotencyKey uuid.UUID,
) (*CheckoutResult, error) {
	if caller.UserID == uuid.Nil {
		return nil, user.ErrAnonymousCaller
	}

	method, code, err := uc.validateInput(in)
	if err != nil {
		return nil, err
	}

	useKey := idempotencyKey != uuid.Nil
	if useKey {
		replayed, kerr := uc.claimIdempotencyKey(ctx, caller.UserID, idempotencyKey, in)
		if kerr != nil {
			return nil, kerr
		}
		if replayed != nil {
			return replayed, nil
		}
	}

	result, err := uc.place(ctx, caller, in, method, code, idempotencyKey)
	if err != nil {
		if useKey {
			uc.releaseIdempotencyKey(ctx, caller.UserID, idempotencyKey)
		}
		return nil, err
	}
	return result, nil
}

func (uc *checkoutUseCaseImpl) validateInput(in CheckoutInput) (order.PaymentMethod, *coupon.Code, error) {
	if in.AddressID == uuid.Nil {
		return "", nil, order.ErrAddressRequired
	}
	if err := in.Lines.ForCheckout(); err != nil {
		return "", nil, err
	}
	method, err := order.NewPaymentMethod(in.PaymentMethod)
	if err != nil {
		return "", nil, err
	}
	if in.CouponCode == "" {
		return method, nil, nil
	}
	code, err := coupon.NewCode(in.CouponCode)
	if err != nil {
		return "", nil, err
	}
	return method, &code, nil
}

func (uc *checkoutUseCaseImpl) place(
	ctx context.Context,
	caller user.Caller,
	in CheckoutInput,
	method order.PaymentMethod,
	code *coupon.Code,
	idempotencyKey uuid.UUID,
) (*CheckoutResult, error) {
	now := uc.clock.Now()

	var (
		set     *order.Set
		session *payment.Session
	)
	err := uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		userID := caller.UserID
		if err := tx.Users().LockForCheckout(ctx, tx.DB(), userID); err != nil {
			return err
		}

		owner, ok, err := tx.Reads().AddressOwner(ctx, in.AddressID)
		if err != nil {
			return err
		}
		if !ok || owner != userID {
			return ErrAddressInvalid
		}

		accepted, err := uc.evaluateCoupon(ctx, tx.Reads(), caller, code, now)
		if err != nil {
			return err
		}

		products, err := tx.Reads().ProductsByIDs(ctx, in.Lines.ProductIDs())
		if err != nil {
			return err
		}

		fee, err := order.NewMoney(uc.cfg.Checkout.ShippingFee)
		if err != nil {
			return err
		}

		set, err = order.Compose(order.ComposeInput{
			UserID:        userID,
			AddressID:     in.AddressID,
			Lines:         in.Lines,
			PaymentMethod: method,
			Coupon:        accepted,
			ShippingFee:   fee,
			WaiveShipping: caller.HasPlan(uc.cfg.Checkout.ShippingWaiverPlan),
			Now:           now,
		}, func(id uuid.UUID) (order.Product, bool, error) {
			p, found := products[id]
			return p, found, nil
		})
		if err != nil {
			return err
		}

		for _, o := range set.Orders {
			if err = tx.Orders().Create(ctx, tx.DB(), o); err != nil {
				return err
			}
		}

		if method == order.PaymentCash {
			return uc.finishCash(ctx, tx, userID, set, idempotencyKey, now)
		}

		session, err = payment.NewSession(
			userID,
			set.OrderIDs(),
			uc.cfg.Server.AppTag,
			set.Total,
			uc.cfg.Payment.Currency,
			now,
			uc.cfg.Payment.SessionTTL,
			uc.cfg.Payment.ExpiryGrace,
		)
		if err != nil {
			return err
		}
		return tx.PaymentSessions().Create(ctx, tx.DB(), session)
	})
	if err != nil {
		return nil, err
	}

	result := &CheckoutResult{OrderIDs: set.OrderIDs(), Total: set.Total}
	if method == order.PaymentCash {
		slog.InfoContext(ctx, "checkout placed",
			"user_id", caller.UserID,
			"order_ids", result.OrderIDs,
			"payment_method", method.String(),
			"total", set.Total.String())
		return result, nil
	}

	// 注文はコミット済み。ここから先の失敗は Listener の失敗経路で注文をキャンセルする
	created, err := uc.initiator.Initiate(ctx, session)
	if err != nil {
		return nil, err
	}
	result.RedirectSessionID = created.ExternalID

	if idempotencyKey != uuid.Nil {
		uc.completeIdempotencyKey(ctx, caller.UserID, idempotencyKey, result)
	}

	slog.InfoContext(ctx, "checkout awaiting payment",
		"user_id", caller.UserID,
		"order_ids", result.OrderIDs,
		"payment_session_id", session.ID(),
		"total", set.Total.String())
	return result, nil
}

// evaluateCoupon returns nil when no code was supplied.
func (uc *checkoutUseCaseImpl) evaluateCoupon(
	ctx context.Context,
	reads shared.CommandReads,
	caller user.Caller,
	code *coupon.Code,
	now time.Time,
) (*coupon.Coupon, error) {
	if code == nil {
		return nil, nil
	}

	c, err := reads.CouponByCode(ctx, *code)
	if err != nil {
		return nil, err
	}

	prior := 0
	if c != nil && c.ForNewUsersOnly() {
		prior, err = reads.CountPriorOrders(ctx, caller.UserID)
		if err != nil {
			return nil, err
		}
	}

	decision := coupon.Evaluate(c, coupon.EligibilityInput{
		UserID:      caller.UserID,
		PriorOrders: prior,
		IsMember:    caller.HasPlan(uc.cfg.Checkout.MemberPlan),
		Now:         now,
	})
	if !decision.Accepted() {
		return nil, errs.Wrapf(decision.Err(), "coupon %s", code.String())
	}
	return decision.Coupon(), nil
}

// finishCash settles a CASH checkout inside the compose transaction.
func (uc *checkoutUseCaseImpl) finishCash(
	ctx context.Context,
	tx shared.Tx,
	userID uuid.UUID,
	set *order.Set,
	idempotencyKey uuid.UUID,
	now time.Time,
) error {
	if err := tx.Users().ClearCart(ctx, tx.DB(), userID); err != nil {
		return err
	}

	msg, err := newOrdersEvent(shared.EventOrdersPlaced, ordersEventPayload{
		UserID:        userID,
		OrderIDs:      set.OrderIDs(),
		Total:         set.Total.String(),
		PaymentMethod: order.PaymentCash.String(),
	}, now)
	if err != nil {
		return err
	}
	if err = tx.Outbox().Enqueue(ctx, tx.DB(), msg); err != nil {
		return err
	}

	if idempotencyKey == uuid.Nil {
		return nil
	}
	body, err := json.Marshal(checkoutRecord{OrderIDs: set.OrderIDs(), Total: set.Total.String()})
	if err != nil {
		return errs.Wrap(err, "marshal checkout result")
	}
	return tx.Idempotency().Complete(ctx, tx.DB(), idempotencyKey, userID, body)
}

// claimIdempotencyKey returns the stored result when the key was already completed.
func (uc *checkoutUseCaseImpl) claimIdempotencyKey(
	ctx context.Context,
	userID, key uuid.UUID,
	in CheckoutInput,
) (*CheckoutResult, error) {
	requestHash := calculateRequestHash(in)
	expiresAt := uc.clock.Now().Add(uc.cfg.Checkout.IdempotencyTTL)

	var inserted bool
	err := uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		var ierr error
		inserted, ierr = tx.Idempotency().TryInsert(ctx, tx.DB(), key, userID, checkoutEndpoint, requestHash, expiresAt)
		return ierr
	})
	if err != nil {
		return nil, err
	}
	if inserted {
		return nil, nil
	}

	existing, err := uc.uow.CommandReads().IdempotencyByKey(ctx, key, userID)
	if err != nil {
		return nil, err
	}
	if existing == nil {
		// released between the insert attempt and the read
		return nil, ErrIdempotencyInProgress
	}
	if existing.RequestHash != requestHash {
		return nil, ErrIdempotencyMismatch
	}

	switch existing.Status {
	case shared.IdempotencyCompleted:
		var rec checkoutRecord
		if err = json.Unmarshal(existing.Result, &rec); err != nil {
			return nil, errs.Wrap(err, "decode stored checkout result")
		}
		total, err := order.MoneyFromString(rec.Total)
		if err != nil {
			return nil, errs.Wrap(err, "decode stored checkout total")
		}
		return &CheckoutResult{
			OrderIDs:          rec.OrderIDs,
			Total:             total,
			RedirectSessionID: rec.RedirectSessionID,
			IsReplayed:        true,
		}, nil
	case shared.IdempotencyProcessing:
		return nil, ErrIdempotencyInProgress
	default:
		return nil, errs.Newf("invalid idempotency key status %q", existing.Status)
	}
}

func (uc *checkoutUseCaseImpl) completeIdempotencyKey(ctx context.Context, userID, key uuid.UUID, result *CheckoutResult) {
	body, err := json.Marshal(checkoutRecord{
		OrderIDs:          result.OrderIDs,
		Total:             result.Total.String(),
		RedirectSessionID: result.RedirectSessionID,
	})
	if err == nil {
		err = uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
			return tx.Idempotency().Complete(ctx, tx.DB(), key, userID, body)
		})
	}
	if err != nil {
		// the checkout itself succeeded; a retry with this key will see "processing" until it expires
		slog.WarnContext(ctx, "failed to complete idempotency key", "idempotency_key", key, "error", err)
	}
}

func (uc *checkoutUseCaseImpl) releaseIdempotencyKey(ctx context.Context, userID, key uuid.UUID) {
	err := uc.uow.Within(context.WithoutCancel(ctx), func(ctx context.Context, tx shared.Tx) error {
		return tx.Idempotency().Release(ctx, tx.DB(), key, userID)
	})
	if err != nil {
		slog.WarnContext(ctx, "failed to release idempotency key", "idempotency_key", key, "error", err)
	}
}

func calculateRequestHash(in CheckoutInput) string {
	data, _ := json.Marshal(in)
	hash := sha256.Sum256(data)
	return hex.EncodeToString(hash[:])
}

func checkoutOutcome(result *CheckoutResult, err error) string {
	switch {
	case err == nil && result.IsReplayed:
		return "replayed"
	case err == nil:
		return "placed"
	case errs.Is(err, errs.ErrExternalService):
		return "gateway_failed"
	case errs.IsAny(err, errs.ErrValidation, errs.ErrEligibility, errs.ErrNotFound, errs.ErrConflict):
		return "rejected"
	default:
		return "error"
	}
}
