//go:build unit

package commands_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"gocart/internal/domain/cart"
	"gocart/internal/domain/coupon"
	"gocart/internal/domain/order"
	"gocart/internal/domain/payment"
	"gocart/internal/domain/user"
	"gocart/internal/pkg/errs"
	"gocart/internal/usecase/commands"
	"gocart/internal/usecase/shared"
	"gocart/tests/common/builder"
	"gocart/tests/common/memuow"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/suite"
)

type CheckoutTestSuite struct {
	suite.Suite
	f       *usecaseFixture
	caller  user.Caller
	address uuid.UUID
	storeA  uuid.UUID
	p1      *builder.ProductBuilder
	p2      *builder.ProductBuilder
}

func (s *CheckoutTestSuite) SetupTest() {
	s.f = newUsecaseFixture()

	var err error
	s.caller, err = builder.NewCallerBuilder().BuildDomain()
	s.Require().NoError(err)
	s.address = s.f.addAddress(s.caller.UserID)

	s.storeA = uuid.New()
	s.p1 = builder.NewProductBuilder().InStore(s.storeA).WithPrice("10.00")
	s.p2 = builder.NewProductBuilder().InStore(s.storeA).WithPrice("15.00")
	s.f.addProducts(s.p1, s.p2)

	s.f.store.SetCart(s.caller.UserID, s.lines())
}

func TestCheckoutSuite(t *testing.T) {
	suite.Run(t, new(CheckoutTestSuite))
}

func (s *CheckoutTestSuite) lines() cart.Cart {
	return cart.Cart{s.p1.Line(2), s.p2.Line(1)}
}

func (s *CheckoutTestSuite) input(method order.PaymentMethod) commands.CheckoutInput {
	return commands.CheckoutInput{
		AddressID:     s.address,
		Lines:         s.lines(),
		PaymentMethod: method.String(),
	}
}

func (s *CheckoutTestSuite) run(in commands.CheckoutInput, key uuid.UUID) (*commands.CheckoutResult, error) {
	return s.f.checkout.Checkout(context.Background(), s.caller, in, key)
}

// ================================================================================
// CASH
// ================================================================================

func (s *CheckoutTestSuite) TestCash() {
	s.Run("注文は支払済みで作成されカートが空になる", func() {
		res, err := s.run(s.input(order.PaymentCash), uuid.Nil)
		s.Require().NoError(err)

		s.Len(res.OrderIDs, 1)
		s.Equal("40.00", res.Total.String())
		s.Empty(res.RedirectSessionID)
		s.False(res.IsReplayed)

		s.Equal([]order.Status{order.StatusPaid}, s.f.statuses(res.OrderIDs))
		s.Empty(s.f.store.Cart(s.caller.UserID))
		s.Equal(1, s.f.store.CartClears(s.caller.UserID))
		s.Empty(s.f.store.Sessions())
		s.Empty(s.f.gateway.Calls())

		outbox := s.f.store.Outbox()
		s.Require().Len(outbox, 1)
		s.Equal(shared.EventOrdersPlaced, outbox[0].Message.EventType)
		s.Equal(s.caller.UserID.String(), outbox[0].Message.AggregateID)

		s.Equal(float64(1), testutil.ToFloat64(s.f.metrics.Checkouts.WithLabelValues("CASH", "placed")))
	})
}

// ================================================================================
// PROCESSOR
// ================================================================================

func (s *CheckoutTestSuite) TestProcessor() {
	s.Run("success: orders stay pending and a processor session is opened", func() {
		res, err := s.run(s.input(order.PaymentProcessor), uuid.Nil)
		s.Require().NoError(err)

		s.Equal([]order.Status{order.StatusPending}, s.f.statuses(res.OrderIDs))
		// 決済確定まではカートを触らない
		s.Len(s.f.store.Cart(s.caller.UserID), 2)
		s.Zero(s.f.store.CartClears(s.caller.UserID))
		s.Empty(s.f.store.Outbox())

		sessions := s.f.store.Sessions()
		s.Require().Len(sessions, 1)
		ps := sessions[0]
		s.Equal(payment.StatusAwaiting, ps.Status())
		s.Equal(res.OrderIDs, ps.OrderIDs())
		s.Equal("cs_test_"+ps.ID().String(), ps.ExternalID())
		s.Equal(ps.ExternalID(), res.RedirectSessionID)

		calls := s.f.gateway.Calls()
		s.Require().Len(calls, 1)
		call := calls[0]
		s.Equal(ps.ID().String(), call.IdempotencyKey)
		s.Equal("40.00", call.Amount.String())
		s.Equal("usd", call.Currency)
		s.Equal(ps.Metadata(), call.Metadata)
		s.Equal("gocart", call.Metadata.AppTag)
		s.Equal(s.f.clock.Now().Add(31*time.Minute), call.ExpiresAt)
		s.Equal(s.f.clock.Now().Add(41*time.Minute), ps.ExpiresAt())
	})

	s.Run("gateway failure cancels every order of the checkout", func() {
		s.SetupTest()
		s.f.gateway.err = errors.New("dial tcp: i/o timeout")
		key := uuid.New()

		res, err := s.run(s.input(order.PaymentProcessor), key)
		s.Require().Error(err)
		s.Nil(res)
		s.True(errs.Is(err, shared.ErrGatewayUnavailable))
		s.True(errs.Is(err, errs.ErrExternalService))

		orders := s.f.store.Orders()
		s.Require().Len(orders, 1)
		s.Equal(order.StatusCancelled, orders[0].Status())

		sessions := s.f.store.Sessions()
		s.Require().Len(sessions, 1)
		s.Equal(payment.StatusConsumed, sessions[0].Status())
		s.Equal(payment.ResolutionCancelled, sessions[0].Resolution())

		s.Len(s.f.store.Cart(s.caller.UserID), 2)
		outbox := s.f.store.Outbox()
		s.Require().Len(outbox, 1)
		s.Equal(shared.EventOrdersCancelled, outbox[0].Message.EventType)

		// キーは解放され再試行できる
		_, ok := s.f.store.Idempotency(key, s.caller.UserID)
		s.False(ok)
		s.Equal(float64(1), testutil.ToFloat64(s.f.metrics.Checkouts.WithLabelValues("PROCESSOR", "gateway_failed")))
	})

	s.Run("an already classified gateway error is passed through", func() {
		s.SetupTest()
		open := errs.Mark(errs.New("circuit breaker is open"), errs.ErrExternalService)
		s.f.gateway.err = open

		_, err := s.run(s.input(order.PaymentProcessor), uuid.Nil)
		s.Require().Error(err)
		s.True(errs.Is(err, errs.ErrExternalService))
		s.Equal(open, err)
	})

	s.Run("attach failure does not fail the checkout", func() {
		s.SetupTest()
		s.f.store.Fail(memuow.OpAttachExternal, errors.New("connection reset"))

		res, err := s.run(s.input(order.PaymentProcessor), uuid.Nil)
		s.Require().NoError(err)
		s.NotEmpty(res.RedirectSessionID)
		s.Equal([]order.Status{order.StatusPending}, s.f.statuses(res.OrderIDs))
	})
}

// ================================================================================
// Pricing & grouping
// ================================================================================

func (s *CheckoutTestSuite) TestPricing() {
	s.Run("クーポン10%適用で36.50", func() {
		c, err := builder.NewCouponBuilder().WithCode("SAVE10").WithPercent("10").BuildDomain()
		s.Require().NoError(err)
		s.f.store.AddCoupon(c)

		in := s.input(order.PaymentCash)
		in.CouponCode = "save10"
		res, err := s.run(in, uuid.Nil)
		s.Require().NoError(err)
		s.Equal("36.50", res.Total.String())

		o, ok := s.f.store.Order(res.OrderIDs[0])
		s.Require().True(ok)
		s.Require().NotNil(o.Coupon())
		s.Equal("SAVE10", o.Coupon().Code)
	})

	s.Run("one order per store with a single shipping fee", func() {
		s.SetupTest()
		other := builder.NewProductBuilder().WithPrice("7.25")
		s.f.addProducts(other)

		in := s.input(order.PaymentProcessor)
		in.Lines = append(in.Lines, other.Line(2))
		res, err := s.run(in, uuid.Nil)
		s.Require().NoError(err)
		s.Require().Len(res.OrderIDs, 2)
		s.Equal("54.50", res.Total.String())

		first, _ := s.f.store.Order(res.OrderIDs[0])
		second, _ := s.f.store.Order(res.OrderIDs[1])
		s.Equal(s.storeA, first.StoreID())
		s.Equal("5.00", first.ShippingFee().String())
		s.True(second.ShippingFee().IsZero())

		// 1セッションで全注文をまとめて決済する
		sessions := s.f.store.Sessions()
		s.Require().Len(sessions, 1)
		s.ElementsMatch(res.OrderIDs, sessions[0].OrderIDs())
		s.Equal("54.50", s.f.gateway.Calls()[0].Amount.String())
	})

	s.Run("shipping waiver plan", func() {
		s.SetupTest()
		caller, err := builder.NewCallerBuilder().WithUserID(s.caller.UserID).WithPlans("pro").BuildDomain()
		s.Require().NoError(err)

		res, err := s.f.checkout.Checkout(context.Background(), caller, s.input(order.PaymentCash), uuid.Nil)
		s.Require().NoError(err)
		s.Equal("35.00", res.Total.String())
	})
}

// ================================================================================
// Rejections
// ================================================================================

func (s *CheckoutTestSuite) TestRejections() {
	type testCase struct {
		name   string
		setup  func(in *commands.CheckoutInput)
		expect error
		kind   error
	}

	cases := []testCase{
		{
			name:   "empty lines",
			setup:  func(in *commands.CheckoutInput) { in.Lines = nil },
			expect: cart.ErrEmptyCart,
			kind:   errs.ErrValidation,
		},
		{
			name:   "missing address",
			setup:  func(in *commands.CheckoutInput) { in.AddressID = uuid.Nil },
			expect: order.ErrAddressRequired,
			kind:   errs.ErrValidation,
		},
		{
			name:   "unknown payment method",
			setup:  func(in *commands.CheckoutInput) { in.PaymentMethod = "CARD" },
			expect: order.ErrInvalidPaymentMethod,
			kind:   errs.ErrValidation,
		},
		{
			name:   "malformed coupon code",
			setup:  func(in *commands.CheckoutInput) { in.CouponCode = "no spaces allowed" },
			expect: coupon.ErrInvalidCode,
			kind:   errs.ErrValidation,
		},
		{
			name:   "address of another user",
			setup:  func(in *commands.CheckoutInput) { in.AddressID = s.f.addAddress(uuid.New()) },
			expect: commands.ErrAddressInvalid,
			kind:   errs.ErrValidation,
		},
		{
			name:   "unknown address",
			setup:  func(in *commands.CheckoutInput) { in.AddressID = uuid.New() },
			expect: commands.ErrAddressInvalid,
			kind:   errs.ErrValidation,
		},
		{
			name:   "unknown coupon",
			setup:  func(in *commands.CheckoutInput) { in.CouponCode = "NOPE" },
			expect: coupon.ErrNotFound,
			kind:   errs.ErrNotFound,
		},
		{
			name: "expired coupon",
			setup: func(in *commands.CheckoutInput) {
				c, _ := builder.NewCouponBuilder().WithCode("OLD").ExpiringAt(s.f.clock.Now()).BuildDomain()
				s.f.store.AddCoupon(c)
				in.CouponCode = "OLD"
			},
			expect: coupon.ErrExpired,
			kind:   errs.ErrNotFound,
		},
		{
			name: "new-user coupon for a returning buyer",
			setup: func(in *commands.CheckoutInput) {
				c, _ := builder.NewCouponBuilder().WithCode("WELCOME").ForNewUsers().BuildDomain()
				s.f.store.AddCoupon(c)
				s.f.store.AddOrder(builder.NewOrderBuilder().ForUser(s.caller.UserID).WithStatus(order.StatusPaid).BuildDomain())
				in.CouponCode = "WELCOME"
			},
			expect: coupon.ErrNewUsersOnly,
			kind:   errs.ErrEligibility,
		},
		{
			name: "member coupon for a non-member",
			setup: func(in *commands.CheckoutInput) {
				c, _ := builder.NewCouponBuilder().WithCode("MEMBERS").ForMembers().BuildDomain()
				s.f.store.AddCoupon(c)
				in.CouponCode = "MEMBERS"
			},
			expect: coupon.ErrMembersOnly,
			kind:   errs.ErrEligibility,
		},
	}

	for _, tc := range cases {
		s.Run(tc.name, func() {
			s.SetupTest()
			in := s.input(order.PaymentCash)
			tc.setup(&in)

			before := len(s.f.store.Orders())
			res, err := s.run(in, uuid.Nil)
			s.Require().Error(err)
			s.Nil(res)
			s.True(errs.Is(err, tc.expect), "got %v", err)
			s.True(errs.Is(err, tc.kind), "got %v", err)

			s.Len(s.f.store.Orders(), before)
			s.Empty(s.f.store.Outbox())
			s.Len(s.f.store.Cart(s.caller.UserID), 2)
		})
	}

	s.Run("anonymous caller", func() {
		s.SetupTest()
		_, err := s.f.checkout.Checkout(context.Background(), user.Caller{}, s.input(order.PaymentCash), uuid.Nil)
		s.ErrorIs(err, user.ErrAnonymousCaller)
	})

	s.Run("cancelled orders do not count against new-user coupons", func() {
		s.SetupTest()
		c, err := builder.NewCouponBuilder().WithCode("WELCOME").ForNewUsers().BuildDomain()
		s.Require().NoError(err)
		s.f.store.AddCoupon(c)
		s.f.store.AddOrder(builder.NewOrderBuilder().ForUser(s.caller.UserID).WithStatus(order.StatusCancelled).BuildDomain())

		in := s.input(order.PaymentCash)
		in.CouponCode = "WELCOME"
		_, err = s.run(in, uuid.Nil)
		s.NoError(err)
	})

	s.Run("member coupon for a member", func() {
		s.SetupTest()
		c, err := builder.NewCouponBuilder().WithCode("MEMBERS").ForMembers().BuildDomain()
		s.Require().NoError(err)
		s.f.store.AddCoupon(c)
		caller, err := builder.NewCallerBuilder().WithUserID(s.caller.UserID).AsMember().BuildDomain()
		s.Require().NoError(err)

		in := s.input(order.PaymentCash)
		in.CouponCode = "MEMBERS"
		_, err = s.f.checkout.Checkout(context.Background(), caller, in, uuid.Nil)
		s.NoError(err)
	})
}

// ================================================================================
// All-or-nothing
// ================================================================================

func (s *CheckoutTestSuite) TestAllOrNothing() {
	s.Run("3行中2行目の商品が存在しなければ注文は1件も作られない", func() {
		other := builder.NewProductBuilder().InStore(uuid.New())
		missing := builder.NewProductBuilder()
		s.f.addProducts(other)

		in := s.input(order.PaymentProcessor)
		in.Lines = cart.Cart{s.p1.Line(1), missing.Line(1), other.Line(1)}

		_, err := s.run(in, uuid.Nil)
		var unavailable *order.ProductUnavailableError
		s.Require().True(errs.As(err, &unavailable))
		s.Equal(missing.ID, unavailable.ProductID)
		s.True(errs.Is(err, errs.ErrNotFound))

		s.Empty(s.f.store.Orders())
		s.Empty(s.f.store.Sessions())
		s.Empty(s.f.gateway.Calls())
	})

	s.Run("unavailable product", func() {
		s.SetupTest()
		off := builder.NewProductBuilder().Unavailable()
		s.f.addProducts(off)

		in := s.input(order.PaymentCash)
		in.Lines = append(in.Lines, off.Line(1))
		_, err := s.run(in, uuid.Nil)
		s.True(errs.Is(err, order.ErrProductUnavailable))
		s.Empty(s.f.store.Orders())
	})

	s.Run("storage failure after orders were written rolls everything back", func() {
		s.SetupTest()
		s.f.store.Fail(memuow.OpEnqueue, errors.New("disk full"))

		_, err := s.run(s.input(order.PaymentCash), uuid.Nil)
		s.Require().Error(err)
		s.Empty(s.f.store.Orders())
		s.Len(s.f.store.Cart(s.caller.UserID), 2)
		s.Zero(s.f.store.CartClears(s.caller.UserID))
	})

	s.Run("session write failure leaves no orders behind", func() {
		s.SetupTest()
		s.f.store.Fail(memuow.OpCreateSession, errors.New("deadlock detected"))

		_, err := s.run(s.input(order.PaymentProcessor), uuid.Nil)
		s.Require().Error(err)
		s.Empty(s.f.store.Orders())
		s.Empty(s.f.gateway.Calls())
	})
}

// ================================================================================
// Idempotency
// ================================================================================

func (s *CheckoutTestSuite) TestIdempotency() {
	s.Run("同じキーの再送は保存済みの結果を返す", func() {
		key := uuid.New()

		first, err := s.run(s.input(order.PaymentProcessor), key)
		s.Require().NoError(err)
		second, err := s.run(s.input(order.PaymentProcessor), key)
		s.Require().NoError(err)

		s.True(second.IsReplayed)
		s.Equal(first.OrderIDs, second.OrderIDs)
		s.Equal(first.Total.String(), second.Total.String())
		s.Equal(first.RedirectSessionID, second.RedirectSessionID)

		s.Len(s.f.store.Orders(), 1)
		s.Len(s.f.gateway.Calls(), 1)

		rec, ok := s.f.store.Idempotency(key, s.caller.UserID)
		s.Require().True(ok)
		s.Equal(shared.IdempotencyCompleted, rec.Status)
	})

	s.Run("cash replay", func() {
		s.SetupTest()
		key := uuid.New()

		first, err := s.run(s.input(order.PaymentCash), key)
		s.Require().NoError(err)
		second, err := s.run(s.input(order.PaymentCash), key)
		s.Require().NoError(err)

		s.True(second.IsReplayed)
		s.Equal(first.OrderIDs, second.OrderIDs)
		s.Len(s.f.store.Outbox(), 1)
	})

	s.Run("same key with a different body is rejected", func() {
		s.SetupTest()
		key := uuid.New()

		_, err := s.run(s.input(order.PaymentCash), key)
		s.Require().NoError(err)

		in := s.input(order.PaymentCash)
		in.Lines = cart.Cart{s.p1.Line(1)}
		_, err = s.run(in, key)
		s.ErrorIs(err, commands.ErrIdempotencyMismatch)
		s.True(errs.Is(err, errs.ErrConflict))
		s.Len(s.f.store.Orders(), 1)
	})

	s.Run("keys are scoped per user", func() {
		s.SetupTest()
		key := uuid.New()
		_, err := s.run(s.input(order.PaymentCash), key)
		s.Require().NoError(err)

		other, err := builder.NewCallerBuilder().BuildDomain()
		s.Require().NoError(err)
		in := s.input(order.PaymentCash)
		in.AddressID = s.f.addAddress(other.UserID)

		res, err := s.f.checkout.Checkout(context.Background(), other, in, key)
		s.Require().NoError(err)
		s.False(res.IsReplayed)
		s.Len(s.f.store.Orders(), 2)
	})

	s.Run("a retry while the first request is in flight is refused", func() {
		s.SetupTest()
		key := uuid.New()
		in := s.input(order.PaymentProcessor)

		var inFlightErr error
		s.f.gateway.hook = func(ctx context.Context) {
			s.f.gateway.hook = nil
			_, inFlightErr = s.f.checkout.Checkout(ctx, s.caller, in, key)
		}

		_, err := s.run(in, key)
		s.Require().NoError(err)
		s.ErrorIs(inFlightErr, commands.ErrIdempotencyInProgress)
		s.Len(s.f.store.Orders(), 1)
	})

	s.Run("a failed attempt releases the key", func() {
		s.SetupTest()
		key := uuid.New()
		in := s.input(order.PaymentCash)
		in.CouponCode = "NOPE"

		_, err := s.run(in, key)
		s.Require().Error(err)
		_, ok := s.f.store.Idempotency(key, s.caller.UserID)
		s.False(ok)
	})
}
