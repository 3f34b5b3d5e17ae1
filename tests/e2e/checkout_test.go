//go:build e2e

package e2e

import (
	"context"
	"net/http"
	"testing"
	"time"

	"gocart/internal/handler/dto/request"
	"gocart/internal/handler/dto/response"
	"gocart/internal/usecase/shared"
	"gocart/tests/common/dbtest"
	"gocart/tests/common/httptest"
	"gocart/tests/e2e/common/helper"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
)

type CheckoutE2ESuite struct {
	SharedSuite
	jwt *helper.JWTTestHelper

	userID    uuid.UUID
	addressID uuid.UUID
	mugID     uuid.UUID // store A, 10.00
	teeID     uuid.UUID // store B, 20.00
}

func TestCheckoutE2E(t *testing.T) {
	suite.Run(t, new(CheckoutE2ESuite))
}

func (s *CheckoutE2ESuite) SetupSuite() {
	s.SharedSuite.SetupSuite()
	s.jwt = helper.NewJWTTestHelper(s.Config.JWT)
}

func (s *CheckoutE2ESuite) SetupTest() {
	s.SharedSuite.SetupTest()
	s.seedCatalog()
}

func (s *CheckoutE2ESuite) SetupSubTest() {
	s.SharedSuite.SetupSubTest()
	s.seedCatalog()
}

func (s *CheckoutE2ESuite) seedCatalog() {
	t := s.T()
	s.userID = dbtest.CreateTestUser(t, s.DB, "buyer@example.com")
	s.addressID = dbtest.CreateTestAddress(t, s.DB, s.userID)
	storeA := dbtest.CreateTestStore(t, s.DB, "Store A", true)
	storeB := dbtest.CreateTestStore(t, s.DB, "Store B", true)
	s.mugID = dbtest.CreateTestProduct(t, s.DB, storeA, "mug", "10.00", true)
	s.teeID = dbtest.CreateTestProduct(t, s.DB, storeB, "tee", "20.00", true)
}

func (s *CheckoutE2ESuite) checkoutRequest(method string, coupon *string) request.CheckoutRequest {
	return request.CheckoutRequest{
		AddressID: s.addressID,
		CartLines: []request.CartLineRequest{
			{ProductID: s.mugID, Quantity: 2},
			{ProductID: s.teeID, Quantity: 1},
		},
		CouponCode:    coupon,
		PaymentMethod: method,
	}
}

func (s *CheckoutE2ESuite) orderStatuses(ids []uuid.UUID) []string {
	statuses := make([]string, 0, len(ids))
	for _, id := range ids {
		var status string
		s.Require().NoError(s.DB.QueryRow(context.Background(), "SELECT status FROM orders WHERE id = $1", id).Scan(&status))
		statuses = append(statuses, status)
	}
	return statuses
}

func (s *CheckoutE2ESuite) countRows(query string, args ...any) int {
	var n int
	s.Require().NoError(s.DB.QueryRow(context.Background(), query, args...).Scan(&n))
	return n
}

func (s *CheckoutE2ESuite) TestCheckout_Cash() {
	s.Run("店舗ごとに注文が分かれ、即時に支払い済みになる", func() {
		token := s.jwt.GenerateToken(s.T(), s.userID)
		_, err := s.DB.Exec(context.Background(), "UPDATE users SET cart = $2::jsonb WHERE id = $1",
			s.userID, `[{"productId":"`+s.mugID.String()+`","quantity":2}]`)
		s.Require().NoError(err)

		w := httptest.PerformRequest(s.T(), s.Router, http.MethodPost, "/api/checkout", s.checkoutRequest("CASH", nil), token)

		var res response.CheckoutResponse
		httptest.AssertSuccessResponse(s.T(), w, http.StatusCreated, &res)
		s.Len(res.OrderIDs, 2)
		s.Equal("45.00", res.Total)
		s.Empty(res.RedirectSessionID)
		s.Equal([]string{"PAID", "PAID"}, s.orderStatuses(res.OrderIDs))

		var cart string
		s.Require().NoError(s.DB.QueryRow(context.Background(), "SELECT cart::text FROM users WHERE id = $1", s.userID).Scan(&cart))
		s.Equal("[]", cart)

		s.Equal(1, s.countRows("SELECT count(*) FROM outbox_events WHERE event_type = $1", shared.EventOrdersPlaced))
		s.Empty(s.Gateway.Inputs())
	})

	s.Run("coupon discounts every order but not the shipping fee", func() {
		dbtest.CreateTestCoupon(s.T(), s.DB, dbtest.CouponFixture{Code: "SPRING", DiscountPercent: "10"})
		token := s.jwt.GenerateToken(s.T(), s.userID)
		code := "spring"

		w := httptest.PerformRequest(s.T(), s.Router, http.MethodPost, "/api/checkout", s.checkoutRequest("CASH", &code), token)

		var res response.CheckoutResponse
		httptest.AssertSuccessResponse(s.T(), w, http.StatusCreated, &res)
		s.Equal("41.00", res.Total)

		w = httptest.PerformRequest(s.T(), s.Router, http.MethodGet, "/api/orders", nil, token)
		var orders []response.OrderResponse
		httptest.AssertSuccessResponse(s.T(), w, http.StatusOK, &orders)
		s.Require().Len(orders, 2)
		for _, o := range orders {
			s.Require().NotNil(o.Coupon)
			s.Equal("SPRING", o.Coupon.Code)
		}
	})

	s.Run("pro プランは送料無料", func() {
		token := s.jwt.GenerateToken(s.T(), s.userID, "pro")

		w := httptest.PerformRequest(s.T(), s.Router, http.MethodPost, "/api/checkout", s.checkoutRequest("CASH", nil), token)

		var res response.CheckoutResponse
		httptest.AssertSuccessResponse(s.T(), w, http.StatusCreated, &res)
		s.Equal("40.00", res.Total)
	})
}

func (s *CheckoutE2ESuite) TestCheckout_Rejections() {
	s.Run("在庫切れの商品があると注文は一件も作られない", func() {
		_, err := s.DB.Exec(context.Background(), "UPDATE products SET in_stock = false WHERE id = $1", s.teeID)
		s.Require().NoError(err)
		token := s.jwt.GenerateToken(s.T(), s.userID)

		w := httptest.PerformRequest(s.T(), s.Router, http.MethodPost, "/api/checkout", s.checkoutRequest("CASH", nil), token)

		httptest.AssertErrorResponse(s.T(), w, http.StatusNotFound, "")
		s.Equal(0, s.countRows("SELECT count(*) FROM orders"))
	})

	s.Run("someone else's address", func() {
		other := dbtest.CreateTestUser(s.T(), s.DB, "other@example.com")
		token := s.jwt.GenerateToken(s.T(), other)

		w := httptest.PerformRequest(s.T(), s.Router, http.MethodPost, "/api/checkout", s.checkoutRequest("CASH", nil), token)

		httptest.AssertErrorResponse(s.T(), w, http.StatusBadRequest, "")
		s.Equal(0, s.countRows("SELECT count(*) FROM orders"))
	})

	s.Run("expired coupon", func() {
		dbtest.CreateTestCoupon(s.T(), s.DB, dbtest.CouponFixture{
			Code: "OLD", DiscountPercent: "50", ExpiresAt: time.Now().Add(-time.Hour),
		})
		token := s.jwt.GenerateToken(s.T(), s.userID)
		code := "OLD"

		w := httptest.PerformRequest(s.T(), s.Router, http.MethodPost, "/api/checkout", s.checkoutRequest("CASH", &code), token)

		httptest.AssertErrorResponse(s.T(), w, http.StatusGone, "")
	})

	s.Run("members-only coupon without the plan", func() {
		dbtest.CreateTestCoupon(s.T(), s.DB, dbtest.CouponFixture{Code: "PRO20", DiscountPercent: "20", MembersOnly: true})
		token := s.jwt.GenerateToken(s.T(), s.userID)
		code := "PRO20"

		w := httptest.PerformRequest(s.T(), s.Router, http.MethodPost, "/api/checkout", s.checkoutRequest("CASH", &code), token)

		httptest.AssertErrorResponse(s.T(), w, http.StatusBadRequest, "")
	})

	s.Run("期限切れトークン", func() {
		token := s.jwt.CreateExpiredToken(s.T(), s.userID)

		w := httptest.PerformRequest(s.T(), s.Router, http.MethodPost, "/api/checkout", s.checkoutRequest("CASH", nil), token)

		httptest.AssertErrorResponse(s.T(), w, http.StatusUnauthorized, "")
	})
}

func (s *CheckoutE2ESuite) TestCheckout_Idempotency() {
	s.Run("同じキーの再送は同じ結果を返す", func() {
		token := s.jwt.GenerateToken(s.T(), s.userID)
		headers := map[string]string{"Idempotency-Key": uuid.NewString()}

		first := httptest.PerformRequestWithHeaders(s.T(), s.Router, http.MethodPost, "/api/checkout", s.checkoutRequest("CASH", nil), token, headers)
		var res1 response.CheckoutResponse
		httptest.AssertSuccessResponse(s.T(), first, http.StatusCreated, &res1)

		second := httptest.PerformRequestWithHeaders(s.T(), s.Router, http.MethodPost, "/api/checkout", s.checkoutRequest("CASH", nil), token, headers)
		var res2 response.CheckoutResponse
		httptest.AssertSuccessResponse(s.T(), second, http.StatusOK, &res2)

		s.Equal(res1.OrderIDs, res2.OrderIDs)
		s.Equal(res1.Total, res2.Total)
		s.Equal(2, s.countRows("SELECT count(*) FROM orders"))
	})

	s.Run("same key with a different body", func() {
		token := s.jwt.GenerateToken(s.T(), s.userID)
		headers := map[string]string{"Idempotency-Key": uuid.NewString()}

		first := httptest.PerformRequestWithHeaders(s.T(), s.Router, http.MethodPost, "/api/checkout", s.checkoutRequest("CASH", nil), token, headers)
		s.Equal(http.StatusCreated, first.Code, first.Body.String())

		changed := s.checkoutRequest("CASH", nil)
		changed.CartLines[0].Quantity = 3
		second := httptest.PerformRequestWithHeaders(s.T(), s.Router, http.MethodPost, "/api/checkout", changed, token, headers)
		httptest.AssertErrorResponse(s.T(), second, http.StatusConflict, "")
	})
}
