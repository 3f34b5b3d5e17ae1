//go:build unit

package api_test

import (
	"net/http"
	"testing"
	"time"

	"gocart/internal/domain/user"
	"gocart/internal/handler/api"
	resdto "gocart/internal/handler/dto/response"
	"gocart/internal/usecase/queries"
	"gocart/tests/common/httptest"
	queriesmock "gocart/tests/mock/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/go-cmp/cmp"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

type OrderHandlerTestSuite struct {
	suite.Suite
	router      *gin.Engine
	mockCtrl    *gomock.Controller
	mockQueries *queriesmock.MockOrderQueries
	caller      user.Caller
}

func (s *OrderHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	s.router = gin.New()

	s.mockCtrl = gomock.NewController(s.T())
	s.mockQueries = queriesmock.NewMockOrderQueries(s.mockCtrl)
	s.caller = testCaller()

	h := api.NewOrderHandler(s.mockQueries)
	s.router.GET("/orders", fakeAuth(s.caller), h.List)
}

func (s *OrderHandlerTestSuite) TearDownTest() {
	s.mockCtrl.Finish()
}

func TestOrderHandlerSuite(t *testing.T) {
	suite.Run(t, new(OrderHandlerTestSuite))
}

func (s *OrderHandlerTestSuite) TestList() {
	created := time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC)
	view := &queries.OrderView{
		ID:            uuid.New(),
		StoreID:       uuid.New(),
		AddressID:     uuid.New(),
		PaymentMethod: "PROCESSOR",
		Status:        "PAID",
		Subtotal:      decimal.RequireFromString("40"),
		ShippingFee:   decimal.RequireFromString("5"),
		Total:         decimal.RequireFromString("41.5"),
		Coupon: &queries.OrderCouponView{
			Code:            "SPRING",
			DiscountPercent: decimal.NewFromInt(10),
			Description:     "spring sale",
		},
		Items: []queries.OrderItemView{
			{ProductID: uuid.New(), ProductName: "mug", Quantity: 2, UnitPrice: decimal.RequireFromString("20")},
		},
		CreatedAt: created,
	}

	s.Run("success: 金額は文字列で小数2桁", func() {
		s.mockQueries.EXPECT().ListMine(gomock.Any(), s.caller, 0).Return([]*queries.OrderView{view}, nil)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/orders", nil, "bearer-token")

		var res []resdto.OrderResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &res)

		want := []resdto.OrderResponse{{
			ID:            view.ID,
			StoreID:       view.StoreID,
			AddressID:     view.AddressID,
			PaymentMethod: "PROCESSOR",
			Status:        "PAID",
			Subtotal:      "40.00",
			ShippingFee:   "5.00",
			Total:         "41.50",
			Coupon: &resdto.OrderCouponResponse{
				Code:            "SPRING",
				DiscountPercent: "10.00",
				Description:     "spring sale",
			},
			Items: []resdto.OrderItemResponse{
				{ProductID: view.Items[0].ProductID, ProductName: "mug", Quantity: 2, UnitPrice: "20.00"},
			},
			CreatedAt: created,
		}}
		if diff := cmp.Diff(want, res); diff != "" {
			s.T().Errorf("orders mismatch (-want +got):\n%s", diff)
		}
	})

	s.Run("order without coupon or items", func() {
		bare := *view
		bare.Coupon = nil
		bare.Items = nil
		s.mockQueries.EXPECT().ListMine(gomock.Any(), s.caller, 0).Return([]*queries.OrderView{&bare}, nil)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/orders", nil, "bearer-token")

		var res []map[string]any
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &res)
		s.Require().Len(res, 1)
		s.NotContains(res[0], "coupon")
		s.Equal([]any{}, res[0]["items"])
	})

	s.Run("limit is passed through", func() {
		s.mockQueries.EXPECT().ListMine(gomock.Any(), s.caller, 20).Return([]*queries.OrderView{}, nil)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/orders?limit=20", nil, "bearer-token")

		s.Equal(http.StatusOK, rec.Code)
		s.JSONEq(`[]`, rec.Body.String())
	})

	s.Run("error: 400 on non-numeric limit", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/orders?limit=ten", nil, "bearer-token")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "Invalid limit")
	})

	s.Run("error: 401 without token", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/orders", nil, "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusUnauthorized, "Unauthorized")
	})
}
