package api

import (
	"net/http"

	reqdto "gocart/internal/handler/dto/request"
	resdto "gocart/internal/handler/dto/response"
	"gocart/internal/handler/httperr"
	"gocart/internal/handler/middleware"
	"gocart/internal/usecase/queries"

	"github.com/gin-gonic/gin"
)

type CouponHandler struct {
	q queries.CouponQueries
}

func NewCouponHandler(q queries.CouponQueries) *CouponHandler {
	return &CouponHandler{q: q}
}

// @Summary Validate coupon
// @Description Preview whether the caller may use a coupon right now. Checkout evaluates it again.
// @Tags coupons
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body reqdto.ValidateCouponRequest true "Coupon code"
// @Success 200 {object} resdto.CouponResponse
// @Failure 400 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Failure 410 {object} httperr.Response
// @Router /api/coupons/validate [post]
func (h *CouponHandler) Validate(c *gin.Context) {
	caller, ok := middleware.GetCaller(c)
	if !ok {
		httperr.AbortWithError(c, http.StatusUnauthorized, errUnauthenticated, "Unauthorized", nil)
		return
	}

	var req reqdto.ValidateCouponRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request format", nil)
		return
	}

	preview, err := h.q.Preview(c.Request.Context(), caller, req.Code)
	if err != nil {
		httperr.Abort(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.FromCouponPreview(preview))
}
