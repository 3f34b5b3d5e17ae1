package api

import (
	"net/http"
	"strconv"

	resdto "gocart/internal/handler/dto/response"
	"gocart/internal/handler/httperr"
	"gocart/internal/handler/middleware"
	"gocart/internal/usecase/queries"

	"github.com/gin-gonic/gin"
)

type OrderHandler struct {
	q queries.OrderQueries
}

func NewOrderHandler(q queries.OrderQueries) *OrderHandler {
	return &OrderHandler{q: q}
}

// @Summary List my orders
// @Description Finalized orders of the caller, newest first. Orders awaiting payment are not listed.
// @Tags orders
// @Produce json
// @Security BearerAuth
// @Param limit query int false "Max items (default 50, max 100)"
// @Success 200 {array} resdto.OrderResponse
// @Failure 401 {object} httperr.Response
// @Router /api/orders [get]
func (h *OrderHandler) List(c *gin.Context) {
	caller, ok := middleware.GetCaller(c)
	if !ok {
		httperr.AbortWithError(c, http.StatusUnauthorized, errUnauthenticated, "Unauthorized", nil)
		return
	}

	limit := 0
	if v := c.Query("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid limit", nil)
			return
		}
		limit = n
	}

	views, err := h.q.ListMine(c.Request.Context(), caller, limit)
	if err != nil {
		httperr.Abort(c, err)
		return
	}

	res, err := resdto.FromOrderViews(views)
	if err != nil {
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal server error", nil)
		return
	}
	c.JSON(http.StatusOK, res)
}
