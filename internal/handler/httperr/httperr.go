package httperr

import (
	"log/slog"
	"net/http"

	"gocart/internal/domain/coupon"
	"gocart/internal/domain/order"
	"gocart/internal/domain/user"
	"gocart/internal/pkg/errs"

	"github.com/gin-gonic/gin"
)

type Response struct {
	Status int `json:"-"`
	Error  struct {
		Message string `json:"message"`
	} `json:"error"`
	Detail any `json:"detail,omitempty"`
}

// preserves original error for future monitoring
func AbortWithError(c *gin.Context, status int, err error, msg string, detail any) {
	if err == nil {
		panic("AbortWithError: err cannot be nil")
	}

	resp := Response{Status: status}
	resp.Error.Message = msg
	resp.Detail = detail

	_ = c.Error(gin.Error{
		Err:  err,
		Type: gin.ErrorTypePublic,
		Meta: resp,
	})
	c.AbortWithStatusJSON(status, resp)
}

// Abort maps a usecase error to its status by category marker.
func Abort(c *gin.Context, err error) {
	status, msg, detail := Classify(err)
	if status == http.StatusInternalServerError {
		slog.ErrorContext(c, "unhandled error",
			"path", c.FullPath(),
			"error", err.Error(),
			"stack", errs.ExtractStackLines(err, stackLines))
	}
	AbortWithError(c, status, err, msg, detail)
}

const stackLines = 20

// Classify returns the response for err. Uncategorized errors are 500 and never leak their text.
func Classify(err error) (status int, msg string, detail any) {
	var unavailable *order.ProductUnavailableError
	switch {
	case errs.Is(err, user.ErrAnonymousCaller):
		return http.StatusUnauthorized, "Unauthorized", nil
	case errs.As(err, &unavailable):
		return http.StatusNotFound, "Product unavailable", gin.H{"productId": unavailable.ProductID.String()}
	case errs.Is(err, coupon.ErrExpired):
		return http.StatusGone, "Coupon expired", gin.H{"reason": coupon.ReasonExpired}
	case errs.Is(err, coupon.ErrNotFound):
		return http.StatusNotFound, "Coupon not found", gin.H{"reason": coupon.ReasonNotFound}
	case errs.Is(err, coupon.ErrNewUsersOnly):
		return http.StatusBadRequest, "Coupon is valid for new users only", gin.H{"reason": coupon.ReasonNewUsersOnly}
	case errs.Is(err, coupon.ErrMembersOnly):
		return http.StatusBadRequest, "Coupon is valid for members only", gin.H{"reason": coupon.ReasonMembersOnly}
	case errs.IsAny(err, errs.ErrValidation, errs.ErrEligibility):
		return http.StatusBadRequest, rootMessage(err), nil
	case errs.Is(err, errs.ErrNotFound):
		return http.StatusNotFound, rootMessage(err), nil
	case errs.Is(err, errs.ErrConflict):
		return http.StatusConflict, rootMessage(err), nil
	case errs.Is(err, errs.ErrExternalService):
		return http.StatusServiceUnavailable, "Payment service temporarily unavailable", nil
	default:
		return http.StatusInternalServerError, "Internal server error", nil
	}
}

// rootMessage drops wrap prefixes so only the sentinel text reaches the client.
func rootMessage(err error) string {
	return errs.UnwrapAll(err).Error()
}
