package api

import (
	"io"
	"log/slog"
	"net/http"

	"gocart/internal/handler/httperr"
	"gocart/internal/pkg/errs"
	"gocart/internal/usecase/commands"
	"gocart/internal/usecase/shared"

	"github.com/gin-gonic/gin"
)

const (
	signatureHeader = "Stripe-Signature"
	// processor payloads are far below this
	maxWebhookBody = 64 << 10
)

type PaymentWebhookHandler struct {
	verifier shared.WebhookVerifier
	cmds     commands.ReconciliationCommands
}

func NewPaymentWebhookHandler(verifier shared.WebhookVerifier, cmds commands.ReconciliationCommands) *PaymentWebhookHandler {
	return &PaymentWebhookHandler{verifier: verifier, cmds: cmds}
}

// @Summary Payment processor webhook
// @Description Verifies the signature and applies the payment outcome. Redeliveries are acknowledged without effect.
// @Tags payments
// @Accept json
// @Produce json
// @Param Stripe-Signature header string true "Processor signature"
// @Success 200 {object} map[string]bool
// @Failure 400 {object} httperr.Response
// @Failure 500 {object} httperr.Response
// @Router /api/payments/webhook [post]
func (h *PaymentWebhookHandler) Handle(c *gin.Context) {
	payload, err := io.ReadAll(io.LimitReader(c.Request.Body, maxWebhookBody))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Unreadable body", nil)
		return
	}

	ev, ok, err := h.verifier.Verify(payload, c.GetHeader(signatureHeader))
	if err != nil {
		slog.Warn("webhook rejected", "error", err.Error(), "client_ip", c.ClientIP())
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid signature", nil)
		return
	}
	if !ok {
		c.JSON(http.StatusOK, gin.H{"received": true})
		return
	}

	if _, err = h.cmds.Reconcile(c.Request.Context(), ev); err != nil {
		// 再送しても結果が変わらないものは 200 で受け取って止める
		if errs.Is(err, errs.ErrReconciliation) {
			c.JSON(http.StatusOK, gin.H{"received": true})
			return
		}
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal server error", nil)
		return
	}
	c.JSON(http.StatusOK, gin.H{"received": true})
}
