package response

import (
	"gocart/internal/usecase/commands"

	"github.com/google/uuid"
)

type CheckoutResponse struct {
	OrderIDs          []uuid.UUID `json:"orderIds"`
	Total             string      `json:"total"`
	RedirectSessionID string      `json:"redirectSessionId,omitempty"`
}

func FromCheckoutResult(r *commands.CheckoutResult) *CheckoutResponse {
	return &CheckoutResponse{
		OrderIDs:          r.OrderIDs,
		Total:             r.Total.String(),
		RedirectSessionID: r.RedirectSessionID,
	}
}
