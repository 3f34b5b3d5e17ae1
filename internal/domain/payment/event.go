package payment

import (
	"strings"

	"gocart/internal/pkg/errs"

	"github.com/google/uuid"
)

var ErrMalformedMetadata = errs.Sentinel("malformed payment metadata", errs.ErrReconciliation)

const (
	MetaPaymentSessionID = "payment_session_id"
	MetaOrderIDs         = "order_ids"
	MetaUserID           = "user_id"
	MetaAppTag           = "app_tag"
)

type Outcome string

const (
	OutcomeSucceeded         Outcome = "SUCCEEDED"
	OutcomeFailedOrCancelled Outcome = "FAILED_OR_CANCELLED"
)

// Source tells where an outcome came from.
type Source string

const (
	SourceWebhook           Source = "webhook"
	SourceExpiry            Source = "expiry"
	SourceInitiationFailure Source = "initiation_failed"
)

type Metadata struct {
	PaymentSessionID uuid.UUID
	OrderIDs         []uuid.UUID
	UserID           uuid.UUID
	AppTag           string
}

// MaxMetadataValueLen is the processor's per-value metadata limit.
const MaxMetadataValueLen = 500

// ToMap renders the metadata sent to the processor. order_ids is informational and is
// left out when it would exceed MaxMetadataValueLen; reconciliation resolves orders
// through payment_session_id.
func (m Metadata) ToMap() map[string]string {
	out := map[string]string{
		MetaPaymentSessionID: m.PaymentSessionID.String(),
		MetaUserID:           m.UserID.String(),
		MetaAppTag:           m.AppTag,
	}
	ids := make([]string, len(m.OrderIDs))
	for i, id := range m.OrderIDs {
		ids[i] = id.String()
	}
	if joined := strings.Join(ids, ","); joined != "" && len(joined) <= MaxMetadataValueLen {
		out[MetaOrderIDs] = joined
	}
	return out
}

// ParseMetadata reads metadata echoed by the processor. The app tag is returned even
// when the rest is malformed so foreign events can be told apart from broken ones.
func ParseMetadata(raw map[string]string) (Metadata, error) {
	m := Metadata{AppTag: raw[MetaAppTag]}

	sid, err := uuid.Parse(raw[MetaPaymentSessionID])
	if err != nil {
		return m, errs.Wrap(ErrMalformedMetadata, "payment_session_id")
	}
	m.PaymentSessionID = sid

	if v := raw[MetaUserID]; v != "" {
		uid, perr := uuid.Parse(v)
		if perr != nil {
			return m, errs.Wrap(ErrMalformedMetadata, "user_id")
		}
		m.UserID = uid
	}

	if v := raw[MetaOrderIDs]; v != "" {
		for _, part := range strings.Split(v, ",") {
			id, perr := uuid.Parse(strings.TrimSpace(part))
			if perr != nil {
				return m, errs.Wrap(ErrMalformedMetadata, "order_ids")
			}
			m.OrderIDs = append(m.OrderIDs, id)
		}
	}
	return m, nil
}

// Event is a verified payment outcome.
type Event struct {
	ID       string
	Type     string
	Outcome  Outcome
	Metadata Metadata
	Source   Source
}
