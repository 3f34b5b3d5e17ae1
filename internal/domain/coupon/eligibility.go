package coupon

import (
	"time"

	"gocart/internal/pkg/errs"

	"github.com/google/uuid"
)

// ErrRejected marks every rejection sentinel below.
var ErrRejected = errs.New("coupon rejected")

var (
	ErrNotFound     = errs.Sentinel("coupon not found", errs.ErrNotFound, ErrRejected)
	ErrExpired      = errs.Sentinel("coupon expired", errs.ErrNotFound, ErrRejected)
	ErrNewUsersOnly = errs.Sentinel("coupon is valid for new users only", errs.ErrEligibility, ErrRejected)
	ErrMembersOnly  = errs.Sentinel("coupon is valid for members only", errs.ErrEligibility, ErrRejected)
)

type Reason string

const (
	ReasonNotFound     Reason = "NOT_FOUND"
	ReasonExpired      Reason = "EXPIRED"
	ReasonNewUsersOnly Reason = "NEW_USERS_ONLY"
	ReasonMembersOnly  Reason = "MEMBERS_ONLY"
)

type EligibilityInput struct {
	UserID uuid.UUID
	// non-cancelled orders the user already has, pending ones included
	PriorOrders int
	IsMember    bool
	Now         time.Time
}

type Decision struct {
	accepted bool
	reason   Reason
	coupon   *Coupon
}

func (d Decision) Accepted() bool  { return d.accepted }
func (d Decision) Reason() Reason  { return d.reason }
func (d Decision) Coupon() *Coupon { return d.coupon }

// Err returns nil for an accepted decision, otherwise the sentinel for the reason.
func (d Decision) Err() error {
	if d.accepted {
		return nil
	}
	switch d.reason {
	case ReasonExpired:
		return ErrExpired
	case ReasonNewUsersOnly:
		return ErrNewUsersOnly
	case ReasonMembersOnly:
		return ErrMembersOnly
	default:
		return ErrNotFound
	}
}

// Evaluate decides whether c may be applied. A nil coupon is a lookup miss.
// Checks run in a fixed order: existence, expiry, new-user restriction, member restriction.
func Evaluate(c *Coupon, in EligibilityInput) Decision {
	if c == nil {
		return rejected(ReasonNotFound)
	}
	if !c.IsUsableAt(in.Now) {
		return rejected(ReasonExpired)
	}
	if c.forNewUsersOnly && in.PriorOrders >= 1 {
		return rejected(ReasonNewUsersOnly)
	}
	if c.forMembersOnly && !in.IsMember {
		return rejected(ReasonMembersOnly)
	}
	return Decision{accepted: true, coupon: c}
}

func rejected(r Reason) Decision {
	return Decision{accepted: false, reason: r}
}
