package user

import (
	"slices"

	"gocart/internal/pkg/errs"

	"github.com/google/uuid"
)

var ErrAnonymousCaller = errs.Validation("caller identity is required")

// Caller is the authenticated identity an operation runs on behalf of.
// Plans are subscription plan ids issued by the identity provider.
type Caller struct {
	UserID uuid.UUID
	Role   Role
	Plans  []string
}

func NewCaller(userID uuid.UUID, role Role, plans []string) (Caller, error) {
	if userID == uuid.Nil {
		return Caller{}, ErrAnonymousCaller
	}
	return Caller{UserID: userID, Role: role, Plans: plans}, nil
}

func (c Caller) HasPlan(planID string) bool {
	if planID == "" {
		return false
	}
	return slices.Contains(c.Plans, planID)
}
