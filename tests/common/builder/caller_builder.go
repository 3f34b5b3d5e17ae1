//go:build unit || e2e

package builder

import (
	"gocart/internal/domain/user"
	"gocart/internal/pkg/jwt"

	"github.com/google/uuid"
)

type CallerBuilder struct {
	UserID uuid.UUID
	Role   string
	Plans  []string
}

func NewCallerBuilder() *CallerBuilder {
	return &CallerBuilder{
		UserID: uuid.New(),
		Role:   "customer",
	}
}

func (b *CallerBuilder) With(mutate func(*CallerBuilder)) *CallerBuilder {
	mutate(b)
	return b
}

func (b *CallerBuilder) BuildDomain() (user.Caller, error) {
	role, err := user.NewRole(b.Role)
	if err != nil {
		return user.Caller{}, err
	}
	return user.NewCaller(b.UserID, role, b.Plans)
}

// Token signs the caller's claims the way the identity provider would.
func (b *CallerBuilder) Token(svc *jwt.Service) (string, error) {
	role, err := user.NewRole(b.Role)
	if err != nil {
		return "", err
	}
	return svc.GenerateToken(b.UserID, role, b.Plans)
}

func (b *CallerBuilder) WithUserID(id uuid.UUID) *CallerBuilder {
	b.UserID = id
	return b
}

func (b *CallerBuilder) WithPlans(plans ...string) *CallerBuilder {
	b.Plans = plans
	return b
}

func (b *CallerBuilder) AsMember() *CallerBuilder {
	return b.WithPlans("pro")
}
