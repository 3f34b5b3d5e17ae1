//go:build unit

package commands_test

import (
	"context"
	"sync"
	"time"

	"gocart/internal/domain/order"
	"gocart/internal/pkg/clock"
	"gocart/internal/pkg/config"
	"gocart/internal/pkg/metrics"
	"gocart/internal/usecase/commands"
	"gocart/internal/usecase/shared"
	"gocart/tests/common/builder"
	"gocart/tests/common/memuow"

	"github.com/google/uuid"
)

// fakeGateway records CreateSession calls. hook runs before the result is returned.
type fakeGateway struct {
	mu    sync.Mutex
	calls []shared.CreateSessionInput
	err   error
	hook  func(ctx context.Context)
}

func (g *fakeGateway) CreateSession(ctx context.Context, in shared.CreateSessionInput) (*shared.CreatedSession, error) {
	g.mu.Lock()
	g.calls = append(g.calls, in)
	err := g.err
	hook := g.hook
	g.mu.Unlock()

	if hook != nil {
		hook(ctx)
	}
	if err != nil {
		return nil, err
	}
	return &shared.CreatedSession{
		ExternalID: "cs_test_" + in.IdempotencyKey,
		URL:        "https://checkout.example.test/" + in.IdempotencyKey,
	}, nil
}

func (g *fakeGateway) Calls() []shared.CreateSessionInput {
	g.mu.Lock()
	defer g.mu.Unlock()
	return append([]shared.CreateSessionInput(nil), g.calls...)
}

type usecaseFixture struct {
	cfg        config.Config
	store      *memuow.Store
	clock      *clock.MockClock
	metrics    *metrics.Metrics
	gateway    *fakeGateway
	reconciler commands.ReconciliationCommands
	initiator  commands.PaymentSessionInitiator
	checkout   commands.CheckoutCommands
}

// newUsecaseFixture wires the real command graph on top of the in-memory store.
// The clock follows wall time because idempotency keys expire against it.
func newUsecaseFixture() *usecaseFixture {
	f := &usecaseFixture{
		cfg:     config.NewTestConfig(),
		store:   memuow.New(),
		clock:   clock.NewMockClock(time.Now().UTC().Truncate(time.Second)),
		metrics: metrics.New(),
		gateway: &fakeGateway{},
	}
	f.reconciler = commands.NewReconciliationUseCase(f.store, f.clock, f.metrics, f.cfg)
	f.initiator = commands.NewPaymentSessionInitiator(f.store, f.gateway, f.reconciler)
	f.checkout = commands.NewCheckoutUseCase(f.store, f.initiator, f.clock, f.metrics, f.cfg)
	return f
}

// addAddress registers an address owned by userID and returns its id.
func (f *usecaseFixture) addAddress(userID uuid.UUID) uuid.UUID {
	id := uuid.New()
	f.store.AddAddress(id, userID)
	return id
}

func (f *usecaseFixture) addProducts(bs ...*builder.ProductBuilder) {
	for _, b := range bs {
		f.store.AddProduct(b.BuildDomain())
	}
}

// pendingSet stores n PENDING orders for userID plus the AWAITING session covering them.
func (f *usecaseFixture) pendingSet(userID uuid.UUID, n int) (sessionID uuid.UUID, orderIDs []uuid.UUID) {
	for range n {
		o := builder.NewOrderBuilder().ForUser(userID).BuildDomain()
		f.store.AddOrder(o)
		orderIDs = append(orderIDs, o.ID())
	}
	s, err := builder.NewSessionBuilder().
		ForOrders(userID, orderIDs...).
		With(func(b *builder.SessionBuilder) { b.Now = f.clock.Now() }).
		BuildDomain()
	if err != nil {
		panic(err)
	}
	f.store.AddSession(s)
	return s.ID(), orderIDs
}

func (f *usecaseFixture) statuses(ids []uuid.UUID) []order.Status {
	out := make([]order.Status, 0, len(ids))
	for _, id := range ids {
		o, ok := f.store.Order(id)
		if !ok {
			continue
		}
		out = append(out, o.Status())
	}
	return out
}
