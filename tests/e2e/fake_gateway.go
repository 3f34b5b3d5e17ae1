//go:build e2e

package e2e

import (
	"context"
	"sync"

	"gocart/internal/usecase/shared"
)

// FakeGateway stands in for the payment processor and records what it was asked to create.
type FakeGateway struct {
	mu     sync.Mutex
	inputs []shared.CreateSessionInput
	err    error
}

func NewFakeGateway() *FakeGateway {
	return &FakeGateway{}
}

func (g *FakeGateway) CreateSession(_ context.Context, in shared.CreateSessionInput) (*shared.CreatedSession, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.err != nil {
		return nil, g.err
	}
	g.inputs = append(g.inputs, in)
	id := "cs_test_" + in.Metadata.PaymentSessionID.String()
	return &shared.CreatedSession{
		ExternalID: id,
		URL:        "https://checkout.example.test/" + id,
	}, nil
}

func (g *FakeGateway) FailWith(err error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.err = err
}

func (g *FakeGateway) Inputs() []shared.CreateSessionInput {
	g.mu.Lock()
	defer g.mu.Unlock()
	return append([]shared.CreateSessionInput(nil), g.inputs...)
}

func (g *FakeGateway) Reset() {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.inputs = nil
	g.err = nil
}
