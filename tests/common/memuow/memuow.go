//go:build unit

// Package memuow is an in-memory shared.UnitOfWork for usecase tests.
// Transactions are serialized and roll back by restoring a snapshot.
package memuow

import (
	"context"
	"maps"
	"slices"
	"sync"
	"time"

	"gocart/internal/domain/cart"
	"gocart/internal/domain/coupon"
	"gocart/internal/domain/order"
	"gocart/internal/domain/payment"
	sqlc "gocart/internal/infra/sqlc/generated"
	"gocart/internal/usecase/shared"

	"github.com/google/uuid"
)

// Operation names accepted by Fail.
const (
	OpLockUser       = "users.lock"
	OpClearCart      = "users.clear_cart"
	OpCreateOrder    = "orders.create"
	OpUpdateOrder    = "orders.update"
	OpCreateSession  = "sessions.create"
	OpAttachExternal = "sessions.attach"
	OpConsume        = "sessions.consume"
	OpEnqueue        = "outbox.enqueue"
	OpProducts       = "reads.products"
)

type idemKey struct {
	key    uuid.UUID
	userID uuid.UUID
}

type OutboxRow struct {
	Message     shared.OutboxMessage
	PublishedAt *time.Time
	LastError   string
}

type state struct {
	products    map[uuid.UUID]order.Product
	coupons     map[string]coupon.Coupon
	addresses   map[uuid.UUID]uuid.UUID
	users       map[uuid.UUID]bool
	carts       map[uuid.UUID]cart.Cart
	cartClears  map[uuid.UUID]int
	orders      map[uuid.UUID]order.Order
	orderSeq    []uuid.UUID
	sessions    map[uuid.UUID]payment.Session
	idempotency map[idemKey]shared.IdempotencyRecord
	outbox      []OutboxRow
}

func (s *state) clone() *state {
	return &state{
		products:    maps.Clone(s.products),
		coupons:     maps.Clone(s.coupons),
		addresses:   maps.Clone(s.addresses),
		users:       maps.Clone(s.users),
		carts:       maps.Clone(s.carts),
		cartClears:  maps.Clone(s.cartClears),
		orders:      maps.Clone(s.orders),
		orderSeq:    slices.Clone(s.orderSeq),
		sessions:    maps.Clone(s.sessions),
		idempotency: maps.Clone(s.idempotency),
		outbox:      slices.Clone(s.outbox),
	}
}

type Store struct {
	mu       sync.Mutex
	st       *state
	failures map[string]error
}

var _ shared.UnitOfWork = (*Store)(nil)

func New() *Store {
	return &Store{
		st: &state{
			products:    map[uuid.UUID]order.Product{},
			coupons:     map[string]coupon.Coupon{},
			addresses:   map[uuid.UUID]uuid.UUID{},
			users:       map[uuid.UUID]bool{},
			carts:       map[uuid.UUID]cart.Cart{},
			cartClears:  map[uuid.UUID]int{},
			orders:      map[uuid.UUID]order.Order{},
			sessions:    map[uuid.UUID]payment.Session{},
			idempotency: map[idemKey]shared.IdempotencyRecord{},
		},
		failures: map[string]error{},
	}
}

// Fail makes every later call of op return err. A nil err clears it.
func (s *Store) Fail(op string, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err == nil {
		delete(s.failures, op)
		return
	}
	s.failures[op] = err
}

func (s *Store) fail(op string) error {
	return s.failures[op]
}

// ---- UnitOfWork ----

func (s *Store) Within(ctx context.Context, fn func(ctx context.Context, tx shared.Tx) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := ctx.Err(); err != nil {
		return err
	}
	snapshot := s.st.clone()
	if err := fn(ctx, &memTx{store: s}); err != nil {
		s.st = snapshot
		return err
	}
	// キャンセル済みならコミットしない
	if err := ctx.Err(); err != nil {
		s.st = snapshot
		return err
	}
	return nil
}

func (s *Store) WithinReadOnly(ctx context.Context, fn func(ctx context.Context, db sqlc.DBTX) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return fn(ctx, nil)
}

func (s *Store) CommandReads() shared.CommandReads {
	return &reads{store: s, locked: false}
}

// ---- seeding & inspection ----

func (s *Store) AddProduct(p order.Product) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.st.products[p.ID] = p
}

func (s *Store) AddCoupon(c *coupon.Coupon) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.st.coupons[c.Code().String()] = *c
}

func (s *Store) AddAddress(addressID, ownerID uuid.UUID) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.st.addresses[addressID] = ownerID
}

func (s *Store) SetCart(userID uuid.UUID, c cart.Cart) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.st.users[userID] = true
	s.st.carts[userID] = c
}

func (s *Store) AddOrder(o *order.Order) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.putOrder(o)
}

func (s *Store) AddSession(ps *payment.Session) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.st.sessions[ps.ID()] = *ps
}

func (s *Store) Cart(userID uuid.UUID) cart.Cart {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.st.carts[userID]
}

// CartClears counts committed cart clears for the user.
func (s *Store) CartClears(userID uuid.UUID) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.st.cartClears[userID]
}

// Orders returns committed orders in creation order.
func (s *Store) Orders() []*order.Order {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]*order.Order, 0, len(s.st.orderSeq))
	for _, id := range s.st.orderSeq {
		o := s.st.orders[id]
		out = append(out, &o)
	}
	return out
}

func (s *Store) Order(id uuid.UUID) (*order.Order, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	o, ok := s.st.orders[id]
	return &o, ok
}

func (s *Store) Sessions() []*payment.Session {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]*payment.Session, 0, len(s.st.sessions))
	for _, ps := range s.st.sessions {
		out = append(out, &ps)
	}
	return out
}

func (s *Store) Session(id uuid.UUID) (*payment.Session, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	ps, ok := s.st.sessions[id]
	return &ps, ok
}

func (s *Store) Outbox() []OutboxRow {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Clone(s.st.outbox)
}

func (s *Store) Idempotency(key, userID uuid.UUID) (shared.IdempotencyRecord, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	r, ok := s.st.idempotency[idemKey{key, userID}]
	return r, ok
}

func (s *Store) putOrder(o *order.Order) {
	if _, ok := s.st.orders[o.ID()]; !ok {
		s.st.orderSeq = append(s.st.orderSeq, o.ID())
	}
	s.st.orders[o.ID()] = *o
}

// ---- Tx ----

type memTx struct {
	store *Store
}

func (t *memTx) Orders() shared.OrderRepository                   { return (*orderRepo)(t) }
func (t *memTx) PaymentSessions() shared.PaymentSessionRepository { return (*sessionRepo)(t) }
func (t *memTx) Users() shared.UserRepository                     { return (*userRepo)(t) }
func (t *memTx) Idempotency() shared.IdempotencyRepository        { return (*idempotencyRepo)(t) }
func (t *memTx) Outbox() shared.OutboxRepository                  { return (*outboxRepo)(t) }
func (t *memTx) Reads() shared.CommandReads                       { return &reads{store: t.store, locked: true} }
func (t *memTx) DB() sqlc.DBTX                                    { return nil }

type orderRepo memTx

func (r *orderRepo) Create(_ context.Context, _ sqlc.DBTX, o *order.Order) error {
	if err := r.store.fail(OpCreateOrder); err != nil {
		return err
	}
	r.store.putOrder(o)
	return nil
}

func (r *orderRepo) LockByIDs(_ context.Context, _ sqlc.DBTX, ids []uuid.UUID) ([]*order.Order, error) {
	sorted := slices.Clone(ids)
	slices.SortFunc(sorted, func(a, b uuid.UUID) int { return slices.Compare(a[:], b[:]) })

	out := make([]*order.Order, 0, len(ids))
	for _, id := range sorted {
		if o, ok := r.store.st.orders[id]; ok {
			out = append(out, &o)
		}
	}
	return out, nil
}

func (r *orderRepo) UpdateStatus(_ context.Context, _ sqlc.DBTX, o *order.Order) error {
	if err := r.store.fail(OpUpdateOrder); err != nil {
		return err
	}
	r.store.st.orders[o.ID()] = *o
	return nil
}

type sessionRepo memTx

func (r *sessionRepo) Create(_ context.Context, _ sqlc.DBTX, ps *payment.Session) error {
	if err := r.store.fail(OpCreateSession); err != nil {
		return err
	}
	r.store.st.sessions[ps.ID()] = *ps
	return nil
}

func (r *sessionRepo) AttachExternal(_ context.Context, _ sqlc.DBTX, id uuid.UUID, externalID string) error {
	if err := r.store.fail(OpAttachExternal); err != nil {
		return err
	}
	ps, ok := r.store.st.sessions[id]
	if !ok {
		return nil
	}
	if err := ps.AttachExternal(externalID); err != nil {
		return err
	}
	r.store.st.sessions[id] = ps
	return nil
}

func (r *sessionRepo) Consume(_ context.Context, _ sqlc.DBTX, id uuid.UUID, res payment.Resolution, now time.Time) (*payment.Session, error) {
	if err := r.store.fail(OpConsume); err != nil {
		return nil, err
	}
	ps, ok := r.store.st.sessions[id]
	if !ok || ps.Status() != payment.StatusAwaiting {
		return nil, nil
	}
	consumed := payment.ReconstructSession(
		ps.ID(), ps.ExternalID(), ps.UserID(), ps.OrderIDs(), ps.AppTag(),
		ps.Amount(), ps.Currency(),
		payment.StatusConsumed, res,
		ps.CreatedAt(), ps.ExpiresAt(), &now,
	)
	r.store.st.sessions[id] = *consumed
	return consumed, nil
}

type userRepo memTx

func (r *userRepo) LockForCheckout(_ context.Context, _ sqlc.DBTX, userID uuid.UUID) error {
	if err := r.store.fail(OpLockUser); err != nil {
		return err
	}
	r.store.st.users[userID] = true
	return nil
}

func (r *userRepo) SetCart(_ context.Context, _ sqlc.DBTX, userID uuid.UUID, c cart.Cart) error {
	r.store.st.users[userID] = true
	r.store.st.carts[userID] = slices.Clone(c)
	return nil
}

func (r *userRepo) ClearCart(_ context.Context, _ sqlc.DBTX, userID uuid.UUID) error {
	if err := r.store.fail(OpClearCart); err != nil {
		return err
	}
	r.store.st.carts[userID] = cart.Cart{}
	r.store.st.cartClears[userID]++
	return nil
}

type idempotencyRepo memTx

func (r *idempotencyRepo) TryInsert(
	_ context.Context,
	_ sqlc.DBTX,
	key, userID uuid.UUID,
	endpoint, requestHash string,
	expiresAt time.Time,
) (bool, error) {
	k := idemKey{key, userID}
	if existing, ok := r.store.st.idempotency[k]; ok && existing.ExpiresAt.After(time.Now()) {
		return false, nil
	}
	r.store.st.idempotency[k] = shared.IdempotencyRecord{
		Key:         key,
		UserID:      userID,
		Endpoint:    endpoint,
		Status:      shared.IdempotencyProcessing,
		RequestHash: requestHash,
		ExpiresAt:   expiresAt,
	}
	return true, nil
}

func (r *idempotencyRepo) Complete(_ context.Context, _ sqlc.DBTX, key, userID uuid.UUID, result []byte) error {
	k := idemKey{key, userID}
	rec, ok := r.store.st.idempotency[k]
	if !ok {
		return nil
	}
	rec.Status = shared.IdempotencyCompleted
	rec.Result = slices.Clone(result)
	r.store.st.idempotency[k] = rec
	return nil
}

func (r *idempotencyRepo) Release(_ context.Context, _ sqlc.DBTX, key, userID uuid.UUID) error {
	k := idemKey{key, userID}
	if rec, ok := r.store.st.idempotency[k]; ok && rec.Status == shared.IdempotencyProcessing {
		delete(r.store.st.idempotency, k)
	}
	return nil
}

func (r *idempotencyRepo) DeleteExpired(_ context.Context, _ sqlc.DBTX) (int64, error) {
	var n int64
	now := time.Now()
	for k, rec := range r.store.st.idempotency {
		if !rec.ExpiresAt.After(now) {
			delete(r.store.st.idempotency, k)
			n++
		}
	}
	return n, nil
}

type outboxRepo memTx

func (r *outboxRepo) Enqueue(_ context.Context, _ sqlc.DBTX, msg shared.OutboxMessage) error {
	if err := r.store.fail(OpEnqueue); err != nil {
		return err
	}
	r.store.st.outbox = append(r.store.st.outbox, OutboxRow{Message: msg})
	return nil
}

func (r *outboxRepo) ClaimBatch(_ context.Context, _ sqlc.DBTX, limit int32) ([]shared.OutboxMessage, error) {
	out := make([]shared.OutboxMessage, 0)
	for _, row := range r.store.st.outbox {
		if int32(len(out)) >= limit {
			break
		}
		if row.PublishedAt == nil {
			out = append(out, row.Message)
		}
	}
	return out, nil
}

func (r *outboxRepo) MarkPublished(_ context.Context, _ sqlc.DBTX, id uuid.UUID, at time.Time) error {
	for i := range r.store.st.outbox {
		if r.store.st.outbox[i].Message.ID == id {
			r.store.st.outbox[i].PublishedAt = &at
		}
	}
	return nil
}

func (r *outboxRepo) MarkFailed(_ context.Context, _ sqlc.DBTX, id uuid.UUID, reason string) error {
	for i := range r.store.st.outbox {
		if r.store.st.outbox[i].Message.ID == id {
			r.store.st.outbox[i].Message.Attempts++
			r.store.st.outbox[i].LastError = reason
		}
	}
	return nil
}

// ---- CommandReads ----

// reads locks the store unless it runs inside Within, which already holds the lock.
type reads struct {
	store  *Store
	locked bool
}

func (r *reads) view(fn func(st *state)) {
	if !r.locked {
		r.store.mu.Lock()
		defer r.store.mu.Unlock()
	}
	fn(r.store.st)
}

func (r *reads) ProductsByIDs(_ context.Context, ids []uuid.UUID) (map[uuid.UUID]order.Product, error) {
	var (
		out map[uuid.UUID]order.Product
		err error
	)
	r.view(func(st *state) {
		if err = r.store.fail(OpProducts); err != nil {
			return
		}
		out = make(map[uuid.UUID]order.Product, len(ids))
		for _, id := range ids {
			if p, ok := st.products[id]; ok {
				out[id] = p
			}
		}
	})
	return out, err
}

func (r *reads) CouponByCode(_ context.Context, code coupon.Code) (*coupon.Coupon, error) {
	var out *coupon.Coupon
	r.view(func(st *state) {
		if c, ok := st.coupons[code.String()]; ok {
			out = &c
		}
	})
	return out, nil
}

func (r *reads) CountPriorOrders(_ context.Context, userID uuid.UUID) (int, error) {
	n := 0
	r.view(func(st *state) {
		for _, o := range st.orders {
			if o.UserID() == userID && o.Status() != order.StatusCancelled {
				n++
			}
		}
	})
	return n, nil
}

func (r *reads) AddressOwner(_ context.Context, addressID uuid.UUID) (uuid.UUID, bool, error) {
	var (
		owner uuid.UUID
		ok    bool
	)
	r.view(func(st *state) {
		owner, ok = st.addresses[addressID]
	})
	return owner, ok, nil
}

func (r *reads) UserCart(_ context.Context, userID uuid.UUID) (cart.Cart, error) {
	var out cart.Cart
	r.view(func(st *state) {
		out = slices.Clone(st.carts[userID])
	})
	if out == nil {
		out = cart.Cart{}
	}
	return out, nil
}

func (r *reads) IdempotencyByKey(_ context.Context, key, userID uuid.UUID) (*shared.IdempotencyRecord, error) {
	var out *shared.IdempotencyRecord
	r.view(func(st *state) {
		if rec, ok := st.idempotency[idemKey{key, userID}]; ok {
			out = &rec
		}
	})
	return out, nil
}

func (r *reads) PaymentSessionByID(_ context.Context, id uuid.UUID) (*payment.Session, error) {
	var out *payment.Session
	r.view(func(st *state) {
		if ps, ok := st.sessions[id]; ok {
			out = &ps
		}
	})
	return out, nil
}

func (r *reads) ExpiredSessionIDs(_ context.Context, appTag string, now time.Time, limit int32) ([]uuid.UUID, error) {
	var out []uuid.UUID
	r.view(func(st *state) {
		for id, ps := range st.sessions {
			if int32(len(out)) >= limit {
				return
			}
			if ps.AppTag() == appTag && ps.Status() == payment.StatusAwaiting && !now.Before(ps.ExpiresAt()) {
				out = append(out, id)
			}
		}
	})
	return out, nil
}
