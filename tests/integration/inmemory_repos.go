// Package integration wires the real services against in-memory stores to
// exercise full flows without a database.
package integration

import (
	"context"
	"fmt"
	"sync"
	"time"

	"auction-ledger/internal/core/domain"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// memState is the whole store content. Transactions snapshot it so a
// rollback restores every table at once, like a real database.
type memState struct {
	blocks       []domain.LedgerBlock
	items        map[uuid.UUID]domain.AuctionItem
	bids         []domain.Bid
	participants map[uuid.UUID]map[uuid.UUID]domain.Participant
	payments     map[uuid.UUID]domain.Payment
}

func newMemState() memState {
	return memState{
		items:        make(map[uuid.UUID]domain.AuctionItem),
		participants: make(map[uuid.UUID]map[uuid.UUID]domain.Participant),
		payments:     make(map[uuid.UUID]domain.Payment),
	}
}

func (s memState) clone() memState {
	c := memState{
		blocks:       make([]domain.LedgerBlock, len(s.blocks)),
		items:        make(map[uuid.UUID]domain.AuctionItem, len(s.items)),
		bids:         append([]domain.Bid(nil), s.bids...),
		participants: make(map[uuid.UUID]map[uuid.UUID]domain.Participant, len(s.participants)),
		payments:     make(map[uuid.UUID]domain.Payment, len(s.payments)),
	}
	for i, b := range s.blocks {
		b.Payload = b.Payload.Clone()
		c.blocks[i] = b
	}
	for k, v := range s.items {
		c.items[k] = v
	}
	for itemID, users := range s.participants {
		m := make(map[uuid.UUID]domain.Participant, len(users))
		for k, v := range users {
			m[k] = v
		}
		c.participants[itemID] = m
	}
	for k, v := range s.payments {
		c.payments[k] = v
	}
	return c
}

// memStore serializes transactions with a single mutex, mirroring the
// pessimistic locking the postgres adapter relies on.
type memStore struct {
	mu    sync.Mutex
	state memState
}

func newMemStore() *memStore {
	return &memStore{state: newMemState()}
}

// memTx implements pgx.Tx over the store. Begin (via memTransactor) acquires
// the store lock; Commit and Rollback release it exactly once.
type memTx struct {
	store    *memStore
	snapshot memState
	done     bool
}

func (t *memTx) Commit(ctx context.Context) error {
	if t.done {
		return pgx.ErrTxClosed
	}
	t.done = true
	t.store.mu.Unlock()
	return nil
}

func (t *memTx) Rollback(ctx context.Context) error {
	if t.done {
		return nil
	}
	t.store.state = t.snapshot
	t.done = true
	t.store.mu.Unlock()
	return nil
}

func (t *memTx) Begin(ctx context.Context) (pgx.Tx, error) { return t, nil }
func (t *memTx) CopyFrom(ctx context.Context, tableName pgx.Identifier, columnNames []string, rowSrc pgx.CopyFromSource) (int64, error) {
	return 0, nil
}
func (t *memTx) SendBatch(ctx context.Context, b *pgx.Batch) pgx.BatchResults { return nil }
func (t *memTx) LargeObjects() pgx.LargeObjects                               { return pgx.LargeObjects{} }
func (t *memTx) Prepare(ctx context.Context, name, sql string) (*pgconn.StatementDescription, error) {
	return nil, nil
}
func (t *memTx) Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error) {
	return pgconn.CommandTag{}, nil
}
func (t *memTx) Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error) {
	return nil, nil
}
func (t *memTx) QueryRow(ctx context.Context, sql string, args ...any) pgx.Row { return nil }
func (t *memTx) Conn() *pgx.Conn                                               { return nil }

// memTransactor implements ports.DBTransactor.
type memTransactor struct {
	store *memStore
}

func (tr *memTransactor) Begin(ctx context.Context) (pgx.Tx, error) {
	tr.store.mu.Lock()
	return &memTx{store: tr.store, snapshot: tr.store.state.clone()}, nil
}

// memLedgerRepo implements ports.LedgerRepository.
type memLedgerRepo struct {
	store *memStore
}

func (r *memLedgerRepo) lastBlock() *domain.LedgerBlock {
	if len(r.store.state.blocks) == 0 {
		return nil
	}
	b := r.store.state.blocks[len(r.store.state.blocks)-1]
	b.Payload = b.Payload.Clone()
	return &b
}

func (r *memLedgerRepo) GetLastForUpdate(ctx context.Context, tx pgx.Tx) (*domain.LedgerBlock, error) {
	return r.lastBlock(), nil
}

func (r *memLedgerRepo) GetLast(ctx context.Context) (*domain.LedgerBlock, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	return r.lastBlock(), nil
}

func (r *memLedgerRepo) Insert(ctx context.Context, tx pgx.Tx, block *domain.LedgerBlock) error {
	for _, b := range r.store.state.blocks {
		if b.Index == block.Index {
			return fmt.Errorf("duplicate block index %d", block.Index)
		}
	}
	clone := *block
	clone.Payload = block.Payload.Clone()
	r.store.state.blocks = append(r.store.state.blocks, clone)
	return nil
}

func (r *memLedgerRepo) ListAll(ctx context.Context) ([]domain.LedgerBlock, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	out := make([]domain.LedgerBlock, len(r.store.state.blocks))
	for i, b := range r.store.state.blocks {
		b.Payload = b.Payload.Clone()
		out[i] = b
	}
	return out, nil
}

func (r *memLedgerRepo) Count(ctx context.Context) (int64, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	return int64(len(r.store.state.blocks)), nil
}

// memItemRepo implements ports.ItemRepository.
type memItemRepo struct {
	store *memStore
}

func (r *memItemRepo) Create(ctx context.Context, tx pgx.Tx, item *domain.AuctionItem) error {
	r.store.state.items[item.ID] = *item
	return nil
}

func (r *memItemRepo) getItem(id uuid.UUID) *domain.AuctionItem {
	item, ok := r.store.state.items[id]
	if !ok {
		return nil
	}
	return &item
}

func (r *memItemRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.AuctionItem, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	return r.getItem(id), nil
}

func (r *memItemRepo) GetByIDForUpdate(ctx context.Context, tx pgx.Tx, id uuid.UUID) (*domain.AuctionItem, error) {
	return r.getItem(id), nil
}

func (r *memItemRepo) MarkActive(ctx context.Context, tx pgx.Tx, id uuid.UUID, activatedAt, endsAt time.Time) error {
	item, ok := r.store.state.items[id]
	if !ok || item.IsActive {
		return nil
	}
	item.IsActive = true
	item.ActivatedAt = &activatedAt
	item.EndsAt = &endsAt
	r.store.state.items[id] = item
	return nil
}

func (r *memItemRepo) ListOpen(ctx context.Context) ([]domain.AuctionItem, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	now := time.Now().UTC()
	var out []domain.AuctionItem
	for _, item := range r.store.state.items {
		if item.CanAcceptBids(now) {
			out = append(out, item)
		}
	}
	return out, nil
}

// memBidRepo implements ports.BidRepository.
type memBidRepo struct {
	store *memStore
}

func (r *memBidRepo) Create(ctx context.Context, tx pgx.Tx, bid *domain.Bid) error {
	r.store.state.bids = append(r.store.state.bids, *bid)
	return nil
}

func (r *memBidRepo) highest(itemID uuid.UUID) *domain.Bid {
	var best *domain.Bid
	for i := range r.store.state.bids {
		b := r.store.state.bids[i]
		if b.ItemID != itemID {
			continue
		}
		if best == nil || b.Outbids(best) {
			c := b
			best = &c
		}
	}
	return best
}

func (r *memBidRepo) GetHighest(ctx context.Context, itemID uuid.UUID) (*domain.Bid, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	return r.highest(itemID), nil
}

func (r *memBidRepo) GetHighestTx(ctx context.Context, tx pgx.Tx, itemID uuid.UUID) (*domain.Bid, error) {
	return r.highest(itemID), nil
}

func (r *memBidRepo) ListByItem(ctx context.Context, itemID uuid.UUID) ([]domain.Bid, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	var out []domain.Bid
	for _, b := range r.store.state.bids {
		if b.ItemID == itemID {
			out = append(out, b)
		}
	}
	return out, nil
}

func (r *memBidRepo) CountDistinctBidders(ctx context.Context, tx pgx.Tx, itemID uuid.UUID) (int, error) {
	seen := make(map[uuid.UUID]struct{})
	for _, b := range r.store.state.bids {
		if b.ItemID == itemID {
			seen[b.BidderID] = struct{}{}
		}
	}
	return len(seen), nil
}

// memParticipantRepo implements ports.ParticipantRepository.
type memParticipantRepo struct {
	store *memStore
}

func (r *memParticipantRepo) Upsert(ctx context.Context, tx pgx.Tx, p *domain.Participant) (bool, error) {
	users, ok := r.store.state.participants[p.ItemID]
	if !ok {
		users = make(map[uuid.UUID]domain.Participant)
		r.store.state.participants[p.ItemID] = users
	}
	if _, exists := users[p.UserID]; exists {
		return false, nil
	}
	users[p.UserID] = *p
	return true, nil
}

func (r *memParticipantRepo) CountByItem(ctx context.Context, tx pgx.Tx, itemID uuid.UUID) (int, error) {
	return len(r.store.state.participants[itemID]), nil
}

// memPaymentRepo implements ports.PaymentRepository.
type memPaymentRepo struct {
	store *memStore
}

func (r *memPaymentRepo) Create(ctx context.Context, tx pgx.Tx, payment *domain.Payment) error {
	r.store.state.payments[payment.ID] = *payment
	return nil
}

func (r *memPaymentRepo) getPayment(id uuid.UUID) *domain.Payment {
	p, ok := r.store.state.payments[id]
	if !ok {
		return nil
	}
	return &p
}

func (r *memPaymentRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Payment, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	return r.getPayment(id), nil
}

func (r *memPaymentRepo) GetByIDForUpdate(ctx context.Context, tx pgx.Tx, id uuid.UUID) (*domain.Payment, error) {
	return r.getPayment(id), nil
}

func (r *memPaymentRepo) UpdateStatus(ctx context.Context, tx pgx.Tx, id uuid.UUID, status domain.PaymentStatus, providerRef string) error {
	p, ok := r.store.state.payments[id]
	if !ok {
		return nil
	}
	p.Status = status
	p.ProviderRef = providerRef
	if p.IsTerminal() {
		now := time.Now().UTC()
		p.ProcessedAt = &now
	}
	r.store.state.payments[id] = p
	return nil
}
