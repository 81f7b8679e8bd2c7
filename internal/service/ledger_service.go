package service

import (
	"context"
	"fmt"
	"sync"
	"time"

	"auction-ledger/internal/core/domain"
	"auction-ledger/internal/core/ports"
	"auction-ledger/pkg/apperror"

	"github.com/jackc/pgx/v5"
	"github.com/rs/zerolog"
)

const headCacheTTL = 30 * time.Second

// LedgerServiceImpl implements ports.LedgerService.
//
// Index assignment is serialized twice over: the append mutex covers
// standalone appends within this process, and the FOR UPDATE lock on the
// chain head (held until the surrounding transaction commits) covers every
// appender sharing the store, including composed multi-append transactions.
type LedgerServiceImpl struct {
	repo       ports.LedgerRepository
	hasher     ports.ChainHasher
	transactor ports.DBTransactor
	headCache  ports.HeadCache // nil = caching disabled
	log        zerolog.Logger

	mu sync.Mutex
}

// NewLedgerService creates a new LedgerServiceImpl.
func NewLedgerService(
	repo ports.LedgerRepository,
	hasher ports.ChainHasher,
	transactor ports.DBTransactor,
	headCache ports.HeadCache,
	log zerolog.Logger,
) *LedgerServiceImpl {
	return &LedgerServiceImpl{
		repo:       repo,
		hasher:     hasher,
		transactor: transactor,
		headCache:  headCache,
		log:        log,
	}
}

// Append commits a new block in its own transaction.
func (s *LedgerServiceImpl) Append(ctx context.Context, eventType domain.EventType, payload domain.Payload) (*domain.LedgerBlock, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	dbTx, err := s.transactor.Begin(ctx)
	if err != nil {
		return nil, apperror.ErrStorageUnavailable(fmt.Errorf("begin tx: %w", err))
	}
	defer dbTx.Rollback(ctx) //nolint:errcheck

	block, err := s.AppendTx(ctx, dbTx, eventType, payload)
	if err != nil {
		return nil, err
	}

	if err := dbTx.Commit(ctx); err != nil {
		return nil, apperror.ErrStorageUnavailable(fmt.Errorf("commit tx: %w", err))
	}

	s.cacheHead(ctx, block)
	return block, nil
}

// AppendTx appends within the caller's transaction. The new block becomes
// durable only when the caller commits; on rollback nothing is ever visible.
func (s *LedgerServiceImpl) AppendTx(ctx context.Context, tx pgx.Tx, eventType domain.EventType, payload domain.Payload) (*domain.LedgerBlock, error) {
	if !domain.ValidEventType(eventType) {
		return nil, apperror.ErrInvalidEventType(string(eventType))
	}
	if err := domain.ValidatePayload(eventType, payload); err != nil {
		return nil, apperror.ErrInvalidPayload(err.Error())
	}

	last, err := s.repo.GetLastForUpdate(ctx, tx)
	if err != nil {
		return nil, apperror.ErrStorageUnavailable(fmt.Errorf("lock chain head: %w", err))
	}

	var index int64
	previousHash := domain.GenesisPreviousHash
	if last != nil {
		index = last.Index + 1
		previousHash = last.Hash
	}

	// Microsecond precision survives a timestamptz round trip, so a reloaded
	// chain re-hashes to the same digests.
	ts := time.Now().UTC().Truncate(time.Microsecond)
	if last != nil && ts.Before(last.Timestamp) {
		ts = last.Timestamp
	}

	block := &domain.LedgerBlock{
		Index:        index,
		Timestamp:    ts,
		EventType:    eventType,
		Payload:      payload.Clone(),
		PreviousHash: previousHash,
		Nonce:        0,
	}
	block.Hash = s.hasher.Digest(block.Index, block.Timestamp, block.EventType, block.Payload, block.PreviousHash)

	if err := s.repo.Insert(ctx, tx, block); err != nil {
		return nil, apperror.ErrStorageUnavailable(fmt.Errorf("insert block %d: %w", block.Index, err))
	}

	s.log.Info().
		Int64("index", block.Index).
		Str("event_type", string(block.EventType)).
		Str("hash", block.Hash).
		Msg("ledger block appended")

	return block, nil
}

// ValidateChain recomputes every block's hash and linkage in index order
// and fails at the first mismatched block. The chain is never repaired.
func (s *LedgerServiceImpl) ValidateChain(ctx context.Context) (bool, error) {
	blocks, err := s.repo.ListAll(ctx)
	if err != nil {
		return false, apperror.ErrStorageUnavailable(fmt.Errorf("list blocks: %w", err))
	}

	var prev *domain.LedgerBlock
	for i := range blocks {
		b := &blocks[i]
		if !b.LinksTo(prev) {
			s.log.Warn().Int64("index", b.Index).Msg("chain linkage mismatch")
			return false, nil
		}
		expected := s.hasher.Digest(b.Index, b.Timestamp, b.EventType, b.Payload, b.PreviousHash)
		if b.Hash != expected {
			s.log.Warn().Int64("index", b.Index).Msg("chain hash mismatch")
			return false, nil
		}
		prev = b
	}
	return true, nil
}

// Chain returns the full chain in index order.
func (s *LedgerServiceImpl) Chain(ctx context.Context) ([]domain.LedgerBlock, error) {
	blocks, err := s.repo.ListAll(ctx)
	if err != nil {
		return nil, apperror.ErrStorageUnavailable(fmt.Errorf("list blocks: %w", err))
	}
	return blocks, nil
}

// Head returns the current last block, nil on an empty chain.
func (s *LedgerServiceImpl) Head(ctx context.Context) (*domain.LedgerBlock, error) {
	if s.headCache != nil {
		if cached, err := s.headCache.Get(ctx); err != nil {
			s.log.Warn().Err(err).Msg("head cache read failed, falling through to store")
		} else if cached != nil {
			return cached, nil
		}
	}

	head, err := s.repo.GetLast(ctx)
	if err != nil {
		return nil, apperror.ErrStorageUnavailable(fmt.Errorf("get chain head: %w", err))
	}
	if head != nil {
		s.cacheHead(ctx, head)
	}
	return head, nil
}

// cacheHead stores the head best-effort; failures only log.
func (s *LedgerServiceImpl) cacheHead(ctx context.Context, block *domain.LedgerBlock) {
	if s.headCache == nil {
		return
	}
	if err := s.headCache.Set(ctx, block, headCacheTTL); err != nil {
		s.log.Warn().Err(err).Int64("index", block.Index).Msg("failed to cache chain head")
	}
}
