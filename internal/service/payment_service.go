package service

import (
	"context"
	"fmt"
	"time"

	"auction-ledger/internal/core/domain"
	"auction-ledger/internal/core/ports"
	"auction-ledger/pkg/apperror"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// PaymentServiceImpl implements ports.PaymentService. A payment is created in
// processing state with a provider reference already assigned; the provider
// callback then drives it to succeeded or failed exactly once.
type PaymentServiceImpl struct {
	paymentRepo ports.PaymentRepository
	itemRepo    ports.ItemRepository
	bidRepo     ports.BidRepository
	ledger      ports.LedgerService
	transactor  ports.DBTransactor
	provider    string
	log         zerolog.Logger
}

// NewPaymentService creates a new PaymentServiceImpl.
func NewPaymentService(
	paymentRepo ports.PaymentRepository,
	itemRepo ports.ItemRepository,
	bidRepo ports.BidRepository,
	ledger ports.LedgerService,
	transactor ports.DBTransactor,
	provider string,
	log zerolog.Logger,
) *PaymentServiceImpl {
	return &PaymentServiceImpl{
		paymentRepo: paymentRepo,
		itemRepo:    itemRepo,
		bidRepo:     bidRepo,
		ledger:      ledger,
		transactor:  transactor,
		provider:    provider,
		log:         log,
	}
}

// StartPayment opens a payment for an item. The amount is never taken from
// the caller: a winning-bid payment charges the standing highest bid, a
// buy-now payment charges the listed buy-now price.
func (s *PaymentServiceImpl) StartPayment(ctx context.Context, req ports.StartPaymentRequest) (*domain.Payment, error) {
	dbTx, err := s.transactor.Begin(ctx)
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("begin tx: %w", err))
	}
	defer dbTx.Rollback(ctx) //nolint:errcheck

	item, err := s.itemRepo.GetByIDForUpdate(ctx, dbTx, req.ItemID)
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("lock item: %w", err))
	}
	if item == nil {
		return nil, apperror.ErrNotFound("item")
	}

	now := time.Now().UTC().Truncate(time.Microsecond)

	var amount int64
	switch req.Kind {
	case domain.PaymentKindWinningBid:
		if !item.IsClosed(now) {
			return nil, apperror.ErrAuctionNotAcceptingBids()
		}
		highest, err := s.bidRepo.GetHighestTx(ctx, dbTx, req.ItemID)
		if err != nil {
			return nil, apperror.InternalError(fmt.Errorf("get highest bid: %w", err))
		}
		if highest == nil {
			return nil, apperror.ErrNoBids()
		}
		if highest.BidderID != req.BuyerID {
			return nil, apperror.ErrNotHighestBidder()
		}
		amount = highest.Amount
	case domain.PaymentKindBuyNow:
		if !item.HasBuyNow() {
			return nil, apperror.ErrBuyNowUnavailable()
		}
		if item.IsClosed(now) {
			return nil, apperror.ErrAuctionNotAcceptingBids()
		}
		amount = *item.BuyNowPrice
	default:
		return nil, apperror.Validation(fmt.Sprintf("unknown payment kind %q", req.Kind))
	}

	payment := &domain.Payment{
		ID:        uuid.New(),
		ItemID:    req.ItemID,
		BuyerID:   req.BuyerID,
		Amount:    amount,
		Kind:      req.Kind,
		Provider:  s.provider,
		Status:    domain.PaymentStatusPending,
		CreatedAt: now,
	}
	if err := s.paymentRepo.Create(ctx, dbTx, payment); err != nil {
		return nil, apperror.InternalError(fmt.Errorf("create payment: %w", err))
	}

	// Simulated provider handoff: assign the reference and move to
	// processing immediately, inside the same transaction.
	payment.ProviderRef = newProviderRef(payment.ID, now)
	if err := s.paymentRepo.UpdateStatus(ctx, dbTx, payment.ID, domain.PaymentStatusProcessing, payment.ProviderRef); err != nil {
		return nil, apperror.InternalError(fmt.Errorf("update payment status: %w", err))
	}
	payment.Status = domain.PaymentStatusProcessing

	initPayload := domain.NewPaymentInitiatedPayload(req.ItemID, req.BuyerID, payment.ID, amount)
	if _, err := s.ledger.AppendTx(ctx, dbTx, domain.EventPaymentInitiated, initPayload); err != nil {
		return nil, err
	}

	if err := dbTx.Commit(ctx); err != nil {
		return nil, apperror.InternalError(fmt.Errorf("commit tx: %w", err))
	}

	s.log.Info().
		Str("payment_id", payment.ID.String()).
		Str("item_id", req.ItemID.String()).
		Str("kind", string(req.Kind)).
		Int64("amount", amount).
		Msg("payment initiated")

	return payment, nil
}

// ConfirmPayment marks a processing payment succeeded and records it in the
// ledger. Confirming an already succeeded payment with the same provider
// reference is a no-op, so provider callback retries never double-record.
func (s *PaymentServiceImpl) ConfirmPayment(ctx context.Context, paymentID uuid.UUID, providerRef string) (*domain.Payment, error) {
	dbTx, err := s.transactor.Begin(ctx)
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("begin tx: %w", err))
	}
	defer dbTx.Rollback(ctx) //nolint:errcheck

	payment, err := s.paymentRepo.GetByIDForUpdate(ctx, dbTx, paymentID)
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("lock payment: %w", err))
	}
	if payment == nil {
		return nil, apperror.ErrNotFound("payment")
	}
	if payment.ProviderRef != providerRef {
		return nil, apperror.ErrProviderRefMismatch()
	}

	if payment.Status == domain.PaymentStatusSucceeded {
		return payment, nil
	}
	if !payment.CanTransitionTo(domain.PaymentStatusSucceeded) {
		return nil, apperror.ErrInvalidPaymentState(string(payment.Status))
	}

	if err := s.paymentRepo.UpdateStatus(ctx, dbTx, paymentID, domain.PaymentStatusSucceeded, payment.ProviderRef); err != nil {
		return nil, apperror.InternalError(fmt.Errorf("update payment status: %w", err))
	}

	recPayload := domain.NewPaymentRecordedPayload(payment.ItemID, payment.BuyerID, payment.ID, payment.Amount, payment.ProviderRef)
	if _, err := s.ledger.AppendTx(ctx, dbTx, domain.EventPaymentRecorded, recPayload); err != nil {
		return nil, err
	}

	if err := dbTx.Commit(ctx); err != nil {
		return nil, apperror.InternalError(fmt.Errorf("commit tx: %w", err))
	}

	now := time.Now().UTC().Truncate(time.Microsecond)
	payment.Status = domain.PaymentStatusSucceeded
	payment.ProcessedAt = &now

	s.log.Info().
		Str("payment_id", payment.ID.String()).
		Str("provider_ref", payment.ProviderRef).
		Int64("amount", payment.Amount).
		Msg("payment recorded")

	return payment, nil
}

// FailPayment marks a processing payment failed. No ledger event is written;
// only completed purchases enter the chain.
func (s *PaymentServiceImpl) FailPayment(ctx context.Context, paymentID uuid.UUID, reason string) (*domain.Payment, error) {
	dbTx, err := s.transactor.Begin(ctx)
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("begin tx: %w", err))
	}
	defer dbTx.Rollback(ctx) //nolint:errcheck

	payment, err := s.paymentRepo.GetByIDForUpdate(ctx, dbTx, paymentID)
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("lock payment: %w", err))
	}
	if payment == nil {
		return nil, apperror.ErrNotFound("payment")
	}

	if payment.Status == domain.PaymentStatusFailed {
		return payment, nil
	}
	if !payment.CanTransitionTo(domain.PaymentStatusFailed) {
		return nil, apperror.ErrInvalidPaymentState(string(payment.Status))
	}

	if err := s.paymentRepo.UpdateStatus(ctx, dbTx, paymentID, domain.PaymentStatusFailed, payment.ProviderRef); err != nil {
		return nil, apperror.InternalError(fmt.Errorf("update payment status: %w", err))
	}

	if err := dbTx.Commit(ctx); err != nil {
		return nil, apperror.InternalError(fmt.Errorf("commit tx: %w", err))
	}

	now := time.Now().UTC().Truncate(time.Microsecond)
	payment.Status = domain.PaymentStatusFailed
	payment.ProcessedAt = &now

	s.log.Warn().
		Str("payment_id", payment.ID.String()).
		Str("reason", reason).
		Msg("payment failed")

	return payment, nil
}

func newProviderRef(paymentID uuid.UUID, now time.Time) string {
	return fmt.Sprintf("SIM-%s-%d", paymentID.String()[:8], now.UnixMilli())
}
