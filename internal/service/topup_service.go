package service

import (
	"context"

	"wallet-topup-service/internal/core/domain"
	"wallet-topup-service/internal/core/ports"

	"github.com/rs/zerolog"
)

// TopupServiceImpl implements ports.TopupService: the per-batch orchestrator
// driving notifications through the wallet repository.
//
// Batches are bounded (domain.MaxBatchSize) so entries are processed
// sequentially, each independently all-or-nothing. A failed entry never
// aborts the rest of the batch.
type TopupServiceImpl struct {
	repo      ports.WalletRepository
	publisher ports.EventPublisher // nil = event publishing disabled
	log       zerolog.Logger
}

// NewTopupService creates a new TopupServiceImpl.
func NewTopupService(repo ports.WalletRepository, publisher ports.EventPublisher, log zerolog.Logger) *TopupServiceImpl {
	return &TopupServiceImpl{
		repo:      repo,
		publisher: publisher,
		log:       log,
	}
}

// ProcessBatch applies every entry and partitions the originals into
// succeeded and failed lists. It never returns an error: per-entry
// persistence failures are recovered here into the failed list.
func (s *TopupServiceImpl) ProcessBatch(ctx context.Context, batch []domain.TopupNotification) *ports.BatchResult {
	result := &ports.BatchResult{
		Succeeded: []domain.TopupNotification{},
		Failed:    []domain.TopupNotification{},
	}

	for i := range batch {
		entry := batch[i]

		outcome, err := s.applyEntry(ctx, &entry)
		switch outcome {
		case domain.OutcomeApplied:
			s.log.Info().
				Str("transaction_id", entry.ID).
				Str("user_id", entry.UserID).
				Str("amount", entry.Amount).
				Str("state", entry.State).
				Msg("top-up applied")
			result.Succeeded = append(result.Succeeded, entry)
			s.publishApplied(ctx, &entry)

		case domain.OutcomeAlreadyApplied:
			// A retried delivery, not a fault. Reported as failed to the
			// caller (the record was not written by this request) but
			// distinguished in the logs.
			s.log.Warn().
				Str("transaction_id", entry.ID).
				Str("user_id", entry.UserID).
				Msg("duplicate top-up delivery suppressed")
			result.Failed = append(result.Failed, entry)

		default:
			s.log.Error().
				Err(err).
				Str("transaction_id", entry.ID).
				Str("user_id", entry.UserID).
				Msg("top-up rejected")
			result.Failed = append(result.Failed, entry)
		}
	}

	return result
}

// applyEntry runs the per-entry state machine: look up the wallet, then
// either create-with-first-transaction or append-with-balance-update.
func (s *TopupServiceImpl) applyEntry(ctx context.Context, n *domain.TopupNotification) (domain.ApplyOutcome, error) {
	wallet, err := s.repo.GetWallet(ctx, n.UserID)
	if err != nil {
		return domain.OutcomeRejected, err
	}

	if wallet == nil {
		return s.repo.CreateWalletAndTransaction(ctx, n)
	}
	return s.repo.RecordTransaction(ctx, n)
}

// publishApplied emits the applied transaction to downstream consumers.
// Best-effort: publish failures are logged and swallowed.
func (s *TopupServiceImpl) publishApplied(ctx context.Context, n *domain.TopupNotification) {
	if s.publisher == nil {
		return
	}

	amount, err := domain.ToMinorUnits(n.Amount)
	if err != nil {
		// The repository already converted this amount; unreachable for an
		// applied entry.
		return
	}

	txn := &domain.Transaction{
		UserID:        n.UserID,
		TransactionID: n.ID,
		Amount:        amount,
		Description:   n.Description,
		Type:          n.Type,
		TypeMethod:    n.TypeMethod,
		State:         n.State,
		Currency:      n.Currency,
		DebitCredit:   n.DebitCredit,
		CreatedAt:     n.CreatedAt,
		UpdatedAt:     n.UpdatedAt,
	}

	if err := s.publisher.PublishTopupApplied(ctx, txn); err != nil {
		s.log.Warn().
			Err(err).
			Str("transaction_id", n.ID).
			Msg("failed to publish top-up event")
	}
}
