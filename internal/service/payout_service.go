package service

import (
	"context"
	"fmt"
	"sync"
	"time"

	"onchain-discgolf/internal/core/domain"
	"onchain-discgolf/internal/core/ports"
	"onchain-discgolf/pkg/apperror"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// PayoutServiceImpl computes payout records for a finalizing round and drives
// each one to settlement exactly once. Records are written before any token
// moves; the Settled flag is the only thing that authorizes skipping a
// disbursement, so a crash at any point resumes without double-paying.
type PayoutServiceImpl struct {
	rounds      ports.RoundService
	payoutRepo  ports.PayoutRepository
	wallet      ports.WalletService
	transfer    ports.TransferService
	transactor  ports.DBTransactor
	entryPolicy domain.PayoutPolicy

	localIdentity  string
	maxAttempts    int
	initialBackoff time.Duration

	log zerolog.Logger
	mu  sync.Mutex
}

// NewPayoutService creates a new PayoutServiceImpl.
func NewPayoutService(
	rounds ports.RoundService,
	payoutRepo ports.PayoutRepository,
	wallet ports.WalletService,
	transfer ports.TransferService,
	transactor ports.DBTransactor,
	entryPolicy domain.PayoutPolicy,
	localIdentity string,
	maxAttempts int,
	initialBackoff time.Duration,
	log zerolog.Logger,
) *PayoutServiceImpl {
	if entryPolicy == nil {
		entryPolicy = domain.WinnerTakeAll
	}
	if maxAttempts < 1 {
		maxAttempts = 1
	}
	return &PayoutServiceImpl{
		rounds:         rounds,
		payoutRepo:     payoutRepo,
		wallet:         wallet,
		transfer:       transfer,
		transactor:     transactor,
		entryPolicy:    entryPolicy,
		localIdentity:  localIdentity,
		maxAttempts:    maxAttempts,
		initialBackoff: initialBackoff,
		log:            log,
	}
}

// Disburse creates the payout records for a finalizing round (first call
// only) and drives every unsettled record to settlement. Safe to call again
// after a partial failure.
func (s *PayoutServiceImpl) Disburse(ctx context.Context, roundID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	round, err := s.rounds.GetRound(ctx, roundID)
	if err != nil {
		return err
	}
	switch round.Status {
	case domain.RoundStatusSettled:
		return nil
	case domain.RoundStatusOpen:
		return apperror.Validation("round has not been finalized")
	}

	records, err := s.payoutRepo.ListByRound(ctx, roundID)
	if err != nil {
		return apperror.ErrDatabaseError(fmt.Errorf("list payouts: %w", err))
	}
	if len(records) == 0 {
		records, err = s.createRecords(ctx, round)
		if err != nil {
			return err
		}
	}

	// A round can legitimately owe nobody (no fees, or nothing collected).
	// Nothing to disburse still settles the round.
	if len(records) == 0 {
		return s.rounds.SettleRound(ctx, roundID)
	}

	var lastErr error
	for i := range records {
		if records[i].Settled {
			continue
		}
		if err := s.settleRecord(ctx, &records[i]); err != nil {
			s.log.Error().Err(err).
				Str("round_id", roundID).
				Str("recipient", records[i].RecipientIdentity).
				Msg("payout disbursement failed")
			lastErr = err
		}
	}
	return lastErr
}

// Resume re-drives every unsettled payout record after a restart.
func (s *PayoutServiceImpl) Resume(ctx context.Context) error {
	records, err := s.payoutRepo.ListUnsettled(ctx)
	if err != nil {
		return apperror.ErrDatabaseError(fmt.Errorf("list unsettled payouts: %w", err))
	}
	seen := make(map[string]bool)
	for _, r := range records {
		if !seen[r.RoundID] {
			seen[r.RoundID] = true
			s.log.Info().Str("round_id", r.RoundID).Msg("resuming unfinished settlement")
		}
	}
	var lastErr error
	for roundID := range seen {
		if err := s.Disburse(ctx, roundID); err != nil {
			lastErr = err
		}
	}
	return lastErr
}

// createRecords computes shares from the final standings and writes the full
// batch in one transaction, so the set of payouts for a round is decided
// exactly once.
func (s *PayoutServiceImpl) createRecords(ctx context.Context, round *domain.Round) ([]domain.PayoutRecord, error) {
	totals := round.PotTotals()
	standings := round.Standings()

	shares := s.entryPolicy(standings, totals.EntryPotSats)
	if sumShares(shares) > totals.EntryPotSats {
		return nil, apperror.ErrPayoutExceedsPot()
	}

	now := time.Now().UTC()
	var records []domain.PayoutRecord
	for _, share := range shares {
		if share.AmountSats <= 0 {
			continue
		}
		records = append(records, domain.PayoutRecord{
			ID:                uuid.New(),
			RoundID:           round.ID,
			RecipientIdentity: share.Identity,
			AmountSats:        share.AmountSats,
			Reason:            domain.PayoutReasonEntryPot,
			CreatedAt:         now,
		})
	}

	// No ace this round leaves the ace pot unpaid; it rolls over to the
	// group's next round rather than being refunded.
	makers := round.AceMakers()
	if len(makers) > 0 && totals.AcePotSats > 0 {
		for _, share := range domain.EvenSplit(makers, totals.AcePotSats) {
			if share.AmountSats <= 0 {
				continue
			}
			records = append(records, domain.PayoutRecord{
				ID:                uuid.New(),
				RoundID:           round.ID,
				RecipientIdentity: share.Identity,
				AmountSats:        share.AmountSats,
				Reason:            domain.PayoutReasonAcePot,
				CreatedAt:         now,
			})
		}
	}

	if len(records) == 0 {
		return nil, nil
	}

	dbTx, err := s.transactor.Begin(ctx)
	if err != nil {
		return nil, apperror.ErrDatabaseError(fmt.Errorf("begin tx: %w", err))
	}
	defer dbTx.Rollback(ctx) //nolint:errcheck

	if err := s.payoutRepo.CreateBatch(ctx, dbTx, records); err != nil {
		return nil, apperror.ErrDatabaseError(fmt.Errorf("create payout batch: %w", err))
	}
	if err := dbTx.Commit(ctx); err != nil {
		return nil, apperror.ErrDatabaseError(fmt.Errorf("commit payout batch: %w", err))
	}

	s.log.Info().
		Str("round_id", round.ID).
		Int("payouts", len(records)).
		Int64("entry_pot_sats", totals.EntryPotSats).
		Int64("ace_pot_sats", totals.AcePotSats).
		Msg("payout records created")
	return records, nil
}

// settleRecord disburses one record with bounded exponential backoff. Both
// the wallet debit and the publish sit inside the retry loop: a mint hiccup
// on the change swap gets the same treatment as a flaky relay. The debit
// still happens at most once per call; only an undebited attempt re-spends.
func (s *PayoutServiceImpl) settleRecord(ctx context.Context, rec *domain.PayoutRecord) error {
	// Paying the local user is a bookkeeping move: the sats are already in
	// this wallet, nothing crosses the network.
	if rec.RecipientIdentity == s.localIdentity {
		rec.Settled = true
		return s.rounds.RecordPayoutResult(ctx, *rec)
	}

	memo := fmt.Sprintf("%s payout", rec.Reason)
	base := rec.Attempts
	backoff := s.initialBackoff

	var tokens []domain.Token
	var lastErr error
	for attempt := 1; attempt <= s.maxAttempts; attempt++ {
		if tokens == nil {
			tokens, lastErr = s.wallet.Spend(ctx, rec.AmountSats)
		}
		if tokens != nil {
			lastErr = s.transfer.SendTokens(ctx, rec.RecipientIdentity, rec.RoundID, memo, tokens)
			if lastErr == nil {
				rec.Settled = true
				rec.Attempts = base + attempt
				return s.rounds.RecordPayoutResult(ctx, *rec)
			}
		}

		if err := s.payoutRepo.RecordAttempt(ctx, rec.ID, base+attempt, lastErr.Error()); err != nil {
			s.log.Error().Err(err).Str("payout_id", rec.ID.String()).Msg("failed to record payout attempt")
		}
		s.log.Warn().Err(lastErr).
			Str("payout_id", rec.ID.String()).
			Int("attempt", attempt).
			Msg("payout attempt failed, backing off")

		if attempt == s.maxAttempts {
			break
		}
		select {
		case <-ctx.Done():
			s.refundTokens(ctx, rec, tokens)
			return ctx.Err()
		case <-time.After(backoff):
		}
		backoff *= 2
	}

	// The tokens never reached the recipient; put them back in the wallet so
	// the next Disburse or Resume can spend them again.
	s.refundTokens(ctx, rec, tokens)
	return apperror.ErrPayoutDisbursementFailed(lastErr)
}

func (s *PayoutServiceImpl) refundTokens(ctx context.Context, rec *domain.PayoutRecord, tokens []domain.Token) {
	for _, t := range tokens {
		if _, err := s.wallet.RedeemIncoming(ctx, t); err != nil {
			s.log.Error().Err(err).
				Str("payout_id", rec.ID.String()).
				Int64("amount_sats", t.AmountSats).
				Msg("failed to return undelivered payout token to wallet")
		}
	}
}

func sumShares(shares []domain.Share) int64 {
	var total int64
	for _, s := range shares {
		total += s.AmountSats
	}
	return total
}
