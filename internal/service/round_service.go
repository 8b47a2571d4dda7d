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

// RoundServiceImpl implements ports.RoundService. A mutex serializes round
// mutations within the process; across devices there is no ordering guarantee
// at all, which is why every payment-state change is a monotonic latch.
type RoundServiceImpl struct {
	roundRepo  ports.RoundRepository
	payoutRepo ports.PayoutRepository
	log        zerolog.Logger

	mu sync.Mutex
}

// NewRoundService creates a new RoundServiceImpl.
func NewRoundService(
	roundRepo ports.RoundRepository,
	payoutRepo ports.PayoutRepository,
	log zerolog.Logger,
) *RoundServiceImpl {
	return &RoundServiceImpl{
		roundRepo:  roundRepo,
		payoutRepo: payoutRepo,
		log:        log,
	}
}

// CreateRound creates a new round with the host as its first player.
func (s *RoundServiceImpl) CreateRound(ctx context.Context, params ports.CreateRoundParams) (*domain.Round, error) {
	if params.HoleCount <= 0 {
		return nil, apperror.Validation("hole count must be positive")
	}
	if params.EntryFeeSats < 0 || params.AcePotFeeSats < 0 {
		return nil, apperror.Validation("fees cannot be negative")
	}
	if params.HostIdentity == "" {
		return nil, apperror.Validation("host identity is required")
	}

	now := time.Now().UTC()
	round := &domain.Round{
		ID:            uuid.New().String(),
		Name:          params.Name,
		CourseName:    params.CourseName,
		HoleCount:     params.HoleCount,
		EntryFeeSats:  params.EntryFeeSats,
		AcePotFeeSats: params.AcePotFeeSats,
		HostIdentity:  params.HostIdentity,
		Pars:          params.Pars,
		Status:        domain.RoundStatusOpen,
		CreatedAt:     now,
		UpdatedAt:     now,
		Players: []*domain.Player{{
			Identity:  params.HostIdentity,
			Name:      params.HostName,
			PaysEntry: params.EntryFeeSats > 0,
			PaysAce:   params.AcePotFeeSats > 0,
			JoinOrder: 0,
			Scores:    map[int]int{},
		}},
	}

	if err := s.roundRepo.Save(ctx, round); err != nil {
		return nil, apperror.ErrDatabaseError(fmt.Errorf("save round: %w", err))
	}

	s.log.Info().
		Str("round_id", round.ID).
		Str("course", round.CourseName).
		Int64("entry_fee_sats", round.EntryFeeSats).
		Msg("round created")

	return round, nil
}

// AddPlayer adds a participant to an open round. Re-adding an existing
// identity is a no-op returning current state.
func (s *RoundServiceImpl) AddPlayer(ctx context.Context, params ports.AddPlayerParams) (*domain.Round, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	round, err := s.loadRound(ctx, params.RoundID)
	if err != nil {
		return nil, err
	}
	if round.Status != domain.RoundStatusOpen {
		return nil, apperror.ErrAlreadyFinalized()
	}
	if round.Player(params.Identity) != nil {
		return round, nil
	}

	round.Players = append(round.Players, &domain.Player{
		Identity:  params.Identity,
		Name:      params.Name,
		PaysEntry: params.PaysEntry,
		PaysAce:   params.PaysAce,
		JoinOrder: len(round.Players),
		Scores:    map[int]int{},
	})
	round.UpdatedAt = time.Now().UTC()

	if err := s.roundRepo.Save(ctx, round); err != nil {
		return nil, apperror.ErrDatabaseError(fmt.Errorf("save round: %w", err))
	}
	return round, nil
}

// GetRound fetches a round by id.
func (s *RoundServiceImpl) GetRound(ctx context.Context, id string) (*domain.Round, error) {
	return s.loadRound(ctx, id)
}

// RecordScore records strokes for one player on one hole of an open round.
func (s *RoundServiceImpl) RecordScore(ctx context.Context, roundID, identity string, hole, strokes int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	round, err := s.loadRound(ctx, roundID)
	if err != nil {
		return err
	}
	if round.Status != domain.RoundStatusOpen {
		return apperror.ErrAlreadyFinalized()
	}
	player := round.Player(identity)
	if player == nil {
		return apperror.ErrPlayerNotInRound()
	}
	if hole < 1 || hole > round.HoleCount {
		return apperror.Validation(fmt.Sprintf("hole %d out of range", hole))
	}
	if strokes < 1 {
		return apperror.Validation("strokes must be at least 1")
	}

	player.Scores[hole] = strokes
	round.UpdatedAt = time.Now().UTC()

	if err := s.roundRepo.Save(ctx, round); err != nil {
		return apperror.ErrDatabaseError(fmt.Errorf("save round: %w", err))
	}
	return nil
}

// Obligation computes what a player owes. Derived on demand, never cached.
func (s *RoundServiceImpl) Obligation(ctx context.Context, roundID, identity string) (int64, error) {
	round, err := s.loadRound(ctx, roundID)
	if err != nil {
		return 0, err
	}
	if round.Player(identity) == nil {
		return 0, apperror.ErrPlayerNotInRound()
	}
	return round.Obligation(identity), nil
}

// IsPaid reports a player's payment latch.
func (s *RoundServiceImpl) IsPaid(ctx context.Context, roundID, identity string) (bool, error) {
	round, err := s.loadRound(ctx, roundID)
	if err != nil {
		return false, err
	}
	player := round.Player(identity)
	if player == nil {
		return false, apperror.ErrPlayerNotInRound()
	}
	return player.Paid, nil
}

// PotTotals derives the current pots.
func (s *RoundServiceImpl) PotTotals(ctx context.Context, roundID string) (domain.PotTotals, error) {
	round, err := s.loadRound(ctx, roundID)
	if err != nil {
		return domain.PotTotals{}, err
	}
	return round.PotTotals(), nil
}

// ApplyPayment credits a confirmed payment toward a player's obligation.
// Applying the same confirmation twice, or out of order, cannot un-pay
// anyone: the paid flag only ever moves one way.
func (s *RoundServiceImpl) ApplyPayment(ctx context.Context, roundID, identity string, amountSats int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	round, err := s.loadRound(ctx, roundID)
	if err != nil {
		return err
	}
	if round.Player(identity) == nil {
		return apperror.ErrPlayerNotInRound()
	}

	flipped := round.ApplyPayment(identity, amountSats)
	round.UpdatedAt = time.Now().UTC()

	if err := s.roundRepo.Save(ctx, round); err != nil {
		return apperror.ErrDatabaseError(fmt.Errorf("save round: %w", err))
	}

	if flipped {
		s.log.Info().
			Str("round_id", roundID).
			Str("identity", identity).
			Msg("player marked paid")
	}
	return nil
}

// MarkInvoicePaid latches a player paid after their invoice for the full
// obligation settled. Idempotent.
func (s *RoundServiceImpl) MarkInvoicePaid(ctx context.Context, roundID, identity string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	round, err := s.loadRound(ctx, roundID)
	if err != nil {
		return err
	}
	if round.Player(identity) == nil {
		return apperror.ErrPlayerNotInRound()
	}

	if round.MarkPaid(identity) {
		round.UpdatedAt = time.Now().UTC()
		if err := s.roundRepo.Save(ctx, round); err != nil {
			return apperror.ErrDatabaseError(fmt.Errorf("save round: %w", err))
		}
		s.log.Info().
			Str("round_id", roundID).
			Str("identity", identity).
			Msg("player marked paid via invoice")
	}
	return nil
}

// Finalize moves a round Open -> Finalizing with the agreed final scores.
// Only the host may finalize.
func (s *RoundServiceImpl) Finalize(ctx context.Context, roundID, callerIdentity string, finalScores map[string]map[int]int) (*domain.Round, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	round, err := s.loadRound(ctx, roundID)
	if err != nil {
		return nil, err
	}
	if callerIdentity != round.HostIdentity {
		return nil, apperror.ErrNotHost()
	}
	if round.Status != domain.RoundStatusOpen {
		return nil, apperror.ErrAlreadyFinalized()
	}

	for identity, scores := range finalScores {
		if player := round.Player(identity); player != nil {
			player.Scores = scores
		}
	}
	round.Status = domain.RoundStatusFinalizing
	round.UpdatedAt = time.Now().UTC()

	if err := s.roundRepo.Save(ctx, round); err != nil {
		return nil, apperror.ErrDatabaseError(fmt.Errorf("save round: %w", err))
	}

	s.log.Info().Str("round_id", roundID).Msg("round finalized, settlement pending")
	return round, nil
}

// RecordPayoutResult marks one disbursement settled. Once every record for
// the round is settled, the round moves Finalizing -> Settled.
func (s *RoundServiceImpl) RecordPayoutResult(ctx context.Context, record domain.PayoutRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now().UTC()
	if err := s.payoutRepo.MarkSettled(ctx, record.ID, now); err != nil {
		return apperror.ErrDatabaseError(fmt.Errorf("mark payout settled: %w", err))
	}

	records, err := s.payoutRepo.ListByRound(ctx, record.RoundID)
	if err != nil {
		return apperror.ErrDatabaseError(fmt.Errorf("list payouts: %w", err))
	}
	for _, r := range records {
		if !r.Settled && r.ID != record.ID {
			return nil
		}
	}

	return s.settleLocked(ctx, record.RoundID, now)
}

// SettleRound closes out a finalizing round with nothing to disburse. A
// free round still moves to Settled so the summary screen does not show it
// processing forever.
func (s *RoundServiceImpl) SettleRound(ctx context.Context, roundID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.settleLocked(ctx, roundID, time.Now().UTC())
}

func (s *RoundServiceImpl) settleLocked(ctx context.Context, roundID string, now time.Time) error {
	round, err := s.loadRound(ctx, roundID)
	if err != nil {
		return err
	}
	if round.Status != domain.RoundStatusFinalizing {
		return nil
	}
	round.Status = domain.RoundStatusSettled
	round.UpdatedAt = now

	if err := s.roundRepo.Save(ctx, round); err != nil {
		return apperror.ErrDatabaseError(fmt.Errorf("save round: %w", err))
	}

	s.log.Info().Str("round_id", roundID).Msg("round settled")
	return nil
}

// PayoutStatus lists the round's disbursement records for display.
func (s *RoundServiceImpl) PayoutStatus(ctx context.Context, roundID string) ([]domain.PayoutRecord, error) {
	if _, err := s.loadRound(ctx, roundID); err != nil {
		return nil, err
	}
	records, err := s.payoutRepo.ListByRound(ctx, roundID)
	if err != nil {
		return nil, apperror.ErrDatabaseError(fmt.Errorf("list payouts: %w", err))
	}
	return records, nil
}

// Summary assembles the round summary screen's data.
func (s *RoundServiceImpl) Summary(ctx context.Context, roundID string) (*domain.RoundSummary, error) {
	round, err := s.loadRound(ctx, roundID)
	if err != nil {
		return nil, err
	}
	records, err := s.payoutRepo.ListByRound(ctx, roundID)
	if err != nil {
		return nil, apperror.ErrDatabaseError(fmt.Errorf("list payouts: %w", err))
	}

	totals := round.PotTotals()
	acePaidOut := false
	processing := false
	for _, r := range records {
		if r.Reason == domain.PayoutReasonAcePot {
			acePaidOut = true
		}
		if !r.Settled {
			processing = true
		}
	}

	return &domain.RoundSummary{
		Round:                round,
		PotTotals:            totals,
		Standings:            round.Standings(),
		Payouts:              records,
		AcePotRolledOver:     round.Status != domain.RoundStatusOpen && totals.AcePotSats > 0 && !acePaidOut,
		IsProcessingPayments: round.Status == domain.RoundStatusFinalizing && processing,
	}, nil
}

func (s *RoundServiceImpl) loadRound(ctx context.Context, id string) (*domain.Round, error) {
	round, err := s.roundRepo.GetByID(ctx, id)
	if err != nil {
		return nil, apperror.ErrDatabaseError(fmt.Errorf("get round: %w", err))
	}
	if round == nil {
		return nil, apperror.ErrNotFound("Round")
	}
	return round, nil
}
