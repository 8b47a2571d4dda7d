package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"onchain-discgolf/internal/core/domain"
	"onchain-discgolf/internal/core/ports"
	"onchain-discgolf/internal/core/ports/mocks"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

type roundTestDeps struct {
	svc        *RoundServiceImpl
	roundRepo  *mocks.MockRoundRepository
	payoutRepo *mocks.MockPayoutRepository
	ctrl       *gomock.Controller
}

func setupRoundService(t *testing.T) *roundTestDeps {
	ctrl := gomock.NewController(t)
	d := &roundTestDeps{
		roundRepo:  mocks.NewMockRoundRepository(ctrl),
		payoutRepo: mocks.NewMockPayoutRepository(ctrl),
		ctrl:       ctrl,
	}
	d.svc = NewRoundService(d.roundRepo, d.payoutRepo, zerolog.Nop())
	return d
}

func openRound() *domain.Round {
	return &domain.Round{
		ID:            "round-1",
		Name:          "Saturday Skins",
		CourseName:    "Maple Hill",
		HoleCount:     3,
		EntryFeeSats:  1000,
		AcePotFeeSats: 500,
		HostIdentity:  "host-pub",
		Pars:          map[int]int{1: 3, 2: 3, 3: 4},
		Status:        domain.RoundStatusOpen,
		Players: []*domain.Player{
			{Identity: "host-pub", Name: "Host", PaysEntry: true, PaysAce: true, JoinOrder: 0, Scores: map[int]int{}},
			{Identity: "p2-pub", Name: "Kim", PaysEntry: true, PaysAce: false, JoinOrder: 1, Scores: map[int]int{}},
		},
	}
}

// ==================== CreateRound Tests ====================

func TestRoundService_CreateRound(t *testing.T) {
	d := setupRoundService(t)
	defer d.ctrl.Finish()

	var saved *domain.Round
	d.roundRepo.EXPECT().Save(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, r *domain.Round) error {
			saved = r
			return nil
		})

	round, err := d.svc.CreateRound(context.Background(), ports.CreateRoundParams{
		Name:          "Saturday Skins",
		CourseName:    "Maple Hill",
		HoleCount:     18,
		EntryFeeSats:  1000,
		AcePotFeeSats: 500,
		Pars:          map[int]int{1: 3},
		HostIdentity:  "host-pub",
		HostName:      "Host",
	})
	require.NoError(t, err)
	assert.Equal(t, saved, round)
	assert.Equal(t, domain.RoundStatusOpen, round.Status)
	require.Len(t, round.Players, 1)
	assert.Equal(t, "host-pub", round.Players[0].Identity)
	assert.True(t, round.Players[0].PaysEntry)
	assert.NotEmpty(t, round.ID)
}

func TestRoundService_CreateRound_Validation(t *testing.T) {
	d := setupRoundService(t)
	defer d.ctrl.Finish()

	_, err := d.svc.CreateRound(context.Background(), ports.CreateRoundParams{HoleCount: 0, HostIdentity: "host-pub"})
	assert.Error(t, err)

	_, err = d.svc.CreateRound(context.Background(), ports.CreateRoundParams{HoleCount: 18, EntryFeeSats: -1, HostIdentity: "host-pub"})
	assert.Error(t, err)

	_, err = d.svc.CreateRound(context.Background(), ports.CreateRoundParams{HoleCount: 18})
	assert.Error(t, err)
}

// ==================== AddPlayer Tests ====================

func TestRoundService_AddPlayer(t *testing.T) {
	d := setupRoundService(t)
	defer d.ctrl.Finish()

	d.roundRepo.EXPECT().GetByID(gomock.Any(), "round-1").Return(openRound(), nil)
	d.roundRepo.EXPECT().Save(gomock.Any(), gomock.Any()).Return(nil)

	round, err := d.svc.AddPlayer(context.Background(), ports.AddPlayerParams{
		RoundID: "round-1", Identity: "p3-pub", Name: "Sam", PaysEntry: true, PaysAce: true,
	})
	require.NoError(t, err)
	require.Len(t, round.Players, 3)
	assert.Equal(t, 2, round.Players[2].JoinOrder)
}

func TestRoundService_AddPlayer_Rejoin(t *testing.T) {
	d := setupRoundService(t)
	defer d.ctrl.Finish()

	d.roundRepo.EXPECT().GetByID(gomock.Any(), "round-1").Return(openRound(), nil)

	// No Save expectation: re-adding an existing identity changes nothing.
	round, err := d.svc.AddPlayer(context.Background(), ports.AddPlayerParams{RoundID: "round-1", Identity: "p2-pub"})
	require.NoError(t, err)
	assert.Len(t, round.Players, 2)
}

func TestRoundService_AddPlayer_ClosedRound(t *testing.T) {
	d := setupRoundService(t)
	defer d.ctrl.Finish()

	r := openRound()
	r.Status = domain.RoundStatusFinalizing
	d.roundRepo.EXPECT().GetByID(gomock.Any(), "round-1").Return(r, nil)

	_, err := d.svc.AddPlayer(context.Background(), ports.AddPlayerParams{RoundID: "round-1", Identity: "p3-pub"})
	assert.Equal(t, "RND_002", appErrCode(t, err))
}

func TestRoundService_AddPlayer_RoundMissing(t *testing.T) {
	d := setupRoundService(t)
	defer d.ctrl.Finish()

	d.roundRepo.EXPECT().GetByID(gomock.Any(), "nope").Return(nil, nil)

	_, err := d.svc.AddPlayer(context.Background(), ports.AddPlayerParams{RoundID: "nope", Identity: "p3-pub"})
	assert.Equal(t, "RND_003", appErrCode(t, err))
}

// ==================== RecordScore Tests ====================

func TestRoundService_RecordScore(t *testing.T) {
	d := setupRoundService(t)
	defer d.ctrl.Finish()

	r := openRound()
	d.roundRepo.EXPECT().GetByID(gomock.Any(), "round-1").Return(r, nil)
	d.roundRepo.EXPECT().Save(gomock.Any(), r).Return(nil)

	err := d.svc.RecordScore(context.Background(), "round-1", "p2-pub", 2, 4)
	require.NoError(t, err)
	assert.Equal(t, 4, r.Player("p2-pub").Scores[2])
}

func TestRoundService_RecordScore_Validation(t *testing.T) {
	d := setupRoundService(t)
	defer d.ctrl.Finish()

	d.roundRepo.EXPECT().GetByID(gomock.Any(), "round-1").Return(openRound(), nil).Times(3)

	err := d.svc.RecordScore(context.Background(), "round-1", "stranger", 1, 3)
	assert.Equal(t, "RND_004", appErrCode(t, err))

	err = d.svc.RecordScore(context.Background(), "round-1", "p2-pub", 9, 3)
	assert.Error(t, err)

	err = d.svc.RecordScore(context.Background(), "round-1", "p2-pub", 1, 0)
	assert.Error(t, err)
}

// ==================== Payment Tests ====================

func TestRoundService_ApplyPayment_LatchesPaid(t *testing.T) {
	d := setupRoundService(t)
	defer d.ctrl.Finish()

	r := openRound()
	d.roundRepo.EXPECT().GetByID(gomock.Any(), "round-1").Return(r, nil).Times(2)
	d.roundRepo.EXPECT().Save(gomock.Any(), r).Return(nil).Times(2)

	// Obligation for p2 is the 1000 entry fee, paid in two parts.
	require.NoError(t, d.svc.ApplyPayment(context.Background(), "round-1", "p2-pub", 400))
	assert.False(t, r.Player("p2-pub").Paid)

	require.NoError(t, d.svc.ApplyPayment(context.Background(), "round-1", "p2-pub", 600))
	assert.True(t, r.Player("p2-pub").Paid)
}

func TestRoundService_ApplyPayment_DuplicateIsHarmless(t *testing.T) {
	d := setupRoundService(t)
	defer d.ctrl.Finish()

	r := openRound()
	r.Player("p2-pub").Paid = true
	r.Player("p2-pub").PaidSats = 1000

	d.roundRepo.EXPECT().GetByID(gomock.Any(), "round-1").Return(r, nil)
	d.roundRepo.EXPECT().Save(gomock.Any(), r).Return(nil)

	require.NoError(t, d.svc.ApplyPayment(context.Background(), "round-1", "p2-pub", 1000))
	assert.True(t, r.Player("p2-pub").Paid)
	assert.Equal(t, int64(1000), r.Player("p2-pub").PaidSats)
	assert.Equal(t, int64(0), r.DonationSats)
}

func TestRoundService_MarkInvoicePaid_Idempotent(t *testing.T) {
	d := setupRoundService(t)
	defer d.ctrl.Finish()

	r := openRound()
	d.roundRepo.EXPECT().GetByID(gomock.Any(), "round-1").Return(r, nil).Times(2)
	// Only the first call flips state and saves.
	d.roundRepo.EXPECT().Save(gomock.Any(), r).Return(nil)

	require.NoError(t, d.svc.MarkInvoicePaid(context.Background(), "round-1", "p2-pub"))
	require.NoError(t, d.svc.MarkInvoicePaid(context.Background(), "round-1", "p2-pub"))
	assert.True(t, r.Player("p2-pub").Paid)
}

// ==================== Finalize Tests ====================

func TestRoundService_Finalize(t *testing.T) {
	d := setupRoundService(t)
	defer d.ctrl.Finish()

	r := openRound()
	d.roundRepo.EXPECT().GetByID(gomock.Any(), "round-1").Return(r, nil)
	d.roundRepo.EXPECT().Save(gomock.Any(), r).Return(nil)

	finalScores := map[string]map[int]int{
		"host-pub": {1: 3, 2: 3, 3: 4},
		"p2-pub":   {1: 2, 2: 3, 3: 4},
	}
	round, err := d.svc.Finalize(context.Background(), "round-1", "host-pub", finalScores)
	require.NoError(t, err)
	assert.Equal(t, domain.RoundStatusFinalizing, round.Status)
	assert.Equal(t, 9, round.Player("p2-pub").TotalStrokes())
}

func TestRoundService_Finalize_NotHost(t *testing.T) {
	d := setupRoundService(t)
	defer d.ctrl.Finish()

	d.roundRepo.EXPECT().GetByID(gomock.Any(), "round-1").Return(openRound(), nil)

	_, err := d.svc.Finalize(context.Background(), "round-1", "p2-pub", nil)
	assert.Equal(t, "RND_001", appErrCode(t, err))
}

func TestRoundService_Finalize_Twice(t *testing.T) {
	d := setupRoundService(t)
	defer d.ctrl.Finish()

	r := openRound()
	r.Status = domain.RoundStatusFinalizing
	d.roundRepo.EXPECT().GetByID(gomock.Any(), "round-1").Return(r, nil)

	_, err := d.svc.Finalize(context.Background(), "round-1", "host-pub", nil)
	assert.Equal(t, "RND_002", appErrCode(t, err))
}

// ==================== RecordPayoutResult Tests ====================

func TestRoundService_RecordPayoutResult_LastRecordSettlesRound(t *testing.T) {
	d := setupRoundService(t)
	defer d.ctrl.Finish()

	r := openRound()
	r.Status = domain.RoundStatusFinalizing
	rec := domain.PayoutRecord{ID: uuid.New(), RoundID: "round-1", RecipientIdentity: "p2-pub", AmountSats: 2000}
	other := domain.PayoutRecord{ID: uuid.New(), RoundID: "round-1", Settled: true}

	d.payoutRepo.EXPECT().MarkSettled(gomock.Any(), rec.ID, gomock.Any()).Return(nil)
	d.payoutRepo.EXPECT().ListByRound(gomock.Any(), "round-1").Return([]domain.PayoutRecord{other, rec}, nil)
	d.roundRepo.EXPECT().GetByID(gomock.Any(), "round-1").Return(r, nil)
	d.roundRepo.EXPECT().Save(gomock.Any(), r).Return(nil)

	require.NoError(t, d.svc.RecordPayoutResult(context.Background(), rec))
	assert.Equal(t, domain.RoundStatusSettled, r.Status)
}

func TestRoundService_RecordPayoutResult_OthersStillUnsettled(t *testing.T) {
	d := setupRoundService(t)
	defer d.ctrl.Finish()

	rec := domain.PayoutRecord{ID: uuid.New(), RoundID: "round-1"}
	pending := domain.PayoutRecord{ID: uuid.New(), RoundID: "round-1"}

	d.payoutRepo.EXPECT().MarkSettled(gomock.Any(), rec.ID, gomock.Any()).Return(nil)
	d.payoutRepo.EXPECT().ListByRound(gomock.Any(), "round-1").Return([]domain.PayoutRecord{rec, pending}, nil)

	// No Save: the round stays in Finalizing until the last record settles.
	require.NoError(t, d.svc.RecordPayoutResult(context.Background(), rec))
}

// ==================== SettleRound Tests ====================

func TestRoundService_SettleRound_FinalizingMovesToSettled(t *testing.T) {
	d := setupRoundService(t)
	defer d.ctrl.Finish()

	r := openRound()
	r.Status = domain.RoundStatusFinalizing

	d.roundRepo.EXPECT().GetByID(gomock.Any(), "round-1").Return(r, nil)
	d.roundRepo.EXPECT().Save(gomock.Any(), r).Return(nil)

	require.NoError(t, d.svc.SettleRound(context.Background(), "round-1"))
	assert.Equal(t, domain.RoundStatusSettled, r.Status)
}

func TestRoundService_SettleRound_OpenRoundUntouched(t *testing.T) {
	d := setupRoundService(t)
	defer d.ctrl.Finish()

	r := openRound()
	d.roundRepo.EXPECT().GetByID(gomock.Any(), "round-1").Return(r, nil)

	// No Save: an open round cannot be settled out from under its players.
	require.NoError(t, d.svc.SettleRound(context.Background(), "round-1"))
	assert.Equal(t, domain.RoundStatusOpen, r.Status)
}

// ==================== Summary Tests ====================

func TestRoundService_Summary(t *testing.T) {
	d := setupRoundService(t)
	defer d.ctrl.Finish()

	r := openRound()
	r.Status = domain.RoundStatusFinalizing
	for _, p := range r.Players {
		p.Paid = true
	}
	now := time.Now()
	records := []domain.PayoutRecord{
		{ID: uuid.New(), RoundID: "round-1", Reason: domain.PayoutReasonEntryPot, Settled: true, SettledAt: &now},
		{ID: uuid.New(), RoundID: "round-1", Reason: domain.PayoutReasonEntryPot},
	}
	d.roundRepo.EXPECT().GetByID(gomock.Any(), "round-1").Return(r, nil)
	d.payoutRepo.EXPECT().ListByRound(gomock.Any(), "round-1").Return(records, nil)

	summary, err := d.svc.Summary(context.Background(), "round-1")
	require.NoError(t, err)
	assert.Equal(t, int64(2000), summary.PotTotals.EntryPotSats)
	assert.Equal(t, int64(500), summary.PotTotals.AcePotSats)
	assert.True(t, summary.IsProcessingPayments)
	assert.True(t, summary.AcePotRolledOver)
	assert.Len(t, summary.Standings, 2)
}

func TestRoundService_Summary_DBError(t *testing.T) {
	d := setupRoundService(t)
	defer d.ctrl.Finish()

	d.roundRepo.EXPECT().GetByID(gomock.Any(), "round-1").Return(nil, errors.New("conn refused"))

	_, err := d.svc.Summary(context.Background(), "round-1")
	assert.Equal(t, "SYS_001", appErrCode(t, err))
}
