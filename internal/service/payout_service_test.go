package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"onchain-discgolf/internal/core/domain"
	"onchain-discgolf/internal/core/ports/mocks"
	"onchain-discgolf/pkg/apperror"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

type payoutTestDeps struct {
	svc        *PayoutServiceImpl
	rounds     *mocks.MockRoundService
	payoutRepo *mocks.MockPayoutRepository
	wallet     *mocks.MockWalletService
	transfer   *mocks.MockTransferService
	transactor *mocks.MockDBTransactor
	ctrl       *gomock.Controller
}

func setupPayoutService(t *testing.T, maxAttempts int) *payoutTestDeps {
	ctrl := gomock.NewController(t)
	d := &payoutTestDeps{
		rounds:     mocks.NewMockRoundService(ctrl),
		payoutRepo: mocks.NewMockPayoutRepository(ctrl),
		wallet:     mocks.NewMockWalletService(ctrl),
		transfer:   mocks.NewMockTransferService(ctrl),
		transactor: mocks.NewMockDBTransactor(ctrl),
		ctrl:       ctrl,
	}
	d.svc = NewPayoutService(
		d.rounds, d.payoutRepo, d.wallet, d.transfer, d.transactor,
		domain.WinnerTakeAll, "host-pub", maxAttempts, time.Millisecond,
		zerolog.Nop(),
	)
	return d
}

// finalizingRound has all fees paid: 3000 in the entry pot, 1500 in the ace
// pot. Kim wins on strokes; Sam holed out on 1.
func finalizingRound() *domain.Round {
	return &domain.Round{
		ID:            "round-1",
		HoleCount:     3,
		EntryFeeSats:  1000,
		AcePotFeeSats: 500,
		HostIdentity:  "host-pub",
		Pars:          map[int]int{1: 3, 2: 3, 3: 4},
		Status:        domain.RoundStatusFinalizing,
		Players: []*domain.Player{
			{Identity: "host-pub", Name: "Host", PaysEntry: true, PaysAce: true, Paid: true, PaidSats: 1500, JoinOrder: 0,
				Scores: map[int]int{1: 3, 2: 3, 3: 4}},
			{Identity: "p2-pub", Name: "Kim", PaysEntry: true, PaysAce: true, Paid: true, PaidSats: 1500, JoinOrder: 1,
				Scores: map[int]int{1: 2, 2: 3, 3: 4}},
			{Identity: "p3-pub", Name: "Sam", PaysEntry: true, PaysAce: true, Paid: true, PaidSats: 1500, JoinOrder: 2,
				Scores: map[int]int{1: 1, 2: 4, 3: 5}},
		},
	}
}

// ==================== Disburse Tests ====================

func TestPayoutService_Disburse_CreatesAndSettles(t *testing.T) {
	d := setupPayoutService(t, 3)
	defer d.ctrl.Finish()

	round := finalizingRound()
	d.rounds.EXPECT().GetRound(gomock.Any(), "round-1").Return(round, nil)
	d.payoutRepo.EXPECT().ListByRound(gomock.Any(), "round-1").Return(nil, nil)

	var created []domain.PayoutRecord
	d.transactor.EXPECT().Begin(gomock.Any()).Return(&mockTx{}, nil)
	d.payoutRepo.EXPECT().CreateBatch(gomock.Any(), gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, _ any, records []domain.PayoutRecord) error {
			created = records
			return nil
		})

	// Kim takes the 3000 entry pot, Sam the 1500 ace pot.
	d.wallet.EXPECT().Spend(gomock.Any(), int64(3000)).Return([]domain.Token{tok(3000, "entry")}, nil)
	d.transfer.EXPECT().SendTokens(gomock.Any(), "p2-pub", "round-1", gomock.Any(), gomock.Any()).Return(nil)
	d.wallet.EXPECT().Spend(gomock.Any(), int64(1500)).Return([]domain.Token{tok(1500, "ace")}, nil)
	d.transfer.EXPECT().SendTokens(gomock.Any(), "p3-pub", "round-1", gomock.Any(), gomock.Any()).Return(nil)
	d.rounds.EXPECT().RecordPayoutResult(gomock.Any(), gomock.Any()).Return(nil).Times(2)

	require.NoError(t, d.svc.Disburse(context.Background(), "round-1"))

	require.Len(t, created, 2)
	assert.Equal(t, "p2-pub", created[0].RecipientIdentity)
	assert.Equal(t, int64(3000), created[0].AmountSats)
	assert.Equal(t, domain.PayoutReasonEntryPot, created[0].Reason)
	assert.Equal(t, "p3-pub", created[1].RecipientIdentity)
	assert.Equal(t, int64(1500), created[1].AmountSats)
	assert.Equal(t, domain.PayoutReasonAcePot, created[1].Reason)
}

func TestPayoutService_Disburse_SkipsSettledRecords(t *testing.T) {
	d := setupPayoutService(t, 3)
	defer d.ctrl.Finish()

	round := finalizingRound()
	existing := []domain.PayoutRecord{
		{ID: uuid.New(), RoundID: "round-1", RecipientIdentity: "p2-pub", AmountSats: 3000, Reason: domain.PayoutReasonEntryPot, Settled: true},
		{ID: uuid.New(), RoundID: "round-1", RecipientIdentity: "p3-pub", AmountSats: 1500, Reason: domain.PayoutReasonAcePot},
	}
	d.rounds.EXPECT().GetRound(gomock.Any(), "round-1").Return(round, nil)
	d.payoutRepo.EXPECT().ListByRound(gomock.Any(), "round-1").Return(existing, nil)

	// Only the unsettled ace payout moves; the settled entry payout must not
	// be paid again.
	d.wallet.EXPECT().Spend(gomock.Any(), int64(1500)).Return([]domain.Token{tok(1500, "ace")}, nil)
	d.transfer.EXPECT().SendTokens(gomock.Any(), "p3-pub", "round-1", gomock.Any(), gomock.Any()).Return(nil)
	d.rounds.EXPECT().RecordPayoutResult(gomock.Any(), gomock.Any()).Return(nil)

	require.NoError(t, d.svc.Disburse(context.Background(), "round-1"))
}

func TestPayoutService_Disburse_SelfPayoutWithoutTransfer(t *testing.T) {
	d := setupPayoutService(t, 3)
	defer d.ctrl.Finish()

	// Host wins: nothing crosses the network for the host's own share.
	round := finalizingRound()
	round.Players[0].Scores = map[int]int{1: 2, 2: 2, 3: 3}
	round.Players[2].Scores = map[int]int{1: 3, 2: 4, 3: 5} // no ace

	d.rounds.EXPECT().GetRound(gomock.Any(), "round-1").Return(round, nil)
	d.payoutRepo.EXPECT().ListByRound(gomock.Any(), "round-1").Return(nil, nil)
	d.transactor.EXPECT().Begin(gomock.Any()).Return(&mockTx{}, nil)
	d.payoutRepo.EXPECT().CreateBatch(gomock.Any(), gomock.Any(), gomock.Len(1)).Return(nil)
	d.rounds.EXPECT().RecordPayoutResult(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, rec domain.PayoutRecord) error {
			assert.Equal(t, "host-pub", rec.RecipientIdentity)
			assert.True(t, rec.Settled)
			return nil
		})

	require.NoError(t, d.svc.Disburse(context.Background(), "round-1"))
}

func TestPayoutService_Disburse_RetriesPublish(t *testing.T) {
	d := setupPayoutService(t, 3)
	defer d.ctrl.Finish()

	rec := domain.PayoutRecord{ID: uuid.New(), RoundID: "round-1", RecipientIdentity: "p2-pub", AmountSats: 3000, Reason: domain.PayoutReasonEntryPot}
	d.rounds.EXPECT().GetRound(gomock.Any(), "round-1").Return(finalizingRound(), nil)
	d.payoutRepo.EXPECT().ListByRound(gomock.Any(), "round-1").Return([]domain.PayoutRecord{rec}, nil)

	d.wallet.EXPECT().Spend(gomock.Any(), int64(3000)).Return([]domain.Token{tok(3000, "entry")}, nil)
	gomock.InOrder(
		d.transfer.EXPECT().SendTokens(gomock.Any(), "p2-pub", "round-1", gomock.Any(), gomock.Any()).Return(errors.New("relay down")),
		d.transfer.EXPECT().SendTokens(gomock.Any(), "p2-pub", "round-1", gomock.Any(), gomock.Any()).Return(nil),
	)
	d.payoutRepo.EXPECT().RecordAttempt(gomock.Any(), rec.ID, 1, gomock.Any()).Return(nil)
	d.rounds.EXPECT().RecordPayoutResult(gomock.Any(), gomock.Any()).Return(nil)

	require.NoError(t, d.svc.Disburse(context.Background(), "round-1"))
}

func TestPayoutService_Disburse_ExhaustedRetriesRefundsWallet(t *testing.T) {
	d := setupPayoutService(t, 2)
	defer d.ctrl.Finish()

	rec := domain.PayoutRecord{ID: uuid.New(), RoundID: "round-1", RecipientIdentity: "p2-pub", AmountSats: 3000, Reason: domain.PayoutReasonEntryPot}
	d.rounds.EXPECT().GetRound(gomock.Any(), "round-1").Return(finalizingRound(), nil)
	d.payoutRepo.EXPECT().ListByRound(gomock.Any(), "round-1").Return([]domain.PayoutRecord{rec}, nil)

	spent := tok(3000, "entry")
	d.wallet.EXPECT().Spend(gomock.Any(), int64(3000)).Return([]domain.Token{spent}, nil)
	d.transfer.EXPECT().SendTokens(gomock.Any(), "p2-pub", "round-1", gomock.Any(), gomock.Any()).
		Return(errors.New("relay down")).Times(2)
	d.payoutRepo.EXPECT().RecordAttempt(gomock.Any(), rec.ID, gomock.Any(), gomock.Any()).Return(nil).Times(2)
	// Undelivered tokens go back into the wallet for the next attempt.
	d.wallet.EXPECT().RedeemIncoming(gomock.Any(), spent).Return(int64(3000), nil)

	err := d.svc.Disburse(context.Background(), "round-1")
	assert.Equal(t, "PAY_001", appErrCode(t, err))
}

func TestPayoutService_Disburse_NothingOwedSettlesRound(t *testing.T) {
	d := setupPayoutService(t, 3)
	defer d.ctrl.Finish()

	// A free round: no fees, no pots, no payout records. It still has to
	// leave FINALIZING.
	round := finalizingRound()
	round.EntryFeeSats = 0
	round.AcePotFeeSats = 0
	for _, p := range round.Players {
		p.PaidSats = 0
	}

	d.rounds.EXPECT().GetRound(gomock.Any(), "round-1").Return(round, nil)
	d.payoutRepo.EXPECT().ListByRound(gomock.Any(), "round-1").Return(nil, nil)
	// No Begin/CreateBatch expectations: an empty record set writes nothing.
	d.rounds.EXPECT().SettleRound(gomock.Any(), "round-1").Return(nil)

	require.NoError(t, d.svc.Disburse(context.Background(), "round-1"))
}

func TestPayoutService_Disburse_RetriesSpend(t *testing.T) {
	d := setupPayoutService(t, 3)
	defer d.ctrl.Finish()

	rec := domain.PayoutRecord{ID: uuid.New(), RoundID: "round-1", RecipientIdentity: "p2-pub", AmountSats: 3000, Reason: domain.PayoutReasonEntryPot}
	d.rounds.EXPECT().GetRound(gomock.Any(), "round-1").Return(finalizingRound(), nil)
	d.payoutRepo.EXPECT().ListByRound(gomock.Any(), "round-1").Return([]domain.PayoutRecord{rec}, nil)

	// A mint hiccup on the change swap is retried like any other transient
	// failure instead of abandoning the disbursement.
	gomock.InOrder(
		d.wallet.EXPECT().Spend(gomock.Any(), int64(3000)).
			Return(nil, apperror.ErrMintUnreachable(errors.New("timeout"))),
		d.wallet.EXPECT().Spend(gomock.Any(), int64(3000)).
			Return([]domain.Token{tok(3000, "entry")}, nil),
	)
	d.transfer.EXPECT().SendTokens(gomock.Any(), "p2-pub", "round-1", gomock.Any(), gomock.Any()).Return(nil)
	d.payoutRepo.EXPECT().RecordAttempt(gomock.Any(), rec.ID, 1, gomock.Any()).Return(nil)
	d.rounds.EXPECT().RecordPayoutResult(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, settled domain.PayoutRecord) error {
			assert.True(t, settled.Settled)
			assert.Equal(t, 2, settled.Attempts)
			return nil
		})

	require.NoError(t, d.svc.Disburse(context.Background(), "round-1"))
}

func TestPayoutService_Disburse_SpendFailsEveryAttempt(t *testing.T) {
	d := setupPayoutService(t, 2)
	defer d.ctrl.Finish()

	rec := domain.PayoutRecord{ID: uuid.New(), RoundID: "round-1", RecipientIdentity: "p2-pub", AmountSats: 3000, Reason: domain.PayoutReasonEntryPot}
	d.rounds.EXPECT().GetRound(gomock.Any(), "round-1").Return(finalizingRound(), nil)
	d.payoutRepo.EXPECT().ListByRound(gomock.Any(), "round-1").Return([]domain.PayoutRecord{rec}, nil)

	d.wallet.EXPECT().Spend(gomock.Any(), int64(3000)).
		Return(nil, apperror.ErrMintUnreachable(errors.New("timeout"))).Times(2)
	d.payoutRepo.EXPECT().RecordAttempt(gomock.Any(), rec.ID, gomock.Any(), gomock.Any()).Return(nil).Times(2)
	// Nothing was debited, so there is nothing to refund and no SendTokens.

	err := d.svc.Disburse(context.Background(), "round-1")
	assert.Equal(t, "PAY_001", appErrCode(t, err))
}

func TestPayoutService_Disburse_PolicyExceedsPot(t *testing.T) {
	d := setupPayoutService(t, 3)
	defer d.ctrl.Finish()

	d.svc.entryPolicy = func(standings []domain.Standing, potSats int64) []domain.Share {
		return []domain.Share{{Identity: standings[0].Identity, AmountSats: potSats + 1}}
	}
	d.rounds.EXPECT().GetRound(gomock.Any(), "round-1").Return(finalizingRound(), nil)
	d.payoutRepo.EXPECT().ListByRound(gomock.Any(), "round-1").Return(nil, nil)

	err := d.svc.Disburse(context.Background(), "round-1")
	assert.Equal(t, "PAY_002", appErrCode(t, err))
}

func TestPayoutService_Disburse_SettledRoundIsNoop(t *testing.T) {
	d := setupPayoutService(t, 3)
	defer d.ctrl.Finish()

	round := finalizingRound()
	round.Status = domain.RoundStatusSettled
	d.rounds.EXPECT().GetRound(gomock.Any(), "round-1").Return(round, nil)

	require.NoError(t, d.svc.Disburse(context.Background(), "round-1"))
}

func TestPayoutService_Disburse_OpenRoundRejected(t *testing.T) {
	d := setupPayoutService(t, 3)
	defer d.ctrl.Finish()

	round := finalizingRound()
	round.Status = domain.RoundStatusOpen
	d.rounds.EXPECT().GetRound(gomock.Any(), "round-1").Return(round, nil)

	err := d.svc.Disburse(context.Background(), "round-1")
	assert.Error(t, err)
}

// ==================== Resume Tests ====================

func TestPayoutService_Resume_DrivesUnsettledRounds(t *testing.T) {
	d := setupPayoutService(t, 3)
	defer d.ctrl.Finish()

	rec := domain.PayoutRecord{ID: uuid.New(), RoundID: "round-1", RecipientIdentity: "p2-pub", AmountSats: 3000, Reason: domain.PayoutReasonEntryPot}
	d.payoutRepo.EXPECT().ListUnsettled(gomock.Any()).Return([]domain.PayoutRecord{rec}, nil)

	d.rounds.EXPECT().GetRound(gomock.Any(), "round-1").Return(finalizingRound(), nil)
	d.payoutRepo.EXPECT().ListByRound(gomock.Any(), "round-1").Return([]domain.PayoutRecord{rec}, nil)
	d.wallet.EXPECT().Spend(gomock.Any(), int64(3000)).Return([]domain.Token{tok(3000, "entry")}, nil)
	d.transfer.EXPECT().SendTokens(gomock.Any(), "p2-pub", "round-1", gomock.Any(), gomock.Any()).Return(nil)
	d.rounds.EXPECT().RecordPayoutResult(gomock.Any(), gomock.Any()).Return(nil)

	require.NoError(t, d.svc.Resume(context.Background()))
}

func TestPayoutService_Resume_NothingPending(t *testing.T) {
	d := setupPayoutService(t, 3)
	defer d.ctrl.Finish()

	d.payoutRepo.EXPECT().ListUnsettled(gomock.Any()).Return(nil, nil)

	require.NoError(t, d.svc.Resume(context.Background()))
}
