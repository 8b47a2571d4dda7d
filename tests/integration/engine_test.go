package integration

import (
	"context"
	"testing"
	"time"

	"onchain-discgolf/internal/core/ports"
	"onchain-discgolf/internal/service"

	"github.com/nbd-wtf/go-nostr"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
)

// testEngine is one fully wired engine instance: its own wallet, rounds,
// payouts, and identity, sharing the mint and relay hub with its peers.
type testEngine struct {
	identity string

	wallet   ports.WalletService
	invoices ports.InvoiceService
	transfer ports.TransferService
	rounds   ports.RoundService
	payouts  ports.PayoutService

	tokenRepo  *inMemoryTokenRepo
	payoutRepo *inMemoryPayoutRepo
}

func newTestEngine(t *testing.T, hub *relayHub, mint *fakeMint, gateways ...ports.LightningGateway) *testEngine {
	t.Helper()

	wrapSvc, err := service.NewNostrGiftWrapService(nostr.GeneratePrivateKey())
	require.NoError(t, err)

	tokenRepo := newInMemoryTokenRepo()
	roundRepo := newInMemoryRoundRepo()
	payoutRepo := newInMemoryPayoutRepo()
	log := zerolog.Nop()

	walletSvc := service.NewWalletService(tokenRepo, mint, fakeTransactor{}, log)
	invoiceSvc := service.NewInvoiceService(gateways, walletSvc, 5*time.Millisecond, time.Second, log)
	roundSvc := service.NewRoundService(roundRepo, payoutRepo, log)
	transferSvc := service.NewTransferService(walletSvc, roundSvc, hub, wrapSvc, newInMemoryDedupStore(), log)
	payoutSvc := service.NewPayoutService(
		roundSvc, payoutRepo, walletSvc, transferSvc, fakeTransactor{},
		nil, wrapSvc.LocalIdentity(), 3, time.Millisecond, log,
	)

	runCtx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)
	go transferSvc.Run(runCtx) //nolint:errcheck

	// Give the subscription a moment to register with the hub.
	require.Eventually(t, func() bool {
		return hub.hasSubFor(wrapSvc.LocalIdentity())
	}, time.Second, time.Millisecond)

	return &testEngine{
		identity:   wrapSvc.LocalIdentity(),
		wallet:     walletSvc,
		invoices:   invoiceSvc,
		transfer:   transferSvc,
		rounds:     roundSvc,
		payouts:    payoutSvc,
		tokenRepo:  tokenRepo,
		payoutRepo: payoutRepo,
	}
}

// fund mints the given denominations straight into the engine's wallet.
func (e *testEngine) fund(t *testing.T, amounts ...int64) {
	t.Helper()
	for _, a := range amounts {
		_, err := e.wallet.Mint(context.Background(), a)
		require.NoError(t, err)
	}
}

func (e *testEngine) balance(t *testing.T) int64 {
	t.Helper()
	sum, err := e.wallet.Balance(context.Background())
	require.NoError(t, err)
	return sum
}
