package ports

import (
	"context"

	"onchain-discgolf/internal/core/domain"

	"github.com/nbd-wtf/go-nostr"
)

// --- External collaborator contracts ---

// MintClient talks to the e-cash mint that issues, verifies, and swaps
// bearer tokens.
type MintClient interface {
	// ID identifies the mint tokens are issued against.
	ID() string
	// Verify asks the mint whether a token is valid and unredeemed.
	Verify(ctx context.Context, token domain.Token) (bool, error)
	// Swap redeems the given tokens and issues fresh ones of the target
	// amounts. Used for exact change and for claiming received tokens.
	Swap(ctx context.Context, tokens []domain.Token, targetAmounts []int64) ([]domain.Token, error)
	// Issue mints a new token after a Lightning payment settled.
	Issue(ctx context.Context, amountSats int64) (domain.Token, error)
}

// LightningGateway produces payable invoices and reports their settlement.
type LightningGateway interface {
	URL() string
	CreateInvoice(ctx context.Context, amountSats int64) (invoiceText string, handle string, err error)
	CheckPaid(ctx context.Context, handle string) (bool, error)
}

// RelayTransport is the encrypted pub/sub substrate. Subscribe is restartable:
// reconnects rely on the relays' own backfill so events published while
// disconnected are not lost.
type RelayTransport interface {
	Publish(ctx context.Context, event nostr.Event) error
	Subscribe(ctx context.Context, filter nostr.Filter) (<-chan nostr.Event, error)
}

// GiftWrapService seals plaintext into an encrypted envelope addressed to a
// recipient identity and opens envelopes addressed to the local identity.
type GiftWrapService interface {
	// LocalIdentity returns the hex public key of the local signing key.
	LocalIdentity() string
	Wrap(recipientPubkey string, plaintext []byte) (nostr.Event, error)
	// Unwrap returns the sender identity and plaintext. Foreign and malformed
	// events yield an error; callers drop them.
	Unwrap(event nostr.Event) (sender string, plaintext []byte, err error)
}

// EncryptionService encrypts token secrets at rest.
type EncryptionService interface {
	Encrypt(plaintext string) (string, error)
	Decrypt(ciphertext string) (string, error)
}

// --- Service Ports (Business Logic) ---

// WalletService owns the local bearer-token wallet. All mutations are
// serialized with respect to each other.
type WalletService interface {
	Balance(ctx context.Context) (int64, error)
	// Mint records a freshly issued token after a Lightning settlement.
	Mint(ctx context.Context, amountSats int64) (domain.Token, error)
	// Spend removes tokens summing exactly to amountSats, swapping at the
	// mint for change when needed.
	Spend(ctx context.Context, amountSats int64) ([]domain.Token, error)
	// RedeemIncoming claims a token received from a peer and merges it into
	// the wallet. Returns the credited amount.
	RedeemIncoming(ctx context.Context, token domain.Token) (int64, error)
}

// PendingInvoice is an invoice awaiting settlement.
type PendingInvoice struct {
	InvoiceText string
	Handle      string
	GatewayURL  string
	AmountSats  int64
}

// InvoiceService requests Lightning invoices against a ranked gateway list
// and watches their settlement.
type InvoiceService interface {
	RequestInvoice(ctx context.Context, amountSats int64) (*PendingInvoice, error)
	// WatchSettlement polls until the invoice settles, the context is
	// canceled, or the poll timeout elapses. On settlement the amount is
	// minted into the wallet and onSettled is invoked. Returns whether the
	// invoice settled.
	WatchSettlement(ctx context.Context, inv *PendingInvoice, onSettled func(domain.Token)) (bool, error)
}

// TransferService is the encrypted peer-to-peer token channel.
type TransferService interface {
	// SendPayment spends amountSats from the wallet and publishes the tokens
	// to the recipient, referencing the round the payment is for.
	SendPayment(ctx context.Context, recipient string, roundID string, memo string, amountSats int64) error
	// SendTokens publishes already-spent tokens to the recipient. The caller
	// has removed them from the wallet; publishing is irreversible.
	SendTokens(ctx context.Context, recipient string, roundID string, memo string, tokens []domain.Token) error
	// Run subscribes to incoming envelopes addressed to the local identity
	// and applies them until ctx is canceled.
	Run(ctx context.Context) error
}

// CreateRoundParams holds validated input for creating a round.
type CreateRoundParams struct {
	Name          string
	CourseName    string
	HoleCount     int
	EntryFeeSats  int64
	AcePotFeeSats int64
	Pars          map[int]int
	HostIdentity  string
	HostName      string
}

// AddPlayerParams holds input for adding a player to a round.
type AddPlayerParams struct {
	RoundID   string
	Identity  string
	Name      string
	PaysEntry bool
	PaysAce   bool
}

// RoundService is the per-round state machine and the source of truth for
// "has everyone paid".
type RoundService interface {
	CreateRound(ctx context.Context, params CreateRoundParams) (*domain.Round, error)
	AddPlayer(ctx context.Context, params AddPlayerParams) (*domain.Round, error)
	GetRound(ctx context.Context, id string) (*domain.Round, error)
	RecordScore(ctx context.Context, roundID, identity string, hole, strokes int) error

	Obligation(ctx context.Context, roundID, identity string) (int64, error)
	IsPaid(ctx context.Context, roundID, identity string) (bool, error)
	PotTotals(ctx context.Context, roundID string) (domain.PotTotals, error)

	// ApplyPayment credits a confirmed payment toward a player's obligation.
	// Idempotent and monotonic; safe under event reordering and duplication.
	ApplyPayment(ctx context.Context, roundID, identity string, amountSats int64) error
	// MarkInvoicePaid latches a player paid after their invoice for the full
	// obligation settled.
	MarkInvoicePaid(ctx context.Context, roundID, identity string) error

	// Finalize moves Open -> Finalizing. Host only.
	Finalize(ctx context.Context, roundID, callerIdentity string, finalScores map[string]map[int]int) (*domain.Round, error)
	// RecordPayoutResult marks one disbursement settled; once all records are
	// settled the round moves Finalizing -> Settled.
	RecordPayoutResult(ctx context.Context, record domain.PayoutRecord) error
	// SettleRound moves a finalizing round that owes nobody straight to
	// Settled. No-op on any other status.
	SettleRound(ctx context.Context, roundID string) error

	PayoutStatus(ctx context.Context, roundID string) ([]domain.PayoutRecord, error)
	Summary(ctx context.Context, roundID string) (*domain.RoundSummary, error)
}

// PayoutService computes and disburses payouts exactly once per recipient.
type PayoutService interface {
	// Disburse creates payout records for a finalizing round (first call
	// only) and drives every unsettled record to settlement with bounded
	// retry. Re-invocation never re-pays a settled record.
	Disburse(ctx context.Context, roundID string) error
	// Resume re-drives unsettled records after a restart.
	Resume(ctx context.Context) error
}
