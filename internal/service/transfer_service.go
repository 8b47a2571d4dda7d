package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"onchain-discgolf/internal/core/domain"
	"onchain-discgolf/internal/core/ports"
	"onchain-discgolf/pkg/apperror"

	"github.com/nbd-wtf/go-nostr"
	"github.com/rs/zerolog"
)

// Seen-event marks only need to outlive the relays' backfill window.
const dedupTTL = 14 * 24 * time.Hour

// Resubscribe backoff after a dropped relay stream.
const (
	subscribeRetryMin = time.Second
	subscribeRetryMax = 30 * time.Second
)

// TransferServiceImpl implements ports.TransferService: serializing token
// transfers into encrypted envelopes on the way out, and decoding, deduping,
// and applying envelopes addressed to the local identity on the way in.
type TransferServiceImpl struct {
	wallet ports.WalletService
	rounds ports.RoundService
	relay  ports.RelayTransport
	wrap   ports.GiftWrapService
	dedup  ports.EventDedupStore
	log    zerolog.Logger
}

// NewTransferService creates a new TransferServiceImpl.
func NewTransferService(
	wallet ports.WalletService,
	rounds ports.RoundService,
	relay ports.RelayTransport,
	wrap ports.GiftWrapService,
	dedup ports.EventDedupStore,
	log zerolog.Logger,
) *TransferServiceImpl {
	return &TransferServiceImpl{
		wallet: wallet,
		rounds: rounds,
		relay:  relay,
		wrap:   wrap,
		dedup:  dedup,
		log:    log,
	}
}

// SendPayment spends amountSats from the wallet, then publishes the tokens to
// the recipient. The spend happens first: once the envelope is published the
// tokens are gone from this wallet no matter what, so a crash between publish
// and any later bookkeeping can never resurrect them.
func (s *TransferServiceImpl) SendPayment(ctx context.Context, recipient, roundID, memo string, amountSats int64) error {
	tokens, err := s.wallet.Spend(ctx, amountSats)
	if err != nil {
		return err
	}
	return s.SendTokens(ctx, recipient, roundID, memo, tokens)
}

// SendTokens publishes already-spent tokens to the recipient. Publishing is
// fire-and-forget at the relay level: success means the envelope was
// accepted by a relay, not that the recipient has it.
func (s *TransferServiceImpl) SendTokens(ctx context.Context, recipient, roundID, memo string, tokens []domain.Token) error {
	payload := domain.TokenTransferPayload{
		Type:    domain.PayloadTypeTokenTransfer,
		RoundID: roundID,
		Memo:    memo,
		Tokens:  tokens,
	}
	plaintext, err := json.Marshal(payload)
	if err != nil {
		return apperror.InternalError(fmt.Errorf("marshal transfer payload: %w", err))
	}

	event, err := s.wrap.Wrap(recipient, plaintext)
	if err != nil {
		return apperror.ErrEncryptionFailure(fmt.Errorf("wrap transfer: %w", err))
	}

	if err := s.relay.Publish(ctx, event); err != nil {
		return apperror.ErrRelayUnreachable(fmt.Errorf("publish transfer: %w", err))
	}

	s.log.Info().
		Str("recipient", recipient).
		Str("round_id", roundID).
		Int64("amount_sats", domain.SumTokens(tokens)).
		Msg("token transfer published")

	return nil
}

// Run subscribes to gift-wrapped envelopes addressed to the local identity
// and applies them until ctx is canceled. Malformed, foreign, and duplicate
// events are dropped and logged, never fatal. A dropped relay stream is
// resubscribed with backoff; relay backfill replays anything missed, and
// dedup absorbs the replays.
func (s *TransferServiceImpl) Run(ctx context.Context) error {
	filter := nostr.Filter{
		Kinds: []int{KindGiftWrap},
		Tags:  nostr.TagMap{"p": []string{s.wrap.LocalIdentity()}},
	}

	backoff := subscribeRetryMin
	for {
		events, err := s.relay.Subscribe(ctx, filter)
		if err != nil {
			s.log.Warn().Err(err).Dur("backoff", backoff).Msg("relay subscribe failed, retrying")
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(backoff):
			}
			if backoff *= 2; backoff > subscribeRetryMax {
				backoff = subscribeRetryMax
			}
			continue
		}
		backoff = subscribeRetryMin

		if err := s.consume(ctx, events); err != nil {
			return err
		}
		s.log.Warn().Msg("relay event stream closed, resubscribing")
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(backoff):
		}
	}
}

// consume drains one subscription stream. Returns nil when the stream closes
// and ctx.Err() on cancellation.
func (s *TransferServiceImpl) consume(ctx context.Context, events <-chan nostr.Event) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case event, ok := <-events:
			if !ok {
				return nil
			}
			s.handleEvent(ctx, event)
		}
	}
}

func (s *TransferServiceImpl) handleEvent(ctx context.Context, event nostr.Event) {
	fresh, err := s.dedup.CheckAndSet(ctx, event.ID, dedupTTL)
	if err != nil {
		// Dedup store trouble is not a reason to drop a payment: downstream
		// application is idempotent anyway.
		s.log.Warn().Err(err).Str("event_id", event.ID).Msg("dedup store error, processing event")
	} else if !fresh {
		s.log.Debug().Str("event_id", event.ID).Msg("duplicate event dropped")
		return
	}

	sender, plaintext, err := s.wrap.Unwrap(event)
	if err != nil {
		s.log.Debug().Err(err).Str("event_id", event.ID).Msg("undecryptable envelope dropped")
		return
	}

	decoded, err := domain.DecodePayload(plaintext)
	if err != nil {
		s.log.Warn().Err(err).Str("sender", sender).Msg("malformed payload dropped")
		return
	}

	switch payload := decoded.(type) {
	case domain.TokenTransferPayload:
		s.applyTransfer(ctx, sender, payload)
	case domain.WalletBackupPayload:
		s.applyBackup(ctx, sender, payload)
	case domain.FeedbackPayload:
		s.log.Info().
			Str("sender", sender).
			Str("category", payload.Category).
			Str("message", payload.Message).
			Msg("feedback received")
	}
}

func (s *TransferServiceImpl) applyTransfer(ctx context.Context, sender string, payload domain.TokenTransferPayload) {
	var credited int64
	for _, token := range payload.Tokens {
		amount, err := s.wallet.RedeemIncoming(ctx, token)
		if err != nil {
			// A rejected token is the sender's problem; keep the rest.
			s.log.Warn().Err(err).Str("sender", sender).Msg("incoming token rejected")
			continue
		}
		credited += amount
	}
	if credited == 0 {
		return
	}

	s.log.Info().
		Str("sender", sender).
		Str("round_id", payload.RoundID).
		Str("memo", payload.Memo).
		Int64("amount_sats", credited).
		Msg("incoming transfer redeemed")

	if payload.RoundID == "" {
		return
	}
	if err := s.rounds.ApplyPayment(ctx, payload.RoundID, sender, credited); err != nil {
		// The referenced round may simply not be known locally yet.
		s.log.Warn().Err(err).Str("round_id", payload.RoundID).Msg("could not apply payment to round")
	}
}

func (s *TransferServiceImpl) applyBackup(ctx context.Context, sender string, payload domain.WalletBackupPayload) {
	if sender != s.wrap.LocalIdentity() {
		s.log.Warn().Str("sender", sender).Msg("wallet backup from foreign identity dropped")
		return
	}
	var restored int64
	for _, token := range payload.Tokens {
		amount, err := s.wallet.RedeemIncoming(ctx, token)
		if err != nil {
			// Already-redeemed tokens are expected in a stale backup.
			s.log.Debug().Err(err).Msg("backup token not redeemable")
			continue
		}
		restored += amount
	}
	s.log.Info().Int64("restored_sats", restored).Msg("wallet backup applied")
}
