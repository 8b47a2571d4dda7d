package service

import (
	"context"
	"fmt"
	"time"

	"onchain-discgolf/internal/core/domain"
	"onchain-discgolf/internal/core/ports"
	"onchain-discgolf/pkg/apperror"

	"github.com/rs/zerolog"
)

// InvoiceServiceImpl implements ports.InvoiceService over a ranked list of
// Lightning gateways. Gateway registration can partially fail, so the first
// reachable gateway in rank order wins.
type InvoiceServiceImpl struct {
	gateways     []ports.LightningGateway
	wallet       ports.WalletService
	pollInterval time.Duration
	pollTimeout  time.Duration
	log          zerolog.Logger
}

// NewInvoiceService creates a new InvoiceServiceImpl.
func NewInvoiceService(
	gateways []ports.LightningGateway,
	wallet ports.WalletService,
	pollInterval time.Duration,
	pollTimeout time.Duration,
	log zerolog.Logger,
) *InvoiceServiceImpl {
	return &InvoiceServiceImpl{
		gateways:     gateways,
		wallet:       wallet,
		pollInterval: pollInterval,
		pollTimeout:  pollTimeout,
		log:          log,
	}
}

// RequestInvoice asks each configured gateway in rank order for a payable
// invoice. AllGatewaysUnavailable is surfaced only when every gateway fails.
func (s *InvoiceServiceImpl) RequestInvoice(ctx context.Context, amountSats int64) (*ports.PendingInvoice, error) {
	if amountSats <= 0 {
		return nil, apperror.ErrInvalidAmount()
	}
	if len(s.gateways) == 0 {
		return nil, apperror.ErrAllGatewaysUnavailable()
	}

	for _, gw := range s.gateways {
		invoiceText, handle, err := gw.CreateInvoice(ctx, amountSats)
		if err != nil {
			s.log.Warn().Err(err).Str("gateway", gw.URL()).Msg("gateway failed to create invoice, trying next")
			continue
		}
		return &ports.PendingInvoice{
			InvoiceText: invoiceText,
			Handle:      handle,
			GatewayURL:  gw.URL(),
			AmountSats:  amountSats,
		}, nil
	}

	return nil, apperror.ErrAllGatewaysUnavailable()
}

// WatchSettlement polls the invoice's gateway until settlement, context
// cancellation, or the poll timeout. Nothing is minted until the gateway
// confirms payment, so abandoning the watch leaves no wallet state behind.
func (s *InvoiceServiceImpl) WatchSettlement(ctx context.Context, inv *ports.PendingInvoice, onSettled func(domain.Token)) (bool, error) {
	gw := s.gatewayFor(inv.GatewayURL)
	if gw == nil {
		return false, apperror.ErrGatewayUnavailable(fmt.Errorf("no configured gateway for %s", inv.GatewayURL))
	}

	ticker := time.NewTicker(s.pollInterval)
	defer ticker.Stop()
	deadline := time.NewTimer(s.pollTimeout)
	defer deadline.Stop()

	for {
		select {
		case <-ctx.Done():
			s.log.Debug().Str("handle", inv.Handle).Msg("invoice watch canceled")
			return false, nil
		case <-deadline.C:
			s.log.Warn().Str("handle", inv.Handle).Msg("invoice watch timed out")
			return false, nil
		case <-ticker.C:
			paid, err := gw.CheckPaid(ctx, inv.Handle)
			if err != nil {
				// Transient gateway trouble: keep polling until the timeout.
				s.log.Warn().Err(err).Str("gateway", inv.GatewayURL).Msg("settlement check failed")
				continue
			}
			if !paid {
				continue
			}

			token, err := s.wallet.Mint(ctx, inv.AmountSats)
			if err != nil {
				// The gateway already holds the sats; the paid flag is durable,
				// so keep the watch alive and mint again on the next tick.
				s.log.Warn().Err(err).Str("handle", inv.Handle).Msg("mint failed for settled invoice, retrying")
				continue
			}

			s.log.Info().
				Int64("amount_sats", inv.AmountSats).
				Str("gateway", inv.GatewayURL).
				Msg("invoice settled")

			if onSettled != nil {
				onSettled(token)
			}
			return true, nil
		}
	}
}

func (s *InvoiceServiceImpl) gatewayFor(url string) ports.LightningGateway {
	for _, gw := range s.gateways {
		if gw.URL() == url {
			return gw
		}
	}
	return nil
}
