package handler

import (
	"context"

	"onchain-discgolf/internal/adapter/http/dto"
	"onchain-discgolf/internal/core/domain"
	"onchain-discgolf/internal/core/ports"
	"onchain-discgolf/pkg/apperror"
	"onchain-discgolf/pkg/response"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

// PaymentHandler handles the two ways a player covers their obligation:
// sending bearer tokens to the host over the relay, or settling an invoice
// the host generates for them in person.
type PaymentHandler struct {
	roundSvc      ports.RoundService
	transferSvc   ports.TransferService
	invoiceSvc    ports.InvoiceService
	localIdentity string
	log           zerolog.Logger
}

// NewPaymentHandler creates a new PaymentHandler.
func NewPaymentHandler(roundSvc ports.RoundService, transferSvc ports.TransferService, invoiceSvc ports.InvoiceService, localIdentity string, log zerolog.Logger) *PaymentHandler {
	return &PaymentHandler{
		roundSvc:      roundSvc,
		transferSvc:   transferSvc,
		invoiceSvc:    invoiceSvc,
		localIdentity: localIdentity,
		log:           log,
	}
}

// Pay handles POST /api/v1/rounds/:id/pay. The local player sends their full
// obligation to the round host as bearer tokens.
func (h *PaymentHandler) Pay(c *gin.Context) {
	var req dto.PayRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			response.Error(c, apperror.Validation(err.Error()))
			return
		}
	}

	roundID := c.Param("id")
	round, err := h.roundSvc.GetRound(c.Request.Context(), roundID)
	if err != nil {
		response.Error(c, err)
		return
	}
	if round.HostIdentity == h.localIdentity {
		response.Error(c, apperror.Validation("host collects payments, nothing to send"))
		return
	}

	paid, err := h.roundSvc.IsPaid(c.Request.Context(), roundID, h.localIdentity)
	if err != nil {
		response.Error(c, err)
		return
	}
	if paid {
		response.Error(c, apperror.Validation("obligation already covered"))
		return
	}

	owed, err := h.roundSvc.Obligation(c.Request.Context(), roundID, h.localIdentity)
	if err != nil {
		response.Error(c, err)
		return
	}
	if owed == 0 {
		response.Error(c, apperror.Validation("nothing owed for this round"))
		return
	}

	if err := h.transferSvc.SendPayment(c.Request.Context(), round.HostIdentity, roundID, req.Memo, owed); err != nil {
		response.Error(c, err)
		return
	}

	// Mirror the payment on the local replica so the UI flips immediately;
	// the host's ledger is updated when the envelope arrives.
	if err := h.roundSvc.ApplyPayment(c.Request.Context(), roundID, h.localIdentity, owed); err != nil {
		h.log.Error().Err(err).Str("round_id", roundID).Msg("local replica payment mark failed")
	}

	response.Accepted(c, gin.H{"amount_sats": owed})
}

// CreateEntryInvoice handles POST /api/v1/rounds/:id/invoice. The host
// generates a Lightning invoice covering one player's obligation; settlement
// is watched in the background and latches the player paid.
func (h *PaymentHandler) CreateEntryInvoice(c *gin.Context) {
	var req dto.InvoiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperror.Validation(err.Error()))
		return
	}

	roundID := c.Param("id")
	paid, err := h.roundSvc.IsPaid(c.Request.Context(), roundID, req.Identity)
	if err != nil {
		response.Error(c, err)
		return
	}
	if paid {
		response.Error(c, apperror.Validation("obligation already covered"))
		return
	}

	owed, err := h.roundSvc.Obligation(c.Request.Context(), roundID, req.Identity)
	if err != nil {
		response.Error(c, err)
		return
	}
	if owed == 0 {
		response.Error(c, apperror.Validation("nothing owed for this round"))
		return
	}

	inv, err := h.invoiceSvc.RequestInvoice(c.Request.Context(), owed)
	if err != nil {
		response.Error(c, err)
		return
	}

	identity := req.Identity
	go func() {
		settled, err := h.invoiceSvc.WatchSettlement(context.Background(), inv, func(domain.Token) {})
		if err != nil {
			h.log.Error().Err(err).Str("handle", inv.Handle).Msg("entry invoice watch failed")
			return
		}
		if !settled {
			h.log.Warn().Str("handle", inv.Handle).Str("identity", identity).Msg("entry invoice expired unpaid")
			return
		}
		if err := h.roundSvc.MarkInvoicePaid(context.Background(), roundID, identity); err != nil {
			h.log.Error().Err(err).Str("round_id", roundID).Str("identity", identity).Msg("failed to latch invoice payment")
		}
	}()

	response.Created(c, dto.InvoiceResponse{
		Invoice:    inv.InvoiceText,
		GatewayURL: inv.GatewayURL,
		AmountSats: inv.AmountSats,
	})
}
