package handler

import (
	"context"
	"errors"
	"time"

	"onchain-discgolf/internal/adapter/http/dto"
	"onchain-discgolf/internal/core/domain"
	"onchain-discgolf/internal/core/ports"
	"onchain-discgolf/pkg/apperror"
	"onchain-discgolf/pkg/response"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

// disburseTimeout bounds the background settlement kicked off by Finalize.
// Resume picks up anything still unsettled after a restart.
const disburseTimeout = 5 * time.Minute

// RoundHandler handles round lifecycle endpoints.
type RoundHandler struct {
	roundSvc      ports.RoundService
	payoutSvc     ports.PayoutService
	localIdentity string
	log           zerolog.Logger
}

// NewRoundHandler creates a new RoundHandler.
func NewRoundHandler(roundSvc ports.RoundService, payoutSvc ports.PayoutService, localIdentity string, log zerolog.Logger) *RoundHandler {
	return &RoundHandler{
		roundSvc:      roundSvc,
		payoutSvc:     payoutSvc,
		localIdentity: localIdentity,
		log:           log,
	}
}

// CreateRound handles POST /api/v1/rounds.
func (h *RoundHandler) CreateRound(c *gin.Context) {
	var req dto.CreateRoundRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperror.Validation(err.Error()))
		return
	}

	round, err := h.roundSvc.CreateRound(c.Request.Context(), ports.CreateRoundParams{
		Name:          req.Name,
		CourseName:    req.CourseName,
		HoleCount:     req.HoleCount,
		EntryFeeSats:  req.EntryFeeSats,
		AcePotFeeSats: req.AcePotFeeSats,
		Pars:          req.Pars,
		HostIdentity:  h.localIdentity,
		HostName:      req.HostName,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, round)
}

// GetRound handles GET /api/v1/rounds/:id.
func (h *RoundHandler) GetRound(c *gin.Context) {
	round, err := h.roundSvc.GetRound(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, round)
}

// AddPlayer handles POST /api/v1/rounds/:id/players.
func (h *RoundHandler) AddPlayer(c *gin.Context) {
	var req dto.AddPlayerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperror.Validation(err.Error()))
		return
	}

	round, err := h.roundSvc.AddPlayer(c.Request.Context(), ports.AddPlayerParams{
		RoundID:   c.Param("id"),
		Identity:  req.Identity,
		Name:      req.Name,
		PaysEntry: req.PaysEntry,
		PaysAce:   req.PaysAce,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, round)
}

// RecordScore handles POST /api/v1/rounds/:id/scores.
func (h *RoundHandler) RecordScore(c *gin.Context) {
	var req dto.RecordScoreRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperror.Validation(err.Error()))
		return
	}

	if err := h.roundSvc.RecordScore(c.Request.Context(), c.Param("id"), req.Identity, req.Hole, req.Strokes); err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, gin.H{"recorded": true})
}

// Obligation handles GET /api/v1/rounds/:id/players/:identity/obligation.
func (h *RoundHandler) Obligation(c *gin.Context) {
	roundID := c.Param("id")
	identity := c.Param("identity")

	owed, err := h.roundSvc.Obligation(c.Request.Context(), roundID, identity)
	if err != nil {
		response.Error(c, err)
		return
	}
	paid, err := h.roundSvc.IsPaid(c.Request.Context(), roundID, identity)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, dto.ObligationResponse{
		Identity:       identity,
		ObligationSats: owed,
		Paid:           paid,
	})
}

// PotTotals handles GET /api/v1/rounds/:id/pots.
func (h *RoundHandler) PotTotals(c *gin.Context) {
	totals, err := h.roundSvc.PotTotals(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, totals)
}

// Finalize handles POST /api/v1/rounds/:id/finalize. Settlement runs in the
// background; clients poll the payout status endpoint for progress.
func (h *RoundHandler) Finalize(c *gin.Context) {
	var req dto.FinalizeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperror.Validation(err.Error()))
		return
	}

	roundID := c.Param("id")
	round, err := h.roundSvc.Finalize(c.Request.Context(), roundID, h.localIdentity, req.FinalScores)
	if err != nil {
		// Re-posting finalize on a round stuck in FINALIZING re-drives the
		// disbursement instead of failing, so a transient mint or relay
		// outage does not strand the round until the next restart.
		var appErr *apperror.AppError
		if errors.As(err, &appErr) && appErr.Code == apperror.ErrAlreadyFinalized().Code {
			if existing, getErr := h.roundSvc.GetRound(c.Request.Context(), roundID); getErr == nil &&
				existing.Status == domain.RoundStatusFinalizing &&
				existing.HostIdentity == h.localIdentity {
				h.disburseAsync(roundID)
				response.Accepted(c, existing)
				return
			}
		}
		response.Error(c, err)
		return
	}

	h.disburseAsync(roundID)
	response.Accepted(c, round)
}

func (h *RoundHandler) disburseAsync(roundID string) {
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), disburseTimeout)
		defer cancel()
		if err := h.payoutSvc.Disburse(ctx, roundID); err != nil {
			h.log.Error().Err(err).Str("round_id", roundID).Msg("background disbursement failed")
		}
	}()
}

// PayoutStatus handles GET /api/v1/rounds/:id/payouts.
func (h *RoundHandler) PayoutStatus(c *gin.Context) {
	records, err := h.roundSvc.PayoutStatus(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, records)
}

// Summary handles GET /api/v1/rounds/:id/summary.
func (h *RoundHandler) Summary(c *gin.Context) {
	summary, err := h.roundSvc.Summary(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, summary)
}
