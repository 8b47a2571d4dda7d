package handler

import (
	"context"
	"net/http"

	"onchain-discgolf/internal/adapter/http/dto"
	"onchain-discgolf/internal/core/domain"
	"onchain-discgolf/internal/core/ports"
	"onchain-discgolf/pkg/apperror"
	"onchain-discgolf/pkg/response"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

// WalletHandler handles wallet endpoints.
type WalletHandler struct {
	walletSvc  ports.WalletService
	invoiceSvc ports.InvoiceService
	log        zerolog.Logger
}

// NewWalletHandler creates a new WalletHandler.
func NewWalletHandler(walletSvc ports.WalletService, invoiceSvc ports.InvoiceService, log zerolog.Logger) *WalletHandler {
	return &WalletHandler{walletSvc: walletSvc, invoiceSvc: invoiceSvc, log: log}
}

// GetBalance handles GET /api/v1/wallet/balance.
func (h *WalletHandler) GetBalance(c *gin.Context) {
	balance, err := h.walletSvc.Balance(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, dto.BalanceResponse{BalanceSats: balance})
}

// Topup handles POST /api/v1/wallet/topup. The invoice is returned immediately;
// settlement is watched in the background and mints into the wallet when paid.
func (h *WalletHandler) Topup(c *gin.Context) {
	var req dto.TopupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperror.Validation(err.Error()))
		return
	}

	inv, err := h.invoiceSvc.RequestInvoice(c.Request.Context(), req.AmountSats)
	if err != nil {
		response.Error(c, err)
		return
	}

	go func() {
		settled, err := h.invoiceSvc.WatchSettlement(context.Background(), inv, func(domain.Token) {})
		if err != nil {
			h.log.Error().Err(err).Str("handle", inv.Handle).Msg("topup settlement watch failed")
			return
		}
		if !settled {
			h.log.Warn().Str("handle", inv.Handle).Msg("topup invoice expired unpaid")
		}
	}()

	response.Created(c, dto.InvoiceResponse{
		Invoice:    inv.InvoiceText,
		GatewayURL: inv.GatewayURL,
		AmountSats: inv.AmountSats,
	})
}

// HealthCheck reports the health of external dependencies.
func HealthCheck(checkers ...ports.HealthChecker) gin.HandlerFunc {
	return func(c *gin.Context) {
		type depStatus struct {
			Status string `json:"status"`
			Error  string `json:"error,omitempty"`
		}

		deps := make(map[string]depStatus)
		allHealthy := true

		for _, checker := range checkers {
			if err := checker.Ping(c.Request.Context()); err != nil {
				deps[checker.Name()] = depStatus{Status: "unhealthy", Error: err.Error()}
				allHealthy = false
			} else {
				deps[checker.Name()] = depStatus{Status: "healthy"}
			}
		}

		status := "healthy"
		httpCode := http.StatusOK
		if !allHealthy {
			status = "degraded"
			httpCode = http.StatusServiceUnavailable
		}

		c.JSON(httpCode, gin.H{
			"status":       status,
			"dependencies": deps,
		})
	}
}
