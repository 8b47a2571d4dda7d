package dto

// CreateRoundRequest is the request body for creating a hosted round.
type CreateRoundRequest struct {
	Name          string      `json:"name" binding:"required,min=1,max=100"`
	CourseName    string      `json:"course_name" binding:"required,min=1,max=100"`
	HoleCount     int         `json:"hole_count" binding:"required,gt=0"`
	EntryFeeSats  int64       `json:"entry_fee_sats" binding:"gte=0"`
	AcePotFeeSats int64       `json:"ace_pot_fee_sats" binding:"gte=0"`
	Pars          map[int]int `json:"pars,omitempty"`
	HostName      string      `json:"host_name" binding:"required,min=1,max=50"`
}

// AddPlayerRequest is the request body for adding a player to a round.
type AddPlayerRequest struct {
	Identity  string `json:"identity" binding:"required"`
	Name      string `json:"name" binding:"required,min=1,max=50"`
	PaysEntry bool   `json:"pays_entry"`
	PaysAce   bool   `json:"pays_ace"`
}

// RecordScoreRequest is the request body for recording one hole result.
type RecordScoreRequest struct {
	Identity string `json:"identity" binding:"required"`
	Hole     int    `json:"hole" binding:"required,gt=0"`
	Strokes  int    `json:"strokes" binding:"required,gt=0"`
}

// FinalizeRequest carries the host's confirmed final scorecards.
type FinalizeRequest struct {
	FinalScores map[string]map[int]int `json:"final_scores" binding:"required"`
}

// PayRequest is the request body for paying the local player's obligation.
type PayRequest struct {
	Memo string `json:"memo,omitempty" binding:"max=200"`
}

// InvoiceRequest asks for a Lightning invoice covering a player's obligation.
type InvoiceRequest struct {
	Identity string `json:"identity" binding:"required"`
}

// TopupRequest is the request body for a wallet topup invoice.
type TopupRequest struct {
	AmountSats int64 `json:"amount_sats" binding:"required,gt=0"`
}

// BalanceResponse is the wallet balance response body.
type BalanceResponse struct {
	BalanceSats int64 `json:"balance_sats"`
}

// InvoiceResponse is the response body for a created invoice.
type InvoiceResponse struct {
	Invoice    string `json:"invoice"`
	GatewayURL string `json:"gateway_url"`
	AmountSats int64  `json:"amount_sats"`
}

// ObligationResponse reports what a player owes and whether it is covered.
type ObligationResponse struct {
	Identity       string `json:"identity"`
	ObligationSats int64  `json:"obligation_sats"`
	Paid           bool   `json:"paid"`
}
