package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"onchain-discgolf/internal/adapter/http/dto"
	"onchain-discgolf/internal/core/domain"
	"onchain-discgolf/internal/core/ports"
	"onchain-discgolf/internal/core/ports/mocks"
	"onchain-discgolf/pkg/apperror"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func init() {
	gin.SetMode(gin.TestMode)
}

const testLocalIdentity = "host-pub"

func postJSON(t *testing.T, body any, params ...gin.Param) (*httptest.ResponseRecorder, *gin.Context) {
	t.Helper()
	raw, err := json.Marshal(body)
	require.NoError(t, err)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodPost, "/", bytes.NewReader(raw))
	c.Request.Header.Set("Content-Type", "application/json")
	c.Params = params
	return w, c
}

func getRequest(t *testing.T, params ...gin.Param) (*httptest.ResponseRecorder, *gin.Context) {
	t.Helper()
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)
	c.Params = params
	return w, c
}

// --- Round Handler Tests ---

func TestCreateRound_Success(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRounds := mocks.NewMockRoundService(ctrl)
	h := NewRoundHandler(mockRounds, nil, testLocalIdentity, zerolog.Nop())

	mockRounds.EXPECT().CreateRound(gomock.Any(), ports.CreateRoundParams{
		Name:          "Saturday Dubs",
		CourseName:    "Maple Hill",
		HoleCount:     18,
		EntryFeeSats:  1000,
		AcePotFeeSats: 500,
		HostIdentity:  testLocalIdentity,
		HostName:      "Alex",
	}).Return(&domain.Round{ID: "round-1", Name: "Saturday Dubs", Status: domain.RoundStatusOpen}, nil)

	w, c := postJSON(t, dto.CreateRoundRequest{
		Name:          "Saturday Dubs",
		CourseName:    "Maple Hill",
		HoleCount:     18,
		EntryFeeSats:  1000,
		AcePotFeeSats: 500,
		HostName:      "Alex",
	})

	h.CreateRound(c)

	assert.Equal(t, http.StatusCreated, w.Code)
	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	data := resp["data"].(map[string]interface{})
	assert.Equal(t, "round-1", data["id"])
}

func TestCreateRound_ValidationError(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	h := NewRoundHandler(mocks.NewMockRoundService(ctrl), nil, testLocalIdentity, zerolog.Nop())

	// Missing hole_count => binding error, service never called.
	w, c := postJSON(t, map[string]any{"name": "x", "course_name": "y", "host_name": "z"})

	h.CreateRound(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "WAL_004", resp["error_code"])
}

func TestGetRound_NotFound(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRounds := mocks.NewMockRoundService(ctrl)
	h := NewRoundHandler(mockRounds, nil, testLocalIdentity, zerolog.Nop())

	mockRounds.EXPECT().GetRound(gomock.Any(), "missing").Return(nil, apperror.ErrNotFound("Round"))

	w, c := getRequest(t, gin.Param{Key: "id", Value: "missing"})

	h.GetRound(c)

	assert.Equal(t, http.StatusNotFound, w.Code)
	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "RND_003", resp["error_code"])
}

func TestAddPlayer_Success(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRounds := mocks.NewMockRoundService(ctrl)
	h := NewRoundHandler(mockRounds, nil, testLocalIdentity, zerolog.Nop())

	mockRounds.EXPECT().AddPlayer(gomock.Any(), ports.AddPlayerParams{
		RoundID:   "round-1",
		Identity:  "p2-pub",
		Name:      "Kim",
		PaysEntry: true,
	}).Return(&domain.Round{ID: "round-1"}, nil)

	w, c := postJSON(t, dto.AddPlayerRequest{
		Identity:  "p2-pub",
		Name:      "Kim",
		PaysEntry: true,
	}, gin.Param{Key: "id", Value: "round-1"})

	h.AddPlayer(c)

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestRecordScore_PlayerNotInRound(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRounds := mocks.NewMockRoundService(ctrl)
	h := NewRoundHandler(mockRounds, nil, testLocalIdentity, zerolog.Nop())

	mockRounds.EXPECT().
		RecordScore(gomock.Any(), "round-1", "stranger", 3, 4).
		Return(apperror.ErrPlayerNotInRound())

	w, c := postJSON(t, dto.RecordScoreRequest{
		Identity: "stranger",
		Hole:     3,
		Strokes:  4,
	}, gin.Param{Key: "id", Value: "round-1"})

	h.RecordScore(c)

	assert.Equal(t, http.StatusNotFound, w.Code)
	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "RND_004", resp["error_code"])
}

func TestObligation_Success(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRounds := mocks.NewMockRoundService(ctrl)
	h := NewRoundHandler(mockRounds, nil, testLocalIdentity, zerolog.Nop())

	mockRounds.EXPECT().Obligation(gomock.Any(), "round-1", "p2-pub").Return(int64(1500), nil)
	mockRounds.EXPECT().IsPaid(gomock.Any(), "round-1", "p2-pub").Return(false, nil)

	w, c := getRequest(t,
		gin.Param{Key: "id", Value: "round-1"},
		gin.Param{Key: "identity", Value: "p2-pub"},
	)

	h.Obligation(c)

	assert.Equal(t, http.StatusOK, w.Code)
	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	data := resp["data"].(map[string]interface{})
	assert.Equal(t, float64(1500), data["obligation_sats"])
	assert.Equal(t, false, data["paid"])
}

func TestFinalize_KicksOffDisbursement(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRounds := mocks.NewMockRoundService(ctrl)
	mockPayouts := mocks.NewMockPayoutService(ctrl)
	h := NewRoundHandler(mockRounds, mockPayouts, testLocalIdentity, zerolog.Nop())

	scores := map[string]map[int]int{"p2-pub": {1: 3, 2: 4}}
	mockRounds.EXPECT().
		Finalize(gomock.Any(), "round-1", testLocalIdentity, scores).
		Return(&domain.Round{ID: "round-1", Status: domain.RoundStatusFinalizing}, nil)

	disbursed := make(chan struct{})
	mockPayouts.EXPECT().Disburse(gomock.Any(), "round-1").DoAndReturn(func(context.Context, string) error {
		close(disbursed)
		return nil
	})

	w, c := postJSON(t, dto.FinalizeRequest{FinalScores: scores}, gin.Param{Key: "id", Value: "round-1"})

	h.Finalize(c)

	assert.Equal(t, http.StatusAccepted, w.Code)
	select {
	case <-disbursed:
	case <-time.After(time.Second):
		t.Fatal("background disbursement never ran")
	}
}

func TestFinalize_NotHost(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRounds := mocks.NewMockRoundService(ctrl)
	h := NewRoundHandler(mockRounds, mocks.NewMockPayoutService(ctrl), "guest-pub", zerolog.Nop())

	mockRounds.EXPECT().
		Finalize(gomock.Any(), "round-1", "guest-pub", gomock.Any()).
		Return(nil, apperror.ErrNotHost())

	w, c := postJSON(t, dto.FinalizeRequest{FinalScores: map[string]map[int]int{}}, gin.Param{Key: "id", Value: "round-1"})

	h.Finalize(c)

	assert.Equal(t, http.StatusForbidden, w.Code)
	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "RND_001", resp["error_code"])
}

func TestFinalize_RedrivesStuckSettlement(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRounds := mocks.NewMockRoundService(ctrl)
	mockPayouts := mocks.NewMockPayoutService(ctrl)
	h := NewRoundHandler(mockRounds, mockPayouts, testLocalIdentity, zerolog.Nop())

	// The round sat in FINALIZING after a failed disbursement; posting
	// finalize again kicks the settlement instead of returning a conflict.
	mockRounds.EXPECT().
		Finalize(gomock.Any(), "round-1", testLocalIdentity, gomock.Any()).
		Return(nil, apperror.ErrAlreadyFinalized())
	mockRounds.EXPECT().GetRound(gomock.Any(), "round-1").
		Return(&domain.Round{ID: "round-1", Status: domain.RoundStatusFinalizing, HostIdentity: testLocalIdentity}, nil)

	disbursed := make(chan struct{})
	mockPayouts.EXPECT().Disburse(gomock.Any(), "round-1").DoAndReturn(func(context.Context, string) error {
		close(disbursed)
		return nil
	})

	w, c := postJSON(t, dto.FinalizeRequest{FinalScores: map[string]map[int]int{}}, gin.Param{Key: "id", Value: "round-1"})

	h.Finalize(c)

	assert.Equal(t, http.StatusAccepted, w.Code)
	select {
	case <-disbursed:
	case <-time.After(time.Second):
		t.Fatal("re-drive never ran the disbursement")
	}
}

func TestFinalize_SettledRoundStaysConflict(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRounds := mocks.NewMockRoundService(ctrl)
	h := NewRoundHandler(mockRounds, mocks.NewMockPayoutService(ctrl), testLocalIdentity, zerolog.Nop())

	mockRounds.EXPECT().
		Finalize(gomock.Any(), "round-1", testLocalIdentity, gomock.Any()).
		Return(nil, apperror.ErrAlreadyFinalized())
	mockRounds.EXPECT().GetRound(gomock.Any(), "round-1").
		Return(&domain.Round{ID: "round-1", Status: domain.RoundStatusSettled, HostIdentity: testLocalIdentity}, nil)

	w, c := postJSON(t, dto.FinalizeRequest{FinalScores: map[string]map[int]int{}}, gin.Param{Key: "id", Value: "round-1"})

	h.Finalize(c)

	assert.Equal(t, http.StatusConflict, w.Code)
	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "RND_002", resp["error_code"])
}

// --- Payment Handler Tests ---

func TestPay_SendsObligationToHost(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRounds := mocks.NewMockRoundService(ctrl)
	mockTransfer := mocks.NewMockTransferService(ctrl)
	h := NewPaymentHandler(mockRounds, mockTransfer, nil, "p2-pub", zerolog.Nop())

	mockRounds.EXPECT().GetRound(gomock.Any(), "round-1").
		Return(&domain.Round{ID: "round-1", HostIdentity: testLocalIdentity}, nil)
	mockRounds.EXPECT().IsPaid(gomock.Any(), "round-1", "p2-pub").Return(false, nil)
	mockRounds.EXPECT().Obligation(gomock.Any(), "round-1", "p2-pub").Return(int64(1500), nil)
	mockTransfer.EXPECT().
		SendPayment(gomock.Any(), testLocalIdentity, "round-1", "entry + ace", int64(1500)).
		Return(nil)
	mockRounds.EXPECT().ApplyPayment(gomock.Any(), "round-1", "p2-pub", int64(1500)).Return(nil)

	w, c := postJSON(t, dto.PayRequest{Memo: "entry + ace"}, gin.Param{Key: "id", Value: "round-1"})

	h.Pay(c)

	assert.Equal(t, http.StatusAccepted, w.Code)
}

func TestPay_HostHasNothingToSend(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRounds := mocks.NewMockRoundService(ctrl)
	h := NewPaymentHandler(mockRounds, mocks.NewMockTransferService(ctrl), nil, testLocalIdentity, zerolog.Nop())

	mockRounds.EXPECT().GetRound(gomock.Any(), "round-1").
		Return(&domain.Round{ID: "round-1", HostIdentity: testLocalIdentity}, nil)

	w, c := postJSON(t, dto.PayRequest{}, gin.Param{Key: "id", Value: "round-1"})

	h.Pay(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestPay_AlreadyPaid(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRounds := mocks.NewMockRoundService(ctrl)
	h := NewPaymentHandler(mockRounds, mocks.NewMockTransferService(ctrl), nil, "p2-pub", zerolog.Nop())

	mockRounds.EXPECT().GetRound(gomock.Any(), "round-1").
		Return(&domain.Round{ID: "round-1", HostIdentity: testLocalIdentity}, nil)
	mockRounds.EXPECT().IsPaid(gomock.Any(), "round-1", "p2-pub").Return(true, nil)

	w, c := postJSON(t, dto.PayRequest{}, gin.Param{Key: "id", Value: "round-1"})

	h.Pay(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestPay_InsufficientBalance(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRounds := mocks.NewMockRoundService(ctrl)
	mockTransfer := mocks.NewMockTransferService(ctrl)
	h := NewPaymentHandler(mockRounds, mockTransfer, nil, "p2-pub", zerolog.Nop())

	mockRounds.EXPECT().GetRound(gomock.Any(), "round-1").
		Return(&domain.Round{ID: "round-1", HostIdentity: testLocalIdentity}, nil)
	mockRounds.EXPECT().IsPaid(gomock.Any(), "round-1", "p2-pub").Return(false, nil)
	mockRounds.EXPECT().Obligation(gomock.Any(), "round-1", "p2-pub").Return(int64(1500), nil)
	mockTransfer.EXPECT().
		SendPayment(gomock.Any(), testLocalIdentity, "round-1", "", int64(1500)).
		Return(apperror.ErrInsufficientBalance())

	w, c := postJSON(t, dto.PayRequest{}, gin.Param{Key: "id", Value: "round-1"})

	h.Pay(c)

	assert.Equal(t, http.StatusPaymentRequired, w.Code)
	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "WAL_001", resp["error_code"])
}

func TestCreateEntryInvoice_LatchesOnSettlement(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRounds := mocks.NewMockRoundService(ctrl)
	mockInvoice := mocks.NewMockInvoiceService(ctrl)
	h := NewPaymentHandler(mockRounds, nil, mockInvoice, testLocalIdentity, zerolog.Nop())

	pending := &ports.PendingInvoice{
		InvoiceText: "lnbc15u1p...",
		Handle:      "inv-42",
		GatewayURL:  "https://ln.example.com",
		AmountSats:  1500,
	}
	mockRounds.EXPECT().IsPaid(gomock.Any(), "round-1", "p2-pub").Return(false, nil)
	mockRounds.EXPECT().Obligation(gomock.Any(), "round-1", "p2-pub").Return(int64(1500), nil)
	mockInvoice.EXPECT().RequestInvoice(gomock.Any(), int64(1500)).Return(pending, nil)
	mockInvoice.EXPECT().WatchSettlement(gomock.Any(), pending, gomock.Any()).Return(true, nil)

	latched := make(chan struct{})
	mockRounds.EXPECT().
		MarkInvoicePaid(gomock.Any(), "round-1", "p2-pub").
		DoAndReturn(func(context.Context, string, string) error {
			close(latched)
			return nil
		})

	w, c := postJSON(t, dto.InvoiceRequest{Identity: "p2-pub"}, gin.Param{Key: "id", Value: "round-1"})

	h.CreateEntryInvoice(c)

	assert.Equal(t, http.StatusCreated, w.Code)
	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	data := resp["data"].(map[string]interface{})
	assert.Equal(t, "lnbc15u1p...", data["invoice"])

	select {
	case <-latched:
	case <-time.After(time.Second):
		t.Fatal("settlement never latched the player paid")
	}
}

func TestCreateEntryInvoice_AllGatewaysDown(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRounds := mocks.NewMockRoundService(ctrl)
	mockInvoice := mocks.NewMockInvoiceService(ctrl)
	h := NewPaymentHandler(mockRounds, nil, mockInvoice, testLocalIdentity, zerolog.Nop())

	mockRounds.EXPECT().IsPaid(gomock.Any(), "round-1", "p2-pub").Return(false, nil)
	mockRounds.EXPECT().Obligation(gomock.Any(), "round-1", "p2-pub").Return(int64(1500), nil)
	mockInvoice.EXPECT().RequestInvoice(gomock.Any(), int64(1500)).
		Return(nil, apperror.ErrAllGatewaysUnavailable())

	w, c := postJSON(t, dto.InvoiceRequest{Identity: "p2-pub"}, gin.Param{Key: "id", Value: "round-1"})

	h.CreateEntryInvoice(c)

	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "LN_002", resp["error_code"])
}

// --- Wallet Handler Tests ---

func TestGetBalance_Success(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockWallet := mocks.NewMockWalletService(ctrl)
	h := NewWalletHandler(mockWallet, nil, zerolog.Nop())

	mockWallet.EXPECT().Balance(gomock.Any()).Return(int64(4200), nil)

	w, c := getRequest(t)

	h.GetBalance(c)

	assert.Equal(t, http.StatusOK, w.Code)
	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	data := resp["data"].(map[string]interface{})
	assert.Equal(t, float64(4200), data["balance_sats"])
}

func TestTopup_ReturnsInvoiceAndWatches(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockInvoice := mocks.NewMockInvoiceService(ctrl)
	h := NewWalletHandler(mocks.NewMockWalletService(ctrl), mockInvoice, zerolog.Nop())

	pending := &ports.PendingInvoice{InvoiceText: "lnbc...", Handle: "inv-7", GatewayURL: "https://ln.example.com", AmountSats: 5000}
	mockInvoice.EXPECT().RequestInvoice(gomock.Any(), int64(5000)).Return(pending, nil)

	watched := make(chan struct{})
	mockInvoice.EXPECT().
		WatchSettlement(gomock.Any(), pending, gomock.Any()).
		DoAndReturn(func(context.Context, *ports.PendingInvoice, func(domain.Token)) (bool, error) {
			close(watched)
			return true, nil
		})

	w, c := postJSON(t, dto.TopupRequest{AmountSats: 5000})

	h.Topup(c)

	assert.Equal(t, http.StatusCreated, w.Code)
	select {
	case <-watched:
	case <-time.After(time.Second):
		t.Fatal("settlement watch never started")
	}
}

// --- Health Check ---

type stubChecker struct {
	name string
	err  error
}

func (s stubChecker) Ping(context.Context) error { return s.err }
func (s stubChecker) Name() string               { return s.name }

func TestHealthCheck_AllHealthy(t *testing.T) {
	w, c := getRequest(t)

	HealthCheck(stubChecker{name: "postgresql"}, stubChecker{name: "redis"})(c)

	assert.Equal(t, http.StatusOK, w.Code)
	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "healthy", resp["status"])
}

func TestHealthCheck_Degraded(t *testing.T) {
	w, c := getRequest(t)

	HealthCheck(stubChecker{name: "postgresql"}, stubChecker{name: "redis", err: assert.AnError})(c)

	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "degraded", resp["status"])
	deps := resp["dependencies"].(map[string]interface{})
	redis := deps["redis"].(map[string]interface{})
	assert.Equal(t, "unhealthy", redis["status"])
}
