package handler

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"wallet-ledger/internal/core/domain"
	"wallet-ledger/internal/core/ports"
	"wallet-ledger/internal/core/ports/mocks"
	"wallet-ledger/pkg/apperror"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func performJSON(t *testing.T, handler gin.HandlerFunc, method, target string, body []byte, params gin.Params) *httptest.ResponseRecorder {
	t.Helper()
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(method, target, bytes.NewReader(body))
	c.Request.Header.Set("Content-Type", "application/json")
	c.Params = params
	handler(c)
	return w
}

// --- Create ---

func TestCreateWallet_Success(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockSvc := mocks.NewMockLedgerService(ctrl)
	h := NewWalletHandler(mockSvc)

	now := time.Now().UTC()
	mockSvc.EXPECT().CreateWallet(gomock.Any(), ports.CreateWalletRequest{Currency: "USD"}).Return(&domain.Wallet{
		ID:        "swift-vault-4821",
		Currency:  "USD",
		Balance:   0,
		CreatedAt: now,
		UpdatedAt: now,
	}, nil)

	w := performJSON(t, h.Create, http.MethodPost, "/api/v1/wallets", []byte(`{"currency":"USD"}`), nil)

	assert.Equal(t, http.StatusCreated, w.Code)
	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	data := resp["data"].(map[string]interface{})
	assert.Equal(t, "swift-vault-4821", data["id"])
	assert.Equal(t, "USD", data["currency"])
	assert.Equal(t, float64(0), data["balance"])
	assert.NotEmpty(t, resp["request_id"])
}

func TestCreateWallet_EmptyBodyUsesDefault(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockSvc := mocks.NewMockLedgerService(ctrl)
	h := NewWalletHandler(mockSvc)

	mockSvc.EXPECT().CreateWallet(gomock.Any(), ports.CreateWalletRequest{Currency: ""}).Return(domain.NewWallet("calm-safe-1234", "USD"), nil)

	w := performJSON(t, h.Create, http.MethodPost, "/api/v1/wallets", nil, nil)
	assert.Equal(t, http.StatusCreated, w.Code)
}

func TestCreateWallet_UnsupportedCurrency(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockSvc := mocks.NewMockLedgerService(ctrl)
	h := NewWalletHandler(mockSvc)

	w := performJSON(t, h.Create, http.MethodPost, "/api/v1/wallets", []byte(`{"currency":"EUR"}`), nil)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "USD")
}

// --- Fund ---

func TestFund_Success(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockSvc := mocks.NewMockLedgerService(ctrl)
	h := NewWalletHandler(mockSvc)

	mockSvc.EXPECT().Fund(gomock.Any(), ports.FundRequest{
		WalletID:       "swift-vault-4821",
		Amount:         500,
		IdempotencyKey: "k1",
	}).Return(domain.NewTransaction("swift-vault-4821", domain.TransactionTypeFund, 500, 500, nil), nil)

	body := []byte(`{"amount":500,"idempotency_key":"k1"}`)
	w := performJSON(t, h.Fund, http.MethodPost, "/api/v1/wallets/swift-vault-4821/fund", body,
		gin.Params{{Key: "id", Value: "swift-vault-4821"}})

	assert.Equal(t, http.StatusOK, w.Code)
	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	data := resp["data"].(map[string]interface{})
	assert.Equal(t, "FUND", data["type"])
	assert.Equal(t, float64(500), data["balance_after"])
	assert.Equal(t, "COMPLETED", data["status"])
}

func TestFund_InvalidWalletIDFormat(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockSvc := mocks.NewMockLedgerService(ctrl)
	h := NewWalletHandler(mockSvc)

	w := performJSON(t, h.Fund, http.MethodPost, "/api/v1/wallets/BAD_ID/fund", []byte(`{"amount":100}`),
		gin.Params{{Key: "id", Value: "BAD_ID"}})

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestFund_MissingAmount(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockSvc := mocks.NewMockLedgerService(ctrl)
	h := NewWalletHandler(mockSvc)

	w := performJSON(t, h.Fund, http.MethodPost, "/api/v1/wallets/swift-vault-4821/fund", []byte(`{}`),
		gin.Params{{Key: "id", Value: "swift-vault-4821"}})

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestFund_NegativeAmountRejectedByBinding(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockSvc := mocks.NewMockLedgerService(ctrl)
	h := NewWalletHandler(mockSvc)

	w := performJSON(t, h.Fund, http.MethodPost, "/api/v1/wallets/swift-vault-4821/fund", []byte(`{"amount":-100}`),
		gin.Params{{Key: "id", Value: "swift-vault-4821"}})

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestFund_WalletNotFound(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockSvc := mocks.NewMockLedgerService(ctrl)
	h := NewWalletHandler(mockSvc)

	mockSvc.EXPECT().Fund(gomock.Any(), gomock.Any()).Return(nil, apperror.ErrWalletNotFound("swift-vault-4821"))

	w := performJSON(t, h.Fund, http.MethodPost, "/api/v1/wallets/swift-vault-4821/fund", []byte(`{"amount":100}`),
		gin.Params{{Key: "id", Value: "swift-vault-4821"}})

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "LDG_001")
}

// --- Transfer ---

func TestTransfer_Success(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockSvc := mocks.NewMockLedgerService(ctrl)
	h := NewWalletHandler(mockSvc)

	sender := domain.NewTransaction("swift-vault-1111", domain.TransactionTypeTransferOut, -100, 400,
		&domain.TransactionMetadata{ToWalletID: "calm-safe-2222"})
	receiver := domain.NewTransaction("calm-safe-2222", domain.TransactionTypeTransferIn, 100, 100,
		&domain.TransactionMetadata{FromWalletID: "swift-vault-1111"})

	mockSvc.EXPECT().Transfer(gomock.Any(), ports.TransferRequest{
		FromWalletID: "swift-vault-1111",
		ToWalletID:   "calm-safe-2222",
		Amount:       100,
	}).Return(&ports.TransferResult{SenderTransaction: sender, ReceiverTransaction: receiver}, nil)

	body := []byte(`{"from_wallet_id":"swift-vault-1111","to_wallet_id":"calm-safe-2222","amount":100}`)
	w := performJSON(t, h.Transfer, http.MethodPost, "/api/v1/wallets/transfer", body, nil)

	assert.Equal(t, http.StatusOK, w.Code)
	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	data := resp["data"].(map[string]interface{})
	senderTx := data["sender_transaction"].(map[string]interface{})
	receiverTx := data["receiver_transaction"].(map[string]interface{})
	assert.Equal(t, float64(-100), senderTx["amount"])
	assert.Equal(t, float64(100), receiverTx["amount"])
}

func TestTransfer_MalformedWalletID(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockSvc := mocks.NewMockLedgerService(ctrl)
	h := NewWalletHandler(mockSvc)

	body := []byte(`{"from_wallet_id":"NOT-VALID","to_wallet_id":"calm-safe-2222","amount":100}`)
	w := performJSON(t, h.Transfer, http.MethodPost, "/api/v1/wallets/transfer", body, nil)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestTransfer_InsufficientBalance(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockSvc := mocks.NewMockLedgerService(ctrl)
	h := NewWalletHandler(mockSvc)

	mockSvc.EXPECT().Transfer(gomock.Any(), gomock.Any()).Return(nil, apperror.ErrInsufficientBalance(50, 100))

	body := []byte(`{"from_wallet_id":"swift-vault-1111","to_wallet_id":"calm-safe-2222","amount":100}`)
	w := performJSON(t, h.Transfer, http.MethodPost, "/api/v1/wallets/transfer", body, nil)

	assert.Equal(t, http.StatusPaymentRequired, w.Code)
	assert.Contains(t, w.Body.String(), "LDG_004")
}

// --- Get / List ---

func TestGetWallet_Success(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockSvc := mocks.NewMockLedgerService(ctrl)
	h := NewWalletHandler(mockSvc)

	wallet := domain.NewWallet("swift-vault-4821", "USD")
	wallet.Balance = 300
	txn := domain.NewTransaction(wallet.ID, domain.TransactionTypeFund, 300, 300, nil)

	mockSvc.EXPECT().GetWallet(gomock.Any(), "swift-vault-4821").Return(&ports.WalletDetail{
		Wallet:       wallet,
		Transactions: []*domain.Transaction{txn},
	}, nil)

	w := performJSON(t, h.Get, http.MethodGet, "/api/v1/wallets/swift-vault-4821", nil,
		gin.Params{{Key: "id", Value: "swift-vault-4821"}})

	assert.Equal(t, http.StatusOK, w.Code)
	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	data := resp["data"].(map[string]interface{})
	assert.Equal(t, float64(300), data["wallet"].(map[string]interface{})["balance"])
	assert.Len(t, data["transactions"].([]interface{}), 1)
}

func TestGetWallet_NotFound(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockSvc := mocks.NewMockLedgerService(ctrl)
	h := NewWalletHandler(mockSvc)

	mockSvc.EXPECT().GetWallet(gomock.Any(), "missing-wallet-0000").Return(nil, apperror.ErrWalletNotFound("missing-wallet-0000"))

	w := performJSON(t, h.Get, http.MethodGet, "/api/v1/wallets/missing-wallet-0000", nil,
		gin.Params{{Key: "id", Value: "missing-wallet-0000"}})

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestListWallets_Empty(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockSvc := mocks.NewMockLedgerService(ctrl)
	h := NewWalletHandler(mockSvc)

	mockSvc.EXPECT().ListWallets(gomock.Any()).Return(nil, nil)

	w := performJSON(t, h.List, http.MethodGet, "/api/v1/wallets", nil, nil)

	assert.Equal(t, http.StatusOK, w.Code)
	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, []interface{}{}, resp["data"])
}

func TestListWallets_InternalError(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockSvc := mocks.NewMockLedgerService(ctrl)
	h := NewWalletHandler(mockSvc)

	mockSvc.EXPECT().ListWallets(gomock.Any()).Return(nil, errors.New("boom"))

	w := performJSON(t, h.List, http.MethodGet, "/api/v1/wallets", nil, nil)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
}

// --- Health ---

func TestHealthCheck_NoCheckers(t *testing.T) {
	w := performJSON(t, HealthCheck(), http.MethodGet, "/healthz", nil, nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"status":"ok"`)
}

func TestHealthCheck_UnhealthyDependency(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	checker := mocks.NewMockHealthChecker(ctrl)
	checker.EXPECT().Ping(gomock.Any()).Return(errors.New("connection refused"))
	checker.EXPECT().Name().Return("redis")

	w := performJSON(t, HealthCheck(checker), http.MethodGet, "/healthz", nil, nil)
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	assert.Contains(t, w.Body.String(), `"redis":"unhealthy"`)
}
