package dto

import (
	"wallet-ledger/internal/core/domain"
	"wallet-ledger/internal/core/ports"
)

// CreateWalletRequest is the request body for wallet creation.
type CreateWalletRequest struct {
	Currency string `json:"currency" binding:"omitempty,oneof=USD"`
}

// FundRequest is the request body for funding a wallet.
type FundRequest struct {
	Amount         int64  `json:"amount" binding:"required,gt=0,max=999999999999"`
	IdempotencyKey string `json:"idempotency_key" binding:"omitempty,max=128"`
}

// TransferRequest is the request body for an inter-wallet transfer.
type TransferRequest struct {
	FromWalletID   string `json:"from_wallet_id" binding:"required,wallet_id"`
	ToWalletID     string `json:"to_wallet_id" binding:"required,wallet_id"`
	Amount         int64  `json:"amount" binding:"required,gt=0,max=999999999999"`
	IdempotencyKey string `json:"idempotency_key" binding:"omitempty,max=128"`
}

// WalletResponse is the response body for a single wallet.
type WalletResponse struct {
	ID        string `json:"id"`
	Currency  string `json:"currency"`
	Balance   int64  `json:"balance"`
	CreatedAt string `json:"created_at"`
	UpdatedAt string `json:"updated_at"`
}

// TransactionResponse is the response body for a ledger transaction.
type TransactionResponse struct {
	ID           string               `json:"id"`
	WalletID     string               `json:"wallet_id"`
	Type         string               `json:"type"`
	Amount       int64                `json:"amount"`
	BalanceAfter int64                `json:"balance_after"`
	Status       string               `json:"status"`
	Metadata     *TransactionMetadata `json:"metadata,omitempty"`
	CreatedAt    string               `json:"created_at"`
}

// TransactionMetadata mirrors domain.TransactionMetadata on the wire.
type TransactionMetadata struct {
	FromWalletID string `json:"from_wallet_id,omitempty"`
	ToWalletID   string `json:"to_wallet_id,omitempty"`
	Description  string `json:"description,omitempty"`
}

// TransferResponse wraps the two legs of a transfer.
type TransferResponse struct {
	SenderTransaction   TransactionResponse `json:"sender_transaction"`
	ReceiverTransaction TransactionResponse `json:"receiver_transaction"`
}

// WalletDetailResponse is a wallet with its history, newest first.
type WalletDetailResponse struct {
	Wallet       WalletResponse        `json:"wallet"`
	Transactions []TransactionResponse `json:"transactions"`
}

// FromWallet converts a domain wallet into its wire shape.
func FromWallet(w *domain.Wallet) WalletResponse {
	return WalletResponse{
		ID:        w.ID,
		Currency:  w.Currency,
		Balance:   w.Balance,
		CreatedAt: w.CreatedAt.UTC().Format("2006-01-02T15:04:05.000Z07:00"),
		UpdatedAt: w.UpdatedAt.UTC().Format("2006-01-02T15:04:05.000Z07:00"),
	}
}

// FromTransaction converts a domain transaction into its wire shape.
func FromTransaction(t *domain.Transaction) TransactionResponse {
	resp := TransactionResponse{
		ID:           t.ID,
		WalletID:     t.WalletID,
		Type:         string(t.Type),
		Amount:       t.Amount,
		BalanceAfter: t.BalanceAfter,
		Status:       string(t.Status),
		CreatedAt:    t.CreatedAt.UTC().Format("2006-01-02T15:04:05.000Z07:00"),
	}
	if t.Metadata != nil {
		resp.Metadata = &TransactionMetadata{
			FromWalletID: t.Metadata.FromWalletID,
			ToWalletID:   t.Metadata.ToWalletID,
			Description:  t.Metadata.Description,
		}
	}
	return resp
}

// FromTransferResult converts a transfer result into its wire shape.
func FromTransferResult(r *ports.TransferResult) TransferResponse {
	return TransferResponse{
		SenderTransaction:   FromTransaction(r.SenderTransaction),
		ReceiverTransaction: FromTransaction(r.ReceiverTransaction),
	}
}

// FromWalletDetail converts a wallet detail into its wire shape.
func FromWalletDetail(d *ports.WalletDetail) WalletDetailResponse {
	txns := make([]TransactionResponse, 0, len(d.Transactions))
	for _, t := range d.Transactions {
		txns = append(txns, FromTransaction(t))
	}
	return WalletDetailResponse{
		Wallet:       FromWallet(d.Wallet),
		Transactions: txns,
	}
}
