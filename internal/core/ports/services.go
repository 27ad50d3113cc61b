package ports

import (
	"context"

	"wallet-ledger/internal/core/domain"
)

// LedgerService defines the core ledger business logic. Arguments are
// already-validated primitives; the service performs its own business-rule
// validation (existence, sign, sufficiency) but no field-shape validation.
type LedgerService interface {
	CreateWallet(ctx context.Context, req CreateWalletRequest) (*domain.Wallet, error)
	Fund(ctx context.Context, req FundRequest) (*domain.Transaction, error)
	Transfer(ctx context.Context, req TransferRequest) (*TransferResult, error)
	GetWallet(ctx context.Context, walletID string) (*WalletDetail, error)
	ListWallets(ctx context.Context) ([]*domain.Wallet, error)
}

// CreateWalletRequest holds validated input for wallet creation.
type CreateWalletRequest struct {
	Currency string // empty = default currency
}

// FundRequest holds validated input for funding a wallet.
type FundRequest struct {
	WalletID       string
	Amount         int64
	IdempotencyKey string // empty = no idempotency
}

// TransferRequest holds validated input for an inter-wallet transfer.
type TransferRequest struct {
	FromWalletID   string
	ToWalletID     string
	Amount         int64
	IdempotencyKey string // empty = no idempotency
}

// TransferResult holds the two legs of a completed transfer.
type TransferResult struct {
	SenderTransaction   *domain.Transaction `json:"sender_transaction"`
	ReceiverTransaction *domain.Transaction `json:"receiver_transaction"`
}

// WalletDetail is a wallet together with its history, newest first.
type WalletDetail struct {
	Wallet       *domain.Wallet        `json:"wallet"`
	Transactions []*domain.Transaction `json:"transactions"`
}
