package domain

import (
	"time"

	"github.com/google/uuid"
)

// TransactionType represents the kind of balance movement.
type TransactionType string

const (
	TransactionTypeFund        TransactionType = "FUND"
	TransactionTypeTransferOut TransactionType = "TRANSFER_OUT"
	TransactionTypeTransferIn  TransactionType = "TRANSFER_IN"
)

// TransactionStatus represents the lifecycle state of a transaction.
// The engine only ever produces COMPLETED today; PENDING and FAILED are
// reserved for asynchronous settlement.
type TransactionStatus string

const (
	TransactionStatusPending   TransactionStatus = "PENDING"
	TransactionStatusCompleted TransactionStatus = "COMPLETED"
	TransactionStatusFailed    TransactionStatus = "FAILED"
)

// TransactionMetadata carries optional annotations on a transaction. The two
// legs of a transfer reference each other only through these fields.
type TransactionMetadata struct {
	FromWalletID string `json:"from_wallet_id,omitempty"`
	ToWalletID   string `json:"to_wallet_id,omitempty"`
	Description  string `json:"description,omitempty"`
}

// Transaction is an immutable record of a single balance-affecting event on
// one wallet. Amount is signed: positive for FUND and TRANSFER_IN, negative
// for TRANSFER_OUT. BalanceAfter is snapshotted at creation and never
// recomputed.
type Transaction struct {
	ID           string               `json:"id"`
	WalletID     string               `json:"wallet_id"`
	Type         TransactionType      `json:"type"`
	Amount       int64                `json:"amount"`
	BalanceAfter int64                `json:"balance_after"`
	Status       TransactionStatus    `json:"status"`
	Metadata     *TransactionMetadata `json:"metadata,omitempty"`
	CreatedAt    time.Time            `json:"created_at"`
}

// NewTransaction creates a COMPLETED transaction record.
func NewTransaction(walletID string, txType TransactionType, amount, balanceAfter int64, meta *TransactionMetadata) *Transaction {
	return &Transaction{
		ID:           uuid.New().String(),
		WalletID:     walletID,
		Type:         txType,
		Amount:       amount,
		BalanceAfter: balanceAfter,
		Status:       TransactionStatusCompleted,
		Metadata:     meta,
		CreatedAt:    time.Now().UTC(),
	}
}

// IsCredit returns true if the transaction increased the wallet balance.
func (t *Transaction) IsCredit() bool {
	return t.Amount > 0
}
