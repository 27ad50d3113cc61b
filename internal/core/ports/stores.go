package ports

import (
	"context"

	"wallet-ledger/internal/core/domain"
)

// WalletStore is the single source of truth for wallets and their
// transaction histories. Nothing is ever removed from it.
type WalletStore interface {
	// Put inserts a wallet or updates an existing one. List order is fixed
	// by the first insert.
	Put(ctx context.Context, wallet *domain.Wallet) error
	// Get returns nil, nil when the wallet does not exist.
	Get(ctx context.Context, id string) (*domain.Wallet, error)
	// List returns all wallets in insertion order.
	List(ctx context.Context) ([]*domain.Wallet, error)
	// AppendTransaction appends to the wallet's log. It fails if the wallet
	// is unknown: no transaction record may exist without its wallet.
	AppendTransaction(ctx context.Context, walletID string, tx *domain.Transaction) error
	// ListTransactions returns every transaction ever appended for the
	// wallet, in append order.
	ListTransactions(ctx context.Context, walletID string) ([]*domain.Transaction, error)
}

// IdempotencyCache maps a client-supplied key to the serialized result it
// first produced. Entries are permanent for the process lifetime and are
// replayed verbatim on every subsequent lookup.
type IdempotencyCache interface {
	// Get returns the cached response JSON, or nil, nil on a miss.
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
}
