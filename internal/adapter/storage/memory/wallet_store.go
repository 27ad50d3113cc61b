package memory

import (
	"context"
	"fmt"
	"sync"

	"wallet-ledger/internal/core/domain"
)

// WalletStore implements ports.WalletStore with in-process maps. It owns the
// wallet table and the per-wallet append-only transaction logs; insertion
// order is tracked for List. All methods are safe for concurrent use, and
// reads return copies so callers never observe a balance mid-update.
type WalletStore struct {
	mu           sync.RWMutex
	wallets      map[string]*domain.Wallet
	order        []string
	transactions map[string][]*domain.Transaction
}

// NewWalletStore creates an empty WalletStore.
func NewWalletStore() *WalletStore {
	return &WalletStore{
		wallets:      make(map[string]*domain.Wallet),
		transactions: make(map[string][]*domain.Transaction),
	}
}

// Put inserts or updates a wallet. The first insert fixes the wallet's
// position in List order.
func (s *WalletStore) Put(_ context.Context, wallet *domain.Wallet) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.wallets[wallet.ID]; !exists {
		s.order = append(s.order, wallet.ID)
		s.transactions[wallet.ID] = nil
	}
	w := *wallet
	s.wallets[wallet.ID] = &w
	return nil
}

// Get returns the wallet or nil, nil when absent.
func (s *WalletStore) Get(_ context.Context, id string) (*domain.Wallet, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	stored, ok := s.wallets[id]
	if !ok {
		return nil, nil
	}
	w := *stored
	return &w, nil
}

// List returns all wallets in insertion order.
func (s *WalletStore) List(_ context.Context) ([]*domain.Wallet, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	wallets := make([]*domain.Wallet, 0, len(s.order))
	for _, id := range s.order {
		w := *s.wallets[id]
		wallets = append(wallets, &w)
	}
	return wallets, nil
}

// AppendTransaction appends to the wallet's log. The wallet must exist: no
// transaction record is permitted without its wallet.
func (s *WalletStore) AppendTransaction(_ context.Context, walletID string, tx *domain.Transaction) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.wallets[walletID]; !ok {
		return fmt.Errorf("wallet %s not found", walletID)
	}
	s.transactions[walletID] = append(s.transactions[walletID], tx)
	return nil
}

// ListTransactions returns the wallet's full history in append order.
func (s *WalletStore) ListTransactions(_ context.Context, walletID string) ([]*domain.Transaction, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	log := s.transactions[walletID]
	out := make([]*domain.Transaction, len(log))
	copy(out, log)
	return out, nil
}
