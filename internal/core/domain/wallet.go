package domain

import (
	"fmt"
	"math/rand"
	"time"
)

// DefaultCurrency is applied when a wallet is created without an explicit currency.
const DefaultCurrency = "USD"

// Wallet represents an account holding a non-negative balance in one currency.
// Currency is fixed at creation; Balance is in the currency's smallest unit.
type Wallet struct {
	ID        string    `json:"id"`
	Currency  string    `json:"currency"`
	Balance   int64     `json:"balance"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// NewWallet creates a wallet with a zero balance. An empty currency falls
// back to DefaultCurrency.
func NewWallet(id, currency string) *Wallet {
	if currency == "" {
		currency = DefaultCurrency
	}
	now := time.Now().UTC()
	return &Wallet{
		ID:        id,
		Currency:  currency,
		Balance:   0,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

var (
	walletAdjectives = []string{"swift", "bright", "calm", "bold", "smart", "quick", "cool", "warm", "fresh", "clean"}
	walletNouns      = []string{"wallet", "purse", "vault", "chest", "safe", "bank", "fund", "account", "ledger", "treasure"}
)

// GenerateWalletID returns a human-readable wallet identifier in the form
// "adjective-noun-1234". Callers must check the store for collisions.
func GenerateWalletID() string {
	adjective := walletAdjectives[rand.Intn(len(walletAdjectives))]
	noun := walletNouns[rand.Intn(len(walletNouns))]
	suffix := rand.Intn(9000) + 1000
	return fmt.Sprintf("%s-%s-%d", adjective, noun, suffix)
}
