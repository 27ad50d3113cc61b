package memory

import (
	"context"
	"testing"

	"wallet-ledger/internal/core/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWalletStore_PutAndGet(t *testing.T) {
	store := NewWalletStore()
	ctx := context.Background()

	w := domain.NewWallet("swift-vault-1111", "USD")
	require.NoError(t, store.Put(ctx, w))

	got, err := store.Get(ctx, w.ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, w.ID, got.ID)
	assert.Equal(t, int64(0), got.Balance)
}

func TestWalletStore_GetMissing(t *testing.T) {
	store := NewWalletStore()

	got, err := store.Get(context.Background(), "missing-wallet-0000")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestWalletStore_GetReturnsCopy(t *testing.T) {
	store := NewWalletStore()
	ctx := context.Background()

	w := domain.NewWallet("swift-vault-1111", "USD")
	require.NoError(t, store.Put(ctx, w))

	first, err := store.Get(ctx, w.ID)
	require.NoError(t, err)
	first.Balance = 9999

	second, err := store.Get(ctx, w.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(0), second.Balance, "mutating a read result must not touch the store")
}

func TestWalletStore_PutUpdatesInPlace(t *testing.T) {
	store := NewWalletStore()
	ctx := context.Background()

	w := domain.NewWallet("swift-vault-1111", "USD")
	require.NoError(t, store.Put(ctx, w))

	w.Balance = 250
	require.NoError(t, store.Put(ctx, w))

	got, err := store.Get(ctx, w.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(250), got.Balance)

	// An update must not duplicate the List entry.
	wallets, err := store.List(ctx)
	require.NoError(t, err)
	assert.Len(t, wallets, 1)
}

func TestWalletStore_ListInsertionOrder(t *testing.T) {
	store := NewWalletStore()
	ctx := context.Background()

	ids := []string{"calm-safe-1111", "bold-bank-2222", "warm-fund-3333"}
	for _, id := range ids {
		require.NoError(t, store.Put(ctx, domain.NewWallet(id, "USD")))
	}

	wallets, err := store.List(ctx)
	require.NoError(t, err)
	require.Len(t, wallets, 3)
	for i, w := range wallets {
		assert.Equal(t, ids[i], w.ID)
	}
}

func TestWalletStore_AppendTransaction(t *testing.T) {
	store := NewWalletStore()
	ctx := context.Background()

	w := domain.NewWallet("swift-vault-1111", "USD")
	require.NoError(t, store.Put(ctx, w))

	tx1 := domain.NewTransaction(w.ID, domain.TransactionTypeFund, 100, 100, nil)
	tx2 := domain.NewTransaction(w.ID, domain.TransactionTypeFund, 50, 150, nil)
	require.NoError(t, store.AppendTransaction(ctx, w.ID, tx1))
	require.NoError(t, store.AppendTransaction(ctx, w.ID, tx2))

	log, err := store.ListTransactions(ctx, w.ID)
	require.NoError(t, err)
	require.Len(t, log, 2)
	assert.Equal(t, tx1.ID, log[0].ID)
	assert.Equal(t, tx2.ID, log[1].ID)
}

func TestWalletStore_AppendTransaction_UnknownWallet(t *testing.T) {
	store := NewWalletStore()

	tx := domain.NewTransaction("missing-wallet-0000", domain.TransactionTypeFund, 1, 1, nil)
	err := store.AppendTransaction(context.Background(), "missing-wallet-0000", tx)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
}

func TestWalletStore_ListTransactions_Empty(t *testing.T) {
	store := NewWalletStore()
	ctx := context.Background()

	require.NoError(t, store.Put(ctx, domain.NewWallet("swift-vault-1111", "USD")))

	log, err := store.ListTransactions(ctx, "swift-vault-1111")
	require.NoError(t, err)
	assert.Empty(t, log)
}

func TestIdempotencyCache_GetMiss(t *testing.T) {
	cache := NewIdempotencyCache()

	got, err := cache.Get(context.Background(), "unknown")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestIdempotencyCache_SetAndGet(t *testing.T) {
	cache := NewIdempotencyCache()
	ctx := context.Background()

	payload := []byte(`{"id":"tx-1"}`)
	require.NoError(t, cache.Set(ctx, "k1", payload))

	got, err := cache.Get(ctx, "k1")
	require.NoError(t, err)
	assert.Equal(t, payload, got)
}

func TestIdempotencyCache_FirstWriteWins(t *testing.T) {
	cache := NewIdempotencyCache()
	ctx := context.Background()

	require.NoError(t, cache.Set(ctx, "k1", []byte("original")))
	require.NoError(t, cache.Set(ctx, "k1", []byte("overwrite")))

	got, err := cache.Get(ctx, "k1")
	require.NoError(t, err)
	assert.Equal(t, []byte("original"), got)
}

func TestIdempotencyCache_GetReturnsCopy(t *testing.T) {
	cache := NewIdempotencyCache()
	ctx := context.Background()

	require.NoError(t, cache.Set(ctx, "k1", []byte("payload")))

	got, err := cache.Get(ctx, "k1")
	require.NoError(t, err)
	got[0] = 'X'

	again, err := cache.Get(ctx, "k1")
	require.NoError(t, err)
	assert.Equal(t, []byte("payload"), again)
}
