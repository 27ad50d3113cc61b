package service

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"time"

	"wallet-ledger/internal/core/domain"
	"wallet-ledger/internal/core/ports"
	"wallet-ledger/pkg/apperror"

	"github.com/rs/zerolog"
)

// maxIDAttempts bounds the retry loop for human-readable wallet id collisions.
const maxIDAttempts = 50

// LedgerEngine implements ports.LedgerService. It is the sole mutator of the
// wallet store and the idempotency cache. Every mutating operation runs as a
// critical section over the wallet(s) it touches; keyed operations are
// additionally serialized per idempotency key, so a retried request replays
// the original result instead of re-executing.
type LedgerEngine struct {
	store       ports.WalletStore
	idempCache  ports.IdempotencyCache
	walletLocks *lockTable
	keyLocks    *lockTable
	log         zerolog.Logger
}

// NewLedgerEngine creates a new LedgerEngine.
func NewLedgerEngine(store ports.WalletStore, idempCache ports.IdempotencyCache, log zerolog.Logger) *LedgerEngine {
	return &LedgerEngine{
		store:       store,
		idempCache:  idempCache,
		walletLocks: newLockTable(),
		keyLocks:    newLockTable(),
		log:         log,
	}
}

// CreateWallet generates a fresh wallet with a zero balance and an empty
// transaction history. There is no dedup key for creation: every call
// produces a new wallet.
func (e *LedgerEngine) CreateWallet(ctx context.Context, req ports.CreateWalletRequest) (*domain.Wallet, error) {
	id, err := e.uniqueWalletID(ctx)
	if err != nil {
		return nil, err
	}

	wallet := domain.NewWallet(id, req.Currency)
	if err := e.store.Put(ctx, wallet); err != nil {
		return nil, apperror.InternalError(fmt.Errorf("store wallet: %w", err))
	}

	e.log.Info().
		Str("wallet_id", wallet.ID).
		Str("currency", wallet.Currency).
		Msg("wallet created")

	return wallet, nil
}

// Fund credits a wallet and appends a FUND transaction. With an idempotency
// key, a replayed call returns the original transaction verbatim and mutates
// nothing.
func (e *LedgerEngine) Fund(ctx context.Context, req ports.FundRequest) (*domain.Transaction, error) {
	if req.IdempotencyKey != "" {
		unlock := e.keyLocks.lock(req.IdempotencyKey)
		defer unlock()

		cached, err := e.cachedResult(ctx, req.IdempotencyKey)
		if err != nil {
			return nil, err
		}
		if cached != nil {
			txn := &domain.Transaction{}
			if err := json.Unmarshal(cached, txn); err != nil {
				return nil, apperror.InternalError(fmt.Errorf("unmarshal cached fund: %w", err))
			}
			e.log.Debug().Str("key", req.IdempotencyKey).Msg("fund replayed from idempotency cache")
			return txn, nil
		}
	}

	unlock := e.walletLocks.lock(req.WalletID)
	defer unlock()

	wallet, err := e.store.Get(ctx, req.WalletID)
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("get wallet: %w", err))
	}
	if wallet == nil {
		return nil, apperror.ErrWalletNotFound(req.WalletID)
	}

	if req.Amount <= 0 {
		return nil, apperror.ErrInvalidAmount()
	}

	wallet.Balance += req.Amount
	wallet.UpdatedAt = time.Now().UTC()

	txn := domain.NewTransaction(
		wallet.ID,
		domain.TransactionTypeFund,
		req.Amount,
		wallet.Balance,
		&domain.TransactionMetadata{Description: "Wallet funded"},
	)

	if err := e.store.Put(ctx, wallet); err != nil {
		return nil, apperror.InternalError(fmt.Errorf("update wallet: %w", err))
	}
	if err := e.store.AppendTransaction(ctx, wallet.ID, txn); err != nil {
		return nil, apperror.InternalError(fmt.Errorf("append fund transaction: %w", err))
	}

	if req.IdempotencyKey != "" {
		e.cacheResult(ctx, req.IdempotencyKey, txn)
	}

	e.log.Info().
		Str("tx_id", txn.ID).
		Str("wallet_id", wallet.ID).
		Int64("amount", req.Amount).
		Int64("balance_after", txn.BalanceAfter).
		Msg("wallet funded")

	return txn, nil
}

// Transfer moves amount between two wallets, appending a TRANSFER_OUT leg to
// the sender and a TRANSFER_IN leg to the receiver. Value is conserved: the
// two legs sum to zero. With an idempotency key, a replayed call returns the
// original pair verbatim.
func (e *LedgerEngine) Transfer(ctx context.Context, req ports.TransferRequest) (*ports.TransferResult, error) {
	if req.IdempotencyKey != "" {
		unlock := e.keyLocks.lock(req.IdempotencyKey)
		defer unlock()

		cached, err := e.cachedResult(ctx, req.IdempotencyKey)
		if err != nil {
			return nil, err
		}
		if cached != nil {
			result := &ports.TransferResult{}
			if err := json.Unmarshal(cached, result); err != nil {
				return nil, apperror.InternalError(fmt.Errorf("unmarshal cached transfer: %w", err))
			}
			e.log.Debug().Str("key", req.IdempotencyKey).Msg("transfer replayed from idempotency cache")
			return result, nil
		}
	}

	if req.FromWalletID == req.ToWalletID {
		// A single lock suffices; sender existence is still checked first so
		// the error order matches the unkeyed path.
		unlock := e.walletLocks.lock(req.FromWalletID)
		defer unlock()

		sender, err := e.store.Get(ctx, req.FromWalletID)
		if err != nil {
			return nil, apperror.InternalError(fmt.Errorf("get sender wallet: %w", err))
		}
		if sender == nil {
			return nil, apperror.ErrWalletNotFound(req.FromWalletID)
		}
		return nil, apperror.ErrSameWalletTransfer()
	}

	unlock := e.walletLocks.lockPair(req.FromWalletID, req.ToWalletID)
	defer unlock()

	sender, err := e.store.Get(ctx, req.FromWalletID)
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("get sender wallet: %w", err))
	}
	if sender == nil {
		return nil, apperror.ErrWalletNotFound(req.FromWalletID)
	}

	receiver, err := e.store.Get(ctx, req.ToWalletID)
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("get receiver wallet: %w", err))
	}
	if receiver == nil {
		return nil, apperror.ErrWalletNotFound(req.ToWalletID)
	}

	if req.Amount <= 0 {
		return nil, apperror.ErrInvalidAmount()
	}
	if sender.Balance < req.Amount {
		return nil, apperror.ErrInsufficientBalance(sender.Balance, req.Amount)
	}

	now := time.Now().UTC()
	sender.Balance -= req.Amount
	sender.UpdatedAt = now
	receiver.Balance += req.Amount
	receiver.UpdatedAt = now

	senderTx := domain.NewTransaction(
		sender.ID,
		domain.TransactionTypeTransferOut,
		-req.Amount,
		sender.Balance,
		&domain.TransactionMetadata{
			ToWalletID:  receiver.ID,
			Description: fmt.Sprintf("Transfer to wallet %s", receiver.ID),
		},
	)
	receiverTx := domain.NewTransaction(
		receiver.ID,
		domain.TransactionTypeTransferIn,
		req.Amount,
		receiver.Balance,
		&domain.TransactionMetadata{
			FromWalletID: sender.ID,
			Description:  fmt.Sprintf("Transfer from wallet %s", sender.ID),
		},
	)

	if err := e.store.Put(ctx, sender); err != nil {
		return nil, apperror.InternalError(fmt.Errorf("update sender wallet: %w", err))
	}
	if err := e.store.Put(ctx, receiver); err != nil {
		return nil, apperror.InternalError(fmt.Errorf("update receiver wallet: %w", err))
	}
	if err := e.store.AppendTransaction(ctx, sender.ID, senderTx); err != nil {
		return nil, apperror.InternalError(fmt.Errorf("append sender transaction: %w", err))
	}
	if err := e.store.AppendTransaction(ctx, receiver.ID, receiverTx); err != nil {
		return nil, apperror.InternalError(fmt.Errorf("append receiver transaction: %w", err))
	}

	result := &ports.TransferResult{
		SenderTransaction:   senderTx,
		ReceiverTransaction: receiverTx,
	}

	if req.IdempotencyKey != "" {
		e.cacheResult(ctx, req.IdempotencyKey, result)
	}

	e.log.Info().
		Str("from_wallet_id", sender.ID).
		Str("to_wallet_id", receiver.ID).
		Int64("amount", req.Amount).
		Msg("transfer completed")

	return result, nil
}

// GetWallet returns a wallet with its full transaction history, newest
// first. Transactions carrying the same timestamp keep their append order.
// The read holds the wallet lock so it cannot interleave with a fund or
// transfer mid-commit: the returned balance always matches the history.
func (e *LedgerEngine) GetWallet(ctx context.Context, walletID string) (*ports.WalletDetail, error) {
	unlock := e.walletLocks.lock(walletID)
	defer unlock()

	wallet, err := e.store.Get(ctx, walletID)
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("get wallet: %w", err))
	}
	if wallet == nil {
		return nil, apperror.ErrWalletNotFound(walletID)
	}

	txns, err := e.store.ListTransactions(ctx, walletID)
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("list transactions: %w", err))
	}

	sort.SliceStable(txns, func(i, j int) bool {
		return txns[i].CreatedAt.After(txns[j].CreatedAt)
	})

	return &ports.WalletDetail{Wallet: wallet, Transactions: txns}, nil
}

// ListWallets returns every wallet in insertion order. Each entry is a
// point-in-time snapshot of one wallet; the listing does not serialize
// against in-flight transfers, so two entries may straddle a transfer
// between them.
func (e *LedgerEngine) ListWallets(ctx context.Context) ([]*domain.Wallet, error) {
	wallets, err := e.store.List(ctx)
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("list wallets: %w", err))
	}
	return wallets, nil
}

// uniqueWalletID draws human-readable ids until one misses the store.
func (e *LedgerEngine) uniqueWalletID(ctx context.Context) (string, error) {
	for i := 0; i < maxIDAttempts; i++ {
		id := domain.GenerateWalletID()
		existing, err := e.store.Get(ctx, id)
		if err != nil {
			return "", apperror.InternalError(fmt.Errorf("check wallet id: %w", err))
		}
		if existing == nil {
			return id, nil
		}
	}
	return "", apperror.InternalError(fmt.Errorf("exhausted wallet id space after %d attempts", maxIDAttempts))
}

// cachedResult looks up an idempotency key. Caller must hold the key lock.
func (e *LedgerEngine) cachedResult(ctx context.Context, key string) ([]byte, error) {
	cached, err := e.idempCache.Get(ctx, key)
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("idempotency lookup: %w", err))
	}
	return cached, nil
}

// cacheResult stores the serialized result under key. The write is
// best-effort: a cache failure after a committed mutation must not fail the
// operation itself.
func (e *LedgerEngine) cacheResult(ctx context.Context, key string, result any) {
	payload, err := json.Marshal(result)
	if err != nil {
		e.log.Warn().Err(err).Str("key", key).Msg("failed to marshal idempotency result")
		return
	}
	if err := e.idempCache.Set(ctx, key, payload); err != nil {
		e.log.Warn().Err(err).Str("key", key).Msg("failed to store idempotency result")
	}
}
