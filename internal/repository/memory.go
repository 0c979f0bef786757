package repository

import (
	"context"
	"sync"
)

// memoryWallet keeps balances for the lifetime of the process only.
type memoryWallet struct {
	mu       sync.Mutex
	balances map[string]int
}

func NewMemoryWallet() WalletRepository {
	return &memoryWallet{
		balances: make(map[string]int),
	}
}

func (that *memoryWallet) Balance(_ context.Context, playerID string) (int, error) {
	that.mu.Lock()
	defer that.mu.Unlock()

	return that.balances[playerID], nil
}

func (that *memoryWallet) Deposit(_ context.Context, playerID string, amount int) (int, error) {
	that.mu.Lock()
	defer that.mu.Unlock()

	that.balances[playerID] += amount

	return that.balances[playerID], nil
}
