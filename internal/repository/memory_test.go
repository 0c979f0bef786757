package repository

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryWallet(t *testing.T) {
	t.Run("Unknown players hold a zero balance", func(t *testing.T) {
		wallet := NewMemoryWallet()

		balance, err := wallet.Balance(context.Background(), "nobody")

		require.NoError(t, err)
		assert.Zero(t, balance)
	})

	t.Run("Deposits accumulate per player", func(t *testing.T) {
		wallet := NewMemoryWallet()
		ctx := context.Background()

		// When: two deposits land for the same player
		balance, err := wallet.Deposit(ctx, "player-1", 10)
		require.NoError(t, err)
		assert.Equal(t, 10, balance)

		balance, err = wallet.Deposit(ctx, "player-1", 10)
		require.NoError(t, err)
		assert.Equal(t, 20, balance)

		// Then: the read-back matches and other players are untouched
		balance, err = wallet.Balance(ctx, "player-1")
		require.NoError(t, err)
		assert.Equal(t, 20, balance)

		balance, err = wallet.Balance(ctx, "player-2")
		require.NoError(t, err)
		assert.Zero(t, balance)
	})

	t.Run("Concurrent deposits are not lost", func(t *testing.T) {
		wallet := NewMemoryWallet()
		ctx := context.Background()

		var wg sync.WaitGroup
		for i := 0; i < 50; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				_, _ = wallet.Deposit(ctx, "player-1", 1)
			}()
		}
		wg.Wait()

		balance, err := wallet.Balance(ctx, "player-1")
		require.NoError(t, err)
		assert.Equal(t, 50, balance)
	})
}
