package repository_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rocketscienceinc/othello-backend/internal/repository"
	"github.com/rocketscienceinc/othello-backend/testing/suite"
)

func TestRedisWallet(t *testing.T) {
	ctx, st := suite.New(t)

	wallet := repository.NewRedisWallet(st.Storage)

	t.Run("Unknown players hold a zero balance", func(t *testing.T) {
		balance, err := wallet.Balance(ctx, "redis-nobody")

		require.NoError(t, err)
		assert.Zero(t, balance)
	})

	t.Run("Deposits accumulate and survive a re-read", func(t *testing.T) {
		// When: two rewards are paid to the same player
		balance, err := wallet.Deposit(ctx, "redis-player-1", 10)
		require.NoError(t, err)
		assert.Equal(t, 10, balance)

		balance, err = wallet.Deposit(ctx, "redis-player-1", 10)
		require.NoError(t, err)
		assert.Equal(t, 20, balance)

		// Then: the stored balance matches the last deposit result
		balance, err = wallet.Balance(ctx, "redis-player-1")
		require.NoError(t, err)
		assert.Equal(t, 20, balance)
	})

	t.Run("Balances are isolated per player", func(t *testing.T) {
		_, err := wallet.Deposit(ctx, "redis-player-2", 10)
		require.NoError(t, err)

		balance, err := wallet.Balance(ctx, "redis-player-3")
		require.NoError(t, err)
		assert.Zero(t, balance)
	})
}
