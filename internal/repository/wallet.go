package repository

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"
)

// WalletRepository is the narrow contract of the coin ledger: read a
// balance and deposit a reward. Missing players hold a zero balance.
type WalletRepository interface {
	Balance(ctx context.Context, playerID string) (int, error)
	Deposit(ctx context.Context, playerID string, amount int) (int, error)
}

type redisWallet struct {
	client *redis.Client
}

func NewRedisWallet(client *redis.Client) WalletRepository {
	return &redisWallet{
		client: client,
	}
}

func (that *redisWallet) Balance(ctx context.Context, playerID string) (int, error) {
	walletKey := "wallet:" + playerID

	balance, err := that.client.Get(ctx, walletKey).Int()
	if err == redis.Nil { //nolint: errorlint // go-redis returns the sentinel unwrapped
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("failed to get balance: %w", err)
	}

	return balance, nil
}

func (that *redisWallet) Deposit(ctx context.Context, playerID string, amount int) (int, error) {
	walletKey := "wallet:" + playerID

	balance, err := that.client.IncrBy(ctx, walletKey, int64(amount)).Result()
	if err != nil {
		return 0, fmt.Errorf("failed to deposit coins: %w", err)
	}

	return int(balance), nil
}
