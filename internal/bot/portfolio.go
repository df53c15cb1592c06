package bot

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
)

const noPortfolioText = "No portfolio set. Send /portfolio <holdings> to save one."

type RedisClient interface {
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.StatusCmd
	Get(ctx context.Context, key string) *redis.StringCmd
}

// PortfolioStore keeps each chat's free-form portfolio note. Entries live in
// Redis when a client is available and in memory otherwise.
type PortfolioStore struct {
	redis RedisClient

	mu    sync.Mutex
	local map[int64]string
}

func NewPortfolioStore(redisClient RedisClient) *PortfolioStore {
	return &PortfolioStore{
		redis: redisClient,
		local: make(map[int64]string),
	}
}

// Get returns the stored portfolio text for a chat, or the placeholder.
func (p *PortfolioStore) Get(ctx context.Context, chatID int64) string {
	if p.redis != nil {
		text, err := p.redis.Get(ctx, portfolioKey(chatID)).Result()
		if err == nil {
			return text
		}
		if err != redis.Nil {
			log.Printf("portfolio read error for chat %d: %v", chatID, err)
		}
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	if text, ok := p.local[chatID]; ok {
		return text
	}
	return noPortfolioText
}

// Set stores the portfolio text for a chat.
func (p *PortfolioStore) Set(ctx context.Context, chatID int64, text string) error {
	if p.redis != nil {
		if err := p.redis.Set(ctx, portfolioKey(chatID), text, 0).Err(); err != nil {
			return fmt.Errorf("store portfolio for chat %d: %w", chatID, err)
		}
		return nil
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	p.local[chatID] = text
	return nil
}

func portfolioKey(chatID int64) string {
	return fmt.Sprintf("portfolio:%d", chatID)
}
