// Package settings stores the shop-level preferences the old
// front-end kept in browser localStorage, so every device sees the
// same configuration.
package settings

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/redis/go-redis/v9"
)

const settingsKey = "settings:shop"

// Settings are shop-wide and mutable at runtime, unlike the values in
// config which are fixed at boot.
type Settings struct {
	ShopName          string  `json:"shopName"`
	Currency          string  `json:"currency"`
	TaxRate           float64 `json:"taxRate"`
	LowStockThreshold int     `json:"lowStockThreshold"`
	ReceiptFooter     string  `json:"receiptFooter"`
}

func Defaults() Settings {
	return Settings{
		ShopName:          "Shop",
		Currency:          "KSH",
		TaxRate:           0,
		LowStockThreshold: 10,
	}
}

type Store interface {
	Get(ctx context.Context) (Settings, error)
	Save(ctx context.Context, s Settings) error
}

type redisStore struct {
	client *redis.Client
}

func NewRedisStore(client *redis.Client) Store {
	return &redisStore{client: client}
}

func (s *redisStore) Get(ctx context.Context) (Settings, error) {
	payload, err := s.client.Get(ctx, settingsKey).Bytes()
	if err == redis.Nil {
		return Defaults(), nil
	}
	if err != nil {
		return Settings{}, fmt.Errorf("redis get failed: %w", err)
	}

	var settings Settings
	if err := json.Unmarshal(payload, &settings); err != nil {
		return Settings{}, fmt.Errorf("decode settings: %w", err)
	}
	return settings, nil
}

func (s *redisStore) Save(ctx context.Context, settings Settings) error {
	payload, err := json.Marshal(settings)
	if err != nil {
		return fmt.Errorf("encode settings: %w", err)
	}
	if err := s.client.Set(ctx, settingsKey, payload, 0).Err(); err != nil {
		return fmt.Errorf("redis set failed: %w", err)
	}
	return nil
}

type memoryStore struct {
	mu       sync.RWMutex
	settings Settings
}

// NewMemoryStore is used when no redis is configured. Values reset on
// restart.
func NewMemoryStore() Store {
	return &memoryStore{settings: Defaults()}
}

func (s *memoryStore) Get(context.Context) (Settings, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.settings, nil
}

func (s *memoryStore) Save(_ context.Context, settings Settings) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.settings = settings
	return nil
}
