package persistence

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/Alturino/storefront/cart/pkg/store"
	"github.com/Alturino/storefront/internal/common/constants"
)

// LocalStorage keeps the cart of an anonymous session in Redis.
type LocalStorage struct {
	cache *redis.Client
	key   string
}

func NewLocalStorage(cache *redis.Client, sessionID string) *LocalStorage {
	return &LocalStorage{cache: cache, key: fmt.Sprintf(constants.KeyStorageCart, sessionID)}
}

func (p *LocalStorage) Load(c context.Context) ([]store.Item, error) {
	data, err := p.cache.Get(c, p.key).Bytes()
	if errors.Is(err, redis.Nil) {
		return []store.Item{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed getting cart from local storage with error=%w", err)
	}
	return decodeItems(data)
}

func (p *LocalStorage) Save(c context.Context, items []store.Item) error {
	data, err := encodeItems(items)
	if err != nil {
		return err
	}
	if err := p.cache.Set(c, p.key, data, constants.StorageMaxAge).Err(); err != nil {
		return fmt.Errorf("failed setting cart to local storage with error=%w", err)
	}
	return nil
}

func (p *LocalStorage) Erase(c context.Context) error {
	if err := p.cache.Del(c, p.key).Err(); err != nil {
		return fmt.Errorf("failed deleting cart from local storage with error=%w", err)
	}
	return nil
}
