package persistence

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"

	commonErrors "github.com/Alturino/storefront/internal/common/errors"
	"github.com/Alturino/storefront/internal/common/constants"
	"github.com/Alturino/storefront/product/pkg/response"
)

// LocalStorage keeps full product snapshots of an anonymous session's
// wishlist in Redis.
type LocalStorage struct {
	cache *redis.Client
	key   string
}

func NewLocalStorage(cache *redis.Client, sessionID string) *LocalStorage {
	return &LocalStorage{cache: cache, key: fmt.Sprintf(constants.KeyStorageWishlist, sessionID)}
}

func (p *LocalStorage) Load(c context.Context) ([]response.Product, error) {
	data, err := p.cache.Get(c, p.key).Bytes()
	if errors.Is(err, redis.Nil) {
		return []response.Product{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed getting wishlist from local storage with error=%w", err)
	}

	products := []response.Product{}
	if err = json.Unmarshal(data, &products); err != nil {
		return nil, fmt.Errorf(
			"failed decoding wishlist with error=%w",
			errors.Join(commonErrors.ErrInvalidDocument, err),
		)
	}
	return products, nil
}

func (p *LocalStorage) Save(c context.Context, items []response.Product) error {
	if items == nil {
		items = []response.Product{}
	}
	data, err := json.Marshal(items)
	if err != nil {
		return fmt.Errorf("failed encoding wishlist with error=%w", err)
	}
	if err = p.cache.Set(c, p.key, data, constants.StorageMaxAge).Err(); err != nil {
		return fmt.Errorf("failed setting wishlist to local storage with error=%w", err)
	}
	return nil
}

func (p *LocalStorage) Erase(c context.Context) error {
	if err := p.cache.Del(c, p.key).Err(); err != nil {
		return fmt.Errorf("failed deleting wishlist from local storage with error=%w", err)
	}
	return nil
}
