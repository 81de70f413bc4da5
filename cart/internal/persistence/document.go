package persistence

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/Alturino/storefront/cart/pkg/store"
	commonErrors "github.com/Alturino/storefront/internal/common/errors"
	"github.com/Alturino/storefront/internal/common/validate"
)

// decodeItems parses a stored cart and rejects documents that do not look
// like a cart.
func decodeItems(data []byte) ([]store.Item, error) {
	if len(data) == 0 {
		return []store.Item{}, nil
	}
	items := []store.Item{}
	if err := json.Unmarshal(data, &items); err != nil {
		return nil, fmt.Errorf("failed decoding cart with error=%w", errors.Join(commonErrors.ErrInvalidDocument, err))
	}
	if err := validate.Get().Var(items, "dive"); err != nil {
		return nil, fmt.Errorf("failed validating cart with error=%w", errors.Join(commonErrors.ErrInvalidDocument, err))
	}
	return items, nil
}

func encodeItems(items []store.Item) ([]byte, error) {
	if items == nil {
		items = []store.Item{}
	}
	data, err := json.Marshal(items)
	if err != nil {
		return nil, fmt.Errorf("failed encoding cart with error=%w", err)
	}
	return data, nil
}
