package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/lshigami/edugress/internal/domain"
)

const cartKey = "cart"

type CartStore struct {
	kv KV
}

func NewCartStore(kv KV) *CartStore {
	return &CartStore{kv: kv}
}

// Load returns the stored cart, or an empty one.
func (s *CartStore) Load(ctx context.Context) (domain.Cart, error) {
	raw, err := s.kv.Get(ctx, cartKey)
	if errors.Is(err, ErrNotFound) {
		return domain.Cart{}, nil
	}
	if err != nil {
		return domain.Cart{}, err
	}
	var c domain.Cart
	if err := json.Unmarshal([]byte(raw), &c); err != nil {
		return domain.Cart{}, fmt.Errorf("decode cart: %w", err)
	}
	return c, nil
}

func (s *CartStore) Save(ctx context.Context, c domain.Cart) error {
	if c.Empty() {
		return s.Clear(ctx)
	}
	raw, err := json.Marshal(c)
	if err != nil {
		return fmt.Errorf("encode cart: %w", err)
	}
	return s.kv.Set(ctx, cartKey, string(raw))
}

func (s *CartStore) Clear(ctx context.Context) error {
	return s.kv.Delete(ctx, cartKey)
}
