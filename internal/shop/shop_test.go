package shop

import (
	"context"
	"testing"

	"github.com/lshigami/edugress/internal/domain"
	"github.com/lshigami/edugress/internal/dto"
	"github.com/lshigami/edugress/internal/storage"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeGateway struct {
	checkouts [][]dto.CartLineDTO
	resp      dto.CheckoutResponse
}

func (g *fakeGateway) ListStoreProducts(context.Context, string) ([]dto.StoreProductDTO, error) {
	return []dto.StoreProductDTO{{ID: 1, Name: "Pen", Price: decimal.NewFromInt(3), Stock: 5}}, nil
}

func (g *fakeGateway) Checkout(_ context.Context, _ string, items []dto.CartLineDTO, _ string) (dto.CheckoutResponse, error) {
	g.checkouts = append(g.checkouts, items)
	return g.resp, nil
}

func newShop(t *testing.T, coins int64) (*Shop, *fakeGateway, *storage.SessionRepository) {
	t.Helper()
	kv := storage.NewMemoryKV()
	sessions := storage.NewSessionRepository(kv)
	require.NoError(t, sessions.Save(context.Background(), domain.Session{Token: "t", User: domain.User{ID: 1, Coins: decimal.NewFromInt(coins)}}))
	gw := &fakeGateway{resp: dto.CheckoutResponse{PurchaseID: 4}}
	return New(gw, sessions, storage.NewCartStore(kv), zerolog.Nop()), gw, sessions
}

var (
	pen  = dto.StoreProductDTO{ID: 1, Name: "Pen", Price: decimal.NewFromInt(3), Stock: 5}
	book = dto.StoreProductDTO{ID: 2, Name: "Book", Price: decimal.NewFromInt(10)}
)

func TestCartEditing(t *testing.T) {
	ctx := context.Background()
	s, _, _ := newShop(t, 100)

	_, err := s.Add(ctx, pen, 2)
	require.NoError(t, err)
	cart, err := s.Add(ctx, pen, 1)
	require.NoError(t, err)
	require.Len(t, cart.Items, 1)
	assert.Equal(t, 3, cart.Items[0].Amount)

	_, err = s.Add(ctx, pen, 3)
	require.Error(t, err, "over stock")
	_, err = s.Add(ctx, book, 0)
	require.Error(t, err)

	cart, err = s.Add(ctx, book, 1)
	require.NoError(t, err)
	assert.True(t, decimal.NewFromInt(19).Equal(cart.Total()))

	cart, err = s.SetQuantity(ctx, 2, 2)
	require.NoError(t, err)
	assert.True(t, decimal.NewFromInt(29).Equal(cart.Total()))

	cart, err = s.Remove(ctx, 1)
	require.NoError(t, err)
	require.Len(t, cart.Items, 1)
	_, err = s.Remove(ctx, 1)
	require.Error(t, err)

	stored, err := s.Cart(ctx)
	require.NoError(t, err)
	assert.Equal(t, cart.Items, stored.Items)
}

func TestCheckout(t *testing.T) {
	ctx := context.Background()
	s, gw, sessions := newShop(t, 20)

	_, err := s.Checkout(ctx, "home")
	require.ErrorIs(t, err, ErrEmptyCart)

	_, err = s.Add(ctx, pen, 2)
	require.NoError(t, err)
	_, err = s.Checkout(ctx, "home")
	require.NoError(t, err)

	require.Len(t, gw.checkouts, 1)
	assert.Equal(t, []dto.CartLineDTO{{ID: 1, Amount: 2}}, gw.checkouts[0])

	cart, err := s.Cart(ctx)
	require.NoError(t, err)
	assert.True(t, cart.Empty())

	sess, err := sessions.Load(ctx)
	require.NoError(t, err)
	assert.True(t, decimal.NewFromInt(14).Equal(sess.User.Coins))
}

func TestCheckout_UsesBackendBalance(t *testing.T) {
	ctx := context.Background()
	s, gw, sessions := newShop(t, 20)
	gw.resp.Coins = decimal.NewNullDecimal(decimal.NewFromInt(5))

	_, err := s.Add(ctx, pen, 1)
	require.NoError(t, err)
	_, err = s.Checkout(ctx, "")
	require.NoError(t, err)

	sess, err := sessions.Load(ctx)
	require.NoError(t, err)
	assert.True(t, decimal.NewFromInt(5).Equal(sess.User.Coins))
}

func TestCheckout_InsufficientCoins(t *testing.T) {
	ctx := context.Background()
	s, gw, _ := newShop(t, 5)

	_, err := s.Add(ctx, book, 1)
	require.NoError(t, err)
	_, err = s.Checkout(ctx, "home")
	require.ErrorIs(t, err, ErrInsufficientCoins)
	assert.Empty(t, gw.checkouts)

	cart, err := s.Cart(ctx)
	require.NoError(t, err)
	assert.False(t, cart.Empty())
}
