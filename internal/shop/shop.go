// Package shop is the coin store flow: a cart kept on the device and a
// checkout that debits the user's coin balance.
package shop

import (
	"context"
	"errors"
	"fmt"

	"github.com/lshigami/edugress/internal/domain"
	"github.com/lshigami/edugress/internal/dto"
	"github.com/lshigami/edugress/internal/storage"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

var (
	ErrEmptyCart         = errors.New("cart is empty")
	ErrInsufficientCoins = errors.New("not enough coins for this purchase")
)

type Gateway interface {
	ListStoreProducts(ctx context.Context, token string) ([]dto.StoreProductDTO, error)
	Checkout(ctx context.Context, token string, items []dto.CartLineDTO, address string) (dto.CheckoutResponse, error)
}

type Shop struct {
	gw       Gateway
	sessions *storage.SessionRepository
	carts    *storage.CartStore
	log      zerolog.Logger
}

func New(gw Gateway, sessions *storage.SessionRepository, carts *storage.CartStore, log zerolog.Logger) *Shop {
	return &Shop{gw: gw, sessions: sessions, carts: carts, log: log.With().Str("component", "shop").Logger()}
}

func (s *Shop) Products(ctx context.Context) ([]dto.StoreProductDTO, error) {
	sess, err := s.sessions.Load(ctx)
	if err != nil {
		return nil, err
	}
	return s.gw.ListStoreProducts(ctx, sess.Token)
}

func (s *Shop) Cart(ctx context.Context) (domain.Cart, error) {
	return s.carts.Load(ctx)
}

// Add puts amount more of p in the cart.
func (s *Shop) Add(ctx context.Context, p dto.StoreProductDTO, amount int) (domain.Cart, error) {
	if amount <= 0 {
		return domain.Cart{}, fmt.Errorf("amount must be positive, got %d", amount)
	}
	cart, err := s.carts.Load(ctx)
	if err != nil {
		return domain.Cart{}, err
	}
	found := false
	for i := range cart.Items {
		if cart.Items[i].ProductID == p.ID {
			cart.Items[i].Amount += amount
			cart.Items[i].Price = p.Price
			found = true
			break
		}
	}
	if !found {
		cart.Items = append(cart.Items, domain.CartItem{ProductID: p.ID, Name: p.Name, Price: p.Price, Amount: amount})
	}
	if p.Stock > 0 {
		for _, it := range cart.Items {
			if it.ProductID == p.ID && it.Amount > p.Stock {
				return domain.Cart{}, fmt.Errorf("only %d of %s in stock", p.Stock, p.Name)
			}
		}
	}
	return cart, s.carts.Save(ctx, cart)
}

// SetQuantity changes a line's amount; zero removes it.
func (s *Shop) SetQuantity(ctx context.Context, productID, amount int) (domain.Cart, error) {
	if amount < 0 {
		return domain.Cart{}, fmt.Errorf("amount must not be negative, got %d", amount)
	}
	cart, err := s.carts.Load(ctx)
	if err != nil {
		return domain.Cart{}, err
	}
	out := cart.Items[:0]
	found := false
	for _, it := range cart.Items {
		if it.ProductID == productID {
			found = true
			if amount == 0 {
				continue
			}
			it.Amount = amount
		}
		out = append(out, it)
	}
	if !found {
		return domain.Cart{}, fmt.Errorf("product %d is not in the cart", productID)
	}
	cart.Items = out
	return cart, s.carts.Save(ctx, cart)
}

func (s *Shop) Remove(ctx context.Context, productID int) (domain.Cart, error) {
	return s.SetQuantity(ctx, productID, 0)
}

// Checkout buys the whole cart. The balance check is local and advisory; the
// backend decides. On success the cart is cleared and the stored balance
// updated.
func (s *Shop) Checkout(ctx context.Context, address string) (dto.CheckoutResponse, error) {
	sess, err := s.sessions.Load(ctx)
	if err != nil {
		return dto.CheckoutResponse{}, err
	}
	cart, err := s.carts.Load(ctx)
	if err != nil {
		return dto.CheckoutResponse{}, err
	}
	if cart.Empty() {
		return dto.CheckoutResponse{}, ErrEmptyCart
	}
	total := cart.Total()
	if total.GreaterThan(sess.User.Coins) {
		return dto.CheckoutResponse{}, fmt.Errorf("%w: need %s, have %s", ErrInsufficientCoins, total, sess.User.Coins)
	}

	lines := make([]dto.CartLineDTO, len(cart.Items))
	for i, it := range cart.Items {
		lines[i] = dto.CartLineDTO{ID: it.ProductID, Amount: it.Amount}
	}
	resp, err := s.gw.Checkout(ctx, sess.Token, lines, address)
	if err != nil {
		s.log.Error().Err(err).Msg("checkout failed")
		return dto.CheckoutResponse{}, err
	}

	if err := s.carts.Clear(ctx); err != nil {
		s.log.Warn().Err(err).Msg("could not clear cart after checkout")
	}
	coins := sess.User.Coins.Sub(total)
	if resp.Coins.Valid {
		coins = resp.Coins.Decimal
	}
	if coins.IsNegative() {
		coins = decimal.Zero
	}
	if err := s.sessions.UpdateCoins(ctx, coins); err != nil {
		s.log.Warn().Err(err).Msg("could not update stored coin balance")
	}
	s.log.Info().Int("purchase_id", resp.PurchaseID).Str("total", total.String()).Msg("checkout complete")
	return resp, nil
}
