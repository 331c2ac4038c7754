package gateway

import (
	"context"
	"net/http"

	"github.com/lshigami/edugress/internal/dto"
)

func (c *Client) ListStoreProducts(ctx context.Context, token string) ([]dto.StoreProductDTO, error) {
	var out []dto.StoreProductDTO
	err := c.do(ctx, request{op: "list store products", method: http.MethodGet, path: "/store/", token: token, out: &out})
	return out, err
}

func (c *Client) GetCart(ctx context.Context, token string) (dto.CartDTO, error) {
	var out dto.CartDTO
	err := c.do(ctx, request{op: "get cart", method: http.MethodGet, path: "/store/cart/", token: token, out: &out})
	return out, err
}

func (c *Client) UpdateCart(ctx context.Context, token string, items []dto.CartLineDTO) (dto.CartDTO, error) {
	if items == nil {
		items = []dto.CartLineDTO{}
	}
	var out dto.CartDTO
	err := c.do(ctx, request{
		op:     "update cart",
		method: http.MethodPut,
		path:   "/store/cart/",
		token:  token,
		body:   dto.UpdateCartRequest{Items: items},
		out:    &out,
	})
	return out, err
}

func (c *Client) Checkout(ctx context.Context, token string, items []dto.CartLineDTO, address string) (dto.CheckoutResponse, error) {
	var out dto.CheckoutResponse
	err := c.do(ctx, request{
		op:     "checkout",
		method: http.MethodPost,
		path:   "/store/checkout/",
		token:  token,
		body:   dto.CheckoutRequest{Items: items, UserAddress: address},
		out:    &out,
	})
	return out, err
}

func (c *Client) ListPurchases(ctx context.Context, token string) ([]dto.PurchaseDTO, error) {
	var out []dto.PurchaseDTO
	err := c.do(ctx, request{op: "list purchases", method: http.MethodGet, path: "/store/purchases/", token: token, out: &out})
	return out, err
}
