package gateway

import (
	"context"
	"net/http"
	"net/url"

	"github.com/lshigami/edugress/internal/dto"
)

func (c *Client) ListProducts(ctx context.Context, token, productType string) ([]dto.ProductDTO, error) {
	q := url.Values{}
	if productType != "" {
		q.Set("product_type", productType)
	}
	var out []dto.ProductDTO
	err := c.do(ctx, request{op: "list products", method: http.MethodGet, path: "/main/products/", query: q, token: token, out: &out})
	return out, err
}

func (c *Client) BuyProduct(ctx context.Context, token string, productID int, productType string, discountID *int) (dto.OrderResponse, error) {
	var out dto.OrderResponse
	err := c.do(ctx, request{
		op:     "buy product",
		method: http.MethodPost,
		path:   "/payment/order/create/",
		token:  token,
		body:   dto.BuyProductRequest{ProductID: productID, ProductType: productType, DiscountID: discountID},
		out:    &out,
	})
	return out, err
}
