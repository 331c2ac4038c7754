package user

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/lshigami/edugress/internal/controller"
	"github.com/lshigami/edugress/internal/dto"
	"github.com/lshigami/edugress/internal/service"
)

type StoreController struct {
	storeService service.StoreService
}

func NewStoreController(storeService service.StoreService) *StoreController {
	return &StoreController{storeService: storeService}
}

// ListProducts godoc
// @Summary Store products
// @Tags Store
// @Produce json
// @Security TokenAuth
// @Success 200 {array} dto.StoreProductDTO
// @Router /store/ [get]
func (c *StoreController) ListProducts(ctx *gin.Context) {
	products, err := c.storeService.ListProducts()
	if err != nil {
		controller.Fail(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, products)
}

// GetCart godoc
// @Summary Server-side cart
// @Tags Store
// @Produce json
// @Security TokenAuth
// @Success 200 {object} dto.CartDTO
// @Router /store/cart/ [get]
func (c *StoreController) GetCart(ctx *gin.Context) {
	cart, err := c.storeService.GetCart(controller.CurrentUser(ctx))
	if err != nil {
		controller.Fail(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, cart)
}

// UpdateCart godoc
// @Summary Replace the cart
// @Tags Store
// @Accept json
// @Produce json
// @Security TokenAuth
// @Param body body dto.UpdateCartRequest true "Cart lines"
// @Success 200 {object} dto.CartDTO
// @Failure 400 {object} dto.ErrorResponse
// @Router /store/cart/ [put]
func (c *StoreController) UpdateCart(ctx *gin.Context) {
	var req dto.UpdateCartRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		controller.BindError(ctx, err)
		return
	}
	cart, err := c.storeService.UpdateCart(controller.CurrentUser(ctx), req.Items)
	if err != nil {
		controller.Fail(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, cart)
}

// Checkout godoc
// @Summary Buy items with coins
// @Tags Store
// @Accept json
// @Produce json
// @Security TokenAuth
// @Param body body dto.CheckoutRequest true "Items and delivery address"
// @Success 201 {object} dto.CheckoutResponse
// @Failure 400 {object} dto.ErrorResponse "Not enough coins or stock"
// @Router /store/checkout/ [post]
func (c *StoreController) Checkout(ctx *gin.Context) {
	var req dto.CheckoutRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		controller.BindError(ctx, err)
		return
	}
	resp, err := c.storeService.Checkout(controller.CurrentUser(ctx), req)
	if err != nil {
		controller.Fail(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, resp)
}

// ListPurchases godoc
// @Summary Past purchases
// @Tags Store
// @Produce json
// @Security TokenAuth
// @Success 200 {array} dto.PurchaseDTO
// @Router /store/purchases/ [get]
func (c *StoreController) ListPurchases(ctx *gin.Context) {
	purchases, err := c.storeService.ListPurchases(controller.CurrentUser(ctx))
	if err != nil {
		controller.Fail(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, purchases)
}
