package service

import (
	"fmt"

	"github.com/lshigami/edugress/internal/dto"
	"github.com/lshigami/edugress/internal/model"
	"github.com/lshigami/edugress/internal/repository"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type StoreService interface {
	CreateProduct(req dto.CreateStoreProductRequest) (*dto.StoreProductDTO, error)
	ListProducts() ([]dto.StoreProductDTO, error)
	GetCart(user *model.User) (*dto.CartDTO, error)
	UpdateCart(user *model.User, lines []dto.CartLineDTO) (*dto.CartDTO, error)
	Checkout(user *model.User, req dto.CheckoutRequest) (*dto.CheckoutResponse, error)
	ListPurchases(user *model.User) ([]dto.PurchaseDTO, error)
}

type storeService struct {
	storeRepo repository.StoreRepository
	userRepo  repository.UserRepository
	db        *gorm.DB
}

func NewStoreService(storeRepo repository.StoreRepository, userRepo repository.UserRepository, db *gorm.DB) StoreService {
	return &storeService{storeRepo: storeRepo, userRepo: userRepo, db: db}
}

func (s *storeService) CreateProduct(req dto.CreateStoreProductRequest) (*dto.StoreProductDTO, error) {
	if req.Price.IsNegative() {
		return nil, invalid("price cannot be negative")
	}
	p := model.StoreProduct{
		Name:        req.Name,
		Description: req.Description,
		Image:       req.Image,
		Price:       req.Price,
		Stock:       req.Stock,
	}
	if err := s.storeRepo.CreateProduct(&p); err != nil {
		return nil, fmt.Errorf("create product: %w", err)
	}
	out := toStoreProductDTO(p)
	return &out, nil
}

func (s *storeService) ListProducts() ([]dto.StoreProductDTO, error) {
	products, err := s.storeRepo.ListProducts()
	if err != nil {
		return nil, err
	}
	out := make([]dto.StoreProductDTO, 0, len(products))
	for _, p := range products {
		out = append(out, toStoreProductDTO(p))
	}
	return out, nil
}

func (s *storeService) GetCart(user *model.User) (*dto.CartDTO, error) {
	items, err := s.storeRepo.CartOf(user.ID)
	if err != nil {
		return nil, err
	}
	cart := &dto.CartDTO{Items: make([]dto.CartItemDTO, 0, len(items)), Total: decimal.Zero}
	for _, it := range items {
		cart.Items = append(cart.Items, dto.CartItemDTO{Product: toStoreProductDTO(it.Product), Amount: it.Amount})
		cart.Total = cart.Total.Add(it.Product.Price.Mul(decimal.NewFromInt(int64(it.Amount))))
	}
	return cart, nil
}

func (s *storeService) UpdateCart(user *model.User, lines []dto.CartLineDTO) (*dto.CartDTO, error) {
	lines, err := mergeLines(lines)
	if err != nil {
		return nil, err
	}
	products, err := s.productsFor(s.storeRepo, lines)
	if err != nil {
		return nil, err
	}
	items := make([]model.CartItem, 0, len(lines))
	for _, l := range lines {
		p := products[uint(l.ID)]
		if l.Amount > p.Stock {
			return nil, invalid("only %d of %q left", p.Stock, p.Name)
		}
		items = append(items, model.CartItem{UserID: user.ID, ProductID: p.ID, Amount: l.Amount})
	}
	if err := s.storeRepo.ReplaceCart(user.ID, items); err != nil {
		return nil, fmt.Errorf("update cart: %w", err)
	}
	return s.GetCart(user)
}

// Checkout debits the user's coins and the product stock and records the
// purchase, all or nothing.
func (s *storeService) Checkout(user *model.User, req dto.CheckoutRequest) (*dto.CheckoutResponse, error) {
	lines, err := mergeLines(req.Items)
	if err != nil {
		return nil, err
	}
	if len(lines) == 0 {
		return nil, invalid("the cart is empty")
	}

	var resp dto.CheckoutResponse
	err = s.db.Transaction(func(tx *gorm.DB) error {
		storeRepo := s.storeRepo.WithTx(tx)
		userRepo := s.userRepo.WithTx(tx)

		buyer, err := userRepo.FindByID(user.ID)
		if err != nil {
			return err
		}
		products, err := s.productsFor(storeRepo, lines)
		if err != nil {
			return err
		}

		purchase := model.Purchase{UserID: buyer.ID, UserAddress: req.UserAddress, Total: decimal.Zero}
		for _, l := range lines {
			p := products[uint(l.ID)]
			if l.Amount > p.Stock {
				return invalid("only %d of %q left", p.Stock, p.Name)
			}
			p.Stock -= l.Amount
			if err := storeRepo.UpdateProduct(p); err != nil {
				return err
			}
			purchase.Items = append(purchase.Items, model.PurchaseItem{ProductID: p.ID, Amount: l.Amount, Price: p.Price})
			purchase.Total = purchase.Total.Add(p.Price.Mul(decimal.NewFromInt(int64(l.Amount))))
		}
		if purchase.Total.GreaterThan(buyer.Coins) {
			return invalid("not enough coins: need %s, have %s", purchase.Total.String(), buyer.Coins.String())
		}
		buyer.Coins = buyer.Coins.Sub(purchase.Total)
		if err := userRepo.Update(buyer); err != nil {
			return err
		}
		if err := storeRepo.CreatePurchase(&purchase); err != nil {
			return err
		}
		if err := storeRepo.ClearCart(buyer.ID); err != nil {
			return err
		}
		resp = dto.CheckoutResponse{
			PurchaseID: int(purchase.ID),
			Total:      purchase.Total,
			Coins:      decimal.NewNullDecimal(buyer.Coins),
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	log.Info().Uint("userID", user.ID).Int("purchaseID", resp.PurchaseID).Str("total", resp.Total.String()).Msg("Checkout completed")
	return &resp, nil
}

func (s *storeService) ListPurchases(user *model.User) ([]dto.PurchaseDTO, error) {
	purchases, err := s.storeRepo.PurchasesOf(user.ID)
	if err != nil {
		return nil, err
	}
	out := make([]dto.PurchaseDTO, 0, len(purchases))
	for _, p := range purchases {
		d := dto.PurchaseDTO{
			ID:          int(p.ID),
			Total:       p.Total,
			UserAddress: p.UserAddress,
			CreatedAt:   p.CreatedAt.UTC().Format("2006-01-02T15:04:05Z"),
			Items:       make([]dto.CartItemDTO, 0, len(p.Items)),
		}
		for _, it := range p.Items {
			product := toStoreProductDTO(it.Product)
			product.Price = it.Price
			d.Items = append(d.Items, dto.CartItemDTO{Product: product, Amount: it.Amount})
		}
		out = append(out, d)
	}
	return out, nil
}

// productsFor loads every product named in lines, failing on unknown ids.
func (s *storeService) productsFor(repo repository.StoreRepository, lines []dto.CartLineDTO) (map[uint]*model.StoreProduct, error) {
	if len(lines) == 0 {
		return map[uint]*model.StoreProduct{}, nil
	}
	ids := make([]uint, len(lines))
	for i, l := range lines {
		ids[i] = uint(l.ID)
	}
	found, err := repo.FindProductsByIDs(ids)
	if err != nil {
		return nil, err
	}
	byID := make(map[uint]*model.StoreProduct, len(found))
	for i := range found {
		byID[found[i].ID] = &found[i]
	}
	for _, id := range ids {
		if _, ok := byID[id]; !ok {
			return nil, fmt.Errorf("%w: product %d", ErrNotFound, id)
		}
	}
	return byID, nil
}

// mergeLines sums repeated product ids, keeping first-seen order.
func mergeLines(lines []dto.CartLineDTO) ([]dto.CartLineDTO, error) {
	index := make(map[int]int, len(lines))
	var out []dto.CartLineDTO
	for _, l := range lines {
		if l.ID <= 0 || l.Amount <= 0 {
			return nil, invalid("cart lines need a product id and a positive amount")
		}
		if i, ok := index[l.ID]; ok {
			out[i].Amount += l.Amount
			continue
		}
		index[l.ID] = len(out)
		out = append(out, l)
	}
	return out, nil
}
