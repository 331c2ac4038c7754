package repository

import (
	"github.com/lshigami/edugress/internal/model"
	"gorm.io/gorm"
)

type StoreRepository interface {
	CreateProduct(p *model.StoreProduct) error
	UpdateProduct(p *model.StoreProduct) error
	ListProducts() ([]model.StoreProduct, error)
	FindProductsByIDs(ids []uint) ([]model.StoreProduct, error)
	CountProducts() (int64, error)

	CartOf(userID uint) ([]model.CartItem, error)
	// ReplaceCart swaps the user's cart for items in one transaction.
	ReplaceCart(userID uint, items []model.CartItem) error
	ClearCart(userID uint) error

	CreatePurchase(p *model.Purchase) error
	PurchasesOf(userID uint) ([]model.Purchase, error)

	// WithTx returns a repository bound to tx.
	WithTx(tx *gorm.DB) StoreRepository
}

type storeRepository struct {
	db *gorm.DB
}

func NewStoreRepository(db *gorm.DB) StoreRepository {
	return &storeRepository{db: db}
}

func (r *storeRepository) WithTx(tx *gorm.DB) StoreRepository {
	return &storeRepository{db: tx}
}

func (r *storeRepository) CreateProduct(p *model.StoreProduct) error {
	return r.db.Create(p).Error
}

func (r *storeRepository) ListProducts() ([]model.StoreProduct, error) {
	var products []model.StoreProduct
	err := r.db.Order("id ASC").Find(&products).Error
	return products, err
}

func (r *storeRepository) CountProducts() (int64, error) {
	var n int64
	err := r.db.Model(&model.StoreProduct{}).Count(&n).Error
	return n, err
}

func (r *storeRepository) FindProductsByIDs(ids []uint) ([]model.StoreProduct, error) {
	var products []model.StoreProduct
	err := r.db.Where("id IN ?", ids).Find(&products).Error
	return products, err
}

func (r *storeRepository) UpdateProduct(p *model.StoreProduct) error {
	return r.db.Save(p).Error
}

func (r *storeRepository) CartOf(userID uint) ([]model.CartItem, error) {
	var items []model.CartItem
	err := r.db.Preload("Product").Where("user_id = ?", userID).Order("id ASC").Find(&items).Error
	return items, err
}

func (r *storeRepository) ReplaceCart(userID uint, items []model.CartItem) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("user_id = ?", userID).Delete(&model.CartItem{}).Error; err != nil {
			return err
		}
		if len(items) == 0 {
			return nil
		}
		return tx.Omit("Product").Create(&items).Error
	})
}

func (r *storeRepository) ClearCart(userID uint) error {
	return r.db.Where("user_id = ?", userID).Delete(&model.CartItem{}).Error
}

func (r *storeRepository) CreatePurchase(p *model.Purchase) error {
	return r.db.Omit("Items.Product").Create(p).Error
}

func (r *storeRepository) PurchasesOf(userID uint) ([]model.Purchase, error) {
	var purchases []model.Purchase
	err := r.db.Preload("Items.Product").Where("user_id = ?", userID).Order("id DESC").Find(&purchases).Error
	return purchases, err
}
