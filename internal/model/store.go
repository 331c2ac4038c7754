package model

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type StoreProduct struct {
	ID          uint            `gorm:"primarykey" json:"id"`
	Name        string          `json:"name" gorm:"not null"`
	Description string          `json:"description" gorm:"type:text"`
	Image       string          `json:"image"`
	Price       decimal.Decimal `json:"price" gorm:"type:decimal(12,2);not null"`
	Stock       int             `json:"stock" gorm:"not null;default:0"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
	DeletedAt   gorm.DeletedAt  `gorm:"index" json:"-"`
}

// CartItem is the server-side copy of a user's cart line.
type CartItem struct {
	ID        uint         `gorm:"primarykey" json:"id"`
	UserID    uint         `json:"user_id" gorm:"not null;uniqueIndex:idx_cart_user_product"`
	ProductID uint         `json:"product_id" gorm:"not null;uniqueIndex:idx_cart_user_product"`
	Product   StoreProduct `json:"product" gorm:"foreignKey:ProductID"`
	Amount    int          `json:"amount" gorm:"not null"`
	CreatedAt time.Time    `json:"created_at"`
	UpdatedAt time.Time    `json:"updated_at"`
}

type Purchase struct {
	ID          uint            `gorm:"primarykey" json:"id"`
	UserID      uint            `json:"user_id" gorm:"not null;index"`
	UserAddress string          `json:"user_address"`
	Total       decimal.Decimal `json:"total" gorm:"type:decimal(12,2);not null"`
	Items       []PurchaseItem  `json:"items" gorm:"foreignKey:PurchaseID;constraint:OnDelete:CASCADE;"`
	CreatedAt   time.Time       `json:"created_at"`
}

// PurchaseItem freezes the price paid at checkout.
type PurchaseItem struct {
	ID         uint            `gorm:"primarykey" json:"id"`
	PurchaseID uint            `json:"purchase_id" gorm:"not null;index"`
	ProductID  uint            `json:"product_id" gorm:"not null"`
	Product    StoreProduct    `json:"product" gorm:"foreignKey:ProductID"`
	Amount     int             `json:"amount" gorm:"not null"`
	Price      decimal.Decimal `json:"price" gorm:"type:decimal(12,2);not null"`
}
