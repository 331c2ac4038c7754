package model

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

const (
	RoleStudent = 0
	RoleCurator = 1
	RoleAdmin   = 2
)

type User struct {
	ID           uint            `gorm:"primarykey" json:"id"`
	Username     string          `json:"username" gorm:"not null;uniqueIndex"`
	PasswordHash string          `json:"-" gorm:"not null"`
	FirstName    string          `json:"first_name"`
	LastName     string          `json:"last_name"`
	Phone        string          `json:"phone,omitempty"`
	Role         int             `json:"role" gorm:"not null;default:0"`
	Coins        decimal.Decimal `json:"coins" gorm:"type:decimal(12,2);not null;default:0"`
	IsOffline    bool            `json:"is_offline"`
	CreatedAt    time.Time       `json:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at"`
	DeletedAt    gorm.DeletedAt  `gorm:"index" json:"-"`
}

func (u User) CanGrade() bool {
	return u.Role == RoleCurator || u.Role == RoleAdmin
}
