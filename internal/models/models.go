package models

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Category struct {
	ID   uint   `gorm:"primaryKey;autoIncrement" json:"id"`
	Name string `gorm:"unique;not null"          json:"name"`
}

type Product struct {
	ID          uint     `gorm:"primaryKey;autoIncrement" json:"id"`
	Name        string   `gorm:"not null"                 json:"name"`
	Description string   `gorm:"not null"                 json:"description"`
	Price       float64  `gorm:"not null"                 json:"price"`
	Count       uint     `json:"count"`
	ImageURL    string   `json:"image_url"`
	CategoryID  uint     `gorm:"index"                    json:"category_id"`
	Category    Category `gorm:"foreignKey:CategoryID"    json:"category,omitempty"`
}

type User struct {
	ID           string `gorm:"primaryKey"      json:"id"`
	Username     string `gorm:"unique;not null" json:"username"`
	PasswordHash string `gorm:"not null"        json:"-"`
	Role         string `gorm:"not null"        json:"role"`
}

func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == "" {
		u.ID = uuid.NewString()
	}
	return nil
}

type Role struct {
	ID   uint   `gorm:"primaryKey;autoIncrement" json:"id"`
	Name string `gorm:"unique;not null"          json:"name"`
}

type RefreshToken struct {
	ID        uint   `gorm:"primaryKey"      json:"id"`
	Token     string `gorm:"unique;not null" json:"token"`
	UserID    string `gorm:"index;not null"  json:"user_id"`
	ExpiresAt int64  `gorm:"not null"        json:"expires_at"`
	Revoked   bool   `gorm:"default:false"   json:"revoked"`
}

// CartItem is one (user, product) line. The pair is unique and the quantity
// is strictly positive for every persisted row: mutations that would drive
// it to zero or below delete the row instead.
type CartItem struct {
	ID        uint    `gorm:"primaryKey;autoIncrement"              json:"id"`
	UserID    string  `gorm:"uniqueIndex:idx_user_product;not null" json:"user_id"`
	ProductID uint    `gorm:"uniqueIndex:idx_user_product;not null" json:"product_id"`
	Quantity  int     `gorm:"not null;check:quantity>0"             json:"quantity"`
	Product   Product `gorm:"foreignKey:ProductID"                  json:"product,omitempty"`
}

func (CartItem) TableName() string {
	return "cart_items"
}

const (
	StatusPending        = "Pending"
	StatusApproved       = "Approved"
	StatusReadyForPickup = "ReadyForPickup"
	StatusCompleted      = "Completed"
	StatusCancelled      = "Cancelled"
)

type Order struct {
	ID        uint    `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID    string  `gorm:"index;not null"           json:"user_id"`
	Total     float64 `gorm:"not null"                 json:"total"`
	Status    string  `gorm:"not null"                 json:"status"`
	SessionID string  `json:"session_id"`
	CreatedAt int64   `json:"created_at"`
}

type OrderItem struct {
	ID        uint    `gorm:"primaryKey;autoIncrement" json:"id"`
	OrderID   uint    `gorm:"index;not null"           json:"order_id"`
	UserID    string  `gorm:"not null"                 json:"user_id"`
	ProductID uint    `gorm:"not null"                 json:"product_id"`
	Quantity  int     `gorm:"not null"                 json:"quantity"`
	Price     float64 `gorm:"not null"                 json:"price"`
}
