package models

import (
	"time"
)

type Role string

const (
	RoleAdmin  Role = "ADMIN"
	RoleHelper Role = "HELPER"
)

// ParseRole maps the wire value onto the closed role set. An empty
// value defaults to HELPER, anything else is rejected.
func ParseRole(s string) (Role, bool) {
	switch Role(s) {
	case "":
		return RoleHelper, true
	case RoleAdmin:
		return RoleAdmin, true
	case RoleHelper:
		return RoleHelper, true
	}
	return "", false
}

type OrderStatus string

const (
	StatusPending   OrderStatus = "PENDING"
	StatusDone      OrderStatus = "DONE"
	StatusCancelled OrderStatus = "CANCELLED"
)

var validNext = map[OrderStatus]map[OrderStatus]bool{
	StatusPending:   {StatusDone: true, StatusCancelled: true},
	StatusDone:      {},
	StatusCancelled: {},
}

func CanTransition(from, to OrderStatus) bool {
	return validNext[from][to]
}

// Terminal reports whether the status permits no further mutation.
func (s OrderStatus) Terminal() bool {
	return s == StatusDone || s == StatusCancelled
}

type User struct {
	ID           uint   `gorm:"primaryKey;autoIncrement" json:"id"`
	Name         string `gorm:"not null"                 json:"name"`
	Email        string `gorm:"unique;not null"          json:"email"`
	PasswordHash string `gorm:"not null"                 json:"-"`
	Phone        string `json:"phone,omitempty"`
	Address      string `json:"address,omitempty"`
	Role         Role   `gorm:"not null"                 json:"role"`
}

type Product struct {
	ID          uint    `gorm:"primaryKey;autoIncrement" json:"id"`
	Name        string  `gorm:"unique;not null"          json:"name"`
	Description string  `gorm:"not null"                 json:"description"`
	Price       float64 `gorm:"not null"                 json:"price"`
	Stock       int     `gorm:"not null;check:stock>=0"  json:"stock"`
}

type Order struct {
	ID              uint        `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID          uint        `gorm:"index;not null"           json:"user_id"`
	CustomerName    string      `gorm:"not null"                 json:"customer_name"`
	CustomerPhone   string      `json:"customer_phone,omitempty"`
	CustomerAddress string      `json:"customer_address,omitempty"`
	TotalPrice      float64     `gorm:"not null"                 json:"total_price"`
	Status          OrderStatus `gorm:"not null"                 json:"status"`
	ExpiredAt       time.Time   `gorm:"not null"                 json:"expired_at"`
	Items           []OrderItem `gorm:"foreignKey:OrderID"       json:"items,omitempty"`
}

// OrderItem.Price is the product's unit price at the moment the item was
// created, not a live reference to Product.Price.
type OrderItem struct {
	ID        uint    `gorm:"primaryKey;autoIncrement"    json:"id"`
	OrderID   uint    `gorm:"index;not null"              json:"order_id"`
	ProductID uint    `gorm:"not null"                    json:"product_id"`
	Quantity  uint    `gorm:"default:1;check:quantity>0"  json:"quantity"`
	Price     float64 `gorm:"not null"                    json:"price"`
	Product   Product `gorm:"foreignKey:ProductID"        json:"-"`
}

// Principal is the authenticated caller attached to a request after token
// verification. Services take it as an explicit argument.
type Principal struct {
	UserID  uint
	Name    string
	Email   string
	Phone   string
	Address string
	Role    Role
}
