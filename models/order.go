package models

import (
	"time"
)

// Order represents a client commission tracked by deadline, status and priority
type Order struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	UserID      int64     `gorm:"not null;index;index:ix_orders_user_order_number,priority:1" json:"user_id"` // opaque caller-supplied identity, no users table
	Client      string    `gorm:"size:200;not null" json:"client"`
	OrderNumber string    `gorm:"size:64;not null;index:ix_orders_user_order_number,priority:2" json:"order_number"`
	Status      string    `gorm:"size:32;not null" json:"status"`
	Priority    string    `gorm:"size:16;not null" json:"priority"`
	Deadline    Date      `gorm:"not null" json:"deadline"`
	Notes       *string   `gorm:"type:text" json:"notes"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// TableName specifies the table name for the Order model
func (Order) TableName() string {
	return "orders"
}
