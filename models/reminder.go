package models

import (
	"time"
)

// OrderReminder represents a scheduled follow-up date for an order's deadline.
// SentAt stays nil until the reminder is explicitly acknowledged as delivered.
type OrderReminder struct {
	ID        uint       `gorm:"primaryKey" json:"id"`
	OrderID   uint       `gorm:"not null;index" json:"order_id"`
	Order     Order      `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE" json:"-"`
	UserID    int64      `gorm:"not null;index:ix_order_reminders_user_remind_on,priority:1" json:"user_id"`
	RemindOn  Date       `gorm:"not null;index:ix_order_reminders_user_remind_on,priority:2" json:"remind_on"`
	SentAt    *time.Time `json:"sent_at"`
	CreatedAt time.Time  `json:"created_at"`
}

// TableName specifies the table name for the OrderReminder model
func (OrderReminder) TableName() string {
	return "order_reminders"
}
