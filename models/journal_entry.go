package models

import (
	"time"

	"gorm.io/gorm"

	"github.com/rosa-lindqvist/jeweller-journal-api/utils"
)

// JournalEntry represents a logged work session, optionally linked to an order.
// Tags are persisted as a single comma-joined text column; the JSON shape is
// the decoded list. Deleting the linked order clears OrderID instead of
// deleting the entry.
type JournalEntry struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    int64     `gorm:"not null;index" json:"user_id"`
	Title     string    `gorm:"size:200;not null" json:"title"`
	EntryDate Date      `gorm:"not null" json:"entry_date"`
	Materials *string   `gorm:"type:text" json:"materials"`
	Tools     *string   `gorm:"type:text" json:"tools"`
	Settings  *string   `gorm:"type:text" json:"settings"`
	Notes     *string   `gorm:"type:text" json:"notes"`
	Tags      string    `gorm:"type:text" json:"-"`
	TagList   []string  `gorm:"-" json:"tags"`
	OrderID   *uint     `gorm:"index" json:"order_id"`
	Order     *Order    `gorm:"foreignKey:OrderID;constraint:OnDelete:SET NULL" json:"-"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName specifies the table name for the JournalEntry model
func (JournalEntry) TableName() string {
	return "journal_entries"
}

// SyncTagList decodes the stored tags column into TagList
func (e *JournalEntry) SyncTagList() {
	e.TagList = utils.SplitTags(e.Tags)
}

// AfterFind keeps the JSON tag list in step with the stored column
func (e *JournalEntry) AfterFind(_ *gorm.DB) error {
	e.SyncTagList()
	return nil
}

// AfterSave covers entries serialized straight after a create or update,
// which never pass through AfterFind
func (e *JournalEntry) AfterSave(_ *gorm.DB) error {
	e.SyncTagList()
	return nil
}
