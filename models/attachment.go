package models

import (
	"time"
)

// Attachment represents a file (photo or document) associated with a journal
// entry. StoredPath is an opaque handle into the storage backend, relative to
// the storage root so the root stays relocatable.
type Attachment struct {
	ID             uint         `gorm:"primaryKey" json:"id"`
	JournalEntryID uint         `gorm:"not null;index" json:"journal_entry_id"`
	JournalEntry   JournalEntry `gorm:"foreignKey:JournalEntryID;constraint:OnDelete:CASCADE" json:"-"`
	UserID         int64        `gorm:"not null;index" json:"user_id"`
	Kind           string       `gorm:"size:16;not null" json:"kind"`
	Filename       string       `gorm:"size:255;not null" json:"filename"`
	ContentType    string       `gorm:"size:100" json:"content_type"`
	Size           int64        `gorm:"not null" json:"size"`
	StoredPath     string       `gorm:"size:300;not null" json:"stored_path"`
	CreatedAt      time.Time    `json:"created_at"`
}

// TableName specifies the table name for the Attachment model
func (Attachment) TableName() string {
	return "attachments"
}
