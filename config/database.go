package config

import (
	"fmt"
	"log"
	"os"
	"path/filepath"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/rosa-lindqvist/jeweller-journal-api/models"
)

// Connect constructs the database handle. When DATABASE_URL is set it
// connects to PostgreSQL; otherwise it opens a sqlite database file under the
// data directory with foreign-key enforcement turned on. The handle is meant
// to be passed explicitly to whatever needs it, not stashed in a global.
func Connect(cfg *Config) (*gorm.DB, error) {
	if cfg.DatabaseURL != "" {
		db, err := gorm.Open(postgres.Open(cfg.DatabaseURL), &gorm.Config{})
		if err != nil {
			return nil, fmt.Errorf("failed to connect to database: %w", err)
		}
		log.Println("Database connection established (postgres)")
		return db, nil
	}

	if err := os.MkdirAll(cfg.DataDir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}
	dsn := fmt.Sprintf("file:%s?_fk=1", filepath.Join(cfg.DataDir, "app.db"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("failed to open sqlite database: %w", err)
	}
	log.Println("Database connection established (sqlite)")
	return db, nil
}

// Migrate creates or updates the schema for all entities. Foreign-key
// constraints carry the cascade rules: order deletion cascades reminders,
// entry deletion cascades attachments, order deletion nulls the journal link.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.Order{},
		&models.OrderReminder{},
		&models.JournalEntry{},
		&models.Attachment{},
	)
}
