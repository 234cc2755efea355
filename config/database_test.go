package config

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestConnectSqliteAndMigrate(t *testing.T) {
	cfg := &Config{DataDir: t.TempDir()}

	db, err := Connect(cfg)
	assert.NoError(t, err)
	assert.NoError(t, Migrate(db))

	// the database file lives under the data directory
	assert.FileExists(t, filepath.Join(cfg.DataDir, "app.db"))

	for _, table := range []string{"orders", "order_reminders", "journal_entries", "attachments"} {
		assert.True(t, db.Migrator().HasTable(table), "expected table %s", table)
	}

	// foreign-key enforcement must be on for the cascade rules to hold
	var fk int
	assert.NoError(t, db.Raw("PRAGMA foreign_keys").Scan(&fk).Error)
	assert.Equal(t, 1, fk)
}
