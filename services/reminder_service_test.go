package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/rosa-lindqvist/jeweller-journal-api/models"
)

func setupServiceTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open("file::memory:?_fk=1"), &gorm.Config{})
	if err != nil {
		t.Fatalf("Failed to connect to test database: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("Failed to get sql.DB: %v", err)
	}
	// one connection so the in-memory database is shared
	sqlDB.SetMaxOpenConns(1)

	if err := db.AutoMigrate(&models.Order{}, &models.OrderReminder{}); err != nil {
		t.Fatalf("Failed to migrate test database: %v", err)
	}
	return db
}

func dateStrings(dates []models.Date) []string {
	out := make([]string, len(dates))
	for i, d := range dates {
		out[i] = d.String()
	}
	return out
}

func TestComputeReminderDates(t *testing.T) {
	deadline := models.NewDate(2024, time.June, 30)

	tests := []struct {
		name     string
		offsets  []int
		dates    []models.Date
		expected []string
	}{
		{
			name:     "offsets subtract from deadline, duplicates collapse",
			offsets:  []int{7, 3, 3},
			expected: []string{"2024-06-23", "2024-06-27"},
		},
		{
			name:     "negative offsets dropped",
			offsets:  []int{-1, 0, 7},
			expected: []string{"2024-06-23", "2024-06-30"},
		},
		{
			name:    "explicit dates win over offsets",
			offsets: []int{7},
			dates: []models.Date{
				models.NewDate(2024, time.June, 1),
				models.NewDate(2024, time.May, 20),
				models.NewDate(2024, time.June, 1),
			},
			expected: []string{"2024-05-20", "2024-06-01"},
		},
		{
			name:     "neither input yields empty set",
			expected: []string{},
		},
		{
			name:     "result sorted ascending",
			offsets:  []int{1, 30, 14},
			expected: []string{"2024-05-31", "2024-06-16", "2024-06-29"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ComputeReminderDates(deadline, tt.offsets, tt.dates)
			assert.Equal(t, tt.expected, dateStrings(got))
		})
	}
}

func TestReplaceRemindersIsTotalReplace(t *testing.T) {
	db := setupServiceTestDB(t)

	order := models.Order{
		UserID:      1,
		Client:      "Anna",
		OrderNumber: "A-100",
		Status:      "open",
		Priority:    "high",
		Deadline:    models.NewDate(2024, time.June, 30),
	}
	assert.NoError(t, db.Create(&order).Error)

	first, err := ReplaceReminders(db, &order, []int{7, 3, 3}, nil)
	assert.NoError(t, err)
	assert.Len(t, first, 2)
	assert.Equal(t, "2024-06-23", first[0].RemindOn.String())
	assert.Equal(t, "2024-06-27", first[1].RemindOn.String())

	// second call with different input leaves only the second set
	second, err := ReplaceReminders(db, &order, []int{1}, nil)
	assert.NoError(t, err)
	assert.Len(t, second, 1)
	assert.Equal(t, "2024-06-29", second[0].RemindOn.String())

	var count int64
	db.Model(&models.OrderReminder{}).Where("order_id = ?", order.ID).Count(&count)
	assert.EqualValues(t, 1, count)
}

func TestReplaceRemindersEmptyInputClears(t *testing.T) {
	db := setupServiceTestDB(t)

	order := models.Order{
		UserID:      1,
		Client:      "Anna",
		OrderNumber: "A-100",
		Status:      "open",
		Priority:    "high",
		Deadline:    models.NewDate(2024, time.June, 30),
	}
	assert.NoError(t, db.Create(&order).Error)

	_, err := ReplaceReminders(db, &order, []int{7}, nil)
	assert.NoError(t, err)

	cleared, err := ReplaceReminders(db, &order, nil, nil)
	assert.NoError(t, err)
	assert.Empty(t, cleared)

	var count int64
	db.Model(&models.OrderReminder{}).Where("order_id = ?", order.ID).Count(&count)
	assert.EqualValues(t, 0, count)
}

func TestReplaceRemindersExplicitDates(t *testing.T) {
	db := setupServiceTestDB(t)

	order := models.Order{
		UserID:      2,
		Client:      "Bram",
		OrderNumber: "B-200",
		Status:      "open",
		Priority:    "normal",
		Deadline:    models.NewDate(2024, time.December, 24),
	}
	assert.NoError(t, db.Create(&order).Error)

	dates := []models.Date{
		models.NewDate(2024, time.December, 20),
		models.NewDate(2024, time.December, 1),
	}
	reminders, err := ReplaceReminders(db, &order, []int{5}, dates)
	assert.NoError(t, err)
	assert.Len(t, reminders, 2)
	assert.Equal(t, "2024-12-01", reminders[0].RemindOn.String())
	assert.Equal(t, "2024-12-20", reminders[1].RemindOn.String())
	assert.EqualValues(t, order.UserID, reminders[0].UserID)
}
