package services

import (
	"fmt"
	"sort"

	"gorm.io/gorm"

	"github.com/rosa-lindqvist/jeweller-journal-api/models"
)

// ComputeReminderDates resolves the target set of reminder dates for an
// order. Explicit dates win outright when supplied; otherwise each
// non-negative offset o maps to deadline minus o days. Two offsets may
// collapse to the same date, so the result is deduplicated by date and
// returned ascending. Neither input yields an empty set.
func ComputeReminderDates(deadline models.Date, offsets []int, dates []models.Date) []models.Date {
	seen := make(map[models.Date]struct{})
	result := []models.Date{}

	add := func(d models.Date) {
		if _, ok := seen[d]; ok {
			return
		}
		seen[d] = struct{}{}
		result = append(result, d)
	}

	if len(dates) > 0 {
		for _, d := range dates {
			add(d)
		}
	} else {
		for _, o := range offsets {
			if o < 0 {
				continue
			}
			add(deadline.AddDays(-o))
		}
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].Before(result[j].Time)
	})
	return result
}

// ReplaceReminders swaps out an order's reminder set: every existing reminder
// is deleted first, unconditionally, then the computed set is inserted. This
// is a full replace, not a merge, so a caller supplying no offsets and no
// dates ends up with no reminders. Returns the new set ascending by date.
func ReplaceReminders(db *gorm.DB, order *models.Order, offsets []int, dates []models.Date) ([]models.OrderReminder, error) {
	if err := db.Where("order_id = ? AND user_id = ?", order.ID, order.UserID).
		Delete(&models.OrderReminder{}).Error; err != nil {
		return nil, fmt.Errorf("failed to clear reminders: %w", err)
	}

	reminders := []models.OrderReminder{}
	for _, d := range ComputeReminderDates(order.Deadline, offsets, dates) {
		reminder := models.OrderReminder{
			OrderID:  order.ID,
			UserID:   order.UserID,
			RemindOn: d,
		}
		if err := db.Create(&reminder).Error; err != nil {
			return nil, fmt.Errorf("failed to create reminder: %w", err)
		}
		reminders = append(reminders, reminder)
	}
	return reminders, nil
}
