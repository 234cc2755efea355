package controllers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/rosa-lindqvist/jeweller-journal-api/middleware"
	"github.com/rosa-lindqvist/jeweller-journal-api/models"
	"github.com/rosa-lindqvist/jeweller-journal-api/services"
)

// SetRemindersRequest represents the request body for replacing an order's
// reminder set. At least one of the two lists must be supplied; explicit
// dates take precedence over offsets.
type SetRemindersRequest struct {
	ReminderOffsets []int         `json:"reminder_offsets"`
	ReminderDates   []models.Date `json:"reminder_dates"`
}

// ListOrderReminders handles GET /orders/:id/reminders - ascending by date
func ListOrderReminders(c *gin.Context) {
	userID, ok := userIDFromQuery(c)
	if !ok {
		return
	}
	orderID, ok := idParam(c)
	if !ok {
		return
	}
	if _, ok := orderOr404(c, userID, orderID); !ok {
		return
	}

	tx := middleware.GetTx(c)
	var reminders []models.OrderReminder
	err := tx.Where("order_id = ? AND user_id = ?", orderID, userID).
		Order("remind_on ASC").
		Find(&reminders).Error
	if err != nil {
		respondError(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to list reminders")
		return
	}
	respondData(c, http.StatusOK, reminders)
}

// SetOrderReminders handles POST /orders/:id/reminders - full replace of the
// order's reminders from offsets or explicit dates
func SetOrderReminders(c *gin.Context) {
	userID, ok := userIDFromQuery(c)
	if !ok {
		return
	}
	orderID, ok := idParam(c)
	if !ok {
		return
	}

	var req SetRemindersRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request data")
		return
	}
	if len(req.ReminderOffsets) == 0 && len(req.ReminderDates) == 0 {
		respondError(c, http.StatusBadRequest, "VALIDATION_ERROR", "No reminder dates or offsets provided")
		return
	}

	order, ok := orderOr404(c, userID, orderID)
	if !ok {
		return
	}

	tx := middleware.GetTx(c)
	reminders, err := services.ReplaceReminders(tx, order, req.ReminderOffsets, req.ReminderDates)
	if err != nil {
		respondError(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to set reminders")
		return
	}
	respondData(c, http.StatusOK, reminders)
}

// DueReminders handles GET /reminders/due - every unacknowledged reminder for
// the caller due on or before the target date (default today)
func DueReminders(c *gin.Context) {
	userID, ok := userIDFromQuery(c)
	if !ok {
		return
	}
	on, ok := dateFromQuery(c, "on")
	if !ok {
		return
	}
	target := models.Today()
	if on != nil {
		target = *on
	}

	tx := middleware.GetTx(c)
	var reminders []models.OrderReminder
	err := tx.Where("user_id = ? AND remind_on <= ? AND sent_at IS NULL", userID, target).
		Order("remind_on ASC").
		Find(&reminders).Error
	if err != nil {
		respondError(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to list due reminders")
		return
	}
	respondData(c, http.StatusOK, reminders)
}

// MarkReminderSent handles POST /reminders/:id/mark-sent - records the
// acknowledgment time. Repeated calls overwrite sent_at with the current
// time rather than being rejected.
func MarkReminderSent(c *gin.Context) {
	userID, ok := userIDFromQuery(c)
	if !ok {
		return
	}
	reminderID, ok := idParam(c)
	if !ok {
		return
	}

	tx := middleware.GetTx(c)
	var reminder models.OrderReminder
	err := tx.Where("id = ? AND user_id = ?", reminderID, userID).First(&reminder).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			respondError(c, http.StatusNotFound, "REMINDER_NOT_FOUND", "Reminder not found")
		} else {
			respondError(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to load reminder")
		}
		return
	}

	now := time.Now().UTC()
	reminder.SentAt = &now
	if err := tx.Save(&reminder).Error; err != nil {
		respondError(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to mark reminder sent")
		return
	}
	respondData(c, http.StatusOK, reminder)
}
