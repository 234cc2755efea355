package controllers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/rosa-lindqvist/jeweller-journal-api/middleware"
	"github.com/rosa-lindqvist/jeweller-journal-api/models"
)

// respondError writes the standard error envelope
func respondError(c *gin.Context, status int, code, message string) {
	c.JSON(status, gin.H{
		"success": false,
		"error": gin.H{
			"code":    code,
			"message": message,
		},
	})
}

// respondData writes the standard success envelope
func respondData(c *gin.Context, status int, data interface{}) {
	c.JSON(status, gin.H{
		"success": true,
		"data":    data,
	})
}

// respondDeleted acknowledges a completed deletion
func respondDeleted(c *gin.Context) {
	respondData(c, http.StatusOK, gin.H{"status": "deleted"})
}

// userIDFromQuery extracts the required user_id query parameter. Identity is
// caller-supplied and trusted as-is; it only scopes queries.
func userIDFromQuery(c *gin.Context) (int64, bool) {
	userID, err := strconv.ParseInt(c.Query("user_id"), 10, 64)
	if err != nil {
		respondError(c, http.StatusBadRequest, "VALIDATION_ERROR", "user_id query parameter is required")
		return 0, false
	}
	return userID, true
}

// idParam extracts the numeric path id
func idParam(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		respondError(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid id")
		return 0, false
	}
	return uint(id), true
}

// dateFromQuery parses an optional YYYY-MM-DD query parameter
func dateFromQuery(c *gin.Context, name string) (*models.Date, bool) {
	raw := c.Query(name)
	if raw == "" {
		return nil, true
	}
	d, err := models.ParseDate(raw)
	if err != nil {
		respondError(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid "+name+" date, expected YYYY-MM-DD")
		return nil, false
	}
	return &d, true
}

// orderOr404 looks up an order scoped to the caller. A missing row and a row
// owned by someone else look identical on purpose.
func orderOr404(c *gin.Context, userID int64, orderID uint) (*models.Order, bool) {
	tx := middleware.GetTx(c)
	var order models.Order
	err := tx.Where("id = ? AND user_id = ?", orderID, userID).First(&order).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			respondError(c, http.StatusNotFound, "ORDER_NOT_FOUND", "Order not found")
		} else {
			respondError(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to load order")
		}
		return nil, false
	}
	return &order, true
}

// entryOr404 looks up a journal entry scoped to the caller
func entryOr404(c *gin.Context, userID int64, entryID uint) (*models.JournalEntry, bool) {
	tx := middleware.GetTx(c)
	var entry models.JournalEntry
	err := tx.Where("id = ? AND user_id = ?", entryID, userID).First(&entry).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			respondError(c, http.StatusNotFound, "ENTRY_NOT_FOUND", "Journal entry not found")
		} else {
			respondError(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to load journal entry")
		}
		return nil, false
	}
	return &entry, true
}
