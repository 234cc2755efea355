package controllers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/rosa-lindqvist/jeweller-journal-api/middleware"
	"github.com/rosa-lindqvist/jeweller-journal-api/models"
	"github.com/rosa-lindqvist/jeweller-journal-api/services"
	"github.com/rosa-lindqvist/jeweller-journal-api/utils"
)

// JournalController handles the craft-journal endpoints. It carries the
// storage backend because deleting an entry must remove its attachment bytes.
type JournalController struct {
	storage services.Storage
}

// NewJournalController creates a journal controller using the given storage
func NewJournalController(storage services.Storage) *JournalController {
	return &JournalController{storage: storage}
}

// CreateJournalRequest represents the request body for creating an entry
type CreateJournalRequest struct {
	UserID    int64       `json:"user_id" binding:"required"`
	Title     string      `json:"title" binding:"required"`
	EntryDate models.Date `json:"entry_date"`
	Materials *string     `json:"materials"`
	Tools     *string     `json:"tools"`
	Settings  *string     `json:"settings"`
	Notes     *string     `json:"notes"`
	Tags      []string    `json:"tags"`
	OrderID   *uint       `json:"order_id"`
}

// UpdateJournalRequest represents a partial entry update. Tags are only
// re-normalized when the field appears in the payload.
type UpdateJournalRequest struct {
	Title     utils.Optional[string]      `json:"title"`
	EntryDate utils.Optional[models.Date] `json:"entry_date"`
	Materials utils.Optional[string]      `json:"materials"`
	Tools     utils.Optional[string]      `json:"tools"`
	Settings  utils.Optional[string]      `json:"settings"`
	Notes     utils.Optional[string]      `json:"notes"`
	Tags      utils.Optional[[]string]    `json:"tags"`
	OrderID   utils.Optional[uint]        `json:"order_id"`
}

// Create handles POST /journal
func (jc *JournalController) Create(c *gin.Context) {
	var req CreateJournalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request data")
		return
	}
	if req.EntryDate.IsZero() {
		respondError(c, http.StatusBadRequest, "VALIDATION_ERROR", "entry_date is required")
		return
	}

	entry := models.JournalEntry{
		UserID:    req.UserID,
		Title:     req.Title,
		EntryDate: req.EntryDate,
		Materials: req.Materials,
		Tools:     req.Tools,
		Settings:  req.Settings,
		Notes:     req.Notes,
		Tags:      utils.NormalizeTags(req.Tags),
		OrderID:   req.OrderID,
	}

	tx := middleware.GetTx(c)
	if err := tx.Create(&entry).Error; err != nil {
		// order_id referencing a missing order lands here as an FK violation
		respondError(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to create journal entry")
		return
	}
	respondData(c, http.StatusCreated, entry)
}

// List handles GET /journal - optional order, date-range, tag and text
// filters, entry_date descending
func (jc *JournalController) List(c *gin.Context) {
	userID, ok := userIDFromQuery(c)
	if !ok {
		return
	}
	dateFrom, ok := dateFromQuery(c, "date_from")
	if !ok {
		return
	}
	dateTo, ok := dateFromQuery(c, "date_to")
	if !ok {
		return
	}

	tx := middleware.GetTx(c)
	query := tx.Where("user_id = ?", userID)
	if raw := c.Query("order_id"); raw != "" {
		orderID, err := strconv.ParseUint(raw, 10, 64)
		if err != nil {
			respondError(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid order_id")
			return
		}
		query = query.Where("order_id = ?", orderID)
	}
	if dateFrom != nil {
		query = query.Where("entry_date >= ?", *dateFrom)
	}
	if dateTo != nil {
		query = query.Where("entry_date <= ?", *dateTo)
	}
	if tag := c.Query("tag"); tag != "" {
		// substring over the stored comma-joined column, not exact-tag
		query = query.Where("tags LIKE ?", "%"+tag+"%")
	}
	if q := c.Query("q"); q != "" {
		like := "%" + strings.ToLower(q) + "%"
		query = query.Where("LOWER(title) LIKE ? OR LOWER(notes) LIKE ?", like, like)
	}

	var entries []models.JournalEntry
	if err := query.Order("entry_date DESC").Find(&entries).Error; err != nil {
		respondError(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to list journal entries")
		return
	}
	respondData(c, http.StatusOK, entries)
}

// Get handles GET /journal/:id
func (jc *JournalController) Get(c *gin.Context) {
	userID, ok := userIDFromQuery(c)
	if !ok {
		return
	}
	entryID, ok := idParam(c)
	if !ok {
		return
	}
	entry, ok := entryOr404(c, userID, entryID)
	if !ok {
		return
	}
	respondData(c, http.StatusOK, entry)
}

// Update handles PATCH /journal/:id
func (jc *JournalController) Update(c *gin.Context) {
	userID, ok := userIDFromQuery(c)
	if !ok {
		return
	}
	entryID, ok := idParam(c)
	if !ok {
		return
	}

	var req UpdateJournalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request data")
		return
	}

	entry, ok := entryOr404(c, userID, entryID)
	if !ok {
		return
	}

	if v, set := req.Title.Get(); set {
		entry.Title = v
	}
	if v, set := req.EntryDate.Get(); set {
		entry.EntryDate = v
	}
	applyText := func(f utils.Optional[string], dst **string) {
		if !f.Set {
			return
		}
		if v, set := f.Get(); set {
			*dst = &v
		} else {
			*dst = nil
		}
	}
	applyText(req.Materials, &entry.Materials)
	applyText(req.Tools, &entry.Tools)
	applyText(req.Settings, &entry.Settings)
	applyText(req.Notes, &entry.Notes)
	if req.Tags.Set {
		entry.Tags = utils.NormalizeTags(req.Tags.Value)
	}
	if req.OrderID.Set {
		if v, set := req.OrderID.Get(); set {
			entry.OrderID = &v
		} else {
			entry.OrderID = nil
		}
	}

	tx := middleware.GetTx(c)
	if err := tx.Save(entry).Error; err != nil {
		respondError(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to update journal entry")
		return
	}
	respondData(c, http.StatusOK, entry)
}

// Delete handles DELETE /journal/:id - removes every attachment's stored
// bytes first, then the row; attachment rows go with it via the cascade
func (jc *JournalController) Delete(c *gin.Context) {
	userID, ok := userIDFromQuery(c)
	if !ok {
		return
	}
	entryID, ok := idParam(c)
	if !ok {
		return
	}
	entry, ok := entryOr404(c, userID, entryID)
	if !ok {
		return
	}

	tx := middleware.GetTx(c)
	var attachments []models.Attachment
	if err := tx.Where("journal_entry_id = ?", entry.ID).Find(&attachments).Error; err != nil {
		respondError(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to load attachments")
		return
	}
	for _, attachment := range attachments {
		if err := jc.storage.Delete(attachment.StoredPath); err != nil {
			respondError(c, http.StatusInternalServerError, "STORAGE_ERROR", "Failed to delete attachment file")
			return
		}
	}

	if err := tx.Delete(entry).Error; err != nil {
		respondError(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to delete journal entry")
		return
	}
	respondDeleted(c)
}
