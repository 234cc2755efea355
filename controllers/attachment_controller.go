package controllers

import (
	"errors"
	"fmt"
	"io/fs"
	"log"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/rosa-lindqvist/jeweller-journal-api/middleware"
	"github.com/rosa-lindqvist/jeweller-journal-api/models"
	"github.com/rosa-lindqvist/jeweller-journal-api/services"
)

// DefaultAttachmentKind is used when the upload omits the kind form field
const DefaultAttachmentKind = "photo"

// AttachmentController handles attachment upload, retrieval and deletion
type AttachmentController struct {
	storage services.Storage
}

// NewAttachmentController creates an attachment controller using the given storage
func NewAttachmentController(storage services.Storage) *AttachmentController {
	return &AttachmentController{storage: storage}
}

// Upload handles POST /journal/:id/attachments - multipart form with fields
// user_id, kind and file. Bytes are stored before the metadata row is
// written; a failed commit afterwards leaves an orphaned file, which is
// accepted.
func (ac *AttachmentController) Upload(c *gin.Context) {
	userID, err := strconv.ParseInt(c.PostForm("user_id"), 10, 64)
	if err != nil {
		respondError(c, http.StatusBadRequest, "VALIDATION_ERROR", "user_id form field is required")
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

	fileHeader, err := c.FormFile("file")
	if err != nil {
		respondError(c, http.StatusBadRequest, "VALIDATION_ERROR", "file form field is required")
		return
	}
	kind := c.DefaultPostForm("kind", DefaultAttachmentKind)

	src, err := fileHeader.Open()
	if err != nil {
		respondError(c, http.StatusInternalServerError, "STORAGE_ERROR", "Failed to read uploaded file")
		return
	}
	defer func() {
		if closeErr := src.Close(); closeErr != nil {
			log.Printf("warning: failed to close uploaded file: %v", closeErr)
		}
	}()

	storedPath, size, err := ac.storage.Save(userID, fileHeader.Filename, src)
	if err != nil {
		respondError(c, http.StatusInternalServerError, "STORAGE_ERROR", "Failed to store uploaded file")
		return
	}

	contentType := fileHeader.Header.Get("Content-Type")
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	attachment := models.Attachment{
		JournalEntryID: entry.ID,
		UserID:         userID,
		Kind:           kind,
		Filename:       fileHeader.Filename,
		ContentType:    contentType,
		Size:           size,
		StoredPath:     storedPath,
	}

	tx := middleware.GetTx(c)
	if err := tx.Create(&attachment).Error; err != nil {
		respondError(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to save attachment")
		return
	}
	respondData(c, http.StatusCreated, attachment)
}

// List handles GET /journal/:id/attachments - newest first
func (ac *AttachmentController) List(c *gin.Context) {
	userID, ok := userIDFromQuery(c)
	if !ok {
		return
	}
	entryID, ok := idParam(c)
	if !ok {
		return
	}
	if _, ok := entryOr404(c, userID, entryID); !ok {
		return
	}

	tx := middleware.GetTx(c)
	var attachments []models.Attachment
	err := tx.Where("journal_entry_id = ? AND user_id = ?", entryID, userID).
		Order("created_at DESC").
		Find(&attachments).Error
	if err != nil {
		respondError(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to list attachments")
		return
	}
	respondData(c, http.StatusOK, attachments)
}

// File handles GET /attachments/:id/file - streams the stored bytes with the
// recorded content type. Metadata without bytes (deleted out-of-band) is a
// 404, not an error.
func (ac *AttachmentController) File(c *gin.Context) {
	attachment, ok := ac.attachmentOr404(c)
	if !ok {
		return
	}

	rc, err := ac.storage.Open(attachment.StoredPath)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			respondError(c, http.StatusNotFound, "FILE_NOT_FOUND", "File not found")
		} else {
			respondError(c, http.StatusInternalServerError, "STORAGE_ERROR", "Failed to open stored file")
		}
		return
	}
	defer func() {
		if closeErr := rc.Close(); closeErr != nil {
			log.Printf("warning: failed to close stored file: %v", closeErr)
		}
	}()

	contentType := attachment.ContentType
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	c.DataFromReader(http.StatusOK, attachment.Size, contentType, rc, map[string]string{
		"Content-Disposition": fmt.Sprintf("inline; filename=%q", attachment.Filename),
	})
}

// Delete handles DELETE /attachments/:id - stored bytes first (best-effort
// on already-missing files), then the metadata row
func (ac *AttachmentController) Delete(c *gin.Context) {
	attachment, ok := ac.attachmentOr404(c)
	if !ok {
		return
	}

	if err := ac.storage.Delete(attachment.StoredPath); err != nil {
		respondError(c, http.StatusInternalServerError, "STORAGE_ERROR", "Failed to delete stored file")
		return
	}

	tx := middleware.GetTx(c)
	if err := tx.Delete(attachment).Error; err != nil {
		respondError(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to delete attachment")
		return
	}
	respondDeleted(c)
}

// attachmentOr404 looks up an attachment scoped to the caller
func (ac *AttachmentController) attachmentOr404(c *gin.Context) (*models.Attachment, bool) {
	userID, ok := userIDFromQuery(c)
	if !ok {
		return nil, false
	}
	attachmentID, ok := idParam(c)
	if !ok {
		return nil, false
	}

	tx := middleware.GetTx(c)
	var attachment models.Attachment
	err := tx.Where("id = ? AND user_id = ?", attachmentID, userID).First(&attachment).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			respondError(c, http.StatusNotFound, "ATTACHMENT_NOT_FOUND", "Attachment not found")
		} else {
			respondError(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to load attachment")
		}
		return nil, false
	}
	return &attachment, true
}
