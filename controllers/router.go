package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/rosa-lindqvist/jeweller-journal-api/middleware"
	"github.com/rosa-lindqvist/jeweller-journal-api/services"
)

// HealthCheck handles GET /health - a liveness probe, not a dependency check
func HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": "ok",
		"time":   time.Now().UTC().Format(time.RFC3339),
	})
}

// RegisterRoutes wires every endpoint onto the router. The database handle
// and storage backend are passed in explicitly; each data route runs inside
// the request-scoped transaction middleware.
func RegisterRoutes(router *gin.Engine, db *gorm.DB, storage services.Storage) {
	router.GET("/health", HealthCheck)

	journal := NewJournalController(storage)
	attachments := NewAttachmentController(storage)

	api := router.Group("", middleware.Transaction(db))
	{
		api.POST("/orders", CreateOrder)
		api.GET("/orders", ListOrders)
		api.GET("/orders/:id", GetOrder)
		api.PATCH("/orders/:id", UpdateOrder)
		api.DELETE("/orders/:id", DeleteOrder)
		api.GET("/orders/:id/reminders", ListOrderReminders)
		api.POST("/orders/:id/reminders", SetOrderReminders)

		api.GET("/reminders/due", DueReminders)
		api.POST("/reminders/:id/mark-sent", MarkReminderSent)

		api.POST("/journal", journal.Create)
		api.GET("/journal", journal.List)
		api.GET("/journal/:id", journal.Get)
		api.PATCH("/journal/:id", journal.Update)
		api.DELETE("/journal/:id", journal.Delete)
		api.POST("/journal/:id/attachments", attachments.Upload)
		api.GET("/journal/:id/attachments", attachments.List)

		api.GET("/attachments/:id/file", attachments.File)
		api.DELETE("/attachments/:id", attachments.Delete)
	}
}
