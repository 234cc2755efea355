package middleware

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// txKey is the context key under which the request transaction is stored
const txKey = "db_tx"

// Transaction opens one database transaction per request: begun before the
// handler runs, committed after it, rolled back when the handler panicked or
// wrote an error status. Handlers reach it through GetTx.
func Transaction(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		tx := db.Begin()
		if tx.Error != nil {
			log.Printf("failed to begin transaction: %v", tx.Error)
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "DATABASE_ERROR",
					"message": "Failed to begin transaction",
				},
			})
			return
		}

		c.Set(txKey, tx)

		defer func() {
			if r := recover(); r != nil {
				tx.Rollback()
				panic(r)
			}
		}()

		c.Next()

		if c.Writer.Status() >= http.StatusBadRequest {
			tx.Rollback()
			return
		}
		if err := tx.Commit().Error; err != nil {
			log.Printf("failed to commit transaction: %v", err)
		}
	}
}

// GetTx returns the request-scoped transaction set by Transaction
func GetTx(c *gin.Context) *gorm.DB {
	return c.MustGet(txKey).(*gorm.DB)
}
