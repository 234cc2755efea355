package controllers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/rosa-lindqvist/jeweller-journal-api/middleware"
	"github.com/rosa-lindqvist/jeweller-journal-api/models"
	"github.com/rosa-lindqvist/jeweller-journal-api/services"
	"github.com/rosa-lindqvist/jeweller-journal-api/utils"
)

// CreateOrderRequest represents the request body for creating an order
type CreateOrderRequest struct {
	UserID          int64       `json:"user_id" binding:"required"`
	Client          string      `json:"client" binding:"required"`
	OrderNumber     string      `json:"order_number" binding:"required"`
	Status          string      `json:"status" binding:"required"`
	Priority        string      `json:"priority" binding:"required"`
	Deadline        models.Date `json:"deadline"`
	Notes           *string     `json:"notes"`
	ReminderOffsets []int       `json:"reminder_offsets"`
}

// UpdateOrderRequest represents the request body for a partial order update.
// Fields absent from the payload leave the stored values untouched.
type UpdateOrderRequest struct {
	Client          utils.Optional[string]      `json:"client"`
	OrderNumber     utils.Optional[string]      `json:"order_number"`
	Status          utils.Optional[string]      `json:"status"`
	Priority        utils.Optional[string]      `json:"priority"`
	Deadline        utils.Optional[models.Date] `json:"deadline"`
	Notes           utils.Optional[string]      `json:"notes"`
	ReminderOffsets utils.Optional[[]int]       `json:"reminder_offsets"`
}

// CreateOrder handles POST /orders - creates an order and generates its
// reminders from the supplied deadline offsets
func CreateOrder(c *gin.Context) {
	var req CreateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request data")
		return
	}
	if req.Deadline.IsZero() {
		respondError(c, http.StatusBadRequest, "VALIDATION_ERROR", "deadline is required")
		return
	}

	tx := middleware.GetTx(c)
	order := models.Order{
		UserID:      req.UserID,
		Client:      req.Client,
		OrderNumber: req.OrderNumber,
		Status:      req.Status,
		Priority:    req.Priority,
		Deadline:    req.Deadline,
		Notes:       req.Notes,
	}
	if err := tx.Create(&order).Error; err != nil {
		respondError(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to create order")
		return
	}

	if _, err := services.ReplaceReminders(tx, &order, req.ReminderOffsets, nil); err != nil {
		respondError(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to create reminders")
		return
	}

	respondData(c, http.StatusCreated, order)
}

// ListOrders handles GET /orders - lists the caller's orders with optional
// status, overdue and client/order-number search filters, deadline ascending
func ListOrders(c *gin.Context) {
	userID, ok := userIDFromQuery(c)
	if !ok {
		return
	}

	tx := middleware.GetTx(c)
	query := tx.Where("user_id = ?", userID)
	if status := c.Query("status"); status != "" {
		query = query.Where("status = ?", status)
	}
	if c.Query("overdue") == "true" {
		// strictly before today: an order due today is not overdue yet
		query = query.Where("deadline < ?", models.Today())
	}
	if q := c.Query("q"); q != "" {
		like := "%" + strings.ToLower(q) + "%"
		query = query.Where("LOWER(client) LIKE ? OR LOWER(order_number) LIKE ?", like, like)
	}

	var orders []models.Order
	if err := query.Order("deadline ASC").Find(&orders).Error; err != nil {
		respondError(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to list orders")
		return
	}
	respondData(c, http.StatusOK, orders)
}

// GetOrder handles GET /orders/:id
func GetOrder(c *gin.Context) {
	userID, ok := userIDFromQuery(c)
	if !ok {
		return
	}
	orderID, ok := idParam(c)
	if !ok {
		return
	}
	order, ok := orderOr404(c, userID, orderID)
	if !ok {
		return
	}
	respondData(c, http.StatusOK, order)
}

// UpdateOrder handles PATCH /orders/:id - applies only the supplied fields,
// then regenerates reminders when the payload carries offsets
func UpdateOrder(c *gin.Context) {
	userID, ok := userIDFromQuery(c)
	if !ok {
		return
	}
	orderID, ok := idParam(c)
	if !ok {
		return
	}

	var req UpdateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request data")
		return
	}

	order, ok := orderOr404(c, userID, orderID)
	if !ok {
		return
	}

	if v, set := req.Client.Get(); set {
		order.Client = v
	}
	if v, set := req.OrderNumber.Get(); set {
		order.OrderNumber = v
	}
	if v, set := req.Status.Get(); set {
		order.Status = v
	}
	if v, set := req.Priority.Get(); set {
		order.Priority = v
	}
	if v, set := req.Deadline.Get(); set {
		order.Deadline = v
	}
	if req.Notes.Set {
		if v, set := req.Notes.Get(); set {
			order.Notes = &v
		} else {
			order.Notes = nil
		}
	}

	tx := middleware.GetTx(c)
	if err := tx.Save(order).Error; err != nil {
		respondError(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to update order")
		return
	}

	if offsets, set := req.ReminderOffsets.Get(); set {
		if _, err := services.ReplaceReminders(tx, order, offsets, nil); err != nil {
			respondError(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to update reminders")
			return
		}
	}

	respondData(c, http.StatusOK, order)
}

// DeleteOrder handles DELETE /orders/:id - reminders go with the order via
// the database cascade; journal entries keep existing with the link cleared
func DeleteOrder(c *gin.Context) {
	userID, ok := userIDFromQuery(c)
	if !ok {
		return
	}
	orderID, ok := idParam(c)
	if !ok {
		return
	}
	order, ok := orderOr404(c, userID, orderID)
	if !ok {
		return
	}

	tx := middleware.GetTx(c)
	if err := tx.Delete(order).Error; err != nil {
		respondError(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to delete order")
		return
	}
	respondDeleted(c)
}
