// internal/interfaces/http/handlers/order.go
package handlers

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/baankanom/bakery-backend/internal/domain/order"
	"github.com/baankanom/bakery-backend/internal/interfaces/http/middleware"
	"github.com/baankanom/bakery-backend/internal/pkg/pdf"
)

// OrderHandler handles order submission and fulfillment endpoints
type OrderHandler struct {
	orders *order.Service
	pdfs   *pdf.Service
}

// NewOrderHandler creates a new order handler
func NewOrderHandler(orders *order.Service, pdfs *pdf.Service) *OrderHandler {
	return &OrderHandler{
		orders: orders,
		pdfs:   pdfs,
	}
}

// SubmitOrder handles POST /orders as multipart form data carrying the
// payment slip
func (h *OrderHandler) SubmitOrder(c *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Authentication required"})
		return
	}
	userEmail, _ := middleware.GetUserEmailFromContext(c)

	file, err := c.FormFile("slip")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Payment slip is required"})
		return
	}
	src, err := file.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Failed to read payment slip"})
		return
	}
	defer src.Close()

	o, err := h.orders.Submit(c.Request.Context(), userID, userEmail, &order.Slip{
		Filename: file.Filename,
		Content:  src,
	})
	if err != nil {
		var incomplete *order.CheckoutIncompleteError
		switch {
		case errors.As(err, &incomplete):
			c.JSON(http.StatusUnprocessableEntity, gin.H{
				"error":   "Checkout is incomplete",
				"details": gin.H{"missing": incomplete.Missing},
			})
		case errors.Is(err, order.ErrSlipRequired):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to submit order"})
		}
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Order submitted successfully",
		"data":    o,
	})
}

// GetOrders handles GET /orders
func (h *OrderHandler) GetOrders(c *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Authentication required"})
		return
	}

	var req order.ListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters"})
		return
	}

	resp, err := h.orders.List(c.Request.Context(), userID, &req)
	if err != nil {
		if errors.Is(err, order.ErrInvalidStatus) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve orders"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Orders retrieved successfully",
		"data":    resp,
	})
}

// GetOrder handles GET /orders/:id
func (h *OrderHandler) GetOrder(c *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Authentication required"})
		return
	}

	orderID, ok := parseIDParam(c)
	if !ok {
		return
	}

	o, err := h.orders.Get(c.Request.Context(), userID, orderID)
	if err != nil {
		if errors.Is(err, order.ErrOrderNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve order"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Order retrieved successfully",
		"data":    o,
	})
}

// GetReceipt handles GET /orders/:id/receipt, returning a PDF
func (h *OrderHandler) GetReceipt(c *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Authentication required"})
		return
	}

	orderID, ok := parseIDParam(c)
	if !ok {
		return
	}

	o, err := h.orders.Get(c.Request.Context(), userID, orderID)
	if err != nil {
		if errors.Is(err, order.ErrOrderNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve order"})
		return
	}

	buf, err := h.pdfs.GenerateReceipt(o)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate receipt"})
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=receipt-%s.pdf", o.OrderNumber))
	c.Data(http.StatusOK, "application/pdf", buf.Bytes())
}

// AdminListOrders handles GET /admin/orders
func (h *OrderHandler) AdminListOrders(c *gin.Context) {
	var req order.ListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters"})
		return
	}

	resp, err := h.orders.AdminList(c.Request.Context(), &req)
	if err != nil {
		if errors.Is(err, order.ErrInvalidStatus) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve orders"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Orders retrieved successfully",
		"data":    resp,
	})
}

// AdminGetOrder handles GET /admin/orders/:id
func (h *OrderHandler) AdminGetOrder(c *gin.Context) {
	orderID, ok := parseIDParam(c)
	if !ok {
		return
	}

	o, err := h.orders.GetAny(c.Request.Context(), orderID)
	if err != nil {
		if errors.Is(err, order.ErrOrderNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve order"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Order retrieved successfully",
		"data":    o,
	})
}

// AdminUpdateOrderStatus handles PUT /admin/orders/:id/status
func (h *OrderHandler) AdminUpdateOrderStatus(c *gin.Context) {
	orderID, ok := parseIDParam(c)
	if !ok {
		return
	}

	var req struct {
		Status string `json:"status" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request data",
			"details": err.Error(),
		})
		return
	}

	o, err := h.orders.UpdateStatus(c.Request.Context(), orderID, req.Status)
	if err != nil {
		switch {
		case errors.Is(err, order.ErrOrderNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		case errors.Is(err, order.ErrInvalidStatus), errors.Is(err, order.ErrInvalidTransition):
			c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update order status"})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Order status updated successfully",
		"data":    o,
	})
}
