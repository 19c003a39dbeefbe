// internal/interfaces/http/handlers/cart.go
package handlers

import (
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/baankanom/bakery-backend/internal/domain/cart"
	"github.com/baankanom/bakery-backend/internal/domain/product"
	"github.com/baankanom/bakery-backend/internal/interfaces/http/middleware"
	"github.com/baankanom/bakery-backend/internal/pkg/realtime"
)

// CartHandler handles cart endpoints
type CartHandler struct {
	carts *cart.Service
	hub   *realtime.Hub
}

// NewCartHandler creates a new cart handler
func NewCartHandler(carts *cart.Service, hub *realtime.Hub) *CartHandler {
	return &CartHandler{
		carts: carts,
		hub:   hub,
	}
}

// GetCart handles GET /cart
func (h *CartHandler) GetCart(c *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Authentication required"})
		return
	}

	resp, err := h.carts.List(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve cart"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Cart retrieved successfully",
		"data":    resp,
	})
}

// AddToCart handles POST /cart/items
func (h *CartHandler) AddToCart(c *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Authentication required"})
		return
	}

	var req cart.AddRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request data",
			"details": err.Error(),
		})
		return
	}

	line, err := h.carts.Add(c.Request.Context(), userID, &req)
	if err != nil {
		switch {
		case errors.Is(err, product.ErrProductNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		case errors.Is(err, cart.ErrProductUnavailable), errors.Is(err, cart.ErrInvalidQuantity):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to add item to cart"})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Item added to cart successfully",
		"data":    line,
	})
}

// UpdateCartItem handles PUT /cart/items/:id. A quantity of zero removes
// the line.
func (h *CartHandler) UpdateCartItem(c *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Authentication required"})
		return
	}

	lineID, ok := parseIDParam(c)
	if !ok {
		return
	}

	var req struct {
		Quantity int `json:"quantity"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request data",
			"details": err.Error(),
		})
		return
	}

	if err := h.carts.UpdateQuantity(c.Request.Context(), userID, lineID, req.Quantity); err != nil {
		if errors.Is(err, cart.ErrLineNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update cart item"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Cart item updated successfully",
	})
}

// RemoveCartItem handles DELETE /cart/items/:id
func (h *CartHandler) RemoveCartItem(c *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Authentication required"})
		return
	}

	lineID, ok := parseIDParam(c)
	if !ok {
		return
	}

	if err := h.carts.Remove(c.Request.Context(), userID, lineID); err != nil {
		if errors.Is(err, cart.ErrLineNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to remove cart item"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Cart item removed successfully",
	})
}

// ClearCart handles DELETE /cart
func (h *CartHandler) ClearCart(c *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Authentication required"})
		return
	}

	if err := h.carts.Clear(c.Request.Context(), userID); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to clear cart"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Cart cleared successfully",
	})
}

// GetCartCount handles GET /cart/count
func (h *CartHandler) GetCartCount(c *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Authentication required"})
		return
	}

	count, err := h.carts.Count(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to count cart items"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Cart count retrieved successfully",
		"data":    gin.H{"count": count},
	})
}

// StreamCartCount handles GET /cart/count/stream as server-sent events.
// An event fires on every cart change; the payload carries the fresh count
// so the badge never needs a second round trip.
func (h *CartHandler) StreamCartCount(c *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Authentication required"})
		return
	}

	ctx := c.Request.Context()
	sub := h.hub.Subscribe(ctx, cart.RealtimeTable, userID)
	defer sub.Close()

	c.Writer.Header().Set("Content-Type", "text/event-stream")
	c.Writer.Header().Set("Cache-Control", "no-cache")
	c.Writer.Header().Set("Connection", "keep-alive")

	// Initial snapshot so the client renders without waiting for a change
	count, err := h.carts.Count(ctx, userID)
	if err == nil {
		fmt.Fprintf(c.Writer, "event: count\ndata: {\"count\":%d}\n\n", count)
		c.Writer.Flush()
	}

	c.Stream(func(w io.Writer) bool {
		select {
		case _, open := <-sub.Events():
			if !open {
				return false
			}
			count, err := h.carts.Count(ctx, userID)
			if err != nil {
				return true
			}
			fmt.Fprintf(w, "event: count\ndata: {\"count\":%d}\n\n", count)
			return true
		case <-ctx.Done():
			return false
		}
	})
}
