// internal/interfaces/http/handlers/checkout.go
package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/baankanom/bakery-backend/internal/domain/checkout"
	"github.com/baankanom/bakery-backend/internal/domain/pricing"
	"github.com/baankanom/bakery-backend/internal/interfaces/http/middleware"
)

// CheckoutHandler handles checkout state and pricing endpoints
type CheckoutHandler struct {
	checkouts *checkout.Service
}

// NewCheckoutHandler creates a new checkout handler
func NewCheckoutHandler(checkouts *checkout.Service) *CheckoutHandler {
	return &CheckoutHandler{
		checkouts: checkouts,
	}
}

// GetSummary handles GET /checkout
func (h *CheckoutHandler) GetSummary(c *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Authentication required"})
		return
	}

	summary, err := h.checkouts.Summary(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load checkout"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Checkout retrieved successfully",
		"data":    summary,
	})
}

// SetRecipient handles PUT /checkout/recipient
func (h *CheckoutHandler) SetRecipient(c *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Authentication required"})
		return
	}

	var req checkout.RecipientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request data",
			"details": err.Error(),
		})
		return
	}

	summary, err := h.checkouts.SetRecipient(c.Request.Context(), userID, &req)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save recipient"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Recipient saved successfully",
		"data":    summary,
	})
}

// SetDistance handles PUT /checkout/distance
func (h *CheckoutHandler) SetDistance(c *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Authentication required"})
		return
	}

	var req struct {
		DistanceKm float64 `json:"distance_km"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request data",
			"details": err.Error(),
		})
		return
	}

	summary, err := h.checkouts.SetDistance(c.Request.Context(), userID, req.DistanceKm)
	if err != nil {
		if errors.Is(err, checkout.ErrNegativeDistance) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save distance"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Distance saved successfully",
		"data":    summary,
	})
}

// ApplyCoupon handles POST /checkout/coupon
func (h *CheckoutHandler) ApplyCoupon(c *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Authentication required"})
		return
	}

	var req struct {
		Code string `json:"code" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request data",
			"details": err.Error(),
		})
		return
	}

	summary, err := h.checkouts.ApplyCoupon(c.Request.Context(), userID, req.Code)
	if err != nil {
		var minErr *pricing.MinimumNotMetError
		switch {
		case errors.Is(err, pricing.ErrCouponNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Promotion code not found"})
		case errors.As(err, &minErr):
			c.JSON(http.StatusUnprocessableEntity, gin.H{
				"error": minErr.Error(),
				"details": gin.H{
					"minimum_subtotal": minErr.Minimum,
					"shortfall":        minErr.Shortfall,
				},
			})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to apply promotion"})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Promotion applied successfully",
		"data":    summary,
	})
}

// RemoveCoupon handles DELETE /checkout/coupon
func (h *CheckoutHandler) RemoveCoupon(c *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Authentication required"})
		return
	}

	summary, err := h.checkouts.RemoveCoupon(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to remove promotion"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Promotion removed successfully",
		"data":    summary,
	})
}
