// internal/interfaces/http/handlers/promotion.go
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/baankanom/bakery-backend/internal/domain/pricing"
)

// PromotionHandler serves the public promotion listing
type PromotionHandler struct {
	registry *pricing.Registry
}

// NewPromotionHandler creates a new promotion handler
func NewPromotionHandler(registry *pricing.Registry) *PromotionHandler {
	return &PromotionHandler{
		registry: registry,
	}
}

// GetPromotions handles GET /promotions
func (h *PromotionHandler) GetPromotions(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"message": "Promotions retrieved successfully",
		"data":    gin.H{"promotions": h.registry.Rules()},
	})
}
