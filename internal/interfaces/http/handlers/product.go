// internal/interfaces/http/handlers/product.go
package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/baankanom/bakery-backend/internal/domain/product"
)

// ProductHandler handles catalog and admin product endpoints
type ProductHandler struct {
	products *product.Service
}

// NewProductHandler creates a new product handler
func NewProductHandler(products *product.Service) *ProductHandler {
	return &ProductHandler{
		products: products,
	}
}

// GetProducts handles GET /products
func (h *ProductHandler) GetProducts(c *gin.Context) {
	var req product.ListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters"})
		return
	}

	resp, err := h.products.List(c.Request.Context(), &req)
	if err != nil {
		if errors.Is(err, product.ErrInvalidCategory) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve products"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Products retrieved successfully",
		"data":    resp,
	})
}

// GetProduct handles GET /products/:id
func (h *ProductHandler) GetProduct(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	p, err := h.products.Get(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, product.ErrProductNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve product"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Product retrieved successfully",
		"data":    p,
	})
}

// AdminList handles GET /admin/products, including inactive products
func (h *ProductHandler) AdminList(c *gin.Context) {
	var req product.ListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters"})
		return
	}
	req.IncludeAll = true

	resp, err := h.products.List(c.Request.Context(), &req)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve products"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Products retrieved successfully",
		"data":    resp,
	})
}

// CreateProduct handles POST /admin/products as multipart form data
func (h *ProductHandler) CreateProduct(c *gin.Context) {
	req, err := bindProductForm(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	image, cleanup, err := bindProductImage(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	defer cleanup()

	p, err := h.products.Create(c.Request.Context(), req, image)
	if err != nil {
		c.JSON(statusForProductError(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Product created successfully",
		"data":    p,
	})
}

// UpdateProduct handles PUT /admin/products/:id as multipart form data
func (h *ProductHandler) UpdateProduct(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	var req product.UpdateRequest
	if v, exists := c.GetPostForm("name"); exists {
		req.Name = &v
	}
	if v, exists := c.GetPostForm("description"); exists {
		req.Description = &v
	}
	if v, exists := c.GetPostForm("price"); exists {
		price, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid price"})
			return
		}
		req.Price = &price
	}
	if v, exists := c.GetPostForm("category"); exists {
		req.Category = &v
	}
	if v, exists := c.GetPostForm("is_custom"); exists {
		isCustom := v == "true"
		req.IsCustom = &isCustom
	}
	if v, exists := c.GetPostForm("is_active"); exists {
		isActive := v == "true"
		req.IsActive = &isActive
	}

	image, cleanup, err := bindProductImage(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	defer cleanup()

	p, err := h.products.Update(c.Request.Context(), id, &req, image)
	if err != nil {
		c.JSON(statusForProductError(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Product updated successfully",
		"data":    p,
	})
}

// DeleteProduct handles DELETE /admin/products/:id
func (h *ProductHandler) DeleteProduct(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	if err := h.products.Delete(c.Request.Context(), id); err != nil {
		c.JSON(statusForProductError(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Product deleted successfully",
	})
}

func bindProductForm(c *gin.Context) (*product.CreateRequest, error) {
	price, err := strconv.ParseInt(c.PostForm("price"), 10, 64)
	if err != nil {
		return nil, errors.New("price must be an amount in satang")
	}

	return &product.CreateRequest{
		Name:        c.PostForm("name"),
		Description: c.PostForm("description"),
		Price:       price,
		Category:    c.PostForm("category"),
		IsCustom:    c.PostForm("is_custom") == "true",
		IsActive:    c.PostForm("is_active") != "false",
	}, nil
}

func bindProductImage(c *gin.Context) (*product.Image, func(), error) {
	file, err := c.FormFile("image")
	if err != nil {
		return nil, func() {}, nil
	}

	src, err := file.Open()
	if err != nil {
		return nil, func() {}, errors.New("failed to read image upload")
	}
	return &product.Image{Filename: file.Filename, Content: src}, func() { src.Close() }, nil
}

func statusForProductError(err error) int {
	switch {
	case errors.Is(err, product.ErrProductNotFound):
		return http.StatusNotFound
	case errors.Is(err, product.ErrInvalidCategory),
		errors.Is(err, product.ErrInvalidPrice),
		errors.Is(err, product.ErrNameRequired):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func parseIDParam(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid ID"})
		return 0, false
	}
	return uint(id), true
}
