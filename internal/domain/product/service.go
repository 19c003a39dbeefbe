// internal/domain/product/service.go
package product

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"gorm.io/gorm"

	"github.com/baankanom/bakery-backend/internal/infrastructure/storage"
)

var (
	ErrProductNotFound = errors.New("product not found")
	ErrInvalidCategory = errors.New("invalid product category")
	ErrInvalidPrice    = errors.New("price must be greater than zero")
	ErrNameRequired    = errors.New("product name is required")
)

// Service handles product business logic
type Service struct {
	db          *gorm.DB
	store       storage.ObjectStore
	imageBucket string
}

// NewService creates a new product service
func NewService(db *gorm.DB, store storage.ObjectStore, imageBucket string) *Service {
	return &Service{
		db:          db,
		store:       store,
		imageBucket: imageBucket,
	}
}

// ListRequest filters the catalog listing
type ListRequest struct {
	Category   string `form:"category"`
	IncludeAll bool   `form:"-"`
	Page       int    `form:"page"`
	Limit      int    `form:"limit"`
}

// ListResponse is a paginated catalog page, newest products first
type ListResponse struct {
	Products []Product `json:"products"`
	Total    int64     `json:"total"`
	Page     int       `json:"page"`
	Limit    int       `json:"limit"`
}

// List returns active products newest first, optionally filtered by category.
// IncludeAll lifts the is_active filter for the admin listing.
func (s *Service) List(ctx context.Context, req *ListRequest) (*ListResponse, error) {
	if req.Page < 1 {
		req.Page = 1
	}
	if req.Limit < 1 || req.Limit > 100 {
		req.Limit = 50
	}

	query := s.db.WithContext(ctx).Model(&Product{})
	if !req.IncludeAll {
		query = query.Where("is_active = ?", true)
	}
	if req.Category != "" {
		if !ValidCategory(req.Category) {
			return nil, ErrInvalidCategory
		}
		query = query.Where("category = ?", req.Category)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, fmt.Errorf("failed to count products: %w", err)
	}

	var products []Product
	offset := (req.Page - 1) * req.Limit
	if err := query.Order("created_at DESC").Offset(offset).Limit(req.Limit).Find(&products).Error; err != nil {
		return nil, fmt.Errorf("failed to list products: %w", err)
	}

	return &ListResponse{
		Products: products,
		Total:    total,
		Page:     req.Page,
		Limit:    req.Limit,
	}, nil
}

// Get returns a single product by ID
func (s *Service) Get(ctx context.Context, id uint) (*Product, error) {
	var product Product
	if err := s.db.WithContext(ctx).First(&product, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, fmt.Errorf("failed to get product: %w", err)
	}
	return &product, nil
}

// Image carries an uploaded product image
type Image struct {
	Filename string
	Content  io.Reader
}

// CreateRequest creates a new product
type CreateRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Price       int64  `json:"price"`
	Category    string `json:"category"`
	IsCustom    bool   `json:"is_custom"`
	IsActive    bool   `json:"is_active"`
}

// Create adds a product to the catalog, storing its image if one is attached
func (s *Service) Create(ctx context.Context, req *CreateRequest, image *Image) (*Product, error) {
	if err := validate(req.Name, req.Price, req.Category); err != nil {
		return nil, err
	}

	product := &Product{
		Name:        strings.TrimSpace(req.Name),
		Description: req.Description,
		Price:       req.Price,
		Category:    req.Category,
		IsCustom:    req.IsCustom,
		IsActive:    req.IsActive,
	}

	if image != nil {
		path, url, err := s.storeImage(ctx, image)
		if err != nil {
			return nil, err
		}
		product.ImagePath = path
		product.ImageURL = url
	}

	if err := s.db.WithContext(ctx).Create(product).Error; err != nil {
		if product.ImagePath != "" {
			s.store.Delete(ctx, s.imageBucket, product.ImagePath)
		}
		return nil, fmt.Errorf("failed to create product: %w", err)
	}

	return product, nil
}

// UpdateRequest updates an existing product. Nil fields are left unchanged.
type UpdateRequest struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
	Price       *int64  `json:"price"`
	Category    *string `json:"category"`
	IsCustom    *bool   `json:"is_custom"`
	IsActive    *bool   `json:"is_active"`
}

// Update modifies a product. A new image replaces the old one, which is
// removed from storage after the row is saved.
func (s *Service) Update(ctx context.Context, id uint, req *UpdateRequest, image *Image) (*Product, error) {
	product, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		if strings.TrimSpace(*req.Name) == "" {
			return nil, ErrNameRequired
		}
		product.Name = strings.TrimSpace(*req.Name)
	}
	if req.Description != nil {
		product.Description = *req.Description
	}
	if req.Price != nil {
		if *req.Price <= 0 {
			return nil, ErrInvalidPrice
		}
		product.Price = *req.Price
	}
	if req.Category != nil {
		if !ValidCategory(*req.Category) {
			return nil, ErrInvalidCategory
		}
		product.Category = *req.Category
	}
	if req.IsCustom != nil {
		product.IsCustom = *req.IsCustom
	}
	if req.IsActive != nil {
		product.IsActive = *req.IsActive
	}

	oldPath := product.ImagePath
	if image != nil {
		path, url, err := s.storeImage(ctx, image)
		if err != nil {
			return nil, err
		}
		product.ImagePath = path
		product.ImageURL = url
	}

	if err := s.db.WithContext(ctx).Save(product).Error; err != nil {
		if image != nil && product.ImagePath != "" {
			s.store.Delete(ctx, s.imageBucket, product.ImagePath)
		}
		return nil, fmt.Errorf("failed to update product: %w", err)
	}

	// Old image removal is best-effort once the row points at the new one
	if image != nil && oldPath != "" && oldPath != product.ImagePath {
		s.store.Delete(ctx, s.imageBucket, oldPath)
	}

	return product, nil
}

// Delete removes a product and its stored image
func (s *Service) Delete(ctx context.Context, id uint) error {
	product, err := s.Get(ctx, id)
	if err != nil {
		return err
	}

	if err := s.db.WithContext(ctx).Delete(product).Error; err != nil {
		return fmt.Errorf("failed to delete product: %w", err)
	}

	if product.ImagePath != "" {
		s.store.Delete(ctx, s.imageBucket, product.ImagePath)
	}
	return nil
}

func (s *Service) storeImage(ctx context.Context, image *Image) (path, url string, err error) {
	name := storage.ObjectName(image.Filename)
	path, err = s.store.Put(ctx, s.imageBucket, name, image.Content)
	if err != nil {
		return "", "", fmt.Errorf("failed to store product image: %w", err)
	}
	return path, s.store.PublicURL(s.imageBucket, path), nil
}

func validate(name string, price int64, category string) error {
	if strings.TrimSpace(name) == "" {
		return ErrNameRequired
	}
	if price <= 0 {
		return ErrInvalidPrice
	}
	if !ValidCategory(category) {
		return ErrInvalidCategory
	}
	return nil
}
