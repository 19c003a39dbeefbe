// internal/infrastructure/database/postgres/seed.go
package postgres

import (
	"fmt"
	"log"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/baankanom/bakery-backend/internal/domain/product"
	"github.com/baankanom/bakery-backend/internal/domain/user"
)

// Seeder populates development data
type Seeder struct {
	db *gorm.DB
}

// NewSeeder creates a new seeder instance
func NewSeeder(db *gorm.DB) *Seeder {
	return &Seeder{
		db: db,
	}
}

// Run seeds the admin account and a starter catalog. Seeding is idempotent;
// existing rows are left alone.
func (s *Seeder) Run() error {
	if err := s.seedAdmin(); err != nil {
		return err
	}
	return s.seedProducts()
}

func (s *Seeder) seedAdmin() error {
	var count int64
	if err := s.db.Model(&user.User{}).Where("is_admin = ?", true).Count(&count).Error; err != nil {
		return fmt.Errorf("failed to check admin account: %w", err)
	}
	if count > 0 {
		return nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte("admin1234"), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash admin password: %w", err)
	}

	admin := &user.User{
		Email:       "admin@baankanom.dev",
		Password:    string(hash),
		DisplayName: "Shop Admin",
		IsAdmin:     true,
	}
	if err := s.db.Create(admin).Error; err != nil {
		return fmt.Errorf("failed to seed admin account: %w", err)
	}

	log.Println("✅ Seeded admin account admin@baankanom.dev")
	return nil
}

func (s *Seeder) seedProducts() error {
	var count int64
	if err := s.db.Model(&product.Product{}).Count(&count).Error; err != nil {
		return fmt.Errorf("failed to check products: %w", err)
	}
	if count > 0 {
		return nil
	}

	// Prices in satang
	products := []product.Product{
		{Name: "Chocolate Fudge Cake", Description: "Rich dark chocolate layers with fudge frosting", Price: 45000, Category: product.CategoryCake, IsActive: true},
		{Name: "Custom Birthday Cake", Description: "Choose your flavor, frosting, and message", Price: 65000, Category: product.CategoryCake, IsCustom: true, IsActive: true},
		{Name: "Butter Cookies (box of 12)", Description: "Classic Danish-style butter cookies", Price: 12000, Category: product.CategoryCookie, IsActive: true},
		{Name: "Lemon Tart", Description: "Tangy lemon curd in a crisp shell", Price: 9500, Category: product.CategoryTart, IsActive: true},
		{Name: "Vanilla Cupcake", Description: "Vanilla bean sponge with buttercream swirl", Price: 5500, Category: product.CategoryCupcake, IsActive: true},
		{Name: "Macaron Assortment (box of 6)", Description: "Six seasonal flavors", Price: 18000, Category: product.CategoryMacaron, IsActive: true},
		{Name: "Banana Bread Loaf", Description: "Moist loaf with roasted walnuts", Price: 15000, Category: product.CategoryOther, IsActive: true},
	}

	if err := s.db.Create(&products).Error; err != nil {
		return fmt.Errorf("failed to seed products: %w", err)
	}

	log.Printf("✅ Seeded %d products", len(products))
	return nil
}
