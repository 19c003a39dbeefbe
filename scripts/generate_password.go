// scripts/generate_password.go
//
// Prints a bcrypt hash suitable for seeding an admin account, using the
// same password rules and cost the API enforces.
package main

import (
	"fmt"
	"log"
	"os"

	"github.com/baankanom/bakery-backend/internal/config"
	"github.com/baankanom/bakery-backend/internal/pkg/auth"
)

func main() {
	if len(os.Args) < 2 {
		log.Fatal("Usage: go run scripts/generate_password.go <password>")
	}
	password := os.Args[1]

	cfg := &config.Config{}
	cfg.Security.BcryptCost = 12

	passwords := auth.NewPasswordManager(cfg)
	hash, err := passwords.HashPassword(password)
	if err != nil {
		log.Fatal("Failed to hash password: ", err)
	}
	if err := passwords.VerifyPassword(password, hash); err != nil {
		log.Fatal("Hash verification failed: ", err)
	}

	fmt.Println(hash)
}
