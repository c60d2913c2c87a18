package main

import (
	"log"
	"os"

	"go-market-orders/internal/model"
	"go-market-orders/pkg/database"

	"github.com/joho/godotenv"
)

// Creates the admin account, or resets its password if it already exists.
// Email and password come from ADMIN_EMAIL / ADMIN_PASSWORD.
func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found, relying on system env")
	}

	email := os.Getenv("ADMIN_EMAIL")
	if email == "" {
		email = "admin@example.com"
	}
	password := os.Getenv("ADMIN_PASSWORD")
	if password == "" {
		log.Fatal("ADMIN_PASSWORD is required")
	}

	db := database.ConnectDB()
	db.AutoMigrate(&model.User{})

	var user model.User
	err := db.Where("email = ?", email).First(&user).Error
	if err != nil {
		// Not found: create the account
		admin := model.User{
			Email:    email,
			FullName: "Administrator",
			Role:     model.RoleAdmin,
			IsActive: true,
		}
		if err := admin.SetPassword(password); err != nil {
			log.Fatalf("Failed to hash password: %v", err)
		}
		if err := db.Create(&admin).Error; err != nil {
			log.Fatalf("Failed to create admin user: %v", err)
		}
		log.Printf("Admin user created: %s", email)
		return
	}

	if err := user.SetPassword(password); err != nil {
		log.Fatalf("Failed to hash password: %v", err)
	}
	if err := db.Model(&user).Update("password", user.Password).Error; err != nil {
		log.Fatalf("Failed to update password: %v", err)
	}
	log.Printf("Password reset for %s", email)
}
