// seed-admin creates or resets the bootstrap admin account so a fresh
// deployment has a user that can register the rest.
//
// Usage:
//   DB_USER=... DB_PASSWORD=... DB_HOST=... DB_PORT=... DB_NAME=... \
//   ADMIN_USERNAME=... ADMIN_PASSWORD=... go run ./cmd/seed-admin
package main

import (
	"errors"
	"fmt"
	"os"

	"bitbucket.org/gfmis/budget_backend/config"
	"bitbucket.org/gfmis/budget_backend/models"
	"gorm.io/gorm"
)

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func main() {
	username := envOr("ADMIN_USERNAME", "budgetAdmin")
	password := os.Getenv("ADMIN_PASSWORD")
	if password == "" {
		fmt.Fprintln(os.Stderr, "ADMIN_PASSWORD is required")
		os.Exit(1)
	}

	db := config.ConnectDatabaseWithRetry()
	models.MigrateTable(db)

	admin := models.User{
		Name:         envOr("ADMIN_NAME", "Budget Admin"),
		Email:        envOr("ADMIN_EMAIL", "admin@mof.gov.gh"),
		Username:     username,
		Password:     password,
		Role:         models.RoleAdmin,
		Status:       models.UserStatusActive,
		Organization: envOr("ADMIN_ORGANIZATION", "MOF"),
		Designation:  "System Administrator",
	}

	var existing models.User
	err := db.Where("username = ?", username).First(&existing).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		if err := db.Create(&admin).Error; err != nil {
			fmt.Fprintf(os.Stderr, "failed to create admin user: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Created admin user %q\n", username)
		return
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to lookup user: %v\n", err)
		os.Exit(1)
	}

	existing.Password = password
	existing.Role = models.RoleAdmin
	existing.Status = models.UserStatusActive
	if err := db.Save(&existing).Error; err != nil {
		fmt.Fprintf(os.Stderr, "failed to update admin user: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Reset admin user %q\n", username)
}
