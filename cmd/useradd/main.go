// Command useradd provisions a user account. There is no registration
// endpoint; accounts are created out of band with this tool.
package main

import (
	"context"
	"flag"
	"log"

	"github.com/Evaristo-Paulo/api-ecommerce/internal/config"
	"github.com/Evaristo-Paulo/api-ecommerce/internal/models"
	"github.com/Evaristo-Paulo/api-ecommerce/pkg/db"
)

func main() {
	username := flag.String("username", "", "username (required)")
	password := flag.String("password", "", "password (required)")
	flag.Parse()

	if *username == "" || *password == "" {
		log.Fatal("both -username and -password are required")
	}

	configuration, err := config.LoadConfig()
	if err != nil {
		log.Fatal(err)
	}

	database, err := db.Open(context.Background(), configuration)
	if err != nil {
		log.Fatalf("db init error: %v", err)
	}

	user := models.User{
		Username: *username,
		Password: *password,
	}
	if err := database.Create(&user).Error; err != nil {
		log.Fatalf("create user: %v", err)
	}

	log.Printf("user %q created with id %d", user.Username, user.ID)
}
