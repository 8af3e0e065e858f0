package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"time"

	storage "github.com/simplechat/simplechat/backend/internal/storage/pg"
	"github.com/simplechat/simplechat/shared/config"
	"github.com/simplechat/simplechat/shared/jwt"
	"github.com/simplechat/simplechat/shared/storage/pg"
)

// issue-token makes sure a user exists and prints an access token for it.
func main() {
	var configFolder, username string
	flag.StringVar(&configFolder, "config_folder", "backend/config", "path to folder with configs")
	flag.StringVar(&username, "username", "", "user to issue the token for")
	flag.Parse()

	if username == "" {
		log.Fatal("-username is required")
	}

	cfg := config.MustLoad(configFolder)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	db, err := pg.Connect(ctx, cfg.Private.Pg, pg.LightweightConnectionConfig())
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	s := storage.FromDB(db)
	defer s.Cleanup()

	user, err := s.EnsureUser(ctx, username)
	if err != nil {
		log.Fatalf("Failed to create user: %v", err)
	}

	token, err := jwt.New(cfg.JwtKey(), cfg.JwtTTL()).NewToken(user)
	if err != nil {
		log.Fatalf("Failed to issue token: %v", err)
	}

	fmt.Printf("user:  %s (id %d)\n", user.Username, user.Id)
	fmt.Printf("valid: %s\n", cfg.JwtTTL())
	fmt.Println()
	fmt.Println(token)
	fmt.Println()
	fmt.Println("Use it as a header:")
	fmt.Printf("Authorization: Bearer %s\n", token)
}
