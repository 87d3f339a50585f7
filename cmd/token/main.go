// Command token mints an access token for local development.
package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/joho/godotenv"

	"github.com/Rrens/teetime/internal/config"
	"github.com/Rrens/teetime/internal/security"
)

func main() {
	_ = godotenv.Load()

	role := flag.String("role", security.RoleGolfer, "token role (golfer or admin)")
	user := flag.String("user", "", "user ID, random when empty")
	email := flag.String("email", "dev@example.com", "email claim")
	ttl := flag.Duration("ttl", 0, "token lifetime, defaults to auth.access_token_ttl")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	userID := uuid.New()
	if *user != "" {
		if userID, err = uuid.Parse(*user); err != nil {
			fmt.Fprintf(os.Stderr, "invalid user ID: %v\n", err)
			os.Exit(1)
		}
	}

	lifetime := cfg.Auth.AccessTokenTTL
	if *ttl > 0 {
		lifetime = *ttl
	}
	if lifetime <= 0 {
		lifetime = 15 * time.Minute
	}

	token, err := security.NewJWTManager(cfg.Auth.JWTSecret, lifetime).GenerateAccessToken(userID, *email, *role)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to generate token: %v\n", err)
		os.Exit(1)
	}

	fmt.Println(token)
}
