package main

import (
	"database/sql"
	"fmt"
	"log"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/joho/godotenv"

	"twitter-clone-backend/config"
	"twitter-clone-backend/pkg/helpers"
)

func main() {
	_ = godotenv.Load()
	cfg := config.Load()

	db, err := sql.Open("pgx", cfg.PostgresDSN())
	if err != nil {
		log.Fatalf("failed to open db: %v", err)
	}
	defer func() { _ = db.Close() }()

	password := "password123"
	hash, err := helpers.HashPassword(password)
	if err != nil {
		log.Fatalf("failed to hash password: %v", err)
	}

	seedUser := func(name, username, email string) string {
		var id string
		err := db.QueryRow(`
			INSERT INTO users (name, username, email, password_hash)
			VALUES ($1, $2, $3, $4)
			ON CONFLICT (email) DO UPDATE SET name = EXCLUDED.name
			RETURNING id::text
		`, name, username, email, hash).Scan(&id)
		if err != nil {
			log.Fatalf("failed to seed user %s: %v", username, err)
		}
		fmt.Printf("seeded user: id=%s username=%s email=%s password=%s\n", id, username, email, password)
		return id
	}

	aliceID := seedUser("Alice Demo", "alice", "alice@example.com")
	seedUser("Bob Demo", "bob", "bob@example.com")

	var tweetID string
	if err := db.QueryRow(`
		INSERT INTO tweets (content, tweeted_by)
		VALUES ($1, $2::uuid)
		RETURNING id::text
	`, "hello world", aliceID).Scan(&tweetID); err != nil {
		log.Fatalf("failed to seed tweet: %v", err)
	}
	fmt.Printf("seeded tweet: id=%s author=%s\n", tweetID, aliceID)
}
