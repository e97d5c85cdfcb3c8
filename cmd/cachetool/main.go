package main

import (
	"context"
	"log"
	"os"
	"strings"

	"flight-meetup-service/internal/adapters/cachestore"
	"flight-meetup-service/internal/platform/db"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/joho/godotenv"
)

// Cache maintenance for the Postgres backend: creates the schema and
// drops rows past their TTL. Reads never serve stale rows, so this only
// reclaims space.
func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found (using environment variables)")
	}

	databaseURL := os.Getenv("DATABASE_URL")
	if strings.TrimSpace(databaseURL) == "" {
		log.Fatal("DATABASE_URL is required")
	}

	conn, err := db.Open(databaseURL)
	if err != nil {
		log.Fatal(err)
	}
	defer conn.Close()

	log.Println("Initializing cache schema...")
	if err := cachestore.InitSchema(conn); err != nil {
		log.Fatalf("schema initialization failed: %v", err)
	}
	log.Println("Schema ready.")

	store := cachestore.NewSQLStore(conn)
	dropped, err := store.DeleteStale(context.Background())
	if err != nil {
		log.Fatalf("stale sweep failed: %v", err)
	}
	log.Printf("Stale sweep complete dropped=%d", dropped)
}
