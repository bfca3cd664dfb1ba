package main

import (
	"log"

	"github.com/sakchaid/krua-pos/internal/config"
	"github.com/sakchaid/krua-pos/internal/db"
)

func main() {
	cfg := config.Load()
	if err := db.RunMigrations(cfg.PostgresDSN); err != nil {
		log.Fatalf("migrations: %v", err)
	}
	log.Printf("migrations applied")
}
