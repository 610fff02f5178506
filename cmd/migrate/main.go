package main

import (
	"log"

	"ai-tutor-be/internal/bootstrap"
	"ai-tutor-be/internal/config"
	"ai-tutor-be/pkg/database"
)

func main() {
	cfg := config.Load()

	db, err := bootstrap.OpenDatabase(cfg)
	if err != nil {
		log.Fatal("Error: Failed to connect to database:", err)
	}
	if db == nil {
		log.Fatal("Error: DB_DRIVER=memory has nothing to migrate; use postgres or sqlite")
	}

	log.Printf("Running AutoMigrate (%s)...", cfg.Database.Driver)
	if err := database.AutoMigrate(db); err != nil {
		log.Fatal("Error: Migration failed:", err)
	}
	log.Println("Migration completed: users, sessions, chats, messages")
}
