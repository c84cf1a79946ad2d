package main

import (
	"database/sql"
	"log"
	"os"

	"github.com/Mendozape/crud-sub000/app/config"
	"github.com/Mendozape/crud-sub000/app/database"
)

func main() {
	log.Println("Running database migrations...")

	if _, err := config.Load(""); err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	if err := config.InitDB(); err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	db := config.GetDB()
	defer db.Close()

	if err := database.RunMigrations(db); err != nil {
		log.Fatalf("Migration failed: %v", err)
	}

	// Extra SQL files can be passed for one-off schema fixes
	for _, path := range os.Args[1:] {
		executeSQLFile(db, path)
	}

	log.Println("Migrations completed successfully")
}

func executeSQLFile(db *sql.DB, filePath string) {
	content, err := os.ReadFile(filePath)
	if err != nil {
		log.Printf("Skipping %s: %v", filePath, err)
		return
	}

	log.Printf("Executing %s...", filePath)
	if _, err := db.Exec(string(content)); err != nil {
		log.Printf("Error executing %s: %v", filePath, err)
	} else {
		log.Printf("Successfully executed %s", filePath)
	}
}
