package main

import (
	"fmt"
	"log"
	"os"

	"github.com/jmoiron/sqlx"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"

	"coleta-portal/internal/database"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	dbURL := os.Getenv("DATABASE_URL")
	if dbURL == "" {
		log.Fatal("DATABASE_URL environment variable not set")
	}

	db, err := sqlx.Connect("postgres", dbURL)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	log.Println("Connected to database successfully")

	if err := database.Migrate(db); err != nil {
		log.Fatalf("Migration failed: %v", err)
	}
	if err := database.SeedAdmin(db); err != nil {
		log.Fatalf("Admin seeding failed: %v", err)
	}

	log.Println("Migration completed successfully!")

	var result struct {
		TotalUsers     int `db:"total_users"`
		TotalMoradores int `db:"total_moradores"`
		SemCoords      int `db:"sem_coords"`
	}

	query := `
		SELECT
			(SELECT COUNT(*) FROM users) AS total_users,
			COUNT(*) AS total_moradores,
			COUNT(CASE WHEN latitude IS NULL OR latitude = ''
			            OR longitude IS NULL OR longitude = '' THEN 1 END) AS sem_coords
		FROM moradores
	`

	if err := db.Get(&result, query); err != nil {
		log.Fatalf("Failed to query summary: %v", err)
	}

	fmt.Println("\n============================================================")
	fmt.Println("MIGRATION SUMMARY")
	fmt.Println("============================================================")
	fmt.Printf("Total accounts:            %d\n", result.TotalUsers)
	fmt.Printf("Resident profiles:         %d\n", result.TotalMoradores)
	fmt.Printf("Profiles without coords:   %d (collection queries blocked)\n", result.SemCoords)
	fmt.Println("============================================================")
}
