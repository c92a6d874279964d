package database

import (
	"fmt"
	"log"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"golang.org/x/crypto/bcrypt"
)

func Connect(dbURL string) (*sqlx.DB, error) {
	db, err := sqlx.Connect("postgres", dbURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return db, nil
}

func Migrate(db *sqlx.DB) error {
	migrations := []string{
		// Create users table
		`CREATE TABLE IF NOT EXISTS users (
			id TEXT PRIMARY KEY,
			email TEXT NOT NULL UNIQUE,
			password TEXT NOT NULL,
			name TEXT NOT NULL,
			role TEXT NOT NULL CHECK(role IN ('morador', 'admin')),
			created_at BIGINT NOT NULL DEFAULT EXTRACT(EPOCH FROM NOW())::BIGINT,
			updated_at BIGINT NOT NULL DEFAULT EXTRACT(EPOCH FROM NOW())::BIGINT
		)`,

		// Create moradores table (one profile per account)
		`CREATE TABLE IF NOT EXISTS moradores (
			id SERIAL PRIMARY KEY,
			user_id TEXT NOT NULL UNIQUE,
			nome TEXT NOT NULL,
			cpf TEXT,
			telefone TEXT,
			endereco TEXT NOT NULL,
			numero TEXT,
			complemento TEXT,
			bairro TEXT,
			cidade TEXT NOT NULL,
			estado CHAR(2) NOT NULL,
			cep TEXT,
			latitude TEXT,
			longitude TEXT,
			fcm_token TEXT,
			created_at BIGINT NOT NULL DEFAULT EXTRACT(EPOCH FROM NOW())::BIGINT,
			updated_at BIGINT NOT NULL DEFAULT EXTRACT(EPOCH FROM NOW())::BIGINT,
			FOREIGN KEY (user_id) REFERENCES users(id) ON DELETE CASCADE
		)`,

		`CREATE INDEX IF NOT EXISTS idx_moradores_user_id ON moradores(user_id)`,
	}

	for i, migration := range migrations {
		if _, err := db.Exec(migration); err != nil {
			return fmt.Errorf("migration %d failed: %w", i+1, err)
		}
	}

	return nil
}

// SeedAdmin creates the default admin account when none exists yet.
// The password comes from ADMIN_PASSWORD, falling back to a dev-only
// default.
func SeedAdmin(db *sqlx.DB) error {
	var count int
	if err := db.Get(&count, "SELECT COUNT(*) FROM users WHERE role = 'admin'"); err != nil {
		return fmt.Errorf("failed to count admins: %w", err)
	}
	if count > 0 {
		return nil
	}

	password := os.Getenv("ADMIN_PASSWORD")
	if password == "" {
		password = "admin123"
		log.Println("⚠️  ADMIN_PASSWORD not set, seeding admin with dev default")
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash admin password: %w", err)
	}

	now := time.Now().Unix()
	_, err = db.Exec(
		`INSERT INTO users (id, email, password, name, role, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, 'admin', $5, $5)`,
		uuid.New().String(), "admin@coleta.local", string(hashed), "Administrador", now,
	)
	if err != nil {
		return fmt.Errorf("failed to seed admin: %w", err)
	}

	log.Println("✅ Default admin account seeded")
	return nil
}
