package main

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/jackc/pgx/v5"
	"github.com/joho/godotenv"
)

func main() {
	// Load environment variables
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found")
	}

	// Get database URL
	dbURL := os.Getenv("DATABASE_URL")
	if dbURL == "" {
		log.Fatal("DATABASE_URL environment variable is not set")
	}

	// Get command
	if len(os.Args) < 2 {
		fmt.Println("Usage: go run main.go [drop|up|seed]")
		os.Exit(1)
	}

	command := os.Args[1]

	// Connect to database
	ctx := context.Background()
	conn, err := pgx.Connect(ctx, dbURL)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer conn.Close(ctx)

	switch command {
	case "drop":
		if err := dropTables(ctx, conn); err != nil {
			log.Fatalf("Failed to drop tables: %v", err)
		}
		fmt.Println("✅ All tables dropped successfully")

	case "up":
		if err := createTables(ctx, conn); err != nil {
			log.Fatalf("Failed to create tables: %v", err)
		}
		fmt.Println("✅ All tables created successfully")

	case "seed":
		if err := seedData(ctx, conn); err != nil {
			log.Fatalf("Failed to seed data: %v", err)
		}
		fmt.Println("✅ Data seeded successfully")

	default:
		fmt.Printf("Unknown command: %s\n", command)
		fmt.Println("Usage: go run main.go [drop|up|seed]")
		os.Exit(1)
	}
}

func dropTables(ctx context.Context, conn *pgx.Conn) error {
	queries := []string{
		`DROP TABLE IF EXISTS submissions CASCADE`,
		`DROP TABLE IF EXISTS certificate_templates CASCADE`,
		`DROP TABLE IF EXISTS workshops CASCADE`,
		`DROP TABLE IF EXISTS admins CASCADE`,
	}

	for _, query := range queries {
		if _, err := conn.Exec(ctx, query); err != nil {
			return fmt.Errorf("failed to execute query: %w", err)
		}
		fmt.Printf("  Dropped: %s\n", query)
	}

	return nil
}

func createTables(ctx context.Context, conn *pgx.Conn) error {
	queries := []string{
		// Create admins table
		`CREATE TABLE IF NOT EXISTS admins (
			id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
			email VARCHAR(255) UNIQUE NOT NULL,
			name VARCHAR(255) NOT NULL,
			password_hash VARCHAR(255) NOT NULL,
			created_at TIMESTAMP DEFAULT NOW()
		)`,

		// Create workshops table with opaque public links
		`CREATE TABLE IF NOT EXISTS workshops (
			id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
			admin_id UUID REFERENCES admins(id) ON DELETE CASCADE,
			workshop_name VARCHAR(100) NOT NULL,
			college_name VARCHAR(255) NOT NULL,
			date VARCHAR(10) NOT NULL,
			time VARCHAR(5) NOT NULL,
			instructions TEXT NOT NULL,
			is_active BOOLEAN DEFAULT true,
			public_link VARCHAR(16) UNIQUE NOT NULL,
			created_at TIMESTAMP DEFAULT NOW(),
			updated_at TIMESTAMP
		)`,

		// Create submissions table (append-only feedback records)
		`CREATE TABLE IF NOT EXISTS submissions (
			id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
			submission_id VARCHAR(20) UNIQUE NOT NULL,
			workshop_id UUID REFERENCES workshops(id) ON DELETE CASCADE,
			name VARCHAR(255) NOT NULL,
			course VARCHAR(255) NOT NULL,
			phone VARCHAR(20) NOT NULL,
			email VARCHAR(255) NOT NULL,
			feedback TEXT NOT NULL,
			phone_verified BOOLEAN DEFAULT false,
			email_verified BOOLEAN DEFAULT false,
			certificate_url TEXT,
			submitted_at TIMESTAMP DEFAULT NOW()
		)`,

		// Create certificate templates table
		`CREATE TABLE IF NOT EXISTS certificate_templates (
			id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
			name VARCHAR(255) NOT NULL,
			url TEXT NOT NULL,
			is_active BOOLEAN DEFAULT false,
			created_at TIMESTAMP DEFAULT NOW()
		)`,

		// Create indexes
		`CREATE INDEX IF NOT EXISTS idx_workshops_admin_id ON workshops(admin_id)`,
		`CREATE UNIQUE INDEX IF NOT EXISTS idx_workshops_public_link ON workshops(public_link)`,
		`CREATE INDEX IF NOT EXISTS idx_submissions_workshop_id ON submissions(workshop_id)`,
		`CREATE INDEX IF NOT EXISTS idx_submissions_submitted_at ON submissions(submitted_at DESC)`,
		`CREATE INDEX IF NOT EXISTS idx_templates_active ON certificate_templates(is_active)`,
	}

	for _, query := range queries {
		if _, err := conn.Exec(ctx, query); err != nil {
			return fmt.Errorf("failed to execute query: %w\nQuery: %s", err, query)
		}
		fmt.Printf("  Created: %s\n", getTableName(query))
	}

	return nil
}

func seedData(ctx context.Context, conn *pgx.Conn) error {
	// Seed a development admin account. The password hash below is bcrypt for
	// "changeme123" and is only meant for local environments.
	adminQuery := `
		INSERT INTO admins (email, name, password_hash) VALUES
		('admin@example.com', 'Dev Admin', '$2a$10$N9qo8uLOickgx2ZMRZoMyeIjZAgcfl7p92ldGxad68LJZdL17lhWy')
		ON CONFLICT (email) DO NOTHING
	`

	if _, err := conn.Exec(ctx, adminQuery); err != nil {
		return fmt.Errorf("failed to seed admin: %w", err)
	}

	fmt.Println("  Seeded development admin account")

	workshopQuery := `
		INSERT INTO workshops (admin_id, workshop_name, college_name, date, time, instructions, is_active, public_link)
		SELECT id, 'Intro to Robotics', 'Springfield College', '2026-09-15', '10:00',
			'Please share honest feedback about the workshop.', true, 'DevWorkshopLink1'
		FROM admins WHERE email = 'admin@example.com'
		ON CONFLICT (public_link) DO NOTHING
	`

	if _, err := conn.Exec(ctx, workshopQuery); err != nil {
		return fmt.Errorf("failed to seed workshop: %w", err)
	}

	fmt.Println("  Seeded sample workshop")

	return nil
}

func getTableName(query string) string {
	if len(query) > 50 {
		return query[:50] + "..."
	}
	return query
}
