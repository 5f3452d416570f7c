package main

import (
	"context"
	"log"
	"os"

	"golang.org/x/crypto/bcrypt"

	"studentrecords/internal/config"
	"studentrecords/internal/db"
	"studentrecords/internal/model"
	"studentrecords/internal/repository"
)

const bcryptCost = 10

// sampleStudents is the initial data set inserted on first seed.
var sampleStudents = []model.Student{
	{Name: "John Doe", Email: "john.doe@example.com", Phone: "1234567890", Course: "Computer Science", EnrolmentDate: "2024-01-15", IsActive: true},
	{Name: "Jane Smith", Email: "jane.smith@example.com", Phone: "0987654321", Course: "Information Technology", EnrolmentDate: "2024-02-01", IsActive: true},
	{Name: "Ravi Kumar", Email: "ravi.kumar@example.com", Phone: "5551234567", Course: "Mathematics", EnrolmentDate: "2024-03-10", IsActive: true},
	{Name: "Maria Garcia", Email: "maria.garcia@example.com", Course: "Physics", EnrolmentDate: "2024-03-12", IsActive: true},
	{Name: "Chen Wei", Email: "chen.wei@example.com", Phone: "5559876543", Course: "Computer Science", EnrolmentDate: "2024-04-02", IsActive: true},
}

// Users are created here, out-of-band: the API itself exposes no endpoint
// that writes to the users table.
func main() {
	log.Println("Starting seed script...")

	cfg := config.Load()

	gormDB, err := db.NewPostgres(cfg.DatabaseDSN)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	log.Println("Connected to database")

	if err := gormDB.AutoMigrate(&model.User{}, &model.Student{}); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}
	log.Println("Database migrations completed")

	ctx := context.Background()
	userRepo := repository.NewUserRepository(gormDB)
	studentRepo := repository.NewStudentRepository(gormDB)

	username := getEnv("SEED_USERNAME", "admin")
	password := getEnv("SEED_PASSWORD", "admin123")

	if _, err := userRepo.FindByUsername(ctx, username); err == nil {
		log.Printf("User %q already exists, skipping", username)
	} else {
		hash, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
		if err != nil {
			log.Fatalf("Failed to hash password: %v", err)
		}
		if err := userRepo.Create(ctx, &model.User{Username: username, PasswordHash: string(hash)}); err != nil {
			log.Fatalf("Failed to create user: %v", err)
		}
		log.Printf("Created user %q", username)
	}

	total, err := studentRepo.Count(ctx, "")
	if err != nil {
		log.Fatalf("Failed to count students: %v", err)
	}
	if total > 0 {
		log.Printf("Students table already has %d active rows, skipping sample data", total)
		log.Println("Seed completed")
		return
	}

	for i := range sampleStudents {
		if err := studentRepo.Create(ctx, &sampleStudents[i]); err != nil {
			log.Fatalf("Failed to create student %q: %v", sampleStudents[i].Name, err)
		}
	}
	log.Printf("Inserted %d sample students", len(sampleStudents))
	log.Println("Seed completed")
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
