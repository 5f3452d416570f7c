package main

import (
	"log"
	"net/http"
	"os"

	_ "studentrecords/docs" // swagger docs

	"github.com/labstack/echo/v4"

	"studentrecords/internal/auth"
	"studentrecords/internal/config"
	"studentrecords/internal/db"
	"studentrecords/internal/handler"
	"studentrecords/internal/model"
	"studentrecords/internal/repository"
	"studentrecords/internal/router"
	"studentrecords/internal/service"
)

// @title Student Records API
// @version 1.0
// @description Student records management API with token authentication and soft-deleting CRUD.
// @host localhost:5000
// @BasePath /api
// @schemes http
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and the access token.
func main() {
	cfg := config.Load()

	e := echo.New()

	gormDB, err := db.NewPostgres(cfg.DatabaseDSN)
	if err != nil {
		log.Fatalf("database init: %v", err)
	}

	// Drop tables if RESET_DB environment variable is set
	if os.Getenv("RESET_DB") == "true" {
		log.Println("RESET_DB=true detected, dropping all tables...")
		tables := []interface{}{
			&model.Student{},
			&model.User{},
		}
		for _, table := range tables {
			if err := gormDB.Migrator().DropTable(table); err != nil {
				log.Printf("Warning: Failed to drop table (may not exist): %v", err)
			}
		}
		log.Println("Tables dropped")
	}

	// Run migrations for all models
	if err := gormDB.AutoMigrate(
		&model.User{},
		&model.Student{},
	); err != nil {
		log.Fatalf("auto-migrate: %v", err)
	}

	// Initialize repositories
	userRepo := repository.NewUserRepository(gormDB)
	studentRepo := repository.NewStudentRepository(gormDB)

	// Initialize auth components
	tokenService := auth.NewTokenService(cfg.JWTSecret)

	// Initialize services
	authService := service.NewAuthService(userRepo, tokenService)
	studentService := service.NewStudentService(studentRepo)

	// Initialize handlers
	authHandler := handler.NewAuthHandler(authService)
	studentHandler := handler.NewStudentHandler(studentService)

	// Register routes
	router.Register(e, cfg, tokenService, authHandler, studentHandler)

	addr := ":" + cfg.ServerPort
	if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
		log.Fatalf("server start: %v", err)
	}
}
