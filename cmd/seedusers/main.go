// Command seedusers pre-creates the household accounts so the frontend's
// picker has someone to log in as.
package main

import (
	"context"
	"log"

	"github.com/joho/godotenv"

	"github.com/mathfacts/backend/internal/db"
	"github.com/mathfacts/backend/internal/logger"
	"github.com/mathfacts/backend/internal/repos"
	"github.com/mathfacts/backend/internal/seed"
	"github.com/mathfacts/backend/internal/utils"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, relying on process environment")
	}

	appLog, err := logger.New(logger.GetEnvMode())
	if err != nil {
		log.Fatalf("failed to initialize logger: %v", err)
	}
	defer appLog.Sync()

	postgres, err := db.NewPostgresService(appLog)
	if err != nil {
		appLog.Fatal("Connecting to postgres failed", "error", err)
	}
	defer postgres.Close()

	if err := postgres.AutoMigrateAll(); err != nil {
		appLog.Fatal("Migrating schema failed", "error", err)
	}

	pin := utils.GetEnv("SEED_USER_PIN", "1234", appLog)
	users := []seed.SeedUser{
		{Name: "Braylee", Pin: pin, Image: "braylee.png"},
		{Name: "Dad", Pin: pin, Image: "dad.png"},
		{Name: "Mom", Pin: pin, Image: "mom.png"},
	}

	userRepo := repos.NewUserRepo(postgres.DB, appLog)
	if err := seed.Users(context.Background(), postgres.DB, userRepo, appLog, users); err != nil {
		appLog.Fatal("Seeding users failed", "error", err)
	}
	appLog.Info("User seeding complete", "count", len(users))
}
