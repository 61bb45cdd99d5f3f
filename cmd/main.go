package main

import (
	"log"

	"github.com/joho/godotenv"

	"github.com/mathfacts/backend/internal/app"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, relying on process environment")
	}

	a, err := app.New()
	if err != nil {
		log.Fatalf("failed to initialize application: %v", err)
	}
	defer a.Close()

	if err := a.Run(); err != nil {
		a.Log.Fatal("Server stopped", "error", err)
	}
}
