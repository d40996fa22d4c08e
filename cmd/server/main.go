package main

import (
	"context"
	"log"

	"github.com/codescope/codescope/internal/api"
	"github.com/codescope/codescope/internal/config"
	"github.com/codescope/codescope/internal/db"
	"github.com/gofiber/fiber/v3"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	dbClient, err := db.NewNeo4jClient(context.Background(), db.Neo4jConfig{
		URI:      cfg.Neo4j.URI,
		Username: cfg.Neo4j.User,
		Password: cfg.Neo4j.Password,
	})
	if err != nil {
		log.Fatalf("Failed to connect to Neo4j: %v", err)
	}
	defer dbClient.Close()

	app := fiber.New(fiber.Config{
		AppName: "CodeScope API",
	})

	// Health check
	app.Get("/health", func(c fiber.Ctx) error {
		if err := dbClient.Ping(c.Context()); err != nil {
			return c.Status(503).JSON(fiber.Map{
				"status": "degraded",
				"error":  err.Error(),
			})
		}
		return c.JSON(fiber.Map{
			"status":  "ok",
			"service": "codescope-backend",
		})
	})

	handler := api.NewHandler(cfg, dbClient)
	api.SetupRoutes(app, handler)

	log.Printf("Starting CodeScope backend on port %s", cfg.Port)
	log.Fatal(app.Listen(":" + cfg.Port))
}
