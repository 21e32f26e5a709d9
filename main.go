package main

import (
	"fmt"
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"

	"github.com/ismaelstrey/quiz-biblico/src/core/config"
	"github.com/ismaelstrey/quiz-biblico/src/core/database"
	"github.com/ismaelstrey/quiz-biblico/src/core/helpers"
	"github.com/ismaelstrey/quiz-biblico/src/core/logging"
	"github.com/ismaelstrey/quiz-biblico/src/core/router"
	"github.com/ismaelstrey/quiz-biblico/src/modules/generator"
)

func main() {
	// Setup environment variables
	config.SetupEnv()

	logLevel := config.ConfigOr("LOG_LEVEL", "debug")
	if config.IsProduction() {
		logLevel = config.ConfigOr("LOG_LEVEL", "info")
	}
	appLog := logging.New(logLevel)

	// Initialize the Fiber app; every handler error funnels through the
	// structured error handler.
	app := fiber.New(fiber.Config{
		ErrorHandler: helpers.ErrorHandler(appLog),
	})

	// Middleware
	app.Use(recover.New())   // Recover middleware to handle panics
	app.Use(cors.New())      // CORS middleware for cross-origin requests
	app.Use(requestid.New()) // Middleware to generate unique request IDs

	// Connect to the database and apply the schema
	database.ConnectDB()
	database.Migrate()

	if config.ConfigBool("APP_SEED") {
		if err := database.Seed(appLog); err != nil {
			log.Fatalf("Error seeding database: %v", err)
		}
	}

	gen := generator.NewClient(
		config.ConfigOr("OPENAI_BASE_URL", "https://api.openai.com/v1"),
		config.Config("OPENAI_API_KEY"),
		config.ConfigOr("OPENAI_MODEL", "gpt-3.5-turbo"),
		time.Duration(config.ConfigIntOr("OPENAI_TIMEOUT_SECONDS", 30))*time.Second,
		appLog,
	)

	// Set up routes
	router.InitialiseAndSetupRoutes(app, gen)

	// Get port from config and start the server
	port := config.ConfigOr("APP_PORT", "8080")
	log.Fatal(app.Listen(fmt.Sprintf(":%s", port)))
}
