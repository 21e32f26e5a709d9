package router

import (
	"fmt"
	"sort"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"

	"github.com/ismaelstrey/quiz-biblico/src/core/middleware"
	"github.com/ismaelstrey/quiz-biblico/src/modules/attempts"
	"github.com/ismaelstrey/quiz-biblico/src/modules/authentication"
	"github.com/ismaelstrey/quiz-biblico/src/modules/generator"
	"github.com/ismaelstrey/quiz-biblico/src/modules/levels"
	"github.com/ismaelstrey/quiz-biblico/src/modules/progress"
	"github.com/ismaelstrey/quiz-biblico/src/modules/quizzes"
)

func InitialiseAndSetupRoutes(app *fiber.App, gen *generator.Client) {
	root := app.Group("/", logger.New())

	root.Get("/ping", func(c *fiber.Ctx) error { return c.SendString("pong") })

	// Authentication routes
	authGroup := root.Group("/auth", middleware.RateLimit(20, time.Minute))
	authGroup.Post("/register", authentication.Register)
	authGroup.Post("/login", authentication.Login)
	authGroup.Post("/logout", authentication.Logout)
	authGroup.Get("/me", middleware.Protected(), authentication.Me)

	// Level catalog
	levelGroup := root.Group("/levels")
	levelGroup.Get("/", levels.GetLevels)
	levelGroup.Post("/", levels.CreateLevel)

	// Quiz CRUD
	quizGroup := root.Group("/quizzes")
	quizGroup.Get("/", quizzes.ListQuizzes)
	quizGroup.Post("/", quizzes.CreateQuiz)
	quizGroup.Get("/:id", quizzes.GetQuiz)
	quizGroup.Put("/:id", quizzes.UpdateQuiz)
	quizGroup.Delete("/:id", quizzes.DeleteQuiz)

	// Quiz attempts (scoring)
	attemptGroup := root.Group("/quiz-attempts", middleware.Protected())
	attemptGroup.Post("/", attempts.SubmitAttempt)
	attemptGroup.Get("/", attempts.ListAttempts)

	// Level progress
	progressGroup := root.Group("/user-progress", middleware.Protected())
	progressGroup.Get("/", progress.GetProgress)
	progressGroup.Post("/", progress.UpdateProgress)

	// AI question generation
	root.Post("/generate-questions",
		middleware.RateLimit(5, time.Minute),
		generator.GenerateQuestions(gen))

	routes := app.GetRoutes()
	sort.Slice(routes, func(i, j int) bool {
		return routes[i].Path < routes[j].Path
	})
	for _, route := range routes {
		fmt.Printf("%s\t%s\n", route.Method, route.Path)
	}
}
