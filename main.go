package main

import (
	"context"
	"log"
	"os"
	"time"

	gfshutdown "github.com/gelmium/graceful-shutdown"
	"github.com/go-monolith/mono"
	"github.com/joho/godotenv"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/example/task-manager/modules/ai"
	"github.com/example/task-manager/modules/api"
	"github.com/example/task-manager/modules/auth"
	"github.com/example/task-manager/modules/tasks"
)

const (
	shutdownTimeout = 30 * time.Second
	defaultDBPath   = "task-manager.db"
)

func main() {
	log.Println("=== Task Manager ===")

	// Missing .env is fine; the environment may already be set.
	if err := godotenv.Load(); err == nil {
		log.Println("Loaded configuration from .env")
	}

	db, err := openDatabase()
	if err != nil {
		log.Fatalf("Failed to open database: %v", err)
	}

	// Create mono application
	app, err := mono.NewMonoApplication(
		mono.WithShutdownTimeout(shutdownTimeout),
		mono.WithLogLevel(mono.LogLevelInfo),
		mono.WithLogFormat(mono.LogFormatText),
	)
	if err != nil {
		log.Fatalf("Failed to create application: %v", err)
	}

	// Register modules with the framework
	// Order: independent modules first, then dependent modules
	app.Register(auth.NewModule(db))
	app.Register(tasks.NewModule(db))
	app.Register(ai.NewModule())
	app.Register(api.NewModule()) // Depends on auth, tasks and ai

	// Start application
	if err := app.Start(context.Background()); err != nil {
		log.Fatalf("Failed to start application: %v", err)
	}

	printStartupInfo()

	// Graceful shutdown
	wait := gfshutdown.GracefulShutdown(
		context.Background(),
		shutdownTimeout,
		map[string]gfshutdown.Operation{
			"mono-app": func(ctx context.Context) error {
				log.Println("Graceful shutdown initiated...")
				return app.Stop(ctx)
			},
		},
	)

	exitCode := <-wait
	log.Printf("Application exited with code: %d", exitCode)
	os.Exit(exitCode)
}

// openDatabase opens the shared SQLite store used by the auth and tasks
// modules.
func openDatabase() (*gorm.DB, error) {
	path := os.Getenv("DB_PATH")
	if path == "" {
		path = defaultDBPath
	}
	return gorm.Open(sqlite.Open(path), &gorm.Config{})
}

func printStartupInfo() {
	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	log.Println("")
	log.Println("Application started successfully!")
	log.Println("")
	log.Printf("REST API Endpoints (http://localhost:%s):", port)
	log.Println("")
	log.Println("  Public Endpoints:")
	log.Println("  POST   /api/auth/register        - Register a new account")
	log.Println("  POST   /api/auth/login           - Login and get a token")
	log.Println("  GET    /api/health               - Health check")
	log.Println("")
	log.Println("  Protected Endpoints (require Bearer token):")
	log.Println("  GET    /api/tasks                - List your tasks")
	log.Println("  POST   /api/tasks                - Create a task")
	log.Println("  POST   /api/tasks/ai             - Create a task from free text")
	log.Println("  GET    /api/tasks/:id            - Get a task")
	log.Println("  PUT    /api/tasks/:id            - Update a task")
	log.Println("  DELETE /api/tasks/:id            - Delete a task")
	log.Println("  POST   /api/ai-tasks/create      - Parse free text into task fields")
	log.Println("  POST   /api/ai-tasks/enhance     - Improve task fields")
	log.Println("  POST   /api/ai-tasks/suggestions - Get improvement suggestions")
	log.Println("")
	log.Println("Press Ctrl+C to shutdown gracefully")
}
