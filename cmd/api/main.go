package main

import (
	"context"
	"fmt"
	"log"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"alfredoptarigan/resume-analyzer/internal/config"
	"alfredoptarigan/resume-analyzer/internal/handlers"
	"alfredoptarigan/resume-analyzer/internal/services"
)

const (
	// multipart framing on top of the file itself
	uploadOverhead = 64 * 1024
	writeTimeout   = 120 * time.Second
)

func main() {
	// Load configuration
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		log.Fatalf("❌ Invalid configuration: %v", err)
	}
	log.Println("✅ Config loaded successfully")

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Initialize Gemini AI
	geminiService, err := services.NewGeminiService(ctx, cfg.Gemini)
	if err != nil {
		log.Fatalf("❌ Failed to initialize Gemini AI: %v", err)
	}
	log.Println("✅ Gemini AI initialized successfully")

	// Initialize services
	uploadReader := services.NewUploadReader(cfg.Upload.MaxFileSize)
	extractor := services.NewDocumentExtractor(
		services.NewPDFParserService(),
		services.NewDocxParserService(),
	)
	analyzer := services.NewResumeAnalyzer(geminiService, cfg.Gemini.Temperature)
	log.Println("✅ Services initialized successfully")

	// Initialize worker
	worker := services.NewWorker(analyzer, cfg.Worker.Concurrency, cfg.Worker.QueueSize)
	worker.Start(ctx)
	log.Println("✅ Worker started successfully")

	// Initialize Handlers
	extractHandler := handlers.NewExtractHandler(uploadReader, extractor)
	analyzeHandler := handlers.NewAnalyzeHandler(worker, writeTimeout)
	log.Println("✅ Handlers initialized")

	// Create Fiber app
	app := fiber.New(fiber.Config{
		AppName:      "AI Resume Analyzer API",
		ReadTimeout:  30 * time.Second,
		WriteTimeout: writeTimeout,
		BodyLimit:    int(cfg.Upload.MaxFileSize) + uploadOverhead,
		ErrorHandler: handlers.ErrorHandler,
	})

	// Middleware
	app.Use(recover.New())
	app.Use(logger.New(logger.Config{
		Format:     "[${time}] ${status} - ${latency} ${method} ${path}\n",
		TimeFormat: "2006-01-02 15:04:05",
	}))

	app.Use(cors.New(cors.Config{
		AllowOrigins: cfg.Server.CORSAllowOrigins,
		AllowMethods: "GET,POST,OPTIONS",
		AllowHeaders: "Origin, Content-Type, Accept",
	}))

	handlers.RegisterRoutes(app, extractHandler, analyzeHandler)

	// Graceful shutdown
	go func() {
		<-ctx.Done()
		log.Println("\n🛑 Shutting down server...")
		if err := app.Shutdown(); err != nil {
			log.Printf("❌ Server forced to shutdown: %v", err)
		}
	}()

	// Start server
	addr := fmt.Sprintf(":%s", cfg.Server.Port)
	log.Printf("🚀 Server starting on %s\n", addr)

	if err := app.Listen(addr); err != nil {
		worker.Stop()
		log.Fatalf("❌ Failed to start server: %v", err)
	}

	worker.Stop()
	log.Println("✅ Server exited")
}
