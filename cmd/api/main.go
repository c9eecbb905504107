package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"hirelens/resume-parser/internal/config"
	"hirelens/resume-parser/internal/handlers"
	"hirelens/resume-parser/internal/repositories"
	"hirelens/resume-parser/internal/services"
)

func main() {
	// Load configuration
	cfg := config.Load()
	log.Println("✅ Config loaded successfully")

	// Initialize database
	db, err := config.InitDatabase(cfg)
	if err != nil {
		log.Fatalf("❌ Failed to initialize database: %v", err)
	}

	// Initialize repositories
	docRepo := repositories.NewDocumentRepository(db)
	jobRepo := repositories.NewParseJobRepository(db)
	resumeRepo := repositories.NewResumeRepository(db)
	log.Println("✅ Repositories initialized successfully")

	// Initialize services
	storageService := services.NewStorageService(cfg.Storage.UploadPath)
	if err := storageService.EnsureUploadDir(); err != nil {
		log.Fatalf("❌ Failed to create upload directory: %v", err)
	}

	normalizer := services.NewNormalizerService()
	matcher := services.NewMatcherService()

	// Skills lexicon is loaded once and shared read-only across requests
	lexicon := services.DefaultSkillsLexicon()
	if cfg.Parser.SkillsLexiconPath != "" {
		lexicon, err = services.LoadSkillsLexicon(cfg.Parser.SkillsLexiconPath)
		if err != nil {
			log.Fatalf("❌ Failed to load skills lexicon: %v", err)
		}
	}
	log.Printf("✅ Skills lexicon loaded (%d entries)\n", lexicon.Size())

	var nameModel services.NameModel
	if cfg.Parser.EnableNER {
		nameModel = services.NewProseNameModel()
		log.Println("✅ NER name model enabled")
	}

	extractor := services.NewExtractorService(lexicon, nameModel)
	log.Println("✅ Services initialized successfully")

	// Initialize evaluator
	evaluatorService := services.NewEvaluatorService(
		jobRepo,
		docRepo,
		resumeRepo,
		storageService,
		normalizer,
		extractor,
		matcher,
	)
	log.Println("✅ Evaluator service initialized")

	// Initialize worker
	worker := services.NewWorker(
		jobRepo,
		evaluatorService,
		cfg.Worker.Concurrency,
		cfg.Worker.PollInterval,
	)
	log.Println("✅ Worker initialized successfully")

	// Start worker
	ctx := context.Background()
	worker.Start(ctx)
	log.Println("✅ Worker started successfully")

	// Initialize Handlers
	uploadHandler := handlers.NewUploadHandler(
		docRepo,
		storageService,
		cfg.Storage.MaxFileSize,
	)
	parseHandler := handlers.NewParseHandler(
		jobRepo,
		docRepo,
		worker,
	)
	resultHandler := handlers.NewResultHandler(jobRepo, resumeRepo)
	resumesHandler := handlers.NewResumesHandler(resumeRepo)
	log.Println("✅ Handlers initialized")

	// Create Fiber app
	app := fiber.New(fiber.Config{
		AppName:      "Resume Parser API",
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		BodyLimit:    int(cfg.Storage.MaxFileSize),
		ErrorHandler: customErrorHandler,
	})

	// Middleware
	app.Use(recover.New())
	app.Use(logger.New(logger.Config{
		Format:     "[${time}] ${status} - ${latency} ${method} ${path}\n",
		TimeFormat: "2006-01-02 15:04:05",
	}))

	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,PUT,DELETE,OPTIONS",
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
	}))

	// Routes
	api := app.Group("/api/v1")

	// Health check
	api.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status": "healthy",
			"time":   time.Now(),
		})
	})

	// API endpoints
	api.Post("/upload", uploadHandler.HandleUpload)
	api.Post("/parse", parseHandler.HandleParse)
	api.Get("/result/:id", resultHandler.HandleGetResult)
	api.Get("/resumes", resumesHandler.HandleListResumes)

	// Root route
	app.Get("/", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"message": "Resume Parser API",
			"version": "1.0.0",
			"endpoints": []string{
				"POST /api/v1/upload",
				"POST /api/v1/parse",
				"GET /api/v1/result/:id",
				"GET /api/v1/resumes",
			},
		})
	})

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-quit
		log.Println("\n🛑 Shutting down server...")
		worker.Stop()
		if err := app.Shutdown(); err != nil {
			log.Printf("❌ Server forced to shutdown: %v", err)
		}
	}()

	// Start server
	addr := fmt.Sprintf(":%s", cfg.Server.Port)
	log.Printf("🚀 Server starting on %s\n", addr)

	if err := app.Listen(addr); err != nil {
		log.Fatalf("❌ Failed to start server: %v", err)
	}
}

func customErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError

	if e, ok := err.(*fiber.Error); ok {
		code = e.Code
	}

	return c.Status(code).JSON(fiber.Map{
		"error": err.Error(),
		"code":  code,
	})
}
