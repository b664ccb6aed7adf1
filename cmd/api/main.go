package main

import (
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
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"alfredoptarigan/cv-assistant/internal/config"
	"alfredoptarigan/cv-assistant/internal/handlers"
	applog "alfredoptarigan/cv-assistant/internal/logger"
	"alfredoptarigan/cv-assistant/internal/repositories"
	"alfredoptarigan/cv-assistant/internal/services"
)

var rootCmd = &cobra.Command{
	Use:          "cv-assistant",
	Short:        "HTTP API for recruiter chat and CV ranking backed by Gemini",
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, _ []string) error {
		return serve()
	},
}

func init() {
	rootCmd.Flags().StringP("port", "p", "", "port to listen on (overrides PORT)")
	rootCmd.Flags().BoolP("debug", "d", false, "verbose/debug output")
	rootCmd.Flags().BoolP("json", "j", false, "json format for logging")

	viper.BindPFlag("PORT", rootCmd.Flags().Lookup("port"))
	viper.BindPFlag("debug", rootCmd.Flags().Lookup("debug"))
	viper.BindPFlag("json", rootCmd.Flags().Lookup("json"))
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func serve() error {
	// Load configuration. A missing GEMINI_API_KEY stops here.
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	zlog, err := applog.New(cfg.Log.JSON, cfg.Log.Debug)
	if err != nil {
		log.Fatalf("creating a logger: %s", err)
	}
	defer zlog.Sync()

	zlog.Info("config loaded", zap.String("env", cfg.Server.Env), zap.String("model", cfg.Gemini.Model))

	sessions := repositories.NewSessionRepository()

	storageService := services.NewStorageService(cfg.Storage.UploadPath)
	if err := storageService.EnsureUploadDir(); err != nil {
		return err
	}
	zlog.Info("scratch directory ready", zap.String("dir", storageService.Dir()))
	pdfParser := services.NewPDFParserService(storageService)

	geminiService, err := services.NewGeminiService(cfg.Gemini, zlog.Named("gemini"))
	if err != nil {
		return fmt.Errorf("failed to initialize Gemini AI: %w", err)
	}

	chatService := services.NewChatService(sessions, geminiService, cfg.Session.HistoryLimit, zlog.Named("chat"))
	evaluatorService := services.NewEvaluatorService(
		sessions,
		geminiService,
		pdfParser,
		cfg.Session.CVExcerptLimit,
		zlog.Named("evaluator"),
	)
	zlog.Info("services initialized")

	h := &handlers.Handlers{
		Chat:       handlers.NewChatHandler(chatService),
		Upload:     handlers.NewUploadHandler(sessions, pdfParser, cfg.Storage.MaxFileSize, zlog.Named("upload")),
		Evaluation: handlers.NewEvaluationHandler(evaluatorService),
	}

	app := fiber.New(fiber.Config{
		AppName:           "Recruiter Assistant API",
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      cfg.Gemini.Timeout + 30*time.Second,
		BodyLimit:         int(cfg.Storage.MaxFileSize) + 1<<20,
		ErrorHandler:      handlers.ErrorHandler,
		EnablePrintRoutes: cfg.IsDevelopment(),
	})

	// Middleware
	app.Use(recover.New())
	app.Use(logger.New(logger.Config{
		Format:     "[${time}] ${status} - ${latency} ${method} ${path}\n",
		TimeFormat: "2006-01-02 15:04:05",
	}))

	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,OPTIONS",
		AllowHeaders: "Origin, Content-Type, Accept",
	}))

	h.Register(app)

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-quit
		zlog.Info("shutting down server")
		if err := app.Shutdown(); err != nil {
			zlog.Error("server forced to shutdown", zap.Error(err))
		}
	}()

	addr := fmt.Sprintf(":%s", cfg.Server.Port)
	zlog.Info("server starting", zap.String("addr", addr))

	return app.Listen(addr)
}
