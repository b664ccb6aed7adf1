package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"alfredoptarigan/cv-assistant/internal/config"
	applog "alfredoptarigan/cv-assistant/internal/logger"
	"alfredoptarigan/cv-assistant/internal/models"
	"alfredoptarigan/cv-assistant/internal/repositories"
	"alfredoptarigan/cv-assistant/internal/services"
)

var (
	jobTitle     string
	requirements string
	debug        bool
)

var rootCmd = &cobra.Command{
	Use:   "evaluate_local [flags] cv.pdf [cv.pdf...]",
	Short: "Rank local PDF CVs against a job without running the API",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return run(cmd.Context(), args)
	},
}

func init() {
	rootCmd.Flags().StringVarP(&jobTitle, "title", "t", "", "job title")
	rootCmd.Flags().StringVarP(&requirements, "requirements", "r", "", "job requirements, one per line")
	rootCmd.Flags().BoolVarP(&debug, "debug", "d", false, "verbose/debug output")
	rootCmd.MarkFlagRequired("title")
	rootCmd.MarkFlagRequired("requirements")
}

func main() {
	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		os.Exit(1)
	}
}

func run(ctx context.Context, paths []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	zlog, err := applog.New(false, debug || cfg.Log.Debug)
	if err != nil {
		log.Fatalf("creating a logger: %s", err)
	}
	defer zlog.Sync()

	geminiService, err := services.NewGeminiService(cfg.Gemini, zlog.Named("gemini"))
	if err != nil {
		return fmt.Errorf("failed to initialize Gemini: %w", err)
	}

	pdfParser := services.NewPDFParserService(services.NewStorageService(os.TempDir()))
	evaluator := services.NewEvaluatorService(
		repositories.NewSessionRepository(),
		geminiService,
		pdfParser,
		cfg.Session.CVExcerptLimit,
		zlog.Named("evaluator"),
	)

	cvs := make([]models.CV, 0, len(paths))
	failCount := 0

	for _, path := range paths {
		if !strings.EqualFold(filepath.Ext(path), ".pdf") {
			zlog.Warn("skipping non-PDF file", zap.String("path", path))
			failCount++
			continue
		}

		content, err := pdfParser.ExtractFileWithMetaData(path)
		if err != nil {
			zlog.Warn("failed to extract CV", zap.String("path", path), zap.Error(err))
			failCount++
			continue
		}

		zlog.Info("extracted CV",
			zap.String("path", path),
			zap.Int("pages", content.PageCount),
			zap.Int("characters", len([]rune(content.Text))),
		)
		cvs = append(cvs, models.CV{Filename: filepath.Base(path), Text: content.Text})
	}

	if failCount > 0 {
		zlog.Warn("some CVs were skipped", zap.Int("skipped", failCount), zap.Int("usable", len(cvs)))
	}

	evaluation, err := evaluator.Evaluate(ctx, cvs, jobTitle, services.SplitRequirements(requirements))
	if err != nil {
		return err
	}

	fmt.Println(evaluation)
	return nil
}
