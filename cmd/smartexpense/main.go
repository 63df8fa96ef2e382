package main

import (
	_ "embed"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/peterbourgon/ff/v4"
	"github.com/peterbourgon/ff/v4/ffhelp"

	"github.com/smartexpense/tracker/internal/expense"
	"github.com/smartexpense/tracker/internal/extraction"
)

//go:embed VERSION.txt
var versionFile string

var version = strings.TrimSpace(versionFile)

func main() {
	// Local development keys live in .env; a missing file is fine
	_ = godotenv.Load()

	fs := ff.NewFlagSet("smartexpense")
	var (
		port           = fs.IntLong("port", 8080, "HTTP server port")
		dbPath         = fs.StringLong("db", "smartexpense.db", "Database file path")
		visionEndpoint = fs.StringLong("vision-endpoint", "", "Vision annotate endpoint (default: Google Vision API)")
		visionKey      = fs.StringLong("vision-key", "", "Vision API key (or set GOOGLE_API_KEY env var)")
		ocrTimeout     = fs.DurationLong("ocr-timeout", 8*time.Second, "OCR request timeout")
		extractorType  = fs.StringLong("extractor", "openai", "Field extractor: 'openai' or 'gemini'")
		openaiKey      = fs.StringLong("openai-key", "", "OpenAI API key, also used for monthly summaries (or set OPENAI_API_KEY env var)")
		openaiModel    = fs.StringLong("openai-model", "gpt-3.5-turbo", "OpenAI model name")
		geminiKey      = fs.StringLong("gemini-key", "", "Google Gemini API key (or set GEMINI_API_KEY env var)")
		geminiModel    = fs.StringLong("gemini-model", "gemini-2.5-pro", "Google Gemini model name")
		authUser       = fs.StringLong("auth-user", "", "Basic auth username (optional)")
		authPass       = fs.StringLong("auth-pass", "", "Basic auth password (optional)")
		showVersion    = fs.BoolLong("version", "Show version information")
	)

	if err := ff.Parse(fs, os.Args[1:],
		ff.WithEnvVarPrefix("SMARTEXPENSE"),
	); err != nil {
		fmt.Fprintf(os.Stderr, "%s\n", ffhelp.Flags(fs))
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}

	if *showVersion {
		fmt.Println(version)
		os.Exit(0)
	}

	// Initialize database
	slog.Info("Initializing database...", "path", *dbPath)
	db, err := expense.NewBoltDB(*dbPath)
	if err != nil {
		slog.Error("Failed to initialize database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	// Initialize OCR client
	apiKey := *visionKey
	if apiKey == "" {
		apiKey = os.Getenv("GOOGLE_API_KEY")
	}
	if apiKey == "" {
		slog.Error("Vision API key is required. Set --vision-key flag or GOOGLE_API_KEY environment variable")
		os.Exit(1)
	}
	text, err := extraction.NewVision(*visionEndpoint, apiKey, *ocrTimeout)
	if err != nil {
		slog.Error("Failed to initialize Vision client", "error", err)
		os.Exit(1)
	}

	// OpenAI key serves both the extractor (when selected) and insights
	oaKey := *openaiKey
	if oaKey == "" {
		oaKey = os.Getenv("OPENAI_API_KEY")
	}

	// Initialize field extractor based on type
	var fields extraction.FieldProvider
	switch *extractorType {
	case "openai":
		if oaKey == "" {
			slog.Error("OpenAI API key is required. Set --openai-key flag or OPENAI_API_KEY environment variable")
			os.Exit(1)
		}
		slog.Info("Initializing OpenAI extractor...", "model", *openaiModel)
		fields, err = extraction.NewOpenAI(oaKey, *openaiModel)
		if err != nil {
			slog.Error("Failed to initialize OpenAI", "error", err)
			os.Exit(1)
		}
	case "gemini":
		gKey := *geminiKey
		if gKey == "" {
			gKey = os.Getenv("GEMINI_API_KEY")
		}
		if gKey == "" {
			slog.Error("Gemini API key is required. Set --gemini-key flag or GEMINI_API_KEY environment variable")
			os.Exit(1)
		}
		slog.Info("Initializing Gemini extractor...", "model", *geminiModel)
		fields, err = extraction.NewGemini(gKey, *geminiModel)
		if err != nil {
			slog.Error("Failed to initialize Gemini", "error", err)
			os.Exit(1)
		}
	default:
		slog.Error("Invalid extractor type", "type", *extractorType, "valid", "openai or gemini")
		os.Exit(1)
	}
	defer fields.Close()

	// Summaries go through OpenAI regardless of the extractor. Without a key
	// the rest of the service still runs; only the summary endpoint degrades.
	var insights extraction.InsightsProvider
	if oaKey == "" {
		slog.Warn("No OpenAI API key configured; monthly summaries are disabled")
	} else {
		provider, err := extraction.NewInsights(oaKey, *openaiModel)
		if err != nil {
			slog.Error("Failed to initialize insights provider", "error", err)
			os.Exit(1)
		}
		insights = provider
	}

	// Initialize service
	expenseService := expense.NewService(db, text, fields, insights)

	// Initialize server
	basicAuth := expense.BasicAuth{
		Username: *authUser,
		Password: *authPass,
	}
	server := expense.NewServer(expenseService, basicAuth)

	// Start server in goroutine
	addr := fmt.Sprintf(":%d", *port)
	go func() {
		if err := server.Start(addr); err != nil {
			slog.Error("Server error", "error", err)
			os.Exit(1)
		}
	}()

	slog.Info("Server started", "address", fmt.Sprintf("http://localhost%s", addr), "version", version)
	if *authUser != "" || *authPass != "" {
		slog.Info("Basic auth enabled", "user", *authUser)
	}

	// Wait for interrupt signal
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	<-sigChan

	slog.Info("Shutting down...")
}
