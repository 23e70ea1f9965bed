// Package main is the Karar CLI entry point.
package main

import (
	"bytes"
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/karar-labs/karar/internal/audit"
	"github.com/karar-labs/karar/internal/config"
	"github.com/karar-labs/karar/internal/pipeline"
	"github.com/karar-labs/karar/internal/reason"
	"github.com/karar-labs/karar/internal/server"
	"github.com/karar-labs/karar/internal/watcher"
	"github.com/karar-labs/karar/pkg/utils"
	"go.uber.org/zap"
)

var version = "dev"

const defaultConfigPath = "/usr/local/etc/karar/config.yaml"

// loadConfig loads config from path. When path is the default, it first looks
// for config.yaml in the current directory (for development); if that exists it
// is used. A missing default config is not an error; built-in defaults apply.
func loadConfig(path string) (*config.Config, string, error) {
	if path == defaultConfigPath {
		if cwd, cwdErr := os.Getwd(); cwdErr == nil {
			fallback := filepath.Join(cwd, "config.yaml")
			if _, statErr := os.Stat(fallback); statErr == nil {
				cfg, loadErr := config.Load(fallback)
				if loadErr != nil {
					return nil, "", loadErr
				}
				return cfg, fallback, nil
			}
		}
		if _, statErr := os.Stat(path); statErr != nil {
			return config.Default(), "(defaults)", nil
		}
	}
	cfg, err := config.Load(path)
	if err != nil {
		return nil, "", err
	}
	return cfg, path, nil
}

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}
	command := os.Args[1]
	switch command {
	case "server":
		runServer()
	case "analyze":
		runAnalyze()
	case "logs":
		runLogs()
	case "version", "--version", "-v":
		fmt.Printf("karar version %s\n", version)
	case "help", "--help", "-h":
		printUsage()
	default:
		fmt.Printf("Unknown command: %s\n", command)
		printUsage()
		os.Exit(1)
	}
}

func runServer() {
	fs := flag.NewFlagSet("server", flag.ExitOnError)
	configPath := fs.String("config", defaultConfigPath, "config file path")
	debug := fs.Bool("debug", false, "enable debug logging (reasoning calls, inbox events, etc.)")
	_ = fs.Parse(os.Args[2:])

	cfg, resolvedConfigPath, err := loadConfig(*configPath)
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}
	debugMode := cfg.Debug || *debug
	logger, err := utils.NewLogger(debugMode)
	if err != nil {
		fmt.Printf("Failed to create logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	logger.Info("config loaded",
		zap.String("config_path", resolvedConfigPath),
		zap.Bool("debug", debugMode),
	)

	components, err := initializeComponents(cfg, logger)
	if err != nil {
		logger.Fatal("Failed to initialize components", zap.Error(err))
	}
	defer components.Close()

	watchCtx, watchCancel := context.WithCancel(context.Background())
	defer watchCancel()
	var watchSvc *watcher.Watcher
	if len(cfg.Watch.Directories) > 0 {
		analyzer := components.Analyzer
		watchOpts := []watcher.Option{}
		if debugMode {
			watchOpts = append(watchOpts, watcher.WithLogger(logger))
		}
		watchSvc = watcher.NewWatcher(
			cfg.Watch.Directories,
			cfg.Watch.Extensions,
			func(path string) {
				if _, err := analyzer.Analyze(context.Background(), path); err != nil {
					logger.Warn("inbox analysis failed", zap.String("path", path), zap.Error(err))
				}
			},
			watchOpts...,
		)
		if err := watchSvc.Start(watchCtx); err != nil {
			logger.Fatal("Failed to start inbox watcher", zap.Error(err))
		}
	}

	srv := server.NewServer(
		components.Analyzer,
		components.Log,
		components.Index,
		cfg.Storage.UploadDir,
		&cfg.Server,
		logger,
	)
	go func() {
		if err := srv.Start(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("Server failed", zap.Error(err))
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	<-sigChan

	logger.Info("Shutting down...")
	if watchSvc != nil {
		watchSvc.Stop()
	}
	watchCancel()
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	_ = srv.Stop(ctx)
}

func runAnalyze() {
	fs := flag.NewFlagSet("analyze", flag.ExitOnError)
	configPath := fs.String("config", defaultConfigPath, "config file path")
	serverURL := fs.String("server", "http://localhost:8001", "server URL (empty = analyze locally without audit logging)")
	_ = fs.Parse(os.Args[2:])

	if fs.NArg() < 1 {
		fmt.Println("Usage: karar analyze [flags] <file>")
		os.Exit(1)
	}
	path := fs.Arg(0)

	if *serverURL != "" {
		// Use the HTTP API when the server is running (avoids an audit index
		// lock conflict and keeps the audit trail in one place).
		report, err := analyzeViaHTTP(*serverURL, path)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Analysis failed: %v\n", err)
			os.Exit(1)
		}
		printJSON(report)
		return
	}

	cfg, _, err := loadConfig(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}
	logger, err := utils.NewLogger(cfg.Debug)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to create logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	engine := newReasoningClient(cfg, logger)
	analyzer := pipeline.NewAnalyzer(engine, nil, logger,
		pipeline.WithMaxClauses(cfg.LLM.MaxClauses),
		pipeline.WithSampleChars(cfg.LLM.SampleChars),
	)
	report, err := analyzer.Analyze(context.Background(), path)
	if err != nil {
		if pipeline.IsExtractionError(err) {
			fmt.Fprintln(os.Stderr, pipeline.ExtractionMessage(err))
		} else {
			fmt.Fprintf(os.Stderr, "Analysis failed: %v\n", err)
		}
		os.Exit(1)
	}
	printJSON(report)
}

func analyzeViaHTTP(serverURL, path string) (json.RawMessage, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	fw, err := mw.CreateFormFile("file", filepath.Base(path))
	if err != nil {
		return nil, err
	}
	if _, err := io.Copy(fw, file); err != nil {
		return nil, err
	}
	if err := mw.Close(); err != nil {
		return nil, err
	}

	resp, err := http.Post(serverURL+"/api/v1/analyze", mw.FormDataContentType(), &buf)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()
	body, _ := io.ReadAll(resp.Body)
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("server returned %d: %s", resp.StatusCode, string(body))
	}
	return json.RawMessage(body), nil
}

func runLogs() {
	fs := flag.NewFlagSet("logs", flag.ExitOnError)
	serverURL := fs.String("server", "http://localhost:8001", "server URL")
	query := fs.String("q", "", "keyword query over the analysis history (empty = list all)")
	limit := fs.Int("limit", 10, "number of search hits")
	_ = fs.Parse(os.Args[2:])

	endpoint := *serverURL + "/api/v1/audit-logs"
	if *query != "" {
		endpoint += "/search?q=" + url.QueryEscape(*query) + fmt.Sprintf("&limit=%d", *limit)
	}
	resp, err := http.Get(endpoint)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Request failed: %v\n", err)
		os.Exit(1)
	}
	defer resp.Body.Close()
	body, _ := io.ReadAll(resp.Body)
	if resp.StatusCode != http.StatusOK {
		fmt.Fprintf(os.Stderr, "Server returned %d: %s\n", resp.StatusCode, string(body))
		os.Exit(1)
	}
	printJSON(json.RawMessage(body))
}

func printJSON(v any) {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		fmt.Fprintf(os.Stderr, "Output failed: %v\n", err)
		os.Exit(1)
	}
}

// Components holds initialized services.
type Components struct {
	Index    *audit.ReportIndex
	Log      *audit.Log
	Analyzer *pipeline.Analyzer
}

func (c *Components) Close() {
	if c.Log != nil {
		c.Log.Close()
	}
	if c.Index != nil {
		_ = c.Index.Close()
	}
}

// newReasoningClient builds the reasoning client from config. The credential
// comes only from the environment (optionally via a .env file); the config
// carries just the variable name.
func newReasoningClient(cfg *config.Config, logger *zap.Logger) *reason.Client {
	_ = godotenv.Load()
	client := reason.NewClient(reason.Config{
		Model:          cfg.LLM.Model,
		BaseURL:        cfg.LLM.BaseURL,
		APIKey:         os.Getenv(cfg.LLM.APIKeyEnv),
		Timeout:        time.Duration(cfg.LLM.TimeoutSeconds) * time.Second,
		SummaryChars:   cfg.LLM.SummaryChars,
		TranslateChars: cfg.LLM.SampleChars,
	}, logger)
	if !client.Live() {
		logger.Warn("no usable API credential; running with simulated analysis",
			zap.String("api_key_env", cfg.LLM.APIKeyEnv))
	}
	return client
}

func initializeComponents(cfg *config.Config, logger *zap.Logger) (*Components, error) {
	index, err := audit.NewReportIndex(cfg.Storage.AuditIndexPath)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize audit index: %w", err)
	}
	log, err := audit.NewLog(cfg.Storage.AuditLogPath, index, logger)
	if err != nil {
		_ = index.Close()
		return nil, fmt.Errorf("failed to initialize audit log: %w", err)
	}

	engine := newReasoningClient(cfg, logger)
	analyzer := pipeline.NewAnalyzer(engine, log, logger,
		pipeline.WithMaxClauses(cfg.LLM.MaxClauses),
		pipeline.WithSampleChars(cfg.LLM.SampleChars),
	)

	return &Components{
		Index:    index,
		Log:      log,
		Analyzer: analyzer,
	}, nil
}

func printUsage() {
	fmt.Println(`karar - Contract document analysis service

Usage:
  karar server [flags]            Start the HTTP server
  karar analyze [flags] <file>    Analyze a contract document
  karar logs [flags]              Show or search the analysis history
  karar version                   Show version
  karar help                      Show this help

Server Flags:
  --config string    Config file path (default: /usr/local/etc/karar/config.yaml)
  --debug            Enable debug logging (reasoning calls, inbox events, etc.)

Analyze Flags:
  --config string    Config file path (for local mode)
  --server string    Server URL (default: http://localhost:8001). Use empty (--server "") to analyze locally; local reports are not audit-logged.

Logs Flags:
  --server string    Server URL (default: http://localhost:8001)
  --q string         Keyword query over the analysis history
  --limit int        Number of search hits (default: 10)

Examples:
  karar server
  karar analyze contract.pdf
  karar analyze --server "" local-draft.docx
  karar logs
  karar logs --q "termination" --limit 5`)
}
