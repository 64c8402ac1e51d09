package main

import (
	"flag"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/mmrzaf/rowgen/internal/api"
	"github.com/mmrzaf/rowgen/internal/app"
	"github.com/mmrzaf/rowgen/internal/config"
	"github.com/mmrzaf/rowgen/internal/generators"
	"github.com/mmrzaf/rowgen/internal/infra/repos/history"
	"github.com/mmrzaf/rowgen/internal/infra/repos/presets"
	"github.com/mmrzaf/rowgen/internal/logging"
	"github.com/mmrzaf/rowgen/internal/registry"
	"github.com/mmrzaf/rowgen/internal/validation"
	"github.com/mmrzaf/rowgen/internal/web"
)

func main() {
	cfg := config.Load()

	bindAddr := flag.String("bind", cfg.BindAddr, "Bind address")
	logLevel := flag.String("log-level", cfg.LogLevel, "Log level")
	presetsDir := flag.String("presets-dir", cfg.PresetsDir, "Presets directory")
	historyDB := flag.String("history-db", cfg.HistoryDB, "History DB (sqlite path or postgres:// DSN, empty disables)")
	flag.Parse()

	logger := logging.NewLogger(*logLevel).WithComponent("api_main")

	var historyRepo history.Repository
	if *historyDB != "" {
		if strings.HasPrefix(*historyDB, "postgres://") || strings.HasPrefix(*historyDB, "postgresql://") {
			historyRepo = history.NewPostgresRepository(*historyDB)
		} else {
			historyRepo = history.NewSQLiteRepository(*historyDB)
		}
		if err := historyRepo.Init(); err != nil {
			logger.Errorw("startup.failed", map[string]any{"error": err.Error(), "stage": "init_history_repo"})
			os.Exit(1)
		}
		defer historyRepo.Close()
	}

	capRegistry := registry.DefaultCapabilityRegistry()
	valueGen := generators.NewValueGenerator(capRegistry, cfg.DateWindow, logger.WithComponent("generators"))
	recordService := app.NewRecordService(valueGen, historyRepo, logger.WithComponent("records"))
	presetRepo := presets.NewFileRepository(*presetsDir)

	handler := api.NewHandler(recordService, validation.NewValidator(), capRegistry, presetRepo, historyRepo)

	mux := http.NewServeMux()

	mux.HandleFunc("GET /{$}", web.IndexHandler)

	mux.HandleFunc("GET /api/v1/records", handler.GenerateRecords)
	mux.HandleFunc("POST /api/v1/records", handler.GenerateRecords)

	mux.HandleFunc("GET /api/v1/types", handler.ListTypes)
	mux.HandleFunc("GET /api/v1/capabilities", handler.ListCapabilities)

	mux.HandleFunc("GET /api/v1/presets", handler.ListPresets)
	mux.HandleFunc("GET /api/v1/presets/{name}", handler.GetPreset)
	mux.HandleFunc("GET /api/v1/presets/{name}/records", handler.GeneratePresetRecords)

	mux.HandleFunc("GET /api/v1/history", handler.ListHistory)
	mux.HandleFunc("GET /api/v1/history/{id}", handler.GetHistory)

	logger.Infow("startup.listening", map[string]any{"bind": *bindAddr})
	if err := http.ListenAndServe(*bindAddr, loggingMiddleware(logger.WithComponent("http"), mux)); err != nil {
		logger.Errorw("startup.failed", map[string]any{"error": err.Error(), "stage": "listen"})
		os.Exit(1)
	}
}

type statusWriter struct {
	http.ResponseWriter
	status int
}

func (w *statusWriter) WriteHeader(code int) {
	w.status = code
	w.ResponseWriter.WriteHeader(code)
}

func loggingMiddleware(logger *logging.Logger, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		started := time.Now()
		sw := &statusWriter{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(sw, r)
		fields := map[string]any{
			"method":      r.Method,
			"path":        r.URL.Path,
			"status":      sw.status,
			"duration_ms": time.Since(started).Milliseconds(),
			"remote":      r.RemoteAddr,
		}
		if sw.status >= 500 {
			logger.Errorw("request.completed", fields)
			return
		}
		if sw.status >= 400 {
			logger.Warnw("request.completed", fields)
			return
		}
		logger.Infow("request.completed", fields)
	})
}
