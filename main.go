package main

import (
	"database/sql"
	"log"
	"net/http"
	"os"
	"time"

	apihttp "fleetdesk/internal/api/http"
	"fleetdesk/internal/audit"
	"fleetdesk/internal/auth"
	budgetapp "fleetdesk/internal/budget/application"
	budgetinterfaces "fleetdesk/internal/budget/interfaces"
	budgethttp "fleetdesk/internal/budget/interfaces/http"
	estimationapp "fleetdesk/internal/estimation/application"
	inventorypostgres "fleetdesk/internal/inventory/infrastructure/postgres"
	inventoryhttp "fleetdesk/internal/inventory/interfaces/http"
	"fleetdesk/internal/observability/metrics"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func main() {
	cfg := loadConfig()
	logger := log.New(os.Stdout, "", log.LstdFlags)

	estCfg, err := estimationapp.LoadConfig()
	if err != nil {
		logger.Fatalf("estimation config error: %v", err)
	}

	db, err := sql.Open("pgx", cfg.DatabaseURL)
	if err != nil {
		logger.Fatalf("db open error: %v", err)
	}
	defer db.Close()

	if err := db.Ping(); err != nil {
		logger.Fatalf("db ping error: %v", err)
	}

	metrics.Init(db, logger)
	auditRepo := audit.NewRepository(db)
	deviceRepo := inventorypostgres.NewDeviceRepository(db)

	evaluator, err := budgetapp.NewEvaluator(
		estCfg.MonthlyBudget,
		systemClock{},
		budgetapp.WithThresholds(estCfg.Thresholds.WarningPct, estCfg.Thresholds.HighPct, estCfg.Thresholds.RepairCostHigh),
		budgetapp.WithCurrency(estCfg.Currency),
	)
	if err != nil {
		logger.Fatalf("budget evaluator error: %v", err)
	}

	alertBroker := budgethttp.NewSSEBroker()
	summaryCache := apihttp.NewSummaryCache(estCfg.CacheTTL(), systemClock{})
	dashboard, err := apihttp.NewDashboardService(deviceRepo, estCfg.Policy(), evaluator, summaryCache, alertBroker, systemClock{}, logger)
	if err != nil {
		logger.Fatalf("dashboard service error: %v", err)
	}

	deviceHandler, err := inventoryhttp.NewHandler(deviceRepo, auditRepo, dashboard)
	if err != nil {
		logger.Fatalf("device handler error: %v", err)
	}
	exportHandler, err := budgetinterfaces.NewExportHandler(dashboard, estCfg.Currency)
	if err != nil {
		logger.Fatalf("export handler error: %v", err)
	}

	policy := auth.NewDefaultPolicy([]string{"/healthz", "/metrics"}, nil)
	authMiddleware := auth.NewMiddleware([]byte(cfg.JWTSecret), policy)

	mux := http.NewServeMux()
	mux.Handle("/api/v1/devices", deviceHandler)
	mux.Handle("/api/v1/devices/", deviceHandler)
	mux.Handle("/api/v1/dashboard/summary", apihttp.NewSummaryHandler(dashboard))
	mux.Handle("/api/v1/dashboard/alerts", apihttp.NewAlertsHandler(dashboard))
	mux.Handle("/api/v1/dashboard/alerts/stream", budgethttp.NewStreamHandler(alertBroker))
	mux.Handle("/api/v1/exports/budget.csv", exportHandler)
	mux.Handle("/api/v1/exports/budget.xlsx", exportHandler)
	mux.Handle("/api/v1/exports/budget.pdf", exportHandler)
	mux.Handle("/metrics", promhttp.Handler())
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	server := &http.Server{Addr: cfg.HTTPAddr, Handler: loggingMiddleware(authMiddleware.Wrap(mux), logger)}
	logger.Printf("http listening on %s", cfg.HTTPAddr)
	logger.Fatal(server.ListenAndServe())
}

type config struct {
	DatabaseURL string
	HTTPAddr    string
	JWTSecret   string
}

func loadConfig() config {
	cfg := config{
		DatabaseURL: getenvDefault("DATABASE_URL", getenvDefault("PG_DSN", "")),
		HTTPAddr:    getenvDefault("HTTP_ADDR", ":8080"),
		JWTSecret:   getenvDefault("AUTH_JWT_SECRET", getenvDefault("JWT_SECRET", "")),
	}
	if cfg.DatabaseURL == "" {
		log.Fatal("DATABASE_URL or PG_DSN is required")
	}
	if cfg.JWTSecret == "" {
		log.Fatal("AUTH_JWT_SECRET is required")
	}
	return cfg
}

func getenvDefault(key, fallback string) string {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	return value
}

func loggingMiddleware(next http.Handler, logger *log.Logger) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		resp := &statusWriter{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(resp, r)
		logger.Printf("http %s %s %d %s", r.Method, r.URL.Path, resp.status, time.Since(start))
	})
}

type statusWriter struct {
	http.ResponseWriter
	status int
}

func (w *statusWriter) WriteHeader(status int) {
	w.status = status
	w.ResponseWriter.WriteHeader(status)
}

// Flush keeps the SSE stream working behind the logging wrapper.
func (w *statusWriter) Flush() {
	if flusher, ok := w.ResponseWriter.(http.Flusher); ok {
		flusher.Flush()
	}
}

type systemClock struct{}

func (systemClock) Now() time.Time { return time.Now().UTC() }
