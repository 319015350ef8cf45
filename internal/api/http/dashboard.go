package apihttp

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"time"

	budget "fleetdesk/internal/budget/domain"
	estimationapp "fleetdesk/internal/estimation/application"
	estimation "fleetdesk/internal/estimation/domain"
	inventory "fleetdesk/internal/inventory/domain"
	"fleetdesk/internal/observability/metrics"
)

// Summary is the dashboard payload: cost rollups, KPI block and the
// current advisory alerts, all derived from one device snapshot.
type Summary struct {
	Totals      estimationapp.AggregateTotals `json:"totals"`
	KPIs        estimationapp.KPIMetrics      `json:"kpis"`
	Alerts      []budget.Alert                `json:"alerts"`
	GeneratedAt time.Time                     `json:"generated_at"`
}

// AlertEvaluator derives alerts from aggregate totals.
type AlertEvaluator interface {
	Evaluate(totals estimationapp.AggregateTotals) []budget.Alert
}

// AlertNotifier receives the alert set after every recomputation.
type AlertNotifier interface {
	Notify(ctx context.Context, alerts []budget.Alert)
}

// DashboardService recomputes the dashboard summary from the device
// snapshot. Recomputation is always from scratch; the fleet is small
// enough that incremental maintenance would buy nothing.
type DashboardService struct {
	repo      inventory.Repository
	policy    estimation.ObsolescencePolicy
	evaluator AlertEvaluator
	cache     *SummaryCache
	notifier  AlertNotifier
	clock     Clock
	logger    *log.Logger
}

// NewDashboardService constructs a DashboardService.
func NewDashboardService(repo inventory.Repository, policy estimation.ObsolescencePolicy, evaluator AlertEvaluator, cache *SummaryCache, notifier AlertNotifier, clock Clock, logger *log.Logger) (*DashboardService, error) {
	if repo == nil {
		return nil, errors.New("dashboard service: nil repository")
	}
	if evaluator == nil {
		return nil, errors.New("dashboard service: nil evaluator")
	}
	if clock == nil {
		return nil, errors.New("dashboard service: nil clock")
	}
	return &DashboardService{
		repo:      repo,
		policy:    policy,
		evaluator: evaluator,
		cache:     cache,
		notifier:  notifier,
		clock:     clock,
		logger:    logger,
	}, nil
}

// Summary returns the dashboard summary, recomputing when the cached
// value has expired.
func (s *DashboardService) Summary(ctx context.Context) (Summary, error) {
	if cached, ok := s.cache.Get(); ok {
		metrics.IncDashboardRequest(true)
		return cached, nil
	}
	metrics.IncDashboardRequest(false)
	return s.compute(ctx)
}

// Refresh drops the cached summary, recomputes it and pushes the fresh
// alert set to the notifier. Called after every inventory mutation.
func (s *DashboardService) Refresh(ctx context.Context) {
	s.cache.Invalidate()
	summary, err := s.compute(ctx)
	if err != nil {
		if s.logger != nil {
			s.logger.Printf("dashboard refresh error: %v", err)
		}
		return
	}
	if s.notifier != nil {
		s.notifier.Notify(ctx, summary.Alerts)
	}
}

func (s *DashboardService) compute(ctx context.Context) (Summary, error) {
	start := time.Now()
	devices, err := s.repo.List(ctx)
	if err != nil {
		metrics.ObserveEstimation(err, time.Since(start))
		return Summary{}, err
	}

	now := s.clock.Now()
	totals := estimationapp.ComputeAggregateTotals(devices, now)
	kpis := estimationapp.ComputeKPIMetrics(devices, s.policy)
	alerts := s.evaluator.Evaluate(totals)
	if alerts == nil {
		alerts = []budget.Alert{}
	}

	bySeverity := make(map[string]int, len(alerts))
	for _, alert := range alerts {
		bySeverity[string(alert.Severity)]++
	}
	metrics.SetActiveAlerts(bySeverity)
	metrics.ObserveEstimation(nil, time.Since(start))

	summary := Summary{Totals: totals, KPIs: kpis, Alerts: alerts, GeneratedAt: now}
	s.cache.Put(summary)
	return summary, nil
}

// SummaryHandler serves GET /api/v1/dashboard/summary.
type SummaryHandler struct {
	service *DashboardService
}

// NewSummaryHandler constructs a SummaryHandler.
func NewSummaryHandler(service *DashboardService) *SummaryHandler {
	return &SummaryHandler{service: service}
}

// ServeHTTP handles the summary request.
func (h *SummaryHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	if h == nil || h.service == nil {
		http.Error(w, "server not ready", http.StatusServiceUnavailable)
		return
	}
	summary, err := h.service.Summary(r.Context())
	if err != nil {
		http.Error(w, "compute summary error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(summary)
}

// AlertsHandler serves GET /api/v1/dashboard/alerts.
type AlertsHandler struct {
	service *DashboardService
}

// NewAlertsHandler constructs an AlertsHandler.
func NewAlertsHandler(service *DashboardService) *AlertsHandler {
	return &AlertsHandler{service: service}
}

// ServeHTTP handles the alerts request.
func (h *AlertsHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	if h == nil || h.service == nil {
		http.Error(w, "server not ready", http.StatusServiceUnavailable)
		return
	}
	summary, err := h.service.Summary(r.Context())
	if err != nil {
		http.Error(w, "compute alerts error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(summary.Alerts)
}
