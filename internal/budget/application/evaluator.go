package application

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	budget "fleetdesk/internal/budget/domain"
	estimationapp "fleetdesk/internal/estimation/application"
)

// Clock provides evaluation time.
type Clock interface {
	Now() time.Time
}

// Evaluator compares estimated budget need against a fixed monthly budget
// ceiling and emits advisory alerts.
type Evaluator struct {
	totalBudget    float64
	warningPct     float64
	highPct        float64
	repairCostHigh float64
	currency       string
	clock          Clock
}

// Option configures the evaluator.
type Option func(*Evaluator)

// WithThresholds overrides the warning and high usage percentages and the
// absolute repair-cost threshold.
func WithThresholds(warningPct, highPct, repairCostHigh float64) Option {
	return func(e *Evaluator) {
		if warningPct > 0 {
			e.warningPct = warningPct
		}
		if highPct > 0 {
			e.highPct = highPct
		}
		if repairCostHigh > 0 {
			e.repairCostHigh = repairCostHigh
		}
	}
}

// WithCurrency overrides the currency label used in alert messages.
func WithCurrency(currency string) Option {
	return func(e *Evaluator) {
		if currency != "" {
			e.currency = currency
		}
	}
}

// NewEvaluator constructs an evaluator for a monthly budget ceiling.
func NewEvaluator(totalBudget float64, clock Clock, opts ...Option) (*Evaluator, error) {
	if clock == nil {
		return nil, errors.New("budget evaluator: nil clock")
	}
	evaluator := &Evaluator{
		totalBudget:    totalBudget,
		warningPct:     75,
		highPct:        90,
		repairCostHigh: 5000,
		currency:       "RM",
		clock:          clock,
	}
	for _, opt := range opts {
		opt(evaluator)
	}
	return evaluator, nil
}

// UsagePercentage returns estimated need as a percentage of the budget,
// or 0 when the budget is not positive.
func (e *Evaluator) UsagePercentage(needed float64) float64 {
	if e == nil || e.totalBudget <= 0 {
		return 0
	}
	return 100 * needed / e.totalBudget
}

// Evaluate derives the current alert set from aggregate totals. Within the
// budget-usage category only the highest-priority condition fires; the
// repair-cost threshold is independent and can co-fire with any of them.
func (e *Evaluator) Evaluate(totals estimationapp.AggregateTotals) []budget.Alert {
	if e == nil {
		return nil
	}
	now := e.clock.Now()
	needed := totals.EstimatedBudgetNeeded
	usage := e.UsagePercentage(needed)

	var alerts []budget.Alert
	switch {
	case needed > e.totalBudget:
		alerts = append(alerts, e.newAlert(budget.AlertBudgetExceeded, budget.SeverityCritical, now,
			"estimated budget needed %s %.2f exceeds monthly budget %s %.2f (%.0f%% usage)",
			e.currency, needed, e.currency, e.totalBudget, usage))
	case usage >= e.highPct:
		alerts = append(alerts, e.newAlert(budget.AlertBudgetWarning, budget.SeverityHigh, now,
			"estimated budget needed %s %.2f at %.0f%% of monthly budget %s %.2f",
			e.currency, needed, usage, e.currency, e.totalBudget))
	case usage >= e.warningPct:
		alerts = append(alerts, e.newAlert(budget.AlertBudgetWarning, budget.SeverityMedium, now,
			"estimated budget needed %s %.2f at %.0f%% of monthly budget %s %.2f",
			e.currency, needed, usage, e.currency, e.totalBudget))
	}

	if needed > e.repairCostHigh {
		alerts = append(alerts, e.newAlert(budget.AlertRepairCostHigh, budget.SeverityMedium, now,
			"estimated repair and replacement need %s %.2f is above the %s %.2f review threshold",
			e.currency, needed, e.currency, e.repairCostHigh))
	}
	return alerts
}

func (e *Evaluator) newAlert(alertType budget.AlertType, severity budget.Severity, now time.Time, format string, args ...any) budget.Alert {
	return budget.Alert{
		ID:        fmt.Sprintf("%s-%s", alertType, uuid.NewString()),
		Type:      alertType,
		Severity:  severity,
		Message:   fmt.Sprintf(format, args...),
		CreatedAt: now,
	}
}
