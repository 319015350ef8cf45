package budget

import "time"

// AlertType identifies the condition an alert was raised for.
type AlertType string

const (
	AlertBudgetExceeded AlertType = "budget_exceeded"
	AlertBudgetWarning  AlertType = "budget_warning"
	AlertRepairCostHigh AlertType = "repair_cost_high"
)

// Severity ranks alert urgency.
type Severity string

const (
	SeverityLow      Severity = "low"
	SeverityMedium   Severity = "medium"
	SeverityHigh     Severity = "high"
	SeverityCritical Severity = "critical"
)

// Alert is an advisory derived from aggregate totals against the monthly
// budget ceiling. Alerts are recomputed fresh on every evaluation; there
// is no acknowledgement or history state.
type Alert struct {
	ID        string    `json:"id"`
	Type      AlertType `json:"type"`
	Severity  Severity  `json:"severity"`
	Message   string    `json:"message"`
	CreatedAt time.Time `json:"created_at"`
}
