package application

import (
	"sort"
	"time"

	estimation "fleetdesk/internal/estimation/domain"
	inventory "fleetdesk/internal/inventory/domain"
)

// BucketTotals accumulates costs and device counts for one category label.
type BucketTotals struct {
	Repair      float64 `json:"repair"`
	Replacement float64 `json:"replacement"`
	Count       int     `json:"count"`
}

// AggregateTotals is the full cost rollup over a device snapshot.
//
// EstimatedBudgetNeeded is a plain sum of the two totals: a device that
// needs both repair and replacement is counted in both, which is the
// intended "cost to fix everything now" reading, not a mutually exclusive
// classification.
type AggregateTotals struct {
	EstimatedRepairsTotal      float64                 `json:"estimated_repairs_total"`
	EstimatedReplacementsTotal float64                 `json:"estimated_replacements_total"`
	EstimatedBudgetNeeded      float64                 `json:"estimated_budget_needed"`
	ByDepartment               map[string]BucketTotals `json:"by_department"`
	ByOS                       map[string]BucketTotals `json:"by_os"`
	ByDeviceType               map[string]BucketTotals `json:"by_device_type"`
	NeedsRepairIDs             []string                `json:"needs_repair_ids"`
	NeedsReplacementIDs        []string                `json:"needs_replacement_ids"`
}

// ComputeAggregateTotals folds the cost model across a device snapshot.
// Output is independent of input order, and an empty snapshot yields zero
// totals with empty maps rather than an error.
func ComputeAggregateTotals(devices []inventory.Device, now time.Time) AggregateTotals {
	totals := AggregateTotals{
		ByDepartment: make(map[string]BucketTotals),
		ByOS:         make(map[string]BucketTotals),
		ByDeviceType: make(map[string]BucketTotals),
	}

	severity := make(map[string]float64, len(devices))
	for _, device := range devices {
		estimate := estimation.EstimateDeviceCost(device, now)

		totals.EstimatedRepairsTotal += estimate.RepairCost
		totals.EstimatedReplacementsTotal += estimate.ReplacementCost

		accumulate(totals.ByDepartment, device.Department, estimate)
		accumulate(totals.ByOS, string(estimate.OSFamily), estimate)
		accumulate(totals.ByDeviceType, string(device.DeviceType), estimate)

		if estimate.NeedsRepair {
			totals.NeedsRepairIDs = append(totals.NeedsRepairIDs, device.ID)
		}
		if estimate.NeedsReplacement {
			totals.NeedsReplacementIDs = append(totals.NeedsReplacementIDs, device.ID)
			severity[device.ID] = estimate.AgeSeverity
		}
	}

	totals.EstimatedBudgetNeeded = totals.EstimatedRepairsTotal + totals.EstimatedReplacementsTotal

	// Stable drill-down ordering: most urgent replacements first, then by
	// id so shuffled input snapshots produce identical output.
	sort.Strings(totals.NeedsRepairIDs)
	sort.SliceStable(totals.NeedsReplacementIDs, func(i, j int) bool {
		a, b := totals.NeedsReplacementIDs[i], totals.NeedsReplacementIDs[j]
		if severity[a] != severity[b] {
			return severity[a] > severity[b]
		}
		return a < b
	})
	return totals
}

func accumulate(buckets map[string]BucketTotals, label string, estimate estimation.CostEstimate) {
	bucket := buckets[label]
	bucket.Repair += estimate.RepairCost
	bucket.Replacement += estimate.ReplacementCost
	bucket.Count++
	buckets[label] = bucket
}
