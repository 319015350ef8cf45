package estimation

import "strings"

// CostTier is the price class a device model is assumed to sit in.
type CostTier string

const (
	TierBudget   CostTier = "budget"
	TierMidRange CostTier = "midRange"
	TierPremium  CostTier = "premium"
)

var premiumMarkers = []string{"pro", "studio", "gaming", "xps", "elitebook", "thinkpad x1", "surface book"}

var budgetMarkers = []string{"air", "mini", "basic", "essential", "lite", "aspire", "ideapad"}

// ClassifyCostTier assigns a cost tier from the free-form model name.
// Premium markers are checked before budget markers; the first match wins
// and there is no combination logic. Anything unmatched is mid-range. The
// operating system string is only consulted when the model is empty, since
// edition suffixes like "Windows 11 Pro" would otherwise trip the premium
// markers.
func ClassifyCostTier(deviceModel, operatingSystem string) CostTier {
	value := strings.ToLower(strings.TrimSpace(deviceModel))
	if value == "" {
		value = strings.ToLower(strings.TrimSpace(operatingSystem))
	}
	for _, marker := range premiumMarkers {
		if strings.Contains(value, marker) {
			return TierPremium
		}
	}
	for _, marker := range budgetMarkers {
		if strings.Contains(value, marker) {
			return TierBudget
		}
	}
	return TierMidRange
}
