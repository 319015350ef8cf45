package estimation

import "testing"

func TestClassifyCostTier(t *testing.T) {
	cases := []struct {
		model string
		os    string
		tier  CostTier
	}{
		{"MacBook Pro 16", "macOS Sonoma", TierPremium},
		{"ThinkPad X1 Carbon", "Windows 11", TierPremium},
		{"Dell XPS 13", "Windows 11", TierPremium},
		{"ROG Gaming Desktop", "Windows 11", TierPremium},
		{"MacBook Air M2", "macOS Sonoma", TierBudget},
		{"IdeaPad 3", "Windows 10", TierBudget},
		{"Aspire 5", "Windows 10", TierBudget},
		{"Mac Mini", "macOS Sonoma", TierBudget},
		{"Dell Latitude 5420", "Windows 10", TierMidRange},
		{"OptiPlex 7080", "Windows 10", TierMidRange},
		{"", "Windows 10 Home", TierMidRange},
		{"", "", TierMidRange},
	}
	for _, tc := range cases {
		if got := ClassifyCostTier(tc.model, tc.os); got != tc.tier {
			t.Errorf("ClassifyCostTier(%q, %q) = %q, want %q", tc.model, tc.os, got, tc.tier)
		}
	}
}

func TestClassifyCostTierPremiumBeatsBudget(t *testing.T) {
	// A model carrying both marker classes resolves premium-first.
	if got := ClassifyCostTier("Aspire Pro Gaming", ""); got != TierPremium {
		t.Fatalf("got %q, want %q", got, TierPremium)
	}
}

func TestClassifyCostTierIgnoresOSEdition(t *testing.T) {
	// "Windows 11 Pro" must not promote a plain model to premium.
	if got := ClassifyCostTier("Latitude 3520", "Windows 11 Pro"); got != TierMidRange {
		t.Fatalf("got %q, want %q", got, TierMidRange)
	}
}
