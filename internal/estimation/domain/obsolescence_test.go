package estimation

import (
	"testing"

	inventory "fleetdesk/internal/inventory/domain"
)

func TestObsolescencePolicyHasLowRAM(t *testing.T) {
	policy := DefaultObsolescencePolicy()
	cases := []struct {
		ram  string
		want bool
	}{
		{"4GB", true},
		{"8GB", false},
		{"16GB", false},
		{"", false},
		{"unknown", false},
	}
	for _, tc := range cases {
		device := inventory.Device{RAM: tc.ram}
		if got := policy.HasLowRAM(device); got != tc.want {
			t.Errorf("HasLowRAM(%q) = %v, want %v", tc.ram, got, tc.want)
		}
	}
}

func TestObsolescencePolicyHasObsoleteProcessor(t *testing.T) {
	policy := DefaultObsolescencePolicy()
	cases := []struct {
		processor string
		want      bool
	}{
		{"Intel Core i5-7200U", true},
		{"Intel Core i5-8250U", false},
		{"Intel Core i7-10710U", false},
		{"AMD Ryzen 5 2600", true},
		{"AMD Ryzen 5 3600", false},
		{"Apple M2", false},
		{"", false},
	}
	for _, tc := range cases {
		device := inventory.Device{Processor: tc.processor}
		if got := policy.HasObsoleteProcessor(device); got != tc.want {
			t.Errorf("HasObsoleteProcessor(%q) = %v, want %v", tc.processor, got, tc.want)
		}
	}
}

func TestObsolescencePolicyNeedsUpgrade(t *testing.T) {
	policy := DefaultObsolescencePolicy()

	healthy := inventory.Device{
		RAM:       "16GB",
		Processor: "Intel Core i7-10710U",
		Status:    inventory.StatusWorking,
	}
	if policy.NeedsUpgrade(healthy) {
		t.Error("healthy modern device flagged for upgrade")
	}

	lowRAM := healthy
	lowRAM.RAM = "4GB"
	if !policy.NeedsUpgrade(lowRAM) {
		t.Error("low-RAM device not flagged")
	}

	oldCPU := healthy
	oldCPU.Processor = "Intel Core i5-6200U"
	if !policy.NeedsUpgrade(oldCPU) {
		t.Error("old-CPU device not flagged")
	}

	broken := healthy
	broken.Status = inventory.StatusBroken
	if !policy.NeedsUpgrade(broken) {
		t.Error("broken device not flagged")
	}
	if !policy.IsOutOfService(broken) {
		t.Error("broken device not out of service")
	}
}
