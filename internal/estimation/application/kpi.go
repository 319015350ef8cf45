package application

import (
	"math"

	estimation "fleetdesk/internal/estimation/domain"
	inventory "fleetdesk/internal/inventory/domain"
)

// RAMTierCounts buckets devices by parsed memory size. Devices whose RAM
// string cannot be parsed appear in none of the tiers.
type RAMTierCounts struct {
	Under8GB int `json:"under8GB"`
	At8GB    int `json:"8GB"`
	Over16GB int `json:"16GB+"`
}

// KPIMetrics is the dashboard KPI block derived from a device snapshot.
// All percentages are rounded to the nearest integer and an empty snapshot
// yields zeros throughout.
type KPIMetrics struct {
	TotalDevices                int            `json:"total_devices"`
	UpgradePercentage           int            `json:"upgrade_percentage"`
	OSMix                       map[string]int `json:"os_mix"`
	RAMTiers                    RAMTierCounts  `json:"ram_tiers"`
	ProcessorObsoletePercentage int            `json:"processor_obsolete_percentage"`
}

// ComputeKPIMetrics derives the KPI block. The obsolescence policy decides
// which devices count as needing an upgrade; UpgradePercentage is the
// share of devices that do not.
func ComputeKPIMetrics(devices []inventory.Device, policy estimation.ObsolescencePolicy) KPIMetrics {
	metrics := KPIMetrics{
		TotalDevices: len(devices),
		OSMix:        make(map[string]int),
	}
	if len(devices) == 0 {
		return metrics
	}

	osCounts := make(map[string]int)
	upgradeFree := 0
	obsoleteCPU := 0
	for _, device := range devices {
		family, _ := estimation.ClassifyOSFamily(device.OperatingSystem)
		osCounts[string(family)]++

		if !policy.NeedsUpgrade(device) {
			upgradeFree++
		}
		if policy.HasObsoleteProcessor(device) {
			obsoleteCPU++
		}

		if gb, ok := estimation.ParseRAMGB(device.RAM); ok {
			switch {
			case gb < 8:
				metrics.RAMTiers.Under8GB++
			case gb < 16:
				metrics.RAMTiers.At8GB++
			default:
				metrics.RAMTiers.Over16GB++
			}
		}
	}

	total := len(devices)
	metrics.UpgradePercentage = percent(upgradeFree, total)
	metrics.ProcessorObsoletePercentage = percent(obsoleteCPU, total)
	for family, count := range osCounts {
		metrics.OSMix[family] = percent(count, total)
	}
	return metrics
}

func percent(part, total int) int {
	if total <= 0 {
		return 0
	}
	return int(math.Round(100 * float64(part) / float64(total)))
}
