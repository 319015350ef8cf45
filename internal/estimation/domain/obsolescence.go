package estimation

import (
	inventory "fleetdesk/internal/inventory/domain"
)

// ObsolescencePolicy decides whether a device counts as needing an
// upgrade. The criteria are named and independently testable; NeedsUpgrade
// combines them with OR.
type ObsolescencePolicy struct {
	MinRAMGB    int
	MinIntelGen int
	MinRyzenGen int
}

// DefaultObsolescencePolicy returns the policy used by the dashboard:
// less than 8 GB RAM, Intel below 8th gen, Ryzen below 3000 series, or a
// non-working status.
func DefaultObsolescencePolicy() ObsolescencePolicy {
	return ObsolescencePolicy{MinRAMGB: 8, MinIntelGen: 8, MinRyzenGen: 3}
}

// HasLowRAM reports whether the device's parsed RAM is below the policy
// floor. Unparseable RAM strings do not trip the criterion.
func (p ObsolescencePolicy) HasLowRAM(device inventory.Device) bool {
	gb, ok := ParseRAMGB(device.RAM)
	if !ok {
		return false
	}
	return gb < p.MinRAMGB
}

// HasObsoleteProcessor reports whether the device's parsed CPU generation
// is below the policy floor. Unparseable processor strings do not trip the
// criterion.
func (p ObsolescencePolicy) HasObsoleteProcessor(device inventory.Device) bool {
	gen, ok := ParseCPUGeneration(device.Processor)
	if !ok {
		return false
	}
	switch gen.Vendor {
	case VendorIntel:
		return gen.Generation < p.MinIntelGen
	case VendorAMD:
		return gen.Generation < p.MinRyzenGen
	default:
		return false
	}
}

// IsOutOfService reports whether the device status alone flags it.
func (p ObsolescencePolicy) IsOutOfService(device inventory.Device) bool {
	return NeedsRepair(device.Status)
}

// NeedsUpgrade combines all criteria.
func (p ObsolescencePolicy) NeedsUpgrade(device inventory.Device) bool {
	return p.HasLowRAM(device) || p.HasObsoleteProcessor(device) || p.IsOutOfService(device)
}
