package estimation

import (
	"time"

	inventory "fleetdesk/internal/inventory/domain"
)

// CostEstimate is the per-device output of the cost model.
type CostEstimate struct {
	DeviceID         string     `json:"device_id"`
	RepairCost       float64    `json:"repair_cost"`
	ReplacementCost  float64    `json:"replacement_cost"`
	AgeYears         int        `json:"age_years"`
	AgeSeverity      float64    `json:"age_severity"`
	OSFamily         OSFamily   `json:"os_family"`
	CostTier         CostTier   `json:"cost_tier"`
	NeedsRepair      bool       `json:"needs_repair"`
	NeedsReplacement bool       `json:"needs_replacement"`
	DeviceType       inventory.DeviceType `json:"device_type"`
}

// replacementAgeThreshold is the device age, in whole years, at which a
// replacement is planned regardless of status.
const replacementAgeThreshold = 8

type costCell struct {
	deviceType inventory.DeviceType
	osFamily   OSFamily
	tier       CostTier
}

// replacementTable holds fixed RM replacement prices per
// (type, OS family, tier) cell. Tablets and phones are priced off the
// laptop rows; missing cells fall back to flat per-type defaults.
var replacementTable = map[costCell]float64{
	{inventory.DeviceTypeLaptop, OSWindows, TierBudget}:   2200,
	{inventory.DeviceTypeLaptop, OSWindows, TierMidRange}: 3500,
	{inventory.DeviceTypeLaptop, OSWindows, TierPremium}:  5500,
	{inventory.DeviceTypeLaptop, OSMacOS, TierBudget}:     4200,
	{inventory.DeviceTypeLaptop, OSMacOS, TierMidRange}:   5800,
	{inventory.DeviceTypeLaptop, OSMacOS, TierPremium}:    8500,
	{inventory.DeviceTypeLaptop, OSLinux, TierBudget}:     2000,
	{inventory.DeviceTypeLaptop, OSLinux, TierMidRange}:   3200,
	{inventory.DeviceTypeLaptop, OSLinux, TierPremium}:    5000,
	{inventory.DeviceTypeLaptop, OSIOS, TierBudget}:       1500,
	{inventory.DeviceTypeLaptop, OSIOS, TierMidRange}:     2200,
	{inventory.DeviceTypeLaptop, OSIOS, TierPremium}:      3500,
	{inventory.DeviceTypeLaptop, OSAndroid, TierBudget}:   900,
	{inventory.DeviceTypeLaptop, OSAndroid, TierMidRange}: 1500,
	{inventory.DeviceTypeLaptop, OSAndroid, TierPremium}:  2800,
	{inventory.DeviceTypeDesktop, OSWindows, TierBudget}:   1800,
	{inventory.DeviceTypeDesktop, OSWindows, TierMidRange}: 3000,
	{inventory.DeviceTypeDesktop, OSWindows, TierPremium}:  5000,
	{inventory.DeviceTypeDesktop, OSMacOS, TierBudget}:     5500,
	{inventory.DeviceTypeDesktop, OSMacOS, TierMidRange}:   6500,
	{inventory.DeviceTypeDesktop, OSMacOS, TierPremium}:    9000,
	{inventory.DeviceTypeDesktop, OSLinux, TierBudget}:     1700,
	{inventory.DeviceTypeDesktop, OSLinux, TierMidRange}:   2800,
	{inventory.DeviceTypeDesktop, OSLinux, TierPremium}:    4500,
}

var replacementDefaults = map[inventory.DeviceType]float64{
	inventory.DeviceTypeLaptop:  3500,
	inventory.DeviceTypeDesktop: 3000,
	inventory.DeviceTypeTablet:  1500,
	inventory.DeviceTypePhone:   1200,
}

var repairCosts = map[inventory.DeviceType]float64{
	inventory.DeviceTypeLaptop:  800,
	inventory.DeviceTypeDesktop: 600,
	inventory.DeviceTypeTablet:  400,
	inventory.DeviceTypePhone:   300,
}

const repairCostFallback = 500

// ReplacementCost resolves the replacement price for a device. Unknown OS
// families are priced as Windows; tablets and phones borrow the laptop
// table; a missing cell falls back to the flat per-type default.
func ReplacementCost(deviceType inventory.DeviceType, osFamily OSFamily, tier CostTier) float64 {
	lookupType := deviceType
	if deviceType == inventory.DeviceTypeTablet || deviceType == inventory.DeviceTypePhone {
		lookupType = inventory.DeviceTypeLaptop
	}
	lookupOS := osFamily
	if lookupOS == OSUnknown || lookupOS == "" {
		lookupOS = OSWindows
	}
	if cost, ok := replacementTable[costCell{lookupType, lookupOS, tier}]; ok {
		return cost
	}
	if cost, ok := replacementDefaults[deviceType]; ok {
		return cost
	}
	return replacementDefaults[inventory.DeviceTypeLaptop]
}

// RepairCost resolves the flat repair price for a device type.
func RepairCost(deviceType inventory.DeviceType) float64 {
	if cost, ok := repairCosts[deviceType]; ok {
		return cost
	}
	return repairCostFallback
}

// AgeYears computes device age as a plain year difference. Month and day
// are ignored, so a device bought in December ages the same as one bought
// in January.
func AgeYears(createdAt, now time.Time) int {
	if createdAt.IsZero() {
		return 0
	}
	age := now.Year() - createdAt.Year()
	if age < 0 {
		return 0
	}
	return age
}

// AgeSeverity maps device age to a 0..1 severity fraction. This is the
// single canonical age curve; callers multiply it against whichever cost
// basis they need.
func AgeSeverity(age int) float64 {
	switch {
	case age <= 3:
		return 0.20
	case age <= 7:
		return 0.50
	case age <= 10:
		return 0.80
	default:
		return 1.00
	}
}

// NeedsRepair reports whether a device currently requires repair work.
func NeedsRepair(status inventory.Status) bool {
	return status == inventory.StatusBroken || status == inventory.StatusNeedsRepair
}

// NeedsReplacement reports whether a device should be budgeted for
// replacement. Age and status are independent triggers.
func NeedsReplacement(age int, status inventory.Status) bool {
	return age >= replacementAgeThreshold || status == inventory.StatusBroken
}

// EstimateDeviceCost runs the full cost model for one device. It never
// fails: unclassifiable inputs degrade to conservative defaults so the
// dashboard always gets a number. A device can carry both a repair and a
// replacement cost at once.
func EstimateDeviceCost(device inventory.Device, now time.Time) CostEstimate {
	osFamily, _ := ClassifyOSFamily(device.OperatingSystem)
	tier := ClassifyCostTier(device.DeviceModel, device.OperatingSystem)
	age := AgeYears(device.CreatedAt, now)

	estimate := CostEstimate{
		DeviceID:         device.ID,
		AgeYears:         age,
		AgeSeverity:      AgeSeverity(age),
		OSFamily:         osFamily,
		CostTier:         tier,
		DeviceType:       device.DeviceType,
		NeedsRepair:      NeedsRepair(device.Status),
		NeedsReplacement: NeedsReplacement(age, device.Status),
	}
	if estimate.NeedsRepair {
		estimate.RepairCost = RepairCost(device.DeviceType)
	}
	if estimate.NeedsReplacement {
		estimate.ReplacementCost = ReplacementCost(device.DeviceType, osFamily, tier)
	}
	return estimate
}
