package estimation

import (
	"strconv"
	"strings"
	"unicode"
)

// ParseRAMGB extracts a memory size in whole gigabytes from a free-form
// RAM string such as "8GB", "16 GB DDR4" or "8192MB". The ok flag is false
// when no size could be extracted; callers exclude such devices from RAM
// buckets rather than erroring.
func ParseRAMGB(raw string) (int, bool) {
	value := strings.ToLower(strings.TrimSpace(raw))
	if value == "" {
		return 0, false
	}

	digits := strings.Builder{}
	rest := ""
	for i, r := range value {
		if unicode.IsDigit(r) {
			digits.WriteRune(r)
			continue
		}
		if digits.Len() > 0 {
			rest = strings.TrimSpace(value[i:])
			break
		}
	}
	if digits.Len() == 0 {
		return 0, false
	}
	amount, err := strconv.Atoi(digits.String())
	if err != nil || amount <= 0 {
		return 0, false
	}

	switch {
	case strings.HasPrefix(rest, "tb") || strings.HasPrefix(rest, "t"):
		return amount * 1024, true
	case strings.HasPrefix(rest, "mb") || strings.HasPrefix(rest, "m"):
		gb := amount / 1024
		if gb <= 0 {
			return 0, false
		}
		return gb, true
	default:
		return amount, true
	}
}

// CPUGeneration identifies a parsed processor generation.
type CPUGeneration struct {
	Vendor     string
	Generation int
}

const (
	VendorIntel = "intel"
	VendorAMD   = "amd"
)

// ParseCPUGeneration extracts a CPU generation from a free-form processor
// string. Supported shapes are Intel Core model numbers ("i5-8250U",
// "Core i7 10710U") and AMD Ryzen model numbers ("Ryzen 5 3600"). The ok
// flag is false for anything else; parsing is best-effort by design.
func ParseCPUGeneration(raw string) (CPUGeneration, bool) {
	value := strings.ToLower(raw)

	for _, prefix := range []string{"i3", "i5", "i7", "i9"} {
		idx := strings.Index(value, prefix)
		if idx < 0 {
			continue
		}
		model := leadingDigits(value[idx+len(prefix):])
		gen, ok := intelGeneration(model)
		if !ok {
			continue
		}
		return CPUGeneration{Vendor: VendorIntel, Generation: gen}, true
	}

	if idx := strings.Index(value, "ryzen"); idx >= 0 {
		rest := value[idx+len("ryzen"):]
		// Skip the series digit ("Ryzen 5") and read the model number.
		rest = strings.TrimLeft(rest, " \t")
		if len(rest) > 0 && rest[0] >= '0' && rest[0] <= '9' {
			rest = rest[1:]
		}
		model := leadingDigits(rest)
		if len(model) == 4 {
			gen := int(model[0] - '0')
			if gen > 0 {
				return CPUGeneration{Vendor: VendorAMD, Generation: gen}, true
			}
		}
	}

	return CPUGeneration{}, false
}

func leadingDigits(value string) string {
	value = strings.TrimLeft(value, " -")
	end := 0
	for end < len(value) && value[end] >= '0' && value[end] <= '9' {
		end++
	}
	return value[:end]
}

func intelGeneration(model string) (int, bool) {
	switch len(model) {
	case 4:
		return int(model[0] - '0'), true
	case 5:
		gen, err := strconv.Atoi(model[:2])
		if err != nil {
			return 0, false
		}
		return gen, true
	default:
		return 0, false
	}
}
