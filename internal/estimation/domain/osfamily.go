package estimation

import "strings"

// OSFamily is the coarse classification of a free-form operating system
// string.
type OSFamily string

const (
	OSWindows OSFamily = "windows"
	OSMacOS   OSFamily = "macos"
	OSIOS     OSFamily = "ios"
	OSAndroid OSFamily = "android"
	OSLinux   OSFamily = "linux"
	OSUnknown OSFamily = "unknown"
)

// ClassifyOSFamily resolves a raw operating system string to a family.
// Matching is a case-insensitive substring check. The second return value
// is false when no family matched; callers decide how to degrade, the
// costing code prices Unknown as Windows.
func ClassifyOSFamily(raw string) (OSFamily, bool) {
	value := strings.ToLower(strings.TrimSpace(raw))
	if value == "" {
		return OSUnknown, false
	}
	switch {
	case strings.Contains(value, "windows"):
		return OSWindows, true
	case strings.Contains(value, "macos"), strings.Contains(value, "mac os"), strings.Contains(value, "os x"):
		return OSMacOS, true
	case strings.Contains(value, "ipados"), strings.Contains(value, "ios"):
		return OSIOS, true
	case strings.Contains(value, "android"):
		return OSAndroid, true
	case strings.Contains(value, "linux"), strings.Contains(value, "ubuntu"), strings.Contains(value, "fedora"), strings.Contains(value, "debian"):
		return OSLinux, true
	default:
		return OSUnknown, false
	}
}
