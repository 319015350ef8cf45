package estimation

import "testing"

func TestClassifyOSFamily(t *testing.T) {
	cases := []struct {
		raw    string
		family OSFamily
		known  bool
	}{
		{"Windows 11 Pro", OSWindows, true},
		{"windows 10 enterprise", OSWindows, true},
		{"macOS Sonoma", OSMacOS, true},
		{"Mac OS X 10.15", OSMacOS, true},
		{"iPadOS 17", OSIOS, true},
		{"iOS 17.4", OSIOS, true},
		{"Android 13", OSAndroid, true},
		{"Ubuntu 22.04 LTS", OSLinux, true},
		{"Debian 12", OSLinux, true},
		{"Arch Linux", OSLinux, true},
		{"ChromeOS", OSUnknown, false},
		{"", OSUnknown, false},
		{"   ", OSUnknown, false},
	}
	for _, tc := range cases {
		family, known := ClassifyOSFamily(tc.raw)
		if family != tc.family || known != tc.known {
			t.Errorf("ClassifyOSFamily(%q) = (%q, %v), want (%q, %v)", tc.raw, family, known, tc.family, tc.known)
		}
	}
}

func TestClassifyOSFamilyMacOSIsNotIOS(t *testing.T) {
	// "macos" contains "os" but must never fall into the iOS branch.
	family, known := ClassifyOSFamily("macOS Ventura")
	if !known || family != OSMacOS {
		t.Fatalf("got (%q, %v), want (%q, true)", family, known, OSMacOS)
	}
}
