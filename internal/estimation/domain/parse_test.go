package estimation

import "testing"

func TestParseRAMGB(t *testing.T) {
	cases := []struct {
		raw string
		gb  int
		ok  bool
	}{
		{"8GB", 8, true},
		{"4GB", 4, true},
		{"32GB", 32, true},
		{"16 GB DDR4", 16, true},
		{"8gb ddr4 3200mhz", 8, true},
		{"8192MB", 8, true},
		{"1TB", 1024, true},
		{"12", 12, true},
		{"512MB", 0, false},
		{"", 0, false},
		{"unknown", 0, false},
		{"DDR4", 0, false},
	}
	for _, tc := range cases {
		gb, ok := ParseRAMGB(tc.raw)
		if gb != tc.gb || ok != tc.ok {
			t.Errorf("ParseRAMGB(%q) = (%d, %v), want (%d, %v)", tc.raw, gb, ok, tc.gb, tc.ok)
		}
	}
}

func TestParseCPUGeneration(t *testing.T) {
	cases := []struct {
		raw string
		gen CPUGeneration
		ok  bool
	}{
		{"Intel Core i5-8250U", CPUGeneration{VendorIntel, 8}, true},
		{"Intel Core i7-10710U", CPUGeneration{VendorIntel, 10}, true},
		{"i3-7020U", CPUGeneration{VendorIntel, 7}, true},
		{"Core i9 11900K", CPUGeneration{VendorIntel, 11}, true},
		{"AMD Ryzen 5 3600", CPUGeneration{VendorAMD, 3}, true},
		{"Ryzen 7 5800X", CPUGeneration{VendorAMD, 5}, true},
		{"Ryzen 9 7950X", CPUGeneration{VendorAMD, 7}, true},
		{"Apple M2", CPUGeneration{}, false},
		{"Snapdragon 8 Gen 1", CPUGeneration{}, false},
		{"Intel Core i5", CPUGeneration{}, false},
		{"", CPUGeneration{}, false},
	}
	for _, tc := range cases {
		gen, ok := ParseCPUGeneration(tc.raw)
		if gen != tc.gen || ok != tc.ok {
			t.Errorf("ParseCPUGeneration(%q) = (%+v, %v), want (%+v, %v)", tc.raw, gen, ok, tc.gen, tc.ok)
		}
	}
}
