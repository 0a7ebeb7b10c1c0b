package core

import (
	"strings"
	"testing"
)

func TestProductTextDeterministic(t *testing.T) {
	p := validProduct()
	p.Powertrain = &Powertrain{MotorPowerW: 250, BatteryCapacityWh: 500, RangeKM: 80}

	first := ProductText(p)
	second := ProductText(p)
	if first != second {
		t.Fatalf("product text not deterministic: %q vs %q", first, second)
	}
}

func TestProductTextTokenOrder(t *testing.T) {
	p := validProduct()
	text := ProductText(p)

	want := "Mountain Bike Pro mountain Trailblazer €1299.99 trail off-road aluminum full 21 gears 13.5 kg"
	if text != want {
		t.Fatalf("got %q, want %q", text, want)
	}
}

func TestProductTextExtensions(t *testing.T) {
	p := validProduct()
	base := ProductText(p)

	p.Powertrain = &Powertrain{MotorPowerW: 250, BatteryCapacityWh: 500, RangeKM: 80}
	p.Cargo = &Cargo{MaxLoadKG: 80}
	full := ProductText(p)

	if !strings.HasPrefix(full, base) {
		t.Fatalf("extension tokens should append after base tokens: %q", full)
	}
	for _, token := range []string{"250W motor", "500Wh battery", "80km range", "80kg max load"} {
		if !strings.Contains(full, token) {
			t.Fatalf("missing token %q in %q", token, full)
		}
	}
}

func TestProductTextAbsentExtensionsAddNothing(t *testing.T) {
	p := validProduct()
	text := ProductText(p)

	for _, forbidden := range []string{"motor", "battery", "range", "max load", "None", "nil"} {
		if strings.Contains(text, forbidden) {
			t.Fatalf("base product text should not contain %q: %q", forbidden, text)
		}
	}
}

func TestNormalizeSearchText(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"bike for trails", "bike for trails"},
		{"  bike   for\ttrails \n", "bike for trails"},
		{"", ""},
		{"   ", ""},
	}

	for _, tt := range tests {
		if got := NormalizeSearchText(tt.in); got != tt.want {
			t.Fatalf("NormalizeSearchText(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
