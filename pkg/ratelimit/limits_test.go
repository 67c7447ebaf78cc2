package ratelimit

import "testing"

func TestLimitsFor(t *testing.T) {
	tests := []struct {
		name      string
		patronage Patronage
		perSecond int
		perHour   int
	}{
		{"regular", PatronageRegular, 2, 500},
		{"gold", PatronageGold, 2, 1000},
		{"diamond", PatronageDiamond, 2, 2000},
		{"champion", PatronageChampion, 4, 5000},
		{"grand champion has no hourly quota", PatronageGrandChampion, 8, 0},
		{"unknown falls back to regular", Patronage("platinum"), 2, 500},
		{"empty falls back to regular", Patronage(""), 2, 500},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			limits := LimitsFor(tt.patronage)
			if limits.PerSecond != tt.perSecond {
				t.Errorf("PerSecond = %d, want %d", limits.PerSecond, tt.perSecond)
			}
			if limits.PerHour != tt.perHour {
				t.Errorf("PerHour = %d, want %d", limits.PerHour, tt.perHour)
			}
		})
	}
}

func TestParsePatronage(t *testing.T) {
	tests := []struct {
		value string
		want  Patronage
	}{
		{"regular", PatronageRegular},
		{"gold", PatronageGold},
		{"diamond", PatronageDiamond},
		{"champion", PatronageChampion},
		{"grand_champion", PatronageGrandChampion},
		{"", PatronageRegular},
		{"bronze", PatronageRegular},
	}

	for _, tt := range tests {
		t.Run(tt.value, func(t *testing.T) {
			if got := ParsePatronage(tt.value); got != tt.want {
				t.Errorf("ParsePatronage(%q) = %q, want %q", tt.value, got, tt.want)
			}
		})
	}
}
