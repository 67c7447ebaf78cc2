// Package ratelimit implements client-side quota tracking for the
// ballchasing API. The server enforces per-second and per-hour call quotas
// that depend on the caller's patronage tier; the tracker counts calls in
// Redis (shared across client instances) and gates requests before they are
// sent, so the quota is not burned on requests that would only come back
// as 429.
package ratelimit

// Patronage is the caller's patron tier as reported by the ping endpoint.
type Patronage string

const (
	// PatronageRegular is the non-patron tier.
	PatronageRegular Patronage = "regular"

	// PatronageGold is the gold patron tier.
	PatronageGold Patronage = "gold"

	// PatronageDiamond is the diamond patron tier.
	PatronageDiamond Patronage = "diamond"

	// PatronageChampion is the champion patron tier.
	PatronageChampion Patronage = "champion"

	// PatronageGrandChampion is the grand champion patron tier.
	PatronageGrandChampion Patronage = "grand_champion"
)

// Limits are the call quotas for one patronage tier.
type Limits struct {
	// PerSecond is the maximum number of calls per second.
	PerSecond int

	// PerHour is the maximum number of calls per hour. Zero means the
	// tier has no hourly quota.
	PerHour int
}

// LimitsFor returns the server-enforced quotas for a patronage tier.
// Unknown tiers fall back to the regular quotas, the most conservative set.
func LimitsFor(patronage Patronage) Limits {
	switch patronage {
	case PatronageGrandChampion:
		return Limits{PerSecond: 8}
	case PatronageChampion:
		return Limits{PerSecond: 4, PerHour: 5000}
	case PatronageDiamond:
		return Limits{PerSecond: 2, PerHour: 2000}
	case PatronageGold:
		return Limits{PerSecond: 2, PerHour: 1000}
	default:
		return Limits{PerSecond: 2, PerHour: 500}
	}
}

// ParsePatronage maps a ping response type to a Patronage, falling back to
// the regular tier for values this package does not know about.
func ParsePatronage(value string) Patronage {
	switch Patronage(value) {
	case PatronageGold, PatronageDiamond, PatronageChampion, PatronageGrandChampion:
		return Patronage(value)
	default:
		return PatronageRegular
	}
}
