package rewards

// Policy carries the configurable split constants used when rewards are
// auto-calculated. It is always passed in explicitly; nothing in this package
// reads ambient configuration.
type Policy struct {
	// PlacementSharePercent is the share of the prize pool suggested for the
	// winning position (percent, 0-100). The remainder funds kill rewards.
	PlacementSharePercent float64
	// ExpectedKillFactor estimates total kills as a fraction of total players.
	ExpectedKillFactor float64
	// BudgetEpsilon is the tolerance applied when validating a manual reward
	// configuration against the prize pool.
	BudgetEpsilon float64
}

// DefaultPolicy returns the 10/90 split observed in production configuration.
func DefaultPolicy() Policy {
	return Policy{
		PlacementSharePercent: 10,
		ExpectedKillFactor:    0.8,
		BudgetEpsilon:         0.01,
	}
}
