// Package rewards implements the pure reward-rules calculations: prize pool
// derivation, auto-calculated reward suggestions, per-result reward breakdowns
// and budget validation. All functions are side-effect free.
package rewards

import "math"

// Economics is the subset of tournament configuration the reward rules need.
type Economics struct {
	EntryFee          float64
	MaxTeams          int
	MatchType         string
	CommissionPercent float64
}

// Suggestion is the auto-calculated reward split for a tournament.
type Suggestion struct {
	FirstPlacePrize     float64
	KillRewardPerKill   float64
	EstimatedTotalKills int
}

// Breakdown is the computed reward for a single result.
type Breakdown struct {
	PlacementReward float64
	KillReward      float64
	TotalReward     float64
}

// TeamSizeFor maps a match type to the number of players per team.
// Unrecognized types fall back to squad size.
func TeamSizeFor(matchType string) int {
	switch matchType {
	case "solo":
		return 1
	case "duo":
		return 2
	case "trio":
		return 3
	case "squad", "custom":
		return 4
	default:
		return 4
	}
}

// TotalPlayers derives the player capacity from team capacity and match type.
func TotalPlayers(econ Economics) int {
	return econ.MaxTeams * TeamSizeFor(econ.MatchType)
}

// PrizePool computes entryFee * totalPlayers * (1 - commission/100),
// floored at zero.
func PrizePool(econ Economics) float64 {
	pool := econ.EntryFee * float64(TotalPlayers(econ)) * (1 - econ.CommissionPercent/100)
	if pool < 0 {
		return 0
	}
	return pool
}

// EstimatedTotalKills estimates the kill count for a full lobby, floored at 1
// so kill-reward division never hits zero.
func EstimatedTotalKills(econ Economics, p Policy) int {
	kills := int(math.Round(float64(TotalPlayers(econ)) * p.ExpectedKillFactor))
	if kills < 1 {
		return 1
	}
	return kills
}

// Suggest produces the auto-calculated first-place prize and per-kill reward
// for the given economics under the policy's split.
func Suggest(econ Economics, p Policy) Suggestion {
	pool := PrizePool(econ)
	kills := EstimatedTotalKills(econ, p)
	first := pool * p.PlacementSharePercent / 100
	return Suggestion{
		FirstPlacePrize:     first,
		KillRewardPerKill:   (pool - first) / float64(kills),
		EstimatedTotalKills: kills,
	}
}

// Compute derives the reward breakdown for a single result. The placement
// component comes from the position->percent table (zero when the position is
// not listed), the kill component is kills * perKill. Both components are
// rounded to whole currency units before summation so the total always equals
// their sum exactly.
func Compute(kills, position int, pool float64, table map[int]float64, perKill float64) Breakdown {
	var placement float64
	if pct, ok := table[position]; ok && position > 0 {
		placement = roundAmount(pool * pct / 100)
	}
	kill := roundAmount(float64(kills) * perKill)
	return Breakdown{
		PlacementReward: placement,
		KillReward:      kill,
		TotalReward:     placement + kill,
	}
}

// PlannedSpend is the worst-case payout of a manual reward configuration:
// the planned first prize plus kill rewards for the estimated kill count.
func PlannedSpend(firstPrize, perKill float64, econ Economics, p Policy) float64 {
	return firstPrize + perKill*float64(EstimatedTotalKills(econ, p))
}

// WithinBudget reports whether a manual reward configuration fits the prize
// pool, within the policy's epsilon.
func WithinBudget(firstPrize, perKill float64, econ Economics, p Policy) bool {
	return PlannedSpend(firstPrize, perKill, econ, p) <= PrizePool(econ)+p.BudgetEpsilon
}

// roundAmount rounds to the currency's minor unit (whole rupees).
func roundAmount(v float64) float64 {
	return math.Round(v)
}
