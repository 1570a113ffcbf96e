package transform

// Tier is a performance band derived from a team's win percentage.
type Tier string

const (
	TierExcellent Tier = "Excellent"
	TierGood      Tier = "Good"
	TierAverage   Tier = "Average"
	TierPoor      Tier = "Poor"
)

// tierLadder is evaluated top-down; the first threshold met wins.
var tierLadder = []struct {
	min  float64
	tier Tier
}{
	{70, TierExcellent},
	{60, TierGood},
	{50, TierAverage},
}

// PerformanceTier classifies a win percentage.
func PerformanceTier(winPercentage float64) Tier {
	for _, step := range tierLadder {
		if winPercentage >= step.min {
			return step.tier
		}
	}
	return TierPoor
}

// Tiers lists every tier from best to worst.
func Tiers() []Tier {
	return []Tier{TierExcellent, TierGood, TierAverage, TierPoor}
}
