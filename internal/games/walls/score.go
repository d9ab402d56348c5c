package walls

import "github.com/vovakirdan/closing-walls/internal/core"

// Breakdown is the itemized score of a session.
type Breakdown struct {
	Surface    int `json:"surface"`
	TimeBonus  int `json:"time_bonus"`
	Efficiency int `json:"efficiency"`
	Total      int `json:"total"`
}

// CalculateScore scores a coverage percentage reached after elapsed seconds.
// The live preview passes includeTimeBonus=false; final scores pass true.
func CalculateScore(coverage, elapsed int, includeTimeBonus bool) Breakdown {
	if elapsed < 0 {
		elapsed = 0
	}
	b := Breakdown{Surface: coverage * 100}
	if includeTimeBonus {
		b.TimeBonus = elapsed * 10
	}
	if coverage > 0 {
		// floor(c²/(e+1)·5) computed exactly in integers
		b.Efficiency = coverage * coverage * 5 / (elapsed + 1)
	}
	b.Total = b.Surface + b.TimeBonus + b.Efficiency
	return b
}

// Rank is a score tier.
type Rank int

const (
	RankBeginner Rank = iota
	RankNovice
	RankSkilled
	RankExpert
	RankMaster
	RankLegendary
)

// RankTier describes one rank and the lowest total that earns it.
type RankTier struct {
	Rank  Rank
	Min   int
	Color core.Color
}

// rankTiers is ordered from highest to lowest threshold.
var rankTiers = []RankTier{
	{RankLegendary, 15000, core.ColorBrightYellow},
	{RankMaster, 12000, core.ColorOrange},
	{RankExpert, 9000, core.ColorCyan},
	{RankSkilled, 6000, core.ColorBrightBlue},
	{RankNovice, 3000, core.ColorGreen},
	{RankBeginner, 0, core.ColorYellow},
}

// RankTiers returns the tiers from highest to lowest.
func RankTiers() []RankTier {
	out := make([]RankTier, len(rankTiers))
	copy(out, rankTiers)
	return out
}

// RankFor maps a total score to its tier. Thresholds are inclusive.
func RankFor(total int) Rank {
	for _, t := range rankTiers {
		if total >= t.Min {
			return t.Rank
		}
	}
	return RankBeginner
}

// Color returns the display color of the rank.
func (r Rank) Color() core.Color {
	for _, t := range rankTiers {
		if t.Rank == r {
			return t.Color
		}
	}
	return core.ColorDefault
}

func (r Rank) String() string {
	switch r {
	case RankLegendary:
		return "LEGENDARY"
	case RankMaster:
		return "MASTER"
	case RankExpert:
		return "EXPERT"
	case RankSkilled:
		return "SKILLED"
	case RankNovice:
		return "NOVICE"
	default:
		return "BEGINNER"
	}
}

// MarshalText encodes the rank by name.
func (r Rank) MarshalText() ([]byte, error) {
	return []byte(r.String()), nil
}
