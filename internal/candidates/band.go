package candidates

// Band is a coarse classification of a 0-100 score.
type Band string

// Score bands, from best to worst.
const (
	BandHigh       Band = "high"
	BandMediumHigh Band = "medium-high"
	BandMedium     Band = "medium"
	BandLow        Band = "low"
)

// Classify maps a score to its band. Lower bounds are inclusive.
func Classify(score int) Band {
	switch {
	case score >= 80:
		return BandHigh
	case score >= 70:
		return BandMediumHigh
	case score >= 60:
		return BandMedium
	default:
		return BandLow
	}
}

// Class returns the text colour class used to render scores in this band.
func (b Band) Class() string {
	switch b {
	case BandHigh:
		return "text-success-500"
	case BandMediumHigh:
		return "text-orange-500"
	case BandMedium:
		return "text-yellow-500"
	default:
		return "text-red-500"
	}
}
