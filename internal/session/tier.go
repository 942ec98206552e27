package session

// Tier is the qualitative rating shown when a session finishes.
type Tier int

const (
	TierPractice Tier = iota
	TierGood
	TierGreat
	TierOutstanding
)

// Rate maps an accuracy in [0, 1] to a tier. Thresholds are strict, so an
// accuracy of exactly 0.8 rates TierGreat rather than TierOutstanding.
func Rate(accuracy float64) Tier {
	switch {
	case accuracy > 0.8:
		return TierOutstanding
	case accuracy > 0.6:
		return TierGreat
	case accuracy > 0.4:
		return TierGood
	default:
		return TierPractice
	}
}

// Accuracy returns matches divided by attempts, or zero with no attempts.
func Accuracy(matches, attempts int) float64 {
	return float64(matches) / float64(max(attempts, 1))
}

// String returns a short name for logs and storage.
func (t Tier) String() string {
	switch t {
	case TierOutstanding:
		return "outstanding"
	case TierGreat:
		return "great"
	case TierGood:
		return "good"
	default:
		return "practice"
	}
}

// Message returns the closing line shown to the player.
func (t Tier) Message() string {
	switch t {
	case TierOutstanding:
		return "Outstanding memory! You barely missed a thing."
	case TierGreat:
		return "Great job! Your memory is in good shape."
	case TierGood:
		return "Good effort! A little more practice will pay off."
	default:
		return "Keep practicing! Every game makes you sharper."
	}
}
