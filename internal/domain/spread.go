package domain

// RNG abstracts random number generation for deterministic testing.
type RNG interface {
	// Intn returns a non-negative random int in [0, n).
	Intn(n int) int
	// Float64 returns a random float in [0, 1).
	Float64() float64
}

// ReversedChance is the probability that a drawn rune lands reversed. Each
// rune in a draw decides its orientation independently.
const ReversedChance = 1.0 / 3.0

// SpreadType names one of the supported rune layouts.
type SpreadType string

const (
	SpreadSingle SpreadType = "single"
	SpreadThree  SpreadType = "three"
	SpreadCross  SpreadType = "cross"
	SpreadFive   SpreadType = "five"
	SpreadEight  SpreadType = "eight"
)

var spreadSizes = map[SpreadType]int{
	SpreadSingle: 1,
	SpreadThree:  3,
	SpreadCross:  4,
	SpreadFive:   5,
	SpreadEight:  8,
}

// ParseSpreadType maps a raw string onto a known spread type.
func ParseSpreadType(raw string) (SpreadType, error) {
	t := SpreadType(raw)
	if _, ok := spreadSizes[t]; !ok {
		return "", ErrUnknownSpread
	}
	return t, nil
}

// Size returns how many runes the spread uses.
func (t SpreadType) Size() int { return spreadSizes[t] }

// PositionNames returns the presentation names for each slot, or nil when
// slots are simply numbered. This is layered on top of the draw; the draw
// itself is layout-agnostic.
func (t SpreadType) PositionNames() []string {
	switch t {
	case SpreadSingle:
		return []string{"essence"}
	case SpreadThree:
		return []string{"past", "present", "future"}
	case SpreadCross:
		return []string{"situation", "challenge", "past influence", "potential future"}
	case SpreadFive:
		return []string{"past", "present", "future", "inner strength", "outside influence"}
	default:
		return nil
	}
}

// Description is the short blurb shown above a laid-out spread.
func (t SpreadType) Description() string {
	switch t {
	case SpreadSingle:
		return "One rune, one revelation: the heart of your question, the key to the situation."
	case SpreadThree:
		return "The Triad of Time: the left rune speaks of the past, the middle of the energies around you now, the right of the path or warning ahead."
	case SpreadCross:
		return "The Cross: four runes for the present situation, its challenges, the past that shaped it and the future it may grow into."
	case SpreadFive:
		return "The Star of Change: past, present and future, joined by your inner strength and a gift or warning from outside."
	case SpreadEight:
		return "The Circle of Life: eight runes form a full cycle, each revealing another aspect of your path from the birth of an idea to its transformation."
	default:
		return ""
	}
}

// Draw selects n unique runes via a Fisher-Yates partial shuffle, so every
// n-subset of the registry is equally likely. Positions are 1-based and each
// rune is reversed independently with probability ReversedChance.
func Draw(runes []Rune, n int, t SpreadType, rng RNG) (Spread, error) {
	if n < 1 || n > len(runes) {
		return Spread{}, ErrInsufficientRunes
	}

	idx := make([]int, len(runes))
	for i := range idx {
		idx[i] = i
	}
	// Only the first n slots need shuffling.
	for i := 0; i < n; i++ {
		j := i + rng.Intn(len(idx)-i)
		idx[i], idx[j] = idx[j], idx[i]
	}

	drawn := make([]DrawnRune, n)
	for i := 0; i < n; i++ {
		drawn[i] = DrawnRune{
			Rune:     runes[idx[i]],
			Position: i + 1,
			Reversed: rng.Float64() < ReversedChance,
		}
	}

	return Spread{Type: t, Runes: drawn}, nil
}
