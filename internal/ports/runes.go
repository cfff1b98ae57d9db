package ports

import "github.com/randomtoy/volva-go/internal/domain"

// RuneSource provides read-only access to the loaded rune content. The
// backing store is immutable after startup, so no call blocks.
type RuneSource interface {
	Runes() []domain.Rune
	Rune(name string) (domain.Rune, bool)
	Full(name string) (domain.FullRune, bool)
	Daily(name string) (domain.DailyEntry, bool)
}
