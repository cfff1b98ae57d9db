package content

import (
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/randomtoy/volva-go/internal/domain"
)

// buildRegistry joins the detail map with the canonical Futhark sequence.
// Names absent from the detail map are skipped with a warning so the app can
// run on partial content; a missing image asset only marks the rune
// text-only.
func buildRegistry(details map[string]runeDetail, imageRoot string, logger *slog.Logger) []domain.Rune {
	registry := make([]domain.Rune, 0, len(domain.FutharkOrder))
	for _, name := range domain.FutharkOrder {
		d, ok := details[name]
		if !ok {
			logger.Warn("no detail entry for rune, skipping", "rune", name)
			continue
		}

		img := ImagePath(imageRoot, name)
		hasImage := true
		if _, err := os.Stat(img); err != nil {
			logger.Warn("rune image missing, text-only display", "rune", name, "path", img)
			hasImage = false
		}

		registry = append(registry, domain.Rune{
			Name:           name,
			Image:          img,
			HasImage:       hasImage,
			Meaning:        d.Meaning,
			Symbolism:      d.Symbolism,
			Potential:      d.Potential,
			PracticalUse:   d.PracticalUse,
			AdditionalInfo: d.AdditionalInfo,
			Symbol:         d.Symbol,
			Aett:           d.Aett,
			AettPosition:   d.Position,
		})
	}
	return registry
}

// ImagePath resolves a rune's image asset: the lowercase first token of the
// name plus ".jpg" under imageRoot.
func ImagePath(imageRoot, name string) string {
	tokens := strings.Fields(name)
	if len(tokens) == 0 {
		return ""
	}
	return filepath.Join(imageRoot, strings.ToLower(tokens[0])+".jpg")
}
