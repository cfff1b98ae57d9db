// Package content loads and validates the rune content files and exposes
// them as an immutable in-memory store.
package content

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"sort"

	"github.com/randomtoy/volva-go/internal/domain"
)

// Store holds all rune content. It is read-only after Load and safe to share
// across sessions without locking.
type Store struct {
	registry []domain.Rune
	byName   map[string]int
	fullList []domain.FullRune
	full     map[string]domain.FullRune
	daily    map[string]domain.DailyEntry
}

// Load reads the content files and builds the canonical registry.
//
// The detail map is mandatory: a missing file, bad JSON or a missing required
// key fails the load. Full records are validated individually and bad ones
// are skipped with a log line, so the result may hold fewer than 24 records.
// A missing daily file only disables the daily extras.
func Load(detailPath, fullPath, dailyPath, imageRoot string, logger *slog.Logger) (*Store, error) {
	details, err := loadDetailMap(detailPath)
	if err != nil {
		return nil, err
	}

	full, err := loadFullRecords(fullPath, logger)
	if err != nil {
		return nil, err
	}

	daily, err := loadDaily(dailyPath, logger)
	if err != nil {
		return nil, err
	}

	s := &Store{
		registry: buildRegistry(details, imageRoot, logger),
		byName:   make(map[string]int),
		fullList: full,
		full:     make(map[string]domain.FullRune, len(full)),
		daily:    daily,
	}
	for i, r := range s.registry {
		s.byName[r.Name] = i
	}
	for _, r := range full {
		s.full[r.Name] = r
	}

	logger.Info("content loaded",
		"runes", len(s.registry),
		"full_records", len(s.fullList),
		"daily_entries", len(s.daily),
	)
	return s, nil
}

// Runes returns the registry in canonical Futhark order. Callers must treat
// the slice as read-only.
func (s *Store) Runes() []domain.Rune { return s.registry }

// Rune looks a rune up by its exact canonical name.
func (s *Store) Rune(name string) (domain.Rune, bool) {
	i, ok := s.byName[name]
	if !ok {
		return domain.Rune{}, false
	}
	return s.registry[i], true
}

// Full returns the full record for a rune, when one survived validation.
func (s *Store) Full(name string) (domain.FullRune, bool) {
	r, ok := s.full[name]
	return r, ok
}

// FullRecords returns every full record that passed validation.
func (s *Store) FullRecords() []domain.FullRune { return s.fullList }

// Daily returns the daily entry for a rune, when the daily file carries one.
func (s *Store) Daily(name string) (domain.DailyEntry, bool) {
	e, ok := s.daily[name]
	return e, ok
}

func readContent(path string) ([]byte, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", domain.ErrContentNotFound, path)
		}
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return raw, nil
}

func loadDetailMap(path string) (map[string]runeDetail, error) {
	raw, err := readContent(path)
	if err != nil {
		return nil, err
	}

	var keyed map[string]json.RawMessage
	if err := json.Unmarshal(raw, &keyed); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", domain.ErrContentParse, path, err)
	}

	// Sorted so a validation failure always names the same entry.
	names := make([]string, 0, len(keyed))
	for name := range keyed {
		names = append(names, name)
	}
	sort.Strings(names)

	details := make(map[string]runeDetail, len(keyed))
	for _, name := range names {
		if err := requireKeys(name, keyed[name], detailRequiredKeys); err != nil {
			return nil, err
		}
		var d runeDetail
		if err := json.Unmarshal(keyed[name], &d); err != nil {
			return nil, fmt.Errorf("%w: rune %q: %v", domain.ErrContentParse, name, err)
		}
		details[name] = d
	}
	return details, nil
}

func loadFullRecords(path string, logger *slog.Logger) ([]domain.FullRune, error) {
	raw, err := readContent(path)
	if err != nil {
		return nil, err
	}

	var elems []json.RawMessage
	if err := json.Unmarshal(raw, &elems); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", domain.ErrContentParse, path, err)
	}

	records := make([]domain.FullRune, 0, len(elems))
	for i, elem := range elems {
		var fields map[string]json.RawMessage
		if err := json.Unmarshal(elem, &fields); err != nil {
			logger.Warn("skipping full record: not an object", "index", i, "error", err)
			continue
		}

		name := decodeString(fields["name"])
		if missing := missingKeys(fields, fullRequiredKeys); len(missing) > 0 {
			logger.Warn("skipping full record with missing fields",
				"rune", nameOrUnnamed(name), "index", i, "missing", missing)
			continue
		}

		var rec domain.FullRune
		if err := json.Unmarshal(elem, &rec); err != nil {
			logger.Warn("skipping unparseable full record", "rune", name, "index", i, "error", err)
			continue
		}
		rec.Extra = extraFields(fields, fullRequiredKeys)
		records = append(records, rec)
	}
	return records, nil
}

func loadDaily(path string, logger *slog.Logger) (map[string]domain.DailyEntry, error) {
	if path == "" {
		return nil, nil
	}
	raw, err := readContent(path)
	if err != nil {
		if errors.Is(err, domain.ErrContentNotFound) {
			logger.Warn("daily content file missing, daily extras disabled", "path", path)
			return nil, nil
		}
		return nil, err
	}

	var daily map[string]domain.DailyEntry
	if err := json.Unmarshal(raw, &daily); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", domain.ErrContentParse, path, err)
	}
	return daily, nil
}
