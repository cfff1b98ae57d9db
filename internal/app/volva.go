package app

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/randomtoy/volva-go/internal/domain"
	"github.com/randomtoy/volva-go/internal/ports"
	"github.com/randomtoy/volva-go/internal/session"
)

// Themed fallbacks keep the seeress in voice when the upstream service
// fails; callers of RequestProphecy never see a raw transport error.
const (
	fallbackAnswer = "The runes are silent today... The mists lie thick over the well of Urd. " +
		"Ask again when the fire burns brighter."
	fallbackReading = "The runes are silent... Their shapes blur in the smoke of the seidr fire. " +
		"Return with your question when the embers settle."
)

// Prophecy is the outcome of one consultation.
type Prophecy struct {
	Text      string
	Rune      *domain.DrawnRune
	Model     string
	LatencyMS int64
}

// VolvaService orchestrates draws, the daily rune and prophecy requests.
type VolvaService struct {
	source     ports.RuneSource
	prophet    ports.Prophet
	rng        domain.RNG
	model      string
	defaultKey string
	logger     *slog.Logger
}

func NewVolvaService(source ports.RuneSource, prophet ports.Prophet, rng domain.RNG, model, defaultKey string, logger *slog.Logger) *VolvaService {
	return &VolvaService{
		source:     source,
		prophet:    prophet,
		rng:        rng,
		model:      model,
		defaultKey: defaultKey,
		logger:     logger,
	}
}

// Runes returns the registry in canonical Futhark order.
func (s *VolvaService) Runes() []domain.Rune { return s.source.Runes() }

// Rune looks a rune up by name, case-insensitively.
func (s *VolvaService) Rune(name string) (domain.Rune, error) {
	if r, ok := s.source.Rune(name); ok {
		return r, nil
	}
	for _, r := range s.source.Runes() {
		if strings.EqualFold(r.Name, name) {
			return r, nil
		}
	}
	return domain.Rune{}, domain.ErrRuneNotFound
}

// FullRecord returns the richer record for a rune, when one loaded.
func (s *VolvaService) FullRecord(name string) (domain.FullRune, bool) {
	return s.source.Full(name)
}

// DailyEntry returns the daily extras for a rune, when the daily file has
// them.
func (s *VolvaService) DailyEntry(name string) (domain.DailyEntry, bool) {
	return s.source.Daily(name)
}

// CurrentSpread returns the session's stored draw for a spread type, so a
// view refresh does not redraw.
func (s *VolvaService) CurrentSpread(st *session.State, t domain.SpreadType) (domain.Spread, bool) {
	return st.Draw(t)
}

// DrawSpread draws a fresh spread and replaces the session's previous draw
// of the same type wholesale.
func (s *VolvaService) DrawSpread(st *session.State, t domain.SpreadType) (domain.Spread, error) {
	spread, err := domain.Draw(s.source.Runes(), t.Size(), t, s.rng)
	if err != nil {
		return domain.Spread{}, err
	}
	st.SetDraw(spread)
	return spread, nil
}

// CurrentDaily returns the session's rune of the day, if drawn.
func (s *VolvaService) CurrentDaily(st *session.State) (domain.DrawnRune, bool) {
	return st.DailyRune()
}

// DrawDaily picks the rune of the day. The daily rune is always shown
// upright.
func (s *VolvaService) DrawDaily(st *session.State) (domain.DrawnRune, error) {
	runes := s.source.Runes()
	if len(runes) == 0 {
		return domain.DrawnRune{}, domain.ErrInsufficientRunes
	}
	drawn := domain.DrawnRune{
		Rune:     runes[s.rng.Intn(len(runes))],
		Position: 1,
	}
	st.SetDailyRune(drawn)
	return drawn, nil
}

// RequestProphecy validates the question and credential, optionally draws a
// single rune to read against the question, and asks the prophet. Upstream
// failures are converted into a themed fallback text, never surfaced as
// errors; a missing credential stays a distinct, correctable error.
func (s *VolvaService) RequestProphecy(ctx context.Context, st *session.State, question string, drawRune bool) (Prophecy, error) {
	if strings.TrimSpace(question) == "" {
		return Prophecy{}, domain.ErrEmptyQuestion
	}

	key := st.Credential()
	if key == "" {
		key = s.defaultKey
	}
	if key == "" {
		return Prophecy{}, domain.ErrMissingCredential
	}

	in := ports.ProphecyInput{Question: question}
	var drawn *domain.DrawnRune
	if drawRune {
		runes := s.source.Runes()
		if len(runes) == 0 {
			return Prophecy{}, domain.ErrInsufficientRunes
		}
		r := runes[s.rng.Intn(len(runes))]
		reversed := s.rng.Float64() < domain.ReversedChance
		drawn = &domain.DrawnRune{Rune: r, Position: 1, Reversed: reversed}
		in.Rune = &ports.RuneInput{Name: r.Name, Meaning: r.Meaning}
		in.Reversed = reversed
	}

	start := time.Now()
	text, err := s.prophet.Prophesy(ctx, key, in)
	latency := time.Since(start).Milliseconds()

	if err != nil {
		s.logger.Warn("prophecy request failed, falling back", "error", err)
		if drawRune {
			text = fallbackReading
		} else {
			text = fallbackAnswer
		}
	}

	st.SetProphecy(text)

	return Prophecy{
		Text:      text,
		Rune:      drawn,
		Model:     s.model,
		LatencyMS: latency,
	}, nil
}
