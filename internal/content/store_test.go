package content_test

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/randomtoy/volva-go/internal/content"
	"github.com/randomtoy/volva-go/internal/domain"
)

func writeFile(t *testing.T, dir, name, data string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return path
}

func detailEntry() map[string]any {
	return map[string]any{
		"meaning":       "Wealth and new beginnings.",
		"symbolism":     map[string]string{"cattle": "mobile wealth"},
		"potential":     []string{"prosperity"},
		"practical_use": []string{"carry when starting a venture"},
		"symbol":        "ᚠ",
		"aett":          "Freyr",
		"position":      "1",
	}
}

func detailJSON(t *testing.T, names ...string) string {
	t.Helper()
	m := make(map[string]any, len(names))
	for _, n := range names {
		m[n] = detailEntry()
	}
	b, err := json.Marshal(m)
	if err != nil {
		t.Fatalf("marshal detail map: %v", err)
	}
	return string(b)
}

func fullRecord(name string) map[string]any {
	return map[string]any{
		"name":              name,
		"short_description": "Short.",
		"long_description":  "Long.",
		"meaning":           "Meaning.",
		"interpretation":    "Interpretation.",
		"keywords":          []string{"kw1", "kw2"},
		"image_url":         "https://example.com/" + strings.ToLower(name) + ".jpg",
		"source_url":        "https://example.com/" + strings.ToLower(name),
		"aett":              "Freyr",
		"position":          "1",
	}
}

func fullJSON(t *testing.T, records []map[string]any) string {
	t.Helper()
	b, err := json.Marshal(records)
	if err != nil {
		t.Fatalf("marshal full records: %v", err)
	}
	return string(b)
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestLoad_RegistryCanonicalOrder(t *testing.T) {
	dir := t.TempDir()
	// Deliberately scrambled relative to the Futhark sequence.
	detail := writeFile(t, dir, "front.json", detailJSON(t, "Othala", "Fehu", "Kenaz", "Uruz"))
	full := writeFile(t, dir, "big.json", fullJSON(t, nil))

	store, err := content.Load(detail, full, "", dir, discardLogger())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := []string{"Fehu", "Uruz", "Kenaz", "Othala"}
	runes := store.Runes()
	if len(runes) != len(want) {
		t.Fatalf("expected %d runes, got %d", len(want), len(runes))
	}
	for i, name := range want {
		if runes[i].Name != name {
			t.Errorf("slot %d: expected %q, got %q", i, name, runes[i].Name)
		}
	}
}

func TestLoad_MissingDetailKey(t *testing.T) {
	dir := t.TempDir()
	entry := detailEntry()
	delete(entry, "practical_use")
	b, _ := json.Marshal(map[string]any{"Fehu": entry})
	detail := writeFile(t, dir, "front.json", string(b))
	full := writeFile(t, dir, "big.json", "[]")

	_, err := content.Load(detail, full, "", dir, discardLogger())
	var malformed *domain.MalformedContentError
	if !errors.As(err, &malformed) {
		t.Fatalf("expected MalformedContentError, got %v", err)
	}
	if malformed.Rune != "Fehu" || malformed.Key != "practical_use" {
		t.Errorf("expected Fehu/practical_use, got %s/%s", malformed.Rune, malformed.Key)
	}
}

func TestLoad_FileMissingVsParseError(t *testing.T) {
	dir := t.TempDir()
	full := writeFile(t, dir, "big.json", "[]")

	_, err := content.Load(filepath.Join(dir, "absent.json"), full, "", dir, discardLogger())
	if !errors.Is(err, domain.ErrContentNotFound) {
		t.Errorf("expected ErrContentNotFound, got %v", err)
	}

	bad := writeFile(t, dir, "bad.json", "{not json")
	_, err = content.Load(bad, full, "", dir, discardLogger())
	if !errors.Is(err, domain.ErrContentParse) {
		t.Errorf("expected ErrContentParse, got %v", err)
	}

	detail := writeFile(t, dir, "front.json", detailJSON(t, "Fehu"))
	_, err = content.Load(detail, filepath.Join(dir, "absent.json"), "", dir, discardLogger())
	if !errors.Is(err, domain.ErrContentNotFound) {
		t.Errorf("full list missing: expected ErrContentNotFound, got %v", err)
	}
}

func TestLoad_FullRecordDropped(t *testing.T) {
	dir := t.TempDir()
	detail := writeFile(t, dir, "front.json", detailJSON(t, "Fehu"))

	records := make([]map[string]any, 0, len(domain.FutharkOrder))
	for _, name := range domain.FutharkOrder {
		records = append(records, fullRecord(name))
	}
	// Entry #7 loses its interpretation.
	dropped := domain.FutharkOrder[6]
	delete(records[6], "interpretation")
	full := writeFile(t, dir, "big.json", fullJSON(t, records))

	var logBuf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&logBuf, nil))

	store, err := content.Load(detail, full, "", dir, logger)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if got := len(store.FullRecords()); got != 23 {
		t.Fatalf("expected 23 records, got %d", got)
	}
	if _, ok := store.Full(dropped); ok {
		t.Errorf("record %q should have been dropped", dropped)
	}
	if !strings.Contains(logBuf.String(), dropped) {
		t.Errorf("expected log output to name dropped rune %q", dropped)
	}
	if !strings.Contains(logBuf.String(), "interpretation") {
		t.Errorf("expected log output to name the missing field")
	}
}

func TestLoad_FullRecordExtraFields(t *testing.T) {
	dir := t.TempDir()
	detail := writeFile(t, dir, "front.json", detailJSON(t, "Fehu"))

	rec := fullRecord("Fehu")
	rec["element"] = "fire"
	rec["god"] = "Freyr"
	full := writeFile(t, dir, "big.json", fullJSON(t, []map[string]any{rec}))

	store, err := content.Load(detail, full, "", dir, discardLogger())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	r, ok := store.Full("Fehu")
	if !ok {
		t.Fatal("expected full record for Fehu")
	}
	if r.Name != "Fehu" {
		t.Errorf("name changed during load: %q", r.Name)
	}
	if r.Extra["element"] != "fire" || r.Extra["god"] != "Freyr" {
		t.Errorf("extra fields not captured: %#v", r.Extra)
	}
	if _, typed := r.Extra["interpretation"]; typed {
		t.Error("typed field leaked into Extra")
	}
}

func TestLoad_ImageResolution(t *testing.T) {
	dir := t.TempDir()
	imgRoot := filepath.Join(dir, "img")
	if err := os.MkdirAll(imgRoot, 0o755); err != nil {
		t.Fatal(err)
	}
	writeFile(t, imgRoot, "fehu.jpg", "not-really-a-jpeg")

	detail := writeFile(t, dir, "front.json", detailJSON(t, "Fehu", "Uruz"))
	full := writeFile(t, dir, "big.json", "[]")

	store, err := content.Load(detail, full, "", imgRoot, discardLogger())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	fehu, _ := store.Rune("Fehu")
	if !fehu.HasImage {
		t.Error("Fehu should have an image")
	}
	if want := filepath.Join(imgRoot, "fehu.jpg"); fehu.Image != want {
		t.Errorf("expected image path %q, got %q", want, fehu.Image)
	}

	uruz, _ := store.Rune("Uruz")
	if uruz.HasImage {
		t.Error("Uruz has no asset, HasImage should be false")
	}
}

func TestLoad_DailyEntries(t *testing.T) {
	dir := t.TempDir()
	detail := writeFile(t, dir, "front.json", detailJSON(t, "Fehu"))
	full := writeFile(t, dir, "big.json", "[]")

	daily := writeFile(t, dir, "daily.json", `{
		"Fehu": {
			"daily_description": ["A day of", "new wealth."],
			"reflection": "What do you value?",
			"task": {
				"short_task": "Count your gains.",
				"task_reflection": "What grew today?",
				"morning": "Name one resource you hold.",
				"evening": "Name one you shared."
			}
		}
	}`)

	store, err := content.Load(detail, full, daily, dir, discardLogger())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	entry, ok := store.Daily("Fehu")
	if !ok {
		t.Fatal("expected daily entry for Fehu")
	}
	if len(entry.Description) != 2 {
		t.Errorf("expected 2 description segments, got %d", len(entry.Description))
	}
	if entry.Task.ShortTask != "Count your gains." {
		t.Errorf("unexpected short task: %q", entry.Task.ShortTask)
	}
	if entry.Task.Prompts["morning"] == "" || entry.Task.Prompts["evening"] == "" {
		t.Errorf("extra prompts not captured: %#v", entry.Task.Prompts)
	}
	if _, fixed := entry.Task.Prompts["short_task"]; fixed {
		t.Error("fixed task field leaked into prompts")
	}
}

func TestLoad_DailyMissingIsNonFatal(t *testing.T) {
	dir := t.TempDir()
	detail := writeFile(t, dir, "front.json", detailJSON(t, "Fehu"))
	full := writeFile(t, dir, "big.json", "[]")

	store, err := content.Load(detail, full, filepath.Join(dir, "absent.json"), dir, discardLogger())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, ok := store.Daily("Fehu"); ok {
		t.Error("expected no daily entries")
	}
}

func TestLoad_SkipsUnknownDetailNamesGracefully(t *testing.T) {
	dir := t.TempDir()
	// "Wyrd" is a blank rune some modern sets add; it is not canonical.
	m := map[string]any{"Fehu": detailEntry(), "Wyrd": detailEntry()}
	b, _ := json.Marshal(m)
	detail := writeFile(t, dir, "front.json", string(b))
	full := writeFile(t, dir, "big.json", "[]")

	store, err := content.Load(detail, full, "", dir, discardLogger())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(store.Runes()) != 1 {
		t.Fatalf("expected only canonical runes, got %d", len(store.Runes()))
	}
	if _, ok := store.Rune("Wyrd"); ok {
		t.Error("non-canonical rune should not enter the registry")
	}
}

func TestImagePath(t *testing.T) {
	got := content.ImagePath("/data/img", "Fehu")
	if want := filepath.Join("/data/img", "fehu.jpg"); got != want {
		t.Errorf("expected %q, got %q", want, got)
	}

	// Only the first token of a multi-word name is used.
	got = content.ImagePath("/data/img", "Perthro (Peorth)")
	if want := filepath.Join("/data/img", "perthro.jpg"); got != want {
		t.Errorf("expected %q, got %q", want, got)
	}
}
