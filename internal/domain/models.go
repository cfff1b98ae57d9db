package domain

import "encoding/json"

// Rune is one of the 24 Elder Futhark runes together with the display
// content loaded from the detail map.
type Rune struct {
	Name           string            `json:"name"`
	Image          string            `json:"image"`
	HasImage       bool              `json:"has_image"`
	Meaning        string            `json:"meaning"`
	Symbolism      map[string]string `json:"symbolism"`
	Potential      []string          `json:"potential"`
	PracticalUse   []string          `json:"practical_use"`
	AdditionalInfo string            `json:"additional_info,omitempty"`
	Symbol         string            `json:"symbol,omitempty"`
	Aett           string            `json:"aett,omitempty"`
	AettPosition   string            `json:"aett_position,omitempty"`
}

// FullRune is the richer record backing the daily and question
// interpretation flows.
type FullRune struct {
	Name             string   `json:"name"`
	ShortDescription string   `json:"short_description"`
	LongDescription  string   `json:"long_description"`
	Meaning          string   `json:"meaning"`
	Interpretation   string   `json:"interpretation"`
	Keywords         []string `json:"keywords"`
	ImageURL         string   `json:"image_url"`
	SourceURL        string   `json:"source_url"`
	Aett             string   `json:"aett"`
	Position         string   `json:"position"`

	// Extra holds unrecognized fields from the source record. They are kept
	// apart from the typed fields and never merged into them.
	Extra map[string]any `json:"-"`
}

// DailyTask is the small practice attached to a daily rune. Beyond the two
// fixed fields the content files may carry arbitrary string-valued prompts.
type DailyTask struct {
	ShortTask      string            `json:"short_task"`
	TaskReflection string            `json:"task_reflection"`
	Prompts        map[string]string `json:"-"`
}

func (t *DailyTask) UnmarshalJSON(b []byte) error {
	var raw map[string]string
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}
	t.ShortTask = raw["short_task"]
	t.TaskReflection = raw["task_reflection"]
	delete(raw, "short_task")
	delete(raw, "task_reflection")
	if len(raw) > 0 {
		t.Prompts = raw
	}
	return nil
}

// DailyEntry supplies the extra text shown with the rune of the day.
// Description segments are joined with spaces at render time.
type DailyEntry struct {
	Description []string  `json:"daily_description"`
	Reflection  string    `json:"reflection"`
	Task        DailyTask `json:"task"`
}

// DrawnRune is a rune that has been drawn into a spread. Position is the
// 1-based slot within the draw, not the rune's place in its aett.
type DrawnRune struct {
	Rune
	Position int  `json:"position"`
	Reversed bool `json:"reversed"`
}

// Spread is the result of one draw action.
type Spread struct {
	Type  SpreadType
	Runes []DrawnRune
}
