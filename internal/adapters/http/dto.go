package http

// RuneResponse is the JSON shape for one registry rune.
type RuneResponse struct {
	Name           string            `json:"name"`
	Symbol         string            `json:"symbol,omitempty"`
	Aett           string            `json:"aett,omitempty"`
	AettPosition   string            `json:"aett_position,omitempty"`
	Meaning        string            `json:"meaning"`
	Symbolism      map[string]string `json:"symbolism"`
	Potential      []string          `json:"potential"`
	PracticalUse   []string          `json:"practical_use"`
	AdditionalInfo string            `json:"additional_info,omitempty"`
	HasImage       bool              `json:"has_image"`
	ImageURL       string            `json:"image_url,omitempty"`
}

// FullRecordResponse carries the richer record fields merged into a rune
// detail view.
type FullRecordResponse struct {
	ShortDescription string   `json:"short_description"`
	LongDescription  string   `json:"long_description"`
	Interpretation   string   `json:"interpretation"`
	Keywords         []string `json:"keywords"`
	SourceURL        string   `json:"source_url,omitempty"`
}

type RuneDetailResponse struct {
	RuneResponse
	Record *FullRecordResponse `json:"record,omitempty"`
}

type DrawnRuneResponse struct {
	Name         string `json:"name"`
	Position     int    `json:"position"`
	PositionName string `json:"position_name,omitempty"`
	Reversed     bool   `json:"reversed"`
	Meaning      string `json:"meaning"`
	ImageURL     string `json:"image_url,omitempty"`
}

type SpreadResponse struct {
	Spread      string              `json:"spread"`
	Description string              `json:"description"`
	Runes       []DrawnRuneResponse `json:"runes"`
}

type TaskResponse struct {
	ShortTask      string            `json:"short_task"`
	TaskReflection string            `json:"task_reflection"`
	Prompts        map[string]string `json:"prompts,omitempty"`
}

type DailyResponse struct {
	Rune        DrawnRuneResponse `json:"rune"`
	Description string            `json:"description,omitempty"`
	Reflection  string            `json:"reflection,omitempty"`
	Task        *TaskResponse     `json:"task,omitempty"`
}

type CredentialRequest struct {
	APIKey string `json:"api_key"`
}

type ProphecyRequest struct {
	Question string `json:"question"`
	DrawRune bool   `json:"draw_rune"`
}

type ProphecyResponse struct {
	Prophecy string             `json:"prophecy"`
	Rune     *DrawnRuneResponse `json:"rune,omitempty"`
	Meta     MetaResp           `json:"meta"`
}

type MetaResp struct {
	Model     string `json:"model,omitempty"`
	RequestID string `json:"request_id"`
	LatencyMS int64  `json:"latency_ms,omitempty"`
}

type ErrorResponse struct {
	Error string `json:"error"`
}
