// Package openai voices the seeress through an OpenAI-compatible
// chat-completion endpoint.
package openai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"

	"github.com/randomtoy/volva-go/internal/domain"
	"github.com/randomtoy/volva-go/internal/ports"
)

// Generation parameters are fixed by the reading contract: a high
// temperature for mythic language, a bounded answer length.
const (
	temperature = 0.85
	maxTokens   = 350
)

// Client implements ports.Prophet. The API key is supplied per call because
// it lives in session state, not in server configuration.
type Client struct {
	httpClient *http.Client
	baseURL    string
	model      string
	logger     *slog.Logger
}

func NewClient(httpClient *http.Client, baseURL, model string, logger *slog.Logger) *Client {
	return &Client{
		httpClient: httpClient,
		baseURL:    strings.TrimRight(baseURL, "/"),
		model:      model,
		logger:     logger,
	}
}

// chatRequest / chatResponse mirror the OpenAI-compatible API shapes.
type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	Temperature float64       `json:"temperature"`
	MaxTokens   int           `json:"max_tokens"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

// Prophesy sends one completion request and returns the generated text
// unmodified.
func (c *Client) Prophesy(ctx context.Context, apiKey string, in ports.ProphecyInput) (string, error) {
	reqBody := chatRequest{
		Model: c.model,
		Messages: []chatMessage{
			{Role: "system", Content: buildSystemPrompt(in)},
			{Role: "user", Content: buildUserPrompt(in)},
		},
		Temperature: temperature,
		MaxTokens:   maxTokens,
	}

	body, err := json.Marshal(reqBody)
	if err != nil {
		return "", fmt.Errorf("marshal request: %w", err)
	}

	url := c.baseURL + "/chat/completions"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: http call: %w", domain.ErrUpstreamLLM, err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("%w: read response: %w", domain.ErrUpstreamLLM, err)
	}

	if resp.StatusCode != http.StatusOK {
		c.logger.WarnContext(ctx, "chat completion failed", "status", resp.StatusCode)
		return "", fmt.Errorf("%w: upstream status %d", domain.ErrUpstreamLLM, resp.StatusCode)
	}

	var chatResp chatResponse
	if err := json.Unmarshal(respBody, &chatResp); err != nil {
		return "", fmt.Errorf("%w: decode response: %w", domain.ErrUpstreamLLM, err)
	}
	if len(chatResp.Choices) == 0 {
		return "", fmt.Errorf("%w: no choices in response", domain.ErrUpstreamLLM)
	}

	return strings.TrimSpace(chatResp.Choices[0].Message.Content), nil
}

func buildSystemPrompt(in ports.ProphecyInput) string {
	if in.Rune != nil {
		return fmt.Sprintf("You are Völva, a Norse seeress with deep knowledge of the rune %s and the old magic.", in.Rune.Name)
	}
	return "You are Völva, a Norse seeress who keeps the mystic wisdom of the runes and the old magic."
}

func buildUserPrompt(in ports.ProphecyInput) string {
	if in.Rune == nil {
		return buildAnswerPrompt(in.Question)
	}
	return buildReadingPrompt(in)
}

func buildAnswerPrompt(question string) string {
	var b strings.Builder
	b.WriteString("Speak as Völva, a Norse seeress and mystic of the ancient Scandinavian world.\n")
	fmt.Fprintf(&b, "Answer the seeker's question: '%s'\n\n", question)
	b.WriteString(`Your answer should:
- Be mystical, full of poetic metaphors drawn from Norse mythology
- Reference the forces of nature, Yggdrasil, the Norns and other Norse concepts
- Be deep and reflective, yet concrete
- Carry practical wisdom hidden in mythic words
- Close with a short piece of advice or a suggested ritual

Format:
- 3-4 short paragraphs
- First paragraph: the context of the question and what it means for the seeker
- Middle paragraphs: a deeper reading with references to Norse mythology
- Last paragraph: advice or a ritual suggestion (e.g. "light a candle at midnight and whisper your wish to the flame")

Keep the whole answer under 250 words.`)
	return b.String()
}

func buildReadingPrompt(in ports.ProphecyInput) string {
	var b strings.Builder
	fmt.Fprintf(&b, "As Völva, the Norse seeress of the runes, interpret the rune %s in the context of the question: '%s'.\n", in.Rune.Name, in.Question)
	if in.Rune.Meaning != "" {
		fmt.Fprintf(&b, "The traditional meaning of this rune: %s\n", in.Rune.Meaning)
	}

	if in.Reversed {
		fmt.Fprintf(&b, `
The rune lies REVERSED, which significantly changes its energy and message. In this position the rune %s may point to:
- The opposite of its usual meaning
- Blocked or suppressed energy
- Hidden aspects of its meaning
- A warning against misusing its energy
`, in.Rune.Name)
	}

	reversedClause := ""
	if in.Reversed {
		reversedClause = " in its reversed position"
	}

	b.WriteString("\nUse mystic language rich in Norse metaphor, nature symbols and references to Yggdrasil.\n\n")
	b.WriteString("The answer should contain:\n")
	fmt.Fprintf(&b, "1. The core meaning of the rune %s%s\n", in.Rune.Name, reversedClause)
	b.WriteString(`2. How the rune's energy connects to the seeker's question
3. What wisdom or warning the rune carries for the seeker
4. A subtle piece of advice or a small ritual that helps the seeker work with the rune's energy

Format: 3-4 short, poetic paragraphs, at most 500 words in total.`)
	return b.String()
}
