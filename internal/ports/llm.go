package ports

import "context"

// ProphecyInput carries everything the seeress needs for one reading.
type ProphecyInput struct {
	Question string
	Rune     *RuneInput
	Reversed bool
}

// RuneInput is the rune context embedded in the prompt.
type RuneInput struct {
	Name    string
	Meaning string
}

// Prophet generates a prophecy via an external chat-completion service.
// The credential travels with each call because it is session-scoped, not
// server configuration.
type Prophet interface {
	Prophesy(ctx context.Context, apiKey string, in ProphecyInput) (string, error)
}
