package domain

import (
	"errors"
	"fmt"
)

var (
	ErrInsufficientRunes = errors.New("not enough runes loaded for the requested spread")
	ErrRuneNotFound      = errors.New("rune not found")
	ErrUnknownSpread     = errors.New("unknown spread type")
	ErrEmptyQuestion     = errors.New("question must not be empty")
	ErrMissingCredential = errors.New("no API credential set for this session")
	ErrUpstreamLLM       = errors.New("upstream LLM failure")
	ErrContentNotFound   = errors.New("content file not found")
	ErrContentParse      = errors.New("content file is not valid JSON")
	ErrNoImage           = errors.New("rune image not available")
)

// MalformedContentError reports the first detail-map entry that is missing a
// required key. The detail map is mandatory, so this fails the whole load.
type MalformedContentError struct {
	Rune string
	Key  string
}

func (e *MalformedContentError) Error() string {
	return fmt.Sprintf("malformed content: rune %q is missing required key %q", e.Rune, e.Key)
}
