// Package moods maps mood identifiers to catalog search keywords.
package moods

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"sort"
)

// ErrUnknownMood indicates the mood is empty or not in the supported set.
var ErrUnknownMood = errors.New("unknown mood")

// Source yields uniform random ints in [0, n). *math/rand.Rand satisfies it.
type Source interface {
	Intn(n int) int
}

// defaultKeywords is the built-in mood vocabulary. Extend via a keywords
// file, not by editing this table.
var defaultKeywords = map[string][]string{
	"happy":   {"happy hits", "feel good", "happy pop", "good vibes"},
	"sad":     {"sad songs", "heartbreak", "piano sad", "acoustic sad", "melancholia"},
	"party":   {"party hits", "dance floor", "club hits", "house music"},
	"focus":   {"lo-fi beats", "study music", "classical focus", "ambient"},
	"chill":   {"chill hits", "relax", "acoustic chill", "sunday morning"},
	"workout": {"workout hits", "gym motivation", "cardio", "power workout"},
	"romance": {"romantic songs", "love hits", "date night", "r&b love"},
	"sleep":   {"sleep music", "deep sleep", "calm piano", "delta waves"},
	"gaming":  {"gaming music", "epic soundtrack", "synthwave", "cyberpunk music"},
	"travel":  {"road trip", "driving hits", "car songs", "travel vibes"},
	"retro":   {"80s hits", "90s hits", "oldies but goldies", "flashback"},
	"summer":  {"summer hits", "beach vibes", "tropical house", "sunny songs"},
	"rock":    {"rock classics", "hard rock", "alternative rock", "indie rock", "rock anthems"},
}

// Selector validates moods and picks search keywords for them.
type Selector struct {
	keywords map[string][]string
	src      Source
}

// NewSelector returns a Selector over the built-in mood table.
func NewSelector(src Source) *Selector {
	return &Selector{keywords: defaultKeywords, src: src}
}

// NewSelectorFromFile loads a JSON object of mood -> keyword list from path
// and returns a Selector over it, replacing the built-in table.
func NewSelectorFromFile(path string, src Source) (*Selector, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read keywords file: %w", err)
	}

	var keywords map[string][]string
	if err := json.Unmarshal(raw, &keywords); err != nil {
		return nil, fmt.Errorf("parse keywords file: %w", err)
	}
	if len(keywords) == 0 {
		return nil, fmt.Errorf("keywords file %s defines no moods", path)
	}
	for mood, list := range keywords {
		if len(list) == 0 {
			return nil, fmt.Errorf("mood %q has no keywords", mood)
		}
	}

	return &Selector{keywords: keywords, src: src}, nil
}

// Keyword validates the mood and returns one of its keywords uniformly at
// random. The keyword indirection keeps repeated requests for the same mood
// from always hitting the same catalog search.
func (s *Selector) Keyword(mood string) (string, error) {
	list, ok := s.keywords[mood]
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownMood, mood)
	}
	return list[s.src.Intn(len(list))], nil
}

// Moods returns the supported mood identifiers in sorted order.
func (s *Selector) Moods() []string {
	out := make([]string, 0, len(s.keywords))
	for mood := range s.keywords {
		out = append(out, mood)
	}
	sort.Strings(out)
	return out
}
