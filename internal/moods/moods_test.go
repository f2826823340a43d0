package moods

import (
	"errors"
	"math/rand"
	"os"
	"path/filepath"
	"testing"
)

// fixedSource always picks the same index so keyword draws are predictable.
type fixedSource struct{ n int }

func (f fixedSource) Intn(n int) int {
	if f.n >= n {
		return n - 1
	}
	return f.n
}

func TestSelector_Keyword(t *testing.T) {
	sel := NewSelector(fixedSource{n: 0})

	tests := []struct {
		name    string
		mood    string
		want    string
		wantErr bool
	}{
		{name: "happy", mood: "happy", want: "happy hits"},
		{name: "focus", mood: "focus", want: "lo-fi beats"},
		{name: "rock", mood: "rock", want: "rock classics"},
		{name: "unknown mood", mood: "confused", wantErr: true},
		{name: "empty mood", mood: "", wantErr: true},
		{name: "case sensitive", mood: "Happy", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := sel.Keyword(tt.mood)
			if tt.wantErr {
				if !errors.Is(err, ErrUnknownMood) {
					t.Errorf("Keyword(%q) error = %v, want ErrUnknownMood", tt.mood, err)
				}
				return
			}
			if err != nil {
				t.Errorf("Keyword(%q) unexpected error = %v", tt.mood, err)
				return
			}
			if got != tt.want {
				t.Errorf("Keyword(%q) = %q, want %q", tt.mood, got, tt.want)
			}
		})
	}
}

func TestSelector_KeywordStaysInVocabulary(t *testing.T) {
	rnd := rand.New(rand.NewSource(42))
	sel := NewSelector(rnd)

	for _, mood := range sel.Moods() {
		valid := make(map[string]bool)
		for _, kw := range defaultKeywords[mood] {
			valid[kw] = true
		}
		for i := 0; i < 50; i++ {
			kw, err := sel.Keyword(mood)
			if err != nil {
				t.Fatalf("Keyword(%q): %v", mood, err)
			}
			if !valid[kw] {
				t.Fatalf("Keyword(%q) = %q, not in the mood's list", mood, kw)
			}
		}
	}
}

func TestSelector_Moods(t *testing.T) {
	sel := NewSelector(fixedSource{})

	got := sel.Moods()
	if len(got) != len(defaultKeywords) {
		t.Fatalf("Moods() length = %d, want %d", len(got), len(defaultKeywords))
	}
	for i := 1; i < len(got); i++ {
		if got[i-1] >= got[i] {
			t.Fatalf("Moods() not sorted: %q before %q", got[i-1], got[i])
		}
	}
}

func TestNewSelectorFromFile(t *testing.T) {
	dir := t.TempDir()

	writeFile := func(name, content string) string {
		t.Helper()
		path := filepath.Join(dir, name)
		if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
			t.Fatalf("write %s: %v", name, err)
		}
		return path
	}

	t.Run("replaces built-in table", func(t *testing.T) {
		path := writeFile("moods.json", `{"zen": ["meditation", "singing bowls"]}`)

		sel, err := NewSelectorFromFile(path, fixedSource{n: 1})
		if err != nil {
			t.Fatalf("NewSelectorFromFile: %v", err)
		}

		kw, err := sel.Keyword("zen")
		if err != nil {
			t.Fatalf("Keyword(zen): %v", err)
		}
		if kw != "singing bowls" {
			t.Errorf("Keyword(zen) = %q, want %q", kw, "singing bowls")
		}

		// Built-in moods are gone once a file is loaded.
		if _, err := sel.Keyword("happy"); !errors.Is(err, ErrUnknownMood) {
			t.Errorf("Keyword(happy) error = %v, want ErrUnknownMood", err)
		}
	})

	t.Run("missing file", func(t *testing.T) {
		if _, err := NewSelectorFromFile(filepath.Join(dir, "absent.json"), fixedSource{}); err == nil {
			t.Error("expected error for missing file")
		}
	})

	t.Run("malformed JSON", func(t *testing.T) {
		path := writeFile("bad.json", `{"zen": [`)
		if _, err := NewSelectorFromFile(path, fixedSource{}); err == nil {
			t.Error("expected error for malformed JSON")
		}
	})

	t.Run("empty table", func(t *testing.T) {
		path := writeFile("empty.json", `{}`)
		if _, err := NewSelectorFromFile(path, fixedSource{}); err == nil {
			t.Error("expected error for empty table")
		}
	})

	t.Run("mood with no keywords", func(t *testing.T) {
		path := writeFile("hollow.json", `{"zen": []}`)
		if _, err := NewSelectorFromFile(path, fixedSource{}); err == nil {
			t.Error("expected error for keywordless mood")
		}
	})
}
