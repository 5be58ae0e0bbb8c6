package i18n

import (
	"strings"
	"testing"
)

func TestLoadEmbedded(t *testing.T) {
	b, err := LoadEmbedded()
	if err != nil {
		t.Fatalf("LoadEmbedded: %v", err)
	}
	locales := b.Locales()
	if len(locales) < 2 {
		t.Fatalf("expected at least en and fr, got %v", locales)
	}
}

func TestTranslator(t *testing.T) {
	b, err := LoadEmbedded()
	if err != nil {
		t.Fatalf("LoadEmbedded: %v", err)
	}

	tests := []struct {
		name         string
		locale       string
		wantResolved string
		key          string
		vars         map[string]any
		wantContains string
	}{
		{
			name:         "base locale with interpolation",
			locale:       "en",
			wantResolved: "en",
			key:          "dak-version.summary",
			vars:         map[string]any{"repository": "who/smart-immunizations", "version": "1.0.0"},
			wantContains: "who/smart-immunizations",
		},
		{
			name:         "regioned tag resolves to base language",
			locale:       "fr-CH",
			wantResolved: "fr",
			key:          "business-processes.none",
			wantContains: "Aucun",
		},
		{
			name:         "unknown locale falls back to base",
			locale:       "zz",
			wantResolved: "en",
			key:          "business-processes.none",
			wantContains: "No business process",
		},
		{
			name:         "empty locale falls back to base",
			locale:       "",
			wantResolved: "en",
			key:          "decision-tables.none",
			wantContains: "No decision",
		},
		{
			name:         "unknown key falls back to the key itself",
			locale:       "en",
			wantResolved: "en",
			key:          "does.not.exist",
			wantContains: "does.not.exist",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tr, resolved := b.Translator(tt.locale)
			if resolved != tt.wantResolved {
				t.Fatalf("resolved locale = %q, want %q", resolved, tt.wantResolved)
			}
			got := tr(tt.key, tt.vars)
			if !strings.Contains(got, tt.wantContains) {
				t.Fatalf("t(%q) = %q, want substring %q", tt.key, got, tt.wantContains)
			}
		})
	}
}

func TestInterpolate(t *testing.T) {
	got := Interpolate("Found {count} file(s) in {dir}.", map[string]any{"count": 3, "dir": "input"})
	if got != "Found 3 file(s) in input." {
		t.Fatalf("Interpolate = %q", got)
	}

	// Placeholders without vars stay intact.
	got = Interpolate("Hello {name}", nil)
	if got != "Hello {name}" {
		t.Fatalf("Interpolate = %q", got)
	}
}
