package util

import "testing"

func TestSlugify(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		// Basic normalization
		{"lowercase", "GENERAL", "general"},
		{"spaces to hyphens", "show and tell", "show-and-tell"},
		{"punctuation collapsed", "Hello, World!", "hello-world"},
		{"already a slug", "already-slug", "already-slug"},

		// Whitespace handling
		{"trim whitespace", "  Already-slug  ", "already-slug"},
		{"multiple spaces", "off   topic", "off-topic"},
		{"tabs and spaces", "off\t topic", "off-topic"},

		// Special characters
		{"symbol runs", "Go & Rust", "go-rust"},
		{"emoji removal", "🔥 Hot Takes", "hot-takes"},
		{"apostrophe", "editor's picks", "editor-s-picks"},

		// Hyphen handling
		{"repeated hyphens", "help--wanted", "help-wanted"},
		{"leading hyphens", "--general", "general"},
		{"trailing hyphens", "general--", "general"},

		// Edge cases
		{"empty string", "", ""},
		{"only spaces", "   ", ""},
		{"only special chars", "!@#$%", ""},
		{"numbers allowed", "top10", "top10"},
		{"mixed case with numbers", "Top 10 Threads", "top-10-threads"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := Slugify(tt.input)
			if result != tt.expected {
				t.Errorf("Slugify(%q) = %q, want %q", tt.input, result, tt.expected)
			}
		})
	}
}

func TestSlugifyDeterministic(t *testing.T) {
	// Slugifying a slug must be a fixpoint.
	inputs := []string{"Hello, World!", "Top 10 Threads", "general"}
	for _, in := range inputs {
		once := Slugify(in)
		if twice := Slugify(once); twice != once {
			t.Errorf("Slugify not idempotent: %q → %q → %q", in, once, twice)
		}
	}
}
