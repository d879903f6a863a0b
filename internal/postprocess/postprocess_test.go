package postprocess_test

import (
	"testing"

	"github.com/valpere/listran/internal/postprocess"
)

func TestClean(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{
			name: "clean text untouched",
			in:   "Une phrase traduite.",
			want: "Une phrase traduite.",
		},
		{
			name: "thinking block removed",
			in:   "<think>the user wants French</think>Bonjour le monde",
			want: "Bonjour le monde",
		},
		{
			name: "unclosed thinking removed to end",
			in:   "Résultat<thinking>let me reconsider",
			want: "Résultat",
		},
		{
			name: "instruction echo removed",
			in:   "Here is the translation: Hola mundo",
			want: "Hola mundo",
		},
		{
			name: "bare echo removed",
			in:   "Translation: Hallo Welt",
			want: "Hallo Welt",
		},
		{
			name: "quote wrapping removed",
			in:   `"Ciao mondo"`,
			want: "Ciao mondo",
		},
		{
			name: "guillemets removed",
			in:   "«Привіт, світе»",
			want: "Привіт, світе",
		},
		{
			name: "interior quotes kept",
			in:   `he said "hello" twice`,
			want: `he said "hello" twice`,
		},
		{
			name: "echo then quotes",
			in:   `Here's the translation: "Hej världen"`,
			want: "Hej världen",
		},
		{
			name: "whitespace trimmed",
			in:   "  padded  ",
			want: "padded",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := postprocess.Clean(tt.in); got != tt.want {
				t.Errorf("Clean(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}
