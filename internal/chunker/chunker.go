// Package chunker splits over-long segment content for translation
// backends with per-request size limits, and extracts the trailing-words
// context window passed to LLM backends for continuity across the items
// of a list group.
package chunker

import (
	"strings"
	"unicode"
)

// DefaultContextWords is the number of words ContextTail keeps when the
// caller does not specify a count.
const DefaultContextWords = 25

// Split cuts text into pieces of at most maxChars runes each. Segment
// content is line-oriented, so splits are attempted at sentence-ending
// punctuation first, then at word boundaries, then as a hard cut. Text
// that already fits (or maxChars ≤ 0, meaning unlimited) comes back as a
// single piece.
func Split(text string, maxChars int) []string {
	if maxChars <= 0 || len([]rune(text)) <= maxChars {
		return []string{text}
	}

	var pieces []string
	remaining := text
	for len([]rune(remaining)) > maxChars {
		cut := findCut(remaining, maxChars)
		piece := strings.TrimSpace(remaining[:cut])
		if piece != "" {
			pieces = append(pieces, piece)
		}
		remaining = strings.TrimSpace(remaining[cut:])
	}
	if remaining != "" {
		pieces = append(pieces, remaining)
	}
	return pieces
}

// findCut returns the byte offset at which to cut so that the first
// piece holds at most maxChars runes, preferring a sentence end, then
// any whitespace, then a hard cut.
func findCut(text string, maxChars int) int {
	runes := []rune(text)
	if len(runes) <= maxChars {
		return len(text)
	}
	candidate := runes[:maxChars]

	for i := len(candidate) - 1; i > 0; i-- {
		r := candidate[i]
		if (r == '.' || r == '!' || r == '?') && i+1 < len(candidate) && unicode.IsSpace(candidate[i+1]) {
			return len(string(candidate[:i+1]))
		}
	}
	for i := len(candidate) - 1; i > 0; i-- {
		if unicode.IsSpace(candidate[i]) {
			return len(string(candidate[:i]))
		}
	}
	return len(string(candidate))
}

// ContextTail returns the last wordCount words of text joined by single
// spaces, for use as the Request.Context of the next item in a group.
// Shorter texts come back whole; wordCount ≤ 0 uses DefaultContextWords.
func ContextTail(text string, wordCount int) string {
	if wordCount <= 0 {
		wordCount = DefaultContextWords
	}
	words := strings.Fields(text)
	if len(words) <= wordCount {
		return strings.TrimSpace(text)
	}
	return strings.Join(words[len(words)-wordCount:], " ")
}
