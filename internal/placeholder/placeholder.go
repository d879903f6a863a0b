// Package placeholder protects non-translatable spans inside segment
// content (inline code, HTML/XML tags, URLs) by swapping them for
// numbered markers [PH0], [PH1], … before the text goes to a translation
// backend, and swapping them back afterwards.
package placeholder

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

var (
	// inline code spans: `...`
	reInlineCode = regexp.MustCompile("`[^`]+`")

	// HTML/XML tags: opening, closing, and self-closing
	reHTMLTag = regexp.MustCompile(`<[^>]+>`)

	// bare URLs; list items in extracted documents frequently carry them
	reURL = regexp.MustCompile(`https?://[^\s<>"')\]]+`)

	// marker reference in translated text
	reMarker = regexp.MustCompile(`\[PH(\d+)\]`)
)

// Mask replaces protected spans with numbered markers in the order they
// appear and returns the modified text plus the captured originals for
// Unmask. Inline code is captured first so code containing a URL or tag
// is taken whole.
func Mask(text string) (string, []string) {
	var captured []string

	replace := func(match string) string {
		id := fmt.Sprintf("[PH%d]", len(captured))
		captured = append(captured, match)
		return id
	}

	text = reInlineCode.ReplaceAllStringFunc(text, replace)
	text = reHTMLTag.ReplaceAllStringFunc(text, replace)
	text = reURL.ReplaceAllStringFunc(text, replace)

	return text, captured
}

// Unmask substitutes [PHn] markers back with the spans captured by Mask.
// Unknown indices leave the marker untouched.
func Unmask(text string, captured []string) string {
	return reMarker.ReplaceAllStringFunc(text, func(match string) string {
		sub := reMarker.FindStringSubmatch(match)
		if len(sub) < 2 {
			return match
		}
		idx, err := strconv.Atoi(sub[1])
		if err != nil || idx < 0 || idx >= len(captured) {
			return match
		}
		return captured[idx]
	})
}

// Missing returns the indices of markers created by Mask that no longer
// appear in the translated text, so the pipeline can warn about spans
// the backend dropped.
func Missing(text string, captured []string) []int {
	var missing []int
	for i := range captured {
		if !strings.Contains(text, fmt.Sprintf("[PH%d]", i)) {
			missing = append(missing, i)
		}
	}
	return missing
}

// InstructionHint is appended to LLM prompts so the model leaves markers
// intact.
func InstructionHint() string {
	return "Preserve all [PHn] markers exactly as they appear — do not translate, move, or remove them."
}
