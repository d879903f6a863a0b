// Package list detects list items (bulleted, numbered, lettered,
// roman-numeral) in lines of extracted document text and rebuilds them
// after translation, so that downstream output preserves list structure
// instead of collapsing items into plain paragraphs.
package list

import (
	"regexp"
	"strings"
	"unicode"
)

// Kind classifies a detected line. The set is closed; both Detect and
// Reconstruct switch exhaustively over it.
type Kind int

const (
	None Kind = iota
	Bullet
	Numbered
	Lettered
	Roman
)

func (k Kind) String() string {
	switch k {
	case Bullet:
		return "bullet"
	case Numbered:
		return "numbered"
	case Lettered:
		return "lettered"
	case Roman:
		return "roman"
	default:
		return "none"
	}
}

// Item describes one detected (or to-be-rebuilt) list line. Items are
// value data; nothing mutates them after creation.
type Item struct {
	Kind    Kind
	Marker  string // original marker as matched, e.g. "•", "1.", "a)"
	Content string // text with the marker stripped, trimmed
	Level   int    // nesting depth derived from x-coordinate
	Index   int    // ordinal: literal number, 1-based letter, or roman value
	// IsContinuation marks wrapped text belonging to the previous item.
	// Detect always leaves it false; the grouping caller sets it.
	IsContinuation bool
}

const (
	// UnitsPerLevel is the horizontal distance, in page-space units,
	// that corresponds to one nesting level. Detection compatibility
	// depends on this exact value.
	UnitsPerLevel = 40

	// fallbackWindow is how many runes of the line (after leading
	// whitespace) the stray-bullet scan inspects.
	fallbackWindow = 10
)

// bulletGlyphs is the recognized bullet character set. The exact code
// points are a compatibility contract with the extraction pipeline.
const bulletGlyphs = "•●○■▪▫‣⁃⁌⁍⦾⦿-*+"

var (
	reBullet   = regexp.MustCompile(`^\s*([•●○■▪▫‣⁃⁌⁍⦾⦿\-*+])\s+`)
	reNumbered = regexp.MustCompile(`^\s*(\d+)[.)]\s+`)
	reLettered = regexp.MustCompile(`^\s*([a-zA-Z])[.)]\s+`)
	// Well-formed roman numerals in subtractive notation. The grouped
	// alternation can match empty, so callers must reject an empty
	// capture.
	reRoman = regexp.MustCompile(`(?i)^\s*(M{0,4}(?:CM|CD|D?C{0,3})(?:XC|XL|L?X{0,3})(?:IX|IV|V?I{0,3}))[.)]\s+`)
)

// matchers is evaluated in order; the first satisfied pattern wins.
// Priority is a contract: a single leading marker makes the patterns
// mutually exclusive, and single letters like "i." resolve as Lettered
// rather than Roman.
var matchers = []struct {
	kind Kind
	re   *regexp.Regexp
}{
	{Bullet, reBullet},
	{Numbered, reNumbered},
	{Lettered, reLettered},
	{Roman, reRoman},
}

// Detect classifies text as a list item. x is the horizontal position of
// the line in page-space units; Level is x divided by UnitsPerLevel,
// floored. Empty or whitespace-only text, and ordinary paragraph text,
// return ok=false.
//
// When no anchored pattern matches, a fallback scan looks for any bullet
// glyph within the first 10 runes after leading whitespace and, if found,
// treats everything up to and including the glyph as the marker. The scan
// does not distinguish a genuine bullet from a glyph appearing mid-word
// (e.g. "*important* note" is detected as a bullet item); downstream
// behavior depends on this, so it is preserved as is.
func Detect(text string, x float64) (Item, bool) {
	if strings.TrimSpace(text) == "" {
		return Item{}, false
	}

	level := 0
	if x > 0 {
		level = int(x / UnitsPerLevel)
	}

	for _, m := range matchers {
		loc := m.re.FindStringSubmatchIndex(text)
		if loc == nil {
			continue
		}
		token := text[loc[2]:loc[3]]
		if token == "" {
			// Roman pattern matched zero numeral characters.
			continue
		}

		item := Item{
			Kind:    m.kind,
			Marker:  strings.TrimSpace(text[loc[0]:loc[1]]),
			Content: strings.TrimSpace(text[loc[1]:]),
			Level:   level,
		}

		switch m.kind {
		case Bullet:
			// no ordinal
		case Numbered:
			item.Index = parseDecimal(token)
		case Lettered:
			item.Index = int(strings.ToLower(token)[0]-'a') + 1
		case Roman:
			item.Index = RomanToInt(strings.ToUpper(token))
		}

		return item, true
	}

	return fallbackBullet(text, level)
}

// fallbackBullet scans the first fallbackWindow runes after leading
// whitespace for a stray bullet glyph. Bullets are sometimes preceded by
// artifacts (a tab remnant, a control character) that the anchored
// pattern rejects; this recovers those lines.
func fallbackBullet(text string, level int) (Item, bool) {
	window := []rune(strings.TrimLeftFunc(text, unicode.IsSpace))
	if len(window) > fallbackWindow {
		window = window[:fallbackWindow]
	}

	for _, r := range window {
		if !strings.ContainsRune(bulletGlyphs, r) {
			continue
		}
		pos := strings.IndexRune(text, r)
		end := pos + len(string(r))
		return Item{
			Kind:    Bullet,
			Marker:  strings.TrimSpace(text[:end]),
			Content: strings.TrimSpace(text[end:]),
			Level:   level,
		}, true
	}

	return Item{}, false
}

// parseDecimal converts a digit-only token. The numbered pattern
// guarantees the input is one or more ASCII digits.
func parseDecimal(s string) int {
	n := 0
	for _, c := range s {
		n = n*10 + int(c-'0')
	}
	return n
}
