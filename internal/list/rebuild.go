package list

import (
	"fmt"
	"strings"
)

// ErrInvalidIndex is returned by Reconstruct when an item's ordinal is
// outside the range its kind can express (lettered 1–26, numbered ≥ 1,
// roman 1–3999). A successfully detected item never carries such an
// index; this guards hand-built items.
var ErrInvalidIndex = fmt.Errorf("list: index out of range for kind")

// indentUnit is the output indentation emitted per nesting level.
const indentUnit = "    "

// Reconstruct emits the final text line for item with translated content,
// preserving the original marker semantics:
//
//	bullet   → "• " + content
//	numbered → "3. " + content
//	lettered → "b. " + content
//	roman    → "IV. " + content
//	none     → content (marker dropped)
//
// each prefixed by four spaces per level. Continuation items are wrapped
// text and re-emit indentation only. targetLang is reserved for future
// marker localization and currently does not alter the output.
func Reconstruct(item Item, translated string, targetLang string) (string, error) {
	_ = targetLang

	indent := strings.Repeat(indentUnit, item.Level)

	if item.IsContinuation {
		return indent + translated, nil
	}

	switch item.Kind {
	case Bullet:
		return indent + "• " + translated, nil
	case Numbered:
		if item.Index < 1 {
			return "", fmt.Errorf("%w: numbered index %d", ErrInvalidIndex, item.Index)
		}
		return fmt.Sprintf("%s%d. %s", indent, item.Index, translated), nil
	case Lettered:
		if item.Index < 1 || item.Index > 26 {
			return "", fmt.Errorf("%w: lettered index %d", ErrInvalidIndex, item.Index)
		}
		letter := string(rune('a' + item.Index - 1))
		return indent + letter + ". " + translated, nil
	case Roman:
		if item.Index < 1 || item.Index > 3999 {
			return "", fmt.Errorf("%w: roman index %d", ErrInvalidIndex, item.Index)
		}
		return indent + IntToRoman(item.Index) + ". " + translated, nil
	default:
		return indent + translated, nil
	}
}
