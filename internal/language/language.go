// Package language wraps lingua-go for the two language questions the
// pipeline asks: what language is this document in (when the caller says
// "auto"), and did the backend actually translate into the target
// language.
package language

import (
	"fmt"
	"strings"

	lingua "github.com/pemistahl/lingua-go"
)

// minCheckLength is the minimum rune count for target-language checking.
// Shorter segments (most list items are short) give unreliable detection
// and pass without validation.
const minCheckLength = 20

// Detector answers both questions off one lingua instance; building the
// underlying detector is expensive, so reuse it.
type Detector struct {
	det lingua.LanguageDetector
}

func New() *Detector {
	det := lingua.NewLanguageDetectorBuilder().
		FromAllLanguages().
		Build()
	return &Detector{det: det}
}

// DetectISO returns the ISO 639-1 code of text's language, or ok=false
// when the language cannot be determined.
func (d *Detector) DetectISO(text string) (string, bool) {
	if text == "" {
		return "", false
	}
	lang, ok := d.det.DetectLanguageOf(text)
	if !ok {
		return "", false
	}
	return lang.IsoCode639_1().String(), true
}

// CheckTarget reports whether translated appears to be written in
// targetLang. Empty target skips the check; empty text fails it. Texts
// too short or too ambiguous to detect pass. On mismatch the error names
// both codes.
func (d *Detector) CheckTarget(translated, targetLang string) (bool, error) {
	if targetLang == "" {
		return true, nil
	}

	text := strings.TrimSpace(translated)
	if text == "" {
		return false, fmt.Errorf("translation is empty")
	}
	if len([]rune(text)) < minCheckLength {
		return true, nil
	}

	detected, ok := d.DetectISO(text)
	if !ok {
		return true, nil
	}
	if !strings.EqualFold(detected, targetLang) {
		return false, fmt.Errorf("expected %s but detected %s", targetLang, detected)
	}
	return true, nil
}
