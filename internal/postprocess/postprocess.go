// Package postprocess strips LLM artifacts from raw model output before
// a translated segment re-enters the pipeline: leaked reasoning blocks,
// echoed instructions, and wrapping quotes would otherwise end up inside
// reconstructed list items.
package postprocess

import (
	"regexp"
	"strings"
)

// Clean returns text with reasoning blocks, instruction echoes, and
// outer quote wrapping removed, trimmed of surrounding whitespace.
func Clean(text string) string {
	text = stripReasoning(text)
	text = stripEchoes(text)
	text = stripQuoteWrap(text)
	return strings.TrimSpace(text)
}

// reasoningRe matches complete <think>-style blocks. Tag variants are
// listed explicitly; RE2 has no backreferences.
var reasoningRe = regexp.MustCompile(
	`(?is)<thinking>.*?</thinking>|<think>.*?</think>|<reasoning>.*?</reasoning>`,
)

// openReasoningRe matches a reasoning tag the model never closed.
var openReasoningRe = regexp.MustCompile(
	`(?is)(?:<thinking>|<think>|<reasoning>).*$`,
)

func stripReasoning(text string) string {
	text = reasoningRe.ReplaceAllString(text, "")
	text = openReasoningRe.ReplaceAllString(text, "")
	return strings.TrimSpace(text)
}

// echoRes match introductory phrases models prepend despite being told
// not to. Anchored at the start and requiring a colon to avoid eating
// legitimate content.
var echoRes = []*regexp.Regexp{
	regexp.MustCompile(`(?i)^here(?:'s| is)(?: the)? (?:translated )?(?:translation|text)\s*:`),
	regexp.MustCompile(`(?i)^(?:the )?(?:translation|translated text)\s*:`),
	regexp.MustCompile(`(?i)^(?:certainly|sure|of course)[,.]? here(?:'s| is)(?: the)? (?:translation|text)\s*:`),
}

func stripEchoes(text string) string {
	for _, re := range echoRes {
		if loc := re.FindStringIndex(text); loc != nil && loc[0] == 0 {
			text = strings.TrimSpace(text[loc[1]:])
		}
	}
	return text
}

// stripQuoteWrap removes one matching pair of outer quotes when the
// whole text is wrapped in them.
func stripQuoteWrap(text string) string {
	runes := []rune(text)
	n := len(runes)
	if n < 2 {
		return text
	}
	first, last := runes[0], runes[n-1]
	if (first == '"' && last == '"') ||
		(first == '\'' && last == '\'') ||
		(first == '«' && last == '»') ||
		(first == '“' && last == '”') ||
		(first == '‘' && last == '’') {
		return strings.TrimSpace(string(runes[1 : n-1]))
	}
	return text
}
