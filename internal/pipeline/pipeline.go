// Package pipeline runs the document pass that keeps list structure
// intact through translation: each incoming line is classified by the
// list detector, consecutive items are clustered into groups, the item
// contents are translated (group members sequentially so later items see
// earlier translations as context, everything else in parallel), and the
// translated contents are re-emitted with their original markers and
// indentation.
package pipeline

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/valpere/listran/internal/chunker"
	"github.com/valpere/listran/internal/language"
	"github.com/valpere/listran/internal/list"
	"github.com/valpere/listran/internal/orchestrator"
	"github.com/valpere/listran/internal/placeholder"
	"github.com/valpere/listran/internal/store"
	"github.com/valpere/listran/internal/translator"
)

// Line is one visual line of document text with its horizontal position
// in the extraction layer's page-space units, in reading order.
type Line struct {
	Text string  `json:"text"`
	X    float64 `json:"x"`
}

// Options configure one document pass.
type Options struct {
	SourceLang string
	TargetLang string
	ServiceCfg translator.ServiceConfig

	// Memory, when non-nil, is consulted before and updated after
	// every translated segment.
	Memory *store.Store

	// Verifier, when non-nil, checks that each translated segment is
	// in the target language; mismatches are warnings, not failures.
	Verifier *language.Detector

	// ContextWords bounds the translated-text tail carried between
	// items of the same group; ≤ 0 uses the chunker default.
	ContextWords int

	// Progress receives human-readable notes; nil discards them.
	Progress io.Writer
}

type Pipeline struct {
	orch *orchestrator.Orchestrator
	opts Options
}

func New(orch *orchestrator.Orchestrator, opts Options) *Pipeline {
	if opts.Progress == nil {
		opts.Progress = io.Discard
	}
	return &Pipeline{orch: orch, opts: opts}
}

// segment is the per-line working state of one pass.
type segment struct {
	line       Line
	item       list.Item
	isItem     bool
	blank      bool
	groupID    int // -1 when the segment is not part of a list group
	source     string
	masked     string
	spans      []string
	translated string
}

// Run translates lines and returns the output lines in the same order.
// Blank lines pass through untouched.
func (p *Pipeline) Run(ctx context.Context, lines []Line) ([]string, error) {
	segs := p.classify(lines)

	if err := p.translate(ctx, segs); err != nil {
		return nil, err
	}

	out := make([]string, len(segs))
	for i, seg := range segs {
		if seg.blank {
			out[i] = seg.line.Text
			continue
		}
		restored := placeholder.Unmask(seg.translated, seg.spans)
		if missing := placeholder.Missing(seg.translated, seg.spans); len(missing) > 0 {
			fmt.Fprintf(p.opts.Progress, "line %d: translation dropped %d protected span(s)\n", i+1, len(missing))
		}
		if seg.isItem {
			rebuilt, err := list.Reconstruct(seg.item, restored, p.opts.TargetLang)
			if err != nil {
				return nil, fmt.Errorf("line %d: %w", i+1, err)
			}
			out[i] = rebuilt
		} else {
			out[i] = restored
		}
	}
	return out, nil
}

// classify detects list items, clusters them into groups with a single
// linear tracker pass, and synthesizes continuation items for wrapped
// lines indented deeper than the open group.
func (p *Pipeline) classify(lines []Line) []*segment {
	segs := make([]*segment, len(lines))
	var tracker list.Tracker
	groupID := -1

	for i, line := range lines {
		seg := &segment{line: line, groupID: -1}
		segs[i] = seg

		if strings.TrimSpace(line.Text) == "" {
			seg.blank = true
			tracker.Flush()
			continue
		}

		if item, ok := list.Detect(line.Text, line.X); ok {
			tracker.Feed(item)
			if len(tracker.Open().Items) == 1 {
				groupID++
			}
			seg.item = item
			seg.isItem = true
			seg.groupID = groupID
			seg.source = item.Content
			continue
		}

		// Wrapped text indented deeper than the open group belongs to
		// its last item.
		if open := tracker.Open(); open != nil && levelOf(line.X) > open.Level {
			cont := list.Item{
				Kind:           open.Kind,
				Content:        strings.TrimSpace(line.Text),
				Level:          open.Level + 1,
				IsContinuation: true,
			}
			open.AddItem(cont)
			seg.item = cont
			seg.isItem = true
			seg.groupID = groupID
			seg.source = cont.Content
			continue
		}

		tracker.Flush()
		seg.source = strings.TrimSpace(line.Text)
	}

	return segs
}

func levelOf(x float64) int {
	if x <= 0 {
		return 0
	}
	return int(x / list.UnitsPerLevel)
}

// translate fills seg.translated for every non-blank segment: memory
// first, then the orchestrator. Plain segments go out as one parallel
// batch; group members run sequentially per group so each item's prompt
// can carry the translated tail of its predecessors.
func (p *Pipeline) translate(ctx context.Context, segs []*segment) error {
	var plain []*segment
	groups := make(map[int][]*segment)

	for _, seg := range segs {
		if seg.blank {
			continue
		}
		seg.masked, seg.spans = placeholder.Mask(seg.source)
		if p.lookupMemory(ctx, seg) {
			continue
		}
		if seg.groupID >= 0 {
			groups[seg.groupID] = append(groups[seg.groupID], seg)
		} else {
			plain = append(plain, seg)
		}
	}

	if len(plain) > 0 {
		reqs := make([]translator.Request, len(plain))
		for i, seg := range plain {
			reqs[i] = p.request(seg, "")
		}
		for i, res := range p.orch.TranslateAll(ctx, p.opts.ServiceCfg, reqs) {
			if res.Err != nil {
				return fmt.Errorf("failed to translate segment %q: %w", plain[i].source, res.Err)
			}
			p.accept(ctx, plain[i], res.Result)
		}
	}

	for _, members := range groups {
		var tail string
		for _, seg := range members {
			res, err := p.orch.TranslateOne(ctx, p.opts.ServiceCfg, p.request(seg, tail))
			if err != nil {
				return fmt.Errorf("failed to translate list item %q: %w", seg.source, err)
			}
			p.accept(ctx, seg, res)
			tail = chunker.ContextTail(tail+" "+seg.translated, p.opts.ContextWords)
		}
	}

	return nil
}

func (p *Pipeline) request(seg *segment, tail string) translator.Request {
	return translator.Request{
		Text:       seg.masked,
		SourceLang: p.opts.SourceLang,
		TargetLang: p.opts.TargetLang,
		Context:    tail,
	}
}

// lookupMemory reports whether seg was served from the translation
// memory.
func (p *Pipeline) lookupMemory(ctx context.Context, seg *segment) bool {
	if p.opts.Memory == nil {
		return false
	}
	cached, found, err := p.opts.Memory.GetSegment(ctx, seg.masked, p.opts.SourceLang, p.opts.TargetLang)
	if err != nil {
		fmt.Fprintf(p.opts.Progress, "memory lookup failed: %v\n", err)
		return false
	}
	if found {
		seg.translated = cached
	}
	return found
}

// accept stores a fresh translation on the segment, verifies the target
// language, and records it in memory.
func (p *Pipeline) accept(ctx context.Context, seg *segment, res *translator.Result) {
	seg.translated = res.TranslatedText

	if p.opts.Verifier != nil {
		if ok, err := p.opts.Verifier.CheckTarget(seg.translated, p.opts.TargetLang); !ok {
			fmt.Fprintf(p.opts.Progress, "target-language check failed for %q: %v\n", seg.source, err)
		}
	}

	if p.opts.Memory != nil {
		kind := list.None
		level := 0
		if seg.isItem {
			kind = seg.item.Kind
			level = seg.item.Level
		}
		if err := p.opts.Memory.SaveSegment(ctx, seg.masked, p.opts.SourceLang, p.opts.TargetLang,
			seg.translated, kind.String(), level, res.ServiceName); err != nil {
			fmt.Fprintf(p.opts.Progress, "memory save failed: %v\n", err)
		}
	}
}
