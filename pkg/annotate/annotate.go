package annotate

import (
	"log/slog"
	"regexp"
	"strings"
)

// SegmentKind distinguishes plain text from matched spans.
type SegmentKind string

const (
	// SegmentPlain is text no reference snippet matched.
	SegmentPlain SegmentKind = "plain"
	// SegmentMatched is a span matched by at least one reference snippet.
	SegmentMatched SegmentKind = "matched"
)

// Segment is a contiguous piece of one line of the annotated SQL.
type Segment struct {
	Kind SegmentKind `json:"kind"`
	Text string      `json:"text"`
	// Refs holds the references whose snippet matched this span, in input
	// order. Empty for plain segments.
	Refs []Reference `json:"references,omitempty"`
}

// Result is the annotated form of one SQL text.
type Result struct {
	// Lines holds one segment list per newline-separated line of the input,
	// including a trailing empty line when the input ends with a newline.
	Lines [][]Segment `json:"lines"`
	// Unmatched lists references with a valid location whose snippet matched
	// nothing on their declared line. Populated only when diagnostics are
	// enabled.
	Unmatched []Reference `json:"unmatched,omitempty"`
}

// Options configures the annotation.
type Options struct {
	// Diagnostics enables collection of unmatched references on the Result
	// and debug logging of match failures.
	Diagnostics bool
	// Logger receives diagnostic output. Ignored when nil or when
	// Diagnostics is false.
	Logger *slog.Logger
}

// Annotate splits each line of sql into plain and matched segments according
// to the given references. See AnnotateWithOptions.
func Annotate(sql string, refs []Reference) *Result {
	return AnnotateWithOptions(sql, refs, Options{})
}

// AnnotateWithOptions annotates sql with full configuration options.
//
// Each reference is considered only on the line its location declares.
// Matching is case-insensitive; emitted segment text is never trimmed or
// case-normalized, so concatenating a line's segments reproduces the line
// exactly. References without a valid location, with an empty snippet, or
// declaring a line outside the input are never attached to any segment.
// An empty sql produces zero lines.
func AnnotateWithOptions(sql string, refs []Reference, opts Options) *Result {
	result := &Result{}
	if sql == "" {
		return result
	}

	a := &annotator{
		opts:    opts,
		refs:    refs,
		matched: make([]bool, len(refs)),
	}

	byLine := a.groupByLine()

	lines := strings.Split(sql, "\n")
	result.Lines = make([][]Segment, len(lines))
	for i, line := range lines {
		result.Lines[i] = a.annotateLine(line, byLine[i+1])
	}

	if opts.Diagnostics {
		result.Unmatched = a.unmatched()
	}

	return result
}

// annotator carries per-invocation matching state.
type annotator struct {
	opts Options
	refs []Reference

	// matched tracks, by index into refs, which references were attached to
	// at least one segment.
	matched []bool

	// refPatterns caches compiled per-reference patterns, by index into refs.
	refPatterns map[int]*regexp.Regexp
}

// groupByLine buckets locatable reference indices by their declared line.
// References on lines outside the input are never looked up and so fall
// through to the unmatched diagnostics.
func (a *annotator) groupByLine() map[int][]int {
	byLine := make(map[int][]int)
	for i, ref := range a.refs {
		if !ref.Locatable() {
			continue
		}
		line := ref.Location.Line
		byLine[line] = append(byLine[line], i)
	}
	return byLine
}

// annotateLine produces the segment list for one line given the indices of
// the references declared on it.
func (a *annotator) annotateLine(line string, refIdx []int) []Segment {
	if len(refIdx) == 0 {
		return []Segment{{Kind: SegmentPlain, Text: line}}
	}

	lineRefs := make([]Reference, len(refIdx))
	for i, idx := range refIdx {
		lineRefs[i] = a.refs[idx]
	}

	re, err := linePattern(lineRefs)
	if err != nil {
		a.logDebug("snippet alternation did not compile", "error", err)
		return []Segment{{Kind: SegmentPlain, Text: line}}
	}
	if re == nil {
		// Only empty snippets on this line; nothing can match.
		return []Segment{{Kind: SegmentPlain, Text: line}}
	}

	var segments []Segment
	cursor := 0
	for _, span := range re.FindAllStringIndex(line, -1) {
		start, end := span[0], span[1]
		if start == end {
			// Fragments built from optional-only snippets (e.g. a lone
			// parenthesis) can match the empty string; such matches carry
			// no text and are skipped.
			continue
		}
		if start > cursor {
			segments = append(segments, Segment{Kind: SegmentPlain, Text: line[cursor:start]})
		}
		segments = append(segments, Segment{
			Kind: SegmentMatched,
			Text: line[start:end],
			Refs: a.attribute(line[start:end], refIdx),
		})
		cursor = end
	}
	if cursor < len(line) || len(segments) == 0 {
		segments = append(segments, Segment{Kind: SegmentPlain, Text: line[cursor:]})
	}

	return segments
}

// attribute collects, in input order, every reference on the line whose
// individual pattern matches the span. A span may satisfy more than one
// reference when snippets overlap or duplicate.
func (a *annotator) attribute(span string, refIdx []int) []Reference {
	var attached []Reference
	for _, idx := range refIdx {
		re := a.patternFor(idx)
		if re == nil {
			continue
		}
		if re.MatchString(span) {
			attached = append(attached, a.refs[idx])
			a.matched[idx] = true
		}
	}
	return attached
}

// patternFor returns the compiled pattern for one reference, caching it for
// reuse across spans.
func (a *annotator) patternFor(idx int) *regexp.Regexp {
	if re, ok := a.refPatterns[idx]; ok {
		return re
	}
	if a.refPatterns == nil {
		a.refPatterns = make(map[int]*regexp.Regexp)
	}
	re := refPattern(a.refs[idx])
	a.refPatterns[idx] = re
	return re
}

// unmatched returns, in input order, locatable references that were never
// attached to a segment.
func (a *annotator) unmatched() []Reference {
	var out []Reference
	for i, ref := range a.refs {
		if !ref.Locatable() || a.matched[i] {
			continue
		}
		out = append(out, ref)
		a.logDebug("reference snippet not matched",
			"referenceNum", ref.Num,
			"line", ref.Location.Line,
			"snippet", ref.Snippet,
		)
	}
	return out
}

func (a *annotator) logDebug(msg string, args ...any) {
	if !a.opts.Diagnostics || a.opts.Logger == nil {
		return
	}
	a.opts.Logger.Debug(msg, args...)
}
