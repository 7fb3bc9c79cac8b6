package output

import (
	"fmt"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/leapstack-labs/sqlmark/pkg/annotate"
)

// Annotation writes an annotation result. JSON mode emits the result
// structure as-is; text mode renders each line with matched spans styled
// and a badge after every matched span.
func (r *Renderer) Annotation(result *annotate.Result, icons annotate.IconSet) error {
	if r.mode == ModeJSON {
		return r.JSON(result)
	}

	width := len(fmt.Sprintf("%d", len(result.Lines)))
	for i, segments := range result.Lines {
		num := r.styles.LineNum.Render(fmt.Sprintf("%*d │ ", width, i+1))
		_, _ = fmt.Fprintf(r.out, "%s%s\n", num, r.renderSegments(segments, icons))
	}

	for _, ref := range result.Unmatched {
		line := 0
		if ref.Location != nil {
			line = ref.Location.Line
		}
		r.Warningf("reference %s: snippet %q not found on line %d", ref.Num, ref.Snippet, line)
	}

	return nil
}

// renderSegments renders one line's segments, preserving segment text
// verbatim and appending badges after matched spans.
func (r *Renderer) renderSegments(segments []annotate.Segment, icons annotate.IconSet) string {
	var b strings.Builder
	for _, seg := range segments {
		if seg.Kind != annotate.SegmentMatched {
			b.WriteString(seg.Text)
			continue
		}
		b.WriteString(r.styles.Match.Render(seg.Text))
		for _, ref := range seg.Refs {
			badge := icons.Badge(ref)
			b.WriteString(r.styles.Badge.Render(fmt.Sprintf("[%s %s]", badge.Icon, badge.Label)))
		}
	}
	return b.String()
}

// RefRow is one row of the reference listing.
type RefRow struct {
	Num     string `json:"referenceNum"`
	Type    string `json:"type"`
	Icon    string `json:"icon"`
	Line    string `json:"line"`
	Snippet string `json:"sqlSnippet"`
	Status  string `json:"status"`
}

// RefsTable writes the reference listing as a table (text mode) or a JSON
// array (json mode).
func (r *Renderer) RefsTable(rows []RefRow) error {
	if r.mode == ModeJSON {
		return r.JSON(rows)
	}

	if len(rows) == 0 {
		_, _ = fmt.Fprintln(r.out, "(0 references)")
		return nil
	}

	t := table.NewWriter()
	t.SetOutputMirror(r.out)
	t.SetStyle(table.StyleLight)
	t.AppendHeader(table.Row{"#", "TYPE", "ICON", "LINE", "SNIPPET", "STATUS"})
	for _, row := range rows {
		t.AppendRow(table.Row{row.Num, row.Type, row.Icon, row.Line, row.Snippet, row.Status})
	}
	t.Render()
	_, _ = fmt.Fprintf(r.out, "(%d references)\n", len(rows))
	return nil
}
