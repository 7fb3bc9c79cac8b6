// Package annotate overlays provenance references onto SQL text.
//
// Given a SQL string and a set of references that each claim a literal
// snippet on a specific line, the package produces a line-by-line list of
// segments where every matched snippet occurrence is marked and carries
// the references that matched it. The computation is pure: inputs are
// never mutated, segments concatenated in order reconstruct each line
// exactly, and repeated calls with the same inputs yield the same result.
//
// # Basic Usage
//
//	refs := []annotate.Reference{
//	    {Num: "1", Type: "column", Snippet: "a", Location: &annotate.Location{Line: 1}},
//	}
//	result := annotate.Annotate("SELECT a FROM t", refs)
//	for _, line := range result.Lines {
//	    for _, seg := range line {
//	        // seg.Kind is SegmentPlain or SegmentMatched
//	    }
//	}
//
// Matching is case-insensitive and tolerant of formatting noise: snippet
// whitespace matches any run of whitespace in the line, and parentheses in
// a snippet are optional in the line. Other regexp metacharacters in a
// snippet are passed through unescaped; snippets containing them match
// unpredictably. This is a known limitation of the snippet format, not
// something the package attempts to repair.
package annotate
