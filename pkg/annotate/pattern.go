package annotate

import (
	"regexp"
	"sort"
	"strings"
	"unicode"
)

// SnippetPattern converts a literal SQL snippet into a regexp fragment
// tolerant of formatting noise introduced by upstream analysis:
//
//   - a literal "(" matches zero or one "(" in the line
//   - a literal ")" matches zero or one ")" in the line
//   - each whitespace character matches any run of whitespace (including none)
//
// No other metacharacters are escaped. Snippets containing regexp-special
// characters beyond parentheses and whitespace produce unpredictable
// patterns; that is an accepted limitation of the snippet format.
func SnippetPattern(snippet string) string {
	var b strings.Builder
	for _, r := range snippet {
		switch {
		case r == '(':
			b.WriteString(`\(?`)
		case r == ')':
			b.WriteString(`\)?`)
		case unicode.IsSpace(r):
			b.WriteString(`\s*`)
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}

// linePattern compiles the case-insensitive alternation of every fragment
// for one line. Fragments are ordered longest-snippet-first (ties keep
// input order) so a snippet that is a prefix of another cannot shadow the
// longer match through alternation order.
func linePattern(refs []Reference) (*regexp.Regexp, error) {
	order := make([]int, 0, len(refs))
	for i, ref := range refs {
		if ref.Snippet != "" {
			order = append(order, i)
		}
	}
	if len(order) == 0 {
		return nil, nil
	}

	sort.SliceStable(order, func(a, b int) bool {
		return len(refs[order[a]].Snippet) > len(refs[order[b]].Snippet)
	})

	frags := make([]string, len(order))
	for i, idx := range order {
		frags[i] = SnippetPattern(refs[idx].Snippet)
	}

	return regexp.Compile(`(?i)(` + strings.Join(frags, "|") + `)`)
}

// refPattern compiles the case-insensitive pattern for a single reference,
// used to attribute references to an already-matched span. Returns nil for
// empty snippets and for fragments that do not compile.
func refPattern(ref Reference) *regexp.Regexp {
	if ref.Snippet == "" {
		return nil
	}
	re, err := regexp.Compile(`(?i)` + SnippetPattern(ref.Snippet))
	if err != nil {
		return nil
	}
	return re
}
