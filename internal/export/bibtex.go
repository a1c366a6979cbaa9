// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package export

import (
	"fmt"
	"strings"

	"github.com/pdiddy/cite-catalog/pkg/types"
)

const bibtexHeader = "% Generated by cite-catalog\n\n"

// BibTeX renders citations as @article entries.
func BibTeX(citations []types.Citation) string {
	var b strings.Builder
	b.WriteString(bibtexHeader)

	for _, c := range citations {
		fmt.Fprintf(&b, "@article{%s,\n", citeKey(c))
		fmt.Fprintf(&b, "  title = {%s},\n", escapeLatex(c.Title))
		fmt.Fprintf(&b, "  author = {%s},\n", formatAuthors(c.Authors))
		fmt.Fprintf(&b, "  journal = {%s},\n", escapeLatex(c.Journal))
		fmt.Fprintf(&b, "  year = {%d},\n", c.Year)

		optional := []struct{ name, value string }{
			{"volume", c.Volume},
			{"number", c.Issue},
			{"pages", c.Pages},
			{"doi", c.DOI},
			{"url", c.URL},
		}
		for _, f := range optional {
			if f.value != "" {
				fmt.Fprintf(&b, "  %s = {%s},\n", f.name, f.value)
			}
		}
		b.WriteString("}\n\n")
	}
	return b.String()
}

// citeKey builds the entry key from the first author and the year with
// whitespace and BibTeX-hostile characters removed ("Smith, J." + 2020 →
// "Smith2020"). Citations without authors fall back to "citation".
func citeKey(c types.Citation) string {
	first := strings.TrimSpace(strings.Split(c.Authors, ",")[0])
	key := strings.Map(func(r rune) rune {
		switch {
		case r == ' ' || r == '\t' || r == '{' || r == '}' || r == ',' || r == '%' || r == '#' || r == '\\':
			return -1
		default:
			return r
		}
	}, first)
	if key == "" {
		key = "citation"
	}
	return fmt.Sprintf("%s%d", key, c.Year)
}

// formatAuthors joins comma-separated author names with BibTeX's " and ".
// "Last, First" pairs are ambiguous with name lists, so each comma-separated
// part is treated as one author.
func formatAuthors(authors string) string {
	var parts []string
	for _, a := range strings.Split(authors, ",") {
		if a = strings.TrimSpace(a); a != "" {
			parts = append(parts, escapeLatex(a))
		}
	}
	return strings.Join(parts, " and ")
}

// escapeLatex escapes special LaTeX characters.
func escapeLatex(s string) string {
	replacer := strings.NewReplacer(
		"&", `\&`,
		"%", `\%`,
		"$", `\$`,
		"#", `\#`,
		"_", `\_`,
		"{", `\{`,
		"}", `\}`,
		"~", `\textasciitilde{}`,
		"^", `\textasciicircum{}`,
	)
	return replacer.Replace(s)
}
