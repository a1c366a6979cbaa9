// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package viewmodel

import "strings"

// Segment is a run of text that is either a search match or not.
type Segment struct {
	Text  string
	Match bool
}

// Highlight splits text into segments, marking case-insensitive literal
// occurrences of term. An empty term yields the whole text unmatched.
func Highlight(text, term string) []Segment {
	if term == "" || text == "" {
		return []Segment{{Text: text}}
	}

	lowerText := strings.ToLower(text)
	lowerTerm := strings.ToLower(term)
	// Lowercasing can change byte lengths for some scripts; fall back to an
	// unhighlighted segment rather than slicing at mismatched offsets.
	if len(lowerText) != len(text) || len(lowerTerm) != len(term) {
		return []Segment{{Text: text}}
	}

	var segs []Segment
	pos := 0
	for {
		i := strings.Index(lowerText[pos:], lowerTerm)
		if i < 0 {
			break
		}
		start := pos + i
		if start > pos {
			segs = append(segs, Segment{Text: text[pos:start]})
		}
		segs = append(segs, Segment{Text: text[start : start+len(term)], Match: true})
		pos = start + len(term)
	}
	if pos < len(text) {
		segs = append(segs, Segment{Text: text[pos:]})
	}
	return segs
}
