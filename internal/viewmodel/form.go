// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package viewmodel

import (
	"strconv"
	"strings"

	"github.com/pdiddy/cite-catalog/pkg/types"
)

// Form holds the raw text of the add/edit dialog inputs, exactly as typed.
type Form struct {
	Title    string
	Authors  string
	Journal  string
	Year     string
	Volume   string
	Issue    string
	Pages    string
	DOI      string
	URL      string
	Keywords string
	Abstract string
}

// FormFromCitation fills a form for editing c. A zero year leaves the year
// input empty.
func FormFromCitation(c types.Citation) Form {
	f := Form{
		Title:    c.Title,
		Authors:  c.Authors,
		Journal:  c.Journal,
		Volume:   c.Volume,
		Issue:    c.Issue,
		Pages:    c.Pages,
		DOI:      c.DOI,
		URL:      c.URL,
		Keywords: c.Keywords,
		Abstract: c.Abstract,
	}
	if c.Year != 0 {
		f.Year = strconv.Itoa(c.Year)
	}
	return f
}

// Input trims every text field and coerces the year into a request payload.
func (f Form) Input() types.CitationInput {
	return types.CitationInput{
		Title:    strings.TrimSpace(f.Title),
		Authors:  strings.TrimSpace(f.Authors),
		Journal:  strings.TrimSpace(f.Journal),
		Year:     ParseYear(f.Year),
		Volume:   strings.TrimSpace(f.Volume),
		Issue:    strings.TrimSpace(f.Issue),
		Pages:    strings.TrimSpace(f.Pages),
		DOI:      strings.TrimSpace(f.DOI),
		URL:      strings.TrimSpace(f.URL),
		Keywords: strings.TrimSpace(f.Keywords),
		Abstract: strings.TrimSpace(f.Abstract),
	}
}

// ParseYear reads the leading decimal integer of s, ignoring surrounding
// whitespace and any trailing text ("2020abc" is 2020). Input with no
// leading digits, negative values, and values that overflow give 0.
func ParseYear(s string) int {
	s = strings.TrimSpace(s)
	end := 0
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}
	if end == 0 {
		return 0
	}
	year, err := strconv.Atoi(s[:end])
	if err != nil {
		return 0
	}
	return year
}
