// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package viewmodel

import (
	"strconv"

	"github.com/pdiddy/cite-catalog/internal/messages"
	"github.com/pdiddy/cite-catalog/pkg/types"
)

// doiResolver prefixes bare DOIs to make them followable.
const doiResolver = "https://doi.org/"

// DetailField is one labelled row of the detail panel. Link is set for
// rows whose value can be opened (DOI, URL).
type DetailField struct {
	Label string
	Value string
	Link  string
}

// Detail is the expanded read-only rendering of one citation. It keeps the
// full record so "edit from view" can reopen it without looking it up again.
type Detail struct {
	Citation types.Citation
	Title    string
	Fields   []DetailField
	Abstract string
	Created  string
	Updated  string
}

// BuildDetail renders c for the detail dialog. Authors, journal and year are
// always listed; the remaining fields only when set.
func BuildDetail(c types.Citation, loc *messages.Localizer) Detail {
	d := Detail{
		Citation: c,
		Title:    c.Title,
		Abstract: c.Abstract,
		Created:  loc.FormatTime(c.CreatedAt),
		Updated:  loc.FormatTime(c.UpdatedAt),
	}

	year := loc.T(messages.NotSpecified)
	if c.Year != 0 {
		year = strconv.Itoa(c.Year)
	}

	d.Fields = append(d.Fields,
		DetailField{Label: loc.T(messages.LabelAuthors), Value: orDefault(c.Authors, loc.T(messages.NotSpecifiedPlural))},
		DetailField{Label: loc.T(messages.LabelJournal), Value: orDefault(c.Journal, loc.T(messages.NotSpecified))},
		DetailField{Label: loc.T(messages.LabelYear), Value: year},
	)

	optional := []struct {
		label messages.ID
		value string
		link  string
	}{
		{messages.LabelVolume, c.Volume, ""},
		{messages.LabelIssue, c.Issue, ""},
		{messages.LabelPages, c.Pages, ""},
		{messages.LabelDOI, c.DOI, doiResolver + c.DOI},
		{messages.LabelURL, c.URL, c.URL},
		{messages.LabelKeywords, c.Keywords, ""},
	}
	for _, f := range optional {
		if f.value == "" {
			continue
		}
		d.Fields = append(d.Fields, DetailField{Label: loc.T(f.label), Value: f.value, Link: f.link})
	}

	return d
}

func orDefault(v, fallback string) string {
	if v == "" {
		return fallback
	}
	return v
}
