// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package types holds the data shared between the catalog client, the
// controller, and the reference backend.
package types

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Citation is one bibliographic record in the catalog.
// ID, CreatedAt and UpdatedAt are assigned by the backend and are read-only
// to clients; a citation that has never been saved has an empty ID.
type Citation struct {
	// ID is the opaque backend identifier (a UUID for the reference backend).
	ID string `json:"id" yaml:"id"`

	// Title is required and never empty for a persisted citation.
	Title string `json:"title" yaml:"title"`

	// Authors is free text, conventionally "Last, First, Last, First".
	Authors string `json:"authors" yaml:"authors"`

	Journal string `json:"journal" yaml:"journal"`

	// Year is the publication year; 0 means unknown.
	Year int `json:"year" yaml:"year"`

	Volume   string `json:"volume" yaml:"volume"`
	Issue    string `json:"issue" yaml:"issue"`
	Pages    string `json:"pages" yaml:"pages"`
	DOI      string `json:"doi" yaml:"doi"`
	URL      string `json:"url" yaml:"url"`
	Abstract string `json:"abstract" yaml:"abstract"`

	// Keywords is a comma-separated list of tags.
	Keywords string `json:"keywords" yaml:"keywords"`

	// CreatedAt and UpdatedAt are RFC 3339 timestamps.
	CreatedAt string `json:"created_at" yaml:"created_at"`
	UpdatedAt string `json:"updated_at" yaml:"updated_at"`
}

// UnmarshalJSON accepts the id as either a JSON string or a number, so
// backends with integer keys decode to the same opaque string.
func (c *Citation) UnmarshalJSON(data []byte) error {
	type plain Citation
	var raw struct {
		plain
		ID json.RawMessage `json:"id"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	*c = Citation(raw.plain)

	id := bytes.TrimSpace(raw.ID)
	switch {
	case len(id) == 0 || bytes.Equal(id, []byte("null")):
		c.ID = ""
	case id[0] == '"':
		if err := json.Unmarshal(id, &c.ID); err != nil {
			return fmt.Errorf("decoding citation id: %w", err)
		}
	default:
		var n json.Number
		if err := json.Unmarshal(id, &n); err != nil {
			return fmt.Errorf("decoding citation id: %w", err)
		}
		c.ID = n.String()
	}
	return nil
}

// CitationInput is the request body for create and update calls: every
// citation field except the backend-assigned ones.
type CitationInput struct {
	Title    string `json:"title"`
	Authors  string `json:"authors"`
	Journal  string `json:"journal"`
	Year     int    `json:"year"`
	Volume   string `json:"volume"`
	Issue    string `json:"issue"`
	Pages    string `json:"pages"`
	DOI      string `json:"doi"`
	URL      string `json:"url"`
	Keywords string `json:"keywords"`
	Abstract string `json:"abstract"`
}

// Input returns the editable fields of c.
func (c Citation) Input() CitationInput {
	return CitationInput{
		Title:    c.Title,
		Authors:  c.Authors,
		Journal:  c.Journal,
		Year:     c.Year,
		Volume:   c.Volume,
		Issue:    c.Issue,
		Pages:    c.Pages,
		DOI:      c.DOI,
		URL:      c.URL,
		Keywords: c.Keywords,
		Abstract: c.Abstract,
	}
}

// Apply copies the editable fields of in onto c, leaving ID and
// timestamps untouched.
func (c *Citation) Apply(in CitationInput) {
	c.Title = in.Title
	c.Authors = in.Authors
	c.Journal = in.Journal
	c.Year = in.Year
	c.Volume = in.Volume
	c.Issue = in.Issue
	c.Pages = in.Pages
	c.DOI = in.DOI
	c.URL = in.URL
	c.Keywords = in.Keywords
	c.Abstract = in.Abstract
}

// ExportFormat names a catalog export format accepted by /api/export.
type ExportFormat string

const (
	ExportJSON   ExportFormat = "json"
	ExportBibTeX ExportFormat = "bibtex"
	ExportCSV    ExportFormat = "csv"
	ExportCSL    ExportFormat = "csl"
)

// ExportFormats lists the supported formats in menu order.
var ExportFormats = []ExportFormat{ExportJSON, ExportBibTeX, ExportCSV, ExportCSL}

// Valid reports whether f is a supported export format.
func (f ExportFormat) Valid() bool {
	for _, known := range ExportFormats {
		if f == known {
			return true
		}
	}
	return false
}
