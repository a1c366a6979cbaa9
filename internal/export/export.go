// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package export renders citation lists in the catalog's download formats:
// JSON, BibTeX, CSV and CSL-YAML.
package export

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/pdiddy/cite-catalog/pkg/types"
)

// ErrUnsupportedFormat is returned for formats outside types.ExportFormats.
var ErrUnsupportedFormat = errors.New("unsupported export format: use json, bibtex, csv or csl")

// Write renders citations in format to w.
func Write(w io.Writer, format types.ExportFormat, citations []types.Citation) error {
	switch format {
	case types.ExportJSON:
		return writeJSON(w, citations)
	case types.ExportBibTeX:
		_, err := io.WriteString(w, BibTeX(citations))
		return err
	case types.ExportCSV:
		return WriteCSV(w, citations)
	case types.ExportCSL:
		return WriteCSL(w, citations)
	default:
		return fmt.Errorf("%w (got %q)", ErrUnsupportedFormat, format)
	}
}

// ContentType returns the MIME type served for format.
func ContentType(format types.ExportFormat) string {
	switch format {
	case types.ExportBibTeX:
		return "application/x-bibtex; charset=utf-8"
	case types.ExportCSV:
		return "text/csv; charset=utf-8"
	case types.ExportCSL:
		return "application/yaml; charset=utf-8"
	default:
		return "application/json; charset=utf-8"
	}
}

// FileName returns the attachment name suggested for format.
func FileName(format types.ExportFormat) string {
	switch format {
	case types.ExportBibTeX:
		return "citations.bib"
	case types.ExportCSL:
		return "citations.yaml"
	default:
		return "citations." + string(format)
	}
}

func writeJSON(w io.Writer, citations []types.Citation) error {
	if citations == nil {
		citations = []types.Citation{}
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(citations); err != nil {
		return fmt.Errorf("marshaling JSON: %w", err)
	}
	return nil
}
