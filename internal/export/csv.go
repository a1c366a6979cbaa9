// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/pdiddy/cite-catalog/pkg/types"
)

var csvHeader = []string{"Title", "Authors", "Journal", "Year", "Volume", "Issue", "Pages", "DOI", "URL", "Abstract", "Keywords"}

// WriteCSV writes one header row and one row per citation.
func WriteCSV(w io.Writer, citations []types.Citation) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(csvHeader); err != nil {
		return fmt.Errorf("writing CSV header: %w", err)
	}
	for _, c := range citations {
		row := []string{
			c.Title, c.Authors, c.Journal, strconv.Itoa(c.Year),
			c.Volume, c.Issue, c.Pages, c.DOI, c.URL, c.Abstract, c.Keywords,
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("writing CSV row: %w", err)
		}
	}
	cw.Flush()
	return cw.Error()
}
