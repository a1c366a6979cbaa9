// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/pdiddy/cite-catalog/internal/messages"
	"github.com/pdiddy/cite-catalog/internal/viewmodel"
)

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func printStats(w io.Writer, s viewmodel.Stats, loc *messages.Localizer) {
	fmt.Fprintf(w, "%s: %d  %s: %d  %s: %d  %s: %d\n",
		loc.T(messages.StatTotal), s.Total,
		loc.T(messages.StatRecent), s.ThisMonth,
		loc.T(messages.StatJournals), s.UniqueJournals,
		loc.T(messages.StatAvgYear), s.AvgYear)
}

// printList writes one block per card, or the no-results placeholder.
func printList(w io.Writer, lv viewmodel.ListView, loc *messages.Localizer) {
	if lv.NoResults {
		fmt.Fprintln(w, loc.T(messages.NoResults))
		return
	}
	for i, c := range lv.Cards {
		if i > 0 {
			fmt.Fprintln(w)
		}
		fmt.Fprintf(w, "%s  [%s]\n", c.Title, c.ID)
		fmt.Fprintf(w, "  %s\n", c.Authors)
		fmt.Fprintf(w, "  %s\n", c.JournalLine)
		if c.MetaLine != "" {
			fmt.Fprintf(w, "  %s\n", c.MetaLine)
		}
		if c.Abstract != "" {
			fmt.Fprintf(w, "  %s\n", c.Abstract)
		}
		if len(c.Keywords) > 0 {
			fmt.Fprintf(w, "  #%s\n", strings.Join(c.Keywords, " #"))
		}
	}
}

func printDetail(w io.Writer, d viewmodel.Detail, loc *messages.Localizer) {
	fmt.Fprintln(w, d.Title)
	for _, f := range d.Fields {
		value := f.Value
		if f.Link != "" && f.Link != f.Value {
			value = fmt.Sprintf("%s <%s>", f.Value, f.Link)
		}
		fmt.Fprintf(w, "  %-16s %s\n", f.Label+":", value)
	}
	if d.Abstract != "" {
		fmt.Fprintf(w, "\n%s:\n%s\n", loc.T(messages.LabelAbstract), d.Abstract)
	}
	fmt.Fprintf(w, "\n%s: %s\n%s: %s\n",
		loc.T(messages.LabelCreated), d.Created,
		loc.T(messages.LabelUpdated), d.Updated)
}
