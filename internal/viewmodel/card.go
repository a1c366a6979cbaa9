// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package viewmodel turns citations into display-ready values: list cards,
// detail panels, statistics, and edit-form payloads. Nothing here touches a
// terminal or the network, so every transform is testable on its own.
package viewmodel

import (
	"fmt"
	"strings"
	"time"

	"github.com/pdiddy/cite-catalog/internal/messages"
	"github.com/pdiddy/cite-catalog/pkg/types"
)

// Card is the list rendering of one citation.
type Card struct {
	ID          string
	Title       string
	Authors     string
	JournalLine string
	// MetaLine joins volume, issue and pages; empty when all three are.
	MetaLine string
	Abstract string
	Keywords []string
}

// ListView is everything a renderer needs to draw the citation list.
type ListView struct {
	Cards []Card
	// NoResults is set when the displayed set is empty and the
	// placeholder should be shown instead of cards.
	NoResults bool
	Stats     Stats
}

// BuildCard renders c for the list.
func BuildCard(c types.Citation, loc *messages.Localizer) Card {
	card := Card{
		ID:       c.ID,
		Title:    c.Title,
		Authors:  c.Authors,
		Abstract: c.Abstract,
		Keywords: ParseKeywords(c.Keywords),
	}
	if card.Authors == "" {
		card.Authors = loc.T(messages.AuthorsMissing)
	}

	card.JournalLine = c.Journal
	if card.JournalLine == "" {
		card.JournalLine = loc.T(messages.JournalMissing)
	}
	if c.Year != 0 {
		card.JournalLine += fmt.Sprintf(" (%d)", c.Year)
	}

	var meta []string
	if c.Volume != "" {
		meta = append(meta, loc.T(messages.MetaVolume, c.Volume))
	}
	if c.Issue != "" {
		meta = append(meta, loc.T(messages.MetaIssue, c.Issue))
	}
	if c.Pages != "" {
		meta = append(meta, loc.T(messages.MetaPages, c.Pages))
	}
	card.MetaLine = strings.Join(meta, ", ")

	return card
}

// BuildList renders the whole displayed set. now anchors the "this month"
// statistic.
func BuildList(cs []types.Citation, loc *messages.Localizer, now time.Time) ListView {
	view := ListView{
		Cards:     make([]Card, 0, len(cs)),
		NoResults: len(cs) == 0,
		Stats:     ComputeStats(cs, now),
	}
	for _, c := range cs {
		view.Cards = append(view.Cards, BuildCard(c, loc))
	}
	return view
}

// ParseKeywords splits a comma-separated keyword list into trimmed badges.
// Blank entries (from "a,,b" or a trailing comma) are dropped.
func ParseKeywords(s string) []string {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	var out []string
	for _, kw := range strings.Split(s, ",") {
		kw = strings.TrimSpace(kw)
		if kw != "" {
			out = append(out, kw)
		}
	}
	return out
}
