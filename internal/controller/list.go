// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package controller

import (
	"context"
	"strings"

	"github.com/pdiddy/cite-catalog/internal/messages"
	"github.com/pdiddy/cite-catalog/internal/notify"
	"github.com/pdiddy/cite-catalog/internal/viewmodel"
	"github.com/pdiddy/cite-catalog/pkg/types"
)

// LoadAll fetches every citation and replaces the display. On failure the
// previous display is kept and an error notification is posted.
func (c *Controller) LoadAll(ctx context.Context) error {
	return c.fetchList(ctx, "", messages.LoadFailed, c.api.List)
}

// Search displays the citations matching query. A blank query behaves
// exactly like LoadAll.
func (c *Controller) Search(ctx context.Context, query string) error {
	query = strings.TrimSpace(query)
	if query == "" {
		return c.LoadAll(ctx)
	}
	return c.fetchList(ctx, query, messages.SearchFailed, func(ctx context.Context) ([]types.Citation, error) {
		return c.api.Search(ctx, query)
	})
}

// fetchList runs one list request. Requests are numbered as they are
// dispatched; a response that arrives after a newer request was dispatched
// is dropped, so the display always reflects the latest request.
func (c *Controller) fetchList(ctx context.Context, query string, failID messages.ID, fetch func(context.Context) ([]types.Citation, error)) error {
	c.mu.Lock()
	c.listSeq++
	seq := c.listSeq
	c.mu.Unlock()
	c.beginLoading()

	citations, err := fetch(ctx)

	c.mu.Lock()
	c.endLoadingLocked()
	stale := seq != c.listSeq
	if err == nil && !stale {
		c.snapshot = citations
		c.screen.List = viewmodel.BuildList(citations, c.loc, c.now())
		c.screen.Query = query
	}
	c.mu.Unlock()

	if stale {
		c.logger.Debug("dropping superseded list response", "seq", seq, "query", query, "error", err)
		return nil
	}
	if err != nil {
		c.logger.Error("list request failed", "query", query, "error", err)
		c.notify(notify.Error, failID)
		return err
	}
	c.logger.Debug("list rendered", "seq", seq, "query", query, "count", len(citations))
	return nil
}
