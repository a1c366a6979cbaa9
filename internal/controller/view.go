// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package controller

import (
	"context"

	"github.com/pdiddy/cite-catalog/internal/messages"
	"github.com/pdiddy/cite-catalog/internal/notify"
	"github.com/pdiddy/cite-catalog/internal/viewmodel"
)

// View fetches the full record for id and opens the detail dialog. The
// list snapshot is never used as the source.
func (c *Controller) View(ctx context.Context, id string) error {
	cit, err := c.api.Get(ctx, id)
	if err != nil {
		c.logger.Error("fetching details failed", "id", id, "error", err)
		c.notify(notify.Error, messages.DetailsFailed)
		return err
	}

	detail := viewmodel.BuildDetail(cit, c.loc)
	c.mu.Lock()
	c.screen.View = ViewDialog{Open: true, Detail: detail}
	c.mu.Unlock()
	return nil
}

// CloseView closes the detail dialog.
func (c *Controller) CloseView() {
	c.mu.Lock()
	c.screen.View = ViewDialog{}
	c.mu.Unlock()
}

// EditFromView closes the detail dialog and opens the edit dialog for the
// record it was showing. It reports false when no detail dialog is open.
func (c *Controller) EditFromView() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.screen.View.Open {
		return false
	}
	cit := c.screen.View.Detail.Citation
	c.screen.View = ViewDialog{}
	c.openEditLocked(cit)
	return true
}
