// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package controller

import (
	"context"

	"github.com/pdiddy/cite-catalog/internal/messages"
	"github.com/pdiddy/cite-catalog/internal/notify"
)

// Delete asks confirm, then deletes citation id and reloads the list. A
// failed delete leaves the display unchanged and does not reload.
func (c *Controller) Delete(ctx context.Context, id string, confirm Confirmer) error {
	if !confirm.Confirm(c.loc.T(messages.DeleteConfirm)) {
		return ErrNotConfirmed
	}

	if err := c.api.Delete(ctx, id); err != nil {
		c.logger.Error("delete failed", "id", id, "error", err)
		c.notify(notify.Error, messages.DeleteFailed)
		return err
	}

	c.logger.Info("citation deleted", "id", id)
	c.notify(notify.Success, messages.Deleted)
	_ = c.LoadAll(ctx)
	return nil
}
