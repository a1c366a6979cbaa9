// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package controller

import (
	"context"
	"errors"

	"github.com/pdiddy/cite-catalog/internal/httputil"
	"github.com/pdiddy/cite-catalog/internal/messages"
	"github.com/pdiddy/cite-catalog/internal/notify"
	"github.com/pdiddy/cite-catalog/internal/viewmodel"
	"github.com/pdiddy/cite-catalog/pkg/types"
)

// OpenAdd opens the dialog for a new citation with a blank form and clears
// the current citation.
func (c *Controller) OpenAdd() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.current = nil
	c.screen.Edit = EditDialog{
		Mode:  DialogCreate,
		Title: c.loc.T(messages.AddDialogTitle),
	}
}

// OpenEdit opens the dialog for editing cit, which becomes the current
// citation. The controller keeps its own copy.
func (c *Controller) OpenEdit(cit types.Citation) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.openEditLocked(cit)
}

func (c *Controller) openEditLocked(cit types.Citation) {
	c.current = &cit
	c.screen.Edit = EditDialog{
		Mode:  DialogEdit,
		ID:    cit.ID,
		Title: c.loc.T(messages.EditDialogTitle),
		Form:  viewmodel.FormFromCitation(cit),
	}
}

// EditByID opens the edit dialog for the displayed citation with id. It
// reports false when no displayed citation has that id.
func (c *Controller) EditByID(id string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, cit := range c.snapshot {
		if cit.ID == id {
			c.openEditLocked(cit)
			return true
		}
	}
	return false
}

// CloseEdit closes the add/edit dialog without saving.
func (c *Controller) CloseEdit() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.closeEditLocked()
}

func (c *Controller) closeEditLocked() {
	c.current = nil
	c.screen.Edit = EditDialog{}
}

// Save validates form and creates or updates a citation depending on
// whether a current citation is set. On success it closes the dialog and
// reloads the full list.
func (c *Controller) Save(ctx context.Context, form viewmodel.Form) (types.Citation, error) {
	in := form.Input()
	if in.Title == "" {
		c.notify(notify.Error, messages.TitleRequired)
		return types.Citation{}, ErrTitleRequired
	}

	c.mu.Lock()
	var editID string
	isEdit := c.current != nil
	if isEdit {
		editID = c.current.ID
	}
	c.mu.Unlock()

	var (
		saved types.Citation
		err   error
	)
	if isEdit {
		saved, err = c.api.Update(ctx, editID, in)
	} else {
		saved, err = c.api.Create(ctx, in)
	}
	if err != nil {
		c.logger.Error("save failed", "id", editID, "error", err)
		var se *httputil.StatusError
		if errors.As(err, &se) && se.Message != "" {
			c.notifier.Post(notify.Error, se.Message)
		} else {
			c.notify(notify.Error, messages.SaveFailed)
		}
		return types.Citation{}, err
	}

	if isEdit {
		c.notify(notify.Success, messages.Updated)
	} else {
		c.notify(notify.Success, messages.Added)
	}
	c.logger.Info("citation saved", "id", saved.ID, "edit", isEdit)

	c.CloseEdit()
	// A failed reload is already reported to the user; the save stands.
	_ = c.LoadAll(ctx)
	return saved, nil
}
