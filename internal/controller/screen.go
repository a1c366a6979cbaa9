// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package controller

import "github.com/pdiddy/cite-catalog/internal/viewmodel"

// DialogMode is the state of the add/edit dialog.
type DialogMode int

const (
	DialogClosed DialogMode = iota
	DialogCreate
	DialogEdit
)

func (m DialogMode) String() string {
	switch m {
	case DialogCreate:
		return "create"
	case DialogEdit:
		return "edit"
	default:
		return "closed"
	}
}

// EditDialog is the add/edit form state. ID is empty in create mode.
type EditDialog struct {
	Mode  DialogMode
	ID    string
	Title string
	Form  viewmodel.Form
}

// ViewDialog is the read-only detail dialog. Detail.Citation carries the
// viewed record, including its ID.
type ViewDialog struct {
	Open   bool
	Detail viewmodel.Detail
}

// Screen is everything a renderer draws. The list is replaced wholesale on
// every load, search, or mutation.
type Screen struct {
	List    viewmodel.ListView
	Loading bool
	// Query is the trimmed search term behind the current list, or "" when
	// the list shows every citation.
	Query string
	Edit  EditDialog
	View  ViewDialog
}
