// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package controller is the view-model controller of the catalog UI. It
// issues catalog requests, turns responses into view-models, and owns the
// two pieces of UI state: the snapshot of displayed citations and the
// citation currently open for editing.
//
// Every failure is turned into a notification; operations also return the
// error so one-shot callers (the CLI) can exit non-zero.
package controller

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"
	"time"

	"github.com/pdiddy/cite-catalog/internal/messages"
	"github.com/pdiddy/cite-catalog/internal/notify"
	"github.com/pdiddy/cite-catalog/internal/viewmodel"
	"github.com/pdiddy/cite-catalog/pkg/types"
)

var (
	// ErrTitleRequired is returned by Save when the title is blank. No
	// request is sent.
	ErrTitleRequired = errors.New("title is required")

	// ErrNotConfirmed is returned by Delete when the user declines.
	ErrNotConfirmed = errors.New("deletion not confirmed")
)

// API is the subset of the catalog client the controller drives.
type API interface {
	List(ctx context.Context) ([]types.Citation, error)
	Search(ctx context.Context, query string) ([]types.Citation, error)
	Get(ctx context.Context, id string) (types.Citation, error)
	Create(ctx context.Context, in types.CitationInput) (types.Citation, error)
	Update(ctx context.Context, id string, in types.CitationInput) (types.Citation, error)
	Delete(ctx context.Context, id string) error
	Export(ctx context.Context, format types.ExportFormat, w io.Writer) (int64, error)
}

// Notifier shows self-expiring messages to the user.
type Notifier interface {
	Post(level notify.Level, message string) notify.Notification
}

// Confirmer asks the user a yes/no question.
type Confirmer interface {
	Confirm(prompt string) bool
}

// ConfirmFunc adapts a function to Confirmer.
type ConfirmFunc func(prompt string) bool

// Confirm calls f.
func (f ConfirmFunc) Confirm(prompt string) bool { return f(prompt) }

// Confirmed is a Confirmer for callers that already asked.
var Confirmed Confirmer = ConfirmFunc(func(string) bool { return true })

// Options configures a Controller.
type Options struct {
	API       API
	Notifier  Notifier
	Localizer *messages.Localizer
	Logger    *slog.Logger

	// DownloadDir receives exported files (default ".").
	DownloadDir string

	// Now is the clock used for the "this month" statistic (default time.Now).
	Now func() time.Time
}

// Controller holds the UI state. It is safe for concurrent use; the lock
// is never held across a network call.
type Controller struct {
	api         API
	notifier    Notifier
	loc         *messages.Localizer
	logger      *slog.Logger
	downloadDir string
	now         func() time.Time

	mu       sync.Mutex
	snapshot []types.Citation
	current  *types.Citation
	screen   Screen
	// listSeq is the sequence number of the latest dispatched list request.
	listSeq  uint64
	inflight int
}

// New returns a Controller with an empty display.
func New(opts Options) *Controller {
	c := &Controller{
		api:         opts.API,
		notifier:    opts.Notifier,
		loc:         opts.Localizer,
		logger:      opts.Logger,
		downloadDir: opts.DownloadDir,
		now:         opts.Now,
	}
	if c.loc == nil {
		c.loc = messages.New(types.DefaultLocale)
	}
	if c.logger == nil {
		c.logger = slog.Default()
	}
	if c.downloadDir == "" {
		c.downloadDir = "."
	}
	if c.now == nil {
		c.now = time.Now
	}
	c.screen.List = viewmodel.BuildList(nil, c.loc, c.now())
	return c
}

// Localizer returns the controller's message localizer.
func (c *Controller) Localizer() *messages.Localizer { return c.loc }

// Screen returns a copy of the current render state.
func (c *Controller) Screen() Screen {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.screen
}

// Snapshot returns a copy of the displayed citations.
func (c *Controller) Snapshot() []types.Citation {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]types.Citation, len(c.snapshot))
	copy(out, c.snapshot)
	return out
}

// Current returns the citation open for editing, if any.
func (c *Controller) Current() (types.Citation, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.current == nil {
		return types.Citation{}, false
	}
	return *c.current, true
}

func (c *Controller) notify(level notify.Level, id messages.ID, args ...any) {
	c.notifier.Post(level, c.loc.T(id, args...))
}

func (c *Controller) beginLoading() {
	c.mu.Lock()
	c.inflight++
	c.screen.Loading = true
	c.mu.Unlock()
}

// endLoadingLocked must be called with c.mu held.
func (c *Controller) endLoadingLocked() {
	c.inflight--
	c.screen.Loading = c.inflight > 0
}
