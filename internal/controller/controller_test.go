// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package controller

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/cite-catalog/internal/httputil"
	"github.com/pdiddy/cite-catalog/internal/messages"
	"github.com/pdiddy/cite-catalog/internal/notify"
	"github.com/pdiddy/cite-catalog/internal/viewmodel"
	"github.com/pdiddy/cite-catalog/pkg/types"
)

// --- test doubles ---

// fakeAPI is an in-memory catalog that records the calls it receives.
type fakeAPI struct {
	mu        sync.Mutex
	citations []types.Citation
	nextID    int
	calls     []string

	// Per-operation failures injected by tests.
	listErr, searchErr, getErr, saveErr, deleteErr, exportErr error

	// searchGate, when set, maps a query to a channel the search waits on.
	searchGate map[string]chan struct{}
}

func (f *fakeAPI) record(call string) {
	f.mu.Lock()
	f.calls = append(f.calls, call)
	f.mu.Unlock()
}

func (f *fakeAPI) Calls() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.calls...)
}

func (f *fakeAPI) List(ctx context.Context) ([]types.Citation, error) {
	f.record("GET /api/citations")
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.listErr != nil {
		return nil, f.listErr
	}
	return append([]types.Citation{}, f.citations...), nil
}

func (f *fakeAPI) Search(ctx context.Context, q string) ([]types.Citation, error) {
	f.record("GET /api/search?q=" + q)
	if gate, ok := f.searchGate[q]; ok {
		<-gate
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.searchErr != nil {
		return nil, f.searchErr
	}
	var out []types.Citation
	for _, c := range f.citations {
		if c.Title == q {
			out = append(out, c)
		}
	}
	return out, nil
}

func (f *fakeAPI) Get(ctx context.Context, id string) (types.Citation, error) {
	f.record("GET /api/citations/" + id)
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.getErr != nil {
		return types.Citation{}, f.getErr
	}
	for _, c := range f.citations {
		if c.ID == id {
			return c, nil
		}
	}
	return types.Citation{}, &httputil.StatusError{StatusCode: 404}
}

func (f *fakeAPI) Create(ctx context.Context, in types.CitationInput) (types.Citation, error) {
	f.record("POST /api/citations")
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.saveErr != nil {
		return types.Citation{}, f.saveErr
	}
	f.nextID++
	c := types.Citation{ID: fmt.Sprint(f.nextID), CreatedAt: "2026-10-15T10:00:00Z", UpdatedAt: "2026-10-15T10:00:00Z"}
	c.Apply(in)
	f.citations = append(f.citations, c)
	return c, nil
}

func (f *fakeAPI) Update(ctx context.Context, id string, in types.CitationInput) (types.Citation, error) {
	f.record("PUT /api/citations/" + id)
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.saveErr != nil {
		return types.Citation{}, f.saveErr
	}
	for i := range f.citations {
		if f.citations[i].ID == id {
			f.citations[i].Apply(in)
			return f.citations[i], nil
		}
	}
	return types.Citation{}, &httputil.StatusError{StatusCode: 404}
}

func (f *fakeAPI) Delete(ctx context.Context, id string) error {
	f.record("DELETE /api/citations/" + id)
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.deleteErr != nil {
		return f.deleteErr
	}
	for i, c := range f.citations {
		if c.ID == id {
			f.citations = append(f.citations[:i], f.citations[i+1:]...)
			return nil
		}
	}
	return &httputil.StatusError{StatusCode: 404}
}

func (f *fakeAPI) Export(ctx context.Context, format types.ExportFormat, w io.Writer) (int64, error) {
	f.record("GET /api/export?format=" + string(format))
	if f.exportErr != nil {
		return 0, f.exportErr
	}
	n, err := io.WriteString(w, "payload:"+string(format))
	return int64(n), err
}

// recordingNotifier keeps every posted notification.
type recordingNotifier struct {
	mu    sync.Mutex
	posts []notify.Notification
}

func (r *recordingNotifier) Post(level notify.Level, message string) notify.Notification {
	r.mu.Lock()
	defer r.mu.Unlock()
	n := notify.Notification{ID: uint64(len(r.posts) + 1), Level: level, Message: message}
	r.posts = append(r.posts, n)
	return n
}

func (r *recordingNotifier) Last() notify.Notification {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.posts) == 0 {
		return notify.Notification{}
	}
	return r.posts[len(r.posts)-1]
}

func (r *recordingNotifier) Count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.posts)
}

func newTestController(t *testing.T, api *fakeAPI) (*Controller, *recordingNotifier) {
	t.Helper()
	n := &recordingNotifier{}
	c := New(Options{
		API:         api,
		Notifier:    n,
		Localizer:   messages.New("en"),
		Logger:      slog.New(slog.NewTextHandler(io.Discard, nil)),
		DownloadDir: t.TempDir(),
		Now:         func() time.Time { return time.Date(2026, 10, 15, 12, 0, 0, 0, time.UTC) },
	})
	return c, n
}

func seeded() *fakeAPI {
	return &fakeAPI{
		nextID: 3,
		citations: []types.Citation{
			{ID: "1", Title: "A", Journal: "X", Year: 2020, CreatedAt: "2026-10-02T00:00:00Z"},
			{ID: "2", Title: "B", Journal: "X", Year: 2022, CreatedAt: "2026-09-02T00:00:00Z"},
			{ID: "3", Title: "C", Journal: "Y", Year: 0},
		},
	}
}

var denied = ConfirmFunc(func(string) bool { return false })

// --- load and search ---

func TestLoadAll(t *testing.T) {
	c, n := newTestController(t, seeded())

	require.NoError(t, c.LoadAll(context.Background()))

	screen := c.Screen()
	assert.False(t, screen.Loading)
	assert.False(t, screen.List.NoResults)
	require.Len(t, screen.List.Cards, 3)
	assert.Equal(t, viewmodel.Stats{Total: 3, ThisMonth: 1, UniqueJournals: 2, AvgYear: 2021}, screen.List.Stats)
	assert.Len(t, c.Snapshot(), 3)
	assert.Zero(t, n.Count())
}

func TestLoadAll_FailureKeepsDisplay(t *testing.T) {
	api := seeded()
	c, n := newTestController(t, api)
	require.NoError(t, c.LoadAll(context.Background()))

	api.listErr = errors.New("connection refused")
	err := c.LoadAll(context.Background())
	require.Error(t, err)

	screen := c.Screen()
	assert.False(t, screen.Loading)
	assert.Len(t, screen.List.Cards, 3)
	assert.Equal(t, notify.Error, n.Last().Level)
	assert.Equal(t, "Failed to load citations", n.Last().Message)
}

func TestLoadAll_Empty(t *testing.T) {
	c, _ := newTestController(t, &fakeAPI{})
	require.NoError(t, c.LoadAll(context.Background()))
	assert.True(t, c.Screen().List.NoResults)
}

func TestSearch_EmptyQueryFallsBackToLoadAll(t *testing.T) {
	for _, q := range []string{"", "   "} {
		api := seeded()
		c, _ := newTestController(t, api)

		require.NoError(t, c.Search(context.Background(), q))
		assert.Equal(t, []string{"GET /api/citations"}, api.Calls())
		assert.Len(t, c.Screen().List.Cards, 3)
	}
}

func TestSearch_TrimsAndRendersMatches(t *testing.T) {
	api := seeded()
	c, _ := newTestController(t, api)

	require.NoError(t, c.Search(context.Background(), "  B "))
	assert.Equal(t, []string{"GET /api/search?q=B"}, api.Calls())

	screen := c.Screen()
	require.Len(t, screen.List.Cards, 1)
	assert.Equal(t, "2", screen.List.Cards[0].ID)
	assert.Equal(t, "B", screen.Query)
	assert.Equal(t, 1, screen.List.Stats.Total)
}

func TestSearch_Failure(t *testing.T) {
	api := seeded()
	api.searchErr = &httputil.StatusError{StatusCode: 500}
	c, n := newTestController(t, api)

	require.Error(t, c.Search(context.Background(), "A"))
	assert.Equal(t, "Failed to search citations", n.Last().Message)
	assert.False(t, c.Screen().Loading)
}

func TestSearch_StaleResponseDropped(t *testing.T) {
	api := seeded()
	slow := make(chan struct{})
	api.searchGate = map[string]chan struct{}{"A": slow}
	c, _ := newTestController(t, api)

	done := make(chan error)
	go func() { done <- c.Search(context.Background(), "A") }()

	// Wait until the slow request has been dispatched.
	require.Eventually(t, func() bool { return len(api.Calls()) == 1 }, time.Second, time.Millisecond)
	assert.True(t, c.Screen().Loading)

	require.NoError(t, c.Search(context.Background(), "B"))
	close(slow)
	require.NoError(t, <-done)

	screen := c.Screen()
	require.Len(t, screen.List.Cards, 1)
	assert.Equal(t, "B", screen.List.Cards[0].Title)
	assert.Equal(t, "B", screen.Query)
	assert.False(t, screen.Loading)
}

// --- save ---

func TestSave_EmptyTitleSendsNothing(t *testing.T) {
	for _, title := range []string{"", "   ", "\t\n"} {
		api := seeded()
		c, n := newTestController(t, api)
		c.OpenAdd()

		_, err := c.Save(context.Background(), viewmodel.Form{Title: title, Journal: "J"})
		assert.ErrorIs(t, err, ErrTitleRequired)
		assert.Empty(t, api.Calls())
		assert.Equal(t, "Title is required", n.Last().Message)
		assert.Equal(t, DialogCreate, c.Screen().Edit.Mode)
	}
}

func TestSave_CreateThenReload(t *testing.T) {
	api := &fakeAPI{nextID: 6}
	c, n := newTestController(t, api)
	c.OpenAdd()

	saved, err := c.Save(context.Background(), viewmodel.Form{Title: " New ", Year: "2024x"})
	require.NoError(t, err)
	assert.Equal(t, "7", saved.ID)
	assert.Equal(t, 2024, saved.Year)

	assert.Equal(t, []string{"POST /api/citations", "GET /api/citations"}, api.Calls())
	assert.Equal(t, "Citation added", n.Last().Message)

	screen := c.Screen()
	assert.Equal(t, DialogClosed, screen.Edit.Mode)
	require.Len(t, screen.List.Cards, 1)
	assert.Equal(t, "7", screen.List.Cards[0].ID)
	assert.Equal(t, "New", screen.List.Cards[0].Title)
}

func TestSave_UpdateCurrent(t *testing.T) {
	api := seeded()
	c, n := newTestController(t, api)
	require.NoError(t, c.LoadAll(context.Background()))

	require.True(t, c.EditByID("2"))
	cur, ok := c.Current()
	require.True(t, ok)
	assert.Equal(t, "2", cur.ID)

	screen := c.Screen()
	assert.Equal(t, DialogEdit, screen.Edit.Mode)
	assert.Equal(t, "2", screen.Edit.ID)
	assert.Equal(t, "Edit citation", screen.Edit.Title)
	assert.Equal(t, "2022", screen.Edit.Form.Year)

	form := screen.Edit.Form
	form.Title = "B2"
	_, err := c.Save(context.Background(), form)
	require.NoError(t, err)

	assert.Contains(t, api.Calls(), "PUT /api/citations/2")
	assert.Equal(t, "Citation updated", n.Last().Message)
	_, ok = c.Current()
	assert.False(t, ok)
}

func TestSave_BackendMessageVerbatim(t *testing.T) {
	api := seeded()
	api.saveErr = fmt.Errorf("creating citation: %w", &httputil.StatusError{StatusCode: 400, Message: "DOI already exists"})
	c, n := newTestController(t, api)
	c.OpenAdd()

	_, err := c.Save(context.Background(), viewmodel.Form{Title: "T"})
	require.Error(t, err)
	assert.Equal(t, "DOI already exists", n.Last().Message)
	assert.Equal(t, DialogCreate, c.Screen().Edit.Mode)
	assert.Equal(t, []string{"POST /api/citations"}, api.Calls())
}

func TestSave_GenericFailure(t *testing.T) {
	api := seeded()
	api.saveErr = errors.New("connection reset")
	c, n := newTestController(t, api)

	_, err := c.Save(context.Background(), viewmodel.Form{Title: "T"})
	require.Error(t, err)
	assert.Equal(t, "Failed to save citation", n.Last().Message)
}

func TestOpenAdd_ClearsCurrent(t *testing.T) {
	c, _ := newTestController(t, seeded())
	c.OpenEdit(types.Citation{ID: "9", Title: "Nine"})
	c.OpenAdd()

	_, ok := c.Current()
	assert.False(t, ok)
	screen := c.Screen()
	assert.Equal(t, DialogCreate, screen.Edit.Mode)
	assert.Empty(t, screen.Edit.ID)
	assert.Equal(t, viewmodel.Form{}, screen.Edit.Form)
}

func TestCloseEdit(t *testing.T) {
	c, _ := newTestController(t, seeded())
	c.OpenEdit(types.Citation{ID: "9", Title: "Nine"})
	c.CloseEdit()

	assert.Equal(t, DialogClosed, c.Screen().Edit.Mode)
	_, ok := c.Current()
	assert.False(t, ok)
}

func TestEditByID_Unknown(t *testing.T) {
	c, _ := newTestController(t, seeded())
	assert.False(t, c.EditByID("1"), "nothing loaded yet")
}

// --- view ---

func TestView_FetchesFullRecord(t *testing.T) {
	api := seeded()
	c, _ := newTestController(t, api)

	require.NoError(t, c.View(context.Background(), "1"))
	assert.Equal(t, []string{"GET /api/citations/1"}, api.Calls())

	screen := c.Screen()
	assert.True(t, screen.View.Open)
	assert.Equal(t, "A", screen.View.Detail.Title)

	c.CloseView()
	assert.False(t, c.Screen().View.Open)
}

func TestView_Failure(t *testing.T) {
	api := seeded()
	api.getErr = errors.New("timeout")
	c, n := newTestController(t, api)

	require.Error(t, c.View(context.Background(), "1"))
	assert.False(t, c.Screen().View.Open)
	assert.Equal(t, "Failed to load citation details", n.Last().Message)
}

func TestEditFromView_UsesViewedID(t *testing.T) {
	api := seeded()
	// Two citations share a title; the one viewed must be the one edited.
	api.citations = append(api.citations, types.Citation{ID: "4", Title: "A", Journal: "Z"})
	c, _ := newTestController(t, api)
	require.NoError(t, c.LoadAll(context.Background()))

	require.NoError(t, c.View(context.Background(), "4"))
	require.True(t, c.EditFromView())

	screen := c.Screen()
	assert.False(t, screen.View.Open)
	assert.Equal(t, DialogEdit, screen.Edit.Mode)
	assert.Equal(t, "4", screen.Edit.ID)
	assert.Equal(t, "Z", screen.Edit.Form.Journal)
}

func TestEditFromView_NoDialog(t *testing.T) {
	c, _ := newTestController(t, seeded())
	assert.False(t, c.EditFromView())
	assert.Equal(t, DialogClosed, c.Screen().Edit.Mode)
}

// --- delete ---

func TestDelete_Declined(t *testing.T) {
	api := seeded()
	c, n := newTestController(t, api)

	err := c.Delete(context.Background(), "1", denied)
	assert.ErrorIs(t, err, ErrNotConfirmed)
	assert.Empty(t, api.Calls())
	assert.Zero(t, n.Count())
}

func TestDelete_PromptText(t *testing.T) {
	c, _ := newTestController(t, seeded())
	var asked string
	c.Delete(context.Background(), "1", ConfirmFunc(func(p string) bool { asked = p; return false }))
	assert.Equal(t, "Are you sure you want to delete this citation?", asked)
}

func TestDelete_SuccessReloads(t *testing.T) {
	api := seeded()
	c, n := newTestController(t, api)
	require.NoError(t, c.LoadAll(context.Background()))

	require.NoError(t, c.Delete(context.Background(), "1", Confirmed))
	assert.Equal(t, []string{"GET /api/citations", "DELETE /api/citations/1", "GET /api/citations"}, api.Calls())
	assert.Equal(t, "Citation deleted", n.Last().Message)
	assert.Len(t, c.Screen().List.Cards, 2)
}

func TestDelete_FailureNoReload(t *testing.T) {
	api := seeded()
	c, n := newTestController(t, api)
	require.NoError(t, c.LoadAll(context.Background()))

	api.deleteErr = &httputil.StatusError{StatusCode: 500}
	require.Error(t, c.Delete(context.Background(), "7", Confirmed))

	assert.Equal(t, []string{"GET /api/citations", "DELETE /api/citations/7"}, api.Calls())
	assert.Equal(t, notify.Error, n.Last().Level)
	assert.Equal(t, "Failed to delete citation", n.Last().Message)
	assert.Len(t, c.Screen().List.Cards, 3)
}

// --- export ---

func TestExport(t *testing.T) {
	api := seeded()
	c, n := newTestController(t, api)

	path, err := c.Export(context.Background(), types.ExportBibTeX)
	require.NoError(t, err)
	assert.Equal(t, "citations.bibtex", filepath.Base(path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "payload:bibtex", string(data))
	assert.Equal(t, "Citations exported as BIBTEX", n.Last().Message)
}

func TestExport_FailureLeavesNoFile(t *testing.T) {
	api := seeded()
	api.exportErr = &httputil.StatusError{StatusCode: 400}
	c, n := newTestController(t, api)

	_, err := c.Export(context.Background(), types.ExportCSV)
	require.Error(t, err)
	assert.Equal(t, "Failed to export citations as CSV", n.Last().Message)

	entries, err := os.ReadDir(c.downloadDir)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestLocalizedNotifications(t *testing.T) {
	api := seeded()
	api.listErr = errors.New("down")
	n := &recordingNotifier{}
	c := New(Options{API: api, Notifier: n, Localizer: messages.New("ru"),
		Logger: slog.New(slog.NewTextHandler(io.Discard, nil))})

	require.Error(t, c.LoadAll(context.Background()))
	assert.Equal(t, "Ошибка загрузки цитирований", n.Last().Message)
}
