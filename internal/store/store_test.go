// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package store

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/cite-catalog/pkg/types"
)

func testStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "db", "citations.db"))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

// fixedClock returns a clock that advances one minute per call.
func fixedClock(start time.Time) func() time.Time {
	t := start
	return func() time.Time {
		now := t
		t = t.Add(time.Minute)
		return now
	}
}

func TestCreateAndGet(t *testing.T) {
	s := testStore(t)
	ctx := context.Background()

	created, err := s.Create(ctx, types.CitationInput{Title: "New", Authors: "Doe, J.", Year: 2024})
	require.NoError(t, err)
	assert.NotEmpty(t, created.ID)
	assert.Equal(t, created.CreatedAt, created.UpdatedAt)
	_, err = time.Parse(time.RFC3339, created.CreatedAt)
	assert.NoError(t, err)

	got, err := s.Get(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, created, got)
}

func TestGet_NotFound(t *testing.T) {
	_, err := testStore(t).Get(context.Background(), "missing")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestList_NewestFirst(t *testing.T) {
	s := testStore(t)
	s.now = fixedClock(time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC))
	ctx := context.Background()

	for _, title := range []string{"first", "second", "third"} {
		_, err := s.Create(ctx, types.CitationInput{Title: title})
		require.NoError(t, err)
	}

	got, err := s.List(ctx)
	require.NoError(t, err)
	require.Len(t, got, 3)
	assert.Equal(t, "third", got[0].Title)
	assert.Equal(t, "first", got[2].Title)
}

func TestList_EmptyIsNotNil(t *testing.T) {
	got, err := testStore(t).List(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestUpdate(t *testing.T) {
	s := testStore(t)
	s.now = fixedClock(time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC))
	ctx := context.Background()

	created, err := s.Create(ctx, types.CitationInput{Title: "Old", Journal: "J"})
	require.NoError(t, err)

	updated, err := s.Update(ctx, created.ID, types.CitationInput{Title: "New", Year: 2020})
	require.NoError(t, err)
	assert.Equal(t, created.ID, updated.ID)
	assert.Equal(t, "New", updated.Title)
	assert.Empty(t, updated.Journal)
	assert.Equal(t, created.CreatedAt, updated.CreatedAt)
	assert.NotEqual(t, created.UpdatedAt, updated.UpdatedAt)

	got, err := s.Get(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, updated, got)
}

func TestUpdate_NotFound(t *testing.T) {
	_, err := testStore(t).Update(context.Background(), "missing", types.CitationInput{Title: "X"})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestDelete(t *testing.T) {
	s := testStore(t)
	ctx := context.Background()

	created, err := s.Create(ctx, types.CitationInput{Title: "Gone"})
	require.NoError(t, err)

	require.NoError(t, s.Delete(ctx, created.ID))
	_, err = s.Get(ctx, created.ID)
	assert.ErrorIs(t, err, ErrNotFound)
	assert.ErrorIs(t, s.Delete(ctx, created.ID), ErrNotFound)
}

func TestSearch(t *testing.T) {
	s := testStore(t)
	ctx := context.Background()

	inputs := []types.CitationInput{
		{Title: "Graph Neural Networks", Authors: "Kipf"},
		{Title: "Attention", Journal: "NeurIPS"},
		{Title: "Other", Abstract: "uses graph structure"},
		{Title: "Tagged", Keywords: "graphs, ml"},
		{Title: "100% accuracy"},
	}
	for _, in := range inputs {
		_, err := s.Create(ctx, in)
		require.NoError(t, err)
	}

	tests := []struct {
		term string
		want []string
	}{
		{"graph", []string{"Graph Neural Networks", "Other", "Tagged"}},
		{"neurips", []string{"Attention"}},
		{"kipf", []string{"Graph Neural Networks"}},
		{"100%", []string{"100% accuracy"}},
		{"%", []string{"100% accuracy"}},
		{"nothing-matches", nil},
	}
	for _, tt := range tests {
		t.Run(tt.term, func(t *testing.T) {
			got, err := s.Search(ctx, tt.term)
			require.NoError(t, err)
			var titles []string
			for _, c := range got {
				titles = append(titles, c.Title)
			}
			assert.ElementsMatch(t, tt.want, titles)
		})
	}
}

func TestOpen_InMemory(t *testing.T) {
	s, err := Open(":memory:")
	require.NoError(t, err)
	defer s.Close()

	_, err = s.Create(context.Background(), types.CitationInput{Title: "mem"})
	require.NoError(t, err)
	got, err := s.List(context.Background())
	require.NoError(t, err)
	assert.Len(t, got, 1)
}
