package storage_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/resume-matcher/backend/internal/match"
	"github.com/resume-matcher/backend/internal/storage"
)

func sampleReport(id string) *storage.Report {
	return &storage.Report{
		ID:          id,
		CreatedAt:   time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC),
		ResumeCount: 2,
		QueryChars:  34,
		Results: []match.Result{
			{Name: "A", Score: 0.63},
			{Name: "B", Score: 0.0},
		},
	}
}

func TestSaveAndGetReport(t *testing.T) {
	store, err := storage.NewFileStorage(t.TempDir())
	require.NoError(t, err)
	defer store.Close()

	report := sampleReport("match-1")
	require.NoError(t, store.Save(report))

	loaded, err := store.Get("match-1")
	require.NoError(t, err)

	assert.Equal(t, report.ID, loaded.ID)
	assert.Equal(t, report.ResumeCount, loaded.ResumeCount)
	assert.Equal(t, report.QueryChars, loaded.QueryChars)
	assert.Equal(t, report.Results, loaded.Results)
	assert.True(t, report.CreatedAt.Equal(loaded.CreatedAt))
}

func TestSaveSanitizesReportID(t *testing.T) {
	store, err := storage.NewFileStorage(t.TempDir())
	require.NoError(t, err)

	report := sampleReport("match/../../escape:attempt")
	require.NoError(t, store.Save(report))

	loaded, err := store.Get("match/../../escape:attempt")
	require.NoError(t, err)
	assert.Equal(t, report.ID, loaded.ID)
}

func TestGetMissingReport(t *testing.T) {
	store, err := storage.NewFileStorage(t.TempDir())
	require.NoError(t, err)

	_, err = store.Get("nope")

	assert.Error(t, err)
}
