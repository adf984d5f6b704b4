package test

import (
	"context"
	"net/http"

	"github.com/gymly/backend/internal/interchange"
	"github.com/gymly/backend/internal/splits"
	"github.com/gymly/backend/internal/syncer"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func (s *IntegrationTestSuite) TestRemoteSync() {
	t := s.T()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	token := doLogin(ctx, t)

	// sync is on by default
	var enabled syncer.EnabledResponse
	s.doRequest(ctx, t, "GET", "/sync/enabled", token, nil, http.StatusOK, &enabled)
	assert.True(t, enabled.Enabled)

	split := s.createSplit(ctx, token, gofakeit.HipsterWord(), 2)

	var pushReport syncer.SyncReport
	s.doRequest(ctx, t, "POST", "/sync/push", token, nil, http.StatusOK, &pushReport)
	assert.False(t, pushReport.Skipped)
	require.GreaterOrEqual(t, pushReport.Pushed, 1)

	// lose the split locally, pull brings it back
	s.doRequest(ctx, t, "DELETE", "/splits/"+split.ID, token, nil, http.StatusOK, nil)
	s.doRequest(ctx, t, "GET", "/splits/"+split.ID, token, nil, http.StatusNotFound, nil)

	var pullReport syncer.SyncReport
	s.doRequest(ctx, t, "POST", "/sync/pull", token, nil, http.StatusOK, &pullReport)
	require.GreaterOrEqual(t, pullReport.Pulled, 1)

	var restored splits.Split
	s.doRequest(ctx, t, "GET", "/splits/"+split.ID, token, nil, http.StatusOK, &restored)
	assert.Equal(t, split.Name, restored.Name)
	// a pulled split never comes back active
	assert.False(t, restored.IsActive)

	// disabled sync is a silent no-op
	s.doRequest(ctx, t, "PUT", "/sync/enabled", token, syncer.SetEnabledRequest{Enabled: false}, http.StatusOK, nil)

	var skippedReport syncer.SyncReport
	s.doRequest(ctx, t, "POST", "/sync/full", token, nil, http.StatusOK, &skippedReport)
	assert.True(t, skippedReport.Skipped)
	assert.Zero(t, skippedReport.Pulled)
	assert.Zero(t, skippedReport.Pushed)

	s.doRequest(ctx, t, "PUT", "/sync/enabled", token, syncer.SetEnabledRequest{Enabled: true}, http.StatusOK, nil)
}

func (s *IntegrationTestSuite) TestSplitExportImport() {
	t := s.T()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	token := doLogin(ctx, t)

	split := s.createSplit(ctx, token, gofakeit.HipsterWord(), 2)
	var added splits.AddExerciseResponse
	s.doRequest(
		ctx, t,
		"POST", "/days/"+split.Days[0].ID+"/exercises", token,
		splits.AddExerciseRequest{Name: "Deadlift", RepGoal: "5", MuscleGroup: "back"},
		http.StatusCreated, &added,
	)

	var doc interchange.SplitDocument
	s.doRequest(ctx, t, "GET", "/splits/"+split.ID+"/export", token, nil, http.StatusOK, &doc)
	assert.Equal(t, interchange.FormatVersion, doc.Version)
	assert.Equal(t, split.Name, doc.Name)
	require.Len(t, doc.Days, 2)
	require.Len(t, doc.Days[0].Exercises, 1)

	var imported splits.Split
	s.doRequest(ctx, t, "POST", "/splits/import", token, doc, http.StatusCreated, &imported)
	// import mints a fresh identity and never activates
	assert.NotEqual(t, split.ID, imported.ID)
	assert.False(t, imported.IsActive)
	require.Len(t, imported.Days, 2)
	assert.Equal(t, "Deadlift", imported.Days[0].Exercises[0].Name)
	assert.NotEqual(t, added.Exercise.ID, imported.Days[0].Exercises[0].ID)
}
