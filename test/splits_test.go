package test

import (
	"context"
	"fmt"
	"net/http"

	"github.com/gymly/backend/internal/settings"
	"github.com/gymly/backend/internal/splits"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func (s *IntegrationTestSuite) createSplit(ctx context.Context, token, name string, dayCount int) *splits.Split {
	t := s.T()
	var split splits.Split
	s.doRequest(
		ctx, t,
		"POST", "/splits", token,
		splits.NewSplitRequest{Name: name, DayCount: dayCount},
		http.StatusCreated, &split,
	)
	require.NotEmpty(t, split.ID)
	require.Len(t, split.Days, dayCount)
	return &split
}

func (s *IntegrationTestSuite) TestSplitsLifecycle() {
	t := s.T()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	token := doLogin(ctx, t)

	split := s.createSplit(ctx, token, gofakeit.HipsterWord(), 3)
	assert.False(t, split.IsActive)
	assert.Equal(t, "Day 1", split.Days[0].Name)
	assert.Equal(t, 1, split.Days[0].DayOfSplit)
	assert.Equal(t, "Day 3", split.Days[2].Name)

	// list contains the new split
	var list splits.SplitsListResponse
	s.doRequest(ctx, t, "GET", "/splits", token, nil, http.StatusOK, &list)
	require.GreaterOrEqual(t, list.Total, 1)

	// rename, then get and check
	s.doRequest(
		ctx, t,
		"PUT", "/splits/"+split.ID, token,
		splits.RenameSplitRequest{Name: "Push Pull Legs"},
		http.StatusOK, nil,
	)
	var renamed splits.Split
	s.doRequest(ctx, t, "GET", "/splits/"+split.ID, token, nil, http.StatusOK, &renamed)
	assert.Equal(t, "Push Pull Legs", renamed.Name)

	// activate, check single active
	s.doRequest(ctx, t, "POST", "/splits/"+split.ID+"/activate", token, nil, http.StatusOK, nil)

	var active splits.Split
	s.doRequest(ctx, t, "GET", "/splits/active", token, nil, http.StatusOK, &active)
	assert.Equal(t, split.ID, active.ID)
	assert.True(t, active.IsActive)

	// activating another split steals the active flag
	other := s.createSplit(ctx, token, gofakeit.HipsterWord(), 2)
	s.doRequest(ctx, t, "POST", "/splits/"+other.ID+"/activate", token, nil, http.StatusOK, nil)

	s.doRequest(ctx, t, "GET", "/splits/active", token, nil, http.StatusOK, &active)
	assert.Equal(t, other.ID, active.ID)

	var activeCount int
	require.NoError(t, s.DB.QueryRow("SELECT COUNT(*) FROM split WHERE is_active = TRUE").Scan(&activeCount))
	assert.Equal(t, 1, activeCount)

	// delete, gone afterwards
	s.doRequest(ctx, t, "DELETE", "/splits/"+split.ID, token, nil, http.StatusOK, nil)
	s.doRequest(ctx, t, "GET", "/splits/"+split.ID, token, nil, http.StatusNotFound, nil)
}

func (s *IntegrationTestSuite) TestExercisesAndSets() {
	t := s.T()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	token := doLogin(ctx, t)

	split := s.createSplit(ctx, token, gofakeit.HipsterWord(), 2)
	day := split.Days[0]

	var first splits.AddExerciseResponse
	s.doRequest(
		ctx, t,
		"POST", "/days/"+day.ID+"/exercises", token,
		splits.AddExerciseRequest{Name: "Bench Press", RepGoal: "8-12", MuscleGroup: "chest"},
		http.StatusCreated, &first,
	)
	require.True(t, first.Created)
	assert.Equal(t, 1, first.Exercise.ExerciseOrder)
	// range goals survive as-is
	assert.Equal(t, "8-12", first.Exercise.RepGoal)

	var second splits.AddExerciseResponse
	s.doRequest(
		ctx, t,
		"POST", "/days/"+day.ID+"/exercises", token,
		splits.AddExerciseRequest{Name: "Incline Press", RepGoal: "10", MuscleGroup: "chest"},
		http.StatusCreated, &second,
	)
	assert.Equal(t, 2, second.Exercise.ExerciseOrder)

	// adding the same exercise name again is a soft no-op
	var dup splits.AddExerciseResponse
	s.doRequest(
		ctx, t,
		"POST", "/days/"+day.ID+"/exercises", token,
		splits.AddExerciseRequest{Name: "Bench Press", RepGoal: "8-12", MuscleGroup: "chest"},
		http.StatusOK, &dup,
	)
	assert.False(t, dup.Created)
	assert.Equal(t, first.Exercise.ID, dup.Exercise.ID)

	// unknown day
	s.doRequest(
		ctx, t,
		"POST", "/days/unknown-day-id/exercises", token,
		splits.AddExerciseRequest{Name: "Squat", RepGoal: "5", MuscleGroup: "quads"},
		http.StatusNotFound, nil,
	)

	// unknown exercise
	s.doRequest(
		ctx, t,
		"POST", "/exercises/unknown-exercise-id/sets", token,
		splits.AddSetParams{Weight: 60, Reps: 10},
		http.StatusNotFound, nil,
	)

	// log a set against the first exercise
	var set splits.Set
	s.doRequest(
		ctx, t,
		"POST", "/exercises/"+first.Exercise.ID+"/sets", token,
		splits.AddSetParams{Weight: 82.5, Reps: 8},
		http.StatusCreated, &set,
	)
	require.NotEmpty(t, set.ID)
	assert.Equal(t, 82.5, set.Weight)
	assert.NotEmpty(t, set.Time)

	// mark done, next undone exercise of the day comes back
	var done splits.ExerciseDoneResponse
	s.doRequest(ctx, t, "POST", "/exercises/"+first.Exercise.ID+"/done", token, nil, http.StatusOK, &done)
	require.True(t, done.Exercise.Done)
	require.NotNil(t, done.Next)
	assert.Equal(t, second.Exercise.ID, done.Next.ID)

	var lastDone splits.ExerciseDoneResponse
	s.doRequest(ctx, t, "POST", "/exercises/"+second.Exercise.ID+"/done", token, nil, http.StatusOK, &lastDone)
	assert.Nil(t, lastDone.Next)

	// sets come back with the split graph
	var full splits.Split
	s.doRequest(ctx, t, "GET", "/splits/"+split.ID, token, nil, http.StatusOK, &full)
	require.Len(t, full.Days[0].Exercises, 2)
	assert.Len(t, full.Days[0].Exercises[0].Sets, 1)
}

func (s *IntegrationTestSuite) TestDayCursor() {
	t := s.T()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	token := doLogin(ctx, t)

	split := s.createSplit(ctx, token, fmt.Sprintf("cursor %s", gofakeit.HipsterWord()), 4)
	s.doRequest(ctx, t, "POST", "/splits/"+split.ID+"/activate", token, nil, http.StatusOK, nil)

	// activation resets the cursor to the first day
	var cursor settings.DayCursor
	s.doRequest(ctx, t, "GET", "/splits/cursor", token, nil, http.StatusOK, &cursor)
	assert.Equal(t, 1, cursor.Cursor)

	// same-day advance is a no-op
	s.doRequest(ctx, t, "POST", "/splits/cursor/advance", token, nil, http.StatusOK, &cursor)
	assert.Equal(t, 1, cursor.Cursor)
}
