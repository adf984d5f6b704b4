package test

import (
	"context"
	"net/http"
	"net/url"
	"time"

	"github.com/gymly/backend/internal/history"
	"github.com/gymly/backend/internal/splits"
	"github.com/gymly/backend/internal/stats"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// builds a split with one day, one done exercise with a logged set,
// and returns the day id
func (s *IntegrationTestSuite) buildDoneDay(ctx context.Context, token string) (splitID, dayID, exerciseID string) {
	t := s.T()

	split := s.createSplit(ctx, token, gofakeit.HipsterWord(), 1)
	day := split.Days[0]

	var added splits.AddExerciseResponse
	s.doRequest(
		ctx, t,
		"POST", "/days/"+day.ID+"/exercises", token,
		splits.AddExerciseRequest{Name: gofakeit.HipsterWord(), RepGoal: "8-12", MuscleGroup: "back"},
		http.StatusCreated, &added,
	)

	var set splits.Set
	s.doRequest(
		ctx, t,
		"POST", "/exercises/"+added.Exercise.ID+"/sets", token,
		splits.AddSetParams{Weight: 60, Reps: 10},
		http.StatusCreated, &set,
	)

	var done splits.ExerciseDoneResponse
	s.doRequest(ctx, t, "POST", "/exercises/"+added.Exercise.ID+"/done", token, nil, http.StatusOK, &done)

	return split.ID, day.ID, added.Exercise.ID
}

func (s *IntegrationTestSuite) TestWorkoutHistory() {
	t := s.T()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	token := doLogin(ctx, t)
	_, dayID, _ := s.buildDoneDay(ctx, token)

	var workout history.WorkoutLog
	s.doRequest(
		ctx, t,
		"POST", "/history", token,
		history.LogWorkoutRequest{DayID: dayID},
		http.StatusCreated, &workout,
	)
	require.NotEmpty(t, workout.ID)
	require.Len(t, workout.Exercises, 1)
	require.Len(t, workout.Exercises[0].Sets, 1)
	assert.Equal(t, time.Now().Format(history.DateLayout), workout.Date)

	// logged date shows up
	var dates history.DatesListResponse
	s.doRequest(ctx, t, "GET", "/history/dates", token, nil, http.StatusOK, &dates)
	require.NotEmpty(t, dates.Dates)
	assert.Contains(t, dates.Dates, workout.Date)

	// list by date contains the workout, the date carries spaces
	var workouts history.WorkoutsListResponse
	s.doRequest(ctx, t, "GET", "/history?date="+url.QueryEscape(workout.Date), token, nil, http.StatusOK, &workouts)
	found := false
	for _, w := range workouts.Workouts {
		if w.ID == workout.ID {
			found = true
		}
	}
	assert.True(t, found)

	// snapshot is frozen, the template exercise can change afterwards
	var fetched history.WorkoutLog
	s.doRequest(ctx, t, "GET", "/history/"+workout.ID, token, nil, http.StatusOK, &fetched)
	assert.Equal(t, workout.Exercises[0].Name, fetched.Exercises[0].Name)

	// delete the workout
	var deleted history.DeletedWorkoutResponse
	s.doRequest(ctx, t, "DELETE", "/history/"+workout.ID, token, nil, http.StatusOK, &deleted)
	assert.Equal(t, workout.ID, deleted.DeletedID)
	s.doRequest(ctx, t, "GET", "/history/"+workout.ID, token, nil, http.StatusNotFound, nil)
}

func (s *IntegrationTestSuite) TestWorkoutHistory_NothingDone() {
	t := s.T()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	token := doLogin(ctx, t)
	split := s.createSplit(ctx, token, gofakeit.HipsterWord(), 1)

	// a day with no completed exercises cannot be logged
	s.doRequest(
		ctx, t,
		"POST", "/history", token,
		history.LogWorkoutRequest{DayID: split.Days[0].ID},
		http.StatusBadRequest, nil,
	)
}

func (s *IntegrationTestSuite) TestMuscleGroupStats() {
	t := s.T()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	token := doLogin(ctx, t)

	var before stats.TotalsResponse
	s.doRequest(ctx, t, "GET", "/stats/musclegroups", token, nil, http.StatusOK, &before)
	backBefore := 0
	for _, total := range before.Totals {
		if total.MuscleGroup == "back" {
			backBefore = total.SetCount
		}
	}

	_, _, exerciseID := s.buildDoneDay(ctx, token)

	var after stats.TotalsResponse
	s.doRequest(ctx, t, "GET", "/stats/musclegroups", token, nil, http.StatusOK, &after)
	backAfter := 0
	for _, total := range after.Totals {
		if total.MuscleGroup == "back" {
			backAfter = total.SetCount
		}
	}
	assert.Equal(t, backBefore+1, backAfter)

	// marking the same exercise done again does not double count
	s.doRequest(ctx, t, "POST", "/exercises/"+exerciseID+"/done", token, nil, http.StatusOK, nil)

	s.doRequest(ctx, t, "GET", "/stats/musclegroups", token, nil, http.StatusOK, &after)
	backAgain := 0
	for _, total := range after.Totals {
		if total.MuscleGroup == "back" {
			backAgain = total.SetCount
		}
	}
	assert.Equal(t, backAfter, backAgain)

	// chart serves all muscle groups in fixed order
	var chart stats.ChartData
	s.doRequest(ctx, t, "GET", "/stats/musclegroups/chart", token, nil, http.StatusOK, &chart)
	require.Len(t, chart.Labels, len(splits.AllMuscleGroups))
	require.Len(t, chart.Raw, len(chart.Labels))
	require.Len(t, chart.Displayed, len(chart.Labels))
}
