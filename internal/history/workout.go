// Package history keeps finished workouts as frozen snapshots. A
// logged workout copies everything it needs out of the split day, so
// later edits to the day template never rewrite what was trained.
package history

import "time"

const DateLayout = "2 January 2006"

type WorkoutLog struct {
	ID         string            `json:"id"`
	Date       string            `json:"date"`
	SplitName  string            `json:"splitName"`
	DayName    string            `json:"dayName"`
	DayOfSplit int               `json:"dayOfSplit"`
	CreatedAt  time.Time         `json:"createdAt"`
	Exercises  []WorkoutExercise `json:"exercises"`
}

type WorkoutExercise struct {
	ID            string       `json:"id"`
	WorkoutID     string       `json:"workoutId"`
	Name          string       `json:"name"`
	MuscleGroup   string       `json:"muscleGroup"`
	RepGoal       string       `json:"repGoal"`
	ExerciseOrder int          `json:"exerciseOrder"`
	Sets          []WorkoutSet `json:"sets"`
}

type WorkoutSet struct {
	ID                string  `json:"id"`
	WorkoutExerciseID string  `json:"workoutExerciseId"`
	Weight            float64 `json:"weight"`
	Reps              int     `json:"reps"`
	Failure           bool    `json:"failure"`
	WarmUp            bool    `json:"warmUp"`
	RestPause         bool    `json:"restPause"`
	DropSet           bool    `json:"dropSet"`
	BodyWeight        bool    `json:"bodyWeight"`
	Note              string  `json:"note,omitempty"`
	Time              string  `json:"time,omitempty"`
}
