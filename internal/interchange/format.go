// Package interchange reads and writes .gymlysplit files, the JSON
// format used to move splits between devices, and backs exported
// splits up to google drive.
package interchange

import "time"

const (
	FileExtension = ".gymlysplit"
	FormatVersion = 1
)

// SplitDocument is the on-disk shape of an exported split. Split, day
// and exercise ids are carried for reference but regenerated on
// import, so importing a file twice yields two independent splits.
// Set ids travel as they are.
type SplitDocument struct {
	Version    int           `json:"version"`
	ExportedAt time.Time     `json:"exportedAt"`
	ID         string        `json:"id,omitempty"`
	Name       string        `json:"name"`
	IsActive   bool          `json:"isActive"`
	StartDate  time.Time     `json:"startDate"`
	Days       []DayDocument `json:"days"`
}

type DayDocument struct {
	ID         string             `json:"id,omitempty"`
	Name       string             `json:"name"`
	DayOfSplit int                `json:"dayOfSplit"`
	Date       string             `json:"date,omitempty"`
	Exercises  []ExerciseDocument `json:"exercises"`
}

type ExerciseDocument struct {
	ID            string        `json:"id,omitempty"`
	Name          string        `json:"name"`
	RepGoal       string        `json:"repGoal"`
	MuscleGroup   string        `json:"muscleGroup"`
	CreatedAt     time.Time     `json:"createdAt"`
	ExerciseOrder int           `json:"exerciseOrder"`
	Done          bool          `json:"done"`
	Sets          []SetDocument `json:"sets"`
}

type SetDocument struct {
	ID         string    `json:"id,omitempty"`
	Weight     float64   `json:"weight"`
	Reps       int       `json:"reps"`
	Failure    bool      `json:"failure,omitempty"`
	WarmUp     bool      `json:"warmUp,omitempty"`
	RestPause  bool      `json:"restPause,omitempty"`
	DropSet    bool      `json:"dropSet,omitempty"`
	BodyWeight bool      `json:"bodyWeight,omitempty"`
	Note       string    `json:"note,omitempty"`
	CreatedAt  time.Time `json:"createdAt"`
	Time       string    `json:"time,omitempty"`
}
