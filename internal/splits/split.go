package splits

import "time"

// Split is a named, repeating cycle of training days. At most one split
// is active at any time - activating one deactivates all others.
type Split struct {
	ID        string        `json:"id"`
	Name      string        `json:"name"`
	IsActive  bool          `json:"isActive"`
	StartDate time.Time     `json:"startDate"`
	CreatedAt time.Time     `json:"createdAt"`
	Days      []DayTemplate `json:"days"`
}

// DayTemplate is one position in a split's cycle, holding the planned
// exercises. It is the mutable, live counterpart of history.DayRecord.
type DayTemplate struct {
	ID         string     `json:"id"`
	SplitID    string     `json:"splitId"`
	Name       string     `json:"name"`
	DayOfSplit int        `json:"dayOfSplit"` // 1-based position, unique within the split
	Exercises  []Exercise `json:"exercises"`
}

type Exercise struct {
	ID            string      `json:"id"`
	DayID         string      `json:"dayId"`
	Name          string      `json:"name"`
	RepGoal       string      `json:"repGoal"`
	MuscleGroup   MuscleGroup `json:"muscleGroup"`
	CreatedAt     time.Time   `json:"createdAt"`
	CompletedAt   *time.Time  `json:"completedAt,omitempty"`
	ExerciseOrder int         `json:"exerciseOrder"` // append-only, unique within the day
	Done          bool        `json:"done"`
	Sets          []Set       `json:"sets"`
}

// Set is one performed repetition block. Sets are displayed ordered by
// CreatedAt, not by insertion order.
type Set struct {
	ID         string    `json:"id"`
	ExerciseID string    `json:"exerciseId"`
	Weight     float64   `json:"weight"`
	Reps       int       `json:"reps"`
	Failure    bool      `json:"failure"`
	WarmUp     bool      `json:"warmUp"`
	RestPause  bool      `json:"restPause"`
	DropSet    bool      `json:"dropSet"`
	BodyWeight bool      `json:"bodyWeight"`
	Note       string    `json:"note"`
	CreatedAt  time.Time `json:"createdAt"`
	Time       string    `json:"time"` // display time string, e.g. "18:45"
}

// MuscleGroup classifies an exercise for aggregation and charting.
type MuscleGroup string

const (
	MuscleGroupChest      MuscleGroup = "chest"
	MuscleGroupBack       MuscleGroup = "back"
	MuscleGroupShoulders  MuscleGroup = "shoulders"
	MuscleGroupBiceps     MuscleGroup = "biceps"
	MuscleGroupTriceps    MuscleGroup = "triceps"
	MuscleGroupForearms   MuscleGroup = "forearms"
	MuscleGroupAbs        MuscleGroup = "abs"
	MuscleGroupQuads      MuscleGroup = "quads"
	MuscleGroupHamstrings MuscleGroup = "hamstrings"
	MuscleGroupCalves     MuscleGroup = "calves"
)

// AllMuscleGroups is the canonical, fixed chart order of the muscle groups.
var AllMuscleGroups = []MuscleGroup{
	MuscleGroupChest,
	MuscleGroupBack,
	MuscleGroupShoulders,
	MuscleGroupBiceps,
	MuscleGroupTriceps,
	MuscleGroupForearms,
	MuscleGroupAbs,
	MuscleGroupQuads,
	MuscleGroupHamstrings,
	MuscleGroupCalves,
}

func (mg MuscleGroup) String() string {
	return string(mg)
}

func (mg MuscleGroup) IsValid() bool {
	for _, known := range AllMuscleGroups {
		if mg == known {
			return true
		}
	}
	return false
}
