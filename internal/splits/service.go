package splits

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/gymly/backend/internal/settings"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
)

type splitsRepo interface {
	Add(ctx context.Context, split *Split) error
	InsertGraph(ctx context.Context, split *Split) error
	Get(ctx context.Context, id string) (*Split, error)
	GetActive(ctx context.Context) (*Split, error)
	List(ctx context.Context) ([]Split, error)
	Rename(ctx context.Context, id, name string) error
	Delete(ctx context.Context, id string) error
	Activate(ctx context.Context, id string) error
	GetDay(ctx context.Context, dayID string) (*DayTemplate, error)
	AddExercise(ctx context.Context, dayID string, exercise *Exercise) error
	GetExercise(ctx context.Context, id string) (*Exercise, error)
	DeleteExercise(ctx context.Context, id string) error
	MarkExerciseDone(ctx context.Context, id string, completedAt time.Time) (*Exercise, error)
	AddSet(ctx context.Context, set *Set) error
	UpdateSet(ctx context.Context, set *Set) error
	DeleteSet(ctx context.Context, id string) error
}

type settingsRepo interface {
	GetDayCursor(ctx context.Context) (settings.DayCursor, error)
	SetDayCursor(ctx context.Context, dc settings.DayCursor) error
}

// statsRecorder gets told about every completed exercise, so the
// muscle group totals can be kept up to date.
type statsRecorder interface {
	RecordExerciseDone(ctx context.Context, exercise Exercise) error
}

type Service struct {
	repo     splitsRepo
	settings settingsRepo
	stats    statsRecorder
	now      func() time.Time
}

func NewService(repo splitsRepo, settingsRepo settingsRepo, stats statsRecorder) *Service {
	return &Service{
		repo:     repo,
		settings: settingsRepo,
		stats:    stats,
		now:      time.Now,
	}
}

// NewSplit creates a split with dayCount empty day
// templates, named Day 1 through Day N.
func (s *Service) NewSplit(ctx context.Context, name string, dayCount int) (*Split, error) {
	if dayCount < 1 {
		return nil, errors.New("day count must be positive")
	}

	now := s.now()
	split := &Split{
		ID:        uuid.NewString(),
		Name:      name,
		IsActive:  false,
		StartDate: now,
		CreatedAt: now,
		Days:      make([]DayTemplate, 0, dayCount),
	}
	for i := 1; i <= dayCount; i++ {
		split.Days = append(split.Days, DayTemplate{
			ID:         uuid.NewString(),
			SplitID:    split.ID,
			Name:       fmt.Sprintf("Day %d", i),
			DayOfSplit: i,
			Exercises:  make([]Exercise, 0),
		})
	}

	if err := s.repo.Add(ctx, split); err != nil {
		return nil, err
	}
	return split, nil
}

func (s *Service) Get(ctx context.Context, id string) (*Split, error) {
	return s.repo.Get(ctx, id)
}

func (s *Service) GetActive(ctx context.Context) (*Split, error) {
	return s.repo.GetActive(ctx)
}

func (s *Service) List(ctx context.Context) ([]Split, error) {
	return s.repo.List(ctx)
}

func (s *Service) Rename(ctx context.Context, id, name string) error {
	return s.repo.Rename(ctx, id, name)
}

func (s *Service) Delete(ctx context.Context, id string) error {
	return s.repo.Delete(ctx, id)
}

// Activate makes the split the single active one and rewinds
// the day cursor to the first day.
func (s *Service) Activate(ctx context.Context, id string) error {
	if err := s.repo.Activate(ctx, id); err != nil {
		return err
	}
	if err := s.settings.SetDayCursor(ctx, settings.DayCursor{
		Cursor:    1,
		UpdatedAt: s.now(),
	}); err != nil {
		return fmt.Errorf("reset day cursor: %w", err)
	}
	return nil
}

type AddExerciseParams struct {
	Name        string
	RepGoal     string
	MuscleGroup MuscleGroup
}

// AddExercise appends a new exercise to the day. Adding a name that is
// already present in the day is a no-op: the existing exercise is
// returned and created is false.
func (s *Service) AddExercise(ctx context.Context, dayID string, params AddExerciseParams) (_ *Exercise, created bool, err error) {
	if params.Name == "" {
		return nil, false, errors.New("exercise name is empty")
	}
	if !params.MuscleGroup.IsValid() {
		return nil, false, fmt.Errorf("unknown muscle group [%s]", params.MuscleGroup)
	}

	exercise := &Exercise{
		ID:          uuid.NewString(),
		DayID:       dayID,
		Name:        params.Name,
		RepGoal:     params.RepGoal,
		MuscleGroup: params.MuscleGroup,
		CreatedAt:   s.now(),
		Sets:        make([]Set, 0),
	}

	err = s.repo.AddExercise(ctx, dayID, exercise)
	if errors.Is(err, ErrExerciseNameTaken) {
		day, getErr := s.repo.GetDay(ctx, dayID)
		if getErr != nil {
			return nil, false, getErr
		}
		for i := range day.Exercises {
			if day.Exercises[i].Name == params.Name {
				return &day.Exercises[i], false, nil
			}
		}
		return nil, false, ErrExerciseNameTaken
	}
	if err != nil {
		return nil, false, err
	}

	return exercise, true, nil
}

func (s *Service) GetExercise(ctx context.Context, id string) (*Exercise, error) {
	return s.repo.GetExercise(ctx, id)
}

func (s *Service) DeleteExercise(ctx context.Context, id string) error {
	return s.repo.DeleteExercise(ctx, id)
}

// MarkExerciseDone completes the exercise, feeds it to the stats
// recorder, and returns it together with the next not yet done
// exercise of the same day (nil when the day is finished).
func (s *Service) MarkExerciseDone(ctx context.Context, id string) (*Exercise, *Exercise, error) {
	exercise, err := s.repo.MarkExerciseDone(ctx, id, s.now())
	if err != nil {
		return nil, nil, err
	}

	if err := s.stats.RecordExerciseDone(ctx, *exercise); err != nil {
		// stats are derived data, completing the exercise still counts
		log.Errorf("record exercise done for stats: %s", err)
	}

	day, err := s.repo.GetDay(ctx, exercise.DayID)
	if err != nil {
		return exercise, nil, nil
	}

	var next *Exercise
	for i := range day.Exercises {
		if !day.Exercises[i].Done {
			next = &day.Exercises[i]
			break
		}
	}

	return exercise, next, nil
}

type AddSetParams struct {
	ExerciseID string  `json:"-"`
	Weight     float64 `json:"weight"`
	Reps       int     `json:"reps"`
	Failure    bool    `json:"failure"`
	WarmUp     bool    `json:"warmUp"`
	RestPause  bool    `json:"restPause"`
	DropSet    bool    `json:"dropSet"`
	BodyWeight bool    `json:"bodyWeight"`
	Note       string  `json:"note"`
}

func (s *Service) AddSet(ctx context.Context, params AddSetParams) (*Set, error) {
	if _, err := s.repo.GetExercise(ctx, params.ExerciseID); err != nil {
		return nil, err
	}

	now := s.now()
	set := &Set{
		ID:         uuid.NewString(),
		ExerciseID: params.ExerciseID,
		Weight:     params.Weight,
		Reps:       params.Reps,
		Failure:    params.Failure,
		WarmUp:     params.WarmUp,
		RestPause:  params.RestPause,
		DropSet:    params.DropSet,
		BodyWeight: params.BodyWeight,
		Note:       params.Note,
		CreatedAt:  now,
		Time:       now.Format("15:04"),
	}
	if err := s.repo.AddSet(ctx, set); err != nil {
		return nil, err
	}
	return set, nil
}

func (s *Service) UpdateSet(ctx context.Context, set *Set) error {
	return s.repo.UpdateSet(ctx, set)
}

func (s *Service) DeleteSet(ctx context.Context, id string) error {
	return s.repo.DeleteSet(ctx, id)
}
