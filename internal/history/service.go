package history

import (
	"context"
	"fmt"
	"time"

	"github.com/gymly/backend/internal/splits"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
)

type historyRepo interface {
	InsertWorkout(ctx context.Context, workout *WorkoutLog) error
	ListDates(ctx context.Context) ([]string, error)
	ListByDate(ctx context.Context, date string) ([]WorkoutLog, error)
	Get(ctx context.Context, id string) (*WorkoutLog, error)
	Delete(ctx context.Context, id string) error
}

type splitsProvider interface {
	GetDay(ctx context.Context, dayID string) (*splits.DayTemplate, error)
	Get(ctx context.Context, id string) (*splits.Split, error)
}

type Service struct {
	repo   historyRepo
	splits splitsProvider
	now    func() time.Time
}

func NewService(repo historyRepo, splitsProvider splitsProvider) *Service {
	return &Service{
		repo:   repo,
		splits: splitsProvider,
		now:    time.Now,
	}
}

// LogWorkout freezes the day's completed exercises into a new workout
// snapshot. Snapshot rows get their own ids, nothing points back at
// the day template.
func (s *Service) LogWorkout(ctx context.Context, dayID string) (*WorkoutLog, error) {
	day, err := s.splits.GetDay(ctx, dayID)
	if err != nil {
		return nil, fmt.Errorf("get day: %w", err)
	}
	split, err := s.splits.Get(ctx, day.SplitID)
	if err != nil {
		return nil, fmt.Errorf("get split: %w", err)
	}

	now := s.now()
	workout := &WorkoutLog{
		ID:         uuid.NewString(),
		Date:       now.Format(DateLayout),
		SplitName:  split.Name,
		DayName:    day.Name,
		DayOfSplit: day.DayOfSplit,
		CreatedAt:  now,
		Exercises:  make([]WorkoutExercise, 0, len(day.Exercises)),
	}

	for _, ex := range day.Exercises {
		if !ex.Done {
			continue
		}
		snapshot := WorkoutExercise{
			ID:            uuid.NewString(),
			WorkoutID:     workout.ID,
			Name:          ex.Name,
			MuscleGroup:   ex.MuscleGroup.String(),
			RepGoal:       ex.RepGoal,
			ExerciseOrder: ex.ExerciseOrder,
			Sets:          make([]WorkoutSet, 0, len(ex.Sets)),
		}
		for _, set := range ex.Sets {
			snapshot.Sets = append(snapshot.Sets, WorkoutSet{
				ID:                uuid.NewString(),
				WorkoutExerciseID: snapshot.ID,
				Weight:            set.Weight,
				Reps:              set.Reps,
				Failure:           set.Failure,
				WarmUp:            set.WarmUp,
				RestPause:         set.RestPause,
				DropSet:           set.DropSet,
				BodyWeight:        set.BodyWeight,
				Note:              set.Note,
				Time:              set.Time,
			})
		}
		workout.Exercises = append(workout.Exercises, snapshot)
	}

	if len(workout.Exercises) == 0 {
		return nil, fmt.Errorf("no completed exercises in day [%s]", day.Name)
	}

	if err := s.repo.InsertWorkout(ctx, workout); err != nil {
		return nil, fmt.Errorf("insert workout: %w", err)
	}

	log.Debugf("workout logged: [%s / %s] on %s, %d exercises", split.Name, day.Name, workout.Date, len(workout.Exercises))

	return workout, nil
}

func (s *Service) ListDates(ctx context.Context) ([]string, error) {
	return s.repo.ListDates(ctx)
}

func (s *Service) ListByDate(ctx context.Context, date string) ([]WorkoutLog, error) {
	return s.repo.ListByDate(ctx, date)
}

func (s *Service) Get(ctx context.Context, id string) (*WorkoutLog, error) {
	return s.repo.Get(ctx, id)
}

func (s *Service) Delete(ctx context.Context, id string) error {
	return s.repo.Delete(ctx, id)
}
