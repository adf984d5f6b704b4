package splits

import (
	"context"
	"sync"
	"time"

	"github.com/gymly/backend/internal/settings"
)

// in-memory repo used by service tests
type repoMock struct {
	mu     sync.Mutex
	splits map[string]*Split
}

func newRepoMock() *repoMock {
	return &repoMock{
		splits: make(map[string]*Split),
	}
}

func (m *repoMock) Add(_ context.Context, split *Split) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.splits[split.ID] = split
	return nil
}

func (m *repoMock) InsertGraph(ctx context.Context, split *Split) error {
	return m.Add(ctx, split)
}

func (m *repoMock) Get(_ context.Context, id string) (*Split, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.splits[id]
	if !ok {
		return nil, ErrSplitNotFound
	}
	return s, nil
}

func (m *repoMock) GetActive(_ context.Context) (*Split, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, s := range m.splits {
		if s.IsActive {
			return s, nil
		}
	}
	return nil, ErrSplitNotFound
}

func (m *repoMock) List(_ context.Context) ([]Split, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	list := make([]Split, 0, len(m.splits))
	for _, s := range m.splits {
		list = append(list, *s)
	}
	return list, nil
}

func (m *repoMock) Rename(_ context.Context, id, name string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.splits[id]
	if !ok {
		return ErrSplitNotFound
	}
	s.Name = name
	return nil
}

func (m *repoMock) Delete(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.splits[id]; !ok {
		return ErrSplitNotFound
	}
	delete(m.splits, id)
	return nil
}

func (m *repoMock) Activate(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	target, ok := m.splits[id]
	if !ok {
		return ErrSplitNotFound
	}
	for _, s := range m.splits {
		s.IsActive = false
	}
	target.IsActive = true
	return nil
}

func (m *repoMock) GetDay(_ context.Context, dayID string) (*DayTemplate, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, s := range m.splits {
		for i := range s.Days {
			if s.Days[i].ID == dayID {
				return &s.Days[i], nil
			}
		}
	}
	return nil, ErrDayNotFound
}

func (m *repoMock) AddExercise(_ context.Context, dayID string, exercise *Exercise) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, s := range m.splits {
		for i := range s.Days {
			if s.Days[i].ID != dayID {
				continue
			}
			for _, ex := range s.Days[i].Exercises {
				if ex.Name == exercise.Name {
					return ErrExerciseNameTaken
				}
			}
			exercise.ExerciseOrder = len(s.Days[i].Exercises) + 1
			exercise.DayID = dayID
			s.Days[i].Exercises = append(s.Days[i].Exercises, *exercise)
			return nil
		}
	}
	return ErrDayNotFound
}

func (m *repoMock) GetExercise(_ context.Context, id string) (*Exercise, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	ex := m.findExercise(id)
	if ex == nil {
		return nil, ErrExerciseNotFound
	}
	return ex, nil
}

func (m *repoMock) DeleteExercise(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, s := range m.splits {
		for i := range s.Days {
			for j := range s.Days[i].Exercises {
				if s.Days[i].Exercises[j].ID == id {
					s.Days[i].Exercises = append(s.Days[i].Exercises[:j], s.Days[i].Exercises[j+1:]...)
					return nil
				}
			}
		}
	}
	return ErrExerciseNotFound
}

func (m *repoMock) MarkExerciseDone(_ context.Context, id string, completedAt time.Time) (*Exercise, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	ex := m.findExercise(id)
	if ex == nil {
		return nil, ErrExerciseNotFound
	}
	ex.Done = true
	ex.CompletedAt = &completedAt
	return ex, nil
}

func (m *repoMock) AddSet(_ context.Context, set *Set) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	ex := m.findExercise(set.ExerciseID)
	if ex == nil {
		return ErrExerciseNotFound
	}
	ex.Sets = append(ex.Sets, *set)
	return nil
}

func (m *repoMock) UpdateSet(_ context.Context, set *Set) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, s := range m.splits {
		for i := range s.Days {
			for j := range s.Days[i].Exercises {
				for k := range s.Days[i].Exercises[j].Sets {
					if s.Days[i].Exercises[j].Sets[k].ID == set.ID {
						s.Days[i].Exercises[j].Sets[k] = *set
						return nil
					}
				}
			}
		}
	}
	return ErrSetNotFound
}

func (m *repoMock) DeleteSet(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, s := range m.splits {
		for i := range s.Days {
			for j := range s.Days[i].Exercises {
				sets := s.Days[i].Exercises[j].Sets
				for k := range sets {
					if sets[k].ID == id {
						s.Days[i].Exercises[j].Sets = append(sets[:k], sets[k+1:]...)
						return nil
					}
				}
			}
		}
	}
	return ErrSetNotFound
}

func (m *repoMock) findExercise(id string) *Exercise {
	for _, s := range m.splits {
		for i := range s.Days {
			for j := range s.Days[i].Exercises {
				if s.Days[i].Exercises[j].ID == id {
					return &s.Days[i].Exercises[j]
				}
			}
		}
	}
	return nil
}

type settingsRepoMock struct {
	mu       sync.Mutex
	cursor   settings.DayCursor
	setCalls int
}

func newSettingsRepoMock(cursor settings.DayCursor) *settingsRepoMock {
	return &settingsRepoMock{cursor: cursor}
}

func (m *settingsRepoMock) GetDayCursor(_ context.Context) (settings.DayCursor, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.cursor, nil
}

func (m *settingsRepoMock) SetDayCursor(_ context.Context, dc settings.DayCursor) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.cursor = dc
	m.setCalls++
	return nil
}

type statsRecorderMock struct {
	mu       sync.Mutex
	recorded []Exercise
	err      error
}

func (m *statsRecorderMock) RecordExerciseDone(_ context.Context, exercise Exercise) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
	m.recorded = append(m.recorded, exercise)
	return nil
}
