package interchange

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gymly/backend/internal/splits"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
)

type splitsRepo interface {
	Get(ctx context.Context, id string) (*splits.Split, error)
	List(ctx context.Context) ([]splits.Split, error)
	InsertGraph(ctx context.Context, split *splits.Split) error
}

type Service struct {
	repo            splitsRepo
	exportsRootPath string
	now             func() time.Time
}

func NewService(repo splitsRepo, exportsRootPath string) *Service {
	return &Service{
		repo:            repo,
		exportsRootPath: exportsRootPath,
		now:             time.Now,
	}
}

func (s *Service) Export(ctx context.Context, splitID string) (*SplitDocument, error) {
	split, err := s.repo.Get(ctx, splitID)
	if err != nil {
		return nil, err
	}

	doc := &SplitDocument{
		Version:    FormatVersion,
		ExportedAt: s.now(),
		ID:         split.ID,
		Name:       split.Name,
		IsActive:   split.IsActive,
		StartDate:  split.StartDate,
		Days:       make([]DayDocument, 0, len(split.Days)),
	}

	for _, day := range split.Days {
		dayDoc := DayDocument{
			ID:         day.ID,
			Name:       day.Name,
			DayOfSplit: day.DayOfSplit,
			Exercises:  make([]ExerciseDocument, 0, len(day.Exercises)),
		}
		for _, ex := range day.Exercises {
			exDoc := ExerciseDocument{
				ID:            ex.ID,
				Name:          ex.Name,
				RepGoal:       ex.RepGoal,
				MuscleGroup:   ex.MuscleGroup.String(),
				CreatedAt:     ex.CreatedAt,
				ExerciseOrder: ex.ExerciseOrder,
				Done:          ex.Done,
				Sets:          make([]SetDocument, 0, len(ex.Sets)),
			}
			for _, set := range ex.Sets {
				exDoc.Sets = append(exDoc.Sets, SetDocument{
					ID:         set.ID,
					Weight:     set.Weight,
					Reps:       set.Reps,
					Failure:    set.Failure,
					WarmUp:     set.WarmUp,
					RestPause:  set.RestPause,
					DropSet:    set.DropSet,
					BodyWeight: set.BodyWeight,
					Note:       set.Note,
					CreatedAt:  set.CreatedAt,
					Time:       set.Time,
				})
			}
			dayDoc.Exercises = append(dayDoc.Exercises, exDoc)
		}
		doc.Days = append(doc.Days, dayDoc)
	}

	return doc, nil
}

// ExportToFile writes the split document into the exports directory
// and returns the full file path.
func (s *Service) ExportToFile(ctx context.Context, splitID string) (string, error) {
	doc, err := s.Export(ctx, splitID)
	if err != nil {
		return "", err
	}

	docJson, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshal split document: %w", err)
	}

	if err := os.MkdirAll(s.exportsRootPath, 0o755); err != nil {
		return "", fmt.Errorf("create exports dir: %w", err)
	}

	filePath := filepath.Join(s.exportsRootPath, exportFileName(doc.Name))
	if err := os.WriteFile(filePath, docJson, 0o644); err != nil {
		return "", fmt.Errorf("write export file: %w", err)
	}

	log.Debugf("split [%s] exported to %s", doc.Name, filePath)

	return filePath, nil
}

// Import creates a brand new split out of the document. Split, day
// and exercise ids are regenerated, so the same file can be imported
// any number of times without colliding with earlier imports. Set ids
// are kept when the document carries them.
func (s *Service) Import(ctx context.Context, doc *SplitDocument) (*splits.Split, error) {
	if doc.Name == "" {
		return nil, fmt.Errorf("split document has no name")
	}
	if len(doc.Days) == 0 {
		return nil, fmt.Errorf("split document has no days")
	}

	now := s.now()
	startDate := doc.StartDate
	if startDate.IsZero() {
		startDate = now
	}
	split := &splits.Split{
		ID:        uuid.NewString(),
		Name:      doc.Name,
		IsActive:  false,
		StartDate: startDate,
		CreatedAt: now,
		Days:      make([]splits.DayTemplate, 0, len(doc.Days)),
	}

	for _, dayDoc := range doc.Days {
		day := splits.DayTemplate{
			ID:         uuid.NewString(),
			SplitID:    split.ID,
			Name:       dayDoc.Name,
			DayOfSplit: dayDoc.DayOfSplit,
			Exercises:  make([]splits.Exercise, 0, len(dayDoc.Exercises)),
		}
		for _, exDoc := range dayDoc.Exercises {
			muscleGroup := splits.MuscleGroup(exDoc.MuscleGroup)
			if !muscleGroup.IsValid() {
				return nil, fmt.Errorf("exercise [%s]: unknown muscle group [%s]", exDoc.Name, exDoc.MuscleGroup)
			}
			exCreatedAt := exDoc.CreatedAt
			if exCreatedAt.IsZero() {
				exCreatedAt = now
			}
			exercise := splits.Exercise{
				ID:            uuid.NewString(),
				DayID:         day.ID,
				Name:          exDoc.Name,
				RepGoal:       exDoc.RepGoal,
				MuscleGroup:   muscleGroup,
				CreatedAt:     exCreatedAt,
				ExerciseOrder: exDoc.ExerciseOrder,
				Done:          exDoc.Done,
				Sets:          make([]splits.Set, 0, len(exDoc.Sets)),
			}
			for _, setDoc := range exDoc.Sets {
				setID := setDoc.ID
				if setID == "" {
					setID = uuid.NewString()
				}
				// keep the original creation times, sets are displayed ordered by them
				setCreatedAt := setDoc.CreatedAt
				if setCreatedAt.IsZero() {
					setCreatedAt = now
				}
				exercise.Sets = append(exercise.Sets, splits.Set{
					ID:         setID,
					ExerciseID: exercise.ID,
					Weight:     setDoc.Weight,
					Reps:       setDoc.Reps,
					Failure:    setDoc.Failure,
					WarmUp:     setDoc.WarmUp,
					RestPause:  setDoc.RestPause,
					DropSet:    setDoc.DropSet,
					BodyWeight: setDoc.BodyWeight,
					Note:       setDoc.Note,
					CreatedAt:  setCreatedAt,
					Time:       setDoc.Time,
				})
			}
			day.Exercises = append(day.Exercises, exercise)
		}
		split.Days = append(split.Days, day)
	}

	if err := s.repo.InsertGraph(ctx, split); err != nil {
		return nil, fmt.Errorf("insert imported split: %w", err)
	}

	log.Debugf("split [%s] imported: %s, %d days", split.Name, split.ID, len(split.Days))

	return split, nil
}

// ExportAll writes every split to the exports
// directory, for the drive backup run.
func (s *Service) ExportAll(ctx context.Context) ([]string, error) {
	allSplits, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list splits: %w", err)
	}

	paths := make([]string, 0, len(allSplits))
	for _, split := range allSplits {
		path, err := s.ExportToFile(ctx, split.ID)
		if err != nil {
			return paths, fmt.Errorf("export split [%s]: %w", split.Name, err)
		}
		paths = append(paths, path)
	}
	return paths, nil
}

func exportFileName(splitName string) string {
	name := strings.ToLower(splitName)
	name = strings.ReplaceAll(name, " ", "-")
	return name + FileExtension
}
