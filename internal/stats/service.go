// Package stats maintains the per muscle group set totals and the
// vector feeding the muscle group chart.
package stats

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/gymly/backend/internal/splits"
	"github.com/gymly/backend/internal/telemetry/tracing"

	"github.com/coocood/freecache"
	log "github.com/sirupsen/logrus"
)

const (
	chartCacheKey        = "musclegroups-chart"
	chartCacheExpireSecs = 5 * 60

	// a bar never drops below this share of the tallest bar,
	// so small groups stay visible on the chart
	chartMinShare = 0.2
)

type statsRepo interface {
	AddCompletedExercise(ctx context.Context, exerciseID, muscleGroup string, setCount int) (bool, error)
	Totals(ctx context.Context) ([]MuscleGroupTotal, error)
}

// ChartData holds one entry per muscle group, in the fixed
// chart order, raw alongside displayed values. OverallMax is the
// true pre-floor maximum, it scales the chart's outer ring.
type ChartData struct {
	Labels     []string  `json:"labels"`
	Raw        []int     `json:"raw"`
	Displayed  []float64 `json:"displayed"`
	OverallMax int       `json:"overallMax"`
}

type Service struct {
	repo  statsRepo
	cache *freecache.Cache
}

func NewService(repo statsRepo) *Service {
	return &Service{
		repo:  repo,
		cache: freecache.NewCache(1024 * 1024),
	}
}

// RecordExerciseDone counts the completed exercise towards its muscle
// group total. Counting the same exercise twice is a no-op.
func (s *Service) RecordExerciseDone(ctx context.Context, exercise splits.Exercise) error {
	counted, err := s.repo.AddCompletedExercise(ctx, exercise.ID, exercise.MuscleGroup.String(), len(exercise.Sets))
	if err != nil {
		return fmt.Errorf("add completed exercise: %w", err)
	}
	if !counted {
		log.Tracef("exercise %s already counted, skipping", exercise.ID)
		return nil
	}

	s.cache.Del([]byte(chartCacheKey))
	return nil
}

func (s *Service) Totals(ctx context.Context) ([]MuscleGroupTotal, error) {
	return s.repo.Totals(ctx)
}

// Chart returns the muscle group chart vector. Every known muscle
// group appears, zero or not, always in the same order.
func (s *Service) Chart(ctx context.Context) (*ChartData, error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "stats.chart")
	defer span.End()

	if cached, err := s.cache.Get([]byte(chartCacheKey)); err == nil {
		var chart ChartData
		if err := json.Unmarshal(cached, &chart); err == nil {
			span.AddEvent("chart taken from cache")
			return &chart, nil
		}
		log.Errorf("unmarshal cached chart: %s", err)
	}

	totals, err := s.repo.Totals(ctx)
	if err != nil {
		return nil, fmt.Errorf("get totals: %w", err)
	}

	chart := buildChart(totals)

	chartJson, err := json.Marshal(chart)
	if err != nil {
		log.Errorf("marshal chart for cache: %s", err)
	} else if err := s.cache.Set([]byte(chartCacheKey), chartJson, chartCacheExpireSecs); err != nil {
		log.Errorf("cache chart: %s", err)
	}

	return chart, nil
}

func buildChart(totals []MuscleGroupTotal) *ChartData {
	countFor := make(map[string]int, len(totals))
	for _, t := range totals {
		countFor[t.MuscleGroup] = t.SetCount
	}

	chart := &ChartData{
		Labels:    make([]string, 0, len(splits.AllMuscleGroups)),
		Raw:       make([]int, 0, len(splits.AllMuscleGroups)),
		Displayed: make([]float64, 0, len(splits.AllMuscleGroups)),
	}

	max := 0
	for _, group := range splits.AllMuscleGroups {
		if count := countFor[group.String()]; count > max {
			max = count
		}
	}
	chart.OverallMax = max

	// purely a legibility floor, no axis ever collapses to zero
	floor := float64(max) * chartMinShare
	if floor < 1.0 {
		floor = 1.0
	}

	for _, group := range splits.AllMuscleGroups {
		raw := countFor[group.String()]
		displayed := float64(raw)
		if displayed < floor {
			displayed = floor
		}
		chart.Labels = append(chart.Labels, group.String())
		chart.Raw = append(chart.Raw, raw)
		chart.Displayed = append(chart.Displayed, displayed)
	}

	return chart
}
