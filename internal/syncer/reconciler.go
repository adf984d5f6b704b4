package syncer

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/gymly/backend/internal/history"
	"github.com/gymly/backend/internal/splits"
	"github.com/gymly/backend/internal/telemetry/tracing"
	"github.com/gymly/backend/internal/weights"

	log "github.com/sirupsen/logrus"
	"go.uber.org/multierr"
)

type splitsRepo interface {
	List(ctx context.Context) ([]splits.Split, error)
	InsertGraph(ctx context.Context, split *splits.Split) error
}

type historyRepo interface {
	ListAll(ctx context.Context) ([]history.WorkoutLog, error)
	InsertWorkout(ctx context.Context, workout *history.WorkoutLog) error
}

type weightsRepo interface {
	List(ctx context.Context) ([]weights.WeightPoint, error)
	Upsert(ctx context.Context, point *weights.WeightPoint) error
}

type syncSettings interface {
	SyncEnabled(ctx context.Context) (bool, error)
	SetSyncEnabled(ctx context.Context, enabled bool) error
}

// SyncReport says what a pull or push actually moved. Skipped is true
// when sync is switched off and nothing was attempted.
type SyncReport struct {
	Skipped  bool `json:"skipped"`
	Pulled   int  `json:"pulled"`
	Pushed   int  `json:"pushed"`
	Failures int  `json:"failures"`
}

type Reconciler struct {
	store    DocumentStore
	splits   splitsRepo
	history  historyRepo
	weights  weightsRepo
	settings syncSettings
}

func NewReconciler(
	store DocumentStore,
	splitsRepo splitsRepo,
	historyRepo historyRepo,
	weightsRepo weightsRepo,
	settings syncSettings,
) *Reconciler {
	return &Reconciler{
		store:    store,
		splits:   splitsRepo,
		history:  historyRepo,
		weights:  weightsRepo,
		settings: settings,
	}
}

// Pull fetches remote documents and inserts the ones missing locally.
// Local data is never overwritten or deleted. A document that fails
// to decode or insert is skipped, the rest of the batch still lands,
// and the failures come back as one combined error.
func (r *Reconciler) Pull(ctx context.Context) (_ SyncReport, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "syncer.pull")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	enabled, err := r.settings.SyncEnabled(ctx)
	if err != nil {
		return SyncReport{}, fmt.Errorf("check sync enabled: %w", err)
	}
	if !enabled {
		log.Debugf("sync pull skipped, sync disabled")
		return SyncReport{Skipped: true}, nil
	}

	var report SyncReport
	var errs error

	pulled, pullErrs := r.pullSplits(ctx)
	report.Pulled += pulled
	errs = multierr.Append(errs, pullErrs)

	pulled, pullErrs = r.pullWorkouts(ctx)
	report.Pulled += pulled
	errs = multierr.Append(errs, pullErrs)

	pulled, pullErrs = r.pullWeights(ctx)
	report.Pulled += pulled
	errs = multierr.Append(errs, pullErrs)

	report.Failures = len(multierr.Errors(errs))
	log.Debugf("sync pull done: %d pulled, %d failures", report.Pulled, report.Failures)

	return report, errs
}

func (r *Reconciler) pullSplits(ctx context.Context) (int, error) {
	docs, err := r.store.List(ctx, CollectionSplits)
	if err != nil {
		return 0, fmt.Errorf("list remote splits: %w", err)
	}

	localSplits, err := r.splits.List(ctx)
	if err != nil {
		return 0, fmt.Errorf("list local splits: %w", err)
	}
	localIDs := make(map[string]bool, len(localSplits))
	for _, s := range localSplits {
		localIDs[s.ID] = true
	}

	var errs error
	pulled := 0
	for id, doc := range docs {
		if localIDs[id] {
			continue
		}
		var split splits.Split
		if err := json.Unmarshal(doc, &split); err != nil {
			errs = multierr.Append(errs, fmt.Errorf("decode remote split %s: %w", id, err))
			continue
		}
		// an incoming split never steals the active flag
		split.IsActive = false
		if err := r.splits.InsertGraph(ctx, &split); err != nil {
			errs = multierr.Append(errs, fmt.Errorf("insert remote split %s: %w", id, err))
			continue
		}
		pulled++
	}
	return pulled, errs
}

func (r *Reconciler) pullWorkouts(ctx context.Context) (int, error) {
	docs, err := r.store.List(ctx, CollectionWorkouts)
	if err != nil {
		return 0, fmt.Errorf("list remote workouts: %w", err)
	}

	localWorkouts, err := r.history.ListAll(ctx)
	if err != nil {
		return 0, fmt.Errorf("list local workouts: %w", err)
	}
	localIDs := make(map[string]bool, len(localWorkouts))
	for _, w := range localWorkouts {
		localIDs[w.ID] = true
	}

	var errs error
	pulled := 0
	for id, doc := range docs {
		if localIDs[id] {
			continue
		}
		var workout history.WorkoutLog
		if err := json.Unmarshal(doc, &workout); err != nil {
			errs = multierr.Append(errs, fmt.Errorf("decode remote workout %s: %w", id, err))
			continue
		}
		if err := r.history.InsertWorkout(ctx, &workout); err != nil {
			errs = multierr.Append(errs, fmt.Errorf("insert remote workout %s: %w", id, err))
			continue
		}
		pulled++
	}
	return pulled, errs
}

func (r *Reconciler) pullWeights(ctx context.Context) (int, error) {
	docs, err := r.store.List(ctx, CollectionWeights)
	if err != nil {
		return 0, fmt.Errorf("list remote weights: %w", err)
	}

	localPoints, err := r.weights.List(ctx)
	if err != nil {
		return 0, fmt.Errorf("list local weights: %w", err)
	}
	// a weight point's identity is its date, ids differ across devices
	localDates := make(map[string]bool, len(localPoints))
	for _, p := range localPoints {
		localDates[p.Date] = true
	}

	var errs error
	pulled := 0
	for id, doc := range docs {
		var point weights.WeightPoint
		if err := json.Unmarshal(doc, &point); err != nil {
			errs = multierr.Append(errs, fmt.Errorf("decode remote weight point %s: %w", id, err))
			continue
		}
		if localDates[point.Date] {
			continue
		}
		if err := r.weights.Upsert(ctx, &point); err != nil {
			errs = multierr.Append(errs, fmt.Errorf("insert remote weight point %s: %w", id, err))
			continue
		}
		pulled++
	}
	return pulled, errs
}

// Push uploads every local document to the remote store. Upserts are
// unconditional, remote copies of known ids simply get rewritten.
func (r *Reconciler) Push(ctx context.Context) (_ SyncReport, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "syncer.push")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	enabled, err := r.settings.SyncEnabled(ctx)
	if err != nil {
		return SyncReport{}, fmt.Errorf("check sync enabled: %w", err)
	}
	if !enabled {
		log.Debugf("sync push skipped, sync disabled")
		return SyncReport{Skipped: true}, nil
	}

	var report SyncReport
	var errs error

	localSplits, err := r.splits.List(ctx)
	if err != nil {
		errs = multierr.Append(errs, fmt.Errorf("list local splits: %w", err))
	} else {
		for i := range localSplits {
			if err := r.pushDoc(ctx, CollectionSplits, localSplits[i].ID, localSplits[i]); err != nil {
				errs = multierr.Append(errs, err)
				continue
			}
			report.Pushed++
		}
	}

	localWorkouts, err := r.history.ListAll(ctx)
	if err != nil {
		errs = multierr.Append(errs, fmt.Errorf("list local workouts: %w", err))
	} else {
		for i := range localWorkouts {
			if err := r.pushDoc(ctx, CollectionWorkouts, localWorkouts[i].ID, localWorkouts[i]); err != nil {
				errs = multierr.Append(errs, err)
				continue
			}
			report.Pushed++
		}
	}

	localPoints, err := r.weights.List(ctx)
	if err != nil {
		errs = multierr.Append(errs, fmt.Errorf("list local weights: %w", err))
	} else {
		for i := range localPoints {
			if err := r.pushDoc(ctx, CollectionWeights, localPoints[i].ID, localPoints[i]); err != nil {
				errs = multierr.Append(errs, err)
				continue
			}
			report.Pushed++
		}
	}

	report.Failures = len(multierr.Errors(errs))
	log.Debugf("sync push done: %d pushed, %d failures", report.Pushed, report.Failures)

	return report, errs
}

func (r *Reconciler) pushDoc(ctx context.Context, collection, id string, doc any) error {
	docJson, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("marshal %s/%s: %w", collection, id, err)
	}
	if err := r.store.Put(ctx, collection, id, docJson); err != nil {
		return fmt.Errorf("push %s/%s: %w", collection, id, err)
	}
	return nil
}

// FullSync pulls first so new remote data is merged in, then pushes
// the merged state back out.
func (r *Reconciler) FullSync(ctx context.Context) (SyncReport, error) {
	pullReport, pullErr := r.Pull(ctx)
	if pullReport.Skipped {
		return pullReport, pullErr
	}

	pushReport, pushErr := r.Push(ctx)

	return SyncReport{
		Pulled:   pullReport.Pulled,
		Pushed:   pushReport.Pushed,
		Failures: pullReport.Failures + pushReport.Failures,
	}, multierr.Append(pullErr, pushErr)
}

func (r *Reconciler) Enabled(ctx context.Context) (bool, error) {
	return r.settings.SyncEnabled(ctx)
}

func (r *Reconciler) SetEnabled(ctx context.Context, enabled bool) error {
	return r.settings.SetSyncEnabled(ctx, enabled)
}
