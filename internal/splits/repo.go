package splits

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/gymly/backend/internal/telemetry/tracing"
	"github.com/gymly/backend/pkg"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.opentelemetry.io/otel/attribute"
)

var (
	ErrSplitNotFound    = errors.New("split not found")
	ErrDayNotFound      = errors.New("day not found")
	ErrExerciseNotFound = errors.New("exercise not found")
	ErrSetNotFound      = errors.New("set not found")
	// ErrExerciseNameTaken signals the soft per-day name uniqueness guard.
	ErrExerciseNameTaken = errors.New("exercise with that name already exists in this day")
)

type Repo struct {
	db *pgxpool.Pool
}

func NewRepo(db *pgxpool.Pool) *Repo {
	return &Repo{
		db: db,
	}
}

// Add persists a new split together with its pre-populated day templates.
func (r *Repo) Add(ctx context.Context, split *Split) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.splits.add")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.String("split.id", split.ID))

	return r.insertGraph(ctx, split)
}

// InsertGraph inserts a full split graph (split, days, exercises, sets)
// in a single transaction. Used by import and by the sync merge, where
// the ids are already decided by the caller.
func (r *Repo) InsertGraph(ctx context.Context, split *Split) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.splits.insertgraph")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.String("split.id", split.ID))

	return r.insertGraph(ctx, split)
}

func (r *Repo) insertGraph(ctx context.Context, split *Split) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer func() {
		_ = tx.Rollback(ctx)
	}()

	if _, err := tx.Exec(
		ctx,
		`INSERT INTO split (id, name, is_active, start_date, created_at) VALUES ($1, $2, $3, $4, $5);`,
		split.ID, split.Name, split.IsActive, split.StartDate, split.CreatedAt,
	); err != nil {
		return fmt.Errorf("insert split: %w", err)
	}

	for _, day := range split.Days {
		if _, err := tx.Exec(
			ctx,
			`INSERT INTO day (id, split_id, name, day_of_split) VALUES ($1, $2, $3, $4);`,
			day.ID, split.ID, day.Name, day.DayOfSplit,
		); err != nil {
			return fmt.Errorf("insert day %d: %w", day.DayOfSplit, err)
		}

		for _, ex := range day.Exercises {
			if err := insertExerciseTx(ctx, tx, day.ID, ex); err != nil {
				return err
			}
		}
	}

	return tx.Commit(ctx)
}

func insertExerciseTx(ctx context.Context, tx pgx.Tx, dayID string, ex Exercise) error {
	if _, err := tx.Exec(
		ctx,
		`INSERT INTO exercise
				(id, day_id, name, rep_goal, muscle_group, created_at, completed_at, exercise_order, done)
				VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9);`,
		ex.ID, dayID, ex.Name, ex.RepGoal, ex.MuscleGroup.String(),
		ex.CreatedAt, ex.CompletedAt, ex.ExerciseOrder, ex.Done,
	); err != nil {
		return fmt.Errorf("insert exercise [%s]: %w", ex.Name, err)
	}

	for _, set := range ex.Sets {
		if _, err := tx.Exec(
			ctx,
			`INSERT INTO exercise_set
					(id, exercise_id, weight, reps, failure, warmup, rest_pause, drop_set, body_weight, note, created_at, display_time)
					VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12);`,
			set.ID, ex.ID, set.Weight, set.Reps, set.Failure, set.WarmUp,
			set.RestPause, set.DropSet, set.BodyWeight, set.Note, set.CreatedAt, set.Time,
		); err != nil {
			return fmt.Errorf("insert set for exercise [%s]: %w", ex.Name, err)
		}
	}

	return nil
}

func (r *Repo) Get(ctx context.Context, id string) (_ *Split, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.splits.get")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.String("split.id", id))

	allSplits, err := r.list(ctx, "s.id = $1", id)
	if err != nil {
		return nil, err
	}
	if len(allSplits) != 1 {
		return nil, ErrSplitNotFound
	}
	return &allSplits[0], nil
}

// GetActive returns the single currently active split,
// or ErrSplitNotFound when no split is active.
func (r *Repo) GetActive(ctx context.Context) (_ *Split, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.splits.getactive")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	activeSplits, err := r.list(ctx, "s.is_active = TRUE")
	if err != nil {
		return nil, err
	}
	if len(activeSplits) != 1 {
		return nil, ErrSplitNotFound
	}
	return &activeSplits[0], nil
}

func (r *Repo) List(ctx context.Context) (_ []Split, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.splits.list")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	return r.list(ctx, "TRUE")
}

func (r *Repo) ListIDs(ctx context.Context) (_ []string, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.splits.listids")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	rows, err := r.db.Query(ctx, `SELECT id FROM split;`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	ids := make([]string, 0)
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

func (r *Repo) list(ctx context.Context, where string, args ...any) ([]Split, error) {
	rows, err := r.db.Query(
		ctx,
		fmt.Sprintf(`SELECT s.id, s.name, s.is_active, s.start_date, s.created_at
				FROM split s WHERE %s ORDER BY s.created_at;`, where),
		args...,
	)
	if err != nil {
		return nil, fmt.Errorf("query splits: %w", err)
	}
	defer rows.Close()

	splitsList := make([]Split, 0)
	splitIndex := map[string]int{}
	for rows.Next() {
		var s Split
		if err := rows.Scan(&s.ID, &s.Name, &s.IsActive, &s.StartDate, &s.CreatedAt); err != nil {
			return nil, err
		}
		s.Days = make([]DayTemplate, 0)
		splitIndex[s.ID] = len(splitsList)
		splitsList = append(splitsList, s)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if len(splitsList) == 0 {
		return splitsList, nil
	}

	days, err := r.daysForSplits(ctx, where, args...)
	if err != nil {
		return nil, err
	}
	for _, day := range days {
		i, ok := splitIndex[day.SplitID]
		if !ok {
			continue
		}
		splitsList[i].Days = append(splitsList[i].Days, day)
	}

	return splitsList, nil
}

func (r *Repo) daysForSplits(ctx context.Context, where string, args ...any) ([]DayTemplate, error) {
	rows, err := r.db.Query(
		ctx,
		fmt.Sprintf(`SELECT d.id, d.split_id, d.name, d.day_of_split
				FROM day d JOIN split s ON d.split_id = s.id
				WHERE %s ORDER BY d.day_of_split;`, where),
		args...,
	)
	if err != nil {
		return nil, fmt.Errorf("query days: %w", err)
	}
	defer rows.Close()

	days := make([]DayTemplate, 0)
	dayIndex := map[string]int{}
	for rows.Next() {
		var d DayTemplate
		if err := rows.Scan(&d.ID, &d.SplitID, &d.Name, &d.DayOfSplit); err != nil {
			return nil, err
		}
		d.Exercises = make([]Exercise, 0)
		dayIndex[d.ID] = len(days)
		days = append(days, d)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if len(days) == 0 {
		return days, nil
	}

	exRows, err := r.db.Query(
		ctx,
		fmt.Sprintf(`SELECT e.id, e.day_id, e.name, e.rep_goal, e.muscle_group, e.created_at, e.completed_at, e.exercise_order, e.done
				FROM exercise e
				JOIN day d ON e.day_id = d.id
				JOIN split s ON d.split_id = s.id
				WHERE %s ORDER BY e.exercise_order;`, where),
		args...,
	)
	if err != nil {
		return nil, fmt.Errorf("query exercises: %w", err)
	}
	defer exRows.Close()

	exercises, err := rows2exercises(exRows)
	if err != nil {
		return nil, err
	}

	exIndex := map[string]*Exercise{}
	for i := range exercises {
		exIndex[exercises[i].ID] = &exercises[i]
	}

	setRows, err := r.db.Query(
		ctx,
		fmt.Sprintf(`SELECT es.id, es.exercise_id, es.weight, es.reps, es.failure, es.warmup, es.rest_pause, es.drop_set, es.body_weight, es.note, es.created_at, es.display_time
				FROM exercise_set es
				JOIN exercise e ON es.exercise_id = e.id
				JOIN day d ON e.day_id = d.id
				JOIN split s ON d.split_id = s.id
				WHERE %s ORDER BY es.created_at;`, where),
		args...,
	)
	if err != nil {
		return nil, fmt.Errorf("query sets: %w", err)
	}
	defer setRows.Close()

	sets, err := rows2sets(setRows)
	if err != nil {
		return nil, err
	}
	for _, set := range sets {
		if ex, ok := exIndex[set.ExerciseID]; ok {
			ex.Sets = append(ex.Sets, set)
		}
	}

	for _, ex := range exercises {
		if i, ok := dayIndex[ex.DayID]; ok {
			days[i].Exercises = append(days[i].Exercises, ex)
		}
	}

	return days, nil
}

func (r *Repo) Rename(ctx context.Context, id, name string) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.splits.rename")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.String("split.id", id))

	tag, err := r.db.Exec(ctx, `UPDATE split SET name = $1 WHERE id = $2;`, name, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrSplitNotFound
	}
	return nil
}

// Delete removes the split; days, exercises and sets
// go away through the cascade constraints.
func (r *Repo) Delete(ctx context.Context, id string) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.splits.delete")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.String("split.id", id))

	tag, err := r.db.Exec(ctx, `DELETE FROM split WHERE id = $1;`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrSplitNotFound
	}
	return nil
}

// Activate flips the target split to active and all others to inactive
// in one transaction, so a reader can never observe two active splits
// or an in-between state.
func (r *Repo) Activate(ctx context.Context, id string) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.splits.activate")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.String("split.id", id))

	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer func() {
		_ = tx.Rollback(ctx)
	}()

	if _, err := tx.Exec(ctx, `UPDATE split SET is_active = FALSE WHERE is_active = TRUE AND id != $1;`, id); err != nil {
		return fmt.Errorf("deactivate splits: %w", err)
	}

	tag, err := tx.Exec(ctx, `UPDATE split SET is_active = TRUE WHERE id = $1;`, id)
	if err != nil {
		return fmt.Errorf("activate split: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrSplitNotFound
	}

	return tx.Commit(ctx)
}

func (r *Repo) GetDay(ctx context.Context, dayID string) (_ *DayTemplate, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.splits.getday")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.String("day.id", dayID))

	days, err := r.daysForSplits(ctx, "d.id = $1", dayID)
	if err != nil {
		return nil, err
	}
	if len(days) != 1 {
		return nil, ErrDayNotFound
	}
	return &days[0], nil
}

// AddExercise appends an exercise to a day. Creation is serialized per
// day with an advisory lock, so exercise_order never collides. A name
// already present in the day is rejected with ErrExerciseNameTaken.
func (r *Repo) AddExercise(ctx context.Context, dayID string, exercise *Exercise) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.splits.addexercise")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.String("day.id", dayID))
	span.SetAttributes(attribute.String("exercise.name", exercise.Name))

	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer func() {
		_ = tx.Rollback(ctx)
	}()

	if _, err := tx.Exec(ctx, `SELECT pg_advisory_xact_lock(hashtext($1));`, dayID); err != nil {
		return fmt.Errorf("acquire day lock: %w", err)
	}

	var dayExists bool
	if err := tx.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM day WHERE id = $1);`, dayID).Scan(&dayExists); err != nil {
		return fmt.Errorf("check day: %w", err)
	}
	if !dayExists {
		return ErrDayNotFound
	}

	var count int
	if err := tx.QueryRow(ctx, `SELECT COUNT(*) FROM exercise WHERE day_id = $1;`, dayID).Scan(&count); err != nil {
		return fmt.Errorf("count exercises: %w", err)
	}
	exercise.ExerciseOrder = count + 1
	exercise.DayID = dayID

	// name uniqueness per day rides the UNIQUE(day_id, name) constraint
	if err := insertExerciseTx(ctx, tx, dayID, *exercise); err != nil {
		if pkg.IsUniqueViolationError(err) {
			return ErrExerciseNameTaken
		}
		return err
	}

	return tx.Commit(ctx)
}

func (r *Repo) GetExercise(ctx context.Context, id string) (_ *Exercise, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.splits.getexercise")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.String("exercise.id", id))

	rows, err := r.db.Query(
		ctx,
		`SELECT e.id, e.day_id, e.name, e.rep_goal, e.muscle_group, e.created_at, e.completed_at, e.exercise_order, e.done
			FROM exercise e WHERE e.id = $1;`,
		id,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	exercises, err := rows2exercises(rows)
	if err != nil {
		return nil, err
	}
	if len(exercises) != 1 {
		return nil, ErrExerciseNotFound
	}

	exercise := exercises[0]
	sets, err := r.setsForExercise(ctx, exercise.ID)
	if err != nil {
		return nil, err
	}
	exercise.Sets = sets

	return &exercise, nil
}

func (r *Repo) DeleteExercise(ctx context.Context, id string) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.splits.deleteexercise")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.String("exercise.id", id))

	tag, err := r.db.Exec(ctx, `DELETE FROM exercise WHERE id = $1;`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrExerciseNotFound
	}
	return nil
}

// MarkExerciseDone sets done and the completion timestamp, and returns
// the exercise with its sets loaded.
func (r *Repo) MarkExerciseDone(ctx context.Context, id string, completedAt time.Time) (_ *Exercise, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.splits.markexercisedone")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.String("exercise.id", id))

	tag, err := r.db.Exec(
		ctx,
		`UPDATE exercise SET done = TRUE, completed_at = $1 WHERE id = $2;`,
		completedAt, id,
	)
	if err != nil {
		return nil, err
	}
	if tag.RowsAffected() == 0 {
		return nil, ErrExerciseNotFound
	}

	return r.GetExercise(ctx, id)
}

func (r *Repo) AddSet(ctx context.Context, set *Set) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.splits.addset")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.String("exercise.id", set.ExerciseID))

	if _, err := r.db.Exec(
		ctx,
		`INSERT INTO exercise_set
				(id, exercise_id, weight, reps, failure, warmup, rest_pause, drop_set, body_weight, note, created_at, display_time)
				VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12);`,
		set.ID, set.ExerciseID, set.Weight, set.Reps, set.Failure, set.WarmUp,
		set.RestPause, set.DropSet, set.BodyWeight, set.Note, set.CreatedAt, set.Time,
	); err != nil {
		if pkg.IsForeignKeyViolationError(err) {
			return ErrExerciseNotFound
		}
		return fmt.Errorf("insert set: %w", err)
	}
	return nil
}

func (r *Repo) UpdateSet(ctx context.Context, set *Set) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.splits.updateset")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.String("set.id", set.ID))

	tag, err := r.db.Exec(
		ctx,
		`UPDATE exercise_set SET weight = $1, reps = $2, failure = $3, warmup = $4, rest_pause = $5, drop_set = $6, body_weight = $7, note = $8 WHERE id = $9;`,
		set.Weight, set.Reps, set.Failure, set.WarmUp, set.RestPause, set.DropSet, set.BodyWeight, set.Note, set.ID,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrSetNotFound
	}
	return nil
}

func (r *Repo) DeleteSet(ctx context.Context, id string) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.splits.deleteset")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.String("set.id", id))

	tag, err := r.db.Exec(ctx, `DELETE FROM exercise_set WHERE id = $1;`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrSetNotFound
	}
	return nil
}

func (r *Repo) setsForExercise(ctx context.Context, exerciseID string) ([]Set, error) {
	rows, err := r.db.Query(
		ctx,
		`SELECT id, exercise_id, weight, reps, failure, warmup, rest_pause, drop_set, body_weight, note, created_at, display_time
			FROM exercise_set WHERE exercise_id = $1 ORDER BY created_at;`,
		exerciseID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return rows2sets(rows)
}

func rows2exercises(rows pgx.Rows) ([]Exercise, error) {
	exercises := make([]Exercise, 0)
	for rows.Next() {
		var e Exercise
		var muscleGroup string
		if err := rows.Scan(
			&e.ID, &e.DayID, &e.Name, &e.RepGoal, &muscleGroup,
			&e.CreatedAt, &e.CompletedAt, &e.ExerciseOrder, &e.Done,
		); err != nil {
			return nil, err
		}
		e.MuscleGroup = MuscleGroup(muscleGroup)
		e.Sets = make([]Set, 0)
		exercises = append(exercises, e)
	}
	return exercises, rows.Err()
}

func rows2sets(rows pgx.Rows) ([]Set, error) {
	sets := make([]Set, 0)
	for rows.Next() {
		var s Set
		if err := rows.Scan(
			&s.ID, &s.ExerciseID, &s.Weight, &s.Reps, &s.Failure, &s.WarmUp,
			&s.RestPause, &s.DropSet, &s.BodyWeight, &s.Note, &s.CreatedAt, &s.Time,
		); err != nil {
			return nil, err
		}
		sets = append(sets, s)
	}
	return sets, rows.Err()
}
