package history

import (
	"context"
	"errors"
	"fmt"

	"github.com/gymly/backend/internal/telemetry/tracing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.opentelemetry.io/otel/attribute"
)

var ErrWorkoutNotFound = errors.New("workout not found")

type Repo struct {
	db *pgxpool.Pool
}

func NewRepo(db *pgxpool.Pool) *Repo {
	return &Repo{
		db: db,
	}
}

// InsertWorkout stores the snapshot and registers its date in the
// recorded dates list, all in one transaction.
func (r *Repo) InsertWorkout(ctx context.Context, workout *WorkoutLog) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.history.insertworkout")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.String("workout.id", workout.ID))

	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer func() {
		_ = tx.Rollback(ctx)
	}()

	if _, err := tx.Exec(
		ctx,
		`INSERT INTO workout_log (id, date, split_name, day_name, day_of_split, created_at)
			VALUES ($1, $2, $3, $4, $5, $6);`,
		workout.ID, workout.Date, workout.SplitName, workout.DayName, workout.DayOfSplit, workout.CreatedAt,
	); err != nil {
		return fmt.Errorf("insert workout log: %w", err)
	}

	for _, ex := range workout.Exercises {
		if _, err := tx.Exec(
			ctx,
			`INSERT INTO workout_exercise (id, workout_id, name, muscle_group, rep_goal, exercise_order)
				VALUES ($1, $2, $3, $4, $5, $6);`,
			ex.ID, workout.ID, ex.Name, ex.MuscleGroup, ex.RepGoal, ex.ExerciseOrder,
		); err != nil {
			return fmt.Errorf("insert workout exercise [%s]: %w", ex.Name, err)
		}
		for _, set := range ex.Sets {
			if _, err := tx.Exec(
				ctx,
				`INSERT INTO workout_set
					(id, workout_exercise_id, weight, reps, failure, warmup, rest_pause, drop_set, body_weight, note, display_time)
					VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11);`,
				set.ID, ex.ID, set.Weight, set.Reps, set.Failure, set.WarmUp,
				set.RestPause, set.DropSet, set.BodyWeight, set.Note, set.Time,
			); err != nil {
				return fmt.Errorf("insert workout set for [%s]: %w", ex.Name, err)
			}
		}
	}

	if _, err := tx.Exec(
		ctx,
		`INSERT INTO recorded_date (date) VALUES ($1) ON CONFLICT (date) DO NOTHING;`,
		workout.Date,
	); err != nil {
		return fmt.Errorf("insert recorded date: %w", err)
	}

	return tx.Commit(ctx)
}

// ListDates returns every date that has at least
// one workout, newest first.
func (r *Repo) ListDates(ctx context.Context) (_ []string, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.history.listdates")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	rows, err := r.db.Query(
		ctx,
		`SELECT rd.date FROM recorded_date rd
			JOIN workout_log wl ON wl.date = rd.date
			GROUP BY rd.date
			ORDER BY MAX(wl.created_at) DESC;`,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	dates := make([]string, 0)
	for rows.Next() {
		var date string
		if err := rows.Scan(&date); err != nil {
			return nil, err
		}
		dates = append(dates, date)
	}
	return dates, rows.Err()
}

func (r *Repo) ListByDate(ctx context.Context, date string) (_ []WorkoutLog, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.history.listbydate")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.String("workout.date", date))

	return r.list(ctx, "wl.date = $1", date)
}

func (r *Repo) ListAll(ctx context.Context) (_ []WorkoutLog, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.history.listall")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	return r.list(ctx, "TRUE")
}

func (r *Repo) Get(ctx context.Context, id string) (_ *WorkoutLog, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.history.get")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.String("workout.id", id))

	workouts, err := r.list(ctx, "wl.id = $1", id)
	if err != nil {
		return nil, err
	}
	if len(workouts) != 1 {
		return nil, ErrWorkoutNotFound
	}
	return &workouts[0], nil
}

func (r *Repo) list(ctx context.Context, where string, args ...any) ([]WorkoutLog, error) {
	rows, err := r.db.Query(
		ctx,
		fmt.Sprintf(`SELECT wl.id, wl.date, wl.split_name, wl.day_name, wl.day_of_split, wl.created_at
				FROM workout_log wl WHERE %s ORDER BY wl.created_at;`, where),
		args...,
	)
	if err != nil {
		return nil, fmt.Errorf("query workout logs: %w", err)
	}
	defer rows.Close()

	workouts := make([]WorkoutLog, 0)
	workoutIndex := map[string]int{}
	for rows.Next() {
		var w WorkoutLog
		if err := rows.Scan(&w.ID, &w.Date, &w.SplitName, &w.DayName, &w.DayOfSplit, &w.CreatedAt); err != nil {
			return nil, err
		}
		w.Exercises = make([]WorkoutExercise, 0)
		workoutIndex[w.ID] = len(workouts)
		workouts = append(workouts, w)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if len(workouts) == 0 {
		return workouts, nil
	}

	exRows, err := r.db.Query(
		ctx,
		fmt.Sprintf(`SELECT we.id, we.workout_id, we.name, we.muscle_group, we.rep_goal, we.exercise_order
				FROM workout_exercise we
				JOIN workout_log wl ON we.workout_id = wl.id
				WHERE %s ORDER BY we.exercise_order;`, where),
		args...,
	)
	if err != nil {
		return nil, fmt.Errorf("query workout exercises: %w", err)
	}
	defer exRows.Close()

	exercises := make([]WorkoutExercise, 0)
	exIndex := map[string]int{}
	for exRows.Next() {
		var e WorkoutExercise
		if err := exRows.Scan(&e.ID, &e.WorkoutID, &e.Name, &e.MuscleGroup, &e.RepGoal, &e.ExerciseOrder); err != nil {
			return nil, err
		}
		e.Sets = make([]WorkoutSet, 0)
		exIndex[e.ID] = len(exercises)
		exercises = append(exercises, e)
	}
	if err := exRows.Err(); err != nil {
		return nil, err
	}

	setRows, err := r.db.Query(
		ctx,
		fmt.Sprintf(`SELECT ws.id, ws.workout_exercise_id, ws.weight, ws.reps, ws.failure, ws.warmup, ws.rest_pause, ws.drop_set, ws.body_weight, ws.note, ws.display_time
				FROM workout_set ws
				JOIN workout_exercise we ON ws.workout_exercise_id = we.id
				JOIN workout_log wl ON we.workout_id = wl.id
				WHERE %s;`, where),
		args...,
	)
	if err != nil {
		return nil, fmt.Errorf("query workout sets: %w", err)
	}
	defer setRows.Close()

	for setRows.Next() {
		var s WorkoutSet
		if err := setRows.Scan(
			&s.ID, &s.WorkoutExerciseID, &s.Weight, &s.Reps, &s.Failure, &s.WarmUp,
			&s.RestPause, &s.DropSet, &s.BodyWeight, &s.Note, &s.Time,
		); err != nil {
			return nil, err
		}
		if i, ok := exIndex[s.WorkoutExerciseID]; ok {
			exercises[i].Sets = append(exercises[i].Sets, s)
		}
	}
	if err := setRows.Err(); err != nil {
		return nil, err
	}

	for _, ex := range exercises {
		if i, ok := workoutIndex[ex.WorkoutID]; ok {
			workouts[i].Exercises = append(workouts[i].Exercises, ex)
		}
	}

	return workouts, nil
}

// Delete removes the workout and, when it was the last one on its
// date, the recorded date as well.
func (r *Repo) Delete(ctx context.Context, id string) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.history.delete")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.String("workout.id", id))

	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer func() {
		_ = tx.Rollback(ctx)
	}()

	var date string
	err = tx.QueryRow(ctx, `SELECT date FROM workout_log WHERE id = $1;`, id).Scan(&date)
	if errors.Is(err, pgx.ErrNoRows) {
		return ErrWorkoutNotFound
	}
	if err != nil {
		return err
	}

	if _, err := tx.Exec(ctx, `DELETE FROM workout_log WHERE id = $1;`, id); err != nil {
		return fmt.Errorf("delete workout log: %w", err)
	}

	if _, err := tx.Exec(
		ctx,
		`DELETE FROM recorded_date rd WHERE rd.date = $1
			AND NOT EXISTS (SELECT 1 FROM workout_log wl WHERE wl.date = rd.date);`,
		date,
	); err != nil {
		return fmt.Errorf("prune recorded date: %w", err)
	}

	return tx.Commit(ctx)
}
