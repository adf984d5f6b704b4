package stats

import (
	"context"
	"fmt"

	"github.com/gymly/backend/internal/telemetry/tracing"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.opentelemetry.io/otel/attribute"
)

type MuscleGroupTotal struct {
	MuscleGroup string `json:"muscleGroup"`
	SetCount    int    `json:"setCount"`
}

type Repo struct {
	db *pgxpool.Pool
}

func NewRepo(db *pgxpool.Pool) *Repo {
	return &Repo{
		db: db,
	}
}

// AddCompletedExercise bumps the muscle group total by setCount, at
// most once per exercise id. Completing the same exercise again, e.g.
// after a retried request or a sync replay, changes nothing: the
// counted_exercise row is checked and written in the same transaction
// as the total.
func (r *Repo) AddCompletedExercise(ctx context.Context, exerciseID, muscleGroup string, setCount int) (counted bool, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.stats.addcompletedexercise")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.String("exercise.id", exerciseID))
	span.SetAttributes(attribute.String("exercise.musclegroup", muscleGroup))

	tx, err := r.db.Begin(ctx)
	if err != nil {
		return false, fmt.Errorf("begin tx: %w", err)
	}
	defer func() {
		_ = tx.Rollback(ctx)
	}()

	tag, err := tx.Exec(
		ctx,
		`INSERT INTO counted_exercise (exercise_id) VALUES ($1) ON CONFLICT (exercise_id) DO NOTHING;`,
		exerciseID,
	)
	if err != nil {
		return false, fmt.Errorf("insert counted exercise: %w", err)
	}
	if tag.RowsAffected() == 0 {
		// already counted
		return false, tx.Commit(ctx)
	}

	if _, err := tx.Exec(
		ctx,
		`INSERT INTO muscle_group_total (muscle_group, set_count) VALUES ($1, $2)
			ON CONFLICT (muscle_group) DO UPDATE SET set_count = muscle_group_total.set_count + EXCLUDED.set_count;`,
		muscleGroup, setCount,
	); err != nil {
		return false, fmt.Errorf("bump muscle group total: %w", err)
	}

	return true, tx.Commit(ctx)
}

func (r *Repo) Totals(ctx context.Context) (_ []MuscleGroupTotal, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.stats.totals")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	rows, err := r.db.Query(ctx, `SELECT muscle_group, set_count FROM muscle_group_total;`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	totals := make([]MuscleGroupTotal, 0)
	for rows.Next() {
		var t MuscleGroupTotal
		if err := rows.Scan(&t.MuscleGroup, &t.SetCount); err != nil {
			return nil, err
		}
		totals = append(totals, t)
	}
	return totals, rows.Err()
}
