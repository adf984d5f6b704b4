package weights

import (
	"context"
	"errors"

	"github.com/gymly/backend/internal/telemetry/tracing"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.opentelemetry.io/otel/attribute"
)

var ErrWeightPointNotFound = errors.New("weight point not found")

type Repo struct {
	db *pgxpool.Pool
}

func NewRepo(db *pgxpool.Pool) *Repo {
	return &Repo{
		db: db,
	}
}

// Upsert writes the point for its date, replacing an earlier
// measurement from the same day. On conflict the existing row keeps
// its id, and point.ID is rewritten to that surviving identity.
func (r *Repo) Upsert(ctx context.Context, point *WeightPoint) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.weights.upsert")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.String("weight.date", point.Date))

	return r.db.QueryRow(
		ctx,
		`INSERT INTO weight_point (id, date, weight, created_at) VALUES ($1, $2, $3, $4)
			ON CONFLICT (date) DO UPDATE SET weight = EXCLUDED.weight, created_at = EXCLUDED.created_at
			RETURNING id;`,
		point.ID, point.Date, point.Weight, point.CreatedAt,
	).Scan(&point.ID)
}

func (r *Repo) List(ctx context.Context) (_ []WeightPoint, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.weights.list")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	rows, err := r.db.Query(
		ctx,
		`SELECT id, date, weight, created_at FROM weight_point ORDER BY date;`,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	points := make([]WeightPoint, 0)
	for rows.Next() {
		var p WeightPoint
		if err := rows.Scan(&p.ID, &p.Date, &p.Weight, &p.CreatedAt); err != nil {
			return nil, err
		}
		points = append(points, p)
	}
	return points, rows.Err()
}

func (r *Repo) Delete(ctx context.Context, id string) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.weights.delete")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.String("weight.id", id))

	tag, err := r.db.Exec(ctx, `DELETE FROM weight_point WHERE id = $1;`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrWeightPointNotFound
	}
	return nil
}
