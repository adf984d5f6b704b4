// Package settings persists small app-level values: the day cursor
// that tracks which workout day is next, and the sync toggle.
package settings

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/gymly/backend/internal/telemetry/tracing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const (
	keyDayCursor       = "day_cursor"
	keyCursorUpdatedAt = "cursor_updated_at"
	keySyncEnabled     = "sync_enabled"
)

var ErrSettingNotFound = errors.New("setting not found")

type Repo struct {
	db *pgxpool.Pool
}

func NewRepo(db *pgxpool.Pool) *Repo {
	return &Repo{
		db: db,
	}
}

// DayCursor is the 1-based index of the next workout day,
// together with the moment it was last moved.
type DayCursor struct {
	Cursor    int       `json:"cursor"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (r *Repo) GetDayCursor(ctx context.Context) (_ DayCursor, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.settings.getdaycursor")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	cursorRaw, err := r.get(ctx, keyDayCursor)
	if err != nil {
		if errors.Is(err, ErrSettingNotFound) {
			return DayCursor{Cursor: 1, UpdatedAt: time.Now()}, nil
		}
		return DayCursor{}, err
	}
	cursor, err := strconv.Atoi(cursorRaw)
	if err != nil {
		return DayCursor{}, fmt.Errorf("parse day cursor [%s]: %w", cursorRaw, err)
	}

	updatedAtRaw, err := r.get(ctx, keyCursorUpdatedAt)
	if err != nil {
		return DayCursor{}, err
	}
	updatedAt, err := time.Parse(time.RFC3339, updatedAtRaw)
	if err != nil {
		return DayCursor{}, fmt.Errorf("parse cursor updated at [%s]: %w", updatedAtRaw, err)
	}

	return DayCursor{Cursor: cursor, UpdatedAt: updatedAt}, nil
}

func (r *Repo) SetDayCursor(ctx context.Context, dc DayCursor) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.settings.setdaycursor")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer func() {
		_ = tx.Rollback(ctx)
	}()

	if err := setTx(ctx, tx, keyDayCursor, strconv.Itoa(dc.Cursor)); err != nil {
		return err
	}
	if err := setTx(ctx, tx, keyCursorUpdatedAt, dc.UpdatedAt.Format(time.RFC3339)); err != nil {
		return err
	}

	return tx.Commit(ctx)
}

// SyncEnabled defaults to true when never set.
func (r *Repo) SyncEnabled(ctx context.Context) (_ bool, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.settings.syncenabled")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	raw, err := r.get(ctx, keySyncEnabled)
	if err != nil {
		if errors.Is(err, ErrSettingNotFound) {
			return true, nil
		}
		return false, err
	}
	return strconv.ParseBool(raw)
}

func (r *Repo) SetSyncEnabled(ctx context.Context, enabled bool) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.settings.setsyncenabled")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	return r.set(ctx, keySyncEnabled, strconv.FormatBool(enabled))
}

func (r *Repo) get(ctx context.Context, key string) (string, error) {
	var value string
	err := r.db.QueryRow(ctx, `SELECT value FROM settings WHERE key = $1;`, key).Scan(&value)
	if errors.Is(err, pgx.ErrNoRows) {
		return "", ErrSettingNotFound
	}
	if err != nil {
		return "", err
	}
	return value, nil
}

func (r *Repo) set(ctx context.Context, key, value string) error {
	_, err := r.db.Exec(
		ctx,
		`INSERT INTO settings (key, value) VALUES ($1, $2)
			ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value;`,
		key, value,
	)
	return err
}

func setTx(ctx context.Context, tx pgx.Tx, key, value string) error {
	if _, err := tx.Exec(
		ctx,
		`INSERT INTO settings (key, value) VALUES ($1, $2)
			ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value;`,
		key, value,
	); err != nil {
		return fmt.Errorf("set [%s]: %w", key, err)
	}
	return nil
}
