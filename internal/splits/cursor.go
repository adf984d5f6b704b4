package splits

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/gymly/backend/internal/settings"

	log "github.com/sirupsen/logrus"
)

// AdvanceCursor moves the day cursor forward by the number of calendar
// days that passed since it was last moved, wrapping around the active
// split's day count. Without an active split the cursor stays where it
// is and its timestamp is left untouched, so no days are silently
// skipped while nothing is being trained.
func (s *Service) AdvanceCursor(ctx context.Context) (settings.DayCursor, error) {
	cursor, err := s.settings.GetDayCursor(ctx)
	if err != nil {
		return settings.DayCursor{}, fmt.Errorf("get day cursor: %w", err)
	}

	activeSplit, err := s.repo.GetActive(ctx)
	if err != nil {
		if errors.Is(err, ErrSplitNotFound) {
			log.Debugf("advance cursor: no active split, staying at day %d", cursor.Cursor)
			return cursor, nil
		}
		return settings.DayCursor{}, fmt.Errorf("get active split: %w", err)
	}

	dayCount := len(activeSplit.Days)
	if dayCount == 0 {
		return cursor, nil
	}

	now := s.now()
	elapsed := calendarDaysBetween(cursor.UpdatedAt, now)
	if elapsed <= 0 {
		return cursor, nil
	}

	advanced := settings.DayCursor{
		Cursor:    ((cursor.Cursor - 1 + elapsed) % dayCount) + 1,
		UpdatedAt: now,
	}
	if err := s.settings.SetDayCursor(ctx, advanced); err != nil {
		return settings.DayCursor{}, fmt.Errorf("set day cursor: %w", err)
	}

	log.Tracef("day cursor advanced: %d -> %d (%d days elapsed)", cursor.Cursor, advanced.Cursor, elapsed)

	return advanced, nil
}

func (s *Service) GetCursor(ctx context.Context) (settings.DayCursor, error) {
	return s.settings.GetDayCursor(ctx)
}

// calendarDaysBetween counts midnight crossings, not full 24h periods,
// so 23:50 to 00:10 the next day already counts as one day.
func calendarDaysBetween(from, to time.Time) int {
	fromDay := time.Date(from.Year(), from.Month(), from.Day(), 0, 0, 0, 0, from.Location())
	toDay := time.Date(to.Year(), to.Month(), to.Day(), 0, 0, 0, 0, to.Location())
	return int(toDay.Sub(fromDay).Hours() / 24)
}
