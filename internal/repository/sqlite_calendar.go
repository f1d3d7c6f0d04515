package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/alexanderramin/casetrack/internal/db"
	"github.com/alexanderramin/casetrack/internal/domain"
)

// SQLiteCalendarRepo implements CalendarRepo using a SQLite database.
type SQLiteCalendarRepo struct {
	db db.DBTX
}

func NewSQLiteCalendarRepo(conn db.DBTX) *SQLiteCalendarRepo {
	return &SQLiteCalendarRepo{db: conn}
}

func (r *SQLiteCalendarRepo) Upsert(ctx context.Context, c domain.Calendar) error {
	query := `INSERT INTO calendars (id, name) VALUES (?, ?)
		ON CONFLICT(id) DO UPDATE SET name = excluded.name`
	if _, err := r.db.ExecContext(ctx, query, c.ID, c.Name); err != nil {
		return fmt.Errorf("upserting calendar: %w", err)
	}
	return nil
}

// ReplaceHolidays swaps the full holiday set of a calendar. Run it inside a
// transaction so readers never see a partial set.
func (r *SQLiteCalendarRepo) ReplaceHolidays(ctx context.Context, calendarID string, holidays []domain.Holiday) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM holidays WHERE calendar_id = ?`, calendarID); err != nil {
		return fmt.Errorf("clearing holidays: %w", err)
	}
	query := `INSERT INTO holidays (calendar_id, date, name) VALUES (?, ?, ?)`
	for _, h := range holidays {
		if _, err := r.db.ExecContext(ctx, query, calendarID, h.Date.Format(dateLayout), h.Name); err != nil {
			return fmt.Errorf("inserting holiday %s: %w", h.Date.Format(dateLayout), err)
		}
	}
	return nil
}

func (r *SQLiteCalendarRepo) AddHoliday(ctx context.Context, h domain.Holiday) error {
	query := `INSERT INTO holidays (calendar_id, date, name) VALUES (?, ?, ?)
		ON CONFLICT(calendar_id, date) DO UPDATE SET name = excluded.name`
	if _, err := r.db.ExecContext(ctx, query, h.CalendarID, h.Date.Format(dateLayout), h.Name); err != nil {
		return fmt.Errorf("adding holiday: %w", err)
	}
	return nil
}

func (r *SQLiteCalendarRepo) List(ctx context.Context) ([]domain.Calendar, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT id, name FROM calendars ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("listing calendars: %w", err)
	}
	defer rows.Close()

	var out []domain.Calendar
	for rows.Next() {
		var c domain.Calendar
		if err := rows.Scan(&c.ID, &c.Name); err != nil {
			return nil, fmt.Errorf("scanning calendar: %w", err)
		}
		out = append(out, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating calendars: %w", err)
	}
	return out, nil
}

func (r *SQLiteCalendarRepo) CalendarExists(ctx context.Context, calendarID string) (bool, error) {
	var n int
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM calendars WHERE id = ?`, calendarID).Scan(&n)
	if err != nil {
		return false, fmt.Errorf("checking calendar: %w", err)
	}
	return n > 0, nil
}

// GetHolidays returns holiday dates in [from, to], ascending.
func (r *SQLiteCalendarRepo) GetHolidays(ctx context.Context, calendarID string, from, to time.Time) ([]time.Time, error) {
	query := `SELECT date FROM holidays WHERE calendar_id = ? AND date >= ? AND date <= ? ORDER BY date`
	rows, err := r.db.QueryContext(ctx, query, calendarID, from.Format(dateLayout), to.Format(dateLayout))
	if err != nil {
		return nil, fmt.Errorf("querying holidays: %w", err)
	}
	defer rows.Close()

	out := []time.Time{}
	for rows.Next() {
		var s string
		if err := rows.Scan(&s); err != nil {
			return nil, fmt.Errorf("scanning holiday: %w", err)
		}
		d, err := time.Parse(dateLayout, s)
		if err != nil {
			return nil, fmt.Errorf("holiday %q: %w", s, err)
		}
		out = append(out, d)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating holidays: %w", err)
	}
	return out, nil
}

func (r *SQLiteCalendarRepo) ListHolidays(ctx context.Context, calendarID string) ([]domain.Holiday, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT calendar_id, date, name FROM holidays WHERE calendar_id = ? ORDER BY date`, calendarID)
	if err != nil {
		return nil, fmt.Errorf("listing holidays: %w", err)
	}
	defer rows.Close()

	var out []domain.Holiday
	for rows.Next() {
		var h domain.Holiday
		var s string
		if err := rows.Scan(&h.CalendarID, &s, &h.Name); err != nil {
			return nil, fmt.Errorf("scanning holiday: %w", err)
		}
		if h.Date, err = time.Parse(dateLayout, s); err != nil {
			return nil, fmt.Errorf("holiday %q: %w", s, err)
		}
		out = append(out, h)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating holidays: %w", err)
	}
	return out, nil
}
