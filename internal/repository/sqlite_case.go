package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/alexanderramin/casetrack/internal/db"
	"github.com/alexanderramin/casetrack/internal/domain"
)

// SQLiteCaseRepo implements CaseRepo using a SQLite database.
type SQLiteCaseRepo struct {
	db db.DBTX
}

func NewSQLiteCaseRepo(conn db.DBTX) *SQLiteCaseRepo {
	return &SQLiteCaseRepo{db: conn}
}

const caseColumns = `id, template_id, title, goal_date, calendar_id, version, created_at, updated_at`

func (r *SQLiteCaseRepo) Create(ctx context.Context, c *domain.Case) error {
	if c.Version == 0 {
		c.Version = 1
	}
	query := `INSERT INTO cases (` + caseColumns + `) VALUES (?, ?, ?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		c.ID, c.TemplateID, c.Title, c.GoalDate.Format(dateLayout), c.CalendarID, c.Version,
		c.CreatedAt.Format(time.RFC3339), c.UpdatedAt.Format(time.RFC3339))
	if err != nil {
		return fmt.Errorf("inserting case: %w", err)
	}
	return nil
}

func (r *SQLiteCaseRepo) GetByID(ctx context.Context, id string) (*domain.Case, error) {
	query := `SELECT ` + caseColumns + ` FROM cases WHERE id = ?`
	c, err := scanCase(r.db.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("case %s: %w", id, domain.ErrNotFound)
	}
	return c, err
}

func (r *SQLiteCaseRepo) List(ctx context.Context) ([]*domain.Case, error) {
	query := `SELECT ` + caseColumns + ` FROM cases ORDER BY goal_date, title`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("listing cases: %w", err)
	}
	defer rows.Close()

	var out []*domain.Case
	for rows.Next() {
		c, err := scanCase(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating cases: %w", err)
	}
	return out, nil
}

func (r *SQLiteCaseRepo) UpdateSchedule(ctx context.Context, c *domain.Case, expectedVersion int) error {
	now := time.Now().UTC()
	query := `UPDATE cases SET goal_date = ?, calendar_id = ?, version = version + 1, updated_at = ?
		WHERE id = ? AND version = ?`
	res, err := r.db.ExecContext(ctx, query,
		c.GoalDate.Format(dateLayout), c.CalendarID, now.Format(time.RFC3339), c.ID, expectedVersion)
	if err != nil {
		return fmt.Errorf("updating case schedule: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("updating case schedule: %w", err)
	}
	if n == 0 {
		if _, getErr := r.GetByID(ctx, c.ID); getErr != nil {
			return getErr
		}
		return fmt.Errorf("case %s: %w", c.ID, domain.ErrStaleCase)
	}
	c.Version = expectedVersion + 1
	c.UpdatedAt = now
	return nil
}

func (r *SQLiteCaseRepo) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM cases WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting case: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("deleting case: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("case %s: %w", id, domain.ErrNotFound)
	}
	return nil
}

func scanCase(row scanner) (*domain.Case, error) {
	var c domain.Case
	var goal, createdAt, updatedAt string
	err := row.Scan(&c.ID, &c.TemplateID, &c.Title, &goal, &c.CalendarID, &c.Version, &createdAt, &updatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, err
	}
	if err != nil {
		return nil, fmt.Errorf("scanning case: %w", err)
	}
	if c.GoalDate, err = time.Parse(dateLayout, goal); err != nil {
		return nil, fmt.Errorf("case %s has invalid goal date %q: %w", c.ID, goal, err)
	}
	c.CreatedAt, _ = time.Parse(time.RFC3339, createdAt)
	c.UpdatedAt, _ = time.Parse(time.RFC3339, updatedAt)
	return &c, nil
}
