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

// SQLiteStepInstanceRepo implements StepInstanceRepo using a SQLite database.
type SQLiteStepInstanceRepo struct {
	db db.DBTX
}

func NewSQLiteStepInstanceRepo(conn db.DBTX) *SQLiteStepInstanceRepo {
	return &SQLiteStepInstanceRepo{db: conn}
}

const stepColumns = `id, case_id, definition_id, due_date, locked, updated_at`

func (r *SQLiteStepInstanceRepo) Create(ctx context.Context, s *domain.StepInstance) error {
	if s.UpdatedAt.IsZero() {
		s.UpdatedAt = time.Now().UTC()
	}
	query := `INSERT INTO step_instances (` + stepColumns + `) VALUES (?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		s.ID, s.CaseID, s.DefinitionID, nullableTimeToString(s.DueDate, dateLayout),
		boolToInt(s.Locked), s.UpdatedAt.Format(time.RFC3339))
	if err != nil {
		return fmt.Errorf("inserting step instance %q: %w", s.DefinitionID, err)
	}
	return nil
}

func (r *SQLiteStepInstanceRepo) GetByID(ctx context.Context, id string) (*domain.StepInstance, error) {
	query := `SELECT ` + stepColumns + ` FROM step_instances WHERE id = ?`
	s, err := scanStep(r.db.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("step %s: %w", id, domain.ErrNotFound)
	}
	return s, err
}

func (r *SQLiteStepInstanceRepo) ListByCase(ctx context.Context, caseID string) ([]*domain.StepInstance, error) {
	query := `SELECT ` + stepColumns + ` FROM step_instances WHERE case_id = ? ORDER BY definition_id`
	rows, err := r.db.QueryContext(ctx, query, caseID)
	if err != nil {
		return nil, fmt.Errorf("listing step instances: %w", err)
	}
	defer rows.Close()

	var out []*domain.StepInstance
	for rows.Next() {
		s, err := scanStep(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating step instances: %w", err)
	}
	return out, nil
}

func (r *SQLiteStepInstanceRepo) UpdateDueDate(ctx context.Context, id string, due time.Time) error {
	return r.update(ctx, `UPDATE step_instances SET due_date = ?, updated_at = ? WHERE id = ?`,
		id, due.Format(dateLayout))
}

func (r *SQLiteStepInstanceRepo) SetLocked(ctx context.Context, id string, locked bool) error {
	return r.update(ctx, `UPDATE step_instances SET locked = ?, updated_at = ? WHERE id = ?`,
		id, boolToInt(locked))
}

func (r *SQLiteStepInstanceRepo) update(ctx context.Context, query, id string, value any) error {
	res, err := r.db.ExecContext(ctx, query, value, nowUTC(), id)
	if err != nil {
		return fmt.Errorf("updating step instance: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("updating step instance: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("step %s: %w", id, domain.ErrNotFound)
	}
	return nil
}

func scanStep(row scanner) (*domain.StepInstance, error) {
	var s domain.StepInstance
	var due sql.NullString
	var locked int
	var updatedAt string
	err := row.Scan(&s.ID, &s.CaseID, &s.DefinitionID, &due, &locked, &updatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, err
	}
	if err != nil {
		return nil, fmt.Errorf("scanning step instance: %w", err)
	}
	s.DueDate = parseNullableTime(due, dateLayout)
	s.Locked = locked != 0
	s.UpdatedAt, _ = time.Parse(time.RFC3339, updatedAt)
	return &s, nil
}
