package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/alexanderramin/casetrack/internal/db"
	"github.com/alexanderramin/casetrack/internal/domain"
)

// SQLiteTemplateRepo implements TemplateRepo using a SQLite database.
type SQLiteTemplateRepo struct {
	db db.DBTX
}

func NewSQLiteTemplateRepo(conn db.DBTX) *SQLiteTemplateRepo {
	return &SQLiteTemplateRepo{db: conn}
}

func (r *SQLiteTemplateRepo) Create(ctx context.Context, t *domain.Template) error {
	query := `INSERT INTO templates (id, name, version, status, description, created_at)
		VALUES (?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		t.ID, t.Name, t.Version, string(t.Status), t.Description, t.CreatedAt.Format(time.RFC3339))
	if err != nil {
		return fmt.Errorf("inserting template: %w", err)
	}

	stepQuery := `INSERT INTO step_definitions (template_id, id, seq, title, basis, offset_days, depends_on_json)
		VALUES (?, ?, ?, ?, ?, ?, ?)`
	for _, s := range t.Steps {
		deps := s.DependsOn
		if deps == nil {
			deps = []string{}
		}
		depsJSON, err := json.Marshal(deps)
		if err != nil {
			return fmt.Errorf("encoding depends_on for step %q: %w", s.ID, err)
		}
		if _, err := r.db.ExecContext(ctx, stepQuery,
			t.ID, s.ID, s.Sequence, s.Title, string(s.Basis), s.OffsetDays, string(depsJSON)); err != nil {
			return fmt.Errorf("inserting step %q: %w", s.ID, err)
		}
	}
	return nil
}

func (r *SQLiteTemplateRepo) GetByID(ctx context.Context, id string) (*domain.Template, error) {
	query := `SELECT id, name, version, status, description, created_at FROM templates WHERE id = ?`
	t, err := r.scanTemplate(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		return nil, err
	}
	if t.Steps, err = r.listSteps(ctx, t.ID); err != nil {
		return nil, err
	}
	return t, nil
}

// GetLatest returns the highest version of a template name.
func (r *SQLiteTemplateRepo) GetLatest(ctx context.Context, name string) (*domain.Template, error) {
	query := `SELECT id, name, version, status, description, created_at FROM templates
		WHERE name = ? ORDER BY version DESC LIMIT 1`
	t, err := r.scanTemplate(r.db.QueryRowContext(ctx, query, name))
	if err != nil {
		return nil, err
	}
	if t.Steps, err = r.listSteps(ctx, t.ID); err != nil {
		return nil, err
	}
	return t, nil
}

// List returns template headers without step definitions.
func (r *SQLiteTemplateRepo) List(ctx context.Context) ([]*domain.Template, error) {
	query := `SELECT id, name, version, status, description, created_at FROM templates ORDER BY name, version`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("listing templates: %w", err)
	}
	defer rows.Close()

	var out []*domain.Template
	for rows.Next() {
		t, err := r.scanTemplate(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating templates: %w", err)
	}
	return out, nil
}

func (r *SQLiteTemplateRepo) NextVersion(ctx context.Context, name string) (int, error) {
	var maxVersion sql.NullInt64
	err := r.db.QueryRowContext(ctx, `SELECT MAX(version) FROM templates WHERE name = ?`, name).Scan(&maxVersion)
	if err != nil {
		return 0, fmt.Errorf("reading template version: %w", err)
	}
	return int(maxVersion.Int64) + 1, nil
}

func (r *SQLiteTemplateRepo) SetStatus(ctx context.Context, id string, status domain.TemplateStatus) error {
	res, err := r.db.ExecContext(ctx, `UPDATE templates SET status = ? WHERE id = ?`, string(status), id)
	if err != nil {
		return fmt.Errorf("updating template status: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("updating template status: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("template %s: %w", id, domain.ErrNotFound)
	}
	return nil
}

func (r *SQLiteTemplateRepo) listSteps(ctx context.Context, templateID string) ([]domain.StepDefinition, error) {
	query := `SELECT template_id, id, seq, title, basis, offset_days, depends_on_json
		FROM step_definitions WHERE template_id = ? ORDER BY seq, id`
	rows, err := r.db.QueryContext(ctx, query, templateID)
	if err != nil {
		return nil, fmt.Errorf("listing step definitions: %w", err)
	}
	defer rows.Close()

	var steps []domain.StepDefinition
	for rows.Next() {
		var s domain.StepDefinition
		var basis, depsJSON string
		if err := rows.Scan(&s.TemplateID, &s.ID, &s.Sequence, &s.Title, &basis, &s.OffsetDays, &depsJSON); err != nil {
			return nil, fmt.Errorf("scanning step definition: %w", err)
		}
		if s.Basis, err = domain.ParseBasis(basis); err != nil {
			return nil, fmt.Errorf("step %q: %w", s.ID, err)
		}
		if err := json.Unmarshal([]byte(depsJSON), &s.DependsOn); err != nil {
			return nil, fmt.Errorf("decoding depends_on for step %q: %w", s.ID, err)
		}
		steps = append(steps, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating step definitions: %w", err)
	}
	return steps, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func (r *SQLiteTemplateRepo) scanTemplate(row scanner) (*domain.Template, error) {
	var t domain.Template
	var status, createdAt string
	err := row.Scan(&t.ID, &t.Name, &t.Version, &status, &t.Description, &createdAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("template: %w", domain.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("scanning template: %w", err)
	}
	t.Status = domain.TemplateStatus(status)
	t.CreatedAt, _ = time.Parse(time.RFC3339, createdAt)
	return &t, nil
}
