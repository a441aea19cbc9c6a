package availability

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/psicoagenda/booking-service/internal/domain"
	"github.com/psicoagenda/booking-service/pkg/dbmetrics"
	"github.com/psicoagenda/booking-service/pkg/psqlbuilder"
	"github.com/psicoagenda/booking-service/pkg/types"
)

// Repository persists the per-weekday availability templates. Windows are
// stored as a JSONB document since they are only read and written whole.
type Repository struct {
	db dbmetrics.DBExecutor
}

func NewRepository(db dbmetrics.DBExecutor) *Repository {
	return &Repository{db: db}
}

type windowDoc struct {
	Inicio string `json:"inicio"`
	Fim    string `json:"fim"`
	Ativo  bool   `json:"ativo"`
}

// Upsert creates or replaces the template for the given weekday
func (r *Repository) Upsert(ctx context.Context, t *domain.AvailabilityTemplate) (*domain.AvailabilityTemplate, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	docs := make([]windowDoc, 0, len(t.Windows))
	for _, w := range t.Windows {
		docs = append(docs, windowDoc{Inicio: w.Start.String(), Fim: w.End.String(), Ativo: w.Active})
	}
	payload, err := json.Marshal(docs)
	if err != nil {
		return nil, fmt.Errorf("%w: Upsert - marshal windows: %v", ErrBuildQuery, err)
	}

	query, args, err := psqlbuilder.Insert("disponibilidades").
		Columns("dia_semana", "janelas", "ativo").
		Values(int(t.Weekday), payload, t.Active).
		Suffix(`ON CONFLICT (dia_semana) DO UPDATE
			SET janelas = EXCLUDED.janelas,
			    ativo = EXCLUDED.ativo,
			    updated_at = NOW()
			RETURNING id, created_at, updated_at`).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Upsert - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&t.ID, &createdAt, &updatedAt); err != nil {
		return nil, fmt.Errorf("%w: Upsert - execute insert: %v", ErrExecQuery, err)
	}

	t.CreatedAt = createdAt.Time
	t.UpdatedAt = updatedAt.Time

	return t, nil
}

// GetByWeekday fetches the active template for the weekday
func (r *Repository) GetByWeekday(ctx context.Context, weekday time.Weekday) (*domain.AvailabilityTemplate, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("id", "dia_semana", "janelas", "ativo", "created_at", "updated_at").
		From("disponibilidades").
		Where(squirrel.Eq{"dia_semana": int(weekday), "ativo": true}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByWeekday - build select query: %v", ErrBuildQuery, err)
	}

	t, err := scanTemplate(executor.QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, ErrTemplateNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByWeekday - scan template: %v", ErrScanRow, err)
	}
	return t, nil
}

// Exists reports whether a template row is present for the weekday,
// active or not. Deactivated rows still count.
func (r *Repository) Exists(ctx context.Context, weekday time.Weekday) (bool, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("1").
		From("disponibilidades").
		Where(squirrel.Eq{"dia_semana": int(weekday)}).
		ToSql()
	if err != nil {
		return false, fmt.Errorf("%w: Exists - build select query: %v", ErrBuildQuery, err)
	}

	var one int
	err = executor.QueryRowContext(ctx, query, args...).Scan(&one)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("%w: Exists - scan row: %v", ErrScanRow, err)
	}
	return true, nil
}

// ListActive returns the active templates ordered by weekday
func (r *Repository) ListActive(ctx context.Context) ([]*domain.AvailabilityTemplate, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("id", "dia_semana", "janelas", "ativo", "created_at", "updated_at").
		From("disponibilidades").
		Where(squirrel.Eq{"ativo": true}).
		OrderBy("dia_semana ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListActive - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListActive - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	templates := make([]*domain.AvailabilityTemplate, 0)
	for rows.Next() {
		t, err := scanTemplate(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: ListActive - scan row: %v", ErrScanRow, err)
		}
		templates = append(templates, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListActive - rows error: %v", ErrScanRow, err)
	}

	return templates, nil
}

// Deactivate disables the template for a weekday
func (r *Repository) Deactivate(ctx context.Context, weekday time.Weekday) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("disponibilidades").
		Set("ativo", false).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"dia_semana": int(weekday)}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: Deactivate - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: Deactivate - execute update: %v", ErrExecQuery, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: Deactivate - get rows affected: %v", ErrExecQuery, err)
	}
	if rowsAffected == 0 {
		return ErrTemplateNotFound
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanTemplate(row rowScanner) (*domain.AvailabilityTemplate, error) {
	var t domain.AvailabilityTemplate
	var weekday int
	var payload []byte
	var createdAt, updatedAt sql.NullTime

	if err := row.Scan(&t.ID, &weekday, &payload, &t.Active, &createdAt, &updatedAt); err != nil {
		return nil, err
	}

	var docs []windowDoc
	if err := json.Unmarshal(payload, &docs); err != nil {
		return nil, fmt.Errorf("unmarshal windows: %w", err)
	}

	t.Weekday = time.Weekday(weekday)
	t.Windows = make([]domain.AvailabilityWindow, 0, len(docs))
	for _, d := range docs {
		t.Windows = append(t.Windows, domain.AvailabilityWindow{
			Start:  types.TimeString(d.Inicio),
			End:    types.TimeString(d.Fim),
			Active: d.Ativo,
		})
	}
	t.CreatedAt = createdAt.Time
	t.UpdatedAt = updatedAt.Time

	return &t, nil
}
