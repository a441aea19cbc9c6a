package lead

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"

	"github.com/psicoagenda/booking-service/internal/domain"
	"github.com/psicoagenda/booking-service/pkg/dbmetrics"
	"github.com/psicoagenda/booking-service/pkg/psqlbuilder"
)

var leadColumns = []string{
	"id",
	"paciente_id",
	"nome",
	"email",
	"telefone",
	"cpf",
	"data_nascimento",
	"endereco_rua",
	"endereco_numero",
	"endereco_bairro",
	"endereco_cidade",
	"endereco_estado",
	"endereco_cep",
	"tipo_sessao",
	"data_hora",
	"valor",
	"observacoes",
	"parcelas",
	"valor_parcela",
	"status_lead",
	"agendamento_id",
	"mp_preference_id",
	"mp_init_point",
	"mp_last_payment_id",
	"origem",
	"created_at",
	"updated_at",
}

// Repository persists leads
type Repository struct {
	db dbmetrics.DBExecutor
}

func NewRepository(db dbmetrics.DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create inserts a new lead in aguardando_pagamento
func (r *Repository) Create(ctx context.Context, l *domain.Lead) (*domain.Lead, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	if l.ID == uuid.Nil {
		l.ID = uuid.New()
	}
	if l.Status == "" {
		l.Status = domain.LeadAwaitingPayment
	}
	if l.Origin == "" {
		l.Origin = "site"
	}

	query, args, err := psqlbuilder.Insert("leads").
		Columns(
			"id",
			"paciente_id",
			"nome",
			"email",
			"telefone",
			"cpf",
			"data_nascimento",
			"endereco_rua",
			"endereco_numero",
			"endereco_bairro",
			"endereco_cidade",
			"endereco_estado",
			"endereco_cep",
			"tipo_sessao",
			"data_hora",
			"valor",
			"observacoes",
			"parcelas",
			"valor_parcela",
			"status_lead",
			"origem",
		).
		Values(
			l.ID,
			l.PatientID,
			l.Name,
			l.Email,
			l.Phone,
			l.CPF,
			l.BirthDate,
			l.Address.Street,
			l.Address.Number,
			l.Address.Neighborhood,
			l.Address.City,
			l.Address.State,
			l.Address.PostalCode,
			l.SessionType,
			l.When,
			l.Value,
			l.Notes,
			l.Installments.Count,
			l.Installments.PerAmount,
			l.Status,
			l.Origin,
		).
		Suffix("RETURNING created_at, updated_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&createdAt, &updatedAt); err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	l.CreatedAt = createdAt.Time
	l.UpdatedAt = updatedAt.Time

	return l, nil
}

// GetByID fetches a lead by id
func (r *Repository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Lead, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(leadColumns...).
		From("leads").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	l, err := scanLead(executor.QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, ErrLeadNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan lead: %v", ErrScanRow, err)
	}
	return l, nil
}

// List returns leads matching the filter, newest first
func (r *Repository) List(ctx context.Context, filter domain.LeadFilter) ([]*domain.Lead, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	builder := psqlbuilder.Select(leadColumns...).From("leads")

	if filter.Status != nil {
		builder = builder.Where(squirrel.Eq{"status_lead": *filter.Status})
	}
	if filter.StartDate != nil {
		builder = builder.Where(squirrel.GtOrEq{"created_at": *filter.StartDate})
	}
	if filter.EndDate != nil {
		builder = builder.Where(squirrel.LtOrEq{"created_at": *filter.EndDate})
	}
	if filter.Email != nil {
		builder = builder.Where(squirrel.ILike{"email": "%" + strings.TrimSpace(*filter.Email) + "%"})
	}

	query, args, err := builder.OrderBy("created_at DESC").ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: List - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: List - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	leads := make([]*domain.Lead, 0)
	for rows.Next() {
		l, err := scanLead(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: List - scan row: %v", ErrScanRow, err)
		}
		leads = append(leads, l)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: List - rows error: %v", ErrScanRow, err)
	}

	return leads, nil
}

// SetCheckout stores the provider correlation keys after the preference was
// created.
func (r *Repository) SetCheckout(ctx context.Context, id uuid.UUID, preferenceID, initPoint string) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("leads").
		Set("mp_preference_id", preferenceID).
		Set("mp_init_point", initPoint).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: SetCheckout - build update query: %v", ErrBuildQuery, err)
	}

	return r.execExpectingRow(ctx, executor, "SetCheckout", query, args)
}

// MarkConverted flips the lead to convertido and links the principal booking.
// The update is conditional on the lead still awaiting payment: a second
// conversion attempt affects zero rows and returns ErrAlreadyTerminal, which
// is how duplicate webhook deliveries become no-ops.
func (r *Repository) MarkConverted(ctx context.Context, id, bookingID uuid.UUID, paymentID string) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("leads").
		Set("status_lead", domain.LeadConverted).
		Set("agendamento_id", bookingID).
		Set("mp_last_payment_id", paymentID).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		Where(squirrel.Eq{"status_lead": domain.LeadAwaitingPayment}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: MarkConverted - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: MarkConverted - execute update: %v", ErrExecQuery, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: MarkConverted - get rows affected: %v", ErrExecQuery, err)
	}
	if rowsAffected == 0 {
		return ErrAlreadyTerminal
	}
	return nil
}

// UpdateStatus sets the lead status unconditionally (administrative path)
func (r *Repository) UpdateStatus(ctx context.Context, id uuid.UUID, status domain.LeadStatus) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("leads").
		Set("status_lead", status).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: UpdateStatus - build update query: %v", ErrBuildQuery, err)
	}

	return r.execExpectingRow(ctx, executor, "UpdateStatus", query, args)
}

// SetLastPayment records the most recent provider payment id seen for the lead
func (r *Repository) SetLastPayment(ctx context.Context, id uuid.UUID, paymentID string) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("leads").
		Set("mp_last_payment_id", paymentID).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: SetLastPayment - build update query: %v", ErrBuildQuery, err)
	}

	return r.execExpectingRow(ctx, executor, "SetLastPayment", query, args)
}

// Delete removes a lead permanently. Administrative purge only.
func (r *Repository) Delete(ctx context.Context, id uuid.UUID) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete("leads").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: Delete - build delete query: %v", ErrBuildQuery, err)
	}

	return r.execExpectingRow(ctx, executor, "Delete", query, args)
}

func (r *Repository) execExpectingRow(ctx context.Context, executor dbmetrics.DBExecutor, op, query string, args []interface{}) error {
	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: %s - execute query: %v", ErrExecQuery, op, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: %s - get rows affected: %v", ErrExecQuery, op, err)
	}
	if rowsAffected == 0 {
		return ErrLeadNotFound
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanLead(row rowScanner) (*domain.Lead, error) {
	var l domain.Lead
	var patientID, bookingID uuid.NullUUID
	var birthDate sql.NullTime
	var createdAt, updatedAt sql.NullTime

	err := row.Scan(
		&l.ID,
		&patientID,
		&l.Name,
		&l.Email,
		&l.Phone,
		&l.CPF,
		&birthDate,
		&l.Address.Street,
		&l.Address.Number,
		&l.Address.Neighborhood,
		&l.Address.City,
		&l.Address.State,
		&l.Address.PostalCode,
		&l.SessionType,
		&l.When,
		&l.Value,
		&l.Notes,
		&l.Installments.Count,
		&l.Installments.PerAmount,
		&l.Status,
		&bookingID,
		&l.PreferenceID,
		&l.InitPoint,
		&l.LastPaymentID,
		&l.Origin,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	if patientID.Valid {
		l.PatientID = &patientID.UUID
	}
	if bookingID.Valid {
		l.BookingID = &bookingID.UUID
	}
	if birthDate.Valid {
		l.BirthDate = &birthDate.Time
	}
	l.When = l.When.In(domain.LocalZone)
	l.CreatedAt = createdAt.Time
	l.UpdatedAt = updatedAt.Time

	return &l, nil
}
