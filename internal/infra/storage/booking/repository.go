package booking

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/lib/pq"

	"github.com/psicoagenda/booking-service/internal/domain"
	"github.com/psicoagenda/booking-service/pkg/dbmetrics"
	"github.com/psicoagenda/booking-service/pkg/psqlbuilder"
)

const uniqueViolation = "23505"

var bookingColumns = []string{
	"id",
	"paciente_id",
	"lead_id",
	"data_hora",
	"duracao_minutos",
	"tipo",
	"status",
	"valor",
	"observacoes",
	"eh_pacote",
	"tipo_pacote",
	"total_sessoes",
	"sessao_atual",
	"pacote_principal_id",
	"dia_semana_fixo",
	"horario_fixo",
	"pagamento_status",
	"pagamento_metodo",
	"pagamento_transacao_id",
	"pagamento_preference_id",
	"data_pagamento",
	"comprovante",
	"parcelas",
	"valor_parcela",
	"cancelado",
	"data_cancelamento",
	"motivo_cancelamento",
	"cancelado_por",
	"created_at",
	"updated_at",
}

// Repository persists bookings
type Repository struct {
	db DBExecutor
}

func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create inserts a new booking. The id is generated client-side when unset.
// A violation of the partial unique index on (data_hora) for non-cancelled
// bookings is mapped to ErrSlotTaken so callers can treat it as a scheduling
// conflict rather than an internal error.
func (r *Repository) Create(ctx context.Context, b *domain.Booking) (*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	if b.ID == uuid.Nil {
		b.ID = uuid.New()
	}

	var packageType *string
	if b.Package.IsPackage {
		pt := string(b.Package.PackageType)
		packageType = &pt
	}
	var fixedWeekday *int
	var fixedTime *string
	if b.Package.IsPackage {
		wd := int(b.Package.FixedWeekday)
		fixedWeekday = &wd
		fixedTime = &b.Package.FixedTime
	}

	query, args, err := psqlbuilder.Insert("agendamentos").
		Columns(
			"id",
			"paciente_id",
			"lead_id",
			"data_hora",
			"duracao_minutos",
			"tipo",
			"status",
			"valor",
			"observacoes",
			"eh_pacote",
			"tipo_pacote",
			"total_sessoes",
			"sessao_atual",
			"pacote_principal_id",
			"dia_semana_fixo",
			"horario_fixo",
			"pagamento_status",
			"pagamento_metodo",
			"pagamento_transacao_id",
			"pagamento_preference_id",
			"data_pagamento",
			"comprovante",
			"parcelas",
			"valor_parcela",
		).
		Values(
			b.ID,
			b.PatientID,
			b.LeadID,
			b.When,
			b.Duration,
			b.Type,
			b.Status,
			b.Value,
			b.Notes,
			b.Package.IsPackage,
			packageType,
			b.Package.TotalSessions,
			b.Package.SessionIndex,
			b.Package.PrincipalID,
			fixedWeekday,
			fixedTime,
			b.Payment.Status,
			b.Payment.Method,
			b.Payment.TransactionID,
			b.Payment.PreferenceID,
			b.Payment.PaidAt,
			b.Payment.Proof,
			b.Installments.Count,
			b.Installments.PerAmount,
		).
		Suffix("RETURNING created_at, updated_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(&createdAt, &updatedAt)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && string(pqErr.Code) == uniqueViolation {
			return nil, fmt.Errorf("%w: %s", ErrSlotTaken, b.When.Format(time.RFC3339))
		}
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	b.CreatedAt = createdAt.Time
	b.UpdatedAt = updatedAt.Time

	return b, nil
}

// GetByID fetches a booking by id
func (r *Repository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(bookingColumns...).
		From("agendamentos").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	b, err := scanBooking(executor.QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, ErrBookingNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan booking: %v", ErrScanRow, err)
	}
	return b, nil
}

// FindActiveByWhen returns the non-cancelled booking occupying the exact
// instant, or ErrBookingNotFound.
func (r *Repository) FindActiveByWhen(ctx context.Context, when time.Time) (*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(bookingColumns...).
		From("agendamentos").
		Where(squirrel.Eq{"data_hora": when}).
		Where(squirrel.NotEq{"status": domain.StatusCancelled}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: FindActiveByWhen - build select query: %v", ErrBuildQuery, err)
	}

	b, err := scanBooking(executor.QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, ErrBookingNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: FindActiveByWhen - scan booking: %v", ErrScanRow, err)
	}
	return b, nil
}

// ListActiveBetween returns every non-cancelled booking whose instant falls
// within [from, to], ordered by instant. This feeds the slot catalog and the
// calendar aggregator with a single span query.
func (r *Repository) ListActiveBetween(ctx context.Context, from, to time.Time) ([]*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(bookingColumns...).
		From("agendamentos").
		Where(squirrel.GtOrEq{"data_hora": from}).
		Where(squirrel.LtOrEq{"data_hora": to}).
		Where(squirrel.NotEq{"status": domain.StatusCancelled}).
		OrderBy("data_hora ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListActiveBetween - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListActiveBetween - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return scanBookings(rows)
}

// ListWithFilter returns bookings matching the filter, newest first
func (r *Repository) ListWithFilter(ctx context.Context, filter domain.BookingFilter) ([]*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	builder := psqlbuilder.Select(bookingColumns...).From("agendamentos")

	if filter.StartDate != nil {
		builder = builder.Where(squirrel.GtOrEq{"data_hora": *filter.StartDate})
	}
	if filter.EndDate != nil {
		builder = builder.Where(squirrel.LtOrEq{"data_hora": *filter.EndDate})
	}
	if filter.PatientID != nil {
		builder = builder.Where(squirrel.Eq{"paciente_id": *filter.PatientID})
	}
	if filter.Status != nil {
		builder = builder.Where(squirrel.Eq{"status": *filter.Status})
	} else if !filter.IncludeInactive {
		builder = builder.Where(squirrel.NotEq{"status": domain.StatusCancelled})
	}

	query, args, err := builder.OrderBy("data_hora ASC").ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListWithFilter - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListWithFilter - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return scanBookings(rows)
}

// UpdateStatus sets the booking status
func (r *Repository) UpdateStatus(ctx context.Context, id uuid.UUID, status domain.BookingStatus) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("agendamentos").
		Set("status", status).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: UpdateStatus - build update query: %v", ErrBuildQuery, err)
	}

	return r.execExpectingRow(ctx, executor, "UpdateStatus", query, args)
}

// Cancel marks a booking cancelled, recording reason, actor and timestamp.
// The instant becomes free for conflict checks immediately: the partial
// unique index only covers non-cancelled rows.
func (r *Repository) Cancel(ctx context.Context, id uuid.UUID, reason, cancelledBy string) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("agendamentos").
		Set("status", domain.StatusCancelled).
		Set("cancelado", true).
		Set("motivo_cancelamento", reason).
		Set("cancelado_por", cancelledBy).
		Set("data_cancelamento", squirrel.Expr("NOW()")).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: Cancel - build update query: %v", ErrBuildQuery, err)
	}

	return r.execExpectingRow(ctx, executor, "Cancel", query, args)
}

// ConfirmPayment marks the booking confirmed with an approved payment
func (r *Repository) ConfirmPayment(
	ctx context.Context,
	id uuid.UUID,
	method domain.PaymentMethod,
	transactionID *string,
	paidAt time.Time,
	proof *string,
) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("agendamentos").
		Set("status", domain.StatusConfirmed).
		Set("pagamento_status", domain.PaymentApproved).
		Set("pagamento_metodo", method).
		Set("pagamento_transacao_id", transactionID).
		Set("data_pagamento", paidAt).
		Set("comprovante", proof).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: ConfirmPayment - build update query: %v", ErrBuildQuery, err)
	}

	return r.execExpectingRow(ctx, executor, "ConfirmPayment", query, args)
}

func (r *Repository) execExpectingRow(ctx context.Context, executor DBExecutor, op, query string, args []interface{}) error {
	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: %s - execute update: %v", ErrExecQuery, op, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: %s - get rows affected: %v", ErrExecQuery, op, err)
	}
	if rowsAffected == 0 {
		return ErrBookingNotFound
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanBooking(row rowScanner) (*domain.Booking, error) {
	var b domain.Booking
	var leadID, principalID uuid.NullUUID
	var packageType sql.NullString
	var fixedWeekday sql.NullInt64
	var fixedTime sql.NullString
	var cancelledAt, paidAt, createdAt, updatedAt sql.NullTime

	err := row.Scan(
		&b.ID,
		&b.PatientID,
		&leadID,
		&b.When,
		&b.Duration,
		&b.Type,
		&b.Status,
		&b.Value,
		&b.Notes,
		&b.Package.IsPackage,
		&packageType,
		&b.Package.TotalSessions,
		&b.Package.SessionIndex,
		&principalID,
		&fixedWeekday,
		&fixedTime,
		&b.Payment.Status,
		&b.Payment.Method,
		&b.Payment.TransactionID,
		&b.Payment.PreferenceID,
		&paidAt,
		&b.Payment.Proof,
		&b.Installments.Count,
		&b.Installments.PerAmount,
		&b.Cancellation.Cancelled,
		&cancelledAt,
		&b.Cancellation.Reason,
		&b.Cancellation.CancelledBy,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	if leadID.Valid {
		b.LeadID = &leadID.UUID
	}
	if principalID.Valid {
		b.Package.PrincipalID = &principalID.UUID
	}
	if packageType.Valid {
		b.Package.PackageType = domain.PackageType(packageType.String)
	}
	if fixedWeekday.Valid {
		b.Package.FixedWeekday = time.Weekday(fixedWeekday.Int64)
	}
	if fixedTime.Valid {
		b.Package.FixedTime = fixedTime.String
	}
	if paidAt.Valid {
		b.Payment.PaidAt = &paidAt.Time
	}
	if cancelledAt.Valid {
		b.Cancellation.At = &cancelledAt.Time
	}
	b.When = b.When.In(domain.LocalZone)
	b.CreatedAt = createdAt.Time
	b.UpdatedAt = updatedAt.Time

	return &b, nil
}

func scanBookings(rows *sql.Rows) ([]*domain.Booking, error) {
	bookings := make([]*domain.Booking, 0)

	for rows.Next() {
		b, err := scanBooking(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: scanBookings - scan row: %v", ErrScanRow, err)
		}
		bookings = append(bookings, b)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: scanBookings - rows error: %v", ErrScanRow, err)
	}

	return bookings, nil
}
