package patient

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/lib/pq"

	"github.com/psicoagenda/booking-service/internal/domain"
	"github.com/psicoagenda/booking-service/pkg/dbmetrics"
	"github.com/psicoagenda/booking-service/pkg/psqlbuilder"
)

const uniqueViolation = "23505"

var patientColumns = []string{
	"id",
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
	"observacoes",
	"primeira_consulta",
	"ativo",
	"created_at",
	"updated_at",
}

// Repository persists patients
type Repository struct {
	db dbmetrics.DBExecutor
}

func NewRepository(db dbmetrics.DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create inserts a new patient. Email and CPF uniqueness violations map to
// ErrDuplicate; callers then fall back to lookup-by-email.
func (r *Repository) Create(ctx context.Context, p *domain.Patient) (*domain.Patient, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}

	query, args, err := psqlbuilder.Insert("pacientes").
		Columns(
			"id",
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
			"observacoes",
			"primeira_consulta",
			"ativo",
		).
		Values(
			p.ID,
			p.Name,
			p.Email,
			p.Phone,
			p.CPF,
			p.BirthDate,
			p.Address.Street,
			p.Address.Number,
			p.Address.Neighborhood,
			p.Address.City,
			p.Address.State,
			p.Address.PostalCode,
			p.Notes,
			p.FirstConsultation,
			true,
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
			return nil, fmt.Errorf("%w: email=%s", ErrDuplicate, p.Email)
		}
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	p.Active = true
	p.CreatedAt = createdAt.Time
	p.UpdatedAt = updatedAt.Time

	return p, nil
}

// GetByID fetches a patient by id
func (r *Repository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Patient, error) {
	return r.getOne(ctx, squirrel.Eq{"id": id}, "GetByID")
}

// GetByEmail fetches the active patient with the given email
func (r *Repository) GetByEmail(ctx context.Context, email string) (*domain.Patient, error) {
	return r.getOne(ctx, squirrel.And{
		squirrel.Eq{"email": email},
		squirrel.Eq{"ativo": true},
	}, "GetByEmail")
}

func (r *Repository) getOne(ctx context.Context, pred interface{}, op string) (*domain.Patient, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(patientColumns...).
		From("pacientes").
		Where(pred).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: %s - build select query: %v", ErrBuildQuery, op, err)
	}

	p, err := scanPatient(executor.QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, ErrPatientNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %s - scan patient: %v", ErrScanRow, op, err)
	}
	return p, nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanPatient(row rowScanner) (*domain.Patient, error) {
	var p domain.Patient
	var birthDate, createdAt, updatedAt sql.NullTime

	err := row.Scan(
		&p.ID,
		&p.Name,
		&p.Email,
		&p.Phone,
		&p.CPF,
		&birthDate,
		&p.Address.Street,
		&p.Address.Number,
		&p.Address.Neighborhood,
		&p.Address.City,
		&p.Address.State,
		&p.Address.PostalCode,
		&p.Notes,
		&p.FirstConsultation,
		&p.Active,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	if birthDate.Valid {
		p.BirthDate = &birthDate.Time
	}
	p.CreatedAt = createdAt.Time
	p.UpdatedAt = updatedAt.Time

	return &p, nil
}
