package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"tramite-system/internal/dto"
	"tramite-system/internal/entities"
	apperrors "tramite-system/pkg/errors"
	"tramite-system/pkg/types"
)

const (
	clienteTable  = "clients"
	clienteFields = "rfc, business_name, email, phone_number, contact_first_name, contact_last_name, email_2, phone_number_2, contact_first_name_2, contact_last_name_2"
)

type dbCliente struct {
	RFC               string
	BusinessName      string
	Email             string
	PhoneNumber       string
	ContactFirstName  string
	ContactLastName   string
	Email2            sql.NullString
	PhoneNumber2      sql.NullString
	ContactFirstName2 sql.NullString
	ContactLastName2  sql.NullString
}

func (db *dbCliente) scanTargets() []interface{} {
	return []interface{}{
		&db.RFC, &db.BusinessName, &db.Email, &db.PhoneNumber,
		&db.ContactFirstName, &db.ContactLastName,
		&db.Email2, &db.PhoneNumber2, &db.ContactFirstName2, &db.ContactLastName2,
	}
}

func (db *dbCliente) toEntity() entities.Cliente {
	return entities.Cliente{
		RFC:               db.RFC,
		BusinessName:      db.BusinessName,
		Email:             db.Email,
		PhoneNumber:       db.PhoneNumber,
		ContactFirstName:  db.ContactFirstName,
		ContactLastName:   db.ContactLastName,
		Email2:            nullStringPtr(db.Email2),
		PhoneNumber2:      nullStringPtr(db.PhoneNumber2),
		ContactFirstName2: nullStringPtr(db.ContactFirstName2),
		ContactLastName2:  nullStringPtr(db.ContactLastName2),
	}
}

type ClienteRepositoryInterface interface {
	GetClientes(ctx context.Context, filter types.Filter) ([]entities.Cliente, uint64, error)
	FindByRFC(ctx context.Context, rfc string) (*entities.Cliente, error)
	FindByBusinessName(ctx context.Context, businessName string) (*entities.Cliente, error)
	CreateCliente(ctx context.Context, payload dto.CreateClienteDTO) (*entities.Cliente, error)
	UpdateCliente(ctx context.Context, rfc string, payload dto.UpdateClienteDTO) (*entities.Cliente, error)
	DeleteCliente(ctx context.Context, rfc string) error
}

type clienteRepository struct{ storage *pgxpool.Pool }

func NewClienteRepository(storage *pgxpool.Pool) ClienteRepositoryInterface {
	return &clienteRepository{storage: storage}
}

func (r *clienteRepository) GetClientes(ctx context.Context, filter types.Filter) ([]entities.Cliente, uint64, error) {
	countBuilder := sq.Select("COUNT(*)").From(clienteTable).PlaceholderFormat(sq.Dollar)
	listBuilder := sq.Select(strings.Split(clienteFields, ", ")...).
		From(clienteTable).
		OrderBy("business_name").
		PlaceholderFormat(sq.Dollar)

	if filter.Search != "" {
		like := sq.Or{
			sq.ILike{"business_name": "%" + filter.Search + "%"},
			sq.ILike{"rfc": "%" + filter.Search + "%"},
		}
		countBuilder = countBuilder.Where(like)
		listBuilder = listBuilder.Where(like)
	}

	countQuery, countArgs, err := countBuilder.ToSql()
	if err != nil {
		return nil, 0, err
	}
	var total uint64
	if err := r.storage.QueryRow(ctx, countQuery, countArgs...).Scan(&total); err != nil {
		return nil, 0, err
	}
	if total == 0 {
		return []entities.Cliente{}, 0, nil
	}

	if filter.WithPagination {
		if filter.Limit > 0 {
			listBuilder = listBuilder.Limit(uint64(filter.Limit))
		}
		if filter.Offset > 0 {
			listBuilder = listBuilder.Offset(uint64(filter.Offset))
		}
	}

	query, args, err := listBuilder.ToSql()
	if err != nil {
		return nil, 0, err
	}

	rows, err := r.storage.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	clientes := make([]entities.Cliente, 0)
	for rows.Next() {
		var dbRow dbCliente
		if err := rows.Scan(dbRow.scanTargets()...); err != nil {
			return nil, 0, err
		}
		clientes = append(clientes, dbRow.toEntity())
	}
	return clientes, total, rows.Err()
}

func (r *clienteRepository) findOne(ctx context.Context, column, value string) (*entities.Cliente, error) {
	query := fmt.Sprintf("SELECT %s FROM %s WHERE %s = $1 LIMIT 1", clienteFields, clienteTable, column)

	var dbRow dbCliente
	if err := r.storage.QueryRow(ctx, query, value).Scan(dbRow.scanTargets()...); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, err
	}
	cliente := dbRow.toEntity()
	return &cliente, nil
}

func (r *clienteRepository) FindByRFC(ctx context.Context, rfc string) (*entities.Cliente, error) {
	return r.findOne(ctx, "rfc", rfc)
}

func (r *clienteRepository) FindByBusinessName(ctx context.Context, businessName string) (*entities.Cliente, error) {
	return r.findOne(ctx, "business_name", businessName)
}

func (r *clienteRepository) CreateCliente(ctx context.Context, payload dto.CreateClienteDTO) (*entities.Cliente, error) {
	query := fmt.Sprintf(`INSERT INTO %s (%s)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING %s`, clienteTable, clienteFields, clienteFields)

	var dbRow dbCliente
	err := r.storage.QueryRow(ctx, query,
		payload.RFC, payload.BusinessName, payload.Email, payload.PhoneNumber,
		payload.ContactFirstName, payload.ContactLastName,
		payload.Email2, payload.PhoneNumber2,
		payload.ContactFirstName2, payload.ContactLastName2,
	).Scan(dbRow.scanTargets()...)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return nil, apperrors.ErrConflict
		}
		return nil, err
	}
	cliente := dbRow.toEntity()
	return &cliente, nil
}

func (r *clienteRepository) UpdateCliente(ctx context.Context, rfc string, payload dto.UpdateClienteDTO) (*entities.Cliente, error) {
	var setClauses []string
	var args []interface{}
	argID := 1

	addClause := func(column string, value interface{}) {
		setClauses = append(setClauses, fmt.Sprintf("%s = $%d", column, argID))
		args = append(args, value)
		argID++
	}

	if payload.BusinessName != nil {
		addClause("business_name", *payload.BusinessName)
	}
	if payload.Email != nil {
		addClause("email", *payload.Email)
	}
	if payload.PhoneNumber != nil {
		addClause("phone_number", *payload.PhoneNumber)
	}
	if payload.ContactFirstName != nil {
		addClause("contact_first_name", *payload.ContactFirstName)
	}
	if payload.ContactLastName != nil {
		addClause("contact_last_name", *payload.ContactLastName)
	}
	if payload.Email2.Valid {
		addClause("email_2", payload.Email2.String)
	}
	if payload.PhoneNumber2.Valid {
		addClause("phone_number_2", payload.PhoneNumber2.String)
	}
	if payload.ContactFirstName2.Valid {
		addClause("contact_first_name_2", payload.ContactFirstName2.String)
	}
	if payload.ContactLastName2.Valid {
		addClause("contact_last_name_2", payload.ContactLastName2.String)
	}

	if len(setClauses) == 0 {
		return r.FindByRFC(ctx, rfc)
	}

	query := fmt.Sprintf("UPDATE %s SET %s WHERE rfc = $%d RETURNING %s",
		clienteTable, strings.Join(setClauses, ", "), argID, clienteFields)
	args = append(args, rfc)

	var dbRow dbCliente
	if err := r.storage.QueryRow(ctx, query, args...).Scan(dbRow.scanTargets()...); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, err
	}
	cliente := dbRow.toEntity()
	return &cliente, nil
}

func (r *clienteRepository) DeleteCliente(ctx context.Context, rfc string) error {
	result, err := r.storage.Exec(ctx,
		fmt.Sprintf("DELETE FROM %s WHERE rfc = $1", clienteTable), rfc)
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
