package repositories

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"tramite-system/internal/entities"
	apperrors "tramite-system/pkg/errors"
	"tramite-system/pkg/types"
)

const (
	empleadoTable  = "empleados"
	empleadoFields = "id, first_name, last_name, email, puesto, password, created_at"
)

type dbEmpleado struct {
	ID        uint64
	FirstName string
	LastName  string
	Email     string
	Puesto    string
	Password  string
	CreatedAt time.Time
}

func (db *dbEmpleado) scanTargets() []interface{} {
	return []interface{}{&db.ID, &db.FirstName, &db.LastName, &db.Email, &db.Puesto, &db.Password, &db.CreatedAt}
}

func (db *dbEmpleado) toEntity() entities.Empleado {
	return entities.Empleado{
		ID:        db.ID,
		FirstName: db.FirstName,
		LastName:  db.LastName,
		Email:     db.Email,
		Puesto:    db.Puesto,
		Password:  db.Password,
		CreatedAt: db.CreatedAt,
	}
}

type EmpleadoRepositoryInterface interface {
	GetEmpleados(ctx context.Context, filter types.Filter) ([]entities.Empleado, uint64, error)
	FindByID(ctx context.Context, id uint64) (*entities.Empleado, error)
	FindByEmail(ctx context.Context, email string) (*entities.Empleado, error)
	FindEmailsByPuesto(ctx context.Context, puesto string) ([]string, error)
	CreateEmpleado(ctx context.Context, empleado *entities.Empleado) (*entities.Empleado, error)
	DeleteEmpleado(ctx context.Context, id uint64) error
}

type empleadoRepository struct{ storage *pgxpool.Pool }

func NewEmpleadoRepository(storage *pgxpool.Pool) EmpleadoRepositoryInterface {
	return &empleadoRepository{storage: storage}
}

func (r *empleadoRepository) GetEmpleados(ctx context.Context, filter types.Filter) ([]entities.Empleado, uint64, error) {
	countBuilder := sq.Select("COUNT(*)").From(empleadoTable).PlaceholderFormat(sq.Dollar)
	listBuilder := sq.Select(strings.Split(empleadoFields, ", ")...).
		From(empleadoTable).
		OrderBy("id").
		PlaceholderFormat(sq.Dollar)

	if filter.Search != "" {
		like := sq.Or{
			sq.ILike{"first_name": "%" + filter.Search + "%"},
			sq.ILike{"last_name": "%" + filter.Search + "%"},
			sq.ILike{"email": "%" + filter.Search + "%"},
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
		return []entities.Empleado{}, 0, nil
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

	empleados := make([]entities.Empleado, 0)
	for rows.Next() {
		var dbRow dbEmpleado
		if err := rows.Scan(dbRow.scanTargets()...); err != nil {
			return nil, 0, err
		}
		empleados = append(empleados, dbRow.toEntity())
	}
	return empleados, total, rows.Err()
}

func (r *empleadoRepository) FindByID(ctx context.Context, id uint64) (*entities.Empleado, error) {
	query := fmt.Sprintf("SELECT %s FROM %s WHERE id = $1", empleadoFields, empleadoTable)

	var dbRow dbEmpleado
	if err := r.storage.QueryRow(ctx, query, id).Scan(dbRow.scanTargets()...); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, err
	}
	empleado := dbRow.toEntity()
	return &empleado, nil
}

func (r *empleadoRepository) FindByEmail(ctx context.Context, email string) (*entities.Empleado, error) {
	query := fmt.Sprintf("SELECT %s FROM %s WHERE email = $1", empleadoFields, empleadoTable)

	var dbRow dbEmpleado
	if err := r.storage.QueryRow(ctx, query, email).Scan(dbRow.scanTargets()...); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, err
	}
	empleado := dbRow.toEntity()
	return &empleado, nil
}

// FindEmailsByPuesto regresa la lista de correos del puesto en orden
// estable (por id), que es el orden en que se envían las notificaciones.
func (r *empleadoRepository) FindEmailsByPuesto(ctx context.Context, puesto string) ([]string, error) {
	query := fmt.Sprintf("SELECT email FROM %s WHERE puesto = $1 ORDER BY id", empleadoTable)

	rows, err := r.storage.Query(ctx, query, puesto)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	emails := make([]string, 0)
	for rows.Next() {
		var email string
		if err := rows.Scan(&email); err != nil {
			return nil, err
		}
		emails = append(emails, email)
	}
	return emails, rows.Err()
}

func (r *empleadoRepository) CreateEmpleado(ctx context.Context, empleado *entities.Empleado) (*entities.Empleado, error) {
	query := fmt.Sprintf(`INSERT INTO %s (first_name, last_name, email, puesto, password)
		VALUES ($1, $2, $3, $4, $5) RETURNING %s`, empleadoTable, empleadoFields)

	var dbRow dbEmpleado
	err := r.storage.QueryRow(ctx, query,
		empleado.FirstName, empleado.LastName, empleado.Email, empleado.Puesto, empleado.Password,
	).Scan(dbRow.scanTargets()...)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return nil, apperrors.ErrConflict
		}
		return nil, err
	}
	created := dbRow.toEntity()
	return &created, nil
}

func (r *empleadoRepository) DeleteEmpleado(ctx context.Context, id uint64) error {
	result, err := r.storage.Exec(ctx,
		fmt.Sprintf("DELETE FROM %s WHERE id = $1", empleadoTable), id)
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
