package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"tramite-system/internal/dto"
	"tramite-system/internal/entities"
	apperrors "tramite-system/pkg/errors"
)

const tramiteTable = "procedures"

var tramiteColumns = []string{
	"t.id", "t.client_rfc", "t.number",
	"t.distinctive_denomination", "t.generic_name", "t.product_manufacturer",
	"t.service_name", "t.sub_service_name", "t.input_value",
	"t.type_description", "t.class_name",
	"t.start_date", "t.end_date", "t.status",
	"t.technical_data", "t.completion_percentage",
	"t.cofepris_entry_date", "t.cofepris_status",
	"t.cofepris_status_health_registration_number", "t.cofepris_status_registrer_number",
	"t.cofepris_status_prevention_response", "t.cofepris_entry_number", "t.cofepris_link",
	"t.assigned_consultant", "t.additional_information",
	"t.billing", "t.payment_status", "t.payment_date", "t.collection_notes",
	"t.sales_flag",
	"c.rfc", "c.business_name", "c.email", "c.phone_number",
	"c.contact_first_name", "c.contact_last_name",
	"c.email_2", "c.phone_number_2", "c.contact_first_name_2", "c.contact_last_name_2",
}

type dbTramite struct {
	ID        string
	ClientRFC string
	Number    int64

	DistinctiveDenomination string
	GenericName             string
	ProductManufacturer     string
	ServiceName             string
	SubServiceName          sql.NullString
	InputValue              string
	TypeDescription         string
	ClassName               string

	StartDate time.Time
	EndDate   sql.NullTime
	Status    string

	TechnicalData        string
	CompletionPercentage float64

	CofeprisEntryDate                      sql.NullTime
	CofeprisStatus                         sql.NullString
	CofeprisStatusHealthRegistrationNumber sql.NullString
	CofeprisStatusRegistrerNumber          sql.NullString
	CofeprisStatusPreventionResponse       sql.NullTime
	CofeprisEntryNumber                    sql.NullString
	CofeprisLink                           sql.NullString

	AssignedConsultant    string
	AdditionalInformation sql.NullString

	Billing         sql.NullString
	PaymentStatus   sql.NullString
	PaymentDate     sql.NullTime
	CollectionNotes sql.NullString
	SalesFlag       bool

	// Columnas del cliente (LEFT JOIN, pueden venir nulas).
	CRFC               sql.NullString
	CBusinessName      sql.NullString
	CEmail             sql.NullString
	CPhoneNumber       sql.NullString
	CContactFirstName  sql.NullString
	CContactLastName   sql.NullString
	CEmail2            sql.NullString
	CPhoneNumber2      sql.NullString
	CContactFirstName2 sql.NullString
	CContactLastName2  sql.NullString
}

func (db *dbTramite) scanTargets() []interface{} {
	return []interface{}{
		&db.ID, &db.ClientRFC, &db.Number,
		&db.DistinctiveDenomination, &db.GenericName, &db.ProductManufacturer,
		&db.ServiceName, &db.SubServiceName, &db.InputValue,
		&db.TypeDescription, &db.ClassName,
		&db.StartDate, &db.EndDate, &db.Status,
		&db.TechnicalData, &db.CompletionPercentage,
		&db.CofeprisEntryDate, &db.CofeprisStatus,
		&db.CofeprisStatusHealthRegistrationNumber, &db.CofeprisStatusRegistrerNumber,
		&db.CofeprisStatusPreventionResponse, &db.CofeprisEntryNumber, &db.CofeprisLink,
		&db.AssignedConsultant, &db.AdditionalInformation,
		&db.Billing, &db.PaymentStatus, &db.PaymentDate, &db.CollectionNotes,
		&db.SalesFlag,
		&db.CRFC, &db.CBusinessName, &db.CEmail, &db.CPhoneNumber,
		&db.CContactFirstName, &db.CContactLastName,
		&db.CEmail2, &db.CPhoneNumber2, &db.CContactFirstName2, &db.CContactLastName2,
	}
}

func (db *dbTramite) toEntity() entities.Tramite {
	t := entities.Tramite{
		ID:                      db.ID,
		ClientRFC:               db.ClientRFC,
		Number:                  uint64(db.Number),
		DistinctiveDenomination: db.DistinctiveDenomination,
		GenericName:             db.GenericName,
		ProductManufacturer:     db.ProductManufacturer,
		ServiceName:             db.ServiceName,
		SubServiceName:          nullStringPtr(db.SubServiceName),
		InputValue:              db.InputValue,
		TypeDescription:         db.TypeDescription,
		ClassName:               db.ClassName,
		StartDate:               db.StartDate,
		EndDate:                 nullTimePtr(db.EndDate),
		Status:                  db.Status,
		TechnicalData:           db.TechnicalData,
		CompletionPercentage:    db.CompletionPercentage,

		CofeprisEntryDate:                      nullTimePtr(db.CofeprisEntryDate),
		CofeprisStatus:                         nullStringPtr(db.CofeprisStatus),
		CofeprisStatusHealthRegistrationNumber: nullStringPtr(db.CofeprisStatusHealthRegistrationNumber),
		CofeprisStatusRegistrerNumber:          nullStringPtr(db.CofeprisStatusRegistrerNumber),
		CofeprisStatusPreventionResponse:       nullTimePtr(db.CofeprisStatusPreventionResponse),
		CofeprisEntryNumber:                    nullStringPtr(db.CofeprisEntryNumber),
		CofeprisLink:                           nullStringPtr(db.CofeprisLink),

		AssignedConsultant:    db.AssignedConsultant,
		AdditionalInformation: nullStringPtr(db.AdditionalInformation),
		Billing:               nullStringPtr(db.Billing),
		PaymentStatus:         nullStringPtr(db.PaymentStatus),
		PaymentDate:           nullTimePtr(db.PaymentDate),
		CollectionNotes:       nullStringPtr(db.CollectionNotes),
		SalesFlag:             db.SalesFlag,
	}

	if db.CRFC.Valid {
		t.Client = &entities.Cliente{
			RFC:               db.CRFC.String,
			BusinessName:      db.CBusinessName.String,
			Email:             db.CEmail.String,
			PhoneNumber:       db.CPhoneNumber.String,
			ContactFirstName:  db.CContactFirstName.String,
			ContactLastName:   db.CContactLastName.String,
			Email2:            nullStringPtr(db.CEmail2),
			PhoneNumber2:      nullStringPtr(db.CPhoneNumber2),
			ContactFirstName2: nullStringPtr(db.CContactFirstName2),
			ContactLastName2:  nullStringPtr(db.CContactLastName2),
		}
	}

	return t
}

type TramiteRepositoryInterface interface {
	GetTramites(ctx context.Context) ([]entities.Tramite, error)
	FindByID(ctx context.Context, id string) (*entities.Tramite, error)
	FindByClientRFC(ctx context.Context, rfc string) ([]entities.Tramite, error)
	FindByStatus(ctx context.Context, status string) ([]entities.Tramite, error)
	ExistsByID(ctx context.Context, id string) (bool, error)
	CreateTramite(ctx context.Context, tramite *entities.Tramite) (*entities.Tramite, error)
	UpdateTramite(ctx context.Context, id string, tramite *entities.Tramite) error
	UpdateTechnicalData(ctx context.Context, id string, technicalData string) error
	UpdateSalesFlag(ctx context.Context, id string, salesFlag bool) error
	UpdateFacturacion(ctx context.Context, id string, payload dto.UpdateTramiteFacturacionDTO) error
	DeleteTramite(ctx context.Context, id string) error
}

type tramiteRepository struct{ storage *pgxpool.Pool }

func NewTramiteRepository(storage *pgxpool.Pool) TramiteRepositoryInterface {
	return &tramiteRepository{storage: storage}
}

func (r *tramiteRepository) selectBuilder() sq.SelectBuilder {
	return sq.Select(tramiteColumns...).
		From(tramiteTable + " t").
		LeftJoin(clienteTable + " c ON c.rfc = t.client_rfc").
		PlaceholderFormat(sq.Dollar)
}

func (r *tramiteRepository) queryMany(ctx context.Context, builder sq.SelectBuilder) ([]entities.Tramite, error) {
	query, args, err := builder.ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := r.storage.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	tramites := make([]entities.Tramite, 0)
	for rows.Next() {
		var dbRow dbTramite
		if err := rows.Scan(dbRow.scanTargets()...); err != nil {
			return nil, err
		}
		tramites = append(tramites, dbRow.toEntity())
	}
	return tramites, rows.Err()
}

func (r *tramiteRepository) GetTramites(ctx context.Context) ([]entities.Tramite, error) {
	return r.queryMany(ctx, r.selectBuilder().OrderBy("t.number"))
}

func (r *tramiteRepository) FindByID(ctx context.Context, id string) (*entities.Tramite, error) {
	query, args, err := r.selectBuilder().Where(sq.Eq{"t.id": id}).ToSql()
	if err != nil {
		return nil, err
	}

	var dbRow dbTramite
	if err := r.storage.QueryRow(ctx, query, args...).Scan(dbRow.scanTargets()...); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, err
	}
	tramite := dbRow.toEntity()
	return &tramite, nil
}

func (r *tramiteRepository) FindByClientRFC(ctx context.Context, rfc string) ([]entities.Tramite, error) {
	return r.queryMany(ctx, r.selectBuilder().Where(sq.Eq{"t.client_rfc": rfc}).OrderBy("t.number"))
}

func (r *tramiteRepository) FindByStatus(ctx context.Context, status string) ([]entities.Tramite, error) {
	return r.queryMany(ctx, r.selectBuilder().Where(sq.Eq{"t.status": status}).OrderBy("t.number"))
}

func (r *tramiteRepository) ExistsByID(ctx context.Context, id string) (bool, error) {
	var exists bool
	err := r.storage.QueryRow(ctx,
		fmt.Sprintf("SELECT EXISTS(SELECT 1 FROM %s WHERE id = $1)", tramiteTable), id).Scan(&exists)
	return exists, err
}

const tramiteInsertColumns = `id, client_rfc, distinctive_denomination, generic_name, product_manufacturer,
	service_name, sub_service_name, input_value, type_description, class_name,
	start_date, end_date, status, technical_data, completion_percentage,
	cofepris_entry_date, cofepris_status, cofepris_status_health_registration_number,
	cofepris_status_registrer_number, cofepris_status_prevention_response,
	cofepris_entry_number, cofepris_link, assigned_consultant, additional_information,
	billing, payment_status, payment_date, collection_notes, sales_flag`

func tramiteValues(t *entities.Tramite) []interface{} {
	return []interface{}{
		t.ID, t.ClientRFC, t.DistinctiveDenomination, t.GenericName, t.ProductManufacturer,
		t.ServiceName, t.SubServiceName, t.InputValue, t.TypeDescription, t.ClassName,
		t.StartDate, t.EndDate, t.Status, t.TechnicalData, t.CompletionPercentage,
		t.CofeprisEntryDate, t.CofeprisStatus, t.CofeprisStatusHealthRegistrationNumber,
		t.CofeprisStatusRegistrerNumber, t.CofeprisStatusPreventionResponse,
		t.CofeprisEntryNumber, t.CofeprisLink, t.AssignedConsultant, t.AdditionalInformation,
		t.Billing, t.PaymentStatus, t.PaymentDate, t.CollectionNotes, t.SalesFlag,
	}
}

func placeholders(n int) string {
	parts := make([]string, n)
	for i := range parts {
		parts[i] = fmt.Sprintf("$%d", i+1)
	}
	return strings.Join(parts, ", ")
}

func (r *tramiteRepository) CreateTramite(ctx context.Context, tramite *entities.Tramite) (*entities.Tramite, error) {
	values := tramiteValues(tramite)
	query := fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s) RETURNING number",
		tramiteTable, tramiteInsertColumns, placeholders(len(values)))

	var number int64
	if err := r.storage.QueryRow(ctx, query, values...).Scan(&number); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return nil, apperrors.ErrConflict
		}
		return nil, err
	}

	tramite.Number = uint64(number)
	return tramite, nil
}

func (r *tramiteRepository) UpdateTramite(ctx context.Context, id string, tramite *entities.Tramite) error {
	// El número consecutivo y el sales_flag no se tocan en la
	// actualización completa.
	query := fmt.Sprintf(`UPDATE %s SET
		client_rfc = $1, distinctive_denomination = $2, generic_name = $3,
		product_manufacturer = $4, service_name = $5, sub_service_name = $6,
		input_value = $7, type_description = $8, class_name = $9,
		start_date = $10, end_date = $11, status = $12,
		technical_data = $13, completion_percentage = $14,
		cofepris_entry_date = $15, cofepris_status = $16,
		cofepris_status_health_registration_number = $17,
		cofepris_status_registrer_number = $18,
		cofepris_status_prevention_response = $19,
		cofepris_entry_number = $20, cofepris_link = $21,
		assigned_consultant = $22, additional_information = $23,
		billing = $24, payment_status = $25, payment_date = $26,
		collection_notes = $27
		WHERE id = $28`, tramiteTable)

	result, err := r.storage.Exec(ctx, query,
		tramite.ClientRFC, tramite.DistinctiveDenomination, tramite.GenericName,
		tramite.ProductManufacturer, tramite.ServiceName, tramite.SubServiceName,
		tramite.InputValue, tramite.TypeDescription, tramite.ClassName,
		tramite.StartDate, tramite.EndDate, tramite.Status,
		tramite.TechnicalData, tramite.CompletionPercentage,
		tramite.CofeprisEntryDate, tramite.CofeprisStatus,
		tramite.CofeprisStatusHealthRegistrationNumber,
		tramite.CofeprisStatusRegistrerNumber,
		tramite.CofeprisStatusPreventionResponse,
		tramite.CofeprisEntryNumber, tramite.CofeprisLink,
		tramite.AssignedConsultant, tramite.AdditionalInformation,
		tramite.Billing, tramite.PaymentStatus, tramite.PaymentDate,
		tramite.CollectionNotes,
		id,
	)
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *tramiteRepository) UpdateTechnicalData(ctx context.Context, id string, technicalData string) error {
	result, err := r.storage.Exec(ctx,
		fmt.Sprintf("UPDATE %s SET technical_data = $1 WHERE id = $2", tramiteTable),
		technicalData, id)
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *tramiteRepository) UpdateSalesFlag(ctx context.Context, id string, salesFlag bool) error {
	result, err := r.storage.Exec(ctx,
		fmt.Sprintf("UPDATE %s SET sales_flag = $1 WHERE id = $2", tramiteTable),
		salesFlag, id)
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *tramiteRepository) UpdateFacturacion(ctx context.Context, id string, payload dto.UpdateTramiteFacturacionDTO) error {
	var setClauses []string
	var args []interface{}
	argID := 1

	addClause := func(column string, value interface{}) {
		setClauses = append(setClauses, fmt.Sprintf("%s = $%d", column, argID))
		args = append(args, value)
		argID++
	}

	if payload.Billing.Valid {
		addClause("billing", payload.Billing.String)
	}
	if payload.PaymentStatus.Valid {
		addClause("payment_status", payload.PaymentStatus.String)
	}
	if payload.PaymentDate.Valid {
		addClause("payment_date", payload.PaymentDate.Time)
	}
	if payload.CollectionNotes.Valid {
		addClause("collection_notes", payload.CollectionNotes.String)
	}
	if payload.CofeprisStatus.Valid {
		addClause("cofepris_status", payload.CofeprisStatus.String)
	}
	if payload.CofeprisStatusHealthRegistrationNumber.Valid {
		addClause("cofepris_status_health_registration_number", payload.CofeprisStatusHealthRegistrationNumber.String)
	}
	if payload.CofeprisStatusRegistrerNumber.Valid {
		addClause("cofepris_status_registrer_number", payload.CofeprisStatusRegistrerNumber.String)
	}
	if payload.CofeprisStatusPreventionResponse.Valid {
		addClause("cofepris_status_prevention_response", payload.CofeprisStatusPreventionResponse.Time)
	}

	if len(setClauses) == 0 {
		return nil
	}

	query := fmt.Sprintf("UPDATE %s SET %s WHERE id = $%d",
		tramiteTable, strings.Join(setClauses, ", "), argID)
	args = append(args, id)

	result, err := r.storage.Exec(ctx, query, args...)
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// DeleteTramite no distingue entre "borrado" y "no existía": borrar un
// id ausente es un no-op silencioso.
func (r *tramiteRepository) DeleteTramite(ctx context.Context, id string) error {
	_, err := r.storage.Exec(ctx,
		fmt.Sprintf("DELETE FROM %s WHERE id = $1", tramiteTable), id)
	return err
}
