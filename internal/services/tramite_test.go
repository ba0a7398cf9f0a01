package services

import (
	"context"
	"errors"
	"net/http"
	"sort"
	"sync"
	"testing"
	"time"

	"github.com/aarondl/null/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"tramite-system/internal/dto"
	"tramite-system/internal/entities"
	apperrors "tramite-system/pkg/errors"
	"tramite-system/pkg/types"
)

// --- fakes en memoria ---

type fakeClienteRepo struct {
	clientes map[string]entities.Cliente
}

func newFakeClienteRepo() *fakeClienteRepo {
	return &fakeClienteRepo{clientes: make(map[string]entities.Cliente)}
}

func (r *fakeClienteRepo) GetClientes(ctx context.Context, filter types.Filter) ([]entities.Cliente, uint64, error) {
	list := make([]entities.Cliente, 0, len(r.clientes))
	for _, c := range r.clientes {
		list = append(list, c)
	}
	return list, uint64(len(list)), nil
}

func (r *fakeClienteRepo) FindByRFC(ctx context.Context, rfc string) (*entities.Cliente, error) {
	c, ok := r.clientes[rfc]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	return &c, nil
}

func (r *fakeClienteRepo) FindByBusinessName(ctx context.Context, businessName string) (*entities.Cliente, error) {
	for _, c := range r.clientes {
		if c.BusinessName == businessName {
			cc := c
			return &cc, nil
		}
	}
	return nil, apperrors.ErrNotFound
}

func (r *fakeClienteRepo) CreateCliente(ctx context.Context, payload dto.CreateClienteDTO) (*entities.Cliente, error) {
	if _, ok := r.clientes[payload.RFC]; ok {
		return nil, apperrors.ErrConflict
	}
	c := entities.Cliente{
		RFC:              payload.RFC,
		BusinessName:     payload.BusinessName,
		Email:            payload.Email,
		PhoneNumber:      payload.PhoneNumber,
		ContactFirstName: payload.ContactFirstName,
		ContactLastName:  payload.ContactLastName,
		Email2:           payload.Email2.Ptr(),
	}
	r.clientes[c.RFC] = c
	return &c, nil
}

func (r *fakeClienteRepo) UpdateCliente(ctx context.Context, rfc string, payload dto.UpdateClienteDTO) (*entities.Cliente, error) {
	c, ok := r.clientes[rfc]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	if payload.BusinessName != nil {
		c.BusinessName = *payload.BusinessName
	}
	if payload.Email != nil {
		c.Email = *payload.Email
	}
	r.clientes[rfc] = c
	return &c, nil
}

func (r *fakeClienteRepo) DeleteCliente(ctx context.Context, rfc string) error {
	if _, ok := r.clientes[rfc]; !ok {
		return apperrors.ErrNotFound
	}
	delete(r.clientes, rfc)
	return nil
}

type fakeTramiteRepo struct {
	mu         sync.Mutex
	tramites   map[string]entities.Tramite
	nextNumber uint64
	clientes   *fakeClienteRepo
}

func newFakeTramiteRepo(clientes *fakeClienteRepo) *fakeTramiteRepo {
	return &fakeTramiteRepo{tramites: make(map[string]entities.Tramite), clientes: clientes}
}

// withClient imita el LEFT JOIN del repositorio real.
func (r *fakeTramiteRepo) withClient(t entities.Tramite) entities.Tramite {
	if c, ok := r.clientes.clientes[t.ClientRFC]; ok {
		cc := c
		t.Client = &cc
	}
	return t
}

func (r *fakeTramiteRepo) list(match func(entities.Tramite) bool) []entities.Tramite {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]entities.Tramite, 0)
	for _, t := range r.tramites {
		if match(t) {
			out = append(out, r.withClient(t))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Number < out[j].Number })
	return out
}

func (r *fakeTramiteRepo) GetTramites(ctx context.Context) ([]entities.Tramite, error) {
	return r.list(func(entities.Tramite) bool { return true }), nil
}

func (r *fakeTramiteRepo) FindByID(ctx context.Context, id string) (*entities.Tramite, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	t, ok := r.tramites[id]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	t = r.withClient(t)
	return &t, nil
}

func (r *fakeTramiteRepo) FindByClientRFC(ctx context.Context, rfc string) ([]entities.Tramite, error) {
	return r.list(func(t entities.Tramite) bool { return t.ClientRFC == rfc }), nil
}

func (r *fakeTramiteRepo) FindByStatus(ctx context.Context, status string) ([]entities.Tramite, error) {
	return r.list(func(t entities.Tramite) bool { return t.Status == status }), nil
}

func (r *fakeTramiteRepo) ExistsByID(ctx context.Context, id string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	_, ok := r.tramites[id]
	return ok, nil
}

func (r *fakeTramiteRepo) CreateTramite(ctx context.Context, tramite *entities.Tramite) (*entities.Tramite, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.tramites[tramite.ID]; ok {
		return nil, apperrors.ErrConflict
	}
	r.nextNumber++
	tramite.Number = r.nextNumber
	r.tramites[tramite.ID] = *tramite
	return tramite, nil
}

func (r *fakeTramiteRepo) UpdateTramite(ctx context.Context, id string, tramite *entities.Tramite) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	current, ok := r.tramites[id]
	if !ok {
		return apperrors.ErrNotFound
	}
	updated := *tramite
	updated.Number = current.Number
	updated.SalesFlag = current.SalesFlag
	r.tramites[id] = updated
	return nil
}

func (r *fakeTramiteRepo) UpdateTechnicalData(ctx context.Context, id string, technicalData string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	t, ok := r.tramites[id]
	if !ok {
		return apperrors.ErrNotFound
	}
	t.TechnicalData = technicalData
	r.tramites[id] = t
	return nil
}

func (r *fakeTramiteRepo) UpdateSalesFlag(ctx context.Context, id string, salesFlag bool) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	t, ok := r.tramites[id]
	if !ok {
		return apperrors.ErrNotFound
	}
	t.SalesFlag = salesFlag
	r.tramites[id] = t
	return nil
}

func (r *fakeTramiteRepo) UpdateFacturacion(ctx context.Context, id string, payload dto.UpdateTramiteFacturacionDTO) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	t, ok := r.tramites[id]
	if !ok {
		return apperrors.ErrNotFound
	}
	if payload.Billing.Valid {
		t.Billing = payload.Billing.Ptr()
	}
	if payload.PaymentStatus.Valid {
		t.PaymentStatus = payload.PaymentStatus.Ptr()
	}
	if payload.PaymentDate.Valid {
		t.PaymentDate = payload.PaymentDate.Ptr()
	}
	if payload.CollectionNotes.Valid {
		t.CollectionNotes = payload.CollectionNotes.Ptr()
	}
	if payload.CofeprisStatus.Valid {
		t.CofeprisStatus = payload.CofeprisStatus.Ptr()
	}
	r.tramites[id] = t
	return nil
}

func (r *fakeTramiteRepo) DeleteTramite(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.tramites, id)
	return nil
}

type fakeEmpleadoDirectory struct {
	salesEmails       []string
	facturacionEmails []string
	err               error
}

func (f *fakeEmpleadoDirectory) GetEmpleados(ctx context.Context, filter types.Filter) ([]entities.Empleado, uint64, error) {
	return nil, 0, nil
}

func (f *fakeEmpleadoDirectory) FindByID(ctx context.Context, id uint64) (*entities.Empleado, error) {
	return nil, apperrors.ErrNotFound
}

func (f *fakeEmpleadoDirectory) FindSalesEmails(ctx context.Context) ([]string, error) {
	return f.salesEmails, f.err
}

func (f *fakeEmpleadoDirectory) FindFacturacionEmails(ctx context.Context) ([]string, error) {
	return f.facturacionEmails, f.err
}

func (f *fakeEmpleadoDirectory) CreateEmpleado(ctx context.Context, payload dto.CreateEmpleadoDTO) (*entities.Empleado, error) {
	return nil, nil
}

func (f *fakeEmpleadoDirectory) DeleteEmpleado(ctx context.Context, id uint64) error { return nil }

type notifierCall struct {
	kind      string
	tramiteID string
	emails    []string
}

type fakeNotifier struct {
	mu    sync.Mutex
	calls []notifierCall
	err   error
}

func (f *fakeNotifier) record(kind, tramiteID string, emails []string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, notifierCall{kind: kind, tramiteID: tramiteID, emails: emails})
	return f.err
}

func (f *fakeNotifier) SendTramiteCreated(cliente *entities.Cliente, tramite *entities.Tramite, salesEmails []string) error {
	return f.record("created", tramite.ID, salesEmails)
}

func (f *fakeNotifier) SendTechnicalDataUpdate(cliente *entities.Cliente, tramite *entities.Tramite) error {
	return f.record("technical", tramite.ID, nil)
}

func (f *fakeNotifier) SendInvoiceNotification(emails []string, tramite *entities.Tramite) error {
	return f.record("invoice", tramite.ID, emails)
}

func (f *fakeNotifier) SendBillingUpdate(cliente *entities.Cliente, tramite *entities.Tramite) error {
	return f.record("billing", tramite.ID, nil)
}

func (f *fakeNotifier) callsOfKind(kind string) []notifierCall {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []notifierCall
	for _, c := range f.calls {
		if c.kind == kind {
			out = append(out, c)
		}
	}
	return out
}

// --- arranque común ---

type tramiteFixture struct {
	service   *TramiteService
	tramites  *fakeTramiteRepo
	clientes  *fakeClienteRepo
	empleados *fakeEmpleadoDirectory
	notifier  *fakeNotifier
}

func newTramiteFixture() *tramiteFixture {
	clientes := newFakeClienteRepo()
	tramites := newFakeTramiteRepo(clientes)
	empleados := &fakeEmpleadoDirectory{
		salesEmails:       []string{"ventas@example.com"},
		facturacionEmails: []string{"facturacion@example.com"},
	}
	notifier := &fakeNotifier{}
	svc := NewTramiteService(tramites, clientes, empleados, notifier, zap.NewNop())
	return &tramiteFixture{service: svc, tramites: tramites, clientes: clientes, empleados: empleados, notifier: notifier}
}

func (f *tramiteFixture) seedCliente(rfc, email string) {
	f.clientes.clientes[rfc] = entities.Cliente{
		RFC:              rfc,
		BusinessName:     "Laboratorios Prueba SA de CV",
		Email:            email,
		PhoneNumber:      "5512345678",
		ContactFirstName: "Ana",
		ContactLastName:  "García",
	}
}

func validCreateDTO(rfc string) dto.CreateTramiteDTO {
	return dto.CreateTramiteDTO{
		ClientRFC:               rfc,
		DistinctiveDenomination: "Oxímetro X100",
		GenericName:             "Oxímetro de pulso",
		ProductManufacturer:     "Acme Medical",
		ServiceName:             "Registro sanitario",
		InputValue:              "Dispositivo médico",
		TypeDescription:         "Nuevo registro",
		ClassName:               "Clase II",
		StartDate:               time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC),
		Status:                  "En proceso",
		TechnicalData:           "Especificaciones iniciales",
		CompletionPercentage:    10,
		AssignedConsultant:      "Carlos Ruiz",
	}
}

const testRFC = "AAA010101AAA"

// --- tests ---

func TestCreateTramiteGeneratesIDWhenBlank(t *testing.T) {
	f := newTramiteFixture()
	f.seedCliente(testRFC, "c@example.com")

	payload := validCreateDTO(testRFC)
	payload.ID = "   "

	created, err := f.service.CreateTramite(context.Background(), payload)
	require.NoError(t, err)
	assert.NotEmpty(t, created.ID)
	assert.NotEqual(t, "   ", created.ID)
	assert.Equal(t, uint64(1), created.Number)

	calls := f.notifier.callsOfKind("created")
	require.Len(t, calls, 1)
	assert.Equal(t, created.ID, calls[0].tramiteID)
	assert.Equal(t, []string{"ventas@example.com"}, calls[0].emails)
}

func TestCreateTramiteConflictOnDuplicateID(t *testing.T) {
	f := newTramiteFixture()
	f.seedCliente(testRFC, "c@example.com")

	payload := validCreateDTO(testRFC)
	payload.ID = "TRAM-001"

	_, err := f.service.CreateTramite(context.Background(), payload)
	require.NoError(t, err)

	_, err = f.service.CreateTramite(context.Background(), payload)
	var httpErr *apperrors.HttpError
	require.ErrorAs(t, err, &httpErr)
	assert.Equal(t, http.StatusConflict, httpErr.Code)
	assert.Equal(t, "Trámite con ese ID ya existe", httpErr.Message)

	all, err := f.tramites.GetTramites(context.Background())
	require.NoError(t, err)
	assert.Len(t, all, 1)
}

func TestCreateTramiteUnknownClientSkipsNotifications(t *testing.T) {
	f := newTramiteFixture()

	created, err := f.service.CreateTramite(context.Background(), validCreateDTO("ZZZ990101ZZZ"))
	require.NoError(t, err)
	assert.NotEmpty(t, created.ID)
	assert.Empty(t, f.notifier.calls)
}

func TestCreateTramiteNumbersStrictlyIncrease(t *testing.T) {
	f := newTramiteFixture()
	f.seedCliente(testRFC, "c@example.com")

	var numbers []uint64
	for i := 0; i < 5; i++ {
		created, err := f.service.CreateTramite(context.Background(), validCreateDTO(testRFC))
		require.NoError(t, err)
		numbers = append(numbers, created.Number)
	}
	for i := 1; i < len(numbers); i++ {
		assert.Greater(t, numbers[i], numbers[i-1])
	}
}

func TestCreateTramiteSucceedsWhenNotifierFails(t *testing.T) {
	f := newTramiteFixture()
	f.seedCliente(testRFC, "c@example.com")
	f.notifier.err = errors.New("smtp caído")

	created, err := f.service.CreateTramite(context.Background(), validCreateDTO(testRFC))
	require.NoError(t, err)

	found, err := f.service.FindByID(context.Background(), created.ID)
	require.NoError(t, err)
	assert.Equal(t, created.ID, found.ID)
}

func TestFindByRFCEmptyIsNotFound(t *testing.T) {
	f := newTramiteFixture()
	f.seedCliente(testRFC, "c@example.com")

	_, err := f.service.FindByRFC(context.Background(), testRFC)
	var httpErr *apperrors.HttpError
	require.ErrorAs(t, err, &httpErr)
	assert.Equal(t, http.StatusNotFound, httpErr.Code)
}

func TestFindByClientBusinessNameEmptyListIsOK(t *testing.T) {
	f := newTramiteFixture()
	f.seedCliente(testRFC, "c@example.com")

	// El cliente existe pero no tiene trámites: lista vacía sin error.
	tramites, err := f.service.FindByClientBusinessName(context.Background(), "Laboratorios Prueba SA de CV")
	require.NoError(t, err)
	assert.Empty(t, tramites)

	_, err = f.service.FindByClientBusinessName(context.Background(), "Empresa Inexistente")
	var httpErr *apperrors.HttpError
	require.ErrorAs(t, err, &httpErr)
	assert.Equal(t, http.StatusNotFound, httpErr.Code)
	assert.Equal(t, "Cliente no encontrado", httpErr.Message)
}

func TestFindByStatusEmptyIsNotFound(t *testing.T) {
	f := newTramiteFixture()

	_, err := f.service.FindByStatus(context.Background(), "Concluido")
	var httpErr *apperrors.HttpError
	require.ErrorAs(t, err, &httpErr)
	assert.Equal(t, http.StatusNotFound, httpErr.Code)
	assert.Equal(t, "Estatus no encontrado", httpErr.Message)
}

func TestUpdateTechnicalDataNotifiesClient(t *testing.T) {
	f := newTramiteFixture()
	f.seedCliente(testRFC, "c@example.com")

	created, err := f.service.CreateTramite(context.Background(), validCreateDTO(testRFC))
	require.NoError(t, err)

	err = f.service.UpdateTechnicalData(context.Background(), created.ID,
		dto.UpdateTechnicalDataDTO{TechnicalData: "Protocolo actualizado"})
	require.NoError(t, err)

	data, err := f.service.GetTechnicalData(context.Background(), created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Protocolo actualizado", data.TechnicalData)

	require.Len(t, f.notifier.callsOfKind("technical"), 1)
}

func TestUpdateTechnicalDataNotFound(t *testing.T) {
	f := newTramiteFixture()

	err := f.service.UpdateTechnicalData(context.Background(), "no-existe",
		dto.UpdateTechnicalDataDTO{TechnicalData: "x"})
	var httpErr *apperrors.HttpError
	require.ErrorAs(t, err, &httpErr)
	assert.Equal(t, http.StatusNotFound, httpErr.Code)
	assert.Empty(t, f.notifier.calls)
}

func TestUpdateSalesFlagRepeatedCallsRenotify(t *testing.T) {
	f := newTramiteFixture()
	f.seedCliente(testRFC, "c@example.com")

	created, err := f.service.CreateTramite(context.Background(), validCreateDTO(testRFC))
	require.NoError(t, err)

	require.NoError(t, f.service.UpdateSalesFlag(context.Background(), created.ID))
	require.NoError(t, f.service.UpdateSalesFlag(context.Background(), created.ID))

	found, err := f.service.FindByID(context.Background(), created.ID)
	require.NoError(t, err)
	assert.True(t, found.SalesFlag)

	invoices := f.notifier.callsOfKind("invoice")
	require.Len(t, invoices, 2)
	assert.Equal(t, []string{"facturacion@example.com"}, invoices[0].emails)
}

func TestUpdateSalesFlagFailsWhenDirectoryUnavailable(t *testing.T) {
	f := newTramiteFixture()
	f.seedCliente(testRFC, "c@example.com")

	created, err := f.service.CreateTramite(context.Background(), validCreateDTO(testRFC))
	require.NoError(t, err)

	f.empleados.err = errors.New("directorio caído")
	err = f.service.UpdateSalesFlag(context.Background(), created.ID)
	require.Error(t, err)

	found, err := f.service.FindByID(context.Background(), created.ID)
	require.NoError(t, err)
	assert.False(t, found.SalesFlag)
}

func TestUpdateFacturacionPersistsBeforeEmailCheck(t *testing.T) {
	f := newTramiteFixture()
	f.seedCliente(testRFC, "") // cliente sin correo utilizable

	created, err := f.service.CreateTramite(context.Background(), validCreateDTO(testRFC))
	require.NoError(t, err)

	err = f.service.UpdateFacturacion(context.Background(), created.ID, dto.UpdateTramiteFacturacionDTO{
		PaymentStatus: null.StringFrom("PAGADO"),
	})
	var httpErr *apperrors.HttpError
	require.ErrorAs(t, err, &httpErr)
	assert.Equal(t, http.StatusNotFound, httpErr.Code)
	assert.Equal(t, "El cliente asociado no tiene un email válido", httpErr.Message)

	// El parche quedó persistido aunque el aviso no se pudo enviar.
	found, err := f.service.FindByID(context.Background(), created.ID)
	require.NoError(t, err)
	require.NotNil(t, found.PaymentStatus)
	assert.Equal(t, "PAGADO", *found.PaymentStatus)
	assert.Empty(t, f.notifier.callsOfKind("billing"))
}

func TestUpdateFacturacionSendsBillingUpdate(t *testing.T) {
	f := newTramiteFixture()
	f.seedCliente(testRFC, "c@example.com")

	created, err := f.service.CreateTramite(context.Background(), validCreateDTO(testRFC))
	require.NoError(t, err)

	err = f.service.UpdateFacturacion(context.Background(), created.ID, dto.UpdateTramiteFacturacionDTO{
		Billing:       null.StringFrom("FAC-2025-001"),
		PaymentStatus: null.StringFrom("PENDIENTE"),
	})
	require.NoError(t, err)
	require.Len(t, f.notifier.callsOfKind("billing"), 1)
}

func TestUpdateTramitePreservesNumberAndSalesFlag(t *testing.T) {
	f := newTramiteFixture()
	f.seedCliente(testRFC, "c@example.com")

	created, err := f.service.CreateTramite(context.Background(), validCreateDTO(testRFC))
	require.NoError(t, err)
	require.NoError(t, f.service.UpdateSalesFlag(context.Background(), created.ID))

	payload := validCreateDTO(testRFC)
	payload.Status = "Concluido"
	require.NoError(t, f.service.UpdateTramite(context.Background(), created.ID, payload))

	found, err := f.service.FindByID(context.Background(), created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Concluido", found.Status)
	assert.Equal(t, created.Number, found.Number)
	assert.True(t, found.SalesFlag)
}

func TestDeleteTramiteMissingIsNoop(t *testing.T) {
	f := newTramiteFixture()

	assert.NoError(t, f.service.DeleteTramite(context.Background(), "no-existe"))
}
