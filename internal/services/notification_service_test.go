package services

import (
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"tramite-system/internal/entities"
	"tramite-system/pkg/mailer"
)

type fakeMailer struct {
	mu       sync.Mutex
	messages []mailer.Message
	err      error
}

func (f *fakeMailer) Send(msg mailer.Message) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.messages = append(f.messages, msg)
	return f.err
}

func (f *fakeMailer) sent() []mailer.Message {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]mailer.Message(nil), f.messages...)
}

func testCliente(email2 *string) *entities.Cliente {
	return &entities.Cliente{
		RFC:              "AAA010101AAA",
		BusinessName:     "Laboratorios Prueba SA de CV",
		Email:            "c@example.com",
		ContactFirstName: "Ana",
		ContactLastName:  "García",
		Email2:           email2,
	}
}

func testTramite() *entities.Tramite {
	return &entities.Tramite{
		ID:                      "TRAM-001",
		ClientRFC:               "AAA010101AAA",
		DistinctiveDenomination: "Oxímetro X100",
		GenericName:             "Oxímetro de pulso",
		ServiceName:             "Registro sanitario",
		StartDate:               time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC),
		Status:                  "En proceso",
		TechnicalData:           "Especificaciones",
		AssignedConsultant:      "Carlos Ruiz",
	}
}

func TestSendTramiteCreatedDispatchesBothMessages(t *testing.T) {
	fm := &fakeMailer{}
	svc := NewEmailNotificationService(fm, "info@deligrano.com", zap.NewNop())

	err := svc.SendTramiteCreated(testCliente(nil), testTramite(), []string{"v1@example.com", "v2@example.com"})
	require.NoError(t, err)

	messages := fm.sent()
	require.Len(t, messages, 2)

	var clientMsg, salesMsg *mailer.Message
	for i := range messages {
		if messages[i].Subject == "Nuevo Trámite Registrado" {
			clientMsg = &messages[i]
		} else {
			salesMsg = &messages[i]
		}
	}
	require.NotNil(t, clientMsg)
	require.NotNil(t, salesMsg)

	assert.Equal(t, []string{"c@example.com"}, clientMsg.To)
	assert.Equal(t, "info@deligrano.com", clientMsg.From)
	assert.Contains(t, clientMsg.HTML, "TRAM-001")

	assert.Equal(t, []string{"v1@example.com", "v2@example.com"}, salesMsg.To)
	assert.Contains(t, salesMsg.Subject, "TRAM-001")
	assert.Contains(t, salesMsg.HTML, "Laboratorios Prueba SA de CV")
}

func TestSendTramiteCreatedWithoutSalesTeam(t *testing.T) {
	fm := &fakeMailer{}
	svc := NewEmailNotificationService(fm, "info@deligrano.com", zap.NewNop())

	err := svc.SendTramiteCreated(testCliente(nil), testTramite(), nil)
	require.NoError(t, err)
	require.Len(t, fm.sent(), 1)
}

func TestSendTramiteCreatedReportsMailerFailure(t *testing.T) {
	fm := &fakeMailer{err: errors.New("smtp caído")}
	svc := NewEmailNotificationService(fm, "info@deligrano.com", zap.NewNop())

	err := svc.SendTramiteCreated(testCliente(nil), testTramite(), []string{"v@example.com"})
	require.Error(t, err)
	// Ambos envíos se intentan aunque fallen.
	assert.Len(t, fm.sent(), 2)
}

func TestRecipientEmailsIncludesSecondary(t *testing.T) {
	secondary := "c2@example.com"
	assert.Equal(t, []string{"c@example.com", "c2@example.com"}, recipientEmails(testCliente(&secondary)))

	blank := "   "
	assert.Equal(t, []string{"c@example.com"}, recipientEmails(testCliente(&blank)))
	assert.Equal(t, []string{"c@example.com"}, recipientEmails(testCliente(nil)))
}

func TestSendBillingUpdateIncludesPaymentStatus(t *testing.T) {
	fm := &fakeMailer{}
	svc := NewEmailNotificationService(fm, "info@deligrano.com", zap.NewNop())

	tramite := testTramite()
	status := "PAGADO"
	tramite.PaymentStatus = &status

	require.NoError(t, svc.SendBillingUpdate(testCliente(nil), tramite))

	messages := fm.sent()
	require.Len(t, messages, 1)
	assert.Contains(t, messages[0].Subject, "TRAM-001")
	assert.Contains(t, messages[0].HTML, "PAGADO")
}

func TestSendInvoiceNotificationTargetsFacturacion(t *testing.T) {
	fm := &fakeMailer{}
	svc := NewEmailNotificationService(fm, "info@deligrano.com", zap.NewNop())

	tramite := testTramite()
	tramite.Client = testCliente(nil)

	require.NoError(t, svc.SendInvoiceNotification([]string{"f@example.com"}, tramite))

	messages := fm.sent()
	require.Len(t, messages, 1)
	assert.Equal(t, []string{"f@example.com"}, messages[0].To)
	assert.Contains(t, messages[0].HTML, "Laboratorios Prueba SA de CV")
}
