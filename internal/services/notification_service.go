package services

import (
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"

	"tramite-system/internal/entities"
	"tramite-system/pkg/mailer"
)

// NotificationServiceInterface compone y despacha los correos del ciclo
// de vida de un trámite. El transporte real se inyecta (pkg/mailer) para
// poder sustituirlo en tests.
type NotificationServiceInterface interface {
	SendTramiteCreated(cliente *entities.Cliente, tramite *entities.Tramite, salesEmails []string) error
	SendTechnicalDataUpdate(cliente *entities.Cliente, tramite *entities.Tramite) error
	SendInvoiceNotification(emails []string, tramite *entities.Tramite) error
	SendBillingUpdate(cliente *entities.Cliente, tramite *entities.Tramite) error
}

type emailNotificationService struct {
	mailer mailer.Mailer
	from   string
	logger *zap.Logger
}

func NewEmailNotificationService(m mailer.Mailer, from string, logger *zap.Logger) NotificationServiceInterface {
	return &emailNotificationService{mailer: m, from: from, logger: logger}
}

// recipientEmails arma la lista de destinatarios del cliente: el correo
// principal y, si no viene en blanco, el secundario.
func recipientEmails(cliente *entities.Cliente) []string {
	recipients := []string{cliente.Email}
	if cliente.Email2 != nil && strings.TrimSpace(*cliente.Email2) != "" {
		recipients = append(recipients, *cliente.Email2)
	}
	return recipients
}

const dateLayout = "02/01/2006"

func formatDate(t time.Time) string {
	return t.Format(dateLayout)
}

func formatDatePtr(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format(dateLayout)
}

// tramiteInfoTable es la tabla de datos del trámite que se incluye en
// los correos de alta.
func tramiteInfoTable(t *entities.Tramite) string {
	rows := [][2]string{
		{"RFC", t.ClientRFC},
		{"Denominación distintiva", t.DistinctiveDenomination},
		{"Nombre Genérico", t.GenericName},
		{"Fabricante", t.ProductManufacturer},
		{"Nombre del Servicio", t.ServiceName},
		{"Insumo", t.InputValue},
		{"Tipo", t.TypeDescription},
		{"Clase", t.ClassName},
		{"Fecha de Inicio", formatDate(t.StartDate)},
		{"Estatus", t.Status},
		{"Consultor Asignado", t.AssignedConsultant},
	}

	var sb strings.Builder
	sb.WriteString(`<table border="1" cellpadding="5" cellspacing="0">`)
	for _, row := range rows {
		sb.WriteString(fmt.Sprintf("<tr><td><strong>%s</strong></td><td>%s</td></tr>", row[0], row[1]))
	}
	sb.WriteString("</table>")
	return sb.String()
}

// SendTramiteCreated envía el aviso al cliente y al equipo de ventas.
// Los dos correos se despachan en paralelo y se espera a que ambos
// terminen antes de regresar.
func (s *emailNotificationService) SendTramiteCreated(cliente *entities.Cliente, tramite *entities.Tramite, salesEmails []string) error {
	clientMsg := mailer.Message{
		From:    s.from,
		To:      recipientEmails(cliente),
		Subject: "Nuevo Trámite Registrado",
		HTML: fmt.Sprintf(`<p>Hola %s %s,</p>
			<p>Se ha registrado un nuevo trámite con ID %s.</p>
			<p>Información del trámite:</p>
			%s`,
			cliente.ContactFirstName, cliente.ContactLastName, tramite.ID, tramiteInfoTable(tramite)),
	}

	salesMsg := mailer.Message{
		From:    s.from,
		To:      salesEmails,
		Subject: fmt.Sprintf("Nuevo Trámite Registrado %s", tramite.ID),
		HTML: fmt.Sprintf(`<p>Estimado equipo de ventas, se ha registrado un nuevo trámite para el cliente %s con ID de trámite %s.</p>
			<p>Información del trámite:</p>
			%s`,
			cliente.BusinessName, tramite.ID, tramiteInfoTable(tramite)),
	}

	messages := []mailer.Message{clientMsg}
	if len(salesEmails) > 0 {
		messages = append(messages, salesMsg)
	}

	errs := make([]error, len(messages))
	var wg sync.WaitGroup
	for i, msg := range messages {
		wg.Add(1)
		go func(i int, msg mailer.Message) {
			defer wg.Done()
			errs[i] = s.mailer.Send(msg)
		}(i, msg)
	}
	wg.Wait()

	return errors.Join(errs...)
}

func (s *emailNotificationService) SendTechnicalDataUpdate(cliente *entities.Cliente, tramite *entities.Tramite) error {
	msg := mailer.Message{
		From:    s.from,
		To:      recipientEmails(cliente),
		Subject: "Actualización de datos técnicos",
		HTML: fmt.Sprintf(`<p>Hola <strong>%s %s</strong>,</p>
			<p>Se han actualizado los datos técnicos del trámite con ID %s.</p>
			<p>Datos técnicos nuevos: %s</p>`,
			cliente.ContactFirstName, cliente.ContactLastName, tramite.ID, tramite.TechnicalData),
	}
	return s.mailer.Send(msg)
}

func (s *emailNotificationService) SendInvoiceNotification(emails []string, tramite *entities.Tramite) error {
	businessName := ""
	if tramite.Client != nil {
		businessName = tramite.Client.BusinessName
	}

	msg := mailer.Message{
		From:    s.from,
		To:      emails,
		Subject: "Notificación de emisión de factura",
		HTML: fmt.Sprintf(`<p>Estimado equipo de Facturación,</p>
			<p>Se ha emitido una nueva factura correspondiente al trámite con ID: <strong>%s</strong>, asociado al cliente <strong>%s</strong>.</p>
			<p>Les solicitamos amablemente dar seguimiento a este trámite lo antes posible.</p>
			<p>Información del trámite:</p>
			<ul>
				<li><strong>ID del Trámite:</strong> %s</li>
				<li><strong>Cliente:</strong> %s</li>
				<li><strong>RFC del Cliente:</strong> %s</li>
				<li><strong>Fecha de Inicio:</strong> %s</li>
				<li><strong>Fecha de Término:</strong> %s</li>
				<li><strong>Estatus del Trámite:</strong> %s</li>
			</ul>
			<p>Gracias por su atención.</p>
			<br>
			<p>Atentamente,</p>
			<p>El equipo de REGSAN</p>`,
			tramite.ID, businessName, tramite.ID, businessName, tramite.ClientRFC,
			formatDate(tramite.StartDate), formatDatePtr(tramite.EndDate), tramite.Status),
	}
	return s.mailer.Send(msg)
}

func (s *emailNotificationService) SendBillingUpdate(cliente *entities.Cliente, tramite *entities.Tramite) error {
	paymentStatus := ""
	if tramite.PaymentStatus != nil {
		paymentStatus = *tramite.PaymentStatus
	}

	msg := mailer.Message{
		From:    s.from,
		To:      recipientEmails(cliente),
		Subject: fmt.Sprintf("Actualización de facturación - Trámite %s", tramite.ID),
		HTML: fmt.Sprintf(`<p>Estimado %s,</p>
			<p>Le informamos que la información de facturación de su trámite con ID <strong>%s</strong> ha sido actualizada.</p>
			<p><strong>Estatus de pago:</strong> %s</p>
			<p>Por favor, revise la información actualizada en su cuenta y no dude en contactarnos si tiene alguna pregunta.</p>
			<br>
			<p>Atentamente,</p>
			<p>El equipo de REGSAN</p>`,
			cliente.BusinessName, tramite.ID, paymentStatus),
	}
	return s.mailer.Send(msg)
}
