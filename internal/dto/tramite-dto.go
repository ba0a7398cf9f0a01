package dto

import (
	"time"

	"github.com/aarondl/null/v8"
)

// CreateTramiteDTO: lo que el cliente de la API envía para registrar un
// trámite. El id es opcional; si viene vacío el servicio genera uno.
type CreateTramiteDTO struct {
	ID        string `json:"id" validate:"omitempty,max=255"`
	ClientRFC string `json:"client_rfc" validate:"required,rfc"`

	DistinctiveDenomination string      `json:"distinctive_denomination" validate:"required,max=100"`
	GenericName             string      `json:"generic_name" validate:"required,max=100"`
	ProductManufacturer     string      `json:"product_manufacturer" validate:"required,max=100"`
	ServiceName             string      `json:"service_name" validate:"required,max=100"`
	SubServiceName          null.String `json:"sub_service_name"`
	InputValue              string      `json:"input_value" validate:"required,max=100"`
	TypeDescription         string      `json:"type_description" validate:"required,max=100"`
	ClassName               string      `json:"class_name" validate:"required,max=100"`

	StartDate time.Time `json:"start_date" validate:"required"`
	EndDate   null.Time `json:"end_date"`
	Status    string    `json:"status" validate:"required,max=50"`

	TechnicalData        string  `json:"technical_data"`
	CompletionPercentage float64 `json:"completion_percentage" validate:"gte=0,lte=100"`

	CofeprisEntryDate                      null.Time   `json:"cofepris_entry_date"`
	CofeprisStatus                         null.String `json:"cofepris_status"`
	CofeprisStatusHealthRegistrationNumber null.String `json:"cofepris_status_health_registration_number"`
	CofeprisStatusRegistrerNumber          null.String `json:"cofepris_status_registrer_number"`
	CofeprisStatusPreventionResponse       null.Time   `json:"cofepris_status_prevention_response"`
	CofeprisEntryNumber                    null.String `json:"cofepris_entry_number"`
	CofeprisLink                           null.String `json:"cofepris_link"`

	AssignedConsultant    string      `json:"assigned_consultant" validate:"required,max=50"`
	AdditionalInformation null.String `json:"additional_information"`

	Billing         null.String `json:"billing"`
	PaymentStatus   null.String `json:"payment_status"`
	PaymentDate     null.Time   `json:"payment_date"`
	CollectionNotes null.String `json:"collection_notes"`
}

// UpdateTramiteDTO: actualización completa del trámite (PUT). Reusa la
// misma forma del alta; el número consecutivo y el sales_flag no se
// tocan por esta vía.
type UpdateTramiteDTO = CreateTramiteDTO

// UpdateTechnicalDataDTO: solo el blob de datos técnicos.
type UpdateTechnicalDataDTO struct {
	TechnicalData string `json:"technical_data" validate:"required"`
}

// UpdateTramiteFacturacionDTO: parche de los campos de facturación y de
// seguimiento COFEPRIS. Solo los campos presentes en el JSON se
// sobreescriben.
type UpdateTramiteFacturacionDTO struct {
	Billing                                null.String `json:"billing"`
	PaymentStatus                          null.String `json:"payment_status"`
	PaymentDate                            null.Time   `json:"payment_date"`
	CollectionNotes                        null.String `json:"collection_notes"`
	CofeprisStatus                         null.String `json:"cofepris_status"`
	CofeprisStatusHealthRegistrationNumber null.String `json:"cofepris_status_health_registration_number"`
	CofeprisStatusRegistrerNumber          null.String `json:"cofepris_status_registrer_number"`
	CofeprisStatusPreventionResponse       null.Time   `json:"cofepris_status_prevention_response"`
}

// TechnicalDataDTO: respuesta de la consulta de datos técnicos.
type TechnicalDataDTO struct {
	ID            string `json:"id"`
	TechnicalData string `json:"technical_data"`
}
