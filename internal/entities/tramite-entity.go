package entities

import "time"

// Tramite es un expediente regulatorio que se sigue ante COFEPRIS por
// cuenta de un cliente. El id lo puede asignar el cliente o el sistema;
// el número consecutivo siempre lo asigna la base de datos y nunca se
// reasigna.
type Tramite struct {
	ID        string `json:"id" db:"id"`
	ClientRFC string `json:"client_rfc" db:"client_rfc"`
	Number    uint64 `json:"number" db:"number"`

	DistinctiveDenomination string  `json:"distinctive_denomination" db:"distinctive_denomination"`
	GenericName             string  `json:"generic_name" db:"generic_name"`
	ProductManufacturer     string  `json:"product_manufacturer" db:"product_manufacturer"`
	ServiceName             string  `json:"service_name" db:"service_name"`
	SubServiceName          *string `json:"sub_service_name,omitempty" db:"sub_service_name"`
	InputValue              string  `json:"input_value" db:"input_value"`
	TypeDescription         string  `json:"type_description" db:"type_description"`
	ClassName               string  `json:"class_name" db:"class_name"`

	StartDate time.Time  `json:"start_date" db:"start_date"`
	EndDate   *time.Time `json:"end_date,omitempty" db:"end_date"`
	Status    string     `json:"status" db:"status"`

	TechnicalData        string  `json:"technical_data" db:"technical_data"`
	CompletionPercentage float64 `json:"completion_percentage" db:"completion_percentage"`

	CofeprisEntryDate                      *time.Time `json:"cofepris_entry_date,omitempty" db:"cofepris_entry_date"`
	CofeprisStatus                         *string    `json:"cofepris_status,omitempty" db:"cofepris_status"`
	CofeprisStatusHealthRegistrationNumber *string    `json:"cofepris_status_health_registration_number,omitempty" db:"cofepris_status_health_registration_number"`
	CofeprisStatusRegistrerNumber          *string    `json:"cofepris_status_registrer_number,omitempty" db:"cofepris_status_registrer_number"`
	CofeprisStatusPreventionResponse       *time.Time `json:"cofepris_status_prevention_response,omitempty" db:"cofepris_status_prevention_response"`
	CofeprisEntryNumber                    *string    `json:"cofepris_entry_number,omitempty" db:"cofepris_entry_number"`
	CofeprisLink                           *string    `json:"cofepris_link,omitempty" db:"cofepris_link"`

	AssignedConsultant    string  `json:"assigned_consultant" db:"assigned_consultant"`
	AdditionalInformation *string `json:"additional_information,omitempty" db:"additional_information"`

	Billing         *string    `json:"billing,omitempty" db:"billing"`
	PaymentStatus   *string    `json:"payment_status,omitempty" db:"payment_status"`
	PaymentDate     *time.Time `json:"payment_date,omitempty" db:"payment_date"`
	CollectionNotes *string    `json:"collection_notes,omitempty" db:"collection_notes"`
	SalesFlag       bool       `json:"sales_flag" db:"sales_flag"`

	// Relación leída con JOIN, no embebida en la tabla.
	Client *Cliente `json:"client,omitempty" db:"-"`
}
