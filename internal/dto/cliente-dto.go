package dto

import "github.com/aarondl/null/v8"

type CreateClienteDTO struct {
	RFC               string      `json:"rfc" validate:"required,rfc"`
	BusinessName      string      `json:"business_name" validate:"required,max=100"`
	Email             string      `json:"email" validate:"required,email,max=100"`
	PhoneNumber       string      `json:"phone_number" validate:"required,max=15"`
	ContactFirstName  string      `json:"contact_first_name" validate:"required,max=50"`
	ContactLastName   string      `json:"contact_last_name" validate:"required,max=50"`
	Email2            null.String `json:"email_2" validate:"omitempty"`
	PhoneNumber2      null.String `json:"phone_number_2"`
	ContactFirstName2 null.String `json:"contact_first_name_2"`
	ContactLastName2  null.String `json:"contact_last_name_2"`
}

// UpdateClienteDTO: el RFC es inmutable, por eso no aparece aquí.
type UpdateClienteDTO struct {
	BusinessName      *string     `json:"business_name" validate:"omitempty,max=100"`
	Email             *string     `json:"email" validate:"omitempty,email,max=100"`
	PhoneNumber       *string     `json:"phone_number" validate:"omitempty,max=15"`
	ContactFirstName  *string     `json:"contact_first_name" validate:"omitempty,max=50"`
	ContactLastName   *string     `json:"contact_last_name" validate:"omitempty,max=50"`
	Email2            null.String `json:"email_2"`
	PhoneNumber2      null.String `json:"phone_number_2"`
	ContactFirstName2 null.String `json:"contact_first_name_2"`
	ContactLastName2  null.String `json:"contact_last_name_2"`
}
