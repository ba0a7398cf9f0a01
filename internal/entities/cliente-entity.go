package entities

// Cliente es la empresa a la que se le tramitan registros sanitarios.
// El RFC es la llave primaria y nunca cambia después del alta.
type Cliente struct {
	RFC               string  `json:"rfc" db:"rfc"`
	BusinessName      string  `json:"business_name" db:"business_name"`
	Email             string  `json:"email" db:"email"`
	PhoneNumber       string  `json:"phone_number" db:"phone_number"`
	ContactFirstName  string  `json:"contact_first_name" db:"contact_first_name"`
	ContactLastName   string  `json:"contact_last_name" db:"contact_last_name"`
	Email2            *string `json:"email_2,omitempty" db:"email_2"`
	PhoneNumber2      *string `json:"phone_number_2,omitempty" db:"phone_number_2"`
	ContactFirstName2 *string `json:"contact_first_name_2,omitempty" db:"contact_first_name_2"`
	ContactLastName2  *string `json:"contact_last_name_2,omitempty" db:"contact_last_name_2"`
}
