package entities

import "time"

// Puestos con lista de distribución propia.
const (
	PuestoVentas      = "VENTAS"
	PuestoFacturacion = "FACTURACION"
)

type Empleado struct {
	ID        uint64    `json:"id" db:"id"`
	FirstName string    `json:"first_name" db:"first_name"`
	LastName  string    `json:"last_name" db:"last_name"`
	Email     string    `json:"email" db:"email"`
	Puesto    string    `json:"puesto" db:"puesto"`
	Password  string    `json:"-" db:"password"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}
