package contextkeys

type contextKey string

const (
	// EmpleadoIDKey guarda el ID del empleado autenticado en el contexto.
	EmpleadoIDKey contextKey = "empleadoID"
)
