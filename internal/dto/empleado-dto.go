package dto

type CreateEmpleadoDTO struct {
	FirstName string `json:"first_name" validate:"required,max=50"`
	LastName  string `json:"last_name" validate:"required,max=50"`
	Email     string `json:"email" validate:"required,email,max=100"`
	Puesto    string `json:"puesto" validate:"required,max=50"`
	Password  string `json:"password" validate:"required,min=8"`
}
