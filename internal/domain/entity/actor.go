package entity

// Roles con permisos sobre los flujos transaccionales.
const (
	RoleAdmin      = "admin"
	RoleManager    = "gerente"
	RoleTechnician = "tecnico"
)

// Actor identidad de quien invoca un flujo (viene del JWT).
type Actor struct {
	UserID string
	Name   string
	Role   string
}

// DisplayName nombre usado como actor en el kardex.
func (a Actor) DisplayName() string {
	if a.Name != "" {
		return a.Name
	}
	return a.UserID
}
