package clientes

// CreateClienteRequest is the POST /clientes payload. Pointers distinguish absent
// fields from empty ones.
type CreateClienteRequest struct {
	Nombre        *string `json:"nombre"`
	Email         *string `json:"email"`
	Telefono      *string `json:"telefono"`
	Empresa       *string `json:"empresa,omitempty"`
	Pais          *string `json:"pais"`
	FechaContacto *string `json:"fechaContacto"`
	Estado        *string `json:"estado"`
}

// UpdateClienteRequest is the PUT /clientes/{id} payload. Only non-nil fields are
// validated and applied.
type UpdateClienteRequest struct {
	Nombre        *string `json:"nombre,omitempty"`
	Email         *string `json:"email,omitempty"`
	Telefono      *string `json:"telefono,omitempty"`
	Empresa       *string `json:"empresa,omitempty"`
	Pais          *string `json:"pais,omitempty"`
	FechaContacto *string `json:"fechaContacto,omitempty"`
	Estado        *string `json:"estado,omitempty"`
}

// Empty reports whether the payload carries no field at all.
func (r UpdateClienteRequest) Empty() bool {
	return r.Nombre == nil && r.Email == nil && r.Telefono == nil && r.Empresa == nil &&
		r.Pais == nil && r.FechaContacto == nil && r.Estado == nil
}

// ListClientesRequest filters GET /clientes.
type ListClientesRequest struct {
	Pais string
}
