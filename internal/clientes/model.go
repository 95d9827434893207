package clientes

import "golang.org/x/text/unicode/norm"

// Cliente is a stored customer record.
type Cliente struct {
	ID            int64   `json:"id"`
	Nombre        string  `json:"nombre"`
	Email         string  `json:"email"`
	Telefono      string  `json:"telefono"`
	Empresa       *string `json:"empresa,omitempty"`
	Pais          Pais    `json:"pais"`
	FechaContacto string  `json:"fechaContacto"`
	Estado        Estado  `json:"estado"`
}

func (c Cliente) clone() Cliente {
	if c.Empresa != nil {
		empresa := *c.Empresa
		c.Empresa = &empresa
	}
	return c
}

// Pais is one of the countries a cliente may belong to.
type Pais string

const (
	PaisGuatemala     Pais = "Guatemala"
	PaisEstadosUnidos Pais = "Estados Unidos"
	PaisMexico        Pais = "México"
)

// Paises lists every accepted country in display order.
var Paises = []Pais{PaisGuatemala, PaisEstadosUnidos, PaisMexico}

// ParsePais returns the Pais matching s exactly (after NFC normalisation).
func ParsePais(s string) (Pais, bool) {
	s = norm.NFC.String(s)
	for _, p := range Paises {
		if string(p) == s {
			return p, true
		}
	}
	return "", false
}

// Estado is the lifecycle state of a cliente within the sales funnel.
type Estado string

const (
	EstadoNuevo         Estado = "Nuevo"
	EstadoEnNegociacion Estado = "En negociación"
	EstadoGanado        Estado = "Ganado"
	EstadoPerdido       Estado = "Perdido"
)

// Estados lists every accepted state in funnel order.
var Estados = []Estado{EstadoNuevo, EstadoEnNegociacion, EstadoGanado, EstadoPerdido}

// ParseEstado returns the Estado matching s exactly (after NFC normalisation).
func ParseEstado(s string) (Estado, bool) {
	s = norm.NFC.String(s)
	for _, e := range Estados {
		if string(e) == s {
			return e, true
		}
	}
	return "", false
}
