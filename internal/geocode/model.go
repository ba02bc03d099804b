package geocode

import (
	"strings"

	"viabilidade/internal/coords"
)

const (
	SourceCEP         = "cep"
	SourceGeocode     = "geocode"
	SourceCoordinates = "coordinates"
	SourceClick       = "click"
)

// Resolution é o resultado de uma consulta do campo de busca. Quando nada
// é encontrado, Found fica falso e o ponto devolvido é o centro do mapa
// informado pelo chamador.
type Resolution struct {
	Query       string          `json:"consulta"`
	DisplayName string          `json:"endereco"`
	Source      string          `json:"origem"`
	Point       coords.GeoPoint `json:"ponto"`
	Found       bool            `json:"encontrado"`
}

// PostalAddress é o endereço devolvido por um provedor de CEP. Point só
// vem preenchido quando o provedor já traz coordenadas.
type PostalAddress struct {
	CEP      string
	Street   string
	District string
	City     string
	State    string
	Point    *coords.GeoPoint
}

func (a PostalAddress) DisplayName() string {
	parts := make([]string, 0, 4)
	if a.Street != "" {
		parts = append(parts, a.Street)
	}
	if a.District != "" {
		parts = append(parts, a.District)
	}
	if a.City != "" {
		city := a.City
		if a.State != "" {
			city += " - " + a.State
		}
		parts = append(parts, city)
	}
	if len(parts) == 0 {
		return a.CEP
	}
	return strings.Join(parts, ", ")
}

type ResolveRequest struct {
	Query     string  `json:"consulta" validate:"required"`
	CenterLat float64 `json:"centro_lat"`
	CenterLon float64 `json:"centro_lon"`
}
