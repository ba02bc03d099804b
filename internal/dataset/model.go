package dataset

import (
	"fmt"
	"strconv"
	"strings"
)

// FlexFloat aceita número JSON, string numérica e decimal com vírgula,
// formatos que aparecem misturados nos arquivos exportados.
type FlexFloat float64

func (f *FlexFloat) UnmarshalJSON(data []byte) error {
	s := strings.TrimSpace(string(data))
	if s == "null" || s == `""` {
		return nil
	}
	s = strings.Trim(s, `"`)
	s = strings.ReplaceAll(s, ",", ".")
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return fmt.Errorf("número inválido: %s", s)
	}
	*f = FlexFloat(v)
	return nil
}

// Valores do campo "tipo" como o servidor de arquivos exporta.
const (
	TipoPonto = "point"
	TipoLinha = "line"
)

// Feature é um elemento do arquivo: ponto com lat/lng próprios ou linha
// com a lista de vértices em pares [lat, lng].
type Feature struct {
	Tipo        string        `json:"tipo"`
	Nome        string        `json:"nome"`
	Lat         *FlexFloat    `json:"lat"`
	Lng         *FlexFloat    `json:"lng"`
	Coordenadas [][]FlexFloat `json:"coordenadas"`
}

type Arquivo struct {
	Nome string `json:"nome"`
	Tipo string `json:"tipo"`
}

// LoadReport resume o carregamento de um arquivo no mapa.
type LoadReport struct {
	Arquivo   string `json:"arquivo"`
	Pontos    int    `json:"pontos"`
	Linhas    int    `json:"linhas"`
	Ignorados int    `json:"ignorados"`
}
