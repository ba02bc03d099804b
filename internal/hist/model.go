package hist

import "time"

// Tipos detectados para uma consulta do campo de busca.
const (
	TipoCEP         = "cep"
	TipoCoordenadas = "coordenadas"
	TipoNumero      = "numero"
	TipoEndereco    = "endereco"
	TipoCidade      = "cidade"
)

type SearchEntry struct {
	ID       int64     `json:"id"`
	Consulta string    `json:"consulta"`
	Tipo     string    `json:"tipo"`
	CriadoEm time.Time `json:"criado_em"`
}

type AddSearchRequest struct {
	Consulta string `json:"consulta" validate:"required"`
}

type ThemeRequest struct {
	Tema string `json:"tema" validate:"required"`
}

type ThemeResponse struct {
	Tema string `json:"tema"`
}
