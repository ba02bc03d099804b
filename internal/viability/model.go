package viability

import (
	"viabilidade/internal/coords"
)

// Estados de uma sessão de verificação. A sessão nasce em located (ponto
// escolhido aguardando confirmação) e termina em viable, not_viable ou
// failed; idle é a ausência de sessão ativa.
const (
	StateIdle      = "idle"
	StateLocated   = "located"
	StateChecking  = "checking"
	StateViable    = "viable"
	StateNotViable = "not_viable"
	StateFailed    = "failed"
)

const (
	MsgTimeout   = "Verificação demorou mais que 60 segundos e foi cancelada. Tente novamente."
	MsgConexao   = "Erro de conexão na verificação"
	MsgCancelada = "Verificação cancelada"
)

// Result é a resposta da API de viabilidade já normalizada.
type Result struct {
	Status   string            `json:"status"`
	Cor      string            `json:"cor,omitempty"`
	Metros   float64           `json:"metros"`
	Cto      Cto               `json:"cto"`
	Rota     []coords.GeoPoint `json:"rota,omitempty"`
	RotaReta bool              `json:"rota_reta"`
}

type Cto struct {
	Lat     float64 `json:"lat"`
	Lon     float64 `json:"lon"`
	Nome    string  `json:"nome"`
	Numero  string  `json:"numero,omitempty"`
	Arquivo string  `json:"arquivo,omitempty"`
}

// Snapshot é a visão externa de uma sessão, devolvida pelos handlers.
type Snapshot struct {
	ID       string          `json:"id"`
	State    string          `json:"estado"`
	Point    coords.GeoPoint `json:"ponto"`
	Address  string          `json:"endereco,omitempty"`
	Result   *Result         `json:"resultado,omitempty"`
	Mensagem string          `json:"mensagem,omitempty"`
}

// LocateRequest é o ponto clicado no mapa. Zero é latitude válida, o
// país cruza a linha do equador, então os campos validam por faixa e não
// por presença.
type LocateRequest struct {
	Lat      float64 `json:"lat" validate:"gte=-90,lte=90"`
	Lon      float64 `json:"lon" validate:"gte=-180,lte=180"`
	Endereco string  `json:"endereco"`
}

// apiResponse espelha o JSON cru do verificador.
type apiResponse struct {
	Erro        string `json:"erro"`
	Viabilidade struct {
		Status string `json:"status"`
		Cor    string `json:"cor"`
	} `json:"viabilidade"`
	Distancia struct {
		Metros float64 `json:"metros"`
	} `json:"distancia"`
	Cto struct {
		Lat     float64 `json:"lat"`
		Lon     float64 `json:"lon"`
		Nome    string  `json:"nome"`
		Arquivo string  `json:"arquivo"`
	} `json:"cto"`
	Rota struct {
		Geometria [][]float64 `json:"geometria"`
	} `json:"rota"`
}
