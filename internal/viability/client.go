package viability

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"viabilidade/internal/coords"
)

// VerificationTimeout limita a chamada ao verificador; estourado, a sessão
// falha com MsgTimeout em vez de MsgConexao.
const VerificationTimeout = 60 * time.Second

// ErrSemantico embala o campo "erro" devolvido pelo verificador, que deve
// chegar ao usuário sem tradução.
type ErrSemantico struct {
	Mensagem string
}

func (e *ErrSemantico) Error() string { return e.Mensagem }

type InterfaceClient interface {
	Verificar(ctx context.Context, p coords.GeoPoint) (Result, error)
}

type Client struct {
	BaseURL string
	HTTP    *http.Client
}

func NewViabilityClient(baseURL string) *Client {
	return &Client{
		BaseURL: baseURL,
		HTTP:    &http.Client{Timeout: VerificationTimeout},
	}
}

func (c *Client) Verificar(ctx context.Context, p coords.GeoPoint) (Result, error) {
	reqURL := fmt.Sprintf("%s/verificar-viabilidade?lat=%f&lon=%f", c.BaseURL, p.Lat, p.Lon)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return Result{}, err
	}

	resp, err := c.HTTP.Do(req)
	if err != nil {
		return Result{}, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return Result{}, fmt.Errorf("verificador devolveu status %d", resp.StatusCode)
	}

	var body apiResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return Result{}, err
	}
	if body.Erro != "" {
		return Result{}, &ErrSemantico{Mensagem: body.Erro}
	}
	if body.Viabilidade.Status == "" {
		return Result{}, errors.New("resposta do verificador sem status")
	}

	result := Result{
		Status: body.Viabilidade.Status,
		Cor:    body.Viabilidade.Cor,
		Metros: body.Distancia.Metros,
		Cto: Cto{
			Lat:     body.Cto.Lat,
			Lon:     body.Cto.Lon,
			Nome:    body.Cto.Nome,
			Numero:  FormatCtoNumber(body.Cto.Nome),
			Arquivo: body.Cto.Arquivo,
		},
	}
	result.Rota = converterGeometria(body.Rota.Geometria)
	return result, nil
}

// converterGeometria transforma pares [lon, lat] em pontos, descartando
// vértices fora dos limites. Menos de dois vértices válidos vira rota vazia
// e o serviço cai para a linha reta.
func converterGeometria(geometria [][]float64) []coords.GeoPoint {
	if len(geometria) < 2 {
		return nil
	}
	pontos := make([]coords.GeoPoint, 0, len(geometria))
	for _, par := range geometria {
		if len(par) < 2 {
			continue
		}
		p := coords.GeoPoint{Lat: par[1], Lon: par[0]}
		if p.Valid() {
			pontos = append(pontos, p)
		}
	}
	if len(pontos) < 2 {
		return nil
	}
	return pontos
}
