package dataset

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"
)

// LoadTimeout limita a busca das coordenadas de um arquivo.
const LoadTimeout = 15 * time.Second

type InterfaceClient interface {
	ListarArquivos(ctx context.Context) ([]Arquivo, error)
	Coordenadas(ctx context.Context, nome string) ([]Feature, error)
}

type Client struct {
	BaseURL string
	HTTP    *http.Client
}

func NewDatasetClient(baseURL string) *Client {
	return &Client{
		BaseURL: baseURL,
		HTTP:    &http.Client{Timeout: LoadTimeout},
	}
}

func (c *Client) ListarArquivos(ctx context.Context) ([]Arquivo, error) {
	var arquivos []Arquivo
	if err := c.getJSON(ctx, c.BaseURL+"/arquivos", &arquivos); err != nil {
		return nil, err
	}
	return arquivos, nil
}

func (c *Client) Coordenadas(ctx context.Context, nome string) ([]Feature, error) {
	ctx, cancel := context.WithTimeout(ctx, LoadTimeout)
	defer cancel()

	var features []Feature
	reqURL := fmt.Sprintf("%s/coordenadas?arquivo=%s", c.BaseURL, url.QueryEscape(nome))
	if err := c.getJSON(ctx, reqURL, &features); err != nil {
		return nil, err
	}
	return features, nil
}

func (c *Client) getJSON(ctx context.Context, reqURL string, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return err
	}
	resp, err := c.HTTP.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("servidor de arquivos devolveu status %d", resp.StatusCode)
	}
	return json.NewDecoder(resp.Body).Decode(out)
}
