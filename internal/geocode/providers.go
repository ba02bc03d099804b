package geocode

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"googlemaps.github.io/maps"

	"viabilidade/internal/coords"
)

var ErrNotFound = errors.New("endereço não encontrado")

// PostalProvider resolve um CEP de 8 dígitos em endereço.
type PostalProvider interface {
	Name() string
	Lookup(ctx context.Context, cep string) (PostalAddress, error)
}

// Geocoder resolve texto livre em coordenadas.
type Geocoder interface {
	Name() string
	Geocode(ctx context.Context, query string) (coords.GeoPoint, string, error)
}

type ViaCEP struct {
	BaseURL string
	Client  *http.Client
}

func NewViaCEP(baseURL string) *ViaCEP {
	return &ViaCEP{
		BaseURL: baseURL,
		Client:  &http.Client{Timeout: 10 * time.Second},
	}
}

func (v *ViaCEP) Name() string { return "viacep" }

func (v *ViaCEP) Lookup(ctx context.Context, cep string) (PostalAddress, error) {
	reqURL := fmt.Sprintf("%s/ws/%s/json/", v.BaseURL, cep)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return PostalAddress{}, err
	}
	resp, err := v.Client.Do(req)
	if err != nil {
		return PostalAddress{}, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return PostalAddress{}, fmt.Errorf("viacep devolveu status %d", resp.StatusCode)
	}

	var body struct {
		Cep        string          `json:"cep"`
		Logradouro string          `json:"logradouro"`
		Bairro     string          `json:"bairro"`
		Localidade string          `json:"localidade"`
		Uf         string          `json:"uf"`
		Erro       json.RawMessage `json:"erro"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return PostalAddress{}, err
	}
	// ViaCEP responde 200 com {"erro": true} para CEP inexistente.
	if len(body.Erro) > 0 {
		return PostalAddress{}, ErrNotFound
	}
	return PostalAddress{
		CEP:      cep,
		Street:   body.Logradouro,
		District: body.Bairro,
		City:     body.Localidade,
		State:    body.Uf,
	}, nil
}

type BrasilAPI struct {
	BaseURL string
	Version int
	Client  *http.Client
}

func NewBrasilAPI(baseURL string, version int) *BrasilAPI {
	return &BrasilAPI{
		BaseURL: baseURL,
		Version: version,
		Client:  &http.Client{Timeout: 10 * time.Second},
	}
}

func (b *BrasilAPI) Name() string { return fmt.Sprintf("brasilapi_v%d", b.Version) }

func (b *BrasilAPI) Lookup(ctx context.Context, cep string) (PostalAddress, error) {
	reqURL := fmt.Sprintf("%s/api/cep/v%d/%s", b.BaseURL, b.Version, cep)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return PostalAddress{}, err
	}
	resp, err := b.Client.Do(req)
	if err != nil {
		return PostalAddress{}, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return PostalAddress{}, ErrNotFound
	}

	var body struct {
		Cep          string          `json:"cep"`
		State        string          `json:"state"`
		City         string          `json:"city"`
		Neighborhood string          `json:"neighborhood"`
		Street       string          `json:"street"`
		Message      string          `json:"message"`
		Errors       json.RawMessage `json:"errors"`
		Location     struct {
			Coordinates struct {
				Longitude string `json:"longitude"`
				Latitude  string `json:"latitude"`
			} `json:"coordinates"`
		} `json:"location"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return PostalAddress{}, err
	}
	if body.Message != "" || len(body.Errors) > 0 {
		return PostalAddress{}, ErrNotFound
	}

	addr := PostalAddress{
		CEP:      cep,
		Street:   body.Street,
		District: body.Neighborhood,
		City:     body.City,
		State:    body.State,
	}
	lat, errLat := strconv.ParseFloat(body.Location.Coordinates.Latitude, 64)
	lon, errLon := strconv.ParseFloat(body.Location.Coordinates.Longitude, 64)
	if errLat == nil && errLon == nil {
		p := coords.GeoPoint{Lat: lat, Lon: lon}
		if p.Valid() {
			addr.Point = &p
		}
	}
	return addr, nil
}

type Nominatim struct {
	BaseURL   string
	UserAgent string
	Client    *http.Client
}

func NewNominatim(baseURL, userAgent string) *Nominatim {
	return &Nominatim{
		BaseURL:   baseURL,
		UserAgent: userAgent,
		Client:    &http.Client{Timeout: 10 * time.Second},
	}
}

func (n *Nominatim) Name() string { return "nominatim" }

func (n *Nominatim) Geocode(ctx context.Context, query string) (coords.GeoPoint, string, error) {
	params := url.Values{}
	params.Set("format", "json")
	params.Set("q", query)
	params.Set("countrycodes", "br")
	params.Set("limit", "1")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, n.BaseURL+"/search?"+params.Encode(), nil)
	if err != nil {
		return coords.GeoPoint{}, "", err
	}
	req.Header.Set("User-Agent", n.UserAgent)

	resp, err := n.Client.Do(req)
	if err != nil {
		return coords.GeoPoint{}, "", err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return coords.GeoPoint{}, "", fmt.Errorf("nominatim devolveu status %d", resp.StatusCode)
	}

	var results []struct {
		Lat         string `json:"lat"`
		Lon         string `json:"lon"`
		DisplayName string `json:"display_name"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&results); err != nil {
		return coords.GeoPoint{}, "", err
	}
	if len(results) == 0 {
		return coords.GeoPoint{}, "", ErrNotFound
	}

	lat, errLat := strconv.ParseFloat(results[0].Lat, 64)
	lon, errLon := strconv.ParseFloat(results[0].Lon, 64)
	if errLat != nil || errLon != nil {
		return coords.GeoPoint{}, "", fmt.Errorf("nominatim devolveu coordenadas inválidas")
	}
	p := coords.GeoPoint{Lat: lat, Lon: lon}
	if !p.Valid() {
		return coords.GeoPoint{}, "", ErrNotFound
	}
	return p, results[0].DisplayName, nil
}

type GoogleGeocoder struct {
	client *maps.Client
}

func NewGoogleGeocoder(apiKey string) (*GoogleGeocoder, error) {
	client, err := maps.NewClient(maps.WithAPIKey(apiKey))
	if err != nil {
		return nil, err
	}
	return &GoogleGeocoder{client: client}, nil
}

func (g *GoogleGeocoder) Name() string { return "google" }

func (g *GoogleGeocoder) Geocode(ctx context.Context, query string) (coords.GeoPoint, string, error) {
	results, err := g.client.Geocode(ctx, &maps.GeocodingRequest{
		Address: query,
		Region:  "br",
	})
	if err != nil {
		return coords.GeoPoint{}, "", err
	}
	if len(results) == 0 {
		return coords.GeoPoint{}, "", ErrNotFound
	}
	loc := results[0].Geometry.Location
	return coords.GeoPoint{Lat: loc.Lat, Lon: loc.Lng}, results[0].FormattedAddress, nil
}
