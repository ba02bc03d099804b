package geocode

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"

	"viabilidade/internal/coords"
	"viabilidade/pkg/memcache"
)

var mapCenter = coords.GeoPoint{Lat: -22.919, Lon: -42.818}

func newTestService(postais []PostalProvider, geocoders []Geocoder) *Service {
	return NewGeocodeService(postais, geocoders, memcache.NewCache())
}

func TestResolveQueryCoordenadas(t *testing.T) {
	svc := newTestService(nil, nil)

	res, err := svc.ResolveQueryService(context.Background(), "-22.919, -42.818", mapCenter)
	if err != nil {
		t.Fatal(err)
	}
	if !res.Found || res.Source != SourceCoordinates {
		t.Fatalf("res = %+v, esperava coordenadas encontradas", res)
	}
	if res.Point.Lat != -22.919 || res.Point.Lon != -42.818 {
		t.Errorf("ponto = %+v", res.Point)
	}
}

func TestResolveQueryCEPViaCEP(t *testing.T) {
	viacep := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/ws/24900000/json/" {
			t.Errorf("path inesperado: %s", r.URL.Path)
		}
		fmt.Fprint(w, `{"cep":"24900-000","logradouro":"Rua das Pedras","bairro":"Centro","localidade":"Maricá","uf":"RJ"}`)
	}))
	defer viacep.Close()

	nominatim := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query().Get("q")
		if !strings.Contains(q, "Rua das Pedras") {
			t.Errorf("consulta inesperada no geocodificador: %s", q)
		}
		fmt.Fprint(w, `[{"lat":"-22.92","lon":"-42.82","display_name":"Rua das Pedras, Maricá"}]`)
	}))
	defer nominatim.Close()

	svc := newTestService(
		[]PostalProvider{NewViaCEP(viacep.URL)},
		[]Geocoder{NewNominatim(nominatim.URL, "viabilidade-test")},
	)

	res, err := svc.ResolveQueryService(context.Background(), "24900-000", mapCenter)
	if err != nil {
		t.Fatal(err)
	}
	if !res.Found || res.Source != SourceCEP {
		t.Fatalf("res = %+v, esperava CEP encontrado", res)
	}
	if res.Point.Lat != -22.92 || res.Point.Lon != -42.82 {
		t.Errorf("ponto = %+v", res.Point)
	}
	if !strings.Contains(res.DisplayName, "Rua das Pedras") {
		t.Errorf("endereço = %q", res.DisplayName)
	}
}

func TestResolveQueryCEPFallbackBrasilAPI(t *testing.T) {
	viacep := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"erro": true}`)
	}))
	defer viacep.Close()

	var v1Calls int32
	brasilapi := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case strings.Contains(r.URL.Path, "/v2/"):
			fmt.Fprint(w, `{"cep":"24900000","state":"RJ","city":"Maricá","neighborhood":"Centro","street":"Rua Um","location":{"coordinates":{"longitude":"-42.81","latitude":"-22.91"}}}`)
		default:
			atomic.AddInt32(&v1Calls, 1)
			http.NotFound(w, r)
		}
	}))
	defer brasilapi.Close()

	svc := newTestService(
		[]PostalProvider{
			NewViaCEP(viacep.URL),
			NewBrasilAPI(brasilapi.URL, 2),
			NewBrasilAPI(brasilapi.URL, 1),
		},
		nil,
	)

	res, err := svc.ResolveQueryService(context.Background(), "24900000", mapCenter)
	if err != nil {
		t.Fatal(err)
	}
	if !res.Found || res.Source != SourceCEP {
		t.Fatalf("res = %+v", res)
	}
	if res.Point.Lat != -22.91 || res.Point.Lon != -42.81 {
		t.Errorf("ponto = %+v, esperava coordenadas da BrasilAPI v2", res.Point)
	}
	if atomic.LoadInt32(&v1Calls) != 0 {
		t.Error("v1 não deveria ser consultada quando a v2 responde")
	}
}

func TestResolveQueryEnderecoLivre(t *testing.T) {
	nominatim := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("User-Agent") == "" {
			t.Error("requisição sem User-Agent")
		}
		if r.URL.Query().Get("countrycodes") != "br" {
			t.Error("consulta sem countrycodes=br")
		}
		fmt.Fprint(w, `[{"lat":"-22.90","lon":"-42.80","display_name":"Praça Orlando de Barros, Maricá"}]`)
	}))
	defer nominatim.Close()

	svc := newTestService(nil, []Geocoder{NewNominatim(nominatim.URL, "viabilidade-test")})

	res, err := svc.ResolveQueryService(context.Background(), "Praça Orlando de Barros", mapCenter)
	if err != nil {
		t.Fatal(err)
	}
	if !res.Found || res.Source != SourceGeocode {
		t.Fatalf("res = %+v", res)
	}
}

func TestResolveQueryNaoEncontrado(t *testing.T) {
	nominatim := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `[]`)
	}))
	defer nominatim.Close()

	svc := newTestService(nil, []Geocoder{NewNominatim(nominatim.URL, "viabilidade-test")})

	res, err := svc.ResolveQueryService(context.Background(), "rua que não existe 999", mapCenter)
	if err != nil {
		t.Fatal(err)
	}
	if res.Found {
		t.Fatal("esperava Found=false")
	}
	if res.Point != mapCenter {
		t.Errorf("ponto = %+v, esperava centro do mapa", res.Point)
	}
	if !strings.HasPrefix(res.DisplayName, "Endereço não encontrado: ") {
		t.Errorf("endereço = %q", res.DisplayName)
	}
}

func TestResolveQueryUsaCache(t *testing.T) {
	var calls int32
	nominatim := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		fmt.Fprint(w, `[{"lat":"-22.90","lon":"-42.80","display_name":"Centro, Maricá"}]`)
	}))
	defer nominatim.Close()

	svc := newTestService(nil, []Geocoder{NewNominatim(nominatim.URL, "viabilidade-test")})

	for i := 0; i < 3; i++ {
		if _, err := svc.ResolveQueryService(context.Background(), "Centro Maricá", mapCenter); err != nil {
			t.Fatal(err)
		}
	}
	// Acentos e caixa diferentes caem na mesma chave.
	if _, err := svc.ResolveQueryService(context.Background(), "centro marica", mapCenter); err != nil {
		t.Fatal(err)
	}
	if got := atomic.LoadInt32(&calls); got != 1 {
		t.Errorf("geocodificador chamado %d vezes, esperava 1", got)
	}
}
