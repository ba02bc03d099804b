package dataset

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"viabilidade/internal/coords"
	"viabilidade/internal/viability"
	"viabilidade/pkg/memcache"
)

func TestCoordenadasEndpoint(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/coordenadas" {
			t.Errorf("caminho = %q, esperava /coordenadas", r.URL.Path)
		}
		if got := r.URL.Query().Get("arquivo"); got != "rede maricá.kml" {
			t.Errorf("arquivo = %q", got)
		}
		w.Write([]byte(`[
			{"tipo":"point","nome":"CTO 1","lat":-22.91,"lng":-42.81},
			{"tipo":"line","coordenadas":[[-22.91,-42.81],[-22.92,-42.82]]}
		]`))
	}))
	defer srv.Close()

	client := NewDatasetClient(srv.URL)
	features, err := client.Coordenadas(context.Background(), "rede maricá.kml")
	if err != nil {
		t.Fatal(err)
	}
	if len(features) != 2 {
		t.Fatalf("%d features", len(features))
	}
	if features[0].Tipo != TipoPonto || features[1].Tipo != TipoLinha {
		t.Errorf("tipos = %q, %q", features[0].Tipo, features[1].Tipo)
	}
}

// Um arquivo servido com os tipos reais do exportador rende pontos e
// linhas, nunca linhas contadas como coordenadas inválidas.
func TestLoadDatasetComTiposDoExportador(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[
			{"tipo":"point","nome":"CTO 1","lat":-22.91,"lng":-42.81},
			{"tipo":"line","coordenadas":[[-22.91,-42.81],[-22.92,-42.82]]}
		]`))
	}))
	defer srv.Close()

	renderer := viability.NewLayerState(coords.GeoPoint{Lat: -22.919, Lon: -42.818}, 12)
	svc := NewDatasetService(NewDatasetClient(srv.URL), memcache.NewCache(), renderer)

	report, err := svc.LoadDatasetService(context.Background(), "rede.kml")
	if err != nil {
		t.Fatal(err)
	}
	if report.Pontos != 1 || report.Linhas != 1 || report.Ignorados != 0 {
		t.Fatalf("report = %+v", report)
	}
}
