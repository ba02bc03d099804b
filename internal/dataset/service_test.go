package dataset

import (
	"context"
	"encoding/json"
	"testing"

	"viabilidade/internal/coords"
	"viabilidade/internal/viability"
	"viabilidade/pkg/memcache"
)

type fakeDatasetClient struct {
	calls    int
	features []Feature
}

func (f *fakeDatasetClient) ListarArquivos(ctx context.Context) ([]Arquivo, error) {
	return []Arquivo{{Nome: "rede.kml", Tipo: "kml"}}, nil
}

func (f *fakeDatasetClient) Coordenadas(ctx context.Context, nome string) ([]Feature, error) {
	f.calls++
	return f.features, nil
}

func flex(v float64) *FlexFloat {
	f := FlexFloat(v)
	return &f
}

func newTestService(features []Feature) (*Service, *viability.LayerState, *fakeDatasetClient) {
	client := &fakeDatasetClient{features: features}
	renderer := viability.NewLayerState(coords.GeoPoint{Lat: -22.919, Lon: -42.818}, 12)
	svc := NewDatasetService(client, memcache.NewCache(), renderer)
	return svc, renderer, client
}

func TestLoadDatasetIgnoraInvalidos(t *testing.T) {
	svc, renderer, _ := newTestService([]Feature{
		{Tipo: TipoPonto, Lat: flex(-22.91), Lng: flex(-42.81)},
		{Tipo: TipoPonto, Lat: flex(-22.92), Lng: flex(-42.82)},
		{Tipo: TipoPonto, Lat: flex(200), Lng: flex(-42.81)},
		{Tipo: TipoPonto},
		{Tipo: TipoLinha, Coordenadas: [][]FlexFloat{{-22.91, -42.81}, {-22.92, -42.82}}},
		{Tipo: TipoLinha, Coordenadas: [][]FlexFloat{{-22.91, -42.81}, {200, 300}}},
	})

	report, err := svc.LoadDatasetService(context.Background(), "rede.kml")
	if err != nil {
		t.Fatal(err)
	}
	if report.Pontos != 2 || report.Linhas != 1 || report.Ignorados != 3 {
		t.Fatalf("report = %+v", report)
	}

	group, ok := renderer.Group("rede.kml")
	if !ok {
		t.Fatal("grupo não anexado")
	}
	if len(group) != 3 {
		t.Errorf("grupo com %d camadas, esperava 3", len(group))
	}
}

func TestLoadDatasetEmLotes(t *testing.T) {
	var features []Feature
	for i := 0; i < 120; i++ {
		features = append(features, Feature{Tipo: TipoPonto, Lat: flex(-22.9), Lng: flex(-42.8)})
	}
	svc, renderer, _ := newTestService(features)

	yields := 0
	attached := false
	svc.yield = func() {
		yields++
		if _, ok := renderer.Group("rede.kml"); ok {
			attached = true
		}
	}

	report, err := svc.LoadDatasetService(context.Background(), "rede.kml")
	if err != nil {
		t.Fatal(err)
	}
	if report.Pontos != 120 {
		t.Errorf("pontos = %d", report.Pontos)
	}
	if yields != 2 {
		t.Errorf("yields = %d, esperava 2 para 120 features em lotes de 50", yields)
	}
	if attached {
		t.Error("grupo não deveria aparecer no mapa antes do fim do carregamento")
	}
	if _, ok := renderer.Group("rede.kml"); !ok {
		t.Error("grupo deveria estar anexado ao final")
	}
}

func TestLoadDatasetUsaCache(t *testing.T) {
	svc, _, client := newTestService([]Feature{
		{Tipo: TipoPonto, Lat: flex(-22.91), Lng: flex(-42.81)},
	})

	for i := 0; i < 3; i++ {
		if _, err := svc.LoadDatasetService(context.Background(), "rede.kml"); err != nil {
			t.Fatal(err)
		}
	}
	if client.calls != 1 {
		t.Errorf("coordenadas buscadas %d vezes, esperava 1", client.calls)
	}
}

func TestUnloadDataset(t *testing.T) {
	svc, renderer, _ := newTestService([]Feature{
		{Tipo: TipoPonto, Lat: flex(-22.91), Lng: flex(-42.81)},
	})
	svc.LoadDatasetService(context.Background(), "rede.kml")
	svc.UnloadDatasetService("rede.kml")
	if _, ok := renderer.Group("rede.kml"); ok {
		t.Error("grupo deveria ter sido removido")
	}
}

func TestFlexFloatUnmarshal(t *testing.T) {
	var f Feature
	raw := `{"tipo":"point","lat":"-22,91","lng":-42.81}`
	if err := json.Unmarshal([]byte(raw), &f); err != nil {
		t.Fatal(err)
	}
	if float64(*f.Lat) != -22.91 || float64(*f.Lng) != -42.81 {
		t.Errorf("lat=%v lng=%v", *f.Lat, *f.Lng)
	}

	if err := json.Unmarshal([]byte(`{"lat":"abc"}`), &f); err == nil {
		t.Error("esperava erro para valor não numérico")
	}
}
