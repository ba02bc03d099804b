package hist

import (
	"context"
	"testing"
	"time"
)

type fakeRepository struct {
	entries []SearchEntry
	tema    string
	nextID  int64
}

func (f *fakeRepository) InsertSearchRepository(ctx context.Context, consulta, tipo string) error {
	f.nextID++
	f.entries = append([]SearchEntry{{
		ID: f.nextID, Consulta: consulta, Tipo: tipo, CriadoEm: time.Now(),
	}}, f.entries...)
	return nil
}

func (f *fakeRepository) DeleteSearchRepository(ctx context.Context, consulta string) error {
	kept := f.entries[:0]
	for _, e := range f.entries {
		if e.Consulta != consulta {
			kept = append(kept, e)
		}
	}
	f.entries = kept
	return nil
}

func (f *fakeRepository) TrimSearchesRepository(ctx context.Context, max int) error {
	if len(f.entries) > max {
		f.entries = f.entries[:max]
	}
	return nil
}

func (f *fakeRepository) ListSearchesRepository(ctx context.Context, limit int) ([]SearchEntry, error) {
	if len(f.entries) > limit {
		return f.entries[:limit], nil
	}
	return f.entries, nil
}

func (f *fakeRepository) ClearSearchesRepository(ctx context.Context) error {
	f.entries = nil
	return nil
}

func (f *fakeRepository) GetThemeRepository(ctx context.Context) (string, error) {
	return f.tema, nil
}

func (f *fakeRepository) SetThemeRepository(ctx context.Context, tema string) error {
	f.tema = tema
	return nil
}

func TestAddSearchDedup(t *testing.T) {
	svc := NewHistService(&fakeRepository{})
	ctx := context.Background()

	svc.AddSearchService(ctx, "Rua das Pedras")
	svc.AddSearchService(ctx, "Centro")
	entries, err := svc.AddSearchService(ctx, "Rua das Pedras")
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 2 {
		t.Fatalf("histórico com %d entradas, esperava 2", len(entries))
	}
	if entries[0].Consulta != "Rua das Pedras" {
		t.Errorf("consulta repetida deveria subir para o topo: %+v", entries)
	}
}

func TestAddSearchLimite(t *testing.T) {
	svc := NewHistService(&fakeRepository{})
	ctx := context.Background()

	for i := 0; i < 25; i++ {
		if _, err := svc.AddSearchService(ctx, "consulta "+string(rune('a'+i))); err != nil {
			t.Fatal(err)
		}
	}
	entries, _ := svc.ListSearchesService(ctx)
	if len(entries) != HistoryLimit {
		t.Errorf("histórico com %d entradas, esperava %d", len(entries), HistoryLimit)
	}
}

func TestAddSearchMuitoCurta(t *testing.T) {
	svc := NewHistService(&fakeRepository{})
	if _, err := svc.AddSearchService(context.Background(), " a "); err == nil {
		t.Fatal("consulta de um caractere não deveria entrar no histórico")
	}
}

func TestDetectSearchType(t *testing.T) {
	tests := []struct {
		consulta string
		want     string
	}{
		{"24900-000", TipoCEP},
		{"-22.919, -42.818", TipoCoordenadas},
		{"123", TipoNumero},
		{"Rua das Pedras 45", TipoEndereco},
		{"Maricá", TipoCidade},
	}
	for _, tt := range tests {
		if got := DetectSearchType(tt.consulta); got != tt.want {
			t.Errorf("DetectSearchType(%q) = %q, esperava %q", tt.consulta, got, tt.want)
		}
	}
}

func TestTheme(t *testing.T) {
	svc := NewHistService(&fakeRepository{})
	ctx := context.Background()

	tema, err := svc.GetThemeService(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if tema.Tema != "light" {
		t.Errorf("tema padrão = %q, esperava light", tema.Tema)
	}

	if err := svc.SetThemeService(ctx, "dark"); err != nil {
		t.Fatal(err)
	}
	tema, _ = svc.GetThemeService(ctx)
	if tema.Tema != "dark" {
		t.Errorf("tema = %q", tema.Tema)
	}

	if err := svc.SetThemeService(ctx, "azul"); err == nil {
		t.Error("tema fora de light/dark deveria ser rejeitado")
	}
}
