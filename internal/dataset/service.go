package dataset

import (
	"context"
	"fmt"
	"log"
	"math"

	"viabilidade/internal/coords"
	"viabilidade/internal/viability"
	"viabilidade/pkg/memcache"
	"viabilidade/pkg/metrics"
)

// BatchSize é quantas features entram por lote antes de ceder a vez.
const BatchSize = 50

type InterfaceService interface {
	ListFilesService(ctx context.Context) ([]Arquivo, error)
	LoadDatasetService(ctx context.Context, nome string) (LoadReport, error)
	UnloadDatasetService(nome string)
}

type Service struct {
	Client   InterfaceClient
	Cache    *memcache.Cache
	Renderer viability.GroupRenderer

	// yield é chamado entre lotes; nos testes vira um contador.
	yield func()
}

func NewDatasetService(client InterfaceClient, cache *memcache.Cache, renderer viability.GroupRenderer) *Service {
	return &Service{
		Client:   client,
		Cache:    cache,
		Renderer: renderer,
		yield:    func() {},
	}
}

func (s *Service) ListFilesService(ctx context.Context) ([]Arquivo, error) {
	return s.Client.ListarArquivos(ctx)
}

// LoadDatasetService busca as features do arquivo, processa em lotes e só
// anexa o grupo de camadas no final, para o mapa nunca exibir um arquivo
// pela metade.
func (s *Service) LoadDatasetService(ctx context.Context, nome string) (LoadReport, error) {
	features, err := s.featuresDoArquivo(ctx, nome)
	if err != nil {
		metrics.Errors.WithLabelValues("arquivos").Inc()
		return LoadReport{}, err
	}

	report := LoadReport{Arquivo: nome}
	var markers []coords.GeoPoint
	var lines [][]coords.GeoPoint

	for i := 0; i < len(features); i += BatchSize {
		end := i + BatchSize
		if end > len(features) {
			end = len(features)
		}
		for _, f := range features[i:end] {
			switch f.Tipo {
			case TipoLinha:
				line, ok := parseLine(f)
				if !ok {
					report.Ignorados++
					continue
				}
				lines = append(lines, line)
				report.Linhas++
			default:
				p, ok := parsePoint(f)
				if !ok {
					report.Ignorados++
					continue
				}
				markers = append(markers, p)
				report.Pontos++
			}
		}
		if end < len(features) {
			s.yield()
		}
	}

	if report.Ignorados > 0 {
		log.Printf("arquivo %s: %d elementos ignorados por coordenadas inválidas", nome, report.Ignorados)
	}

	s.Renderer.AttachGroup(nome, markers, lines)
	return report, nil
}

func (s *Service) UnloadDatasetService(nome string) {
	s.Renderer.RemoveGroup(nome)
}

func (s *Service) featuresDoArquivo(ctx context.Context, nome string) ([]Feature, error) {
	cacheKey := fmt.Sprintf("coords_%s", nome)
	if cached, ok := s.Cache.Get(memcache.CategoryCoordinates, cacheKey); ok {
		if features, ok := cached.([]Feature); ok {
			metrics.CacheHits.WithLabelValues(string(memcache.CategoryCoordinates)).Inc()
			return features, nil
		}
	}
	metrics.CacheMisses.WithLabelValues(string(memcache.CategoryCoordinates)).Inc()

	metrics.APICalls.WithLabelValues("arquivos").Inc()
	features, err := s.Client.Coordenadas(ctx, nome)
	if err != nil {
		return nil, err
	}
	s.Cache.Set(memcache.CategoryCoordinates, cacheKey, features)
	return features, nil
}

func parsePoint(f Feature) (coords.GeoPoint, bool) {
	if f.Lat == nil || f.Lng == nil {
		return coords.GeoPoint{}, false
	}
	lat, lon := float64(*f.Lat), float64(*f.Lng)
	if math.IsNaN(lat) || math.IsInf(lat, 0) || math.IsNaN(lon) || math.IsInf(lon, 0) {
		return coords.GeoPoint{}, false
	}
	p := coords.GeoPoint{Lat: lat, Lon: lon}
	if !p.Valid() {
		return coords.GeoPoint{}, false
	}
	return p, true
}

// parseLine descarta vértices inválidos; a linha só vale com pelo menos
// dois vértices restantes.
func parseLine(f Feature) ([]coords.GeoPoint, bool) {
	line := make([]coords.GeoPoint, 0, len(f.Coordenadas))
	for _, par := range f.Coordenadas {
		if len(par) < 2 {
			continue
		}
		p := coords.GeoPoint{Lat: float64(par[0]), Lon: float64(par[1])}
		if math.IsNaN(p.Lat) || math.IsInf(p.Lat, 0) || math.IsNaN(p.Lon) || math.IsInf(p.Lon, 0) || !p.Valid() {
			continue
		}
		line = append(line, p)
	}
	if len(line) < 2 {
		return nil, false
	}
	return line, true
}
