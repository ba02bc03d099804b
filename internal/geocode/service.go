package geocode

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"
	"unicode"

	"github.com/go-redis/redis/v8"
	"golang.org/x/sync/singleflight"
	"golang.org/x/text/unicode/norm"

	"viabilidade/internal/coords"
	"viabilidade/pkg"
	"viabilidade/pkg/memcache"
	"viabilidade/pkg/metrics"
)

type InterfaceService interface {
	ResolveQueryService(ctx context.Context, query string, center coords.GeoPoint) (Resolution, error)
}

type Service struct {
	Postais   []PostalProvider
	Geocoders []Geocoder
	Cache     *memcache.Cache
	group     singleflight.Group
}

func NewGeocodeService(postais []PostalProvider, geocoders []Geocoder, cache *memcache.Cache) *Service {
	return &Service{Postais: postais, Geocoders: geocoders, Cache: cache}
}

// ResolveQueryService tenta, nesta ordem: coordenadas coladas no campo,
// cadeia de provedores de CEP e cadeia de geocodificadores. Quando tudo
// falha devolve o centro do mapa com Found=false em vez de erro, para a
// interface poder posicionar o marcador mesmo assim.
func (s *Service) ResolveQueryService(ctx context.Context, query string, center coords.GeoPoint) (Resolution, error) {
	q := strings.TrimSpace(query)
	if q == "" {
		return Resolution{}, errors.New("consulta vazia")
	}

	cacheKey := normalizeQuery(q)
	if cached, ok := s.Cache.Get(memcache.CategorySearch, cacheKey); ok {
		if res, ok := cached.(Resolution); ok {
			metrics.CacheHits.WithLabelValues(string(memcache.CategorySearch)).Inc()
			return res, nil
		}
	}
	metrics.CacheMisses.WithLabelValues(string(memcache.CategorySearch)).Inc()

	res, err, _ := s.group.Do(cacheKey, func() (interface{}, error) {
		return s.resolve(ctx, q, center), nil
	})
	if err != nil {
		return Resolution{}, err
	}
	resolution := res.(Resolution)
	s.Cache.Set(memcache.CategorySearch, cacheKey, resolution)
	return resolution, nil
}

func (s *Service) resolve(ctx context.Context, q string, center coords.GeoPoint) Resolution {
	if p, ok := coords.ParseCoordinates(q); ok {
		return Resolution{
			Query:       q,
			DisplayName: fmt.Sprintf("%.6f, %.6f", p.Lat, p.Lon),
			Source:      SourceCoordinates,
			Point:       p,
			Found:       true,
		}
	}

	if cep := coords.ExtractCEP(q); cep != "" {
		if res, ok := s.resolveCEP(ctx, q, cep); ok {
			return res
		}
	}

	for _, g := range s.Geocoders {
		metrics.APICalls.WithLabelValues(g.Name()).Inc()
		p, display, err := g.Geocode(ctx, q)
		if err != nil {
			if !errors.Is(err, ErrNotFound) {
				log.Printf("erro no geocodificador %s: %v", g.Name(), err)
				metrics.Errors.WithLabelValues("geocode").Inc()
			}
			continue
		}
		return Resolution{
			Query:       q,
			DisplayName: display,
			Source:      SourceGeocode,
			Point:       p,
			Found:       true,
		}
	}

	return Resolution{
		Query:       q,
		DisplayName: "Endereço não encontrado: " + q,
		Source:      SourceGeocode,
		Point:       center,
		Found:       false,
	}
}

// resolveCEP percorre a cadeia de provedores de CEP. Endereços sem
// coordenadas próprias passam pelos geocodificadores antes de valer.
func (s *Service) resolveCEP(ctx context.Context, q, cep string) (Resolution, bool) {
	if p, ok := s.cepFromRedis(ctx, cep); ok {
		return Resolution{
			Query:       q,
			DisplayName: "CEP " + cep,
			Source:      SourceCEP,
			Point:       p,
			Found:       true,
		}, true
	}

	for _, provider := range s.Postais {
		metrics.APICalls.WithLabelValues(provider.Name()).Inc()
		addr, err := provider.Lookup(ctx, cep)
		if err != nil {
			if !errors.Is(err, ErrNotFound) {
				log.Printf("erro no provedor de CEP %s: %v", provider.Name(), err)
				metrics.Errors.WithLabelValues("cep").Inc()
			}
			continue
		}

		if addr.Point != nil {
			s.cepToRedis(ctx, cep, *addr.Point)
			return Resolution{
				Query:       q,
				DisplayName: addr.DisplayName(),
				Source:      SourceCEP,
				Point:       *addr.Point,
				Found:       true,
			}, true
		}

		for _, g := range s.Geocoders {
			metrics.APICalls.WithLabelValues(g.Name()).Inc()
			p, _, err := g.Geocode(ctx, addr.DisplayName())
			if err != nil {
				continue
			}
			s.cepToRedis(ctx, cep, p)
			return Resolution{
				Query:       q,
				DisplayName: addr.DisplayName(),
				Source:      SourceCEP,
				Point:       p,
				Found:       true,
			}, true
		}
	}
	return Resolution{}, false
}

func (s *Service) cepFromRedis(ctx context.Context, cep string) (coords.GeoPoint, bool) {
	if pkg.Rdb == nil {
		return coords.GeoPoint{}, false
	}
	cacheKey := fmt.Sprintf("cep_coords:%s", cep)
	cached, err := pkg.Rdb.Get(ctx, cacheKey).Result()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			log.Printf("Erro ao recuperar cache do Redis (cep_coords): %v", err)
		}
		return coords.GeoPoint{}, false
	}
	var p coords.GeoPoint
	if json.Unmarshal([]byte(cached), &p) != nil || !p.Valid() {
		return coords.GeoPoint{}, false
	}
	return p, true
}

func (s *Service) cepToRedis(ctx context.Context, cep string, p coords.GeoPoint) {
	if pkg.Rdb == nil {
		return
	}
	cacheKey := fmt.Sprintf("cep_coords:%s", cep)
	if data, err := json.Marshal(p); err == nil {
		pkg.Rdb.Set(ctx, cacheKey, data, 30*24*time.Hour)
	}
}

// normalizeQuery baixa a caixa e remove acentos para a chave de cache.
func normalizeQuery(q string) string {
	decomposed := norm.NFD.String(strings.ToLower(strings.TrimSpace(q)))
	var b strings.Builder
	for _, r := range decomposed {
		if unicode.Is(unicode.Mn, r) {
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}
