package hist

import (
	"context"
	"errors"
	"strings"
	"unicode"

	"viabilidade/internal/coords"
	"viabilidade/validation"
)

// HistoryLimit é quantas buscas recentes ficam guardadas.
const HistoryLimit = 20

type InterfaceService interface {
	AddSearchService(ctx context.Context, consulta string) ([]SearchEntry, error)
	ListSearchesService(ctx context.Context) ([]SearchEntry, error)
	ClearSearchesService(ctx context.Context) error
	GetThemeService(ctx context.Context) (ThemeResponse, error)
	SetThemeService(ctx context.Context, tema string) error
}

type Service struct {
	InterfaceService InterfaceRepository
}

func NewHistService(InterfaceService InterfaceRepository) *Service {
	return &Service{InterfaceService}
}

// AddSearchService grava a consulta no topo do histórico, sem duplicatas e
// limitado às HistoryLimit mais recentes.
func (s *Service) AddSearchService(ctx context.Context, consulta string) ([]SearchEntry, error) {
	consulta = strings.TrimSpace(consulta)
	if len([]rune(consulta)) < 2 {
		return nil, errors.New("consulta muito curta para o histórico")
	}

	if err := s.InterfaceService.DeleteSearchRepository(ctx, consulta); err != nil {
		return nil, err
	}
	if err := s.InterfaceService.InsertSearchRepository(ctx, consulta, DetectSearchType(consulta)); err != nil {
		return nil, err
	}
	if err := s.InterfaceService.TrimSearchesRepository(ctx, HistoryLimit); err != nil {
		return nil, err
	}
	return s.InterfaceService.ListSearchesRepository(ctx, HistoryLimit)
}

func (s *Service) ListSearchesService(ctx context.Context) ([]SearchEntry, error) {
	return s.InterfaceService.ListSearchesRepository(ctx, HistoryLimit)
}

func (s *Service) ClearSearchesService(ctx context.Context) error {
	return s.InterfaceService.ClearSearchesRepository(ctx)
}

func (s *Service) GetThemeService(ctx context.Context) (ThemeResponse, error) {
	tema, err := s.InterfaceService.GetThemeRepository(ctx)
	if err != nil {
		return ThemeResponse{}, err
	}
	if tema == "" {
		tema = "light"
	}
	return ThemeResponse{Tema: tema}, nil
}

func (s *Service) SetThemeService(ctx context.Context, tema string) error {
	if !validation.IsValidTheme(tema) {
		return errors.New("tema inválido, use light ou dark")
	}
	return s.InterfaceService.SetThemeRepository(ctx, tema)
}

// DetectSearchType classifica a consulta para agrupar o histórico.
func DetectSearchType(consulta string) string {
	if coords.ExtractCEP(consulta) != "" {
		return TipoCEP
	}
	if _, ok := coords.ParseCoordinates(consulta); ok {
		return TipoCoordenadas
	}

	soDigitos := true
	temDigito := false
	for _, r := range consulta {
		if unicode.IsDigit(r) {
			temDigito = true
		} else if !unicode.IsSpace(r) {
			soDigitos = false
		}
	}
	if soDigitos && temDigito {
		return TipoNumero
	}
	if temDigito {
		return TipoEndereco
	}
	return TipoCidade
}
