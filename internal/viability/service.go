package viability

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"

	"github.com/google/uuid"

	"viabilidade/internal/coords"
	"viabilidade/pkg/memcache"
	"viabilidade/pkg/metrics"
)

type Notifier interface {
	Notify(tipo, mensagem string)
}

type Publisher interface {
	PublicarVerificacao(ctx context.Context, status string, metros float64)
	PublicarRotaDegradada(ctx context.Context, p coords.GeoPoint)
}

type InterfaceService interface {
	LocateService(ctx context.Context, data LocateRequest) (Snapshot, error)
	ConfirmService(ctx context.Context, id string) (Snapshot, error)
	CancelService(id string) (Snapshot, error)
	DismissService(id string) (Snapshot, error)
	CurrentService() Snapshot
}

type session struct {
	ID       string
	Point    coords.GeoPoint
	Address  string
	State    string
	Result   *Result
	Mensagem string
	cancel   context.CancelFunc
}

func (s *session) snapshot() Snapshot {
	return Snapshot{
		ID:       s.ID,
		State:    s.State,
		Point:    s.Point,
		Address:  s.Address,
		Result:   s.Result,
		Mensagem: s.Mensagem,
	}
}

// Service mantém no máximo uma sessão de verificação. Localizar um novo
// ponto cancela a sessão anterior, inclusive uma verificação em andamento;
// só o resultado da sessão mais recente chega ao mapa.
type Service struct {
	mu       sync.Mutex
	active   *session
	Client   InterfaceClient
	Renderer MapRenderer
	Cache    *memcache.Cache
	Notifier Notifier
	Events   Publisher
}

func NewViabilityService(client InterfaceClient, renderer MapRenderer, cache *memcache.Cache, notifier Notifier, events Publisher) *Service {
	return &Service{
		Client:   client,
		Renderer: renderer,
		Cache:    cache,
		Notifier: notifier,
		Events:   events,
	}
}

func (s *Service) LocateService(ctx context.Context, data LocateRequest) (Snapshot, error) {
	p := coords.GeoPoint{Lat: data.Lat, Lon: data.Lon}
	if !p.Valid() {
		return Snapshot{}, errors.New("coordenadas fora dos limites")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.active != nil && s.active.cancel != nil {
		s.active.cancel()
	}

	sess := &session{
		ID:      uuid.New().String(),
		Point:   p,
		Address: data.Endereco,
		State:   StateLocated,
	}
	s.active = sess

	label := ResumirEndereco(data.Endereco)
	if label == "" {
		label = fmt.Sprintf("%.6f, %.6f", p.Lat, p.Lon)
	}
	s.Renderer.RemoveVerificationLayers()
	s.Renderer.SetMarker(p, label)

	return sess.snapshot(), nil
}

func (s *Service) ConfirmService(ctx context.Context, id string) (Snapshot, error) {
	s.mu.Lock()
	sess := s.active
	if sess == nil || sess.ID != id {
		s.mu.Unlock()
		return Snapshot{}, errors.New("sessão de verificação não encontrada")
	}
	if sess.State != StateLocated && sess.State != StateFailed {
		s.mu.Unlock()
		return Snapshot{}, errors.New("sessão não está aguardando confirmação")
	}

	checkCtx, cancel := context.WithTimeout(ctx, VerificationTimeout)
	defer cancel()
	sess.State = StateChecking
	sess.Mensagem = ""
	sess.cancel = cancel
	point := sess.Point
	s.mu.Unlock()

	result, err := s.verificar(checkCtx, point)

	s.mu.Lock()
	defer s.mu.Unlock()

	// Outra sessão assumiu enquanto a chamada corria; o resultado antigo
	// é descartado sem tocar no mapa.
	if s.active != sess {
		return sess.snapshot(), nil
	}
	sess.cancel = nil

	if sess.State != StateChecking {
		// Cancelamento explícito devolveu a sessão para located.
		return sess.snapshot(), nil
	}

	if err != nil {
		sess.State = StateFailed
		sess.Mensagem = mensagemDeErro(checkCtx, err)
		metrics.Errors.WithLabelValues("verificacao").Inc()
		s.notify("erro", sess.Mensagem)
		return sess.snapshot(), nil
	}

	if len(result.Rota) < 2 {
		log.Printf("rota indisponível para %.6f,%.6f, desenhando linha reta", point.Lat, point.Lon)
		result.RotaReta = true
		metrics.RotasDegradadas.Inc()
		if s.Events != nil {
			s.Events.PublicarRotaDegradada(ctx, point)
		}
	}

	sess.Result = &result
	if StatusViavel(result.Status) {
		sess.State = StateViable
	} else {
		sess.State = StateNotViable
	}

	s.Renderer.DrawVerification(point, result)
	metrics.VerificacoesPorStatus.WithLabelValues(sess.State).Inc()
	if s.Events != nil {
		s.Events.PublicarVerificacao(ctx, sess.State, result.Metros)
	}
	s.notify("sucesso", fmt.Sprintf("Verificação concluída: %s", result.Status))

	return sess.snapshot(), nil
}

// verificar consulta o cache de viabilidade antes de bater no verificador.
func (s *Service) verificar(ctx context.Context, p coords.GeoPoint) (Result, error) {
	cacheKey := fmt.Sprintf("%.6f,%.6f", p.Lat, p.Lon)
	if cached, ok := s.Cache.Get(memcache.CategoryViability, cacheKey); ok {
		if result, ok := cached.(Result); ok {
			metrics.CacheHits.WithLabelValues(string(memcache.CategoryViability)).Inc()
			return result, nil
		}
	}
	metrics.CacheMisses.WithLabelValues(string(memcache.CategoryViability)).Inc()

	metrics.APICalls.WithLabelValues("verificador").Inc()
	result, err := s.Client.Verificar(ctx, p)
	if err != nil {
		return Result{}, err
	}

	// A geometria da rota vive mais que o veredito. Quando o verificador
	// devolve o resultado sem rota, a versão guardada evita a linha reta.
	if len(result.Rota) >= 2 {
		s.Cache.Set(memcache.CategoryRoutes, cacheKey, result.Rota)
	} else if cached, ok := s.Cache.Get(memcache.CategoryRoutes, cacheKey); ok {
		if rota, ok := cached.([]coords.GeoPoint); ok {
			result.Rota = rota
		}
	}

	s.Cache.Set(memcache.CategoryViability, cacheKey, result)
	return result, nil
}

// CancelService tem dois papéis: durante uma verificação em andamento ela
// aborta a chamada e devolve a sessão para located; antes da confirmação
// ela descarta a sessão e o marcador.
func (s *Service) CancelService(id string) (Snapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess := s.active
	if sess == nil || sess.ID != id {
		return Snapshot{}, errors.New("sessão de verificação não encontrada")
	}

	switch sess.State {
	case StateChecking:
		if sess.cancel != nil {
			sess.cancel()
			sess.cancel = nil
		}
		sess.State = StateLocated
		sess.Mensagem = MsgCancelada
		return sess.snapshot(), nil
	case StateLocated:
		s.active = nil
		s.Renderer.RemoveMarker()
		return Snapshot{ID: sess.ID, State: StateIdle, Mensagem: MsgCancelada}, nil
	default:
		return sess.snapshot(), nil
	}
}

// DismissService encerra a sessão, limpa todas as camadas e devolve o mapa
// para a visão inicial.
func (s *Service) DismissService(id string) (Snapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess := s.active
	if sess == nil || sess.ID != id {
		return Snapshot{}, errors.New("sessão de verificação não encontrada")
	}
	if sess.cancel != nil {
		sess.cancel()
		sess.cancel = nil
	}
	s.active = nil

	s.Renderer.RemoveAllLayers()
	s.Renderer.ResetView()

	return Snapshot{ID: sess.ID, State: StateIdle}, nil
}

func (s *Service) CurrentService() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.active == nil {
		return Snapshot{State: StateIdle}
	}
	return s.active.snapshot()
}

func (s *Service) notify(tipo, mensagem string) {
	if s.Notifier != nil {
		s.Notifier.Notify(tipo, mensagem)
	}
}

// mensagemDeErro separa estouro de prazo de falha de conexão e preserva a
// mensagem semântica do verificador quando ela existe.
func mensagemDeErro(ctx context.Context, err error) string {
	var semantico *ErrSemantico
	if errors.As(err, &semantico) {
		return semantico.Mensagem
	}
	if errors.Is(ctx.Err(), context.DeadlineExceeded) || errors.Is(err, context.DeadlineExceeded) {
		return MsgTimeout
	}
	return MsgConexao
}
