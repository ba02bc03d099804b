package viability

import (
	"sync"

	"viabilidade/internal/coords"
)

type LayerKind string

const (
	LayerMarker        LayerKind = "marker"
	LayerViabilityLine LayerKind = "viability_line"
	LayerRouteBorder   LayerKind = "route_border"
	LayerRouteLine     LayerKind = "route_line"
	LayerCtoMarker     LayerKind = "cto_marker"
)

type Layer struct {
	Kind   LayerKind         `json:"tipo"`
	Label  string            `json:"rotulo,omitempty"`
	Color  string            `json:"cor,omitempty"`
	Points []coords.GeoPoint `json:"pontos"`
}

// MapRenderer recebe as mutações de mapa que a interface aplica. A
// implementação padrão só guarda estado; o front lê esse estado e espelha
// no Leaflet.
type MapRenderer interface {
	SetMarker(p coords.GeoPoint, label string)
	RemoveMarker()
	DrawVerification(origin coords.GeoPoint, res Result)
	RemoveVerificationLayers()
	RemoveAllLayers()
	ResetView()
}

// GroupRenderer é o que o carregador de arquivos precisa: anexar um grupo
// nomeado de camadas de uma vez só, depois que o lote inteiro foi montado.
type GroupRenderer interface {
	AttachGroup(name string, markers []coords.GeoPoint, lines [][]coords.GeoPoint)
	RemoveGroup(name string)
}

// LayerState implementa MapRenderer e GroupRenderer guardando as camadas
// em memória.
type LayerState struct {
	mu     sync.RWMutex
	layers map[LayerKind]*Layer
	groups map[string][]Layer
	bounds []coords.GeoPoint

	DefaultCenter coords.GeoPoint
	DefaultZoom   int
	center        coords.GeoPoint
	zoom          int
}

func NewLayerState(center coords.GeoPoint, zoom int) *LayerState {
	return &LayerState{
		layers:        make(map[LayerKind]*Layer),
		groups:        make(map[string][]Layer),
		DefaultCenter: center,
		DefaultZoom:   zoom,
		center:        center,
		zoom:          zoom,
	}
}

func (m *LayerState) SetMarker(p coords.GeoPoint, label string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.layers[LayerMarker] = &Layer{Kind: LayerMarker, Label: label, Points: []coords.GeoPoint{p}}
	m.center = p
}

func (m *LayerState) RemoveMarker() {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.layers, LayerMarker)
}

// DrawVerification remove as camadas da verificação anterior e os grupos
// de arquivos carregados antes de desenhar as novas; o resultado aparece
// num mapa limpo.
func (m *LayerState) DrawVerification(origin coords.GeoPoint, res Result) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.removeVerificationLocked()
	m.groups = make(map[string][]Layer)

	ctoPoint := coords.GeoPoint{Lat: res.Cto.Lat, Lon: res.Cto.Lon}
	m.layers[LayerViabilityLine] = &Layer{
		Kind:   LayerViabilityLine,
		Color:  res.Cor,
		Points: []coords.GeoPoint{origin, ctoPoint},
	}

	rota := res.Rota
	if len(rota) < 2 {
		rota = []coords.GeoPoint{origin, ctoPoint}
	}
	m.layers[LayerRouteBorder] = &Layer{Kind: LayerRouteBorder, Points: rota}
	m.layers[LayerRouteLine] = &Layer{Kind: LayerRouteLine, Color: res.Cor, Points: rota}

	m.layers[LayerCtoMarker] = &Layer{
		Kind:   LayerCtoMarker,
		Label:  res.Cto.Nome,
		Points: []coords.GeoPoint{ctoPoint},
	}

	m.bounds = append([]coords.GeoPoint{origin, ctoPoint}, rota...)
}

func (m *LayerState) RemoveVerificationLayers() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.removeVerificationLocked()
}

func (m *LayerState) removeVerificationLocked() {
	delete(m.layers, LayerViabilityLine)
	delete(m.layers, LayerRouteBorder)
	delete(m.layers, LayerRouteLine)
	delete(m.layers, LayerCtoMarker)
	m.bounds = nil
}

func (m *LayerState) RemoveAllLayers() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.layers = make(map[LayerKind]*Layer)
	m.groups = make(map[string][]Layer)
	m.bounds = nil
}

func (m *LayerState) ResetView() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.center = m.DefaultCenter
	m.zoom = m.DefaultZoom
}

func (m *LayerState) AttachGroup(name string, markers []coords.GeoPoint, lines [][]coords.GeoPoint) {
	group := make([]Layer, 0, len(markers)+len(lines))
	for _, p := range markers {
		group = append(group, Layer{Kind: LayerMarker, Points: []coords.GeoPoint{p}})
	}
	for _, line := range lines {
		group = append(group, Layer{Kind: LayerRouteLine, Points: line})
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.groups[name] = group
}

func (m *LayerState) RemoveGroup(name string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.groups, name)
}

func (m *LayerState) Layer(kind LayerKind) (Layer, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	l, ok := m.layers[kind]
	if !ok {
		return Layer{}, false
	}
	return *l, true
}

func (m *LayerState) Group(name string) ([]Layer, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	g, ok := m.groups[name]
	return g, ok
}

func (m *LayerState) View() (coords.GeoPoint, int) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.center, m.zoom
}

func (m *LayerState) Bounds() []coords.GeoPoint {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return append([]coords.GeoPoint(nil), m.bounds...)
}
