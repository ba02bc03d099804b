package geocode

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"viabilidade/internal/coords"
)

type Handler struct {
	InterfaceService InterfaceService
	DefaultCenter    coords.GeoPoint
}

func NewGeocodeHandler(InterfaceService InterfaceService, defaultCenter coords.GeoPoint) *Handler {
	return &Handler{InterfaceService: InterfaceService, DefaultCenter: defaultCenter}
}

// ResolveQueryHandler godoc
// @Summary Resolver Consulta de Busca
// @Description Resolve uma consulta do campo de busca. Pode ser: 1. Coordenadas (decimal ou DMS), 2. CEP ou 3. Endereço livre.
// @Tags Busca
// @Accept json
// @Produce json
// @Param q query string true "Consulta"
// @Param centro_lat query number false "Latitude do centro do mapa"
// @Param centro_lon query number false "Longitude do centro do mapa"
// @Success 200 {object} Resolution "Resultado da Consulta"
// @Failure 400 {string} string "Requisição Inválida"
// @Failure 500 {string} string "Erro Interno do Servidor"
// @Router /resolver [get]
func (h *Handler) ResolveQueryHandler(c echo.Context) error {
	q := c.QueryParam("q")
	if q == "" {
		return c.JSON(http.StatusBadRequest, "O parâmetro de consulta 'q' é obrigatório")
	}

	center := h.DefaultCenter
	lat, errLat := strconv.ParseFloat(c.QueryParam("centro_lat"), 64)
	lon, errLon := strconv.ParseFloat(c.QueryParam("centro_lon"), 64)
	if errLat == nil && errLon == nil {
		p := coords.GeoPoint{Lat: lat, Lon: lon}
		if p.Valid() {
			center = p
		}
	}

	result, err := h.InterfaceService.ResolveQueryService(c.Request().Context(), q, center)
	if err != nil {
		return c.JSON(http.StatusBadRequest, err.Error())
	}
	return c.JSON(http.StatusOK, result)
}
