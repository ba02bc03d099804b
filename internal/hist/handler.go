package hist

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"viabilidade/validation"
)

type Handler struct {
	InterfaceService InterfaceService
}

func NewHistHandler(InterfaceService InterfaceService) *Handler {
	return &Handler{InterfaceService}
}

// AddSearchHandler godoc
// @Summary Registrar Busca no Histórico
// @Description Grava a consulta no topo do histórico, sem duplicatas, limitado às 20 mais recentes.
// @Tags Histórico
// @Accept json
// @Produce json
// @Param request body AddSearchRequest true "Consulta"
// @Success 200 {object} []SearchEntry "Histórico atualizado"
// @Failure 400 {string} string "Requisição Inválida"
// @Router /historico [post]
func (h *Handler) AddSearchHandler(c echo.Context) error {
	var req AddSearchRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, "corpo da requisição inválido")
	}
	if err := validation.Validate(req); err != nil {
		return c.JSON(http.StatusBadRequest, err.Error())
	}

	entries, err := h.InterfaceService.AddSearchService(c.Request().Context(), req.Consulta)
	if err != nil {
		return c.JSON(http.StatusBadRequest, err.Error())
	}
	return c.JSON(http.StatusOK, entries)
}

// ListSearchesHandler godoc
// @Summary Listar Histórico de Buscas
// @Tags Histórico
// @Produce json
// @Success 200 {object} []SearchEntry "Buscas recentes"
// @Failure 500 {string} string "Erro Interno do Servidor"
// @Router /historico [get]
func (h *Handler) ListSearchesHandler(c echo.Context) error {
	entries, err := h.InterfaceService.ListSearchesService(c.Request().Context())
	if err != nil {
		return c.JSON(http.StatusInternalServerError, err.Error())
	}
	if entries == nil {
		entries = []SearchEntry{}
	}
	return c.JSON(http.StatusOK, entries)
}

// ClearSearchesHandler godoc
// @Summary Limpar Histórico de Buscas
// @Tags Histórico
// @Success 204 "Histórico limpo"
// @Failure 500 {string} string "Erro Interno do Servidor"
// @Router /historico [delete]
func (h *Handler) ClearSearchesHandler(c echo.Context) error {
	if err := h.InterfaceService.ClearSearchesService(c.Request().Context()); err != nil {
		return c.JSON(http.StatusInternalServerError, err.Error())
	}
	return c.NoContent(http.StatusNoContent)
}

// GetThemeHandler godoc
// @Summary Tema da Interface
// @Tags Preferências
// @Produce json
// @Success 200 {object} ThemeResponse "Tema atual"
// @Router /tema [get]
func (h *Handler) GetThemeHandler(c echo.Context) error {
	tema, err := h.InterfaceService.GetThemeService(c.Request().Context())
	if err != nil {
		return c.JSON(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, tema)
}

// SetThemeHandler godoc
// @Summary Definir Tema da Interface
// @Tags Preferências
// @Accept json
// @Produce json
// @Param request body ThemeRequest true "Tema light ou dark"
// @Success 200 {object} ThemeResponse "Tema gravado"
// @Failure 400 {string} string "Requisição Inválida"
// @Router /tema [put]
func (h *Handler) SetThemeHandler(c echo.Context) error {
	var req ThemeRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, "corpo da requisição inválido")
	}
	if err := h.InterfaceService.SetThemeService(c.Request().Context(), req.Tema); err != nil {
		return c.JSON(http.StatusBadRequest, err.Error())
	}
	return c.JSON(http.StatusOK, ThemeResponse{Tema: req.Tema})
}
