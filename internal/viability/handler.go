package viability

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"viabilidade/validation"
)

type Handler struct {
	InterfaceService InterfaceService
}

func NewViabilityHandler(InterfaceService InterfaceService) *Handler {
	return &Handler{InterfaceService}
}

// LocateHandler godoc
// @Summary Posicionar Ponto de Verificação
// @Description Posiciona o marcador de verificação no ponto informado e abre uma sessão aguardando confirmação. Cancela qualquer sessão anterior.
// @Tags Viabilidade
// @Accept json
// @Produce json
// @Param request body LocateRequest true "Ponto e endereço"
// @Success 200 {object} Snapshot "Sessão criada"
// @Failure 400 {string} string "Requisição Inválida"
// @Router /verificacoes [post]
func (h *Handler) LocateHandler(c echo.Context) error {
	var req LocateRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, "corpo da requisição inválido")
	}
	if err := validation.Validate(req); err != nil {
		return c.JSON(http.StatusBadRequest, err.Error())
	}

	snap, err := h.InterfaceService.LocateService(c.Request().Context(), req)
	if err != nil {
		return c.JSON(http.StatusBadRequest, err.Error())
	}
	return c.JSON(http.StatusCreated, snap)
}

// ConfirmHandler godoc
// @Summary Confirmar Verificação
// @Description Confirma a sessão e consulta o verificador de viabilidade. A chamada é cancelada após 60 segundos.
// @Tags Viabilidade
// @Accept json
// @Produce json
// @Param id path string true "ID da sessão"
// @Success 200 {object} Snapshot "Resultado da verificação"
// @Failure 404 {string} string "Sessão não encontrada"
// @Router /verificacoes/{id}/confirmar [post]
func (h *Handler) ConfirmHandler(c echo.Context) error {
	snap, err := h.InterfaceService.ConfirmService(c.Request().Context(), c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusNotFound, err.Error())
	}
	return c.JSON(http.StatusOK, snap)
}

// CancelHandler godoc
// @Summary Cancelar Verificação
// @Description Cancela uma verificação em andamento e devolve a sessão para o estado aguardando confirmação.
// @Tags Viabilidade
// @Produce json
// @Param id path string true "ID da sessão"
// @Success 200 {object} Snapshot "Sessão após o cancelamento"
// @Failure 404 {string} string "Sessão não encontrada"
// @Router /verificacoes/{id}/cancelar [post]
func (h *Handler) CancelHandler(c echo.Context) error {
	snap, err := h.InterfaceService.CancelService(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusNotFound, err.Error())
	}
	return c.JSON(http.StatusOK, snap)
}

// DismissHandler godoc
// @Summary Fechar Verificação
// @Description Encerra a sessão, remove todas as camadas e devolve o mapa para a visão inicial.
// @Tags Viabilidade
// @Produce json
// @Param id path string true "ID da sessão"
// @Success 200 {object} Snapshot "Sessão encerrada"
// @Failure 404 {string} string "Sessão não encontrada"
// @Router /verificacoes/{id}/fechar [post]
func (h *Handler) DismissHandler(c echo.Context) error {
	snap, err := h.InterfaceService.DismissService(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusNotFound, err.Error())
	}
	return c.JSON(http.StatusOK, snap)
}

// CurrentHandler godoc
// @Summary Sessão Atual
// @Description Devolve a sessão de verificação ativa, ou estado idle quando não há nenhuma.
// @Tags Viabilidade
// @Produce json
// @Success 200 {object} Snapshot "Sessão atual"
// @Router /verificacoes/atual [get]
func (h *Handler) CurrentHandler(c echo.Context) error {
	return c.JSON(http.StatusOK, h.InterfaceService.CurrentService())
}
