package dataset

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

type Handler struct {
	InterfaceService InterfaceService
}

func NewDatasetHandler(InterfaceService InterfaceService) *Handler {
	return &Handler{InterfaceService}
}

// ListFilesHandler godoc
// @Summary Listar Arquivos
// @Description Lista os arquivos de rede disponíveis para exibição no mapa.
// @Tags Arquivos
// @Produce json
// @Success 200 {object} []Arquivo "Arquivos disponíveis"
// @Failure 500 {string} string "Erro Interno do Servidor"
// @Router /arquivos [get]
func (h *Handler) ListFilesHandler(c echo.Context) error {
	arquivos, err := h.InterfaceService.ListFilesService(c.Request().Context())
	if err != nil {
		return c.JSON(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, arquivos)
}

// LoadDatasetHandler godoc
// @Summary Carregar Arquivo no Mapa
// @Description Carrega os pontos e linhas de um arquivo como um grupo de camadas. Elementos com coordenadas inválidas são ignorados e contados.
// @Tags Arquivos
// @Produce json
// @Param nome path string true "Nome do arquivo"
// @Success 200 {object} LoadReport "Resumo do carregamento"
// @Failure 500 {string} string "Erro Interno do Servidor"
// @Router /arquivos/{nome}/carregar [post]
func (h *Handler) LoadDatasetHandler(c echo.Context) error {
	report, err := h.InterfaceService.LoadDatasetService(c.Request().Context(), c.Param("nome"))
	if err != nil {
		return c.JSON(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, report)
}

// UnloadDatasetHandler godoc
// @Summary Remover Arquivo do Mapa
// @Description Remove o grupo de camadas de um arquivo carregado.
// @Tags Arquivos
// @Produce json
// @Param nome path string true "Nome do arquivo"
// @Success 204 "Removido"
// @Router /arquivos/{nome} [delete]
func (h *Handler) UnloadDatasetHandler(c echo.Context) error {
	h.InterfaceService.UnloadDatasetService(c.Param("nome"))
	return c.NoContent(http.StatusNoContent)
}
