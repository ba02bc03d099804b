package cmd

import (
	"context"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"viabilidade/infra"
	_midlleware "viabilidade/infra/middleware"
)

func StartAPI(ctx context.Context, container *infra.ContainerDI) {
	e := echo.New()

	go func() {
		for {
			select {
			case <-ctx.Done():
				if err := e.Shutdown(ctx); err != nil {
					panic(err)
				}
				return
			default:
				time.Sleep(1 * time.Second)
			}
		}
	}()

	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: []string{"*"},
		AllowHeaders: []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept, echo.HeaderAuthorization},
		AllowMethods: middleware.DefaultCORSConfig.AllowMethods,
	}))

	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))
	e.GET("/ws", container.WsHandler.HandleWs)

	// A mesma API atende "/verificador/api" e "/:slug/verificador/api",
	// onde o slug identifica o provedor.
	registerAPI(e.Group("/verificador/api"), container)
	registerAPI(e.Group("/:slug/verificador/api", _midlleware.TenantSlug), container)

	e.Logger.Fatal(e.Start(container.Config.ServerPort))
}

func registerAPI(g *echo.Group, container *infra.ContainerDI) {
	g.GET("/resolver", container.HandlerGeocode.ResolveQueryHandler)

	g.POST("/verificacoes", container.HandlerViability.LocateHandler)
	g.GET("/verificacoes/atual", container.HandlerViability.CurrentHandler)
	g.POST("/verificacoes/:id/confirmar", container.HandlerViability.ConfirmHandler)
	g.POST("/verificacoes/:id/cancelar", container.HandlerViability.CancelHandler)
	g.POST("/verificacoes/:id/fechar", container.HandlerViability.DismissHandler)

	g.GET("/arquivos", container.HandlerDataset.ListFilesHandler)
	g.POST("/arquivos/:nome/carregar", container.HandlerDataset.LoadDatasetHandler)
	g.DELETE("/arquivos/:nome", container.HandlerDataset.UnloadDatasetHandler)

	g.GET("/historico", container.HandlerHist.ListSearchesHandler)
	g.POST("/historico", container.HandlerHist.AddSearchHandler)
	g.DELETE("/historico", container.HandlerHist.ClearSearchesHandler)

	g.GET("/tema", container.HandlerHist.GetThemeHandler)
	g.PUT("/tema", container.HandlerHist.SetThemeHandler)
}
