package middleware

import (
	"strings"

	"github.com/labstack/echo/v4"
)

// Segmentos de primeiro nível que nunca são slug de provedor.
var reservedSlugs = map[string]bool{
	"verificador": true,
	"rm":          true,
	"admin":       true,
}

// APIBasePath deriva a base da API a partir do primeiro segmento do
// caminho: "/acme/..." vira "/acme/verificador/api", segmentos reservados
// caem na base sem provedor.
func APIBasePath(path string) string {
	slug := firstSegment(path)
	if slug == "" || reservedSlugs[slug] {
		return "/verificador/api"
	}
	return "/" + slug + "/verificador/api"
}

func firstSegment(path string) string {
	for _, seg := range strings.Split(path, "/") {
		if seg != "" {
			return seg
		}
	}
	return ""
}

// TenantSlug guarda o slug do provedor no contexto para os handlers.
func TenantSlug(handlerFunc echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		slug := c.Param("slug")
		if reservedSlugs[slug] {
			slug = ""
		}
		c.Set("tenant_slug", slug)
		return handlerFunc(c)
	}
}
