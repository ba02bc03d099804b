package viability

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"
)

var ctoNumberRegex = regexp.MustCompile(`\d+(?:[.\-]\d+)*`)

// StatusViavel reconhece o veredito positivo do verificador, que devolve
// "Viável" com acento e caixa alta. A comparação ignora ambos para não
// depender da grafia exata.
func StatusViavel(status string) bool {
	decomposed := norm.NFD.String(strings.ToLower(strings.TrimSpace(status)))
	var b strings.Builder
	for _, r := range decomposed {
		if unicode.Is(unicode.Mn, r) {
			continue
		}
		b.WriteRune(r)
	}
	return b.String() == "viavel"
}

// FormatCtoNumber extrai o identificador numérico do nome da CTO
// (ex.: "CTO 12.3-4 Centro" vira "12.3-4").
func FormatCtoNumber(nome string) string {
	return ctoNumberRegex.FindString(nome)
}

// ResumirEndereco corta o endereço completo do geocodificador nas duas
// primeiras partes, que é o que cabe no balão do marcador.
func ResumirEndereco(endereco string) string {
	parts := strings.Split(endereco, ",")
	if len(parts) <= 2 {
		return strings.TrimSpace(endereco)
	}
	return strings.TrimSpace(parts[0]) + ", " + strings.TrimSpace(parts[1])
}
