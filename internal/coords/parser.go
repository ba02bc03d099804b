package coords

import (
	"math"
	"regexp"
	"strconv"
	"strings"
)

var (
	dmsRegex     = regexp.MustCompile(`(-?\d+(?:\.\d+)?)\s*[°º]?\s*(\d{1,2})?\s*['′’]?\s*(\d+(?:\.\d+)?)?\s*["″”]?\s*([NnSsEeWwOo])`)
	decimalRegex = regexp.MustCompile(`[-+]?\d*\.?\d+`)
	cepRegex     = regexp.MustCompile(`^\d{8}$`)
	naoDigito    = regexp.MustCompile(`\D`)
)

type dmsToken struct {
	value float64
	hemi  byte
}

// ParseCoordinates extrai um par lat/lon de um texto livre. Aceita DMS com
// letras de hemisfério (ex.: 22°54'59.5"S 42°48'35.2"W, 'O' de Oeste vale 'W')
// e, como fallback, um par decimal "lat, lon" ou "lat lon".
func ParseCoordinates(text string) (GeoPoint, bool) {
	q := strings.TrimSpace(text)
	if q == "" {
		return GeoPoint{}, false
	}

	if p, ok, sawDMS := parseDMS(q); sawDMS {
		return p, ok
	}
	return parseDecimalPair(q)
}

// parseDMS devolve sawDMS=true quando encontra ao menos um token com
// hemisfério marcado; nesse caso o texto é tratado como DMS e não cai
// no parser decimal.
func parseDMS(q string) (GeoPoint, bool, bool) {
	var tokens []dmsToken
	for _, m := range dmsRegex.FindAllStringSubmatch(q, -1) {
		deg, err := strconv.ParseFloat(m[1], 64)
		if err != nil {
			continue
		}
		var min, sec float64
		if m[2] != "" {
			min, _ = strconv.ParseFloat(m[2], 64)
		}
		if m[3] != "" {
			sec, _ = strconv.ParseFloat(m[3], 64)
		}
		hemi := strings.ToUpper(m[4])[0]
		if hemi == 'O' {
			hemi = 'W'
		}
		dec := math.Abs(deg) + min/60 + sec/3600
		if hemi == 'S' || hemi == 'W' {
			dec = -dec
		}
		tokens = append(tokens, dmsToken{value: dec, hemi: hemi})
	}
	if len(tokens) < 2 {
		return GeoPoint{}, false, len(tokens) > 0
	}

	// O primeiro token N/S é a latitude e o primeiro E/W a longitude;
	// ordem posicional só quando o tipo não aparece marcado.
	lat, latOk := findHemi(tokens, 'N', 'S')
	lon, lonOk := findHemi(tokens, 'E', 'W')
	if !latOk {
		lat = tokens[0].value
	}
	if !lonOk {
		lon = tokens[1].value
	}

	p := GeoPoint{Lat: lat, Lon: lon}
	if !isFinite(lat) || !isFinite(lon) || !p.Valid() {
		return GeoPoint{}, false, true
	}
	return p, true, true
}

func findHemi(tokens []dmsToken, a, b byte) (float64, bool) {
	for _, t := range tokens {
		if t.hemi == a || t.hemi == b {
			return t.value, true
		}
	}
	return 0, false
}

func parseDecimalPair(q string) (GeoPoint, bool) {
	normalized := strings.NewReplacer(",", " ", ";", " ").Replace(q)
	matches := decimalRegex.FindAllString(normalized, -1)
	if len(matches) < 2 {
		return GeoPoint{}, false
	}
	lat, err1 := strconv.ParseFloat(matches[0], 64)
	lon, err2 := strconv.ParseFloat(matches[1], 64)
	if err1 != nil || err2 != nil || !isFinite(lat) || !isFinite(lon) {
		return GeoPoint{}, false
	}
	p := GeoPoint{Lat: lat, Lon: lon}
	if !p.Valid() {
		return GeoPoint{}, false
	}
	return p, true
}

func isFinite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}

// ExtractCEP remove tudo que não for dígito e devolve o CEP quando sobram
// exatamente 8 dígitos; caso contrário devolve vazio.
func ExtractCEP(text string) string {
	digits := naoDigito.ReplaceAllString(text, "")
	if cepRegex.MatchString(digits) {
		return digits
	}
	return ""
}

func IsValidCEP(text string) bool {
	return ExtractCEP(text) != ""
}
