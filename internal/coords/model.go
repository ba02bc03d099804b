package coords

// GeoPoint é um par latitude/longitude em graus decimais.
// Latitude em [-90, 90], longitude em [-180, 180].
type GeoPoint struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

func (p GeoPoint) Valid() bool {
	return p.Lat >= -90 && p.Lat <= 90 && p.Lon >= -180 && p.Lon <= 180
}
