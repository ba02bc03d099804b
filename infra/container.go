package infra

import (
	"context"
	"database/sql"
	"log"
	"strconv"

	"viabilidade/infra/database"
	"viabilidade/infra/database/db_postgresql"
	"viabilidade/internal/coords"
	"viabilidade/internal/dataset"
	"viabilidade/internal/geocode"
	"viabilidade/internal/hist"
	"viabilidade/internal/telemetry"
	"viabilidade/internal/viability"
	"viabilidade/internal/ws"
	"viabilidade/pkg"
	"viabilidade/pkg/memcache"
)

type ContainerDI struct {
	Config Config
	ConnDB *sql.DB

	Cache     *memcache.Cache
	Renderer  *viability.LayerState
	Hub       *ws.Hub
	Publisher *telemetry.Publisher

	HandlerGeocode *geocode.Handler
	ServiceGeocode *geocode.Service

	HandlerViability *viability.Handler
	ServiceViability *viability.Service
	ClientViability  *viability.Client

	HandlerDataset *dataset.Handler
	ServiceDataset *dataset.Service
	ClientDataset  *dataset.Client

	HandlerHist    *hist.Handler
	ServiceHist    *hist.Service
	RepositoryHist *hist.Repository

	WsHandler *ws.Handler
}

func NewContainerDI(config Config) *ContainerDI {
	container := &ContainerDI{Config: config}
	container.db()
	container.buildPkg()
	container.buildRepository()
	container.buildService()
	container.buildHandler()
	return container
}

func (c *ContainerDI) db() {
	dbConfig := database.Config{
		Host:        c.Config.DBHost,
		Port:        c.Config.DBPort,
		User:        c.Config.DBUser,
		Password:    c.Config.DBPassword,
		Database:    c.Config.DBDatabase,
		SSLMode:     c.Config.DBSSLMode,
		Driver:      c.Config.DBDriver,
		Environment: c.Config.Environment,
	}
	c.ConnDB = db_postgresql.NewConnection(&dbConfig)
}

func (c *ContainerDI) buildPkg() {
	pkg.InitRedis()

	c.Cache = memcache.NewCache()
	c.Cache.StartSweeper(context.Background())

	c.Renderer = viability.NewLayerState(c.defaultCenter(), c.defaultZoom())

	c.Hub = ws.NewHub()
	go c.Hub.Run()

	c.Publisher = telemetry.NewPublisher(c.Config.KafkaBroker, c.Config.KafkaTopic)
}

func (c *ContainerDI) buildRepository() {
	c.RepositoryHist = hist.NewHistRepository(c.ConnDB)
}

func (c *ContainerDI) buildService() {
	postais := []geocode.PostalProvider{
		geocode.NewViaCEP(c.Config.ViaCEPURL),
		geocode.NewBrasilAPI(c.Config.BrasilAPIURL, 2),
		geocode.NewBrasilAPI(c.Config.BrasilAPIURL, 1),
	}

	// Com chave configurada o Google vem antes do Nominatim.
	var geocoders []geocode.Geocoder
	if c.Config.GoogleMapsKey != "" {
		google, err := geocode.NewGoogleGeocoder(c.Config.GoogleMapsKey)
		if err != nil {
			log.Printf("erro ao criar geocodificador do Google: %v", err)
		} else {
			geocoders = append(geocoders, google)
		}
	}
	geocoders = append(geocoders, geocode.NewNominatim(c.Config.NominatimURL, c.Config.NominatimAgent))

	c.ServiceGeocode = geocode.NewGeocodeService(postais, geocoders, c.Cache)

	c.ClientViability = viability.NewViabilityClient(c.Config.ViabilidadeURL)
	c.ServiceViability = viability.NewViabilityService(c.ClientViability, c.Renderer, c.Cache, c.Hub, c.Publisher)

	c.ClientDataset = dataset.NewDatasetClient(c.Config.ArquivosURL)
	c.ServiceDataset = dataset.NewDatasetService(c.ClientDataset, c.Cache, c.Renderer)

	c.ServiceHist = hist.NewHistService(c.RepositoryHist)
}

func (c *ContainerDI) buildHandler() {
	c.HandlerGeocode = geocode.NewGeocodeHandler(c.ServiceGeocode, c.defaultCenter())
	c.HandlerViability = viability.NewViabilityHandler(c.ServiceViability)
	c.HandlerDataset = dataset.NewDatasetHandler(c.ServiceDataset)
	c.HandlerHist = hist.NewHistHandler(c.ServiceHist)
	c.WsHandler = ws.NewWsHandler(c.Hub)
}

func (c *ContainerDI) defaultCenter() coords.GeoPoint {
	lat, errLat := strconv.ParseFloat(c.Config.DefaultLat, 64)
	lon, errLon := strconv.ParseFloat(c.Config.DefaultLon, 64)
	if errLat != nil || errLon != nil {
		return coords.GeoPoint{Lat: -22.919, Lon: -42.818}
	}
	return coords.GeoPoint{Lat: lat, Lon: lon}
}

func (c *ContainerDI) defaultZoom() int {
	zoom, err := strconv.Atoi(c.Config.DefaultZoom)
	if err != nil {
		return 12
	}
	return zoom
}
