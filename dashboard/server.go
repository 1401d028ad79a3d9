package dashboard

import (
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/mux"

	"github.com/SangBejoo/kingston-parking/assistant"
	"github.com/SangBejoo/kingston-parking/models"
	"github.com/SangBejoo/kingston-parking/services"
)

// Server is the sensor relay and the read API the map and chat panel use
type Server struct {
	catalog *models.Catalog
	engine  *assistant.Engine
	hub     *Hub
	zone    *time.Location
	now     func() time.Time

	mu       sync.RWMutex
	latest   map[string]int
	latestAt time.Time
}

func NewServer(catalog *models.Catalog, engine *assistant.Engine, hub *Hub, zone *time.Location) *Server {
	if zone == nil {
		zone = time.Local
	}
	return &Server{
		catalog: catalog,
		engine:  engine,
		hub:     hub,
		zone:    zone,
		now:     time.Now,
		latest:  make(map[string]int),
	}
}

// Now is the current instant in the city's time zone
func (s *Server) Now() time.Time {
	return s.now().In(s.zone)
}

// Router wires every endpoint onto a gorilla/mux router
func (s *Server) Router() *mux.Router {
	router := mux.NewRouter()

	router.HandleFunc("/healthz", s.healthz).Methods("GET")

	api := router.PathPrefix("/api").Subrouter()
	api.HandleFunc("/sensors", s.postSensors).Methods("POST")
	api.HandleFunc("/sensors/latest", s.getLatestSensors).Methods("GET")
	api.HandleFunc("/locations", s.getLocations).Methods("GET")
	api.HandleFunc("/locations.geojson", s.getLocationsGeoJSON).Methods("GET")
	api.HandleFunc("/locations/{id}", s.getLocation).Methods("GET")
	api.HandleFunc("/ask", s.postAsk).Methods("POST")

	router.HandleFunc("/ws", s.serveWS).Methods("GET")

	return router
}

// HTTPServer wraps the router for the given listen address
func (s *Server) HTTPServer(addr string) *http.Server {
	return &http.Server{
		Addr:              addr,
		Handler:           s.Router(),
		ReadHeaderTimeout: 5 * time.Second,
	}
}

// ApplyObservations merges sensor readings into the catalog, remembers the
// raw values and pushes fresh views when anything changed. Unknown ids are
// returned in ignored.
func (s *Server) ApplyObservations(observations map[string]int) (applied, ignored []string) {
	s.mu.Lock()
	for id, n := range observations {
		s.latest[id] = n
	}
	s.latestAt = s.Now()
	s.mu.Unlock()

	applied, ignored = s.catalog.ApplySensorBatch(observations)
	if len(applied) > 0 {
		s.Publish()
	}
	return applied, ignored
}

// Publish broadcasts the current views to every WebSocket client
func (s *Server) Publish() {
	if s.hub == nil {
		return
	}
	s.hub.Broadcast(s.views())
}

func (s *Server) views() []services.LocationView {
	return services.EvaluateAll(s.catalog.Snapshot(), s.Now())
}
