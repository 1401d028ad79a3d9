package dashboard

import (
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"

	"github.com/SangBejoo/kingston-parking/api"
	"github.com/SangBejoo/kingston-parking/assistant"
	"github.com/SangBejoo/kingston-parking/models"
	"github.com/SangBejoo/kingston-parking/services"
)

const maxBodyBytes = 1 << 20

type sensorResponse struct {
	Applied []string `json:"applied"`
	Ignored []string `json:"ignored"`
}

type latestResponse struct {
	Observations map[string]int `json:"observations"`
	UpdatedAt    *time.Time     `json:"updatedAt,omitempty"`
}

type locationDetail struct {
	services.LocationView
	Address       string                `json:"address"`
	MaxStayHours  float64               `json:"maxStayHours,omitempty"`
	Accessibility *models.Accessibility `json:"accessibility,omitempty"`
	Spots         []models.LatLng       `json:"spots"`
}

type askRequest struct {
	Question string   `json:"question"`
	Lat      *float64 `json:"lat"`
	Lng      *float64 `json:"lng"`
}

type askResponse struct {
	Answer string `json:"answer"`
}

func (s *Server) healthz(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"status":    "ok",
		"locations": s.catalog.Len(),
	})
}

// postSensors is the relay write side: one reading or a batch
func (s *Server) postSensors(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(io.LimitReader(r.Body, maxBodyBytes))
	if err != nil {
		writeError(w, http.StatusBadRequest, "could not read body")
		return
	}
	observations, err := api.DecodeObservations(body)
	if err != nil {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("invalid sensor payload: %v", err))
		return
	}

	applied, ignored := s.ApplyObservations(observations)
	if len(ignored) > 0 {
		log.Printf("sensor-relay: ignored unknown ids %v", ignored)
	}
	writeJSON(w, http.StatusOK, sensorResponse{Applied: nonNil(applied), Ignored: nonNil(ignored)})
}

func (s *Server) getLatestSensors(w http.ResponseWriter, r *http.Request) {
	s.mu.RLock()
	resp := latestResponse{Observations: make(map[string]int, len(s.latest))}
	for id, n := range s.latest {
		resp.Observations[id] = n
	}
	if !s.latestAt.IsZero() {
		at := s.latestAt
		resp.UpdatedAt = &at
	}
	s.mu.RUnlock()

	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) getLocations(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.views())
}

func (s *Server) getLocation(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	loc, ok := s.catalog.Get(id)
	if !ok {
		writeError(w, http.StatusNotFound, fmt.Sprintf("unknown location %q", id))
		return
	}

	now := s.Now()
	detail := locationDetail{
		LocationView:  services.Evaluate(&loc, now),
		Address:       loc.Address,
		MaxStayHours:  loc.MaxStayHours,
		Accessibility: loc.Accessibility,
		Spots:         []models.LatLng{},
	}
	for _, p := range services.VisibleSpots(&loc, now) {
		detail.Spots = append(detail.Spots, models.ToLatLng(p))
	}
	writeJSON(w, http.StatusOK, detail)
}

// getLocationsGeoJSON exports lots as points and streets as their paths
func (s *Server) getLocationsGeoJSON(w http.ResponseWriter, r *http.Request) {
	now := s.Now()
	fc := geojson.NewFeatureCollection()
	for _, loc := range s.catalog.Snapshot() {
		var geometry orb.Geometry = loc.Coordinates
		if loc.IsStreet() && len(loc.Path) >= 2 {
			geometry = loc.Path
		}
		view := services.Evaluate(&loc, now)

		f := geojson.NewFeature(geometry)
		f.ID = loc.ID
		f.Properties["name"] = view.Name
		f.Properties["kind"] = view.Kind
		f.Properties["isOpen"] = view.IsOpen
		f.Properties["displayedAvailable"] = view.DisplayedAvailable
		f.Properties["totalSpots"] = view.TotalSpots
		f.Properties["status"] = view.Status
		f.Properties["statusLabel"] = view.StatusLabel
		f.Properties["priceLabel"] = view.PriceLabel
		f.Properties["hoursLabel"] = view.HoursLabel
		fc.Append(f)
	}

	buf, err := fc.MarshalJSON()
	if err != nil {
		writeError(w, http.StatusInternalServerError, "could not encode feature collection")
		return
	}
	w.Header().Set("Content-Type", "application/geo+json")
	w.Write(buf)
}

func (s *Server) postAsk(w http.ResponseWriter, r *http.Request) {
	var req askRequest
	if err := json.NewDecoder(io.LimitReader(r.Body, maxBodyBytes)).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request payload")
		return
	}

	q := assistant.Query{Question: req.Question, At: s.Now()}
	if req.Lat != nil && req.Lng != nil {
		user := orb.Point{*req.Lng, *req.Lat}
		q.User = &user
	}
	writeJSON(w, http.StatusOK, askResponse{Answer: s.engine.Answer(q, s.catalog.Snapshot())})
}

func (s *Server) serveWS(w http.ResponseWriter, r *http.Request) {
	if s.hub == nil {
		writeError(w, http.StatusServiceUnavailable, "live updates disabled")
		return
	}
	s.hub.Serve(w, r, s.views())
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("http: encode response: %v", err)
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

func nonNil(ids []string) []string {
	if ids == nil {
		return []string{}
	}
	return ids
}
