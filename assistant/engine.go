package assistant

import (
	"time"

	"github.com/paulmach/orb"

	"github.com/SangBejoo/kingston-parking/models"
)

const (
	helpText = "I can help you find parking downtown. Try \"Is Princess St free?\", " +
		"\"Parking near City Hall\", \"Closest parking to me\", " +
		"\"Which street has the most spots?\" or \"Where can I charge my EV?\""
	searchFirstText = "I don't know where you are yet. Search for an address or " +
		"share your location, then ask again."
)

// Query is a single question from the chat box. At is the instant every
// rule is evaluated at and must be supplied by the caller in the city's time
// zone; a zero At is evaluated as the zero time, not as the current time.
type Query struct {
	Question string
	At       time.Time
	User     *orb.Point // nil until the user searched or shared a location
}

// Engine answers free-text parking questions against a catalog snapshot
type Engine struct {
	Landmarks  []Landmark
	Radius     float64 // metres around a landmark
	MaxResults int
	intents    []intent
}

type intent struct {
	name   string
	match  func(a *ask) bool
	answer func(a *ask) (string, bool)
}

// ask is the per-question state handed to intents
type ask struct {
	text      string
	at        time.Time
	user      *orb.Point
	locations []models.ParkingLocation
	subset    []models.ParkingLocation
	keyword   string // entity keyword that selected subset
	landmark  *Landmark
	alias     string // landmark alias found in the question
	engine    *Engine
}

func NewEngine() *Engine {
	e := &Engine{
		Landmarks:  Landmarks,
		Radius:     400,
		MaxResults: 6,
	}
	e.intents = []intent{
		{"help", matchHelp, answerHelp},
		{"landmark", matchLandmark, answerLandmark},
		{"closest", matchClosest, answerClosest},
		{"most_available", matchMostAvailable, answerMostAvailable},
		{"if_full", matchIfFull, answerIfFull},
		{"accessibility", matchAccessibility, answerAccessibility},
		{"free", matchFree, answerFree},
		{"price", matchPrice, answerPrice},
		{"hours", matchHours, answerHours},
		{"status", matchStatus, answerStatus},
		{"entity", matchEntity, answerStatus},
	}
	return e
}

// Answer runs the intents in order and returns the first answer given.
// Unrecognised questions get the help text.
func (e *Engine) Answer(q Query, locations []models.ParkingLocation) string {
	name, text := e.Classify(q, locations)
	if name == "" {
		return helpText
	}
	return text
}

// Classify is Answer that also reports which intent answered, "" for the
// help fallback
func (e *Engine) Classify(q Query, locations []models.ParkingLocation) (string, string) {
	a := &ask{
		text:      normalize(q.Question),
		at:        q.At,
		user:      q.User,
		locations: locations,
		engine:    e,
	}
	if a.text == "" {
		return "", helpText
	}
	a.subset, a.keyword = resolveEntities(a.text, locations)
	a.landmark, a.alias = findLandmark(a.text, e.Landmarks)

	for _, in := range e.intents {
		if !in.match(a) {
			continue
		}
		if text, ok := in.answer(a); ok {
			return in.name, text
		}
	}
	return "", helpText
}
