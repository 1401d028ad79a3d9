package api

import (
	"encoding/json"
	"errors"
	"fmt"
)

var ErrEmptyObservation = errors.New("observation has no availableSpots")

// Observation is one sensor reading as posted by the serial bridge
type Observation struct {
	LotID          *string `json:"lotId"`
	AvailableSpots *int    `json:"availableSpots"`
}

// DecodeObservations accepts a single {"lotId", "availableSpots"} object,
// an array of them, or a batch object mapping lotId to free spots
func DecodeObservations(body []byte) (map[string]int, error) {
	var single Observation
	if err := json.Unmarshal(body, &single); err == nil && single.LotID != nil {
		if single.AvailableSpots == nil {
			return nil, fmt.Errorf("lot %q: %w", *single.LotID, ErrEmptyObservation)
		}
		return map[string]int{*single.LotID: *single.AvailableSpots}, nil
	}

	var batch map[string]int
	if err := json.Unmarshal(body, &batch); err == nil && batch != nil {
		return batch, nil
	}

	var list []Observation
	if err := json.Unmarshal(body, &list); err != nil {
		return nil, fmt.Errorf("decoding observations: %w", err)
	}
	out := make(map[string]int, len(list))
	for i, o := range list {
		if o.LotID == nil || o.AvailableSpots == nil {
			return nil, fmt.Errorf("observation %d: %w", i, ErrEmptyObservation)
		}
		// later entries for the same lot win
		out[*o.LotID] = *o.AvailableSpots
	}
	return out, nil
}
