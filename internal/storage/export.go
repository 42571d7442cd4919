package storage

import (
	"encoding/json"
	"io"
)

type ExportData struct {
	Lab      string             `json:"lab"`
	Dt       float64            `json:"dt"`
	Duration float64            `json:"duration"`
	Steps    int                `json:"steps"`
	Params   map[string]float64 `json:"params"`
	Derived  map[string]float64 `json:"derived"`
	Labels   []string           `json:"labels"`
	Times    []float64          `json:"times"`
	States   [][]float64        `json:"states"`
}

// ExportJSON writes a stored run as one indented JSON document.
func (s *Store) ExportJSON(w io.Writer, runID string) error {
	meta, err := s.Load(runID)
	if err != nil {
		return err
	}
	states, times, err := s.LoadStates(runID)
	if err != nil {
		return err
	}

	data := ExportData{
		Lab:      meta.Lab,
		Dt:       meta.Dt,
		Duration: meta.Duration,
		Steps:    len(times),
		Params:   meta.Params,
		Derived:  meta.Derived,
		Labels:   meta.Labels,
		Times:    times,
		States:   states,
	}

	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(data)
}
