package server

import (
	"math"

	"github.com/katalvlaran/antcolony/colony"
	"github.com/katalvlaran/antcolony/driver"
	"github.com/katalvlaran/antcolony/pheromone"
)

// frameDTO is the JSON form of a driver.Frame. Infinite lengths (no tour
// yet) are encoded as null since JSON has no +Inf.
type frameDTO struct {
	Type          string           `json:"type"`
	RunID         string           `json:"run_id"`
	Iteration     int              `json:"iteration"`
	Paused        bool             `json:"paused"`
	Params        colony.Params    `json:"params"`
	Cities        []colony.City    `json:"cities"`
	Pheromones    []pheromone.Edge `json:"pheromones"`
	MaxLevel      float64          `json:"max_level"`
	BestTour      []int            `json:"best_tour"`
	BestLength    *float64         `json:"best_length"`
	IterationBest *float64         `json:"iteration_best"`
	IterationMean *float64         `json:"iteration_mean"`
	Timestamp     int64            `json:"timestamp"`
}

type historyPointDTO struct {
	Iteration     int      `json:"iteration"`
	BestLength    *float64 `json:"best_length"`
	IterationBest *float64 `json:"iteration_best"`
	IterationMean *float64 `json:"iteration_mean"`
}

type errorDTO struct {
	Type  string `json:"type,omitempty"`
	Error string `json:"error"`
	Code  string `json:"code"`
}

type cityDTO struct {
	X *float64 `json:"x"`
	Y *float64 `json:"y"`
}

type citiesDTO struct {
	Cities []colony.City `json:"cities"`
}

// envelope is a command sent by a WebSocket client.
type envelope struct {
	Type   string         `json:"type"`
	X      float64        `json:"x"`
	Y      float64        `json:"y"`
	Index  int            `json:"index"`
	Params *colony.Params `json:"params,omitempty"`
}

// WebSocket command types.
const (
	cmdAddCity    = "add_city"
	cmdRemoveCity = "remove_city"
	cmdToggleCity = "toggle_city"
	cmdSetParams  = "set_params"
	cmdReset      = "reset"
	cmdPause      = "pause"
	cmdResume     = "resume"
	cmdStep       = "step"
)

func newFrameDTO(f driver.Frame) frameDTO {
	s := f.Snapshot
	dto := frameDTO{
		Type:       "frame",
		RunID:      f.RunID,
		Iteration:  s.Iteration,
		Paused:     f.Paused,
		Params:     f.Params,
		Cities:     s.Cities,
		Pheromones: s.Pheromones,
		MaxLevel:   s.MaxLevel,
		BestTour:   s.BestTour,
		BestLength: finiteOrNil(s.BestLength),
		Timestamp:  f.At.UnixMilli(),
	}
	if f.Last.Tours > 0 {
		dto.IterationBest = finiteOrNil(f.Last.IterationBest)
		dto.IterationMean = finiteOrNil(f.Last.IterationMean)
	}
	if dto.Cities == nil {
		dto.Cities = []colony.City{}
	}
	if dto.Pheromones == nil {
		dto.Pheromones = []pheromone.Edge{}
	}
	return dto
}

func newHistoryDTO(history []colony.Result) []historyPointDTO {
	out := make([]historyPointDTO, len(history))
	for i, r := range history {
		out[i] = historyPointDTO{
			Iteration:     r.Iteration,
			BestLength:    finiteOrNil(r.BestLength),
			IterationBest: finiteOrNil(r.IterationBest),
			IterationMean: finiteOrNil(r.IterationMean),
		}
	}
	return out
}

func finiteOrNil(v float64) *float64 {
	if math.IsInf(v, 0) || math.IsNaN(v) {
		return nil
	}
	return &v
}
