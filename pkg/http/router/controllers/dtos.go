package controllers

import (
	"time"

	"github.com/lintang-b-s/pathcompare/pkg/datastructure"
	"github.com/lintang-b-s/pathcompare/pkg/http/usecases"
	"github.com/lintang-b-s/pathcompare/pkg/metrics"
)

type fixRequest struct {
	Time time.Time `json:"time" validate:"required"`
	Lat  float64   `json:"lat" validate:"min=-90,max=90"`
	Lon  float64   `json:"lon" validate:"min=-180,max=180"`
}

type pathCompareRequest struct {
	UserID string       `json:"user_id" validate:"required"`
	Fixes  []fixRequest `json:"fixes" validate:"required,min=1,dive"`
}

func (r pathCompareRequest) ToDataGPS() []*datastructure.GPSPoint {
	points := make([]*datastructure.GPSPoint, len(r.Fixes))
	for i, f := range r.Fixes {
		points[i] = datastructure.NewGPSPoint(r.UserID, f.Lat, f.Lon, f.Time)
	}
	return points
}

type stopResponse struct {
	Lat       float64   `json:"lat"`
	Lon       float64   `json:"lon"`
	Arrival   time.Time `json:"arrival"`
	Departure time.Time `json:"departure"`
	Dwell     float64   `json:"dwell_seconds"`
}

type pathCompareResponse struct {
	Metrics          metrics.Record `json:"metrics"`
	Legs             int            `json:"legs"`
	Stops            []stopResponse `json:"stops"`
	ModeledRoute     string         `json:"modeled_route"`
	ObservedRoute    string         `json:"observed_route"`
	ModeledDistance  float64        `json:"modeled_distance"`
	ObservedDistance float64        `json:"observed_distance"`
	Warning          string         `json:"warning,omitempty"`
}

func NewPathCompareResponse(pc *usecases.PathComparison) pathCompareResponse {
	stops := make([]stopResponse, len(pc.Stops))
	for i, s := range pc.Stops {
		stops[i] = stopResponse{
			Lat:       s.Lat(),
			Lon:       s.Lon(),
			Arrival:   s.Arrival(),
			Departure: s.Departure(),
			Dwell:     s.Dwell().Seconds(),
		}
	}
	return pathCompareResponse{
		Metrics:          pc.Record,
		Legs:             pc.Legs,
		Stops:            stops,
		ModeledRoute:     pc.ModeledPolyline,
		ObservedRoute:    pc.ObservedPolyline,
		ModeledDistance:  pc.ModeledDistance,
		ObservedDistance: pc.ObservedDistance,
		Warning:          pc.Warning,
	}
}

type errorResponse struct {
	Error struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}
