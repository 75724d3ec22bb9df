package costfunction

import (
	"fmt"
)

type EdgeAttributes interface {
	GetWeight() float64
	GetLength() float64
}

type CostFunction interface {
	GetWeight(e EdgeAttributes) float64
	Name() string
}

const (
	LENGTH      = "length"
	TRAVEL_TIME = "travel_time"
)

// LengthCostFunction. edge cost in meters
type LengthCostFunction struct{}

func NewLengthCostFunction() *LengthCostFunction {
	return &LengthCostFunction{}
}

func (lf *LengthCostFunction) GetWeight(e EdgeAttributes) float64 {
	return e.GetLength()
}

func (lf *LengthCostFunction) Name() string {
	return LENGTH
}

// TimeCostFunction. edge cost in seconds at the default speed of the road
type TimeCostFunction struct{}

func NewTimeCostFunction() *TimeCostFunction {
	return &TimeCostFunction{}
}

func (tf *TimeCostFunction) GetWeight(e EdgeAttributes) float64 {
	return e.GetWeight()
}

func (tf *TimeCostFunction) Name() string {
	return TRAVEL_TIME
}

func NewCostFunction(weight string) (CostFunction, error) {
	switch weight {
	case LENGTH:
		return NewLengthCostFunction(), nil
	case TRAVEL_TIME:
		return NewTimeCostFunction(), nil
	default:
		return nil, fmt.Errorf("unknown weight %q, want %s or %s", weight, LENGTH, TRAVEL_TIME)
	}
}
