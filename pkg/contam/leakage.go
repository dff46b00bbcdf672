package contam

import (
	"fmt"
	"math"
)

type AirtightnessLevel string

const (
	Tight   AirtightnessLevel = "Tight"
	Average AirtightnessLevel = "Average"
	Leaky   AirtightnessLevel = "Leaky"
)

type SurfaceClass uint8

const (
	EXTERIOR_WALL SurfaceClass = iota
	ROOF
	EXPOSED_FLOOR
	INTERIOR_WALL
	INTERIOR_FLOOR
)

func (c SurfaceClass) String() string {
	switch c {
	case EXTERIOR_WALL:
		return "ExtWall"
	case ROOF:
		return "Roof"
	case EXPOSED_FLOOR:
		return "ExpFloor"
	case INTERIOR_WALL:
		return "IntWall"
	case INTERIOR_FLOOR:
		return "IntFloor"
	}
	return "Unknown"
}

func (c SurfaceClass) Exterior() bool {
	return c == EXTERIOR_WALL || c == ROOF || c == EXPOSED_FLOOR
}

// leakage per surface area at REFERENCE_PRESSURE_PA, m3/h per m2.
// average exterior leakage is the mean of measured US commercial buildings.
var leakageTable = map[AirtightnessLevel]map[SurfaceClass]float64{
	Tight: {
		EXTERIOR_WALL:  7.2,
		ROOF:           7.2,
		EXPOSED_FLOOR:  7.2,
		INTERIOR_WALL:  3.6,
		INTERIOR_FLOOR: 1.8,
	},
	Average: {
		EXTERIOR_WALL:  27.1,
		ROOF:           27.1,
		EXPOSED_FLOOR:  27.1,
		INTERIOR_WALL:  13.55,
		INTERIOR_FLOOR: 6.8,
	},
	Leaky: {
		EXTERIOR_WALL:  54.2,
		ROOF:           54.2,
		EXPOSED_FLOOR:  54.2,
		INTERIOR_WALL:  27.1,
		INTERIOR_FLOOR: 13.6,
	},
}

// FlowElement. power law leakage element per m2 of surface: Q = C * dP^n.
type FlowElement struct {
	Nr          int
	Name        string
	Description string
	FlowRate    float64 // m3/h per m2 at DeltaP
	DeltaP      float64 // Pa
	Exponent    float64
}

func newLeakageElement(level AirtightnessLevel, class SurfaceClass) (FlowElement, error) {
	classes, ok := leakageTable[level]
	if !ok {
		return FlowElement{}, fmt.Errorf("unknown airtightness level '%s'", level)
	}
	return FlowElement{
		Name:        fmt.Sprintf("%s%s", class, level),
		Description: fmt.Sprintf("%s leakage, %s", level, class),
		FlowRate:    classes[class],
		DeltaP:      REFERENCE_PRESSURE_PA,
		Exponent:    DEFAULT_FLOW_EXPONENT,
	}, nil
}

func newCustomLeakageElement(class SurfaceClass, flow, exponent, deltaP float64) FlowElement {
	return FlowElement{
		Name:        fmt.Sprintf("%sCustom", class),
		Description: fmt.Sprintf("%g m3/h/m2 at %g Pa, %s", flow, deltaP, class),
		FlowRate:    flow,
		DeltaP:      deltaP,
		Exponent:    exponent,
	}
}

// TurbulentCoefficient. kg/s per m2 at 1 Pa.
func (e FlowElement) TurbulentCoefficient() float64 {
	return AIR_DENSITY * e.FlowRate / 3600.0 / math.Pow(e.DeltaP, e.Exponent)
}

// LaminarCoefficient. slope of the linear branch, continuous with the power law at LAMINAR_TRANSITION_PA.
func (e FlowElement) LaminarCoefficient() float64 {
	return e.TurbulentCoefficient() * math.Pow(LAMINAR_TRANSITION_PA, e.Exponent-1)
}

// MassFlow. kg/s through area m2 at pressure difference dp Pa, signed like dp.
func (e FlowElement) MassFlow(area, dp float64) float64 {
	sign := 1.0
	if dp < 0 {
		sign = -1.0
	}
	dp = math.Abs(dp)
	if dp < LAMINAR_TRANSITION_PA {
		return sign * area * e.LaminarCoefficient() * dp
	}
	return sign * area * e.TurbulentCoefficient() * math.Pow(dp, e.Exponent)
}

func (e FlowElement) key() string {
	return fmt.Sprintf("%s|%g|%g|%g", e.Name, e.FlowRate, e.DeltaP, e.Exponent)
}
