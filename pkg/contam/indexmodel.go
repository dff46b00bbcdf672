package contam

import (
	"fmt"
	"time"

	"github.com/hashicorp/go-multierror"
)

type RunControl struct {
	// 0 steady state, 1 transient
	SimAF     int
	StartDate time.Time
	EndDate   time.Time
	TimeStep  time.Duration
}

func (rc RunControl) Transient() bool {
	return rc.SimAF == 1
}

type Weather struct {
	Temperature float64 // K
	Pressure    float64 // Pa
	WindSpeed   float64 // m/s
	WindDir     float64 // degree
}

type Level struct {
	Nr     int
	Name   string
	RefHt  float64 // m
	DelHt  float64 // m
	Handle string
}

type Zone struct {
	Nr          int
	Name        string
	Flags       int
	LevelNr     int
	Volume      float64 // m3
	Temperature float64 // K
	Pressure    float64 // Pa, relative
	Handle      string
}

func (z Zone) System() bool {
	return z.Flags&ZONE_SYSTEM != 0
}

// Path. airflow path between two zones, AMBIENT for outdoors. leakage paths use an element with the surface
// area as multiplier, air handling system paths carry a fixed mass flow instead.
type Path struct {
	Nr         int
	Name       string
	Flags      int
	From       int
	To         int
	ElementNr  int
	LevelNr    int
	Multiplier float64
	Height     float64 // m, relative to the level
	Flow       float64 // kg/s, system paths only
	AHSNr      int
	Handle     string
}

func (p Path) System() bool {
	return p.Flags&(PATH_AHS_SUPPLY|PATH_AHS_RETURN|PATH_AHS_SYSTEM) != 0
}

// AHS. simple air handling system with its implicit supply and return zones.
type AHS struct {
	Nr                 int
	Name               string
	SupplyZone         int
	ReturnZone         int
	RecirculationPath  int
	OutdoorAirPath     int
	ExhaustPath        int
	OutdoorAirFraction float64
	SupplyPaths        []int
	ReturnPaths        []int
	Handle             string
}

// IndexModel. the translated airflow model. every item is referenced by its 1-based number.
type IndexModel struct {
	Title      string
	RunControl RunControl
	Weather    Weather
	Levels     []Level
	Elements   []FlowElement
	Zones      []Zone
	Paths      []Path
	AHSs       []AHS
}

func NewIndexModel(title string) *IndexModel {
	return &IndexModel{
		Title: title,
		RunControl: RunControl{
			SimAF:    0,
			TimeStep: 5 * time.Minute,
		},
		Weather: Weather{
			Temperature: DEFAULT_TEMPERATURE_K,
			Pressure:    DEFAULT_PRESSURE_PA,
		},
		Levels:   make([]Level, 0),
		Elements: make([]FlowElement, 0),
		Zones:    make([]Zone, 0),
		Paths:    make([]Path, 0),
		AHSs:     make([]AHS, 0),
	}
}

func (m *IndexModel) AddLevel(l Level) int {
	l.Nr = len(m.Levels) + 1
	m.Levels = append(m.Levels, l)
	return l.Nr
}

// AddElement. returns the number of an identical existing element if there is one.
func (m *IndexModel) AddElement(e FlowElement) int {
	for _, existing := range m.Elements {
		if existing.key() == e.key() {
			return existing.Nr
		}
	}
	e.Nr = len(m.Elements) + 1
	m.Elements = append(m.Elements, e)
	return e.Nr
}

func (m *IndexModel) AddZone(z Zone) int {
	z.Nr = len(m.Zones) + 1
	m.Zones = append(m.Zones, z)
	return z.Nr
}

func (m *IndexModel) AddPath(p Path) int {
	p.Nr = len(m.Paths) + 1
	m.Paths = append(m.Paths, p)
	return p.Nr
}

func (m *IndexModel) AddAHS(a AHS) int {
	a.Nr = len(m.AHSs) + 1
	m.AHSs = append(m.AHSs, a)
	return a.Nr
}

func (m *IndexModel) Zone(nr int) (Zone, bool) {
	if nr < 1 || nr > len(m.Zones) {
		return Zone{}, false
	}
	return m.Zones[nr-1], true
}

func (m *IndexModel) Path(nr int) (Path, bool) {
	if nr < 1 || nr > len(m.Paths) {
		return Path{}, false
	}
	return m.Paths[nr-1], true
}

// Validate. numbering is contiguous and every reference points at an existing item.
func (m *IndexModel) Validate() error {
	var errs *multierror.Error
	check := func(cond bool, format string, a ...interface{}) {
		if !cond {
			errs = multierror.Append(errs, fmt.Errorf(format, a...))
		}
	}
	zoneOrAmbient := func(nr int) bool {
		return nr == AMBIENT || (nr >= 1 && nr <= len(m.Zones))
	}
	inRange := func(nr, n int) bool {
		return nr >= 1 && nr <= n
	}

	check(len(m.Levels) > 0, "model has no levels")
	for i, l := range m.Levels {
		check(l.Nr == i+1, "level %d has number %d", i+1, l.Nr)
		check(l.DelHt > 0, "level %d has non-positive height %g", l.Nr, l.DelHt)
	}
	for i, e := range m.Elements {
		check(e.Nr == i+1, "element %d has number %d", i+1, e.Nr)
		check(e.FlowRate > 0 && e.DeltaP > 0 && e.Exponent >= 0.5 && e.Exponent <= 1,
			"element %d has invalid leakage parameters", e.Nr)
	}
	for i, z := range m.Zones {
		check(z.Nr == i+1, "zone %d has number %d", i+1, z.Nr)
		check(inRange(z.LevelNr, len(m.Levels)), "zone %d references level %d", z.Nr, z.LevelNr)
		check(z.System() || z.Volume > 0, "zone %d has non-positive volume %g", z.Nr, z.Volume)
	}
	for i, p := range m.Paths {
		check(p.Nr == i+1, "path %d has number %d", i+1, p.Nr)
		check(zoneOrAmbient(p.From) && zoneOrAmbient(p.To), "path %d references zones %d, %d", p.Nr, p.From, p.To)
		check(p.From != p.To, "path %d connects zone %d to itself", p.Nr, p.From)
		check(inRange(p.LevelNr, len(m.Levels)), "path %d references level %d", p.Nr, p.LevelNr)
		if p.System() {
			check(inRange(p.AHSNr, len(m.AHSs)), "path %d references system %d", p.Nr, p.AHSNr)
			check(p.Flow >= 0, "path %d has negative flow", p.Nr)
		} else {
			check(inRange(p.ElementNr, len(m.Elements)), "path %d references element %d", p.Nr, p.ElementNr)
			check(p.Multiplier > 0, "path %d has non-positive multiplier", p.Nr)
		}
	}
	for i, a := range m.AHSs {
		check(a.Nr == i+1, "system %d has number %d", i+1, a.Nr)
		check(inRange(a.SupplyZone, len(m.Zones)) && inRange(a.ReturnZone, len(m.Zones)),
			"system %d references zones %d, %d", a.Nr, a.SupplyZone, a.ReturnZone)
		for _, nr := range append(append([]int{a.RecirculationPath, a.OutdoorAirPath, a.ExhaustPath},
			a.SupplyPaths...), a.ReturnPaths...) {
			check(inRange(nr, len(m.Paths)), "system %d references path %d", a.Nr, nr)
		}
		check(a.OutdoorAirFraction >= 0 && a.OutdoorAirFraction <= 1,
			"system %d has outdoor air fraction %g", a.Nr, a.OutdoorAirFraction)
	}
	if m.RunControl.Transient() {
		check(m.RunControl.EndDate.After(m.RunControl.StartDate), "run period ends before it starts")
	}
	return errs.ErrorOrNil()
}

func (m *IndexModel) Valid() bool {
	return m.Validate() == nil
}
