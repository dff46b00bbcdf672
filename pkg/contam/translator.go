package contam

import (
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/hashicorp/go-multierror"
	"github.com/lintang-b-s/osm2prj/pkg/osm"
	"github.com/lintang-b-s/osm2prj/pkg/util"
	"go.uber.org/zap"
)

var (
	ErrNoModel  = errors.New("no model to translate")
	ErrNoZones  = errors.New("model has no thermal zone with spaces")
	ErrNoVolume = errors.New("zone has no volume")
)

// ForwardTranslator. translates an osm building model into a contam airflow model.
// a translator may be reused, every TranslateModel call resets the result maps.
type ForwardTranslator struct {
	log       *zap.Logger
	opts      Options
	validator *optionValidator

	zoneMap    map[string]int
	surfaceMap map[string]int
	warnings   []string
	errs       []string
	start      time.Time
	end        time.Time
	transient  bool
}

func NewForwardTranslator(log *zap.Logger) *ForwardTranslator {
	return &ForwardTranslator{
		log:        log,
		opts:       DefaultOptions(),
		validator:  newOptionValidator(),
		zoneMap:    make(map[string]int),
		surfaceMap: make(map[string]int),
	}
}

func (ft *ForwardTranslator) Options() Options {
	return ft.opts
}

func (ft *ForwardTranslator) setOptions(opts Options) error {
	if err := ft.validator.Validate(opts); err != nil {
		return util.WrapErrorf(err, util.ErrBadParamInput, "invalid translator options")
	}
	ft.opts = opts
	return nil
}

// SetAirtightnessLevel. one of Tight, Average, Leaky.
func (ft *ForwardTranslator) SetAirtightnessLevel(level string) error {
	opts := ft.opts
	opts.AirtightnessLevel = level
	return ft.setOptions(opts)
}

// SetReturnSupplyRatio. return flow of every air handling system as a fraction of its supply, 0 < ratio <= 1.
func (ft *ForwardTranslator) SetReturnSupplyRatio(ratio float64) error {
	opts := ft.opts
	opts.ReturnSupplyRatio = ratio
	return ft.setOptions(opts)
}

// SetExteriorFlowRate. flow in m3/h per m2 of exterior surface at deltaP Pa with flow exponent n.
func (ft *ForwardTranslator) SetExteriorFlowRate(flow, n, deltaP float64) error {
	opts := ft.opts
	opts.ExteriorLeakage = &ExteriorLeakage{FlowRate: flow, Exponent: n, DeltaP: deltaP}
	return ft.setOptions(opts)
}

func (ft *ForwardTranslator) SetTranslateHVAC(translate bool) error {
	opts := ft.opts
	opts.TranslateHVAC = translate
	return ft.setOptions(opts)
}

// ZoneMap. thermal zone handle to airflow zone number of the last translation.
func (ft *ForwardTranslator) ZoneMap() map[string]int {
	return copyMap(ft.zoneMap)
}

// SurfaceMap. surface handle to airflow path number of the last translation. both surfaces of a matched pair map to the same path.
func (ft *ForwardTranslator) SurfaceMap() map[string]int {
	return copyMap(ft.surfaceMap)
}

func (ft *ForwardTranslator) Warnings() []string {
	return append([]string(nil), ft.warnings...)
}

func (ft *ForwardTranslator) Errors() []string {
	return append([]string(nil), ft.errs...)
}

// StartDateTime. start of the simulated period, false for steady state translations.
func (ft *ForwardTranslator) StartDateTime() (time.Time, bool) {
	return ft.start, ft.transient
}

func (ft *ForwardTranslator) EndDateTime() (time.Time, bool) {
	return ft.end, ft.transient
}

func (ft *ForwardTranslator) reset() {
	ft.zoneMap = make(map[string]int)
	ft.surfaceMap = make(map[string]int)
	ft.warnings = make([]string, 0)
	ft.errs = make([]string, 0)
	ft.start, ft.end = time.Time{}, time.Time{}
	ft.transient = false
}

func (ft *ForwardTranslator) warn(format string, a ...interface{}) {
	msg := fmt.Sprintf(format, a...)
	ft.warnings = append(ft.warnings, msg)
	ft.log.Warn(msg)
}

func (ft *ForwardTranslator) fail(err error) error {
	ft.errs = append(ft.errs, err.Error())
	ft.log.Error("translation failed", zap.Error(err))
	return err
}

// translation. state of one TranslateModel call.
type translation struct {
	ft    *ForwardTranslator
	model *osm.Model
	prj   *IndexModel

	// story handle -> level number
	levels map[string]int
	// space handle -> zone number
	spaceZones map[string]int
	// zone number -> level number
	zoneLevels map[int]int
	elements   map[SurfaceClass]int
}

// TranslateModel. builds levels, zones, leakage paths, simple air handling systems and run control from the model.
func (ft *ForwardTranslator) TranslateModel(model *osm.Model) (*IndexModel, error) {
	ft.reset()
	if model == nil {
		return nil, ft.fail(ErrNoModel)
	}

	title := "osm2prj"
	if building, ok := model.Building(); ok && building.Name() != "" {
		title = building.Name()
	}
	tr := &translation{
		ft:         ft,
		model:      model,
		prj:        NewIndexModel(title),
		levels:     make(map[string]int),
		spaceZones: make(map[string]int),
		zoneLevels: make(map[int]int),
		elements:   make(map[SurfaceClass]int),
	}

	tr.translateLevels()
	if err := tr.translateZones(); err != nil {
		return nil, ft.fail(err)
	}
	if err := tr.translatePaths(); err != nil {
		return nil, ft.fail(err)
	}
	if ft.opts.TranslateHVAC {
		tr.translateSystems()
	}
	tr.translateRunControl()

	if err := tr.prj.Validate(); err != nil {
		var merr *multierror.Error
		if errors.As(err, &merr) {
			for _, e := range merr.Errors {
				ft.errs = append(ft.errs, e.Error())
			}
		}
		ft.log.Error("translated model is invalid", zap.Error(err))
		return nil, fmt.Errorf("translated model is invalid: %w", err)
	}

	ft.log.Info("translated model",
		zap.Int("levels", len(tr.prj.Levels)),
		zap.Int("zones", len(tr.prj.Zones)),
		zap.Int("paths", len(tr.prj.Paths)),
		zap.Int("systems", len(tr.prj.AHSs)))
	return tr.prj, nil
}

func (tr *translation) translateLevels() {
	defaultHeight := DEFAULT_LEVEL_HEIGHT
	if building, ok := tr.model.Building(); ok && building.NominalFloorToFloorHeight() > 0 {
		defaultHeight = building.NominalFloorToFloorHeight()
	}

	refHt := 0.0
	for _, story := range tr.model.BuildingStories() {
		if z, ok := story.NominalZCoordinate(); ok {
			refHt = z
		}
		delHt, ok := story.NominalFloorToFloorHeight()
		if !ok {
			delHt = defaultHeight
		}
		nr := tr.prj.AddLevel(Level{
			Name:   story.Name(),
			RefHt:  refHt,
			DelHt:  delHt,
			Handle: story.Handle(),
		})
		tr.levels[osm.NormalizeHandle(story.Handle())] = nr
		refHt += delHt
	}
	if len(tr.prj.Levels) == 0 {
		tr.prj.AddLevel(Level{Name: "Level 1", RefHt: 0, DelHt: defaultHeight})
	}
}

// levelOf. the level of the space's story, else the highest level starting at or below the space's lowest point.
func (tr *translation) levelOf(space osm.Space) int {
	if story, ok := space.BuildingStory(); ok {
		if nr, ok := tr.levels[osm.NormalizeHandle(story.Handle())]; ok {
			return nr
		}
	}
	minZ := math.Inf(1)
	for _, surface := range space.Surfaces() {
		minZ = min(minZ, surface.Vertices().MinZ())
	}
	level := 1
	for _, l := range tr.prj.Levels {
		if l.RefHt <= minZ+osm.VERTEX_TOLERANCE {
			level = l.Nr
		}
	}
	return level
}

func (tr *translation) translateZones() error {
	ft := tr.ft
	for _, zone := range tr.model.ThermalZones() {
		spaces := zone.Spaces()
		if len(spaces) == 0 {
			ft.warn("thermal zone '%s' has no spaces and is not translated", zone.Name())
			continue
		}
		if zone.Multiplier() > 1 {
			ft.warn("thermal zone '%s' has multiplier %d, translated once", zone.Name(), zone.Multiplier())
		}

		levelNr := tr.levelOf(spaces[0])
		volume := zone.Volume()
		if volume <= 0 {
			volume = zone.FloorArea() * tr.prj.Levels[levelNr-1].DelHt
		}
		if volume <= 0 {
			return fmt.Errorf("thermal zone '%s': %w", zone.Name(), ErrNoVolume)
		}

		nr := tr.prj.AddZone(Zone{
			Name:        zone.Name(),
			Flags:       ZONE_VARIABLE_PRESSURE | ZONE_VARIABLE_CONTAM,
			LevelNr:     levelNr,
			Volume:      volume,
			Temperature: DEFAULT_TEMPERATURE_K,
			Handle:      zone.Handle(),
		})
		ft.zoneMap[zone.Handle()] = nr
		tr.zoneLevels[nr] = levelNr
		for _, space := range spaces {
			tr.spaceZones[osm.NormalizeHandle(space.Handle())] = nr
		}
	}
	if len(tr.prj.Zones) == 0 {
		return ErrNoZones
	}
	return nil
}

func (tr *translation) element(class SurfaceClass) (int, error) {
	if nr, ok := tr.elements[class]; ok {
		return nr, nil
	}
	opts := tr.ft.opts
	var e FlowElement
	if ext := opts.ExteriorLeakage; ext != nil && class.Exterior() {
		e = newCustomLeakageElement(class, ext.FlowRate, ext.Exponent, ext.DeltaP)
	} else {
		var err error
		e, err = newLeakageElement(AirtightnessLevel(opts.AirtightnessLevel), class)
		if err != nil {
			return 0, err
		}
	}
	nr := tr.prj.AddElement(e)
	tr.elements[class] = nr
	return nr, nil
}

func (tr *translation) zoneOf(surface osm.Surface) (int, bool) {
	space, ok := surface.Space()
	if !ok {
		return 0, false
	}
	nr, ok := tr.spaceZones[osm.NormalizeHandle(space.Handle())]
	return nr, ok
}

func exteriorClass(surfaceType string) SurfaceClass {
	switch surfaceType {
	case osm.SurfaceTypeRoofCeiling:
		return ROOF
	case osm.SurfaceTypeFloor:
		return EXPOSED_FLOOR
	}
	return EXTERIOR_WALL
}

func interiorClass(surfaceType string) SurfaceClass {
	if surfaceType == osm.SurfaceTypeWall {
		return INTERIOR_WALL
	}
	return INTERIOR_FLOOR
}

// translatePaths. one leakage path per exterior surface and per matched pair of interior surfaces between zones.
func (tr *translation) translatePaths() error {
	ft := tr.ft
	for _, surface := range tr.model.Surfaces() {
		from, ok := tr.zoneOf(surface)
		if !ok {
			ft.warn("surface '%s' is not in a translated zone", surface.Name())
			continue
		}
		if len(surface.SubSurfaces()) > 0 {
			ft.warn("sub surfaces of surface '%s' are not translated", surface.Name())
		}

		var (
			to    int
			class SurfaceClass
			flags int
		)
		switch surface.OutsideBoundaryCondition() {
		case osm.BoundaryOutdoors:
			to, class, flags = AMBIENT, exteriorClass(surface.SurfaceType()), PATH_WIND
		case osm.BoundarySurface:
			adjacent, ok := surface.AdjacentSurface()
			if !ok {
				ft.warn("surface '%s' has no adjacent surface", surface.Name())
				continue
			}
			if nr, ok := ft.surfaceMap[adjacent.Handle()]; ok {
				ft.surfaceMap[surface.Handle()] = nr
				continue
			}
			to, ok = tr.zoneOf(adjacent)
			if !ok {
				ft.warn("surface '%s' is adjacent to a space that is not in a translated zone", surface.Name())
				continue
			}
			if to == from {
				continue
			}
			class = interiorClass(surface.SurfaceType())
		default:
			continue
		}

		area := surface.Area()
		if area <= 0 {
			ft.warn("surface '%s' has no area", surface.Name())
			continue
		}
		elementNr, err := tr.element(class)
		if err != nil {
			return err
		}
		levelNr := tr.zoneLevels[from]
		nr := tr.prj.AddPath(Path{
			Name:       surface.Name(),
			Flags:      flags,
			From:       from,
			To:         to,
			ElementNr:  elementNr,
			LevelNr:    levelNr,
			Multiplier: area,
			Height:     surface.Vertices().Centroid().Z - tr.prj.Levels[levelNr-1].RefHt,
			Handle:     surface.Handle(),
		})
		ft.surfaceMap[surface.Handle()] = nr
	}
	return nil
}

// outdoorAirFlow. m3/s from the outdoor air specification of every space in the zone.
// per person rates are ignored, the model carries no occupancy.
func outdoorAirFlow(zone osm.ThermalZone) float64 {
	var flow float64
	for _, space := range zone.Spaces() {
		oa, ok := space.DesignSpecificationOutdoorAir()
		if !ok {
			continue
		}
		flow += oa.FlowPerFloorArea()*space.FloorArea() + oa.FlowRate()
		if ach := oa.AirChangesPerHour(); ach > 0 {
			flow += ach * max(space.Volume(), 0) / 3600.0
		}
	}
	return flow
}

// translateSystems. one simple air handling system per air loop serving translated zones.
func (tr *translation) translateSystems() {
	ft := tr.ft
	ratio := ft.opts.ReturnSupplyRatio
	for _, loop := range tr.model.AirLoops() {
		type served struct {
			nr   int
			flow float64
		}
		zones := make([]served, 0)
		for _, zone := range loop.ThermalZones() {
			nr, ok := ft.zoneMap[zone.Handle()]
			if !ok {
				continue
			}
			flow := AIR_DENSITY * outdoorAirFlow(zone)
			if flow <= 0 {
				ft.warn("thermal zone '%s' has no outdoor air specification, supply flow is zero", zone.Name())
			}
			zones = append(zones, served{nr: nr, flow: flow})
		}
		if len(zones) == 0 {
			ft.warn("air loop '%s' serves no translated zone", loop.Name())
			continue
		}

		ahsNr := tr.prj.AddAHS(AHS{
			Name:               loop.Name(),
			OutdoorAirFraction: DEFAULT_OUTDOOR_AIR_FRACTION,
			Handle:             loop.Handle(),
		})
		ahs := AHS{
			Nr:                 ahsNr,
			Name:               loop.Name(),
			OutdoorAirFraction: DEFAULT_OUTDOOR_AIR_FRACTION,
			Handle:             loop.Handle(),
		}
		ahs.SupplyZone = tr.prj.AddZone(Zone{
			Name:        loop.Name() + "(Sup)",
			Flags:       ZONE_SYSTEM,
			LevelNr:     1,
			Temperature: DEFAULT_TEMPERATURE_K,
		})
		ahs.ReturnZone = tr.prj.AddZone(Zone{
			Name:        loop.Name() + "(Ret)",
			Flags:       ZONE_SYSTEM,
			LevelNr:     1,
			Temperature: DEFAULT_TEMPERATURE_K,
		})

		var supplyTotal, returnTotal float64
		for _, z := range zones {
			levelNr := tr.zoneLevels[z.nr]
			ahs.SupplyPaths = append(ahs.SupplyPaths, tr.prj.AddPath(Path{
				Name:    fmt.Sprintf("%s supply %d", loop.Name(), z.nr),
				Flags:   PATH_AHS_SUPPLY,
				From:    ahs.SupplyZone,
				To:      z.nr,
				LevelNr: levelNr,
				Flow:    z.flow,
				AHSNr:   ahsNr,
			}))
			ahs.ReturnPaths = append(ahs.ReturnPaths, tr.prj.AddPath(Path{
				Name:    fmt.Sprintf("%s return %d", loop.Name(), z.nr),
				Flags:   PATH_AHS_RETURN,
				From:    z.nr,
				To:      ahs.ReturnZone,
				LevelNr: levelNr,
				Flow:    ratio * z.flow,
				AHSNr:   ahsNr,
			}))
			supplyTotal += z.flow
			returnTotal += ratio * z.flow
		}

		oaFraction := ahs.OutdoorAirFraction
		ahs.RecirculationPath = tr.prj.AddPath(Path{
			Name: loop.Name() + " recirculation", Flags: PATH_AHS_SYSTEM, From: ahs.ReturnZone, To: ahs.SupplyZone,
			LevelNr: 1, Flow: (1 - oaFraction) * returnTotal, AHSNr: ahsNr,
		})
		ahs.OutdoorAirPath = tr.prj.AddPath(Path{
			Name: loop.Name() + " outdoor air", Flags: PATH_AHS_SYSTEM, From: AMBIENT, To: ahs.SupplyZone,
			LevelNr: 1, Flow: oaFraction * supplyTotal, AHSNr: ahsNr,
		})
		ahs.ExhaustPath = tr.prj.AddPath(Path{
			Name: loop.Name() + " exhaust", Flags: PATH_AHS_SYSTEM, From: ahs.ReturnZone, To: AMBIENT,
			LevelNr: 1, Flow: oaFraction * returnTotal, AHSNr: ahsNr,
		})
		tr.prj.AHSs[ahsNr-1] = ahs
	}
}

// translateRunControl. transient over the run period when the model has one, steady state otherwise.
// the end date is inclusive, the simulation ends at midnight after it.
func (tr *translation) translateRunControl() {
	period, ok := tr.model.RunPeriod()
	if !ok {
		return
	}
	year := tr.model.CalendarYear()
	bm, bd, em, ed := period.Dates()
	start := time.Date(year, time.Month(bm), bd, 0, 0, 0, 0, time.UTC)
	end := time.Date(year, time.Month(em), ed, 0, 0, 0, 0, time.UTC).AddDate(0, 0, 1)
	if !end.After(start) {
		tr.ft.warn("run period '%s' ends before it starts, translated as steady state", period.Object().Name())
		return
	}
	tr.prj.RunControl.SimAF = 1
	tr.prj.RunControl.StartDate = start
	tr.prj.RunControl.EndDate = end
	tr.ft.start, tr.ft.end, tr.ft.transient = start, end, true
}

func copyMap[K comparable, V any](m map[K]V) map[K]V {
	out := make(map[K]V, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}
