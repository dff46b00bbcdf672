package osm

import "sort"

func (m *Model) Building() (Building, bool) {
	buildings := m.ObjectsOfType(TypeBuilding)
	if len(buildings) == 0 {
		return Building{}, false
	}
	return Building{obj: buildings[0], model: m}, true
}

// BuildingStories. sorted by nominal z, stories without one go last in file order.
func (m *Model) BuildingStories() []BuildingStory {
	stories := make([]BuildingStory, 0)
	for _, obj := range m.ObjectsOfType(TypeBuildingStory) {
		stories = append(stories, BuildingStory{obj: obj, model: m})
	}
	sort.SliceStable(stories, func(i, j int) bool {
		zi, okI := stories[i].NominalZCoordinate()
		zj, okJ := stories[j].NominalZCoordinate()
		if okI != okJ {
			return okI
		}
		return zi < zj
	})
	return stories
}

func (m *Model) Spaces() []Space {
	spaces := make([]Space, 0)
	for _, obj := range m.ObjectsOfType(TypeSpace) {
		spaces = append(spaces, Space{obj: obj, model: m})
	}
	return spaces
}

func (m *Model) Surfaces() []Surface {
	surfaces := make([]Surface, 0)
	for _, obj := range m.ObjectsOfType(TypeSurface) {
		surfaces = append(surfaces, Surface{obj: obj, model: m})
	}
	return surfaces
}

func (m *Model) SubSurfaces() []SubSurface {
	subs := make([]SubSurface, 0)
	for _, obj := range m.ObjectsOfType(TypeSubSurface) {
		subs = append(subs, SubSurface{obj: obj, model: m})
	}
	return subs
}

func (m *Model) ThermalZones() []ThermalZone {
	zones := make([]ThermalZone, 0)
	for _, obj := range m.ObjectsOfType(TypeThermalZone) {
		zones = append(zones, ThermalZone{obj: obj, model: m})
	}
	return zones
}

func (m *Model) AirLoops() []AirLoopHVAC {
	loops := make([]AirLoopHVAC, 0)
	for _, obj := range m.ObjectsOfType(TypeAirLoopHVAC) {
		loops = append(loops, AirLoopHVAC{obj: obj, model: m})
	}
	return loops
}

func (m *Model) RunPeriod() (RunPeriod, bool) {
	periods := m.ObjectsOfType(TypeRunPeriod)
	if len(periods) == 0 {
		return RunPeriod{}, false
	}
	return RunPeriod{obj: periods[0]}, true
}

// CalendarYear. the year of OS:YearDescription, 2009 when absent.
func (m *Model) CalendarYear() int {
	for _, obj := range m.ObjectsOfType(TypeYearDescription) {
		year := int(obj.FloatField(yearDescriptionCalendarYearField, 0))
		if year > 0 {
			return year
		}
	}
	return DEFAULT_CALENDAR_YEAR
}

func (m *Model) SpacesInZone(zone ThermalZone) []Space {
	spaces := make([]Space, 0)
	key := NormalizeHandle(zone.Handle())
	for _, space := range m.Spaces() {
		if NormalizeHandle(space.obj.Field(spaceThermalZoneField)) == key {
			spaces = append(spaces, space)
		}
	}
	return spaces
}
