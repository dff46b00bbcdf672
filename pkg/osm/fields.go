package osm

// field positions, the handle is field 0 for every type.
const (
	versionIdentifierField = 1

	buildingSpaceTypeField                 = 5
	buildingNominalFloorToFloorHeightField = 4

	storyNominalZField                  = 2
	storyNominalFloorToFloorHeightField = 3

	spaceTypeOutdoorAirField = 5

	outdoorAirMethodField       = 2
	outdoorAirPerPersonField    = 3
	outdoorAirPerFloorAreaField = 4
	outdoorAirFlowRateField     = 5
	outdoorAirACHField          = 6

	spaceSpaceTypeField     = 2
	spaceXOriginField       = 6
	spaceYOriginField       = 7
	spaceZOriginField       = 8
	spaceBuildingStoryField = 9
	spaceThermalZoneField   = 10
	spaceOutdoorAirField    = 12

	surfaceTypeField                     = 2
	surfaceSpaceField                    = 4
	surfaceOutsideBoundaryConditionField = 5
	surfaceOutsideBoundaryObjectField    = 6
	surfaceSunExposureField              = 7
	surfaceWindExposureField             = 8
	surfaceNumberOfVerticesField         = 10
	surfaceFirstVertexField              = 11

	subSurfaceTypeField        = 2
	subSurfaceSurfaceField     = 4
	subSurfaceFirstVertexField = 11

	zoneMultiplierField    = 2
	zoneCeilingHeightField = 3
	zoneVolumeField        = 4
	zoneInletPortListField = 9
	zoneThermostatField    = 19

	airLoopDesignSupplyFlowField = 5
	airLoopDemandMixerField      = 15
	airLoopDemandSplitterField   = 16

	runPeriodBeginMonthField = 2
	runPeriodBeginDayField   = 3
	runPeriodEndMonthField   = 4
	runPeriodEndDayField     = 5

	yearDescriptionCalendarYearField = 1

	sizingZoneZoneField = 1

	setpointManagerControlZoneField = 4
)
