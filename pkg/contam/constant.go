package contam

const (
	// kg/m3 at 20 C, 101325 Pa
	AIR_DENSITY = 1.2041

	DEFAULT_TEMPERATURE_K = 293.15
	DEFAULT_PRESSURE_PA   = 101325.0

	// leakage is given at this pressure difference, with this flow exponent
	REFERENCE_PRESSURE_PA = 75.0
	DEFAULT_FLOW_EXPONENT = 0.65

	// pressure difference below which power law elements are linearized
	LAMINAR_TRANSITION_PA = 0.01

	DEFAULT_LEVEL_HEIGHT = 3.0

	// fraction of supply air taken from outdoors by the generated air handling systems
	DEFAULT_OUTDOOR_AIR_FRACTION = 1.0

	AMBIENT = -1

	PRJ_SECTION_END = "-999"
)

const (
	ZONE_VARIABLE_PRESSURE = 1
	ZONE_VARIABLE_CONTAM   = 2
	ZONE_SYSTEM            = 8

	PATH_WIND       = 1
	PATH_AHS_SUPPLY = 8
	PATH_AHS_RETURN = 16
	PATH_AHS_SYSTEM = 32
)
