package osm

const (
	// OpenStudio assumes this year when the model has no OS:YearDescription
	DEFAULT_CALENDAR_YEAR = 2009

	CURRENT_VERSION = "1.11.1"
	OLDEST_VERSION  = "1.0.0"

	// tolerance in meter when comparing vertices
	VERTEX_TOLERANCE = 0.01
)
