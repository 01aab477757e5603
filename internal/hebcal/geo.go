package hebcal

// Geo is the location method tag sent as the geo parameter.
type Geo string

const (
	GeoGeoname Geo = "geoname"
	GeoZip     Geo = "zip"
	GeoCity    Geo = "city"
	GeoPos     Geo = "pos"
)

// LocationField identifies one of the location fields of ShabbatOptions.
type LocationField int

const (
	FieldGeonameID LocationField = iota
	FieldZip
	FieldCity
	FieldLatitude
	FieldLongitude
	FieldTZID
)

// String returns the wire name of the field
func (f LocationField) String() string {
	switch f {
	case FieldGeonameID:
		return "geonameid"
	case FieldZip:
		return "zip"
	case FieldCity:
		return "city"
	case FieldLatitude:
		return "latitude"
	case FieldLongitude:
		return "longitude"
	case FieldTZID:
		return "tzid"
	default:
		return "unknown"
	}
}

// nextGeo is the geo method transition: the most recently assigned location
// field always selects its own method, whatever the current one is.
// Latitude, longitude and tzid each select coordinates on their own.
func nextGeo(current Geo, assigned LocationField) Geo {
	switch assigned {
	case FieldGeonameID:
		return GeoGeoname
	case FieldZip:
		return GeoZip
	case FieldCity:
		return GeoCity
	case FieldLatitude, FieldLongitude, FieldTZID:
		return GeoPos
	default:
		return current
	}
}

// fieldsFor returns the location fields that are serialized for a method.
func fieldsFor(g Geo) []LocationField {
	switch g {
	case GeoGeoname:
		return []LocationField{FieldGeonameID}
	case GeoZip:
		return []LocationField{FieldZip}
	case GeoCity:
		return []LocationField{FieldCity}
	case GeoPos:
		return []LocationField{FieldLatitude, FieldLongitude, FieldTZID}
	default:
		return nil
	}
}
