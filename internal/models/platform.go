package models

// PlatformCode identifies a food delivery platform.
type PlatformCode string

const (
	PlatformTGOYemek    PlatformCode = "tgoyemek"
	PlatformYemeksepeti PlatformCode = "yemeksepeti"
)

// Region groups the platforms that serve one market.
type Region string

const (
	RegionTurkey Region = "tr"
)

// RegionPlatforms lists the platforms queried for each region, in merge order.
var RegionPlatforms = map[Region][]PlatformCode{
	RegionTurkey: {PlatformTGOYemek, PlatformYemeksepeti},
}

// Location is a delivery coordinate. Zero values mean "use the platform default".
type Location struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

// IsZero reports whether no coordinate was supplied.
func (l Location) IsZero() bool {
	return l.Lat == 0 && l.Lon == 0
}
