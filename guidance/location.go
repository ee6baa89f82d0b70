package guidance

import "math"

// earthRadiusCM mirrors AP_Common's LOCATION_SCALING_FACTOR derivation,
// used to flatten geodetic deltas into the local NEU plane.
const earthRadiusCM = 6371000.0 * 100.0

// AltFrame selects which zero-altitude reference a Location's Z is
// relative to, mirroring AP_Common's Location::AltFrame.
type AltFrame int

const (
	AltFrameAbsolute AltFrame = iota
	AltFrameAboveOrigin
	AltFrameAboveTerrain
)

// Location is a geodetic waypoint, latitude/longitude in 1e7 degrees
// (AP_Common's integer convention) and altitude in centimetres.
type Location struct {
	LatE7 int32
	LngE7 int32
	AltCM int32
	Frame AltFrame
}

// OriginSource resolves the EKF origin needed to flatten a Location into
// the NEU frame the core operates in.
type OriginSource interface {
	// EKFOriginNEU returns the EKF origin as a geodetic Location; ok is
	// false when no origin has been set yet.
	EKFOriginNEU() (Location, bool)
}

// locationToVecNEU converts loc to a NEU offset (cm) from origin using an
// equirectangular flattening, matching Location::get_vector_from_origin_NEU
// closely enough for waypoint-scale distances (tens of km).
func locationToVecNEU(origin, loc Location) Vec3 {
	latOriginRad := float64(origin.LatE7) * 1e-7 * math.Pi / 180.0
	dLat := float64(loc.LatE7-origin.LatE7) * 1e-7 * math.Pi / 180.0
	dLng := float64(loc.LngE7-origin.LngE7) * 1e-7 * math.Pi / 180.0

	north := dLat * earthRadiusCM
	east := dLng * earthRadiusCM * math.Cos(latOriginRad)

	var up float64
	switch loc.Frame {
	case AltFrameAboveOrigin:
		up = float64(loc.AltCM)
	default:
		up = float64(loc.AltCM - origin.AltCM)
	}

	return Vec3{X: north, Y: east, Z: up}
}

// SetWPDestinationLoc starts a straight segment toward a geodetic
// destination, per AC_WPNav::set_wp_destination(const Location&). It
// fails with ErrNoEKFOrigin if origin resolves no EKF origin yet, and
// propagates ErrNoTerrainData if loc is terrain-relative and no terrain
// offset is available (§4.1, §7).
func (c *Core) SetWPDestinationLoc(origin OriginSource, loc Location) error {
	originLoc, ok := origin.EKFOriginNEU()
	if !ok {
		return ErrNoEKFOrigin
	}
	dest := locationToVecNEU(originLoc, loc)
	terrainAlt := loc.Frame == AltFrameAboveTerrain
	if !c.SetWPDestination(dest, terrainAlt) {
		return ErrNoTerrainData
	}
	return nil
}

// GetWPDestinationLoc converts the active segment's stored NEU
// destination back to a geodetic Location, inverting locationToVecNEU,
// per AC_WPNav::get_wp_destination(Location&). ok is false if origin
// resolves no EKF origin.
func (c *Core) GetWPDestinationLoc(origin OriginSource) (Location, bool) {
	originLoc, ok := origin.EKFOriginNEU()
	if !ok {
		return Location{}, false
	}

	dest := c.GetWPDestination()
	latOriginRad := float64(originLoc.LatE7) * 1e-7 * math.Pi / 180.0

	dLat := dest.X / earthRadiusCM
	dLng := dest.Y / (earthRadiusCM * math.Cos(latOriginRad))

	loc := Location{
		LatE7: originLoc.LatE7 + int32(dLat*180.0/math.Pi*1e7),
		LngE7: originLoc.LngE7 + int32(dLng*180.0/math.Pi*1e7),
	}

	// locationToVecNEU's AboveOrigin branch stores up=AltCM directly; every
	// other frame subtracts origin.AltCM, so inverting needs to add it back
	// except for AboveOrigin.
	if c.terrainAlt {
		loc.Frame = AltFrameAboveTerrain
	} else {
		loc.Frame = AltFrameAbsolute
	}
	loc.AltCM = int32(dest.Z) + originLoc.AltCM

	return loc, true
}

// SetWPDestinationNED starts a straight segment toward destNED (NED
// frame, metres), re-expressed internally in the core's NEU convention
// and scaled to centimetres, per AC_WPNav::set_wp_destination_NED.
func (c *Core) SetWPDestinationNED(destNED Vec3) bool {
	neu := Vec3{X: destNED.X * 100, Y: destNED.Y * 100, Z: -destNED.Z * 100}
	return c.SetWPDestination(neu, false)
}
