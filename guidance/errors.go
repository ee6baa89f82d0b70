package guidance

import "errors"

// Sentinel errors for the ambient surfaces around the core. The hot path
// itself never returns these — it reports failure as a plain bool per
// spec §7; ErrNoEKFOrigin and ErrNoTerrainData are returned by the
// geodetic destination setter layered on top.
var (
	// ErrNoEKFOrigin is returned when a geodetic position cannot be
	// converted to the NEU frame because no EKF origin is set.
	ErrNoEKFOrigin = errors.New("guidance: no EKF origin set")

	// ErrNoTerrainData is returned when a terrain-relative operation
	// cannot proceed because no terrain offset is available.
	ErrNoTerrainData = errors.New("guidance: no terrain data available")

	// ErrDegenerateSegment flags an origin==destination segment. It is
	// informational only: the advancer handles this case safely and
	// never returns it as a failure.
	ErrDegenerateSegment = errors.New("guidance: degenerate zero-length segment")
)
