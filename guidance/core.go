package guidance

import "time"

// SegmentType distinguishes the two track shapes the advancer can run.
type SegmentType int

const (
	SegmentStraight SegmentType = iota
	SegmentSpline
)

// SplineEndType controls the boundary velocity the spline builder solves
// for at the destination end of a segment (§4.6).
type SplineEndType int

const (
	SplineEndStop SplineEndType = iota
	SplineEndStraight
	SplineEndSpline
)

// flags mirrors AC_WPNav's _flags bitset (§3) as plain bools, the shape the
// teacher and the rest of the pack use for small state bundles (e.g.
// fusion.EKF's adaptive/usedMea fields) rather than a packed bitfield.
type flags struct {
	reachedDestination bool
	fastWaypoint       bool
	slowingDown        bool
	recalcWPLeash      bool
	newWPDestination   bool
	wpYawSet           bool
	segment            SegmentType
}

// Core is the waypoint-guidance track-advancement engine (C1-C7). It is
// driven exclusively through its exported methods at >=100Hz by a caller
// that owns it exclusively; see spec §5 for the concurrency model.
type Core struct {
	inertial InertialSource
	attitude AttitudeSource
	terrain  TerrainSource
	posCtrl  PositionController

	params Params

	rangefinder RangefinderState

	// segment geometry, shared by straight and spline segments
	origin       Vec3
	destination  Vec3
	terrainAlt   bool
	posDeltaUnit Vec3

	trackLength      float64
	trackLengthXY    float64
	trackAccel       float64
	trackSpeed       float64
	trackLeashLength float64
	trackErrorXY     float64
	slowDownDist     float64

	// straight-segment-only state
	trackDesired      float64
	limitedSpeedXYCMS float64

	// spline-only state
	hermite              [4]Vec3
	splineOriginVel      Vec3
	splineDestinationVel Vec3
	splineTime           float64
	splineVelScaler      float64
	splineTimeScale      float64

	wpDesiredSpeedXYCMS float64

	yawCD float64
	flags flags

	hasLastUpdate bool
	lastUpdate    time.Time
	now           func() time.Time

	diag diagnostics
}

// New constructs a Core bound to its environment collaborators. Parameters
// are sanitized once here (clamped to the attitude controller's lean-angle
// limit) mirroring AC_WPNav's constructor, not only wp_and_spline_init.
func New(inertial InertialSource, attitude AttitudeSource, terrain TerrainSource, posCtrl PositionController, params Params) *Core {
	params.sanitize(attitude.MaxLeanAngleRad())
	c := &Core{
		inertial: inertial,
		attitude: attitude,
		terrain:  terrain,
		posCtrl:  posCtrl,
		params:   params,
		now:      time.Now,
	}
	c.diag = newDiagnostics(trackHealthWindow)
	return c
}

// WPAndSplineInit initialises the straight-line and spline controllers.
// Should be called once before first use; need not be called again before
// subsequent destination changes (§4.5).
func (c *Core) WPAndSplineInit() {
	if c.params.WPAccelCMSS <= 0 {
		c.params.WPAccelCMSS = DefaultWPAccelCMSS
	}

	c.posCtrl.SetDesiredAccelXY(0, 0)
	c.posCtrl.InitXYController()
	c.posCtrl.ClearDesiredVelocityFFZ()
	c.posCtrl.SetDesiredVelocityXY(0, 0)

	c.wpDesiredSpeedXYCMS = c.params.WPSpeedCMS

	c.posCtrl.SetMaxSpeedXY(c.params.WPSpeedCMS)
	c.posCtrl.SetMaxAccelXY(c.params.WPAccelCMSS)
	c.posCtrl.SetMaxSpeedZ(-c.params.WPSpeedDownCMS, c.params.WPSpeedUpCMS)
	c.posCtrl.SetMaxAccelZ(c.params.WPAccelZCMSS)
	c.posCtrl.CalcLeashLengthXY()
	c.posCtrl.CalcLeashLengthZ()

	c.flags.wpYawSet = false
}

// SetRangefinderAlt pushes a rangefinder reading into the core (§6).
func (c *Core) SetRangefinderAlt(available, healthy bool, altCM float64) {
	c.rangefinder = RangefinderState{Available: available, Healthy: healthy, AltCM: altCM}
}

// GetYaw returns the cached target yaw in centi-degrees when the advancer
// has set one this segment, else the attitude controller's current target
// (§4.7).
func (c *Core) GetYaw() float64 {
	if c.flags.wpYawSet {
		return c.yawCD
	}
	return c.attitude.CurrentTargetYawCD()
}

func (c *Core) setYawCD(cd float64) {
	c.yawCD = cd
	c.flags.wpYawSet = true
}

// ReachedDestination reports whether the active segment has completed.
func (c *Core) ReachedDestination() bool {
	return c.flags.reachedDestination
}

// SetFastWaypoint marks the active segment as fast: the intermediate
// target reaching the destination is itself sufficient for
// reached_destination, without also requiring the vehicle to be within
// wp_radius_cm of it (§4.5 step 14). Spline segments set this
// automatically from their end_type (§4.6); straight segments default to
// false and rely on a caller (typically a mission sequencer chaining
// waypoints without a pause) to opt in explicitly.
func (c *Core) SetFastWaypoint(fast bool) {
	c.flags.fastWaypoint = fast
}

// SegmentType reports which advancer is currently active.
func (c *Core) SegmentType() SegmentType {
	return c.flags.segment
}

// GetWPDistanceToDestination returns the horizontal distance, in cm, from
// the current position to the destination (independent of track state).
func (c *Core) GetWPDistanceToDestination() float64 {
	curr := c.inertial.Position()
	return (Vec3{X: c.destination.X - curr.X, Y: c.destination.Y - curr.Y}).LengthXY()
}

// GetWPBearingToDestination returns the bearing to the destination in
// centi-degrees.
func (c *Core) GetWPBearingToDestination() float64 {
	return BearingCD(c.inertial.Position(), c.destination)
}

// GetWPStoppingPointXY returns the position controller's horizontal
// stopping point.
func (c *Core) GetWPStoppingPointXY() Vec3 {
	return c.posCtrl.GetStoppingPointXY()
}

// GetWPStoppingPoint returns the position controller's full 3D stopping
// point (horizontal stop combined with vertical stop).
func (c *Core) GetWPStoppingPoint() Vec3 {
	xy := c.posCtrl.GetStoppingPointXY()
	z := c.posCtrl.GetStoppingPointZ()
	return Vec3{X: xy.X, Y: xy.Y, Z: z.Z}
}

// GetWPDestination returns the current segment's destination vector.
func (c *Core) GetWPDestination() Vec3 {
	return c.destination
}

func (c *Core) recentlyActive() bool {
	return c.hasLastUpdate && c.now().Sub(c.lastUpdate) < time.Second
}

func (c *Core) stampLastUpdate() {
	c.hasLastUpdate = true
	c.lastUpdate = c.now()
}

// UpdateWPNav drives the active straight segment by one tick: it re-applies
// the accel caps (so params can be tuned without leaving auto mode), runs
// the speed-cap ramp, advances the track, handles the new-destination
// feedforward freeze, runs the horizontal position controller, and
// recalculates the leash if it was flagged mid-tick, per
// AC_WPNav::update_wpnav. Must be called at the position controller's
// rate.
func (c *Core) UpdateWPNav() bool {
	dt := c.posCtrl.GetDt()

	c.posCtrl.SetMaxAccelXY(c.params.WPAccelCMSS)
	c.posCtrl.SetMaxAccelZ(c.params.WPAccelZCMSS)

	c.wpSpeedUpdate(dt)

	ok := c.AdvanceWPTargetAlongTrack(dt)

	if c.flags.newWPDestination {
		c.flags.newWPDestination = false
		c.posCtrl.FreezeFFZ()
	}

	c.posCtrl.UpdateXYController()
	if c.flags.recalcWPLeash {
		c.calculateLeashLength()
	}

	c.stampLastUpdate()
	return ok
}

// UpdateSpline drives the active spline segment by one tick the same way
// UpdateWPNav drives a straight one, per AC_WPNav::update_spline. It is a
// no-op (returning false) if the active segment is not a spline.
func (c *Core) UpdateSpline() bool {
	if c.flags.segment != SegmentSpline {
		return false
	}

	dt := c.posCtrl.GetDt()

	c.wpSpeedUpdate(dt)

	ok := c.AdvanceSplineTargetAlongTrack(dt)

	if c.flags.newWPDestination {
		c.flags.newWPDestination = false
		c.posCtrl.FreezeFFZ()
	}

	c.posCtrl.UpdateXYController()

	c.stampLastUpdate()
	return ok
}

// getTerrainOffset resolves the altitude offset (cm, EKF-origin-relative)
// between the EKF origin's zero and the terrain directly below the
// vehicle, per AC_WPNav.get_terrain_offset: when the rangefinder is
// available and enabled by RangefinderUse it is the only source, and an
// unhealthy reading is a failure; otherwise the terrain database with
// extrapolation is used, and no database or no data is a failure.
func (c *Core) getTerrainOffset() (float64, bool) {
	if c.rangefinder.Available && c.params.RangefinderUse {
		if c.rangefinder.Healthy {
			return c.inertial.Altitude() - c.rangefinder.AltCM, true
		}
		return 0, false
	}

	if c.terrain == nil {
		return 0, false
	}
	terrAltM, ok := c.terrain.HeightAboveTerrain(true)
	if !ok {
		return 0, false
	}
	return c.inertial.Altitude() - terrAltM*100.0, true
}
