package guidance

import (
	"math"

	"gonum.org/v1/gonum/mat"
)

// hermiteBasis is the standard cubic Hermite basis matrix mapping
// [P0; V0; P1; V1] to polynomial coefficients [a0; a1; a2; a3] such that
// p(t) = a0 + a1*t + a2*t^2 + a3*t^3, per
// AC_WPNav::update_spline_solution.
var hermiteBasis = mat.NewDense(4, 4, []float64{
	1, 0, 0, 0,
	0, 1, 0, 0,
	-3, -2, 3, -1,
	2, 1, -2, 1,
})

// SplineOverrunFraction bounds how far a persistently slow vehicle can
// carry spline_time over into the next segment's start (§4.6's "1.1"
// constant), applied only at the next segment's setup, never during this
// segment's own per-tick advance.
const SplineOverrunFraction = 1.1

// SetSplineDestination starts (or continues into) a spline segment to
// destination, choosing the origin the way AC_WPNav::set_spline_destination
// does: the controller's current position target when a segment is
// already in-flight, or the position controller's stopping point when
// starting fresh. stoppedAtStart, endType and nextDestination describe the
// boundary-velocity policy and are forwarded to
// SetSplineOriginAndDestination unchanged (§4.6).
func (c *Core) SetSplineDestination(destination Vec3, terrainAlt bool, stoppedAtStart bool, endType SplineEndType, nextDestination Vec3) bool {
	var origin Vec3
	if c.recentlyActive() {
		origin = c.posCtrl.GetPosTarget()
	} else {
		xy := c.posCtrl.GetStoppingPointXY()
		z := c.posCtrl.GetStoppingPointZ()
		origin = Vec3{X: xy.X, Y: xy.Y, Z: z.Z}
	}

	if terrainAlt {
		offset, ok := c.getTerrainOffset()
		if !ok {
			return false
		}
		origin.Z -= offset
	}

	return c.SetSplineOriginAndDestination(origin, destination, terrainAlt, stoppedAtStart, endType, nextDestination)
}

// SetSplineOriginAndDestination starts a spline segment between two
// explicit NEU points, deriving both boundary velocities from the
// segment's start/end context per AC_WPNav::set_spline_origin_and_destination
// — the hardest part of the controller (§4.6):
//
// Start velocity: zero (scaled toward the destination by dt) if
// stoppedAtStart or there is no live previous segment to continue from;
// the previous straight segment's own (origin, destination) vector if the
// previous segment was SEGMENT_STRAIGHT (carrying the vehicle straight
// through this segment's origin); or the previous spline segment's
// destination velocity, carried over with its overrun fraction, if the
// previous segment was itself a spline.
//
// End velocity, chosen by endType, which also sets fast_waypoint: STOP
// brings the vehicle to a halt at destination; STRAIGHT aims the tangent
// at the next leg's straight destination and marks the waypoint fast;
// SPLINE aims it parallel to origin->nextDestination and also marks it
// fast, so the vehicle flies through without stopping.
//
// Both boundary velocities are then scaled down together if their
// combined length would overshoot the segment's own length by more than
// 4x, to bound how far a short next leg can pull the curve past the
// waypoint.
func (c *Core) SetSplineOriginAndDestination(origin, destination Vec3, terrainAlt bool, stoppedAtStart bool, endType SplineEndType, nextDestination Vec3) bool {
	prevSegmentExists := c.flags.reachedDestination && c.recentlyActive()
	dt := c.posCtrl.GetDt()

	if c.params.WPAccelCMSS <= 0 {
		c.params.WPAccelCMSS = DefaultWPAccelCMSS
	}

	var originVel Vec3
	switch {
	case stoppedAtStart || !prevSegmentExists:
		originVel = destination.Sub(origin).Scale(dt)
		c.splineTime = 0
		c.splineVelScaler = 0
	case c.flags.segment == SegmentStraight:
		// previous segment was straight: the vehicle flies straight
		// through this segment's origin before beginning its spline
		// path, using the previous segment's own endpoints.
		originVel = c.destination.Sub(c.origin)
		c.splineTime = 0
		c.splineVelScaler = c.posCtrl.GetVelTarget().Length()
	default:
		// previous segment was itself a spline: reuse its destination
		// velocity and carry any overrun into this segment's start.
		originVel = c.splineDestinationVel
		if c.splineTime > 1.0 && c.splineTime < SplineOverrunFraction {
			c.splineTime -= 1.0
		} else {
			c.splineTime = 0
		}
		// spline_vel_scaler is left as it was at the end of the
		// previous segment.
	}

	var destVel Vec3
	switch endType {
	case SplineEndStop:
		destVel = destination.Sub(origin).Scale(dt)
		c.flags.fastWaypoint = false
	case SplineEndStraight:
		destVel = nextDestination.Sub(destination)
		c.flags.fastWaypoint = true
	case SplineEndSpline:
		destVel = nextDestination.Sub(origin)
		c.flags.fastWaypoint = true
	}

	velLen := originVel.Length() + destVel.Length()
	posLen := destination.Sub(origin).Length() * 4.0
	if velLen > posLen && IsPositive(velLen) {
		scaling := posLen / velLen
		originVel = originVel.Scale(scaling)
		destVel = destVel.Scale(scaling)
	}

	c.splineOriginVel = originVel
	c.splineDestinationVel = destVel
	c.solveHermite(origin, destination, originVel, destVel)

	c.origin = origin
	c.destination = destination
	c.terrainAlt = terrainAlt

	c.slowDownDist = calcSlowDownDistance(c.posCtrl.GetMaxSpeedXY(), c.params.WPAccelCMSS)

	var terrOffset float64
	if terrainAlt {
		var ok bool
		terrOffset, ok = c.getTerrainOffset()
		if !ok {
			return false
		}
	}

	c.posCtrl.SetPosTarget(origin.WithZ(origin.Z + terrOffset))
	c.flags.reachedDestination = false
	c.flags.segment = SegmentSpline
	c.flags.newWPDestination = true
	c.flags.wpYawSet = false

	posDelta := destination.Sub(origin)
	c.trackLengthXY = posDelta.LengthXY()

	return true
}

// solveHermite resolves the per-axis cubic coefficients from the
// segment's boundary positions and velocities via a 4x4 matrix multiply,
// one gonum/mat.Dense solve shared across all three axes.
func (c *Core) solveHermite(origin, destination, originVel, destVel Vec3) {
	knowns := mat.NewDense(4, 3, []float64{
		origin.X, origin.Y, origin.Z,
		originVel.X, originVel.Y, originVel.Z,
		destination.X, destination.Y, destination.Z,
		destVel.X, destVel.Y, destVel.Z,
	})

	var coeffs mat.Dense
	coeffs.Mul(hermiteBasis, knowns)

	for i := 0; i < 4; i++ {
		c.hermite[i] = Vec3{X: coeffs.At(i, 0), Y: coeffs.At(i, 1), Z: coeffs.At(i, 2)}
	}
}

// calcSplinePosVel evaluates the segment's Hermite polynomial and its
// derivative at parametric time t, per AC_WPNav::calc_spline_pos_vel. The
// returned velocity is in units of position per unit of parametric time,
// not per second; the caller scales it by spline_time_scale to get cm/s.
func (c *Core) calcSplinePosVel(t float64) (pos, vel Vec3) {
	a0, a1, a2, a3 := c.hermite[0], c.hermite[1], c.hermite[2], c.hermite[3]
	t2 := t * t
	t3 := t2 * t

	pos = a0.Add(a1.Scale(t)).Add(a2.Scale(t2)).Add(a3.Scale(t3))
	vel = a1.Add(a2.Scale(2 * t)).Add(a3.Scale(3 * t2))
	return pos, vel
}

// AdvanceSplineTargetAlongTrack advances spline_time by one tick and
// re-derives the position target, per
// AC_WPNav::advance_spline_target_along_track. Unlike the straight
// advancer, pos_delta_unit and the leash geometry are recomputed every
// tick from the instantaneous spline-velocity direction, and
// spline_vel_scaler is its own accel-limited/slow-down command speed,
// braking on a safe_sqrt(dist*2*accel) curve distinct from the shared
// get_slow_down_speed used by the straight segment.
func (c *Core) AdvanceSplineTargetAlongTrack(dt float64) bool {
	if c.flags.reachedDestination {
		return true
	}

	targetPos, targetVel := c.calcSplinePosVel(c.splineTime)
	targetVelLength := targetVel.Length()
	if IsZero(targetVelLength) {
		c.flags.reachedDestination = true
		return true
	}

	c.posDeltaUnit = targetVel.Scale(1.0 / targetVelLength)
	c.calculateLeashLength()

	curr := c.inertial.Position()

	var terrOffset float64
	if c.terrainAlt {
		var ok bool
		terrOffset, ok = c.getTerrainOffset()
		if !ok {
			return false
		}
	}

	trackErrorVec := curr.Sub(targetPos)
	trackErrorVec.Z -= terrOffset
	c.trackErrorXY = trackErrorVec.LengthXY()
	trackErrorZ := math.Abs(trackErrorVec.Z)

	leashXY := c.posCtrl.GetLeashXY()
	var leashZ float64
	if trackErrorVec.Z >= 0 {
		leashZ = c.posCtrl.GetLeashUpZ()
	} else {
		leashZ = c.posCtrl.GetLeashDownZ()
	}

	trackLeashSlack := math.Min(
		c.trackLeashLength*(leashZ-trackErrorZ)/leashZ,
		c.trackLeashLength*(leashXY-c.trackErrorXY)/leashXY,
	)
	if trackLeashSlack < 0 {
		trackLeashSlack = 0
	}

	splineDistToWP := c.destination.Sub(targetPos).Length()
	velLimit := c.posCtrl.GetMaxSpeedXY()
	if !IsZero(dt) {
		velLimit = math.Min(velLimit, trackLeashSlack/dt)
	}

	if !c.flags.fastWaypoint && splineDistToWP < c.slowDownDist {
		c.splineVelScaler = SafeSqrt(splineDistToWP * 2.0 * c.params.WPAccelCMSS)
	} else if c.splineVelScaler < velLimit {
		c.splineVelScaler += c.params.WPAccelCMSS * dt
	}
	c.splineVelScaler = Constrain(c.splineVelScaler, 0, velLimit)

	c.splineTimeScale = c.splineVelScaler / targetVelLength

	targetPos.Z += terrOffset
	c.posCtrl.SetPosTarget(targetPos)

	c.updateSplineYaw(targetVel, trackErrorVec)

	c.splineTime += c.splineTimeScale * dt
	if c.splineTime >= 1.0 {
		c.flags.reachedDestination = true
	}

	c.diag.observe(c.trackErrorXY)
	return true
}

// updateSplineYaw applies the spline half of §4.5 step 15 (AC_WPNav lines
// 902-916): below a short leash it points along the spline's own velocity
// direction; otherwise it points back along -track_error once the
// tracking error is large enough to matter. The reversed sign on
// track_error is carried over unchanged from AC_WPNav, whose own comment
// flags it without re-deriving a justification ("To-Do: why is
// track_error sign reversed?").
func (c *Core) updateSplineYaw(targetVel, trackErrorVec Vec3) {
	if c.trackLengthXY < WPNAVYawDistMin {
		return
	}
	if c.posCtrl.GetLeashXY() < WPNAVYawDistMin {
		if !IsZero(targetVel.X) && !IsZero(targetVel.Y) {
			c.setYawCD(RadiansToCentiDegrees(math.Atan2(targetVel.Y, targetVel.X)))
		}
		return
	}
	trackErrorXYLength := SafeSqrt(trackErrorVec.X*trackErrorVec.X + trackErrorVec.Y*trackErrorVec.Y)
	threshold := math.Min(WPNAVYawDistMin, c.posCtrl.GetLeashXY()*WPNAVYawLeashPctMin)
	if trackErrorXYLength > threshold {
		c.setYawCD(RadiansToCentiDegrees(math.Atan2(-trackErrorVec.Y, -trackErrorVec.X)))
	}
}
