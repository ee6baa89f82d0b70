package guidance

import "math"

// SetWPOriginAndDestination starts a fresh straight-line segment between
// two explicit NEU points, per AC_WPNav::set_wp_origin_and_destination.
// terrainAlt marks both points as terrain-relative rather than
// EKF-origin-relative (§4.1). Returns false, leaving all segment state
// untouched, if terrainAlt is set and no terrain offset is available for
// the origin (§7).
func (c *Core) SetWPOriginAndDestination(origin, destination Vec3, terrainAlt bool) bool {
	posDelta := destination.Sub(origin)
	trackLength := posDelta.Length()
	trackLengthXY := posDelta.LengthXY()

	var posDeltaUnit Vec3
	if IsPositive(trackLength) {
		posDeltaUnit = posDelta.Scale(1.0 / trackLength)
	}

	var originTerrOffset float64
	if terrainAlt {
		var ok bool
		originTerrOffset, ok = c.getTerrainOffset()
		if !ok {
			return false
		}
	}

	c.origin = origin
	c.destination = destination
	c.terrainAlt = terrainAlt
	c.trackLength = trackLength
	c.trackLengthXY = trackLengthXY
	c.posDeltaUnit = posDeltaUnit

	c.calculateLeashLength()

	c.posCtrl.SetPosTarget(origin.WithZ(origin.Z + originTerrOffset))
	c.trackDesired = 0
	c.trackErrorXY = 0

	c.flags.reachedDestination = false
	c.flags.fastWaypoint = false
	c.flags.slowingDown = false
	c.flags.newWPDestination = true
	c.flags.wpYawSet = false
	c.flags.segment = SegmentStraight

	// initialise the limited speed to the current speed along the track
	currVel := c.inertial.Velocity()
	speedAlongTrack := currVel.Dot(c.posDeltaUnit)
	c.limitedSpeedXYCMS = Constrain(speedAlongTrack, 0, c.posCtrl.GetMaxSpeedXY())

	return true
}

// SetWPDestination starts a new straight-line segment to destination,
// choosing the origin the way AC_WPNav::set_wp_destination does: the
// controller's current position target when a segment is already
// in-flight (the core was updated within the last second), or the
// position controller's stopping point when starting fresh (§4.1, I1).
func (c *Core) SetWPDestination(destination Vec3, terrainAlt bool) bool {
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

	return c.SetWPOriginAndDestination(origin, destination, terrainAlt)
}

// ShiftWPOriginToCurrentPos re-bases the active straight segment onto the
// vehicle's current position, per AC_WPNav::shift_wp_origin_to_current_pos:
// origin and destination are both translated by the offset between the
// vehicle and the position target, the position target is moved onto the
// vehicle and the Z feedforward is frozen. A no-op once the target has
// started moving along the track (track_desired > 0), and on spline
// segments.
func (c *Core) ShiftWPOriginToCurrentPos() {
	if c.flags.segment != SegmentStraight || c.trackDesired > 0 {
		return
	}
	curr := c.inertial.Position()
	posDiff := curr.Sub(c.posCtrl.GetPosTarget())
	c.origin = c.origin.Add(posDiff)
	c.destination = c.destination.Add(posDiff)
	c.posCtrl.SetPosTarget(curr)
	c.posCtrl.FreezeFFZ()
}

// AdvanceWPTargetAlongTrack advances the straight-segment intermediate
// target by one tick, per AC_WPNav::advance_wp_target_along_track. It
// builds limited_speed_xy_cms up under track_accel (steps 9-12), clamps
// the advance to the leash so the target never outruns the vehicle by
// more than track_leash_length, and marks reached_destination once
// track_length has been consumed (fast waypoints) or the vehicle is also
// within wp_radius_cm of the destination (normal waypoints, step 14).
func (c *Core) AdvanceWPTargetAlongTrack(dt float64) bool {
	curr := c.inertial.Position()

	var terrOffset float64
	if c.terrainAlt {
		var ok bool
		terrOffset, ok = c.getTerrainOffset()
		if !ok {
			return false
		}
	}

	currDelta := curr.WithZ(curr.Z - terrOffset).Sub(c.origin)
	trackCovered := currDelta.Dot(c.posDeltaUnit)
	trackCoveredPos := c.posDeltaUnit.Scale(trackCovered)
	trackErrorVec := currDelta.Sub(trackCoveredPos)
	c.trackErrorXY = trackErrorVec.LengthXY()
	trackErrorZ := math.Abs(trackErrorVec.Z)

	leashZ := c.posCtrl.GetLeashDownZ()
	if trackErrorVec.Z >= 0 {
		leashZ = c.posCtrl.GetLeashUpZ()
	}
	leashXY := c.posCtrl.GetLeashXY()

	trackErrorMaxAbs := math.Max(
		c.trackLeashLength*trackErrorZ/leashZ,
		c.trackLeashLength*c.trackErrorXY/leashXY,
	)
	trackLeashLengthAbs := math.Abs(c.trackLeashLength)
	trackLeashSlack := 0.0
	if trackLeashLengthAbs > trackErrorMaxAbs {
		trackLeashSlack = SafeSqrt(c.trackLeashLength*c.trackLeashLength - trackErrorMaxAbs*trackErrorMaxAbs)
	}
	trackDesiredMax := trackCovered + trackLeashSlack

	reachedLeashLimit := c.trackDesired > trackDesiredMax

	currVel := c.inertial.Velocity()
	speedAlongTrack := currVel.Dot(c.posDeltaUnit)

	linearVelocity := c.posCtrl.GetMaxSpeedXY()
	if kP := c.posCtrl.GetPosXYPkP(); IsPositive(kP) {
		linearVelocity = c.trackAccel / kP
	}

	if speedAlongTrack < -linearVelocity {
		// travelling fast in the opposite direction of travel to the
		// waypoint: do not move the intermediate point.
		c.limitedSpeedXYCMS = 0
	} else {
		if dt > 0 && !reachedLeashLimit {
			c.limitedSpeedXYCMS += 2.0 * c.trackAccel * dt
		}
		c.limitedSpeedXYCMS = Constrain(c.limitedSpeedXYCMS, 0, c.trackSpeed)

		if !c.flags.fastWaypoint {
			distToDest := c.trackLength - c.trackDesired
			if !c.flags.slowingDown && distToDest <= c.slowDownDist {
				c.flags.slowingDown = true
			}
			if c.flags.slowingDown {
				c.limitedSpeedXYCMS = math.Min(c.limitedSpeedXYCMS, getSlowDownSpeed(distToDest, c.trackAccel))
			}
		}

		if math.Abs(speedAlongTrack) < linearVelocity {
			c.limitedSpeedXYCMS = Constrain(c.limitedSpeedXYCMS, speedAlongTrack-linearVelocity, speedAlongTrack+linearVelocity)
		}
	}

	if !reachedLeashLimit {
		c.trackDesired += c.limitedSpeedXYCMS * dt

		if c.trackDesired > trackDesiredMax {
			c.trackDesired = trackDesiredMax
			c.limitedSpeedXYCMS -= 2.0 * c.trackAccel * dt
			if c.limitedSpeedXYCMS < 0 {
				c.limitedSpeedXYCMS = 0
			}
		}
	}

	if !c.flags.fastWaypoint {
		c.trackDesired = Constrain(c.trackDesired, 0, c.trackLength)
	} else {
		c.trackDesired = Constrain(c.trackDesired, 0, c.trackLength+WPNAVWPFastOvershootMax)
	}

	target := c.origin.Add(c.posDeltaUnit.Scale(c.trackDesired))
	target.Z += terrOffset
	c.posCtrl.SetPosTarget(target)

	if !c.flags.reachedDestination && c.trackDesired >= c.trackLength {
		if c.flags.fastWaypoint {
			c.flags.reachedDestination = true
		} else {
			distToDest := curr.WithZ(curr.Z - terrOffset).Sub(c.destination)
			if distToDest.Length() <= c.params.WPRadiusCM {
				c.flags.reachedDestination = true
			}
		}
	}

	c.updateYaw(target, curr)
	c.diag.observe(c.trackErrorXY)
	return true
}

// updateYaw applies §4.5 step 15: yaw only tracks the advancing target
// once the segment is at least WPNAVYawDistMin long horizontally. Below a
// short leash it points straight along the origin-to-destination bearing;
// otherwise it points at the leashed target once that target has drifted
// far enough ahead of the vehicle to give a meaningful bearing.
func (c *Core) updateYaw(target, curr Vec3) {
	if c.trackLengthXY < WPNAVYawDistMin {
		return
	}
	if c.posCtrl.GetLeashXY() < WPNAVYawDistMin {
		c.setYawCD(BearingCD(c.origin, c.destination))
		return
	}
	horizLeashXY := Vec3{X: target.X - curr.X, Y: target.Y - curr.Y}
	threshold := math.Min(WPNAVYawDistMin, c.posCtrl.GetLeashXY()*WPNAVYawLeashPctMin)
	if horizLeashXY.Length() > threshold {
		c.setYawCD(RadiansToCentiDegrees(math.Atan2(horizLeashXY.Y, horizLeashXY.X)))
	}
}
