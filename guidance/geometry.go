package guidance

import "math"

// calculateLeashLength recomputes track_accel, track_speed and
// track_leash_length for the active segment's pos_delta_unit, projecting
// the position controller's per-axis speed/leash caps onto the direction
// of travel, per AC_WPNav::calculate_wp_leash_length. It always finishes
// by recomputing slow_down_dist from the result and clearing
// recalc_wp_leash (I6, I7).
func (c *Core) calculateLeashLength() {
	uxy := c.posDeltaUnit.LengthXY()
	uz := c.posDeltaUnit.Z
	absUZ := math.Abs(uz)

	var speedZ, leashZ float64
	if uz >= 0 {
		speedZ = c.posCtrl.GetMaxSpeedUp()
		leashZ = c.posCtrl.GetLeashUpZ()
	} else {
		speedZ = math.Abs(c.posCtrl.GetMaxSpeedDown())
		leashZ = c.posCtrl.GetLeashDownZ()
	}

	switch {
	case IsZero(absUZ) && IsZero(uxy):
		c.trackAccel = 0
		c.trackSpeed = 0
		c.trackLeashLength = WPNAVLeashLengthMin
	case IsZero(uz):
		c.trackAccel = c.params.WPAccelCMSS / uxy
		c.trackSpeed = c.posCtrl.GetMaxSpeedXY() / uxy
		c.trackLeashLength = c.posCtrl.GetLeashXY() / uxy
	case IsZero(uxy):
		c.trackAccel = c.params.WPAccelZCMSS / absUZ
		c.trackSpeed = speedZ / absUZ
		c.trackLeashLength = leashZ / absUZ
	default:
		c.trackAccel = math.Min(c.params.WPAccelZCMSS/absUZ, c.params.WPAccelCMSS/uxy)
		c.trackSpeed = math.Min(speedZ/absUZ, c.posCtrl.GetMaxSpeedXY()/uxy)
		c.trackLeashLength = math.Min(leashZ/absUZ, c.posCtrl.GetLeashXY()/uxy)
	}

	c.slowDownDist = calcSlowDownDistance(c.trackSpeed, c.trackAccel)
	c.flags.recalcWPLeash = false
}

// calcSlowDownDistance returns the distance (cm) before the destination at
// which the target point should begin to slow down, assuming it is
// travelling at speedCMS under accelCMSS braking, per
// AC_WPNav::calc_slow_down_distance.
func calcSlowDownDistance(speedCMS, accelCMSS float64) float64 {
	if accelCMSS <= 0 {
		return 0
	}
	return speedCMS * speedCMS / (4.0 * accelCMSS)
}

// getSlowDownSpeed returns the target speed (cm/s) of the intermediate
// point at distToDestCM from the destination, braking at accelCMSS, per
// AC_WPNav::get_slow_down_speed. It never returns less than
// WPNAVWPTrackSpeedMin, matching the real controller's refusal to crawl
// to a full stop short of the waypoint radius.
func getSlowDownSpeed(distToDestCM, accelCMSS float64) float64 {
	if distToDestCM <= 0 {
		return WPNAVWPTrackSpeedMin
	}
	speed := SafeSqrt(distToDestCM * 4.0 * accelCMSS)
	if speed < WPNAVWPTrackSpeedMin {
		return WPNAVWPTrackSpeedMin
	}
	return speed
}
