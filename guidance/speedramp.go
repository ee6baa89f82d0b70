package guidance

// SetSpeedXY sets the horizontal target speed (cm/s), floored at
// WPNAVWPSpeedMin, and flags the leash for recalculation (§4.4).
func (c *Core) SetSpeedXY(speedCMS float64) {
	if speedCMS < WPNAVWPSpeedMin {
		speedCMS = WPNAVWPSpeedMin
	}
	c.params.WPSpeedCMS = speedCMS
	c.wpDesiredSpeedXYCMS = speedCMS
	c.posCtrl.SetMaxSpeedXY(speedCMS)
	c.flags.recalcWPLeash = true
}

// SetSpeedUpXY sets the climb speed cap (cm/s, positive).
func (c *Core) SetSpeedUpXY(speedUpCMS float64) {
	if speedUpCMS < MinWPSpeedUpCMS {
		speedUpCMS = MinWPSpeedUpCMS
	}
	c.params.WPSpeedUpCMS = speedUpCMS
	c.posCtrl.SetMaxSpeedZ(-c.params.WPSpeedDownCMS, speedUpCMS)
	c.flags.recalcWPLeash = true
}

// SetSpeedDownXY sets the descent speed cap (cm/s, accepted as a positive
// magnitude; the sign convention of down-speed is owned by the position
// controller).
func (c *Core) SetSpeedDownXY(speedDownCMS float64) {
	if speedDownCMS < MinWPSpeedDownCMS {
		speedDownCMS = MinWPSpeedDownCMS
	}
	c.params.WPSpeedDownCMS = speedDownCMS
	c.posCtrl.SetMaxSpeedZ(-speedDownCMS, c.params.WPSpeedUpCMS)
	c.flags.recalcWPLeash = true
}

// wpSpeedUpdate nudges the position controller's max_speed_xy cap toward
// wp_desired_speed_xy_cms by at most wp_accel_cmss*dt per tick, per
// AC_WPNav::wp_speed_update. This only moves the speed *cap* the advancer
// clamps against; the per-tick command speed itself
// (limited_speed_xy_cms) is built up independently inside
// AdvanceWPTargetAlongTrack's own accel-ramp (§4.5 steps 9-12).
func (c *Core) wpSpeedUpdate(dt float64) {
	currMaxSpeedXY := c.posCtrl.GetMaxSpeedXY()
	if c.wpDesiredSpeedXYCMS == currMaxSpeedXY {
		return
	}

	if c.wpDesiredSpeedXYCMS > currMaxSpeedXY {
		currMaxSpeedXY += c.params.WPAccelCMSS * dt
		if currMaxSpeedXY > c.wpDesiredSpeedXYCMS {
			currMaxSpeedXY = c.wpDesiredSpeedXYCMS
		}
	} else {
		currMaxSpeedXY -= c.params.WPAccelCMSS * dt
		if currMaxSpeedXY < c.wpDesiredSpeedXYCMS {
			currMaxSpeedXY = c.wpDesiredSpeedXYCMS
		}
	}

	c.posCtrl.SetMaxSpeedXY(currMaxSpeedXY)
	c.flags.recalcWPLeash = true
}
