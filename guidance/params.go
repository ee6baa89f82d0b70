package guidance

import "math"

// Defaults and range limits for the §3 parameter surface, mirrored from
// AC_WPNav's var_info table (WPNAV_SPEED, WPNAV_RADIUS, ...).
const (
	DefaultWPSpeedCMS     = 500.0
	MinWPSpeedCMS         = 20.0
	MaxWPSpeedCMS         = 2000.0
	DefaultWPRadiusCM     = 200.0
	MinWPRadiusCM         = 5.0
	DefaultWPSpeedUpCMS   = 250.0
	MinWPSpeedUpCMS       = 10.0
	MaxWPSpeedUpCMS       = 1000.0
	DefaultWPSpeedDownCMS = 150.0
	MinWPSpeedDownCMS     = 10.0
	MaxWPSpeedDownCMS     = 500.0
	DefaultWPAccelCMSS    = 100.0
	MinWPAccelCMSS        = 50.0
	MaxWPAccelCMSS        = 500.0
	DefaultWPAccelZCMSS   = 100.0
	MinWPAccelZCMSS       = 50.0
	MaxWPAccelZCMSS       = 500.0
	DefaultRangefinderUse = true

	// WPNAVWPSpeedMin is the floor enforced by SetSpeedXY (§4.4).
	WPNAVWPSpeedMin = 20.0

	// WPNAVWPFastOvershootMax bounds how far a fast waypoint's target may
	// overshoot the track length (§6).
	WPNAVWPFastOvershootMax = 200.0

	// WPNAVYawDistMin is the horizontal track length below which yaw is
	// not updated (§4.5 step 15, §6).
	WPNAVYawDistMin = 200.0

	// WPNAVYawLeashPctMin scales the leash when deciding the yaw-update
	// deadband (§4.5 step 15).
	WPNAVYawLeashPctMin = 0.5

	// WPNAVWPTrackSpeedMin is the floor returned by getSlowDownSpeed (§4.3).
	WPNAVWPTrackSpeedMin = 50.0

	// WPNAVLeashLengthMin is the floor for track_leash_length (§4.3, I6).
	WPNAVLeashLengthMin = 100.0

	gravityMSS = 9.80665
)

// Params is the persistent, user-tunable parameter surface (§3). New copies
// the caller's values (e.g. from paramstore.Load) into the core; the core
// then works from that copy, as changed by its SetSpeed* setters, and never
// reads the parameter store itself (§9).
type Params struct {
	WPSpeedCMS     float64
	WPRadiusCM     float64
	WPSpeedUpCMS   float64
	WPSpeedDownCMS float64
	WPAccelCMSS    float64
	WPAccelZCMSS   float64
	RangefinderUse bool
}

// DefaultParams returns the factory-default parameter set.
func DefaultParams() Params {
	return Params{
		WPSpeedCMS:     DefaultWPSpeedCMS,
		WPRadiusCM:     DefaultWPRadiusCM,
		WPSpeedUpCMS:   DefaultWPSpeedUpCMS,
		WPSpeedDownCMS: DefaultWPSpeedDownCMS,
		WPAccelCMSS:    DefaultWPAccelCMSS,
		WPAccelZCMSS:   DefaultWPAccelZCMSS,
		RangefinderUse: DefaultRangefinderUse,
	}
}

// sanitize clamps wp_accel_cmss to g*tan(max_lean_angle) and floors
// wp_radius_cm, mirroring the AC_WPNav constructor (lines 94-96) rather
// than only wp_and_spline_init.
func (p *Params) sanitize(maxLeanAngleRad float64) {
	maxAccel := gravityMSS * 100.0 * math.Tan(maxLeanAngleRad)
	if p.WPAccelCMSS > maxAccel {
		p.WPAccelCMSS = maxAccel
	}
	if p.WPAccelCMSS <= 0 {
		p.WPAccelCMSS = DefaultWPAccelCMSS
	}
	if p.WPRadiusCM < MinWPRadiusCM {
		p.WPRadiusCM = MinWPRadiusCM
	}
}
