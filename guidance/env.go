package guidance

// InertialSource is a read-only view onto the inertial-navigation estimator.
// The core samples it once per tick; it never mutates it.
type InertialSource interface {
	Position() Vec3
	Velocity() Vec3
	Altitude() float64
}

// AttitudeSource is a read-only view onto the attitude controller.
type AttitudeSource interface {
	MaxLeanAngleRad() float64
	CurrentTargetYawCD() float64
}

// RangefinderState is a snapshot of the downward rangefinder, pushed in by
// set_rangefinder_alt (§6) rather than pulled.
type RangefinderState struct {
	Available bool
	Healthy   bool
	AltCM     float64
}

// TerrainSource resolves altitude-above-terrain for the current position.
// HeightAboveTerrain returns (metres, ok); ok is false when no terrain data
// is available for the current position.
type TerrainSource interface {
	HeightAboveTerrain(extrapolate bool) (float64, bool)
}

// PositionController is the writable facade onto the outer position
// controller. The core treats it as opaque: it is driven entirely through
// this interface and its internal state is never inspected (spec §4.2).
type PositionController interface {
	SetMaxSpeedXY(cms float64)
	GetMaxSpeedXY() float64
	SetMaxAccelXY(cmss float64)

	// SetMaxSpeedZ sets the descent speed (down, negative-signed magnitude
	// accepted as a positive cm/s) and climb speed caps.
	SetMaxSpeedZ(downCMS, upCMS float64)
	GetMaxSpeedUp() float64
	GetMaxSpeedDown() float64
	SetMaxAccelZ(cmss float64)

	GetLeashXY() float64
	GetLeashUpZ() float64
	GetLeashDownZ() float64
	CalcLeashLengthXY()
	CalcLeashLengthZ()

	SetPosTarget(p Vec3)
	GetPosTarget() Vec3
	GetVelTarget() Vec3

	SetDesiredVelocityXY(vx, vy float64)
	SetDesiredAccelXY(ax, ay float64)
	ClearDesiredVelocityFFZ()
	FreezeFFZ()

	InitXYController()
	UpdateXYController()

	GetPosXYPkP() float64
	GetDt() float64

	GetStoppingPointXY() Vec3
	GetStoppingPointZ() Vec3
}
