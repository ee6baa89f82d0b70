// Package poscontrol provides a reference guidance.PositionController: a
// simplified P-plus-feedforward position loop, grounded on the
// config-struct / state-struct / Update() shape of the pack's
// feedforward+PID controller rather than on any file in the teacher repo
// itself, since the teacher's domain (indoor positioning) has no analog
// outer position-control loop.
package poscontrol

import (
	"math"

	"wpnavcore/guidance"
)

// Config holds the tunable gains and limits for a Controller, mirroring
// AC_PosControl's P-gain and per-axis speed/accel parameter set.
type Config struct {
	PosXYKp float64 `json:"pos_xy_kp"`
	PosZKp  float64 `json:"pos_z_kp"`
	DtS     float64 `json:"dt_s"`
}

// DefaultConfig returns reasonable gains for a 100Hz control loop.
func DefaultConfig() Config {
	return Config{PosXYKp: 1.0, PosZKp: 1.0, DtS: 0.01}
}

// Controller is a minimal position-control loop satisfying
// guidance.PositionController: it tracks position/velocity targets the
// core sets and derives stopping points and leash lengths from its own
// speed/accel limits, the way AC_PosControl does for AC_WPNav, but
// without AC_PosControl's underlying attitude-rate cascades.
type Controller struct {
	cfg Config

	inertial guidance.InertialSource

	maxSpeedXY, maxAccelXY               float64
	maxSpeedUp, maxSpeedDown, maxAccelZ  float64
	leashXY, leashUpZ, leashDownZ        float64

	posTarget    guidance.Vec3
	velTarget    guidance.Vec3
	desiredVelXY guidance.Vec3
	desiredAccelXY guidance.Vec3
	ffFrozen     bool
}

// New returns a Controller that reads current position/velocity from
// inertial when computing stopping points.
func New(inertial guidance.InertialSource, cfg Config) *Controller {
	if cfg.DtS <= 0 {
		cfg.DtS = 0.01
	}
	return &Controller{cfg: cfg, inertial: inertial}
}

func (c *Controller) SetMaxSpeedXY(cms float64)  { c.maxSpeedXY = cms }
func (c *Controller) GetMaxSpeedXY() float64     { return c.maxSpeedXY }
func (c *Controller) SetMaxAccelXY(cmss float64) { c.maxAccelXY = cmss }

func (c *Controller) SetMaxSpeedZ(downCMS, upCMS float64) {
	c.maxSpeedDown = -downCMS
	c.maxSpeedUp = upCMS
}
func (c *Controller) GetMaxSpeedUp() float64    { return c.maxSpeedUp }
func (c *Controller) GetMaxSpeedDown() float64  { return c.maxSpeedDown }
func (c *Controller) SetMaxAccelZ(cmss float64) { c.maxAccelZ = cmss }

func (c *Controller) GetLeashXY() float64   { return c.leashXY }
func (c *Controller) GetLeashUpZ() float64  { return c.leashUpZ }
func (c *Controller) GetLeashDownZ() float64 { return c.leashDownZ }

// CalcLeashLengthXY recomputes the horizontal leash from the current
// speed/accel limits and kP, per AC_PosControl::calc_leash_length.
func (c *Controller) CalcLeashLengthXY() {
	c.leashXY = calcLeashLength(c.maxSpeedXY, c.maxAccelXY, c.cfg.PosXYKp)
}

// CalcLeashLengthZ recomputes the vertical leashes independently for the
// climb and descent speed caps.
func (c *Controller) CalcLeashLengthZ() {
	c.leashUpZ = calcLeashLength(c.maxSpeedUp, c.maxAccelZ, c.cfg.PosZKp)
	c.leashDownZ = calcLeashLength(-c.maxSpeedDown, c.maxAccelZ, c.cfg.PosZKp)
}

func calcLeashLength(speedCMS, accelCMSS, kP float64) float64 {
	const leashMin = 100.0
	speedCMS = math.Abs(speedCMS)
	if accelCMSS <= 0 || kP <= 0 {
		return leashMin
	}
	var leash float64
	if speedCMS <= accelCMSS/kP {
		leash = speedCMS / kP
	} else {
		leash = accelCMSS/(2.0*kP*kP) + (speedCMS*speedCMS)/(2.0*accelCMSS)
	}
	if leash < leashMin {
		leash = leashMin
	}
	return leash
}

func (c *Controller) SetPosTarget(p guidance.Vec3) { c.posTarget = p }
func (c *Controller) GetPosTarget() guidance.Vec3  { return c.posTarget }
func (c *Controller) GetVelTarget() guidance.Vec3  { return c.velTarget }

func (c *Controller) SetDesiredVelocityXY(vx, vy float64) {
	c.desiredVelXY = guidance.Vec3{X: vx, Y: vy}
}
func (c *Controller) SetDesiredAccelXY(ax, ay float64) {
	c.desiredAccelXY = guidance.Vec3{X: ax, Y: ay}
}
func (c *Controller) ClearDesiredVelocityFFZ() { c.velTarget.Z = 0 }
func (c *Controller) FreezeFFZ()               { c.ffFrozen = true }

// InitXYController clears any feedforward velocity/accel left over from a
// previous segment so a fresh one starts from rest relative to the
// target, per AC_PosControl::init_xy_controller.
func (c *Controller) InitXYController() {
	c.desiredVelXY = guidance.Vec3{}
	c.desiredAccelXY = guidance.Vec3{}
}

// UpdateXYController advances the internal velocity target toward the
// position error scaled by PosXYKp, clamped to maxSpeedXY, and adds the
// feedforward velocity set by the core — a P+FF loop standing in for
// AC_PosControl's full sqrt-controller cascade.
func (c *Controller) UpdateXYController() {
	if c.inertial == nil {
		return
	}
	curr := c.inertial.Position()
	errXY := guidance.Vec3{X: c.posTarget.X - curr.X, Y: c.posTarget.Y - curr.Y}

	velXY := errXY.Scale(c.cfg.PosXYKp).Add(c.desiredVelXY)
	speed := velXY.LengthXY()
	if speed > c.maxSpeedXY && speed > 0 {
		velXY = velXY.Scale(c.maxSpeedXY / speed)
	}

	c.velTarget.X = velXY.X
	c.velTarget.Y = velXY.Y
}

func (c *Controller) GetPosXYPkP() float64 { return c.cfg.PosXYKp }
func (c *Controller) GetDt() float64       { return c.cfg.DtS }

// GetStoppingPointXY returns curr + v^2/(2a) projected along the current
// horizontal velocity, per AC_PosControl::get_stopping_point_xy.
func (c *Controller) GetStoppingPointXY() guidance.Vec3 {
	if c.inertial == nil {
		return c.posTarget
	}
	curr := c.inertial.Position()
	vel := c.inertial.Velocity()
	speed := vel.LengthXY()
	if speed <= 0 || c.maxAccelXY <= 0 {
		return curr
	}
	dist := speed * speed / (2.0 * c.maxAccelXY)
	dir := guidance.Vec3{X: vel.X, Y: vel.Y}.Normalized()
	return curr.Add(dir.Scale(dist))
}

// GetStoppingPointZ returns the equivalent vertical stopping point.
func (c *Controller) GetStoppingPointZ() guidance.Vec3 {
	if c.inertial == nil {
		return c.posTarget
	}
	curr := c.inertial.Position()
	vel := c.inertial.Velocity()
	if c.maxAccelZ <= 0 {
		return curr
	}
	dist := vel.Z * math.Abs(vel.Z) / (2.0 * c.maxAccelZ)
	return guidance.Vec3{X: curr.X, Y: curr.Y, Z: curr.Z + dist}
}
