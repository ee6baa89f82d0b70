package guidance

// fakeInertial is a fixed-position/velocity stand-in for InertialSource.
type fakeInertial struct {
	pos Vec3
	vel Vec3
	alt float64
}

func (f *fakeInertial) Position() Vec3   { return f.pos }
func (f *fakeInertial) Velocity() Vec3   { return f.vel }
func (f *fakeInertial) Altitude() float64 { return f.alt }

// fakeAttitude is a fixed-yaw stand-in for AttitudeSource.
type fakeAttitude struct {
	maxLeanRad float64
	yawCD      float64
}

func (f *fakeAttitude) MaxLeanAngleRad() float64    { return f.maxLeanRad }
func (f *fakeAttitude) CurrentTargetYawCD() float64 { return f.yawCD }

// fakeOrigin is a fixed EKF origin stand-in for OriginSource.
type fakeOrigin struct {
	loc Location
	ok  bool
}

func (f fakeOrigin) EKFOriginNEU() (Location, bool) { return f.loc, f.ok }

// fakeTerrain always reports the same height-above-terrain.
type fakeTerrain struct {
	heightM float64
	ok      bool
}

func (f *fakeTerrain) HeightAboveTerrain(extrapolate bool) (float64, bool) {
	return f.heightM, f.ok
}

// fakePosController is a minimal in-memory stand-in for PositionController
// that records what the advancer asks it to do, rather than running any
// real control law.
type fakePosController struct {
	maxSpeedXY, maxAccelXY float64
	maxSpeedUp, maxSpeedDown, maxAccelZ float64
	leashXY, leashUpZ, leashDownZ float64

	posTarget    Vec3
	velTarget    Vec3
	desiredVelXY Vec3

	kP float64
	dt float64

	stopXY, stopZ Vec3

	updateCalls int
}

func newFakePosController() *fakePosController {
	return &fakePosController{kP: 1.0, dt: 0.01}
}

func (f *fakePosController) SetMaxSpeedXY(cms float64)  { f.maxSpeedXY = cms }
func (f *fakePosController) GetMaxSpeedXY() float64     { return f.maxSpeedXY }
func (f *fakePosController) SetMaxAccelXY(cmss float64) { f.maxAccelXY = cmss }

func (f *fakePosController) SetMaxSpeedZ(downCMS, upCMS float64) {
	f.maxSpeedDown = -downCMS
	f.maxSpeedUp = upCMS
}
func (f *fakePosController) GetMaxSpeedUp() float64   { return f.maxSpeedUp }
func (f *fakePosController) GetMaxSpeedDown() float64 { return f.maxSpeedDown }
func (f *fakePosController) SetMaxAccelZ(cmss float64) { f.maxAccelZ = cmss }

func (f *fakePosController) GetLeashXY() float64 { return f.leashXY }
func (f *fakePosController) GetLeashUpZ() float64 { return f.leashUpZ }
func (f *fakePosController) GetLeashDownZ() float64 { return f.leashDownZ }
func (f *fakePosController) CalcLeashLengthXY() {
	f.leashXY = f.maxSpeedXY * f.maxSpeedXY / (2 * f.maxAccelXY)
}
func (f *fakePosController) CalcLeashLengthZ() {
	f.leashUpZ = f.maxSpeedUp * f.maxSpeedUp / (2 * f.maxAccelZ)
	f.leashDownZ = f.maxSpeedDown * f.maxSpeedDown / (2 * f.maxAccelZ)
}

func (f *fakePosController) SetPosTarget(p Vec3) { f.posTarget = p }
func (f *fakePosController) GetPosTarget() Vec3  { return f.posTarget }
func (f *fakePosController) GetVelTarget() Vec3  { return f.velTarget }

func (f *fakePosController) SetDesiredVelocityXY(vx, vy float64) {
	f.desiredVelXY = Vec3{X: vx, Y: vy}
	f.velTarget = Vec3{X: vx, Y: vy, Z: f.velTarget.Z}
}
func (f *fakePosController) SetDesiredAccelXY(ax, ay float64) {}
func (f *fakePosController) ClearDesiredVelocityFFZ()         {}
func (f *fakePosController) FreezeFFZ()                       {}

func (f *fakePosController) InitXYController()   {}
func (f *fakePosController) UpdateXYController() { f.updateCalls++ }

func (f *fakePosController) GetPosXYPkP() float64 { return f.kP }
func (f *fakePosController) GetDt() float64       { return f.dt }

func (f *fakePosController) GetStoppingPointXY() Vec3 { return f.stopXY }
func (f *fakePosController) GetStoppingPointZ() Vec3  { return f.stopZ }

func newTestCore(posCtrl *fakePosController, inertial *fakeInertial) *Core {
	c := New(inertial, &fakeAttitude{maxLeanRad: 0.6}, &fakeTerrain{ok: false}, posCtrl, DefaultParams())
	c.WPAndSplineInit()
	return c
}
