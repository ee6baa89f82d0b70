package poscontrol

import (
	"math"
	"testing"

	"wpnavcore/guidance"
)

type fakeInertial struct {
	pos guidance.Vec3
	vel guidance.Vec3
}

func (f *fakeInertial) Position() guidance.Vec3   { return f.pos }
func (f *fakeInertial) Velocity() guidance.Vec3   { return f.vel }
func (f *fakeInertial) Altitude() float64         { return f.pos.Z }

func TestUpdateXYControllerTracksTowardPosTarget(t *testing.T) {
	inertial := &fakeInertial{pos: guidance.Vec3{}}
	c := New(inertial, DefaultConfig())
	c.SetMaxSpeedXY(500)
	c.SetMaxAccelXY(100)

	c.SetPosTarget(guidance.Vec3{X: 1000, Y: 0, Z: 0})
	c.UpdateXYController()

	vel := c.GetVelTarget()
	if vel.X <= 0 {
		t.Errorf("expected positive X velocity toward target, got %v", vel.X)
	}
	if vel.X > 500+1e-9 {
		t.Errorf("velocity %v exceeds maxSpeedXY 500", vel.X)
	}
}

func TestUpdateXYControllerClampsToMaxSpeed(t *testing.T) {
	inertial := &fakeInertial{pos: guidance.Vec3{}}
	c := New(inertial, DefaultConfig())
	c.SetMaxSpeedXY(100)
	c.SetMaxAccelXY(100)

	// huge position error should saturate at maxSpeedXY
	c.SetPosTarget(guidance.Vec3{X: 1000000, Y: 0, Z: 0})
	c.UpdateXYController()

	vel := c.GetVelTarget()
	if math.Abs(vel.LengthXY()-100) > 1e-6 {
		t.Errorf("velocity magnitude = %v, want 100 (clamped)", vel.LengthXY())
	}
}

func TestCalcLeashLengthXYFloor(t *testing.T) {
	inertial := &fakeInertial{}
	c := New(inertial, DefaultConfig())
	c.SetMaxSpeedXY(1)
	c.SetMaxAccelXY(1000)
	c.CalcLeashLengthXY()

	if c.GetLeashXY() < 100 {
		t.Errorf("leash = %v, below floor 100", c.GetLeashXY())
	}
}

func TestGetStoppingPointXYAtRestReturnsCurrentPosition(t *testing.T) {
	inertial := &fakeInertial{pos: guidance.Vec3{X: 10, Y: 20, Z: 0}}
	c := New(inertial, DefaultConfig())
	c.SetMaxAccelXY(100)

	got := c.GetStoppingPointXY()
	if got != inertial.pos {
		t.Errorf("stopping point at rest = %v, want current position %v", got, inertial.pos)
	}
}

func TestGetStoppingPointXYProjectsAlongVelocity(t *testing.T) {
	inertial := &fakeInertial{pos: guidance.Vec3{}, vel: guidance.Vec3{X: 100, Y: 0, Z: 0}}
	c := New(inertial, DefaultConfig())
	c.SetMaxAccelXY(100)

	got := c.GetStoppingPointXY()
	want := 100.0 * 100.0 / (2 * 100.0) // v^2/2a = 50
	if math.Abs(got.X-want) > 1e-9 {
		t.Errorf("stopping point X = %v, want %v", got.X, want)
	}
}

func TestInitXYControllerClearsFeedforward(t *testing.T) {
	inertial := &fakeInertial{}
	c := New(inertial, DefaultConfig())
	c.SetDesiredVelocityXY(50, 50)
	c.InitXYController()

	if c.desiredVelXY != (guidance.Vec3{}) {
		t.Errorf("desiredVelXY after InitXYController = %v, want zero", c.desiredVelXY)
	}
}
