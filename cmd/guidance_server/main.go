package main

import (
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"gopkg.in/natefinch/lumberjack.v2"

	"wpnavcore/flightlog"
	"wpnavcore/guidance"
	"wpnavcore/missionlink"
	"wpnavcore/paramstore"
	"wpnavcore/poscontrol"
	"wpnavcore/telemetry"
)

// simInertial stands in for a real EKF/AHRS: it integrates the position
// controller's own velocity target, so this binary is runnable and
// demonstrably advances a track end to end without a flight stack
// attached.
type simInertial struct {
	pos guidance.Vec3
	vel guidance.Vec3
}

func (s *simInertial) Position() guidance.Vec3 { return s.pos }
func (s *simInertial) Velocity() guidance.Vec3 { return s.vel }
func (s *simInertial) Altitude() float64       { return s.pos.Z }

func (s *simInertial) step(vel guidance.Vec3, dt float64) {
	s.vel = vel
	s.pos = s.pos.Add(vel.Scale(dt))
}

type fixedAttitude struct {
	maxLeanRad float64
	yawCD      float64
}

func (f *fixedAttitude) MaxLeanAngleRad() float64    { return f.maxLeanRad }
func (f *fixedAttitude) CurrentTargetYawCD() float64 { return f.yawCD }

func main() {
	missionPort := flag.Int("mission-port", missionlink.DefaultPort, "UDP port for missionlink commands")
	httpPort := flag.Int("http", 8080, "HTTP/WebSocket port for telemetry. 0 to disable.")
	paramsPath := flag.String("params", "params.xml", "Path to the parameter file")
	logPath := flag.String("log", "", "Path to a rotating log file (empty logs to stderr)")
	flightlogPath := flag.String("flightlog", "", "Path to a tick-by-tick flight log (empty disables it)")
	vehicleID := flag.Uint("vehicle-id", 1, "Vehicle ID this instance answers to on missionlink")
	tickHz := flag.Float64("rate", 100.0, "Core update rate in Hz")
	flag.Parse()

	if *logPath != "" {
		log.SetOutput(&lumberjack.Logger{
			Filename:   *logPath,
			MaxSize:    10,
			MaxBackups: 5,
			MaxAge:     28,
		})
	}

	params := paramstore.Load(*paramsPath)
	log.Printf("guidance_server: loaded params: %+v", params)

	sim := &simInertial{}
	attitude := &fixedAttitude{maxLeanRad: 0.6}
	posCtrl := poscontrol.New(sim, poscontrol.DefaultConfig())
	core := guidance.New(sim, attitude, nil, posCtrl, params)
	core.WPAndSplineInit()

	telSrv := telemetry.NewServer()
	if *httpPort > 0 {
		go func() {
			if err := telSrv.Start(*httpPort, ""); err != nil {
				log.Printf("guidance_server: telemetry server exited: %v", err)
			}
		}()
	}

	mlSrv, err := missionlink.NewServer(*missionPort)
	if err != nil {
		log.Fatalf("guidance_server: failed to start missionlink server: %v", err)
	}
	mlSrv.Register(uint32(*vehicleID), core)
	go mlSrv.Start()

	var flog *flightlog.Writer
	if *flightlogPath != "" {
		flog, err = flightlog.Create(*flightlogPath)
		if err != nil {
			log.Fatalf("guidance_server: failed to create flight log: %v", err)
		}
		defer flog.Close()
	}

	dt := time.Duration(float64(time.Second) / *tickHz)
	ticker := time.NewTicker(dt)
	defer ticker.Stop()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	log.Printf("guidance_server: running vehicle %d at %.0fHz (missionlink :%d, http :%d)", *vehicleID, *tickHz, *missionPort, *httpPort)

	for {
		select {
		case <-ticker.C:
			core.UpdateWPNav()
			target := core.GetWPDestination()
			sim.step(posCtrl.GetVelTarget(), dt.Seconds())

			frame := telemetry.StatusFrame{
				VehicleID:   int64(*vehicleID),
				TimestampMS: time.Now().UnixMilli(),
				SegmentType: int(core.SegmentType()),
				X:           sim.pos.X,
				Y:           sim.pos.Y,
				Z:           sim.pos.Z,
				TargetX:     target.X,
				TargetY:     target.Y,
				TargetZ:     target.Z,
				YawCD:       core.GetYaw(),
				Reached:     core.ReachedDestination(),
			}
			telSrv.PublishStatus(frame)

			if flog != nil {
				flog.Write(flightlog.Tick{
					TimestampMS: frame.TimestampMS,
					SegmentType: frame.SegmentType,
					PosX:        frame.X, PosY: frame.Y, PosZ: frame.Z,
					TargetX: frame.TargetX, TargetY: frame.TargetY, TargetZ: frame.TargetZ,
					YawCD:   frame.YawCD,
					Reached: frame.Reached,
				})
			}

		case <-sigChan:
			log.Print("guidance_server: shutting down")
			mlSrv.Stop()
			return
		}
	}
}
