// Command mission encodes and sends a single missionlink command to a
// running guidance_server, the one-shot CLI-utility shape of the
// teacher's own cmd/scan.
package main

import (
	"flag"
	"fmt"
	"log"
	"net"
	"os"

	"wpnavcore/missionlink"
)

func main() {
	destAddr := flag.String("dest", "127.0.0.1:14550", "guidance_server missionlink address")
	vehicleID := flag.Uint("vehicle-id", 1, "Target vehicle ID")
	cmd := flag.String("cmd", "", "Command: set-destination | set-spline-destination | shift-origin | set-speed-xy")
	x := flag.Float64("x", 0, "X coordinate (cm), for destination commands")
	y := flag.Float64("y", 0, "Y coordinate (cm), for destination commands")
	z := flag.Float64("z", 0, "Z coordinate (cm), for destination commands")
	terrainAlt := flag.Bool("terrain-alt", false, "Z is relative to terrain rather than EKF origin")
	speed := flag.Float64("speed", 0, "Speed (cm/s), for set-speed-xy")
	nx := flag.Float64("next-x", 0, "Next leg X coordinate (cm), for set-spline-destination")
	ny := flag.Float64("next-y", 0, "Next leg Y coordinate (cm), for set-spline-destination")
	nz := flag.Float64("next-z", 0, "Next leg Z coordinate (cm), for set-spline-destination")
	stoppedAtStart := flag.Bool("stopped-at-start", false, "Vehicle is stopped at the segment's origin, for set-spline-destination")
	endType := flag.String("end-type", "stop", "Boundary velocity at the segment's end: stop | straight | spline, for set-spline-destination")
	flag.Parse()

	if *cmd == "" {
		fmt.Fprintln(os.Stderr, "--cmd required: set-destination | set-spline-destination | shift-origin | set-speed-xy")
		os.Exit(1)
	}

	raddr, err := net.ResolveUDPAddr("udp", *destAddr)
	if err != nil {
		log.Fatalf("invalid dest address: %v", err)
	}
	conn, err := net.DialUDP("udp", nil, raddr)
	if err != nil {
		log.Fatalf("dial failed: %v", err)
	}
	defer conn.Close()

	var pkt []byte
	switch *cmd {
	case "set-destination":
		pkt = missionlink.EncodeSetDestination(uint32(*vehicleID), missionlink.DestinationBody{
			X: float32(*x), Y: float32(*y), Z: float32(*z), TerrainAlt: *terrainAlt,
		})
	case "set-spline-destination":
		var et missionlink.SplineEndType
		switch *endType {
		case "stop":
			et = missionlink.SplineEndStop
		case "straight":
			et = missionlink.SplineEndStraight
		case "spline":
			et = missionlink.SplineEndSpline
		default:
			fmt.Fprintf(os.Stderr, "unknown --end-type %q: want stop | straight | spline\n", *endType)
			os.Exit(1)
		}
		pkt = missionlink.EncodeSetSplineDestination(uint32(*vehicleID), missionlink.SplineDestinationBody{
			X: float32(*x), Y: float32(*y), Z: float32(*z), TerrainAlt: *terrainAlt,
			StoppedAtStart: *stoppedAtStart, EndType: et,
			NextX: float32(*nx), NextY: float32(*ny), NextZ: float32(*nz),
		})
	case "shift-origin":
		pkt = missionlink.EncodeShiftOrigin(uint32(*vehicleID))
	case "set-speed-xy":
		pkt = missionlink.EncodeSetSpeedXY(uint32(*vehicleID), float32(*speed))
	default:
		fmt.Fprintf(os.Stderr, "unknown command %q\n", *cmd)
		os.Exit(1)
	}

	if _, err := conn.Write(pkt); err != nil {
		log.Fatalf("send failed: %v", err)
	}
	fmt.Printf("sent %s to vehicle %d at %s\n", *cmd, *vehicleID, *destAddr)
}
