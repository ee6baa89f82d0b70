// Command replay re-sends a recorded flightlog session over missionlink at
// real-time (or scaled) pace, grounded on the teacher's own pcap replay
// loop: read a timestamped record, sleep until its relative offset has
// elapsed against a wall-clock start, then send it.
package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"net"
	"time"

	"wpnavcore/flightlog"
	"wpnavcore/missionlink"
)

func main() {
	logPath := flag.String("log", "", "Input flightlog session file")
	destAddr := flag.String("dest", "127.0.0.1:14550", "Destination missionlink UDP address")
	vehicleID := flag.Uint("vehicle-id", 1, "Vehicle ID to address replayed commands to")
	speed := flag.Float64("speed", 1.0, "Replay speed multiplier (0 for max speed)")
	flag.Parse()

	if *logPath == "" {
		log.Fatal("--log required")
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

	reader, err := flightlog.Open(*logPath)
	if err != nil {
		log.Fatalf("open %s: %v", *logPath, err)
	}
	defer reader.Close()

	log.Printf("replaying %s to %s at %.1fx...", *logPath, *destAddr, *speed)

	var firstTS int64
	var startReal time.Time
	count := 0

	for {
		tick, err := reader.Next()
		if err != nil {
			if err == io.EOF {
				break
			}
			log.Fatalf("read tick: %v", err)
		}

		if firstTS == 0 {
			firstTS = tick.TimestampMS
			startReal = time.Now()
		} else if *speed > 0 {
			targetDelay := time.Duration(float64(tick.TimestampMS-firstTS)/(*speed)) * time.Millisecond
			elapsed := time.Since(startReal)
			if targetDelay > elapsed {
				time.Sleep(targetDelay - elapsed)
			}
		}

		pkt := missionlink.EncodeSetDestination(uint32(*vehicleID), missionlink.DestinationBody{
			X: float32(tick.TargetX),
			Y: float32(tick.TargetY),
			Z: float32(tick.TargetZ),
		})
		if _, err := conn.Write(pkt); err != nil {
			log.Printf("write error: %v", err)
		}

		count++
		if count%200 == 0 {
			fmt.Printf("\rsent %d ticks...", count)
		}
	}
	fmt.Printf("\ndone. sent %d ticks.\n", count)
}
