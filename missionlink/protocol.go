// Package missionlink implements the binary UDP protocol a mission
// sequencer uses to push destination commands into a running guidance
// core, grounded on server/protocol.go's fixed-header + typed-body UNIB
// framing.
package missionlink

import (
	"encoding/binary"
	"fmt"
	"math"
)

const (
	// Magic tags the start of every missionlink packet, the way UnibMagic
	// tags UNIB frames.
	Magic = 0x574e // little-endian "WN"

	// HeaderLen is magic(2) + vehicleID(4) + cmd(1) + bodyLen(2).
	HeaderLen = 9
)

// Command identifies the body layout that follows the header.
type Command uint8

const (
	CmdSetDestination       Command = 0x01
	CmdSetSplineDestination Command = 0x02
	CmdShiftOrigin          Command = 0x10
	CmdSetSpeedXY           Command = 0x20
	CmdSetSpeedUpDown       Command = 0x21
)

// Header is the fixed 9-byte prefix of every missionlink packet.
type Header struct {
	VehicleID uint32
	Cmd       Command
	BodyLen   int
}

// ParseHeader reads the fixed header from the start of data.
func ParseHeader(data []byte) (*Header, error) {
	if len(data) < HeaderLen {
		return nil, fmt.Errorf("missionlink: packet too short for header")
	}
	if binary.LittleEndian.Uint16(data[0:2]) != Magic {
		return nil, fmt.Errorf("missionlink: bad magic")
	}
	return &Header{
		VehicleID: binary.LittleEndian.Uint32(data[2:6]),
		Cmd:       Command(data[6]),
		BodyLen:   int(binary.LittleEndian.Uint16(data[7:9])),
	}, nil
}

// DestinationBody is the payload of CmdSetDestination: a single NEU point
// (cm) plus a terrain-relative flag.
type DestinationBody struct {
	X, Y, Z    float32
	TerrainAlt bool
}

// EncodeSetDestination builds a complete CmdSetDestination packet.
func EncodeSetDestination(vehicleID uint32, body DestinationBody) []byte {
	payload := make([]byte, 13)
	binary.LittleEndian.PutUint32(payload[0:4], float32bits(body.X))
	binary.LittleEndian.PutUint32(payload[4:8], float32bits(body.Y))
	binary.LittleEndian.PutUint32(payload[8:12], float32bits(body.Z))
	if body.TerrainAlt {
		payload[12] = 1
	}
	return encode(vehicleID, CmdSetDestination, payload)
}

// DecodeDestinationBody parses the body of a CmdSetDestination packet.
func DecodeDestinationBody(body []byte) (DestinationBody, error) {
	if len(body) < 13 {
		return DestinationBody{}, fmt.Errorf("missionlink: destination body too short")
	}
	return DestinationBody{
		X:          float32frombits(binary.LittleEndian.Uint32(body[0:4])),
		Y:          float32frombits(binary.LittleEndian.Uint32(body[4:8])),
		Z:          float32frombits(binary.LittleEndian.Uint32(body[8:12])),
		TerrainAlt: body[12] != 0,
	}, nil
}

// SpeedBody is the payload of CmdSetSpeedXY: a single speed in cm/s.
type SpeedBody struct {
	SpeedCMS float32
}

// EncodeSetSpeedXY builds a complete CmdSetSpeedXY packet.
func EncodeSetSpeedXY(vehicleID uint32, speedCMS float32) []byte {
	payload := make([]byte, 4)
	binary.LittleEndian.PutUint32(payload, float32bits(speedCMS))
	return encode(vehicleID, CmdSetSpeedXY, payload)
}

// DecodeSpeedBody parses the body of a CmdSetSpeedXY/CmdSetSpeedUpDown
// packet.
func DecodeSpeedBody(body []byte) (SpeedBody, error) {
	if len(body) < 4 {
		return SpeedBody{}, fmt.Errorf("missionlink: speed body too short")
	}
	return SpeedBody{SpeedCMS: float32frombits(binary.LittleEndian.Uint32(body[0:4]))}, nil
}

// EncodeShiftOrigin builds a complete CmdShiftOrigin packet, which has no
// body.
func EncodeShiftOrigin(vehicleID uint32) []byte {
	return encode(vehicleID, CmdShiftOrigin, nil)
}

// SplineEndType mirrors guidance.SplineEndType on the wire: the boundary
// velocity policy the core should solve for at the destination end of the
// segment.
type SplineEndType uint8

const (
	SplineEndStop     SplineEndType = 0
	SplineEndStraight SplineEndType = 1
	SplineEndSpline   SplineEndType = 2
)

// SplineDestinationBody is the payload of CmdSetSplineDestination: a
// destination point, whether the vehicle is stopped at the segment's
// start, the boundary-velocity policy to use at its end, and (for the
// STRAIGHT/SPLINE end types) the next leg's destination, mirroring
// AC_WPNav::set_spline_destination's next-segment lookahead.
type SplineDestinationBody struct {
	X, Y, Z              float32
	TerrainAlt           bool
	StoppedAtStart       bool
	EndType              SplineEndType
	NextX, NextY, NextZ  float32
}

// EncodeSetSplineDestination builds a complete CmdSetSplineDestination
// packet.
func EncodeSetSplineDestination(vehicleID uint32, body SplineDestinationBody) []byte {
	payload := make([]byte, 27)
	binary.LittleEndian.PutUint32(payload[0:4], float32bits(body.X))
	binary.LittleEndian.PutUint32(payload[4:8], float32bits(body.Y))
	binary.LittleEndian.PutUint32(payload[8:12], float32bits(body.Z))
	if body.TerrainAlt {
		payload[12] = 1
	}
	if body.StoppedAtStart {
		payload[13] = 1
	}
	payload[14] = byte(body.EndType)
	binary.LittleEndian.PutUint32(payload[15:19], float32bits(body.NextX))
	binary.LittleEndian.PutUint32(payload[19:23], float32bits(body.NextY))
	binary.LittleEndian.PutUint32(payload[23:27], float32bits(body.NextZ))
	return encode(vehicleID, CmdSetSplineDestination, payload)
}

// DecodeSplineDestinationBody parses the body of a
// CmdSetSplineDestination packet.
func DecodeSplineDestinationBody(body []byte) (SplineDestinationBody, error) {
	if len(body) < 27 {
		return SplineDestinationBody{}, fmt.Errorf("missionlink: spline destination body too short")
	}
	return SplineDestinationBody{
		X:              float32frombits(binary.LittleEndian.Uint32(body[0:4])),
		Y:              float32frombits(binary.LittleEndian.Uint32(body[4:8])),
		Z:              float32frombits(binary.LittleEndian.Uint32(body[8:12])),
		TerrainAlt:     body[12] != 0,
		StoppedAtStart: body[13] != 0,
		EndType:        SplineEndType(body[14]),
		NextX:          float32frombits(binary.LittleEndian.Uint32(body[15:19])),
		NextY:          float32frombits(binary.LittleEndian.Uint32(body[19:23])),
		NextZ:          float32frombits(binary.LittleEndian.Uint32(body[23:27])),
	}, nil
}

func encode(vehicleID uint32, cmd Command, body []byte) []byte {
	pkt := make([]byte, HeaderLen+len(body))
	binary.LittleEndian.PutUint16(pkt[0:2], Magic)
	binary.LittleEndian.PutUint32(pkt[2:6], vehicleID)
	pkt[6] = byte(cmd)
	binary.LittleEndian.PutUint16(pkt[7:9], uint16(len(body)))
	copy(pkt[HeaderLen:], body)
	return pkt
}

func float32bits(f float32) uint32 {
	return math.Float32bits(f)
}

func float32frombits(b uint32) float32 {
	return math.Float32frombits(b)
}
