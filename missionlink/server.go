package missionlink

import (
	"log"
	"net"
	"sync"

	"wpnavcore/guidance"
)

// DefaultPort is the UDP port a mission sequencer targets by default.
const DefaultPort = 14550

// Server receives missionlink command packets and applies them to the
// guidance core registered for the packet's vehicle ID, the same
// map-of-sessions-guarded-by-a-mutex shape as server.UdpServer's
// lastGw/tagsState maps.
type Server struct {
	conn    *net.UDPConn
	running bool

	mu    sync.Mutex
	cores map[uint32]*guidance.Core
}

// NewServer opens a UDP listener on port (DefaultPort if zero).
func NewServer(port int) (*Server, error) {
	if port == 0 {
		port = DefaultPort
	}
	conn, err := net.ListenUDP("udp", &net.UDPAddr{Port: port, IP: net.ParseIP("0.0.0.0")})
	if err != nil {
		return nil, err
	}
	return &Server{conn: conn, cores: make(map[uint32]*guidance.Core)}, nil
}

// Register associates vehicleID with the core that should receive its
// commands.
func (s *Server) Register(vehicleID uint32, core *guidance.Core) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cores[vehicleID] = core
}

// Unregister removes vehicleID's association.
func (s *Server) Unregister(vehicleID uint32) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.cores, vehicleID)
}

// Start runs the receive loop. It blocks until Stop is called.
func (s *Server) Start() {
	s.running = true
	buf := make([]byte, 2048)
	log.Printf("missionlink: listening on %s", s.conn.LocalAddr())

	for s.running {
		n, _, err := s.conn.ReadFromUDP(buf)
		if err != nil {
			if s.running {
				log.Printf("missionlink: read error: %v", err)
			}
			continue
		}
		data := make([]byte, n)
		copy(data, buf[:n])
		s.handlePacket(data)
	}
}

// Stop closes the listening socket, ending Start's loop.
func (s *Server) Stop() {
	s.running = false
	s.conn.Close()
}

func (s *Server) handlePacket(data []byte) {
	hdr, err := ParseHeader(data)
	if err != nil {
		log.Printf("missionlink: %v", err)
		return
	}
	if HeaderLen+hdr.BodyLen > len(data) {
		log.Printf("missionlink: truncated packet for vehicle %d", hdr.VehicleID)
		return
	}
	body := data[HeaderLen : HeaderLen+hdr.BodyLen]

	s.mu.Lock()
	core, ok := s.cores[hdr.VehicleID]
	s.mu.Unlock()
	if !ok {
		log.Printf("missionlink: no core registered for vehicle %d", hdr.VehicleID)
		return
	}

	switch hdr.Cmd {
	case CmdSetDestination:
		dest, err := DecodeDestinationBody(body)
		if err != nil {
			log.Printf("missionlink: %v", err)
			return
		}
		core.SetWPDestination(guidance.Vec3{X: float64(dest.X), Y: float64(dest.Y), Z: float64(dest.Z)}, dest.TerrainAlt)

	case CmdSetSplineDestination:
		dest, err := DecodeSplineDestinationBody(body)
		if err != nil {
			log.Printf("missionlink: %v", err)
			return
		}
		core.SetSplineDestination(
			guidance.Vec3{X: float64(dest.X), Y: float64(dest.Y), Z: float64(dest.Z)},
			dest.TerrainAlt,
			dest.StoppedAtStart,
			guidance.SplineEndType(dest.EndType),
			guidance.Vec3{X: float64(dest.NextX), Y: float64(dest.NextY), Z: float64(dest.NextZ)},
		)

	case CmdShiftOrigin:
		core.ShiftWPOriginToCurrentPos()

	case CmdSetSpeedXY:
		speed, err := DecodeSpeedBody(body)
		if err != nil {
			log.Printf("missionlink: %v", err)
			return
		}
		core.SetSpeedXY(float64(speed.SpeedCMS))

	default:
		log.Printf("missionlink: unhandled command 0x%02x from vehicle %d", hdr.Cmd, hdr.VehicleID)
	}
}
