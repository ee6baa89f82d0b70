package telemetry

import (
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"path/filepath"
)

// StatusFrame is the JSON shape pushed to every connected browser client,
// mirroring server.wsPos's flat id/ts/x/y/z shape but carrying guidance
// fields instead of positioning-system fields.
type StatusFrame struct {
	VehicleID   int64   `json:"id"`
	TimestampMS int64   `json:"ts"`
	SegmentType int     `json:"seg"`
	X           float64 `json:"x"`
	Y           float64 `json:"y"`
	Z           float64 `json:"z"`
	TargetX     float64 `json:"tx"`
	TargetY     float64 `json:"ty"`
	TargetZ     float64 `json:"tz"`
	YawCD       float64 `json:"yaw"`
	Reached     bool    `json:"reached"`
}

// Server hosts the websocket endpoint and the parameter file the ground
// station's frontend fetches on load.
type Server struct {
	Hub *Hub
}

// NewServer returns a Server with a fresh, unstarted Hub.
func NewServer() *Server {
	return &Server{Hub: NewHub()}
}

// PublishStatus marshals frame to JSON and broadcasts it to every
// connected client. Safe to call once per guidance tick.
func (s *Server) PublishStatus(frame StatusFrame) {
	body, err := json.Marshal(frame)
	if err != nil {
		log.Printf("telemetry: marshal status frame: %v", err)
		return
	}
	s.Hub.Broadcast(body)
}

// Start runs the hub and serves the websocket endpoint plus the
// parameter file, if configDir is non-empty, on port. It blocks.
func (s *Server) Start(port int, configDir string) error {
	go s.Hub.Run()

	mux := http.NewServeMux()
	mux.HandleFunc("/ws", func(w http.ResponseWriter, r *http.Request) {
		serveWs(s.Hub, w, r)
	})

	if configDir != "" {
		mux.HandleFunc("/params.xml", func(w http.ResponseWriter, r *http.Request) {
			http.ServeFile(w, r, filepath.Join(configDir, "params.xml"))
		})
	}

	addr := fmt.Sprintf(":%d", port)
	log.Printf("telemetry: listening on %s", addr)
	return http.ListenAndServe(addr, mux)
}
