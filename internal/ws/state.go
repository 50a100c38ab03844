package ws

import (
	"encoding/json"
	"net/http"
	"sync"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"

	"github.com/example/lumenshow/internal/app"
	diag "github.com/example/lumenshow/internal/diagnostics"
	"github.com/example/lumenshow/internal/effects"
	"github.com/example/lumenshow/internal/perf"
	"github.com/example/lumenshow/internal/scene"
	"github.com/example/lumenshow/internal/sequence"
)

// Snapshot is the JSON frame pushed to status clients after every tick.
type Snapshot struct {
	FrameID  uint64      `json:"frameId"`
	Frame    scene.Frame `json:"frame"`
	Stats    perf.Stats  `json:"stats"`
	Sequence string      `json:"sequence,omitempty"`
}

// sequenceStatus is the cached sequencer view served on GET /api/sequence.
type sequenceStatus struct {
	Sequences []string             `json:"sequences"`
	State     sequence.PlayerState `json:"state"`
	Progress  float64              `json:"progress"`
	Speed     float64              `json:"speed"`
}

// State owns the websocket client sets and the latest snapshot. The
// conductor publishes into it from the frame loop. Handler goroutines never
// touch the cores directly: mutations go back through the conductor's
// command queue, and reads are served from the mutex-guarded copies the
// last Publish left here. The catalog is captured once at construction and
// is immutable after that.
type State struct {
	mu          sync.RWMutex
	frameID     uint64
	latest      Snapshot
	hasFrame    bool
	active      []effects.State
	seqStatus   sequenceStatus
	clients     map[*websocket.Conn]bool
	diagClients map[*websocket.Conn]bool

	catalog []effects.Effect
	cond    *app.Conductor
}

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     func(*http.Request) bool { return true },
}

func NewState(cond *app.Conductor) *State {
	return &State{
		clients:     map[*websocket.Conn]bool{},
		diagClients: map[*websocket.Conn]bool{},
		catalog:     cond.Effects.Catalog(),
		active:      cond.Effects.ActiveEffects(),
		seqStatus:   readSequenceStatus(cond.Seq),
		cond:        cond,
	}
}

func readSequenceStatus(seq *sequence.Sequencer) sequenceStatus {
	return sequenceStatus{
		Sequences: seq.SequenceIDs(),
		State:     seq.State(),
		Progress:  seq.Progress(),
		Speed:     seq.Speed(),
	}
}

// Publish stores the latest frame and fans it out to connected clients.
// Wired as the conductor's Publish hook, so it runs on the conductor
// goroutine and may read the cores directly; the copies it caches are what
// the GET handlers serve. The broadcast payload is marshaled outside the
// lock so status reads are never blocked on encoding.
func (s *State) Publish(f scene.Frame, st perf.Stats) {
	status := readSequenceStatus(s.cond.Seq)

	s.mu.Lock()
	s.frameID++
	s.latest = Snapshot{FrameID: s.frameID, Frame: f, Stats: st, Sequence: f.SequenceID}
	s.hasFrame = true
	s.active = f.Effects
	s.seqStatus = status
	latest := s.latest
	conns := make([]*websocket.Conn, 0, len(s.clients))
	for c := range s.clients {
		conns = append(conns, c)
	}
	s.mu.Unlock()

	payload, err := json.Marshal(map[string]any{"type": "frame", "data": latest})
	if err != nil {
		return
	}
	for _, c := range conns {
		if err := c.WriteMessage(websocket.TextMessage, payload); err != nil {
			s.dropClient(c)
		}
	}
}

// PushDiag broadcasts a diagnostic record to diagnostic subscribers. Wired
// as the conductor's OnDiagnostic hook.
func (s *State) PushDiag(d diag.Diagnostic) {
	payload, err := json.Marshal(map[string]any{"type": "diagnostic", "data": d})
	if err != nil {
		return
	}
	s.mu.RLock()
	conns := make([]*websocket.Conn, 0, len(s.diagClients))
	for c := range s.diagClients {
		conns = append(conns, c)
	}
	s.mu.RUnlock()
	for _, c := range conns {
		if err := c.WriteMessage(websocket.TextMessage, payload); err != nil {
			s.dropClient(c)
		}
	}
}

func (s *State) dropClient(c *websocket.Conn) {
	s.mu.Lock()
	delete(s.clients, c)
	delete(s.diagClients, c)
	s.mu.Unlock()
	_ = c.Close()
}

// Handler returns the HTTP mux for the status server.
func (s *State) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/ws", s.handleWS)
	mux.HandleFunc("/ws/diag", s.handleDiagWS)
	mux.HandleFunc("/api/status", s.handleStatus)
	mux.HandleFunc("/api/effects", s.handleEffects)
	mux.HandleFunc("/api/sequence", s.handleSequence)
	return mux
}

func (s *State) handleWS(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Warn().Err(err).Msg("ws upgrade failed")
		return
	}
	// Send the latest snapshot before registering for broadcasts so the
	// conductor's Publish never writes this conn concurrently with us.
	s.mu.RLock()
	latest, has := s.latest, s.hasFrame
	s.mu.RUnlock()
	if has {
		if payload, err := json.Marshal(map[string]any{"type": "frame", "data": latest}); err == nil {
			_ = conn.WriteMessage(websocket.TextMessage, payload)
		}
	}
	s.mu.Lock()
	s.clients[conn] = true
	s.mu.Unlock()
	go s.readUntilClose(conn)
}

func (s *State) handleDiagWS(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Warn().Err(err).Msg("diag ws upgrade failed")
		return
	}
	s.mu.Lock()
	s.diagClients[conn] = true
	s.mu.Unlock()
	go s.readUntilClose(conn)
}

// readUntilClose discards inbound messages; the sockets are push-only.
func (s *State) readUntilClose(conn *websocket.Conn) {
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			s.dropClient(conn)
			return
		}
	}
}

func (s *State) handleStatus(w http.ResponseWriter, r *http.Request) {
	s.mu.RLock()
	latest := s.latest
	s.mu.RUnlock()
	writeJSON(w, http.StatusOK, latest)
}

type effectCmd struct {
	Action    string             `json:"action"` // enable|disable|toggle|intensity|params|global
	ID        string             `json:"id,omitempty"`
	Intensity float64            `json:"intensity,omitempty"`
	Params    map[string]float64 `json:"params,omitempty"`
	Value     float64            `json:"value,omitempty"`
}

// handleEffects lists the catalog on GET and enqueues mutations on POST.
// GET serves the copies cached by the last Publish, never the live
// registry, which is owned by the conductor goroutine. Mutations run on
// the conductor goroutine before the next frame; the response only
// acknowledges queuing, failures surface in logs and the next snapshot.
func (s *State) handleEffects(w http.ResponseWriter, r *http.Request) {
	reg := s.cond.Effects
	switch r.Method {
	case http.MethodGet:
		s.mu.RLock()
		active := s.active
		s.mu.RUnlock()
		writeJSON(w, http.StatusOK, map[string]any{
			"catalog": s.catalog,
			"active":  active,
		})
	case http.MethodPost:
		var cmd effectCmd
		if err := json.NewDecoder(r.Body).Decode(&cmd); err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]any{"error": err.Error()})
			return
		}
		queued := s.cond.Enqueue(func() {
			switch cmd.Action {
			case "enable":
				intensity := cmd.Intensity
				if intensity == 0 {
					intensity = 1
				}
				reg.Enable(cmd.ID, intensity)
			case "disable":
				reg.Disable(cmd.ID)
			case "toggle":
				intensity := cmd.Intensity
				if intensity == 0 {
					intensity = 1
				}
				reg.Toggle(cmd.ID, intensity)
			case "intensity":
				reg.SetIntensity(cmd.ID, cmd.Value)
			case "params":
				reg.SetParams(cmd.ID, cmd.Params)
			case "global":
				reg.SetGlobalIntensity(cmd.Value)
			case "enable_all":
				reg.EnableAll()
			case "disable_all":
				reg.DisableAll()
			default:
				log.Warn().Str("action", cmd.Action).Msg("unknown effect action")
			}
		})
		writeJSON(w, http.StatusAccepted, map[string]any{"queued": queued})
	default:
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}

type sequenceCmd struct {
	Action string  `json:"action"` // play|pause|stop|seek|speed
	ID     string  `json:"id,omitempty"`
	Value  float64 `json:"value,omitempty"`
}

// handleSequence reports the cached sequencer status on GET and enqueues
// transport controls on POST.
func (s *State) handleSequence(w http.ResponseWriter, r *http.Request) {
	seq := s.cond.Seq
	switch r.Method {
	case http.MethodGet:
		s.mu.RLock()
		status := s.seqStatus
		s.mu.RUnlock()
		writeJSON(w, http.StatusOK, status)
	case http.MethodPost:
		var cmd sequenceCmd
		if err := json.NewDecoder(r.Body).Decode(&cmd); err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]any{"error": err.Error()})
			return
		}
		queued := s.cond.Enqueue(func() {
			switch cmd.Action {
			case "play":
				s.cond.PlaySequence(cmd.ID)
			case "pause":
				seq.Pause()
			case "stop":
				seq.Stop()
			case "seek":
				seq.Seek(cmd.Value)
			case "speed":
				seq.SetSpeed(cmd.Value)
			default:
				log.Warn().Str("action", cmd.Action).Msg("unknown sequence action")
			}
		})
		writeJSON(w, http.StatusAccepted, map[string]any{"queued": queued})
	default:
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
