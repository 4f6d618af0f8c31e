package server

import (
	"encoding/json"
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/propasset/propd/internal/core/events"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = 54 * time.Second
	maxMessageSize = 4096
	sendBuffer     = 64
)

// EventStream pushes ledger events to WebSocket subscribers. Every
// connection receives the full stream; slow consumers are dropped rather
// than allowed to stall the bus.
type EventStream struct {
	upgrader websocket.Upgrader
	bus      *events.Bus

	mu     sync.Mutex
	closed bool
	conns  map[*streamConn]struct{}
}

type streamConn struct {
	conn   *websocket.Conn
	cancel func()
}

// NewEventStream creates a stream fed by the given bus.
func NewEventStream(bus *events.Bus) *EventStream {
	return &EventStream{
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool { return true },
		},
		bus:   bus,
		conns: make(map[*streamConn]struct{}),
	}
}

// streamMessage is the wire envelope for a pushed event.
type streamMessage struct {
	Type  string       `json:"type"`
	Event events.Event `json:"event"`
}

// ServeHTTP upgrades the request and streams events until the client
// disconnects or the server shuts down.
func (s *EventStream) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("websocket upgrade failed: %v", err)
		return
	}

	ch, cancel := s.bus.Subscribe(sendBuffer)
	sc := &streamConn{conn: conn, cancel: cancel}

	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		cancel()
		conn.Close()
		return
	}
	s.conns[sc] = struct{}{}
	s.mu.Unlock()

	go s.writeLoop(sc, ch)
	go s.readLoop(sc)
}

// writeLoop forwards bus events and keeps the connection alive with pings.
func (s *EventStream) writeLoop(sc *streamConn, ch <-chan events.Event) {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		s.drop(sc)
	}()

	for {
		select {
		case ev, ok := <-ch:
			if !ok {
				sc.conn.SetWriteDeadline(time.Now().Add(writeWait))
				sc.conn.WriteMessage(websocket.CloseMessage, nil)
				return
			}
			msg := streamMessage{Type: string(ev.EventType()), Event: ev}
			data, err := json.Marshal(msg)
			if err != nil {
				log.Printf("websocket marshal failed: %v", err)
				continue
			}
			sc.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := sc.conn.WriteMessage(websocket.TextMessage, data); err != nil {
				return
			}
		case <-ticker.C:
			sc.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := sc.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

// readLoop discards client messages; its job is noticing disconnects.
func (s *EventStream) readLoop(sc *streamConn) {
	defer s.drop(sc)

	sc.conn.SetReadLimit(maxMessageSize)
	sc.conn.SetReadDeadline(time.Now().Add(pongWait))
	sc.conn.SetPongHandler(func(string) error {
		sc.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		if _, _, err := sc.conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				log.Printf("websocket read error: %v", err)
			}
			return
		}
	}
}

func (s *EventStream) drop(sc *streamConn) {
	s.mu.Lock()
	_, present := s.conns[sc]
	delete(s.conns, sc)
	s.mu.Unlock()

	if present {
		sc.cancel()
		sc.conn.Close()
	}
}

// Close disconnects every subscriber and stops accepting new ones.
func (s *EventStream) Close() {
	s.mu.Lock()
	s.closed = true
	conns := make([]*streamConn, 0, len(s.conns))
	for sc := range s.conns {
		conns = append(conns, sc)
	}
	s.conns = make(map[*streamConn]struct{})
	s.mu.Unlock()

	for _, sc := range conns {
		sc.cancel()
		sc.conn.Close()
	}
}
