package inspector

import (
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/deuce-x/deuce/pkg/dom"
)

const writeWait = 10 * time.Second

// client is one WebSocket connection. Snapshots are written by its own
// goroutine so a slow browser never blocks the loop.
type client struct {
	conn *websocket.Conn
	send chan []byte
	once sync.Once
	done chan struct{}
}

func (c *client) enqueue(data []byte) {
	select {
	case c.send <- data:
	case <-c.done:
	default:
		// Too slow; the browser reconnects and gets a fresh snapshot.
		c.close()
	}
}

func (c *client) close() {
	c.once.Do(func() {
		close(c.done)
		c.conn.Close()
	})
}

func (c *client) writePump() {
	for {
		select {
		case data := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.TextMessage, data); err != nil {
				c.close()
				return
			}
		case <-c.done:
			return
		}
	}
}

func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		return
	}
	c := &client{
		conn: conn,
		send: make(chan []byte, sendBuffer),
		done: make(chan struct{}),
	}

	// Register and queue the current state in one loop task, so no commit
	// can fall between the two.
	registered := false
	err = s.loop.Call(r.Context(), func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		if s.closed {
			return
		}
		s.clients[c] = struct{}{}
		registered = true
		snap := s.snapshot()
		data, _ := json.Marshal(Message{Type: TypeSnapshot, Seq: snap.Seq, HTML: snap.HTML})
		c.send <- data
	})
	if err != nil || !registered {
		conn.Close()
		return
	}
	s.logger.Info("client connected", "remote", r.RemoteAddr, "clients", s.ClientCount())

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		c.writePump()
	}()

	s.readPump(r, c)

	s.mu.Lock()
	delete(s.clients, c)
	s.mu.Unlock()
	c.close()
	wg.Wait()
	s.logger.Info("client disconnected", "remote", r.RemoteAddr)
}

// readPump dispatches incoming events until the connection fails.
func (s *Server) readPump(r *http.Request, c *client) {
	for {
		_, data, err := c.conn.ReadMessage()
		if err != nil {
			return
		}
		var msg Message
		if err := json.Unmarshal(data, &msg); err != nil || msg.Type != TypeEvent || msg.Event == "" {
			s.reject(c, "malformed event")
			continue
		}
		found, err := s.Dispatch(r.Context(), msg.Path, dom.Event{
			Type:  msg.Event,
			Key:   msg.Key,
			Value: msg.Value,
		})
		if err != nil {
			return
		}
		if !found {
			s.reject(c, "no element at path")
		}
	}
}

func (s *Server) reject(c *client, reason string) {
	data, _ := json.Marshal(Message{Type: TypeError, Error: reason})
	c.enqueue(data)
}
