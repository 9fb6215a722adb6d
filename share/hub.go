// Copyright (c) 2026, The Gravitree Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package share

import (
	"log/slog"
	"net/http"
	"sync"

	"github.com/gorilla/websocket"
	"golang.org/x/time/rate"
)

// Hub relays records between the clients of a room. It keeps the
// latest record per room and replays it to clients that join later,
// so a new viewer starts from the current shared state instead of
// the zero state. Rooms are named by the "room" query parameter.
type Hub struct {

	// Limit is the per-client inbound record rate. Records arriving
	// faster than this are dropped, which is safe because each record
	// supersedes the previous one.
	Limit rate.Limit `default:"20"`

	// Burst is the per-client burst allowance.
	Burst int `default:"5"`

	upgrader websocket.Upgrader

	mu    sync.Mutex
	rooms map[string]*room
}

type room struct {
	clients map[*hubClient]bool
	last    Record
}

type hubClient struct {
	conn    *websocket.Conn
	send    chan Record
	limiter *rate.Limiter
}

// NewHub returns a hub ready to serve websocket connections.
func NewHub() *Hub {
	hb := &Hub{rooms: map[string]*room{}}
	hb.Defaults()
	hb.upgrader = websocket.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
		CheckOrigin:     func(r *http.Request) bool { return true },
	}
	return hb
}

func (hb *Hub) Defaults() {
	hb.Limit = 20
	hb.Burst = 5
}

// ServeHTTP upgrades the request to a websocket and joins the client
// to its room. The connection is served until the client disconnects.
func (hb *Hub) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	roomName := r.URL.Query().Get("room")
	if roomName == "" {
		roomName = "default"
	}
	conn, err := hb.upgrader.Upgrade(w, r, nil)
	if err != nil {
		slog.Error("share: websocket upgrade", "err", err)
		return
	}
	cl := &hubClient{
		conn:    conn,
		send:    make(chan Record, 8),
		limiter: rate.NewLimiter(hb.Limit, hb.Burst),
	}
	rm := hb.join(roomName, cl)
	go cl.writeLoop()
	cl.readLoop(hb, rm)
}

// join adds the client to the named room, creating the room on first
// use, and seeds the client with the room's latest record.
func (hb *Hub) join(name string, cl *hubClient) *room {
	hb.mu.Lock()
	defer hb.mu.Unlock()
	rm := hb.rooms[name]
	if rm == nil {
		rm = &room{clients: map[*hubClient]bool{}}
		hb.rooms[name] = rm
	}
	rm.clients[cl] = true
	if rm.last != nil {
		cl.push(rm.last)
	}
	return rm
}

// broadcast records the latest state of the room and relays it to
// every client except the sender.
func (hb *Hub) broadcast(rm *room, from *hubClient, rec Record) {
	hb.mu.Lock()
	defer hb.mu.Unlock()
	rm.last = rec.Clone()
	for cl := range rm.clients {
		if cl != from {
			cl.push(rm.last)
		}
	}
}

// leave removes the client from its room. The room itself persists so
// its latest record survives for clients that reconnect.
func (hb *Hub) leave(rm *room, cl *hubClient) {
	hb.mu.Lock()
	defer hb.mu.Unlock()
	if rm.clients[cl] {
		delete(rm.clients, cl)
		close(cl.send)
	}
}

func (cl *hubClient) readLoop(hb *Hub, rm *room) {
	for {
		_, msg, err := cl.conn.ReadMessage()
		if err != nil {
			break
		}
		if !cl.limiter.Allow() {
			continue
		}
		hb.broadcast(rm, cl, Record(msg))
	}
	hb.leave(rm, cl)
}

func (cl *hubClient) writeLoop() {
	for rec := range cl.send {
		if err := cl.conn.WriteMessage(websocket.BinaryMessage, rec); err != nil {
			break
		}
	}
	cl.conn.Close()
}

// push queues a record without blocking. If the client's queue is
// full, the oldest queued record is dropped in favor of the new one,
// since only the latest record matters.
func (cl *hubClient) push(rec Record) {
	select {
	case cl.send <- rec:
	default:
		select {
		case <-cl.send:
		default:
		}
		select {
		case cl.send <- rec:
		default:
		}
	}
}
