// Copyright (c) 2026, The Gravitree Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package share

import (
	"log/slog"
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

// WebSocketTransport carries records over a websocket connection to
// a [Hub]. Records travel as binary messages, one per record.
type WebSocketTransport struct {
	conn *websocket.Conn

	// wmu serializes writes; the websocket allows one writer.
	wmu sync.Mutex
}

// DialWebSocket connects to a hub at the given ws or wss URL, for
// example "ws://host:8787/sync?room=lobby".
func DialWebSocket(url string) (*WebSocketTransport, error) {
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		return nil, err
	}
	return &WebSocketTransport{conn: conn}, nil
}

// Send transmits one record.
func (wt *WebSocketTransport) Send(rec Record) error {
	wt.wmu.Lock()
	defer wt.wmu.Unlock()
	return wt.conn.WriteMessage(websocket.BinaryMessage, rec)
}

// OnRecord starts the read loop, delivering each incoming record to
// fn on the read goroutine. The loop ends when the connection does.
func (wt *WebSocketTransport) OnRecord(fn func(rec Record)) {
	go func() {
		for {
			_, msg, err := wt.conn.ReadMessage()
			if err != nil {
				if websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
					slog.Error("share: websocket read", "err", err)
				}
				return
			}
			fn(Record(msg))
		}
	}()
}

// Close sends a close message and closes the connection.
func (wt *WebSocketTransport) Close() error {
	wt.wmu.Lock()
	msg := websocket.FormatCloseMessage(websocket.CloseNormalClosure, "")
	wt.conn.WriteControl(websocket.CloseMessage, msg, time.Now().Add(time.Second))
	wt.wmu.Unlock()
	return wt.conn.Close()
}

var _ Transport = &WebSocketTransport{}
